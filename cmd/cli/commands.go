package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/mauv0809/pickleball-courts/internal/booking"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(healthCmd, metricsCmd, statsCmd, courtsCmd, dayCmd, weekCmd, cellCmd)
	rootCmd.AddCommand(bookCmd, cancelCmd, blockCmd, unblockCmd)
	rootCmd.AddCommand(regenerateCmd, syncCmd, refreshCmd)

	dayCmd.Flags().String("date", "", "Date to show (YYYY-MM-DD), defaults to today")
	weekCmd.Flags().String("court", "", "Court id")
	weekCmd.Flags().String("start", "", "First date to show (YYYY-MM-DD), defaults to today")
	_ = weekCmd.MarkFlagRequired("court")

	for _, cmd := range []*cobra.Command{cellCmd, bookCmd, blockCmd} {
		cmd.Flags().String("court", "", "Court id")
		cmd.Flags().String("date", "", "Date (YYYY-MM-DD)")
		cmd.Flags().String("hour", "", "Hour (HH:00)")
		_ = cmd.MarkFlagRequired("court")
		_ = cmd.MarkFlagRequired("date")
		_ = cmd.MarkFlagRequired("hour")
	}
	bookCmd.Flags().String("name", "", "Player name")
	bookCmd.Flags().String("email", "", "Player email")
	bookCmd.Flags().Int("players", 2, "Number of players")
	_ = bookCmd.MarkFlagRequired("name")
	blockCmd.Flags().String("reason", "Maintenance", "Reason shown on the blocked cell")
}

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Check the health of the server",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/health", nil)
	},
}

var metricsCmd = &cobra.Command{
	Use:   "metrics",
	Short: "Get application metrics",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/metrics", nil)
	},
}

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show dashboard counters",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/stats", nil)
	},
}

var courtsCmd = &cobra.Command{
	Use:   "courts",
	Short: "List the courts",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/courts", nil)
	},
}

var dayCmd = &cobra.Command{
	Use:   "day",
	Short: "Show availability of every court for one date",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/availability/day", flagQuery(cmd, "date"))
	},
}

var weekCmd = &cobra.Command{
	Use:   "week",
	Short: "Show seven days of availability for one court",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/availability/week", flagQuery(cmd, "court", "start"))
	},
}

var cellCmd = &cobra.Command{
	Use:   "cell",
	Short: "Show the status of one court, date and hour",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/availability/cell", flagQuery(cmd, "court", "date", "hour"))
	},
}

var bookCmd = &cobra.Command{
	Use:   "book",
	Short: "Reserve a court",
	RunE: func(cmd *cobra.Command, args []string) error {
		players, _ := cmd.Flags().GetInt("players")
		req := booking.BookRequest{
			CourtID:     flagString(cmd, "court"),
			Date:        flagString(cmd, "date"),
			Hour:        flagString(cmd, "hour"),
			PlayerName:  flagString(cmd, "name"),
			PlayerEmail: flagString(cmd, "email"),
			Players:     players,
		}
		return performPostRequest("/reservations", req)
	},
}

var cancelCmd = &cobra.Command{
	Use:   "cancel [reservation-id]",
	Short: "Cancel a reservation",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return performPostRequest("/reservations/"+url.PathEscape(args[0])+"/cancel", nil)
	},
}

var blockCmd = &cobra.Command{
	Use:   "block",
	Short: "Block one court, date and hour",
	RunE: func(cmd *cobra.Command, args []string) error {
		req := booking.BlockRequest{
			CourtID: flagString(cmd, "court"),
			Date:    flagString(cmd, "date"),
			Hour:    flagString(cmd, "hour"),
			Reason:  flagString(cmd, "reason"),
		}
		return performPostRequest("/slots/special", req)
	},
}

var unblockCmd = &cobra.Command{
	Use:   "unblock [slot-id]",
	Short: "Remove a blocked cell",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return performRequest(http.MethodDelete, "/slots/special/"+url.PathEscape(args[0]), nil, nil)
	},
}

var regenerateCmd = &cobra.Command{
	Use:   "regenerate",
	Short: "Roll the generated slot window to today",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performPostRequest("/regenerate", nil)
	},
}

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Import bookings made on Playtomic",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performPostRequest("/sync/playtomic", nil)
	},
}

var refreshCmd = &cobra.Command{
	Use:   "refresh",
	Short: "Run the daily maintenance tasks now",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performPostRequest("/refresh", nil)
	},
}

func flagString(cmd *cobra.Command, name string) string {
	v, _ := cmd.Flags().GetString(name)
	return v
}

func flagQuery(cmd *cobra.Command, names ...string) url.Values {
	q := url.Values{}
	for _, name := range names {
		if v := flagString(cmd, name); v != "" {
			q.Set(name, v)
		}
	}
	return q
}

func performGetRequest(endpoint string, query url.Values) error {
	return performRequest(http.MethodGet, endpoint, query, nil)
}

func performPostRequest(endpoint string, body any) error {
	return performRequest(http.MethodPost, endpoint, nil, body)
}

func performRequest(method, endpoint string, query url.Values, body any) error {
	if query == nil {
		query = url.Values{}
	}
	if dryRun {
		query.Set("dry_run", "true")
	}
	target := host + endpoint
	if len(query) > 0 {
		target += "?" + query.Encode()
	}
	fmt.Printf("Making request to %s %s\n", method, target)

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}
	req, err := http.NewRequest(method, target, reader)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to make request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	fmt.Printf("Status Code: %d\n", resp.StatusCode)
	fmt.Println("Response Body:")
	fmt.Println(string(respBody))

	return nil
}
