package playtomic

import "time"

// ImportedReason is shown on cells blocked by a Playtomic booking.
const ImportedReason = "Booked on Playtomic"

const defaultSportID = "PICKLEBALL"

// SearchMatchesParams defines the parameters for searching for matches.
type SearchMatchesParams struct {
	SportID       string
	HasPlayers    bool
	Sort          string
	TenantIDs     []string
	FromStartDate string
}

// MatchSummary contains the essential details of a match from a search result.
type MatchSummary struct {
	MatchID string
	OwnerID *string
}

// Booking is a court booking made on Playtomic. Start and End are UTC.
type Booking struct {
	MatchID      string
	ResourceName string
	OwnerName    string
	Start        time.Time
	End          time.Time
	Status       string
	GameStatus   string
	TenantID     string
}

// Cancelled reports whether the booking no longer holds its court.
func (b Booking) Cancelled() bool {
	return b.Status == "CANCELED" || b.GameStatus == "CANCELED"
}

// ImportResult summarizes one sync run. Skipped counts bookings on unknown
// courts plus cells held by a manual override.
type ImportResult struct {
	Matches  int `json:"matches"`
	Imported int `json:"imported"`
	Released int `json:"released"`
	Skipped  int `json:"skipped"`
	Failed   int `json:"failed"`
}

// playtomicMatchResponse defines the structure for the JSON response from the /v1/matches/{id} endpoint.
type playtomicMatchResponse struct {
	OwnerID      string                  `json:"owner_id"`
	StartDate    string                  `json:"start_date"`
	EndDate      string                  `json:"end_date"`
	Status       string                  `json:"status"`
	GameStatus   string                  `json:"game_status"`
	ResourceName string                  `json:"resource_name"`
	Tenant       playtomicTenant         `json:"tenant"`
	Teams        []playtomicTeamResponse `json:"teams"`
}

// playtomicTenant defines the structure for the tenant information in the response.
type playtomicTenant struct {
	ID   string `json:"tenant_id"`
	Name string `json:"tenant_name"`
}

// playtomicTeamResponse defines the structure for a team within the match response.
type playtomicTeamResponse struct {
	TeamID  string                    `json:"team_id"`
	Players []playtomicPlayerResponse `json:"players"`
}

// playtomicPlayerResponse defines the structure for a player within a team.
type playtomicPlayerResponse struct {
	UserID string `json:"user_id"`
	Name   string `json:"name"`
}
