package slack

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/pickleball-courts/internal/metrics"
	"github.com/mauv0809/pickleball-courts/internal/notifier"
	"github.com/mauv0809/pickleball-courts/internal/schedule"
	"github.com/slack-go/slack"
)

// slackClient is an interface that contains the methods from the slack.Client that we use.
// This allows for easy mocking in tests.
type slackClient interface {
	PostMessageContext(ctx context.Context, channelID string, options ...slack.MsgOption) (string, string, error)
}

var _ notifier.Notifier = &Notifier{}

// Notifier handles sending notifications to Slack.
type Notifier struct {
	api       slackClient
	channelID string
	metrics   metrics.Metrics
}

// NewNotifier creates a new Notifier. With an empty token every message is
// logged instead of posted.
func NewNotifier(token, channelID string, metrics metrics.Metrics) *Notifier {
	var api slackClient
	if token != "" {
		api = slack.New(token)
	}
	return &Notifier{
		api:       api,
		channelID: channelID,
		metrics:   metrics,
	}
}

// NewNotifierWithAPI creates a new Notifier with a specific slack.Client instance.
// Useful for tests that need to intercept API calls.
func NewNotifierWithAPI(api slackClient, channelID string, metrics metrics.Metrics) *Notifier {
	return &Notifier{
		api:       api,
		channelID: channelID,
		metrics:   metrics,
	}
}

func (s *Notifier) sendMessage(message slack.Message, dryRun bool) (string, string, error) {
	if dryRun || s.api == nil {
		jsonMsg, _ := json.MarshalIndent(message, "", "  ")
		log.Info("[Dry Run] Would send Slack message", "channel", s.channelID, "message", string(jsonMsg))
		return "dry-run-channel", "dry-run-ts", nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	channelID, timestamp, err := s.api.PostMessageContext(
		ctx,
		s.channelID,
		slack.MsgOptionBlocks(message.Blocks.BlockSet...),
		slack.MsgOptionAsUser(true),
	)

	if err != nil {
		s.metrics.IncNotifFailed()
		log.Error("Failed to send Slack message", "error", err, "channel", s.channelID)
		return "", "", fmt.Errorf("failed to post message: %w", err)
	}

	s.metrics.IncNotifSent()
	log.Info("Successfully sent Slack message", "channel", channelID, "timestamp", timestamp)
	return channelID, timestamp, nil
}

func (s *Notifier) SendReservationConfirmation(notice notifier.ReservationNotice, dryRun bool) error {
	_, _, err := s.sendMessage(s.formatReservation(notice, "🏓 Court booked! 🏓"), dryRun)
	return err
}

func (s *Notifier) SendReservationCancelled(notice notifier.ReservationNotice, dryRun bool) error {
	_, _, err := s.sendMessage(s.formatReservation(notice, "Reservation cancelled"), dryRun)
	return err
}

func (s *Notifier) SendEnrollmentConfirmation(notice notifier.EnrollmentNotice, dryRun bool) error {
	_, _, err := s.sendMessage(s.formatEnrollment(notice), dryRun)
	return err
}

func (s *Notifier) SendDailyAgenda(date string, entries []notifier.AgendaEntry, dryRun bool) error {
	_, _, err := s.sendMessage(s.formatAgenda(date, entries), dryRun)
	return err
}

// formatDate renders a yyyy-MM-dd date as "Monday 02 Jan", falling back to
// the raw string.
func formatDate(date string) string {
	t, err := time.Parse(schedule.DateLayout, date)
	if err != nil {
		return date
	}
	return t.Format("Monday 02 Jan")
}

func timeRange(start, end string) string {
	if end == "" {
		return start
	}
	return start + "–" + end
}

// formatReservation creates the Slack message for a booked or cancelled reservation using Block Kit.
func (s *Notifier) formatReservation(n notifier.ReservationNotice, header string) slack.Message {
	blocks := make([]slack.Block, 0)

	headerText := slack.NewTextBlockObject("plain_text", header, true, false)
	blocks = append(blocks, slack.NewHeaderBlock(headerText))

	detailsText := fmt.Sprintf("Court: %s\nTime: %s, %s", n.CourtName, formatDate(n.Date), timeRange(n.StartTime, n.EndTime))
	blocks = append(blocks, slack.NewSectionBlock(slack.NewTextBlockObject("plain_text", detailsText, true, false), nil, nil))

	who := n.PlayerName
	if n.Players > 1 {
		who = fmt.Sprintf("%s (%d players)", n.PlayerName, n.Players)
	}
	blocks = append(blocks, slack.NewContextBlock("", slack.NewTextBlockObject("plain_text", "Booked by "+who, true, false)))

	return slack.NewBlockMessage(blocks...)
}

// formatEnrollment creates the Slack message for a clinic enrollment.
func (s *Notifier) formatEnrollment(n notifier.EnrollmentNotice) slack.Message {
	blocks := make([]slack.Block, 0)

	headerText := slack.NewTextBlockObject("plain_text", fmt.Sprintf("🎓 New sign-up for %s", n.Title), true, false)
	blocks = append(blocks, slack.NewHeaderBlock(headerText))

	detailsText := fmt.Sprintf("Coach: %s\nCourt: %s\nTime: %s, %s",
		n.CoachName, n.CourtName, formatDate(n.Date), timeRange(n.StartTime, n.EndTime))
	blocks = append(blocks, slack.NewSectionBlock(slack.NewTextBlockObject("plain_text", detailsText, true, false), nil, nil))

	spots := fmt.Sprintf("%s joined. %d/%d enrolled", n.ParticipantName, n.Enrolled, n.MaxParticipants)
	if n.MaxParticipants > 0 && n.Enrolled >= n.MaxParticipants {
		spots += " (full)"
	}
	blocks = append(blocks, slack.NewContextBlock("", slack.NewTextBlockObject("plain_text", spots, true, false)))

	return slack.NewBlockMessage(blocks...)
}

// formatAgenda creates the daily agenda message.
func (s *Notifier) formatAgenda(date string, entries []notifier.AgendaEntry) slack.Message {
	blocks := make([]slack.Block, 0)

	headerText := slack.NewTextBlockObject("plain_text", "📅 Today on court: "+formatDate(date), true, false)
	blocks = append(blocks, slack.NewHeaderBlock(headerText))

	if len(entries) == 0 {
		blocks = append(blocks, slack.NewSectionBlock(slack.NewTextBlockObject("plain_text", "No bookings yet. All courts are open!", true, false), nil, nil))
		return slack.NewBlockMessage(blocks...)
	}

	var lines []string
	for _, e := range entries {
		lines = append(lines, fmt.Sprintf("• %s %s: %s", e.StartTime, e.CourtName, e.Label))
	}
	blocks = append(blocks, slack.NewSectionBlock(slack.NewTextBlockObject("plain_text", strings.Join(lines, "\n"), true, false), nil, nil))

	return slack.NewBlockMessage(blocks...)
}
