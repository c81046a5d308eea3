package playtomic

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/pickleball-courts/internal/schedule"
)

// Importer mirrors Playtomic bookings of one tenant into blocked special
// slots. Courts are matched by name, ignoring case.
type Importer struct {
	client   PlaytomicClient
	store    SlotWriter
	tenantID string
	sportID  string
	loc      *time.Location
}

// NewImporter creates an Importer. A nil loc means UTC.
func NewImporter(client PlaytomicClient, store SlotWriter, tenantID string, loc *time.Location) *Importer {
	if loc == nil {
		loc = time.UTC
	}
	return &Importer{
		client:   client,
		store:    store,
		tenantID: tenantID,
		sportID:  defaultSportID,
		loc:      loc,
	}
}

const slotIDPrefix = "playtomic-"

// SlotID is the id of the special slot blocking one hour of a booking on
// date (yyyy-MM-dd).
func SlotID(matchID, date string, hour int) string {
	return fmt.Sprintf("%s%s-%s-%02d", slotIDPrefix, matchID, date, hour)
}

// Imported reports whether a special slot was written by the importer.
func Imported(slot schedule.TimeSlot) bool {
	return strings.HasPrefix(slot.ID, slotIDPrefix)
}

// Sync imports every booking starting on or after from. Bookings that were
// cancelled release their cells again. Cells already held by a special slot
// the importer did not write are left alone and counted as skipped. Failures
// on a single booking are counted and do not stop the run.
func (im *Importer) Sync(ctx context.Context, from time.Time) (ImportResult, error) {
	var result ImportResult

	matches, err := im.client.GetMatches(ctx, &SearchMatchesParams{
		SportID:       im.sportID,
		Sort:          "start_date,ASC",
		TenantIDs:     []string{im.tenantID},
		FromStartDate: from.In(time.UTC).Format("2006-01-02T15:04:05"),
	})
	if err != nil {
		return result, err
	}
	result.Matches = len(matches)

	courts := make(map[string]string)
	for _, c := range im.store.Courts() {
		courts[strings.ToLower(strings.TrimSpace(c.Name))] = c.ID
	}
	held := make(map[schedule.SlotKey]schedule.TimeSlot)
	for _, slot := range im.store.SpecialSlots() {
		if key, ok := schedule.KeyOf(slot); ok {
			held[key] = slot
		}
	}

	for _, m := range matches {
		booking, err := im.client.GetBooking(ctx, m.MatchID)
		if err != nil {
			log.Error("Failed to fetch Playtomic booking", "matchID", m.MatchID, "error", err)
			result.Failed++
			continue
		}
		courtID, ok := courts[strings.ToLower(strings.TrimSpace(booking.ResourceName))]
		if !ok {
			log.Debug("Skipping booking on unknown court", "matchID", m.MatchID, "resource", booking.ResourceName)
			result.Skipped++
			continue
		}

		slots := im.slotsFor(booking, courtID)
		if booking.Cancelled() {
			for _, slot := range slots {
				if err := im.store.DeleteSpecialSlot(slot.ID); err == nil {
					result.Released++
				}
			}
			continue
		}
		for _, slot := range slots {
			key, _ := schedule.KeyOf(slot)
			if existing, ok := held[key]; ok && !Imported(existing) {
				log.Warn("Cell held by a manual override, not importing", "key", key.String(), "slotID", existing.ID, "matchID", m.MatchID)
				result.Skipped++
				continue
			}
			if err := im.store.UpsertSpecialSlot(slot); err != nil {
				log.Error("Failed to block cell for Playtomic booking", "slotID", slot.ID, "error", err)
				result.Failed++
				continue
			}
			held[key] = slot
			result.Imported++
		}
	}

	log.Info("Playtomic sync finished", "matches", result.Matches, "imported", result.Imported, "released", result.Released, "skipped", result.Skipped, "failed", result.Failed)
	return result, nil
}

// slotsFor returns one blocked slot per hour the booking touches.
func (im *Importer) slotsFor(b Booking, courtID string) []schedule.TimeSlot {
	start := b.Start.In(im.loc)
	end := b.End.In(im.loc)
	if !end.After(start) {
		end = start.Add(time.Hour)
	}

	reason := ImportedReason
	if b.OwnerName != "" {
		reason = fmt.Sprintf("%s (%s)", ImportedReason, b.OwnerName)
	}

	var slots []schedule.TimeSlot
	for t := start.Truncate(time.Hour); t.Before(end); t = t.Add(time.Hour) {
		hour := t.Hour()
		date := t.Format(schedule.DateLayout)
		slots = append(slots, schedule.TimeSlot{
			ID:        SlotID(b.MatchID, date, hour),
			CourtID:   courtID,
			Date:      date,
			StartTime: schedule.FormatHour(hour),
			EndTime:   schedule.FormatHour(hour + 1),
			Available: false,
			Reason:    reason,
		})
	}
	return slots
}
