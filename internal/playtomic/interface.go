package playtomic

import (
	"context"

	"github.com/mauv0809/pickleball-courts/internal/schedule"
)

// PlaytomicClient defines the interface for interacting with the Playtomic API.
// This allows for mock implementations to be used in tests.
type PlaytomicClient interface {
	GetMatches(ctx context.Context, params *SearchMatchesParams) ([]MatchSummary, error)
	GetBooking(ctx context.Context, matchID string) (Booking, error)
}

// SlotWriter is the part of the club store the importer writes to.
type SlotWriter interface {
	Courts() []schedule.Court
	SpecialSlots() []schedule.TimeSlot
	UpsertSpecialSlot(slot schedule.TimeSlot) error
	DeleteSpecialSlot(id string) error
}
