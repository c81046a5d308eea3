package club

import (
	"sync"
	"time"

	"github.com/mauv0809/pickleball-courts/internal/database"
	"github.com/mauv0809/pickleball-courts/internal/metrics"
	"github.com/mauv0809/pickleball-courts/internal/schedule"
)

// Persisted bucket names.
const (
	BucketCourts       = "courts"
	BucketSpecialSlots = "customTimeSlots"
	BucketReservations = "customReservations"
	BucketCoaches      = "coaches"
	BucketClinics      = "clinics"
)

// EventType names what changed in the store.
type EventType string

const (
	EventCourtsUpdated       EventType = "courtsUpdated"
	EventTimeSlotsUpdated    EventType = "timeSlotsUpdated"
	EventReservationsUpdated EventType = "reservationsUpdated"
	EventCoachesUpdated      EventType = "coachesUpdated"
	EventClinicsUpdated      EventType = "clinicsUpdated"
)

// Event is delivered to subscribers after a mutation is fully applied.
type Event struct {
	Type    EventType
	Version uint64
}

// Snapshot is a consistent copy of the store at one version. Index resolves
// cells against exactly the Slots and Reservations of the same version.
type Snapshot struct {
	Version      uint64
	Today        string
	Courts       []schedule.Court
	Slots        []schedule.TimeSlot
	Reservations []schedule.Reservation
	Coaches      []schedule.Coach
	Clinics      []schedule.Clinic
	Index        *schedule.Index
}

// Seed is the data used for buckets that have never been persisted.
type Seed struct {
	Courts       []schedule.Court
	SpecialSlots []schedule.TimeSlot
	Reservations []schedule.Reservation
	Coaches      []schedule.Coach
	Clinics      []schedule.Clinic
}

// Options configures a store.
type Options struct {
	// Buckets mirrors the store to persistent storage. Nil keeps the store
	// purely in memory.
	Buckets database.Buckets
	Metrics metrics.Metrics
	Seed    Seed

	WindowDays int
	OpenHour   int
	CloseHour  int
	Exceptions map[schedule.SlotKey]string
	MaxRetries uint64
	RetryDelay time.Duration
	Now        func() time.Time
}

type subscriber struct {
	id int
	fn func(Event)
}

type store struct {
	mu sync.RWMutex

	opts    Options
	today   time.Time
	version uint64

	courts       []schedule.Court
	generated    []schedule.TimeSlot
	special      []schedule.TimeSlot
	merged       []schedule.TimeSlot
	slotsByID    map[string]schedule.TimeSlot
	reservations []schedule.Reservation
	coaches      []schedule.Coach
	clinics      []schedule.Clinic

	cacheMu      sync.Mutex
	cache        *schedule.Index
	cacheVersion uint64

	subsMu  sync.Mutex
	subs    []subscriber
	nextSub int

	mirror *mirror
}
