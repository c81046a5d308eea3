package schedule

const (
	ReasonAvailable     = "Available"
	ReasonBooked        = "Booked"
	ReasonUnavailable   = "Unavailable"
	ReasonClinicSession = "Clinic Session"
	reservedByPrefix    = "Reserved by "
)

// Collision records a slot that lost its cell to another slot while the
// index was built.
type Collision struct {
	Key     SlotKey
	Kept    TimeSlot
	Dropped TimeSlot
}

// Index answers availability queries for one snapshot of slots and
// reservations. Build it once per snapshot and reuse it for every cell. It
// holds copies, so later edits to the input slices do not reach it.
type Index struct {
	slots        map[SlotKey]TimeSlot
	reservations map[string]Reservation
}

// rank orders slot sources when two land on the same cell. Clinics occupy
// the court outright; everything else is a regular slot.
func rank(s TimeSlot) int {
	if s.IsClinic() {
		return 1
	}
	return 0
}

// BuildIndex keys slots by cell and active reservations by slot id. When two
// slots claim a cell the higher ranked one wins, ties going to the first in
// iteration order; every loser is reported as a Collision. Slots whose start
// time cannot be parsed are ignored.
func BuildIndex(slots []TimeSlot, reservations []Reservation) (*Index, []Collision) {
	ix := &Index{
		slots:        make(map[SlotKey]TimeSlot, len(slots)),
		reservations: make(map[string]Reservation, len(reservations)),
	}
	var collisions []Collision

	for _, slot := range slots {
		var hours []int
		if slot.IsClinic() {
			hours = coveredHours(slot)
		} else if h, ok := ParseHour(slot.StartTime); ok {
			hours = append(hours, h)
		}
		for _, h := range hours {
			key := SlotKey{CourtID: slot.CourtID, Date: slot.Date, Hour: h}
			existing, taken := ix.slots[key]
			switch {
			case !taken:
				ix.slots[key] = slot
			case rank(slot) > rank(existing):
				collisions = append(collisions, Collision{Key: key, Kept: slot, Dropped: existing})
				ix.slots[key] = slot
			default:
				collisions = append(collisions, Collision{Key: key, Kept: existing, Dropped: slot})
			}
		}
	}

	for _, r := range reservations {
		if !r.Active() {
			continue
		}
		if _, taken := ix.reservations[r.TimeSlotID]; !taken {
			ix.reservations[r.TimeSlotID] = r
		}
	}
	return ix, collisions
}

// Resolve returns the status of the cell at (courtID, date, hour).
func (ix *Index) Resolve(courtID, date string, hour int) SlotStatus {
	return ix.ResolveKey(SlotKey{CourtID: courtID, Date: date, Hour: hour})
}

// ResolveKey returns the status of one cell. It never fails: a cell with no
// slot resolves to Unavailable.
func (ix *Index) ResolveKey(key SlotKey) SlotStatus {
	slot, ok := ix.slots[key]
	if !ok {
		return SlotStatus{Available: false, Reserved: false, Reason: ReasonUnavailable}
	}

	if slot.IsClinic() {
		return SlotStatus{Available: false, Reserved: true, Slot: &slot, Reason: ReasonClinicSession}
	}

	status := SlotStatus{Available: slot.Available, Slot: &slot}
	if res, booked := ix.reservations[slot.ID]; booked {
		status.Reservation = &res
	}
	status.Reserved = !slot.Available || status.Reservation != nil

	switch {
	case status.Reservation != nil:
		status.Reason = reservedByPrefix + status.Reservation.PlayerName
	case slot.Reason != "":
		status.Reason = slot.Reason
	case slot.Available:
		status.Reason = ReasonAvailable
	default:
		status.Reason = ReasonBooked
	}
	return status
}

// Bookable reports whether a new reservation could be placed on the cell.
func (s SlotStatus) Bookable() bool {
	return s.Slot != nil && s.Available && !s.Reserved
}

// Slot returns the slot occupying a cell.
func (ix *Index) Slot(key SlotKey) (TimeSlot, bool) {
	s, ok := ix.slots[key]
	return s, ok
}

// Resolve is the one-shot form of Index.Resolve. Callers resolving many
// cells of the same snapshot should build an Index instead.
func Resolve(courtID, date string, hour int, slots []TimeSlot, reservations []Reservation) SlotStatus {
	ix, _ := BuildIndex(slots, reservations)
	return ix.Resolve(courtID, date, hour)
}
