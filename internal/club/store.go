package club

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/pickleball-courts/internal/schedule"
)

const (
	defaultWindowDays = 7
	defaultOpenHour   = 9
	defaultCloseHour  = 18
)

// New creates a ClubStore seeded from opts.Seed. Call Load to replace the
// seed with persisted state.
func New(opts Options) ClubStore {
	if opts.WindowDays <= 0 {
		opts.WindowDays = defaultWindowDays
	}
	if opts.CloseHour <= opts.OpenHour {
		opts.OpenHour, opts.CloseHour = defaultOpenHour, defaultCloseHour
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}

	s := &store{
		opts:         opts,
		today:        opts.Now(),
		courts:       cloneSlice(opts.Seed.Courts),
		special:      cloneSlice(opts.Seed.SpecialSlots),
		reservations: cloneSlice(opts.Seed.Reservations),
		coaches:      cloneSlice(opts.Seed.Coaches),
		clinics:      cloneClinics(opts.Seed.Clinics),
	}
	if opts.Buckets != nil {
		s.mirror = newMirror(opts.Buckets, opts.Metrics, opts.MaxRetries, opts.RetryDelay)
	}
	s.regenerateLocked()
	s.rederiveLocked()
	return s
}

// Load replaces in-memory state with the persisted buckets. Buckets that
// were never written keep their seed contents and are written back.
func (s *store) Load(ctx context.Context) error {
	if s.opts.Buckets == nil {
		return nil
	}

	s.mu.Lock()
	loaded := []struct {
		name   string
		decode func([]byte) error
		seeded func()
	}{
		{BucketCourts, decodeInto(&s.courts), func() { s.persistLocked(BucketCourts, s.courts) }},
		{BucketSpecialSlots, decodeInto(&s.special), func() { s.persistLocked(BucketSpecialSlots, s.special) }},
		{BucketReservations, decodeInto(&s.reservations), func() { s.persistLocked(BucketReservations, s.reservations) }},
		{BucketCoaches, decodeInto(&s.coaches), func() { s.persistLocked(BucketCoaches, s.coaches) }},
		{BucketClinics, decodeInto(&s.clinics), func() { s.persistLocked(BucketClinics, s.clinics) }},
	}
	for _, b := range loaded {
		payload, found, err := s.opts.Buckets.Get(ctx, b.name)
		if err != nil {
			s.mu.Unlock()
			return fmt.Errorf("failed to load bucket %s: %w", b.name, err)
		}
		if !found {
			log.Info("Bucket not found, using seed data", "bucket", b.name)
			b.seeded()
			continue
		}
		if err := b.decode(payload); err != nil {
			s.mu.Unlock()
			return fmt.Errorf("failed to decode bucket %s: %w", b.name, err)
		}
	}
	s.regenerateLocked()
	s.rederiveLocked()
	version := s.bumpLocked()
	log.Info("Store loaded", "courts", len(s.courts), "special_slots", len(s.special), "reservations", len(s.reservations), "clinics", len(s.clinics))
	s.mu.Unlock()

	s.publish(version, EventCourtsUpdated, EventCoachesUpdated, EventClinicsUpdated, EventReservationsUpdated, EventTimeSlotsUpdated)
	return nil
}

func (s *store) Close(ctx context.Context) error {
	if s.mirror == nil {
		return nil
	}
	return s.mirror.close(ctx)
}

func (s *store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return Snapshot{
		Version:      s.version,
		Today:        s.today.Format(schedule.DateLayout),
		Courts:       cloneSlice(s.courts),
		Slots:        cloneSlice(s.merged),
		Reservations: cloneSlice(s.reservations),
		Coaches:      cloneSlice(s.coaches),
		Clinics:      cloneClinics(s.clinics),
		Index:        s.indexLocked(),
	}
}

func (s *store) Index() *schedule.Index {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.indexLocked()
}

// indexLocked requires s.mu to be held, for reading or writing.
func (s *store) indexLocked() *schedule.Index {
	s.cacheMu.Lock()
	defer s.cacheMu.Unlock()
	if s.cache != nil && s.cacheVersion == s.version {
		return s.cache
	}

	start := time.Now()
	ix, collisions := schedule.BuildIndex(s.merged, s.reservations)
	duplicates := 0
	for _, c := range collisions {
		// A clinic covering a regular slot is ordinary precedence.
		if c.Kept.IsClinic() != c.Dropped.IsClinic() {
			continue
		}
		duplicates++
		log.Warn("Duplicate slot for cell", "key", c.Key.String(), "kept", c.Kept.ID, "dropped", c.Dropped.ID)
	}
	if s.opts.Metrics != nil {
		s.opts.Metrics.ObserveIndexBuildDuration(time.Since(start).Seconds())
		if duplicates > 0 {
			s.opts.Metrics.IncSlotCollisions(duplicates)
		}
	}
	s.cache, s.cacheVersion = ix, s.version
	return ix
}

func (s *store) Subscribe(fn func(Event)) func() {
	s.subsMu.Lock()
	defer s.subsMu.Unlock()
	id := s.nextSub
	s.nextSub++
	s.subs = append(s.subs, subscriber{id: id, fn: fn})

	return func() {
		s.subsMu.Lock()
		defer s.subsMu.Unlock()
		for i, sub := range s.subs {
			if sub.id == id {
				s.subs = append(s.subs[:i:i], s.subs[i+1:]...)
				return
			}
		}
	}
}

// publish must be called without s.mu held so subscribers can read the store.
func (s *store) publish(version uint64, types ...EventType) {
	s.subsMu.Lock()
	subs := cloneSlice(s.subs)
	s.subsMu.Unlock()

	for _, t := range types {
		ev := Event{Type: t, Version: version}
		for _, sub := range subs {
			sub.fn(ev)
		}
	}
}

// Courts

func (s *store) Courts() []schedule.Court {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneSlice(s.courts)
}

func (s *store) UpsertCourt(court schedule.Court) error {
	if court.ID == "" {
		return ErrMissingID
	}
	s.mu.Lock()
	replaced := false
	for i := range s.courts {
		if s.courts[i].ID == court.ID {
			s.courts[i] = court
			replaced = true
			break
		}
	}
	if !replaced {
		s.courts = append(s.courts, court)
	}
	s.regenerateLocked()
	s.rederiveLocked()
	s.persistLocked(BucketCourts, s.courts)
	version := s.bumpLocked()
	s.mu.Unlock()

	log.Info("Court saved", "courtID", court.ID, "created", !replaced)
	s.publish(version, EventCourtsUpdated, EventTimeSlotsUpdated)
	return nil
}

// DeleteCourt removes the court and its generated grid. Special slots and
// reservations that reference it are kept and resolve as orphans.
func (s *store) DeleteCourt(id string) error {
	s.mu.Lock()
	idx := -1
	for i := range s.courts {
		if s.courts[i].ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		s.mu.Unlock()
		return fmt.Errorf("%w: %s", ErrCourtNotFound, id)
	}
	s.courts = append(s.courts[:idx:idx], s.courts[idx+1:]...)
	s.regenerateLocked()
	s.rederiveLocked()
	s.persistLocked(BucketCourts, s.courts)
	version := s.bumpLocked()
	s.mu.Unlock()

	log.Info("Court deleted", "courtID", id)
	s.publish(version, EventCourtsUpdated, EventTimeSlotsUpdated)
	return nil
}

// Slots

// RegenerateSlots rolls the generated window so that it starts at today.
func (s *store) RegenerateSlots(today time.Time) {
	s.mu.Lock()
	s.today = today
	s.regenerateLocked()
	s.rederiveLocked()
	version := s.bumpLocked()
	generated := len(s.generated)
	s.mu.Unlock()

	log.Info("Regenerated slot window", "start", today.Format(schedule.DateLayout), "days", s.opts.WindowDays, "slots", generated)
	s.publish(version, EventTimeSlotsUpdated)
}

func (s *store) SpecialSlots() []schedule.TimeSlot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneSlice(s.special)
}

// UpsertSpecialSlot stores a manual override. A special slot already
// covering the same cell is replaced, so each cell has at most one.
func (s *store) UpsertSpecialSlot(slot schedule.TimeSlot) error {
	key, ok := schedule.KeyOf(slot)
	if slot.ID == "" || slot.CourtID == "" || slot.Date == "" || !ok {
		return ErrInvalidSlot
	}
	slot.Kind = schedule.SlotKindRegular
	slot.Clinic = nil
	slot.StartTime = schedule.FormatHour(key.Hour)
	if slot.EndTime == "" {
		slot.EndTime = schedule.FormatHour(key.Hour + 1)
	}

	s.mu.Lock()
	kept := s.special[:0:0]
	for _, existing := range s.special {
		if existing.ID == slot.ID {
			continue
		}
		if k, ok := schedule.KeyOf(existing); ok && k == key {
			log.Info("Replacing special slot for cell", "key", key.String(), "old", existing.ID, "new", slot.ID)
			continue
		}
		kept = append(kept, existing)
	}
	s.special = append(kept, slot)
	s.rederiveLocked()
	s.persistLocked(BucketSpecialSlots, s.special)
	version := s.bumpLocked()
	s.mu.Unlock()

	s.publish(version, EventTimeSlotsUpdated)
	return nil
}

func (s *store) DeleteSpecialSlot(id string) error {
	s.mu.Lock()
	idx := -1
	for i := range s.special {
		if s.special[i].ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		s.mu.Unlock()
		return fmt.Errorf("%w: %s", ErrSlotNotFound, id)
	}
	s.special = append(s.special[:idx:idx], s.special[idx+1:]...)
	s.rederiveLocked()
	s.persistLocked(BucketSpecialSlots, s.special)
	version := s.bumpLocked()
	s.mu.Unlock()

	s.publish(version, EventTimeSlotsUpdated)
	return nil
}

// Reservations

func (s *store) Reservations() []schedule.Reservation {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneSlice(s.reservations)
}

// Reserve adds a reservation if its slot currently resolves as bookable. The
// check and the insert happen under one lock.
func (s *store) Reserve(r schedule.Reservation) (schedule.Reservation, error) {
	if r.ID == "" {
		return schedule.Reservation{}, ErrMissingID
	}

	s.mu.Lock()
	slot, ok := s.slotsByID[r.TimeSlotID]
	if !ok {
		s.mu.Unlock()
		return schedule.Reservation{}, fmt.Errorf("%w: %s", ErrSlotNotFound, r.TimeSlotID)
	}
	key, _ := schedule.KeyOf(slot)
	status := s.indexLocked().ResolveKey(key)
	if !status.Bookable() || status.Slot.ID != slot.ID {
		s.mu.Unlock()
		return schedule.Reservation{}, fmt.Errorf("%w: %s (%s)", ErrSlotUnavailable, slot.ID, status.Reason)
	}

	r.CourtID = slot.CourtID
	if r.Status == "" {
		r.Status = schedule.ReservationConfirmed
	}
	if r.CreatedAt.IsZero() {
		r.CreatedAt = s.opts.Now()
	}
	s.reservations = append(s.reservations, r)
	s.persistLocked(BucketReservations, s.reservations)
	version := s.bumpLocked()
	s.mu.Unlock()

	log.Info("Reservation created", "reservationID", r.ID, "slotID", r.TimeSlotID, "player", r.PlayerName)
	s.publish(version, EventReservationsUpdated)
	return r, nil
}

// UpdateReservationStatus moves a confirmed reservation to completed or
// cancelled. Closed reservations cannot change again.
func (s *store) UpdateReservationStatus(id string, status schedule.ReservationStatus) (schedule.Reservation, error) {
	s.mu.Lock()
	idx := -1
	for i := range s.reservations {
		if s.reservations[i].ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		s.mu.Unlock()
		return schedule.Reservation{}, fmt.Errorf("%w: %s", ErrReservationNotFound, id)
	}
	if s.reservations[idx].Status != schedule.ReservationConfirmed {
		current := s.reservations[idx].Status
		s.mu.Unlock()
		return schedule.Reservation{}, fmt.Errorf("%w: %s is %s", ErrReservationClosed, id, current)
	}
	// Copy on write: indexes and snapshots already handed out keep the old array.
	s.reservations = cloneSlice(s.reservations)
	s.reservations[idx].Status = status
	updated := s.reservations[idx]
	s.persistLocked(BucketReservations, s.reservations)
	version := s.bumpLocked()
	s.mu.Unlock()

	log.Info("Reservation status changed", "reservationID", id, "status", status)
	s.publish(version, EventReservationsUpdated)
	return updated, nil
}

// Coaches

func (s *store) Coaches() []schedule.Coach {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneSlice(s.coaches)
}

func (s *store) UpsertCoach(coach schedule.Coach) error {
	if coach.ID == "" {
		return ErrMissingID
	}
	s.mu.Lock()
	replaced := false
	for i := range s.coaches {
		if s.coaches[i].ID == coach.ID {
			s.coaches[i] = coach
			replaced = true
			break
		}
	}
	if !replaced {
		s.coaches = append(s.coaches, coach)
	}
	// Clinic slots carry the coach name.
	s.rederiveLocked()
	s.persistLocked(BucketCoaches, s.coaches)
	version := s.bumpLocked()
	s.mu.Unlock()

	s.publish(version, EventCoachesUpdated, EventTimeSlotsUpdated)
	return nil
}

// Clinics

func (s *store) Clinics() []schedule.Clinic {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneClinics(s.clinics)
}

func (s *store) Clinic(id string) (schedule.Clinic, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, c := range s.clinics {
		if c.ID == id {
			return cloneClinics([]schedule.Clinic{c})[0], nil
		}
	}
	return schedule.Clinic{}, fmt.Errorf("%w: %s", ErrClinicNotFound, id)
}

func (s *store) UpsertClinic(clinic schedule.Clinic) error {
	if clinic.ID == "" {
		return ErrMissingID
	}
	clinic.Participants = cloneSlice(clinic.Participants)

	s.mu.Lock()
	replaced := false
	for i := range s.clinics {
		if s.clinics[i].ID == clinic.ID {
			s.clinics[i] = clinic
			replaced = true
			break
		}
	}
	if !replaced {
		s.clinics = append(s.clinics, clinic)
	}
	s.rederiveLocked()
	s.persistLocked(BucketClinics, s.clinics)
	version := s.bumpLocked()
	s.mu.Unlock()

	log.Info("Clinic saved", "clinicID", clinic.ID, "status", clinic.Status, "created", !replaced)
	s.publish(version, EventClinicsUpdated, EventTimeSlotsUpdated)
	return nil
}

func (s *store) SetClinicStatus(id string, status schedule.ClinicStatus) (schedule.Clinic, error) {
	s.mu.Lock()
	idx := s.clinicIndexLocked(id)
	if idx < 0 {
		s.mu.Unlock()
		return schedule.Clinic{}, fmt.Errorf("%w: %s", ErrClinicNotFound, id)
	}
	s.clinics[idx].Status = status
	updated := cloneClinics(s.clinics[idx : idx+1])[0]
	s.rederiveLocked()
	s.persistLocked(BucketClinics, s.clinics)
	version := s.bumpLocked()
	s.mu.Unlock()

	log.Info("Clinic status changed", "clinicID", id, "status", status)
	s.publish(version, EventClinicsUpdated, EventTimeSlotsUpdated)
	return updated, nil
}

// EnrollParticipant increments the enrolled count, records the participant
// and re-projects clinic slots as one step. Nothing changes on error.
func (s *store) EnrollParticipant(clinicID string, p schedule.Participant) (schedule.Clinic, error) {
	s.mu.Lock()
	idx := s.clinicIndexLocked(clinicID)
	if idx < 0 {
		s.mu.Unlock()
		return schedule.Clinic{}, fmt.Errorf("%w: %s", ErrClinicNotFound, clinicID)
	}
	c := s.clinics[idx]
	var err error
	switch {
	case c.Status != schedule.ClinicScheduled:
		err = fmt.Errorf("%w: %s is %s", ErrClinicNotScheduled, clinicID, c.Status)
	case c.MaxParticipants > 0 && c.Enrolled >= c.MaxParticipants:
		err = fmt.Errorf("%w: %d of %d places taken", ErrClinicFull, c.Enrolled, c.MaxParticipants)
	case p.Email != "" && hasParticipant(c.Participants, p.Email):
		err = fmt.Errorf("%w: %s", ErrAlreadyEnrolled, p.Email)
	}
	if err != nil {
		s.mu.Unlock()
		return schedule.Clinic{}, err
	}
	if p.EnrolledAt.IsZero() {
		p.EnrolledAt = s.opts.Now()
	}

	c.Enrolled++
	c.Participants = append(cloneSlice(c.Participants), p)
	s.clinics[idx] = c
	s.rederiveLocked()
	s.persistLocked(BucketClinics, s.clinics)
	version := s.bumpLocked()
	updated := cloneClinics([]schedule.Clinic{c})[0]
	s.mu.Unlock()

	log.Info("Participant enrolled", "clinicID", clinicID, "participant", p.Name, "enrolled", c.Enrolled)
	s.publish(version, EventClinicsUpdated, EventTimeSlotsUpdated)
	return updated, nil
}

// Derivation helpers. All require s.mu held for writing.

func (s *store) regenerateLocked() {
	window := schedule.DateRange{Start: s.today, Days: s.opts.WindowDays}
	hours := schedule.DefaultHours(s.opts.OpenHour, s.opts.CloseHour)
	s.generated = schedule.Generate(s.courts, window, hours, schedule.GenerateOptions{
		ClosingHour: s.opts.CloseHour,
		Exceptions:  s.opts.Exceptions,
	})
}

func (s *store) rederiveLocked() {
	base := schedule.MergeSpecial(s.generated, s.special)
	s.merged = schedule.ReplaceClinicSlots(base, schedule.ProjectClinics(s.clinics, s.coaches))
	s.slotsByID = make(map[string]schedule.TimeSlot, len(s.merged))
	for _, slot := range s.merged {
		if _, dup := s.slotsByID[slot.ID]; dup {
			log.Warn("Duplicate slot id", "slotID", slot.ID)
			continue
		}
		s.slotsByID[slot.ID] = slot
	}
}

func (s *store) bumpLocked() uint64 {
	s.version++
	return s.version
}

func (s *store) persistLocked(bucket string, v any) {
	if s.mirror == nil {
		return
	}
	payload, err := json.Marshal(v)
	if err != nil {
		log.Error("Failed to encode bucket", "bucket", bucket, "error", err)
		return
	}
	s.mirror.save(bucket, payload)
}

func (s *store) clinicIndexLocked(id string) int {
	for i := range s.clinics {
		if s.clinics[i].ID == id {
			return i
		}
	}
	return -1
}

func hasParticipant(participants []schedule.Participant, email string) bool {
	for _, p := range participants {
		if p.Email == email {
			return true
		}
	}
	return false
}

// decodeInto returns a decoder that replaces *dst with a freshly decoded
// slice, so fields absent from the payload never inherit earlier values.
func decodeInto[T any](dst *[]T) func([]byte) error {
	return func(payload []byte) error {
		var fresh []T
		if err := json.Unmarshal(payload, &fresh); err != nil {
			return err
		}
		*dst = fresh
		return nil
	}
}

func cloneSlice[T any](in []T) []T {
	if in == nil {
		return nil
	}
	out := make([]T, len(in))
	copy(out, in)
	return out
}

func cloneClinics(in []schedule.Clinic) []schedule.Clinic {
	out := cloneSlice(in)
	for i := range out {
		out[i].Participants = cloneSlice(out[i].Participants)
	}
	return out
}
