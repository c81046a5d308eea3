package schedule

import "time"

// DateLayout is the calendar date format used for slot and clinic dates.
const DateLayout = "2006-01-02"

// Orientation describes how a court is drawn on the facility map.
type Orientation string

const (
	OrientationHorizontal Orientation = "horizontal"
	OrientationVertical   Orientation = "vertical"
)

// Court is a bookable playing surface.
type Court struct {
	ID                string      `json:"id"`
	Name              string      `json:"name"`
	Location          string      `json:"location"`
	Indoor            bool        `json:"indoor"`
	Orientation       Orientation `json:"orientation,omitempty"`
	Placement         string      `json:"placement,omitempty"`
	VerticalAlignment string      `json:"verticalAlignment,omitempty"`
}

// SlotKind discriminates ordinary slots from clinic projections.
type SlotKind string

const (
	SlotKindRegular SlotKind = "regular"
	SlotKindClinic  SlotKind = "clinic"
)

// ClinicDetails is the snapshot of a clinic embedded in its projected slot.
type ClinicDetails struct {
	ClinicID        string        `json:"clinicId"`
	CoachID         string        `json:"coachId"`
	CoachName       string        `json:"coachName"`
	Title           string        `json:"title"`
	Description     string        `json:"description"`
	Price           float64       `json:"price"`
	SkillLevel      string        `json:"skillLevel"`
	MaxParticipants int           `json:"maxParticipants"`
	Enrolled        int           `json:"enrolled"`
	Participants    []Participant `json:"participants"`
}

// TimeSlot is one bookable unit of court time. Clinic is set if and only if
// Kind is SlotKindClinic.
type TimeSlot struct {
	ID        string         `json:"id"`
	CourtID   string         `json:"courtId"`
	Date      string         `json:"date"`
	StartTime string         `json:"startTime"`
	EndTime   string         `json:"endTime"`
	Available bool           `json:"available"`
	Reason    string         `json:"reason,omitempty"`
	Kind      SlotKind       `json:"kind,omitempty"`
	Clinic    *ClinicDetails `json:"clinicDetails,omitempty"`
}

// IsClinic reports whether the slot is a clinic projection.
func (s TimeSlot) IsClinic() bool {
	return s.Kind == SlotKindClinic && s.Clinic != nil
}

// ReservationStatus is the lifecycle state of a reservation.
type ReservationStatus string

const (
	ReservationConfirmed ReservationStatus = "confirmed"
	ReservationCompleted ReservationStatus = "completed"
	ReservationCancelled ReservationStatus = "cancelled"
)

// Reservation books a single time slot.
type Reservation struct {
	ID          string            `json:"id"`
	CourtID     string            `json:"courtId"`
	TimeSlotID  string            `json:"timeSlotId"`
	PlayerName  string            `json:"playerName"`
	PlayerEmail string            `json:"playerEmail"`
	PlayerPhone string            `json:"playerPhone"`
	Players     int               `json:"players"`
	Status      ReservationStatus `json:"status"`
	CreatedAt   time.Time         `json:"createdAt"`
}

// Active reports whether the reservation occupies its slot.
func (r Reservation) Active() bool {
	return r.Status != ReservationCancelled
}

// ClinicStatus is the lifecycle state of a clinic.
type ClinicStatus string

const (
	ClinicTemplate  ClinicStatus = "template"
	ClinicScheduled ClinicStatus = "scheduled"
	ClinicCancelled ClinicStatus = "cancelled"
	ClinicCompleted ClinicStatus = "completed"
)

// Participant is a player enrolled in a clinic.
type Participant struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Email      string    `json:"email"`
	Phone      string    `json:"phone,omitempty"`
	EnrolledAt time.Time `json:"enrolledAt"`
}

// Clinic is a coach-led session. Only scheduled clinics appear on the calendar.
type Clinic struct {
	ID              string        `json:"id"`
	CoachID         string        `json:"coachId"`
	Title           string        `json:"title"`
	Description     string        `json:"description"`
	Date            string        `json:"date,omitempty"`
	StartTime       string        `json:"startTime,omitempty"`
	EndTime         string        `json:"endTime,omitempty"`
	CourtID         string        `json:"courtId,omitempty"`
	MaxParticipants int           `json:"maxParticipants"`
	Enrolled        int           `json:"enrolled"`
	Participants    []Participant `json:"participants"`
	SkillLevel      string        `json:"skillLevel"`
	Price           float64       `json:"price"`
	Status          ClinicStatus  `json:"status"`
}

// Coach runs clinics.
type Coach struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Email       string   `json:"email"`
	Phone       string   `json:"phone"`
	Specialties []string `json:"specialties"`
	Rating      float64  `json:"rating"`
	Status      string   `json:"status"`
}

// SlotStatus is the resolved verdict for one calendar cell. It is derived,
// never stored.
type SlotStatus struct {
	Available   bool         `json:"available"`
	Reserved    bool         `json:"reserved"`
	Slot        *TimeSlot    `json:"slot"`
	Reservation *Reservation `json:"reservation"`
	Reason      string       `json:"reason"`
}

// DateRange is a run of consecutive calendar days starting at Start.
type DateRange struct {
	Start time.Time
	Days  int
}

// Dates lists the range as yyyy-MM-dd strings.
func (r DateRange) Dates() []string {
	dates := make([]string, 0, r.Days)
	for i := 0; i < r.Days; i++ {
		dates = append(dates, r.Start.AddDate(0, 0, i).Format(DateLayout))
	}
	return dates
}
