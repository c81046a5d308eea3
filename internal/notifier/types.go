package notifier

// ReservationNotice describes a reservation for confirmation and
// cancellation messages.
type ReservationNotice struct {
	ReservationID string `msgpack:"reservation_id"`
	CourtName     string `msgpack:"court_name"`
	Date          string `msgpack:"date"`
	StartTime     string `msgpack:"start_time"`
	EndTime       string `msgpack:"end_time"`
	PlayerName    string `msgpack:"player_name"`
	PlayerEmail   string `msgpack:"player_email"`
	Players       int    `msgpack:"players"`
}

// EnrollmentNotice describes a new clinic participant.
type EnrollmentNotice struct {
	ClinicID        string `msgpack:"clinic_id"`
	Title           string `msgpack:"title"`
	CoachName       string `msgpack:"coach_name"`
	CourtName       string `msgpack:"court_name"`
	Date            string `msgpack:"date"`
	StartTime       string `msgpack:"start_time"`
	EndTime         string `msgpack:"end_time"`
	ParticipantName string `msgpack:"participant_name"`
	Enrolled        int    `msgpack:"enrolled"`
	MaxParticipants int    `msgpack:"max_participants"`
}

// AgendaEntry is one line of the daily agenda.
type AgendaEntry struct {
	CourtName string
	StartTime string
	Label     string
}
