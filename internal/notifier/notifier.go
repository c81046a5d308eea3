package notifier

// Notifier defines a high-level interface for sending notifications about business events.
// This decouples the rest of the application from the specific notification provider (e.g., Slack).
type Notifier interface {
	SendReservationConfirmation(notice ReservationNotice, dryRun bool) error
	SendReservationCancelled(notice ReservationNotice, dryRun bool) error
	SendEnrollmentConfirmation(notice EnrollmentNotice, dryRun bool) error
	// SendDailyAgenda posts the reservations and clinics of one day.
	SendDailyAgenda(date string, entries []AgendaEntry, dryRun bool) error
}
