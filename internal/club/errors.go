package club

import "errors"

var (
	ErrCourtNotFound       = errors.New("court not found")
	ErrCoachNotFound       = errors.New("coach not found")
	ErrSlotNotFound        = errors.New("time slot not found")
	ErrInvalidSlot         = errors.New("time slot must have an id, court, date and start time")
	ErrSlotUnavailable     = errors.New("time slot is not available")
	ErrReservationNotFound = errors.New("reservation not found")
	ErrReservationClosed   = errors.New("reservation is already cancelled or completed")
	ErrClinicNotFound      = errors.New("clinic not found")
	ErrClinicNotScheduled  = errors.New("clinic is not scheduled")
	ErrClinicFull          = errors.New("clinic is full")
	ErrAlreadyEnrolled     = errors.New("participant is already enrolled")
	ErrMissingID           = errors.New("id is required")
)
