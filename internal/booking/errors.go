package booking

import "errors"

var (
	ErrInvalidRequest = errors.New("invalid request")
	ErrNotTemplate    = errors.New("clinic is not a template")
	ErrClinicExists   = errors.New("clinic already exists")
)
