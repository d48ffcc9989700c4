package rota

import "errors"

var (
	// Parsing Errors
	ErrNotATimeRange   = errors.New("cell is not a parseable time range")
	ErrNotADate        = errors.New("cell is not a recognizable date")
	ErrGridUnavailable = errors.New("rota grid could not be read")

	// Shift Errors
	ErrShiftNotFound = errors.New("shift not found")
)
