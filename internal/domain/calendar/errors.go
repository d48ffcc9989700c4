package calendar

import "errors"

var (
	// ErrRemoteOperation wraps failures reported by the calendar service.
	// These are recoverable at record granularity and never abort a batch.
	ErrRemoteOperation = errors.New("remote calendar operation failed")

	ErrCalendarNotFound = errors.New("calendar not found")
)
