package calendar

import (
	"context"
	"time"
)

// CalendarInfo describes a calendar owned by or visible to the service
// account.
type CalendarInfo struct {
	ID       string
	Summary  string
	Timezone string
}

// Client is the narrow surface this system needs from a remote calendar
// service. Auth, retries and rate limiting live behind the implementation.
type Client interface {
	// ListEvents returns all events on the given local calendar date,
	// ordered by start time.
	ListEvents(ctx context.Context, calendarID string, date time.Time) ([]Event, error)
	CreateEvent(ctx context.Context, calendarID string, desc EventDescriptor) (string, error)
	UpdateEvent(ctx context.Context, calendarID string, eventID string, desc EventDescriptor) error
	DeleteEvent(ctx context.Context, calendarID string, eventID string) error

	ListCalendars(ctx context.Context) ([]CalendarInfo, error)
	CreateCalendar(ctx context.Context, name string, timezone string) (string, error)
	ShareCalendar(ctx context.Context, calendarID string, email string, role string) error
	ListShares(ctx context.Context, calendarID string) ([]string, error)
}
