package calendar

import "time"

// EventDescriptor is the desired shape of a calendar event. An event is
// either timed (Start/End set) or all-day (AllDayDate set), never both.
type EventDescriptor struct {
	Summary     string
	Description string

	Start    *time.Time
	End      *time.Time
	Timezone string

	AllDayDate *time.Time // date only; the event spans exactly one day
}

// AllDay reports whether the descriptor is an all-day event.
func (d EventDescriptor) AllDay() bool {
	return d.AllDayDate != nil
}

// Event is a remote calendar event as returned by the calendar service.
// All-day events carry their exclusive end date in AllDayEnd, so a
// multi-day event is distinguishable from a single-day one.
type Event struct {
	ID          string
	Summary     string
	Description string
	Start       *time.Time
	End         *time.Time
	AllDayDate  *time.Time
	AllDayEnd   *time.Time
}

// Matches reports whether the remote event already equals the descriptor:
// summary, description and the interval must match exactly. For all-day
// events the span must be exactly the descriptor's single day.
func (e Event) Matches(d EventDescriptor) bool {
	if e.Summary != d.Summary || e.Description != d.Description {
		return false
	}
	if d.AllDay() {
		if e.AllDayDate == nil || !e.AllDayDate.Equal(*d.AllDayDate) {
			return false
		}
		return e.AllDayEnd != nil && e.AllDayEnd.Equal(d.AllDayDate.AddDate(0, 0, 1))
	}
	if e.Start == nil || e.End == nil || d.Start == nil || d.End == nil {
		return false
	}
	return e.Start.Equal(*d.Start) && e.End.Equal(*d.End)
}
