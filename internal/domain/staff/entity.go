package staff

import "time"

// StaffMember is one person appearing on the rota, with the calendar that
// mirrors their shifts.
type StaffMember struct {
	ID           string
	Name         string // alphabetic-only, as extracted from the rota name cell
	CalendarName string
	CalendarID   *string
	Shares       []Share
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Share grants one email access to the member's calendar.
type Share struct {
	Email string
	Role  string // e.g. "reader", "writer"
}
