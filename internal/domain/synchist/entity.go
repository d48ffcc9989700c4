package synchist

import "time"

type Status string

const (
	StatusSuccess Status = "success"
	StatusPartial Status = "partial"
	StatusError   Status = "error"
)

// SyncRun records the outcome of one synchronization run, either for a
// single staff member or for the whole rota (StaffID nil).
type SyncRun struct {
	ID              string
	StaffID         *string
	ShiftsProcessed int
	ShiftsCreated   int
	ShiftsUpdated   int
	EventsCreated   int
	EventsUpdated   int
	EventsDeleted   int
	Status          Status
	ErrorMessage    *string
	StartedAt       time.Time
	FinishedAt      time.Time
}
