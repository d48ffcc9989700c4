package calendar

// Action enumerates what reconciliation decided for one (person, date) key.
type Action string

const (
	ActionNoop   Action = "noop"
	ActionCreate Action = "create"
	ActionUpdate Action = "update"
)

// Decision is the outcome of comparing the desired event against the
// remote events on the same date. ExtraIDs always lists the duplicate
// events to delete, regardless of the primary action.
type Decision struct {
	Action     Action
	Desired    EventDescriptor
	ExistingID string   // set for noop and update
	ExtraIDs   []string // remote duplicates, all but the first listed event
}
