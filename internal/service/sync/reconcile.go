package sync

import (
	"github.com/rotasync/rotasync-backend-go/internal/domain/calendar"
)

// Decide compares the desired event against the remote events already on
// that date and returns the minimal operation set. Duplicates are never
// authoritative: the first listed event is kept and the rest are always
// marked for deletion, so the calendar self-heals toward exactly one
// event per day.
func Decide(desired calendar.EventDescriptor, existing []calendar.Event) calendar.Decision {
	decision := calendar.Decision{Desired: desired}

	if len(existing) == 0 {
		decision.Action = calendar.ActionCreate
		return decision
	}

	for _, extra := range existing[1:] {
		decision.ExtraIDs = append(decision.ExtraIDs, extra.ID)
	}

	first := existing[0]
	decision.ExistingID = first.ID
	if first.Matches(desired) {
		decision.Action = calendar.ActionNoop
	} else {
		decision.Action = calendar.ActionUpdate
	}
	return decision
}
