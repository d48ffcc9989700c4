package sync

import (
	"fmt"

	"github.com/rotasync/rotasync-backend-go/internal/domain/calendar"
	"github.com/rotasync/rotasync-backend-go/internal/domain/rota"
)

// BuildDescriptor projects a shift onto the calendar event that should
// represent it. Timed working shifts become timed events; everything else
// (leave, off days, working days with unknown hours) becomes an all-day
// event spanning exactly the shift's date.
func BuildDescriptor(shift rota.Shift, timezone string) calendar.EventDescriptor {
	desc := calendar.EventDescriptor{
		Description: fmt.Sprintf("%s - %s\n%s", shift.Name, shift.Date.Format("2006-01-02"), shift.RawText),
	}

	if shift.IsWorking && shift.Start != nil && shift.End != nil {
		desc.Summary = fmt.Sprintf("Work (%s - %s)", shift.Start.Format("15:04"), shift.End.Format("15:04"))
		desc.Start = shift.Start
		desc.End = shift.End
		desc.Timezone = timezone
		return desc
	}

	desc.Summary = shift.Category.Title()
	date := shift.Date
	desc.AllDayDate = &date
	return desc
}
