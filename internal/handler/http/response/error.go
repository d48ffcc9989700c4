package response

import (
	"errors"
	"net/http"

	"github.com/rotasync/rotasync-backend-go/internal/domain/calendar"
	"github.com/rotasync/rotasync-backend-go/internal/domain/rota"
	"github.com/rotasync/rotasync-backend-go/internal/domain/staff"
	"github.com/rotasync/rotasync-backend-go/internal/domain/synchist"
	syncService "github.com/rotasync/rotasync-backend-go/internal/service/sync"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	switch {
	// Sync errors
	case errors.Is(err, syncService.ErrSyncInProgress):
		Conflict(w, "A sync run is already in progress")
	case errors.Is(err, syncService.ErrStaffNotOnRoster):
		NotFound(w, "Staff member is not on the configured roster")

	// Staff domain errors
	case errors.Is(err, staff.ErrStaffNotFound):
		NotFound(w, "Staff member not found")
	case errors.Is(err, staff.ErrStaffNameExists):
		Conflict(w, "Staff member with this name already exists")

	// Rota / pipeline errors
	case errors.Is(err, rota.ErrGridUnavailable):
		BadGateway(w, "Rota spreadsheet could not be read")
	case errors.Is(err, rota.ErrShiftNotFound):
		NotFound(w, "Shift not found")

	// Calendar errors
	case errors.Is(err, calendar.ErrRemoteOperation):
		BadGateway(w, "Calendar service request failed")
	case errors.Is(err, calendar.ErrCalendarNotFound):
		NotFound(w, "Calendar not found")

	// Sync history errors
	case errors.Is(err, synchist.ErrRunNotFound):
		NotFound(w, "No sync runs recorded yet")

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
