package http

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/rotasync/rotasync-backend-go/internal/domain/rota"
	"github.com/rotasync/rotasync-backend-go/internal/domain/staff"
	"github.com/rotasync/rotasync-backend-go/internal/handler/http/response"
)

type StaffHandler struct {
	staffRepo staff.StaffRepository
	shiftRepo rota.ShiftRepository
}

func NewStaffHandler(staffRepo staff.StaffRepository, shiftRepo rota.ShiftRepository) *StaffHandler {
	return &StaffHandler{staffRepo: staffRepo, shiftRepo: shiftRepo}
}

type staffResponse struct {
	ID           string  `json:"id"`
	Name         string  `json:"name"`
	CalendarName string  `json:"calendar_name"`
	CalendarID   *string `json:"calendar_id,omitempty"`
}

// List returns every staff member known to the mirror.
func (h *StaffHandler) List(w http.ResponseWriter, r *http.Request) {
	members, err := h.staffRepo.List(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	out := make([]staffResponse, 0, len(members))
	for _, member := range members {
		out = append(out, staffResponse{
			ID:           member.ID,
			Name:         member.Name,
			CalendarName: member.CalendarName,
			CalendarID:   member.CalendarID,
		})
	}
	response.Success(w, out)
}

type shiftResponse struct {
	Date      string  `json:"date"`
	RawText   string  `json:"raw_text"`
	Category  string  `json:"category"`
	IsWorking bool    `json:"is_working"`
	Start     *string `json:"start,omitempty"`
	End       *string `json:"end,omitempty"`
	EventID   *string `json:"calendar_event_id,omitempty"`
}

// Shifts returns the mirrored shifts for one staff member, newest first.
func (h *StaffHandler) Shifts(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")

	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			response.BadRequest(w, "limit must be a positive integer", nil)
			return
		}
		limit = parsed
	}

	member, err := h.staffRepo.GetByName(r.Context(), name)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	shifts, err := h.shiftRepo.ListByStaff(r.Context(), member.ID, limit)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	out := make([]shiftResponse, 0, len(shifts))
	for _, shift := range shifts {
		item := shiftResponse{
			Date:      shift.Date.Format("2006-01-02"),
			RawText:   shift.RawText,
			Category:  string(shift.Category),
			IsWorking: shift.IsWorking,
			EventID:   shift.CalendarEventID,
		}
		if shift.Start != nil {
			formatted := shift.Start.Format("2006-01-02 15:04:05")
			item.Start = &formatted
		}
		if shift.End != nil {
			formatted := shift.End.Format("2006-01-02 15:04:05")
			item.End = &formatted
		}
		out = append(out, item)
	}
	response.Success(w, out)
}
