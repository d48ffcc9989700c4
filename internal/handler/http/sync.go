package http

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/rotasync/rotasync-backend-go/internal/domain/synchist"
	"github.com/rotasync/rotasync-backend-go/internal/handler/http/response"
	syncService "github.com/rotasync/rotasync-backend-go/internal/service/sync"
)

type SyncHandler struct {
	syncService *syncService.Service
	runRepo     synchist.SyncRunRepository
}

func NewSyncHandler(service *syncService.Service, runRepo synchist.SyncRunRepository) *SyncHandler {
	return &SyncHandler{syncService: service, runRepo: runRepo}
}

type reportResponse struct {
	Status          string   `json:"status"`
	StaffProcessed  int      `json:"staff_processed"`
	ShiftsProcessed int      `json:"shifts_processed"`
	ShiftsCreated   int      `json:"shifts_created"`
	ShiftsUpdated   int      `json:"shifts_updated"`
	EventsCreated   int      `json:"events_created"`
	EventsUpdated   int      `json:"events_updated"`
	EventsDeleted   int      `json:"events_deleted"`
	Errors          []string `json:"errors,omitempty"`
}

func toReportResponse(report syncService.Report) reportResponse {
	return reportResponse{
		Status:          string(report.Status),
		StaffProcessed:  report.StaffProcessed,
		ShiftsProcessed: report.ShiftsProcessed,
		ShiftsCreated:   report.ShiftsCreated,
		ShiftsUpdated:   report.ShiftsUpdated,
		EventsCreated:   report.EventsCreated,
		EventsUpdated:   report.EventsUpdated,
		EventsDeleted:   report.EventsDeleted,
		Errors:          report.Errors,
	}
}

// RunAll triggers a full synchronization run and waits for it.
func (h *SyncHandler) RunAll(w http.ResponseWriter, r *http.Request) {
	report, err := h.syncService.SyncAll(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Sync completed", toReportResponse(report))
}

// RunStaff triggers a synchronization run for one roster member.
func (h *SyncHandler) RunStaff(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	report, err := h.syncService.SyncStaff(r.Context(), name)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Sync completed", toReportResponse(report))
}

type syncRunResponse struct {
	ID              string  `json:"id"`
	StaffID         *string `json:"staff_id,omitempty"`
	ShiftsProcessed int     `json:"shifts_processed"`
	ShiftsCreated   int     `json:"shifts_created"`
	ShiftsUpdated   int     `json:"shifts_updated"`
	EventsCreated   int     `json:"events_created"`
	EventsUpdated   int     `json:"events_updated"`
	EventsDeleted   int     `json:"events_deleted"`
	Status          string  `json:"status"`
	ErrorMessage    *string `json:"error_message,omitempty"`
	StartedAt       string  `json:"started_at"`
	FinishedAt      string  `json:"finished_at"`
}

func toSyncRunResponse(run synchist.SyncRun) syncRunResponse {
	return syncRunResponse{
		ID:              run.ID,
		StaffID:         run.StaffID,
		ShiftsProcessed: run.ShiftsProcessed,
		ShiftsCreated:   run.ShiftsCreated,
		ShiftsUpdated:   run.ShiftsUpdated,
		EventsCreated:   run.EventsCreated,
		EventsUpdated:   run.EventsUpdated,
		EventsDeleted:   run.EventsDeleted,
		Status:          string(run.Status),
		ErrorMessage:    run.ErrorMessage,
		StartedAt:       run.StartedAt.Format("2006-01-02T15:04:05Z07:00"),
		FinishedAt:      run.FinishedAt.Format("2006-01-02T15:04:05Z07:00"),
	}
}

// Latest returns the most recent sync run.
func (h *SyncHandler) Latest(w http.ResponseWriter, r *http.Request) {
	run, err := h.runRepo.Latest(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, toSyncRunResponse(run))
}

// History returns recent sync runs, newest first.
func (h *SyncHandler) History(w http.ResponseWriter, r *http.Request) {
	limit := 10
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			response.BadRequest(w, "limit must be a positive integer", nil)
			return
		}
		limit = parsed
	}

	runs, err := h.runRepo.Recent(r.Context(), limit)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	out := make([]syncRunResponse, 0, len(runs))
	for _, run := range runs {
		out = append(out, toSyncRunResponse(run))
	}
	response.Success(w, out)
}
