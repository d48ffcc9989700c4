package cron

import (
	"context"
	"errors"
	"log/slog"
	"time"

	syncService "github.com/rotasync/rotasync-backend-go/internal/service/sync"
)

// RotaJobs wires the sync pipeline into the scheduler.
type RotaJobs struct {
	syncService *syncService.Service
}

func NewRotaJobs(service *syncService.Service) *RotaJobs {
	return &RotaJobs{syncService: service}
}

func (j *RotaJobs) RegisterJobs(scheduler *Scheduler, interval time.Duration) {
	if interval <= 0 {
		slog.Info("Rota sync job disabled")
		return
	}
	scheduler.AddJob("rota_sync", interval, j.RunSync)
}

// RunSync performs one full sync run. An already-running manual sync is
// not an error for the scheduler; the next tick will catch up.
func (j *RotaJobs) RunSync(ctx context.Context) error {
	report, err := j.syncService.SyncAll(ctx)
	if err != nil {
		if errors.Is(err, syncService.ErrSyncInProgress) {
			slog.Info("Skipping scheduled sync, a run is already active")
			return nil
		}
		return err
	}

	slog.Info("Scheduled sync finished",
		"status", report.Status,
		"shifts", report.ShiftsProcessed,
		"events_created", report.EventsCreated,
		"events_updated", report.EventsUpdated,
		"events_deleted", report.EventsDeleted,
		"errors", len(report.Errors))
	return nil
}
