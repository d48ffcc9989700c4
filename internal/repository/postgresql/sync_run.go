package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/rotasync/rotasync-backend-go/internal/domain/synchist"
	"github.com/rotasync/rotasync-backend-go/internal/pkg/database"
)

type syncRunRepositoryImpl struct {
	db *database.DB
}

func NewSyncRunRepository(db *database.DB) synchist.SyncRunRepository {
	return &syncRunRepositoryImpl{db: db}
}

const syncRunColumns = `id, staff_id, shifts_processed, shifts_created, shifts_updated,
	events_created, events_updated, events_deleted, status, error_message, started_at, finished_at`

// Create implements synchist.SyncRunRepository.
func (r *syncRunRepositoryImpl) Create(ctx context.Context, run synchist.SyncRun) (synchist.SyncRun, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO sync_runs (
			id, staff_id, shifts_processed, shifts_created, shifts_updated,
			events_created, events_updated, events_deleted, status, error_message,
			started_at, finished_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING ` + syncRunColumns + `
	`

	created, err := scanSyncRun(q.QueryRow(ctx, query,
		run.ID,
		run.StaffID,
		run.ShiftsProcessed,
		run.ShiftsCreated,
		run.ShiftsUpdated,
		run.EventsCreated,
		run.EventsUpdated,
		run.EventsDeleted,
		string(run.Status),
		run.ErrorMessage,
		run.StartedAt,
		run.FinishedAt,
	))
	if err != nil {
		return synchist.SyncRun{}, fmt.Errorf("create sync run: %w", err)
	}
	return created, nil
}

// Latest implements synchist.SyncRunRepository.
func (r *syncRunRepositoryImpl) Latest(ctx context.Context) (synchist.SyncRun, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + syncRunColumns + `
		FROM sync_runs
		ORDER BY started_at DESC, finished_at DESC
		LIMIT 1
	`

	run, err := scanSyncRun(q.QueryRow(ctx, query))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return synchist.SyncRun{}, synchist.ErrRunNotFound
		}
		return synchist.SyncRun{}, fmt.Errorf("get latest sync run: %w", err)
	}
	return run, nil
}

// Recent implements synchist.SyncRunRepository.
func (r *syncRunRepositoryImpl) Recent(ctx context.Context, limit int) ([]synchist.SyncRun, error) {
	q := GetQuerier(ctx, r.db)

	if limit <= 0 {
		limit = 10
	}

	query := `
		SELECT ` + syncRunColumns + `
		FROM sync_runs
		ORDER BY started_at DESC, finished_at DESC
		LIMIT $1
	`

	rows, err := q.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("list sync runs: %w", err)
	}
	defer rows.Close()

	var runs []synchist.SyncRun
	for rows.Next() {
		run, err := scanSyncRun(rows)
		if err != nil {
			return nil, fmt.Errorf("scan sync run: %w", err)
		}
		runs = append(runs, run)
	}
	return runs, rows.Err()
}

func scanSyncRun(row pgx.Row) (synchist.SyncRun, error) {
	var run synchist.SyncRun
	var status string
	err := row.Scan(
		&run.ID,
		&run.StaffID,
		&run.ShiftsProcessed,
		&run.ShiftsCreated,
		&run.ShiftsUpdated,
		&run.EventsCreated,
		&run.EventsUpdated,
		&run.EventsDeleted,
		&status,
		&run.ErrorMessage,
		&run.StartedAt,
		&run.FinishedAt,
	)
	if err != nil {
		return synchist.SyncRun{}, err
	}
	run.Status = synchist.Status(status)
	return run, nil
}
