package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/rotasync/rotasync-backend-go/internal/domain/rota"
	"github.com/rotasync/rotasync-backend-go/internal/pkg/database"
)

type shiftRepositoryImpl struct {
	db *database.DB
}

func NewShiftRepository(db *database.DB) rota.ShiftRepository {
	return &shiftRepositoryImpl{db: db}
}

const shiftColumns = `id, staff_id, name, date, raw_text, category, is_working,
	start_at, end_at, calendar_event_id, fingerprint, created_at, updated_at`

// GetByStaffAndDate implements rota.ShiftRepository.
func (r *shiftRepositoryImpl) GetByStaffAndDate(ctx context.Context, staffID string, date time.Time) (rota.Shift, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + shiftColumns + `
		FROM shifts
		WHERE staff_id = $1 AND date = $2::date
	`

	shift, err := scanShift(q.QueryRow(ctx, query, staffID, date))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return rota.Shift{}, rota.ErrShiftNotFound
		}
		return rota.Shift{}, fmt.Errorf("get shift: %w", err)
	}
	return shift, nil
}

// ListByStaff implements rota.ShiftRepository.
func (r *shiftRepositoryImpl) ListByStaff(ctx context.Context, staffID string, limit int) ([]rota.Shift, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + shiftColumns + `
		FROM shifts
		WHERE staff_id = $1
		ORDER BY date DESC
	`
	args := []interface{}{staffID}
	if limit > 0 {
		query += ` LIMIT $2`
		args = append(args, limit)
	}

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list shifts: %w", err)
	}
	defer rows.Close()

	var shifts []rota.Shift
	for rows.Next() {
		shift, err := scanShift(rows)
		if err != nil {
			return nil, fmt.Errorf("scan shift: %w", err)
		}
		shifts = append(shifts, shift)
	}
	return shifts, rows.Err()
}

// Upsert implements rota.ShiftRepository. The stored row is only written
// when the fingerprint differs; the remote event id survives updates so
// reconciliation keeps its handle on the existing calendar event.
func (r *shiftRepositoryImpl) Upsert(ctx context.Context, shift rota.Shift) (rota.UpsertResult, error) {
	existing, err := r.GetByStaffAndDate(ctx, shift.StaffID, shift.Date)
	if err != nil {
		if !errors.Is(err, rota.ErrShiftNotFound) {
			return rota.UpsertResult{}, err
		}
		created, err := r.insert(ctx, shift)
		if err != nil {
			return rota.UpsertResult{}, err
		}
		return rota.UpsertResult{Shift: created, Created: true, Changed: true}, nil
	}

	if existing.Fingerprint == shift.Fingerprint {
		return rota.UpsertResult{Shift: existing}, nil
	}

	q := GetQuerier(ctx, r.db)
	query := `
		UPDATE shifts
		SET name = $1, raw_text = $2, category = $3, is_working = $4,
			start_at = $5, end_at = $6, fingerprint = $7, updated_at = NOW()
		WHERE id = $8
		RETURNING ` + shiftColumns + `
	`

	updated, err := scanShift(q.QueryRow(ctx, query,
		shift.Name,
		shift.RawText,
		string(shift.Category),
		shift.IsWorking,
		shift.Start,
		shift.End,
		shift.Fingerprint,
		existing.ID,
	))
	if err != nil {
		return rota.UpsertResult{}, fmt.Errorf("update shift: %w", err)
	}
	return rota.UpsertResult{Shift: updated, Changed: true}, nil
}

// SetCalendarEventID implements rota.ShiftRepository.
func (r *shiftRepositoryImpl) SetCalendarEventID(ctx context.Context, shiftID string, eventID string) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE shifts
		SET calendar_event_id = $1, updated_at = NOW()
		WHERE id = $2
	`

	tag, err := q.Exec(ctx, query, eventID, shiftID)
	if err != nil {
		return fmt.Errorf("set calendar event id: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return rota.ErrShiftNotFound
	}
	return nil
}

// DeleteBefore implements rota.ShiftRepository.
func (r *shiftRepositoryImpl) DeleteBefore(ctx context.Context, staffID string, before time.Time) (int64, error) {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM shifts WHERE staff_id = $1 AND date < $2::date`, staffID, before)
	if err != nil {
		return 0, fmt.Errorf("delete old shifts: %w", err)
	}
	return tag.RowsAffected(), nil
}

func (r *shiftRepositoryImpl) insert(ctx context.Context, shift rota.Shift) (rota.Shift, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO shifts (
			id, staff_id, name, date, raw_text, category, is_working,
			start_at, end_at, fingerprint, created_at, updated_at
		)
		VALUES (uuidv7(), $1, $2, $3::date, $4, $5, $6, $7, $8, $9, NOW(), NOW())
		RETURNING ` + shiftColumns + `
	`

	created, err := scanShift(q.QueryRow(ctx, query,
		shift.StaffID,
		shift.Name,
		shift.Date,
		shift.RawText,
		string(shift.Category),
		shift.IsWorking,
		shift.Start,
		shift.End,
		shift.Fingerprint,
	))
	if err != nil {
		return rota.Shift{}, fmt.Errorf("insert shift: %w", err)
	}
	return created, nil
}

func scanShift(row pgx.Row) (rota.Shift, error) {
	var shift rota.Shift
	var category string
	err := row.Scan(
		&shift.ID,
		&shift.StaffID,
		&shift.Name,
		&shift.Date,
		&shift.RawText,
		&category,
		&shift.IsWorking,
		&shift.Start,
		&shift.End,
		&shift.CalendarEventID,
		&shift.Fingerprint,
		&shift.CreatedAt,
		&shift.UpdatedAt,
	)
	if err != nil {
		return rota.Shift{}, err
	}
	shift.Category = rota.Category(category)
	return shift, nil
}
