package postgresql

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/rotasync/rotasync-backend-go/internal/domain/staff"
	"github.com/rotasync/rotasync-backend-go/internal/pkg/database"
)

type staffRepositoryImpl struct {
	db *database.DB
}

func NewStaffRepository(db *database.DB) staff.StaffRepository {
	return &staffRepositoryImpl{db: db}
}

// GetByName implements staff.StaffRepository.
func (r *staffRepositoryImpl) GetByName(ctx context.Context, name string) (staff.StaffMember, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, name, calendar_name, calendar_id, shares, created_at, updated_at
		FROM staff_members
		WHERE name = $1
	`

	member, err := scanStaffMember(q.QueryRow(ctx, query, name))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return staff.StaffMember{}, staff.ErrStaffNotFound
		}
		return staff.StaffMember{}, fmt.Errorf("get staff member by name: %w", err)
	}
	return member, nil
}

// List implements staff.StaffRepository.
func (r *staffRepositoryImpl) List(ctx context.Context) ([]staff.StaffMember, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, name, calendar_name, calendar_id, shares, created_at, updated_at
		FROM staff_members
		ORDER BY name
	`

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list staff members: %w", err)
	}
	defer rows.Close()

	var members []staff.StaffMember
	for rows.Next() {
		member, err := scanStaffMember(rows)
		if err != nil {
			return nil, fmt.Errorf("scan staff member: %w", err)
		}
		members = append(members, member)
	}
	return members, rows.Err()
}

// Create implements staff.StaffRepository.
func (r *staffRepositoryImpl) Create(ctx context.Context, member staff.StaffMember) (staff.StaffMember, error) {
	q := GetQuerier(ctx, r.db)

	shares, err := json.Marshal(member.Shares)
	if err != nil {
		return staff.StaffMember{}, fmt.Errorf("encode shares: %w", err)
	}

	query := `
		INSERT INTO staff_members (id, name, calendar_name, calendar_id, shares, created_at, updated_at)
		VALUES (uuidv7(), $1, $2, $3, $4, NOW(), NOW())
		RETURNING id, name, calendar_name, calendar_id, shares, created_at, updated_at
	`

	created, err := scanStaffMember(q.QueryRow(ctx, query, member.Name, member.CalendarName, member.CalendarID, shares))
	if err != nil {
		return staff.StaffMember{}, fmt.Errorf("create staff member: %w", err)
	}
	return created, nil
}

// UpdateCalendarID implements staff.StaffRepository.
func (r *staffRepositoryImpl) UpdateCalendarID(ctx context.Context, id string, calendarID string) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE staff_members
		SET calendar_id = $1, updated_at = NOW()
		WHERE id = $2
	`

	tag, err := q.Exec(ctx, query, calendarID, id)
	if err != nil {
		return fmt.Errorf("update calendar id: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return staff.ErrStaffNotFound
	}
	return nil
}

func scanStaffMember(row pgx.Row) (staff.StaffMember, error) {
	var member staff.StaffMember
	var sharesJSON []byte
	err := row.Scan(
		&member.ID,
		&member.Name,
		&member.CalendarName,
		&member.CalendarID,
		&sharesJSON,
		&member.CreatedAt,
		&member.UpdatedAt,
	)
	if err != nil {
		return staff.StaffMember{}, err
	}
	if len(sharesJSON) > 0 {
		if err := json.Unmarshal(sharesJSON, &member.Shares); err != nil {
			return staff.StaffMember{}, fmt.Errorf("decode shares: %w", err)
		}
	}
	return member, nil
}
