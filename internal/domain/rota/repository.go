package rota

import (
	"context"
	"time"
)

// UpsertResult reports what the mirror did with a freshly parsed shift.
type UpsertResult struct {
	Shift   Shift
	Created bool
	Changed bool // false when the stored fingerprint already matched
}

type ShiftRepository interface {
	GetByStaffAndDate(ctx context.Context, staffID string, date time.Time) (Shift, error)
	ListByStaff(ctx context.Context, staffID string, limit int) ([]Shift, error)
	Upsert(ctx context.Context, shift Shift) (UpsertResult, error)
	SetCalendarEventID(ctx context.Context, shiftID string, eventID string) error
	DeleteBefore(ctx context.Context, staffID string, before time.Time) (int64, error)
}
