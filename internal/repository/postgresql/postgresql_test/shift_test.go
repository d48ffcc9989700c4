package postgresql_test

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/rotasync/rotasync-backend-go/internal/domain/rota"
	"github.com/rotasync/rotasync-backend-go/internal/domain/staff"
	"github.com/rotasync/rotasync-backend-go/internal/pkg/database"
	"github.com/rotasync/rotasync-backend-go/internal/repository/postgresql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testDB *database.DB

func repoTestInit(t *testing.T) {
	t.Helper()
	if testDB != nil {
		return
	}
	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	var err error
	testDB, err = database.NewPostgreSQLDB(dsn)
	if err != nil {
		t.Fatalf("connect to test database: %v", err)
	}
}

func createTestStaff(t *testing.T, ctx context.Context) staff.StaffMember {
	repo := postgresql.NewStaffRepository(testDB)
	name := fmt.Sprintf("TestStaff%d", time.Now().UnixNano())
	member, err := repo.Create(ctx, staff.StaffMember{
		Name:         name,
		CalendarName: name + " Rota",
		Shares:       []staff.Share{{Email: "colleague@example.com", Role: "writer"}},
	})
	require.NoError(t, err)
	t.Cleanup(func() {
		_, _ = testDB.Exec(ctx, `DELETE FROM staff_members WHERE id = $1`, member.ID)
	})
	return member
}

func testShift(staffID string) rota.Shift {
	start := time.Date(2026, time.March, 9, 8, 0, 0, 0, time.UTC)
	end := time.Date(2026, time.March, 9, 17, 0, 0, 0, time.UTC)
	return rota.Shift{
		StaffID:     staffID,
		Name:        "DrRachelKerry",
		Date:        time.Date(2026, time.March, 9, 0, 0, 0, 0, time.UTC),
		RawText:     "0800-1700",
		Category:    rota.CategoryRegular,
		IsWorking:   true,
		Start:       &start,
		End:         &end,
		Fingerprint: "1111111111111111111111111111111111111111111111111111111111111111",
	}
}

func TestStaffRepository_CreateAndGet(t *testing.T) {
	ctx := context.Background()
	repoTestInit(t)
	repo := postgresql.NewStaffRepository(testDB)

	member := createTestStaff(t, ctx)

	fetched, err := repo.GetByName(ctx, member.Name)
	require.NoError(t, err)
	assert.Equal(t, member.ID, fetched.ID)
	assert.Nil(t, fetched.CalendarID)
	require.Len(t, fetched.Shares, 1)
	assert.Equal(t, "colleague@example.com", fetched.Shares[0].Email)

	_, err = repo.GetByName(ctx, "NoSuchPerson")
	assert.ErrorIs(t, err, staff.ErrStaffNotFound)
}

func TestStaffRepository_UpdateCalendarID(t *testing.T) {
	ctx := context.Background()
	repoTestInit(t)
	repo := postgresql.NewStaffRepository(testDB)

	member := createTestStaff(t, ctx)
	require.NoError(t, repo.UpdateCalendarID(ctx, member.ID, "cal-abc"))

	fetched, err := repo.GetByName(ctx, member.Name)
	require.NoError(t, err)
	require.NotNil(t, fetched.CalendarID)
	assert.Equal(t, "cal-abc", *fetched.CalendarID)
}

func TestShiftRepository_UpsertLifecycle(t *testing.T) {
	ctx := context.Background()
	repoTestInit(t)
	repo := postgresql.NewShiftRepository(testDB)

	member := createTestStaff(t, ctx)
	shift := testShift(member.ID)

	// First write inserts.
	result, err := repo.Upsert(ctx, shift)
	require.NoError(t, err)
	assert.True(t, result.Created)
	assert.NotEmpty(t, result.Shift.ID)

	require.NoError(t, repo.SetCalendarEventID(ctx, result.Shift.ID, "evt-1"))

	// Same fingerprint is a no-op and keeps the event id.
	result, err = repo.Upsert(ctx, shift)
	require.NoError(t, err)
	assert.False(t, result.Created)
	assert.False(t, result.Changed)
	require.NotNil(t, result.Shift.CalendarEventID)
	assert.Equal(t, "evt-1", *result.Shift.CalendarEventID)

	// A changed fingerprint rewrites the row but preserves the event id.
	shift.RawText = "0900-1700"
	shift.Fingerprint = "2222222222222222222222222222222222222222222222222222222222222222"
	result, err = repo.Upsert(ctx, shift)
	require.NoError(t, err)
	assert.False(t, result.Created)
	assert.True(t, result.Changed)
	assert.Equal(t, "0900-1700", result.Shift.RawText)
	require.NotNil(t, result.Shift.CalendarEventID)
	assert.Equal(t, "evt-1", *result.Shift.CalendarEventID)
}

func TestShiftRepository_DeleteBefore(t *testing.T) {
	ctx := context.Background()
	repoTestInit(t)
	repo := postgresql.NewShiftRepository(testDB)

	member := createTestStaff(t, ctx)
	old := testShift(member.ID)
	old.Date = time.Date(2025, time.June, 1, 0, 0, 0, 0, time.UTC)
	_, err := repo.Upsert(ctx, old)
	require.NoError(t, err)
	current := testShift(member.ID)
	_, err = repo.Upsert(ctx, current)
	require.NoError(t, err)

	deleted, err := repo.DeleteBefore(ctx, member.ID, time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Equal(t, int64(1), deleted)

	shifts, err := repo.ListByStaff(ctx, member.ID, 0)
	require.NoError(t, err)
	assert.Len(t, shifts, 1)
}
