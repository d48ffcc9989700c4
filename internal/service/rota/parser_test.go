package rota

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rotasync/rotasync-backend-go/internal/domain/rota"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeGrid struct {
	rows [][]string
	err  error
}

func (g *fakeGrid) ReadGrid(ctx context.Context) ([][]string, error) {
	return g.rows, g.err
}

func TestTableParser_ParsesFixtureGrid(t *testing.T) {
	grid := &fakeGrid{rows: [][]string{
		{"Rota March 2026", "", ""},
		// Before the lookback window: this block must be ignored entirely.
		{"", "", "Mon 23 Feb", "Tue 24 Feb", "Wed 25 Feb"},
		{"Week 1", "Dr. Rachel Kerry!", "0800-1700", "AL", "OFF"},
		// Current block.
		{"", "", "Mon 9 Mar", "Tue 10 Mar", "Wed 11 Mar"},
		{"Changeover", "Dr. Rachel Kerry!", "0900-1700", "AL", "OFF"},
		{"Week 3", "Dr. Rachel Kerry!", "0800-1700", "AL", "Long day"},
		{"Week 3", "", "0800-1200", "OFF", "OFF"},
		{"Week 3", "Tom O'Neill 2", "2200-0830", "*N/A", "TR"},
	}}
	parser := NewTableParser(grid, 7, nil, fixedNow(2026, time.March, 9))

	shifts, err := parser.Parse(context.Background())

	require.NoError(t, err)
	require.Len(t, shifts, 6)

	kerry := shifts[:3]
	assert.Equal(t, "DrRachelKerry", kerry[0].Name)
	assert.Equal(t, time.Date(2026, time.March, 9, 0, 0, 0, 0, time.UTC), kerry[0].Date)
	assert.Equal(t, rota.CategoryRegular, kerry[0].Category)
	assert.True(t, kerry[0].IsWorking)
	require.NotNil(t, kerry[0].Start)
	assert.Equal(t, 8, kerry[0].Start.Hour())
	require.NotNil(t, kerry[0].End)
	assert.Equal(t, 17, kerry[0].End.Hour())

	assert.Equal(t, rota.CategoryAnnualLeave, kerry[1].Category)
	assert.False(t, kerry[1].IsWorking)
	assert.Nil(t, kerry[1].Start)

	// Unparseable text on a dated column is still a working day.
	assert.Equal(t, "Long day", kerry[2].RawText)
	assert.Equal(t, rota.CategoryUnknownWorking, kerry[2].Category)
	assert.True(t, kerry[2].IsWorking)

	oneill := shifts[3:]
	assert.Equal(t, "TomONeill", oneill[0].Name)
	require.NotNil(t, oneill[0].End)
	assert.Equal(t, time.Date(2026, time.March, 10, 8, 30, 0, 0, time.UTC), *oneill[0].End)
	assert.Equal(t, rota.CategoryNotAvailable, oneill[1].Category)
	assert.Equal(t, rota.CategoryTraining, oneill[2].Category)
	assert.True(t, oneill[2].IsWorking)
}

func TestTableParser_ShiftTimesUseRotaTimezone(t *testing.T) {
	dublin, err := time.LoadLocation("Europe/Dublin")
	require.NoError(t, err)
	grid := &fakeGrid{rows: [][]string{
		{"", "", "Mon 15 Jun", "Tue 16 Jun", "Wed 17 Jun"},
		{"Week 1", "DrRachelKerry", "0800-1700", "", ""},
	}}
	parser := NewTableParser(grid, 7, dublin, fixedNow(2026, time.June, 15))

	shifts, err := parser.Parse(context.Background())

	require.NoError(t, err)
	require.Len(t, shifts, 1)
	// Dates stay UTC keys; the times carry the rota's local wall clock.
	assert.Equal(t, time.Date(2026, time.June, 15, 0, 0, 0, 0, time.UTC), shifts[0].Date)
	require.NotNil(t, shifts[0].Start)
	assert.Equal(t, time.Date(2026, time.June, 15, 8, 0, 0, 0, dublin), *shifts[0].Start)
}

func TestTableParser_SkipsRowsBeforeFirstDateRow(t *testing.T) {
	grid := &fakeGrid{rows: [][]string{
		{"Week 1", "DrRachelKerry", "0800-1700", "AL", "OFF"},
		{"", "", "Mon 9 Mar", "Tue 10 Mar", "Wed 11 Mar"},
		{"Week 1", "DrRachelKerry", "0800-1700", "", ""},
	}}
	parser := NewTableParser(grid, 7, nil, fixedNow(2026, time.March, 9))

	shifts, err := parser.Parse(context.Background())

	require.NoError(t, err)
	require.Len(t, shifts, 1)
	assert.Equal(t, time.Date(2026, time.March, 9, 0, 0, 0, 0, time.UTC), shifts[0].Date)
}

func TestTableParser_StaysInWindowOnceEntered(t *testing.T) {
	// A stale date row after the current block must not silence later rows.
	grid := &fakeGrid{rows: [][]string{
		{"", "", "Mon 9 Mar", "Tue 10 Mar", "Wed 11 Mar"},
		{"Week 3", "DrRachelKerry", "0800-1700", "", ""},
		{"", "", "Mon 23 Feb", "Tue 24 Feb", "Wed 25 Feb"},
		{"Week 1", "DrRachelKerry", "", "AL", ""},
	}}
	parser := NewTableParser(grid, 7, nil, fixedNow(2026, time.March, 9))

	shifts, err := parser.Parse(context.Background())

	require.NoError(t, err)
	require.Len(t, shifts, 2)
	assert.Equal(t, rota.CategoryAnnualLeave, shifts[1].Category)
	assert.Equal(t, time.Date(2026, time.February, 24, 0, 0, 0, 0, time.UTC), shifts[1].Date)
}

func TestTableParser_ShortRowsIgnored(t *testing.T) {
	grid := &fakeGrid{rows: [][]string{
		{"", "", "Mon 9 Mar", "Tue 10 Mar", "Wed 11 Mar"},
		{"Week 3", "DrRachelKerry"},
		{},
	}}
	parser := NewTableParser(grid, 7, nil, fixedNow(2026, time.March, 9))

	shifts, err := parser.Parse(context.Background())

	require.NoError(t, err)
	assert.Empty(t, shifts)
}

func TestTableParser_GridFailure(t *testing.T) {
	grid := &fakeGrid{err: errors.New("quota exceeded")}
	parser := NewTableParser(grid, 7, nil, fixedNow(2026, time.March, 9))

	_, err := parser.Parse(context.Background())

	assert.ErrorIs(t, err, rota.ErrGridUnavailable)
}

func TestExtractName(t *testing.T) {
	assert.Equal(t, "DrRachelKerry", extractName("Dr. Rachel Kerry!"))
	assert.Equal(t, "TomONeill", extractName("Tom O'Neill 2"))
	assert.Equal(t, "", extractName("123 !?"))
}
