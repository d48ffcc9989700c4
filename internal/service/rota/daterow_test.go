package rota

import (
	"testing"
	"time"

	"github.com/rotasync/rotasync-backend-go/internal/domain/rota"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixedNow(year int, month time.Month, day int) func() time.Time {
	return func() time.Time {
		return time.Date(year, month, day, 12, 0, 0, 0, time.UTC)
	}
}

func TestDateRowClassifier_ParseDateLayouts(t *testing.T) {
	classifier := NewDateRowClassifier(fixedNow(2026, time.March, 9))

	cases := map[string]time.Time{
		"Mon 9 Mar":  time.Date(2026, time.March, 9, 0, 0, 0, 0, time.UTC),
		"March 15":   time.Date(2026, time.March, 15, 0, 0, 0, 0, time.UTC),
		"15 March":   time.Date(2026, time.March, 15, 0, 0, 0, 0, time.UTC),
		"15/6":       time.Date(2026, time.June, 15, 0, 0, 0, 0, time.UTC),
		"15-6":       time.Date(2026, time.June, 15, 0, 0, 0, 0, time.UTC),
		"15-Jun":     time.Date(2026, time.June, 15, 0, 0, 0, 0, time.UTC),
		" 9 April  ": time.Date(2026, time.April, 9, 0, 0, 0, 0, time.UTC),
	}
	for cell, want := range cases {
		got, err := classifier.ParseDate(cell)
		require.NoError(t, err, "cell %q", cell)
		assert.Equal(t, want, got, "cell %q", cell)
	}
}

func TestDateRowClassifier_ParseDateIgnoresWrittenWeekday(t *testing.T) {
	classifier := NewDateRowClassifier(fixedNow(2026, time.March, 9))

	// Rotas routinely carry the wrong weekday name; only day and month count.
	got, err := classifier.ParseDate("Fri 9 Mar")

	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, time.March, 9, 0, 0, 0, 0, time.UTC), got)
}

func TestDateRowClassifier_SlashNotationIsDayFirst(t *testing.T) {
	classifier := NewDateRowClassifier(fixedNow(2026, time.March, 9))

	got, err := classifier.ParseDate("01/02")

	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, time.February, 1, 0, 0, 0, 0, time.UTC), got)
}

func TestDateRowClassifier_YearRollsForwardAcrossBoundary(t *testing.T) {
	// Late in the year, a January header belongs to the next year.
	classifier := NewDateRowClassifier(fixedNow(2026, time.December, 1))

	got, err := classifier.ParseDate("5 January")

	require.NoError(t, err)
	assert.Equal(t, time.Date(2027, time.January, 5, 0, 0, 0, 0, time.UTC), got)
}

func TestDateRowClassifier_RecentPastKeepsCurrentYear(t *testing.T) {
	// Within the 90 day grace window the current year stands.
	classifier := NewDateRowClassifier(fixedNow(2026, time.March, 9))

	got, err := classifier.ParseDate("1 February")

	require.NoError(t, err)
	assert.Equal(t, 2026, got.Year())
}

func TestDateRowClassifier_ParseDateRejectsNonDates(t *testing.T) {
	classifier := NewDateRowClassifier(fixedNow(2026, time.March, 9))

	for _, cell := range []string{"", "Week 1", "0800-1700", "DrRachelKerry", "AL"} {
		_, err := classifier.ParseDate(cell)
		assert.ErrorIs(t, err, rota.ErrNotADate, "cell %q", cell)
	}
}

func TestDateRowClassifier_IsDateRow(t *testing.T) {
	classifier := NewDateRowClassifier(fixedNow(2026, time.March, 9))

	assert.True(t, classifier.IsDateRow([]string{"", "", "Mon 9 Mar", "Tue 10 Mar", "Wed 11 Mar"}))
	assert.True(t, classifier.IsDateRow([]string{"junk", "9 March", "10 March", "11 March"}))

	// Two parseable cells is not enough.
	assert.False(t, classifier.IsDateRow([]string{"", "", "Mon 9 Mar", "Tue 10 Mar", "notes"}))
	assert.False(t, classifier.IsDateRow([]string{"Week 1", "DrRachelKerry", "0800-1700"}))
}

func TestDateRowClassifier_DatesForRow(t *testing.T) {
	classifier := NewDateRowClassifier(fixedNow(2026, time.March, 9))

	dates := classifier.DatesForRow([]string{"Week 2", "", "Mon 9 Mar", "Tue 10 Mar", "notes"})

	require.Len(t, dates, 5)
	assert.True(t, dates[0].IsZero())
	assert.True(t, dates[1].IsZero())
	assert.Equal(t, time.Date(2026, time.March, 9, 0, 0, 0, 0, time.UTC), dates[2])
	assert.Equal(t, time.Date(2026, time.March, 10, 0, 0, 0, 0, time.UTC), dates[3])
	assert.True(t, dates[4].IsZero())
}
