package rota

import (
	"strings"
	"time"

	"github.com/rotasync/rotasync-backend-go/internal/domain/rota"
)

// dateLayouts are the header-cell notations seen on real rotas, tried in
// order. None carry a year; the classifier attaches one. Ambiguous cells
// ("01/02") resolve to the first matching layout. That priority is a
// deliberate, documented choice.
var dateLayouts = []string{
	"Mon 2 Jan",
	"January 2",
	"2 January",
	"2/1",
	"2-1",
	"2-Jan",
}

// minDateCells is how many cells must parse as dates before a row counts
// as a date header row.
const minDateCells = 3

// DateRowClassifier decides whether a grid row is a date header row and
// resolves a calendar date per column.
type DateRowClassifier struct {
	now func() time.Time
}

func NewDateRowClassifier(now func() time.Time) *DateRowClassifier {
	if now == nil {
		now = time.Now
	}
	return &DateRowClassifier{now: now}
}

// ParseDate parses a single header cell. The parsed month/day gets the
// current year; if that lands more than 90 days in the past the rota has
// wrapped a year boundary, so the year rolls forward by one.
func (c *DateRowClassifier) ParseDate(cell string) (time.Time, error) {
	trimmed := strings.TrimSpace(cell)
	for _, layout := range dateLayouts {
		parsed, err := time.Parse(layout, trimmed)
		if err != nil {
			continue
		}

		nowAt := c.now()
		target := time.Date(nowAt.Year(), parsed.Month(), parsed.Day(), 0, 0, 0, 0, time.UTC)
		if target.Before(nowAt.AddDate(0, 0, -90)) {
			target = time.Date(nowAt.Year()+1, parsed.Month(), parsed.Day(), 0, 0, 0, 0, time.UTC)
		}
		return target, nil
	}
	return time.Time{}, rota.ErrNotADate
}

// IsDateRow reports whether at least minDateCells cells parse as dates.
func (c *DateRowClassifier) IsDateRow(row []string) bool {
	count := 0
	for _, cell := range row {
		if _, err := c.ParseDate(cell); err == nil {
			count++
			if count >= minDateCells {
				return true
			}
		}
	}
	return false
}

// DatesForRow maps each column index to its date. Cells that do not parse
// yield the zero time as a skip marker for that column.
func (c *DateRowClassifier) DatesForRow(row []string) []time.Time {
	dates := make([]time.Time, len(row))
	for i, cell := range row {
		if parsed, err := c.ParseDate(cell); err == nil {
			dates[i] = parsed
		}
	}
	return dates
}
