// Package rota turns the loosely structured rota spreadsheet into
// normalized shift records. The grid is scanned top to bottom: date header
// rows establish a column->date map, and every following data row yields
// one shift per dated column for the person named in the row.
package rota

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"
	"unicode"

	"github.com/rotasync/rotasync-backend-go/internal/domain/rota"
)

// GridSource supplies the raw spreadsheet grid. Rows may have differing
// lengths; absent cells are treated as empty.
type GridSource interface {
	ReadGrid(ctx context.Context) ([][]string, error)
}

type parserState int

const (
	// stateBeforeWindow: scanning historical rows that predate the
	// configured lookback window. Data rows are ignored.
	stateBeforeWindow parserState = iota
	// stateInWindow: a date row at or past the cutoff has been seen.
	// The parser never leaves this state.
	stateInWindow
)

// TableParser drives the grid scan using the date row classifier and the
// time range parser.
type TableParser struct {
	grid       GridSource
	classifier *DateRowClassifier
	timeRanges *TimeRangeParser
	windowDays int
	now        func() time.Time
}

// NewTableParser builds a parser over grid. windowDays is how far into
// the past rota rows are still considered relevant. loc is the rota's
// timezone for shift start/end times (nil means UTC); dates themselves
// stay midnight-UTC keys. now may be nil for the wall clock.
func NewTableParser(grid GridSource, windowDays int, loc *time.Location, now func() time.Time) *TableParser {
	if now == nil {
		now = time.Now
	}
	return &TableParser{
		grid:       grid,
		classifier: NewDateRowClassifier(now),
		timeRanges: NewTimeRangeParser(loc),
		windowDays: windowDays,
		now:        now,
	}
}

// Parse reads the grid and returns the shifts in scan order. A grid read
// failure aborts the whole run; individual unparseable cells never do.
func (p *TableParser) Parse(ctx context.Context) ([]rota.Shift, error) {
	grid, err := p.grid.ReadGrid(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", rota.ErrGridUnavailable, err)
	}
	slog.Info("Read rota grid", "rows", len(grid))

	var (
		shifts       []rota.Shift
		currentDates []time.Time
		state        = stateBeforeWindow
		cutoff       = p.now().AddDate(0, 0, -p.windowDays)
	)

	for _, row := range grid {
		if len(row) < 3 {
			continue
		}

		if p.classifier.IsDateRow(row) {
			currentDates = p.classifier.DatesForRow(row)
			if state == stateBeforeWindow {
				for _, date := range currentDates {
					if !date.IsZero() && !date.Before(cutoff) {
						state = stateInWindow
						break
					}
				}
			}
			continue
		}

		if state == stateBeforeWindow {
			continue
		}

		if p.shouldSkipRow(row) {
			continue
		}

		name := extractName(row[1])
		if name == "" {
			continue
		}

		for i, cell := range row {
			if i >= len(currentDates) || currentDates[i].IsZero() {
				continue
			}
			if shift, ok := p.parseShift(name, currentDates[i], cell); ok {
				shifts = append(shifts, shift)
			}
		}
	}

	slog.Info("Parsed rota", "shifts", len(shifts))
	return shifts, nil
}

// shouldSkipRow filters changeover markers and rows with a blank name cell.
func (p *TableParser) shouldSkipRow(row []string) bool {
	if strings.Contains(row[0], "Changeover") {
		return true
	}
	return strings.TrimSpace(row[1]) == ""
}

// extractName keeps only the alphabetic characters of the name cell,
// discarding honorifics, punctuation and digits.
func extractName(cell string) string {
	var b strings.Builder
	for _, r := range cell {
		if unicode.IsLetter(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// parseShift classifies one cell. Well-known codes win over time parsing;
// anything else that parses as a time range is a regular timed shift; the
// remainder is an unknown working day that still needs a calendar entry.
func (p *TableParser) parseShift(name string, date time.Time, cell string) (rota.Shift, bool) {
	trimmed := strings.TrimSpace(cell)
	if trimmed == "" {
		return rota.Shift{}, false
	}

	shift := rota.Shift{
		Name:    name,
		Date:    date,
		RawText: trimmed,
	}

	if category, isWorking, ok := rota.CategoryFromCell(trimmed); ok {
		shift.Category = category
		shift.IsWorking = isWorking
		return shift, true
	}

	start, end, err := p.timeRanges.ParseRange(trimmed, date)
	if err != nil {
		slog.Debug("Cell is not a time range, keeping as unknown working day",
			"name", name, "date", date.Format("2006-01-02"), "cell", trimmed)
		shift.Category = rota.CategoryUnknownWorking
		shift.IsWorking = true
		return shift, true
	}

	shift.Category = rota.CategoryRegular
	shift.IsWorking = true
	shift.Start = &start
	shift.End = &end
	return shift, true
}
