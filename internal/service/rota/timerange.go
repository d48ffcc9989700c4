package rota

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/rotasync/rotasync-backend-go/internal/domain/rota"
)

// placeholderCells are rejected before any pattern is tried. They are not
// time ranges; the category table handles them upstream.
var placeholderCells = map[string]bool{
	"":     true,
	"*n/a": true,
	"/":    true,
}

// rangeMatcher recognizes one time-range notation. Matchers are tried in
// fixed priority order and the first match wins, so overlapping notations
// resolve deterministically.
type rangeMatcher struct {
	re *regexp.Regexp
	// capturesPM means the pattern itself binds a trailing pm marker. When
	// false, a pm hint is inferred from "pm" appearing anywhere in the cell.
	capturesPM bool
}

type rangeMatch struct {
	start string
	end   string
	pm    bool
}

func (m rangeMatcher) tryParse(text string) (rangeMatch, bool) {
	groups := m.re.FindStringSubmatch(text)
	if groups == nil {
		return rangeMatch{}, false
	}
	match := rangeMatch{start: groups[1], end: groups[2]}
	if m.capturesPM {
		match.pm = strings.EqualFold(groups[3], "pm")
	} else {
		match.pm = strings.Contains(strings.ToLower(text), "pm")
	}
	return match, true
}

// The notations seen across real rotas, most specific first:
// 24h 4-digit pairs, H:MM pairs, bare hours with an explicit pm, bare
// hours, and the same bare-hour forms wrapped in "Zone N (...)" text.
var rangeMatchers = []rangeMatcher{
	{re: regexp.MustCompile(`(?i)(\d{4})\s*-\s*(\d{4})`)},
	{re: regexp.MustCompile(`(?i)(\d{1,2}[:.]\d{2})\s*-\s*(\d{1,2}[:.]\d{2})`)},
	{re: regexp.MustCompile(`(?i)(\d{1,2})\s*-\s*(\d{1,2})\s*(pm)`), capturesPM: true},
	{re: regexp.MustCompile(`(?i)(\d{1,2})\s*-\s*(\d{1,2})`)},
	{re: regexp.MustCompile(`(?i)Zone\s*\d+\s*\((\d{1,2})\s*-\s*(\d{1,2})\s*(pm)\)`), capturesPM: true},
	{re: regexp.MustCompile(`(?i)Zone\s*\d+\s*\((\d{1,2})\s*-\s*(\d{1,2})\)`)},
}

// TimeRangeParser parses a single cell's free-text time range into a
// start/end pair anchored to the shift's date. The rota states wall-clock
// times in the rota's own timezone, so parsed instants are built in loc,
// not in the date's location.
type TimeRangeParser struct {
	loc *time.Location
}

func NewTimeRangeParser(loc *time.Location) *TimeRangeParser {
	if loc == nil {
		loc = time.UTC
	}
	return &TimeRangeParser{loc: loc}
}

// ParseRange parses text into a (start, end) pair on date. The end rolls
// into the next day when it is numerically earlier than the start
// (overnight shift). Returns rota.ErrNotATimeRange when no notation
// matches.
func (p *TimeRangeParser) ParseRange(text string, date time.Time) (time.Time, time.Time, error) {
	trimmed := strings.TrimSpace(text)
	if placeholderCells[strings.ToLower(trimmed)] {
		return time.Time{}, time.Time{}, rota.ErrNotATimeRange
	}

	for _, matcher := range rangeMatchers {
		match, ok := matcher.tryParse(trimmed)
		if !ok {
			continue
		}

		startHour, startMinute, err := parseTimeComponent(match.start)
		if err != nil {
			continue
		}
		endHour, endMinute, err := parseTimeComponent(match.end)
		if err != nil {
			continue
		}

		// The pm marker applies to the end hour only: "8-6pm" is a shift
		// starting at 08:00 and ending at 18:00.
		if match.pm && endHour < 12 {
			endHour += 12
		}

		start := time.Date(date.Year(), date.Month(), date.Day(), startHour, startMinute, 0, 0, p.loc)
		end := time.Date(date.Year(), date.Month(), date.Day(), endHour, endMinute, 0, 0, p.loc)
		if end.Before(start) {
			end = end.AddDate(0, 0, 1)
		}
		return start, end, nil
	}

	return time.Time{}, time.Time{}, rota.ErrNotATimeRange
}

// parseTimeComponent normalizes one side of a range to (hour, minute).
// "0800" -> 8,0; "8.30" -> 8,30; "17:00" -> 17,0; "9" -> 9,0.
func parseTimeComponent(component string) (int, int, error) {
	clean := stripNonTimeChars(component)

	var hourStr, minuteStr string
	switch {
	case strings.Contains(clean, "."):
		hourStr, minuteStr, _ = strings.Cut(clean, ".")
	case strings.Contains(clean, ":"):
		hourStr, minuteStr, _ = strings.Cut(clean, ":")
	case len(clean) == 4:
		hourStr, minuteStr = clean[:2], clean[2:]
	default:
		hourStr = clean
	}

	hour, err := strconv.Atoi(hourStr)
	if err != nil {
		return 0, 0, err
	}
	minute := 0
	if minuteStr != "" {
		minute, err = strconv.Atoi(minuteStr)
		if err != nil {
			return 0, 0, err
		}
	}
	if hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return 0, 0, rota.ErrNotATimeRange
	}
	return hour, minute, nil
}

func stripNonTimeChars(s string) string {
	var b strings.Builder
	for _, r := range s {
		if (r >= '0' && r <= '9') || r == '.' || r == ':' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
