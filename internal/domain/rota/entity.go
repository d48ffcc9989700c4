package rota

import (
	"strings"
	"time"
)

// Shift is one person's entry for one calendar date, as parsed from the
// rota spreadsheet. Start/End are only set for timed working shifts and
// carry the rota's wall-clock times in its configured timezone.
type Shift struct {
	ID              string
	StaffID         string
	Name            string
	Date            time.Time // date only, midnight UTC
	RawText         string
	Category        Category
	IsWorking       bool
	Start           *time.Time
	End             *time.Time
	CalendarEventID *string
	Fingerprint     string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

type Category string

const (
	CategoryRegular        Category = "regular"
	CategoryAnnualLeave    Category = "annual_leave"
	CategoryOff            Category = "off"
	CategoryNonClinicalDay Category = "non_clinical_day"
	CategoryPostNights     Category = "post_nights"
	CategoryPreNight       Category = "pre_night"
	CategoryTraining       Category = "training"
	CategoryNotAvailable   Category = "not_available"
	// CategoryUnknownWorking marks a working day whose cell text could not
	// be parsed as a time range. The day still needs a calendar entry, just
	// without precise hours.
	CategoryUnknownWorking Category = "unknown_working"
)

var CategoryValues = []string{
	string(CategoryRegular),
	string(CategoryAnnualLeave),
	string(CategoryOff),
	string(CategoryNonClinicalDay),
	string(CategoryPostNights),
	string(CategoryPreNight),
	string(CategoryTraining),
	string(CategoryNotAvailable),
	string(CategoryUnknownWorking),
}

// specialCells maps well-known cell codes to a category and whether the
// code counts as attendance. Matching is case-insensitive on the trimmed
// cell text.
var specialCells = map[string]struct {
	Category  Category
	IsWorking bool
}{
	"AL":            {CategoryAnnualLeave, false},
	"OFF":           {CategoryOff, false},
	"NCD":           {CategoryNonClinicalDay, false},
	"POST NIGHTS":   {CategoryPostNights, false},
	"PRE NIGHT OFF": {CategoryPreNight, false},
	"PRE NIGHT":     {CategoryPreNight, false},
	"TR":            {CategoryTraining, true},
	"*N/A":          {CategoryNotAvailable, false},
	"/":             {CategoryNotAvailable, false},
}

// CategoryFromCell looks up a cell's text in the fixed code table.
func CategoryFromCell(cell string) (Category, bool, bool) {
	entry, ok := specialCells[strings.ToUpper(strings.TrimSpace(cell))]
	if !ok {
		return "", false, false
	}
	return entry.Category, entry.IsWorking, true
}

// Title returns a human-readable label for the category, suitable for an
// event summary ("annual_leave" -> "Annual Leave").
func (c Category) Title() string {
	words := strings.Split(string(c), "_")
	for i, w := range words {
		if w == "" {
			continue
		}
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
