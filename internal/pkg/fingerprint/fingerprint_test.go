package fingerprint

import (
	"testing"
	"time"

	"github.com/rotasync/rotasync-backend-go/internal/domain/rota"
	"github.com/stretchr/testify/assert"
)

func timedShift() rota.Shift {
	start := time.Date(2026, time.March, 9, 8, 0, 0, 0, time.UTC)
	end := time.Date(2026, time.March, 9, 17, 0, 0, 0, time.UTC)
	return rota.Shift{
		Name:      "DrRachelKerry",
		Date:      time.Date(2026, time.March, 9, 0, 0, 0, 0, time.UTC),
		RawText:   "0800-1700",
		Category:  rota.CategoryRegular,
		IsWorking: true,
		Start:     &start,
		End:       &end,
	}
}

func TestSum_Deterministic(t *testing.T) {
	a := Sum(timedShift())
	b := Sum(timedShift())

	assert.Equal(t, a, b)
	assert.Len(t, a, 64)
}

func TestSum_SensitiveToEachSemanticField(t *testing.T) {
	base := Sum(timedShift())

	mutations := map[string]func(*rota.Shift){
		"name":     func(s *rota.Shift) { s.Name = "TomONeill" },
		"date":     func(s *rota.Shift) { s.Date = s.Date.AddDate(0, 0, 1) },
		"raw text": func(s *rota.Shift) { s.RawText = "08:00 - 17:00" },
		"category": func(s *rota.Shift) { s.Category = rota.CategoryUnknownWorking },
		"working":  func(s *rota.Shift) { s.IsWorking = false },
		"start":    func(s *rota.Shift) { shifted := s.Start.Add(30 * time.Minute); s.Start = &shifted },
		"end":      func(s *rota.Shift) { s.End = nil },
	}
	for field, mutate := range mutations {
		shift := timedShift()
		mutate(&shift)
		assert.NotEqual(t, base, Sum(shift), "changing %s must change the digest", field)
	}
}

func TestSum_IgnoresStorageOnlyFields(t *testing.T) {
	base := Sum(timedShift())

	shift := timedShift()
	shift.ID = "11111111-1111-1111-1111-111111111111"
	shift.StaffID = "22222222-2222-2222-2222-222222222222"
	eventID := "evt123"
	shift.CalendarEventID = &eventID
	shift.Fingerprint = "stale"
	shift.CreatedAt = time.Now()
	shift.UpdatedAt = time.Now()

	assert.Equal(t, base, Sum(shift))
}

func TestSum_NilAndSetTimesDiffer(t *testing.T) {
	allDay := timedShift()
	allDay.Start = nil
	allDay.End = nil

	assert.NotEqual(t, Sum(timedShift()), Sum(allDay))
}
