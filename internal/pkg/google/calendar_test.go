package google

import (
	"testing"
	"time"

	"github.com/rotasync/rotasync-backend-go/internal/domain/calendar"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dublinClient(t *testing.T) (*CalendarClient, *time.Location) {
	t.Helper()
	loc, err := time.LoadLocation("Europe/Dublin")
	require.NoError(t, err)
	return &CalendarClient{location: loc}, loc
}

func TestToResource_TimedEventKeepsWallClock(t *testing.T) {
	client, dublin := dublinClient(t)

	// Mid-June: Irish Summer Time, UTC+1.
	start := time.Date(2026, time.June, 15, 8, 0, 0, 0, dublin)
	end := time.Date(2026, time.June, 15, 17, 0, 0, 0, dublin)
	desc := calendar.EventDescriptor{
		Summary:     "Work (08:00 - 17:00)",
		Description: "DrRachelKerry - 2026-06-15\n0800-1700",
		Start:       &start,
		End:         &end,
		Timezone:    "Europe/Dublin",
	}

	resource := client.toResource(desc)

	require.NotNil(t, resource.Start)
	assert.Equal(t, "2026-06-15T08:00:00+01:00", resource.Start.DateTime)
	assert.Equal(t, "Europe/Dublin", resource.Start.TimeZone)
	require.NotNil(t, resource.End)
	assert.Equal(t, "2026-06-15T17:00:00+01:00", resource.End.DateTime)
}

func TestToResource_AllDayEventSpansOneDay(t *testing.T) {
	client, _ := dublinClient(t)

	date := time.Date(2026, time.June, 15, 0, 0, 0, 0, time.UTC)
	desc := calendar.EventDescriptor{
		Summary:    "Annual Leave",
		AllDayDate: &date,
	}

	resource := client.toResource(desc)

	require.NotNil(t, resource.Start)
	assert.Equal(t, "2026-06-15", resource.Start.Date)
	require.NotNil(t, resource.End)
	assert.Equal(t, "2026-06-16", resource.End.Date)
}

func TestToEvent_TimedRoundTripMatches(t *testing.T) {
	client, dublin := dublinClient(t)

	start := time.Date(2026, time.June, 15, 8, 0, 0, 0, dublin)
	end := time.Date(2026, time.June, 15, 17, 0, 0, 0, dublin)
	desc := calendar.EventDescriptor{
		Summary:     "Work (08:00 - 17:00)",
		Description: "DrRachelKerry - 2026-06-15\n0800-1700",
		Start:       &start,
		End:         &end,
		Timezone:    "Europe/Dublin",
	}

	resource := client.toResource(desc)
	resource.ID = "evt1"
	event := client.toEvent(resource)

	require.NotNil(t, event.Start)
	assert.Equal(t, 8, event.Start.Hour())
	assert.True(t, event.Matches(desc))
}

func TestToEvent_AllDayRoundTripMatches(t *testing.T) {
	client, _ := dublinClient(t)

	date := time.Date(2026, time.June, 15, 0, 0, 0, 0, time.UTC)
	desc := calendar.EventDescriptor{
		Summary:     "Annual Leave",
		Description: "DrRachelKerry - 2026-06-15\nAL",
		AllDayDate:  &date,
	}

	event := client.toEvent(client.toResource(desc))

	require.NotNil(t, event.AllDayDate)
	assert.Equal(t, date, *event.AllDayDate)
	require.NotNil(t, event.AllDayEnd)
	assert.True(t, event.Matches(desc))
}

func TestToEvent_MultiDayAllDayDoesNotMatchSingleDay(t *testing.T) {
	client, _ := dublinClient(t)

	date := time.Date(2026, time.June, 15, 0, 0, 0, 0, time.UTC)
	desc := calendar.EventDescriptor{
		Summary:     "Annual Leave",
		Description: "DrRachelKerry - 2026-06-15\nAL",
		AllDayDate:  &date,
	}

	resource := client.toResource(desc)
	resource.End.Date = "2026-06-18"
	event := client.toEvent(resource)

	assert.False(t, event.Matches(desc))
}
