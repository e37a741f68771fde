package calendar

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	calendar "google.golang.org/api/calendar/v3"
)

func TestToEventRecordTimed(t *testing.T) {
	event := &calendar.Event{
		Id:       "evt-1",
		Summary:  "Dentist",
		HtmlLink: "https://calendar.google.com/event?eid=abc",
		Start:    &calendar.EventDateTime{DateTime: "2025-08-01T14:00:00Z"},
		End:      &calendar.EventDateTime{DateTime: "2025-08-01T15:00:00Z"},
	}

	record := toEventRecord(event)
	assert.Equal(t, "evt-1", record.ID)
	assert.Equal(t, "Dentist", record.Title)
	assert.False(t, record.AllDay)
	assert.Equal(t, time.Date(2025, 8, 1, 14, 0, 0, 0, time.UTC), record.Start)
	assert.Equal(t, time.Date(2025, 8, 1, 15, 0, 0, 0, time.UTC), record.End)
}

func TestToEventRecordNormalizesZone(t *testing.T) {
	event := &calendar.Event{
		Start: &calendar.EventDateTime{DateTime: "2025-08-01T16:00:00+02:00"},
		End:   &calendar.EventDateTime{DateTime: "2025-08-01T17:00:00+02:00"},
	}

	record := toEventRecord(event)
	assert.Equal(t, time.Date(2025, 8, 1, 14, 0, 0, 0, time.UTC), record.Start)
	assert.Equal(t, time.UTC, record.Start.Location())
}

func TestToEventRecordAllDay(t *testing.T) {
	event := &calendar.Event{
		Id:      "evt-2",
		Summary: "Team offsite",
		Start:   &calendar.EventDateTime{Date: "2025-08-04"},
		End:     &calendar.EventDateTime{Date: "2025-08-05"},
	}

	record := toEventRecord(event)
	assert.True(t, record.AllDay)
	assert.Equal(t, time.Date(2025, 8, 4, 0, 0, 0, 0, time.UTC), record.Start)
}

func TestToBusyIntervals(t *testing.T) {
	busy := []*calendar.TimePeriod{
		{Start: "2025-08-01T14:30:00Z", End: "2025-08-01T14:45:00Z"},
		{Start: "not-a-time", End: "2025-08-01T16:00:00Z"},
		{Start: "2025-08-01T17:00:00+02:00", End: "2025-08-01T18:00:00+02:00"},
	}

	intervals := toBusyIntervals(busy)
	require.Len(t, intervals, 2)
	assert.Equal(t, time.Date(2025, 8, 1, 14, 30, 0, 0, time.UTC), intervals[0].Start)
	assert.Equal(t, time.Date(2025, 8, 1, 15, 0, 0, 0, time.UTC), intervals[1].Start)
}
