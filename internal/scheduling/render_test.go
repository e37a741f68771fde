package scheduling

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRenderCurrentDateTime(t *testing.T) {
	now := time.Date(2025, 8, 1, 14, 30, 0, 0, time.UTC)
	assert.Equal(t,
		"The current date and time is Friday, August 01, 2025 at 02:30 PM",
		RenderCurrentDateTime(now))
}

func TestRenderAvailabilityFree(t *testing.T) {
	res := &AvailabilityResult{
		Range: TimeRange{
			Start: time.Date(2025, 8, 1, 14, 0, 0, 0, time.UTC),
			End:   time.Date(2025, 8, 1, 15, 0, 0, 0, time.UTC),
		},
	}
	assert.Equal(t,
		"Good news! You're available on August 01 from 02:00 PM to 03:00 PM.",
		res.Render())
}

func TestRenderAvailabilityConflicts(t *testing.T) {
	res := &AvailabilityResult{
		Range: TimeRange{
			Start: time.Date(2025, 8, 1, 14, 0, 0, 0, time.UTC),
			End:   time.Date(2025, 8, 1, 15, 0, 0, 0, time.UTC),
		},
		Conflicts: []BusyInterval{{
			Start: time.Date(2025, 8, 1, 14, 30, 0, 0, time.UTC),
			End:   time.Date(2025, 8, 1, 14, 45, 0, 0, time.UTC),
		}},
	}
	assert.Equal(t,
		"Sorry, you have conflicts on August 01 from 02:30 PM to 02:45 PM.",
		res.Render())
}

func TestRenderAvailabilityMultipleConflicts(t *testing.T) {
	res := &AvailabilityResult{
		Range: TimeRange{
			Start: time.Date(2025, 8, 1, 13, 0, 0, 0, time.UTC),
			End:   time.Date(2025, 8, 1, 17, 0, 0, 0, time.UTC),
		},
		Conflicts: []BusyInterval{
			{
				Start: time.Date(2025, 8, 1, 13, 30, 0, 0, time.UTC),
				End:   time.Date(2025, 8, 1, 14, 0, 0, 0, time.UTC),
			},
			{
				Start: time.Date(2025, 8, 1, 16, 0, 0, 0, time.UTC),
				End:   time.Date(2025, 8, 1, 16, 30, 0, 0, time.UTC),
			},
		},
	}
	assert.Equal(t,
		"Sorry, you have conflicts on August 01 from 01:30 PM to 02:00 PM and 04:00 PM to 04:30 PM.",
		res.Render())
}

func TestRenderBookEvent(t *testing.T) {
	res := &BookingResult{
		Title: "Dentist appointment",
		Range: TimeRange{
			Start: time.Date(2025, 8, 1, 14, 0, 0, 0, time.UTC),
			End:   time.Date(2025, 8, 1, 14, 30, 0, 0, time.UTC),
		},
		DurationMinutes: 30,
	}
	assert.Equal(t,
		"Successfully added 'Dentist appointment' to your calendar on August 01 at 02:00 PM for 30 minutes.",
		res.Render())
}

func TestRenderListing(t *testing.T) {
	standup := EventRecord{
		Title: "Standup",
		Start: time.Date(2025, 8, 2, 9, 0, 0, 0, time.UTC),
	}
	offsite := EventRecord{
		Title:  "Team offsite",
		Start:  time.Date(2025, 8, 4, 0, 0, 0, 0, time.UTC),
		AllDay: true,
	}
	untitled := EventRecord{
		Start: time.Date(2025, 8, 5, 16, 15, 0, 0, time.UTC),
	}

	tests := []struct {
		name string
		res  ListingResult
		want string
	}{
		{
			name: "empty",
			res:  ListingResult{DaysAhead: 7},
			want: "You have no upcoming events in the next 7 days.",
		},
		{
			name: "single",
			res:  ListingResult{DaysAhead: 7, Events: []EventRecord{standup}},
			want: "You have 1 upcoming event: Standup on August 02 at 09:00 AM",
		},
		{
			name: "multiple with all-day and untitled",
			res:  ListingResult{DaysAhead: 7, Events: []EventRecord{standup, offsite, untitled}},
			want: "You have 3 upcoming events: Standup on August 02 at 09:00 AM, " +
				"Team offsite on August 04 (All day), " +
				"No title on August 05 at 04:15 PM",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.res.Render())
		})
	}
}
