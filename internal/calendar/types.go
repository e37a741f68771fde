package calendar

import (
	"time"

	calendar "google.golang.org/api/calendar/v3"

	"github.com/larkvale/voicedesk/internal/scheduling"
)

const allDayLayout = "2006-01-02"

// toEventRecord converts a Google Calendar event to a provider-neutral
// record. Timed events carry DateTime; all-day events carry only Date.
func toEventRecord(event *calendar.Event) scheduling.EventRecord {
	record := scheduling.EventRecord{
		ID:    event.Id,
		Title: event.Summary,
		Link:  event.HtmlLink,
	}

	if event.Start != nil {
		if event.Start.DateTime != "" {
			if t, err := time.Parse(time.RFC3339, event.Start.DateTime); err == nil {
				record.Start = t.UTC()
			}
		} else if event.Start.Date != "" {
			if t, err := time.Parse(allDayLayout, event.Start.Date); err == nil {
				record.Start = t
				record.AllDay = true
			}
		}
	}

	if event.End != nil {
		if event.End.DateTime != "" {
			if t, err := time.Parse(time.RFC3339, event.End.DateTime); err == nil {
				record.End = t.UTC()
			}
		} else if event.End.Date != "" {
			if t, err := time.Parse(allDayLayout, event.End.Date); err == nil {
				record.End = t
			}
		}
	}

	return record
}

func toBusyIntervals(busy []*calendar.TimePeriod) []scheduling.BusyInterval {
	var intervals []scheduling.BusyInterval
	for _, p := range busy {
		start, err := time.Parse(time.RFC3339, p.Start)
		if err != nil {
			continue
		}
		end, err := time.Parse(time.RFC3339, p.End)
		if err != nil {
			continue
		}
		intervals = append(intervals, scheduling.BusyInterval{
			Start: start.UTC(),
			End:   end.UTC(),
		})
	}
	return intervals
}
