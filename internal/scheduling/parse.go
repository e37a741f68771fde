package scheduling

import (
	"strconv"
	"time"
)

const (
	dateLayout = "2006-01-02"
	timeLayout = "15:04"
)

// ParseRange builds a UTC time range from a calendar date, a wall
// clock time and a duration in minutes. Dates and times arrive from
// the language model already normalized to ISO shapes; anything else
// is rejected with a ValidationError.
func ParseRange(date, clock string, durationMinutes int) (TimeRange, error) {
	day, err := time.ParseInLocation(dateLayout, date, time.UTC)
	if err != nil {
		return TimeRange{}, &ValidationError{
			Field:  "date",
			Value:  date,
			Reason: "expected YYYY-MM-DD",
		}
	}

	wall, err := time.ParseInLocation(timeLayout, clock, time.UTC)
	if err != nil {
		return TimeRange{}, &ValidationError{
			Field:  "time",
			Value:  clock,
			Reason: "expected HH:MM in 24-hour form",
		}
	}

	if durationMinutes <= 0 {
		return TimeRange{}, &ValidationError{
			Field:  "duration",
			Value:  strconv.Itoa(durationMinutes),
			Reason: "must be a positive number of minutes",
		}
	}

	start := time.Date(day.Year(), day.Month(), day.Day(),
		wall.Hour(), wall.Minute(), 0, 0, time.UTC)
	return TimeRange{
		Start: start,
		End:   start.Add(time.Duration(durationMinutes) * time.Minute),
	}, nil
}

// ParseSpan builds a UTC time range from a date and explicit start and
// end clock times on that date.
func ParseSpan(date, startClock, endClock string) (TimeRange, error) {
	day, err := time.ParseInLocation(dateLayout, date, time.UTC)
	if err != nil {
		return TimeRange{}, &ValidationError{
			Field:  "date",
			Value:  date,
			Reason: "expected YYYY-MM-DD",
		}
	}

	start, err := parseClockOn(day, startClock)
	if err != nil {
		return TimeRange{}, &ValidationError{
			Field:  "start_time",
			Value:  startClock,
			Reason: "expected HH:MM in 24-hour form",
		}
	}

	end, err := parseClockOn(day, endClock)
	if err != nil {
		return TimeRange{}, &ValidationError{
			Field:  "end_time",
			Value:  endClock,
			Reason: "expected HH:MM in 24-hour form",
		}
	}

	if !end.After(start) {
		return TimeRange{}, &ValidationError{
			Field:  "end_time",
			Value:  endClock,
			Reason: "must be after the start time",
		}
	}

	return TimeRange{Start: start, End: end}, nil
}

func parseClockOn(day time.Time, clock string) (time.Time, error) {
	wall, err := time.ParseInLocation(timeLayout, clock, time.UTC)
	if err != nil {
		return time.Time{}, err
	}
	return time.Date(day.Year(), day.Month(), day.Day(),
		wall.Hour(), wall.Minute(), 0, 0, time.UTC), nil
}
