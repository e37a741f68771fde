package scheduling

import (
	"fmt"
	"strings"
	"time"
)

// Spoken-output layouts. These are part of the external contract: the
// rendered sentence is what the voice pipeline reads to the caller.
const (
	spokenDate     = "January 02"
	spokenClock    = "03:04 PM"
	spokenDateTime = "Monday, January 02, 2006 at 03:04 PM"
)

// RenderCurrentDateTime renders the current moment for speech.
func RenderCurrentDateTime(now time.Time) string {
	return fmt.Sprintf("The current date and time is %s", now.Format(spokenDateTime))
}

// RenderAvailability renders a CheckAvailability outcome.
func (r *AvailabilityResult) Render() string {
	date := r.Range.Start.Format(spokenDate)
	if r.Available() {
		return fmt.Sprintf("Good news! You're available on %s from %s to %s.",
			date,
			r.Range.Start.Format(spokenClock),
			r.Range.End.Format(spokenClock))
	}

	conflicts := make([]string, 0, len(r.Conflicts))
	for _, b := range r.Conflicts {
		conflicts = append(conflicts, fmt.Sprintf("%s to %s",
			b.Start.Format(spokenClock), b.End.Format(spokenClock)))
	}
	return fmt.Sprintf("Sorry, you have conflicts on %s from %s.",
		date, strings.Join(conflicts, " and "))
}

// RenderBookEvent renders a successful booking.
func (r *BookingResult) Render() string {
	return fmt.Sprintf("Successfully added '%s' to your calendar on %s at %s for %d minutes.",
		r.Title,
		r.Range.Start.Format(spokenDate),
		r.Range.Start.Format(spokenClock),
		r.DurationMinutes)
}

// RenderListing renders the upcoming-events listing. Singular and
// plural phrasing differ so the sentence reads naturally aloud.
func (r *ListingResult) Render() string {
	if len(r.Events) == 0 {
		return fmt.Sprintf("You have no upcoming events in the next %d days.", r.DaysAhead)
	}

	entries := make([]string, 0, len(r.Events))
	for _, ev := range r.Events {
		entries = append(entries, renderEventEntry(ev))
	}

	if len(entries) == 1 {
		return fmt.Sprintf("You have 1 upcoming event: %s", entries[0])
	}
	return fmt.Sprintf("You have %d upcoming events: %s",
		len(entries), strings.Join(entries, ", "))
}

func renderEventEntry(ev EventRecord) string {
	title := ev.Title
	if title == "" {
		title = "No title"
	}
	if ev.AllDay {
		return fmt.Sprintf("%s on %s (All day)", title, ev.Start.Format(spokenDate))
	}
	return fmt.Sprintf("%s on %s at %s", title,
		ev.Start.Format(spokenDate), ev.Start.Format(spokenClock))
}
