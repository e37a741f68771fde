package scheduling

import (
	"context"
	"time"
)

// TimeRange is a half-open interval [Start, End) in UTC.
type TimeRange struct {
	Start time.Time
	End   time.Time
}

// Duration returns the length of the range.
func (r TimeRange) Duration() time.Duration {
	return r.End.Sub(r.Start)
}

// Overlaps reports whether r and other share any instant.
func (r TimeRange) Overlaps(other TimeRange) bool {
	return r.Start.Before(other.End) && other.Start.Before(r.End)
}

// EventRequest describes an event to be created on a calendar.
type EventRequest struct {
	Title       string
	Range       TimeRange
	Description string
}

// EventRecord is a provider-neutral view of a calendar event.
type EventRecord struct {
	ID     string
	Title  string
	Start  time.Time
	End    time.Time
	AllDay bool
	Link   string
}

// BusyInterval is a span during which the calendar owner is busy.
type BusyInterval struct {
	Start time.Time
	End   time.Time
}

// Gateway is the remote calendar surface the engine talks to. A
// gateway is bound to a single tenant's calendar; implementations must
// honor context cancellation.
type Gateway interface {
	// ListEvents returns events starting within the range, ordered by
	// start time, up to maxResults.
	ListEvents(ctx context.Context, r TimeRange, maxResults int64) ([]EventRecord, error)

	// InsertEvent creates the event and returns the stored record.
	InsertEvent(ctx context.Context, req EventRequest) (*EventRecord, error)

	// QueryFreeBusy returns the busy intervals overlapping the range.
	QueryFreeBusy(ctx context.Context, r TimeRange) ([]BusyInterval, error)
}
