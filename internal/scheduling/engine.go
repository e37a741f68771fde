package scheduling

import (
	"context"
	"log/slog"
	"strconv"
	"time"

	"github.com/larkvale/voicedesk/internal/logging"
)

// Defaults applied when the caller leaves an argument unset.
const (
	DefaultDaysAhead       = 7
	DefaultDurationMinutes = 60

	maxListResults = 10
)

// AvailabilityResult is the outcome of CheckAvailability.
type AvailabilityResult struct {
	Range     TimeRange
	Conflicts []BusyInterval
}

// Available reports whether the range is free of conflicts.
func (r *AvailabilityResult) Available() bool {
	return len(r.Conflicts) == 0
}

// BookingResult is the outcome of BookEvent.
type BookingResult struct {
	Title           string
	Range           TimeRange
	DurationMinutes int
	Booked          *EventRecord
}

// ListingResult is the outcome of ListUpcoming.
type ListingResult struct {
	DaysAhead int
	Events    []EventRecord
}

// Engine implements the scheduling operations on top of a Gateway.
// It is stateless apart from its clock and safe for concurrent use.
type Engine struct {
	logger *slog.Logger
	now    func() time.Time
}

// NewEngine returns an engine using the wall clock.
func NewEngine(logger *slog.Logger) *Engine {
	return &Engine{
		logger: logger,
		now:    time.Now,
	}
}

// NewEngineWithClock returns an engine with an injected clock, for
// deterministic tests.
func NewEngineWithClock(logger *slog.Logger, now func() time.Time) *Engine {
	return &Engine{logger: logger, now: now}
}

// Now returns the engine's current time in UTC.
func (e *Engine) Now() time.Time {
	return e.now().UTC()
}

// CheckAvailability queries free/busy for the requested slot and
// returns the conflicting intervals, if any.
func (e *Engine) CheckAvailability(ctx context.Context, gw Gateway, date, startClock, endClock string) (*AvailabilityResult, error) {
	r, err := ParseSpan(date, startClock, endClock)
	if err != nil {
		return nil, err
	}

	busy, err := gw.QueryFreeBusy(ctx, r)
	if err != nil {
		return nil, &RemoteError{Op: "freebusy", Err: err}
	}

	e.logger.LogAttrs(ctx, slog.LevelDebug, "checked availability",
		slog.String(logging.KeyOperation, "check_availability"),
		slog.Time("slot_start", r.Start),
		slog.Int("conflicts", len(busy)),
	)

	return &AvailabilityResult{Range: r, Conflicts: busy}, nil
}

// BookEvent creates the event unconditionally. Availability is the
// caller's concern: the agent checks first when the conversation calls
// for it, and a conflicting booking is still a valid booking.
func (e *Engine) BookEvent(ctx context.Context, gw Gateway, title, date, clock string, durationMinutes int, description string) (*BookingResult, error) {
	if title == "" {
		return nil, &ValidationError{
			Field:  "title",
			Value:  title,
			Reason: "event needs a title",
		}
	}
	if durationMinutes == 0 {
		durationMinutes = DefaultDurationMinutes
	}

	r, err := ParseRange(date, clock, durationMinutes)
	if err != nil {
		return nil, err
	}

	rec, err := gw.InsertEvent(ctx, EventRequest{
		Title:       title,
		Range:       r,
		Description: description,
	})
	if err != nil {
		return nil, &RemoteError{Op: "insert", Err: err}
	}

	e.logger.LogAttrs(ctx, slog.LevelInfo, "event booked",
		slog.String(logging.KeyOperation, "add_calendar_event"),
		slog.String("event_id", rec.ID),
		slog.Time("slot_start", r.Start),
	)

	return &BookingResult{
		Title:           title,
		Range:           r,
		DurationMinutes: durationMinutes,
		Booked:          rec,
	}, nil
}

// ListUpcoming returns events starting between now and now plus
// daysAhead days, capped at maxListResults.
func (e *Engine) ListUpcoming(ctx context.Context, gw Gateway, daysAhead int) (*ListingResult, error) {
	if daysAhead == 0 {
		daysAhead = DefaultDaysAhead
	}
	if daysAhead < 1 {
		return nil, &ValidationError{
			Field:  "days_ahead",
			Value:  strconv.Itoa(daysAhead),
			Reason: "must be at least 1",
		}
	}

	now := e.Now()
	r := TimeRange{Start: now, End: now.AddDate(0, 0, daysAhead)}

	events, err := gw.ListEvents(ctx, r, maxListResults)
	if err != nil {
		return nil, &RemoteError{Op: "list", Err: err}
	}

	e.logger.LogAttrs(ctx, slog.LevelDebug, "listed upcoming events",
		slog.String(logging.KeyOperation, "list_upcoming_events"),
		slog.Int("days_ahead", daysAhead),
		slog.Int("events", len(events)),
	)

	return &ListingResult{DaysAhead: daysAhead, Events: events}, nil
}
