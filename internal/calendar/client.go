package calendar

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/oauth2"
	calendar "google.golang.org/api/calendar/v3"
	"google.golang.org/api/option"

	"github.com/larkvale/voicedesk/internal/credentials"
	"github.com/larkvale/voicedesk/internal/instrumentation"
	"github.com/larkvale/voicedesk/internal/scheduling"
)

// primaryCalendar is the only calendar the agent operates on.
const primaryCalendar = "primary"

// Client is a Google Calendar gateway bound to a single grant.
type Client struct {
	svc     *calendar.Service
	metrics *instrumentation.Metrics
}

// NewClient builds a gateway from an authorized grant. The token
// source is static: refresh is the grant manager's job, and a client
// never outlives the grant it was built from.
func NewClient(ctx context.Context, grant *credentials.Grant, metrics *instrumentation.Metrics) (*Client, error) {
	ts := oauth2.StaticTokenSource(grant.Token())
	svc, err := calendar.NewService(ctx, option.WithTokenSource(ts))
	if err != nil {
		return nil, fmt.Errorf("failed to create Calendar service: %w", err)
	}
	return &Client{svc: svc, metrics: metrics}, nil
}

func (c *Client) record(ctx context.Context, operation string, start time.Time, err error) {
	if c.metrics == nil {
		return
	}
	status := instrumentation.StatusSuccess
	if err != nil {
		status = instrumentation.StatusError
	}
	c.metrics.RecordCalendarOperation(ctx, operation, status, time.Since(start))
}

// ListEvents implements scheduling.Gateway. Recurring events are
// expanded to instances so the ordering by start time holds.
func (c *Client) ListEvents(ctx context.Context, r scheduling.TimeRange, maxResults int64) ([]scheduling.EventRecord, error) {
	start := time.Now()
	events, err := c.svc.Events.List(primaryCalendar).
		TimeMin(r.Start.Format(time.RFC3339)).
		TimeMax(r.End.Format(time.RFC3339)).
		MaxResults(maxResults).
		SingleEvents(true).
		OrderBy("startTime").
		Context(ctx).
		Do()
	c.record(ctx, "list", start, err)
	if err != nil {
		return nil, fmt.Errorf("failed to list events: %w", err)
	}

	records := make([]scheduling.EventRecord, 0, len(events.Items))
	for _, event := range events.Items {
		records = append(records, toEventRecord(event))
	}
	return records, nil
}

// InsertEvent implements scheduling.Gateway.
func (c *Client) InsertEvent(ctx context.Context, req scheduling.EventRequest) (*scheduling.EventRecord, error) {
	event := &calendar.Event{
		Summary:     req.Title,
		Description: req.Description,
		Start: &calendar.EventDateTime{
			DateTime: req.Range.Start.Format(time.RFC3339),
			TimeZone: "UTC",
		},
		End: &calendar.EventDateTime{
			DateTime: req.Range.End.Format(time.RFC3339),
			TimeZone: "UTC",
		},
	}

	start := time.Now()
	created, err := c.svc.Events.Insert(primaryCalendar, event).
		Context(ctx).
		Do()
	c.record(ctx, "insert", start, err)
	if err != nil {
		return nil, fmt.Errorf("failed to create event: %w", err)
	}

	record := toEventRecord(created)
	return &record, nil
}

// QueryFreeBusy implements scheduling.Gateway.
func (c *Client) QueryFreeBusy(ctx context.Context, r scheduling.TimeRange) ([]scheduling.BusyInterval, error) {
	query := &calendar.FreeBusyRequest{
		TimeMin: r.Start.Format(time.RFC3339),
		TimeMax: r.End.Format(time.RFC3339),
		Items:   []*calendar.FreeBusyRequestItem{{Id: primaryCalendar}},
	}

	start := time.Now()
	result, err := c.svc.Freebusy.Query(query).
		Context(ctx).
		Do()
	c.record(ctx, "freebusy", start, err)
	if err != nil {
		return nil, fmt.Errorf("failed to query freebusy: %w", err)
	}

	cal, ok := result.Calendars[primaryCalendar]
	if !ok {
		return nil, nil
	}
	if len(cal.Errors) > 0 {
		return nil, fmt.Errorf("freebusy query failed: %s", cal.Errors[0].Reason)
	}

	return toBusyIntervals(cal.Busy), nil
}

// Factory builds a gateway per call. The facade hands it a freshly
// acquired grant each time, so a revoked or rotated grant is picked up
// on the next tool invocation.
type Factory struct {
	// Metrics records calendar API metrics on every client built by
	// this factory. Optional.
	Metrics *instrumentation.Metrics
}

// Gateway implements the facade's gateway factory contract.
func (f Factory) Gateway(ctx context.Context, grant *credentials.Grant) (scheduling.Gateway, error) {
	return NewClient(ctx, grant, f.Metrics)
}
