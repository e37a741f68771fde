package schedule_tools

import (
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/larkvale/voicedesk/internal/agent"
	"github.com/larkvale/voicedesk/internal/credentials"
	"github.com/larkvale/voicedesk/internal/grants"
	"github.com/larkvale/voicedesk/internal/scheduling"
	"github.com/larkvale/voicedesk/internal/server"
)

type stubGateway struct {
	events []scheduling.EventRecord
	busy   []scheduling.BusyInterval
}

func (s *stubGateway) ListEvents(_ context.Context, _ scheduling.TimeRange, _ int64) ([]scheduling.EventRecord, error) {
	return s.events, nil
}

func (s *stubGateway) InsertEvent(_ context.Context, req scheduling.EventRequest) (*scheduling.EventRecord, error) {
	return &scheduling.EventRecord{
		ID:    "evt-1",
		Title: req.Title,
		Start: req.Range.Start,
		End:   req.Range.End,
	}, nil
}

func (s *stubGateway) QueryFreeBusy(_ context.Context, _ scheduling.TimeRange) ([]scheduling.BusyInterval, error) {
	return s.busy, nil
}

type stubFactory struct {
	gw *stubGateway
}

func (f stubFactory) Gateway(_ context.Context, _ *credentials.Grant) (scheduling.Gateway, error) {
	return f.gw, nil
}

type stubRefresher struct{}

func (stubRefresher) Refresh(_ context.Context, _ *credentials.Grant) (*credentials.Grant, error) {
	return nil, errors.New("refresh not expected")
}

func newTestContext(t *testing.T, gw *stubGateway, authorized bool) *server.ServerContext {
	t.Helper()

	logger := slog.New(slog.DiscardHandler)
	store := credentials.NewMemoryStore()
	if authorized {
		grant := &credentials.Grant{
			AccessToken: "access-token",
			Expiry:      time.Now().Add(time.Hour),
		}
		require.NoError(t, store.Save(context.Background(), "default", grant))
	}

	mgr := grants.NewManager(store, stubRefresher{}, logger)
	fixed := time.Date(2025, 8, 1, 10, 0, 0, 0, time.UTC)
	engine := scheduling.NewEngineWithClock(logger, func() time.Time { return fixed })
	facade := agent.NewFacade(mgr, stubFactory{gw: gw}, engine, logger)

	return server.NewServerContext(context.Background(), facade, mgr, nil)
}

func toolRequest(name string, args map[string]interface{}) mcp.CallToolRequest {
	return mcp.CallToolRequest{
		Params: mcp.CallToolParams{
			Name:      name,
			Arguments: args,
		},
	}
}

func resultText(t *testing.T, result *mcp.CallToolResult) string {
	t.Helper()
	require.NotNil(t, result)
	require.Len(t, result.Content, 1)
	text, ok := mcp.AsTextContent(result.Content[0])
	require.True(t, ok)
	return text.Text
}

func TestRegisterScheduleTools(t *testing.T) {
	sc := newTestContext(t, &stubGateway{}, false)
	s := mcpserver.NewMCPServer("voicedesk-test", "0.0.1", mcpserver.WithToolCapabilities(true))

	require.NoError(t, RegisterScheduleTools(s, sc))
}

func TestHandleGetCurrentDateTime(t *testing.T) {
	sc := newTestContext(t, &stubGateway{}, false)

	result, err := handleGetCurrentDateTime(context.Background(),
		toolRequest("get_current_datetime", nil), sc)
	require.NoError(t, err)

	assert.Equal(t,
		"The current date and time is Friday, August 01, 2025 at 10:00 AM",
		resultText(t, result))
}

func TestHandleCheckAvailability(t *testing.T) {
	gw := &stubGateway{
		busy: []scheduling.BusyInterval{{
			Start: time.Date(2025, 8, 1, 14, 30, 0, 0, time.UTC),
			End:   time.Date(2025, 8, 1, 14, 45, 0, 0, time.UTC),
		}},
	}
	sc := newTestContext(t, gw, true)

	result, err := handleCheckAvailability(context.Background(),
		toolRequest("check_availability", map[string]interface{}{
			"date":      "2025-08-01",
			"startTime": "14:00",
			"endTime":   "15:00",
		}), sc)
	require.NoError(t, err)

	assert.Equal(t,
		"Sorry, you have conflicts on August 01 from 02:30 PM to 02:45 PM.",
		resultText(t, result))
}

func TestHandleCheckAvailabilityUnauthorized(t *testing.T) {
	sc := newTestContext(t, &stubGateway{}, false)

	result, err := handleCheckAvailability(context.Background(),
		toolRequest("check_availability", map[string]interface{}{
			"date":      "2025-08-01",
			"startTime": "14:00",
			"endTime":   "15:00",
		}), sc)
	require.NoError(t, err)

	// Failures surface as spoken text, never as a protocol error.
	assert.False(t, result.IsError)
	assert.Equal(t,
		"Sorry, I can't access your calendar to check availability. You may need to authorize calendar access first.",
		resultText(t, result))
}

func TestHandleAddCalendarEvent(t *testing.T) {
	sc := newTestContext(t, &stubGateway{}, true)

	result, err := handleAddCalendarEvent(context.Background(),
		toolRequest("add_calendar_event", map[string]interface{}{
			"title":           "Dentist",
			"date":            "2025-08-01",
			"startTime":       "14:00",
			"durationMinutes": float64(30),
		}), sc)
	require.NoError(t, err)

	assert.Equal(t,
		"Successfully added 'Dentist' to your calendar on August 01 at 02:00 PM for 30 minutes.",
		resultText(t, result))
}

func TestHandleAddCalendarEventDefaultDuration(t *testing.T) {
	sc := newTestContext(t, &stubGateway{}, true)

	result, err := handleAddCalendarEvent(context.Background(),
		toolRequest("add_calendar_event", map[string]interface{}{
			"title":     "Standup",
			"date":      "2025-08-04",
			"startTime": "09:00",
		}), sc)
	require.NoError(t, err)

	assert.Equal(t,
		"Successfully added 'Standup' to your calendar on August 04 at 09:00 AM for 60 minutes.",
		resultText(t, result))
}

func TestHandleListUpcomingEvents(t *testing.T) {
	gw := &stubGateway{
		events: []scheduling.EventRecord{
			{Title: "Standup", Start: time.Date(2025, 8, 2, 9, 0, 0, 0, time.UTC)},
		},
	}
	sc := newTestContext(t, gw, true)

	result, err := handleListUpcomingEvents(context.Background(),
		toolRequest("list_upcoming_events", map[string]interface{}{
			"daysAhead": float64(3),
		}), sc)
	require.NoError(t, err)

	assert.Equal(t,
		"You have 1 upcoming event: Standup on August 02 at 09:00 AM",
		resultText(t, result))
}

func TestHandleListUpcomingEventsDefaultWindow(t *testing.T) {
	sc := newTestContext(t, &stubGateway{}, true)

	result, err := handleListUpcomingEvents(context.Background(),
		toolRequest("list_upcoming_events", map[string]interface{}{}), sc)
	require.NoError(t, err)

	assert.Equal(t,
		"You have no upcoming events in the next 7 days.",
		resultText(t, result))
}
