package agent

import (
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/larkvale/voicedesk/internal/credentials"
	"github.com/larkvale/voicedesk/internal/grants"
	"github.com/larkvale/voicedesk/internal/scheduling"
)

type fakeGateway struct {
	listCalls     int
	insertCalls   int
	freebusyCalls int

	events []scheduling.EventRecord
	busy   []scheduling.BusyInterval
	err    error
}

func (f *fakeGateway) ListEvents(_ context.Context, _ scheduling.TimeRange, _ int64) ([]scheduling.EventRecord, error) {
	f.listCalls++
	return f.events, f.err
}

func (f *fakeGateway) InsertEvent(_ context.Context, req scheduling.EventRequest) (*scheduling.EventRecord, error) {
	f.insertCalls++
	if f.err != nil {
		return nil, f.err
	}
	return &scheduling.EventRecord{
		ID:    "evt-1",
		Title: req.Title,
		Start: req.Range.Start,
		End:   req.Range.End,
	}, nil
}

func (f *fakeGateway) QueryFreeBusy(_ context.Context, _ scheduling.TimeRange) ([]scheduling.BusyInterval, error) {
	f.freebusyCalls++
	return f.busy, f.err
}

type fakeFactory struct {
	gw    *fakeGateway
	calls int
}

func (f *fakeFactory) Gateway(_ context.Context, _ *credentials.Grant) (scheduling.Gateway, error) {
	f.calls++
	return f.gw, nil
}

type noRefresh struct{}

func (noRefresh) Refresh(_ context.Context, _ *credentials.Grant) (*credentials.Grant, error) {
	return nil, errors.New("refresh not expected in this test")
}

func newTestFacade(t *testing.T, gw *fakeGateway, grant *credentials.Grant) (*Facade, *fakeFactory) {
	t.Helper()

	logger := slog.New(slog.DiscardHandler)
	store := credentials.NewMemoryStore()
	if grant != nil {
		require.NoError(t, store.Save(context.Background(), "t1", grant))
	}

	mgr := grants.NewManager(store, noRefresh{}, logger)
	factory := &fakeFactory{gw: gw}
	fixed := time.Date(2025, 8, 1, 10, 0, 0, 0, time.UTC)
	engine := scheduling.NewEngineWithClock(logger, func() time.Time { return fixed })

	return NewFacade(mgr, factory, engine, logger), factory
}

func validGrant() *credentials.Grant {
	return &credentials.Grant{
		AccessToken:  "access-token",
		RefreshToken: "refresh-token",
		Expiry:       time.Now().Add(time.Hour),
	}
}

func TestGetCurrentDateTime(t *testing.T) {
	f, _ := newTestFacade(t, &fakeGateway{}, nil)

	assert.Equal(t,
		"The current date and time is Friday, August 01, 2025 at 10:00 AM",
		f.GetCurrentDateTime(context.Background()))
}

func TestCheckAvailabilityWithoutGrant(t *testing.T) {
	gw := &fakeGateway{}
	f, factory := newTestFacade(t, gw, nil)

	got := f.CheckAvailability(context.Background(), "t1", "2025-08-01", "14:00", "15:00")
	assert.Equal(t,
		"Sorry, I can't access your calendar to check availability. You may need to authorize calendar access first.",
		got)

	// No gateway was built and no remote call was made.
	assert.Equal(t, 0, factory.calls)
	assert.Equal(t, 0, gw.freebusyCalls)
}

func TestCheckAvailabilityConflict(t *testing.T) {
	gw := &fakeGateway{
		busy: []scheduling.BusyInterval{{
			Start: time.Date(2025, 8, 1, 14, 30, 0, 0, time.UTC),
			End:   time.Date(2025, 8, 1, 14, 45, 0, 0, time.UTC),
		}},
	}
	f, _ := newTestFacade(t, gw, validGrant())

	got := f.CheckAvailability(context.Background(), "t1", "2025-08-01", "14:00", "15:00")
	assert.Equal(t,
		"Sorry, you have conflicts on August 01 from 02:30 PM to 02:45 PM.",
		got)
}

func TestCheckAvailabilityFree(t *testing.T) {
	f, _ := newTestFacade(t, &fakeGateway{}, validGrant())

	got := f.CheckAvailability(context.Background(), "t1", "2025-08-01", "14:00", "15:00")
	assert.Equal(t,
		"Good news! You're available on August 01 from 02:00 PM to 03:00 PM.",
		got)
}

func TestCheckAvailabilityRemoteFailure(t *testing.T) {
	gw := &fakeGateway{err: errors.New("backend unavailable")}
	f, _ := newTestFacade(t, gw, validGrant())

	got := f.CheckAvailability(context.Background(), "t1", "2025-08-01", "14:00", "15:00")
	assert.Equal(t, "Sorry, I couldn't check your availability for 2025-08-01.", got)
}

func TestAddCalendarEvent(t *testing.T) {
	gw := &fakeGateway{}
	f, _ := newTestFacade(t, gw, validGrant())

	got := f.AddCalendarEvent(context.Background(), "t1",
		"Dentist appointment", "2025-08-01", "14:00", 30, "")
	assert.Equal(t,
		"Successfully added 'Dentist appointment' to your calendar on August 01 at 02:00 PM for 30 minutes.",
		got)
	assert.Equal(t, 1, gw.insertCalls)
}

func TestAddCalendarEventWithoutGrant(t *testing.T) {
	gw := &fakeGateway{}
	f, _ := newTestFacade(t, gw, nil)

	got := f.AddCalendarEvent(context.Background(), "t1",
		"Dentist", "2025-08-01", "14:00", 30, "")
	assert.Equal(t,
		"Sorry, I can't access your calendar to add the event. You may need to authorize calendar access first.",
		got)
	assert.Equal(t, 0, gw.insertCalls)
}

func TestAddCalendarEventBadDate(t *testing.T) {
	gw := &fakeGateway{}
	f, _ := newTestFacade(t, gw, validGrant())

	got := f.AddCalendarEvent(context.Background(), "t1",
		"Dentist", "tomorrow", "14:00", 30, "")
	assert.Equal(t, "Sorry, I didn't catch the date. Could you say that again?", got)
	assert.Equal(t, 0, gw.insertCalls)
}

func TestAddCalendarEventRemoteFailure(t *testing.T) {
	gw := &fakeGateway{err: errors.New("quota exceeded")}
	f, _ := newTestFacade(t, gw, validGrant())

	got := f.AddCalendarEvent(context.Background(), "t1",
		"Dentist", "2025-08-01", "14:00", 30, "")
	assert.Equal(t, "Sorry, I couldn't add the event 'Dentist' to your calendar.", got)
}

func TestListUpcomingEvents(t *testing.T) {
	gw := &fakeGateway{
		events: []scheduling.EventRecord{
			{Title: "Standup", Start: time.Date(2025, 8, 2, 9, 0, 0, 0, time.UTC)},
		},
	}
	f, _ := newTestFacade(t, gw, validGrant())

	got := f.ListUpcomingEvents(context.Background(), "t1", 7)
	assert.Equal(t, "You have 1 upcoming event: Standup on August 02 at 09:00 AM", got)
}

func TestListUpcomingEventsEmpty(t *testing.T) {
	f, _ := newTestFacade(t, &fakeGateway{}, validGrant())

	got := f.ListUpcomingEvents(context.Background(), "t1", 7)
	assert.Equal(t, "You have no upcoming events in the next 7 days.", got)
}

func TestListUpcomingEventsWithoutGrant(t *testing.T) {
	f, _ := newTestFacade(t, &fakeGateway{}, nil)

	got := f.ListUpcomingEvents(context.Background(), "t1", 7)
	assert.Equal(t,
		"Sorry, I can't access your calendar right now. You may need to authorize calendar access first.",
		got)
}

func TestListUpcomingEventsRemoteFailure(t *testing.T) {
	gw := &fakeGateway{err: errors.New("backend unavailable")}
	f, _ := newTestFacade(t, gw, validGrant())

	got := f.ListUpcomingEvents(context.Background(), "t1", 7)
	assert.Equal(t, "Sorry, I had trouble accessing your calendar events.", got)
}
