package agent

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/larkvale/voicedesk/internal/credentials"
	"github.com/larkvale/voicedesk/internal/grants"
	"github.com/larkvale/voicedesk/internal/logging"
	"github.com/larkvale/voicedesk/internal/scheduling"
)

// GatewayFactory builds a calendar gateway from a freshly acquired
// grant. Implemented by the calendar package and by test fakes.
type GatewayFactory interface {
	Gateway(ctx context.Context, grant *credentials.Grant) (scheduling.Gateway, error)
}

// Spoken fallbacks when a tenant has no usable grant. The wording
// varies by operation but all three tell the caller to authorize.
const (
	authRequiredList  = "Sorry, I can't access your calendar right now. You may need to authorize calendar access first."
	authRequiredAdd   = "Sorry, I can't access your calendar to add the event. You may need to authorize calendar access first."
	authRequiredCheck = "Sorry, I can't access your calendar to check availability. You may need to authorize calendar access first."
)

// Facade wires grant acquisition, gateway construction and the
// scheduling engine behind the four tool operations.
type Facade struct {
	grants   *grants.Manager
	gateways GatewayFactory
	engine   *scheduling.Engine
	logger   *slog.Logger
}

// NewFacade builds the facade.
func NewFacade(mgr *grants.Manager, gf GatewayFactory, engine *scheduling.Engine, logger *slog.Logger) *Facade {
	return &Facade{
		grants:   mgr,
		gateways: gf,
		engine:   engine,
		logger:   logger,
	}
}

// GetCurrentDateTime reports the current moment. It needs no grant and
// cannot fail.
func (f *Facade) GetCurrentDateTime(ctx context.Context) string {
	return scheduling.RenderCurrentDateTime(f.engine.Now())
}

// ListUpcomingEvents returns a sentence describing the tenant's
// upcoming events within daysAhead days.
func (f *Facade) ListUpcomingEvents(ctx context.Context, tenant string, daysAhead int) string {
	gw, errSentence := f.gateway(ctx, tenant, authRequiredList)
	if gw == nil {
		return errSentence
	}

	res, err := f.engine.ListUpcoming(ctx, gw, daysAhead)
	if err != nil {
		return f.renderFailure(ctx, "list_upcoming_events", err,
			"Sorry, I had trouble accessing your calendar events.")
	}
	return res.Render()
}

// AddCalendarEvent books an event and confirms it in a sentence.
func (f *Facade) AddCalendarEvent(ctx context.Context, tenant, title, date, startTime string, durationMinutes int, description string) string {
	gw, errSentence := f.gateway(ctx, tenant, authRequiredAdd)
	if gw == nil {
		return errSentence
	}

	res, err := f.engine.BookEvent(ctx, gw, title, date, startTime, durationMinutes, description)
	if err != nil {
		return f.renderFailure(ctx, "add_calendar_event", err,
			fmt.Sprintf("Sorry, I couldn't add the event '%s' to your calendar.", title))
	}
	return res.Render()
}

// CheckAvailability reports whether the tenant is free between two
// clock times on a date.
func (f *Facade) CheckAvailability(ctx context.Context, tenant, date, startTime, endTime string) string {
	gw, errSentence := f.gateway(ctx, tenant, authRequiredCheck)
	if gw == nil {
		return errSentence
	}

	res, err := f.engine.CheckAvailability(ctx, gw, date, startTime, endTime)
	if err != nil {
		return f.renderFailure(ctx, "check_availability", err,
			fmt.Sprintf("Sorry, I couldn't check your availability for %s.", date))
	}
	return res.Render()
}

// gateway acquires the tenant's grant and builds a calendar gateway.
// On failure it returns a nil gateway and the sentence to speak.
func (f *Facade) gateway(ctx context.Context, tenant, authSentence string) (scheduling.Gateway, string) {
	grant, err := f.grants.Acquire(ctx, tenant)
	if err != nil {
		if !grants.IsAuthError(err) {
			f.logger.LogAttrs(ctx, slog.LevelError, "grant acquisition failed",
				slog.String(logging.KeyTenant, logging.AnonymizeTenant(tenant)),
				logging.Err(err),
			)
		}
		return nil, authSentence
	}

	gw, err := f.gateways.Gateway(ctx, grant)
	if err != nil {
		f.logger.LogAttrs(ctx, slog.LevelError, "gateway construction failed",
			slog.String(logging.KeyTenant, logging.AnonymizeTenant(tenant)),
			logging.Err(err),
		)
		return nil, authSentence
	}
	return gw, ""
}

// renderFailure collapses engine errors into speech. Validation
// problems become a clarifying prompt; everything else becomes the
// operation's apology.
func (f *Facade) renderFailure(ctx context.Context, op string, err error, apology string) string {
	var verr *scheduling.ValidationError
	if errors.As(err, &verr) {
		field := strings.ReplaceAll(verr.Field, "_", " ")
		return fmt.Sprintf("Sorry, I didn't catch the %s. Could you say that again?", field)
	}

	f.logger.LogAttrs(ctx, slog.LevelError, "tool operation failed",
		slog.String(logging.KeyOperation, op),
		logging.Err(err),
	)
	return apology
}
