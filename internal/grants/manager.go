package grants

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/larkvale/voicedesk/internal/credentials"
	"github.com/larkvale/voicedesk/internal/logging"
)

// expirySkew is how close to expiry a grant may be before it is
// treated as expired and refreshed. Covers clock drift and the time
// the subsequent calendar call takes.
const expirySkew = 5 * time.Minute

// staleExpiry forces oauth2 token sources to refresh.
var staleExpiry = time.Unix(1, 0)

// RefreshMetrics records refresh attempts. Satisfied by
// instrumentation.Metrics.
type RefreshMetrics interface {
	RecordTokenRefresh(ctx context.Context, result string)
}

// Manager owns the grant lifecycle for all tenants.
type Manager struct {
	store     credentials.Store
	refresher Refresher
	logger    *slog.Logger
	metrics   RefreshMetrics
	now       func() time.Time

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// NewManager creates a Manager. logger may be nil to use the default.
func NewManager(store credentials.Store, refresher Refresher, logger *slog.Logger) *Manager {
	if logger == nil {
		logger = slog.Default()
	}
	return &Manager{
		store:     store,
		refresher: refresher,
		logger:    logger,
		now:       time.Now,
		locks:     make(map[string]*sync.Mutex),
	}
}

// SetMetrics attaches a refresh metrics recorder. Call before serving.
func (m *Manager) SetMetrics(metrics RefreshMetrics) {
	m.metrics = metrics
}

func (m *Manager) recordRefresh(ctx context.Context, result string) {
	if m.metrics != nil {
		m.metrics.RecordTokenRefresh(ctx, result)
	}
}

// tenantLock returns the mutex serializing lifecycle operations for a
// tenant, creating it on first use.
func (m *Manager) tenantLock(tenant string) *sync.Mutex {
	m.mu.Lock()
	defer m.mu.Unlock()

	l, ok := m.locks[tenant]
	if !ok {
		l = &sync.Mutex{}
		m.locks[tenant] = l
	}
	return l
}

// Acquire returns a valid grant for the tenant, refreshing and
// persisting it if needed.
//
// Fails with ErrAuthorizationRequired when no grant is stored or the
// stored grant is expired with no refresh token, and with
// ErrAuthorizationExpired when a refresh was attempted and failed. A
// failed refresh leaves the stored grant untouched; a transient
// network error must not destroy a recoverable grant.
//
// The per-tenant lock is held across load-check-refresh-save only, not
// across the calendar call that follows.
func (m *Manager) Acquire(ctx context.Context, tenant string) (*credentials.Grant, error) {
	lock := m.tenantLock(tenant)
	lock.Lock()
	defer lock.Unlock()

	logger := logging.WithTenant(m.logger, tenant)

	g, err := m.store.Load(ctx, tenant)
	if err != nil {
		if errors.Is(err, credentials.ErrNotFound) {
			logger.Debug("no grant stored", logging.Operation("acquire"))
			return nil, ErrAuthorizationRequired
		}
		// Storage failure is not "absent": surface it so the caller
		// does not force the tenant through a needless consent flow.
		return nil, fmt.Errorf("failed to load grant: %w", err)
	}

	if g.Valid(m.now(), expirySkew) {
		return g, nil
	}

	if !g.Refreshable() {
		logger.Info("grant expired with no refresh token", logging.Operation("acquire"))
		return nil, ErrAuthorizationRequired
	}

	refreshed, err := m.refresher.Refresh(ctx, g)
	if err != nil {
		m.recordRefresh(ctx, "failure")
		logger.Warn("grant refresh failed",
			logging.Operation("refresh"),
			logging.Err(err))
		return nil, fmt.Errorf("%w: %v", ErrAuthorizationExpired, err)
	}
	m.recordRefresh(ctx, "success")

	if err := m.store.Save(ctx, tenant, refreshed); err != nil {
		// The refresh succeeded; losing the save costs a future
		// refresh, not this request.
		logger.Warn("failed to persist refreshed grant",
			logging.Operation("refresh"),
			logging.Err(err))
	} else {
		logger.Info("grant refreshed",
			logging.Operation("refresh"),
			slog.Time("expiry", refreshed.Expiry))
	}

	return refreshed, nil
}

// Authorized reports whether a grant is stored for the tenant, without
// validating or refreshing it.
func (m *Manager) Authorized(ctx context.Context, tenant string) bool {
	_, err := m.store.Load(ctx, tenant)
	return err == nil
}

// Save persists a freshly exchanged grant for a tenant, e.g. after the
// consent flow completes.
func (m *Manager) Save(ctx context.Context, tenant string, g *credentials.Grant) error {
	lock := m.tenantLock(tenant)
	lock.Lock()
	defer lock.Unlock()

	return m.store.Save(ctx, tenant, g)
}

// Revoke deletes the stored grant for a tenant. This is the explicit
// policy hook for invalidating credentials; Acquire never deletes.
func (m *Manager) Revoke(ctx context.Context, tenant string) error {
	lock := m.tenantLock(tenant)
	lock.Lock()
	defer lock.Unlock()

	logging.WithTenant(m.logger, tenant).Info("grant revoked", logging.Operation("revoke"))
	return m.store.Delete(ctx, tenant)
}
