package server

import (
	"context"
	"errors"
	"sync"

	"github.com/larkvale/voicedesk/internal/agent"
	"github.com/larkvale/voicedesk/internal/google"
	"github.com/larkvale/voicedesk/internal/grants"
	"github.com/larkvale/voicedesk/internal/instrumentation"
)

// ServerContext holds the shared dependencies for the MCP server.
type ServerContext struct {
	ctx    context.Context
	cancel context.CancelFunc

	facade     *agent.Facade
	grants     *grants.Manager
	authConfig *google.Config

	provider    *instrumentation.Provider
	auditLogger *instrumentation.AuditLogger

	// storeCloser releases the grant store's backing connection pool,
	// when the backend has one.
	storeCloser func() error

	mu       sync.RWMutex
	shutdown bool
}

// NewServerContext creates a server context tied to ctx.
func NewServerContext(ctx context.Context, facade *agent.Facade, mgr *grants.Manager, authConfig *google.Config) *ServerContext {
	shutdownCtx, cancel := context.WithCancel(ctx)
	return &ServerContext{
		ctx:        shutdownCtx,
		cancel:     cancel,
		facade:     facade,
		grants:     mgr,
		authConfig: authConfig,
	}
}

// Context returns the server's lifecycle context.
func (sc *ServerContext) Context() context.Context {
	return sc.ctx
}

// Facade returns the tool facade.
func (sc *ServerContext) Facade() *agent.Facade {
	return sc.facade
}

// Grants returns the grant manager.
func (sc *ServerContext) Grants() *grants.Manager {
	return sc.grants
}

// AuthConfig returns the OAuth configuration, or nil when the server
// runs without client credentials.
func (sc *ServerContext) AuthConfig() *google.Config {
	return sc.authConfig
}

// SetInstrumentation attaches the telemetry provider and audit logger.
func (sc *ServerContext) SetInstrumentation(provider *instrumentation.Provider, auditLogger *instrumentation.AuditLogger) {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	sc.provider = provider
	sc.auditLogger = auditLogger
}

// Metrics returns the metrics recorder, or nil when instrumentation is
// not configured.
func (sc *ServerContext) Metrics() *instrumentation.Metrics {
	sc.mu.RLock()
	defer sc.mu.RUnlock()
	if sc.provider == nil {
		return nil
	}
	return sc.provider.Metrics()
}

// AuditLogger returns the audit logger, or nil when not configured.
func (sc *ServerContext) AuditLogger() *instrumentation.AuditLogger {
	sc.mu.RLock()
	defer sc.mu.RUnlock()
	return sc.auditLogger
}

// SetStoreCloser registers the function that releases the grant
// store's resources on shutdown.
func (sc *ServerContext) SetStoreCloser(closer func() error) {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	sc.storeCloser = closer
}

// IsShutdown reports whether Shutdown has been called.
func (sc *ServerContext) IsShutdown() bool {
	sc.mu.RLock()
	defer sc.mu.RUnlock()
	return sc.shutdown
}

// Shutdown cancels the lifecycle context and releases held resources.
// Safe to call more than once.
func (sc *ServerContext) Shutdown(ctx context.Context) error {
	sc.mu.Lock()
	if sc.shutdown {
		sc.mu.Unlock()
		return nil
	}
	sc.shutdown = true
	provider := sc.provider
	closer := sc.storeCloser
	sc.mu.Unlock()

	sc.cancel()

	var errs []error
	if closer != nil {
		if err := closer(); err != nil {
			errs = append(errs, err)
		}
	}
	if provider != nil {
		if err := provider.Shutdown(ctx); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
