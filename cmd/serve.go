package cmd

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	mcpserver "github.com/mark3labs/mcp-go/server"
	"github.com/spf13/cobra"

	"github.com/larkvale/voicedesk/internal/agent"
	"github.com/larkvale/voicedesk/internal/calendar"
	"github.com/larkvale/voicedesk/internal/credentials"
	"github.com/larkvale/voicedesk/internal/google"
	"github.com/larkvale/voicedesk/internal/grants"
	"github.com/larkvale/voicedesk/internal/instrumentation"
	"github.com/larkvale/voicedesk/internal/logging"
	"github.com/larkvale/voicedesk/internal/scheduling"
	"github.com/larkvale/voicedesk/internal/server"
	"github.com/larkvale/voicedesk/internal/tools/schedule_tools"
)

const shutdownTimeout = 30 * time.Second

// StoreConfig holds the grant store configuration.
type StoreConfig struct {
	// Type is the backend type: "file", "memory", "redis" or
	// "postgres" (default: "file").
	Type string

	// Dir is the directory for the file backend (default: the user
	// cache directory).
	Dir string

	// RedisURL is the connection URL for the redis backend.
	RedisURL string

	// PostgresURL is the connection string for the postgres backend.
	PostgresURL string

	// EncryptionKey encrypts grants at rest when set (32 bytes).
	EncryptionKey []byte
}

// MetricsConfig holds the metrics server configuration.
type MetricsConfig struct {
	Enabled bool
	Addr    string
}

func newServeCmd() *cobra.Command {
	var (
		debugMode          bool
		transport          string
		httpAddr           string
		googleClientID     string
		googleClientSecret string
		storeType          string
		storeDir           string
		redisURL           string
		postgresURL        string
		encryptionKey      string
		metricsEnabled     bool
		metricsAddr        string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the MCP server",
		Long: `Start the Model Context Protocol (MCP) server exposing the calendar
tools for the voice agent.

Supports multiple transport types:
  - stdio: Standard input/output (default)
  - streamable-http: Streamable HTTP transport

Grant storage:
  Tenant credentials are kept in the store selected by --store:
  "file" (default), "memory", "redis" (--redis-url), or "postgres"
  (--postgres-url). With --encryption-key set, grants are encrypted
  at rest.

OAuth configuration:
  Token refresh needs --google-client-id and --google-client-secret,
  or the GOOGLE_CLIENT_ID and GOOGLE_CLIENT_SECRET environment
  variables. Without them the server still runs, but expired grants
  cannot be refreshed.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			var encKeyBytes []byte
			if encryptionKey == "" {
				encryptionKey = os.Getenv("VOICEDESK_ENCRYPTION_KEY")
			}
			if encryptionKey != "" {
				decoded, err := base64.StdEncoding.DecodeString(encryptionKey)
				if err != nil {
					return fmt.Errorf("invalid encryption key (must be base64): %w", err)
				}
				if len(decoded) != 32 {
					return fmt.Errorf("invalid encryption key length (must be 32 bytes, got %d)", len(decoded))
				}
				encKeyBytes = decoded
			}

			storeConfig := StoreConfig{
				Type:          storeType,
				Dir:           storeDir,
				RedisURL:      redisURL,
				PostgresURL:   postgresURL,
				EncryptionKey: encKeyBytes,
			}
			metricsConfig := MetricsConfig{
				Enabled: metricsEnabled,
				Addr:    metricsAddr,
			}

			return runServe(transport, debugMode, httpAddr, googleClientID, googleClientSecret, storeConfig, metricsConfig)
		},
	}

	cmd.Flags().BoolVar(&debugMode, "debug", false, "Enable debug logging")
	cmd.Flags().StringVarP(&transport, "transport", "t", "stdio", "Transport type: stdio or streamable-http")
	cmd.Flags().StringVar(&httpAddr, "http-addr", ":8080", "Address for the streamable-http transport")
	cmd.Flags().StringVar(&googleClientID, "google-client-id", "", "Google OAuth client ID (or GOOGLE_CLIENT_ID env var)")
	cmd.Flags().StringVar(&googleClientSecret, "google-client-secret", "", "Google OAuth client secret (or GOOGLE_CLIENT_SECRET env var)")
	cmd.Flags().StringVar(&storeType, "store", "file", "Grant store backend: file, memory, redis, postgres")
	cmd.Flags().StringVar(&storeDir, "store-dir", "", "Directory for the file store (default: user cache dir)")
	cmd.Flags().StringVar(&redisURL, "redis-url", "", "Redis URL for the redis store (e.g. redis://localhost:6379/0)")
	cmd.Flags().StringVar(&postgresURL, "postgres-url", "", "Postgres connection string for the postgres store")
	cmd.Flags().StringVar(&encryptionKey, "encryption-key", "", "Base64-encoded 32-byte key for grant encryption at rest (or VOICEDESK_ENCRYPTION_KEY env var)")
	cmd.Flags().BoolVar(&metricsEnabled, "metrics-enabled", true, "Enable the Prometheus metrics server")
	cmd.Flags().StringVar(&metricsAddr, "metrics-addr", server.DefaultMetricsAddr, "Address for the metrics server")

	return cmd
}

// buildStore constructs the configured grant store. The returned
// closer releases the backing connection pool, if any.
func buildStore(ctx context.Context, config StoreConfig) (credentials.Store, func() error, error) {
	var sealer *credentials.Sealer
	if len(config.EncryptionKey) > 0 {
		var err error
		sealer, err = credentials.NewSealer(config.EncryptionKey)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to create sealer: %w", err)
		}
	}

	switch config.Type {
	case "file", "":
		store, err := credentials.NewFileStore(config.Dir, sealer)
		if err != nil {
			return nil, nil, err
		}
		return store, nil, nil

	case "memory":
		return credentials.NewMemoryStore(), nil, nil

	case "redis":
		if config.RedisURL == "" {
			return nil, nil, fmt.Errorf("--redis-url is required for the redis store")
		}
		store, err := credentials.NewRedisStore(ctx, config.RedisURL, credentials.DefaultRedisKeyPrefix, sealer)
		if err != nil {
			return nil, nil, err
		}
		return store, store.Close, nil

	case "postgres":
		if config.PostgresURL == "" {
			return nil, nil, fmt.Errorf("--postgres-url is required for the postgres store")
		}
		store, err := credentials.NewPostgresStore(ctx, config.PostgresURL, sealer)
		if err != nil {
			return nil, nil, err
		}
		return store, func() error { store.Close(); return nil }, nil

	default:
		return nil, nil, fmt.Errorf("unsupported store type: %s (supported: file, memory, redis, postgres)", config.Type)
	}
}

// disabledRefresher is used when no OAuth client is configured.
type disabledRefresher struct{}

func (disabledRefresher) Refresh(context.Context, *credentials.Grant) (*credentials.Grant, error) {
	return nil, fmt.Errorf("token refresh unavailable: no Google OAuth client configured")
}

func runServe(transport string, debugMode bool, httpAddr string, googleClientID, googleClientSecret string, storeConfig StoreConfig, metricsConfig MetricsConfig) error {
	logger := logging.Setup(debugMode)

	shutdownCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	instrConfig := instrumentation.DefaultConfig()
	instrConfig.ServiceVersion = version
	if err := instrConfig.Validate(); err != nil {
		return fmt.Errorf("invalid instrumentation config: %w", err)
	}
	provider, err := instrumentation.NewProvider(shutdownCtx, instrConfig)
	if err != nil {
		return fmt.Errorf("failed to initialize instrumentation: %w", err)
	}

	store, storeCloser, err := buildStore(shutdownCtx, storeConfig)
	if err != nil {
		return fmt.Errorf("failed to initialize grant store: %w", err)
	}
	storeName := storeConfig.Type
	if storeName == "" {
		storeName = "file"
	}
	var grantStore credentials.Store = store
	if provider.Enabled() {
		grantStore = credentials.NewInstrumentedStore(store, storeName, provider.Metrics())
	}
	logger.Info("grant store initialized", logging.Status(storeName))

	if googleClientID == "" {
		googleClientID = os.Getenv(google.EnvClientID)
	}
	if googleClientSecret == "" {
		googleClientSecret = os.Getenv(google.EnvClientSecret)
	}

	var authConfig *google.Config
	var refresher grants.Refresher = disabledRefresher{}
	if googleClientID != "" && googleClientSecret != "" {
		authConfig, err = google.NewConfig(googleClientID, googleClientSecret)
		if err != nil {
			return err
		}
		refresher = grants.NewOAuthRefresher(authConfig.OAuthConfig(), nil)
	} else {
		logger.Warn("no Google OAuth client configured, expired grants cannot be refreshed")
	}

	mgr := grants.NewManager(grantStore, refresher, logger)
	if provider.Enabled() {
		mgr.SetMetrics(provider.Metrics())
	}

	engine := scheduling.NewEngine(logger)
	facade := agent.NewFacade(mgr, calendar.Factory{Metrics: provider.Metrics()}, engine, logger)

	sc := server.NewServerContext(shutdownCtx, facade, mgr, authConfig)
	sc.SetInstrumentation(provider, instrumentation.NewAuditLogger(logger, instrConfig.Audit))
	if storeCloser != nil {
		sc.SetStoreCloser(storeCloser)
	}

	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := sc.Shutdown(ctx); err != nil {
			logger.Error("error during shutdown", logging.Err(err))
		}
	}()

	health := server.NewHealthChecker(sc)

	var metricsServer *server.MetricsServer
	if metricsConfig.Enabled && provider.Enabled() && instrConfig.MetricsExporter == instrumentation.ExporterPrometheus {
		metricsServer, err = server.NewMetricsServer(server.MetricsServerConfig{
			Addr:     metricsConfig.Addr,
			Provider: provider,
			Health:   health,
		})
		if err != nil {
			return fmt.Errorf("failed to create metrics server: %w", err)
		}
		go func() {
			if err := metricsServer.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logger.Error("metrics server failed", logging.Err(err))
			}
		}()
		defer func() {
			ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			if err := metricsServer.Shutdown(ctx); err != nil {
				logger.Error("error during metrics server shutdown", logging.Err(err))
			}
		}()
	}

	mcpSrv := mcpserver.NewMCPServer("voicedesk", version,
		mcpserver.WithToolCapabilities(true),
	)

	if err := schedule_tools.RegisterScheduleTools(mcpSrv, sc); err != nil {
		return fmt.Errorf("failed to register schedule tools: %w", err)
	}

	switch transport {
	case "stdio":
		return runStdioServer(mcpSrv)
	case "streamable-http":
		logger.Info("starting MCP server", logging.Status("streamable-http"))
		return runStreamableHTTPServer(shutdownCtx, mcpSrv, httpAddr, health)
	default:
		return fmt.Errorf("unsupported transport type: %s (supported: stdio, streamable-http)", transport)
	}
}

func runStdioServer(mcpSrv *mcpserver.MCPServer) error {
	serverDone := make(chan error, 1)
	go func() {
		defer close(serverDone)
		if err := mcpserver.ServeStdio(mcpSrv); err != nil {
			serverDone <- err
		}
	}()

	if err := <-serverDone; err != nil {
		return fmt.Errorf("server stopped with error: %w", err)
	}
	return nil
}

func runStreamableHTTPServer(ctx context.Context, mcpSrv *mcpserver.MCPServer, addr string, health *server.HealthChecker) error {
	httpServer := mcpserver.NewStreamableHTTPServer(mcpSrv)

	serverDone := make(chan error, 1)
	go func() {
		defer close(serverDone)
		if err := httpServer.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverDone <- err
		}
	}()

	select {
	case err := <-serverDone:
		if err != nil {
			return fmt.Errorf("server stopped with error: %w", err)
		}
		return nil
	case <-ctx.Done():
		health.SetReady(false)
		shutdown, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return httpServer.Shutdown(shutdown)
	}
}
