package logging

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"log/slog"
	"os"
)

// Common log attribute keys for consistent naming across the codebase.
const (
	KeyOperation = "operation"
	KeyTenant    = "tenant"
	KeyTool      = "tool"
	KeyStore     = "store"
	KeyDuration  = "duration"
	KeyStatus    = "status"
	KeyError     = "error"
)

// Status values for consistent logging.
const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// Setup creates the process-wide logger. The MCP stdio transport owns
// stdout, so all logging goes to stderr.
func Setup(debug bool) *slog.Logger {
	return SetupWithWriter(os.Stderr, debug)
}

// SetupWithWriter creates a logger writing to w. Split out for tests.
func SetupWithWriter(w io.Writer, debug bool) *slog.Logger {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)
	return logger
}

// WithOperation returns a logger with the operation attribute set.
func WithOperation(logger *slog.Logger, operation string) *slog.Logger {
	return logger.With(slog.String(KeyOperation, operation))
}

// WithTool returns a logger with the tool attribute set.
func WithTool(logger *slog.Logger, tool string) *slog.Logger {
	return logger.With(slog.String(KeyTool, tool))
}

// WithTenant returns a logger with the anonymized tenant attribute set.
func WithTenant(logger *slog.Logger, tenant string) *slog.Logger {
	return logger.With(Tenant(tenant))
}

// Operation returns a slog attribute for the operation name.
func Operation(op string) slog.Attr {
	return slog.String(KeyOperation, op)
}

// Tool returns a slog attribute for the tool name.
func Tool(tool string) slog.Attr {
	return slog.String(KeyTool, tool)
}

// Status returns a slog attribute for the status.
func Status(status string) slog.Attr {
	return slog.String(KeyStatus, status)
}

// Err returns a slog attribute for an error.
// If err is nil, returns an empty Group attribute that will be omitted
// from output, so Err(maybeNilErr) is always safe to pass.
func Err(err error) slog.Attr {
	if err == nil {
		return slog.Group("")
	}
	return slog.String(KeyError, err.Error())
}

// AnonymizeTenant returns a hashed representation of a tenant id for
// logging purposes. Tenant ids identify customers and may embed phone
// numbers or emails; logs carry only the hash so entries can still be
// correlated.
func AnonymizeTenant(tenant string) string {
	if tenant == "" {
		return ""
	}
	hash := sha256.Sum256([]byte(tenant))
	return "tenant:" + hex.EncodeToString(hash[:8])
}

// Tenant returns a slog attribute with the anonymized tenant id.
func Tenant(tenant string) slog.Attr {
	return slog.String(KeyTenant, AnonymizeTenant(tenant))
}

// SanitizeToken returns a masked version of a token for logging.
// Only the length is exposed; even token prefixes can aid attacks.
func SanitizeToken(token string) string {
	if token == "" {
		return "<empty>"
	}
	return fmt.Sprintf("[token:%d chars]", len(token))
}
