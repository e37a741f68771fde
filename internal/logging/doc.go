// Package logging provides structured logging helpers built on log/slog.
//
// It defines the canonical attribute keys used across the codebase and
// helpers for attaching them consistently, along with sanitization
// utilities so tenant identifiers and credentials never appear in logs
// verbatim.
package logging
