// Package instrumentation provides OpenTelemetry metrics and tracing
// plus structured audit logging for the voicedesk server.
//
// Metrics cover the tool surface (invocation counts and latency), the
// Google Calendar API (operation counts and latency), token refreshes
// and grant-store operations. The meter provider exports via
// Prometheus by default; OTLP and stdout exporters are available for
// collector-based setups and local debugging. Tracing is off unless an
// exporter is configured.
//
// Audit logging records every tool invocation with an anonymized
// tenant identifier. Raw tenant ids never reach the audit stream
// unless PII logging is explicitly enabled.
package instrumentation
