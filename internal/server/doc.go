// Package server holds the shared state behind the MCP server: the
// tool facade, the grant manager, instrumentation, and the sidecar
// HTTP servers for metrics and health probes.
package server
