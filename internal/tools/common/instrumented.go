package common

import (
	"context"
	"time"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/larkvale/voicedesk/internal/instrumentation"
	"github.com/larkvale/voicedesk/internal/server"
)

// InstrumentedToolHandler wraps a tool handler with metrics and audit
// logging.
//
// Usage:
//
//	s.AddTool(myTool, common.InstrumentedToolHandler("my_tool", sc, handler))
func InstrumentedToolHandler(
	toolName string,
	sc *server.ServerContext,
	handler func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error),
) func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		metrics := sc.Metrics()
		auditLogger := sc.AuditLogger()

		if metrics == nil && auditLogger == nil {
			return handler(ctx, request)
		}

		start := time.Now()
		invocation := instrumentation.NewToolInvocation(toolName).
			WithTenant(GetTenantFromArgs(request.GetArguments())).
			WithSpanContext(ctx)

		result, err := handler(ctx, request)
		duration := time.Since(start)

		// Handlers speak failures as sentences, so result.IsError is
		// the error signal here, not err.
		success := err == nil && (result == nil || !result.IsError)
		invocation.Complete(success, err)

		if metrics != nil {
			metrics.RecordToolInvocation(ctx, toolName, invocation.Status(), duration)
		}
		if auditLogger != nil {
			auditLogger.LogToolInvocation(ctx, invocation)
		}

		return result, err
	}
}
