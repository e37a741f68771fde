package schedule_tools

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/larkvale/voicedesk/internal/server"
	"github.com/larkvale/voicedesk/internal/tools/common"
)

// RegisterScheduleTools registers the calendar tools with the MCP
// server.
func RegisterScheduleTools(s *mcpserver.MCPServer, sc *server.ServerContext) error {
	currentDateTimeTool := mcp.NewTool("get_current_datetime",
		mcp.WithDescription("Get the current date and time. Useful for resolving relative dates like 'tomorrow' or 'next week'."),
	)
	s.AddTool(currentDateTimeTool, common.InstrumentedToolHandler("get_current_datetime", sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handleGetCurrentDateTime(ctx, request, sc)
		}))

	listEventsTool := mcp.NewTool("list_upcoming_events",
		mcp.WithDescription("List the upcoming calendar events within the next few days"),
		mcp.WithNumber("daysAhead",
			mcp.Description("How many days ahead to look (default: 7)"),
		),
		mcp.WithString("customerId",
			mcp.Description("Customer identifier for credential lookup (default: 'default')"),
		),
	)
	s.AddTool(listEventsTool, common.InstrumentedToolHandler("list_upcoming_events", sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handleListUpcomingEvents(ctx, request, sc)
		}))

	addEventTool := mcp.NewTool("add_calendar_event",
		mcp.WithDescription("Add an event to the calendar"),
		mcp.WithString("title",
			mcp.Required(),
			mcp.Description("Event title"),
		),
		mcp.WithString("date",
			mcp.Required(),
			mcp.Description("Event date (format: YYYY-MM-DD, e.g., 2025-08-01)"),
		),
		mcp.WithString("startTime",
			mcp.Required(),
			mcp.Description("Start time in 24-hour format (e.g., 14:00 for 2 PM)"),
		),
		mcp.WithNumber("durationMinutes",
			mcp.Description("Event duration in minutes (default: 60)"),
		),
		mcp.WithString("description",
			mcp.Description("Optional event description"),
		),
		mcp.WithString("customerId",
			mcp.Description("Customer identifier for credential lookup (default: 'default')"),
		),
	)
	s.AddTool(addEventTool, common.InstrumentedToolHandler("add_calendar_event", sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handleAddCalendarEvent(ctx, request, sc)
		}))

	checkAvailabilityTool := mcp.NewTool("check_availability",
		mcp.WithDescription("Check whether a time period on a given date is free"),
		mcp.WithString("date",
			mcp.Required(),
			mcp.Description("The date to check (format: YYYY-MM-DD, e.g., 2025-08-01)"),
		),
		mcp.WithString("startTime",
			mcp.Required(),
			mcp.Description("Start time in 24-hour format (e.g., 14:00 for 2 PM)"),
		),
		mcp.WithString("endTime",
			mcp.Required(),
			mcp.Description("End time in 24-hour format (e.g., 16:00 for 4 PM)"),
		),
		mcp.WithString("customerId",
			mcp.Description("Customer identifier for credential lookup (default: 'default')"),
		),
	)
	s.AddTool(checkAvailabilityTool, common.InstrumentedToolHandler("check_availability", sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handleCheckAvailability(ctx, request, sc)
		}))

	return nil
}

func handleGetCurrentDateTime(ctx context.Context, _ mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultText(sc.Facade().GetCurrentDateTime(ctx)), nil
}

func handleListUpcomingEvents(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := request.GetArguments()
	tenant := common.GetTenantFromArgs(args)

	daysAhead := 0
	if v, ok := args["daysAhead"].(float64); ok {
		daysAhead = int(v)
	}

	return mcp.NewToolResultText(sc.Facade().ListUpcomingEvents(ctx, tenant, daysAhead)), nil
}

func handleAddCalendarEvent(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := request.GetArguments()
	tenant := common.GetTenantFromArgs(args)

	title, _ := args["title"].(string)
	date, _ := args["date"].(string)
	startTime, _ := args["startTime"].(string)
	description, _ := args["description"].(string)

	durationMinutes := 0
	if v, ok := args["durationMinutes"].(float64); ok {
		durationMinutes = int(v)
	}

	sentence := sc.Facade().AddCalendarEvent(ctx, tenant, title, date, startTime, durationMinutes, description)
	return mcp.NewToolResultText(sentence), nil
}

func handleCheckAvailability(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := request.GetArguments()
	tenant := common.GetTenantFromArgs(args)

	date, _ := args["date"].(string)
	startTime, _ := args["startTime"].(string)
	endTime, _ := args["endTime"].(string)

	sentence := sc.Facade().CheckAvailability(ctx, tenant, date, startTime, endTime)
	return mcp.NewToolResultText(sentence), nil
}
