// Package schedule_tools registers the conversational calendar tools
// with the MCP server: current date/time, listing upcoming events,
// adding events, and checking availability.
//
// Every handler returns a text result, never a protocol error. The
// tool output is read aloud by the voice pipeline, so failures are
// already rendered as sentences by the facade.
package schedule_tools
