// Package cmd implements the command-line interface for voicedesk.
//
// This package provides the following commands:
//   - serve: Start the MCP server exposing the calendar tools
//   - auth: Run the OAuth authorization flow for a tenant
//   - version: Display version information
//
// The serve command is the default command when no subcommand is
// specified.
package cmd
