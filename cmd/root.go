package cmd

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

// rootCmd represents the base command for the voicedesk application
var rootCmd = &cobra.Command{
	Use:   "voicedesk",
	Short: "Calendar scheduling backend for a voice receptionist agent",
	Long: `voicedesk manages per-tenant Google Calendar credentials and exposes
the scheduling operations a conversational voice agent needs: current
date/time, listing upcoming events, adding events, and checking
availability.

It runs as an MCP (Model Context Protocol) server over stdio or
streamable HTTP.`,
	SilenceUsage: true,
}

// version will be set by main
var version = "dev"

// SetVersion sets the version for the root command
func SetVersion(v string) {
	version = v
	rootCmd.Version = v
}

// Execute is the main entry point for the CLI application
func Execute() {
	rootCmd.SetVersionTemplate(`{{printf "voicedesk version %s\n" .Version}}`)

	// Local configuration via .env is optional.
	_ = godotenv.Load()

	// If no subcommand is provided, run the serve command by default
	if len(os.Args) == 1 {
		os.Args = append(os.Args, "serve")
	}

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(newServeCmd())
	rootCmd.AddCommand(newAuthCmd())
	rootCmd.AddCommand(newVersionCmd())
}
