package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

// rootCmd represents the base command for the ticktick-access application
var rootCmd = &cobra.Command{
	Use:   "ticktick",
	Short: "TickTick task management with deletion safety rails",
	Long: `ticktick-access connects AI assistants and the command line to the
TickTick task management API.

Task deletion goes through a policy engine: it can be disabled outright,
gated behind a one-time password, and tasks are archived to local JSON
snapshots before they are removed.

It can run as:
  - A standalone CLI tool
  - An MCP (Model Context Protocol) server for AI assistants`,
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
	rootCmd.SetVersionTemplate(`{{printf "ticktick-access version %s\n" .Version}}`)

	// If no subcommand is provided, show the account status by default
	if len(os.Args) == 1 {
		os.Args = append(os.Args, "status")
	}

	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(newServeCmd())
	rootCmd.AddCommand(newAuthCmd())
	rootCmd.AddCommand(newClientCmd())
	rootCmd.AddCommand(newStatusCmd())
	rootCmd.AddCommand(newProjectsCmd())
	rootCmd.AddCommand(newTasksCmd())
	rootCmd.AddCommand(newOtpCmd())
	rootCmd.AddCommand(newSettingsCmd())
	rootCmd.AddCommand(newVersionCmd())
}
