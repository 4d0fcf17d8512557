// Package cmd implements the command-line interface for ticktick-access.
//
// This package provides the following commands:
//   - serve: Start the MCP server to provide TickTick tools for AI assistants
//   - auth: Run the OAuth flow and store the access token
//   - client: Manage the TickTick OAuth client credentials
//   - status: Display configuration and authentication status
//   - projects, tasks: Work with TickTick projects and tasks directly
//   - otp: Generate a one-time password for elevated deletion
//   - settings: Inspect and change behavior settings
//   - version: Display version information
//
// The status command is the default command when no subcommand is specified.
package cmd
