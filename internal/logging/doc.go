// Package logging provides structured logging helpers built on log/slog.
//
// It defines canonical attribute keys used across the codebase so that log
// lines from the CLI, the MCP server, and the deletion subsystem stay
// consistent and greppable, plus small helpers for masking secrets before
// they reach a log sink.
package logging
