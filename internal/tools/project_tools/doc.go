// Package project_tools provides MCP tools for TickTick projects.
package project_tools
