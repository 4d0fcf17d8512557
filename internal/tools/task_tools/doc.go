// Package task_tools provides MCP tools for TickTick tasks: listing,
// creation, updates, completion and policy-checked deletion.
package task_tools
