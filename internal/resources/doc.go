// Package resources provides MCP resources for exposing TickTick data.
// Resources are read-only data sources that MCP clients can fetch, such as
// the project list and per-project task collections.
package resources
