// Package instrumentation provides OpenTelemetry metrics and audit
// logging for the ticktick-access server.
//
// Metrics cover the HTTP surface, TickTick API calls, MCP tool
// invocations and the deletion pipeline. Two exporters are supported:
// Prometheus (pull, the default) and stdout (periodic push, for
// development). Configuration is environment driven, see DefaultConfig.
//
// Audit logging records every tool invocation through slog so that
// destructive operations leave a structured trail independent of the
// archiver's snapshot log.
package instrumentation
