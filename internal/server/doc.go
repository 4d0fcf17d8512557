// Package server holds the shared runtime state for the MCP server.
//
// ServerContext wires the configuration store, the TickTick client, the
// OTP gate, the archiver and the deletion policy engine together and
// hands them to tool and resource handlers. The TickTick client is
// created lazily on first use so the server can start before the user
// has authenticated.
//
// The package also provides health endpoints for liveness and readiness
// probes and a dedicated metrics server that exposes Prometheus metrics
// on its own port, away from application traffic.
package server
