// Package ticktick provides a client for the TickTick Open API.
//
// This package wraps the TickTick REST API (open/v1) and provides
// functionality for:
//   - Listing projects and fetching project data
//   - Managing tasks (list, get, create, update, complete, delete)
//   - Fetching raw task snapshots for pre-deletion archival
//
// All calls are authenticated with the bearer token resolved through the
// config store. Network and HTTP errors are returned to the caller wrapped
// with request context; no retries are attempted.
package ticktick
