// Package archive snapshots tasks to durable storage before they are
// deleted remotely.
//
// Archival is best-effort: failures are logged and swallowed so a broken
// disk never blocks a deletion the user asked for. Each archived task gets
// a timestamped JSON snapshot plus one line in a shared append-only audit
// log, enabling offline forensic recovery.
package archive
