// Package deletion decides whether, and how, a task delete proceeds.
//
// The engine composes the settings store, the OTP gate, and the archiver
// around the raw destructive API call. Every invocation runs a single pass:
// access check, elevation/OTP check, archive-policy resolution, best-effort
// snapshot, then the remote delete. All expected outcomes — policy refusals
// included — come back as a structured Result rather than an error.
package deletion
