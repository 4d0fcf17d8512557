// Package security implements the one-time-password gate for destructive
// operations.
//
// Codes are short-lived and strictly single-use: validation consumes the
// persisted record before the candidate is even compared, so a wrong guess
// invalidates the code just like a correct one. The store keeps at most one
// record per purpose key; generating a new code silently replaces any
// existing one.
package security
