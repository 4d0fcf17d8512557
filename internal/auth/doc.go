// Package auth implements the OAuth 2.0 authorization code flow for
// TickTick. It starts a short-lived local HTTP server to capture the
// redirect, opens the user's browser for consent and exchanges the
// authorization code for an access token.
package auth
