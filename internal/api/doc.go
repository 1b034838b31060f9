// Package api provides access to the Teneo dashboard REST API.
//
// The dashboard reports account-level stats (points_today, heartbeats)
// that the node cross-checks against its own websocket-derived counters.
// Requests authenticate with the same access token as the websocket.
package api
