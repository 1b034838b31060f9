// Package poller periodically fetches account stats from the Teneo
// dashboard API and feeds them into the session metrics.
//
// Fetch failures are logged and skipped; the websocket supervisor is
// never affected by dashboard availability.
package poller
