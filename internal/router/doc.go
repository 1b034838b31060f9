// Package router parses raw websocket payloads and routes them into the
// session metrics.
//
// The router:
//   - Implements connection.EventListener
//   - Classifies messages by the live protocol (PONG, connect greeting,
//     server pulse) and extracts the points fields
//   - Ignores unknown message types (the wire contract is external and
//     may grow fields)
//   - Logs and drops malformed payloads without touching the connection
package router
