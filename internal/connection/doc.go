// Package connection implements the Connection Supervisor component.
//
// The Connection Supervisor:
//   - Owns the single websocket connection to the Teneo endpoint
//   - Drives the Disconnected/Connecting/Connected/Reconnecting/Failed
//     state machine
//   - Sends the protocol-level {"type":"PING"} keepalive and detects
//     silently-dead sockets by inbound silence
//   - Reconnects with jittered exponential backoff
//   - Emits lifecycle events to an EventListener (the message router)
package connection
