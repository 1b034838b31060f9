package connection

import (
	"errors"
	"time"
)

// Errors
var (
	ErrNotConnected    = errors.New("not connected")
	ErrStaleConnection = errors.New("connection stale (no inbound traffic)")
	ErrAlreadyClosed   = errors.New("already closed")
	ErrMaxAttempts     = errors.New("max connection attempts exceeded")
)

// TimestampedMessage wraps raw message data with receive timestamp.
type TimestampedMessage struct {
	Data       []byte    // Raw message bytes from the websocket
	ReceivedAt time.Time // Local timestamp when ReadMessage() returned
}

// pingMessage is the protocol-level keepalive sent while connected.
// The server answers with {"type":"PONG"}.
var pingMessage = []byte(`{"type":"PING"}`)

// EventListener receives lifecycle events from the supervisor.
// Implementations must not block; all callbacks run on the supervisor's
// network goroutine.
type EventListener interface {
	// OnConnected fires after a successful handshake.
	OnConnected(at time.Time)

	// OnMessage fires for every inbound message, raw and unparsed.
	OnMessage(msg TimestampedMessage)

	// OnPingSent fires when a keepalive ping is written. The next inbound
	// message closes the round trip for latency measurement.
	OnPingSent(at time.Time)

	// OnDisconnected fires when the connection is lost or closed.
	// reason is nil for an operator-requested stop.
	OnDisconnected(reason error, at time.Time)

	// OnError fires for transport errors that did not (yet) drop the
	// connection, e.g. a failed keepalive write.
	OnError(err error)
}

// ClientConfig configures a websocket client.
type ClientConfig struct {
	URL              string        // Fully-built connect URL (token and version in query)
	HandshakeTimeout time.Duration // Dial deadline
	WriteTimeout     time.Duration // Write deadline for sends
	BufferSize       int           // Message channel buffer size
}

// DefaultClientConfig returns sensible defaults.
func DefaultClientConfig() ClientConfig {
	return ClientConfig{
		HandshakeTimeout: 10 * time.Second,
		WriteTimeout:     5 * time.Second,
		BufferSize:       100,
	}
}

// SupervisorConfig configures the Connection Supervisor.
type SupervisorConfig struct {
	URL               string        // Fully-built connect URL
	PingInterval      time.Duration // Keepalive send cadence
	PongTimeout       time.Duration // Max inbound silence before the socket is stale
	HandshakeTimeout  time.Duration // Per-attempt dial deadline
	WriteTimeout      time.Duration // Write deadline for sends
	ReconnectBaseWait time.Duration // Base wait time for reconnection
	ReconnectMaxWait  time.Duration // Max wait time for reconnection
	MaxAttempts       int           // Consecutive failures before Failed; 0 = retry forever
	BufferSize        int           // Client message channel buffer size
}

// DefaultSupervisorConfig returns sensible defaults.
func DefaultSupervisorConfig() SupervisorConfig {
	return SupervisorConfig{
		PingInterval:      10 * time.Second,
		PongTimeout:       30 * time.Second,
		HandshakeTimeout:  10 * time.Second,
		WriteTimeout:      5 * time.Second,
		ReconnectBaseWait: 1 * time.Second,
		ReconnectMaxWait:  60 * time.Second,
		BufferSize:        100,
	}
}
