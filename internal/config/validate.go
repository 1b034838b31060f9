package config

import (
	"fmt"
	"net/url"
)

// Error is a fatal configuration problem. The process must not attempt any
// network activity after receiving one.
type Error struct {
	Field  string
	Reason string
}

func (e *Error) Error() string {
	return fmt.Sprintf("config: %s %s", e.Field, e.Reason)
}

// Validate checks that all required fields are set and values are valid.
func (c *NodeConfig) Validate() error {
	if c.Node.AccessToken == "" {
		return &Error{Field: "node.access_token", Reason: "is required"}
	}
	if c.Node.WSURL == "" {
		return &Error{Field: "node.ws_url", Reason: "is required"}
	}

	u, err := url.Parse(c.Node.WSURL)
	if err != nil {
		return &Error{Field: "node.ws_url", Reason: fmt.Sprintf("is not a valid URL: %v", err)}
	}
	if u.Scheme != "wss" {
		return &Error{Field: "node.ws_url", Reason: fmt.Sprintf("must use the wss scheme, got %q", u.Scheme)}
	}
	if u.Host == "" {
		return &Error{Field: "node.ws_url", Reason: "has no host"}
	}

	if c.Node.Version == "" {
		return &Error{Field: "node.version", Reason: "is required"}
	}

	if c.Connection.MaxAttempts < 0 {
		return &Error{Field: "connection.max_attempts", Reason: "must be >= 0"}
	}
	if c.Connection.ReconnectBaseWait > c.Connection.ReconnectMaxWait {
		return &Error{Field: "connection.reconnect_base_wait", Reason: "cannot exceed reconnect_max_wait"}
	}
	if c.Connection.BufferSize < 1 {
		return &Error{Field: "connection.buffer_size", Reason: "must be >= 1"}
	}

	if c.Dashboard.Enabled {
		if _, err := url.Parse(c.Dashboard.URL); err != nil {
			return &Error{Field: "dashboard.url", Reason: fmt.Sprintf("is not a valid URL: %v", err)}
		}
	}

	if c.Health.Port < 1 || c.Health.Port > 65535 {
		return &Error{Field: "health.port", Reason: fmt.Sprintf("must be between 1 and 65535, got %d", c.Health.Port)}
	}

	return nil
}
