package config

import "time"

// Default values for optional configuration fields.
const (
	DefaultWSURL             = "wss://secure.ws.teneo.pro/websocket"
	DefaultVersion           = "v0.2"
	DefaultPingInterval      = 10 * time.Second
	DefaultPongTimeout       = 30 * time.Second
	DefaultHandshakeTimeout  = 10 * time.Second
	DefaultWriteTimeout      = 5 * time.Second
	DefaultReconnectBaseWait = 1 * time.Second
	DefaultReconnectMaxWait  = 60 * time.Second
	DefaultBufferSize        = 100
	DefaultPublishInterval   = 1 * time.Second
	DefaultDashboardURL      = "https://api.teneo.pro"
	DefaultDashboardInterval = 60 * time.Second
	DefaultDashboardTimeout  = 10 * time.Second
	DefaultDashboardRetries  = 3
	DefaultHealthPort        = 8080
)

func (c *NodeConfig) applyDefaults() {
	// Node defaults
	if c.Node.WSURL == "" {
		c.Node.WSURL = DefaultWSURL
	}
	if c.Node.Version == "" {
		c.Node.Version = DefaultVersion
	}

	// Connection defaults
	if c.Connection.PingInterval == 0 {
		c.Connection.PingInterval = DefaultPingInterval
	}
	if c.Connection.PongTimeout == 0 {
		c.Connection.PongTimeout = DefaultPongTimeout
	}
	if c.Connection.HandshakeTimeout == 0 {
		c.Connection.HandshakeTimeout = DefaultHandshakeTimeout
	}
	if c.Connection.WriteTimeout == 0 {
		c.Connection.WriteTimeout = DefaultWriteTimeout
	}
	if c.Connection.ReconnectBaseWait == 0 {
		c.Connection.ReconnectBaseWait = DefaultReconnectBaseWait
	}
	if c.Connection.ReconnectMaxWait == 0 {
		c.Connection.ReconnectMaxWait = DefaultReconnectMaxWait
	}
	if c.Connection.BufferSize == 0 {
		c.Connection.BufferSize = DefaultBufferSize
	}

	// Publisher defaults
	if c.Publisher.Interval == 0 {
		c.Publisher.Interval = DefaultPublishInterval
	}

	// Dashboard defaults
	if c.Dashboard.URL == "" {
		c.Dashboard.URL = DefaultDashboardURL
	}
	if c.Dashboard.Interval == 0 {
		c.Dashboard.Interval = DefaultDashboardInterval
	}
	if c.Dashboard.Timeout == 0 {
		c.Dashboard.Timeout = DefaultDashboardTimeout
	}
	if c.Dashboard.MaxRetries == 0 {
		c.Dashboard.MaxRetries = DefaultDashboardRetries
	}

	// Health defaults
	if c.Health.Port == 0 {
		c.Health.Port = DefaultHealthPort
	}
}
