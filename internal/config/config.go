package config

import "time"

// NodeConfig is the root configuration for a node monitor instance.
type NodeConfig struct {
	Node       NodeSection       `json:"node" yaml:"node"`
	Connection ConnectionSection `json:"connection" yaml:"connection"`
	Publisher  PublisherSection  `json:"publisher" yaml:"publisher"`
	Dashboard  DashboardSection  `json:"dashboard" yaml:"dashboard"`
	Health     HealthSection     `json:"health" yaml:"health"`
}

// NodeSection holds the Teneo account and endpoint settings.
type NodeSection struct {
	AccessToken string `json:"access_token" yaml:"access_token"` // Secret; never logged verbatim
	WSURL       string `json:"ws_url" yaml:"ws_url"`
	Version     string `json:"version" yaml:"version"` // Protocol version string
}

// ConnectionSection holds websocket supervisor settings.
type ConnectionSection struct {
	PingInterval      time.Duration `json:"ping_interval" yaml:"ping_interval"`
	PongTimeout       time.Duration `json:"pong_timeout" yaml:"pong_timeout"` // Max inbound silence before the socket is stale
	HandshakeTimeout  time.Duration `json:"handshake_timeout" yaml:"handshake_timeout"`
	WriteTimeout      time.Duration `json:"write_timeout" yaml:"write_timeout"`
	ReconnectBaseWait time.Duration `json:"reconnect_base_wait" yaml:"reconnect_base_wait"`
	ReconnectMaxWait  time.Duration `json:"reconnect_max_wait" yaml:"reconnect_max_wait"`
	MaxAttempts       int           `json:"max_attempts" yaml:"max_attempts"` // Consecutive failures before Failed; 0 = retry forever
	BufferSize        int           `json:"buffer_size" yaml:"buffer_size"`
}

// PublisherSection holds status publisher settings.
type PublisherSection struct {
	Interval time.Duration `json:"interval" yaml:"interval"`
}

// DashboardSection holds dashboard API poller settings.
type DashboardSection struct {
	Enabled    bool          `json:"enabled" yaml:"enabled"`
	URL        string        `json:"url" yaml:"url"`
	Interval   time.Duration `json:"interval" yaml:"interval"`
	Timeout    time.Duration `json:"timeout" yaml:"timeout"`
	MaxRetries int           `json:"max_retries" yaml:"max_retries"`
}

// HealthSection holds the local health endpoint settings.
type HealthSection struct {
	Port int `json:"port" yaml:"port"`
}
