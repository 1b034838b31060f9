package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func writeTempFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write temp file: %v", err)
	}
	return path
}

func TestLoad_JSON(t *testing.T) {
	json := `{
  "node": {
    "access_token": "tok-abc",
    "ws_url": "wss://secure.ws.teneo.pro/websocket",
    "version": "v0.2"
  },
  "health": {"port": 9000}
}`
	path := writeTempFile(t, "config.json", json)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Node.AccessToken != "tok-abc" {
		t.Errorf("AccessToken = %q, want %q", cfg.Node.AccessToken, "tok-abc")
	}
	if cfg.Node.WSURL != "wss://secure.ws.teneo.pro/websocket" {
		t.Errorf("WSURL = %q", cfg.Node.WSURL)
	}
	if cfg.Health.Port != 9000 {
		t.Errorf("Health.Port = %d, want 9000", cfg.Health.Port)
	}
}

func TestLoad_FlatJSON(t *testing.T) {
	// The original config.json kept account fields at the top level.
	json := `{"access_token": "tok-flat", "ws_url": "wss://example.com/ws", "version": "v0.2"}`
	path := writeTempFile(t, "config.json", json)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Node.AccessToken != "tok-flat" {
		t.Errorf("AccessToken = %q, want %q", cfg.Node.AccessToken, "tok-flat")
	}
	if cfg.Node.WSURL != "wss://example.com/ws" {
		t.Errorf("WSURL = %q, want %q", cfg.Node.WSURL, "wss://example.com/ws")
	}
}

func TestLoad_YAML(t *testing.T) {
	yaml := `
node:
  access_token: tok-yaml
  ws_url: wss://secure.ws.teneo.pro/websocket
  version: v0.2
dashboard:
  enabled: true
`
	path := writeTempFile(t, "config.yaml", yaml)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Node.AccessToken != "tok-yaml" {
		t.Errorf("AccessToken = %q, want %q", cfg.Node.AccessToken, "tok-yaml")
	}
	if !cfg.Dashboard.Enabled {
		t.Error("Dashboard.Enabled = false, want true")
	}
}

func TestLoad_EnvSubstitution(t *testing.T) {
	t.Setenv("TEST_TENEO_TOKEN", "secret123")

	json := `{"node": {"access_token": "${TEST_TENEO_TOKEN}"}}`
	path := writeTempFile(t, "config.json", json)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Node.AccessToken != "secret123" {
		t.Errorf("AccessToken = %q, want %q", cfg.Node.AccessToken, "secret123")
	}
}

func TestLoadWithDefaults(t *testing.T) {
	json := `{"node": {"access_token": "tok"}}`
	path := writeTempFile(t, "config.json", json)

	cfg, err := LoadWithDefaults(path)
	if err != nil {
		t.Fatalf("LoadWithDefaults failed: %v", err)
	}

	if cfg.Node.WSURL != DefaultWSURL {
		t.Errorf("WSURL = %q, want default %q", cfg.Node.WSURL, DefaultWSURL)
	}
	if cfg.Node.Version != DefaultVersion {
		t.Errorf("Version = %q, want default %q", cfg.Node.Version, DefaultVersion)
	}
	if cfg.Connection.PingInterval != DefaultPingInterval {
		t.Errorf("PingInterval = %v, want %v", cfg.Connection.PingInterval, DefaultPingInterval)
	}
	if cfg.Publisher.Interval != DefaultPublishInterval {
		t.Errorf("Publisher.Interval = %v, want %v", cfg.Publisher.Interval, DefaultPublishInterval)
	}
}

func TestValidate(t *testing.T) {
	valid := func() *NodeConfig {
		cfg := &NodeConfig{}
		cfg.Node.AccessToken = "tok"
		cfg.applyDefaults()
		return cfg
	}

	tests := []struct {
		name      string
		mutate    func(*NodeConfig)
		wantField string
	}{
		{"valid", func(c *NodeConfig) {}, ""},
		{"missing token", func(c *NodeConfig) { c.Node.AccessToken = "" }, "node.access_token"},
		{"missing ws_url", func(c *NodeConfig) { c.Node.WSURL = "" }, "node.ws_url"},
		{"insecure scheme", func(c *NodeConfig) { c.Node.WSURL = "ws://example.com/ws" }, "node.ws_url"},
		{"not a url", func(c *NodeConfig) { c.Node.WSURL = "://bad" }, "node.ws_url"},
		{"missing version", func(c *NodeConfig) { c.Node.Version = "" }, "node.version"},
		{"negative attempts", func(c *NodeConfig) { c.Connection.MaxAttempts = -1 }, "connection.max_attempts"},
		{"base above max", func(c *NodeConfig) { c.Connection.ReconnectBaseWait = 2 * c.Connection.ReconnectMaxWait }, "connection.reconnect_base_wait"},
		{"bad health port", func(c *NodeConfig) { c.Health.Port = 70000 }, "health.port"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)

			err := cfg.Validate()
			if tt.wantField == "" {
				if err != nil {
					t.Fatalf("Validate failed: %v", err)
				}
				return
			}

			var cfgErr *Error
			if !errors.As(err, &cfgErr) {
				t.Fatalf("expected *config.Error, got %v", err)
			}
			if cfgErr.Field != tt.wantField {
				t.Errorf("Field = %q, want %q", cfgErr.Field, tt.wantField)
			}
		})
	}
}

func TestLoadAndValidate_MissingToken(t *testing.T) {
	json := `{"node": {"ws_url": "wss://example.com/ws", "version": "v0.2"}}`
	path := writeTempFile(t, "config.json", json)

	_, err := LoadAndValidate(path)
	var cfgErr *Error
	if !errors.As(err, &cfgErr) {
		t.Fatalf("expected *config.Error, got %v", err)
	}
}
