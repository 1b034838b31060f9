package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Load reads a config file and expands environment variables. The format is
// chosen by extension: .yaml/.yml parse as YAML, anything else as JSON.
func Load(path string) (*NodeConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	// Expand ${VAR} environment variables
	expanded := []byte(os.ExpandEnv(string(data)))

	var cfg NodeConfig
	switch filepath.Ext(path) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(expanded, &cfg); err != nil {
			return nil, fmt.Errorf("parse config yaml: %w", err)
		}
	default:
		if err := json.Unmarshal(expanded, &cfg); err != nil {
			return nil, fmt.Errorf("parse config json: %w", err)
		}
		// Older config.json files keep the account fields at the top level.
		if cfg.Node.AccessToken == "" {
			var flat NodeSection
			if err := json.Unmarshal(expanded, &flat); err == nil {
				if flat.AccessToken != "" {
					cfg.Node.AccessToken = flat.AccessToken
				}
				if cfg.Node.WSURL == "" {
					cfg.Node.WSURL = flat.WSURL
				}
				if cfg.Node.Version == "" {
					cfg.Node.Version = flat.Version
				}
			}
		}
	}

	return &cfg, nil
}

// LoadWithDefaults loads config and applies default values.
func LoadWithDefaults(path string) (*NodeConfig, error) {
	cfg, err := Load(path)
	if err != nil {
		return nil, err
	}
	cfg.applyDefaults()
	return cfg, nil
}

// LoadAndValidate loads config, applies defaults, and validates.
func LoadAndValidate(path string) (*NodeConfig, error) {
	cfg, err := LoadWithDefaults(path)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
