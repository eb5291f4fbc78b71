package config

import (
	"fmt"
	"os"

	"github.com/yairfalse/virta/types"
	"gopkg.in/yaml.v3"
)

// Config represents the main configuration
type Config struct {
	Version   string          `yaml:"version"`
	Region    string          `yaml:"region"`
	Service   string          `yaml:"service"`
	Stage     string          `yaml:"stage"`
	StackName string          `yaml:"stack_name,omitempty"`
	Forwarder Forwarder       `yaml:"forwarder"`
	Logging   any             `yaml:"logging,omitempty"`
	Handlers  []types.Handler `yaml:"handlers,omitempty"`
	APIs      APIs            `yaml:"apis,omitempty"`
}

// Forwarder configures the log forwarding destination and modes.
// Destination is a literal function identifier or an intrinsic
// expression resolved at deploy time.
type Forwarder struct {
	Destination            any  `yaml:"destination"`
	Extension              bool `yaml:"extension"`
	IntegrationTesting     bool `yaml:"integration_testing"`
	SubscribeAccessLogs    bool `yaml:"subscribe_access_logs"`
	SubscribeExecutionLogs bool `yaml:"subscribe_execution_logs"`
}

// APIs names the logical identifiers the upstream generator used for
// the API resources, so execution log groups can reference them
type APIs struct {
	RestAPIID      string `yaml:"rest_api_id,omitempty"`
	WebsocketAPIID string `yaml:"websocket_api_id,omitempty"`
}

// Default logical identifiers used by the upstream generator
const (
	DefaultRestAPIID      = "RestApi"
	DefaultWebsocketAPIID = "WebsocketApi"
)

// LoadConfig loads configuration from file
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path) // #nosec G304 -- path is intentional user input
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &cfg, nil
}

// Validate ensures config has required fields
func (c *Config) Validate() error {
	if c.Version == "" {
		return fmt.Errorf("version is required")
	}
	if c.Region == "" {
		return fmt.Errorf("region is required")
	}
	if c.Service == "" {
		return fmt.Errorf("service is required")
	}
	if c.Stage == "" {
		return fmt.Errorf("stage is required")
	}
	switch destination := c.Forwarder.Destination.(type) {
	case nil:
		return fmt.Errorf("forwarder destination is required")
	case string:
		if destination == "" {
			return fmt.Errorf("forwarder destination is required")
		}
	}
	return nil
}

// RestAPIID returns the configured REST API logical id or the default
func (c *Config) RestAPIID() string {
	if c.APIs.RestAPIID != "" {
		return c.APIs.RestAPIID
	}
	return DefaultRestAPIID
}

// WebsocketAPIID returns the configured WebSocket API logical id or the default
func (c *Config) WebsocketAPIID() string {
	if c.APIs.WebsocketAPIID != "" {
		return c.APIs.WebsocketAPIID
	}
	return DefaultWebsocketAPIID
}
