package pipeline

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/tailored-agentic-units/dealpipe/configsvc"
	"github.com/tailored-agentic-units/dealpipe/params"
)

const defaultObserver = "slog"

// Config holds initialization parameters for every subsystem. Each section
// is handed to that subsystem's config-driven constructor.
type Config struct {
	Params   params.Config          `json:"params"`
	Server   configsvc.ServerConfig `json:"server"`
	Observer string                 `json:"observer,omitempty"` // Registered observer name.
}

// DefaultConfig returns a Config with defaults for all subsystems.
func DefaultConfig() Config {
	return Config{
		Params:   params.DefaultConfig(),
		Server:   configsvc.DefaultServerConfig(),
		Observer: defaultObserver,
	}
}

// Merge applies non-zero values from source into c, delegating to each
// subsystem's Merge method.
func (c *Config) Merge(source *Config) {
	c.Params.Merge(&source.Params)
	c.Server.Merge(&source.Server)

	if source.Observer != "" {
		c.Observer = source.Observer
	}
}

// LoadConfig reads a JSON config file, merges it with defaults, and returns
// the resulting Config.
func LoadConfig(filename string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var loaded Config
	if err := json.Unmarshal(data, &loaded); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	cfg.Merge(&loaded)
	return &cfg, nil
}
