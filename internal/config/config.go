// Package config loads the board's own configuration: which tool binary to
// query, which workspaces to inspect, and the collection cadence.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the board configuration loaded from YAML.
type Config struct {
	// Tool is the monitored CLI binary name
	Tool string `yaml:"tool"`

	// Workspaces are git workspace paths inspected for repo drift
	Workspaces []string `yaml:"workspaces"`

	// ActiveWindowMinutes parameterizes the sessions query
	ActiveWindowMinutes int `yaml:"active_window_minutes"`

	// RefreshInterval is the watch-mode redraw cadence, e.g. "10s"
	RefreshInterval string `yaml:"refresh_interval"`

	// QuickTimeoutMS bounds fast introspection calls, in milliseconds
	QuickTimeoutMS int `yaml:"quick_timeout_ms"`

	// JSONTimeoutMS bounds JSON-producing tool calls, in milliseconds
	JSONTimeoutMS int `yaml:"json_timeout_ms"`
}

// Default returns a sensible default board configuration.
func Default() *Config {
	return &Config{
		Tool:                "openclaw",
		ActiveWindowMinutes: 60,
		RefreshInterval:     "10s",
		QuickTimeoutMS:      3000,
		JSONTimeoutMS:       10000,
	}
}

// DefaultPath returns the standard config file location.
func DefaultPath() string {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, "clawboard", "config.yaml")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "clawboard.yaml"
	}
	return filepath.Join(home, ".config", "clawboard", "config.yaml")
}

// Load reads the config file at path, falling back to defaults when the file
// does not exist, then applies CLAWBOARD_* environment overrides.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing YAML config %s: %w", path, err)
		}
	case os.IsNotExist(err):
		// No config file is fine; defaults apply.
	default:
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// applyEnv layers CLAWBOARD_* environment variables over the file values.
func (c *Config) applyEnv() error {
	if v := os.Getenv("CLAWBOARD_TOOL"); v != "" {
		c.Tool = v
	}
	if v := os.Getenv("CLAWBOARD_WORKSPACES"); v != "" {
		c.Workspaces = splitPaths(v)
	}
	if v := os.Getenv("CLAWBOARD_ACTIVE_WINDOW_MINUTES"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid CLAWBOARD_ACTIVE_WINDOW_MINUTES: %w", err)
		}
		c.ActiveWindowMinutes = n
	}
	if v := os.Getenv("CLAWBOARD_REFRESH_INTERVAL"); v != "" {
		c.RefreshInterval = v
	}
	return nil
}

func (c *Config) validate() error {
	if c.Tool == "" {
		return fmt.Errorf("tool name is required")
	}
	if c.ActiveWindowMinutes <= 0 {
		return fmt.Errorf("active_window_minutes must be positive (got %d)", c.ActiveWindowMinutes)
	}
	if _, err := c.Refresh(); err != nil {
		return err
	}
	return nil
}

// Refresh parses the refresh interval.
func (c *Config) Refresh() (time.Duration, error) {
	d, err := time.ParseDuration(c.RefreshInterval)
	if err != nil {
		return 0, fmt.Errorf("invalid refresh_interval %q: %w", c.RefreshInterval, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("refresh_interval must be positive (got %v)", d)
	}
	return d, nil
}

// QuickTimeout returns the fast-call timeout.
func (c *Config) QuickTimeout() time.Duration {
	return time.Duration(c.QuickTimeoutMS) * time.Millisecond
}

// JSONTimeout returns the JSON-call timeout.
func (c *Config) JSONTimeout() time.Duration {
	return time.Duration(c.JSONTimeoutMS) * time.Millisecond
}

// SaveDefault writes the default configuration to path, creating parent
// directories as needed.
func SaveDefault(path string) error {
	data, err := yaml.Marshal(Default())
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}

func splitPaths(s string) []string {
	var out []string
	for _, p := range strings.Split(s, string(os.PathListSeparator)) {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}
