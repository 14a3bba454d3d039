// Copyright 2026 The Tablescout Authors
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"regexp"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the master configuration for tablescout.
type Config struct {
	// Server configures the recommendation service connection.
	Server ServerConfig `yaml:"server"`

	// Search configures autocomplete and recommendation behavior.
	Search SearchConfig `yaml:"search"`

	// UI configures the terminal interface.
	UI UIConfig `yaml:"ui"`

	// Log configures diagnostic logging.
	Log LogConfig `yaml:"log"`
}

// ServerConfig configures the recommendation service connection.
type ServerConfig struct {
	// BaseURL is the root URL of the recommendation service.
	// Default: http://127.0.0.1:8000
	BaseURL string `yaml:"base_url"`

	// Timeout bounds each HTTP request, as a Go duration string.
	// Default: 10s
	Timeout string `yaml:"timeout"`
}

// SearchConfig configures autocomplete and recommendation behavior.
type SearchConfig struct {
	// Debounce is the keystroke quiet period before an autocomplete
	// lookup is issued, as a Go duration string.
	// Default: 800ms
	Debounce string `yaml:"debounce"`

	// TopK is how many recommendations to request per search.
	// Default: 10
	TopK int `yaml:"top_k"`

	// MaxVisible caps the suggestion rows shown at once.
	// Default: 8
	MaxVisible int `yaml:"max_visible"`
}

// UIConfig configures the terminal interface.
type UIConfig struct {
	// ThemeFile is an optional path to a JSONC theme override.
	// Empty means the built-in theme.
	ThemeFile string `yaml:"theme_file"`
}

// LogConfig configures diagnostic logging.
type LogConfig struct {
	// Output is an optional path for a JSON debug log. Empty disables
	// file logging; warnings still reach the status bar.
	Output string `yaml:"output"`

	// Level is the minimum record level: debug, info, warn, or error.
	// Default: warn
	Level string `yaml:"level"`
}

// Default returns the default configuration. The tool is fully usable
// with these values and no config file.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			BaseURL: "http://127.0.0.1:8000",
			Timeout: "10s",
		},
		Search: SearchConfig{
			Debounce:   "800ms",
			TopK:       10,
			MaxVisible: 8,
		},
		UI: UIConfig{
			ThemeFile: "",
		},
		Log: LogConfig{
			Output: "",
			Level:  "warn",
		},
	}
}

// Load loads configuration from the file named by TABLESCOUT_CONFIG.
// When the variable is unset, the defaults are returned unchanged;
// when it is set, the file must load cleanly.
func Load() (*Config, error) {
	configPath := os.Getenv("TABLESCOUT_CONFIG")
	if configPath == "" {
		return Default(), nil
	}
	return LoadFile(configPath)
}

// LoadFile loads configuration from a specific file path, merged over
// the defaults. Environment variables do not override config values;
// the only expansion performed is ${HOME} and similar path variables
// for portability.
func LoadFile(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}

	cfg.expandVariables()
	return cfg, nil
}

// expandVariables expands ${VAR} and ${VAR:-default} patterns in path
// and URL fields.
func (c *Config) expandVariables() {
	vars := map[string]string{
		"HOME": os.Getenv("HOME"),
	}

	c.Server.BaseURL = expandVars(c.Server.BaseURL, vars)
	c.UI.ThemeFile = expandVars(c.UI.ThemeFile, vars)
	c.Log.Output = expandVars(c.Log.Output, vars)
}

// expandVars expands ${VAR} and ${VAR:-default} patterns.
var varPattern = regexp.MustCompile(`\$\{([^}:]+)(?::-([^}]*))?\}`)

func expandVars(s string, vars map[string]string) string {
	return varPattern.ReplaceAllStringFunc(s, func(match string) string {
		parts := varPattern.FindStringSubmatch(match)
		if len(parts) < 2 {
			return match
		}

		name := parts[1]
		defaultValue := ""
		if len(parts) >= 3 {
			defaultValue = parts[2]
		}

		// Check provided vars first, then environment.
		if value, ok := vars[name]; ok && value != "" {
			return value
		}
		if value := os.Getenv(name); value != "" {
			return value
		}
		return defaultValue
	})
}

// logLevels maps config level names to slog levels.
var logLevels = map[string]slog.Level{
	"debug": slog.LevelDebug,
	"info":  slog.LevelInfo,
	"warn":  slog.LevelWarn,
	"error": slog.LevelError,
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	var errs []error

	if c.Server.BaseURL == "" {
		errs = append(errs, fmt.Errorf("server.base_url is required"))
	} else if parsed, err := url.Parse(c.Server.BaseURL); err != nil {
		errs = append(errs, fmt.Errorf("server.base_url: %w", err))
	} else if parsed.Scheme != "http" && parsed.Scheme != "https" {
		errs = append(errs, fmt.Errorf("server.base_url must be http or https (got %q)", parsed.Scheme))
	}

	if _, err := time.ParseDuration(c.Server.Timeout); err != nil {
		errs = append(errs, fmt.Errorf("server.timeout: %w", err))
	}

	if debounce, err := time.ParseDuration(c.Search.Debounce); err != nil {
		errs = append(errs, fmt.Errorf("search.debounce: %w", err))
	} else if debounce <= 0 {
		errs = append(errs, fmt.Errorf("search.debounce must be positive (got %s)", debounce))
	}

	if c.Search.TopK < 1 || c.Search.TopK > 50 {
		errs = append(errs, fmt.Errorf("search.top_k must be in [1, 50] (got %d)", c.Search.TopK))
	}

	if c.Search.MaxVisible < 1 {
		errs = append(errs, fmt.Errorf("search.max_visible must be at least 1 (got %d)", c.Search.MaxVisible))
	}

	if _, ok := logLevels[c.Log.Level]; !ok {
		errs = append(errs, fmt.Errorf("log.level must be one of debug, info, warn, error (got %q)", c.Log.Level))
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	return nil
}

// ServerTimeout returns the parsed request timeout. Call Validate
// first; an unparseable value falls back to the default.
func (c *Config) ServerTimeout() time.Duration {
	timeout, err := time.ParseDuration(c.Server.Timeout)
	if err != nil {
		return 10 * time.Second
	}
	return timeout
}

// SearchDebounce returns the parsed autocomplete quiet period. Call
// Validate first; an unparseable value falls back to the default.
func (c *Config) SearchDebounce() time.Duration {
	debounce, err := time.ParseDuration(c.Search.Debounce)
	if err != nil {
		return 800 * time.Millisecond
	}
	return debounce
}

// LogLevel returns the slog level for the configured level name. Call
// Validate first; an unknown name falls back to warn.
func (c *Config) LogLevel() slog.Level {
	if level, ok := logLevels[c.Log.Level]; ok {
		return level
	}
	return slog.LevelWarn
}
