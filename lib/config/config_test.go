// Copyright 2026 The Tablescout Authors
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Server.BaseURL != "http://127.0.0.1:8000" {
		t.Errorf("expected base_url=http://127.0.0.1:8000, got %s", cfg.Server.BaseURL)
	}

	if cfg.Search.Debounce != "800ms" {
		t.Errorf("expected debounce=800ms, got %s", cfg.Search.Debounce)
	}

	if cfg.Search.TopK != 10 {
		t.Errorf("expected top_k=10, got %d", cfg.Search.TopK)
	}

	if cfg.Log.Level != "warn" {
		t.Errorf("expected level=warn, got %s", cfg.Log.Level)
	}

	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate: %v", err)
	}
}

func TestLoad_WithoutEnvUsesDefaults(t *testing.T) {
	// Save and restore TABLESCOUT_CONFIG.
	origConfig := os.Getenv("TABLESCOUT_CONFIG")
	defer os.Setenv("TABLESCOUT_CONFIG", origConfig)

	os.Unsetenv("TABLESCOUT_CONFIG")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if cfg.Server.BaseURL != Default().Server.BaseURL {
		t.Errorf("expected default base_url, got %s", cfg.Server.BaseURL)
	}
}

func TestLoad_WithTablescoutConfig(t *testing.T) {
	// Save and restore TABLESCOUT_CONFIG.
	origConfig := os.Getenv("TABLESCOUT_CONFIG")
	defer os.Setenv("TABLESCOUT_CONFIG", origConfig)

	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "tablescout.yaml")

	configContent := `
server:
  base_url: http://10.0.0.5:9000
search:
  top_k: 5
`
	if err := os.WriteFile(configPath, []byte(configContent), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	os.Setenv("TABLESCOUT_CONFIG", configPath)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if cfg.Server.BaseURL != "http://10.0.0.5:9000" {
		t.Errorf("expected base_url=http://10.0.0.5:9000, got %s", cfg.Server.BaseURL)
	}

	if cfg.Search.TopK != 5 {
		t.Errorf("expected top_k=5, got %d", cfg.Search.TopK)
	}

	// Unset fields keep their defaults.
	if cfg.Search.Debounce != "800ms" {
		t.Errorf("expected debounce=800ms, got %s", cfg.Search.Debounce)
	}
}

func TestLoadFile(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "tablescout.yaml")

	configContent := `
server:
  base_url: https://food.example.com
  timeout: 30s

search:
  debounce: 500ms
  top_k: 20
  max_visible: 12

ui:
  theme_file: /etc/tablescout/theme.jsonc

log:
  output: /tmp/tablescout.log
  level: debug
`

	if err := os.WriteFile(configPath, []byte(configContent), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	cfg, err := LoadFile(configPath)
	if err != nil {
		t.Fatalf("LoadFile failed: %v", err)
	}

	if cfg.Server.BaseURL != "https://food.example.com" {
		t.Errorf("expected base_url=https://food.example.com, got %s", cfg.Server.BaseURL)
	}

	if cfg.ServerTimeout() != 30*time.Second {
		t.Errorf("expected timeout=30s, got %s", cfg.ServerTimeout())
	}

	if cfg.SearchDebounce() != 500*time.Millisecond {
		t.Errorf("expected debounce=500ms, got %s", cfg.SearchDebounce())
	}

	if cfg.Search.MaxVisible != 12 {
		t.Errorf("expected max_visible=12, got %d", cfg.Search.MaxVisible)
	}

	if cfg.UI.ThemeFile != "/etc/tablescout/theme.jsonc" {
		t.Errorf("expected theme_file=/etc/tablescout/theme.jsonc, got %s", cfg.UI.ThemeFile)
	}

	if cfg.LogLevel() != slog.LevelDebug {
		t.Errorf("expected level=debug, got %s", cfg.LogLevel())
	}
}

func TestLoadFile_MissingFile(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "absent.yaml"))
	if err == nil {
		t.Fatal("expected error for a missing config file")
	}
}

func TestExpandVariablesInPaths(t *testing.T) {
	origHome := os.Getenv("HOME")
	defer os.Setenv("HOME", origHome)
	os.Setenv("HOME", "/home/diner")

	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "tablescout.yaml")

	configContent := `
ui:
  theme_file: ${HOME}/.config/tablescout/theme.jsonc
log:
  output: ${TABLESCOUT_LOG:-/tmp/tablescout.log}
`
	if err := os.WriteFile(configPath, []byte(configContent), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	cfg, err := LoadFile(configPath)
	if err != nil {
		t.Fatalf("LoadFile failed: %v", err)
	}

	if cfg.UI.ThemeFile != "/home/diner/.config/tablescout/theme.jsonc" {
		t.Errorf("expected expanded theme_file, got %s", cfg.UI.ThemeFile)
	}

	if cfg.Log.Output != "/tmp/tablescout.log" {
		t.Errorf("expected default-expanded log output, got %s", cfg.Log.Output)
	}
}

func TestExpandVars(t *testing.T) {
	tests := []struct {
		input    string
		vars     map[string]string
		expected string
	}{
		{
			input:    "${HOME}/tablescout",
			vars:     map[string]string{"HOME": "/home/user"},
			expected: "/home/user/tablescout",
		},
		{
			input:    "${MISSING:-default}",
			vars:     map[string]string{},
			expected: "default",
		},
		{
			input:    "${PRESENT:-default}",
			vars:     map[string]string{"PRESENT": "value"},
			expected: "value",
		},
		{
			input:    "${A}/${B}",
			vars:     map[string]string{"A": "first", "B": "second"},
			expected: "first/second",
		},
		{
			input:    "no variables here",
			vars:     map[string]string{},
			expected: "no variables here",
		},
	}

	for _, tt := range tests {
		result := expandVars(tt.input, tt.vars)
		if result != tt.expected {
			t.Errorf("expandVars(%q) = %q, want %q", tt.input, result, tt.expected)
		}
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(*Config)
		wantErr bool
	}{
		{
			name:    "valid default config",
			modify:  func(c *Config) {},
			wantErr: false,
		},
		{
			name: "empty base url",
			modify: func(c *Config) {
				c.Server.BaseURL = ""
			},
			wantErr: true,
		},
		{
			name: "non-http base url",
			modify: func(c *Config) {
				c.Server.BaseURL = "ftp://example.com"
			},
			wantErr: true,
		},
		{
			name: "unparseable timeout",
			modify: func(c *Config) {
				c.Server.Timeout = "soon"
			},
			wantErr: true,
		},
		{
			name: "zero debounce",
			modify: func(c *Config) {
				c.Search.Debounce = "0s"
			},
			wantErr: true,
		},
		{
			name: "top_k too small",
			modify: func(c *Config) {
				c.Search.TopK = 0
			},
			wantErr: true,
		},
		{
			name: "top_k too large",
			modify: func(c *Config) {
				c.Search.TopK = 51
			},
			wantErr: true,
		},
		{
			name: "zero max_visible",
			modify: func(c *Config) {
				c.Search.MaxVisible = 0
			},
			wantErr: true,
		},
		{
			name: "unknown log level",
			modify: func(c *Config) {
				c.Log.Level = "verbose"
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.modify(cfg)

			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestDurationFallbacks(t *testing.T) {
	cfg := Default()
	cfg.Server.Timeout = "garbage"
	cfg.Search.Debounce = "garbage"
	cfg.Log.Level = "garbage"

	if cfg.ServerTimeout() != 10*time.Second {
		t.Errorf("expected fallback timeout 10s, got %s", cfg.ServerTimeout())
	}
	if cfg.SearchDebounce() != 800*time.Millisecond {
		t.Errorf("expected fallback debounce 800ms, got %s", cfg.SearchDebounce())
	}
	if cfg.LogLevel() != slog.LevelWarn {
		t.Errorf("expected fallback level warn, got %s", cfg.LogLevel())
	}
}
