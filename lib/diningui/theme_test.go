// Copyright 2026 The Tablescout Authors
// SPDX-License-Identifier: Apache-2.0

package diningui

import (
	"os"
	"path/filepath"
	"testing"
)

func TestScoreColorBands(t *testing.T) {
	theme := DefaultTheme

	tests := []struct {
		score float64
		want  string
	}{
		{0.95, string(theme.ScoreHigh)},
		{0.75, string(theme.ScoreHigh)},
		{0.74, string(theme.ScoreMid)},
		{0.5, string(theme.ScoreMid)},
		{0.49, string(theme.ScoreLow)},
		{0.0, string(theme.ScoreLow)},
	}
	for _, test := range tests {
		if got := string(theme.ScoreColor(test.score)); got != test.want {
			t.Errorf("ScoreColor(%v) = %q, want %q", test.score, got, test.want)
		}
	}
}

func TestLoadThemeOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "theme.jsonc")
	content := `{
		// brighten the accent, keep everything else stock
		"accent": "201",
		"error_color": "196",
	}`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing theme: %v", err)
	}

	theme, err := LoadTheme(path)
	if err != nil {
		t.Fatalf("LoadTheme: %v", err)
	}
	if string(theme.Accent) != "201" {
		t.Errorf("accent not overridden: %q", theme.Accent)
	}
	if string(theme.ErrorColor) != "196" {
		t.Errorf("error color not overridden: %q", theme.ErrorColor)
	}
	if string(theme.NormalText) != string(DefaultTheme.NormalText) {
		t.Errorf("unset fields should keep defaults, got %q", theme.NormalText)
	}
}

func TestLoadThemeMissingFile(t *testing.T) {
	_, err := LoadTheme(filepath.Join(t.TempDir(), "absent.jsonc"))
	if err == nil {
		t.Fatal("expected an error for a missing file")
	}
}

func TestLoadThemeBadJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.jsonc")
	if err := os.WriteFile(path, []byte("{not valid"), 0o644); err != nil {
		t.Fatalf("writing theme: %v", err)
	}
	if _, err := LoadTheme(path); err == nil {
		t.Fatal("expected a parse error")
	}
}
