// Copyright 2026 The Tablescout Authors
// SPDX-License-Identifier: Apache-2.0

package diningui

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/tidwall/jsonc"
)

// Theme defines the color palette for the tablescout TUI. All colors
// use lipgloss ANSI 256-color codes for broad terminal compatibility.
//
// The fields cover universal chrome (text, selection, borders) and the
// semantic categories the app renders: slot fill state, request
// outcomes, and per-feature similarity scores.
type Theme struct {
	// Text colors.
	NormalText lipgloss.Color `json:"normal_text"`
	FaintText  lipgloss.Color `json:"faint_text"`

	// Selected row.
	SelectedBackground lipgloss.Color `json:"selected_background"`
	SelectedForeground lipgloss.Color `json:"selected_foreground"`

	// UI chrome.
	HeaderForeground lipgloss.Color `json:"header_foreground"`
	BorderColor      lipgloss.Color `json:"border_color"`
	HelpText         lipgloss.Color `json:"help_text"`

	// Accent for the active tab label and focused input prompts.
	Accent lipgloss.Color `json:"accent"`

	// Request outcome colors: transient status-line notices and the
	// inline error rows of the suggestion panels.
	SuccessColor lipgloss.Color `json:"success_color"`
	WarningColor lipgloss.Color `json:"warning_color"`
	ErrorColor   lipgloss.Color `json:"error_color"`

	// Loading label and spinner.
	LoadingColor lipgloss.Color `json:"loading_color"`

	// Similarity score bands, used for the score bars in the results
	// list and detail pane.
	ScoreHigh lipgloss.Color `json:"score_high"`
	ScoreMid  lipgloss.Color `json:"score_mid"`
	ScoreLow  lipgloss.Color `json:"score_low"`

	// Filter match highlighting in the results list.
	MatchBackground lipgloss.Color `json:"match_background"`
}

// ScoreColor returns the band color for a similarity score in [0, 1].
// The bands follow the backend's own reading of cosine similarity:
// 0.75 and up is a strong match, 0.5 to 0.75 is moderate, below is
// weak.
func (theme Theme) ScoreColor(score float64) lipgloss.Color {
	switch {
	case score >= 0.75:
		return theme.ScoreHigh
	case score >= 0.5:
		return theme.ScoreMid
	default:
		return theme.ScoreLow
	}
}

// DefaultTheme is the built-in dark-terminal color scheme. Designed for
// 256-color terminals with a dark background.
var DefaultTheme = Theme{
	NormalText: lipgloss.Color("252"),
	FaintText:  lipgloss.Color("245"),

	SelectedBackground: lipgloss.Color("236"),
	SelectedForeground: lipgloss.Color("255"),

	HeaderForeground: lipgloss.Color("255"),
	BorderColor:      lipgloss.Color("240"),
	HelpText:         lipgloss.Color("241"),

	Accent: lipgloss.Color("111"), // light blue

	SuccessColor: lipgloss.Color("114"), // green
	WarningColor: lipgloss.Color("220"), // amber
	ErrorColor:   lipgloss.Color("203"), // soft red

	LoadingColor: lipgloss.Color("220"),

	ScoreHigh: lipgloss.Color("114"), // green
	ScoreMid:  lipgloss.Color("220"), // amber
	ScoreLow:  lipgloss.Color("245"), // gray

	MatchBackground: lipgloss.Color("58"), // dark amber tint
}

// LoadTheme reads a JSONC theme file and overlays it on DefaultTheme,
// so a theme file only needs to name the colors it changes. The format
// is JSON extended with // line comments, /* block comments */, and
// trailing commas.
func LoadTheme(path string) (Theme, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Theme{}, fmt.Errorf("reading theme: %w", err)
	}

	theme := DefaultTheme
	stripped := jsonc.ToJSON(data)
	if err := json.Unmarshal(stripped, &theme); err != nil {
		return Theme{}, fmt.Errorf("parsing theme %s: %w", path, err)
	}
	return theme, nil
}
