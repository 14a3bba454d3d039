// Copyright 2026 The Tablescout Authors
// SPDX-License-Identifier: Apache-2.0

package diningui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// handleLocationKeys processes browse-mode keys on the location tab.
func (model Model) handleLocationKeys(message tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(message, model.keys.Select):
		model.focusRegion = FocusInput
		model.locationSearch.Focus()

	case key.Matches(message, model.keys.ClearSlot):
		if model.location == nil {
			return model, nil
		}
		model.store.SetLocation(nil)
		model.refreshSelection()
		cmd := model.setNotice("city cleared", false)
		return model, cmd
	}
	return model, nil
}

// viewLocation renders the location tab: the city search input with
// its suggestion panel, and a summary card for the chosen city.
func (model Model) viewLocation() string {
	var sections []string

	sections = append(sections, "")
	sections = append(sections, model.locationSearch.View())
	sections = append(sections, "")

	if model.location != nil {
		sections = append(sections, model.renderLocationCard())
	} else if model.focusRegion != FocusInput {
		hint := lipgloss.NewStyle().Foreground(model.theme.FaintText)
		sections = append(sections, hint.Render(" no city selected, press Enter to search"))
	}

	return strings.Join(sections, "\n")
}

// renderLocationCard renders the chosen city with its coordinates and
// population.
func (model Model) renderLocationCard() string {
	name := lipgloss.NewStyle().
		Bold(true).
		Foreground(model.theme.NormalText).
		Render(model.location.Name)

	faint := lipgloss.NewStyle().Foreground(model.theme.FaintText)
	lines := []string{
		name,
		faint.Render(fmt.Sprintf("lat %.4f  lon %.4f", model.location.Latitude, model.location.Longitude)),
	}
	if model.location.Population > 0 {
		lines = append(lines, faint.Render(fmt.Sprintf("population %d", model.location.Population)))
	}

	card := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(model.theme.BorderColor).
		Padding(0, 1).
		Render(strings.Join(lines, "\n"))

	label := lipgloss.NewStyle().
		Foreground(model.theme.SuccessColor).
		Render(" current city")
	return label + "\n" + card
}
