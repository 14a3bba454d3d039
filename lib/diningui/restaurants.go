// Copyright 2026 The Tablescout Authors
// SPDX-License-Identifier: Apache-2.0

package diningui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/tablescout/tablescout/lib/selection"
)

// handleSlotKeys processes browse-mode keys on the restaurants tab:
// moving between the five slots, editing one, clearing one.
func (model Model) handleSlotKeys(message tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(message, model.keys.Up):
		if model.slotCursor > 0 {
			model.slotCursor--
		}

	case key.Matches(message, model.keys.Down):
		if model.slotCursor < selection.SlotCount-1 {
			model.slotCursor++
		}

	case key.Matches(message, model.keys.Select):
		model.focusRegion = FocusInput
		model.slotSearches[model.slotCursor].Focus()

	case key.Matches(message, model.keys.ClearSlot):
		if model.slotCursor >= len(model.slots) || model.slots[model.slotCursor] == nil {
			return model, nil
		}
		if err := model.store.UpdateRestaurant(model.slotCursor, nil); err != nil {
			cmd := model.setNotice(err.Error(), true)
			return model, cmd
		}
		model.refreshSelection()
		cmd := model.setNotice(fmt.Sprintf("slot %d cleared", model.slotCursor+1), false)
		return model, cmd
	}
	return model, nil
}

// viewRestaurants renders the restaurants tab: five slot rows, with
// the slot being edited replaced by its live search input.
func (model Model) viewRestaurants() string {
	var sections []string
	sections = append(sections, "")

	editing := model.focusRegion == FocusInput && model.activeTab == TabRestaurants

	for index := range selection.SlotCount {
		if editing && index == model.slotCursor {
			sections = append(sections, model.slotSearches[index].View())
			continue
		}
		sections = append(sections, model.renderSlotRow(index))
	}

	if model.filledSlotCount() == 0 && !editing {
		hint := lipgloss.NewStyle().Foreground(model.theme.FaintText)
		sections = append(sections, "")
		sections = append(sections, hint.Render(" pick restaurants you like, the search finds similar spots in the chosen city"))
	}

	return strings.Join(sections, "\n")
}

// renderSlotRow renders one static slot row.
func (model Model) renderSlotRow(index int) string {
	marker := "  "
	if model.focusRegion == FocusBrowse && model.activeTab == TabRestaurants && index == model.slotCursor {
		marker = lipgloss.NewStyle().
			Foreground(model.theme.Accent).
			Bold(true).
			Render("▸ ")
	}

	number := lipgloss.NewStyle().
		Foreground(model.theme.FaintText).
		Render(fmt.Sprintf("%d. ", index+1))

	var body string
	if index < len(model.slots) && model.slots[index] != nil {
		restaurant := model.slots[index]
		name := lipgloss.NewStyle().
			Bold(true).
			Foreground(model.theme.NormalText).
			Render(restaurant.Name)
		body = name
		if restaurant.Address != "" {
			address := lipgloss.NewStyle().
				Foreground(model.theme.FaintText).
				Render(" · " + restaurant.Address)
			body += address
		}
	} else {
		body = lipgloss.NewStyle().
			Foreground(model.theme.FaintText).
			Render("(empty)")
	}

	return ansi.Truncate(" "+marker+number+body, model.contentWidth(), "…")
}
