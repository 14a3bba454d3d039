// Copyright 2026 The Tablescout Authors
// SPDX-License-Identifier: Apache-2.0

package diningui

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/tablescout/tablescout/lib/schema"
	"github.com/tablescout/tablescout/lib/selection"
)

// historyLoadedMsg carries the saved-search list. History has no
// generation token: a single in-flight load is enforced by the
// historyLoading flag.
type historyLoadedMsg struct {
	searches []schema.Search
	err      error
}

// handleHistoryKeys processes browse-mode keys on the history tab.
func (model Model) handleHistoryKeys(message tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(message, model.keys.Up):
		if model.historyCursor > 0 {
			model.historyCursor--
		}

	case key.Matches(message, model.keys.Down):
		if model.historyCursor < len(model.searches)-1 {
			model.historyCursor++
		}

	case key.Matches(message, model.keys.Select):
		if model.historyCursor < len(model.searches) {
			cmd := model.loadSearch(model.searches[model.historyCursor])
			return model, cmd
		}

	case key.Matches(message, model.keys.Refetch):
		if model.historyLoading {
			return model, nil
		}
		model.historyLoaded = false
		cmd := model.loadHistory()
		return model, cmd
	}
	return model, nil
}

// loadHistory starts fetching the saved-search list.
func (model *Model) loadHistory() tea.Cmd {
	model.historyLoading = true
	client := model.client
	load := func() tea.Msg {
		searches, err := client.ListSearches(context.Background())
		return historyLoadedMsg{searches: searches, err: err}
	}
	return tea.Batch(model.startSpinner(), load)
}

// handleHistoryLoaded stores the fetched list, newest first.
func (model Model) handleHistoryLoaded(message historyLoadedMsg) (tea.Model, tea.Cmd) {
	model.historyLoading = false

	if message.err != nil {
		model.logger.Warn("history load failed", "error", message.err)
		cmd := model.setNotice("history load failed: "+shortError(message.err), true)
		return model, cmd
	}

	model.historyLoaded = true
	searches := message.searches
	sort.SliceStable(searches, func(i, j int) bool {
		return searches[i].CreatedAt.After(searches[j].CreatedAt.Time)
	})
	model.searches = searches

	if model.historyCursor >= len(searches) {
		model.historyCursor = len(searches) - 1
	}
	if model.historyCursor < 0 {
		model.historyCursor = 0
	}
	return model, nil
}

// loadSearch replaces the current selection with a saved search and
// jumps to the results tab, fetching its recommendations. Any
// in-flight request for the previous selection is abandoned.
func (model *Model) loadSearch(search schema.Search) tea.Cmd {
	model.fetchGuard.Invalidate()
	model.submitting = false
	model.fetching = false

	model.store.SetLocation(search.Location)

	restaurants := make([]*schema.Restaurant, 0, selection.SlotCount)
	for index := range search.Restaurants {
		if len(restaurants) == selection.SlotCount {
			break
		}
		restaurants = append(restaurants, &search.Restaurants[index])
	}
	if err := model.store.SetRestaurants(restaurants); err != nil {
		return model.setNotice(err.Error(), true)
	}
	model.store.SetSearchID(search.ID)
	model.candidateCount = len(search.CityRestaurants)

	model.filter.Clear()
	model.resultsCursor = 0
	model.refreshFromStore()
	model.switchTab(TabResults)

	model.fetching = true
	token := model.fetchGuard.Next()
	return tea.Batch(
		model.startSpinner(),
		model.fetchRecommendations(token, search.ID),
		model.setNotice(fmt.Sprintf("loaded search #%d", search.ID), false),
	)
}

// viewHistory renders the history tab: the saved-search list, newest
// first.
func (model Model) viewHistory() string {
	faint := lipgloss.NewStyle().Foreground(model.theme.FaintText)

	if model.historyLoading && len(model.searches) == 0 {
		loading := lipgloss.NewStyle().
			Foreground(model.theme.LoadingColor).
			Italic(true)
		return "\n" + loading.Render(" loading saved searches...")
	}

	if len(model.searches) == 0 {
		return "\n" + faint.Render(" no saved searches yet, submit one from the results tab")
	}

	var lines []string
	lines = append(lines, faint.Render(fmt.Sprintf(" %d saved searches  %d/%d",
		len(model.searches), model.historyCursor+1, len(model.searches))))
	lines = append(lines, "")

	listRows := model.contentHeight() - 2
	if listRows < 1 {
		listRows = 1
	}
	start, end := listWindow(len(model.searches), model.historyCursor, listRows)
	for index := start; index < end; index++ {
		lines = append(lines, model.renderHistoryRow(index))
	}

	return strings.Join(lines, "\n")
}

// renderHistoryRow renders one saved search row.
func (model Model) renderHistoryRow(index int) string {
	search := model.searches[index]

	marker := "  "
	if model.focusRegion == FocusBrowse && index == model.historyCursor {
		marker = lipgloss.NewStyle().
			Foreground(model.theme.Accent).
			Bold(true).
			Render("▸ ")
	}

	id := lipgloss.NewStyle().
		Bold(true).
		Foreground(model.theme.NormalText).
		Render(fmt.Sprintf("#%-4d", search.ID))

	faint := lipgloss.NewStyle().Foreground(model.theme.FaintText)

	date := ""
	if !search.CreatedAt.IsZero() {
		date = faint.Render(search.CreatedAt.Format("2006-01-02 15:04") + "  ")
	}

	city := "unknown city"
	if search.Location != nil {
		city = search.Location.Name
	}
	cityText := lipgloss.NewStyle().
		Foreground(model.theme.NormalText).
		Render(city)

	picks := fmt.Sprintf("%d picks", len(search.Restaurants))
	if len(search.Restaurants) == 1 {
		picks = "1 pick"
	}

	row := " " + marker + id + " " + date + cityText + faint.Render("  "+picks)

	if search.ID == model.searchID && model.searchID != 0 {
		current := lipgloss.NewStyle().
			Foreground(model.theme.SuccessColor).
			Render("  current")
		row += current
	}

	return ansi.Truncate(row, model.contentWidth(), "…")
}
