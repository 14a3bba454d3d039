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

	"github.com/tablescout/tablescout/lib/api"
	"github.com/tablescout/tablescout/lib/generation"
	"github.com/tablescout/tablescout/lib/schema"
)

// submitResultMsg carries the outcome of a CreateSearch call. The
// token identifies which submission generation it belongs to; stale
// generations are dropped.
type submitResultMsg struct {
	token  generation.Token
	search *schema.Search
	err    error
}

// recommendationsMsg carries a fetched recommendation list for a
// search.
type recommendationsMsg struct {
	token    generation.Token
	searchID int
	list     []schema.Recommendation
	err      error
}

// handleResultsKeys processes browse-mode keys on the results tab.
func (model Model) handleResultsKeys(message tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(message, model.keys.Up):
		if model.resultsCursor > 0 {
			model.resultsCursor--
		}

	case key.Matches(message, model.keys.Down):
		if model.resultsCursor < len(model.matches)-1 {
			model.resultsCursor++
		}

	case key.Matches(message, model.keys.PageUp):
		model.resultsCursor -= model.resultsPageSize()
		if model.resultsCursor < 0 {
			model.resultsCursor = 0
		}

	case key.Matches(message, model.keys.PageDown):
		model.resultsCursor += model.resultsPageSize()
		if model.resultsCursor >= len(model.matches) {
			model.resultsCursor = len(model.matches) - 1
		}
		if model.resultsCursor < 0 {
			model.resultsCursor = 0
		}

	case key.Matches(message, model.keys.Select):
		model.openDetail()

	case key.Matches(message, model.keys.FilterActivate):
		model.filter.Active = true
		model.focusRegion = FocusFilter

	case key.Matches(message, model.keys.Submit):
		cmd := model.submitSearch()
		return model, cmd

	case key.Matches(message, model.keys.Refetch):
		cmd := model.refetchRecommendations()
		return model, cmd
	}
	return model, nil
}

// handleFilterKeys processes keys while the results filter input is
// focused. Esc clears the text first and leaves filter mode once the
// text is empty; Enter leaves filter mode but keeps the filter
// applied.
func (model Model) handleFilterKeys(message tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case message.Type == tea.KeyCtrlC:
		return model, tea.Quit

	case key.Matches(message, model.keys.FilterClear):
		if model.filter.Input != "" {
			model.filter.Input = ""
			model.applyResultsFilter()
			model.resultsCursor = 0
		} else {
			model.filter.Clear()
			model.focusRegion = FocusBrowse
		}

	case key.Matches(message, model.keys.Select):
		model.filter.Active = false
		model.focusRegion = FocusBrowse

	case message.Type == tea.KeyBackspace:
		if model.filter.HandleBackspace() {
			model.applyResultsFilter()
			model.resultsCursor = 0
		}

	case message.Type == tea.KeyRunes, message.Type == tea.KeySpace:
		if message.Type == tea.KeySpace {
			model.filter.HandleRune(' ')
		} else {
			for _, character := range message.Runes {
				model.filter.HandleRune(character)
			}
		}
		model.applyResultsFilter()
		model.resultsCursor = 0
	}
	return model, nil
}

// handleDetailKeys scrolls or closes the recommendation detail pane.
func (model Model) handleDetailKeys(message tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case message.Type == tea.KeyCtrlC:
		return model, tea.Quit
	case key.Matches(message, model.keys.Quit):
		return model, tea.Quit
	case key.Matches(message, model.keys.Back),
		key.Matches(message, model.keys.Select):
		model.focusRegion = FocusBrowse
	case key.Matches(message, model.keys.Up):
		model.detail.LineUp(1)
	case key.Matches(message, model.keys.Down):
		model.detail.LineDown(1)
	case key.Matches(message, model.keys.PageUp):
		model.detail.HalfViewUp()
	case key.Matches(message, model.keys.PageDown):
		model.detail.HalfViewDown()
	}
	return model, nil
}

// resultsPageSize is the cursor jump for a half-page scroll.
func (model Model) resultsPageSize() int {
	size := model.contentHeight() / 2
	if size < 1 {
		size = 1
	}
	return size
}

// submitSearch validates the selection and starts a CreateSearch
// request. Validation failures surface as status notices without
// touching the backend.
func (model *Model) submitSearch() tea.Cmd {
	if model.busy() {
		return model.setNotice("a request is already in flight", true)
	}
	if model.location == nil {
		return model.setNotice("pick a city first (tab 1)", true)
	}
	if model.filledSlotCount() == 0 {
		return model.setNotice("pick at least one restaurant (tab 2)", true)
	}

	snapshot := model.store.Snapshot()
	model.submitting = true
	token := model.fetchGuard.Next()
	client := model.client

	// The backend wants the filled slots only, in slot order. Empty
	// slots stay local.
	picks := make([]*schema.Restaurant, 0, len(snapshot.Restaurants))
	for _, restaurant := range snapshot.Restaurants {
		if restaurant != nil {
			picks = append(picks, restaurant)
		}
	}
	request := api.CreateSearchRequest{
		Location:    snapshot.Location,
		Restaurants: picks,
	}
	submit := func() tea.Msg {
		search, err := client.CreateSearch(context.Background(), request)
		return submitResultMsg{token: token, search: search, err: err}
	}
	return tea.Batch(model.startSpinner(), submit)
}

// refetchRecommendations re-requests recommendations for the current
// search without resubmitting it.
func (model *Model) refetchRecommendations() tea.Cmd {
	if model.busy() {
		return model.setNotice("a request is already in flight", true)
	}
	if model.searchID == 0 {
		return model.setNotice("no search submitted yet (s to submit)", true)
	}

	model.fetching = true
	token := model.fetchGuard.Next()
	return tea.Batch(model.startSpinner(), model.fetchRecommendations(token, model.searchID))
}

// fetchRecommendations builds the command that loads recommendations
// for a search. Used both by the post-submit chain and by an explicit
// refetch.
func (model Model) fetchRecommendations(token generation.Token, searchID int) tea.Cmd {
	client := model.client
	topK := model.topK
	return func() tea.Msg {
		list, err := client.Recommendations(context.Background(), api.RecommendationRequest{
			SearchID: searchID,
			TopK:     topK,
		})
		return recommendationsMsg{token: token, searchID: searchID, list: list, err: err}
	}
}

// handleSubmitResult finishes a submission: on success it records the
// search id and chains straight into the recommendation fetch under
// the same generation token.
func (model Model) handleSubmitResult(message submitResultMsg) (tea.Model, tea.Cmd) {
	if !model.fetchGuard.Current(message.token) {
		return model, nil
	}
	model.submitting = false

	if message.err != nil {
		model.logger.Warn("search submission failed", "error", message.err)
		cmd := model.setNotice("submit failed: "+shortError(message.err), true)
		return model, cmd
	}

	model.logger.Info("search submitted", "search_id", message.search.ID)
	model.store.SetSearchID(message.search.ID)
	model.candidateCount = len(message.search.CityRestaurants)
	model.historyLoaded = false
	model.refreshFromStore()

	model.fetching = true
	cmd := tea.Batch(
		model.startSpinner(),
		model.fetchRecommendations(message.token, message.search.ID),
		model.setNotice(fmt.Sprintf("search #%d saved", message.search.ID), false),
	)
	return model, cmd
}

// handleRecommendations finishes a recommendation fetch. Errors leave
// the submitted search intact so the fetch can be retried with r.
func (model Model) handleRecommendations(message recommendationsMsg) (tea.Model, tea.Cmd) {
	if !model.fetchGuard.Current(message.token) {
		return model, nil
	}
	model.fetching = false

	if message.err != nil {
		model.logger.Warn("recommendation fetch failed", "search_id", message.searchID, "error", message.err)
		cmd := model.setNotice("fetch failed: "+shortError(message.err)+", r to retry", true)
		return model, cmd
	}

	model.store.SetRecommendations(message.list)
	model.resultsCursor = 0
	model.refreshFromStore()
	cmd := model.setNotice(fmt.Sprintf("%d recommendations", len(message.list)), false)
	return model, cmd
}

// currentMatch returns the match under the results cursor.
func (model Model) currentMatch() (FilterMatch, bool) {
	if model.resultsCursor < 0 || model.resultsCursor >= len(model.matches) {
		return FilterMatch{}, false
	}
	return model.matches[model.resultsCursor], true
}

// openDetail opens the detail pane for the recommendation under the
// cursor.
func (model *Model) openDetail() {
	match, ok := model.currentMatch()
	if !ok {
		return
	}
	model.detail.Width = model.contentWidth()
	model.detail.Height = model.contentHeight()
	model.detail.SetContent(model.renderRecommendationDetail(match.Index))
	model.detail.GotoTop()
	model.focusRegion = FocusDetail
}

// syncDetail re-renders the open detail pane in place, preserving the
// scroll position. Called after a resize or a store refresh.
func (model *Model) syncDetail() {
	match, ok := model.currentMatch()
	if !ok {
		return
	}
	offset := model.detail.YOffset
	model.detail.Width = model.contentWidth()
	model.detail.Height = model.contentHeight()
	model.detail.SetContent(model.renderRecommendationDetail(match.Index))
	model.detail.SetYOffset(offset)
}

// renderRecommendationDetail renders the full record for one
// recommendation: overall score, address, per-feature score bars, and
// the explanation text.
func (model Model) renderRecommendationDetail(index int) string {
	recommendation := model.recommendations[index]
	width := model.contentWidth()
	faint := lipgloss.NewStyle().Foreground(model.theme.FaintText)
	header := lipgloss.NewStyle().Bold(true).Foreground(model.theme.HeaderForeground)

	var lines []string
	lines = append(lines, "")

	title := lipgloss.NewStyle().
		Bold(true).
		Foreground(model.theme.NormalText).
		Render(fmt.Sprintf(" %d. %s", index+1, recommendation.RestaurantName))
	lines = append(lines, title)

	score := recommendation.SimilarityScore
	scoreStyle := lipgloss.NewStyle().Foreground(model.theme.ScoreColor(score)).Bold(true)
	lines = append(lines, fmt.Sprintf(" overall %s %s",
		scoreStyle.Render(fmt.Sprintf("%.2f", score)),
		scoreBar(score, 20, model.theme)))

	if recommendation.Address != "" {
		lines = append(lines, faint.Render(" "+recommendation.Address))
	}
	if recommendation.POIID != "" {
		lines = append(lines, faint.Render(" poi "+recommendation.POIID))
	}

	if len(recommendation.FeatureScores) > 0 {
		lines = append(lines, "")
		lines = append(lines, header.Render(" feature scores"))

		names := make([]string, 0, len(recommendation.FeatureScores))
		widest := 0
		for name := range recommendation.FeatureScores {
			names = append(names, name)
			if len(name) > widest {
				widest = len(name)
			}
		}
		sort.Strings(names)

		for _, name := range names {
			value := recommendation.FeatureScores[name]
			valueStyle := lipgloss.NewStyle().Foreground(model.theme.ScoreColor(value))
			lines = append(lines, fmt.Sprintf("   %-*s %s %s",
				widest, name,
				valueStyle.Render(fmt.Sprintf("%.2f", value)),
				scoreBar(value, 14, model.theme)))
		}
	}

	if recommendation.Explanation != "" {
		lines = append(lines, "")
		lines = append(lines, header.Render(" why this match"))
		wrapped := ansi.Wrap(recommendation.Explanation, width-2, " ,.;-+|")
		for _, line := range strings.Split(wrapped, "\n") {
			lines = append(lines, " "+line)
		}
	}

	return strings.Join(lines, "\n")
}

// viewResults renders the results tab: guidance before the first
// submission, the loading state, or the filtered recommendation list.
func (model Model) viewResults() string {
	if model.focusRegion == FocusDetail {
		return model.detail.View()
	}

	faint := lipgloss.NewStyle().Foreground(model.theme.FaintText)

	if model.recommendations == nil {
		if model.fetching {
			loading := lipgloss.NewStyle().
				Foreground(model.theme.LoadingColor).
				Italic(true)
			return "\n" + loading.Render(" fetching recommendations...")
		}
		if model.searchID != 0 {
			return "\n" + faint.Render(fmt.Sprintf(" search #%d submitted, press r to fetch recommendations", model.searchID))
		}
		return model.renderSubmitGuidance()
	}

	if len(model.recommendations) == 0 {
		return "\n" + faint.Render(" the backend returned no recommendations for this search")
	}

	var lines []string
	summary := fmt.Sprintf(" search #%d · %d of %d shown",
		model.searchID, len(model.matches), len(model.recommendations))
	if model.candidateCount > 0 {
		summary += fmt.Sprintf(" · from %d candidates", model.candidateCount)
	}
	if len(model.matches) > 0 {
		summary += fmt.Sprintf("  %d/%d", model.resultsCursor+1, len(model.matches))
	}
	lines = append(lines, faint.Render(summary))
	lines = append(lines, "")

	if len(model.matches) == 0 {
		lines = append(lines, faint.Render(fmt.Sprintf(" no matches for %q", model.filter.Input)))
		return strings.Join(lines, "\n")
	}

	listRows := model.contentHeight() - 2
	if listRows < 1 {
		listRows = 1
	}
	start, end := listWindow(len(model.matches), model.resultsCursor, listRows)
	for rowIndex := start; rowIndex < end; rowIndex++ {
		lines = append(lines, model.renderResultRow(rowIndex))
	}

	return strings.Join(lines, "\n")
}

// renderSubmitGuidance renders the pre-submission checklist.
func (model Model) renderSubmitGuidance() string {
	faint := lipgloss.NewStyle().Foreground(model.theme.FaintText)
	done := lipgloss.NewStyle().Foreground(model.theme.SuccessColor)

	cityLine := faint.Render(" · city: not picked (tab 1)")
	if model.location != nil {
		cityLine = done.Render(" ✓ ") + faint.Render("city: "+model.location.Name)
	}

	filled := model.filledSlotCount()
	slotLine := faint.Render(" · restaurants: none picked (tab 2)")
	if filled > 0 {
		slotLine = done.Render(" ✓ ") + faint.Render(fmt.Sprintf("restaurants: %d of %d picked", filled, len(model.slots)))
	}

	header := lipgloss.NewStyle().
		Bold(true).
		Foreground(model.theme.NormalText).
		Render(" no results yet")

	return strings.Join([]string{
		"",
		header,
		"",
		cityLine,
		slotLine,
		"",
		faint.Render(" press s to submit the search"),
	}, "\n")
}

// renderResultRow renders one recommendation list row: rank, score,
// score bar, name with filter match highlighting, address.
func (model Model) renderResultRow(rowIndex int) string {
	match := model.matches[rowIndex]
	recommendation := model.recommendations[match.Index]

	marker := "  "
	selected := rowIndex == model.resultsCursor
	if selected && model.focusRegion != FocusFilter {
		marker = lipgloss.NewStyle().
			Foreground(model.theme.Accent).
			Bold(true).
			Render("▸ ")
	}

	rank := lipgloss.NewStyle().
		Foreground(model.theme.FaintText).
		Render(fmt.Sprintf("%2d ", match.Index+1))

	score := recommendation.SimilarityScore
	scoreText := lipgloss.NewStyle().
		Foreground(model.theme.ScoreColor(score)).
		Render(fmt.Sprintf("%.2f ", score))
	bar := scoreBar(score, 10, model.theme)

	nameBase := lipgloss.NewStyle().Foreground(model.theme.NormalText)
	if selected {
		nameBase = nameBase.Bold(true)
	}
	nameMatch := nameBase.Background(model.theme.MatchBackground)
	name := highlightMatchedRunes(recommendation.RestaurantName, match.NamePositions, nameBase, nameMatch)

	row := " " + marker + rank + scoreText + bar + " " + name
	if recommendation.Address != "" {
		row += lipgloss.NewStyle().
			Foreground(model.theme.FaintText).
			Render(" · " + recommendation.Address)
	}

	return ansi.Truncate(row, model.contentWidth(), "…")
}

// scoreBar renders a fixed-width block bar for a similarity score in
// [0, 1], colored by the score band.
func scoreBar(score float64, width int, theme Theme) string {
	if score < 0 {
		score = 0
	}
	if score > 1 {
		score = 1
	}
	filled := int(score*float64(width) + 0.5)
	if filled > width {
		filled = width
	}
	bar := strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
	return lipgloss.NewStyle().Foreground(theme.ScoreColor(score)).Render(bar)
}

// highlightMatchedRunes styles the runes at the given indices with the
// match style and everything else with the base style. Indices are
// rune offsets, ascending.
func highlightMatchedRunes(text string, positions []int, base, match lipgloss.Style) string {
	if len(positions) == 0 {
		return base.Render(text)
	}

	matched := make(map[int]bool, len(positions))
	for _, position := range positions {
		matched[position] = true
	}

	var output strings.Builder
	var run []rune
	inMatch := false

	flush := func() {
		if len(run) == 0 {
			return
		}
		style := base
		if inMatch {
			style = match
		}
		output.WriteString(style.Render(string(run)))
		run = run[:0]
	}

	for index, character := range []rune(text) {
		if matched[index] != inMatch {
			flush()
			inMatch = matched[index]
		}
		run = append(run, character)
	}
	flush()

	return output.String()
}

// shortError trims an error message to fit the status bar.
func shortError(err error) string {
	text := err.Error()
	runes := []rune(text)
	if len(runes) > 60 {
		return string(runes[:60]) + "…"
	}
	return text
}
