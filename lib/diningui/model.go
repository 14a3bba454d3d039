// Copyright 2026 The Tablescout Authors
// SPDX-License-Identifier: Apache-2.0

package diningui

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/tablescout/tablescout/lib/api"
	"github.com/tablescout/tablescout/lib/clock"
	"github.com/tablescout/tablescout/lib/generation"
	"github.com/tablescout/tablescout/lib/schema"
	"github.com/tablescout/tablescout/lib/selection"
	"github.com/tablescout/tablescout/lib/suggest"
)

// Tab identifies which page is active.
type Tab int

const (
	// TabLocation picks the city the search is anchored to.
	TabLocation Tab = iota
	// TabRestaurants fills the five restaurant slots.
	TabRestaurants
	// TabResults submits the search and shows the ranked
	// recommendations.
	TabResults
	// TabHistory lists saved searches for reloading.
	TabHistory
)

// FocusRegion identifies what currently owns the keyboard.
type FocusRegion int

const (
	// FocusBrowse means navigation keys move the active tab's cursor
	// and single-letter commands are live.
	FocusBrowse FocusRegion = iota
	// FocusInput means keystrokes go to the active suggestion widget.
	FocusInput
	// FocusFilter means keystrokes go to the results filter input.
	FocusFilter
	// FocusDetail means navigation keys scroll the recommendation
	// detail viewport.
	FocusDetail
	// FocusConfirm means a clear-all confirmation is pending and the
	// next key decides it.
	FocusConfirm
	// FocusHelp means the help overlay is open.
	FocusHelp
)

// StoreChangedMsg tells the model that the selection store mutated
// outside its own update loop. The composition root wires
// selection.Store.Subscribe to program.Send with this message; the
// model responds by re-reading the store.
type StoreChangedMsg struct{}

// tabDefs drive the header tab bar, in display order.
var tabDefs = []struct {
	label string
	tab   Tab
}{
	{"1:Location", TabLocation},
	{"2:Restaurants", TabRestaurants},
	{"3:Results", TabResults},
	{"4:History", TabHistory},
}

// Config carries the collaborators for the TUI model. Client and Store
// are required; everything else has a default.
type Config struct {
	// Client performs all backend calls.
	Client *api.Client

	// Store holds the shared selection state the model renders and
	// mutates.
	Store *selection.Store

	// Theme is the color palette. The zero value means DefaultTheme.
	Theme Theme

	// TopK is the number of recommendations requested per fetch.
	// Zero uses the backend default.
	TopK int

	// Debounce is the suggestion widgets' keystroke quiet period.
	// Zero uses suggest.DefaultDebounce.
	Debounce time.Duration

	// MaxVisible caps the suggestion rows per panel. Zero uses
	// suggest.DefaultMaxVisible.
	MaxVisible int

	// Clock supplies the suggestion debounce timers. Defaults to
	// clock.Real(). Inject clock.Fake() in tests.
	Clock clock.Clock

	// Logger is used for structured logging. Defaults to
	// slog.Default().
	Logger *slog.Logger
}

// Model is the top-level bubbletea model for the tablescout TUI.
type Model struct {
	client *api.Client
	store  *selection.Store
	theme  Theme
	keys   KeyMap
	logger *slog.Logger
	topK   int

	// Terminal dimensions (set by WindowSizeMsg).
	width  int
	height int
	ready  bool

	activeTab   Tab
	focusRegion FocusRegion

	// Mirrors of the selection store, refreshed after every mutation
	// and on StoreChangedMsg. Rendering never reads the store directly.
	location        *schema.Location
	slots           []*schema.Restaurant
	searchID        int
	recommendations []schema.Recommendation

	// Suggestion widgets: one for the city, one per restaurant slot.
	locationSearch suggest.Model[schema.Location]
	slotSearches   [selection.SlotCount]suggest.Model[schema.Restaurant]
	slotCursor     int

	// Results state. matches is the filtered view of recommendations;
	// the cursor indexes into matches, not recommendations.
	// candidateCount is the size of the city sweep behind the current
	// search.
	filter         FilterModel
	matches        []FilterMatch
	resultsCursor  int
	candidateCount int
	detail         viewport.Model

	// Search lifecycle. fetchGuard discards results of submissions and
	// fetches that a clear-all abandoned.
	submitting bool
	fetching   bool
	fetchGuard generation.Guard

	// History state.
	searches       []schema.Search
	historyCursor  int
	historyLoading bool
	historyLoaded  bool

	// Help overlay.
	help viewport.Model

	// Status bar: a transient outcome notice and the latest log line,
	// each fading independently.
	notice        string
	noticeIsError bool
	noticeSeq     int
	logLine       string
	logLevel      slog.Level
	logSeq        int

	// Busy spinner.
	spinnerFrame int
	tickRunning  bool
}

// New creates a Model wired to the given backend client and selection
// store. Panics if either is missing.
func New(config Config) Model {
	if config.Client == nil {
		panic("diningui: Config.Client is required")
	}
	if config.Store == nil {
		panic("diningui: Config.Store is required")
	}
	if config.Theme == (Theme{}) {
		config.Theme = DefaultTheme
	}
	if config.Clock == nil {
		config.Clock = clock.Real()
	}
	if config.Logger == nil {
		config.Logger = slog.Default()
	}

	model := Model{
		client:    config.Client,
		store:     config.Store,
		theme:     config.Theme,
		keys:      DefaultKeyMap,
		logger:    config.Logger,
		topK:      config.TopK,
		activeTab: TabLocation,
	}

	client := config.Client
	store := config.Store
	logger := config.Logger
	styles := suggestStyles(config.Theme)

	model.locationSearch = suggest.New(suggest.Config[schema.Location]{
		Lookup:      client.SearchLocations,
		Format:      formatLocationSuggestion,
		OnSelect:    func(location schema.Location) { store.SetLocation(&location) },
		FormatError: formatLookupError,
		Prompt:      "city> ",
		Placeholder: "type a city name",
		Debounce:    config.Debounce,
		MaxVisible:  config.MaxVisible,
		Clock:       config.Clock,
	})
	model.locationSearch.Styles = styles

	for index := range model.slotSearches {
		slot := index
		model.slotSearches[index] = suggest.New(suggest.Config[schema.Restaurant]{
			Lookup:   client.SearchRestaurants,
			Format:   formatRestaurantSuggestion,
			OnSelect: func(restaurant schema.Restaurant) {
				if err := store.UpdateRestaurant(slot, &restaurant); err != nil {
					logger.Warn("restaurant slot update rejected", "slot", slot, "error", err)
				}
			},
			FormatError: formatLookupError,
			Prompt:      fmt.Sprintf("slot %d> ", index+1),
			Placeholder: "type a restaurant name",
			Debounce:    config.Debounce,
			MaxVisible:  config.MaxVisible,
			Clock:       config.Clock,
		})
		model.slotSearches[index].Styles = styles
	}

	// The location tab starts with its input focused: the first thing
	// a new session needs is a city.
	model.focusRegion = FocusInput
	model.locationSearch.Focus()

	model.refreshFromStore()
	return model
}

// suggestStyles maps the theme onto the suggestion widget styles so
// all six widgets match the rest of the chrome.
func suggestStyles(theme Theme) suggest.Styles {
	styles := suggest.DefaultStyles()
	styles.Prompt = lipgloss.NewStyle().Foreground(theme.Accent)
	styles.Query = lipgloss.NewStyle().Foreground(theme.NormalText)
	styles.Placeholder = lipgloss.NewStyle().Foreground(theme.FaintText)
	styles.Cursor = lipgloss.NewStyle().Foreground(theme.Accent).Bold(true)
	styles.Panel = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.BorderColor)
	styles.Row = lipgloss.NewStyle().Foreground(theme.NormalText)
	styles.SelectedRow = lipgloss.NewStyle().Foreground(theme.SelectedForeground).Background(theme.SelectedBackground).Bold(true)
	styles.LoadingRow = lipgloss.NewStyle().Foreground(theme.LoadingColor).Italic(true)
	styles.ErrorRow = lipgloss.NewStyle().Foreground(theme.ErrorColor)
	styles.EmptyRow = lipgloss.NewStyle().Foreground(theme.FaintText)
	return styles
}

// formatLocationSuggestion renders a city suggestion row.
func formatLocationSuggestion(location schema.Location) string {
	if location.Population > 0 {
		return fmt.Sprintf("%s (pop %d)", location.Name, location.Population)
	}
	return location.Name
}

// formatRestaurantSuggestion renders a restaurant suggestion row.
func formatRestaurantSuggestion(restaurant schema.Restaurant) string {
	if restaurant.Address != "" {
		return restaurant.Name + " · " + restaurant.Address
	}
	return restaurant.Name
}

// formatLookupError maps backend errors onto the short inline text the
// suggestion panels show. Rate-limit responses keep the backend's own
// wording, which tells the user to slow down.
func formatLookupError(err error) string {
	switch {
	case api.IsRateLimited(err):
		var apiError *api.APIError
		if errors.As(err, &apiError) && apiError.Message != "" {
			return apiError.Message
		}
		return "rate limited, give it a moment"
	case api.IsServerError(err):
		return "backend error, try again"
	default:
		return err.Error()
	}
}

// Init implements tea.Model. All startup work (store subscription, log
// routing) is wired by the composition root, so there is nothing to
// kick off here.
func (model Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model. Keyboard input routes by focus region;
// everything else is lifecycle and completion messages. Messages the
// model does not recognize are forwarded to every suggestion widget,
// because the widgets' debounce and lookup messages are internal to
// the suggest package and route themselves by widget identity.
func (model Model) Update(message tea.Msg) (tea.Model, tea.Cmd) {
	switch message := message.(type) {
	case tea.KeyMsg:
		return model.handleKey(message)

	case tea.WindowSizeMsg:
		model.width = message.Width
		model.height = message.Height
		model.ready = true
		model.layout()
		return model, nil

	case StoreChangedMsg:
		model.refreshFromStore()
		return model, nil

	case spinnerTickMsg:
		if model.busy() {
			model.spinnerFrame = (model.spinnerFrame + 1) % len(spinnerFrames)
			return model, spinnerTick()
		}
		model.tickRunning = false
		return model, nil

	case submitResultMsg:
		return model.handleSubmitResult(message)

	case recommendationsMsg:
		return model.handleRecommendations(message)

	case historyLoadedMsg:
		return model.handleHistoryLoaded(message)

	case logRecordMsg:
		model.logLine = message.Summary
		model.logLevel = message.Level
		model.logSeq++
		seq := model.logSeq
		return model, tea.Tick(logRecordFadeDelay, func(time.Time) tea.Msg {
			return logRecordFadeMsg{Seq: seq}
		})

	case logRecordFadeMsg:
		if message.Seq == model.logSeq {
			model.logLine = ""
		}
		return model, nil

	case noticeFadeMsg:
		if message.seq == model.noticeSeq {
			model.notice = ""
		}
		return model, nil
	}

	return model.forwardToWidgets(message)
}

// forwardToWidgets hands an unrecognized message to every suggestion
// widget. Each widget ignores messages that are not its own, so at
// most one acts on it.
func (model Model) forwardToWidgets(message tea.Msg) (tea.Model, tea.Cmd) {
	var commands []tea.Cmd
	var cmd tea.Cmd

	model.locationSearch, cmd = model.locationSearch.Update(message)
	if cmd != nil {
		commands = append(commands, cmd)
	}
	for index := range model.slotSearches {
		model.slotSearches[index], cmd = model.slotSearches[index].Update(message)
		if cmd != nil {
			commands = append(commands, cmd)
		}
	}
	if len(commands) == 0 {
		return model, nil
	}
	return model, tea.Batch(commands...)
}

// handleKey routes a keystroke to whatever owns the keyboard.
func (model Model) handleKey(message tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch model.focusRegion {
	case FocusHelp:
		return model.handleHelpKeys(message)
	case FocusConfirm:
		return model.handleConfirmKeys(message)
	case FocusFilter:
		return model.handleFilterKeys(message)
	case FocusInput:
		return model.handleInputKeys(message)
	case FocusDetail:
		return model.handleDetailKeys(message)
	}
	return model.handleBrowseKeys(message)
}

// handleBrowseKeys processes keys when no input owns the keyboard:
// global commands first, then the active tab's own bindings.
func (model Model) handleBrowseKeys(message tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(message, model.keys.Quit):
		return model, tea.Quit

	case key.Matches(message, model.keys.Help):
		model.openHelp()
		return model, nil

	case key.Matches(message, model.keys.TabLocation):
		cmd := model.switchTab(TabLocation)
		return model, cmd

	case key.Matches(message, model.keys.TabRestaurants):
		cmd := model.switchTab(TabRestaurants)
		return model, cmd

	case key.Matches(message, model.keys.TabResults):
		cmd := model.switchTab(TabResults)
		return model, cmd

	case key.Matches(message, model.keys.TabHistory):
		cmd := model.switchTab(TabHistory)
		return model, cmd

	case key.Matches(message, model.keys.ClearAll):
		if model.selectionEmpty() {
			cmd := model.setNotice("nothing to clear", false)
			return model, cmd
		}
		model.focusRegion = FocusConfirm
		return model, nil
	}

	switch model.activeTab {
	case TabLocation:
		return model.handleLocationKeys(message)
	case TabRestaurants:
		return model.handleSlotKeys(message)
	case TabResults:
		return model.handleResultsKeys(message)
	case TabHistory:
		return model.handleHistoryKeys(message)
	}
	return model, nil
}

// handleInputKeys processes keys while a suggestion widget is focused.
// Ctrl+C still quits; Esc with a closed panel blurs the widget back to
// browse mode; everything else goes to the widget.
func (model Model) handleInputKeys(message tea.KeyMsg) (tea.Model, tea.Cmd) {
	if message.Type == tea.KeyCtrlC {
		return model, tea.Quit
	}

	var cmd tea.Cmd
	if model.activeTab == TabLocation {
		if key.Matches(message, model.keys.Back) && !model.locationSearch.PanelOpen() {
			model.locationSearch.Blur()
			model.focusRegion = FocusBrowse
			return model, nil
		}
		model.locationSearch, cmd = model.locationSearch.Update(message)
	} else {
		slot := model.slotCursor
		if key.Matches(message, model.keys.Back) && !model.slotSearches[slot].PanelOpen() {
			model.slotSearches[slot].Blur()
			model.focusRegion = FocusBrowse
			return model, nil
		}
		model.slotSearches[slot], cmd = model.slotSearches[slot].Update(message)
	}

	// Accepting a suggestion writes to the store synchronously inside
	// the widget update, so re-read the mirrors every time.
	model.refreshSelection()
	return model, cmd
}

// handleConfirmKeys resolves a pending clear-all: y clears, anything
// else cancels.
func (model Model) handleConfirmKeys(message tea.KeyMsg) (tea.Model, tea.Cmd) {
	model.focusRegion = FocusBrowse
	if message.String() == "y" || message.String() == "Y" {
		model.clearAll()
		cmd := model.setNotice("selection cleared", false)
		return model, cmd
	}
	cmd := model.setNotice("clear cancelled", false)
	return model, cmd
}

// handleHelpKeys scrolls or closes the help overlay.
func (model Model) handleHelpKeys(message tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case message.Type == tea.KeyCtrlC:
		return model, tea.Quit
	case key.Matches(message, model.keys.Help),
		key.Matches(message, model.keys.Back),
		key.Matches(message, model.keys.Quit):
		model.focusRegion = FocusBrowse
	case key.Matches(message, model.keys.Up):
		model.help.LineUp(1)
	case key.Matches(message, model.keys.Down):
		model.help.LineDown(1)
	case key.Matches(message, model.keys.PageUp):
		model.help.HalfViewUp()
	case key.Matches(message, model.keys.PageDown):
		model.help.HalfViewDown()
	}
	return model, nil
}

// switchTab activates a tab and resets focus for it. The location tab
// always lands with its input focused; the history tab loads the
// saved-search list on first visit.
func (model *Model) switchTab(tab Tab) tea.Cmd {
	model.activeTab = tab
	model.focusRegion = FocusBrowse
	model.locationSearch.Blur()
	for index := range model.slotSearches {
		model.slotSearches[index].Blur()
	}

	switch tab {
	case TabLocation:
		model.focusRegion = FocusInput
		model.locationSearch.Focus()
	case TabHistory:
		if !model.historyLoaded && !model.historyLoading {
			return model.loadHistory()
		}
	}
	return nil
}

// openHelp renders the help document into its viewport and hands it
// the keyboard.
func (model *Model) openHelp() {
	model.help.Width = model.contentWidth()
	model.help.Height = model.contentHeight()
	model.help.SetContent(renderHelpContent(model.theme, model.contentWidth()))
	model.help.GotoTop()
	model.focusRegion = FocusHelp
}

// clearAll resets the store and every piece of derived UI state. Any
// in-flight submission or fetch is abandoned: its result message will
// carry a stale token and be ignored.
func (model *Model) clearAll() {
	model.fetchGuard.Invalidate()
	model.submitting = false
	model.fetching = false
	model.store.Clear()
	model.filter.Clear()
	model.locationSearch = model.locationSearch.Reset()
	for index := range model.slotSearches {
		model.slotSearches[index] = model.slotSearches[index].Reset()
	}
	model.resultsCursor = 0
	model.candidateCount = 0
	if model.focusRegion == FocusDetail {
		model.focusRegion = FocusBrowse
	}
	model.refreshFromStore()
}

// selectionEmpty reports whether there is anything a clear-all would
// remove.
func (model Model) selectionEmpty() bool {
	if model.location != nil || model.searchID != 0 || len(model.recommendations) > 0 {
		return false
	}
	for _, slot := range model.slots {
		if slot != nil {
			return false
		}
	}
	return true
}

// refreshSelection re-reads the location and slots from the store.
func (model *Model) refreshSelection() {
	model.location = model.store.Location()
	model.slots = model.store.Restaurants()
	model.searchID = model.store.SearchID()
}

// refreshFromStore re-reads everything from the store and rebuilds the
// derived results state.
func (model *Model) refreshFromStore() {
	model.refreshSelection()
	model.recommendations = model.store.Recommendations()
	model.applyResultsFilter()
	if model.historyCursor >= len(model.searches) && model.historyCursor > 0 {
		model.historyCursor = len(model.searches) - 1
	}
	if model.focusRegion == FocusDetail {
		if _, ok := model.currentMatch(); ok {
			model.syncDetail()
		} else {
			model.focusRegion = FocusBrowse
		}
	}
}

// applyResultsFilter recomputes the filtered match list and clamps the
// results cursor.
func (model *Model) applyResultsFilter() {
	model.matches = model.filter.ApplyFuzzy(model.recommendations)
	if model.resultsCursor >= len(model.matches) {
		model.resultsCursor = 0
	}
}

// layout recomputes sizes after a terminal resize.
func (model *Model) layout() {
	inputWidth := model.inputWidth()
	model.locationSearch.SetWidth(inputWidth)
	for index := range model.slotSearches {
		model.slotSearches[index].SetWidth(inputWidth)
	}

	model.detail.Width = model.contentWidth()
	model.detail.Height = model.contentHeight()
	if model.focusRegion == FocusDetail {
		model.syncDetail()
	}

	model.help.Width = model.contentWidth()
	model.help.Height = model.contentHeight()
	if model.focusRegion == FocusHelp {
		model.help.SetContent(renderHelpContent(model.theme, model.contentWidth()))
	}
}

// contentHeight is the rows left for tab content after the header,
// the bottom separator, and the status bar.
func (model Model) contentHeight() int {
	height := model.height - 3
	if height < 1 {
		height = 1
	}
	return height
}

// contentWidth is the columns available to tab content.
func (model Model) contentWidth() int {
	width := model.width - 2
	if width < 10 {
		width = 10
	}
	return width
}

// inputWidth caps the suggestion widgets at a readable width.
func (model Model) inputWidth() int {
	width := model.width - 4
	if width > 72 {
		width = 72
	}
	if width < 20 {
		width = 20
	}
	return width
}

// listWindow returns the [start, end) slice of rows to render so the
// cursor stays visible, preferring to center it.
func listWindow(total, cursor, max int) (start, end int) {
	if total <= max {
		return 0, total
	}
	start = cursor - max/2
	if start < 0 {
		start = 0
	}
	if start+max > total {
		start = total - max
	}
	return start, start + max
}

// View implements tea.Model. Renders the full frame: header line, tab
// content, separator, status bar.
func (model Model) View() string {
	if !model.ready {
		return "Loading..."
	}

	if model.focusRegion == FocusHelp {
		return model.renderHelpOverlay()
	}

	var sections []string

	// Top chrome: the filter bar replaces the tab bar while filtering
	// so the layout does not shift.
	filterView := ""
	if model.activeTab == TabResults {
		filterView = model.filter.View(model.theme, model.width)
	}
	if filterView != "" {
		sections = append(sections, filterView)
	} else {
		sections = append(sections, model.renderHeader())
	}

	var content string
	switch model.activeTab {
	case TabLocation:
		content = model.viewLocation()
	case TabRestaurants:
		content = model.viewRestaurants()
	case TabResults:
		content = model.viewResults()
	case TabHistory:
		content = model.viewHistory()
	}
	frame := lipgloss.NewStyle().
		Height(model.contentHeight()).
		MaxHeight(model.contentHeight()).
		Render(content)
	sections = append(sections, frame)

	separator := lipgloss.NewStyle().
		Foreground(model.theme.BorderColor).
		Render(strings.Repeat("─", model.width))
	sections = append(sections, separator)

	sections = append(sections, model.renderStatusBar())

	return strings.Join(sections, "\n")
}

// renderHelpOverlay renders the full-screen help page.
func (model Model) renderHelpOverlay() string {
	title := lipgloss.NewStyle().
		Bold(true).
		Foreground(model.theme.HeaderForeground).
		Render(" help ")
	rule := lipgloss.NewStyle().Foreground(model.theme.BorderColor)
	headerWidth := model.width - lipgloss.Width(title) - 3
	if headerWidth < 1 {
		headerWidth = 1
	}
	header := rule.Render("───") + title + rule.Render(strings.Repeat("─", headerWidth))

	body := lipgloss.NewStyle().
		Height(model.contentHeight()).
		MaxHeight(model.contentHeight()).
		Render(model.help.View())

	hint := lipgloss.NewStyle().
		Foreground(model.theme.HelpText).
		Render(" j/k scroll  C-u/C-d page  ? close")

	separator := rule.Render(strings.Repeat("─", model.width))
	return strings.Join([]string{header, body, separator, hint}, "\n")
}

// renderHeader renders the combined tab bar and separator as a single
// line in the btop style: tab labels embedded in a horizontal rule
// with selection stats on the right.
//
// Example: ─── 1:Location ─── 2:Restaurants ─── ... ── Ithaca, NY  3/5 picked ─
func (model Model) renderHeader() string {
	separatorStyle := lipgloss.NewStyle().
		Foreground(model.theme.BorderColor)
	activeStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(model.theme.Accent)
	inactiveStyle := lipgloss.NewStyle().
		Foreground(model.theme.FaintText)
	statsStyle := lipgloss.NewStyle().
		Foreground(model.theme.FaintText)

	sep := separatorStyle.Render("─")

	leftParts := sep + sep + sep
	cursor := 3

	for index, tabDef := range tabDefs {
		leftParts += " "
		cursor++

		if model.activeTab == tabDef.tab {
			leftParts += activeStyle.Render(tabDef.label)
		} else {
			leftParts += inactiveStyle.Render(tabDef.label)
		}
		cursor += lipgloss.Width(tabDef.label)

		leftParts += " "
		cursor++

		sepCount := 3
		if index == len(tabDefs)-1 {
			sepCount = 1
		}
		for range sepCount {
			leftParts += sep
			cursor++
		}
	}

	statsText := model.headerStats()
	statsRendered := statsStyle.Render(statsText)
	statsWidth := lipgloss.Width(statsText)

	rightPortion := " " + statsRendered + " " + sep
	rightWidth := 1 + statsWidth + 1 + 1

	fillCount := model.width - cursor - rightWidth
	if fillCount < 1 {
		fillCount = 1
	}
	fill := ""
	for range fillCount {
		fill += sep
	}

	return leftParts + fill + rightPortion
}

// headerStats summarizes the selection for the right edge of the
// header: city, filled slots, and result count.
func (model Model) headerStats() string {
	var parts []string
	if model.location != nil {
		parts = append(parts, model.location.Name)
	}
	parts = append(parts, fmt.Sprintf("%d/%d picked", model.filledSlotCount(), selection.SlotCount))
	if len(model.recommendations) > 0 {
		parts = append(parts, fmt.Sprintf("%d results", len(model.recommendations)))
	}
	return strings.Join(parts, "  ")
}

// filledSlotCount counts the non-empty restaurant slots.
func (model Model) filledSlotCount() int {
	count := 0
	for _, slot := range model.slots {
		if slot != nil {
			count++
		}
	}
	return count
}
