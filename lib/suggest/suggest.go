// Copyright 2026 The Tablescout Authors
// SPDX-License-Identifier: Apache-2.0

package suggest

import (
	"context"
	"strings"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/tablescout/tablescout/lib/clock"
	"github.com/tablescout/tablescout/lib/generation"
)

const (
	// DefaultDebounce is the quiet period after the last keystroke
	// before a lookup is issued.
	DefaultDebounce = 800 * time.Millisecond

	// DefaultMaxVisible is the number of suggestion rows shown at once.
	// Longer result lists scroll within the panel.
	DefaultMaxVisible = 8
)

// lastWidgetID hands out instance identifiers so that timer and lookup
// messages can be routed back to the widget that issued them when
// several widgets of the same result type share one program.
var lastWidgetID atomic.Int64

func nextWidgetID() int {
	return int(lastWidgetID.Add(1))
}

// Config carries the collaborators and tuning for a suggestion widget.
// Lookup and Format are required; everything else has a default.
type Config[T any] struct {
	// Lookup performs the remote search for a query. It runs on its
	// own goroutine via the bubbletea command runner and may resolve
	// in any order relative to other calls; stale results are
	// discarded by the widget, not cancelled.
	Lookup func(ctx context.Context, query string) ([]T, error)

	// Format renders one result as its suggestion row text.
	Format func(value T) string

	// OnSelect is invoked synchronously when the user accepts a
	// suggestion, before Update returns. May be nil.
	OnSelect func(value T)

	// FormatError converts a lookup error into the inline message
	// shown in the panel. Defaults to err.Error().
	FormatError func(err error) string

	// Prompt is drawn before the query text. Defaults to "> ".
	Prompt string

	// Placeholder is shown dimmed while the query is empty.
	Placeholder string

	// Debounce is the keystroke quiet period. Defaults to
	// DefaultDebounce.
	Debounce time.Duration

	// MaxVisible caps the suggestion rows rendered at once. Defaults
	// to DefaultMaxVisible.
	MaxVisible int

	// Clock supplies the debounce timer. Defaults to clock.Real().
	Clock clock.Clock
}

// Styles are the lipgloss styles for each visual element of the
// widget. Replace individual fields after New to retheme.
type Styles struct {
	Prompt      lipgloss.Style
	Query       lipgloss.Style
	Placeholder lipgloss.Style
	Cursor      lipgloss.Style
	Panel       lipgloss.Style
	Row         lipgloss.Style
	SelectedRow lipgloss.Style
	LoadingRow  lipgloss.Style
	ErrorRow    lipgloss.Style
	EmptyRow    lipgloss.Style
}

// DefaultStyles returns the stock ANSI-256 palette.
func DefaultStyles() Styles {
	return Styles{
		Prompt:      lipgloss.NewStyle().Foreground(lipgloss.Color("111")),
		Query:       lipgloss.NewStyle(),
		Placeholder: lipgloss.NewStyle().Foreground(lipgloss.Color("240")),
		Cursor:      lipgloss.NewStyle().Foreground(lipgloss.Color("111")).Bold(true),
		Panel: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")),
		Row:         lipgloss.NewStyle(),
		SelectedRow: lipgloss.NewStyle().Foreground(lipgloss.Color("215")).Bold(true),
		LoadingRow:  lipgloss.NewStyle().Foreground(lipgloss.Color("244")).Italic(true),
		ErrorRow:    lipgloss.NewStyle().Foreground(lipgloss.Color("203")),
		EmptyRow:    lipgloss.NewStyle().Foreground(lipgloss.Color("240")),
	}
}

// keyMap binds the keys the widget consumes while focused.
type keyMap struct {
	CursorUp   key.Binding
	CursorDown key.Binding
	Accept     key.Binding
	Dismiss    key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		CursorUp:   key.NewBinding(key.WithKeys("up", "ctrl+p"), key.WithHelp("↑", "previous suggestion")),
		CursorDown: key.NewBinding(key.WithKeys("down", "ctrl+n"), key.WithHelp("↓", "next suggestion")),
		Accept:     key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "select")),
		Dismiss:    key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "dismiss")),
	}
}

// debounceElapsedMsg is delivered when a scheduled quiet period ends.
// The token identifies which keystroke scheduled it; only the most
// recent one is honored.
type debounceElapsedMsg struct {
	widget int
	token  generation.Token
}

// lookupResultMsg carries the outcome of one lookup call together
// with the token captured when the call was issued.
type lookupResultMsg[T any] struct {
	widget  int
	token   generation.Token
	query   string
	results []T
	err     error
}

// Model is a debounced autocomplete input. It follows the bubbles
// component convention: Update returns the evolved model by value and
// the caller reassigns it. One instance per input widget; instances
// never share state.
type Model[T any] struct {
	// Styles may be replaced wholesale after New to retheme the
	// widget.
	Styles Styles

	config Config[T]
	keys   keyMap
	id     int

	query       string
	suggestions []T
	cursor      int
	panelOpen   bool
	loading     bool
	errorText   string
	focused     bool
	width       int

	// cache maps exact query strings to their last successful result
	// list. Never evicted for the life of the widget.
	cache map[string][]T

	// debounceGuard invalidates superseded quiet-period timers;
	// lookupGuard invalidates superseded or unwanted lookup calls.
	debounceGuard generation.Guard
	lookupGuard   generation.Guard
}

// New constructs a widget from config, applying defaults for every
// optional field. Panics if Lookup or Format is missing.
func New[T any](config Config[T]) Model[T] {
	if config.Lookup == nil {
		panic("suggest: Config.Lookup is required")
	}
	if config.Format == nil {
		panic("suggest: Config.Format is required")
	}
	if config.Prompt == "" {
		config.Prompt = "> "
	}
	if config.Debounce <= 0 {
		config.Debounce = DefaultDebounce
	}
	if config.MaxVisible <= 0 {
		config.MaxVisible = DefaultMaxVisible
	}
	if config.Clock == nil {
		config.Clock = clock.Real()
	}
	return Model[T]{
		Styles: DefaultStyles(),
		config: config,
		keys:   defaultKeyMap(),
		id:     nextWidgetID(),
		cache:  make(map[string][]T),
	}
}

// Value returns the current query text.
func (model Model[T]) Value() string {
	return model.query
}

// Suggestions returns a copy of the currently visible result list.
func (model Model[T]) Suggestions() []T {
	if model.suggestions == nil {
		return nil
	}
	copied := make([]T, len(model.suggestions))
	copy(copied, model.suggestions)
	return copied
}

// Loading reports whether a lookup is in flight for the current query.
func (model Model[T]) Loading() bool {
	return model.loading
}

// Err returns the inline error message from the last failed lookup,
// or the empty string.
func (model Model[T]) Err() string {
	return model.errorText
}

// PanelOpen reports whether the suggestion panel is showing.
func (model Model[T]) PanelOpen() bool {
	return model.panelOpen
}

// Focused reports whether the widget renders as the active input.
func (model Model[T]) Focused() bool {
	return model.focused
}

// Focus marks the widget as the active input. The caller is expected
// to route keyboard messages only to the focused widget.
func (model *Model[T]) Focus() {
	model.focused = true
}

// Blur removes input focus. Panel state is untouched; use Dismiss to
// close the panel when focus moves elsewhere.
func (model *Model[T]) Blur() {
	model.focused = false
}

// SetWidth fixes the rendered width of the input line and panel.
// Zero means unconstrained.
func (model *Model[T]) SetWidth(width int) {
	model.width = width
}

// Dismiss closes the suggestion panel and discards any in-flight
// lookup, keeping the query text. A discarded lookup's late result is
// ignored on delivery.
func (model Model[T]) Dismiss() Model[T] {
	model.lookupGuard.Invalidate()
	model.suggestions = nil
	model.cursor = 0
	model.panelOpen = false
	model.loading = false
	model.errorText = ""
	return model
}

// Reset clears the query text and panel and suppresses all pending
// timers and lookups. The result cache survives.
func (model Model[T]) Reset() Model[T] {
	model.debounceGuard.Invalidate()
	model.query = ""
	return model.Dismiss()
}

// SetValue replaces the query text programmatically, running the same
// change pipeline as typing: empty text clears the panel immediately,
// anything else restarts the debounce timer.
func (model Model[T]) SetValue(text string) (Model[T], tea.Cmd) {
	return model.setQuery(text)
}

// Update handles one message. Keyboard input is consumed only while
// focused; timer and lookup messages are consumed whenever their
// widget id and generation token are current, and silently dropped
// otherwise.
func (model Model[T]) Update(message tea.Msg) (Model[T], tea.Cmd) {
	switch message := message.(type) {
	case tea.KeyMsg:
		if !model.focused {
			return model, nil
		}
		return model.handleKey(message)

	case debounceElapsedMsg:
		if message.widget != model.id || !model.debounceGuard.Current(message.token) {
			return model, nil
		}
		return model.dispatch()

	case lookupResultMsg[T]:
		if message.widget != model.id || !model.lookupGuard.Current(message.token) {
			return model, nil
		}
		return model.applyResult(message), nil
	}
	return model, nil
}

func (model Model[T]) handleKey(message tea.KeyMsg) (Model[T], tea.Cmd) {
	switch {
	case key.Matches(message, model.keys.CursorUp):
		if model.panelOpen && len(model.suggestions) > 0 {
			model.cursor--
			if model.cursor < 0 {
				model.cursor = len(model.suggestions) - 1
			}
		}
		return model, nil

	case key.Matches(message, model.keys.CursorDown):
		if model.panelOpen && len(model.suggestions) > 0 {
			model.cursor++
			if model.cursor >= len(model.suggestions) {
				model.cursor = 0
			}
		}
		return model, nil

	case key.Matches(message, model.keys.Accept):
		return model.accept()

	case key.Matches(message, model.keys.Dismiss):
		return model.Dismiss(), nil

	case message.Type == tea.KeyBackspace:
		if model.query == "" {
			return model, nil
		}
		runes := []rune(model.query)
		return model.setQuery(string(runes[:len(runes)-1]))

	case message.Type == tea.KeyRunes || message.Type == tea.KeySpace:
		return model.setQuery(model.query + string(message.Runes))
	}
	return model, nil
}

// setQuery applies a text change. The input reflects the change
// immediately; the lookup waits for the debounce timer. Clearing to
// empty closes the panel at once, schedules nothing, and discards any
// in-flight lookup.
func (model Model[T]) setQuery(text string) (Model[T], tea.Cmd) {
	if text == model.query {
		return model, nil
	}
	model.query = text
	if text == "" {
		model.debounceGuard.Invalidate()
		return model.Dismiss(), nil
	}

	token := model.debounceGuard.Next()
	widget := model.id
	delay := model.config.Debounce
	clk := model.config.Clock
	return model, func() tea.Msg {
		<-clk.After(delay)
		return debounceElapsedMsg{widget: widget, token: token}
	}
}

// dispatch runs when the most recent debounce timer fires: serve from
// cache when the exact query has been answered before, otherwise issue
// a lookup tagged with a fresh generation token.
func (model Model[T]) dispatch() (Model[T], tea.Cmd) {
	query := model.query
	if query == "" {
		// Clearing the input closes the panel before the timer can
		// fire, so an empty query here means a stray timer. Settle
		// into the closed state without a lookup.
		return model.Dismiss(), nil
	}

	if cached, hit := model.cache[query]; hit {
		model.lookupGuard.Invalidate()
		model.suggestions = cached
		model.cursor = 0
		model.panelOpen = true
		model.loading = false
		model.errorText = ""
		return model, nil
	}

	token := model.lookupGuard.Next()
	widget := model.id
	lookup := model.config.Lookup
	model.loading = true
	model.panelOpen = true
	model.errorText = ""
	return model, func() tea.Msg {
		results, err := lookup(context.Background(), query)
		return lookupResultMsg[T]{
			widget:  widget,
			token:   token,
			query:   query,
			results: results,
			err:     err,
		}
	}
}

// applyResult installs a lookup outcome whose token is still current.
func (model Model[T]) applyResult(message lookupResultMsg[T]) Model[T] {
	model.loading = false
	model.cursor = 0
	model.panelOpen = true
	if message.err != nil {
		model.errorText = model.formatError(message.err)
		model.suggestions = nil
		return model
	}
	model.cache[message.query] = message.results
	model.suggestions = message.results
	model.errorText = ""
	return model
}

// accept commits the highlighted suggestion: invoke OnSelect, clear
// the input, close the panel, and invalidate both guards so that
// neither the pending debounce timer nor an in-flight lookup can act
// on the selection's text-clear.
func (model Model[T]) accept() (Model[T], tea.Cmd) {
	// While a lookup is in flight the panel shows the loading row, not
	// the suggestion list, so there is nothing visible to accept.
	if !model.panelOpen || model.loading || model.cursor >= len(model.suggestions) {
		return model, nil
	}
	chosen := model.suggestions[model.cursor]
	model.debounceGuard.Invalidate()
	model.query = ""
	model = model.Dismiss()
	if model.config.OnSelect != nil {
		model.config.OnSelect(chosen)
	}
	return model, nil
}

func (model Model[T]) formatError(err error) string {
	if model.config.FormatError != nil {
		return model.config.FormatError(err)
	}
	return err.Error()
}

// View renders the input line, plus the suggestion panel when focused
// with the panel open.
func (model Model[T]) View() string {
	var view strings.Builder
	view.WriteString(model.viewInput())
	if model.focused && model.panelOpen {
		view.WriteString("\n")
		view.WriteString(model.viewPanel())
	}
	return view.String()
}

func (model Model[T]) viewInput() string {
	prompt := model.Styles.Prompt.Render(model.config.Prompt)

	var body string
	if model.query == "" && model.config.Placeholder != "" {
		body = model.Styles.Placeholder.Render(model.truncate(model.config.Placeholder))
	} else {
		body = model.Styles.Query.Render(model.truncate(model.query))
	}

	if model.focused {
		body += model.Styles.Cursor.Render("▎")
	}
	return prompt + body
}

func (model Model[T]) viewPanel() string {
	var rows []string
	switch {
	case model.loading:
		rows = append(rows, model.Styles.LoadingRow.Render("searching…"))
	case model.errorText != "":
		rows = append(rows, model.Styles.ErrorRow.Render("✗ "+model.truncate(model.errorText)))
	case len(model.suggestions) == 0:
		rows = append(rows, model.Styles.EmptyRow.Render("no matches"))
	default:
		start, end := visibleWindow(len(model.suggestions), model.cursor, model.config.MaxVisible)
		for index := start; index < end; index++ {
			label := model.truncate(model.config.Format(model.suggestions[index]))
			if index == model.cursor {
				rows = append(rows, model.Styles.SelectedRow.Render("> "+label))
			} else {
				rows = append(rows, model.Styles.Row.Render("  "+label))
			}
		}
	}

	panel := model.Styles.Panel
	if model.width > 0 {
		panel = panel.Width(model.width - panel.GetHorizontalFrameSize())
	}
	return panel.Render(strings.Join(rows, "\n"))
}

// truncate trims a row to the widget width, accounting for the prompt
// or cursor marker and the panel frame.
func (model Model[T]) truncate(text string) string {
	if model.width <= 0 {
		return text
	}
	available := model.width - 4
	if available < 1 {
		available = 1
	}
	if ansi.StringWidth(text) <= available {
		return text
	}
	return ansi.Truncate(text, available, "…")
}

// visibleWindow selects the slice of rows to render so that the
// cursor stays roughly centered once the list outgrows the panel.
func visibleWindow(total, cursor, max int) (start, end int) {
	if total <= max {
		return 0, total
	}
	start = cursor - max/2
	if start < 0 {
		start = 0
	}
	end = start + max
	if end > total {
		end = total
		start = end - max
	}
	return start, end
}
