// Copyright 2026 The Tablescout Authors
// SPDX-License-Identifier: Apache-2.0

package diningui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines all key bindings for the tablescout TUI.
type KeyMap struct {
	// Navigation (context-sensitive: slot movement on the restaurants
	// tab, row movement on the results and history tabs, scrolling in
	// the detail pane and help overlay).
	Up       key.Binding
	Down     key.Binding
	PageUp   key.Binding
	PageDown key.Binding

	// Tab switching.
	TabLocation    key.Binding
	TabRestaurants key.Binding
	TabResults     key.Binding
	TabHistory     key.Binding

	// Select is context-sensitive: focus a restaurant slot for
	// editing, open a recommendation's detail pane, or load a saved
	// search from history.
	Select key.Binding

	// Back leaves the current editing context: blur an input, close
	// the detail pane, cancel a pending confirmation.
	Back key.Binding

	// Selection mutations (restaurants tab).
	ClearSlot key.Binding // Empty the slot under the cursor.
	ClearAll  key.Binding // Reset the whole selection, with confirmation.

	// Search lifecycle (results tab).
	Submit  key.Binding // Persist the selection and rank the city sweep.
	Refetch key.Binding // Re-rank the already-submitted search.

	// Results filter.
	FilterActivate key.Binding // Enter filter mode.
	FilterClear    key.Binding // Clear filter and exit filter mode.

	Help key.Binding
	Quit key.Binding
}

// DefaultKeyMap is the built-in key binding set. Vim-style navigation
// (j/k) alongside standard arrow keys.
var DefaultKeyMap = KeyMap{
	Up: key.NewBinding(
		key.WithKeys("k", "up"),
		key.WithHelp("k/↑", "up"),
	),
	Down: key.NewBinding(
		key.WithKeys("j", "down"),
		key.WithHelp("j/↓", "down"),
	),
	PageUp: key.NewBinding(
		key.WithKeys("ctrl+u", "pgup"),
		key.WithHelp("C-u", "page up"),
	),
	PageDown: key.NewBinding(
		key.WithKeys("ctrl+d", "pgdown"),
		key.WithHelp("C-d", "page down"),
	),
	TabLocation: key.NewBinding(
		key.WithKeys("1"),
		key.WithHelp("1", "location"),
	),
	TabRestaurants: key.NewBinding(
		key.WithKeys("2"),
		key.WithHelp("2", "restaurants"),
	),
	TabResults: key.NewBinding(
		key.WithKeys("3"),
		key.WithHelp("3", "results"),
	),
	TabHistory: key.NewBinding(
		key.WithKeys("4"),
		key.WithHelp("4", "history"),
	),
	Select: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("Enter", "select"),
	),
	Back: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("Esc", "back"),
	),
	ClearSlot: key.NewBinding(
		key.WithKeys("d"),
		key.WithHelp("d", "clear slot"),
	),
	ClearAll: key.NewBinding(
		key.WithKeys("ctrl+l"),
		key.WithHelp("C-l", "clear all"),
	),
	Submit: key.NewBinding(
		key.WithKeys("s"),
		key.WithHelp("s", "submit"),
	),
	Refetch: key.NewBinding(
		key.WithKeys("r"),
		key.WithHelp("r", "refetch"),
	),
	FilterActivate: key.NewBinding(
		key.WithKeys("/"),
		key.WithHelp("/", "filter"),
	),
	FilterClear: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("Esc", "clear filter"),
	),
	Help: key.NewBinding(
		key.WithKeys("?"),
		key.WithHelp("?", "help"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}
