// Copyright 2026 The Tablescout Authors
// SPDX-License-Identifier: Apache-2.0

package diningui

import (
	"sort"

	"github.com/charmbracelet/lipgloss"

	"github.com/tablescout/tablescout/lib/schema"
)

// FilterModel implements fzf-style matching over the recommendation
// list: restaurant name, address, and explanation text. The filter
// narrows the fetched results client-side without re-ranking on the
// backend.
type FilterModel struct {
	// Input is the current filter query text.
	Input string

	// Active is true when the filter input has keyboard focus
	// (the user pressed / to start typing).
	Active bool
}

// FilterMatch pairs a recommendation that survived the filter with its
// match metadata.
type FilterMatch struct {
	// Index is the recommendation's position in the unfiltered list.
	Index int

	// Score is the best fzf score across the matched fields.
	Score int

	// NamePositions are matched rune indices in the restaurant name,
	// present only when the name itself matched. Used for highlight.
	NamePositions []int
}

// ApplyFuzzy matches the filter against each recommendation and
// returns the surviving entries sorted by score, best first. Ties keep
// the backend's ranking order. An empty filter returns every entry in
// original order with no positions.
func (filter *FilterModel) ApplyFuzzy(recommendations []schema.Recommendation) []FilterMatch {
	matches := make([]FilterMatch, 0, len(recommendations))
	if filter.Input == "" {
		for index := range recommendations {
			matches = append(matches, FilterMatch{Index: index})
		}
		return matches
	}

	pattern := []rune(filter.Input)
	slab := newMatchSlab()
	for index, recommendation := range recommendations {
		name := FuzzyMatch(recommendation.RestaurantName, pattern, slab)
		address := FuzzyMatch(recommendation.Address, pattern, slab)
		explanation := FuzzyMatch(recommendation.Explanation, pattern, slab)

		best := name.Score
		if address.Score > best {
			best = address.Score
		}
		if explanation.Score > best {
			best = explanation.Score
		}
		if best == 0 {
			continue
		}
		matches = append(matches, FilterMatch{
			Index:         index,
			Score:         best,
			NamePositions: name.Positions,
		})
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Score > matches[j].Score
	})
	return matches
}

// HandleRune processes a character typed while the filter is active.
// Returns true if the input changed.
func (filter *FilterModel) HandleRune(character rune) bool {
	filter.Input += string(character)
	return true
}

// HandleBackspace removes the last character from the filter input.
// Returns true if the input changed.
func (filter *FilterModel) HandleBackspace() bool {
	if len(filter.Input) == 0 {
		return false
	}
	runes := []rune(filter.Input)
	filter.Input = string(runes[:len(runes)-1])
	return true
}

// Clear resets the filter input and deactivates it.
func (filter *FilterModel) Clear() {
	filter.Input = ""
	filter.Active = false
}

// View renders the filter bar. When active, shows the input with a
// cursor. When inactive with text, shows the filter text. When
// inactive with no text, returns empty string (hidden).
func (filter *FilterModel) View(theme Theme, width int) string {
	if !filter.Active && filter.Input == "" {
		return ""
	}

	style := lipgloss.NewStyle().
		Foreground(theme.NormalText).
		Width(width)

	if filter.Active {
		cursor := lipgloss.NewStyle().
			Foreground(theme.HeaderForeground).
			Bold(true).
			Render("▎")
		return style.Render(" / " + filter.Input + cursor)
	}

	// Inactive but has text, show the filter as a subtle indicator.
	dimStyle := lipgloss.NewStyle().
		Foreground(theme.FaintText).
		Width(width)
	return dimStyle.Render(" filter: " + filter.Input)
}
