// Copyright 2026 The Tablescout Authors
// SPDX-License-Identifier: Apache-2.0

package diningui

import (
	"sort"
	"strings"

	"github.com/junegunn/fzf/src/algo"
	"github.com/junegunn/fzf/src/util"
)

func init() {
	algo.Init("default")
}

// FuzzyResult holds the outcome of a fuzzy match: a relevance score
// and the rune positions in the text that matched the pattern.
type FuzzyResult struct {
	// Score is fzf's match quality. Zero means no match; higher is
	// better. Consecutive matches and word-boundary matches score
	// above scattered ones.
	Score int

	// Positions are the rune indices of the matched characters in the
	// text, in ascending order. Used for match highlighting.
	Positions []int
}

// FuzzyMatch runs fzf's V2 fuzzy algorithm against a single text.
// Matching is case-insensitive: the pattern is lowercased here and the
// algorithm folds the text. A nil slab is allowed; passing a reused
// slab avoids per-call allocation when matching many rows.
func FuzzyMatch(text string, pattern []rune, slab *util.Slab) FuzzyResult {
	if len(pattern) == 0 {
		return FuzzyResult{}
	}

	lowered := []rune(strings.ToLower(string(pattern)))
	chars := util.ToChars([]byte(text))
	result, positions := algo.FuzzyMatchV2(false, true, true, &chars, lowered, true, slab)
	if result.Score <= 0 {
		return FuzzyResult{}
	}

	var matched []int
	if positions != nil {
		// fzf reports positions in backtrack order.
		matched = *positions
		sort.Ints(matched)
	}
	return FuzzyResult{Score: result.Score, Positions: matched}
}

// newMatchSlab allocates a scratch slab sized like fzf's own, for
// reuse across the rows of one filter pass.
func newMatchSlab() *util.Slab {
	return util.MakeSlab(100*1024, 2048)
}
