// Copyright 2026 The Tablescout Authors
// SPDX-License-Identifier: Apache-2.0

package generation

import "testing"

func TestGuardNextReturnsIncreasingTokens(t *testing.T) {
	var guard Guard
	first := guard.Next()
	second := guard.Next()
	if second <= first {
		t.Fatalf("Next() = %d after %d, want strictly increasing", second, first)
	}
}

func TestGuardZeroValueIssuesNonZeroToken(t *testing.T) {
	var guard Guard
	if token := guard.Next(); token == 0 {
		t.Fatal("Next() on zero-value Guard returned the zero Token")
	}
}

func TestGuardCurrentAcceptsLatestToken(t *testing.T) {
	var guard Guard
	token := guard.Next()
	if !guard.Current(token) {
		t.Fatal("Current() = false for the token Next() just issued")
	}
}

func TestGuardNextRetiresPreviousToken(t *testing.T) {
	var guard Guard
	stale := guard.Next()
	fresh := guard.Next()
	if guard.Current(stale) {
		t.Fatal("Current() = true for a token superseded by Next()")
	}
	if !guard.Current(fresh) {
		t.Fatal("Current() = false for the latest token")
	}
}

func TestGuardInvalidateRetiresOutstandingToken(t *testing.T) {
	var guard Guard
	token := guard.Next()
	guard.Invalidate()
	if guard.Current(token) {
		t.Fatal("Current() = true after Invalidate()")
	}
}

func TestGuardNextAfterInvalidateIssuesCurrentToken(t *testing.T) {
	var guard Guard
	guard.Next()
	guard.Invalidate()
	token := guard.Next()
	if !guard.Current(token) {
		t.Fatal("Current() = false for a token issued after Invalidate()")
	}
}

func TestGuardZeroTokenIsNeverCurrent(t *testing.T) {
	var guard Guard
	if guard.Current(0) {
		t.Fatal("Current(0) = true on a fresh Guard")
	}
	guard.Next()
	if guard.Current(0) {
		t.Fatal("Current(0) = true after Next()")
	}
	guard.Invalidate()
	if guard.Current(0) {
		t.Fatal("Current(0) = true after Invalidate()")
	}
}

func TestGuardInterleavedOperations(t *testing.T) {
	// A lookup starts, the user keeps typing so a second lookup starts,
	// then the first response arrives late and must be dropped while the
	// second is still honored.
	var guard Guard
	firstLookup := guard.Next()
	secondLookup := guard.Next()

	if guard.Current(firstLookup) {
		t.Fatal("stale lookup token still reads as current")
	}
	if !guard.Current(secondLookup) {
		t.Fatal("latest lookup token does not read as current")
	}

	// The user commits a selection, which cancels the in-flight lookup.
	guard.Invalidate()
	if guard.Current(secondLookup) {
		t.Fatal("lookup token survived Invalidate()")
	}
}
