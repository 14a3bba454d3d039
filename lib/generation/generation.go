// Copyright 2026 The Tablescout Authors
// SPDX-License-Identifier: Apache-2.0

// Package generation provides monotonic tokens for discarding stale
// asynchronous results.
//
// A Guard hands out a fresh Token each time a new operation begins. The
// caller captures the token into the closure that performs the work; when
// the result comes back, it checks the captured token against the guard
// and drops the result if a newer token has been issued in the meantime.
// Invalidate retires every outstanding token without starting anything
// new, which is how a caller cancels work it no longer wants.
//
// Guards are not safe for concurrent use. They are meant to live inside a
// single event loop (the Bubble Tea update loop), where tokens are
// captured by value into command closures and checked when the resulting
// message is delivered back on the same goroutine.
package generation

// Token identifies one generation of an asynchronous operation. A Guard
// never issues the zero Token, so a message carrying the zero value
// always reads as stale.
type Token uint64

// Guard issues monotonically increasing tokens and remembers the most
// recent one. The zero value is ready to use.
type Guard struct {
	current Token
}

// Next retires every outstanding token and returns a fresh one for the
// operation that is about to start.
func (g *Guard) Next() Token {
	g.current++
	return g.current
}

// Current reports whether token is the most recently issued one. A
// result tagged with a stale token must be discarded.
func (g *Guard) Current(token Token) bool {
	return token != 0 && token == g.current
}

// Invalidate retires every outstanding token without issuing a new one.
// Use it when the work a token was issued for is no longer wanted, such
// as when the user commits a selection while a lookup is still in flight.
func (g *Guard) Invalidate() {
	g.current++
}
