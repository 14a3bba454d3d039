// Copyright 2026 The Tablescout Authors
// SPDX-License-Identifier: Apache-2.0

// Package suggest implements a debounced autocomplete input widget for
// bubbletea programs. Each keystroke restarts a fixed debounce delay;
// when the delay elapses the widget calls an injected lookup function
// and shows the results in a suggestion panel below the input.
//
// The widget is built for lookups that race: responses may arrive out
// of order, after the query has changed, or after the user has already
// selected a suggestion. Every scheduled unit of work (the debounce
// timer and the lookup call) captures a generation token when it is
// issued, and its result is applied only if the token is still current
// on delivery. Anything else is discarded without touching visible
// state, so only the most recently issued lookup can ever populate the
// panel.
//
// Successful results are cached per exact query string for the life of
// the widget. A repeated query is served from the cache synchronously
// with no network call and no loading state. Clearing the input to the
// empty string hides the panel immediately and issues no lookup.
//
// Lookup failures stay local: the panel shows an inline error row and
// the widget remains usable on the next keystroke. Nothing is ever
// propagated upward.
package suggest
