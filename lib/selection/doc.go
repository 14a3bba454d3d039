// Copyright 2026 The Tablescout Authors
// SPDX-License-Identifier: Apache-2.0

// Package selection holds the user's current search inputs and
// last-known results: the chosen city, the five restaurant slots, the
// ID of the most recently submitted search, and the recommendations
// fetched for it.
//
// The Store is the one piece of mutable state shared across views. It
// is observable in the narrowest useful sense: Subscribe registers a
// zero-argument callback, every mutation invokes all current callbacks
// synchronously on the mutating goroutine, and subscribers re-read
// whatever fields they need through the getters. No payload travels
// with the notification, so there is nothing to diff and nothing to go
// stale in transit.
//
// Every getter returns a defensive copy and every setter stores one, so
// no caller can mutate shared state through a slice or map it obtained
// from the store. The store is safe for concurrent use: mutations from
// command goroutines and reads from the update loop serialize on an
// internal mutex. Callbacks run after the mutex is released and may
// re-enter the store freely.
package selection
