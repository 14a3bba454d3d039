// Copyright 2026 The Tablescout Authors
// SPDX-License-Identifier: Apache-2.0

// Package diningui implements the interactive terminal UI for
// tablescout: a tabbed bubbletea program for picking a city, filling
// the five restaurant slots, submitting the search, and browsing the
// ranked recommendations.
//
// The model owns no selection state of its own. Every mutation goes
// through the selection store, and the model re-reads the store when a
// change notification arrives, so the UI can never disagree with the
// state that search submission will read.
package diningui
