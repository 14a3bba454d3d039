// Copyright 2026 The Tablescout Authors
// SPDX-License-Identifier: Apache-2.0

// Package api provides a typed Go client for the Tablescout backend's
// REST API.
//
// The client covers the four surfaces the terminal UI needs: city
// lookup, restaurant lookup, saved searches, and recommendations. It
// handles the backend's two error body conventions, optional zstd
// response compression, and a one-shot retry with backoff when a
// rate-limited response carries a Retry-After header.
//
// The backend brokers third-party services (GeoDB for cities, TomTom
// for restaurants) and passes their rate-limit responses through as
// 429s, so rate limiting is part of normal interactive operation, not
// an edge case. Callers that drive the client from keystrokes surface
// the 429 message and let the user's typing cadence recover.
package api
