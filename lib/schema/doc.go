// Copyright 2026 The Tablescout Authors
// SPDX-License-Identifier: Apache-2.0

// Package schema defines the data types shared between the Tablescout
// backend and the terminal client: locations, restaurants, saved
// searches, and recommendations.
//
// JSON field names follow the backend's wire format exactly, including
// its mixed conventions (snake_case for most fields, camelCase for
// categorySet, tomtom_poi_id for POI identifiers).
//
// Types that carry slices, maps, or optional sub-records have Clone
// methods. The selection store relies on them to hand out defensive
// copies so no caller can mutate shared state through a getter.
package schema
