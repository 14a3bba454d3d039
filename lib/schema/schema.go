// Copyright 2026 The Tablescout Authors
// SPDX-License-Identifier: Apache-2.0

package schema

import (
	"encoding/json"
	"fmt"
	"maps"
	"slices"
	"time"
)

// Location is a city the user can anchor a search to. Name carries the
// display form ("Ithaca, NY, US"); the coordinates and population feed
// the backend's city-wide restaurant sweep.
type Location struct {
	Name       string  `json:"name"`
	Latitude   float64 `json:"latitude"`
	Longitude  float64 `json:"longitude"`
	Population int     `json:"population"`
}

// Position is a WGS 84 coordinate pair as the POI search reports it.
type Position struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// Restaurant is one point-of-interest result from the restaurant
// search. Position is nil when the POI search returned no coordinates.
type Restaurant struct {
	Name        string    `json:"name"`
	Categories  []string  `json:"categories"`
	CategorySet []int     `json:"categorySet"`
	Address     string    `json:"address"`
	POIID       string    `json:"tomtom_poi_id,omitempty"`
	Position    *Position `json:"position,omitempty"`
}

// Clone returns a deep copy that shares no memory with r. Clone of a
// nil receiver returns nil, so slot slices with empty positions copy
// cleanly.
func (r *Restaurant) Clone() *Restaurant {
	if r == nil {
		return nil
	}
	out := *r
	out.Categories = slices.Clone(r.Categories)
	out.CategorySet = slices.Clone(r.CategorySet)
	if r.Position != nil {
		position := *r.Position
		out.Position = &position
	}
	return &out
}

// CloneRestaurants deep-copies a slice of restaurant slots, preserving
// nil entries. A nil slice stays nil.
func CloneRestaurants(slots []*Restaurant) []*Restaurant {
	if slots == nil {
		return nil
	}
	out := make([]*Restaurant, len(slots))
	for i, restaurant := range slots {
		out[i] = restaurant.Clone()
	}
	return out
}

// CityRestaurant is a restaurant the backend found by sweeping the
// selected city, as opposed to one the user picked by hand. The sweep
// records how far each result sits from the city center, in kilometers.
type CityRestaurant struct {
	Name               string    `json:"name"`
	Address            string    `json:"address"`
	Categories         []string  `json:"categories"`
	CategorySet        []int     `json:"categorySet"`
	Position           *Position `json:"position,omitempty"`
	DistanceFromCenter float64   `json:"distance_from_center"`
	POIID              string    `json:"tomtom_poi_id"`
}

// Search is a saved search: the location, the restaurants the user
// picked, and the city sweep the backend ran alongside them.
type Search struct {
	ID              int              `json:"id"`
	Location        *Location        `json:"location"`
	Restaurants     []Restaurant     `json:"restaurants"`
	CityRestaurants []CityRestaurant `json:"city_restaurants"`
	CreatedAt       Timestamp        `json:"created_at"`
}

// Recommendation is one ranked result from the recommendation engine.
// FeatureScores breaks the similarity down per feature ("cuisine",
// "description", "menu_tags").
type Recommendation struct {
	RestaurantID    int                `json:"restaurant_id"`
	RestaurantName  string             `json:"restaurant_name"`
	Address         string             `json:"address"`
	POIID           string             `json:"tomtom_poi_id"`
	SimilarityScore float64            `json:"similarity_score"`
	FeatureScores   map[string]float64 `json:"feature_scores"`
	Explanation     string             `json:"explanation"`
}

// Clone returns a deep copy that shares no memory with r.
func (r Recommendation) Clone() Recommendation {
	out := r
	out.FeatureScores = maps.Clone(r.FeatureScores)
	return out
}

// CloneRecommendations deep-copies a recommendation list. A nil list
// stays nil, which the selection store uses to distinguish "never
// fetched" from "fetched and empty".
func CloneRecommendations(list []Recommendation) []Recommendation {
	if list == nil {
		return nil
	}
	out := make([]Recommendation, len(list))
	for i, recommendation := range list {
		out[i] = recommendation.Clone()
	}
	return out
}

// timestampLayouts are tried in order when decoding. The backend stores
// timestamps without a timezone, so alongside RFC 3339 we accept the
// bare ISO 8601 forms Python's datetime serializes to, reading them as
// UTC.
var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999",
}

// Timestamp is a time.Time that tolerates the backend's timezone-less
// timestamp encoding. It marshals as RFC 3339.
type Timestamp struct {
	time.Time
}

// UnmarshalJSON decodes a JSON string against each accepted layout.
// JSON null and the empty string decode to the zero Timestamp.
func (t *Timestamp) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("timestamp is not a JSON string: %w", err)
	}
	if raw == "" {
		t.Time = time.Time{}
		return nil
	}
	for _, layout := range timestampLayouts {
		parsed, err := time.Parse(layout, raw)
		if err == nil {
			t.Time = parsed
			return nil
		}
	}
	return fmt.Errorf("unrecognized timestamp %q", raw)
}

// MarshalJSON encodes the timestamp as an RFC 3339 JSON string.
func (t Timestamp) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.Format(time.RFC3339Nano))
}
