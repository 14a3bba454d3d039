// Copyright 2026 The Tablescout Authors
// SPDX-License-Identifier: Apache-2.0

package schema

import (
	"encoding/json"
	"testing"
	"time"
)

func TestRestaurantCloneIsIndependent(t *testing.T) {
	original := &Restaurant{
		Name:        "Moosewood",
		Categories:  []string{"restaurant", "vegetarian"},
		CategorySet: []int{7315, 7315025},
		Address:     "215 N Cayuga St, Ithaca, NY 14850",
		POIID:       "840363015654481",
		Position:    &Position{Lat: 42.4406, Lon: -76.4966},
	}

	clone := original.Clone()
	clone.Categories[0] = "mutated"
	clone.CategorySet[0] = -1
	clone.Position.Lat = 0

	if original.Categories[0] != "restaurant" {
		t.Fatal("mutating clone categories changed the original")
	}
	if original.CategorySet[0] != 7315 {
		t.Fatal("mutating clone category set changed the original")
	}
	if original.Position.Lat != 42.4406 {
		t.Fatal("mutating clone position changed the original")
	}
}

func TestRestaurantCloneNilReceiver(t *testing.T) {
	var restaurant *Restaurant
	if got := restaurant.Clone(); got != nil {
		t.Fatalf("nil.Clone() = %v, want nil", got)
	}
}

func TestCloneRestaurantsPreservesNilSlots(t *testing.T) {
	slots := []*Restaurant{
		{Name: "first"},
		nil,
		{Name: "third"},
		nil,
		nil,
	}

	clone := CloneRestaurants(slots)
	if len(clone) != len(slots) {
		t.Fatalf("clone has %d slots, want %d", len(clone), len(slots))
	}
	for i, slot := range slots {
		if (slot == nil) != (clone[i] == nil) {
			t.Fatalf("slot %d nil-ness differs between original and clone", i)
		}
	}

	clone[0].Name = "mutated"
	if slots[0].Name != "first" {
		t.Fatal("mutating clone slot changed the original")
	}
}

func TestCloneRestaurantsNil(t *testing.T) {
	if got := CloneRestaurants(nil); got != nil {
		t.Fatalf("CloneRestaurants(nil) = %v, want nil", got)
	}
}

func TestRecommendationCloneIsIndependent(t *testing.T) {
	original := Recommendation{
		RestaurantID:    17,
		RestaurantName:  "Just A Taste",
		SimilarityScore: 0.814,
		FeatureScores:   map[string]float64{"cuisine": 0.9, "menu_tags": 0.7},
	}

	clone := original.Clone()
	clone.FeatureScores["cuisine"] = 0

	if original.FeatureScores["cuisine"] != 0.9 {
		t.Fatal("mutating clone feature scores changed the original")
	}
}

func TestCloneRecommendationsNilStaysNil(t *testing.T) {
	if got := CloneRecommendations(nil); got != nil {
		t.Fatalf("CloneRecommendations(nil) = %v, want nil", got)
	}
	empty := CloneRecommendations([]Recommendation{})
	if empty == nil || len(empty) != 0 {
		t.Fatalf("CloneRecommendations(empty) = %v, want empty non-nil", empty)
	}
}

func TestRestaurantDecodesWireFormat(t *testing.T) {
	// Shape produced by the restaurant search endpoint, including its
	// camelCase categorySet key.
	payload := `{
		"name": "Gola Osteria",
		"categories": ["italian", "restaurant"],
		"categorySet": [7315038],
		"address": "431 E State St, Ithaca, NY 14850",
		"tomtom_poi_id": "840363015733981",
		"position": {"lat": 42.4394, "lon": -76.4933}
	}`

	var restaurant Restaurant
	if err := json.Unmarshal([]byte(payload), &restaurant); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if restaurant.Name != "Gola Osteria" {
		t.Fatalf("Name = %q", restaurant.Name)
	}
	if len(restaurant.CategorySet) != 1 || restaurant.CategorySet[0] != 7315038 {
		t.Fatalf("CategorySet = %v, want [7315038]", restaurant.CategorySet)
	}
	if restaurant.POIID != "840363015733981" {
		t.Fatalf("POIID = %q", restaurant.POIID)
	}
	if restaurant.Position == nil || restaurant.Position.Lat != 42.4394 {
		t.Fatalf("Position = %+v", restaurant.Position)
	}
}

func TestRestaurantDecodesWithoutPosition(t *testing.T) {
	payload := `{"name": "Pho Time", "categories": [], "categorySet": [], "address": "somewhere"}`
	var restaurant Restaurant
	if err := json.Unmarshal([]byte(payload), &restaurant); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if restaurant.Position != nil {
		t.Fatalf("Position = %+v, want nil", restaurant.Position)
	}
}

func TestSearchDecodesWireFormat(t *testing.T) {
	payload := `{
		"id": 42,
		"location": {"name": "Ithaca, NY, US", "latitude": 42.44, "longitude": -76.5, "population": 30000},
		"restaurants": [{"name": "Moosewood", "categories": [], "categorySet": [7315], "address": "215 N Cayuga St"}],
		"city_restaurants": [{
			"name": "Thompson and Bleecker",
			"address": "220 E State St",
			"categories": ["pizza"],
			"categorySet": [7315036],
			"distance_from_center": 0.4,
			"tomtom_poi_id": "840363015712345",
			"position": {"lat": 42.4396, "lon": -76.4951}
		}],
		"created_at": "2026-08-25T14:03:22.123456"
	}`

	var search Search
	if err := json.Unmarshal([]byte(payload), &search); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if search.ID != 42 {
		t.Fatalf("ID = %d, want 42", search.ID)
	}
	if search.Location == nil || search.Location.Population != 30000 {
		t.Fatalf("Location = %+v", search.Location)
	}
	if len(search.CityRestaurants) != 1 || search.CityRestaurants[0].DistanceFromCenter != 0.4 {
		t.Fatalf("CityRestaurants = %+v", search.CityRestaurants)
	}
	want := time.Date(2026, 8, 25, 14, 3, 22, 123456000, time.UTC)
	if !search.CreatedAt.Equal(want) {
		t.Fatalf("CreatedAt = %v, want %v", search.CreatedAt.Time, want)
	}
}

func TestTimestampLayouts(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want time.Time
	}{
		{
			name: "rfc3339",
			raw:  `"2026-08-25T14:03:22Z"`,
			want: time.Date(2026, 8, 25, 14, 3, 22, 0, time.UTC),
		},
		{
			name: "rfc3339 with offset",
			raw:  `"2026-08-25T14:03:22+02:00"`,
			want: time.Date(2026, 8, 25, 12, 3, 22, 0, time.UTC),
		},
		{
			name: "naive iso with microseconds",
			raw:  `"2026-08-25T14:03:22.123456"`,
			want: time.Date(2026, 8, 25, 14, 3, 22, 123456000, time.UTC),
		},
		{
			name: "naive iso without fraction",
			raw:  `"2026-08-25T14:03:22"`,
			want: time.Date(2026, 8, 25, 14, 3, 22, 0, time.UTC),
		},
		{
			name: "space separated",
			raw:  `"2026-08-25 14:03:22"`,
			want: time.Date(2026, 8, 25, 14, 3, 22, 0, time.UTC),
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			var ts Timestamp
			if err := json.Unmarshal([]byte(test.raw), &ts); err != nil {
				t.Fatalf("Unmarshal(%s): %v", test.raw, err)
			}
			if !ts.Time.Equal(test.want) {
				t.Fatalf("decoded %v, want %v", ts.Time, test.want)
			}
		})
	}
}

func TestTimestampNull(t *testing.T) {
	var ts Timestamp
	if err := json.Unmarshal([]byte(`null`), &ts); err != nil {
		t.Fatalf("Unmarshal(null): %v", err)
	}
	if !ts.IsZero() {
		t.Fatalf("null decoded to %v, want zero", ts.Time)
	}
}

func TestTimestampRejectsGarbage(t *testing.T) {
	var ts Timestamp
	if err := json.Unmarshal([]byte(`"yesterday-ish"`), &ts); err == nil {
		t.Fatal("expected error for unparseable timestamp")
	}
}

func TestTimestampMarshalsRFC3339(t *testing.T) {
	ts := Timestamp{Time: time.Date(2026, 8, 25, 14, 3, 22, 0, time.UTC)}
	data, err := json.Marshal(ts)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	if string(data) != `"2026-08-25T14:03:22Z"` {
		t.Fatalf("Marshal = %s", data)
	}
}
