// Copyright 2026 The Tablescout Authors
// SPDX-License-Identifier: Apache-2.0

package selection

import (
	"errors"
	"sync"
	"testing"

	"github.com/tablescout/tablescout/lib/schema"
)

func TestStoreStartsEmpty(t *testing.T) {
	store := NewStore()
	if store.Location() != nil {
		t.Error("new store has a location")
	}
	slots := store.Restaurants()
	if len(slots) != SlotCount {
		t.Fatalf("got %d slots, want %d", len(slots), SlotCount)
	}
	for i, slot := range slots {
		if slot != nil {
			t.Errorf("slot %d = %+v, want nil", i, slot)
		}
	}
	if store.SearchID() != 0 {
		t.Errorf("SearchID = %d, want 0", store.SearchID())
	}
	if store.Recommendations() != nil {
		t.Error("new store has recommendations")
	}
}

func TestSetLocationNotifiesSynchronously(t *testing.T) {
	store := NewStore()

	// A second, already-mounted view re-reads the location inside the
	// notification callback, on the same call stack as SetLocation.
	var observed *schema.Location
	unsubscribe := store.Subscribe(func() {
		observed = store.Location()
	})
	defer unsubscribe()

	ithaca := schema.Location{Name: "Ithaca, NY", Latitude: 42.44, Longitude: -76.5, Population: 30000}
	store.SetLocation(&ithaca)

	if observed == nil {
		t.Fatal("subscriber did not fire during SetLocation")
	}
	if *observed != ithaca {
		t.Errorf("observed %+v, want %+v", *observed, ithaca)
	}
}

func TestSetLocationStoresACopy(t *testing.T) {
	store := NewStore()
	location := schema.Location{Name: "Ithaca, NY", Latitude: 42.44, Longitude: -76.5, Population: 30000}
	store.SetLocation(&location)

	// Mutating the caller's record after the set must not reach the
	// store, and mutating the getter's result must not either.
	location.Name = "Elsewhere"
	first := store.Location()
	if first.Name != "Ithaca, NY" {
		t.Errorf("store location = %q, want %q", first.Name, "Ithaca, NY")
	}
	first.Population = 0
	second := store.Location()
	if second.Population != 30000 {
		t.Errorf("Population = %d, want 30000", second.Population)
	}
}

func TestSetLocationNilClears(t *testing.T) {
	store := NewStore()
	store.SetLocation(&schema.Location{Name: "Ithaca, NY"})
	store.SetLocation(nil)
	if store.Location() != nil {
		t.Error("location survived SetLocation(nil)")
	}
}

func TestUpdateRestaurantLastWritePerSlot(t *testing.T) {
	store := NewStore()

	writes := []struct {
		index int
		name  string
	}{
		{0, "Moosewood"},
		{2, "Just A Taste"},
		{0, "Gola Osteria"},
		{4, "Thompson and Bleecker"},
		{2, "Pho Time"},
	}
	for _, write := range writes {
		if err := store.UpdateRestaurant(write.index, &schema.Restaurant{Name: write.name}); err != nil {
			t.Fatalf("UpdateRestaurant(%d): %v", write.index, err)
		}
	}

	slots := store.Restaurants()
	expect := map[int]string{0: "Gola Osteria", 2: "Pho Time", 4: "Thompson and Bleecker"}
	for i, slot := range slots {
		want, filled := expect[i]
		if !filled {
			if slot != nil {
				t.Errorf("slot %d = %+v, want nil", i, slot)
			}
			continue
		}
		if slot == nil || slot.Name != want {
			t.Errorf("slot %d = %+v, want name %q", i, slot, want)
		}
	}
}

func TestUpdateRestaurantNilEmptiesSlot(t *testing.T) {
	store := NewStore()
	store.UpdateRestaurant(1, &schema.Restaurant{Name: "Moosewood"})
	store.UpdateRestaurant(1, nil)
	if slot := store.Restaurants()[1]; slot != nil {
		t.Errorf("slot 1 = %+v, want nil", slot)
	}
}

func TestUpdateRestaurantOutOfRange(t *testing.T) {
	store := NewStore()
	store.UpdateRestaurant(0, &schema.Restaurant{Name: "Moosewood"})

	notified := 0
	unsubscribe := store.Subscribe(func() { notified++ })
	defer unsubscribe()

	for _, index := range []int{-1, SlotCount, 99} {
		err := store.UpdateRestaurant(index, &schema.Restaurant{Name: "nope"})
		if !errors.Is(err, ErrSlotRange) {
			t.Errorf("UpdateRestaurant(%d) = %v, want ErrSlotRange", index, err)
		}
	}

	if notified != 0 {
		t.Errorf("out-of-range updates notified %d times, want 0", notified)
	}
	if slot := store.Restaurants()[0]; slot == nil || slot.Name != "Moosewood" {
		t.Errorf("slot 0 = %+v, want Moosewood intact", slot)
	}
}

func TestSetRestaurantsPadsShortList(t *testing.T) {
	store := NewStore()
	err := store.SetRestaurants([]*schema.Restaurant{
		{Name: "Moosewood"},
		{Name: "Gola Osteria"},
	})
	if err != nil {
		t.Fatalf("SetRestaurants: %v", err)
	}
	slots := store.Restaurants()
	if len(slots) != SlotCount {
		t.Fatalf("got %d slots, want %d", len(slots), SlotCount)
	}
	if slots[0].Name != "Moosewood" || slots[1].Name != "Gola Osteria" {
		t.Errorf("slots = %+v", slots)
	}
	for i := 2; i < SlotCount; i++ {
		if slots[i] != nil {
			t.Errorf("slot %d = %+v, want nil", i, slots[i])
		}
	}
}

func TestSetRestaurantsRejectsOverflow(t *testing.T) {
	store := NewStore()
	notified := 0
	unsubscribe := store.Subscribe(func() { notified++ })
	defer unsubscribe()

	overflow := make([]*schema.Restaurant, SlotCount+1)
	err := store.SetRestaurants(overflow)
	if !errors.Is(err, ErrSlotRange) {
		t.Fatalf("SetRestaurants = %v, want ErrSlotRange", err)
	}
	if notified != 0 {
		t.Errorf("rejected SetRestaurants notified %d times, want 0", notified)
	}
}

func TestEveryMutationNotifies(t *testing.T) {
	store := NewStore()
	notified := 0
	unsubscribe := store.Subscribe(func() { notified++ })
	defer unsubscribe()

	mutations := []func(){
		func() { store.SetLocation(&schema.Location{Name: "Ithaca, NY"}) },
		func() { store.SetRestaurants([]*schema.Restaurant{{Name: "Moosewood"}}) },
		func() { store.UpdateRestaurant(3, &schema.Restaurant{Name: "Pho Time"}) },
		func() { store.SetSearchID(12) },
		func() { store.SetRecommendations([]schema.Recommendation{{RestaurantName: "Just A Taste"}}) },
		func() { store.ClearRecommendations() },
		func() { store.Clear() },
	}
	for _, mutate := range mutations {
		mutate()
	}

	if notified != len(mutations) {
		t.Errorf("notified %d times for %d mutations", notified, len(mutations))
	}
}

func TestUnsubscribeIsIdempotent(t *testing.T) {
	store := NewStore()
	var firstCalls, secondCalls int
	unsubscribeFirst := store.Subscribe(func() { firstCalls++ })
	unsubscribeSecond := store.Subscribe(func() { secondCalls++ })
	defer unsubscribeSecond()

	store.SetSearchID(1)

	// Unsubscribing twice must remove only the first subscriber, not
	// disturb the second.
	unsubscribeFirst()
	unsubscribeFirst()

	store.SetSearchID(2)

	if firstCalls != 1 {
		t.Errorf("removed subscriber called %d times, want 1", firstCalls)
	}
	if secondCalls != 2 {
		t.Errorf("remaining subscriber called %d times, want 2", secondCalls)
	}
}

func TestSubscriberAddedDuringNotification(t *testing.T) {
	store := NewStore()

	lateCalls := 0
	var once sync.Once
	unsubscribe := store.Subscribe(func() {
		// First notification registers a second subscriber mid-round.
		once.Do(func() {
			store.Subscribe(func() { lateCalls++ })
		})
	})
	defer unsubscribe()

	store.SetSearchID(1)
	if lateCalls != 0 {
		t.Errorf("subscriber added during notification fired %d times in the same round", lateCalls)
	}

	store.SetSearchID(2)
	if lateCalls != 1 {
		t.Errorf("late subscriber called %d times after next mutation, want 1", lateCalls)
	}
}

func TestSetSearchIDInvalidatesRecommendations(t *testing.T) {
	store := NewStore()
	store.SetSearchID(1)
	store.SetRecommendations([]schema.Recommendation{{RestaurantName: "Just A Taste"}})
	if store.Recommendations() == nil {
		t.Fatal("recommendations not cached")
	}

	notified := 0
	unsubscribe := store.Subscribe(func() { notified++ })
	defer unsubscribe()

	store.SetSearchID(2)

	if store.SearchID() != 2 {
		t.Errorf("SearchID = %d, want 2", store.SearchID())
	}
	if store.Recommendations() != nil {
		t.Error("recommendations survived a new search ID")
	}
	// The ID change and the cache drop are one mutation.
	if notified != 1 {
		t.Errorf("SetSearchID notified %d times, want 1", notified)
	}
}

func TestClearResetsEverythingOnce(t *testing.T) {
	store := NewStore()
	store.SetLocation(&schema.Location{Name: "Ithaca, NY"})
	store.SetRestaurants([]*schema.Restaurant{{Name: "Moosewood"}})
	store.SetSearchID(9)
	store.SetRecommendations([]schema.Recommendation{{RestaurantName: "Just A Taste"}})

	notified := 0
	unsubscribe := store.Subscribe(func() { notified++ })
	defer unsubscribe()

	store.Clear()

	if notified != 1 {
		t.Errorf("Clear notified %d times, want 1", notified)
	}
	if store.Location() != nil {
		t.Error("location survived Clear")
	}
	for i, slot := range store.Restaurants() {
		if slot != nil {
			t.Errorf("slot %d survived Clear: %+v", i, slot)
		}
	}
	if store.SearchID() != 0 {
		t.Errorf("SearchID = %d after Clear", store.SearchID())
	}
	if store.Recommendations() != nil {
		t.Error("recommendations survived Clear")
	}
}

func TestSnapshotIsDefensive(t *testing.T) {
	store := NewStore()
	store.SetLocation(&schema.Location{Name: "Ithaca, NY", Population: 30000})
	store.UpdateRestaurant(0, &schema.Restaurant{
		Name:       "Moosewood",
		Categories: []string{"vegetarian"},
	})

	snapshot := store.Snapshot()
	snapshot.Location.Name = "mutated"
	snapshot.Restaurants[0].Categories[0] = "mutated"

	if store.Location().Name != "Ithaca, NY" {
		t.Error("mutating snapshot location changed the store")
	}
	if store.Restaurants()[0].Categories[0] != "vegetarian" {
		t.Error("mutating snapshot restaurant changed the store")
	}
}

func TestSelectedRestaurantsFiltersEmptySlots(t *testing.T) {
	store := NewStore()
	store.UpdateRestaurant(1, &schema.Restaurant{Name: "Moosewood"})
	store.UpdateRestaurant(4, &schema.Restaurant{Name: "Pho Time"})

	selected := store.SelectedRestaurants()
	if len(selected) != 2 {
		t.Fatalf("got %d selected, want 2", len(selected))
	}
	if selected[0].Name != "Moosewood" || selected[1].Name != "Pho Time" {
		t.Errorf("selected = %+v, want positional order", selected)
	}
}

func TestRecommendationsAreCopied(t *testing.T) {
	store := NewStore()
	store.SetRecommendations([]schema.Recommendation{{
		RestaurantName: "Just A Taste",
		FeatureScores:  map[string]float64{"cuisine": 0.9},
	}})

	fetched := store.Recommendations()
	fetched[0].FeatureScores["cuisine"] = 0

	if store.Recommendations()[0].FeatureScores["cuisine"] != 0.9 {
		t.Error("mutating fetched recommendations changed the store")
	}
}

func TestStoreConcurrentAccess(t *testing.T) {
	store := NewStore()
	unsubscribe := store.Subscribe(func() {
		// Re-entering the store from a callback must not deadlock.
		store.SearchID()
	})
	defer unsubscribe()

	var group sync.WaitGroup
	for i := 0; i < 8; i++ {
		group.Add(1)
		go func(n int) {
			defer group.Done()
			store.UpdateRestaurant(n%SlotCount, &schema.Restaurant{Name: "concurrent"})
			store.Restaurants()
			store.SetSearchID(n)
			store.Snapshot()
		}(i)
	}
	group.Wait()
}
