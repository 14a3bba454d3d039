// Copyright 2026 The Tablescout Authors
// SPDX-License-Identifier: Apache-2.0

package selection

import (
	"errors"
	"fmt"
	"slices"
	"sync"

	"github.com/tablescout/tablescout/lib/schema"
)

// SlotCount is the number of restaurant slots. The slots are positional
// and stable: slot i always corresponds to pick widget i, and mutating
// one slot never affects the others.
const SlotCount = 5

// ErrSlotRange reports a restaurant slot index or count outside the
// fixed five slots.
var ErrSlotRange = errors.New("restaurant slot out of range")

// subscriber pairs a notification callback with the handle that
// Subscribe issued for it, so an unsubscribe can remove exactly that
// registration.
type subscriber struct {
	id     uint64
	notify func()
}

// Store is the shared selection state. The zero value is not usable;
// call NewStore.
type Store struct {
	mutex            sync.Mutex
	location         *schema.Location
	slots            []*schema.Restaurant
	searchID         int
	recommendations  []schema.Recommendation
	subscribers      []subscriber
	nextSubscriberID uint64
}

// Snapshot is a point-in-time defensive copy of the submission inputs.
type Snapshot struct {
	Location    *schema.Location
	Restaurants []*schema.Restaurant
}

// NewStore creates an empty store: no location, five empty slots, no
// search, no recommendations.
func NewStore() *Store {
	return &Store{
		slots: make([]*schema.Restaurant, SlotCount),
	}
}

// Location returns a copy of the selected city, or nil if none is
// selected.
func (store *Store) Location() *schema.Location {
	store.mutex.Lock()
	defer store.mutex.Unlock()
	if store.location == nil {
		return nil
	}
	copied := *store.location
	return &copied
}

// SetLocation replaces the selected city wholesale. Pass nil to clear
// it. The store keeps its own copy of the record.
func (store *Store) SetLocation(location *schema.Location) {
	store.mutex.Lock()
	if location == nil {
		store.location = nil
	} else {
		copied := *location
		store.location = &copied
	}
	callbacks := store.callbacksLocked()
	store.mutex.Unlock()
	runNotifications(callbacks)
}

// Restaurants returns a copy of all five slots in positional order.
// Empty slots are nil.
func (store *Store) Restaurants() []*schema.Restaurant {
	store.mutex.Lock()
	defer store.mutex.Unlock()
	return schema.CloneRestaurants(store.slots)
}

// SetRestaurants replaces the slots positionally. Fewer than five
// entries leave the remaining slots empty; more than five is an
// ErrSlotRange with no mutation and no notification.
func (store *Store) SetRestaurants(restaurants []*schema.Restaurant) error {
	if len(restaurants) > SlotCount {
		return fmt.Errorf("%w: %d restaurants for %d slots", ErrSlotRange, len(restaurants), SlotCount)
	}
	store.mutex.Lock()
	slots := make([]*schema.Restaurant, SlotCount)
	for i, restaurant := range restaurants {
		slots[i] = restaurant.Clone()
	}
	store.slots = slots
	callbacks := store.callbacksLocked()
	store.mutex.Unlock()
	runNotifications(callbacks)
	return nil
}

// UpdateRestaurant sets one slot, leaving the others untouched. Pass
// nil to empty the slot. An index outside [0, SlotCount) is an
// ErrSlotRange with no mutation and no notification.
func (store *Store) UpdateRestaurant(index int, restaurant *schema.Restaurant) error {
	if index < 0 || index >= SlotCount {
		return fmt.Errorf("%w: index %d", ErrSlotRange, index)
	}
	store.mutex.Lock()
	store.slots[index] = restaurant.Clone()
	callbacks := store.callbacksLocked()
	store.mutex.Unlock()
	runNotifications(callbacks)
	return nil
}

// SelectedRestaurants returns copies of the filled slots in positional
// order with empty slots filtered out. This is the form search
// submission wants.
func (store *Store) SelectedRestaurants() []*schema.Restaurant {
	store.mutex.Lock()
	defer store.mutex.Unlock()
	var selected []*schema.Restaurant
	for _, restaurant := range store.slots {
		if restaurant != nil {
			selected = append(selected, restaurant.Clone())
		}
	}
	return selected
}

// Snapshot returns a defensive copy of the location and all five slots,
// taken under one lock so the two are mutually consistent.
func (store *Store) Snapshot() Snapshot {
	store.mutex.Lock()
	defer store.mutex.Unlock()
	snapshot := Snapshot{
		Restaurants: schema.CloneRestaurants(store.slots),
	}
	if store.location != nil {
		copied := *store.location
		snapshot.Location = &copied
	}
	return snapshot
}

// SearchID returns the backend ID of the most recently submitted
// search, or zero if none has been submitted this session.
func (store *Store) SearchID() int {
	store.mutex.Lock()
	defer store.mutex.Unlock()
	return store.searchID
}

// SetSearchID records a newly submitted search and drops any cached
// recommendations in the same step, since they belonged to the previous
// search. One notification covers both changes.
func (store *Store) SetSearchID(id int) {
	store.mutex.Lock()
	store.searchID = id
	store.recommendations = nil
	callbacks := store.callbacksLocked()
	store.mutex.Unlock()
	runNotifications(callbacks)
}

// Recommendations returns a copy of the cached recommendation list for
// the current search, or nil if none has been fetched since the search
// was submitted.
func (store *Store) Recommendations() []schema.Recommendation {
	store.mutex.Lock()
	defer store.mutex.Unlock()
	return schema.CloneRecommendations(store.recommendations)
}

// SetRecommendations caches the recommendation list fetched for the
// current search. Passing nil is equivalent to ClearRecommendations.
func (store *Store) SetRecommendations(recommendations []schema.Recommendation) {
	store.mutex.Lock()
	store.recommendations = schema.CloneRecommendations(recommendations)
	callbacks := store.callbacksLocked()
	store.mutex.Unlock()
	runNotifications(callbacks)
}

// ClearRecommendations drops the cached recommendation list.
func (store *Store) ClearRecommendations() {
	store.mutex.Lock()
	store.recommendations = nil
	callbacks := store.callbacksLocked()
	store.mutex.Unlock()
	runNotifications(callbacks)
}

// Clear resets everything: location, all five slots, search ID, and
// cached recommendations, in one step with a single notification.
func (store *Store) Clear() {
	store.mutex.Lock()
	store.location = nil
	store.slots = make([]*schema.Restaurant, SlotCount)
	store.searchID = 0
	store.recommendations = nil
	callbacks := store.callbacksLocked()
	store.mutex.Unlock()
	runNotifications(callbacks)
}

// Subscribe registers a callback invoked with no arguments after every
// mutation. The returned function removes exactly this registration and
// is idempotent, so calling it twice (or after the callback already
// fired) is safe.
func (store *Store) Subscribe(callback func()) (unsubscribe func()) {
	store.mutex.Lock()
	store.nextSubscriberID++
	id := store.nextSubscriberID
	store.subscribers = append(store.subscribers, subscriber{id: id, notify: callback})
	store.mutex.Unlock()

	return func() {
		store.mutex.Lock()
		defer store.mutex.Unlock()
		for i, entry := range store.subscribers {
			if entry.id == id {
				store.subscribers = slices.Delete(store.subscribers, i, i+1)
				return
			}
		}
	}
}

// callbacksLocked copies the current subscriber callbacks. The caller
// holds the mutex. Copying makes the notification round immune to
// subscribe and unsubscribe calls made by the callbacks themselves: a
// subscriber added during notification is not invoked until the next
// mutation.
func (store *Store) callbacksLocked() []func() {
	callbacks := make([]func(), len(store.subscribers))
	for i, entry := range store.subscribers {
		callbacks[i] = entry.notify
	}
	return callbacks
}

// runNotifications invokes the callbacks captured under the lock. It
// runs on the mutating goroutine after the lock is released, so
// callbacks can re-enter the store through getters, and a subscriber
// observing the notification sees the completed mutation.
func runNotifications(callbacks []func()) {
	for _, callback := range callbacks {
		callback()
	}
}
