// Copyright 2026 The Tablescout Authors
// SPDX-License-Identifier: Apache-2.0

package api

import (
	"context"
	"fmt"

	"github.com/tablescout/tablescout/lib/schema"
)

// CreateSearchRequest contains the location and restaurant picks to
// persist. Restaurants holds the filled slots in slot order; callers
// drop empty slots before submitting because the backend rejects null
// entries.
type CreateSearchRequest struct {
	Location    *schema.Location     `json:"location"`
	Restaurants []*schema.Restaurant `json:"restaurants"`
}

// CreateSearch persists a search. The backend assigns the ID, stores
// the picks, and sweeps the selected city for candidate restaurants
// that later recommendation calls rank. The returned search includes
// that sweep.
func (client *Client) CreateSearch(ctx context.Context, request CreateSearchRequest) (*schema.Search, error) {
	var search schema.Search
	if err := client.post(ctx, "/searches", request, &search); err != nil {
		return nil, fmt.Errorf("creating search: %w", err)
	}
	return &search, nil
}

// GetSearch retrieves a saved search by ID.
func (client *Client) GetSearch(ctx context.Context, id int) (*schema.Search, error) {
	var search schema.Search
	path := fmt.Sprintf("/searches/%d", id)
	if err := client.get(ctx, path, &search); err != nil {
		return nil, fmt.Errorf("getting search %d: %w", id, err)
	}
	return &search, nil
}

// ListSearches retrieves every saved search, oldest first.
func (client *Client) ListSearches(ctx context.Context) ([]schema.Search, error) {
	var searches []schema.Search
	if err := client.get(ctx, "/searches", &searches); err != nil {
		return nil, fmt.Errorf("listing searches: %w", err)
	}
	return searches, nil
}
