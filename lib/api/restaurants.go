// Copyright 2026 The Tablescout Authors
// SPDX-License-Identifier: Apache-2.0

package api

import (
	"context"
	"fmt"
	"net/url"

	"github.com/tablescout/tablescout/lib/schema"
)

// SearchRestaurants looks up restaurants by name prefix. The backend
// brokers the TomTom POI search restricted to restaurant categories and
// returns at most ten candidates per query. Results the backend has
// cached come back without touching the upstream service, so repeat
// queries are cheap.
func (client *Client) SearchRestaurants(ctx context.Context, query string) ([]schema.Restaurant, error) {
	var restaurants []schema.Restaurant
	path := "/restaurants/search?query=" + url.QueryEscape(query)
	if err := client.get(ctx, path, &restaurants); err != nil {
		return nil, fmt.Errorf("searching restaurants for %q: %w", query, err)
	}
	return restaurants, nil
}
