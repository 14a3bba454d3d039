// Copyright 2026 The Tablescout Authors
// SPDX-License-Identifier: Apache-2.0

package api

import (
	"context"
	"fmt"
	"net/url"

	"github.com/tablescout/tablescout/lib/schema"
)

// SearchLocations looks up cities whose names start with query. The
// backend brokers the GeoDB cities API, sorted by population with the
// largest first. The query must be non-empty; interactive callers are
// expected to clear their panel locally instead of sending an empty
// lookup.
func (client *Client) SearchLocations(ctx context.Context, query string) ([]schema.Location, error) {
	var locations []schema.Location
	path := "/locations?query=" + url.QueryEscape(query)
	if err := client.get(ctx, path, &locations); err != nil {
		return nil, fmt.Errorf("searching locations for %q: %w", query, err)
	}
	return locations, nil
}
