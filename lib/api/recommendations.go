// Copyright 2026 The Tablescout Authors
// SPDX-License-Identifier: Apache-2.0

package api

import (
	"context"
	"fmt"

	"github.com/tablescout/tablescout/lib/schema"
)

// RecommendationRequest asks the recommendation engine to rank a saved
// search's city sweep against the user's picks. TopK bounds the result
// count; zero uses the backend default of ten.
type RecommendationRequest struct {
	SearchID int `json:"search_id"`
	TopK     int `json:"top_k,omitempty"`
}

// Recommendations ranks restaurants for a saved search, best match
// first. A 404 means the search has no stored picks or no city sweep
// to rank against.
func (client *Client) Recommendations(ctx context.Context, request RecommendationRequest) ([]schema.Recommendation, error) {
	var recommendations []schema.Recommendation
	if err := client.post(ctx, "/recommendations", request, &recommendations); err != nil {
		return nil, fmt.Errorf("recommending for search %d: %w", request.SearchID, err)
	}
	return recommendations, nil
}
