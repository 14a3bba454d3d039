// Copyright 2026 The Tablescout Authors
// SPDX-License-Identifier: Apache-2.0

package api

import (
	"fmt"
	"testing"
)

func TestAPIError_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      *APIError
		expected string
	}{
		{
			name: "simple message",
			err: &APIError{
				StatusCode: 404,
				Message:    "Search not found",
			},
			expected: "api: HTTP 404: Search not found",
		},
		{
			name: "rate limit passthrough",
			err: &APIError{
				StatusCode: 429,
				Message:    "Rate limit exceeded. Please slow down your typing.",
			},
			expected: "api: HTTP 429: Rate limit exceeded. Please slow down your typing.",
		},
		{
			name: "with validation errors",
			err: &APIError{
				StatusCode: 422,
				Message:    "request validation failed",
				Errors: []ValidationError{
					{Location: []any{"query", "query"}, Message: "field required"},
				},
			},
			expected: "api: HTTP 422: request validation failed; query.query: field required",
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			got := test.err.Error()
			if got != test.expected {
				t.Errorf("got %q, want %q", got, test.expected)
			}
		})
	}
}

func TestParseAPIError_Bodies(t *testing.T) {
	tests := []struct {
		name       string
		statusCode int
		body       string
		message    string
	}{
		{
			name:       "error key",
			statusCode: 500,
			body:       `{"error": "TomTom API error: 503"}`,
			message:    "TomTom API error: 503",
		},
		{
			name:       "detail string",
			statusCode: 404,
			body:       `{"detail": "Search not found"}`,
			message:    "Search not found",
		},
		{
			name:       "detail validation list",
			statusCode: 422,
			body:       `{"detail": [{"loc": ["query", "query"], "msg": "field required", "type": "value_error.missing"}]}`,
			message:    "request validation failed",
		},
		{
			name:       "plain text body",
			statusCode: 502,
			body:       "upstream exploded",
			message:    "upstream exploded",
		},
		{
			name:       "empty body",
			statusCode: 503,
			body:       "",
			message:    "Service Unavailable",
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			apiError := parseAPIErrorFromBody(test.statusCode, []byte(test.body))
			if apiError.StatusCode != test.statusCode {
				t.Errorf("StatusCode = %d, want %d", apiError.StatusCode, test.statusCode)
			}
			if apiError.Message != test.message {
				t.Errorf("Message = %q, want %q", apiError.Message, test.message)
			}
		})
	}
}

func TestParseAPIError_ValidationDetails(t *testing.T) {
	body := `{"detail": [{"loc": ["body", "search_id"], "msg": "field required", "type": "value_error.missing"}]}`
	apiError := parseAPIErrorFromBody(422, []byte(body))
	if len(apiError.Errors) != 1 {
		t.Fatalf("Errors = %+v, want one entry", apiError.Errors)
	}
	if got := apiError.Errors[0].field(); got != "body.search_id" {
		t.Errorf("field() = %q, want %q", got, "body.search_id")
	}
}

func TestIsNotFound(t *testing.T) {
	if !IsNotFound(&APIError{StatusCode: 404, Message: "Search not found"}) {
		t.Error("expected IsNotFound for 404")
	}
	if IsNotFound(&APIError{StatusCode: 500, Message: "boom"}) {
		t.Error("unexpected IsNotFound for 500")
	}
	if IsNotFound(fmt.Errorf("network error")) {
		t.Error("unexpected IsNotFound for non-APIError")
	}
}

func TestIsRateLimited(t *testing.T) {
	if !IsRateLimited(&APIError{StatusCode: 429, Message: "Rate limit exceeded. Please slow down your typing."}) {
		t.Error("expected IsRateLimited for 429")
	}
	if IsRateLimited(&APIError{StatusCode: 500, Message: "boom"}) {
		t.Error("unexpected IsRateLimited for 500")
	}
	if IsRateLimited(fmt.Errorf("network error")) {
		t.Error("unexpected IsRateLimited for non-APIError")
	}
}

func TestIsServerError(t *testing.T) {
	if !IsServerError(&APIError{StatusCode: 500, Message: "Internal server error"}) {
		t.Error("expected IsServerError for 500")
	}
	if !IsServerError(&APIError{StatusCode: 502, Message: "bad gateway"}) {
		t.Error("expected IsServerError for 502")
	}
	if IsServerError(&APIError{StatusCode: 429, Message: "slow down"}) {
		t.Error("unexpected IsServerError for 429")
	}
}

func TestAPIError_WrappedInFmt(t *testing.T) {
	// Classification must see through the fmt.Errorf wrapping the
	// endpoint methods apply.
	original := &APIError{StatusCode: 429, Message: "Rate limit exceeded. Please slow down your typing."}
	wrapped := fmt.Errorf("searching restaurants for %q: %w", "pizza", original)
	if !IsRateLimited(wrapped) {
		t.Error("IsRateLimited should see through fmt.Errorf wrapping")
	}
}
