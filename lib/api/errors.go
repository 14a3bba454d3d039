// Copyright 2026 The Tablescout Authors
// SPDX-License-Identifier: Apache-2.0

package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// APIError represents a non-2xx response from the Tablescout backend.
// Route handlers respond with {"error": ...}; the framework's own
// exceptions respond with {"detail": ...}, where detail is either a
// string or a list of field-level validation failures. Both forms map
// onto this type.
type APIError struct {
	// StatusCode is the HTTP response status code.
	StatusCode int

	// Message is the error description from the backend. For brokered
	// rate limits this is the backend's user-facing text, suitable for
	// showing directly in the UI.
	Message string

	// Errors contains field-level validation failures. Present only on
	// 422 responses.
	Errors []ValidationError
}

// ValidationError describes a single request validation failure,
// returned by the backend on 422 responses.
type ValidationError struct {
	// Location is the path to the offending input, mixing strings and
	// array indices (["query", "query"] for a missing query parameter).
	Location []any  `json:"loc"`
	Message  string `json:"msg"`
	Type     string `json:"type"`
}

// field renders the location path as a dotted string for error text.
func (validationError ValidationError) field() string {
	parts := make([]string, 0, len(validationError.Location))
	for _, segment := range validationError.Location {
		parts = append(parts, fmt.Sprint(segment))
	}
	return strings.Join(parts, ".")
}

func (err *APIError) Error() string {
	var builder strings.Builder
	fmt.Fprintf(&builder, "api: HTTP %d: %s", err.StatusCode, err.Message)
	for _, validationError := range err.Errors {
		fmt.Fprintf(&builder, "; %s: %s", validationError.field(), validationError.Message)
	}
	return builder.String()
}

// IsNotFound reports whether err is a backend 404 Not Found response.
func IsNotFound(err error) bool {
	var apiError *APIError
	return errors.As(err, &apiError) && apiError.StatusCode == http.StatusNotFound
}

// IsRateLimited reports whether err is a backend 429 response. The
// backend returns 429 when an upstream POI or geography service
// throttles it.
func IsRateLimited(err error) bool {
	var apiError *APIError
	return errors.As(err, &apiError) && apiError.StatusCode == http.StatusTooManyRequests
}

// IsServerError reports whether err is a backend 5xx response.
func IsServerError(err error) bool {
	var apiError *APIError
	return errors.As(err, &apiError) && apiError.StatusCode >= 500
}

// parseAPIErrorFromBody parses a backend error from a status code and
// response body.
func parseAPIErrorFromBody(statusCode int, body []byte) *APIError {
	apiError := &APIError{StatusCode: statusCode}

	var wireError struct {
		ErrorMessage string          `json:"error"`
		Detail       json.RawMessage `json:"detail"`
	}
	if json.Unmarshal(body, &wireError) == nil {
		switch {
		case wireError.ErrorMessage != "":
			apiError.Message = wireError.ErrorMessage
		case len(wireError.Detail) > 0:
			var detail string
			if json.Unmarshal(wireError.Detail, &detail) == nil {
				apiError.Message = detail
			} else if json.Unmarshal(wireError.Detail, &apiError.Errors) == nil && len(apiError.Errors) > 0 {
				apiError.Message = "request validation failed"
			}
		}
	}
	if apiError.Message == "" {
		apiError.Message = strings.TrimSpace(string(body))
	}
	if apiError.Message == "" {
		apiError.Message = http.StatusText(statusCode)
	}

	return apiError
}
