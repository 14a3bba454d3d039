// Copyright 2026 The Tablescout Authors
// SPDX-License-Identifier: Apache-2.0

package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/klauspost/compress/zstd"

	"github.com/tablescout/tablescout/lib/clock"
)

// defaultBaseURL is where a locally run backend listens.
const defaultBaseURL = "http://127.0.0.1:8000"

// defaultUserAgent identifies the client when no override is given.
const defaultUserAgent = "tablescout"

// apiPrefix is the path prefix the backend mounts its routes under.
const apiPrefix = "/api"

// maxResponseSize bounds response body reads and zstd decompression:
// 64 MB. Legitimate responses are orders of magnitude smaller; the
// bound only exists so a misbehaving server cannot exhaust memory.
const maxResponseSize int64 = 64 << 20

// Config holds configuration for creating a backend API Client.
type Config struct {
	// BaseURL is the root URL for API requests, without the /api
	// prefix. Defaults to "http://127.0.0.1:8000".
	BaseURL string

	// UserAgent overrides the User-Agent header sent with every
	// request. Defaults to "tablescout".
	UserAgent string

	// HTTPClient is used for all HTTP requests. Defaults to
	// http.DefaultClient.
	HTTPClient *http.Client

	// Clock provides time operations for retry backoff. Defaults to
	// clock.Real(). Inject clock.Fake() in tests for deterministic
	// behavior.
	Clock clock.Clock

	// Logger is used for structured logging. Defaults to slog.Default().
	Logger *slog.Logger
}

// Client is a typed client for the Tablescout backend REST API, with
// structured error handling, zstd response decoding, and rate-limit
// backoff.
type Client struct {
	baseURL    string
	userAgent  string
	httpClient *http.Client
	decoder    *zstd.Decoder
	clock      clock.Clock
	logger     *slog.Logger
}

// NewClient creates a backend API client from the given configuration.
// Returns an error if the base URL has no HTTP scheme.
func NewClient(config Config) (*Client, error) {
	baseURL := config.BaseURL
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	baseURL = strings.TrimRight(baseURL, "/")

	// The backend commonly runs on localhost, so plain HTTP is allowed,
	// but the scheme must at least be an HTTP one.
	if !strings.HasPrefix(baseURL, "http://") && !strings.HasPrefix(baseURL, "https://") {
		return nil, fmt.Errorf("api: base URL must be http or https (got %q)", baseURL)
	}

	userAgent := config.UserAgent
	if userAgent == "" {
		userAgent = defaultUserAgent
	}

	httpClient := config.HTTPClient
	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	clk := config.Clock
	if clk == nil {
		clk = clock.Real()
	}

	logger := config.Logger
	if logger == nil {
		logger = slog.Default()
	}

	decoder, err := zstd.NewReader(nil,
		zstd.WithDecoderMaxMemory(uint64(maxResponseSize)),
	)
	if err != nil {
		return nil, fmt.Errorf("api: creating zstd decoder: %w", err)
	}

	return &Client{
		baseURL:    baseURL,
		userAgent:  userAgent,
		httpClient: httpClient,
		decoder:    decoder,
		clock:      clk,
		logger:     logger,
	}, nil
}

// do executes a backend API request. The path should be relative to the
// /api prefix (e.g., "/locations?query=ith"). The request body is
// JSON-encoded from the provided value (pass nil for no body).
//
// Returns the response body as raw bytes. On non-2xx responses, returns
// an *APIError.
func (client *Client) do(ctx context.Context, method, path string, requestBody any) ([]byte, error) {
	return client.doWithRetry(ctx, method, path, requestBody, false)
}

// doWithRetry is the internal implementation of do with a retry flag to
// prevent infinite recursion on persistent rate limiting.
func (client *Client) doWithRetry(ctx context.Context, method, path string, requestBody any, isRetry bool) ([]byte, error) {
	response, err := client.doRaw(ctx, method, client.baseURL+apiPrefix+path, requestBody)
	if err != nil {
		return nil, err
	}
	defer response.Body.Close()

	body, err := client.readBody(response)
	if err != nil {
		return nil, fmt.Errorf("api: reading response body: %w", err)
	}

	if response.StatusCode < 200 || response.StatusCode >= 300 {
		// Retry once when the server says how long to back off. The
		// backend's brokered rate limits usually carry no Retry-After,
		// in which case the 429 goes straight to the caller, whose UI
		// shows the message and lets the user's typing pace recover.
		if !isRetry && response.StatusCode == http.StatusTooManyRequests {
			if retryAfter := retryAfterDuration(response.Header); retryAfter > 0 {
				client.logger.Info("rate limited, backing off",
					"duration", retryAfter,
					"method", method,
					"path", path,
				)

				select {
				case <-client.clock.After(retryAfter):
				case <-ctx.Done():
					return nil, ctx.Err()
				}

				return client.doWithRetry(ctx, method, path, requestBody, true)
			}
		}

		return nil, parseAPIErrorFromBody(response.StatusCode, body)
	}

	return body, nil
}

// doRaw executes an HTTP request without response parsing. The caller
// is responsible for closing the response body.
func (client *Client) doRaw(ctx context.Context, method, url string, requestBody any) (*http.Response, error) {
	var bodyReader io.Reader
	if requestBody != nil {
		encoded, err := json.Marshal(requestBody)
		if err != nil {
			return nil, fmt.Errorf("api: encoding request body: %w", err)
		}
		bodyReader = bytes.NewReader(encoded)
	}

	request, err := http.NewRequestWithContext(ctx, method, url, bodyReader)
	if err != nil {
		return nil, fmt.Errorf("api: creating request: %w", err)
	}

	request.Header.Set("User-Agent", client.userAgent)
	request.Header.Set("Accept", "application/json")
	// Setting Accept-Encoding explicitly disables the transport's
	// transparent gzip; the backend answers either zstd or identity.
	request.Header.Set("Accept-Encoding", "zstd")
	if requestBody != nil {
		request.Header.Set("Content-Type", "application/json")
	}

	response, err := client.httpClient.Do(request)
	if err != nil {
		return nil, fmt.Errorf("api: %s %s: %w", method, url, err)
	}

	return response, nil
}

// readBody reads a response body, bounded at maxResponseSize, and
// decompresses it when the backend answered with zstd.
func (client *Client) readBody(response *http.Response) ([]byte, error) {
	body, err := io.ReadAll(io.LimitReader(response.Body, maxResponseSize))
	if err != nil {
		return nil, err
	}

	if strings.EqualFold(response.Header.Get("Content-Encoding"), "zstd") {
		decoded, err := client.decoder.DecodeAll(body, nil)
		if err != nil {
			return nil, fmt.Errorf("decoding zstd body: %w", err)
		}
		return decoded, nil
	}

	return body, nil
}

// get is a convenience method for GET requests that return JSON.
// Decodes the response into result.
func (client *Client) get(ctx context.Context, path string, result any) error {
	body, err := client.do(ctx, http.MethodGet, path, nil)
	if err != nil {
		return err
	}
	return json.Unmarshal(body, result)
}

// post is a convenience method for POST requests that return JSON.
// Decodes the response into result.
func (client *Client) post(ctx context.Context, path string, requestBody any, result any) error {
	body, err := client.do(ctx, http.MethodPost, path, requestBody)
	if err != nil {
		return err
	}
	if result != nil {
		return json.Unmarshal(body, result)
	}
	return nil
}

// retryAfterDuration computes the backoff duration from a rate-limited
// response's Retry-After header (delay in seconds). Returns zero if the
// header is missing or unusable.
func retryAfterDuration(header http.Header) time.Duration {
	retryStr := header.Get("Retry-After")
	if retryStr == "" {
		return 0
	}
	seconds, err := strconv.Atoi(retryStr)
	if err != nil || seconds <= 0 {
		return 0
	}
	return time.Duration(seconds) * time.Second
}
