// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package gateway

import (
	"bytes"
	"context"
	"crypto/tls"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/jeranaias/aistudio-tui/internal/seal"
)

// Configuration constants for the backend service.
const (
	// DefaultBaseURL is the base URL of the backend service.
	DefaultBaseURL = "http://localhost:3001"

	// DefaultTimeout is the ceiling for a single generate call. Image
	// generation can take most of a minute, so this is generous.
	DefaultTimeout = 120 * time.Second

	// MaxResponseSize is the maximum allowed response body size.
	// SECURITY: Response size limit prevents memory exhaustion.
	// Base64 image batches are large, hence the 50MB ceiling.
	MaxResponseSize = 50 * 1024 * 1024
)

// PERFORMANCE: Connection pooling reduces TCP handshake overhead.
// Shared HTTP client for all backend requests.
var sharedHTTPClient = &http.Client{
	Transport: &http.Transport{
		MaxIdleConns:        100,
		MaxIdleConnsPerHost: 10,
		IdleConnTimeout:     90 * time.Second,
		TLSHandshakeTimeout: 10 * time.Second,
		TLSClientConfig: &tls.Config{
			MinVersion: tls.VersionTLS12,
		},
	},
	Timeout: DefaultTimeout,
}

// Error variables for common gateway failures.
var (
	// ErrNotConfigured indicates the request was attempted without a
	// complete configuration (provider, credential, model).
	ErrNotConfigured = errors.New("configuration incomplete: provider, API key, and model are required")

	// ErrEmptyPrompt indicates a generate call with no usable input.
	ErrEmptyPrompt = errors.New("prompt is empty")
)

// BackendError is a non-2xx response from the backend service.
type BackendError struct {
	Status  int
	Message string
}

// Error implements the error interface.
func (e *BackendError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("backend error (HTTP %d): %s", e.Status, e.Message)
	}
	return fmt.Sprintf("backend error (HTTP %d)", e.Status)
}

// Category tags the kind of generation being requested.
type Category string

const (
	CategoryChat  Category = "chat"
	CategoryCode  Category = "code"
	CategoryImage Category = "image"
)

// Message is a single turn of a chat conversation on the wire.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// GenerateRequest is the payload of POST /ai/generate. Exactly one of
// Messages or Prompt is set depending on the mode.
type GenerateRequest struct {
	Provider   string    `json:"provider"`
	Model      string    `json:"model"`
	APIKey     string    `json:"apiKey"` // sealed before send
	Category   Category  `json:"category"`
	Messages   []Message `json:"messages,omitempty"`
	Prompt     string    `json:"prompt,omitempty"`
	ImageCount int       `json:"imageCount,omitempty"`
}

// ImagePayload is one generated image in a response, either inline base64
// or a remote URL.
type ImagePayload struct {
	B64JSON string `json:"b64_json"`
	URL     string `json:"url"`
}

// GenerateResponse is the parsed body of a successful generate call.
type GenerateResponse struct {
	Output string         `json:"output"`
	Images []ImagePayload `json:"images"`
}

// listModelsRequest is the payload of POST /ai/list-models.
type listModelsRequest struct {
	Platform  string `json:"platform"`
	APIKey    string `json:"apiKey"` // sealed before send
	OnlyNames bool   `json:"onlyNames"`
}

// listModelsResponse is the body of a successful list-models call.
type listModelsResponse struct {
	Models []string `json:"models"`
}

// apiErrorResponse covers the error body shapes the backend produces.
type apiErrorResponse struct {
	Message string `json:"message"`
	Details string `json:"details"`
	Err     string `json:"error"`
}

// detail returns the most specific human-readable message, or "".
func (e apiErrorResponse) detail() string {
	switch {
	case e.Message != "":
		return e.Message
	case e.Details != "":
		return e.Details
	case e.Err != "":
		return e.Err
	}
	return ""
}

// Client talks to the backend service. Safe for concurrent use.
type Client struct {
	baseURL string
	sealer  *seal.Sealer

	// limiter keeps a held-down return key from flooding the backend.
	limiter *rate.Limiter

	verbose bool
}

// NewClient creates a client for the given base URL. An empty URL falls back
// to DefaultBaseURL.
func NewClient(baseURL string, sealer *seal.Sealer) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		sealer:  sealer,
		limiter: rate.NewLimiter(rate.Every(500*time.Millisecond), 3),
	}
}

// WithVerbose enables request/response logging.
func (c *Client) WithVerbose(v bool) *Client {
	c.verbose = v
	return c
}

// BaseURL returns the configured backend base URL.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// logRequest logs an API request without exposing sensitive data.
// The body is never logged: it carries the sealed credential and user text.
func (c *Client) logRequest(method, path string) {
	if c.verbose {
		log.Printf("API Request: %s %s", method, path)
	}
}

// logResponse logs an API response with duration.
func (c *Client) logResponse(status int, duration time.Duration) {
	if c.verbose {
		log.Printf("API Response: %d (%v)", status, duration)
	}
}

// Generate performs one POST /ai/generate call. The request's APIKey field
// holds the raw credential; it is sealed here, immediately before transport.
func (c *Client) Generate(ctx context.Context, req GenerateRequest) (*GenerateResponse, error) {
	if req.Provider == "" || req.Model == "" || req.APIKey == "" {
		return nil, ErrNotConfigured
	}
	if len(req.Messages) == 0 && strings.TrimSpace(req.Prompt) == "" {
		return nil, ErrEmptyPrompt
	}

	sealed, err := c.sealer.Seal(req.APIKey)
	if err != nil {
		return nil, fmt.Errorf("failed to seal credential: %w", err)
	}
	req.APIKey = sealed

	var resp GenerateResponse
	if err := c.post(ctx, "/ai/generate", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// ListModels performs one POST /ai/list-models call. An absent or empty
// model list is not an error; callers treat it as "no models available".
func (c *Client) ListModels(ctx context.Context, provider, rawKey string) ([]string, error) {
	if provider == "" || rawKey == "" {
		return nil, ErrNotConfigured
	}

	sealed, err := c.sealer.Seal(rawKey)
	if err != nil {
		return nil, fmt.Errorf("failed to seal credential: %w", err)
	}

	var resp listModelsResponse
	err = c.post(ctx, "/ai/list-models", listModelsRequest{
		Platform:  provider,
		APIKey:    sealed,
		OnlyNames: true,
	}, &resp)
	if err != nil {
		return nil, err
	}
	return resp.Models, nil
}

// post issues one JSON request/response round trip. No retry: a failure is
// returned to the caller as-is, carrying backend detail when present.
func (c *Client) post(ctx context.Context, path string, body, out any) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return err
	}

	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", "aistudio-tui")

	c.logRequest(http.MethodPost, path)
	start := time.Now()
	resp, err := sharedHTTPClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()
	c.logResponse(resp.StatusCode, time.Since(start))

	data, err := readResponse(resp)
	if err != nil {
		return err
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return c.errorFrom(resp.StatusCode, data)
	}

	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("failed to parse response: %w", err)
	}
	return nil
}

// errorFrom converts a non-2xx body into a BackendError, preferring the
// backend's own message over the bare status.
func (c *Client) errorFrom(status int, body []byte) error {
	var apiErr apiErrorResponse
	if err := json.Unmarshal(body, &apiErr); err == nil {
		if msg := apiErr.detail(); msg != "" {
			return &BackendError{Status: status, Message: msg}
		}
	}
	return &BackendError{Status: status, Message: http.StatusText(status)}
}

// readResponse reads the response body with a size limit.
// SECURITY: Response size limit prevents memory exhaustion.
func readResponse(resp *http.Response) ([]byte, error) {
	body, err := io.ReadAll(io.LimitReader(resp.Body, MaxResponseSize))
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}
	if int64(len(body)) == MaxResponseSize {
		return nil, fmt.Errorf("response exceeded maximum size of %d bytes", MaxResponseSize)
	}
	return body, nil
}

// Detail extracts the most specific human-readable message from a gateway
// error for display, falling back to the error's own text.
func Detail(err error) string {
	var be *BackendError
	if errors.As(err, &be) && be.Message != "" {
		return be.Message
	}
	if err != nil {
		return err.Error()
	}
	return "unknown error occurred"
}
