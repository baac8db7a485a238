// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package gateway

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeranaias/aistudio-tui/internal/seal"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(srv.URL, seal.New("test-secret"))
}

func TestGenerateSealsCredential(t *testing.T) {
	var got GenerateRequest
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/ai/generate", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		json.NewEncoder(w).Encode(GenerateResponse{Output: "hello"})
	})

	resp, err := c.Generate(context.Background(), GenerateRequest{
		Provider: "openai",
		Model:    "gpt-4o",
		APIKey:   "sk-raw-key",
		Category: CategoryChat,
		Messages: []Message{{Role: "user", Content: "hi"}},
	})
	require.NoError(t, err)
	assert.Equal(t, "hello", resp.Output)

	// The raw key never crosses the wire.
	assert.True(t, seal.IsSealed(got.APIKey))
	assert.NotContains(t, got.APIKey, "sk-raw-key")

	// The backend holding the same secret can recover it.
	opened, err := seal.New("test-secret").Open(got.APIKey)
	require.NoError(t, err)
	assert.Equal(t, "sk-raw-key", opened)
}

func TestGenerateIncompleteConfig(t *testing.T) {
	c := NewClient("http://unreachable.invalid", seal.New(""))

	_, err := c.Generate(context.Background(), GenerateRequest{
		Provider: "openai",
		Model:    "", // missing
		APIKey:   "sk-raw-key",
		Prompt:   "hi",
	})
	assert.ErrorIs(t, err, ErrNotConfigured)
}

func TestGenerateEmptyPrompt(t *testing.T) {
	c := NewClient("http://unreachable.invalid", seal.New(""))

	_, err := c.Generate(context.Background(), GenerateRequest{
		Provider: "openai",
		Model:    "gpt-4o",
		APIKey:   "sk-raw-key",
		Prompt:   "   ",
	})
	assert.ErrorIs(t, err, ErrEmptyPrompt)
}

func TestGenerateBackendDetailPreferred(t *testing.T) {
	cases := []struct {
		name string
		body string
		want string
	}{
		{"message field", `{"message":"quota exceeded"}`, "quota exceeded"},
		{"details field", `{"details":"invalid model name"}`, "invalid model name"},
		{"error field", `{"error":"bad key"}`, "bad key"},
		{"unparseable body", `not json`, http.StatusText(http.StatusBadGateway)},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusBadGateway)
				w.Write([]byte(tc.body))
			})

			_, err := c.Generate(context.Background(), GenerateRequest{
				Provider: "openai",
				Model:    "gpt-4o",
				APIKey:   "sk-raw-key",
				Prompt:   "hi",
			})
			require.Error(t, err)

			var be *BackendError
			require.True(t, errors.As(err, &be))
			assert.Equal(t, http.StatusBadGateway, be.Status)
			assert.Equal(t, tc.want, be.Message)
			assert.Equal(t, tc.want, Detail(err))
		})
	}
}

func TestGenerateImages(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		var req GenerateRequest
		json.NewDecoder(r.Body).Decode(&req)
		assert.Equal(t, 3, req.ImageCount)
		json.NewEncoder(w).Encode(GenerateResponse{
			Images: []ImagePayload{
				{B64JSON: "YQ=="},
				{B64JSON: "Yg=="},
				{URL: "https://img.example/c.png"},
			},
		})
	})

	resp, err := c.Generate(context.Background(), GenerateRequest{
		Provider:   "openai",
		Model:      "dall-e-3",
		APIKey:     "sk-raw-key",
		Category:   CategoryImage,
		Prompt:     "a sunset",
		ImageCount: 3,
	})
	require.NoError(t, err)
	require.Len(t, resp.Images, 3)
	assert.Equal(t, "YQ==", resp.Images[0].B64JSON)
	assert.Equal(t, "https://img.example/c.png", resp.Images[2].URL)
}

func TestListModels(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/ai/list-models", r.URL.Path)
		var req listModelsRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "gemini", req.Platform)
		assert.True(t, req.OnlyNames)
		assert.True(t, seal.IsSealed(req.APIKey))
		json.NewEncoder(w).Encode(listModelsResponse{
			Models: []string{"gemini-2.0-flash", "gemini-1.5-pro"},
		})
	})

	models, err := c.ListModels(context.Background(), "gemini", "sk-raw-key")
	require.NoError(t, err)
	assert.Equal(t, []string{"gemini-2.0-flash", "gemini-1.5-pro"}, models)
}

func TestListModelsEmptyListIsNotAnError(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{}`))
	})

	models, err := c.ListModels(context.Background(), "openai", "sk-raw-key")
	require.NoError(t, err)
	assert.Empty(t, models)
}

func TestListModelsMissingConfig(t *testing.T) {
	c := NewClient("http://unreachable.invalid", seal.New(""))
	_, err := c.ListModels(context.Background(), "openai", "")
	assert.ErrorIs(t, err, ErrNotConfigured)
}

func TestTransportFailurePropagates(t *testing.T) {
	c := NewClient("http://127.0.0.1:1", seal.New(""))
	_, err := c.Generate(context.Background(), GenerateRequest{
		Provider: "openai",
		Model:    "gpt-4o",
		APIKey:   "sk-raw-key",
		Prompt:   "hi",
	})
	require.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "request failed"))
}
