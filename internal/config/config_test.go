// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefaults(t *testing.T) {
	cfg := Default()
	if cfg.Backend.BaseURL != "http://localhost:3001" {
		t.Errorf("default base URL = %q", cfg.Backend.BaseURL)
	}
	if cfg.Provider() != ProviderOpenAI {
		t.Errorf("default provider = %q", cfg.Provider())
	}
	if cfg.UI.ImageCount != 1 {
		t.Errorf("default image count = %d", cfg.UI.ImageCount)
	}
}

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := LoadFrom(filepath.Join(t.TempDir(), "nope.toml"))
	if err != nil {
		t.Fatalf("LoadFrom failed: %v", err)
	}
	if cfg.Backend.BaseURL != Default().Backend.BaseURL {
		t.Errorf("missing file should yield defaults, got %q", cfg.Backend.BaseURL)
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")

	cfg := Default()
	cfg.Backend.Provider = string(ProviderGemini)
	cfg.Backend.APIKey = "sk-test"
	cfg.Backend.Model = "gemini-2.0-flash"
	cfg.UI.ImageCount = 3

	if err := cfg.SaveTo(path); err != nil {
		t.Fatalf("SaveTo failed: %v", err)
	}

	// Credential file must be owner-only.
	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("Stat failed: %v", err)
	}
	if perm := info.Mode().Perm(); perm != 0600 {
		t.Errorf("config file permissions = %o, want 0600", perm)
	}

	loaded, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom failed: %v", err)
	}
	if loaded.Backend.Provider != string(ProviderGemini) ||
		loaded.Backend.APIKey != "sk-test" ||
		loaded.Backend.Model != "gemini-2.0-flash" ||
		loaded.UI.ImageCount != 3 {
		t.Errorf("round trip lost data: %+v", loaded)
	}
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("AISTUDIO_PROVIDER", "gemini")
	t.Setenv("AISTUDIO_API_KEY", "sk-env")
	t.Setenv("AISTUDIO_BASE_URL", "https://backend.example")

	cfg, err := LoadFrom(filepath.Join(t.TempDir(), "nope.toml"))
	if err != nil {
		t.Fatalf("LoadFrom failed: %v", err)
	}
	if cfg.Backend.Provider != "gemini" || cfg.Backend.APIKey != "sk-env" ||
		cfg.Backend.BaseURL != "https://backend.example" {
		t.Errorf("env overrides not applied: %+v", cfg.Backend)
	}
}

func TestValidateRejectsUnknownProvider(t *testing.T) {
	cfg := Default()
	cfg.Backend.Provider = "skynet"
	if err := cfg.Validate(); err == nil {
		t.Error("unknown provider passed validation")
	}

	cfg = Default()
	cfg.Backend.BaseURL = "not-a-url"
	if err := cfg.Validate(); err == nil {
		t.Error("bad base URL passed validation")
	}
}

func TestComplete(t *testing.T) {
	cfg := Default()
	if cfg.Complete() {
		t.Error("default config should be incomplete")
	}
	missing := cfg.MissingFields()
	if len(missing) != 2 {
		t.Errorf("MissingFields = %v, want [API key, model]", missing)
	}

	cfg.Backend.APIKey = "sk-test"
	cfg.Backend.Model = "gpt-4o"
	if !cfg.Complete() {
		t.Error("config with provider, key, model should be complete")
	}

	cfg.Backend.APIKey = "   "
	if cfg.Complete() {
		t.Error("whitespace key should not count as configured")
	}
}

func TestSetProviderResetsModel(t *testing.T) {
	cfg := Default()
	cfg.Backend.Model = "gpt-4o"

	cfg.SetProvider(ProviderGemini)
	if cfg.Backend.Model != "" {
		t.Error("switching provider must clear the selected model")
	}

	// Re-selecting the same provider keeps the model.
	cfg.Backend.Model = "gemini-2.0-flash"
	cfg.SetProvider(ProviderGemini)
	if cfg.Backend.Model != "gemini-2.0-flash" {
		t.Error("re-selecting the active provider cleared the model")
	}
}

func TestWatchReloadsOnChange(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")

	cfg := Default()
	if err := cfg.SaveTo(path); err != nil {
		t.Fatalf("SaveTo failed: %v", err)
	}

	w, err := WatchPath(context.Background(), path)
	if err != nil {
		t.Fatalf("WatchPath failed: %v", err)
	}
	defer w.Close()

	cfg.Backend.Model = "gpt-4o"
	if err := cfg.SaveTo(path); err != nil {
		t.Fatalf("SaveTo failed: %v", err)
	}

	select {
	case updated := <-w.Updates():
		if updated.Backend.Model != "gpt-4o" {
			t.Errorf("reloaded model = %q, want gpt-4o", updated.Backend.Model)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("no reload delivered")
	}
}
