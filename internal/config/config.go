// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config manages aistudio configuration.
//
// Configuration lives in ~/.aistudio/config.toml, with environment variable
// overrides applied on top (AISTUDIO_BASE_URL, AISTUDIO_PROVIDER,
// AISTUDIO_API_KEY, AISTUDIO_MODEL, AISTUDIO_SEAL_SECRET). The API key is
// held in memory for the lifetime of the process and is never written back
// to disk unless the user saves it explicitly through setup.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/jeranaias/aistudio-tui/internal/util"
)

// Provider is one of the closed set of backend AI platforms.
type Provider string

const (
	ProviderOpenAI Provider = "openai"
	ProviderGemini Provider = "gemini"
)

// Providers lists the selectable providers in display order.
var Providers = []Provider{ProviderOpenAI, ProviderGemini}

// BestModels maps each provider to its recommended model, highlighted in the
// model list when present.
var BestModels = map[Provider]string{
	ProviderOpenAI: "gpt-4o",
	ProviderGemini: "gemini-2.0-flash",
}

// Valid reports whether p is a known provider.
func (p Provider) Valid() bool {
	for _, known := range Providers {
		if p == known {
			return true
		}
	}
	return false
}

// Config holds all aistudio settings.
type Config struct {
	// Backend holds the gateway settings.
	Backend BackendConfig `toml:"backend"`

	// UI holds interface preferences.
	UI UIConfig `toml:"ui"`
}

// BackendConfig configures the gateway connection and credentials.
type BackendConfig struct {
	// BaseURL is the backend service root, read once at startup.
	BaseURL string `toml:"base_url"`

	// Provider selects the AI platform (openai or gemini).
	Provider string `toml:"provider"`

	// APIKey is the raw credential. Sent only in sealed form.
	APIKey string `toml:"api_key"`

	// Model is the selected model name. Must come from the fetched model
	// list, or be empty until one is chosen.
	Model string `toml:"model"`

	// SealSecret overrides the baked-in static transit secret. Must match
	// the backend's secret.
	SealSecret string `toml:"seal_secret"`
}

// UIConfig holds interface preferences.
type UIConfig struct {
	// ImageCount is the default number of images per generation (1-5).
	ImageCount int `toml:"image_count"`

	// SidebarCollapsed starts the TUI with the sidebar collapsed.
	SidebarCollapsed bool `toml:"sidebar_collapsed"`

	// Verbose enables debug logging.
	Verbose bool `toml:"verbose"`
}

// Default returns the configuration defaults.
func Default() *Config {
	return &Config{
		Backend: BackendConfig{
			BaseURL:  "http://localhost:3001",
			Provider: string(ProviderOpenAI),
		},
		UI: UIConfig{
			ImageCount: 1,
		},
	}
}

// ConfigDir returns the aistudio configuration directory (~/.aistudio).
func ConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to determine home directory: %w", err)
	}
	return filepath.Join(home, ".aistudio"), nil
}

// Path returns the config file path.
func Path() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// Load reads the config file, fills defaults, and applies environment
// overrides. A missing file is not an error: defaults are returned.
func Load() (*Config, error) {
	path, err := Path()
	if err != nil {
		return nil, err
	}
	return LoadFrom(path)
}

// LoadFrom reads the config from an explicit path.
func LoadFrom(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err == nil {
		if _, err := toml.Decode(string(data), cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	cfg.applyEnvOverrides()
	cfg.setDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// applyEnvOverrides applies AISTUDIO_* environment variables on top of the
// file values.
func (c *Config) applyEnvOverrides() {
	if v := os.Getenv("AISTUDIO_BASE_URL"); v != "" {
		c.Backend.BaseURL = v
	}
	if v := os.Getenv("AISTUDIO_PROVIDER"); v != "" {
		c.Backend.Provider = v
	}
	if v := os.Getenv("AISTUDIO_API_KEY"); v != "" {
		c.Backend.APIKey = v
	}
	if v := os.Getenv("AISTUDIO_MODEL"); v != "" {
		c.Backend.Model = v
	}
	if v := os.Getenv("AISTUDIO_SEAL_SECRET"); v != "" {
		c.Backend.SealSecret = v
	}
}

// setDefaults fills zero values that decoding may have left behind.
func (c *Config) setDefaults() {
	if c.Backend.BaseURL == "" {
		c.Backend.BaseURL = Default().Backend.BaseURL
	}
	if c.Backend.Provider == "" {
		c.Backend.Provider = string(ProviderOpenAI)
	}
	if c.UI.ImageCount < 1 || c.UI.ImageCount > 5 {
		c.UI.ImageCount = 1
	}
}

// Validate checks the configuration for values that can never work.
func (c *Config) Validate() error {
	if !Provider(c.Backend.Provider).Valid() {
		return fmt.Errorf("unknown provider %q (valid: openai, gemini)", c.Backend.Provider)
	}
	if !strings.HasPrefix(c.Backend.BaseURL, "http://") && !strings.HasPrefix(c.Backend.BaseURL, "https://") {
		return fmt.Errorf("base_url %q must be an http(s) URL", c.Backend.BaseURL)
	}
	return nil
}

// Complete reports whether the configuration is sufficient to issue a
// generation request: provider, credential, and model all set. Incomplete
// configuration rejects the request client-side before any network call.
func (c *Config) Complete() bool {
	return c.Backend.Provider != "" &&
		strings.TrimSpace(c.Backend.APIKey) != "" &&
		c.Backend.Model != ""
}

// MissingFields names what Complete still needs, for the user-visible notice.
func (c *Config) MissingFields() []string {
	var missing []string
	if c.Backend.Provider == "" {
		missing = append(missing, "provider")
	}
	if strings.TrimSpace(c.Backend.APIKey) == "" {
		missing = append(missing, "API key")
	}
	if c.Backend.Model == "" {
		missing = append(missing, "model")
	}
	return missing
}

// Provider returns the typed provider.
func (c *Config) Provider() Provider {
	return Provider(c.Backend.Provider)
}

// SetProvider switches providers. Changing provider invalidates the selected
// model, which must be re-chosen from the new provider's fetched list.
func (c *Config) SetProvider(p Provider) {
	if string(p) == c.Backend.Provider {
		return
	}
	c.Backend.Provider = string(p)
	c.Backend.Model = ""
}

// Save writes the config file with owner-only permissions. The file holds
// the raw credential, so 0600 is mandatory.
func (c *Config) Save() error {
	path, err := Path()
	if err != nil {
		return err
	}
	return c.SaveTo(path)
}

// SaveTo writes the config to an explicit path.
func (c *Config) SaveTo(path string) error {
	var b strings.Builder
	if err := toml.NewEncoder(&b).Encode(c); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	if err := util.AtomicWriteFile(path, []byte(b.String()), 0600); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}
