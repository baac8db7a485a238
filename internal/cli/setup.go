// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// setup.go - First-run wizard.
//
// Command: setup
// Short:   First-run setup wizard
// Aliases: init, wizard
//
// The wizard walks through:
//   1. Provider selection (openai or gemini)
//   2. API key entry (hidden input)
//   3. Backend URL confirmation
//   4. Model selection from the live model list
package cli

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"

	"golang.org/x/term"

	"github.com/jeranaias/aistudio-tui/internal/config"
	"github.com/jeranaias/aistudio-tui/internal/gateway"
	"github.com/jeranaias/aistudio-tui/internal/seal"
)

// HandleSetup runs the interactive first-run wizard.
func HandleSetup(args Args) int {
	if !IsTTY() {
		Errorf("setup needs an interactive terminal")
		return 1
	}

	cfg, err := config.Load()
	if err != nil {
		cfg = config.Default()
	}

	fmt.Println(headingStyle.Render("aistudio setup"))
	fmt.Println(labelStyle.Render("Values in [brackets] are kept when you press enter."))
	fmt.Println()

	// 1. Provider
	options := make([]string, len(config.Providers))
	for i, p := range config.Providers {
		options[i] = string(p)
	}
	defaultIdx := 0
	for i, p := range config.Providers {
		if string(p) == cfg.Backend.Provider {
			defaultIdx = i
		}
	}
	idx := promptChoice("Provider", options, defaultIdx)
	cfg.SetProvider(config.Providers[idx])

	// 2. API key
	key := promptSecure(fmt.Sprintf("API key for %s (hidden)", cfg.Backend.Provider))
	if key != "" {
		cfg.Backend.APIKey = key
	} else if cfg.Backend.APIKey != "" {
		fmt.Println(labelStyle.Render("Keeping the existing key."))
	}

	// 3. Backend URL
	cfg.Backend.BaseURL = promptString("Backend URL", cfg.Backend.BaseURL)

	if err := cfg.Validate(); err != nil {
		Errorf("%v", err)
		return 1
	}

	// 4. Model, from the live list when the key works.
	if cfg.Backend.APIKey != "" {
		client := gateway.NewClient(cfg.Backend.BaseURL, seal.New(cfg.Backend.SealSecret))
		models, err := client.ListModels(context.Background(), cfg.Backend.Provider, cfg.Backend.APIKey)
		switch {
		case err != nil:
			fmt.Println(errorStyle.Render("Could not fetch models: ") + gateway.Detail(err))
			fmt.Println(labelStyle.Render("Pick one later in the TUI sidebar or with 'aistudio config set model'."))
		case len(models) == 0:
			fmt.Println(labelStyle.Render("The provider returned no models."))
		default:
			best := config.BestModels[cfg.Provider()]
			bestIdx := 0
			for i, name := range models {
				if name == best {
					bestIdx = i
				}
				if name == cfg.Backend.Model {
					bestIdx = i
					break
				}
			}
			cfg.Backend.Model = models[promptChoice("Model", models, bestIdx)]
		}
	}

	if err := cfg.Save(); err != nil {
		Errorf("save: %v", err)
		return 1
	}

	path, _ := config.Path()
	fmt.Println()
	fmt.Println(successStyle.Render("Saved " + path))
	if cfg.Complete() {
		fmt.Println(labelStyle.Render("Run 'aistudio' to start the TUI."))
	} else {
		fmt.Println(errorStyle.Render("Still missing: ") + strings.Join(cfg.MissingFields(), ", "))
	}
	return 0
}

// =============================================================================
// PROMPTS
// =============================================================================

func promptInput(prompt string) string {
	fmt.Print(prompt)
	reader := bufio.NewReader(os.Stdin)
	input, err := reader.ReadString('\n')
	if err != nil {
		return ""
	}
	return strings.TrimSpace(input)
}

// promptString prompts for a string with an optional default.
func promptString(prompt, defaultVal string) string {
	if defaultVal != "" {
		prompt = fmt.Sprintf("%s [%s]: ", prompt, defaultVal)
	} else {
		prompt += ": "
	}
	if input := promptInput(prompt); input != "" {
		return input
	}
	return defaultVal
}

// promptSecure prompts for sensitive input without echoing.
func promptSecure(prompt string) string {
	fmt.Print(prompt + ": ")
	keyBytes, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Println()
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(keyBytes))
}

// promptChoice prompts for one of the numbered options and returns its
// index. Empty or unrecognized input keeps the default.
func promptChoice(prompt string, options []string, defaultIdx int) int {
	for i, opt := range options {
		marker := "  "
		if i == defaultIdx {
			marker = "* "
		}
		fmt.Printf("  %s%d. %s\n", marker, i+1, opt)
	}
	input := promptInput(fmt.Sprintf("%s [%s]: ", prompt, options[defaultIdx]))
	if input == "" {
		return defaultIdx
	}
	for i, opt := range options {
		if input == opt || input == strconv.Itoa(i+1) {
			return i
		}
	}
	return defaultIdx
}
