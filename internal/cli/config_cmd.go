// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// config_cmd.go - Configuration inspection and editing.
//
// Command: config
// Short:   Show or change configuration values
//
// Examples:
//   aistudio config                 Show current configuration
//   aistudio config path            Print the config file path
//   aistudio config set backend.provider gemini
//   aistudio config set ui.image_count 3
package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/jeranaias/aistudio-tui/internal/config"
)

// HandleConfig runs the config command.
func HandleConfig(args Args) int {
	switch args.Subcommand {
	case "", "show":
		return configShow(args)
	case "path":
		path, err := config.Path()
		if err != nil {
			Errorf("%v", err)
			return 1
		}
		fmt.Println(path)
		return 0
	case "set":
		return configSet(args)
	default:
		Errorf("unknown config subcommand %q (try show, set, path)", args.Subcommand)
		return 1
	}
}

func configShow(args Args) int {
	cfg, err := config.Load()
	if err != nil {
		Errorf("%v", err)
		return 1
	}

	key := cfg.Backend.APIKey
	if key != "" {
		if len(key) > 4 {
			key = "****" + key[len(key)-4:]
		} else {
			key = "****"
		}
	} else {
		key = "(not set)"
	}

	rows := []struct{ k, v string }{
		{"backend.base_url", cfg.Backend.BaseURL},
		{"backend.provider", cfg.Backend.Provider},
		{"backend.api_key", key},
		{"backend.model", orUnset(cfg.Backend.Model)},
		{"ui.image_count", strconv.Itoa(cfg.UI.ImageCount)},
		{"ui.sidebar_collapsed", strconv.FormatBool(cfg.UI.SidebarCollapsed)},
		{"ui.verbose", strconv.FormatBool(cfg.UI.Verbose)},
	}

	fmt.Println(headingStyle.Render("aistudio configuration"))
	for _, row := range rows {
		fmt.Printf("  %s %s\n", labelStyle.Render(fmt.Sprintf("%-22s", row.k)), valueStyle.Render(row.v))
	}

	if !cfg.Complete() {
		fmt.Println()
		fmt.Println(errorStyle.Render("incomplete: ") + strings.Join(cfg.MissingFields(), ", "))
	}
	return 0
}

func configSet(args Args) int {
	if args.ConfigKey == "" {
		Errorf("usage: aistudio config set <key> <value>")
		return 1
	}

	cfg, err := config.Load()
	if err != nil {
		Errorf("%v", err)
		return 1
	}

	val := args.ConfigVal
	switch strings.ToLower(args.ConfigKey) {
	case "backend.provider", "provider":
		p := config.Provider(strings.ToLower(val))
		if !p.Valid() {
			Errorf("invalid provider %q (openai or gemini)", val)
			return 1
		}
		cfg.SetProvider(p)
	case "backend.api_key", "api_key":
		cfg.Backend.APIKey = val
	case "backend.model", "model":
		cfg.Backend.Model = val
	case "backend.base_url", "base_url":
		cfg.Backend.BaseURL = val
	case "backend.seal_secret", "seal_secret":
		cfg.Backend.SealSecret = val
	case "ui.image_count", "image_count":
		n, err := strconv.Atoi(val)
		if err != nil || n < 1 || n > 5 {
			Errorf("image_count must be 1-5")
			return 1
		}
		cfg.UI.ImageCount = n
	case "ui.sidebar_collapsed", "sidebar_collapsed":
		cfg.UI.SidebarCollapsed = val == "true" || val == "1"
	case "ui.verbose", "verbose":
		cfg.UI.Verbose = val == "true" || val == "1"
	default:
		Errorf("unknown key %q", args.ConfigKey)
		return 1
	}

	if err := cfg.Validate(); err != nil {
		Errorf("%v", err)
		return 1
	}
	if err := cfg.Save(); err != nil {
		Errorf("save: %v", err)
		return 1
	}

	if !args.Quiet {
		fmt.Println(successStyle.Render("Updated " + args.ConfigKey))
	}
	return 0
}

func orUnset(s string) string {
	if s == "" {
		return "(not set)"
	}
	return s
}
