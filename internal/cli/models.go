// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// models.go - Model listing command.
//
// Command: models
// Short:   List models available for the active provider
//
// Examples:
//   aistudio models
//   aistudio models --provider gemini --json
package cli

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jeranaias/aistudio-tui/internal/config"
	"github.com/jeranaias/aistudio-tui/internal/gateway"
)

// HandleModels runs the models command.
func HandleModels(args Args) int {
	cfg, client, err := bootstrap(args)
	if err != nil {
		Errorf("%v", err)
		return 1
	}
	if cfg.Backend.APIKey == "" {
		Errorf("no API key configured (run 'aistudio setup')")
		return 1
	}

	models, err := client.ListModels(context.Background(), cfg.Backend.Provider, cfg.Backend.APIKey)
	if err != nil {
		Errorf("%s", gateway.Detail(err))
		return 1
	}

	if args.JSON {
		out, err := json.MarshalIndent(struct {
			Provider string   `json:"provider"`
			Models   []string `json:"models"`
		}{cfg.Backend.Provider, models}, "", "  ")
		if err != nil {
			Errorf("%v", err)
			return 1
		}
		fmt.Println(string(out))
		return 0
	}

	if !args.Quiet {
		fmt.Println(headingStyle.Render(cfg.Backend.Provider + " models"))
	}
	best := config.BestModels[cfg.Provider()]
	for _, name := range models {
		line := "  " + name
		switch {
		case name == cfg.Backend.Model:
			line = successStyle.Render("* " + name + " (active)")
		case name == best:
			line = valueStyle.Render("  " + name + " (recommended)")
		}
		fmt.Println(line)
	}
	if len(models) == 0 {
		fmt.Println(labelStyle.Render("  (none)"))
	}
	return 0
}
