// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// ask.go - One-shot question command.
//
// Command: ask
// Short:   Ask a single question and print the answer
//
// Examples:
//   aistudio ask "explain goroutines in two sentences"
//   aistudio ask -f prompt.txt
//   echo "what is a mutex" | aistudio ask
package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/jeranaias/aistudio-tui/internal/gateway"
)

// HandleAsk runs the ask command.
func HandleAsk(args Args) int {
	query := args.Query
	if query == "" && !IsTTY() {
		// Piped input becomes the query.
		if data, err := io.ReadAll(os.Stdin); err == nil {
			query = strings.TrimSpace(string(data))
		}
	}
	if query == "" {
		Errorf("nothing to ask; pass a question or pipe one in")
		return 1
	}

	cfg, client, err := bootstrap(args)
	if err != nil {
		Errorf("%v", err)
		return 1
	}
	if err := requireComplete(cfg); err != nil {
		Errorf("%v", err)
		return 1
	}

	resp, err := client.Generate(context.Background(), gateway.GenerateRequest{
		Provider: cfg.Backend.Provider,
		Model:    cfg.Backend.Model,
		APIKey:   cfg.Backend.APIKey,
		Category: gateway.CategoryChat,
		Messages: []gateway.Message{{Role: "user", Content: query}},
	})
	if err != nil {
		Errorf("%s", gateway.Detail(err))
		return 1
	}

	if !args.Quiet && IsStdoutTTY() {
		fmt.Println()
	}
	displayResponse(resp.Output)
	return 0
}
