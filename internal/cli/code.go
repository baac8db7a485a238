// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// code.go - One-shot code generation command.
//
// Command: code
// Short:   Generate code from a prompt
//
// Examples:
//   aistudio code "binary search in python"
//   aistudio code "http server in go" -o server.go
package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/jeranaias/aistudio-tui/internal/gateway"
	"github.com/jeranaias/aistudio-tui/internal/lang"
)

// HandleCode runs the code command.
func HandleCode(args Args) int {
	if args.Query == "" {
		Errorf("describe the code to generate")
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
		Category: gateway.CategoryCode,
		Prompt:   args.Query,
	})
	if err != nil {
		Errorf("%s", gateway.Detail(err))
		return 1
	}

	language := lang.Detect(resp.Output, args.Query)
	body := lang.StripFences(resp.Output)

	if args.OutFile != "" {
		if err := os.WriteFile(args.OutFile, []byte(body+"\n"), 0644); err != nil {
			Errorf("write %s: %v", args.OutFile, err)
			return 1
		}
		if !args.Quiet {
			fmt.Println(successStyle.Render("Saved " + args.OutFile))
		}
		return 0
	}

	if IsStdoutTTY() {
		if !args.Quiet {
			fmt.Println(labelStyle.Render("language: ") + valueStyle.Render(language))
		}
		// Re-fence so glamour highlights it.
		displayResponse("```" + language + "\n" + body + "\n```")
		return 0
	}

	fmt.Println(body)
	return 0
}
