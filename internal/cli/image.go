// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// image.go - One-shot image generation command.
//
// Command: image
// Short:   Generate images from a prompt and save them to disk
//
// Examples:
//   aistudio image "a lighthouse at dusk"
//   aistudio image "logo sketch" --count 3
//   aistudio image "avatar" -o avatar.png
package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/jeranaias/aistudio-tui/internal/export"
	"github.com/jeranaias/aistudio-tui/internal/gateway"
	"github.com/jeranaias/aistudio-tui/internal/imagestore"
)

// HandleImage runs the image command.
func HandleImage(args Args) int {
	if args.Query == "" {
		Errorf("describe the image to generate")
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

	count := args.Count
	if count == 0 {
		count = cfg.UI.ImageCount
	}

	store, err := imagestore.New()
	if err != nil {
		Errorf("image store: %v", err)
		return 1
	}
	defer store.RevokeAll()

	resp, err := client.Generate(context.Background(), gateway.GenerateRequest{
		Provider:   cfg.Backend.Provider,
		Model:      cfg.Backend.Model,
		APIKey:     cfg.Backend.APIKey,
		Category:   gateway.CategoryImage,
		Prompt:     args.Query,
		ImageCount: count,
	})
	if err != nil {
		Errorf("%s", gateway.Detail(err))
		return 1
	}

	saved := 0
	for i, payload := range resp.Images {
		h, err := store.Decode(payload.B64JSON, payload.URL)
		if err != nil {
			continue
		}

		path := export.ImagePath(export.DefaultOptions())
		if i > 0 {
			// Same-second batches need distinct names.
			path = strings.TrimSuffix(path, ".png") + fmt.Sprintf("-%d.png", i+1)
		}
		if args.OutFile != "" && i == 0 {
			path = args.OutFile
		}
		if err := store.SaveTo(h, path); err != nil {
			Errorf("save image: %v", err)
			continue
		}
		saved++
		if !args.Quiet {
			fmt.Println(successStyle.Render("Saved " + path))
		}
	}

	if saved == 0 {
		Errorf("the backend returned no images")
		return 1
	}
	return 0
}
