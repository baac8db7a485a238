// aistudio TUI - A terminal client for the AI Studio backend.
//
// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/aistudio-tui/internal/cli"
	"github.com/jeranaias/aistudio-tui/internal/config"
	"github.com/jeranaias/aistudio-tui/internal/gateway"
	"github.com/jeranaias/aistudio-tui/internal/imagestore"
	"github.com/jeranaias/aistudio-tui/internal/seal"
	"github.com/jeranaias/aistudio-tui/internal/ui/shell"
)

// Version information (set at build time)
var (
	Version   = "0.1.0"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

func init() {
	// Sync version info with cli package
	cli.Version = Version
	cli.GitCommit = GitCommit
	cli.BuildDate = BuildDate
}

func main() {
	cmd, args := cli.Parse()

	switch cmd {
	case cli.CmdTUI:
		runTUI(args)
	case cli.CmdAsk:
		os.Exit(cli.HandleAsk(args))
	case cli.CmdChat:
		os.Exit(cli.HandleChat(args))
	case cli.CmdCode:
		os.Exit(cli.HandleCode(args))
	case cli.CmdImage:
		os.Exit(cli.HandleImage(args))
	case cli.CmdModels:
		os.Exit(cli.HandleModels(args))
	case cli.CmdConfig:
		os.Exit(cli.HandleConfig(args))
	case cli.CmdSetup:
		os.Exit(cli.HandleSetup(args))
	case cli.CmdVersion:
		cli.PrintVersion()
	case cli.CmdHelp:
		cli.PrintUsage()
	default:
		cli.PrintUsage()
		os.Exit(1)
	}
}

// setupLogging sends the standard logger to a file so verbose request
// logs never corrupt the TUI screen.
func setupLogging() func() {
	dir, err := config.ConfigDir()
	if err != nil {
		log.SetOutput(os.Stderr)
		return func() {}
	}
	os.MkdirAll(dir, 0700)

	f, err := os.OpenFile(filepath.Join(dir, "aistudio.log"),
		os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0600)
	if err != nil {
		log.SetOutput(os.Stderr)
		return func() {}
	}
	log.SetOutput(f)
	return func() { f.Close() }
}

func runTUI(args cli.Args) {
	closeLog := setupLogging()
	defer closeLog()

	// Load configuration at startup. The base URL is fixed for the
	// lifetime of the process; everything else can change on reload.
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	// CLI args override config.
	if args.Provider != "" {
		cfg.SetProvider(config.Provider(args.Provider))
	}
	if args.Model != "" {
		cfg.Backend.Model = args.Model
	}
	if args.Verbose {
		cfg.UI.Verbose = true
	}

	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	client := gateway.NewClient(cfg.Backend.BaseURL, seal.New(cfg.Backend.SealSecret)).
		WithVerbose(cfg.UI.Verbose)

	store, err := imagestore.New()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	// All decoded images are temp-backed; revoke them on the way out.
	defer store.RevokeAll()

	// Watch the config file for edits made while the TUI runs. Not
	// fatal when unavailable.
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	watcher, err := config.Watch(ctx)
	if err != nil {
		log.Printf("config watch unavailable: %v", err)
		watcher = nil
	} else {
		defer watcher.Close()
	}

	m := shell.New(cfg, client, store, watcher)

	p := tea.NewProgram(
		m,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)

	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error running aistudio: %v\n", err)
		os.Exit(1)
	}
}
