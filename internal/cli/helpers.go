// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// helpers.go - Shared bootstrap and terminal helpers for CLI commands.
package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"

	"github.com/jeranaias/aistudio-tui/internal/config"
	"github.com/jeranaias/aistudio-tui/internal/gateway"
	"github.com/jeranaias/aistudio-tui/internal/seal"
	"github.com/jeranaias/aistudio-tui/internal/ui/styles"
)

// =============================================================================
// STYLES
// =============================================================================

var (
	headingStyle = lipgloss.NewStyle().Bold(true).Foreground(styles.Purple)
	labelStyle   = lipgloss.NewStyle().Foreground(styles.TextSecondary)
	valueStyle   = lipgloss.NewStyle().Foreground(styles.TextPrimary)
	errorStyle   = lipgloss.NewStyle().Bold(true).Foreground(styles.Rose)
	successStyle = lipgloss.NewStyle().Foreground(styles.Emerald)
)

// =============================================================================
// TTY DETECTION
// =============================================================================

// IsTTY returns true if stdin is a terminal.
func IsTTY() bool {
	return term.IsTerminal(int(os.Stdin.Fd()))
}

// IsStdoutTTY returns true if stdout is a terminal. Markdown rendering and
// colors are only used when it is.
func IsStdoutTTY() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}

// =============================================================================
// BOOTSTRAP
// =============================================================================

// bootstrap loads config, applies CLI overrides, and builds the gateway
// client. It does not require the config to be complete; commands check
// that themselves so the error can mention what is missing.
func bootstrap(args Args) (*config.Config, *gateway.Client, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("load config: %w", err)
	}

	if args.Provider != "" {
		cfg.SetProvider(config.Provider(strings.ToLower(args.Provider)))
	}
	if args.Model != "" {
		cfg.Backend.Model = args.Model
	}
	if args.Verbose {
		cfg.UI.Verbose = true
	}

	if err := cfg.Validate(); err != nil {
		return nil, nil, err
	}

	client := gateway.NewClient(cfg.Backend.BaseURL, seal.New(cfg.Backend.SealSecret)).
		WithVerbose(cfg.UI.Verbose)
	return cfg, client, nil
}

// requireComplete fails with a helpful message when provider, key, or
// model are missing.
func requireComplete(cfg *config.Config) error {
	if cfg.Complete() {
		return nil
	}
	return fmt.Errorf("configuration incomplete: set %s (run 'aistudio setup')",
		strings.Join(cfg.MissingFields(), ", "))
}

// =============================================================================
// MARKDOWN RENDERING
// =============================================================================

// markdownRenderer is the shared glamour renderer for terminal output.
var markdownRenderer *glamour.TermRenderer

func init() {
	var err error
	markdownRenderer, err = glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(80),
	)
	if err != nil {
		markdownRenderer = nil
	}
}

// renderMarkdown renders markdown for terminal display, falling back to
// the raw content when the renderer is unavailable.
func renderMarkdown(content string) string {
	if markdownRenderer == nil {
		return content
	}
	rendered, err := markdownRenderer.Render(content)
	if err != nil {
		return content
	}
	return rendered
}

// displayResponse prints a response, markdown-rendered only on a TTY so
// piped output stays clean.
func displayResponse(response string) {
	if IsStdoutTTY() {
		fmt.Print(renderMarkdown(response))
		if !strings.HasSuffix(response, "\n") {
			fmt.Println()
		}
	} else {
		fmt.Println(response)
	}
}

// Errorf prints a styled error line to stderr.
func Errorf(format string, a ...any) {
	fmt.Fprintln(os.Stderr, errorStyle.Render("error: ")+fmt.Sprintf(format, a...))
}

// PrintUsage writes the usage text to stdout.
func PrintUsage() {
	fmt.Print(usageText)
}

// PrintVersion writes version information to stdout.
func PrintVersion() {
	fmt.Printf("aistudio %s (commit %s, built %s)\n", Version, GitCommit, BuildDate)
}
