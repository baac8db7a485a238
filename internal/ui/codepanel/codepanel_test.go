// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package codepanel

import (
	"strings"
	"testing"

	"github.com/jeranaias/aistudio-tui/internal/config"
	"github.com/jeranaias/aistudio-tui/internal/gateway"
	"github.com/jeranaias/aistudio-tui/internal/seal"
	"github.com/jeranaias/aistudio-tui/internal/session"
	"github.com/jeranaias/aistudio-tui/internal/signal"
	"github.com/jeranaias/aistudio-tui/internal/ui/styles"
)

func newTestPanel(cfg *config.Config) *Model {
	client := gateway.NewClient("http://localhost:1", seal.New(""))
	return New(session.NewCode(), client, cfg, signal.NewBus(), styles.NewTheme())
}

func completeConfig() *config.Config {
	cfg := config.Default()
	cfg.Backend.Provider = "openai"
	cfg.Backend.APIKey = "sk-test"
	cfg.Backend.Model = "gpt-4o"
	return cfg
}

func TestSubmitWarnsOnBlankPrompt(t *testing.T) {
	m := newTestPanel(completeConfig())
	m.input.SetValue("   ")

	if cmd := m.submit(); cmd == nil {
		t.Error("blank prompt should surface a notice")
	}
	if !m.notice.Visible() {
		t.Error("blank prompt should show a warning notice")
	}
	if !m.code.IsEmpty() {
		t.Error("blank prompt must not create a record")
	}
	if m.code.Gate().Busy() {
		t.Error("blank prompt must not take the gate")
	}
}

func TestSubmitRejectsIncompleteConfig(t *testing.T) {
	m := newTestPanel(config.Default())
	m.input.SetValue("write a parser")

	if cmd := m.submit(); cmd == nil {
		t.Fatal("expected a notice command")
	}
	if m.code.Gate().Busy() {
		t.Error("incomplete config must not take the gate")
	}
}

func TestListRowShowsFirstPromptLineOnly(t *testing.T) {
	m := newTestPanel(completeConfig())
	m.SetSize(100, 30)
	m.code.Prepend(session.NewCodeRecord("sort a slice\nwith generics", "func Sort() {}", "go"))

	m.refreshViewport()
	view := m.viewport.View()
	if !strings.Contains(view, "sort a slice") {
		t.Error("first prompt line missing from list row")
	}
	if strings.Contains(view, "with generics") {
		t.Error("later prompt lines leaked into the list row")
	}
}
