// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package sidebar implements the provider and model picker. It owns the
// writable view of the shared config: switching provider clears the model
// selection, and a model can only be chosen from the fetched list.
package sidebar

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/aistudio-tui/internal/config"
	"github.com/jeranaias/aistudio-tui/internal/gateway"
	"github.com/jeranaias/aistudio-tui/internal/ui/styles"
	"github.com/jeranaias/aistudio-tui/internal/util"
)

// Width is the fixed column width of the expanded sidebar.
const Width = 30

// =============================================================================
// MESSAGES
// =============================================================================

// ModelsMsg carries a fetched model list. Provider guards against a reply
// that arrives after the user already switched providers.
type ModelsMsg struct {
	Provider config.Provider
	Models   []string
	Err      error
}

// =============================================================================
// MODEL
// =============================================================================

// Model is the sidebar state.
type Model struct {
	cfg    *config.Config
	client *gateway.Client
	theme  *styles.Theme

	models    []string
	cursor    int
	loading   bool
	fetchErr  string
	collapsed bool
	focused   bool

	height int
}

// New creates the sidebar. Collapsed state comes from config.
func New(cfg *config.Config, client *gateway.Client, theme *styles.Theme) *Model {
	return &Model{
		cfg:       cfg,
		client:    client,
		theme:     theme,
		collapsed: cfg.UI.SidebarCollapsed,
	}
}

// Collapsed reports whether the sidebar is hidden.
func (m *Model) Collapsed() bool {
	return m.collapsed
}

// ToggleCollapsed flips the sidebar visibility.
func (m *Model) ToggleCollapsed() {
	m.collapsed = !m.collapsed
}

// Focused reports whether the sidebar receives key input.
func (m *Model) Focused() bool {
	return m.focused
}

// SetFocused moves key focus onto or off the sidebar.
func (m *Model) SetFocused(focused bool) {
	m.focused = focused
}

// SetHeight records the available column height.
func (m *Model) SetHeight(height int) {
	m.height = height
}

// FetchModels requests the model list for the current provider. No-op
// without an API key.
func (m *Model) FetchModels() tea.Cmd {
	if m.cfg.Backend.APIKey == "" {
		return nil
	}
	provider := m.cfg.Provider()
	rawKey := m.cfg.Backend.APIKey
	client := m.client

	m.loading = true
	m.fetchErr = ""
	return func() tea.Msg {
		models, err := client.ListModels(context.Background(), string(provider), rawKey)
		return ModelsMsg{Provider: provider, Models: models, Err: err}
	}
}

// Reload drops the cached list and refetches. Called when the config file
// changes on disk.
func (m *Model) Reload() tea.Cmd {
	m.models = nil
	m.cursor = 0
	return m.FetchModels()
}

// Update handles sidebar messages.
func (m *Model) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case ModelsMsg:
		// Stale reply for a provider the user already left.
		if msg.Provider != m.cfg.Provider() {
			return nil
		}
		m.loading = false
		if msg.Err != nil {
			m.fetchErr = gateway.Detail(msg.Err)
			return nil
		}
		m.models = msg.Models
		m.cursor = 0
		return nil

	case tea.KeyMsg:
		if !m.focused {
			return nil
		}
		return m.handleKey(msg)
	}
	return nil
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "p":
		return m.cycleProvider()
	case "r":
		return m.Reload()
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
		return nil
	case "down", "j":
		if m.cursor < len(m.models)-1 {
			m.cursor++
		}
		return nil
	case "enter":
		return m.selectModel()
	}
	return nil
}

// cycleProvider advances to the next provider. The config layer clears the
// model selection on an actual change; the cached list goes with it.
func (m *Model) cycleProvider() tea.Cmd {
	current := m.cfg.Provider()
	for i, p := range config.Providers {
		if p == current {
			m.cfg.SetProvider(config.Providers[(i+1)%len(config.Providers)])
			break
		}
	}
	m.models = nil
	m.cursor = 0
	return m.FetchModels()
}

// selectModel persists the model under the cursor.
func (m *Model) selectModel() tea.Cmd {
	if m.cursor < 0 || m.cursor >= len(m.models) {
		return nil
	}
	m.cfg.Backend.Model = m.models[m.cursor]
	if err := m.cfg.Save(); err != nil {
		m.fetchErr = "could not save config: " + err.Error()
	}
	return nil
}

// =============================================================================
// VIEW
// =============================================================================

// View renders the sidebar column, or an empty string when collapsed.
func (m *Model) View() string {
	if m.collapsed {
		return ""
	}

	var b strings.Builder
	b.WriteString(m.theme.SidebarTitle.Render("Settings"))
	b.WriteString("\n\n")

	b.WriteString(m.theme.SidebarLabel.Render("Provider"))
	b.WriteString("\n")
	for _, p := range config.Providers {
		style := m.theme.ProviderInactive
		marker := "  "
		if p == m.cfg.Provider() {
			style = m.theme.ProviderActive
			marker = "> "
		}
		b.WriteString(marker + style.Render(string(p)) + "\n")
	}
	b.WriteString("\n")

	b.WriteString(m.theme.SidebarLabel.Render("API key"))
	b.WriteString("\n")
	b.WriteString(maskKey(m.cfg.Backend.APIKey))
	b.WriteString("\n\n")

	b.WriteString(m.theme.SidebarLabel.Render("Models"))
	b.WriteString("\n")
	b.WriteString(m.renderModels())

	if m.focused {
		b.WriteString("\n\n")
		b.WriteString(m.theme.ShortcutDesc.Render("p provider  r refresh  enter select"))
	}

	return m.theme.Sidebar.Width(Width).Height(m.height).Render(b.String())
}

func (m *Model) renderModels() string {
	switch {
	case m.loading:
		return m.theme.InputPlaceholder.Render("loading...")
	case m.fetchErr != "":
		return m.theme.NoticeError.Render(m.fetchErr)
	case m.cfg.Backend.APIKey == "":
		return m.theme.InputPlaceholder.Render("set an API key first")
	case len(m.models) == 0:
		return m.theme.InputPlaceholder.Render("press r to fetch")
	}

	best := config.BestModels[m.cfg.Provider()]
	var b strings.Builder
	for i, name := range m.models {
		if i > 0 {
			b.WriteString("\n")
		}

		style := m.theme.ModelItem
		if name == best {
			style = m.theme.ModelItemBest
		}
		if name == m.cfg.Backend.Model {
			style = m.theme.ModelItemActive
		}

		marker := "  "
		if m.focused && i == m.cursor {
			marker = "> "
		}

		line := marker + style.Render(util.TruncateRunes(name, Width-6))
		if name == best {
			line += m.theme.ModelItemBest.Render(" *")
		}
		b.WriteString(line)
	}
	return b.String()
}

// maskKey shows only the credential tail so the sidebar never reveals it.
func maskKey(key string) string {
	if key == "" {
		return "not set"
	}
	if len(key) <= 4 {
		return "****"
	}
	return fmt.Sprintf("****%s", key[len(key)-4:])
}
