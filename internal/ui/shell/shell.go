// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package shell implements the root TUI model: the tab bar, the mounted
// mode panel, the sidebar, and the status bar. The shell owns the signal
// bus and the panel mount lifecycle; exactly one panel is subscribed to
// broadcasts at a time.
package shell

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/aistudio-tui/internal/config"
	"github.com/jeranaias/aistudio-tui/internal/gateway"
	"github.com/jeranaias/aistudio-tui/internal/imagestore"
	"github.com/jeranaias/aistudio-tui/internal/session"
	"github.com/jeranaias/aistudio-tui/internal/signal"
	"github.com/jeranaias/aistudio-tui/internal/ui/chatpanel"
	"github.com/jeranaias/aistudio-tui/internal/ui/codepanel"
	"github.com/jeranaias/aistudio-tui/internal/ui/components"
	"github.com/jeranaias/aistudio-tui/internal/ui/imagepanel"
	"github.com/jeranaias/aistudio-tui/internal/ui/morepanel"
	"github.com/jeranaias/aistudio-tui/internal/ui/sidebar"
	"github.com/jeranaias/aistudio-tui/internal/ui/styles"
)

// =============================================================================
// TABS
// =============================================================================

// Tab identifies one mode panel.
type Tab int

const (
	TabChat Tab = iota
	TabImage
	TabCode
	TabMore
)

var tabLabels = []string{"Chat", "Images", "Code", "More"}

// =============================================================================
// MESSAGES
// =============================================================================

// ConfigReloadedMsg delivers a config freshly re-read from disk.
type ConfigReloadedMsg struct {
	Cfg *config.Config
}

// =============================================================================
// MODEL
// =============================================================================

// panel is what the shell needs from a mode panel.
type panel interface {
	Mount() tea.Cmd
	Unmount()
	SetSize(width, height int)
	Busy() bool
	Update(msg tea.Msg) tea.Cmd
	View() string
}

// Model is the root TUI model.
type Model struct {
	cfg     *config.Config
	client  *gateway.Client
	store   *imagestore.Store
	bus     *signal.Bus
	watcher *config.Watcher
	theme   *styles.Theme

	panels  [4]panel
	active  Tab
	sidebar *sidebar.Model

	width  int
	height int
}

// New wires the shell from the already-constructed application services.
// watcher may be nil when config watching is unavailable.
func New(cfg *config.Config, client *gateway.Client, store *imagestore.Store, watcher *config.Watcher) *Model {
	theme := styles.NewTheme()
	bus := signal.NewBus()

	m := &Model{
		cfg:     cfg,
		client:  client,
		store:   store,
		bus:     bus,
		watcher: watcher,
		theme:   theme,
		sidebar: sidebar.New(cfg, client, theme),
	}

	m.panels[TabChat] = chatpanel.New(session.NewChat(), client, cfg, bus, theme)
	m.panels[TabImage] = imagepanel.New(session.NewImage(), store, client, cfg, bus, theme)
	m.panels[TabCode] = codepanel.New(session.NewCode(), client, cfg, bus, theme)
	m.panels[TabMore] = morepanel.New(bus, theme)

	return m
}

// Init mounts the chat panel, starts the model fetch, and begins watching
// the config file.
func (m *Model) Init() tea.Cmd {
	cmds := []tea.Cmd{
		m.panels[m.active].Mount(),
		m.sidebar.FetchModels(),
	}
	if m.watcher != nil {
		cmds = append(cmds, waitConfig(m.watcher))
	}
	return tea.Batch(cmds...)
}

// waitConfig blocks on the watcher and delivers the next reload.
func waitConfig(w *config.Watcher) tea.Cmd {
	return func() tea.Msg {
		cfg, ok := <-w.Updates()
		if !ok {
			return nil
		}
		return ConfigReloadedMsg{Cfg: cfg}
	}
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.layout()
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case ConfigReloadedMsg:
		return m, m.applyConfig(msg.Cfg)
	}

	// Everything else fans out: responses and ticks must reach their
	// panel even when another tab is active.
	var cmds []tea.Cmd
	for _, p := range m.panels {
		if cmd := p.Update(msg); cmd != nil {
			cmds = append(cmds, cmd)
		}
	}
	if cmd := m.sidebar.Update(msg); cmd != nil {
		cmds = append(cmds, cmd)
	}
	return m, tea.Batch(cmds...)
}

// handleKey runs global shortcuts, then routes to the sidebar or the
// active panel.
func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit

	case "ctrl+n":
		m.bus.Publish(signal.NewSession)
		return m, nil

	case "ctrl+e":
		m.bus.Publish(signal.Export)
		return m, nil

	case "ctrl+b":
		m.sidebar.ToggleCollapsed()
		if m.sidebar.Collapsed() {
			m.sidebar.SetFocused(false)
		}
		m.layout()
		return m, nil

	case "ctrl+o":
		if !m.sidebar.Collapsed() {
			m.sidebar.SetFocused(!m.sidebar.Focused())
		}
		return m, nil

	case "ctrl+right":
		return m, m.switchTab(Tab((int(m.active) + 1) % len(m.panels)))

	case "ctrl+left":
		return m, m.switchTab(Tab((int(m.active) + len(m.panels) - 1) % len(m.panels)))

	case "f1":
		return m, m.switchTab(TabChat)
	case "f2":
		return m, m.switchTab(TabImage)
	case "f3":
		return m, m.switchTab(TabCode)
	case "f4":
		return m, m.switchTab(TabMore)
	}

	if m.sidebar.Focused() {
		return m, m.sidebar.Update(msg)
	}
	return m, m.panels[m.active].Update(msg)
}

// switchTab unmounts the active panel and mounts the target, so exactly
// one panel observes broadcasts at a time. Sessions are untouched; each
// mode keeps its state across switches.
func (m *Model) switchTab(target Tab) tea.Cmd {
	if target == m.active {
		return nil
	}
	m.panels[m.active].Unmount()
	m.active = target
	m.layout()
	return m.panels[m.active].Mount()
}

// applyConfig folds a reloaded config into the shared pointer. The base
// URL is read once at startup and keeps its original value.
func (m *Model) applyConfig(fresh *config.Config) tea.Cmd {
	if fresh == nil {
		return waitConfig(m.watcher)
	}

	changed := fresh.Backend.Provider != m.cfg.Backend.Provider ||
		fresh.Backend.APIKey != m.cfg.Backend.APIKey

	baseURL := m.cfg.Backend.BaseURL
	*m.cfg = *fresh
	m.cfg.Backend.BaseURL = baseURL

	cmds := []tea.Cmd{waitConfig(m.watcher)}
	if changed {
		cmds = append(cmds, m.sidebar.Reload())
	}
	return tea.Batch(cmds...)
}

// layout distributes the window between the tab bar, the content row, and
// the status bar.
func (m *Model) layout() {
	if m.width == 0 || m.height == 0 {
		return
	}

	contentHeight := m.height - 3 // tab bar + status bar
	if contentHeight < 1 {
		contentHeight = 1
	}

	panelWidth := m.width
	if !m.sidebar.Collapsed() {
		panelWidth -= sidebar.Width
	}
	if panelWidth < 20 {
		panelWidth = 20
	}

	for _, p := range m.panels {
		p.SetSize(panelWidth, contentHeight)
	}
	m.sidebar.SetHeight(contentHeight)
}

// =============================================================================
// VIEW
// =============================================================================

// View implements tea.Model.
func (m *Model) View() string {
	if m.width == 0 {
		return "loading..."
	}

	row := m.panels[m.active].View()
	if !m.sidebar.Collapsed() {
		row = lipgloss.JoinHorizontal(lipgloss.Top, row, m.sidebar.View())
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		m.renderTabBar(),
		row,
		m.renderStatusBar(),
	)
}

func (m *Model) renderTabBar() string {
	tabs := make([]string, 0, len(tabLabels))
	for i, label := range tabLabels {
		style := m.theme.Tab
		if Tab(i) == m.active {
			style = m.theme.TabActive
		}
		if Tab(i) == TabMore {
			style = m.theme.TabDisabled
			if Tab(i) == m.active {
				style = m.theme.TabActive
			}
		}
		if m.panels[i].Busy() {
			label += " *"
		}
		tabs = append(tabs, style.Render(label))
	}
	return m.theme.TabBar.Width(m.width).Render(lipgloss.JoinHorizontal(lipgloss.Top, tabs...))
}

func (m *Model) renderStatusBar() string {
	sb := components.StatusBar{
		Provider:  m.cfg.Backend.Provider,
		ModelName: m.cfg.Backend.Model,
		Width:     m.width,
		Shortcuts: []components.Shortcut{
			{Key: "^n", Desc: "new"},
			{Key: "^e", Desc: "export"},
			{Key: "^b", Desc: "sidebar"},
			{Key: "^o", Desc: "settings"},
			{Key: "^←/→", Desc: "tabs"},
			{Key: "^c", Desc: "quit"},
		},
	}
	return sb.View(m.theme)
}
