// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package morepanel implements the More tab: a static preview of features
// that are not available yet. It keeps no session state; broadcast signals
// only surface a notice.
package morepanel

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/aistudio-tui/internal/signal"
	"github.com/jeranaias/aistudio-tui/internal/ui/components"
	"github.com/jeranaias/aistudio-tui/internal/ui/styles"
)

// feature is one upcoming capability card.
type feature struct {
	title string
	desc  string
}

var features = []feature{
	{"Voice Conversations", "Talk to the assistant and hear spoken replies."},
	{"Prompt Templates", "Save and reuse your best prompts across sessions."},
	{"Memory & Context", "Let the assistant remember facts between sessions."},
	{"Multi-Model Compare", "Run one prompt against several models side by side."},
}

// SignalMsg delivers a broadcast signal while this panel is mounted.
type SignalMsg struct {
	Kind signal.Kind
}

// Model is the More tab panel.
type Model struct {
	bus    *signal.Bus
	theme  *styles.Theme
	notice components.Notice
	sub    *signal.Subscription
	width  int
	height int
}

// New creates the More panel.
func New(bus *signal.Bus, theme *styles.Theme) *Model {
	return &Model{bus: bus, theme: theme}
}

// Mount subscribes the panel to broadcast signals.
func (m *Model) Mount() tea.Cmd {
	m.sub = m.bus.Subscribe()
	return waitSignal(m.sub)
}

// Unmount cancels the broadcast subscription.
func (m *Model) Unmount() {
	if m.sub != nil {
		m.sub.Cancel()
		m.sub = nil
	}
}

// SetSize records the panel size.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// Busy always reports false; this panel never talks to the backend.
func (m *Model) Busy() bool {
	return false
}

// Update handles panel messages while the More tab is active.
func (m *Model) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case SignalMsg:
		return tea.Batch(
			waitSignal(m.sub),
			m.notice.Show(components.NoticeInfo, "Not available in this view"),
		)
	case components.NoticeExpiredMsg:
		m.notice.Expire(msg)
	}
	return nil
}

// View renders the feature cards.
func (m *Model) View() string {
	var cards []string
	for _, f := range features {
		body := m.theme.SidebarTitle.Render(f.title) + "\n" +
			m.theme.AssistantBubble.Render(f.desc) + "\n" +
			m.theme.NoticeWarn.Render("Coming soon")
		cards = append(cards, m.theme.FeatureCard.Width(m.width-6).Render(body))
	}

	var sections []string
	sections = append(sections, strings.Join(cards, "\n"))
	if m.notice.Visible() {
		sections = append(sections, m.notice.View(m.theme))
	}
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func waitSignal(sub *signal.Subscription) tea.Cmd {
	return func() tea.Msg {
		k, ok := <-sub.C
		if !ok {
			return nil
		}
		return SignalMsg{Kind: k}
	}
}
