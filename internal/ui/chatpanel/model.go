// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chatpanel

import (
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"

	"github.com/jeranaias/aistudio-tui/internal/config"
	"github.com/jeranaias/aistudio-tui/internal/export"
	"github.com/jeranaias/aistudio-tui/internal/gateway"
	"github.com/jeranaias/aistudio-tui/internal/session"
	"github.com/jeranaias/aistudio-tui/internal/signal"
	"github.com/jeranaias/aistudio-tui/internal/ui/components"
	"github.com/jeranaias/aistudio-tui/internal/ui/styles"
)

// =============================================================================
// FOCUS
// =============================================================================

// focusArea tracks which region of the panel receives key input.
type focusArea int

const (
	focusInput focusArea = iota
	focusTranscript
)

// =============================================================================
// MODEL
// =============================================================================

// Model is the Chat tab panel.
type Model struct {
	chat   *session.Chat
	client *gateway.Client
	cfg    *config.Config
	bus    *signal.Bus
	theme  *styles.Theme

	input    textarea.Model
	viewport viewport.Model
	spinner  components.Spinner
	notice   components.Notice
	menu     components.Menu
	markdown *glamour.TermRenderer

	sub    *signal.Subscription
	focus  focusArea
	cursor int // transcript cursor, index into chat.Records()

	width  int
	height int
}

// New creates the chat panel. The config pointer is shared with the shell
// and sidebar; the panel only reads it.
func New(chat *session.Chat, client *gateway.Client, cfg *config.Config, bus *signal.Bus, theme *styles.Theme) *Model {
	ta := textarea.New()
	ta.Placeholder = "Ask anything..."
	ta.Prompt = "> "
	ta.ShowLineNumbers = false
	ta.SetHeight(3)
	ta.CharLimit = 0
	ta.Focus()

	m := &Model{
		chat:     chat,
		client:   client,
		cfg:      cfg,
		bus:      bus,
		theme:    theme,
		input:    ta,
		viewport: viewport.New(80, 20),
		spinner:  components.NewSpinner(theme),
	}
	m.markdown = newMarkdownRenderer(80)
	return m
}

// newMarkdownRenderer builds a glamour renderer for the given wrap width.
// Returns nil when initialization fails; callers fall back to plain text.
func newMarkdownRenderer(width int) *glamour.TermRenderer {
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return nil
	}
	return r
}

// Mount subscribes the panel to broadcast signals. Called by the shell when
// this tab becomes active.
func (m *Model) Mount() tea.Cmd {
	m.sub = m.bus.Subscribe()
	return waitSignal(m.sub)
}

// Unmount cancels the broadcast subscription. Called on tab switch.
func (m *Model) Unmount() {
	if m.sub != nil {
		m.sub.Cancel()
		m.sub = nil
	}
}

// SetSize resizes the panel regions and rebuilds the markdown renderer for
// the new wrap width.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height

	inputHeight := 5 // bordered textarea
	m.input.SetWidth(width - 4)
	m.viewport.Width = width
	m.viewport.Height = height - inputHeight - 2
	if m.viewport.Height < 1 {
		m.viewport.Height = 1
	}

	wrap := width - 6
	if wrap > 100 {
		wrap = 100
	}
	if wrap < 20 {
		wrap = 20
	}
	m.markdown = newMarkdownRenderer(wrap)
	m.refreshViewport()
}

// Busy reports whether a generation is in flight.
func (m *Model) Busy() bool {
	return m.chat.Gate().Busy()
}

// exportOptions returns where chat artifacts are written.
func (m *Model) exportOptions() *export.Options {
	return export.DefaultOptions()
}
