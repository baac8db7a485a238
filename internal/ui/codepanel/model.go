// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package codepanel

import (
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/aistudio-tui/internal/config"
	"github.com/jeranaias/aistudio-tui/internal/gateway"
	"github.com/jeranaias/aistudio-tui/internal/session"
	"github.com/jeranaias/aistudio-tui/internal/signal"
	"github.com/jeranaias/aistudio-tui/internal/ui/components"
	"github.com/jeranaias/aistudio-tui/internal/ui/styles"
)

// =============================================================================
// MESSAGES
// =============================================================================

// ResponseMsg carries the outcome of a code generation. The prompt rides
// along so detection can fall back to it.
type ResponseMsg struct {
	Prompt string
	Output string
	Err    error
}

// SignalMsg delivers a broadcast signal while this panel is mounted.
type SignalMsg struct {
	Kind signal.Kind
}

// SavedMsg reports the result of writing a code artifact.
type SavedMsg struct {
	Path string
	Err  error
}

// =============================================================================
// MODEL
// =============================================================================

// focusArea tracks which region of the panel receives key input.
type focusArea int

const (
	focusInput focusArea = iota
	focusList
)

// Model is the Code tab panel.
type Model struct {
	code   *session.Code
	client *gateway.Client
	cfg    *config.Config
	bus    *signal.Bus
	theme  *styles.Theme

	input    textinput.Model
	viewport viewport.Model
	spinner  components.Spinner
	notice   components.Notice

	sub    *signal.Subscription
	focus  focusArea
	cursor int // list cursor, index into code.Records()

	width  int
	height int
}

// New creates the code panel.
func New(code *session.Code, client *gateway.Client, cfg *config.Config, bus *signal.Bus, theme *styles.Theme) *Model {
	ti := textinput.New()
	ti.Placeholder = "Describe the code you need..."
	ti.Prompt = "> "
	ti.CharLimit = 0
	ti.Focus()

	return &Model{
		code:     code,
		client:   client,
		cfg:      cfg,
		bus:      bus,
		theme:    theme,
		input:    ti,
		viewport: viewport.New(80, 20),
		spinner:  components.NewSpinner(theme),
	}
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

// SetSize resizes the panel regions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.input.Width = width - 6
	m.viewport.Width = width
	m.viewport.Height = height - 4
	if m.viewport.Height < 1 {
		m.viewport.Height = 1
	}
	m.refreshViewport()
}

// Busy reports whether a generation is in flight.
func (m *Model) Busy() bool {
	return m.code.Gate().Busy()
}

// waitSignal blocks on the subscription channel and delivers the next
// broadcast signal.
func waitSignal(sub *signal.Subscription) tea.Cmd {
	return func() tea.Msg {
		k, ok := <-sub.C
		if !ok {
			return nil
		}
		return SignalMsg{Kind: k}
	}
}
