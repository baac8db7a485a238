// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package imagepanel

import (
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/aistudio-tui/internal/config"
	"github.com/jeranaias/aistudio-tui/internal/gateway"
	"github.com/jeranaias/aistudio-tui/internal/imagestore"
	"github.com/jeranaias/aistudio-tui/internal/session"
	"github.com/jeranaias/aistudio-tui/internal/signal"
	"github.com/jeranaias/aistudio-tui/internal/ui/components"
	"github.com/jeranaias/aistudio-tui/internal/ui/styles"
)

// Image count bounds per generation.
const (
	MinImageCount = 1
	MaxImageCount = 5
)

// =============================================================================
// MESSAGES
// =============================================================================

// ResponseMsg carries the decoded handles of an image generation, in
// backend order. Payloads that failed to decode are already dropped.
type ResponseMsg struct {
	Prompt  string
	Handles []*imagestore.Handle
	Err     error
}

// SignalMsg delivers a broadcast signal while this panel is mounted.
type SignalMsg struct {
	Kind signal.Kind
}

// SavedMsg reports the result of downloading an image.
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
	focusGallery
)

// Model is the Image tab panel.
type Model struct {
	images *session.Image
	store  *imagestore.Store
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
	cursor int // gallery cursor, index into images.Records()
	count  int // images per generation, 1-5

	width  int
	height int
}

// New creates the image panel. The initial batch count comes from config.
func New(images *session.Image, store *imagestore.Store, client *gateway.Client, cfg *config.Config, bus *signal.Bus, theme *styles.Theme) *Model {
	ti := textinput.New()
	ti.Placeholder = "Describe the image to generate..."
	ti.Prompt = "> "
	ti.CharLimit = 0
	ti.Focus()

	count := cfg.UI.ImageCount
	if count < MinImageCount {
		count = MinImageCount
	}
	if count > MaxImageCount {
		count = MaxImageCount
	}

	return &Model{
		images:   images,
		store:    store,
		client:   client,
		cfg:      cfg,
		bus:      bus,
		theme:    theme,
		input:    ti,
		viewport: viewport.New(80, 20),
		spinner:  components.NewSpinner(theme),
		count:    count,
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
	m.viewport.Height = height - 5
	if m.viewport.Height < 1 {
		m.viewport.Height = 1
	}
	m.refreshViewport()
}

// Busy reports whether a generation is in flight.
func (m *Model) Busy() bool {
	return m.images.Gate().Busy()
}

// Count returns the current batch count.
func (m *Model) Count() int {
	return m.count
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
