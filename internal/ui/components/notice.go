// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/aistudio-tui/internal/ui/styles"
)

// =============================================================================
// TRANSIENT NOTICE COMPONENT
// =============================================================================

// NoticeLevel selects the styling for a notice line.
type NoticeLevel int

const (
	NoticeInfo NoticeLevel = iota
	NoticeWarn
	NoticeError
)

// noticeTTL is how long a notice stays visible before expiring.
const noticeTTL = 4 * time.Second

// NoticeExpiredMsg signals that a notice generation has timed out.
type NoticeExpiredMsg struct {
	Generation int
}

// Notice is a one-line transient status message. Each Show bumps the
// generation so a stale expiry timer cannot clear a newer notice.
type Notice struct {
	text       string
	level      NoticeLevel
	generation int
}

// Show displays a notice and returns the expiry command for it.
func (n *Notice) Show(level NoticeLevel, text string) tea.Cmd {
	n.text = text
	n.level = level
	n.generation++

	gen := n.generation
	return tea.Tick(noticeTTL, func(time.Time) tea.Msg {
		return NoticeExpiredMsg{Generation: gen}
	})
}

// Expire clears the notice if the expiry matches the current generation.
func (n *Notice) Expire(msg NoticeExpiredMsg) {
	if msg.Generation == n.generation {
		n.text = ""
	}
}

// Clear removes the notice immediately.
func (n *Notice) Clear() {
	n.text = ""
	n.generation++
}

// Visible reports whether a notice is currently displayed.
func (n *Notice) Visible() bool {
	return n.text != ""
}

// View renders the notice line, or an empty string when nothing is shown.
func (n *Notice) View(theme *styles.Theme) string {
	if n.text == "" {
		return ""
	}
	switch n.level {
	case NoticeWarn:
		return theme.NoticeWarn.Render("! " + n.text)
	case NoticeError:
		return theme.NoticeError.Render("x " + n.text)
	default:
		return theme.NoticeInfo.Render("* " + n.text)
	}
}
