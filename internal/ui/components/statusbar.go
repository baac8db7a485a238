// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/aistudio-tui/internal/ui/styles"
	"github.com/jeranaias/aistudio-tui/internal/util"
)

// =============================================================================
// STATUS BAR COMPONENT
// =============================================================================

// Shortcut is a key hint shown in the status bar.
type Shortcut struct {
	Key  string
	Desc string
}

// StatusBar is the bottom bar showing the active provider, model, and the
// shortcuts relevant to the current mode.
type StatusBar struct {
	Provider  string
	ModelName string
	Shortcuts []Shortcut
	Width     int
}

// View renders the status bar, truncating the model name when space runs out.
func (sb StatusBar) View(theme *styles.Theme) string {
	var left strings.Builder
	if sb.Provider != "" {
		left.WriteString(strings.ToUpper(sb.Provider))
		if sb.ModelName != "" {
			left.WriteString(" / ")
			left.WriteString(util.TruncateWidth(sb.ModelName, 32))
		}
	} else {
		left.WriteString("not configured")
	}

	hints := make([]string, 0, len(sb.Shortcuts))
	for _, s := range sb.Shortcuts {
		hints = append(hints, theme.ShortcutKey.Render(s.Key)+" "+theme.ShortcutDesc.Render(s.Desc))
	}
	right := strings.Join(hints, "  ")

	// The left side is unstyled text; the right side carries ANSI escapes,
	// so it is measured with lipgloss.
	gap := sb.Width - util.StringWidth(left.String()) - lipgloss.Width(right) - 2
	if gap < 1 {
		gap = 1
	}

	return theme.StatusBar.Width(sb.Width).Render(
		left.String() + strings.Repeat(" ", gap) + right)
}
