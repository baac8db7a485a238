// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"

	"github.com/jeranaias/aistudio-tui/internal/ui/styles"
)

// =============================================================================
// CONTEXT MENU COMPONENT
// =============================================================================

// MenuAction identifies an action a context menu can trigger.
type MenuAction int

const (
	MenuActionNone MenuAction = iota
	MenuActionCopy
	MenuActionEdit
	MenuActionRegenerate
	MenuActionDelete
	MenuActionSelect
	MenuActionSave
)

// MenuItem is a single entry in a context menu.
type MenuItem struct {
	Label  string
	Action MenuAction
	Danger bool
}

// Menu is a keyboard-driven popup menu anchored to a record. The owner
// decides which items apply to the target before opening it.
type Menu struct {
	items  []MenuItem
	cursor int
}

// NewMenu creates a menu with the given items.
func NewMenu(items []MenuItem) Menu {
	return Menu{items: items}
}

// MoveUp moves the cursor up, stopping at the first item.
func (m *Menu) MoveUp() {
	if m.cursor > 0 {
		m.cursor--
	}
}

// MoveDown moves the cursor down, stopping at the last item.
func (m *Menu) MoveDown() {
	if m.cursor < len(m.items)-1 {
		m.cursor++
	}
}

// Selected returns the action under the cursor.
func (m *Menu) Selected() MenuAction {
	if len(m.items) == 0 {
		return MenuActionNone
	}
	return m.items[m.cursor].Action
}

// Reset moves the cursor back to the first item.
func (m *Menu) Reset() {
	m.cursor = 0
}

// View renders the menu as a bordered vertical list.
func (m *Menu) View(theme *styles.Theme) string {
	var b strings.Builder
	for i, item := range m.items {
		line := "  " + item.Label
		switch {
		case i == m.cursor:
			line = theme.MenuSelected.Render("> " + item.Label)
		case item.Danger:
			line = theme.NoticeError.Render(line)
		default:
			line = theme.MenuItem.Render(line)
		}
		b.WriteString(line)
		if i < len(m.items)-1 {
			b.WriteString("\n")
		}
	}
	return theme.Menu.Render(b.String())
}
