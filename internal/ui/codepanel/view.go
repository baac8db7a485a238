// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package codepanel

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/aistudio-tui/internal/ui/components"
	"github.com/jeranaias/aistudio-tui/internal/util"
)

// View renders the result list over the prompt input.
func (m *Model) View() string {
	var sections []string

	sections = append(sections, m.viewport.View())

	if m.spinner.Active() {
		sections = append(sections, m.spinner.View(m.theme))
	}
	if m.notice.Visible() {
		sections = append(sections, m.notice.View(m.theme))
	}

	sections = append(sections, m.theme.InputContainer.Width(m.width-2).Render(m.input.View()))

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// refreshViewport re-renders the newest-first result list.
func (m *Model) refreshViewport() {
	records := m.code.Records()
	if len(records) == 0 {
		m.viewport.SetContent(m.theme.InputPlaceholder.Render(
			"No code generated yet. Describe what you need below."))
		return
	}

	var b strings.Builder
	for i, rec := range records {
		if i > 0 {
			b.WriteString("\n\n")
		}

		marker := "  "
		if m.focus == focusList && i == m.cursor {
			marker = m.theme.InputPrompt.Render("> ")
		}
		b.WriteString(marker)
		b.WriteString(m.theme.UserBubble.Render(util.TruncateWidth(util.FirstLine(rec.Prompt), m.width-12)))
		b.WriteString(" ")
		b.WriteString(m.theme.Timestamp.Render(rec.CreatedAt.Format("15:04:05")))
		b.WriteString("\n")

		cb := components.NewCodeBlock(rec.Language, rec.Code)
		cb.MaxWidth = m.width - 4
		b.WriteString(cb.Render(m.theme))
	}
	m.viewport.SetContent(b.String())
}
