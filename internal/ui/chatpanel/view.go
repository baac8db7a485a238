// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chatpanel

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/aistudio-tui/internal/session"
)

// View renders the transcript viewport over the input area.
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

// refreshViewport re-renders the transcript into the viewport. Called after
// every mutation of the session log or the cursor.
func (m *Model) refreshViewport() {
	records := m.chat.Records()
	if len(records) == 0 {
		m.viewport.SetContent(m.theme.InputPlaceholder.Render(
			"No messages yet. Type below and press enter."))
		return
	}

	var b strings.Builder
	for i, rec := range records {
		if i > 0 {
			b.WriteString("\n\n")
		}
		b.WriteString(m.renderRecord(rec, i))

		if m.chat.MenuTarget() == rec.ID {
			b.WriteString("\n")
			b.WriteString(m.menu.View(m.theme))
		}
	}
	m.viewport.SetContent(b.String())
}

// renderRecord renders one transcript record with its header line.
func (m *Model) renderRecord(rec session.Record, index int) string {
	roleStyle := m.theme.AssistantBubble
	if rec.Role == session.RoleUser {
		roleStyle = m.theme.UserBubble
	}

	marker := "  "
	if m.focus == focusTranscript && index == m.cursor {
		marker = m.theme.InputPrompt.Render("> ")
	}
	if m.chat.IsSelected(rec.ID) {
		marker = m.theme.NoticeInfo.Render("* ")
	}

	header := marker +
		roleStyle.Render(rec.Role.DisplayName()) + " " +
		m.theme.Timestamp.Render(rec.CreatedAt.Format("15:04:05"))

	body := rec.Content
	if rec.Role == session.RoleAssistant && m.markdown != nil {
		if rendered, err := m.markdown.Render(rec.Content); err == nil {
			body = strings.TrimRight(rendered, "\n")
		}
	}
	if m.chat.IsSelected(rec.ID) {
		body = m.theme.SelectedRecord.Render(body)
	}

	return header + "\n" + body
}
