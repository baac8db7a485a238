// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package imagepanel

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/aistudio-tui/internal/util"
)

// View renders the gallery over the prompt input and count selector.
func (m *Model) View() string {
	var sections []string

	sections = append(sections, m.viewport.View())

	if m.spinner.Active() {
		sections = append(sections, m.spinner.View(m.theme))
	}
	if m.notice.Visible() {
		sections = append(sections, m.notice.View(m.theme))
	}

	counter := m.theme.SidebarLabel.Render(
		fmt.Sprintf("Images per batch: %d  (ctrl+up / ctrl+down)", m.count))
	sections = append(sections, counter)
	sections = append(sections, m.theme.InputContainer.Width(m.width-2).Render(m.input.View()))

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// refreshViewport re-renders the newest-first gallery. Terminals cannot
// show the bitmaps inline, so each card shows the prompt, the time, and
// the on-disk location of the decoded image.
func (m *Model) refreshViewport() {
	records := m.images.Records()
	if len(records) == 0 {
		m.viewport.SetContent(m.theme.InputPlaceholder.Render(
			"No images yet. Describe one below and press enter."))
		return
	}

	var b strings.Builder
	for i, rec := range records {
		if i > 0 {
			b.WriteString("\n")
		}

		marker := "  "
		if m.focus == focusGallery && i == m.cursor {
			marker = m.theme.InputPrompt.Render("> ")
		}

		card := m.theme.ImagePrompt.Render(util.TruncateWidth(util.FirstLine(rec.Prompt), m.width-10)) + "\n" +
			m.theme.Timestamp.Render(rec.CreatedAt.Format("15:04:05")) + "  " +
			m.theme.SidebarLabel.Render(rec.Handle.Location()) + "\n" +
			m.theme.ShortcutDesc.Render("s save  c copy prompt  d delete")

		b.WriteString(marker)
		b.WriteString(m.theme.ImageCard.MaxWidth(m.width - 4).Render(card))
	}
	m.viewport.SetContent(b.String())
}
