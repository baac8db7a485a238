// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chatpanel

import (
	"errors"
	"fmt"
	"strings"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/aistudio-tui/internal/gateway"
	"github.com/jeranaias/aistudio-tui/internal/session"
	"github.com/jeranaias/aistudio-tui/internal/signal"
	"github.com/jeranaias/aistudio-tui/internal/ui/components"
	"github.com/jeranaias/aistudio-tui/internal/util"
)

// Update handles panel messages. The shell routes messages here while the
// Chat tab is active.
func (m *Model) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case ResponseMsg:
		m.chat.Gate().Release()
		m.spinner.Stop()
		if msg.Err != nil {
			m.refreshViewport()
			return m.notice.Show(components.NoticeError, gateway.Detail(msg.Err))
		}
		m.chat.AppendAssistant(msg.Content)
		m.cursor = m.chat.Len() - 1
		m.refreshViewport()
		m.viewport.GotoBottom()
		return nil

	case RegenerateMsg:
		m.chat.Gate().Release()
		m.spinner.Stop()
		if msg.Err != nil {
			m.refreshViewport()
			return m.notice.Show(components.NoticeError, gateway.Detail(msg.Err))
		}
		// A record deleted while the request was in flight is gone for
		// good; the late response is dropped.
		if err := m.chat.OverwriteContent(msg.RecordID, msg.Content); err != nil &&
			!errors.Is(err, session.ErrNoSuchRecord) {
			return m.notice.Show(components.NoticeError, err.Error())
		}
		m.refreshViewport()
		return nil

	case SignalMsg:
		return m.handleSignal(msg.Kind)

	case ExportedMsg:
		if msg.Err != nil {
			return m.notice.Show(components.NoticeError, "export failed: "+msg.Err.Error())
		}
		return m.notice.Show(components.NoticeInfo, "Saved "+msg.Path)

	case components.NoticeExpiredMsg:
		m.notice.Expire(msg)
		return nil
	}

	var cmds []tea.Cmd
	if cmd := m.spinner.Update(msg); cmd != nil {
		cmds = append(cmds, cmd)
	}
	if m.focus == focusInput {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		cmds = append(cmds, cmd)
	}
	return tea.Batch(cmds...)
}

// handleSignal reacts to a broadcast while this panel is mounted and
// re-arms the subscription listener.
func (m *Model) handleSignal(k signal.Kind) tea.Cmd {
	rearm := waitSignal(m.sub)
	switch k {
	case signal.NewSession:
		m.chat.Clear()
		m.cursor = 0
		m.focus = focusInput
		m.input.Focus()
		m.refreshViewport()
		return tea.Batch(rearm, m.notice.Show(components.NoticeInfo, "Started a new chat"))
	case signal.Export:
		text, err := m.chat.Export()
		if err != nil {
			return tea.Batch(rearm, m.notice.Show(components.NoticeWarn, "Nothing to export yet"))
		}
		return tea.Batch(rearm, m.exportCmd(text))
	}
	return rearm
}

// handleKey dispatches key input by focus region, with the context menu
// taking priority while open.
func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	if m.chat.MenuTarget() != "" {
		return m.handleMenuKey(msg)
	}
	if m.focus == focusTranscript {
		return m.handleTranscriptKey(msg)
	}
	return m.handleInputKey(msg)
}

func (m *Model) handleInputKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "enter":
		return m.submit()
	case "tab":
		if !m.chat.IsEmpty() {
			m.focus = focusTranscript
			m.input.Blur()
			m.clampCursor()
			m.refreshViewport()
		}
		return nil
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return cmd
}

func (m *Model) handleTranscriptKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "tab", "esc", "i":
		m.focus = focusInput
		m.refreshViewport()
		return m.input.Focus()
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
			m.refreshViewport()
		}
		return nil
	case "down", "j":
		if m.cursor < m.chat.Len()-1 {
			m.cursor++
			m.refreshViewport()
		}
		return nil
	case " ":
		if rec, ok := m.recordAtCursor(); ok {
			m.chat.ToggleSelection(rec.ID)
			m.refreshViewport()
		}
		return nil
	case "enter", "m":
		if rec, ok := m.recordAtCursor(); ok {
			m.openMenu(rec)
			m.refreshViewport()
		}
		return nil
	case "d":
		if m.chat.SelectionCount() > 0 {
			n := m.chat.DeleteSelected()
			m.clampCursor()
			m.refreshViewport()
			label := "records"
			if n == 1 {
				label = "record"
			}
			return m.notice.Show(components.NoticeInfo,
				fmt.Sprintf("Deleted %d %s", n, label))
		}
		return nil
	case "pgup":
		m.viewport.HalfViewUp()
		return nil
	case "pgdown":
		m.viewport.HalfViewDown()
		return nil
	}
	return nil
}

func (m *Model) handleMenuKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "esc", "q":
		m.chat.CloseMenu()
		m.refreshViewport()
		return nil
	case "up", "k":
		m.menu.MoveUp()
		m.refreshViewport()
		return nil
	case "down", "j":
		m.menu.MoveDown()
		m.refreshViewport()
		return nil
	case "enter":
		action := m.menu.Selected()
		target := m.chat.MenuTarget()
		m.chat.CloseMenu()
		cmd := m.runMenuAction(action, target)
		m.refreshViewport()
		return cmd
	}
	return nil
}

// openMenu opens the context menu on a record with the actions that apply
// to its role.
func (m *Model) openMenu(rec session.Record) {
	items := []components.MenuItem{
		{Label: "Copy", Action: components.MenuActionCopy},
		{Label: "Edit into input", Action: components.MenuActionEdit},
	}
	if rec.Role == session.RoleAssistant {
		items = append(items, components.MenuItem{Label: "Regenerate", Action: components.MenuActionRegenerate})
	}
	selectLabel := "Select"
	if m.chat.IsSelected(rec.ID) {
		selectLabel = "Deselect"
	}
	items = append(items,
		components.MenuItem{Label: selectLabel, Action: components.MenuActionSelect},
		components.MenuItem{Label: "Delete", Action: components.MenuActionDelete, Danger: true},
	)
	m.menu = components.NewMenu(items)
	m.chat.OpenMenu(rec.ID)
}

// runMenuAction executes a context menu action against the target record.
func (m *Model) runMenuAction(action components.MenuAction, targetID string) tea.Cmd {
	rec, ok := m.chat.Get(targetID)
	if !ok {
		return nil
	}

	switch action {
	case components.MenuActionCopy:
		if err := clipboard.WriteAll(rec.Content); err != nil {
			return m.notice.Show(components.NoticeWarn, "Clipboard unavailable")
		}
		return m.notice.Show(components.NoticeInfo, "Copied to clipboard")

	case components.MenuActionEdit:
		m.input.SetValue(rec.Content)
		m.focus = focusInput
		return m.input.Focus()

	case components.MenuActionRegenerate:
		return m.regenerate(targetID)

	case components.MenuActionSelect:
		m.chat.ToggleSelection(targetID)
		return nil

	case components.MenuActionDelete:
		m.chat.DeleteOne(targetID)
		m.clampCursor()
		return nil
	}
	return nil
}

// submit validates and sends the input buffer as a new user message.
func (m *Model) submit() tea.Cmd {
	text := strings.TrimSpace(m.input.Value())
	if util.IsBlank(text) {
		return m.notice.Show(components.NoticeWarn, "Type something first")
	}
	if !m.cfg.Complete() {
		return m.notice.Show(components.NoticeWarn,
			"Configure "+strings.Join(m.cfg.MissingFields(), ", ")+" first (see sidebar)")
	}
	if !m.chat.Gate().TryAcquire() {
		return m.notice.Show(components.NoticeWarn, "A request is already in flight")
	}

	m.chat.AppendUser(text)
	m.input.Reset()
	m.cursor = m.chat.Len() - 1
	m.refreshViewport()
	m.viewport.GotoBottom()

	return tea.Batch(
		m.spinner.Start("Generating"),
		m.sendCmd(m.chat.Records()),
	)
}

// regenerate starts a regeneration for an assistant record.
func (m *Model) regenerate(recordID string) tea.Cmd {
	transcript, err := m.chat.TranscriptBefore(recordID)
	if err != nil {
		return m.notice.Show(components.NoticeWarn, err.Error())
	}
	if !m.chat.Gate().TryAcquire() {
		return m.notice.Show(components.NoticeWarn, "A request is already in flight")
	}
	return tea.Batch(
		m.spinner.Start("Regenerating"),
		m.regenerateCmd(recordID, transcript),
	)
}

// recordAtCursor returns the record under the transcript cursor.
func (m *Model) recordAtCursor() (session.Record, bool) {
	records := m.chat.Records()
	if m.cursor < 0 || m.cursor >= len(records) {
		return session.Record{}, false
	}
	return records[m.cursor], true
}

// clampCursor keeps the cursor inside the record range after deletions.
func (m *Model) clampCursor() {
	if n := m.chat.Len(); m.cursor >= n {
		m.cursor = n - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}
