// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package codepanel

import (
	"context"
	"strings"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/aistudio-tui/internal/export"
	"github.com/jeranaias/aistudio-tui/internal/gateway"
	"github.com/jeranaias/aistudio-tui/internal/lang"
	"github.com/jeranaias/aistudio-tui/internal/session"
	"github.com/jeranaias/aistudio-tui/internal/signal"
	"github.com/jeranaias/aistudio-tui/internal/ui/components"
	"github.com/jeranaias/aistudio-tui/internal/util"
)

// Update handles panel messages while the Code tab is active.
func (m *Model) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case ResponseMsg:
		m.code.Gate().Release()
		m.spinner.Stop()
		if msg.Err != nil {
			m.refreshViewport()
			return m.notice.Show(components.NoticeError, gateway.Detail(msg.Err))
		}
		language := lang.Detect(msg.Output, msg.Prompt)
		body := lang.StripFences(msg.Output)
		m.code.Prepend(session.NewCodeRecord(msg.Prompt, body, language))
		m.cursor = 0
		m.refreshViewport()
		m.viewport.GotoTop()
		return nil

	case SignalMsg:
		return m.handleSignal(msg.Kind)

	case SavedMsg:
		if msg.Err != nil {
			return m.notice.Show(components.NoticeError, "save failed: "+msg.Err.Error())
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

func (m *Model) handleSignal(k signal.Kind) tea.Cmd {
	rearm := waitSignal(m.sub)
	switch k {
	case signal.NewSession:
		m.code.Clear()
		m.cursor = 0
		m.focus = focusInput
		m.input.Focus()
		m.refreshViewport()
		return tea.Batch(rearm, m.notice.Show(components.NoticeInfo, "Cleared generated code"))
	case signal.Export:
		rec, ok := m.recordAtCursor()
		if !ok {
			return tea.Batch(rearm, m.notice.Show(components.NoticeWarn, "Nothing to export yet"))
		}
		return tea.Batch(rearm, m.saveCmd(rec))
	}
	return rearm
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	if m.focus == focusList {
		return m.handleListKey(msg)
	}

	switch msg.String() {
	case "enter":
		return m.submit()
	case "tab":
		if !m.code.IsEmpty() {
			m.focus = focusList
			m.input.Blur()
			m.refreshViewport()
		}
		return nil
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return cmd
}

func (m *Model) handleListKey(msg tea.KeyMsg) tea.Cmd {
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
		if m.cursor < m.code.Len()-1 {
			m.cursor++
			m.refreshViewport()
		}
		return nil
	case "s":
		if rec, ok := m.recordAtCursor(); ok {
			return m.saveCmd(rec)
		}
		return nil
	case "c":
		if rec, ok := m.recordAtCursor(); ok {
			if err := clipboard.WriteAll(rec.Code); err != nil {
				return m.notice.Show(components.NoticeWarn, "Clipboard unavailable")
			}
			return m.notice.Show(components.NoticeInfo, "Copied to clipboard")
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

// submit validates and sends the prompt as a one-shot code generation.
func (m *Model) submit() tea.Cmd {
	prompt := strings.TrimSpace(m.input.Value())
	if util.IsBlank(prompt) {
		return m.notice.Show(components.NoticeWarn, "Type something first")
	}
	if !m.cfg.Complete() {
		return m.notice.Show(components.NoticeWarn,
			"Configure "+strings.Join(m.cfg.MissingFields(), ", ")+" first (see sidebar)")
	}
	if !m.code.Gate().TryAcquire() {
		return m.notice.Show(components.NoticeWarn, "A request is already in flight")
	}

	m.input.Reset()
	req := gateway.GenerateRequest{
		Provider: m.cfg.Backend.Provider,
		Model:    m.cfg.Backend.Model,
		APIKey:   m.cfg.Backend.APIKey,
		Category: gateway.CategoryCode,
		Prompt:   prompt,
	}
	send := func() tea.Msg {
		resp, err := m.client.Generate(context.Background(), req)
		if err != nil {
			return ResponseMsg{Prompt: prompt, Err: err}
		}
		return ResponseMsg{Prompt: prompt, Output: resp.Output}
	}
	return tea.Batch(m.spinner.Start("Generating"), send)
}

// saveCmd writes a code record to disk with the extension for its language.
func (m *Model) saveCmd(rec session.CodeRecord) tea.Cmd {
	opts := export.DefaultOptions()
	return func() tea.Msg {
		path, err := export.WriteCode(rec.Code, rec.Language, opts)
		return SavedMsg{Path: path, Err: err}
	}
}

func (m *Model) recordAtCursor() (session.CodeRecord, bool) {
	records := m.code.Records()
	if m.cursor < 0 || m.cursor >= len(records) {
		return session.CodeRecord{}, false
	}
	return records[m.cursor], true
}
