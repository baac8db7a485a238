// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package imagepanel

import (
	"context"
	"strings"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/aistudio-tui/internal/export"
	"github.com/jeranaias/aistudio-tui/internal/gateway"
	"github.com/jeranaias/aistudio-tui/internal/imagestore"
	"github.com/jeranaias/aistudio-tui/internal/session"
	"github.com/jeranaias/aistudio-tui/internal/signal"
	"github.com/jeranaias/aistudio-tui/internal/ui/components"
	"github.com/jeranaias/aistudio-tui/internal/util"
)

// Update handles panel messages while the Image tab is active.
func (m *Model) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case ResponseMsg:
		m.images.Gate().Release()
		m.spinner.Stop()
		if msg.Err != nil {
			m.refreshViewport()
			return m.notice.Show(components.NoticeError, gateway.Detail(msg.Err))
		}
		// A response with no decodable images is a soft failure: the
		// session is untouched and the user is told.
		if len(msg.Handles) == 0 {
			m.refreshViewport()
			return m.notice.Show(components.NoticeWarn, "The backend returned no images")
		}
		recs := make([]session.ImageRecord, 0, len(msg.Handles))
		for _, h := range msg.Handles {
			recs = append(recs, session.NewImageRecord(msg.Prompt, h))
		}
		m.images.PrependBatch(recs)
		m.cursor = 0
		m.refreshViewport()
		m.viewport.GotoTop()
		return nil

	case SignalMsg:
		return m.handleSignal(msg.Kind)

	case SavedMsg:
		if msg.Err != nil {
			return m.notice.Show(components.NoticeError, "download failed: "+msg.Err.Error())
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
		m.images.Clear()
		m.cursor = 0
		m.focus = focusInput
		m.input.Focus()
		m.refreshViewport()
		return tea.Batch(rearm, m.notice.Show(components.NoticeInfo, "Cleared generated images"))
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
	// Count selector works from either focus region.
	switch msg.String() {
	case "ctrl+up":
		if m.count < MaxImageCount {
			m.count++
			m.refreshViewport()
		}
		return nil
	case "ctrl+down":
		if m.count > MinImageCount {
			m.count--
			m.refreshViewport()
		}
		return nil
	}

	if m.focus == focusGallery {
		return m.handleGalleryKey(msg)
	}

	switch msg.String() {
	case "enter":
		return m.submit()
	case "tab":
		if !m.images.IsEmpty() {
			m.focus = focusGallery
			m.input.Blur()
			m.refreshViewport()
		}
		return nil
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return cmd
}

func (m *Model) handleGalleryKey(msg tea.KeyMsg) tea.Cmd {
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
		if m.cursor < m.images.Len()-1 {
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
			if err := clipboard.WriteAll(rec.Prompt); err != nil {
				return m.notice.Show(components.NoticeWarn, "Clipboard unavailable")
			}
			return m.notice.Show(components.NoticeInfo, "Copied prompt to clipboard")
		}
		return nil
	case "d":
		if rec, ok := m.recordAtCursor(); ok {
			m.images.Remove(rec.ID)
			if n := m.images.Len(); m.cursor >= n && n > 0 {
				m.cursor = n - 1
			}
			m.refreshViewport()
			return m.notice.Show(components.NoticeInfo, "Deleted image")
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

// submit validates and sends the prompt as an image generation batch.
func (m *Model) submit() tea.Cmd {
	prompt := strings.TrimSpace(m.input.Value())
	if util.IsBlank(prompt) {
		return m.notice.Show(components.NoticeWarn, "Type something first")
	}
	if !m.cfg.Complete() {
		return m.notice.Show(components.NoticeWarn,
			"Configure "+strings.Join(m.cfg.MissingFields(), ", ")+" first (see sidebar)")
	}
	if !m.images.Gate().TryAcquire() {
		return m.notice.Show(components.NoticeWarn, "A request is already in flight")
	}

	m.input.Reset()
	req := gateway.GenerateRequest{
		Provider:   m.cfg.Backend.Provider,
		Model:      m.cfg.Backend.Model,
		APIKey:     m.cfg.Backend.APIKey,
		Category:   gateway.CategoryImage,
		Prompt:     prompt,
		ImageCount: m.count,
	}
	store := m.store
	send := func() tea.Msg {
		resp, err := m.client.Generate(context.Background(), req)
		if err != nil {
			return ResponseMsg{Prompt: prompt, Err: err}
		}
		// Decode in backend order; skip payloads that fail to decode.
		handles := make([]*imagestore.Handle, 0, len(resp.Images))
		for _, payload := range resp.Images {
			h, err := store.Decode(payload.B64JSON, payload.URL)
			if err != nil {
				continue
			}
			handles = append(handles, h)
		}
		return ResponseMsg{Prompt: prompt, Handles: handles}
	}
	return tea.Batch(m.spinner.Start("Generating"), send)
}

// saveCmd downloads an image record to the export location.
func (m *Model) saveCmd(rec session.ImageRecord) tea.Cmd {
	handle, ok := rec.Handle.(*imagestore.Handle)
	if !ok {
		return m.notice.Show(components.NoticeError, "Image is no longer available")
	}
	store := m.store
	path := export.ImagePath(export.DefaultOptions())
	return func() tea.Msg {
		if err := store.SaveTo(handle, path); err != nil {
			return SavedMsg{Err: err}
		}
		return SavedMsg{Path: path}
	}
}

func (m *Model) recordAtCursor() (session.ImageRecord, bool) {
	records := m.images.Records()
	if m.cursor < 0 || m.cursor >= len(records) {
		return session.ImageRecord{}, false
	}
	return records[m.cursor], true
}
