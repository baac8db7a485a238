// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chatpanel

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/aistudio-tui/internal/export"
	"github.com/jeranaias/aistudio-tui/internal/gateway"
	"github.com/jeranaias/aistudio-tui/internal/session"
	"github.com/jeranaias/aistudio-tui/internal/signal"
)

// waitSignal blocks on the subscription channel and delivers the next
// broadcast signal. Returns nil when the subscription is cancelled.
func waitSignal(sub *signal.Subscription) tea.Cmd {
	return func() tea.Msg {
		k, ok := <-sub.C
		if !ok {
			return nil
		}
		return SignalMsg{Kind: k}
	}
}

// toMessages converts session records to the wire transcript format.
func toMessages(records []session.Record) []gateway.Message {
	msgs := make([]gateway.Message, 0, len(records))
	for _, rec := range records {
		msgs = append(msgs, gateway.Message{
			Role:    string(rec.Role),
			Content: rec.Content,
		})
	}
	return msgs
}

// sendCmd sends the full transcript and yields the assistant response.
func (m *Model) sendCmd(records []session.Record) tea.Cmd {
	req := gateway.GenerateRequest{
		Provider: m.cfg.Backend.Provider,
		Model:    m.cfg.Backend.Model,
		APIKey:   m.cfg.Backend.APIKey,
		Category: gateway.CategoryChat,
		Messages: toMessages(records),
	}
	return func() tea.Msg {
		resp, err := m.client.Generate(context.Background(), req)
		if err != nil {
			return ResponseMsg{Err: err}
		}
		return ResponseMsg{Content: resp.Output}
	}
}

// regenerateCmd replays the transcript strictly before the target record
// and yields a replacement for it.
func (m *Model) regenerateCmd(recordID string, records []session.Record) tea.Cmd {
	req := gateway.GenerateRequest{
		Provider: m.cfg.Backend.Provider,
		Model:    m.cfg.Backend.Model,
		APIKey:   m.cfg.Backend.APIKey,
		Category: gateway.CategoryChat,
		Messages: toMessages(records),
	}
	return func() tea.Msg {
		resp, err := m.client.Generate(context.Background(), req)
		if err != nil {
			return RegenerateMsg{RecordID: recordID, Err: err}
		}
		return RegenerateMsg{RecordID: recordID, Content: resp.Output}
	}
}

// exportCmd writes the rendered transcript artifact to disk.
func (m *Model) exportCmd(text string) tea.Cmd {
	opts := m.exportOptions()
	return func() tea.Msg {
		path, err := export.WriteTranscript(text, opts)
		return ExportedMsg{Path: path, Err: err}
	}
}
