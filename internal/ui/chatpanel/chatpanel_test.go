// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chatpanel

import (
	"testing"

	"github.com/jeranaias/aistudio-tui/internal/config"
	"github.com/jeranaias/aistudio-tui/internal/gateway"
	"github.com/jeranaias/aistudio-tui/internal/seal"
	"github.com/jeranaias/aistudio-tui/internal/session"
	"github.com/jeranaias/aistudio-tui/internal/signal"
	"github.com/jeranaias/aistudio-tui/internal/ui/styles"
)

func newTestPanel(cfg *config.Config) *Model {
	client := gateway.NewClient("http://localhost:1", seal.New(""))
	return New(session.NewChat(), client, cfg, signal.NewBus(), styles.NewTheme())
}

func completeConfig() *config.Config {
	cfg := config.Default()
	cfg.Backend.Provider = "openai"
	cfg.Backend.APIKey = "sk-test"
	cfg.Backend.Model = "gpt-4o"
	return cfg
}

func TestSubmitRejectsIncompleteConfig(t *testing.T) {
	m := newTestPanel(config.Default())
	m.input.SetValue("hello")

	cmd := m.submit()
	if cmd == nil {
		t.Fatal("expected a notice command")
	}
	if !m.notice.Visible() {
		t.Error("expected a visible notice for incomplete config")
	}
	if !m.chat.IsEmpty() {
		t.Error("no record should be appended when config is incomplete")
	}
}

func TestSubmitWarnsOnBlankInput(t *testing.T) {
	m := newTestPanel(completeConfig())
	m.input.SetValue("   \n  ")

	if cmd := m.submit(); cmd == nil {
		t.Error("blank input should surface a notice")
	}
	if !m.notice.Visible() {
		t.Error("blank input should show a warning notice")
	}
	if !m.chat.IsEmpty() {
		t.Error("blank input must not create a record")
	}
	if m.chat.Gate().Busy() {
		t.Error("blank input must not take the gate")
	}
}

func TestSubmitRejectsWhileInFlight(t *testing.T) {
	m := newTestPanel(completeConfig())
	if !m.chat.Gate().TryAcquire() {
		t.Fatal("gate should be free")
	}

	m.input.SetValue("second question")
	if cmd := m.submit(); cmd == nil {
		t.Fatal("expected a notice command")
	}
	if !m.chat.IsEmpty() {
		t.Error("no record should be appended while a request is in flight")
	}
}

func TestSubmitAppendsUserRecordAndTakesGate(t *testing.T) {
	m := newTestPanel(completeConfig())
	m.input.SetValue("hello")

	if cmd := m.submit(); cmd == nil {
		t.Fatal("expected send command")
	}
	if m.chat.Len() != 1 {
		t.Fatalf("expected 1 record, got %d", m.chat.Len())
	}
	rec := m.chat.Records()[0]
	if rec.Role != session.RoleUser || rec.Content != "hello" {
		t.Errorf("unexpected record: %+v", rec)
	}
	if !m.chat.Gate().Busy() {
		t.Error("gate should be held while the request is in flight")
	}
	if m.input.Value() != "" {
		t.Error("input should be cleared on submit")
	}
}

func TestLateRegenerationForDeletedRecordIsDropped(t *testing.T) {
	m := newTestPanel(completeConfig())
	m.chat.AppendUser("question")
	id := m.chat.AppendAssistant("old answer")
	m.chat.Gate().TryAcquire()

	m.chat.DeleteOne(id)

	cmd := m.Update(RegenerateMsg{RecordID: id, Content: "new answer"})
	if cmd != nil {
		t.Error("a late response for a deleted record should be dropped silently")
	}
	if m.chat.Gate().Busy() {
		t.Error("gate must be released after the response lands")
	}
	for _, rec := range m.chat.Records() {
		if rec.Content == "new answer" {
			t.Error("dropped response must not appear in the log")
		}
	}
}

func TestRegenerationOverwritesInPlace(t *testing.T) {
	m := newTestPanel(completeConfig())
	m.chat.AppendUser("question")
	id := m.chat.AppendAssistant("old answer")
	m.chat.Gate().TryAcquire()

	m.Update(RegenerateMsg{RecordID: id, Content: "better answer"})

	rec, ok := m.chat.Get(id)
	if !ok {
		t.Fatal("record should still exist")
	}
	if rec.Content != "better answer" {
		t.Errorf("content = %q, want overwrite", rec.Content)
	}
	if m.chat.Len() != 2 {
		t.Errorf("overwrite must not change record count, got %d", m.chat.Len())
	}
}

func TestResponseAppendsAssistantRecord(t *testing.T) {
	m := newTestPanel(completeConfig())
	m.chat.AppendUser("question")
	m.chat.Gate().TryAcquire()

	m.Update(ResponseMsg{Content: "the answer"})

	if m.chat.Len() != 2 {
		t.Fatalf("expected 2 records, got %d", m.chat.Len())
	}
	last := m.chat.Records()[1]
	if last.Role != session.RoleAssistant || last.Content != "the answer" {
		t.Errorf("unexpected record: %+v", last)
	}
	if m.chat.Gate().Busy() {
		t.Error("gate must be released after the response lands")
	}
}

func TestMenuOffersRegenerateOnlyForAssistant(t *testing.T) {
	m := newTestPanel(completeConfig())
	userID := m.chat.AppendUser("question")
	asstID := m.chat.AppendAssistant("answer")

	userRec, _ := m.chat.Get(userID)
	m.openMenu(userRec)
	if m.chat.MenuTarget() != userID {
		t.Fatal("menu should target the user record")
	}
	m.chat.CloseMenu()

	asstRec, _ := m.chat.Get(asstID)
	m.openMenu(asstRec)
	if m.chat.MenuTarget() != asstID {
		t.Fatal("menu should target the assistant record")
	}
}
