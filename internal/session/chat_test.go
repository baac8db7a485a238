// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package session

import (
	"errors"
	"regexp"
	"strings"
	"testing"
)

func TestAppendAndOrder(t *testing.T) {
	c := NewChat()
	first := c.AppendUser("hello")
	second := c.AppendAssistant("hi there")

	recs := c.Records()
	if len(recs) != 2 {
		t.Fatalf("expected 2 records, got %d", len(recs))
	}
	if recs[0].ID != first || recs[0].Role != RoleUser {
		t.Errorf("first record wrong: %+v", recs[0])
	}
	if recs[1].ID != second || recs[1].Role != RoleAssistant {
		t.Errorf("second record wrong: %+v", recs[1])
	}
}

func TestTranscriptBefore(t *testing.T) {
	c := NewChat()
	c.AppendUser("q1")
	c.AppendAssistant("a1")
	c.AppendUser("q2")
	target := c.AppendAssistant("a2")

	transcript, err := c.TranscriptBefore(target)
	if err != nil {
		t.Fatalf("TranscriptBefore failed: %v", err)
	}
	if len(transcript) != 3 {
		t.Fatalf("expected 3 records before target, got %d", len(transcript))
	}
	if transcript[2].Content != "q2" {
		t.Errorf("last transcript record = %q, want %q", transcript[2].Content, "q2")
	}
}

func TestTranscriptBeforeRejectsUserRecord(t *testing.T) {
	c := NewChat()
	userID := c.AppendUser("q1")
	c.AppendAssistant("a1")

	if _, err := c.TranscriptBefore(userID); !errors.Is(err, ErrNotAssistant) {
		t.Errorf("expected ErrNotAssistant, got %v", err)
	}
	if _, err := c.TranscriptBefore("missing"); !errors.Is(err, ErrNoSuchRecord) {
		t.Errorf("expected ErrNoSuchRecord, got %v", err)
	}
}

func TestOverwritePreservesIdentityAndCount(t *testing.T) {
	c := NewChat()
	c.AppendUser("q1")
	target := c.AppendAssistant("old answer")
	before := c.Records()

	if err := c.OverwriteContent(target, "new answer"); err != nil {
		t.Fatalf("OverwriteContent failed: %v", err)
	}

	after := c.Records()
	if len(after) != len(before) {
		t.Fatalf("record count changed: %d -> %d", len(before), len(after))
	}
	rec, ok := c.Get(target)
	if !ok {
		t.Fatal("target record vanished")
	}
	if rec.Content != "new answer" {
		t.Errorf("content = %q, want %q", rec.Content, "new answer")
	}
	if rec.ID != target || rec.Role != RoleAssistant {
		t.Errorf("identity not preserved: %+v", rec)
	}
	// Untouched records stay untouched.
	if after[0].Content != "q1" {
		t.Errorf("unrelated record changed: %+v", after[0])
	}
}

func TestOverwriteDeletedRecordIsDiscarded(t *testing.T) {
	// A regeneration completing after its target was deleted must not
	// resurrect the record.
	c := NewChat()
	c.AppendUser("q1")
	target := c.AppendAssistant("a1")
	c.DeleteOne(target)

	if err := c.OverwriteContent(target, "late response"); !errors.Is(err, ErrNoSuchRecord) {
		t.Errorf("expected ErrNoSuchRecord, got %v", err)
	}
	if c.Len() != 1 {
		t.Errorf("record count = %d, want 1", c.Len())
	}
}

func TestDeletePrunesSelectionAndMenu(t *testing.T) {
	c := NewChat()
	id := c.AppendUser("q1")
	c.AppendAssistant("a1")

	c.ToggleSelection(id)
	c.OpenMenu(id)

	if !c.DeleteOne(id) {
		t.Fatal("DeleteOne returned false")
	}
	if c.Has(id) {
		t.Error("deleted record still present")
	}
	if c.IsSelected(id) {
		t.Error("deleted record still selected")
	}
	if c.MenuTarget() != "" {
		t.Error("context menu still open on deleted record")
	}
}

func TestDeleteLeavesUnrelatedMenuOpen(t *testing.T) {
	c := NewChat()
	a := c.AppendUser("q1")
	b := c.AppendAssistant("a1")

	c.OpenMenu(b)
	c.DeleteOne(a)
	if c.MenuTarget() != b {
		t.Errorf("menu target = %q, want %q", c.MenuTarget(), b)
	}
}

func TestDeleteSelected(t *testing.T) {
	c := NewChat()
	a := c.AppendUser("q1")
	b := c.AppendAssistant("a1")
	keep := c.AppendUser("q2")

	c.ToggleSelection(a)
	c.ToggleSelection(b)

	if removed := c.DeleteSelected(); removed != 2 {
		t.Errorf("removed = %d, want 2", removed)
	}
	if c.Len() != 1 || !c.Has(keep) {
		t.Errorf("surviving log wrong: len=%d", c.Len())
	}
	if c.SelectionCount() != 0 {
		t.Errorf("selection not emptied: %d", c.SelectionCount())
	}
}

func TestToggleSelectionIdempotentPair(t *testing.T) {
	c := NewChat()
	id := c.AppendUser("q1")

	c.ToggleSelection(id)
	if !c.IsSelected(id) {
		t.Error("record not selected after first toggle")
	}
	c.ToggleSelection(id)
	if c.IsSelected(id) {
		t.Error("record still selected after second toggle")
	}
	// Unknown identifiers never enter the set.
	c.ToggleSelection("missing")
	if c.SelectionCount() != 0 {
		t.Error("unknown identifier entered the selection set")
	}
}

func TestClear(t *testing.T) {
	c := NewChat()
	id := c.AppendUser("q1")
	c.ToggleSelection(id)
	c.OpenMenu(id)

	c.Clear()
	if !c.IsEmpty() || c.SelectionCount() != 0 || c.MenuTarget() != "" {
		t.Error("Clear left residual state")
	}
}

func TestExportEmptySession(t *testing.T) {
	c := NewChat()
	if _, err := c.Export(); !errors.Is(err, ErrEmptySession) {
		t.Errorf("expected ErrEmptySession, got %v", err)
	}
}

func TestExportFormat(t *testing.T) {
	c := NewChat()
	c.AppendUser("hello")
	c.AppendAssistant("hi there")

	out, err := c.Export()
	if err != nil {
		t.Fatalf("Export failed: %v", err)
	}

	blocks := strings.Split(strings.TrimRight(out, "\n"), "\n\n")
	if len(blocks) != c.Len() {
		t.Fatalf("block count = %d, want %d", len(blocks), c.Len())
	}

	linePattern := regexp.MustCompile(`^\[\d{2}:\d{2}:\d{2}\] (USER|ASSISTANT): .+$`)
	if !linePattern.MatchString(blocks[0]) {
		t.Errorf("line %q does not match transcript format", blocks[0])
	}
	if !strings.Contains(blocks[0], "USER: hello") {
		t.Errorf("first block = %q", blocks[0])
	}
	if !strings.Contains(blocks[1], "ASSISTANT: hi there") {
		t.Errorf("second block = %q", blocks[1])
	}
}

func TestGate(t *testing.T) {
	c := NewChat()
	g := c.Gate()

	if !g.TryAcquire() {
		t.Fatal("first acquire failed")
	}
	if g.TryAcquire() {
		t.Error("second acquire succeeded while busy")
	}
	g.Release()
	if !g.TryAcquire() {
		t.Error("acquire after release failed")
	}
}
