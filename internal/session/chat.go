// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package session

import (
	"errors"
	"strings"
	"time"
)

// Errors returned by chat session operations.
var (
	// ErrEmptySession indicates there is nothing to export.
	ErrEmptySession = errors.New("session is empty")
	// ErrNoSuchRecord indicates the referenced record is not in the log.
	ErrNoSuchRecord = errors.New("no such record")
	// ErrNotAssistant indicates a regeneration target that is not an assistant record.
	ErrNotAssistant = errors.New("only assistant records can be regenerated")
)

// exportTimeLayout is the timestamp format of exported transcript lines.
const exportTimeLayout = "15:04:05"

// Chat holds one chat conversation: the ordered record log plus the
// transient selection and context-menu state layered on top of it.
//
// Chat is not safe for concurrent use; in the TUI all mutation happens on
// the Bubble Tea update loop, and the CLI chat REPL is single-threaded.
type Chat struct {
	records  []Record
	selected map[string]struct{}

	// menuTarget is the record the open context menu refers to, or "" when
	// no menu is open. At most one menu is open at a time.
	menuTarget string

	gate Gate
}

// NewChat creates an empty chat session.
func NewChat() *Chat {
	return &Chat{
		selected: make(map[string]struct{}),
	}
}

// =============================================================================
// RECORD LOG
// =============================================================================

// AppendUser appends a user record and returns its identifier.
func (c *Chat) AppendUser(content string) string {
	rec := NewRecord(RoleUser, content)
	c.records = append(c.records, rec)
	return rec.ID
}

// AppendAssistant appends an assistant record and returns its identifier.
func (c *Chat) AppendAssistant(content string) string {
	rec := NewRecord(RoleAssistant, content)
	c.records = append(c.records, rec)
	return rec.ID
}

// OverwriteContent replaces a record's content and refreshes its timestamp,
// preserving identity and position. Used when a regeneration completes.
// Returns ErrNoSuchRecord if the record was deleted while the regeneration
// was outstanding; the caller discards the late response.
func (c *Chat) OverwriteContent(id, content string) error {
	for i := range c.records {
		if c.records[i].ID == id {
			c.records[i].Content = content
			c.records[i].CreatedAt = time.Now()
			return nil
		}
	}
	return ErrNoSuchRecord
}

// TranscriptBefore returns a copy of all records strictly before the record
// with the given identifier, in creation order. This is the payload of a
// regeneration request.
func (c *Chat) TranscriptBefore(id string) ([]Record, error) {
	idx := c.indexOf(id)
	if idx < 0 {
		return nil, ErrNoSuchRecord
	}
	if c.records[idx].Role != RoleAssistant {
		return nil, ErrNotAssistant
	}
	out := make([]Record, idx)
	copy(out, c.records[:idx])
	return out, nil
}

// Records returns a copy of the record log in creation order.
func (c *Chat) Records() []Record {
	out := make([]Record, len(c.records))
	copy(out, c.records)
	return out
}

// Get returns the record with the given identifier.
func (c *Chat) Get(id string) (Record, bool) {
	if idx := c.indexOf(id); idx >= 0 {
		return c.records[idx], true
	}
	return Record{}, false
}

// Has reports whether a record with the given identifier exists.
func (c *Chat) Has(id string) bool {
	return c.indexOf(id) >= 0
}

// Len returns the number of records.
func (c *Chat) Len() int {
	return len(c.records)
}

// IsEmpty reports whether the session has no records.
func (c *Chat) IsEmpty() bool {
	return len(c.records) == 0
}

func (c *Chat) indexOf(id string) int {
	for i := range c.records {
		if c.records[i].ID == id {
			return i
		}
	}
	return -1
}

// =============================================================================
// DELETION
// =============================================================================

// DeleteOne removes the record with the given identifier. The selection set
// and the context menu are pruned in the same step, so no stale reference is
// ever observable. Returns false if the record did not exist.
func (c *Chat) DeleteOne(id string) bool {
	idx := c.indexOf(id)
	if idx < 0 {
		return false
	}
	c.records = append(c.records[:idx], c.records[idx+1:]...)
	delete(c.selected, id)
	if c.menuTarget == id {
		c.menuTarget = ""
	}
	return true
}

// DeleteSelected removes every selected record and empties the selection.
// Returns the number of records removed.
func (c *Chat) DeleteSelected() int {
	if len(c.selected) == 0 {
		return 0
	}
	kept := c.records[:0]
	removed := 0
	for _, rec := range c.records {
		if _, ok := c.selected[rec.ID]; ok {
			removed++
			if c.menuTarget == rec.ID {
				c.menuTarget = ""
			}
			continue
		}
		kept = append(kept, rec)
	}
	c.records = kept
	c.selected = make(map[string]struct{})
	return removed
}

// Clear empties records, selection, and context-menu state. Triggered only
// by the broadcast new-session signal, never by mode-internal logic.
func (c *Chat) Clear() {
	c.records = nil
	c.selected = make(map[string]struct{})
	c.menuTarget = ""
}

// =============================================================================
// SELECTION
// =============================================================================

// ToggleSelection flips membership of the record in the selection set.
// Toggling an unknown identifier is a no-op.
func (c *Chat) ToggleSelection(id string) {
	if !c.Has(id) {
		return
	}
	if _, ok := c.selected[id]; ok {
		delete(c.selected, id)
	} else {
		c.selected[id] = struct{}{}
	}
}

// IsSelected reports whether the record is in the selection set.
func (c *Chat) IsSelected(id string) bool {
	_, ok := c.selected[id]
	return ok
}

// SelectionCount returns the number of selected records.
func (c *Chat) SelectionCount() int {
	return len(c.selected)
}

// =============================================================================
// CONTEXT MENU
// =============================================================================

// OpenMenu opens the context menu on the given record, replacing any menu
// already open. Opening on an unknown identifier is a no-op.
func (c *Chat) OpenMenu(id string) {
	if !c.Has(id) {
		return
	}
	c.menuTarget = id
}

// CloseMenu closes the context menu.
func (c *Chat) CloseMenu() {
	c.menuTarget = ""
}

// MenuTarget returns the identifier of the record the open context menu
// refers to, or "" when no menu is open.
func (c *Chat) MenuTarget() string {
	return c.menuTarget
}

// =============================================================================
// GENERATION GATE
// =============================================================================

// Gate returns the session's single-in-flight generation gate.
func (c *Chat) Gate() *Gate {
	return &c.gate
}

// =============================================================================
// EXPORT
// =============================================================================

// Export renders the transcript as text: one line per record formatted as
// "[time] ROLE: content" in creation order, records separated by a blank
// line. Returns ErrEmptySession when there is nothing to export.
func (c *Chat) Export() (string, error) {
	if len(c.records) == 0 {
		return "", ErrEmptySession
	}

	var b strings.Builder
	for i, rec := range c.records {
		if i > 0 {
			b.WriteString("\n\n")
		}
		b.WriteString("[")
		b.WriteString(rec.CreatedAt.Format(exportTimeLayout))
		b.WriteString("] ")
		b.WriteString(rec.Role.DisplayName())
		b.WriteString(": ")
		b.WriteString(rec.Content)
	}
	b.WriteString("\n")
	return b.String(), nil
}
