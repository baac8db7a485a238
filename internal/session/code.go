// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package session

// Code holds the code-generation session: a newest-first, append-only log of
// generation records. Records never mutate after creation and deletion is
// not offered.
type Code struct {
	records []CodeRecord
	gate    Gate
}

// NewCode creates an empty code session.
func NewCode() *Code {
	return &Code{}
}

// Prepend adds a record at the head of the log (most recent first).
func (c *Code) Prepend(rec CodeRecord) {
	c.records = append([]CodeRecord{rec}, c.records...)
}

// Records returns a copy of the log, newest first.
func (c *Code) Records() []CodeRecord {
	out := make([]CodeRecord, len(c.records))
	copy(out, c.records)
	return out
}

// Len returns the number of records.
func (c *Code) Len() int {
	return len(c.records)
}

// IsEmpty reports whether the session has no records.
func (c *Code) IsEmpty() bool {
	return len(c.records) == 0
}

// Clear empties the log. Triggered only by the broadcast new-session signal.
func (c *Code) Clear() {
	c.records = nil
}

// Gate returns the session's single-in-flight generation gate.
func (c *Code) Gate() *Gate {
	return &c.gate
}
