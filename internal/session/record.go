// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package session

import (
	"time"

	"github.com/google/uuid"
)

// Role identifies the author of a chat record.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// DisplayName returns the role name for transcript rendering.
func (r Role) DisplayName() string {
	switch r {
	case RoleUser:
		return "USER"
	case RoleAssistant:
		return "ASSISTANT"
	default:
		return string(r)
	}
}

// Record is a single chat interaction: one user message or one assistant
// reply. Identity and role are fixed at creation; content and timestamp may
// be overwritten in place when a regeneration completes for the same record.
type Record struct {
	ID        string
	Role      Role
	Content   string
	CreatedAt time.Time
}

// NewRecord creates a record with a fresh identifier and the current time.
func NewRecord(role Role, content string) Record {
	return Record{
		ID:        uuid.NewString(),
		Role:      role,
		Content:   content,
		CreatedAt: time.Now(),
	}
}

// CodeRecord is one completed code generation. Records are immutable after
// creation and ordered newest-first.
type CodeRecord struct {
	ID        string
	Prompt    string
	Code      string // fence-stripped body
	Language  string
	CreatedAt time.Time
}

// NewCodeRecord creates a code record with a fresh identifier.
func NewCodeRecord(prompt, code, language string) CodeRecord {
	return CodeRecord{
		ID:        uuid.NewString(),
		Prompt:    prompt,
		Code:      code,
		Language:  language,
		CreatedAt: time.Now(),
	}
}

// ImageHandle is the locally-allocated displayable resource behind an image
// record. Revoke releases it; Location is where the decoded image lives.
type ImageHandle interface {
	Location() string
	Revoke()
}

// ImageRecord is one generated image. Records are immutable after creation
// and ordered newest-first; the handle is revoked when the record goes away.
type ImageRecord struct {
	ID        string
	Prompt    string
	Handle    ImageHandle
	CreatedAt time.Time
}

// NewImageRecord creates an image record owning the given handle.
func NewImageRecord(prompt string, handle ImageHandle) ImageRecord {
	return ImageRecord{
		ID:        uuid.NewString(),
		Prompt:    prompt,
		Handle:    handle,
		CreatedAt: time.Now(),
	}
}
