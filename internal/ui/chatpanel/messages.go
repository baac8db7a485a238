// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chatpanel

import "github.com/jeranaias/aistudio-tui/internal/signal"

// ResponseMsg carries the outcome of a chat generation.
type ResponseMsg struct {
	Content string
	Err     error
}

// RegenerateMsg carries the outcome of a regeneration. RecordID names the
// assistant record whose content is to be overwritten.
type RegenerateMsg struct {
	RecordID string
	Content  string
	Err      error
}

// SignalMsg delivers a broadcast signal while this panel is mounted.
type SignalMsg struct {
	Kind signal.Kind
}

// ExportedMsg reports the result of writing the transcript artifact.
type ExportedMsg struct {
	Path string
	Err  error
}
