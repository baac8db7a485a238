// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package session owns the per-mode conversation state.
//
// Each interaction mode holds an independent session: Chat keeps an ordered,
// append-only (with deletion) log of user/assistant records plus transient
// selection and context-menu state; Code and Image keep newest-first
// append-only logs of generation records. All sessions live purely in memory
// and are lost when the process exits.
//
// # Invariants
//
//   - The selection set only ever references records currently in the log;
//     deleting a record prunes it from the selection in the same step.
//   - The context menu targets at most one record and closes automatically
//     when that record is deleted.
//   - Each session carries a single-in-flight generation gate; a second
//     generation is never started while one is outstanding.
//   - Every image handle attached to a record is revoked when the record is
//     removed or the session is cleared.
package session
