// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package chatpanel implements the Chat tab: a multi-turn conversation view
// backed by an append-only session log. The panel owns the input area, the
// transcript viewport, record selection, and the per-record context menu.
//
// One generation may be in flight at a time; the session gate enforces it.
// Regeneration replays the transcript strictly before the target assistant
// record and overwrites that record in place when the response arrives. A
// response for a record deleted in the meantime is discarded.
package chatpanel
