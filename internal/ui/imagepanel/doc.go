// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package imagepanel implements the Image tab: prompt-driven image
// generation with a 1-5 batch count, a newest-first gallery, and per-image
// download. Decoded images live in a temp-backed store; their handles are
// revoked when records leave the session.
package imagepanel
