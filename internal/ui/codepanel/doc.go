// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package codepanel implements the Code tab: single-prompt code generation
// with a newest-first list of results. Responses go through two-stage
// language detection (fence annotation first, then prompt keywords) before
// the fence-stripped body is stored and highlighted.
package codepanel
