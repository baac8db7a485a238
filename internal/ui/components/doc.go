// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package components provides the shared UI components used by the mode
// panels: syntax-highlighted code blocks, spinners, transient notices,
// context menus, and the status bar.
package components
