// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package styles provides the visual styling system for the aistudio TUI.
package styles

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Theme holds all the styled components for the application.
// It detects the terminal's color capability and adjusts accordingly.
type Theme struct {
	// Terminal capabilities
	IsDark       bool
	HasTrueColor bool
	ColorProfile termenv.Profile

	// ==========================================================================
	// TAB BAR STYLES
	// ==========================================================================

	TabBar      lipgloss.Style
	Tab         lipgloss.Style
	TabActive   lipgloss.Style
	TabDisabled lipgloss.Style

	// ==========================================================================
	// MESSAGE STYLES
	// ==========================================================================

	UserBubble      lipgloss.Style
	AssistantBubble lipgloss.Style
	SelectedRecord  lipgloss.Style
	Timestamp       lipgloss.Style

	// ==========================================================================
	// INPUT AREA STYLES
	// ==========================================================================

	InputContainer   lipgloss.Style
	InputPrompt      lipgloss.Style
	InputPlaceholder lipgloss.Style

	// ==========================================================================
	// SIDEBAR STYLES
	// ==========================================================================

	Sidebar          lipgloss.Style
	SidebarTitle     lipgloss.Style
	SidebarLabel     lipgloss.Style
	ModelItem        lipgloss.Style
	ModelItemActive  lipgloss.Style
	ModelItemBest    lipgloss.Style
	ProviderActive   lipgloss.Style
	ProviderInactive lipgloss.Style

	// ==========================================================================
	// STATUS AND NOTICE STYLES
	// ==========================================================================

	StatusBar    lipgloss.Style
	ShortcutKey  lipgloss.Style
	ShortcutDesc lipgloss.Style
	NoticeInfo   lipgloss.Style
	NoticeWarn   lipgloss.Style
	NoticeError  lipgloss.Style
	Spinner      lipgloss.Style

	// ==========================================================================
	// CODE AND MENU STYLES
	// ==========================================================================

	CodeBlock     lipgloss.Style
	CodeLangBadge lipgloss.Style
	Menu          lipgloss.Style
	MenuItem      lipgloss.Style
	MenuSelected  lipgloss.Style

	// ==========================================================================
	// GALLERY STYLES
	// ==========================================================================

	ImageCard   lipgloss.Style
	ImagePrompt lipgloss.Style
	FeatureCard lipgloss.Style
}

// NewTheme creates a theme tuned to the terminal's capabilities.
func NewTheme() *Theme {
	colorProfile := termenv.ColorProfile()

	t := &Theme{
		IsDark:       termenv.HasDarkBackground(),
		HasTrueColor: colorProfile == termenv.TrueColor,
		ColorProfile: colorProfile,
	}

	t.initStyles()
	return t
}

// initStyles initializes all the lip gloss styles.
func (t *Theme) initStyles() {
	// Tab bar
	t.TabBar = lipgloss.NewStyle().
		Background(SurfaceDim).
		Padding(0, 1)

	t.Tab = lipgloss.NewStyle().
		Foreground(TextSecondary).
		Padding(0, 2)

	t.TabActive = lipgloss.NewStyle().
		Bold(true).
		Foreground(Purple).
		Underline(true).
		Padding(0, 2)

	t.TabDisabled = lipgloss.NewStyle().
		Foreground(TextMuted).
		Padding(0, 2)

	// Messages
	t.UserBubble = lipgloss.NewStyle().
		Foreground(Cyan).
		Bold(true)

	t.AssistantBubble = lipgloss.NewStyle().
		Foreground(TextPrimary)

	t.SelectedRecord = lipgloss.NewStyle().
		Background(SurfaceBright)

	t.Timestamp = lipgloss.NewStyle().
		Foreground(TextSecondary)

	// Input
	t.InputContainer = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(Border).
		Padding(0, 1)

	t.InputPrompt = lipgloss.NewStyle().
		Foreground(Purple).
		Bold(true)

	t.InputPlaceholder = lipgloss.NewStyle().
		Foreground(TextMuted)

	// Sidebar
	t.Sidebar = lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderLeft(true).
		BorderForeground(Border).
		Padding(0, 1)

	t.SidebarTitle = lipgloss.NewStyle().
		Bold(true).
		Foreground(Purple)

	t.SidebarLabel = lipgloss.NewStyle().
		Foreground(TextSecondary)

	t.ModelItem = lipgloss.NewStyle().
		Foreground(TextPrimary)

	t.ModelItemActive = lipgloss.NewStyle().
		Bold(true).
		Foreground(Cyan)

	t.ModelItemBest = lipgloss.NewStyle().
		Foreground(Emerald)

	t.ProviderActive = lipgloss.NewStyle().
		Bold(true).
		Foreground(Purple)

	t.ProviderInactive = lipgloss.NewStyle().
		Foreground(TextSecondary)

	// Status bar and notices
	t.StatusBar = lipgloss.NewStyle().
		Background(SurfaceDim).
		Foreground(TextSecondary).
		Padding(0, 1)

	t.ShortcutKey = lipgloss.NewStyle().
		Bold(true).
		Foreground(Cyan)

	t.ShortcutDesc = lipgloss.NewStyle().
		Foreground(TextSecondary)

	t.NoticeInfo = lipgloss.NewStyle().
		Foreground(Emerald)

	t.NoticeWarn = lipgloss.NewStyle().
		Foreground(Amber)

	t.NoticeError = lipgloss.NewStyle().
		Bold(true).
		Foreground(Rose)

	t.Spinner = lipgloss.NewStyle().
		Foreground(Purple)

	// Code and menus
	t.CodeBlock = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(Border).
		Padding(0, 1)

	t.CodeLangBadge = lipgloss.NewStyle().
		Bold(true).
		Foreground(Amber)

	t.Menu = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(Purple).
		Padding(0, 1)

	t.MenuItem = lipgloss.NewStyle().
		Foreground(TextPrimary)

	t.MenuSelected = lipgloss.NewStyle().
		Bold(true).
		Foreground(Purple).
		Background(SurfaceBright)

	// Gallery
	t.ImageCard = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(Border).
		Padding(0, 1)

	t.ImagePrompt = lipgloss.NewStyle().
		Italic(true).
		Foreground(TextSecondary)

	t.FeatureCard = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(Purple).
		Padding(0, 1).
		Width(40)
}
