// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package components provides the shared UI components for the aistudio TUI.
package components

import (
	"fmt"
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/formatters"
	"github.com/alecthomas/chroma/v2/lexers"
	chromaStyles "github.com/alecthomas/chroma/v2/styles"
	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/aistudio-tui/internal/ui/styles"
)

// =============================================================================
// CODE BLOCK COMPONENT
// =============================================================================

// CodeBlock renders generated code with syntax highlighting, line numbers,
// and a language badge header.
type CodeBlock struct {
	Language string
	Code     string
	MaxWidth int
}

// NewCodeBlock creates a code block for the given language and source.
func NewCodeBlock(language, code string) CodeBlock {
	return CodeBlock{
		Language: language,
		Code:     code,
		MaxWidth: 80,
	}
}

// Render produces the styled terminal output for the code block.
func (cb CodeBlock) Render(theme *styles.Theme) string {
	if strings.TrimSpace(cb.Code) == "" {
		return ""
	}

	highlighted := highlightCode(cb.Code, cb.Language)
	lines := strings.Split(strings.TrimRight(highlighted, "\n"), "\n")

	// Line number gutter width scales with the line count.
	gutterWidth := len(fmt.Sprintf("%d", len(lines)))
	numStyle := lipgloss.NewStyle().Foreground(styles.TextMuted)

	var body strings.Builder
	for i, line := range lines {
		body.WriteString(numStyle.Render(fmt.Sprintf("%*d ", gutterWidth, i+1)))
		body.WriteString(line)
		if i < len(lines)-1 {
			body.WriteString("\n")
		}
	}

	badge := theme.CodeLangBadge.Render(" " + cb.Language + " ")
	block := theme.CodeBlock.MaxWidth(cb.MaxWidth).Render(body.String())

	return badge + "\n" + block
}

// highlightCode applies chroma syntax highlighting. On any failure the raw
// code is returned unstyled so rendering never blocks on the highlighter.
func highlightCode(code, language string) string {
	lexer := lexers.Get(language)
	if lexer == nil {
		lexer = lexers.Analyse(code)
	}
	if lexer == nil {
		lexer = lexers.Fallback
	}
	lexer = chroma.Coalesce(lexer)

	style := chromaStyles.Get("monokai")
	if style == nil {
		style = chromaStyles.Fallback
	}

	formatter := formatters.Get("terminal256")
	if formatter == nil {
		formatter = formatters.Fallback
	}

	iterator, err := lexer.Tokenise(nil, code)
	if err != nil {
		return code
	}

	var buf strings.Builder
	if err := formatter.Format(&buf, style, iterator); err != nil {
		return code
	}
	return buf.String()
}
