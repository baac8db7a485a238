// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package lang derives a language tag for generated code.
//
// Detection is a fixed two-stage policy. If the response carries a fenced
// code block annotation ("```python"), that annotation wins, with known
// aliases normalized. Otherwise the language is inferred from keyword
// presence in the prompt text using a first-match-wins priority list,
// falling back to javascript.
package lang

import (
	"strings"

	"github.com/alecthomas/chroma/v2/lexers"
)

// fenceAliases normalizes fence annotations whose spelling differs from the
// canonical tag used for storage and file extensions.
var fenceAliases = map[string]string{
	"c++":    "cpp",
	"c#":     "csharp",
	"js":     "javascript",
	"ts":     "typescript",
	"py":     "python",
	"rb":     "ruby",
	"golang": "go",
}

// promptKeywords is the inference priority list applied to the prompt text.
// First match wins; order matters. Keywords match on word boundaries so
// "java" never fires inside "javascript" and "go" never fires inside
// "algorithm". Surface forms like "c++" and "c#" map to canonical tags.
var promptKeywords = []struct {
	word string
	tag  string
}{
	{"python", "python"},
	{"java", "java"},
	{"c++", "cpp"},
	{"cpp", "cpp"},
	{"c#", "csharp"},
	{"csharp", "csharp"},
	{"ruby", "ruby"},
	{"golang", "go"},
	{"go", "go"},
	{"php", "php"},
	{"typescript", "typescript"},
	{"javascript", "javascript"},
}

// DefaultLanguage is used when neither stage produces a match.
const DefaultLanguage = "javascript"

// extensions maps canonical language tags to file extensions for saved code.
var extensions = map[string]string{
	"javascript": "js",
	"typescript": "ts",
	"python":     "py",
	"java":       "java",
	"cpp":        "cpp",
	"csharp":     "cs",
	"ruby":       "rb",
	"go":         "go",
	"php":        "php",
}

// Detect returns the language tag for a generated response.
// response is the raw backend output (possibly fenced); prompt is the user's
// request text.
func Detect(response, prompt string) string {
	if tag := FenceAnnotation(response); tag != "" {
		return tag
	}
	return fromPrompt(prompt)
}

// FenceAnnotation extracts and normalizes the language annotation of the
// first fenced code block in text, or returns "" if there is none.
func FenceAnnotation(text string) string {
	trimmed := strings.TrimSpace(text)
	idx := strings.Index(trimmed, "```")
	if idx < 0 {
		return ""
	}
	rest := trimmed[idx+3:]
	end := strings.IndexByte(rest, '\n')
	if end < 0 {
		end = len(rest)
	}
	tag := strings.ToLower(strings.TrimSpace(rest[:end]))
	if tag == "" {
		return ""
	}
	if canonical, ok := fenceAliases[tag]; ok {
		return canonical
	}
	return tag
}

// fromPrompt infers a language from keyword presence in the prompt,
// first match wins, defaulting to javascript.
func fromPrompt(prompt string) string {
	lower := strings.ToLower(prompt)
	for _, kw := range promptKeywords {
		if containsWord(lower, kw.word) {
			return kw.tag
		}
	}
	return DefaultLanguage
}

// containsWord reports whether word occurs in text without a letter, digit,
// or underscore directly adjacent on either side. text must already be
// lowercased.
func containsWord(text, word string) bool {
	for start := 0; ; {
		idx := strings.Index(text[start:], word)
		if idx < 0 {
			return false
		}
		idx += start
		end := idx + len(word)
		if (idx == 0 || !isWordByte(text[idx-1])) &&
			(end == len(text) || !isWordByte(text[end])) {
			return true
		}
		start = idx + 1
	}
}

func isWordByte(b byte) bool {
	return b == '_' || (b >= 'a' && b <= 'z') || (b >= '0' && b <= '9')
}

// Ext returns the file extension for saving code in the given language.
// Unknown languages fall back to "txt".
func Ext(language string) string {
	if ext, ok := extensions[strings.ToLower(language)]; ok {
		return ext
	}
	return "txt"
}

// StripFences removes a leading and trailing markdown code fence (including
// any annotation on the opening fence) from a generated response, returning
// the bare code body. Text without fences passes through trimmed.
func StripFences(text string) string {
	trimmed := strings.TrimSpace(text)
	if !strings.HasPrefix(trimmed, "```") {
		return trimmed
	}

	body := trimmed[3:]
	// Drop the annotation line.
	if nl := strings.IndexByte(body, '\n'); nl >= 0 {
		body = body[nl+1:]
	} else {
		return ""
	}
	// Drop the closing fence.
	if idx := strings.LastIndex(body, "```"); idx >= 0 {
		body = body[:idx]
	}
	return strings.TrimRight(body, "\n ")
}

// Known reports whether chroma has a real lexer for the tag, which decides
// whether highlighted rendering is attempted or the code is shown plain.
func Known(language string) bool {
	return lexers.Get(language) != nil
}
