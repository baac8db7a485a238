// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package lang

import "testing"

func TestDetectFenceAnnotationWins(t *testing.T) {
	// A fence annotation beats any prompt content.
	response := "```python\nprint('hi')\n```"
	if got := Detect(response, "write me some java code"); got != "python" {
		t.Errorf("Detect = %q, want %q", got, "python")
	}
}

func TestDetectFenceAliases(t *testing.T) {
	tests := []struct {
		fence string
		want  string
	}{
		{"c++", "cpp"},
		{"c#", "csharp"},
		{"js", "javascript"},
		{"ts", "typescript"},
		{"py", "python"},
		{"golang", "go"},
		{"rust", "rust"},
	}

	for _, tt := range tests {
		t.Run(tt.fence, func(t *testing.T) {
			response := "```" + tt.fence + "\ncode\n```"
			if got := Detect(response, ""); got != tt.want {
				t.Errorf("Detect(fence %q) = %q, want %q", tt.fence, got, tt.want)
			}
		})
	}
}

func TestDetectFromPrompt(t *testing.T) {
	tests := []struct {
		name   string
		prompt string
		want   string
	}{
		{"python keyword", "write a Python script", "python"},
		{"java keyword", "a Java class for parsing", "java"},
		{"first match wins over later keywords", "python or javascript, your pick", "python"},
		{"go keyword", "implement this in go please", "go"},
		{"go at end of prompt", "rewrite this in go", "go"},
		{"javascript is not java", "write a javascript function", "javascript"},
		{"algorithm does not contain go", "write a sorting algorithm", "javascript"},
		{"c++ surface form", "needs c++ templates", "cpp"},
		{"c# surface form", "parse this in c#", "csharp"},
		{"golang maps to go", "a golang http server", "go"},
		{"unknown keyword falls back", "write something in rust", "javascript"},
		{"no keyword falls back", "write a sorting function", "javascript"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Unfenced response: only the prompt drives detection.
			if got := Detect("plain code body", tt.prompt); got != tt.want {
				t.Errorf("Detect(prompt %q) = %q, want %q", tt.prompt, got, tt.want)
			}
		})
	}
}

func TestFenceAnnotationAbsent(t *testing.T) {
	if got := FenceAnnotation("no fences here"); got != "" {
		t.Errorf("FenceAnnotation = %q, want empty", got)
	}
	if got := FenceAnnotation("```\nbare fence\n```"); got != "" {
		t.Errorf("FenceAnnotation on bare fence = %q, want empty", got)
	}
}

func TestStripFences(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"annotated fence", "```python\nprint('hi')\n```", "print('hi')"},
		{"bare fence", "```\ncode\n```", "code"},
		{"no fence passes through", "  plain code  ", "plain code"},
		{"multiline body", "```go\nfunc a() {}\n\nfunc b() {}\n```", "func a() {}\n\nfunc b() {}"},
		{"missing closing fence", "```js\nlet x = 1", "let x = 1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := StripFences(tt.input); got != tt.want {
				t.Errorf("StripFences = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestExt(t *testing.T) {
	tests := map[string]string{
		"javascript": "js",
		"typescript": "ts",
		"python":     "py",
		"java":       "java",
		"cpp":        "cpp",
		"csharp":     "cs",
		"ruby":       "rb",
		"go":         "go",
		"php":        "php",
		"brainfuck":  "txt",
		"":           "txt",
	}

	for language, want := range tests {
		if got := Ext(language); got != want {
			t.Errorf("Ext(%q) = %q, want %q", language, got, want)
		}
	}
}

func TestKnown(t *testing.T) {
	if !Known("python") {
		t.Error("Known(python) = false, want true")
	}
	if Known("not-a-language-xyz") {
		t.Error("Known(not-a-language-xyz) = true, want false")
	}
}
