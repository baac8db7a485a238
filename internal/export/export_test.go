// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package export

import (
	"os"
	"path/filepath"
	"regexp"
	"testing"
)

func TestWriteTranscript(t *testing.T) {
	dir := t.TempDir()

	path, err := WriteTranscript("[10:00:00] USER: hi\n", &Options{OutputDir: dir})
	if err != nil {
		t.Fatalf("WriteTranscript failed: %v", err)
	}

	if ok, _ := regexp.MatchString(`chat-transcript-\d+\.txt$`, path); !ok {
		t.Errorf("unexpected artifact name: %s", path)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile failed: %v", err)
	}
	if string(data) != "[10:00:00] USER: hi\n" {
		t.Errorf("content = %q", data)
	}
}

func TestWriteCodeExtension(t *testing.T) {
	dir := t.TempDir()

	tests := map[string]string{
		"python":  `generated-code-\d+\.py$`,
		"csharp":  `generated-code-\d+\.cs$`,
		"unknown": `generated-code-\d+\.txt$`,
	}
	for language, pattern := range tests {
		path, err := WriteCode("code body", language, &Options{OutputDir: dir})
		if err != nil {
			t.Fatalf("WriteCode(%s) failed: %v", language, err)
		}
		if ok, _ := regexp.MatchString(pattern, path); !ok {
			t.Errorf("WriteCode(%s) produced %s, want match %s", language, path, pattern)
		}
	}
}

func TestWriteCreatesOutputDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "out")
	if _, err := WriteTranscript("x", &Options{OutputDir: dir}); err != nil {
		t.Fatalf("WriteTranscript into missing dir failed: %v", err)
	}
}

func TestImagePath(t *testing.T) {
	p := ImagePath(&Options{OutputDir: "/tmp/out"})
	if ok, _ := regexp.MatchString(`^/tmp/out/generated-image-\d+\.png$`, p); !ok {
		t.Errorf("ImagePath = %s", p)
	}
}
