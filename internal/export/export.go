// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package export writes the durable artifacts aistudio produces: transcript
// text files, generated code files, and generated image files. These
// downloads are the only state that survives the process; everything else is
// in-memory only.
package export

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"time"

	"github.com/jeranaias/aistudio-tui/internal/lang"
	"github.com/jeranaias/aistudio-tui/internal/util"
)

// Options configures where artifacts land.
type Options struct {
	// OutputDir is the directory where files are saved.
	// Default: current working directory.
	OutputDir string

	// OpenAfterExport opens the file in the default application.
	OpenAfterExport bool
}

// DefaultOptions returns default export options.
func DefaultOptions() *Options {
	return &Options{OutputDir: "."}
}

// WriteTranscript saves an exported chat transcript as
// chat-transcript-<unix>.txt and returns the path.
func WriteTranscript(text string, opts *Options) (string, error) {
	return write(fmt.Sprintf("chat-transcript-%d.txt", time.Now().Unix()), []byte(text), opts)
}

// WriteCode saves a generated code body as generated-code-<unix>.<ext>,
// with the extension derived from the record's language tag.
func WriteCode(code, language string, opts *Options) (string, error) {
	name := fmt.Sprintf("generated-code-%d.%s", time.Now().Unix(), lang.Ext(language))
	return write(name, []byte(code+"\n"), opts)
}

// ImagePath returns the destination path for a downloaded image,
// generated-image-<unix>.png. The copy itself happens in the image store,
// which owns the bytes.
func ImagePath(opts *Options) string {
	if opts == nil {
		opts = DefaultOptions()
	}
	return filepath.Join(opts.OutputDir, fmt.Sprintf("generated-image-%d.png", time.Now().Unix()))
}

func write(name string, content []byte, opts *Options) (string, error) {
	if opts == nil {
		opts = DefaultOptions()
	}
	if err := os.MkdirAll(opts.OutputDir, 0755); err != nil {
		return "", fmt.Errorf("create output directory: %w", err)
	}

	path := filepath.Join(opts.OutputDir, name)
	if err := util.AtomicWriteFile(path, content, 0644); err != nil {
		return "", fmt.Errorf("write artifact: %w", err)
	}

	if opts.OpenAfterExport {
		if err := openFile(path); err != nil {
			// Non-fatal: the file was still created.
			fmt.Printf("Warning: could not open file: %v\n", err)
		}
	}
	return path, nil
}

// openFile opens a file in the platform's default application.
func openFile(path string) error {
	var cmd *exec.Cmd

	switch runtime.GOOS {
	case "windows":
		cmd = exec.Command("cmd", "/c", "start", `""`, path)
	case "darwin":
		cmd = exec.Command("open", path)
	case "linux":
		cmd = exec.Command("xdg-open", path)
	default:
		return fmt.Errorf("unsupported platform: %s", runtime.GOOS)
	}

	return cmd.Start()
}
