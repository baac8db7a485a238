// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"os"
	"testing"
)

func TestParseDefaultsToTUI(t *testing.T) {
	os.Args = []string{"aistudio"}
	cmd, _ := Parse()
	if cmd != CmdTUI {
		t.Errorf("expected CmdTUI, got %v", cmd)
	}
}

func TestParseAskWithQuery(t *testing.T) {
	os.Args = []string{"aistudio", "ask", "what", "is", "a", "mutex"}
	cmd, args := Parse()
	if cmd != CmdAsk {
		t.Fatalf("expected CmdAsk, got %v", cmd)
	}
	if args.Query != "what is a mutex" {
		t.Errorf("query = %q", args.Query)
	}
}

func TestParseUnknownCommandBecomesAsk(t *testing.T) {
	os.Args = []string{"aistudio", "why", "is", "the", "sky", "blue"}
	cmd, args := Parse()
	if cmd != CmdAsk {
		t.Fatalf("expected CmdAsk, got %v", cmd)
	}
	if args.Query != "why is the sky blue" {
		t.Errorf("query = %q", args.Query)
	}
}

func TestParseGlobalFlags(t *testing.T) {
	os.Args = []string{"aistudio", "--provider", "gemini", "--model=gemini-2.0-flash", "-v", "models", "--json"}
	cmd, args := Parse()
	if cmd != CmdModels {
		t.Fatalf("expected CmdModels, got %v", cmd)
	}
	if args.Provider != "gemini" {
		t.Errorf("provider = %q", args.Provider)
	}
	if args.Model != "gemini-2.0-flash" {
		t.Errorf("model = %q", args.Model)
	}
	if !args.Verbose || !args.JSON {
		t.Errorf("verbose=%v json=%v", args.Verbose, args.JSON)
	}
}

func TestParseImageCount(t *testing.T) {
	os.Args = []string{"aistudio", "image", "--count", "3", "a", "lighthouse"}
	cmd, args := Parse()
	if cmd != CmdImage {
		t.Fatalf("expected CmdImage, got %v", cmd)
	}
	if args.Count != 3 {
		t.Errorf("count = %d", args.Count)
	}
	if args.Query != "a lighthouse" {
		t.Errorf("query = %q", args.Query)
	}
}

func TestParseImageCountOutOfRange(t *testing.T) {
	os.Args = []string{"aistudio", "image", "--count=9", "x"}
	_, args := Parse()
	if args.Count != 5 {
		t.Errorf("count should clamp to 5, got %d", args.Count)
	}

	os.Args = []string{"aistudio", "image", "--count=bogus", "x"}
	_, args = Parse()
	if args.Count != 0 {
		t.Errorf("bad count should fall back to 0, got %d", args.Count)
	}
}

func TestParseCodeOutFlag(t *testing.T) {
	os.Args = []string{"aistudio", "code", "-o", "search.py", "binary", "search"}
	cmd, args := Parse()
	if cmd != CmdCode {
		t.Fatalf("expected CmdCode, got %v", cmd)
	}
	if args.OutFile != "search.py" {
		t.Errorf("out = %q", args.OutFile)
	}
	if args.Query != "binary search" {
		t.Errorf("query = %q", args.Query)
	}
}

func TestParseConfigSet(t *testing.T) {
	os.Args = []string{"aistudio", "config", "set", "backend.provider", "openai"}
	cmd, args := Parse()
	if cmd != CmdConfig {
		t.Fatalf("expected CmdConfig, got %v", cmd)
	}
	if args.Subcommand != "set" || args.ConfigKey != "backend.provider" || args.ConfigVal != "openai" {
		t.Errorf("sub=%q key=%q val=%q", args.Subcommand, args.ConfigKey, args.ConfigVal)
	}
}

func TestParseConfigDefaultsToShow(t *testing.T) {
	os.Args = []string{"aistudio", "config"}
	_, args := Parse()
	if args.Subcommand != "show" {
		t.Errorf("subcommand = %q", args.Subcommand)
	}
}

func TestAtoiBounded(t *testing.T) {
	cases := []struct {
		in   string
		want int
	}{
		{"1", 1},
		{"5", 5},
		{"7", 5},
		{"0", 0},
		{"-2", 0},
		{"abc", 0},
		{"", 0},
	}
	for _, tc := range cases {
		if got := atoiBounded(tc.in, 1, 5); got != tc.want {
			t.Errorf("atoiBounded(%q) = %d, want %d", tc.in, got, tc.want)
		}
	}
}
