// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// cli.go - CLI parsing and command dispatch for aistudio.
package cli

import (
	"os"
	"strings"
)

// Version information (can be overridden at build time)
var (
	Version   = "0.1.0"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// Command represents the CLI command to execute.
type Command int

const (
	CmdTUI Command = iota
	CmdAsk
	CmdChat
	CmdCode
	CmdImage
	CmdModels
	CmdConfig
	CmdSetup
	CmdVersion
	CmdHelp
)

// Args holds parsed CLI arguments.
type Args struct {
	// Global flags
	Quiet    bool
	Verbose  bool
	JSON     bool
	Provider string
	Model    string

	// Command-specific
	Query      string
	Count      int    // image: images per batch
	OutFile    string // code/image: explicit output path
	Subcommand string
	ConfigKey  string
	ConfigVal  string

	// Raw args (remaining after flag parsing)
	Raw []string
}

const usageText = `aistudio - terminal client for the AI Studio backend

Aistudio talks to a local AI Studio gateway and drives OpenAI or Gemini
models for chat, one-shot questions, code generation, and images.

Usage:
  aistudio                    Start TUI (default)
  aistudio ask "question"     Ask a single question
  aistudio chat               Interactive chat
  aistudio code "prompt"      Generate code from a prompt
  aistudio image "prompt"     Generate images from a prompt
  aistudio models             List models for the active provider
  aistudio config [show|set]  Configuration
  aistudio setup              First-run wizard
  aistudio version            Show version
  aistudio help               Show this help

Global flags:
  --provider NAME    Override the configured provider (openai, gemini)
  --model NAME       Override the configured model
  -v, --verbose      Verbose request logging
  -q, --quiet        Suppress non-essential output
  --json             Machine-readable output where supported

Command flags:
  ask, code, image:
    -f, --file PATH  Read the prompt from a file
  code:
    -o, --out PATH   Write the generated code to PATH
  image:
    -n, --count N    Images per batch (1-5, default from config)
    -o, --out PATH   Write the first image to PATH

Examples:
  aistudio ask "explain goroutines in two sentences"
  aistudio code "binary search in python" -o search.py
  aistudio image "a lighthouse at dusk" --count 3
  aistudio models --json
  aistudio config set backend.provider gemini

Configuration:
  File:        ~/.aistudio/config.toml
  Environment: AISTUDIO_BASE_URL, AISTUDIO_PROVIDER, AISTUDIO_API_KEY,
               AISTUDIO_MODEL, AISTUDIO_SEAL_SECRET
`

// Parse reads os.Args and returns the command plus parsed arguments.
func Parse() (Command, Args) {
	args := os.Args[1:]

	remaining, parsedArgs := parseGlobalFlags(args)

	// No remaining args: default to TUI.
	if len(remaining) == 0 {
		return CmdTUI, parsedArgs
	}

	cmd := strings.ToLower(remaining[0])
	remaining = remaining[1:]
	parsedArgs.Raw = remaining

	switch cmd {
	case "tui":
		return CmdTUI, parsedArgs

	case "ask":
		parsePromptArgs(&parsedArgs, remaining)
		return CmdAsk, parsedArgs

	case "chat":
		return CmdChat, parsedArgs

	case "code":
		parsePromptArgs(&parsedArgs, remaining)
		return CmdCode, parsedArgs

	case "image", "images":
		parseImageArgs(&parsedArgs, remaining)
		return CmdImage, parsedArgs

	case "models", "model-list":
		return CmdModels, parsedArgs

	case "config":
		parseConfigArgs(&parsedArgs, remaining)
		return CmdConfig, parsedArgs

	case "setup", "init", "wizard":
		return CmdSetup, parsedArgs

	case "version", "--version", "-V":
		return CmdVersion, parsedArgs

	case "help", "--help", "-h":
		return CmdHelp, parsedArgs

	default:
		// Unknown first argument: treat it as an ask query.
		parsePromptArgs(&parsedArgs, append([]string{cmd}, remaining...))
		return CmdAsk, parsedArgs
	}
}

// parseGlobalFlags strips global flags and returns the rest.
func parseGlobalFlags(args []string) ([]string, Args) {
	var remaining []string
	parsedArgs := Args{}

	i := 0
	for i < len(args) {
		arg := args[i]

		switch arg {
		case "-q", "--quiet":
			parsedArgs.Quiet = true
		case "-v", "--verbose":
			parsedArgs.Verbose = true
		case "--json":
			parsedArgs.JSON = true
		case "--provider":
			if i+1 < len(args) {
				i++
				parsedArgs.Provider = args[i]
			}
		case "--model":
			if i+1 < len(args) {
				i++
				parsedArgs.Model = args[i]
			}
		default:
			switch {
			case strings.HasPrefix(arg, "--provider="):
				parsedArgs.Provider = strings.TrimPrefix(arg, "--provider=")
			case strings.HasPrefix(arg, "--model="):
				parsedArgs.Model = strings.TrimPrefix(arg, "--model=")
			default:
				remaining = append(remaining, arg)
			}
		}
		i++
	}

	return remaining, parsedArgs
}

// parsePromptArgs collects flags and joins the rest into the query.
func parsePromptArgs(args *Args, remaining []string) {
	var query []string

	i := 0
	for i < len(remaining) {
		arg := remaining[i]

		switch arg {
		case "-f", "--file":
			if i+1 < len(remaining) {
				i++
				if data, err := os.ReadFile(remaining[i]); err == nil {
					query = append(query, string(data))
				}
			}
		case "-o", "--out":
			if i+1 < len(remaining) {
				i++
				args.OutFile = remaining[i]
			}
		default:
			switch {
			case strings.HasPrefix(arg, "--file="):
				if data, err := os.ReadFile(strings.TrimPrefix(arg, "--file=")); err == nil {
					query = append(query, string(data))
				}
			case strings.HasPrefix(arg, "--out="):
				args.OutFile = strings.TrimPrefix(arg, "--out=")
			default:
				query = append(query, arg)
			}
		}
		i++
	}

	args.Query = strings.TrimSpace(strings.Join(query, " "))
}

// parseImageArgs handles the image command's count flag on top of the
// shared prompt parsing.
func parseImageArgs(args *Args, remaining []string) {
	var rest []string

	i := 0
	for i < len(remaining) {
		arg := remaining[i]

		switch arg {
		case "-n", "--count":
			if i+1 < len(remaining) {
				i++
				args.Count = atoiBounded(remaining[i], 1, 5)
			}
		default:
			if strings.HasPrefix(arg, "--count=") {
				args.Count = atoiBounded(strings.TrimPrefix(arg, "--count="), 1, 5)
			} else {
				rest = append(rest, arg)
			}
		}
		i++
	}

	parsePromptArgs(args, rest)
}

// parseConfigArgs handles "config [show|set|path] [key] [value]".
func parseConfigArgs(args *Args, remaining []string) {
	if len(remaining) == 0 {
		args.Subcommand = "show"
		return
	}
	args.Subcommand = strings.ToLower(remaining[0])
	if len(remaining) > 1 {
		args.ConfigKey = remaining[1]
	}
	if len(remaining) > 2 {
		args.ConfigVal = strings.Join(remaining[2:], " ")
	}
}

// atoiBounded parses n and clamps it into [min, max]. Bad input yields 0
// so the caller falls back to the configured default.
func atoiBounded(s string, min, max int) int {
	n := 0
	for _, r := range s {
		if r < '0' || r > '9' {
			return 0
		}
		n = n*10 + int(r-'0')
	}
	if n < min {
		return 0
	}
	if n > max {
		return max
	}
	return n
}
