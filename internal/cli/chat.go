// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// chat.go - Interactive chat REPL.
//
// Command: chat
// Short:   Multi-turn chat in the terminal without the full TUI
//
// Examples:
//   aistudio chat
//   aistudio chat --model gpt-4o
//
// REPL commands: /new clears the session, /export saves the transcript,
// /quit exits.
package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/peterh/liner"

	"github.com/jeranaias/aistudio-tui/internal/config"
	"github.com/jeranaias/aistudio-tui/internal/export"
	"github.com/jeranaias/aistudio-tui/internal/gateway"
	"github.com/jeranaias/aistudio-tui/internal/session"
)

// =============================================================================
// INPUT HISTORY
// =============================================================================

// chatInput provides input history and line editing for the chat REPL.
type chatInput struct {
	line        *liner.State
	historyFile string
}

func newChatInput() *chatInput {
	line := liner.NewLiner()
	line.SetCtrlCAborts(true)

	configDir, err := config.ConfigDir()
	if err != nil {
		configDir = os.TempDir()
	}

	c := &chatInput{
		line:        line,
		historyFile: filepath.Join(configDir, "chat_history"),
	}
	c.loadHistory()
	return c
}

func (c *chatInput) loadHistory() {
	if f, err := os.Open(c.historyFile); err == nil {
		c.line.ReadHistory(f)
		f.Close()
	}
}

func (c *chatInput) read(prompt string) (string, error) {
	input, err := c.line.Prompt(prompt)
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(input) != "" {
		c.line.AppendHistory(input)
	}
	return input, nil
}

func (c *chatInput) close() {
	if dir := filepath.Dir(c.historyFile); dir != "" {
		os.MkdirAll(dir, 0700)
	}
	if f, err := os.OpenFile(c.historyFile, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600); err == nil {
		c.line.WriteHistory(f)
		f.Close()
	}
	c.line.Close()
}

// =============================================================================
// REPL
// =============================================================================

// HandleChat runs the interactive chat REPL.
func HandleChat(args Args) int {
	if !IsTTY() {
		Errorf("chat needs an interactive terminal; use 'ask' for piped input")
		return 1
	}

	cfg, client, err := bootstrap(args)
	if err != nil {
		Errorf("%v", err)
		return 1
	}
	if err := requireComplete(cfg); err != nil {
		Errorf("%v", err)
		return 1
	}

	input := newChatInput()
	defer input.close()

	chat := session.NewChat()

	if !args.Quiet {
		fmt.Println(headingStyle.Render("aistudio chat"))
		fmt.Println(labelStyle.Render(fmt.Sprintf("%s / %s - /new, /export, /quit",
			cfg.Backend.Provider, cfg.Backend.Model)))
		fmt.Println()
	}

	for {
		text, err := input.read("> ")
		if err != nil {
			if errors.Is(err, liner.ErrPromptAborted) {
				fmt.Println()
				return 0
			}
			// EOF (ctrl+d) ends the session.
			fmt.Println()
			return 0
		}

		text = strings.TrimSpace(text)
		if text == "" {
			continue
		}

		if strings.HasPrefix(text, "/") {
			if done := handleChatCommand(chat, text); done {
				return 0
			}
			continue
		}

		chat.AppendUser(text)

		resp, err := client.Generate(context.Background(), gateway.GenerateRequest{
			Provider: cfg.Backend.Provider,
			Model:    cfg.Backend.Model,
			APIKey:   cfg.Backend.APIKey,
			Category: gateway.CategoryChat,
			Messages: transcriptMessages(chat),
		})
		if err != nil {
			Errorf("%s", gateway.Detail(err))
			continue
		}

		chat.AppendAssistant(resp.Output)
		fmt.Println()
		displayResponse(resp.Output)
		fmt.Println()
	}
}

// handleChatCommand runs a /command. Returns true when the REPL should
// exit.
func handleChatCommand(chat *session.Chat, text string) bool {
	switch strings.ToLower(strings.Fields(text)[0]) {
	case "/quit", "/q", "/exit":
		return true

	case "/new", "/clear":
		chat.Clear()
		fmt.Println(successStyle.Render("Started a new session."))
		return false

	case "/export", "/save":
		rendered, err := chat.Export()
		if err != nil {
			Errorf("nothing to export yet")
			return false
		}
		path, err := export.WriteTranscript(rendered, export.DefaultOptions())
		if err != nil {
			Errorf("export failed: %v", err)
			return false
		}
		fmt.Println(successStyle.Render("Saved " + path))
		return false

	default:
		Errorf("unknown command %q (try /new, /export, /quit)", text)
		return false
	}
}

// transcriptMessages converts the session log to wire messages.
func transcriptMessages(chat *session.Chat) []gateway.Message {
	records := chat.Records()
	msgs := make([]gateway.Message, 0, len(records))
	for _, rec := range records {
		msgs = append(msgs, gateway.Message{Role: string(rec.Role), Content: rec.Content})
	}
	return msgs
}
