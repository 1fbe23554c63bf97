// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// chat.go - Interactive chat command handler for the uwc CLI.
//
// Handles "uwc chat": a readline-style REPL against the backend with input
// history, slash commands, and per-answer groundedness summaries.
package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/peterh/liner"

	"github.com/jeranaias/uwc-tui/internal/api"
	"github.com/jeranaias/uwc-tui/internal/config"
	"github.com/jeranaias/uwc-tui/internal/history"
	"github.com/jeranaias/uwc-tui/internal/model"
	"github.com/jeranaias/uwc-tui/internal/session"
)

// =============================================================================
// INPUT HISTORY
// =============================================================================

// ChatCLI provides input history and line editing for interactive chat.
type ChatCLI struct {
	line        *liner.State
	historyFile string
}

// NewChatCLI creates a ChatCLI with persistent input history.
func NewChatCLI() *ChatCLI {
	line := liner.NewLiner()
	line.SetCtrlCAborts(true)

	configDir, err := config.ConfigDir()
	if err != nil {
		configDir = os.TempDir()
	}

	cli := &ChatCLI{
		line:        line,
		historyFile: filepath.Join(configDir, "chat_history"),
	}
	cli.loadHistory()
	return cli
}

func (c *ChatCLI) loadHistory() {
	if f, err := os.Open(c.historyFile); err == nil {
		c.line.ReadHistory(f)
		f.Close()
	}
}

// ReadInput reads one line with history navigation.
func (c *ChatCLI) ReadInput(prompt string) (string, error) {
	input, err := c.line.Prompt(prompt)
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(input) != "" {
		c.line.AppendHistory(input)
	}
	return input, nil
}

// Close saves history and releases the terminal.
func (c *ChatCLI) Close() {
	if err := config.EnsureConfigDir(); err == nil {
		if f, err := os.OpenFile(c.historyFile, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600); err == nil {
			c.line.WriteHistory(f)
			f.Close()
		}
	}
	c.line.Close()
}

// =============================================================================
// SESSION STATE
// =============================================================================

// ChatSession holds the state for an interactive chat session.
type ChatSession struct {
	Client   *api.Client
	Sessions *session.Manager
	History  *history.Store // nil when history is disabled
	Input    *ChatCLI
	Quiet    bool
}

// =============================================================================
// CHAT COMMAND
// =============================================================================

// HandleChat runs the interactive REPL.
func HandleChat(args Args) error {
	if !IsTTY() {
		return &UsageError{Message: "uwc chat requires an interactive terminal"}
	}

	sess := &ChatSession{
		Client:   newClient(args),
		Sessions: session.NewManager(),
		Input:    NewChatCLI(),
		Quiet:    args.Quiet,
	}
	defer sess.Input.Close()

	if cfg := config.Global(); cfg != nil && cfg.History.Enabled {
		if path, err := cfg.HistoryPath(); err == nil {
			if store, err := history.Open(path, cfg.History.MaxEntries); err == nil {
				sess.History = store
				defer store.Close()
			}
		}
	}

	if !args.Quiet {
		fmt.Println(TitleStyle.Render("uwc chat"))
		fmt.Println(MutedStyle.Render("Ask about the submission. /upload <file> to index documents, /help for commands, Ctrl+D to exit."))
		fmt.Println()
	}

	for {
		input, err := sess.Input.ReadInput(PromptStyle.Render("uwc> "))
		if err != nil {
			// Ctrl+C or Ctrl+D: exit gracefully.
			fmt.Println()
			printExitSummary(sess)
			return nil
		}

		input = strings.TrimSpace(input)
		if input == "" {
			continue
		}

		if strings.HasPrefix(input, "/") {
			cont, err := handleSlashCommand(input, sess)
			if err != nil {
				fmt.Fprintln(os.Stderr, ErrorStyle.Render("[Error] ")+err.Error())
			}
			if !cont {
				printExitSummary(sess)
				return nil
			}
			continue
		}

		if strings.EqualFold(input, "exit") || strings.EqualFold(input, "quit") {
			printExitSummary(sess)
			return nil
		}

		if err := processQuery(sess, input); err != nil {
			fmt.Fprintln(os.Stderr, ErrorStyle.Render("[Error] ")+err.Error())
		}
	}
}

// =============================================================================
// QUERY PROCESSING
// =============================================================================

func processQuery(sess *ChatSession, query string) error {
	sess.Sessions.RecordQuery()

	resp, err := sess.Client.Chat(context.Background(), query, sess.Sessions.SessionID())
	if err != nil {
		if api.IsUnreachable(err) {
			return fmt.Errorf("backend unreachable at %s", sess.Client.BaseURL())
		}
		return err
	}

	fmt.Println()
	displayAnswer(resp.Answer)
	if !sess.Quiet {
		printGrounding(resp)
		printSources(resp.Sources)
		printActions(resp.Actions)
	}
	fmt.Println()

	if sess.History != nil {
		sess.History.Record(history.Entry{
			SessionID:  sess.Sessions.SessionID(),
			Query:      query,
			Answer:     resp.Answer,
			Score:      resp.Hallucination.OverallScore,
			Rating:     resp.Hallucination.Rating,
			NumSources: len(resp.Sources),
			NumActions: len(resp.Actions),
			AskedAt:    time.Now(),
		})
	}
	return nil
}

// =============================================================================
// SLASH COMMANDS
// =============================================================================

// handleSlashCommand executes a REPL slash command. It returns false when
// the session should end.
func handleSlashCommand(input string, sess *ChatSession) (bool, error) {
	fields := strings.Fields(input)

	switch fields[0] {
	case "/exit", "/quit":
		return false, nil

	case "/help":
		fmt.Println("  /upload <file> [file...]  Upload and index documents")
		fmt.Println("  /docs                     List indexed documents")
		fmt.Println("  /clear                    Start a fresh session")
		fmt.Println("  /status                   Show session stats")
		fmt.Println("  /exit                     Leave chat")
		return true, nil

	case "/upload":
		if len(fields) < 2 {
			return true, &UsageError{Message: "usage: /upload <file> [file...]"}
		}
		for _, path := range fields[1:] {
			if err := uploadOne(sess.Client, path, sess.Sessions); err != nil {
				fmt.Fprintln(os.Stderr, ErrorStyle.Render("[Error] ")+err.Error())
			}
		}
		return true, nil

	case "/docs":
		docs, err := sess.Client.ListDocuments(context.Background())
		if err != nil {
			return true, err
		}
		printDocumentTable(docs)
		return true, nil

	case "/clear":
		oldID := sess.Sessions.SessionID()
		sess.Sessions.Renew()
		// Best effort; the local session is already fresh.
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		sess.Client.ClearSession(ctx, oldID)
		cancel()
		fmt.Println(SuccessStyle.Render("Started a new session."))
		return true, nil

	case "/status":
		status := sess.Sessions.GetStatus()
		printKV("Session", status.SessionID)
		printKV("Duration", formatDuration(status.Duration))
		printKV("Queries", fmt.Sprintf("%d", status.QueryCount))
		printKV("Uploads", fmt.Sprintf("%d", status.UploadCount))
		return true, nil

	default:
		return true, &UsageError{Message: "unknown command " + fields[0] + " (try /help)"}
	}
}

// uploadOne validates and uploads a single file, printing the result.
func uploadOne(client *api.Client, path string, sessions *session.Manager) error {
	filename := filepath.Base(path)
	if !model.AllowedUpload(filename) {
		return fmt.Errorf("%s rejected: only %s files are accepted", filename, model.AllowedUploadLabel)
	}

	fmt.Println(MutedStyle.Render("Uploading " + filename + "..."))
	resp, err := client.UploadDocument(context.Background(), path)
	if err != nil {
		return err
	}

	sessions.RecordUpload()
	fmt.Println(SuccessStyle.Render(fmt.Sprintf(
		"Indexed %s: %d chunks across %d pages.", resp.Filename, resp.NumChunks, resp.NumPages)))
	return nil
}

func printExitSummary(sess *ChatSession) {
	if sess.Quiet {
		return
	}
	status := sess.Sessions.GetStatus()
	fmt.Println(MutedStyle.Render(fmt.Sprintf(
		"Session %s: %d queries, %d uploads in %s.",
		shortID(status.SessionID), status.QueryCount, status.UploadCount,
		formatDuration(status.Duration))))
}
