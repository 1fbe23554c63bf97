// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// history_cmd.go - Local query history command handler for the uwc CLI.
package cli

import (
	"fmt"
	"strings"

	"github.com/jeranaias/uwc-tui/internal/config"
	"github.com/jeranaias/uwc-tui/internal/grounding"
	"github.com/jeranaias/uwc-tui/internal/history"
	"github.com/jeranaias/uwc-tui/internal/util"
)

const historyListLimit = 20

// HandleHistory dispatches "uwc history" subcommands.
func HandleHistory(args Args) error {
	store, err := openHistoryStore()
	if err != nil {
		return err
	}
	defer store.Close()

	switch args.Subcommand {
	case "", "list":
		entries, err := store.Recent(historyListLimit)
		if err != nil {
			return err
		}
		return printHistory(entries, args)

	case "search":
		if len(args.Raw) < 2 {
			return &UsageError{Message: "usage: uwc history search <text>"}
		}
		entries, err := store.Search(strings.Join(args.Raw[1:], " "), historyListLimit)
		if err != nil {
			return err
		}
		return printHistory(entries, args)

	case "clear":
		count, err := store.Count()
		if err != nil {
			return err
		}
		if err := store.Clear(); err != nil {
			return err
		}
		fmt.Println(SuccessStyle.Render(fmt.Sprintf("Cleared %d history entries", count)))
		return nil

	default:
		return &UsageError{Message: "usage: uwc history [list|search <text>|clear]"}
	}
}

func openHistoryStore() (*history.Store, error) {
	cfg := config.Global()
	if !cfg.History.Enabled {
		return nil, &ConfigError{Message: "query history is disabled (history.enabled = false)"}
	}
	path, err := cfg.HistoryPath()
	if err != nil {
		return nil, &ConfigError{Message: "could not resolve history path", Err: err}
	}
	return history.Open(path, cfg.History.MaxEntries)
}

func printHistory(entries []history.Entry, args Args) error {
	if args.JSON {
		return outputJSON(entries)
	}

	if len(entries) == 0 {
		fmt.Println(MutedStyle.Render("No history entries."))
		return nil
	}

	width := GetTerminalWidth()
	for _, e := range entries {
		score := tierStyle(e.Score).Render(fmt.Sprintf("%3.0f", e.Score))
		fmt.Printf("%s  %s  %s\n",
			MutedStyle.Render(e.AskedAt.Format("2006-01-02 15:04")),
			score,
			util.TruncateWidth(e.Query, width-26))
		if args.Verbose {
			answer := util.TruncateWidth(strings.ReplaceAll(e.Answer, "\n", " "), width-4)
			fmt.Println("    " + MutedStyle.Render(answer))
			fmt.Println("    " + MutedStyle.Render(fmt.Sprintf(
				"%s confidence, %d sources, %d actions",
				grounding.TierFor(e.Score).Label(), e.NumSources, e.NumActions)))
		}
	}
	return nil
}
