// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// ask.go - Single query command handler for the uwc CLI.
//
// Handles "uwc ask", which sends one question to the backend and prints the
// answer with its groundedness summary and sources.
//
// Examples:
//   uwc ask "What is the dwelling coverage limit?"
//   uwc ask --json "List all exclusions"
package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/google/uuid"

	"github.com/jeranaias/uwc-tui/internal/api"
	"github.com/jeranaias/uwc-tui/internal/grounding"
	"github.com/jeranaias/uwc-tui/internal/util"
)

// =============================================================================
// MARKDOWN RENDERING
// =============================================================================

// markdownRenderer is the shared glamour renderer for answer output.
var markdownRenderer *glamour.TermRenderer

func init() {
	var err error
	markdownRenderer, err = glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(80),
	)
	if err != nil {
		// Plain text fallback when the renderer cannot initialize.
		markdownRenderer = nil
	}
}

// renderMarkdown renders markdown for terminal display, falling back to the
// raw content on any failure.
func renderMarkdown(content string) string {
	if markdownRenderer == nil {
		return content
	}
	rendered, err := markdownRenderer.Render(content)
	if err != nil {
		return content
	}
	return rendered
}

// displayAnswer renders markdown only when stdout is a TTY, so piped output
// stays clean.
func displayAnswer(answer string) {
	if IsStdoutTTY() {
		fmt.Print(renderMarkdown(answer))
	} else {
		fmt.Println(answer)
	}
}

// =============================================================================
// ASK COMMAND
// =============================================================================

// HandleAsk sends a single question and prints the response.
func HandleAsk(args Args) error {
	query := strings.TrimSpace(args.Query)
	if query == "" {
		return &UsageError{Message: `usage: uwc ask "question"`}
	}

	client := newClient(args)
	sessionID := uuid.NewString()

	resp, err := client.Chat(context.Background(), query, sessionID)
	if err != nil {
		return err
	}

	if args.JSON {
		return outputJSON(resp)
	}

	displayAnswer(resp.Answer)

	if !args.Quiet {
		printGrounding(resp)
		printSources(resp.Sources)
		printActions(resp.Actions)
	}

	return nil
}

// =============================================================================
// RESPONSE SECTIONS
// =============================================================================

func printGrounding(resp *api.ChatResponse) {
	report := &resp.Hallucination

	fmt.Println()
	fmt.Println(tierStyle(report.OverallScore).Render(grounding.Summary(report)))

	if grounding.ShouldWarn(report.Rating) {
		fmt.Println(WarningStyle.Render(
			"Low confidence: verify this answer against the source documents."))
	}

	for _, fs := range grounding.Factors(report) {
		label := fmt.Sprintf("%-22s", fs.Factor.DisplayName())
		fmt.Printf("  %s %s/100\n",
			MutedStyle.Render(label),
			tierStyle(fs.Score).Render(util.ScoreToString(fs.Score)))
	}
}

func printSources(sources []api.SourceReference) {
	if len(sources) == 0 {
		return
	}

	fmt.Println()
	fmt.Println(TitleStyle.Render(fmt.Sprintf("Sources (%d)", len(sources))))
	for _, src := range sources {
		fmt.Printf("  %s %s\n",
			ValueStyle.Render(src.Source),
			MutedStyle.Render(fmt.Sprintf("p.%d, %s match", src.Page, util.SimilarityToString(src.Similarity))))

		excerpt := util.TruncateWidth(strings.ReplaceAll(src.Text, "\n", " "), GetTerminalWidth()-6)
		fmt.Println("    " + MutedStyle.Render(excerpt))
	}
}

func printActions(actions []api.UWAction) {
	if len(actions) == 0 {
		return
	}

	fmt.Println()
	fmt.Println(TitleStyle.Render("Recommended actions"))
	for _, a := range actions {
		style := MutedStyle
		if a.Priority == api.PriorityCritical || a.Priority == api.PriorityHigh {
			style = WarningStyle
		}
		fmt.Printf("  %s %s %s\n",
			style.Render("["+a.Priority+"]"),
			ValueStyle.Render(a.Action),
			MutedStyle.Render("("+a.Category+")"))
		if a.Details != "" {
			fmt.Println("    " + MutedStyle.Render(a.Details))
		}
	}
}
