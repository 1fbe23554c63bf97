// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

/*
Package chat provides the main chat view component for the uwc TUI.

The chat package implements the conversation surface of the underwriting
companion using the Bubble Tea framework: questions go to the RAG backend,
answers come back with a groundedness report, retrieved sources, and
recommended underwriting actions.

# Key Components

## Model (model.go)

The Model struct is the central Bubble Tea model and enforces the
conversation invariants:
  - At most one chat request outstanding (StateIdle / StateAwaiting);
    submits while awaiting are no-ops
  - Uploads run concurrently and independently of the question flow, each
    owning a pending transcript slot resolved in place by seq
  - At most one low-confidence banner, armed only by a medium or high risk
    rating and dismissed explicitly or by scrolling the feed
  - Per-message expand/collapse of report details, keyed by seq

## View Rendering (view.go)

Rendering logic for the chat surface:
  - Message bubbles with role-specific styling (user, assistant, system)
  - Groundedness summary line with expandable sub-factor bars and
    underwriter-facing explanations
  - Source passages with page and similarity metadata
  - Recommended actions grouped by priority
  - Warning banner, input box, status bar, and help overlay

## Commands (commands.go)

Bubble Tea commands wrapping the backend client: chat, per-file upload,
health probing on a timer, best-effort session clear, and local history
recording.

## Input (input.go)

Submitted lines are classified into free-text queries and slash commands
(/upload, /clear, /help). Upload paths are checked against the PDF/Word
allow-list locally; rejected files never reach the network.

# Usage

	theme := styles.NewTheme()
	client := api.NewClient()
	sessions := session.NewManager()

	m := chat.New(theme, client, sessions)
	p := tea.NewProgram(m, tea.WithAltScreen())
	p.Run()
*/
package chat
