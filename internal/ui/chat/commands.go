// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package chat provides the chat view component for the TUI.
package chat

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/uwc-tui/internal/api"
	"github.com/jeranaias/uwc-tui/internal/history"
)

// =============================================================================
// CHAT COMMANDS
// =============================================================================

// ChatCmd sends the query to the backend and delivers the answer or error.
// The caller is responsible for enforcing the one-outstanding-query rule;
// this command is fired at most once per transition into StateAwaiting.
func ChatCmd(client *api.Client, query, sessionID string) tea.Cmd {
	return func() tea.Msg {
		resp, err := client.Chat(context.Background(), query, sessionID)
		if err != nil {
			return ChatErrorMsg{SessionID: sessionID, Query: query, Err: err}
		}
		return ChatResponseMsg{SessionID: sessionID, Query: query, Response: resp}
	}
}

// =============================================================================
// UPLOAD COMMANDS
// =============================================================================

// UploadCmd uploads one file and resolves the pending slot identified by seq
// within the given session. Uploads run concurrently and independently of any
// outstanding chat query.
func UploadCmd(client *api.Client, path, filename string, sessionID string, seq int64) tea.Cmd {
	return func() tea.Msg {
		resp, err := client.UploadDocument(context.Background(), path)
		return UploadResultMsg{
			SessionID: sessionID,
			Seq:       seq,
			Filename:  filename,
			Response:  resp,
			Err:       err,
		}
	}
}

// =============================================================================
// HEALTH COMMANDS
// =============================================================================

// HealthCmd probes the backend health endpoint once.
func HealthCmd(client *api.Client) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		status, err := client.Health(ctx)
		return HealthStatusMsg{Status: status, Err: err}
	}
}

// HealthTickCmd schedules the next periodic health probe.
func HealthTickCmd(interval time.Duration) tea.Cmd {
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return HealthTickMsg{Time: t}
	})
}

// =============================================================================
// SESSION COMMANDS
// =============================================================================

// ClearSessionCmd asks the backend to drop conversational memory for the
// old session. Best effort: the local transcript has already been reset.
func ClearSessionCmd(client *api.Client, oldSessionID string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		err := client.ClearSession(ctx, oldSessionID)
		return SessionClearedMsg{OldSessionID: oldSessionID, Err: err}
	}
}

// =============================================================================
// HISTORY COMMANDS
// =============================================================================

// RecordHistoryCmd persists a completed exchange to the local history store.
func RecordHistoryCmd(store *history.Store, entry history.Entry) tea.Cmd {
	return func() tea.Msg {
		return HistoryRecordedMsg{Err: store.Record(entry)}
	}
}
