// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package documents provides the document library view for the TUI.
package documents

import (
	"context"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/uwc-tui/internal/api"
)

// =============================================================================
// COMMANDS
// =============================================================================

// LoadCmd fetches the document inventory from the backend.
func LoadCmd(client *api.Client) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		docs, err := client.ListDocuments(ctx)
		return LoadedMsg{Docs: docs, Err: err}
	}
}

// DeleteCmd deletes one document on the server.
func DeleteCmd(client *api.Client, documentID, filename string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		_, err := client.DeleteDocument(ctx, documentID)
		return DeleteResultMsg{DocumentID: documentID, Filename: filename, Err: err}
	}
}

// BulkDeleteCmd deletes the selected documents in one request.
func BulkDeleteCmd(client *api.Client, documentIDs []string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
		defer cancel()

		resp, err := client.BulkDelete(ctx, documentIDs)
		return BulkDeleteResultMsg{Response: resp, Err: err}
	}
}

// UploadCmd uploads one file from the documents view.
func UploadCmd(client *api.Client, path string) tea.Cmd {
	return func() tea.Msg {
		resp, err := client.UploadDocument(context.Background(), path)
		return UploadResultMsg{Filename: filepath.Base(path), Response: resp, Err: err}
	}
}
