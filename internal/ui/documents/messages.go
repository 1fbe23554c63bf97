// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package documents provides the document library view for the TUI.
package documents

import (
	"github.com/jeranaias/uwc-tui/internal/api"
)

// =============================================================================
// MESSAGE TYPES
// =============================================================================

// LoadedMsg delivers the server's document inventory. On error the local
// list is left untouched.
type LoadedMsg struct {
	Docs []api.DocumentInfo
	Err  error
}

// DeleteResultMsg confirms (or fails) a single-document delete. The local
// entry is removed only on server confirmation.
type DeleteResultMsg struct {
	DocumentID string
	Filename   string
	Err        error
}

// BulkDeleteResultMsg reports a bulk delete. Only documents the server
// confirms deleted are removed locally.
type BulkDeleteResultMsg struct {
	Response *api.BulkDeleteResponse
	Err      error
}

// UploadResultMsg reports an upload started from the documents view. The new
// document is prepended on success.
type UploadResultMsg struct {
	Filename string
	Response *api.UploadResponse
	Err      error
}
