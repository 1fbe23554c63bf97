// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package chat provides the chat view component for the TUI.
//
// This file defines all Bubble Tea message types used by the chat interface.
// Messages are organized into the following categories:
//   - Chat: query completion and failure
//   - Uploads: per-file upload results resolving pending transcript slots
//   - Health: backend reachability polling
//   - Session: session clear and renewal
package chat

import (
	"time"

	"github.com/jeranaias/uwc-tui/internal/api"
)

// =============================================================================
// CHAT MESSAGES
// =============================================================================

// ChatResponseMsg delivers a completed backend answer for the outstanding query.
// SessionID names the session the query was sent under; results from a
// session that has since been cleared are dropped.
type ChatResponseMsg struct {
	SessionID string
	Query     string
	Response  *api.ChatResponse
}

// ChatErrorMsg signals that the outstanding query failed.
// The transcript gains a synthetic assistant error message; the query is
// never retried.
type ChatErrorMsg struct {
	SessionID string
	Query     string
	Err       error
}

// =============================================================================
// UPLOAD MESSAGES
// =============================================================================

// UploadResultMsg resolves the pending transcript slot created when an
// upload started. Seq identifies the slot within the session named by
// SessionID; seq numbering restarts on session clear, so a result from an
// earlier session must never touch the current transcript. Exactly one of
// Response or Err is set.
type UploadResultMsg struct {
	SessionID string
	Seq       int64
	Filename  string
	Response  *api.UploadResponse
	Err       error
}

// =============================================================================
// HEALTH MESSAGES
// =============================================================================

// HealthStatusMsg reports the result of a backend health probe.
type HealthStatusMsg struct {
	Status *api.HealthStatus
	Err    error
}

// HealthTickMsg triggers the next periodic health probe.
type HealthTickMsg struct {
	Time time.Time
}

// =============================================================================
// SESSION MESSAGES
// =============================================================================

// SessionClearedMsg confirms a best-effort server-side session clear.
// The local transcript reset has already happened; Err is informational.
type SessionClearedMsg struct {
	OldSessionID string
	Err          error
}

// HistoryRecordedMsg reports the outcome of persisting an exchange to the
// local history store. Failures are non-fatal and surfaced in the status line.
type HistoryRecordedMsg struct {
	Err error
}
