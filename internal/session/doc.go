// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package session tracks the backend chat session identity and activity.
//
// The backend keys its conversation memory by an opaque session ID supplied
// with every chat request. This package owns that ID: it mints a fresh UUID
// when the app starts and again whenever the conversation is cleared, and
// counts queries and uploads for the status bar.
//
// # Usage
//
//	mgr := session.NewManager()
//	resp, err := client.Chat(ctx, query, mgr.SessionID())
//	mgr.RecordQuery()
//
// Clearing a conversation (after the backend confirms):
//
//	newID := mgr.Renew()
package session
