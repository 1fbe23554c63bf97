// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package model contains the data structures for transcripts, messages,
// and the indexed-document list.
//
// This package defines the core domain types used throughout the application
// for representing the chat transcript of an underwriting session and the
// locally known set of indexed documents.
//
// # Key Types
//
//   - Transcript: Append-only container for a session's messages
//   - Message: Single message with role, content, sequence number, and the
//     assistant's groundedness report, sources, and recommended actions
//   - Document: One indexed document with display metadata
//   - DocumentList: Filterable, sortable, multi-selectable document set
//   - Role: Message role enumeration (user, assistant, system)
//
// # Usage
//
// Create a transcript and append messages:
//
//	t := model.NewTranscript(sessionID)
//	t.AddUserMessage("What is the roof condition?")
//	t.AddAssistantMessage(resp)
//
// Pending slots (uploads in flight) are resolved in place by sequence
// number rather than appended again:
//
//	pending := t.AddPendingMessage("Uploading policy.pdf...")
//	t.Resolve(pending.Seq, "Uploaded policy.pdf (42 chunks)", false)
package model
