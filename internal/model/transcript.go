// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package model

import (
	"time"

	"github.com/jeranaias/uwc-tui/internal/api"
)

// =============================================================================
// TRANSCRIPT TYPE
// =============================================================================

// Transcript holds the ordered message history for one chat session.
//
// The transcript is append-only: messages are never edited or reordered.
// The single sanctioned in-place mutation is resolving a Pending upload slot
// by its Seq, which replaces the provisional "uploading" text with the final
// confirmation or failure text without disturbing transcript order.
//
// All mutation happens on the Bubble Tea update goroutine, so no locking is
// needed.
type Transcript struct {
	// SessionID is the opaque backend session identifier.
	SessionID string `json:"session_id"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Messages in append order. Append order follows request completion
	// order, not issuance order; each message carries its own Seq and
	// timestamp.
	Messages []*Message `json:"messages"`

	nextSeq int64
}

// NewTranscript creates an empty transcript bound to a session ID.
func NewTranscript(sessionID string) *Transcript {
	now := time.Now()
	return &Transcript{
		SessionID: sessionID,
		CreatedAt: now,
		UpdatedAt: now,
		Messages:  make([]*Message, 0),
		nextSeq:   1,
	}
}

// =============================================================================
// APPEND OPERATIONS
// =============================================================================

// append assigns the next seq, stamps the message, and appends it.
func (t *Transcript) append(msg *Message) *Message {
	msg.Seq = t.nextSeq
	t.nextSeq++
	msg.Timestamp = time.Now()
	t.Messages = append(t.Messages, msg)
	t.UpdatedAt = msg.Timestamp
	return msg
}

// AddUserMessage appends a user message.
func (t *Transcript) AddUserMessage(content string) *Message {
	return t.append(&Message{Role: RoleUser, Content: content})
}

// AddAssistantMessage appends an assistant message carrying the full chat
// response payload.
func (t *Transcript) AddAssistantMessage(resp *api.ChatResponse) *Message {
	return t.append(&Message{
		Role:    RoleAssistant,
		Content: resp.Answer,
		Report:  &resp.Hallucination,
		Sources: resp.Sources,
		Actions: resp.Actions,
	})
}

// AddErrorMessage appends a synthetic assistant entry describing a failed
// request. The transcript stays usable; nothing is retried.
func (t *Transcript) AddErrorMessage(content string) *Message {
	return t.append(&Message{Role: RoleAssistant, Content: content, IsError: true})
}

// AddSystemMessage appends a system notice (upload rejections, session
// resets).
func (t *Transcript) AddSystemMessage(content string) *Message {
	return t.append(&Message{Role: RoleSystem, Content: content})
}

// AddPendingMessage appends a provisional slot that will be resolved in
// place once its operation settles.
func (t *Transcript) AddPendingMessage(content string) *Message {
	return t.append(&Message{Role: RoleSystem, Content: content, Pending: true})
}

// =============================================================================
// SLOT RESOLUTION
// =============================================================================

// Resolve replaces the content of the pending message identified by seq and
// clears its Pending flag. Returns false if no pending message has that seq.
func (t *Transcript) Resolve(seq int64, content string, isError bool) bool {
	msg := t.GetBySeq(seq)
	if msg == nil || !msg.Pending {
		return false
	}
	msg.Content = content
	msg.Pending = false
	msg.IsError = isError
	t.UpdatedAt = time.Now()
	return true
}

// =============================================================================
// LOOKUPS
// =============================================================================

// GetBySeq returns the message with the given seq, or nil.
func (t *Transcript) GetBySeq(seq int64) *Message {
	for _, msg := range t.Messages {
		if msg.Seq == seq {
			return msg
		}
	}
	return nil
}

// LastMessage returns the most recent message, or nil if empty.
func (t *Transcript) LastMessage() *Message {
	if len(t.Messages) == 0 {
		return nil
	}
	return t.Messages[len(t.Messages)-1]
}

// LastAssistantMessage returns the most recent non-error assistant message.
func (t *Transcript) LastAssistantMessage() *Message {
	for i := len(t.Messages) - 1; i >= 0; i-- {
		if t.Messages[i].Role == RoleAssistant && !t.Messages[i].IsError {
			return t.Messages[i]
		}
	}
	return nil
}

// MessageCount returns the number of messages.
func (t *Transcript) MessageCount() int {
	return len(t.Messages)
}

// IsEmpty returns true if there are no messages.
func (t *Transcript) IsEmpty() bool {
	return len(t.Messages) == 0
}

// History returns the message history for display.
func (t *Transcript) History() []*Message {
	return t.Messages
}

// =============================================================================
// RESET
// =============================================================================

// Reset clears all messages and rebinds the transcript to a new session ID.
// Seq numbering restarts: a reset transcript is a new session.
func (t *Transcript) Reset(sessionID string) {
	t.SessionID = sessionID
	t.Messages = make([]*Message, 0)
	t.nextSeq = 1
	t.UpdatedAt = time.Now()
}
