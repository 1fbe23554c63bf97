// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package model

import (
	"time"

	"github.com/jeranaias/uwc-tui/internal/api"
)

// =============================================================================
// ROLE TYPE
// =============================================================================

// Role represents the sender of a message.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
	RoleSystem    Role = "system"
)

// String returns the string representation of the role.
func (r Role) String() string {
	return string(r)
}

// DisplayName returns a human-readable name for the role.
func (r Role) DisplayName() string {
	switch r {
	case RoleUser:
		return "You"
	case RoleAssistant:
		return "Companion"
	case RoleSystem:
		return "System"
	default:
		return string(r)
	}
}

// =============================================================================
// MESSAGE TYPE
// =============================================================================

// Message is one entry in the chat transcript. A message is created on send
// or receive and never mutated afterwards, with one exception: a Pending
// upload slot is resolved in place by its Seq once the upload settles.
type Message struct {
	// Identity: strictly increasing and unique within a transcript.
	Seq       int64     `json:"seq"`
	Role      Role      `json:"role"`
	Timestamp time.Time `json:"timestamp"`

	// Content
	Content string `json:"content"`

	// Pending marks an optimistic upload slot awaiting its final text.
	Pending bool `json:"-"`

	// IsError marks a synthetic assistant entry produced from a failed
	// request, so the view can style it distinctly.
	IsError bool `json:"is_error,omitempty"`

	// Assistant payload, attached at creation from the chat response.
	Report  *api.HallucinationReport `json:"report,omitempty"`
	Sources []api.SourceReference    `json:"sources,omitempty"`
	Actions []api.UWAction           `json:"actions,omitempty"`
}

// HasReport returns true if the message carries a groundedness report.
func (m *Message) HasReport() bool {
	return m.Report != nil
}

// HasDetails returns true if the message has anything to expand: a report,
// sources, or recommended actions.
func (m *Message) HasDetails() bool {
	return m.Report != nil || len(m.Sources) > 0 || len(m.Actions) > 0
}

// Preview returns a truncated preview of the message content.
// Uses rune-based truncation to handle Unicode correctly.
func (m *Message) Preview(maxLen int) string {
	runes := []rune(m.Content)
	if len(runes) <= maxLen {
		return m.Content
	}
	return string(runes[:maxLen-3]) + "..."
}
