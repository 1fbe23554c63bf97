// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package chat provides the chat view component for the TUI.
package chat

import (
	"strings"

	"github.com/jeranaias/uwc-tui/internal/model"
)

// =============================================================================
// INPUT VALIDATION
// =============================================================================

// AllowedUpload reports whether the filename has an accepted extension.
// Files outside the allow-list are rejected locally with no network call.
func AllowedUpload(filename string) bool {
	return model.AllowedUpload(filename)
}

// AllowedExtensionsLabel is the human-readable allow-list for rejection
// messages and help text.
const AllowedExtensionsLabel = model.AllowedUploadLabel

// =============================================================================
// SLASH COMMANDS
// =============================================================================

// InputKind classifies a submitted input line.
type InputKind int

const (
	InputEmpty   InputKind = iota // Blank or whitespace-only; ignored silently
	InputQuery                    // Free text sent to the backend
	InputUpload                   // /upload <path> [path...]
	InputClear                    // /clear
	InputHelp                     // /help
	InputUnknown                  // Unrecognized slash command
)

// ParsedInput is the result of classifying a submitted line.
type ParsedInput struct {
	Kind  InputKind
	Query string   // InputQuery: the trimmed question
	Paths []string // InputUpload: one or more file paths
	Raw   string   // InputUnknown: the command as typed
}

// ParseInput classifies a submitted line into a query or a slash command.
// Whitespace-only input yields InputEmpty and must be ignored without any
// transcript or network activity.
func ParseInput(line string) ParsedInput {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" {
		return ParsedInput{Kind: InputEmpty}
	}

	if !strings.HasPrefix(trimmed, "/") {
		return ParsedInput{Kind: InputQuery, Query: trimmed}
	}

	fields := strings.Fields(trimmed)
	switch fields[0] {
	case "/upload", "/attach":
		return ParsedInput{Kind: InputUpload, Paths: fields[1:]}
	case "/clear", "/new":
		return ParsedInput{Kind: InputClear}
	case "/help":
		return ParsedInput{Kind: InputHelp}
	default:
		return ParsedInput{Kind: InputUnknown, Raw: fields[0]}
	}
}
