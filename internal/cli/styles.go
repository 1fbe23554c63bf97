// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// styles.go - Centralized styling for all uwc CLI commands.
//
// Colors are disabled automatically for non-TTY output and NO_COLOR.
package cli

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/uwc-tui/internal/grounding"
)

// init configures the lipgloss color profile from terminal capabilities.
func init() {
	lipgloss.SetColorProfile(GetColorProfile())
}

// =============================================================================
// SHARED STYLES
// =============================================================================

var (
	// TitleStyle is used for command titles and headers
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("39")).
			MarginBottom(1)

	// LabelStyle is used for field labels
	LabelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("245")).
			Width(20)

	// ValueStyle is used for field values
	ValueStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("255"))

	// SuccessStyle marks successful operations
	SuccessStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42")).
			Bold(true)

	// WarningStyle marks warnings
	WarningStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214")).
			Bold(true)

	// ErrorStyle marks failures
	ErrorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")).
			Bold(true)

	// MutedStyle is for secondary detail lines
	MutedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	// PromptStyle is the interactive chat prompt
	PromptStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("39")).
			Bold(true)

	// SeparatorStyle renders horizontal rules
	SeparatorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("238"))
)

// tierStyle returns a style matching the groundedness tier of score.
func tierStyle(score float64) lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color(grounding.TierFor(score).Color())).
		Bold(true)
}
