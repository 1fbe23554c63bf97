// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package chat provides the chat view component for the TUI.
//
// This file defines keyboard bindings for the chat interface, along with
// help text generation for the status bar and help overlay.
package chat

import (
	"github.com/charmbracelet/bubbles/key"
)

// =============================================================================
// KEY MAP DEFINITION
// =============================================================================

// KeyMap defines all keyboard bindings for the chat interface.
type KeyMap struct {
	Up            key.Binding
	Down          key.Binding
	PageUp        key.Binding
	PageDown      key.Binding
	Home          key.Binding
	End           key.Binding
	Submit        key.Binding
	ToggleDetails key.Binding
	FocusPrev     key.Binding
	FocusNext     key.Binding
	DismissBanner key.Binding
	ClearSession  key.Binding
	Help          key.Binding
	Quit          key.Binding
}

// DefaultKeyMap returns the default key bindings for the chat interface.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up: key.NewBinding(
			key.WithKeys("up"),
			key.WithHelp("up", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down"),
			key.WithHelp("down", "scroll down"),
		),
		PageUp: key.NewBinding(
			key.WithKeys("pgup"),
			key.WithHelp("PgUp", "page up"),
		),
		PageDown: key.NewBinding(
			key.WithKeys("pgdown"),
			key.WithHelp("PgDn", "page down"),
		),
		Home: key.NewBinding(
			key.WithKeys("home"),
			key.WithHelp("Home", "go to top"),
		),
		End: key.NewBinding(
			key.WithKeys("end"),
			key.WithHelp("End", "go to bottom"),
		),
		Submit: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("Enter", "send"),
		),
		ToggleDetails: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("Tab", "expand/collapse details"),
		),
		FocusPrev: key.NewBinding(
			key.WithKeys("ctrl+p"),
			key.WithHelp("C-p", "previous answer"),
		),
		FocusNext: key.NewBinding(
			key.WithKeys("ctrl+n"),
			key.WithHelp("C-n", "next answer"),
		),
		DismissBanner: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("Esc", "dismiss warning"),
		),
		ClearSession: key.NewBinding(
			key.WithKeys("ctrl+l"),
			key.WithHelp("C-l", "new session"),
		),
		Help: key.NewBinding(
			key.WithKeys("ctrl+h"),
			key.WithHelp("C-h", "toggle help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c", "ctrl+q"),
			key.WithHelp("C-c", "quit"),
		),
	}
}

// =============================================================================
// KEY BINDING HELPERS
// =============================================================================

// ShortHelp returns the bindings shown in the status bar.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Submit, k.ToggleDetails, k.ClearSession, k.Help}
}

// FullHelp returns the grouped bindings for the help overlay.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.PageUp, k.PageDown, k.Home, k.End},
		{k.Submit, k.ToggleDetails, k.FocusPrev, k.FocusNext},
		{k.DismissBanner, k.ClearSession, k.Help, k.Quit},
	}
}
