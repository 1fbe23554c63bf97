// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

/*
Package documents provides the document library view for the uwc TUI.

The view is a thin surface over model.DocumentList. The server owns the
inventory: entering the view loads it (a failed load leaves the current list
untouched), deletes remove entries only after the backend confirms, and a
successful upload prepends the new document.

# Interaction Modes

  - Browse: cursor navigation, Space to select, a to select all shown,
    d to delete with y/n confirmation, s to cycle sort order
  - Filter: / opens a live case-insensitive name filter; selection and
    select-all operate on the filtered view only
  - Upload: u prompts for a file path, checked against the PDF/Word
    allow-list before any network call

# Usage

	m := documents.New(theme, client)
	p := tea.NewProgram(m)
	p.Run()
*/
package documents
