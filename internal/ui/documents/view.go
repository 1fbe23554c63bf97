// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package documents provides the document library view for the TUI.
package documents

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/uwc-tui/internal/model"
	"github.com/jeranaias/uwc-tui/internal/util"
)

// =============================================================================
// MAIN LAYOUT
// =============================================================================

func (m Model) render() string {
	sections := []string{m.renderHeader()}

	switch m.mode {
	case ModeFilter:
		sections = append(sections, m.theme.DocFilter.Render(m.filterInput.View()))
	case ModeUpload:
		sections = append(sections, m.theme.DocFilter.Render(m.pathInput.View()))
	case ModeConfirming:
		sections = append(sections, m.renderConfirm())
	}

	sections = append(sections, m.renderList(), m.renderStatusBar())
	return strings.Join(sections, "\n")
}

// =============================================================================
// HEADER
// =============================================================================

func (m Model) renderHeader() string {
	title := m.theme.HeaderTitle.Render("Documents")

	sort := m.theme.DocSortLabel.Render("sort: " + m.list.SortKey().String())

	var filter string
	if f := m.list.Filter(); f != "" {
		filter = m.theme.DocFilter.Render(" filter: " + f)
	}

	var selected string
	if n := m.list.SelectionCount(); n > 0 {
		selected = m.theme.DocItemSelected.Render(fmt.Sprintf(" %d selected", n))
	}

	return m.theme.Header.
		Width(m.width).
		Render(title + "  " + sort + filter + selected)
}

// =============================================================================
// LIST
// =============================================================================

func (m Model) renderList() string {
	if m.loading && m.list.Len() == 0 {
		return lipgloss.NewStyle().MarginLeft(2).MarginTop(1).Render(
			m.spinner.View() + " " + m.theme.ThinkingText.Render("Loading documents..."))
	}

	filtered := m.list.Filtered()
	if len(filtered) == 0 {
		return m.renderEmptyState()
	}

	var b strings.Builder
	for i, doc := range filtered {
		b.WriteString(m.renderRow(doc, i == m.cursor))
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

// renderRow renders one document line: selection marker, name, and metadata.
func (m Model) renderRow(doc model.Document, focused bool) string {
	marker := "[ ]"
	if m.list.IsSelected(doc.DocumentID) {
		marker = "[x]"
	}

	nameWidth := m.width / 2
	if nameWidth < 20 {
		nameWidth = 20
	}
	name := util.PadRight(util.TruncateWidth(doc.DisplayName, nameWidth), nameWidth)

	meta := fmt.Sprintf("%-8s %4d pages %5d chunks  %s",
		doc.Type, doc.NumPages, doc.NumChunks, doc.UploadTime.Format("2006-01-02 15:04"))

	line := fmt.Sprintf("%s %s %s", marker, name, m.theme.DocMeta.Render(meta))

	switch {
	case focused:
		return m.theme.DocItemFocused.Render("> " + line)
	case m.list.IsSelected(doc.DocumentID):
		return m.theme.DocItemSelected.Render("  " + line)
	default:
		return m.theme.DocItem.Render("  " + line)
	}
}

func (m Model) renderEmptyState() string {
	if m.list.Filter() != "" {
		return lipgloss.NewStyle().MarginLeft(2).MarginTop(1).Render(
			m.theme.DocMeta.Render("No documents match \"" + m.list.Filter() + "\""))
	}
	return lipgloss.NewStyle().MarginLeft(2).MarginTop(1).Render(
		m.theme.DocMeta.Render("No documents indexed yet. Press u to upload one."))
}

// =============================================================================
// CONFIRMATION
// =============================================================================

func (m Model) renderConfirm() string {
	n := len(m.confirmIDs)
	noun := "documents"
	if n == 1 {
		noun = "document"
	}
	return m.theme.ErrorBox.
		Width(m.width - 4).
		Render(fmt.Sprintf("Delete %d %s from the index? This cannot be undone. (y/n)", n, noun))
}

// =============================================================================
// STATUS BAR
// =============================================================================

func (m Model) renderStatusBar() string {
	left := m.statusMsg
	if m.uploading > 0 {
		left = m.spinner.View() + " " + left
	}

	var hints []string
	for _, b := range m.keyMap.ShortHelp() {
		hints = append(hints,
			m.theme.ShortcutKey.Render(b.Help().Key)+" "+
				m.theme.ShortcutDesc.Render(b.Help().Desc))
	}
	right := strings.Join(hints, "  ")

	gap := m.width - lipgloss.Width(left) - lipgloss.Width(right) - 2
	if gap < 1 {
		gap = 1
	}

	return m.theme.StatusBar.
		Width(m.width).
		Render(left + strings.Repeat(" ", gap) + right)
}
