// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package chat provides the chat view component for the TUI.
package chat

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/uwc-tui/internal/api"
	"github.com/jeranaias/uwc-tui/internal/grounding"
	"github.com/jeranaias/uwc-tui/internal/model"
	"github.com/jeranaias/uwc-tui/internal/ui/styles"
	"github.com/jeranaias/uwc-tui/internal/util"
)

// =============================================================================
// MAIN LAYOUT
// =============================================================================

// renderChat assembles the chat view: feed, optional warning banner, input,
// and status bar.
func (m Model) renderChat() string {
	if m.showHelp {
		return m.renderHelpOverlay()
	}

	sections := []string{m.viewport.View()}

	if m.bannerSeq != 0 {
		sections = append(sections, m.renderBanner())
	}

	sections = append(sections, m.renderInput(), m.renderStatusBar())
	return strings.Join(sections, "\n")
}

// =============================================================================
// MESSAGES
// =============================================================================

// renderMessages renders the full transcript for the viewport.
func (m *Model) renderMessages() string {
	if m.transcript == nil || m.transcript.IsEmpty() {
		return m.renderEmptyState()
	}

	var parts []string
	for _, msg := range m.transcript.History() {
		parts = append(parts, m.renderMessage(msg))
	}

	if m.state == StateAwaiting {
		parts = append(parts, m.renderThinking())
	}

	return strings.Join(parts, "\n")
}

func (m *Model) renderMessage(msg *model.Message) string {
	if msg.Pending {
		return m.renderPendingMessage(msg)
	}
	if msg.IsError {
		return m.renderErrorMessage(msg)
	}

	switch msg.Role {
	case model.RoleUser:
		return m.renderUserMessage(msg)
	case model.RoleAssistant:
		return m.renderAssistantMessage(msg)
	case model.RoleSystem:
		return m.renderSystemMessage(msg)
	default:
		return msg.Content
	}
}

// renderUserMessage renders a user question right-aligned in a cyan bubble.
func (m *Model) renderUserMessage(msg *model.Message) string {
	maxWidth := m.bubbleWidth()

	rendered := m.theme.UserBubble.
		MaxWidth(maxWidth).
		Render(wrapText(msg.Content, maxWidth-4))

	marginLeft := m.width - lipgloss.Width(rendered) - 4
	if marginLeft < 0 {
		marginLeft = 0
	}

	return lipgloss.NewStyle().
		MarginLeft(marginLeft).
		MarginTop(1).
		Render(rendered)
}

// renderAssistantMessage renders an answer bubble plus its groundedness
// summary line, and the expanded report/sources/actions when open.
func (m *Model) renderAssistantMessage(msg *model.Message) string {
	maxWidth := m.bubbleWidth()

	bubble := m.theme.AssistantBubble.
		MaxWidth(maxWidth).
		Render(wrapText(msg.Content, maxWidth-4))

	parts := []string{bubble}

	if msg.HasReport() {
		parts = append(parts, m.renderReportSummary(msg))
		if m.expanded[msg.Seq] {
			parts = append(parts, m.renderReportDetails(msg.Report))
			if len(msg.Sources) > 0 {
				parts = append(parts, m.renderSources(msg.Sources))
			}
			if len(msg.Actions) > 0 {
				parts = append(parts, m.renderActions(msg.Actions))
			}
		}
	}

	return lipgloss.NewStyle().
		MarginTop(1).
		MarginLeft(2).
		Render(strings.Join(parts, "\n"))
}

// renderReportSummary is the one-line tier summary under an answer.
func (m *Model) renderReportSummary(msg *model.Message) string {
	summary := grounding.Summary(msg.Report)
	line := m.theme.TierStyle(msg.Report.OverallScore).Render("* " + summary)

	focused := msg.Seq == m.focusSeq
	switch {
	case focused && m.expanded[msg.Seq]:
		line += m.theme.ShortcutDesc.Render("  Tab to collapse")
	case focused:
		line += m.theme.ShortcutDesc.Render("  Tab for details")
	}
	return line
}

// renderReportDetails shows the four sub-factor bars with per-tier
// explanations written for underwriters.
func (m *Model) renderReportDetails(report *api.HallucinationReport) string {
	var b strings.Builder

	for _, fs := range grounding.Factors(report) {
		label := m.theme.FactorLabel.Render(fs.Factor.DisplayName())
		bar := m.theme.TierStyle(fs.Score).Render(styles.RenderProgressBar(20, fs.Score))
		score := m.theme.FactorText.Render(util.ScoreToString(fs.Score) + "/100")
		b.WriteString(fmt.Sprintf("%s %s %s\n", label, bar, score))

		explain := grounding.Explain(fs.Factor, fs.Score)
		b.WriteString(m.theme.FactorText.Render("  "+explain) + "\n")
	}

	if len(report.FlaggedClaims) > 0 {
		b.WriteString(m.theme.PriorityHigh.Render("Flagged claims:") + "\n")
		for _, claim := range report.FlaggedClaims {
			b.WriteString(m.theme.FactorText.Render("  ! "+claim) + "\n")
		}
	}

	return strings.TrimRight(b.String(), "\n")
}

// renderSources lists the retrieved passages as a tree.
func (m *Model) renderSources(sources []api.SourceReference) string {
	var b strings.Builder
	b.WriteString(m.theme.SourceHeader.Render(fmt.Sprintf("Sources (%d)", len(sources))) + "\n")

	for i, src := range sources {
		branch := styles.RenderTreeLine(i == len(sources)-1)
		meta := fmt.Sprintf("%s p.%d (%s match)", src.Source, src.Page, util.SimilarityToString(src.Similarity))
		b.WriteString(branch + m.theme.SourceMeta.Render(meta) + "\n")

		excerpt := util.TruncateWidth(strings.ReplaceAll(src.Text, "\n", " "), m.width-10)
		b.WriteString("    " + m.theme.SourceExcerpt.Render(excerpt) + "\n")
	}

	return strings.TrimRight(b.String(), "\n")
}

// renderActions lists backend-recommended underwriting actions by priority.
func (m *Model) renderActions(actions []api.UWAction) string {
	var b strings.Builder
	b.WriteString(m.theme.SourceHeader.Render("Recommended actions") + "\n")

	for _, a := range actions {
		prio := m.theme.PriorityLow.Render("[" + a.Priority + "]")
		if a.Priority == api.PriorityCritical || a.Priority == api.PriorityHigh {
			prio = m.theme.PriorityHigh.Render("[" + a.Priority + "]")
		}
		b.WriteString(fmt.Sprintf("%s %s %s\n",
			prio,
			m.theme.ActionTitle.Render(a.Action),
			m.theme.ActionDetail.Render("("+a.Category+")")))
		if a.Details != "" {
			b.WriteString("  " + m.theme.ActionDetail.Render(wrapText(a.Details, m.width-8)) + "\n")
		}
	}

	return strings.TrimRight(b.String(), "\n")
}

// renderSystemMessage renders inline notices such as rejected uploads.
func (m *Model) renderSystemMessage(msg *model.Message) string {
	return lipgloss.NewStyle().MarginLeft(2).Render(
		m.theme.SystemBubble.Render(msg.Content))
}

// renderPendingMessage renders an in-flight upload slot with the spinner.
func (m *Model) renderPendingMessage(msg *model.Message) string {
	return lipgloss.NewStyle().MarginLeft(2).Render(
		m.theme.PendingBubble.Render(m.spinner.View() + " " + msg.Content))
}

func (m *Model) renderErrorMessage(msg *model.Message) string {
	return lipgloss.NewStyle().MarginLeft(2).MarginTop(1).Render(
		m.theme.ErrorBubble.Render(wrapText(msg.Content, m.bubbleWidth()-4)))
}

// renderThinking shows the waiting indicator while a query is outstanding.
func (m *Model) renderThinking() string {
	return lipgloss.NewStyle().MarginLeft(2).MarginTop(1).Render(
		m.spinner.View() + " " + m.theme.ThinkingText.Render("Reviewing the submission..."))
}

// renderEmptyState greets a fresh session.
func (m *Model) renderEmptyState() string {
	lines := []string{
		m.theme.HeaderTitle.Render("UW Companion"),
		"",
		m.theme.FactorText.Render("Upload policy documents with /upload <file>, then ask about the risk."),
		m.theme.FactorText.Render("Accepted files: " + AllowedExtensionsLabel + "."),
	}
	return lipgloss.NewStyle().
		Width(m.width).
		Align(lipgloss.Center).
		MarginTop(2).
		Render(strings.Join(lines, "\n"))
}

// =============================================================================
// BANNER
// =============================================================================

// renderBanner is the low-confidence warning shown for a medium or high
// risk rating on the latest answer.
func (m Model) renderBanner() string {
	text := "Low confidence answer. Verify against the source documents before relying on it."
	if msg := m.transcript.GetBySeq(m.bannerSeq); msg != nil && msg.HasReport() {
		text = fmt.Sprintf(
			"Low confidence answer (%s). Verify against the source documents before relying on it.",
			grounding.Label(msg.Report.OverallScore))
	}
	return m.theme.Banner.
		Width(m.width - 4).
		Render(m.theme.BannerText.Render(text + "  (Esc to dismiss)"))
}

// =============================================================================
// INPUT
// =============================================================================

func (m Model) renderInput() string {
	return m.theme.InputContainer.
		Width(m.width - 2).
		Render(m.input.View())
}

// =============================================================================
// STATUS BAR
// =============================================================================

func (m Model) renderStatusBar() string {
	var conn string
	switch {
	case !m.healthChecked:
		conn = m.theme.ShortcutDesc.Render("o checking")
	case m.backendOnline:
		conn = m.theme.ConnOnline.Render("o online")
	default:
		conn = m.theme.ConnOffline.Render("x offline")
	}

	left := conn
	if n := len(m.uploads); n > 0 {
		left += m.theme.ShortcutDesc.Render(fmt.Sprintf("  uploading %d", n))
	}
	if m.statusMsg != "" {
		left += m.theme.ShortcutDesc.Render("  " + m.statusMsg)
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

// =============================================================================
// HELP OVERLAY
// =============================================================================

func (m Model) renderHelpOverlay() string {
	var b strings.Builder
	b.WriteString(m.theme.HeaderTitle.Render("Keyboard shortcuts") + "\n\n")

	for _, group := range m.keyMap.FullHelp() {
		for _, binding := range group {
			b.WriteString(fmt.Sprintf("  %s  %s\n",
				m.theme.ShortcutKey.Render(padKey(binding.Help().Key)),
				m.theme.ShortcutDesc.Render(binding.Help().Desc)))
		}
		b.WriteString("\n")
	}

	b.WriteString(m.theme.FactorText.Render("Commands: /upload <file>, /clear, /help") + "\n")
	b.WriteString(m.theme.ShortcutDesc.Render("Press any key to close"))

	return lipgloss.NewStyle().
		Width(m.width).
		Height(m.height).
		Align(lipgloss.Center, lipgloss.Center).
		Render(b.String())
}

func padKey(k string) string {
	return util.PadRight(k, 8)
}

// bubbleWidth clamps message bubbles to the terminal width.
func (m Model) bubbleWidth() int {
	w := m.width - 8
	if w < 20 {
		w = 20
	}
	return w
}
