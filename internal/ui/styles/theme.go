// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package styles

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Theme holds all the styled components for the application.
// It detects the terminal's color capability and adjusts accordingly.
type Theme struct {
	// Terminal capabilities
	IsDark       bool
	HasTrueColor bool
	ColorProfile termenv.Profile

	// Layout dimensions
	Width  int
	Height int

	// ==========================================================================
	// APPLICATION CONTAINER STYLES
	// ==========================================================================

	App       lipgloss.Style
	Container lipgloss.Style

	// ==========================================================================
	// HEADER AND TAB STYLES
	// ==========================================================================

	Header      lipgloss.Style
	HeaderTitle lipgloss.Style
	TabActive   lipgloss.Style
	TabInactive lipgloss.Style

	// ==========================================================================
	// MESSAGE BUBBLE STYLES
	// ==========================================================================

	UserBubble      lipgloss.Style
	AssistantBubble lipgloss.Style
	SystemBubble    lipgloss.Style
	PendingBubble   lipgloss.Style
	ErrorBubble     lipgloss.Style

	// ==========================================================================
	// GROUNDEDNESS STYLES
	// ==========================================================================

	TierWell    lipgloss.Style
	TierPartial lipgloss.Style
	TierLow     lipgloss.Style
	FactorLabel lipgloss.Style
	FactorText  lipgloss.Style
	Banner      lipgloss.Style
	BannerText  lipgloss.Style

	// ==========================================================================
	// SOURCE AND ACTION STYLES
	// ==========================================================================

	SourceHeader  lipgloss.Style
	SourceExcerpt lipgloss.Style
	SourceMeta    lipgloss.Style
	ActionTitle   lipgloss.Style
	ActionDetail  lipgloss.Style
	PriorityHigh  lipgloss.Style
	PriorityLow   lipgloss.Style

	// ==========================================================================
	// INPUT AREA STYLES
	// ==========================================================================

	InputContainer   lipgloss.Style
	InputPrompt      lipgloss.Style
	InputText        lipgloss.Style
	InputPlaceholder lipgloss.Style

	// ==========================================================================
	// STATUS BAR STYLES
	// ==========================================================================

	StatusBar    lipgloss.Style
	ConnOnline   lipgloss.Style
	ConnOffline  lipgloss.Style
	ShortcutKey  lipgloss.Style
	ShortcutDesc lipgloss.Style

	// ==========================================================================
	// DOCUMENT LIST STYLES
	// ==========================================================================

	DocItem         lipgloss.Style
	DocItemSelected lipgloss.Style
	DocItemFocused  lipgloss.Style
	DocMeta         lipgloss.Style
	DocFilter       lipgloss.Style
	DocSortLabel    lipgloss.Style

	// ==========================================================================
	// SPINNER AND LOADING STYLES
	// ==========================================================================

	Spinner      lipgloss.Style
	ThinkingText lipgloss.Style

	// ==========================================================================
	// ERROR BOX STYLES
	// ==========================================================================

	ErrorBox     lipgloss.Style
	ErrorTitle   lipgloss.Style
	ErrorMessage lipgloss.Style
}

// NewTheme creates a new theme with all styles configured.
func NewTheme() *Theme {
	colorProfile := termenv.ColorProfile()
	hasTrueColor := colorProfile == termenv.TrueColor
	isDark := termenv.HasDarkBackground()

	t := &Theme{
		IsDark:       isDark,
		HasTrueColor: hasTrueColor,
		ColorProfile: colorProfile,
	}

	t.initStyles()
	return t
}

// initStyles initializes all the lip gloss styles.
func (t *Theme) initStyles() {
	// App container
	t.App = lipgloss.NewStyle()
	t.Container = lipgloss.NewStyle().Padding(0, 1)

	// Header and tabs
	t.Header = lipgloss.NewStyle().
		Bold(true).
		Foreground(Cyan).
		Background(SurfaceDim).
		Padding(0, 2)

	t.HeaderTitle = lipgloss.NewStyle().
		Bold(true).
		Foreground(Purple)

	t.TabActive = lipgloss.NewStyle().
		Foreground(Cyan).
		Bold(true).
		Underline(true).
		Padding(0, 1)

	t.TabInactive = lipgloss.NewStyle().
		Foreground(TextMuted).
		Padding(0, 1)

	// Message bubbles
	t.UserBubble = lipgloss.NewStyle().
		Foreground(UserBubbleFg).
		Background(UserBubbleBg).
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(UserBubbleBorder).
		Padding(0, 2).
		MarginLeft(4)

	t.AssistantBubble = lipgloss.NewStyle().
		Foreground(AssistantBubbleFg).
		Background(AssistantBubbleBg).
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(AssistantBubbleBorder).
		Padding(0, 2).
		MarginRight(4)

	t.SystemBubble = lipgloss.NewStyle().
		Foreground(SystemBubbleFg).
		Background(SystemBubbleBg).
		BorderStyle(lipgloss.NormalBorder()).
		BorderLeft(true).
		BorderForeground(SystemBubbleBorder).
		PaddingLeft(2)

	t.PendingBubble = lipgloss.NewStyle().
		Foreground(TextMuted).
		Italic(true).
		PaddingLeft(2)

	t.ErrorBubble = lipgloss.NewStyle().
		Foreground(Rose).
		BorderStyle(lipgloss.NormalBorder()).
		BorderLeft(true).
		BorderForeground(Rose).
		PaddingLeft(2)

	// Groundedness
	t.TierWell = lipgloss.NewStyle().
		Foreground(TierWellColor).
		Bold(true)

	t.TierPartial = lipgloss.NewStyle().
		Foreground(TierPartialColor).
		Bold(true)

	t.TierLow = lipgloss.NewStyle().
		Foreground(TierLowColor).
		Bold(true)

	t.FactorLabel = lipgloss.NewStyle().
		Foreground(TextSecondary).
		Width(22)

	t.FactorText = lipgloss.NewStyle().
		Foreground(TextMuted).
		PaddingLeft(2)

	t.Banner = lipgloss.NewStyle().
		Background(AmberDeep).
		Foreground(TextInverse).
		BorderStyle(lipgloss.DoubleBorder()).
		BorderForeground(Amber).
		Padding(0, 2)

	t.BannerText = lipgloss.NewStyle().
		Bold(true)

	// Sources and actions
	t.SourceHeader = lipgloss.NewStyle().
		Foreground(Cyan).
		Bold(true)

	t.SourceExcerpt = lipgloss.NewStyle().
		Foreground(TextSecondary).
		PaddingLeft(2)

	t.SourceMeta = lipgloss.NewStyle().
		Foreground(TextMuted).
		Italic(true)

	t.ActionTitle = lipgloss.NewStyle().
		Foreground(TextPrimary).
		Bold(true)

	t.ActionDetail = lipgloss.NewStyle().
		Foreground(TextMuted).
		PaddingLeft(2)

	t.PriorityHigh = lipgloss.NewStyle().
		Foreground(Rose).
		Bold(true)

	t.PriorityLow = lipgloss.NewStyle().
		Foreground(TextMuted)

	// Input area
	t.InputContainer = lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderTop(true).
		BorderForeground(Overlay).
		Padding(0, 1)

	t.InputPrompt = lipgloss.NewStyle().
		Foreground(Cyan).
		Bold(true)

	t.InputText = lipgloss.NewStyle().
		Foreground(TextPrimary)

	t.InputPlaceholder = lipgloss.NewStyle().
		Foreground(TextMuted).
		Italic(true)

	// Status bar
	t.StatusBar = lipgloss.NewStyle().
		Background(SurfaceDim).
		Foreground(TextSecondary).
		Padding(0, 1)

	t.ConnOnline = lipgloss.NewStyle().
		Foreground(Emerald).
		Bold(true)

	t.ConnOffline = lipgloss.NewStyle().
		Foreground(Rose).
		Bold(true)

	t.ShortcutKey = lipgloss.NewStyle().
		Foreground(Cyan).
		Bold(true)

	t.ShortcutDesc = lipgloss.NewStyle().
		Foreground(TextMuted)

	// Document list
	t.DocItem = lipgloss.NewStyle().
		Foreground(TextPrimary).
		Padding(0, 1)

	t.DocItemSelected = lipgloss.NewStyle().
		Foreground(Cyan).
		Padding(0, 1)

	t.DocItemFocused = lipgloss.NewStyle().
		Background(Purple).
		Foreground(TextInverse).
		Bold(true).
		Padding(0, 1)

	t.DocMeta = lipgloss.NewStyle().
		Foreground(TextMuted)

	t.DocFilter = lipgloss.NewStyle().
		Foreground(Cyan)

	t.DocSortLabel = lipgloss.NewStyle().
		Foreground(TextMuted).
		Italic(true)

	// Spinner and loading
	t.Spinner = lipgloss.NewStyle().
		Foreground(Purple)

	t.ThinkingText = lipgloss.NewStyle().
		Foreground(TextSecondary)

	// Error boxes
	t.ErrorBox = lipgloss.NewStyle().
		BorderStyle(lipgloss.DoubleBorder()).
		BorderForeground(Rose).
		Background(RoseDeep).
		Padding(1, 2)

	t.ErrorTitle = lipgloss.NewStyle().
		Foreground(Rose).
		Bold(true)

	t.ErrorMessage = lipgloss.NewStyle().
		Foreground(TextPrimary)
}

// TierStyle returns the style for a 0-100 groundedness score.
func (t *Theme) TierStyle(score float64) lipgloss.Style {
	switch {
	case score >= 80:
		return t.TierWell
	case score >= 50:
		return t.TierPartial
	default:
		return t.TierLow
	}
}

// SetSize updates the theme dimensions for responsive layouts.
func (t *Theme) SetSize(width, height int) {
	t.Width = width
	t.Height = height
}

// GetLayoutMode returns the current layout mode based on width.
func (t *Theme) GetLayoutMode() LayoutMode {
	if t.Width < 60 {
		return LayoutNarrow
	}
	if t.Width < 100 {
		return LayoutMedium
	}
	return LayoutWide
}

// LayoutMode represents the current responsive layout mode.
type LayoutMode int

const (
	LayoutNarrow LayoutMode = iota // < 60 columns
	LayoutMedium                   // 60-100 columns
	LayoutWide                     // > 100 columns
)
