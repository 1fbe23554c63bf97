// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package styles

import (
	"strings"
	"testing"
)

// =============================================================================
// PROGRESS BAR TESTS
// =============================================================================

func TestRenderProgressBar(t *testing.T) {
	tests := []struct {
		name    string
		width   int
		percent float64
	}{
		{"empty", 10, 0},
		{"half", 10, 50},
		{"full", 10, 100},
		{"clamped high", 10, 150},
		{"clamped low", 10, -20},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			bar := RenderProgressBar(tc.width, tc.percent)
			if len(bar) != tc.width {
				t.Errorf("bar length = %d, want %d", len(bar), tc.width)
			}
		})
	}

	if got := RenderProgressBar(0, 50); got != "" {
		t.Errorf("zero width bar = %q, want empty", got)
	}
	if got := RenderProgressBar(10, 100); got != strings.Repeat(ProgressFull, 10) {
		t.Errorf("full bar = %q", got)
	}
	if got := RenderProgressBar(10, 0); got != strings.Repeat(ProgressEmpty, 10) {
		t.Errorf("empty bar = %q", got)
	}
}

// =============================================================================
// TIER STYLE TESTS
// =============================================================================

func TestTierColor_Thresholds(t *testing.T) {
	if TierColor(85) != TierWellColor {
		t.Error("score 85 should map to the well-grounded color")
	}
	if TierColor(80) != TierWellColor {
		t.Error("score 80 should map to the well-grounded color")
	}
	if TierColor(65) != TierPartialColor {
		t.Error("score 65 should map to the partially-grounded color")
	}
	if TierColor(30) != TierLowColor {
		t.Error("score 30 should map to the low-grounding color")
	}
}

func TestTheme_TierStyle(t *testing.T) {
	theme := NewTheme()
	if theme.TierStyle(90).GetForeground() != TierWellColor {
		t.Error("TierStyle(90) foreground mismatch")
	}
	if theme.TierStyle(10).GetForeground() != TierLowColor {
		t.Error("TierStyle(10) foreground mismatch")
	}
}

// =============================================================================
// THEME TESTS
// =============================================================================

func TestTheme_LayoutModes(t *testing.T) {
	theme := NewTheme()

	theme.SetSize(50, 24)
	if theme.GetLayoutMode() != LayoutNarrow {
		t.Error("width 50 should be narrow")
	}
	theme.SetSize(80, 24)
	if theme.GetLayoutMode() != LayoutMedium {
		t.Error("width 80 should be medium")
	}
	theme.SetSize(140, 40)
	if theme.GetLayoutMode() != LayoutWide {
		t.Error("width 140 should be wide")
	}
}

func TestSpinnerConfig_Duration(t *testing.T) {
	if DotsSpinner.Duration() <= 0 {
		t.Error("spinner duration must be positive")
	}
}

// =============================================================================
// INDICATOR TESTS
// =============================================================================

func TestRenderStatusHelpers(t *testing.T) {
	if !strings.Contains(RenderSuccess("done"), "[OK]") {
		t.Error("RenderSuccess missing shape indicator")
	}
	if !strings.Contains(RenderError("failed"), "[X]") {
		t.Error("RenderError missing shape indicator")
	}
	if !strings.Contains(RenderWarning("careful"), "[!]") {
		t.Error("RenderWarning missing shape indicator")
	}
}
