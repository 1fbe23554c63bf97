// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package styles provides the visual styling system for the uwc TUI.
//
// All colors use Lip Gloss AdaptiveColor so the palette adjusts to light and
// dark terminals automatically. The Theme struct bundles every styled
// component; views receive a *Theme and never construct ad hoc styles.
//
// # Groundedness Tiers
//
// A 0-100 groundedness score maps to one of three bands: emerald (>= 80),
// amber (50-79), and rose (< 50). TierColor and Theme.TierStyle apply the
// same thresholds everywhere a score is shown.
//
// # Usage
//
//	theme := styles.NewTheme()
//	header := theme.Header.Render("UW Companion")
//	bar := styles.RenderProgressBar(20, report.OverallScore)
package styles
