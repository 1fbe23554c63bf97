// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package grounding derives presentation values from a groundedness report.
//
// Everything here is a pure function of the report's scores. Nothing is
// memoized or stored; callers recompute on demand.
package grounding

import (
	"fmt"

	"github.com/jeranaias/uwc-tui/internal/api"
)

// =============================================================================
// TIERS
// =============================================================================

// Tier buckets a 0-100 grounding score into three display bands.
type Tier int

const (
	TierHigh   Tier = iota // score >= 80
	TierMedium             // 50 <= score < 80
	TierLow                // score < 50
)

// TierFor buckets a score. The same thresholds apply to the overall score
// and to each sub-factor.
func TierFor(score float64) Tier {
	switch {
	case score >= 80:
		return TierHigh
	case score >= 50:
		return TierMedium
	default:
		return TierLow
	}
}

// Label returns the display label for the overall-score tier.
func (t Tier) Label() string {
	switch t {
	case TierHigh:
		return "Well Grounded"
	case TierMedium:
		return "Partially Grounded"
	default:
		return "Low Grounding"
	}
}

// Color returns the ANSI 256 / truecolor hex used for this tier.
func (t Tier) Color() string {
	switch t {
	case TierHigh:
		return "#10B981" // emerald
	case TierMedium:
		return "#F59E0B" // amber
	default:
		return "#F43F5E" // rose
	}
}

// Label is shorthand for TierFor(score).Label().
func Label(score float64) string {
	return TierFor(score).Label()
}

// =============================================================================
// BANNER RULE
// =============================================================================

// ShouldWarn reports whether a backend rating warrants the low-confidence
// banner. The rating expresses hallucination risk, so "low" is the good
// outcome and never warns.
func ShouldWarn(rating string) bool {
	return rating == api.RatingMedium || rating == api.RatingHigh
}

// =============================================================================
// FACTORS
// =============================================================================

// Factor names one of the four sub-scores of a groundedness report.
type Factor string

const (
	FactorRetrieval Factor = "retrieval_confidence"
	FactorGrounding Factor = "response_grounding"
	FactorNumerical Factor = "numerical_fidelity"
	FactorEntity    Factor = "entity_consistency"
)

// DisplayName returns the label shown next to a factor's bar.
func (f Factor) DisplayName() string {
	switch f {
	case FactorRetrieval:
		return "Retrieval Confidence"
	case FactorGrounding:
		return "Response Grounding"
	case FactorNumerical:
		return "Numerical Fidelity"
	case FactorEntity:
		return "Entity Consistency"
	default:
		return string(f)
	}
}

// explanations is tier text keyed by factor. One sentence per cell, written
// for an underwriter, not an ML engineer.
var explanations = map[Factor]map[Tier]string{
	FactorRetrieval: {
		TierHigh:   "The retrieved passages closely match the question.",
		TierMedium: "The retrieved passages only partially cover the question.",
		TierLow:    "Little relevant material was found in the indexed documents.",
	},
	FactorGrounding: {
		TierHigh:   "Nearly every sentence of the answer is backed by a source passage.",
		TierMedium: "Some sentences of the answer lack clear source support.",
		TierLow:    "Most of the answer is not supported by the indexed documents.",
	},
	FactorNumerical: {
		TierHigh:   "Figures in the answer match the source documents.",
		TierMedium: "Some figures could not be verified against the sources.",
		TierLow:    "Figures in the answer conflict with or are absent from the sources.",
	},
	FactorEntity: {
		TierHigh:   "Names, addresses, and policy terms are consistent with the sources.",
		TierMedium: "Some named entities could not be matched to the sources.",
		TierLow:    "Named entities in the answer do not match the source documents.",
	},
}

// Explain returns the one-line explanation for a factor at a score.
func Explain(factor Factor, score float64) string {
	if text, ok := explanations[factor][TierFor(score)]; ok {
		return text
	}
	return ""
}

// =============================================================================
// FACTOR EXTRACTION
// =============================================================================

// FactorScore pairs a factor with its score from a report.
type FactorScore struct {
	Factor Factor
	Score  float64
}

// Factors returns the four sub-factor scores in fixed display order.
func Factors(r *api.HallucinationReport) []FactorScore {
	return []FactorScore{
		{FactorRetrieval, r.RetrievalConfidence},
		{FactorGrounding, r.ResponseGrounding},
		{FactorNumerical, r.NumericalFidelity},
		{FactorEntity, r.EntityConsistency},
	}
}

// Summary returns the "Well Grounded (85/100)" headline for a report.
func Summary(r *api.HallucinationReport) string {
	return fmt.Sprintf("%s (%.0f/100)", Label(r.OverallScore), r.OverallScore)
}
