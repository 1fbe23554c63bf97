// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package api provides the HTTP client for the UW Companion backend.
package api

// =============================================================================
// CHAT TYPES
// =============================================================================

// ChatRequest is the request body for POST /api/chat.
type ChatRequest struct {
	Query     string `json:"query"`
	SessionID string `json:"session_id"`
}

// ChatResponse is the full response from the RAG chat endpoint.
type ChatResponse struct {
	Answer        string              `json:"answer"`
	Sources       []SourceReference   `json:"sources"`
	Hallucination HallucinationReport `json:"hallucination"`
	Actions       []UWAction          `json:"actions"`
	SessionID     string              `json:"session_id"`
}

// SourceReference is a retrieved chunk cited by an answer.
type SourceReference struct {
	Text       string  `json:"text"`
	Source     string  `json:"source"`
	Page       int     `json:"page"`
	Similarity float64 `json:"similarity"`
}

// =============================================================================
// HALLUCINATION REPORT
// =============================================================================

// Risk ratings assigned by the backend's hallucination detector.
// The rating expresses hallucination RISK: "low" means well grounded,
// "high" means the answer is likely fabricated.
const (
	RatingLow    = "low"
	RatingMedium = "medium"
	RatingHigh   = "high"
)

// SentenceGrounding is a per-sentence grounding annotation.
type SentenceGrounding struct {
	Sentence       string  `json:"sentence"`
	GroundingScore float64 `json:"grounding_score"`
	BestSource     string  `json:"best_source"`
	IsGrounded     bool    `json:"is_grounded"`
}

// HallucinationReport is the multi-factor groundedness report attached to
// every chat answer. All scores are 0-100 where 100 is fully grounded.
type HallucinationReport struct {
	OverallScore         float64             `json:"overall_score"`
	RetrievalConfidence  float64             `json:"retrieval_confidence"`
	ResponseGrounding    float64             `json:"response_grounding"`
	NumericalFidelity    float64             `json:"numerical_fidelity"`
	EntityConsistency    float64             `json:"entity_consistency"`
	SentenceDetails      []SentenceGrounding `json:"sentence_details"`
	FlaggedClaims        []string            `json:"flagged_claims"`
	Rating               string              `json:"rating"`
}

// =============================================================================
// UNDERWRITING ACTIONS
// =============================================================================

// Action categories used by the backend's action extractor.
const (
	CategoryCoverageGap = "coverage_gap"
	CategoryRiskFlag    = "risk_flag"
	CategoryEndorsement = "endorsement"
	CategoryCompliance  = "compliance"
	CategoryPricing     = "pricing"
)

// Action priorities, highest first.
const (
	PriorityCritical = "critical"
	PriorityHigh     = "high"
	PriorityMedium   = "medium"
	PriorityLow      = "low"
)

// UWAction is a recommended underwriting action extracted from an answer.
type UWAction struct {
	Action          string `json:"action"`
	Category        string `json:"category"`
	Priority        string `json:"priority"`
	Details         string `json:"details"`
	SourceReference string `json:"source_reference"`
}

// =============================================================================
// DOCUMENT TYPES
// =============================================================================

// UploadResponse is returned after a successful document upload.
type UploadResponse struct {
	DocumentID string `json:"document_id"`
	Filename   string `json:"filename"`
	NumChunks  int    `json:"num_chunks"`
	NumPages   int    `json:"num_pages"`
	Status     string `json:"status"`
}

// DocumentInfo describes an indexed document as reported by the backend.
type DocumentInfo struct {
	DocumentID string `json:"document_id"`
	Filename   string `json:"filename"`
	NumChunks  int    `json:"num_chunks"`
	NumPages   int    `json:"num_pages"`
	UploadTime string `json:"upload_time"`
}

// DeleteResponse is returned by the single-document delete endpoint.
type DeleteResponse struct {
	Status     string `json:"status"`
	DocumentID string `json:"document_id"`
}

// BulkDeleteResult is one entry in the bulk-delete response.
type BulkDeleteResult struct {
	DocumentID string `json:"document_id"`
	Deleted    bool   `json:"deleted"`
}

// BulkDeleteResponse is returned by POST /api/documents/bulk-delete.
type BulkDeleteResponse struct {
	Results []BulkDeleteResult `json:"results"`
}

// =============================================================================
// SESSION / HEALTH TYPES
// =============================================================================

// ClearSessionResponse is returned when a chat session is cleared.
type ClearSessionResponse struct {
	Status    string `json:"status"`
	SessionID string `json:"session_id"`
}

// HealthStatus is the backend health payload. The backend also reports which
// provider backs each pipeline layer so the client can show a useful status.
type HealthStatus struct {
	Status           string `json:"status"`
	LLMBackend       string `json:"llm_backend"`
	EmbeddingBackend string `json:"embedding_backend"`
	VectorStore      string `json:"vector_store_backend"`
	GeminiConfigured bool   `json:"gemini_configured"`
}

// OK reports whether the backend considers itself healthy.
func (h HealthStatus) OK() bool {
	return h.Status == "ok"
}

// serverError is the FastAPI error body shape: {"detail": "..."}.
type serverError struct {
	Detail string `json:"detail"`
}
