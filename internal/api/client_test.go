// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(baseURL string) *Client {
	return NewClientWithConfig(&ClientConfig{BaseURL: baseURL})
}

// =============================================================================
// CHAT TESTS
// =============================================================================

func TestChat_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/api/chat", r.URL.Path)

		var req ChatRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "What is the TIV?", req.Query)
		assert.Equal(t, "sess-1", req.SessionID)

		json.NewEncoder(w).Encode(ChatResponse{
			Answer: "The total insured value is $4.2M.",
			Sources: []SourceReference{
				{Text: "TIV: $4,200,000", Source: "sov.pdf", Page: 3, Similarity: 0.91},
			},
			Hallucination: HallucinationReport{
				OverallScore: 88, Rating: RatingLow,
			},
			Actions:   []UWAction{{Action: "Verify TIV", Category: CategoryPricing, Priority: PriorityMedium}},
			SessionID: "sess-1",
		})
	}))
	defer srv.Close()

	resp, err := newTestClient(srv.URL).Chat(context.Background(), "What is the TIV?", "sess-1")
	require.NoError(t, err)
	assert.Equal(t, "The total insured value is $4.2M.", resp.Answer)
	assert.Len(t, resp.Sources, 1)
	assert.Equal(t, RatingLow, resp.Hallucination.Rating)
	assert.Equal(t, "sess-1", resp.SessionID)
}

func TestChat_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		json.NewEncoder(w).Encode(map[string]string{"detail": "GEMINI_API_KEY not configured on server"})
	}))
	defer srv.Close()

	_, err := newTestClient(srv.URL).Chat(context.Background(), "q", "s")
	require.Error(t, err)
	assert.False(t, IsUnreachable(err))
	assert.Equal(t, "GEMINI_API_KEY not configured on server", Detail(err))
}

func TestChat_BackendUnreachable(t *testing.T) {
	// Closed server: connection refused, no HTTP response.
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	_, err := newTestClient(url).Chat(context.Background(), "q", "s")
	require.Error(t, err)
	assert.True(t, IsUnreachable(err))
	assert.Empty(t, Detail(err))
}

// =============================================================================
// UPLOAD TESTS
// =============================================================================

func TestUploadDocument_MultipartShape(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/documents/upload", r.URL.Path)

		f, hdr, err := r.FormFile("file")
		require.NoError(t, err)
		defer f.Close()
		assert.Equal(t, "quote.pdf", hdr.Filename)

		json.NewEncoder(w).Encode(UploadResponse{
			DocumentID: "doc-1", Filename: "quote.pdf",
			NumChunks: 12, NumPages: 4, Status: "indexed",
		})
	}))
	defer srv.Close()

	path := filepath.Join(t.TempDir(), "quote.pdf")
	require.NoError(t, os.WriteFile(path, []byte("%PDF-1.4 fake"), 0644))

	resp, err := newTestClient(srv.URL).UploadDocument(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, "doc-1", resp.DocumentID)
	assert.Equal(t, 12, resp.NumChunks)
	assert.Equal(t, 4, resp.NumPages)
	assert.Equal(t, "indexed", resp.Status)
}

func TestUploadDocument_ServerDetail(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]string{"detail": "Could not extract any text from the document"})
	}))
	defer srv.Close()

	path := filepath.Join(t.TempDir(), "empty.pdf")
	require.NoError(t, os.WriteFile(path, nil, 0644))

	_, err := newTestClient(srv.URL).UploadDocument(context.Background(), path)
	require.Error(t, err)
	assert.Equal(t, "Could not extract any text from the document", Detail(err))
}

func TestUploadDocument_MissingFile(t *testing.T) {
	_, err := NewClient().UploadDocument(context.Background(), "/nonexistent/file.pdf")
	require.Error(t, err)
	// Local failure, not classified as unreachable or server.
	assert.False(t, IsUnreachable(err))
	assert.Empty(t, Detail(err))
}

// =============================================================================
// DOCUMENT MANAGEMENT TESTS
// =============================================================================

func TestListDocuments(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/documents", r.URL.Path)
		json.NewEncoder(w).Encode([]DocumentInfo{
			{DocumentID: "a", Filename: "sov.pdf", NumChunks: 10, NumPages: 5},
			{DocumentID: "b", Filename: "loss-runs.docx", NumChunks: 7, NumPages: 3},
		})
	}))
	defer srv.Close()

	docs, err := newTestClient(srv.URL).ListDocuments(context.Background())
	require.NoError(t, err)
	require.Len(t, docs, 2)
	assert.Equal(t, "a", docs[0].DocumentID)
	assert.Equal(t, "loss-runs.docx", docs[1].Filename)
}

func TestDeleteDocument(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodDelete, r.Method)
		require.Equal(t, "/api/documents/doc-9", r.URL.Path)
		json.NewEncoder(w).Encode(DeleteResponse{Status: "deleted", DocumentID: "doc-9"})
	}))
	defer srv.Close()

	resp, err := newTestClient(srv.URL).DeleteDocument(context.Background(), "doc-9")
	require.NoError(t, err)
	assert.Equal(t, "deleted", resp.Status)
	assert.Equal(t, "doc-9", resp.DocumentID)
}

func TestBulkDelete(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/documents/bulk-delete", r.URL.Path)

		var ids []string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&ids))
		assert.Equal(t, []string{"a", "b"}, ids)

		json.NewEncoder(w).Encode(BulkDeleteResponse{Results: []BulkDeleteResult{
			{DocumentID: "a", Deleted: true},
			{DocumentID: "b", Deleted: false},
		}})
	}))
	defer srv.Close()

	resp, err := newTestClient(srv.URL).BulkDelete(context.Background(), []string{"a", "b"})
	require.NoError(t, err)
	require.Len(t, resp.Results, 2)
	assert.True(t, resp.Results[0].Deleted)
	assert.False(t, resp.Results[1].Deleted)
}

// =============================================================================
// SESSION / HEALTH TESTS
// =============================================================================

func TestClearSession(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodDelete, r.Method)
		require.Equal(t, "/api/chat/session/sess-7", r.URL.Path)
		json.NewEncoder(w).Encode(ClearSessionResponse{Status: "cleared", SessionID: "sess-7"})
	}))
	defer srv.Close()

	err := newTestClient(srv.URL).ClearSession(context.Background(), "sess-7")
	assert.NoError(t, err)
}

func TestHealth(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/health", r.URL.Path)
		json.NewEncoder(w).Encode(HealthStatus{
			Status: "ok", LLMBackend: "gemini", EmbeddingBackend: "gemini",
			VectorStore: "lancedb", GeminiConfigured: true,
		})
	}))
	defer srv.Close()

	status, err := newTestClient(srv.URL).Health(context.Background())
	require.NoError(t, err)
	assert.True(t, status.OK())
	assert.Equal(t, "lancedb", status.VectorStore)
}

func TestHealth_Down(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	_, err := newTestClient(url).Health(context.Background())
	assert.True(t, IsUnreachable(err))
}
