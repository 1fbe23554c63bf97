// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package api provides the HTTP client for the UW Companion backend.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"time"
)

// =============================================================================
// ERROR TYPES
// =============================================================================

// Op identifies the client operation that produced an error.
type Op string

const (
	OpUpload       Op = "upload"
	OpList         Op = "list"
	OpDelete       Op = "delete"
	OpBulkDelete   Op = "bulk-delete"
	OpChat         Op = "chat"
	OpClearSession Op = "clear-session"
	OpHealth       Op = "health"
)

// ErrorType categorizes client errors for handling.
type ErrorType int

const (
	ErrTypeUnknown ErrorType = iota
	// ErrTypeUnreachable means the request never got an HTTP response:
	// connection refused, DNS failure, timeout. Usually the backend process
	// is not running.
	ErrTypeUnreachable
	// ErrTypeServer means the backend answered with a non-2xx status. The
	// Message carries the server-provided detail when present.
	ErrTypeServer
	// ErrTypeInvalidResponse means the backend answered 2xx but the body
	// could not be decoded.
	ErrTypeInvalidResponse
)

// ClientError represents an error from the backend client.
type ClientError struct {
	Op      Op
	Type    ErrorType
	Status  int // HTTP status for ErrTypeServer, 0 otherwise
	Message string
	Cause   error
}

func (e *ClientError) Error() string {
	if e.Cause != nil {
		return string(e.Op) + ": " + e.Message + ": " + e.Cause.Error()
	}
	return string(e.Op) + ": " + e.Message
}

func (e *ClientError) Unwrap() error {
	return e.Cause
}

// ErrBackendDown is the sentinel for transport-level failures.
var ErrBackendDown = &ClientError{Type: ErrTypeUnreachable, Message: "backend is not reachable"}

// IsUnreachable reports whether err is a transport-level failure (the
// backend never answered), as opposed to a server-reported error.
func IsUnreachable(err error) bool {
	var ce *ClientError
	if errors.As(err, &ce) {
		return ce.Type == ErrTypeUnreachable
	}
	return false
}

// Detail extracts the server-provided detail message from err, or returns
// the empty string when err carries none.
func Detail(err error) string {
	var ce *ClientError
	if errors.As(err, &ce) && ce.Type == ErrTypeServer {
		return ce.Message
	}
	return ""
}

// =============================================================================
// CLIENT CONFIGURATION
// =============================================================================

// ClientConfig holds configuration options for the backend client.
type ClientConfig struct {
	// BaseURL is the backend base URL (default: http://127.0.0.1:8000)
	BaseURL string

	// Timeout for control operations: list, delete, health (default: 30s)
	Timeout time.Duration

	// ChatTimeout for chat and upload requests, which run retrieval,
	// generation, and indexing server-side (default: 120s)
	ChatTimeout time.Duration
}

// DefaultConfig returns the default client configuration.
func DefaultConfig() *ClientConfig {
	return &ClientConfig{
		BaseURL:     "http://127.0.0.1:8000",
		Timeout:     30 * time.Second,
		ChatTimeout: 120 * time.Second,
	}
}

// =============================================================================
// CLIENT
// =============================================================================

// Client issues typed HTTP calls against the UW Companion backend. It holds
// no mutable state beyond its configuration and is safe for concurrent use.
// Failures propagate to the caller as *ClientError; the client never retries.
type Client struct {
	config     *ClientConfig
	httpClient *http.Client
	chatClient *http.Client
}

// NewClient creates a backend client with default configuration.
func NewClient() *Client {
	return NewClientWithConfig(DefaultConfig())
}

// NewClientWithConfig creates a backend client with custom configuration.
func NewClientWithConfig(config *ClientConfig) *Client {
	if config == nil {
		config = DefaultConfig()
	}
	if config.BaseURL == "" {
		config.BaseURL = "http://127.0.0.1:8000"
	}
	if config.Timeout == 0 {
		config.Timeout = 30 * time.Second
	}
	if config.ChatTimeout == 0 {
		config.ChatTimeout = 120 * time.Second
	}

	return &Client{
		config:     config,
		httpClient: &http.Client{Timeout: config.Timeout},
		chatClient: &http.Client{Timeout: config.ChatTimeout},
	}
}

// BaseURL returns the configured backend base URL.
func (c *Client) BaseURL() string {
	return c.config.BaseURL
}

// =============================================================================
// HEALTH CHECK
// =============================================================================

// Health checks backend connectivity. A transport failure is returned as an
// unreachable ClientError; callers treat any error as "disconnected" and
// never surface it to the user directly.
func (c *Client) Health(ctx context.Context) (*HealthStatus, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.config.BaseURL+"/health", nil)
	if err != nil {
		return nil, &ClientError{Op: OpHealth, Type: ErrTypeUnreachable, Message: "failed to create request", Cause: err}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &ClientError{Op: OpHealth, Type: ErrTypeUnreachable, Message: "backend is not reachable", Cause: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, c.serverError(OpHealth, resp)
	}

	var status HealthStatus
	if err := json.NewDecoder(resp.Body).Decode(&status); err != nil {
		return nil, &ClientError{Op: OpHealth, Type: ErrTypeInvalidResponse, Message: "failed to decode response", Cause: err}
	}

	return &status, nil
}

// =============================================================================
// DOCUMENT OPERATIONS
// =============================================================================

// UploadDocument uploads the file at path as a multipart request and returns
// the indexing result. The file is streamed under the form field "file" with
// its base filename preserved, which the backend uses as the display source.
func (c *Client) UploadDocument(ctx context.Context, path string) (*UploadResponse, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &ClientError{Op: OpUpload, Type: ErrTypeUnknown, Message: "cannot open file", Cause: err}
	}
	defer f.Close()

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	part, err := mw.CreateFormFile("file", filepath.Base(path))
	if err != nil {
		return nil, &ClientError{Op: OpUpload, Type: ErrTypeUnknown, Message: "failed to build multipart body", Cause: err}
	}
	if _, err := io.Copy(part, f); err != nil {
		return nil, &ClientError{Op: OpUpload, Type: ErrTypeUnknown, Message: "failed to read file", Cause: err}
	}
	if err := mw.Close(); err != nil {
		return nil, &ClientError{Op: OpUpload, Type: ErrTypeUnknown, Message: "failed to build multipart body", Cause: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.config.BaseURL+"/api/documents/upload", &body)
	if err != nil {
		return nil, &ClientError{Op: OpUpload, Type: ErrTypeUnreachable, Message: "failed to create request", Cause: err}
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	resp, err := c.chatClient.Do(req)
	if err != nil {
		return nil, &ClientError{Op: OpUpload, Type: ErrTypeUnreachable, Message: "backend is not reachable", Cause: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, c.serverError(OpUpload, resp)
	}

	var result UploadResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, &ClientError{Op: OpUpload, Type: ErrTypeInvalidResponse, Message: "failed to decode response", Cause: err}
	}

	return &result, nil
}

// ListDocuments returns all documents currently indexed by the backend.
func (c *Client) ListDocuments(ctx context.Context) ([]DocumentInfo, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.config.BaseURL+"/api/documents", nil)
	if err != nil {
		return nil, &ClientError{Op: OpList, Type: ErrTypeUnreachable, Message: "failed to create request", Cause: err}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &ClientError{Op: OpList, Type: ErrTypeUnreachable, Message: "backend is not reachable", Cause: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, c.serverError(OpList, resp)
	}

	var docs []DocumentInfo
	if err := json.NewDecoder(resp.Body).Decode(&docs); err != nil {
		return nil, &ClientError{Op: OpList, Type: ErrTypeInvalidResponse, Message: "failed to decode response", Cause: err}
	}

	return docs, nil
}

// DeleteDocument removes one document from the backend's index.
func (c *Client) DeleteDocument(ctx context.Context, documentID string) (*DeleteResponse, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, c.config.BaseURL+"/api/documents/"+documentID, nil)
	if err != nil {
		return nil, &ClientError{Op: OpDelete, Type: ErrTypeUnreachable, Message: "failed to create request", Cause: err}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &ClientError{Op: OpDelete, Type: ErrTypeUnreachable, Message: "backend is not reachable", Cause: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, c.serverError(OpDelete, resp)
	}

	var result DeleteResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, &ClientError{Op: OpDelete, Type: ErrTypeInvalidResponse, Message: "failed to decode response", Cause: err}
	}

	return &result, nil
}

// BulkDelete removes multiple documents in one request. The backend reports
// a per-document outcome; one failed ID does not roll back the others.
func (c *Client) BulkDelete(ctx context.Context, documentIDs []string) (*BulkDeleteResponse, error) {
	body, err := json.Marshal(documentIDs)
	if err != nil {
		return nil, &ClientError{Op: OpBulkDelete, Type: ErrTypeUnknown, Message: "failed to marshal request", Cause: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.config.BaseURL+"/api/documents/bulk-delete", bytes.NewReader(body))
	if err != nil {
		return nil, &ClientError{Op: OpBulkDelete, Type: ErrTypeUnreachable, Message: "failed to create request", Cause: err}
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &ClientError{Op: OpBulkDelete, Type: ErrTypeUnreachable, Message: "backend is not reachable", Cause: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, c.serverError(OpBulkDelete, resp)
	}

	var result BulkDeleteResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, &ClientError{Op: OpBulkDelete, Type: ErrTypeInvalidResponse, Message: "failed to decode response", Cause: err}
	}

	return &result, nil
}

// =============================================================================
// CHAT OPERATIONS
// =============================================================================

// Chat sends a query for the given session and returns the grounded answer
// with its sources, hallucination report, and recommended actions.
func (c *Client) Chat(ctx context.Context, query, sessionID string) (*ChatResponse, error) {
	body, err := json.Marshal(ChatRequest{Query: query, SessionID: sessionID})
	if err != nil {
		return nil, &ClientError{Op: OpChat, Type: ErrTypeUnknown, Message: "failed to marshal request", Cause: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.config.BaseURL+"/api/chat", bytes.NewReader(body))
	if err != nil {
		return nil, &ClientError{Op: OpChat, Type: ErrTypeUnreachable, Message: "failed to create request", Cause: err}
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.chatClient.Do(req)
	if err != nil {
		return nil, &ClientError{Op: OpChat, Type: ErrTypeUnreachable, Message: "backend is not reachable", Cause: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, c.serverError(OpChat, resp)
	}

	var result ChatResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, &ClientError{Op: OpChat, Type: ErrTypeInvalidResponse, Message: "failed to decode response", Cause: err}
	}

	return &result, nil
}

// ClearSession clears the backend's conversational history for a session.
// Best-effort: callers treat failure as non-fatal.
func (c *Client) ClearSession(ctx context.Context, sessionID string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, c.config.BaseURL+"/api/chat/session/"+sessionID, nil)
	if err != nil {
		return &ClientError{Op: OpClearSession, Type: ErrTypeUnreachable, Message: "failed to create request", Cause: err}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &ClientError{Op: OpClearSession, Type: ErrTypeUnreachable, Message: "backend is not reachable", Cause: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return c.serverError(OpClearSession, resp)
	}

	io.Copy(io.Discard, resp.Body)
	return nil
}

// =============================================================================
// HELPERS
// =============================================================================

// serverError converts a non-2xx response into a ClientError, preserving the
// FastAPI detail message verbatim when the body carries one.
func (c *Client) serverError(op Op, resp *http.Response) *ClientError {
	var se serverError
	if err := json.NewDecoder(resp.Body).Decode(&se); err == nil && se.Detail != "" {
		return &ClientError{Op: op, Type: ErrTypeServer, Status: resp.StatusCode, Message: se.Detail}
	}
	return &ClientError{Op: op, Type: ErrTypeServer, Status: resp.StatusCode, Message: "request failed: " + resp.Status}
}
