// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package api provides the typed HTTP client for the UW Companion backend.
//
// The client is a stateless facade over the backend's REST contract:
// document upload/list/delete, RAG chat with hallucination analysis,
// session management, and health checks. It performs no retries and no
// caching; every failure is reported to the caller as a *ClientError whose
// ErrorType distinguishes an unreachable backend from a server-reported
// error.
//
// # Usage
//
//	client := api.NewClient()
//	resp, err := client.Chat(ctx, "What are the policy exclusions?", sessionID)
//	if api.IsUnreachable(err) {
//	    // backend process is not running
//	}
package api
