// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package util provides small shared helpers for the uwc application.
//
//   - Atomic file writes (write temp, fsync, rename) for config persistence
//   - Width-aware string truncation for terminal rendering
//   - Numeric formatting for scores and similarities
package util
