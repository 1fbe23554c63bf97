// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config provides unified configuration loading and management for uwc.
//
// Supports both TOML and JSON configuration formats, with sensible defaults,
// environment variable overrides, and validation.
//
// # Key Types
//
//   - Config: Main configuration structure with all settings
//   - BackendConfig: RAG backend URL and timeout settings
//   - UploadConfig: Bulk upload concurrency and rate limits
//   - HistoryConfig: Local query history settings
//   - UIConfig: Display preferences
//
// # Configuration Precedence
//
// Configuration is loaded from (in order of precedence):
//   - Environment variables (UWC_*)
//   - ~/.uwc/config.toml
//   - ~/.uwc/config.json
//   - Built-in defaults
//
// # Usage
//
// Load configuration:
//
//	cfg, err := config.Load()
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// Access settings:
//
//	backend := cfg.Backend.URL
//	timeout := time.Duration(cfg.Backend.TimeoutSecs) * time.Second
package config
