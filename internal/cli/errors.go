// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// errors.go - Unified error handling for all CLI commands in uwc.
//
// Commands ALWAYS return errors; the top-level caller decides how to
// display them and which exit code to use.
package cli

import (
	"errors"

	"github.com/jeranaias/uwc-tui/internal/api"
)

// =============================================================================
// EXIT CODES
// =============================================================================

const (
	// ExitSuccess indicates successful execution
	ExitSuccess = 0
	// ExitGeneralError indicates a general/unknown error
	ExitGeneralError = 1
	// ExitUsageError indicates invalid command usage or arguments
	ExitUsageError = 2
	// ExitConfigError indicates a configuration error
	ExitConfigError = 3
	// ExitNetworkError indicates the backend could not be reached
	ExitNetworkError = 5
	// ExitNotFoundError indicates a resource was not found
	ExitNotFoundError = 7
)

// =============================================================================
// ERROR TYPES
// =============================================================================

// UsageError represents invalid command usage.
type UsageError struct {
	Message string
}

func (e *UsageError) Error() string {
	return e.Message
}

// ConfigError wraps a configuration problem.
type ConfigError struct {
	Message string
	Err     error
}

func (e *ConfigError) Error() string {
	if e.Err != nil {
		return "config: " + e.Message + ": " + e.Err.Error()
	}
	return "config: " + e.Message
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}

// ExitCode maps an error to a process exit code.
func ExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}

	var ue *UsageError
	if errors.As(err, &ue) {
		return ExitUsageError
	}

	var ce *ConfigError
	if errors.As(err, &ce) {
		return ExitConfigError
	}

	if api.IsUnreachable(err) {
		return ExitNetworkError
	}

	var apiErr *api.ClientError
	if errors.As(err, &apiErr) && apiErr.Status == 404 {
		return ExitNotFoundError
	}

	return ExitGeneralError
}
