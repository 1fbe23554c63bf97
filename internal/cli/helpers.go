// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// helpers.go - Shared helpers for uwc CLI commands.
package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/jeranaias/uwc-tui/internal/api"
	"github.com/jeranaias/uwc-tui/internal/config"
)

// newClient builds the backend client from the loaded configuration, with
// the --backend flag taking precedence.
func newClient(args Args) *api.Client {
	cfg := config.Global()

	cc := api.DefaultConfig()
	if cfg != nil {
		cc.BaseURL = cfg.Backend.URL
		cc.Timeout = time.Duration(cfg.Backend.TimeoutSecs) * time.Second
		cc.ChatTimeout = time.Duration(cfg.Backend.ChatTimeoutSecs) * time.Second
	}
	if args.Backend != "" {
		cc.BaseURL = args.Backend
	}

	return api.NewClientWithConfig(cc)
}

// outputJSON writes data as indented JSON to stdout.
func outputJSON(data interface{}) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(data)
}

// printKV prints an aligned label/value line.
func printKV(label, value string) {
	fmt.Println(LabelStyle.Render(label) + ValueStyle.Render(value))
}

// formatDuration renders a duration in a compact human form.
func formatDuration(d time.Duration) string {
	switch {
	case d < time.Minute:
		return fmt.Sprintf("%ds", int(d.Seconds()))
	case d < time.Hour:
		return fmt.Sprintf("%dm", int(d.Minutes()))
	default:
		return fmt.Sprintf("%dh %dm", int(d.Hours()), int(d.Minutes())%60)
	}
}
