// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// status.go - Backend status command handler for the uwc CLI.
package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/jeranaias/uwc-tui/internal/api"
)

// HandleStatus probes the backend health endpoint and reports what the
// pipeline is running on.
func HandleStatus(args Args) error {
	client := newClient(args)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	start := time.Now()
	status, err := client.Health(ctx)
	latency := time.Since(start)

	if err != nil {
		if args.JSON {
			return outputJSON(map[string]any{
				"reachable": false,
				"backend":   client.BaseURL(),
				"error":     err.Error(),
			})
		}
		fmt.Println(ErrorStyle.Render("x offline  ") + MutedStyle.Render(client.BaseURL()))
		if api.IsUnreachable(err) {
			fmt.Println(MutedStyle.Render("Backend unreachable. Check that the service is running."))
		} else {
			fmt.Println(MutedStyle.Render(err.Error()))
		}
		return err
	}

	if args.JSON {
		return outputJSON(map[string]any{
			"reachable":  true,
			"backend":    client.BaseURL(),
			"latency_ms": latency.Milliseconds(),
			"health":     status,
		})
	}

	if status.OK() {
		fmt.Println(SuccessStyle.Render("o online  ") + MutedStyle.Render(client.BaseURL()))
	} else {
		fmt.Println(WarningStyle.Render("! degraded  ") + MutedStyle.Render(client.BaseURL()))
	}

	if args.Quiet {
		return nil
	}

	fmt.Println()
	printKV("Latency", fmt.Sprintf("%dms", latency.Milliseconds()))
	printKV("LLM backend", status.LLMBackend)
	printKV("Embeddings", status.EmbeddingBackend)
	printKV("Vector store", status.VectorStore)
	printKV("Gemini", boolWord(status.GeminiConfigured, "configured", "not configured"))
	return nil
}

func boolWord(v bool, yes, no string) string {
	if v {
		return yes
	}
	return no
}
