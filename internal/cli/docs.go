// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// docs.go - Document management command handler for the uwc CLI.
package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/mattn/go-runewidth"
	"golang.org/x/time/rate"

	"github.com/jeranaias/uwc-tui/internal/api"
	"github.com/jeranaias/uwc-tui/internal/config"
	"github.com/jeranaias/uwc-tui/internal/model"
)

// HandleDocs dispatches "uwc docs" subcommands.
func HandleDocs(args Args) error {
	client := newClient(args)

	switch args.Subcommand {
	case "", "list", "ls":
		return docsList(client, args)
	case "upload", "add":
		return docsUpload(client, args)
	case "delete", "rm":
		return docsDelete(client, args)
	default:
		return &UsageError{Message: "usage: uwc docs [list|upload <file>...|delete <id>...]"}
	}
}

// =============================================================================
// LIST
// =============================================================================

func docsList(client *api.Client, args Args) error {
	docs, err := client.ListDocuments(context.Background())
	if err != nil {
		return err
	}

	if args.JSON {
		return outputJSON(docs)
	}

	if len(docs) == 0 {
		fmt.Println(MutedStyle.Render("No documents indexed. Upload with: uwc docs upload <file>"))
		return nil
	}

	printDocumentTable(docs)
	if !args.Quiet {
		fmt.Println()
		fmt.Println(MutedStyle.Render(fmt.Sprintf("%d documents indexed", len(docs))))
	}
	return nil
}

// printDocumentTable renders indexed documents as an aligned table.
func printDocumentTable(docs []api.DocumentInfo) {
	sorted := make([]api.DocumentInfo, len(docs))
	copy(sorted, docs)
	sort.Slice(sorted, func(i, j int) bool {
		return strings.ToLower(sorted[i].Filename) < strings.ToLower(sorted[j].Filename)
	})

	nameWidth := len("FILENAME")
	for _, d := range sorted {
		if w := runewidth.StringWidth(d.Filename); w > nameWidth {
			nameWidth = w
		}
	}
	if max := GetTerminalWidth() - 40; nameWidth > max && max > 12 {
		nameWidth = max
	}

	header := fmt.Sprintf("%s  %-10s %6s %7s  %s",
		runewidth.FillRight("FILENAME", nameWidth), "ID", "PAGES", "CHUNKS", "UPLOADED")
	fmt.Println(MutedStyle.Render(header))

	for _, d := range sorted {
		name := runewidth.Truncate(d.Filename, nameWidth, "...")
		fmt.Printf("%s  %-10s %6d %7d  %s\n",
			runewidth.FillRight(name, nameWidth),
			shortID(d.DocumentID), d.NumPages, d.NumChunks, d.UploadTime)
	}
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

// =============================================================================
// UPLOAD
// =============================================================================

// docsUpload indexes one or more files, bounding concurrency and upload rate
// per the upload config so a big batch does not swamp the ingest pipeline.
func docsUpload(client *api.Client, args Args) error {
	paths := args.Raw[1:]
	if len(paths) == 0 {
		return &UsageError{Message: "usage: uwc docs upload <file> [file...]"}
	}

	var accepted []string
	for _, path := range paths {
		if !model.AllowedUpload(filepath.Base(path)) {
			fmt.Fprintln(os.Stderr, WarningStyle.Render("[Skipped] ")+
				filepath.Base(path)+": only "+model.AllowedUploadLabel+" files are accepted")
			continue
		}
		accepted = append(accepted, path)
	}
	if len(accepted) == 0 {
		return fmt.Errorf("no uploadable files given")
	}

	cfg := config.Global()
	maxConcurrent := cfg.Upload.MaxConcurrent
	if maxConcurrent < 1 {
		maxConcurrent = 1
	}

	limiter := rate.NewLimiter(rate.Inf, 1)
	if cfg.Upload.RatePerMinute > 0 {
		limiter = rate.NewLimiter(rate.Limit(cfg.Upload.RatePerMinute)/60, 1)
	}

	var (
		mu     sync.Mutex
		failed int
		wg     sync.WaitGroup
		sem    = make(chan struct{}, maxConcurrent)
	)

	for _, path := range accepted {
		wg.Add(1)
		go func(path string) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			if err := limiter.Wait(context.Background()); err != nil {
				return
			}

			resp, err := client.UploadDocument(context.Background(), path)

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				failed++
				fmt.Fprintln(os.Stderr, ErrorStyle.Render("[Failed] ")+
					filepath.Base(path)+": "+err.Error())
				return
			}
			fmt.Println(SuccessStyle.Render("[Indexed] ") + fmt.Sprintf(
				"%s: %d chunks across %d pages", resp.Filename, resp.NumChunks, resp.NumPages))
		}(path)
	}
	wg.Wait()

	if failed > 0 {
		return fmt.Errorf("%d of %d uploads failed", failed, len(accepted))
	}
	if !args.Quiet {
		fmt.Println(MutedStyle.Render(fmt.Sprintf("%d documents indexed", len(accepted))))
	}
	return nil
}

// =============================================================================
// DELETE
// =============================================================================

func docsDelete(client *api.Client, args Args) error {
	ids := args.Raw[1:]
	if len(ids) == 0 {
		return &UsageError{Message: "usage: uwc docs delete <id> [id...]"}
	}

	if len(ids) == 1 {
		if _, err := client.DeleteDocument(context.Background(), ids[0]); err != nil {
			return err
		}
		fmt.Println(SuccessStyle.Render("Deleted ") + shortID(ids[0]))
		return nil
	}

	resp, err := client.BulkDelete(context.Background(), ids)
	if err != nil {
		return err
	}

	deleted, failed := 0, 0
	for _, r := range resp.Results {
		if r.Deleted {
			deleted++
		} else {
			failed++
			fmt.Fprintln(os.Stderr, WarningStyle.Render("[Not deleted] ")+shortID(r.DocumentID))
		}
	}
	fmt.Println(SuccessStyle.Render(fmt.Sprintf("Deleted %d documents", deleted)))
	if failed > 0 {
		return fmt.Errorf("%d documents could not be deleted", failed)
	}
	return nil
}
