// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package model

import (
	"sort"
	"strings"
	"time"

	"github.com/jeranaias/uwc-tui/internal/api"
)

// =============================================================================
// DOCUMENT TYPE
// =============================================================================

// Document is an indexed document as tracked locally. Selection state lives
// in the DocumentList, not on the entity.
type Document struct {
	DocumentID  string
	Filename    string
	DisplayName string // filename without extension
	Type        string // label inferred from the extension
	NumPages    int
	NumChunks   int
	Status      string
	UploadTime  time.Time
}

// NewDocument builds a Document from the backend's wire representation.
func NewDocument(info api.DocumentInfo) Document {
	uploaded, _ := time.Parse(time.RFC3339, info.UploadTime)
	return Document{
		DocumentID:  info.DocumentID,
		Filename:    info.Filename,
		DisplayName: displayName(info.Filename),
		Type:        typeLabel(info.Filename),
		NumPages:    info.NumPages,
		NumChunks:   info.NumChunks,
		Status:      "indexed",
		UploadTime:  uploaded,
	}
}

// NewDocumentFromUpload builds a Document from a fresh upload result.
func NewDocumentFromUpload(resp *api.UploadResponse) Document {
	return Document{
		DocumentID:  resp.DocumentID,
		Filename:    resp.Filename,
		DisplayName: displayName(resp.Filename),
		Type:        typeLabel(resp.Filename),
		NumPages:    resp.NumPages,
		NumChunks:   resp.NumChunks,
		Status:      resp.Status,
		UploadTime:  time.Now(),
	}
}

// displayName strips the extension from a filename.
func displayName(filename string) string {
	if idx := strings.LastIndex(filename, "."); idx > 0 {
		return filename[:idx]
	}
	return filename
}

// typeLabel maps a filename extension to a display label.
func typeLabel(filename string) string {
	ext := strings.ToLower(filename)
	if idx := strings.LastIndex(ext, "."); idx >= 0 {
		ext = ext[idx+1:]
	}
	switch ext {
	case "pdf":
		return "PDF"
	case "docx", "doc":
		return "Word"
	default:
		return "Document"
	}
}

// AllowedUpload reports whether the filename carries an accepted extension
// (PDF or Word), matched case-insensitively. Callers reject disallowed files
// locally, before any network call.
func AllowedUpload(filename string) bool {
	ext := strings.ToLower(filename)
	if idx := strings.LastIndex(ext, "."); idx > 0 {
		ext = ext[idx:]
	} else {
		return false
	}
	switch ext {
	case ".pdf", ".docx", ".doc":
		return true
	}
	return false
}

// AllowedUploadLabel is the human-readable allow-list for rejection messages.
const AllowedUploadLabel = "PDF and Word (.pdf, .docx, .doc)"

// =============================================================================
// SORT KEYS
// =============================================================================

// SortKey selects the ordering of the document list.
type SortKey int

const (
	SortByDate   SortKey = iota // upload time, newest first
	SortByName                  // display name, ascending
	SortByChunks                // chunk count, descending
)

// String returns a display label for the sort key.
func (k SortKey) String() string {
	switch k {
	case SortByDate:
		return "date"
	case SortByName:
		return "name"
	case SortByChunks:
		return "chunks"
	default:
		return "date"
	}
}

// Next cycles to the following sort key.
func (k SortKey) Next() SortKey {
	switch k {
	case SortByDate:
		return SortByName
	case SortByName:
		return SortByChunks
	default:
		return SortByDate
	}
}

// =============================================================================
// DOCUMENT LIST
// =============================================================================

// DocumentList maintains the locally known set of indexed documents with
// client-side filtering, sorting, and multi-selection. Mutations happen only
// on the event-processing goroutine.
type DocumentList struct {
	docs     []Document
	filter   string
	sortKey  SortKey
	selected map[string]bool
}

// NewDocumentList creates an empty document list sorted by date.
func NewDocumentList() *DocumentList {
	return &DocumentList{
		docs:     make([]Document, 0),
		selected: make(map[string]bool),
	}
}

// Replace swaps the full list for the server's view. Called after a
// successful ListDocuments; on fetch failure the existing list is left
// untouched. Selections for documents no longer present are dropped.
func (l *DocumentList) Replace(infos []api.DocumentInfo) {
	l.docs = make([]Document, 0, len(infos))
	present := make(map[string]bool, len(infos))
	for _, info := range infos {
		l.docs = append(l.docs, NewDocument(info))
		present[info.DocumentID] = true
	}
	for id := range l.selected {
		if !present[id] {
			delete(l.selected, id)
		}
	}
}

// Prepend inserts a freshly uploaded document at the head of the list.
func (l *DocumentList) Prepend(doc Document) {
	l.docs = append([]Document{doc}, l.docs...)
}

// Remove deletes the document with the given ID from the local list.
// Called only after the server confirms the delete.
func (l *DocumentList) Remove(documentID string) bool {
	for i, doc := range l.docs {
		if doc.DocumentID == documentID {
			l.docs = append(l.docs[:i], l.docs[i+1:]...)
			delete(l.selected, documentID)
			return true
		}
	}
	return false
}

// RemoveAll deletes every listed ID, returning the number removed.
func (l *DocumentList) RemoveAll(documentIDs []string) int {
	removed := 0
	for _, id := range documentIDs {
		if l.Remove(id) {
			removed++
		}
	}
	return removed
}

// Len returns the total (unfiltered) document count.
func (l *DocumentList) Len() int {
	return len(l.docs)
}

// All returns the full unfiltered list.
func (l *DocumentList) All() []Document {
	return l.docs
}

// =============================================================================
// FILTER AND SORT
// =============================================================================

// SetFilter sets the case-insensitive display-name substring filter.
func (l *DocumentList) SetFilter(filter string) {
	l.filter = filter
}

// Filter returns the active filter string.
func (l *DocumentList) Filter() string {
	return l.filter
}

// SetSortKey selects the list ordering.
func (l *DocumentList) SetSortKey(key SortKey) {
	l.sortKey = key
}

// SortKey returns the active sort key.
func (l *DocumentList) SortKey() SortKey {
	return l.sortKey
}

// CycleSort advances to the next sort key and returns it.
func (l *DocumentList) CycleSort() SortKey {
	l.sortKey = l.sortKey.Next()
	return l.sortKey
}

// Filtered returns the documents passing the active filter, in the active
// sort order. The underlying list is not modified.
func (l *DocumentList) Filtered() []Document {
	out := make([]Document, 0, len(l.docs))
	needle := strings.ToLower(strings.TrimSpace(l.filter))
	for _, doc := range l.docs {
		if needle == "" || strings.Contains(strings.ToLower(doc.DisplayName), needle) {
			out = append(out, doc)
		}
	}

	switch l.sortKey {
	case SortByName:
		sort.SliceStable(out, func(i, j int) bool {
			return strings.ToLower(out[i].DisplayName) < strings.ToLower(out[j].DisplayName)
		})
	case SortByChunks:
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].NumChunks > out[j].NumChunks
		})
	default: // SortByDate
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].UploadTime.After(out[j].UploadTime)
		})
	}

	return out
}

// =============================================================================
// SELECTION
// =============================================================================

// ToggleSelect flips the selection state of one document.
func (l *DocumentList) ToggleSelect(documentID string) {
	if l.selected[documentID] {
		delete(l.selected, documentID)
	} else {
		l.selected[documentID] = true
	}
}

// IsSelected reports whether a document is selected.
func (l *DocumentList) IsSelected(documentID string) bool {
	return l.selected[documentID]
}

// SelectAllFiltered selects every document passing the active filter.
// Documents outside the filtered view are not touched.
func (l *DocumentList) SelectAllFiltered() {
	for _, doc := range l.Filtered() {
		l.selected[doc.DocumentID] = true
	}
}

// ClearSelection deselects everything.
func (l *DocumentList) ClearSelection() {
	l.selected = make(map[string]bool)
}

// SelectedIDs returns the selected document IDs in list order.
func (l *DocumentList) SelectedIDs() []string {
	ids := make([]string, 0, len(l.selected))
	for _, doc := range l.docs {
		if l.selected[doc.DocumentID] {
			ids = append(ids, doc.DocumentID)
		}
	}
	return ids
}

// SelectionCount returns the number of selected documents.
func (l *DocumentList) SelectionCount() int {
	return len(l.selected)
}
