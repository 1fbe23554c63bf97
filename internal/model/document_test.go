// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package model

import (
	"testing"
	"time"

	"github.com/jeranaias/uwc-tui/internal/api"
)

// =============================================================================
// TEST FIXTURES
// =============================================================================

func fixtureList() *DocumentList {
	l := NewDocumentList()
	l.Replace([]api.DocumentInfo{
		{DocumentID: "d1", Filename: "flood-policy.pdf", NumChunks: 40, UploadTime: "2025-06-01T10:00:00Z"},
		{DocumentID: "d2", Filename: "Roof Inspection.docx", NumChunks: 12, UploadTime: "2025-06-03T10:00:00Z"},
		{DocumentID: "d3", Filename: "appraisal.pdf", NumChunks: 80, UploadTime: "2025-06-02T10:00:00Z"},
	})
	return l
}

// =============================================================================
// DOCUMENT TESTS
// =============================================================================

func TestNewDocument_DisplayMetadata(t *testing.T) {
	tests := []struct {
		filename    string
		displayName string
		typeLabel   string
	}{
		{"flood-policy.pdf", "flood-policy", "PDF"},
		{"Roof Inspection.DOCX", "Roof Inspection", "Word"},
		{"notes.doc", "notes", "Word"},
		{"statement.txt", "statement", "Document"},
		{"noext", "noext", "Document"},
	}

	for _, tc := range tests {
		t.Run(tc.filename, func(t *testing.T) {
			doc := NewDocument(api.DocumentInfo{DocumentID: "x", Filename: tc.filename})
			if doc.DisplayName != tc.displayName {
				t.Errorf("DisplayName = %q, want %q", doc.DisplayName, tc.displayName)
			}
			if doc.Type != tc.typeLabel {
				t.Errorf("Type = %q, want %q", doc.Type, tc.typeLabel)
			}
		})
	}
}

func TestNewDocument_ParsesUploadTime(t *testing.T) {
	doc := NewDocument(api.DocumentInfo{
		DocumentID: "d1",
		Filename:   "a.pdf",
		UploadTime: "2025-06-01T10:00:00Z",
	})
	want := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	if !doc.UploadTime.Equal(want) {
		t.Errorf("UploadTime = %v, want %v", doc.UploadTime, want)
	}
}

// =============================================================================
// FILTER TESTS
// =============================================================================

func TestDocumentList_FilterCaseInsensitive(t *testing.T) {
	l := fixtureList()
	l.SetFilter("ROOF")

	got := l.Filtered()
	if len(got) != 1 || got[0].DocumentID != "d2" {
		t.Fatalf("Filtered() = %d docs, want just d2", len(got))
	}

	// Clearing the filter restores the full view.
	l.SetFilter("")
	if len(l.Filtered()) != 3 {
		t.Errorf("Filtered() after clear = %d docs, want 3", len(l.Filtered()))
	}
}

func TestDocumentList_FilterNoMatch(t *testing.T) {
	l := fixtureList()
	l.SetFilter("zzz")
	if got := l.Filtered(); len(got) != 0 {
		t.Errorf("Filtered() = %d docs, want 0", len(got))
	}
}

// =============================================================================
// SORT TESTS
// =============================================================================

func TestDocumentList_SortModes(t *testing.T) {
	tests := []struct {
		name string
		key  SortKey
		want []string // document IDs in expected order
	}{
		{name: "date newest first", key: SortByDate, want: []string{"d2", "d3", "d1"}},
		{name: "name ascending", key: SortByName, want: []string{"d3", "d1", "d2"}},
		{name: "chunks descending", key: SortByChunks, want: []string{"d3", "d1", "d2"}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			l := fixtureList()
			l.SetSortKey(tc.key)
			got := l.Filtered()
			if len(got) != len(tc.want) {
				t.Fatalf("Filtered() = %d docs, want %d", len(got), len(tc.want))
			}
			for i, id := range tc.want {
				if got[i].DocumentID != id {
					t.Errorf("position %d = %s, want %s", i, got[i].DocumentID, id)
				}
			}
		})
	}
}

func TestSortKey_Cycle(t *testing.T) {
	l := NewDocumentList()
	if l.SortKey() != SortByDate {
		t.Errorf("initial sort = %v, want SortByDate", l.SortKey())
	}
	if l.CycleSort() != SortByName {
		t.Error("first cycle should reach SortByName")
	}
	if l.CycleSort() != SortByChunks {
		t.Error("second cycle should reach SortByChunks")
	}
	if l.CycleSort() != SortByDate {
		t.Error("third cycle should wrap to SortByDate")
	}
}

// =============================================================================
// SELECTION TESTS
// =============================================================================

func TestDocumentList_ToggleSelect(t *testing.T) {
	l := fixtureList()

	l.ToggleSelect("d1")
	if !l.IsSelected("d1") {
		t.Error("d1 not selected after toggle")
	}
	l.ToggleSelect("d1")
	if l.IsSelected("d1") {
		t.Error("d1 still selected after second toggle")
	}
}

func TestDocumentList_SelectAllFilteredOnly(t *testing.T) {
	l := fixtureList()
	l.SetFilter("pdf") // matches nothing: filter is on display name, not extension
	l.SelectAllFiltered()
	if l.SelectionCount() != 0 {
		t.Fatalf("SelectionCount() = %d, want 0", l.SelectionCount())
	}

	l.SetFilter("poli")
	l.SelectAllFiltered()
	if l.SelectionCount() != 1 || !l.IsSelected("d1") {
		t.Errorf("select-all under filter should select only d1, got %d selected", l.SelectionCount())
	}
	// Documents outside the filtered view stay untouched.
	if l.IsSelected("d2") || l.IsSelected("d3") {
		t.Error("select-all leaked outside the filtered view")
	}
}

func TestDocumentList_SelectedIDsInListOrder(t *testing.T) {
	l := fixtureList()
	l.ToggleSelect("d3")
	l.ToggleSelect("d1")

	got := l.SelectedIDs()
	if len(got) != 2 || got[0] != "d1" || got[1] != "d3" {
		t.Errorf("SelectedIDs() = %v, want [d1 d3]", got)
	}
}

// =============================================================================
// MUTATION TESTS
// =============================================================================

func TestDocumentList_ReplaceDropsStaleSelections(t *testing.T) {
	l := fixtureList()
	l.ToggleSelect("d1")
	l.ToggleSelect("d2")

	l.Replace([]api.DocumentInfo{
		{DocumentID: "d2", Filename: "Roof Inspection.docx", UploadTime: "2025-06-03T10:00:00Z"},
	})

	if l.IsSelected("d1") {
		t.Error("selection survived for a document no longer listed")
	}
	if !l.IsSelected("d2") {
		t.Error("selection lost for a document still listed")
	}
}

func TestDocumentList_PrependNewUpload(t *testing.T) {
	l := fixtureList()
	l.Prepend(NewDocumentFromUpload(&api.UploadResponse{
		DocumentID: "d4",
		Filename:   "survey.pdf",
		NumChunks:  7,
		Status:     "indexed",
	}))

	if l.Len() != 4 {
		t.Fatalf("Len() = %d, want 4", l.Len())
	}
	if l.All()[0].DocumentID != "d4" {
		t.Error("new upload not at the head of the list")
	}
}

func TestDocumentList_RemoveClearsSelection(t *testing.T) {
	l := fixtureList()
	l.ToggleSelect("d2")

	if !l.Remove("d2") {
		t.Fatal("Remove() = false for a listed document")
	}
	if l.Len() != 2 {
		t.Errorf("Len() = %d, want 2", l.Len())
	}
	if l.IsSelected("d2") {
		t.Error("selection survived removal")
	}
	if l.Remove("d2") {
		t.Error("Remove() = true for an already-removed document")
	}
}

func TestDocumentList_RemoveAll(t *testing.T) {
	l := fixtureList()
	removed := l.RemoveAll([]string{"d1", "d3", "missing"})
	if removed != 2 {
		t.Errorf("RemoveAll() = %d, want 2", removed)
	}
	if l.Len() != 1 {
		t.Errorf("Len() = %d, want 1", l.Len())
	}
}
