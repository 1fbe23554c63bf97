// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package documents

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/uwc-tui/internal/api"
	"github.com/jeranaias/uwc-tui/internal/ui/styles"
)

func newTestModel() Model {
	return New(styles.NewTheme(), api.NewClient())
}

func loadedModel() Model {
	m := newTestModel()
	next, _ := m.Update(LoadedMsg{Docs: []api.DocumentInfo{
		{DocumentID: "d1", Filename: "flood-policy.pdf", NumChunks: 40, NumPages: 10, UploadTime: "2026-06-01T10:00:00Z"},
		{DocumentID: "d2", Filename: "roof-survey.docx", NumChunks: 12, NumPages: 4, UploadTime: "2026-06-03T10:00:00Z"},
		{DocumentID: "d3", Filename: "appraisal.pdf", NumChunks: 80, NumPages: 30, UploadTime: "2026-06-02T10:00:00Z"},
	}})
	return next.(Model)
}

func press(m Model, k tea.Key) Model {
	next, _ := m.Update(tea.KeyMsg(k))
	return next.(Model)
}

func pressRune(m Model, r rune) (Model, tea.Cmd) {
	next, cmd := m.Update(tea.KeyMsg(tea.Key{Type: tea.KeyRunes, Runes: []rune{r}}))
	return next.(Model), cmd
}

// =============================================================================
// LOADING
// =============================================================================

func TestLoaded_ReplacesList(t *testing.T) {
	m := loadedModel()

	if m.Loading() {
		t.Error("loading flag should clear after a load")
	}
	if m.List().Len() != 3 {
		t.Fatalf("Len = %d, want 3", m.List().Len())
	}
}

func TestLoadFailure_LeavesListUntouched(t *testing.T) {
	m := loadedModel()

	next, _ := m.Update(LoadedMsg{Err: api.ErrBackendDown})
	m = next.(Model)

	if m.List().Len() != 3 {
		t.Errorf("Len = %d, want 3 (failed load must not clear the list)", m.List().Len())
	}
	if !strings.Contains(m.statusMsg, "Could not load") {
		t.Errorf("expected failure status, got %q", m.statusMsg)
	}
}

// =============================================================================
// NAVIGATION AND SELECTION
// =============================================================================

func TestCursor_StaysInsideFilteredView(t *testing.T) {
	m := loadedModel()

	m = press(m, tea.Key{Type: tea.KeyDown})
	m = press(m, tea.Key{Type: tea.KeyDown})
	m = press(m, tea.Key{Type: tea.KeyDown}) // already at the end
	if m.Cursor() != 2 {
		t.Fatalf("Cursor = %d, want 2", m.Cursor())
	}

	// Narrowing the filter clamps the cursor.
	m.List().SetFilter("appraisal")
	m.clampCursor()
	if m.Cursor() != 0 {
		t.Errorf("Cursor = %d, want 0 after filter narrowed the view", m.Cursor())
	}
}

func TestSelect_TogglesUnderCursor(t *testing.T) {
	m := loadedModel()

	m = press(m, tea.Key{Type: tea.KeySpace})
	if m.List().SelectionCount() != 1 {
		t.Fatalf("SelectionCount = %d, want 1", m.List().SelectionCount())
	}

	m = press(m, tea.Key{Type: tea.KeySpace})
	if m.List().SelectionCount() != 0 {
		t.Errorf("SelectionCount = %d, want 0 after toggle", m.List().SelectionCount())
	}
}

func TestSelectAll_HonorsFilter(t *testing.T) {
	m := loadedModel()
	m.List().SetFilter("policy")

	m, _ = pressRune(m, 'a')

	if m.List().SelectionCount() != 1 {
		t.Errorf("SelectionCount = %d, want 1 (only the filtered document)", m.List().SelectionCount())
	}
}

func TestSortCycle_Key(t *testing.T) {
	m := loadedModel()
	before := m.List().SortKey()

	m, _ = pressRune(m, 's')

	if m.List().SortKey() == before {
		t.Error("sort key should advance on s")
	}
}

// =============================================================================
// DELETE FLOW
// =============================================================================

func TestDelete_RequiresConfirmation(t *testing.T) {
	m := loadedModel()

	m, cmd := pressRune(m, 'd')
	if cmd != nil {
		t.Error("no network call before confirmation")
	}
	if m.Mode() != ModeConfirming {
		t.Fatalf("Mode = %v, want ModeConfirming", m.Mode())
	}

	// n cancels.
	m, cmd = pressRune(m, 'n')
	if cmd != nil || m.Mode() != ModeBrowse {
		t.Error("n should cancel without a command")
	}
	if m.List().Len() != 3 {
		t.Error("cancel must not remove anything")
	}
}

func TestDelete_ConfirmedSingleFiresDelete(t *testing.T) {
	m := loadedModel()

	m, _ = pressRune(m, 'd')
	m, cmd := pressRune(m, 'y')

	if cmd == nil {
		t.Fatal("y should fire the delete command")
	}
	// Local removal waits for server confirmation.
	if m.List().Len() != 3 {
		t.Error("document must not be removed before the server confirms")
	}
}

func TestDeleteResult_RemovesOnSuccessOnly(t *testing.T) {
	m := loadedModel()

	next, _ := m.Update(DeleteResultMsg{DocumentID: "d2", Filename: "roof-survey.docx"})
	m = next.(Model)
	if m.List().Len() != 2 {
		t.Fatalf("Len = %d, want 2", m.List().Len())
	}

	next, _ = m.Update(DeleteResultMsg{DocumentID: "d1", Filename: "flood-policy.pdf", Err: api.ErrBackendDown})
	m = next.(Model)
	if m.List().Len() != 2 {
		t.Errorf("Len = %d, want 2 (failed delete must not remove)", m.List().Len())
	}
}

func TestBulkDelete_SelectionFiresBulkCommand(t *testing.T) {
	m := loadedModel()
	m.List().ToggleSelect("d1")
	m.List().ToggleSelect("d3")

	m, _ = pressRune(m, 'd')
	if len(m.confirmIDs) != 2 {
		t.Fatalf("confirmIDs = %v, want 2 entries", m.confirmIDs)
	}

	_, cmd := pressRune(m, 'y')
	if cmd == nil {
		t.Fatal("y should fire the bulk delete command")
	}
}

func TestBulkDeleteResult_RemovesConfirmedOnly(t *testing.T) {
	m := loadedModel()

	next, _ := m.Update(BulkDeleteResultMsg{Response: &api.BulkDeleteResponse{
		Results: []api.BulkDeleteResult{
			{DocumentID: "d1", Deleted: true},
			{DocumentID: "d3", Deleted: false},
		},
	}})
	m = next.(Model)

	if m.List().Len() != 2 {
		t.Fatalf("Len = %d, want 2", m.List().Len())
	}
	for _, d := range m.List().All() {
		if d.DocumentID == "d1" {
			t.Error("d1 should be removed")
		}
	}
	if !strings.Contains(m.statusMsg, "1 failed") {
		t.Errorf("status should report the failure, got %q", m.statusMsg)
	}
}

// =============================================================================
// UPLOAD FLOW
// =============================================================================

func TestUploadPrompt_RejectsDisallowedExtension(t *testing.T) {
	m := loadedModel()

	m, _ = pressRune(m, 'u')
	if m.Mode() != ModeUpload {
		t.Fatalf("Mode = %v, want ModeUpload", m.Mode())
	}

	m.pathInput.SetValue("/tmp/notes.txt")
	m, cmd := func() (Model, tea.Cmd) {
		next, c := m.Update(tea.KeyMsg(tea.Key{Type: tea.KeyEnter}))
		return next.(Model), c
	}()

	if cmd != nil {
		t.Error("rejected upload must not produce a network command")
	}
	if !strings.Contains(m.statusMsg, "notes.txt") {
		t.Errorf("rejection should name the file, got %q", m.statusMsg)
	}
}

func TestUploadResult_PrependsDocument(t *testing.T) {
	m := loadedModel()
	m.uploading = 1

	next, _ := m.Update(UploadResultMsg{
		Filename: "new-policy.pdf",
		Response: &api.UploadResponse{DocumentID: "d9", Filename: "new-policy.pdf", NumChunks: 7, NumPages: 3},
	})
	m = next.(Model)

	if m.List().Len() != 4 {
		t.Fatalf("Len = %d, want 4", m.List().Len())
	}
	if m.List().All()[0].DocumentID != "d9" {
		t.Error("uploaded document should be prepended")
	}
	if m.uploading != 0 {
		t.Errorf("uploading = %d, want 0", m.uploading)
	}
}
