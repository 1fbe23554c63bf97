// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/uwc-tui/internal/api"
	"github.com/jeranaias/uwc-tui/internal/model"
	"github.com/jeranaias/uwc-tui/internal/session"
	"github.com/jeranaias/uwc-tui/internal/ui/styles"
)

func newTestModel() Model {
	return New(styles.NewTheme(), api.NewClient(), session.NewManager())
}

// submit types the line and presses Enter, returning the updated model.
func submit(m Model, line string) (Model, tea.Cmd) {
	m.input.SetValue(line)
	next, cmd := m.Update(tea.KeyMsg(tea.Key{Type: tea.KeyEnter}))
	return next.(Model), cmd
}

func respond(m Model, query string, resp *api.ChatResponse) Model {
	next, _ := m.Update(ChatResponseMsg{
		SessionID: m.sessions.SessionID(),
		Query:     query,
		Response:  resp,
	})
	return next.(Model)
}

func ratedResponse(rating string, score float64) *api.ChatResponse {
	return &api.ChatResponse{
		Answer: "The dwelling coverage limit is $450,000.",
		Hallucination: api.HallucinationReport{
			OverallScore: score,
			Rating:       rating,
		},
	}
}

// =============================================================================
// QUERY STATE MACHINE
// =============================================================================

func TestSubmitQuery_EntersAwaiting(t *testing.T) {
	m, cmd := submit(newTestModel(), "What is the coverage limit?")

	if m.State() != StateAwaiting {
		t.Fatalf("state = %v, want StateAwaiting", m.State())
	}
	if cmd == nil {
		t.Fatal("expected a chat command")
	}
	if m.Transcript().MessageCount() != 1 {
		t.Fatalf("MessageCount = %d, want 1", m.Transcript().MessageCount())
	}
	last := m.Transcript().LastMessage()
	if last.Role != model.RoleUser || last.Content != "What is the coverage limit?" {
		t.Errorf("unexpected last message: %+v", last)
	}
	if m.input.Value() != "" {
		t.Errorf("input not cleared after submit: %q", m.input.Value())
	}
}

func TestSubmitWhileAwaiting_IsNoOp(t *testing.T) {
	m, _ := submit(newTestModel(), "first question")

	m, cmd := submit(m, "second question")

	if cmd != nil {
		t.Error("no command should fire while a query is outstanding")
	}
	if m.Transcript().MessageCount() != 1 {
		t.Errorf("MessageCount = %d, want 1 (second submit must not append)", m.Transcript().MessageCount())
	}
	if m.input.Value() != "second question" {
		t.Errorf("typed text should be preserved, got %q", m.input.Value())
	}
}

func TestSubmitEmpty_IgnoredSilently(t *testing.T) {
	for _, line := range []string{"", "   ", "\t"} {
		m, cmd := submit(newTestModel(), line)
		if cmd != nil {
			t.Errorf("submit(%q) fired a command", line)
		}
		if m.State() != StateIdle {
			t.Errorf("submit(%q) changed state", line)
		}
		if !m.Transcript().IsEmpty() {
			t.Errorf("submit(%q) appended to transcript", line)
		}
	}
}

func TestChatResponse_FoldsInAnswer(t *testing.T) {
	m, _ := submit(newTestModel(), "limits?")
	m = respond(m, "limits?", ratedResponse(api.RatingLow, 92))

	if m.State() != StateIdle {
		t.Fatalf("state = %v, want StateIdle", m.State())
	}
	if m.Transcript().MessageCount() != 2 {
		t.Fatalf("MessageCount = %d, want 2", m.Transcript().MessageCount())
	}
	last := m.Transcript().LastMessage()
	if last.Role != model.RoleAssistant || !last.HasReport() {
		t.Errorf("unexpected assistant message: %+v", last)
	}
}

func TestChatResponse_StaleIgnored(t *testing.T) {
	m := newTestModel()
	m = respond(m, "ghost", ratedResponse(api.RatingLow, 90))

	if !m.Transcript().IsEmpty() {
		t.Error("response without an outstanding query must be dropped")
	}
}

func TestChatError_UnreachableWording(t *testing.T) {
	m, _ := submit(newTestModel(), "limits?")
	next, _ := m.Update(ChatErrorMsg{
		SessionID: m.sessions.SessionID(),
		Query:     "limits?",
		Err:       api.ErrBackendDown,
	})
	m = next.(Model)

	if m.State() != StateIdle {
		t.Fatalf("state = %v, want StateIdle", m.State())
	}
	last := m.Transcript().LastMessage()
	if !last.IsError {
		t.Fatal("expected an error message")
	}
	if !strings.Contains(last.Content, "Cannot reach") {
		t.Errorf("unreachable wording missing: %q", last.Content)
	}
}

func TestChatError_ServerDetailWording(t *testing.T) {
	err := &api.ClientError{Op: api.OpChat, Type: api.ErrTypeServer, Message: "session expired"}

	m, _ := submit(newTestModel(), "limits?")
	next, _ := m.Update(ChatErrorMsg{
		SessionID: m.sessions.SessionID(),
		Query:     "limits?",
		Err:       err,
	})
	m = next.(Model)

	last := m.Transcript().LastMessage()
	if !strings.Contains(last.Content, "session expired") {
		t.Errorf("server detail missing from %q", last.Content)
	}
}

// =============================================================================
// BANNER
// =============================================================================

func TestBanner_ArmedOnlyByMediumOrHigh(t *testing.T) {
	tests := []struct {
		rating string
		want   bool
	}{
		{api.RatingLow, false},
		{api.RatingMedium, true},
		{api.RatingHigh, true},
	}

	for _, tt := range tests {
		m, _ := submit(newTestModel(), "q")
		m = respond(m, "q", ratedResponse(tt.rating, 40))
		if m.BannerVisible() != tt.want {
			t.Errorf("rating %q: BannerVisible = %v, want %v", tt.rating, m.BannerVisible(), tt.want)
		}
	}
}

func TestBanner_DismissedByEscape(t *testing.T) {
	m, _ := submit(newTestModel(), "q")
	m = respond(m, "q", ratedResponse(api.RatingHigh, 20))

	next, _ := m.Update(tea.KeyMsg(tea.Key{Type: tea.KeyEsc}))
	m = next.(Model)

	if m.BannerVisible() {
		t.Error("banner should be dismissed by Esc")
	}
}

func TestBanner_DismissedByScroll(t *testing.T) {
	m, _ := submit(newTestModel(), "q")
	m = respond(m, "q", ratedResponse(api.RatingMedium, 55))

	next, _ := m.Update(tea.KeyMsg(tea.Key{Type: tea.KeyUp}))
	m = next.(Model)

	if m.BannerVisible() {
		t.Error("banner should be dismissed by scrolling the feed")
	}
}

func TestBanner_ReplacedByNextQualifyingAnswer(t *testing.T) {
	m, _ := submit(newTestModel(), "q1")
	m = respond(m, "q1", ratedResponse(api.RatingHigh, 15))

	m, _ = submit(m, "q2")
	m = respond(m, "q2", ratedResponse(api.RatingMedium, 60))

	if !m.BannerVisible() {
		t.Fatal("banner should still be visible")
	}
	if m.bannerSeq != m.Transcript().LastMessage().Seq {
		t.Error("banner should track the latest qualifying answer")
	}
}

// =============================================================================
// UPLOADS
// =============================================================================

func TestUpload_RejectsDisallowedExtensionLocally(t *testing.T) {
	m, cmd := submit(newTestModel(), "/upload notes.txt")

	if cmd != nil {
		t.Error("rejected upload must not produce a network command")
	}
	if m.OutstandingUploads() != 0 {
		t.Errorf("OutstandingUploads = %d, want 0", m.OutstandingUploads())
	}
	last := m.Transcript().LastMessage()
	if last.Role != model.RoleSystem || !strings.Contains(last.Content, "notes.txt") {
		t.Errorf("expected inline rejection notice, got %+v", last)
	}
}

func TestUpload_CreatesPendingSlotPerFile(t *testing.T) {
	m, cmd := submit(newTestModel(), "/upload policy.pdf survey.docx")

	if cmd == nil {
		t.Fatal("expected upload commands")
	}
	if m.OutstandingUploads() != 2 {
		t.Fatalf("OutstandingUploads = %d, want 2", m.OutstandingUploads())
	}
	for _, msg := range m.Transcript().History() {
		if !msg.Pending {
			t.Errorf("expected only pending slots, got %+v", msg)
		}
	}
}

func TestUploadResult_ResolvesSlotInPlace(t *testing.T) {
	m, _ := submit(newTestModel(), "/upload policy.pdf")
	slot := m.Transcript().LastMessage()

	next, _ := m.Update(UploadResultMsg{
		SessionID: m.sessions.SessionID(),
		Seq:       slot.Seq,
		Filename:  "policy.pdf",
		Response:  &api.UploadResponse{Filename: "policy.pdf", NumChunks: 42, NumPages: 12},
	})
	m = next.(Model)

	if m.OutstandingUploads() != 0 {
		t.Errorf("OutstandingUploads = %d, want 0", m.OutstandingUploads())
	}
	resolved := m.Transcript().GetBySeq(slot.Seq)
	if resolved.Pending {
		t.Error("slot still pending after result")
	}
	if !strings.Contains(resolved.Content, "42 chunks") || !strings.Contains(resolved.Content, "12 pages") {
		t.Errorf("confirmation missing counts: %q", resolved.Content)
	}
	if m.Transcript().MessageCount() != 1 {
		t.Errorf("MessageCount = %d, want 1 (resolve must not append)", m.Transcript().MessageCount())
	}
}

func TestUploadResult_FailureResolvesAsError(t *testing.T) {
	m, _ := submit(newTestModel(), "/upload policy.pdf")
	slot := m.Transcript().LastMessage()

	next, _ := m.Update(UploadResultMsg{
		SessionID: m.sessions.SessionID(),
		Seq:       slot.Seq,
		Filename:  "policy.pdf",
		Err:       api.ErrBackendDown,
	})
	m = next.(Model)

	resolved := m.Transcript().GetBySeq(slot.Seq)
	if !resolved.IsError || resolved.Pending {
		t.Errorf("expected resolved error slot, got %+v", resolved)
	}
	if !strings.Contains(resolved.Content, "policy.pdf") {
		t.Errorf("failure message should name the file: %q", resolved.Content)
	}
}

func TestUpload_IndependentOfOutstandingQuery(t *testing.T) {
	m, _ := submit(newTestModel(), "what are the exclusions?")

	m, cmd := submit(m, "/upload policy.pdf")

	if cmd == nil {
		t.Fatal("upload should proceed while a query is outstanding")
	}
	if m.State() != StateAwaiting {
		t.Error("upload must not disturb the chat state machine")
	}
	if m.OutstandingUploads() != 1 {
		t.Errorf("OutstandingUploads = %d, want 1", m.OutstandingUploads())
	}
}

func TestUpload_BusyWhileUploadsOutstanding(t *testing.T) {
	m, _ := submit(newTestModel(), "/upload a.pdf")

	m, cmd := submit(m, "/upload b.pdf")

	if cmd != nil {
		t.Error("second upload batch must wait for the first to finish")
	}
	if m.OutstandingUploads() != 1 {
		t.Errorf("OutstandingUploads = %d, want 1", m.OutstandingUploads())
	}
}

// =============================================================================
// SESSION CLEAR
// =============================================================================

func TestClearSession_ResetsTranscriptAndSession(t *testing.T) {
	m, _ := submit(newTestModel(), "q")
	m = respond(m, "q", ratedResponse(api.RatingHigh, 10))
	oldID := m.sessions.SessionID()

	next, cmd := m.Update(tea.KeyMsg(tea.Key{Type: tea.KeyCtrlL}))
	m = next.(Model)

	if cmd == nil {
		t.Fatal("expected a server-side clear command")
	}
	if m.sessions.SessionID() == oldID {
		t.Error("session ID should change on clear")
	}
	if !m.Transcript().IsEmpty() {
		t.Error("transcript should be empty after clear")
	}
	if m.BannerVisible() {
		t.Error("banner should be cleared with the session")
	}
	if m.State() != StateIdle {
		t.Errorf("state = %v, want StateIdle", m.State())
	}

	// Seq restarts with the new session.
	first := m.Transcript().AddUserMessage("fresh")
	if first.Seq != 1 {
		t.Errorf("Seq = %d, want 1 after reset", first.Seq)
	}
}

func TestClearSession_DropsStaleUploadResult(t *testing.T) {
	m, _ := submit(newTestModel(), "/upload a.pdf")
	oldID := m.sessions.SessionID()
	oldSeq := m.Transcript().LastMessage().Seq

	next, _ := m.Update(tea.KeyMsg(tea.Key{Type: tea.KeyCtrlL}))
	m = next.(Model)

	// The new session's upload lands on the same seq the old one used.
	m, _ = submit(m, "/upload b.pdf")
	if m.Transcript().LastMessage().Seq != oldSeq {
		t.Fatalf("expected seq reuse across clear, got %d", m.Transcript().LastMessage().Seq)
	}

	// a.pdf's result arrives tagged with the cleared session.
	next, _ = m.Update(UploadResultMsg{
		SessionID: oldID,
		Seq:       oldSeq,
		Filename:  "a.pdf",
		Response:  &api.UploadResponse{Filename: "a.pdf", NumChunks: 7, NumPages: 3},
	})
	m = next.(Model)

	if m.OutstandingUploads() != 1 {
		t.Errorf("OutstandingUploads = %d, want 1 (b.pdf is still in flight)", m.OutstandingUploads())
	}
	slot := m.Transcript().GetBySeq(oldSeq)
	if !slot.Pending {
		t.Error("b.pdf's slot must stay pending")
	}
	if strings.Contains(slot.Content, "a.pdf") {
		t.Errorf("old session's result leaked into the new slot: %q", slot.Content)
	}
}

func TestClearSession_DropsStaleChatAnswer(t *testing.T) {
	m, _ := submit(newTestModel(), "what is the dwelling limit?")
	oldID := m.sessions.SessionID()

	next, _ := m.Update(tea.KeyMsg(tea.Key{Type: tea.KeyCtrlL}))
	m = next.(Model)

	m, _ = submit(m, "what are the exclusions?")

	// The pre-clear answer arrives after the new question went out.
	next, _ = m.Update(ChatResponseMsg{
		SessionID: oldID,
		Query:     "what is the dwelling limit?",
		Response:  ratedResponse(api.RatingLow, 90),
	})
	m = next.(Model)

	if m.State() != StateAwaiting {
		t.Error("new session's question is still outstanding; the stale answer must not settle it")
	}
	if last := m.Transcript().LastMessage(); last.Role != model.RoleUser {
		t.Errorf("stale answer was folded into the new transcript: %+v", last)
	}
}

// =============================================================================
// DETAILS TOGGLE
// =============================================================================

func TestToggleDetails_KeyedBySeq(t *testing.T) {
	m, _ := submit(newTestModel(), "q")
	m = respond(m, "q", ratedResponse(api.RatingLow, 88))
	seq := m.Transcript().LastMessage().Seq

	next, _ := m.Update(tea.KeyMsg(tea.Key{Type: tea.KeyTab}))
	m = next.(Model)
	if !m.IsExpanded(seq) {
		t.Fatal("Tab should expand the latest answer")
	}

	next, _ = m.Update(tea.KeyMsg(tea.Key{Type: tea.KeyTab}))
	m = next.(Model)
	if m.IsExpanded(seq) {
		t.Fatal("Tab again should collapse")
	}
}

// =============================================================================
// HEALTH
// =============================================================================

func TestHealthStatus_TracksReachability(t *testing.T) {
	m := newTestModel()

	next, _ := m.Update(HealthStatusMsg{Status: &api.HealthStatus{Status: "ok"}})
	m = next.(Model)
	if !m.BackendOnline() {
		t.Error("healthy probe should mark backend online")
	}

	next, _ = m.Update(HealthStatusMsg{Err: api.ErrBackendDown})
	m = next.(Model)
	if m.BackendOnline() {
		t.Error("failed probe should mark backend offline")
	}
}
