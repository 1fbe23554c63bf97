// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package chat provides the chat view component for the TUI.
package chat

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/uwc-tui/internal/api"
	"github.com/jeranaias/uwc-tui/internal/config"
	"github.com/jeranaias/uwc-tui/internal/grounding"
	"github.com/jeranaias/uwc-tui/internal/history"
	"github.com/jeranaias/uwc-tui/internal/model"
	"github.com/jeranaias/uwc-tui/internal/session"
	"github.com/jeranaias/uwc-tui/internal/ui/styles"
)

// =============================================================================
// CHAT STATE
// =============================================================================

// State represents the current state of the chat view.
type State int

const (
	StateIdle     State = iota // Ready for a new question
	StateAwaiting              // Exactly one chat request outstanding
)

// =============================================================================
// CHAT MODEL
// =============================================================================

// Model is the Bubble Tea model for the chat view.
//
// Invariants it enforces:
//   - At most one chat request is outstanding; submits while awaiting are
//     no-ops and the typed text is preserved.
//   - Uploads run concurrently and never block the question flow; each one
//     owns a pending transcript slot resolved in place by seq.
//   - At most one low-confidence banner is visible, armed only by a
//     medium or high risk rating, dismissed explicitly or by scrolling.
type Model struct {
	// State
	state State

	// Styling
	theme *styles.Theme

	// Dimensions
	width  int
	height int

	// Backend
	client   *api.Client
	sessions *session.Manager
	history  *history.Store // nil when history is disabled

	// Conversation
	transcript   *model.Transcript
	pendingQuery string // Query text of the outstanding request

	// Per-message view state, keyed by transcript seq
	expanded map[int64]bool
	focusSeq int64 // Message whose details Tab toggles

	// Outstanding uploads: pending slot seq -> filename
	uploads map[int64]string

	// Low-confidence banner; 0 means no banner visible
	bannerSeq int64

	// Backend reachability (from periodic health probes)
	backendOnline bool
	healthChecked bool

	// UI components
	viewport viewport.Model
	input    textinput.Model
	spinner  spinner.Model

	// Key bindings
	keyMap KeyMap

	// Transient status line text
	statusMsg string

	// Help overlay
	showHelp bool
}

// New creates a new chat model bound to the given backend client and session.
func New(theme *styles.Theme, client *api.Client, sessions *session.Manager) Model {
	ti := textinput.New()
	ti.Prompt = "> "
	ti.Placeholder = "Ask about the submission, or /upload <file>..."
	ti.CharLimit = 4096
	ti.Focus()

	vp := viewport.New(80, 20)
	vp.SetContent("")

	sp := spinner.New()
	sp.Spinner = spinner.Spinner{
		Frames: styles.BrailleSpinner.Frames,
		FPS:    styles.BrailleSpinner.Duration(),
	}
	sp.Style = theme.Spinner

	return Model{
		state:      StateIdle,
		theme:      theme,
		client:     client,
		sessions:   sessions,
		transcript: model.NewTranscript(sessions.SessionID()),
		expanded:   make(map[int64]bool),
		uploads:    make(map[int64]string),
		viewport:   vp,
		input:      ti,
		spinner:    sp,
		keyMap:     DefaultKeyMap(),
	}
}

// WithHistory attaches a local history store. Exchanges are recorded
// best-effort; a nil store disables recording.
func (m Model) WithHistory(store *history.Store) Model {
	m.history = store
	return m
}

// =============================================================================
// ACCESSORS
// =============================================================================

// State returns the current chat state.
func (m Model) State() State { return m.state }

// Transcript exposes the conversation for the status bar and tests.
func (m Model) Transcript() *model.Transcript { return m.transcript }

// BannerVisible reports whether the low-confidence banner is showing.
func (m Model) BannerVisible() bool { return m.bannerSeq != 0 }

// IsExpanded reports whether the details of the message at seq are open.
func (m Model) IsExpanded(seq int64) bool { return m.expanded[seq] }

// OutstandingUploads returns the number of uploads still in flight.
func (m Model) OutstandingUploads() int { return len(m.uploads) }

// BackendOnline reports the last known backend reachability.
func (m Model) BackendOnline() bool { return m.backendOnline }

// =============================================================================
// BUBBLE TEA INTERFACE
// =============================================================================

// Init initializes the model: cursor blink, and the first health probe.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		textinput.Blink,
		HealthCmd(m.client),
		HealthTickCmd(m.healthInterval()),
	)
}

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case tea.KeyMsg:
		return m.handleKey(msg)

	case spinner.TickMsg:
		if m.state == StateAwaiting || len(m.uploads) > 0 {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			m.updateViewport(false)
			return m, cmd
		}
		return m, nil

	case ChatResponseMsg:
		return m.handleChatResponse(msg)

	case ChatErrorMsg:
		return m.handleChatError(msg)

	case UploadResultMsg:
		return m.handleUploadResult(msg)

	case HealthStatusMsg:
		m.backendOnline = msg.Err == nil && msg.Status != nil && msg.Status.OK()
		m.healthChecked = true
		return m, nil

	case HealthTickMsg:
		return m, tea.Batch(HealthCmd(m.client), HealthTickCmd(m.healthInterval()))

	case SessionClearedMsg:
		if msg.Err != nil {
			m.statusMsg = "Server session cleanup failed; local session is fresh anyway"
		}
		return m, nil

	case HistoryRecordedMsg:
		if msg.Err != nil {
			m.statusMsg = "Could not save this exchange to history"
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// View renders the chat view.
func (m Model) View() string {
	return m.renderChat()
}

// =============================================================================
// RESIZE
// =============================================================================

func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.width = msg.Width
	m.height = msg.Height
	m.theme.SetSize(msg.Width, msg.Height)

	m.viewport.Width = msg.Width
	m.viewport.Height = m.feedHeight()
	m.input.Width = msg.Width - 6

	m.updateViewport(false)
	return m, nil
}

// feedHeight is the viewport height after the input, status bar, and any
// visible banner are laid out.
func (m Model) feedHeight() int {
	h := m.height - 4 // input box + status bar
	if m.bannerSeq != 0 {
		h -= 3
	}
	if h < 3 {
		h = 3
	}
	return h
}

// =============================================================================
// KEY HANDLING
// =============================================================================

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.showHelp {
		m.showHelp = false
		if key.Matches(msg, m.keyMap.Quit) {
			return m, tea.Quit
		}
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keyMap.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keyMap.Submit):
		return m.handleSubmit()

	// Scrolling the feed counts as acknowledging the warning banner.
	case key.Matches(msg, m.keyMap.Up):
		m.dismissBanner()
		m.viewport.LineUp(1)
		return m, nil
	case key.Matches(msg, m.keyMap.Down):
		m.dismissBanner()
		m.viewport.LineDown(1)
		return m, nil
	case key.Matches(msg, m.keyMap.PageUp):
		m.dismissBanner()
		m.viewport.HalfViewUp()
		return m, nil
	case key.Matches(msg, m.keyMap.PageDown):
		m.dismissBanner()
		m.viewport.HalfViewDown()
		return m, nil
	case key.Matches(msg, m.keyMap.Home):
		m.dismissBanner()
		m.viewport.GotoTop()
		return m, nil
	case key.Matches(msg, m.keyMap.End):
		m.dismissBanner()
		m.viewport.GotoBottom()
		return m, nil

	case key.Matches(msg, m.keyMap.ToggleDetails):
		return m.toggleDetails()

	case key.Matches(msg, m.keyMap.FocusPrev):
		m.moveFocus(-1)
		m.updateViewport(false)
		return m, nil
	case key.Matches(msg, m.keyMap.FocusNext):
		m.moveFocus(1)
		m.updateViewport(false)
		return m, nil

	case key.Matches(msg, m.keyMap.DismissBanner):
		if m.bannerSeq != 0 {
			m.dismissBanner()
			return m, nil
		}
		m.input.Reset()
		return m, nil

	case key.Matches(msg, m.keyMap.ClearSession):
		return m.clearSession()

	case key.Matches(msg, m.keyMap.Help):
		m.showHelp = true
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *Model) dismissBanner() {
	if m.bannerSeq != 0 {
		m.bannerSeq = 0
		m.viewport.Height = m.feedHeight()
	}
}

// toggleDetails flips the expanded state of the focused message.
func (m Model) toggleDetails() (tea.Model, tea.Cmd) {
	seq := m.focusSeq
	if seq == 0 {
		if last := m.transcript.LastAssistantMessage(); last != nil && last.HasDetails() {
			seq = last.Seq
		}
	}
	if seq == 0 {
		return m, nil
	}
	m.expanded[seq] = !m.expanded[seq]
	m.focusSeq = seq
	m.updateViewport(false)
	return m, nil
}

// moveFocus walks the focus between messages that carry expandable details.
func (m *Model) moveFocus(dir int) {
	var seqs []int64
	for _, msg := range m.transcript.History() {
		if msg.HasDetails() {
			seqs = append(seqs, msg.Seq)
		}
	}
	if len(seqs) == 0 {
		return
	}

	idx := -1
	for i, s := range seqs {
		if s == m.focusSeq {
			idx = i
			break
		}
	}
	if idx == -1 {
		m.focusSeq = seqs[len(seqs)-1]
		return
	}

	idx += dir
	if idx < 0 {
		idx = 0
	}
	if idx >= len(seqs) {
		idx = len(seqs) - 1
	}
	m.focusSeq = seqs[idx]
}

// =============================================================================
// SUBMIT
// =============================================================================

func (m Model) handleSubmit() (tea.Model, tea.Cmd) {
	parsed := ParseInput(m.input.Value())

	switch parsed.Kind {
	case InputEmpty:
		m.input.Reset()
		return m, nil

	case InputQuery:
		return m.submitQuery(parsed.Query)

	case InputUpload:
		return m.submitUploads(parsed.Paths)

	case InputClear:
		m.input.Reset()
		return m.clearSession()

	case InputHelp:
		m.input.Reset()
		m.showHelp = true
		return m, nil

	default:
		m.statusMsg = fmt.Sprintf("Unknown command %s (try /help)", parsed.Raw)
		m.input.Reset()
		return m, nil
	}
}

// submitQuery starts the single outstanding chat request. While one is in
// flight further submits are no-ops and the typed text stays in the input.
func (m Model) submitQuery(query string) (tea.Model, tea.Cmd) {
	if m.state == StateAwaiting {
		m.statusMsg = "Still working on the previous question"
		return m, nil
	}

	m.transcript.AddUserMessage(query)
	m.pendingQuery = query
	m.state = StateAwaiting
	m.statusMsg = ""
	m.sessions.RecordQuery()
	m.input.Reset()
	m.updateViewport(true)

	return m, tea.Batch(
		m.spinner.Tick,
		ChatCmd(m.client, query, m.sessions.SessionID()),
	)
}

// submitUploads validates each path locally and fires one upload command per
// accepted file. Files outside the allow-list never reach the network.
func (m Model) submitUploads(paths []string) (tea.Model, tea.Cmd) {
	if len(paths) == 0 {
		m.statusMsg = "Usage: /upload <file> [file...]"
		m.input.Reset()
		return m, nil
	}
	if len(m.uploads) > 0 {
		m.statusMsg = "Uploads already in progress; wait for them to finish"
		return m, nil
	}

	var cmds []tea.Cmd
	for _, path := range paths {
		filename := filepath.Base(path)
		if !AllowedUpload(filename) {
			m.transcript.AddSystemMessage(fmt.Sprintf(
				"%s was not uploaded: only %s files are accepted.",
				filename, AllowedExtensionsLabel))
			continue
		}

		slot := m.transcript.AddPendingMessage(fmt.Sprintf("Uploading %s...", filename))
		m.uploads[slot.Seq] = filename
		cmds = append(cmds, UploadCmd(m.client, path, filename, m.sessions.SessionID(), slot.Seq))
	}

	m.input.Reset()
	m.updateViewport(true)

	if len(cmds) == 0 {
		return m, nil
	}
	cmds = append(cmds, m.spinner.Tick)
	return m, tea.Batch(cmds...)
}

// =============================================================================
// RESPONSE HANDLING
// =============================================================================

func (m Model) handleChatResponse(msg ChatResponseMsg) (tea.Model, tea.Cmd) {
	// An answer from a cleared session must not be folded in as the new
	// session's answer; the new session's own request is still in flight.
	if msg.SessionID != m.sessions.SessionID() {
		return m, nil
	}
	if m.state != StateAwaiting {
		return m, nil
	}

	answer := m.transcript.AddAssistantMessage(msg.Response)
	m.state = StateIdle
	m.pendingQuery = ""
	m.focusSeq = answer.Seq

	// A medium or high risk rating arms the banner; low never does.
	if grounding.ShouldWarn(msg.Response.Hallucination.Rating) {
		m.bannerSeq = answer.Seq
		m.viewport.Height = m.feedHeight()
	}

	m.updateViewport(true)

	if m.history == nil {
		return m, nil
	}
	return m, RecordHistoryCmd(m.history, history.Entry{
		SessionID:  m.sessions.SessionID(),
		Query:      msg.Query,
		Answer:     msg.Response.Answer,
		Score:      msg.Response.Hallucination.OverallScore,
		Rating:     msg.Response.Hallucination.Rating,
		NumSources: len(msg.Response.Sources),
		NumActions: len(msg.Response.Actions),
		AskedAt:    time.Now(),
	})
}

func (m Model) handleChatError(msg ChatErrorMsg) (tea.Model, tea.Cmd) {
	if msg.SessionID != m.sessions.SessionID() {
		return m, nil
	}
	if m.state != StateAwaiting {
		return m, nil
	}

	m.transcript.AddErrorMessage(chatErrorText(msg.Err))
	m.state = StateIdle
	m.pendingQuery = ""
	m.updateViewport(true)
	return m, nil
}

// chatErrorText renders a failure as transcript wording, distinguishing an
// unreachable backend from a server-reported problem.
func chatErrorText(err error) string {
	if api.IsUnreachable(err) {
		return "Cannot reach the underwriting backend. Check that the service is running, then ask again."
	}
	if detail := api.Detail(err); detail != "" {
		return "The backend reported a problem: " + detail
	}
	return "Something went wrong: " + err.Error()
}

func (m Model) handleUploadResult(msg UploadResultMsg) (tea.Model, tea.Cmd) {
	// Seq numbering restarts on session clear, so a result from the old
	// session can collide with a live pending slot in the new one. Drop it.
	if msg.SessionID != m.sessions.SessionID() {
		return m, nil
	}
	delete(m.uploads, msg.Seq)

	if msg.Err != nil {
		m.transcript.Resolve(msg.Seq, fmt.Sprintf(
			"Upload of %s failed: %s", msg.Filename, uploadErrorText(msg.Err)), true)
	} else {
		m.transcript.Resolve(msg.Seq, fmt.Sprintf(
			"Indexed %s: %d chunks across %d pages.",
			msg.Response.Filename, msg.Response.NumChunks, msg.Response.NumPages), false)
		m.sessions.RecordUpload()
	}

	m.updateViewport(false)
	return m, nil
}

func uploadErrorText(err error) string {
	if api.IsUnreachable(err) {
		return "the backend is unreachable"
	}
	if detail := api.Detail(err); detail != "" {
		return detail
	}
	return err.Error()
}

// =============================================================================
// SESSION CLEAR
// =============================================================================

// clearSession resets the transcript under a fresh session ID and asks the
// backend, best effort, to drop the old session's conversational memory.
func (m Model) clearSession() (tea.Model, tea.Cmd) {
	oldID := m.sessions.SessionID()
	newID := m.sessions.Renew()

	m.transcript.Reset(newID)
	m.expanded = make(map[int64]bool)
	m.uploads = make(map[int64]string)
	m.focusSeq = 0
	m.bannerSeq = 0
	m.pendingQuery = ""
	m.state = StateIdle
	m.statusMsg = "Started a new session"
	m.updateViewport(true)

	return m, ClearSessionCmd(m.client, oldID)
}

// =============================================================================
// VIEWPORT SYNC
// =============================================================================

// updateViewport re-renders the feed. gotoBottom pins the view to the newest
// message; otherwise the scroll position is preserved.
func (m *Model) updateViewport(gotoBottom bool) {
	m.viewport.SetContent(m.renderMessages())
	if gotoBottom {
		m.viewport.GotoBottom()
	}
}

// healthInterval reads the probe interval from config, with a sane floor.
func (m Model) healthInterval() time.Duration {
	secs := 15
	if cfg := config.Global(); cfg != nil && cfg.Backend.HealthIntervalSecs > 0 {
		secs = cfg.Backend.HealthIntervalSecs
	}
	return time.Duration(secs) * time.Second
}
