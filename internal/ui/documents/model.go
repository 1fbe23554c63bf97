// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package documents provides the document library view for the TUI.
package documents

import (
	"fmt"
	"path/filepath"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/uwc-tui/internal/api"
	"github.com/jeranaias/uwc-tui/internal/model"
	"github.com/jeranaias/uwc-tui/internal/ui/styles"
)

// =============================================================================
// VIEW MODES
// =============================================================================

// Mode is the interaction mode of the documents view.
type Mode int

const (
	ModeBrowse     Mode = iota // Cursor navigation over the list
	ModeFilter                 // Typing into the filter input
	ModeUpload                 // Typing an upload path
	ModeConfirming             // Waiting for delete confirmation
)

// =============================================================================
// DOCUMENTS MODEL
// =============================================================================

// Model is the Bubble Tea model for the document library.
//
// The list is server-authoritative: a load replaces it wholesale, deletes
// remove entries only after the server confirms, and uploads prepend the
// new document on success. A failed load leaves the list untouched.
type Model struct {
	mode Mode

	theme *styles.Theme

	width  int
	height int

	client *api.Client
	list   *model.DocumentList

	cursor  int
	loading bool

	// Delete confirmation targets (IDs pending y/n)
	confirmIDs []string

	// In-flight uploads started from this view
	uploading int

	filterInput textinput.Model
	pathInput   textinput.Model
	spinner     spinner.Model

	keyMap KeyMap

	statusMsg string
}

// New creates the documents view bound to the backend client.
func New(theme *styles.Theme, client *api.Client) Model {
	fi := textinput.New()
	fi.Prompt = "Filter: "
	fi.Placeholder = "document name..."
	fi.CharLimit = 128

	pi := textinput.New()
	pi.Prompt = "Upload: "
	pi.Placeholder = "/path/to/policy.pdf"
	pi.CharLimit = 1024

	sp := spinner.New()
	sp.Spinner = spinner.Spinner{
		Frames: styles.LineSpinner.Frames,
		FPS:    styles.LineSpinner.Duration(),
	}
	sp.Style = theme.Spinner

	return Model{
		mode:        ModeBrowse,
		loading:     true,
		theme:       theme,
		client:      client,
		list:        model.NewDocumentList(),
		filterInput: fi,
		pathInput:   pi,
		spinner:     sp,
		keyMap:      DefaultKeyMap(),
	}
}

// =============================================================================
// ACCESSORS
// =============================================================================

// Mode returns the current interaction mode.
func (m Model) Mode() Mode { return m.mode }

// List exposes the document list for the app model and tests.
func (m Model) List() *model.DocumentList { return m.list }

// Cursor returns the cursor position within the filtered view.
func (m Model) Cursor() int { return m.cursor }

// Loading reports whether an inventory load is in flight.
func (m Model) Loading() bool { return m.loading }

// =============================================================================
// BUBBLE TEA INTERFACE
// =============================================================================

// Init loads the inventory on entry. The model starts in the loading state.
func (m Model) Init() tea.Cmd {
	return tea.Batch(LoadCmd(m.client), m.spinner.Tick)
}

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.filterInput.Width = msg.Width - 12
		m.pathInput.Width = msg.Width - 12
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case spinner.TickMsg:
		if m.loading || m.uploading > 0 {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			return m, cmd
		}
		return m, nil

	case LoadedMsg:
		return m.handleLoaded(msg)

	case DeleteResultMsg:
		return m.handleDeleteResult(msg)

	case BulkDeleteResultMsg:
		return m.handleBulkDeleteResult(msg)

	case UploadResultMsg:
		return m.handleUploadResult(msg)
	}

	return m, nil
}

// View renders the documents view.
func (m Model) View() string {
	return m.render()
}

// =============================================================================
// KEY HANDLING
// =============================================================================

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.mode {
	case ModeFilter:
		return m.handleFilterKey(msg)
	case ModeUpload:
		return m.handleUploadKey(msg)
	case ModeConfirming:
		return m.handleConfirmKey(msg)
	}
	return m.handleBrowseKey(msg)
}

func (m Model) handleBrowseKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keyMap.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keyMap.Up):
		if m.cursor > 0 {
			m.cursor--
		}
		return m, nil

	case key.Matches(msg, m.keyMap.Down):
		if m.cursor < len(m.list.Filtered())-1 {
			m.cursor++
		}
		return m, nil

	case key.Matches(msg, m.keyMap.Select):
		if doc, ok := m.docAtCursor(); ok {
			m.list.ToggleSelect(doc.DocumentID)
		}
		return m, nil

	case key.Matches(msg, m.keyMap.SelectAll):
		if m.list.SelectionCount() == len(m.list.Filtered()) && m.list.SelectionCount() > 0 {
			m.list.ClearSelection()
		} else {
			m.list.SelectAllFiltered()
		}
		return m, nil

	case key.Matches(msg, m.keyMap.Delete):
		return m.startDelete()

	case key.Matches(msg, m.keyMap.Filter):
		m.mode = ModeFilter
		m.filterInput.SetValue(m.list.Filter())
		m.filterInput.Focus()
		return m, textinput.Blink

	case key.Matches(msg, m.keyMap.Sort):
		m.list.CycleSort()
		m.clampCursor()
		return m, nil

	case key.Matches(msg, m.keyMap.Upload):
		m.mode = ModeUpload
		m.pathInput.Reset()
		m.pathInput.Focus()
		return m, textinput.Blink

	case key.Matches(msg, m.keyMap.Reload):
		m.loading = true
		m.statusMsg = ""
		return m, tea.Batch(LoadCmd(m.client), m.spinner.Tick)

	case key.Matches(msg, m.keyMap.ClearFilter):
		if m.list.Filter() != "" {
			m.list.SetFilter("")
			m.clampCursor()
		} else {
			m.list.ClearSelection()
		}
		return m, nil
	}

	return m, nil
}

// handleFilterKey applies the filter live as the user types.
func (m Model) handleFilterKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEnter:
		m.mode = ModeBrowse
		m.filterInput.Blur()
		return m, nil
	case tea.KeyEsc:
		m.mode = ModeBrowse
		m.filterInput.Blur()
		m.filterInput.Reset()
		m.list.SetFilter("")
		m.clampCursor()
		return m, nil
	}

	var cmd tea.Cmd
	m.filterInput, cmd = m.filterInput.Update(msg)
	m.list.SetFilter(m.filterInput.Value())
	m.clampCursor()
	return m, cmd
}

func (m Model) handleUploadKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEnter:
		path := m.pathInput.Value()
		m.mode = ModeBrowse
		m.pathInput.Blur()
		if path == "" {
			return m, nil
		}
		filename := filepath.Base(path)
		if !model.AllowedUpload(filename) {
			m.statusMsg = fmt.Sprintf("%s rejected: only %s files are accepted", filename, model.AllowedUploadLabel)
			return m, nil
		}
		m.uploading++
		m.statusMsg = "Uploading " + filename + "..."
		return m, tea.Batch(UploadCmd(m.client, path), m.spinner.Tick)

	case tea.KeyEsc:
		m.mode = ModeBrowse
		m.pathInput.Blur()
		return m, nil
	}

	var cmd tea.Cmd
	m.pathInput, cmd = m.pathInput.Update(msg)
	return m, cmd
}

func (m Model) handleConfirmKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "Y":
		ids := m.confirmIDs
		m.confirmIDs = nil
		m.mode = ModeBrowse
		if len(ids) == 1 {
			filename := ""
			for _, d := range m.list.All() {
				if d.DocumentID == ids[0] {
					filename = d.Filename
					break
				}
			}
			return m, DeleteCmd(m.client, ids[0], filename)
		}
		return m, BulkDeleteCmd(m.client, ids)

	case "n", "N", "esc":
		m.confirmIDs = nil
		m.mode = ModeBrowse
		m.statusMsg = "Delete cancelled"
		return m, nil
	}
	return m, nil
}

// startDelete targets the selection when one exists, otherwise the document
// under the cursor, and asks for confirmation.
func (m Model) startDelete() (tea.Model, tea.Cmd) {
	ids := m.list.SelectedIDs()
	if len(ids) == 0 {
		doc, ok := m.docAtCursor()
		if !ok {
			return m, nil
		}
		ids = []string{doc.DocumentID}
	}

	m.confirmIDs = ids
	m.mode = ModeConfirming
	return m, nil
}

// =============================================================================
// RESULT HANDLING
// =============================================================================

func (m Model) handleLoaded(msg LoadedMsg) (tea.Model, tea.Cmd) {
	m.loading = false
	if msg.Err != nil {
		// Failed loads leave the current list untouched.
		m.statusMsg = "Could not load documents: " + loadErrorText(msg.Err)
		return m, nil
	}

	m.list.Replace(msg.Docs)
	m.clampCursor()
	m.statusMsg = fmt.Sprintf("%d documents indexed", m.list.Len())
	return m, nil
}

func (m Model) handleDeleteResult(msg DeleteResultMsg) (tea.Model, tea.Cmd) {
	if msg.Err != nil {
		m.statusMsg = "Delete failed: " + loadErrorText(msg.Err)
		return m, nil
	}

	m.list.Remove(msg.DocumentID)
	m.clampCursor()
	m.statusMsg = "Deleted " + msg.Filename
	return m, nil
}

func (m Model) handleBulkDeleteResult(msg BulkDeleteResultMsg) (tea.Model, tea.Cmd) {
	if msg.Err != nil {
		m.statusMsg = "Bulk delete failed: " + loadErrorText(msg.Err)
		return m, nil
	}

	var confirmed []string
	failed := 0
	for _, r := range msg.Response.Results {
		if r.Deleted {
			confirmed = append(confirmed, r.DocumentID)
		} else {
			failed++
		}
	}

	removed := m.list.RemoveAll(confirmed)
	m.clampCursor()

	if failed > 0 {
		m.statusMsg = fmt.Sprintf("Deleted %d documents, %d failed", removed, failed)
	} else {
		m.statusMsg = fmt.Sprintf("Deleted %d documents", removed)
	}
	return m, nil
}

func (m Model) handleUploadResult(msg UploadResultMsg) (tea.Model, tea.Cmd) {
	if m.uploading > 0 {
		m.uploading--
	}

	if msg.Err != nil {
		m.statusMsg = "Upload of " + msg.Filename + " failed: " + loadErrorText(msg.Err)
		return m, nil
	}

	m.list.Prepend(model.NewDocumentFromUpload(msg.Response))
	m.statusMsg = fmt.Sprintf("Indexed %s (%d chunks)", msg.Response.Filename, msg.Response.NumChunks)
	return m, nil
}

// =============================================================================
// HELPERS
// =============================================================================

// docAtCursor returns the document under the cursor in the filtered view.
func (m Model) docAtCursor() (model.Document, bool) {
	filtered := m.list.Filtered()
	if m.cursor < 0 || m.cursor >= len(filtered) {
		return model.Document{}, false
	}
	return filtered[m.cursor], true
}

// clampCursor keeps the cursor inside the filtered view after the list or
// filter changes.
func (m *Model) clampCursor() {
	n := len(m.list.Filtered())
	if n == 0 {
		m.cursor = 0
		return
	}
	if m.cursor >= n {
		m.cursor = n - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func loadErrorText(err error) string {
	if api.IsUnreachable(err) {
		return "backend unreachable"
	}
	if detail := api.Detail(err); detail != "" {
		return detail
	}
	return err.Error()
}
