// uwc - terminal companion for the underwriting RAG backend.
//
// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later
package main

import (
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/uwc-tui/internal/api"
	"github.com/jeranaias/uwc-tui/internal/cli"
	"github.com/jeranaias/uwc-tui/internal/config"
	"github.com/jeranaias/uwc-tui/internal/history"
	"github.com/jeranaias/uwc-tui/internal/session"
	"github.com/jeranaias/uwc-tui/internal/ui/chat"
	"github.com/jeranaias/uwc-tui/internal/ui/documents"
	"github.com/jeranaias/uwc-tui/internal/ui/styles"
)

// Version information (set at build time)
var (
	Version   = "0.1.0"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

func init() {
	cli.Version = Version
	cli.GitCommit = GitCommit
	cli.BuildDate = BuildDate
}

// =============================================================================
// APP MODEL
// =============================================================================

// View identifies the active top-level view.
type View int

const (
	ViewChat View = iota
	ViewDocuments
)

// App is the root Bubble Tea model: a tab bar over the chat and documents
// views. Async results are routed to their owning view regardless of which
// tab is active, so uploads and chat calls keep progressing off-screen.
type App struct {
	theme     *styles.Theme
	chat      chat.Model
	documents documents.Model
	active    View
	width     int
	height    int
}

// NewApp wires the views to a shared client and session.
func NewApp(client *api.Client, sessions *session.Manager, store *history.Store) App {
	theme := styles.NewTheme()
	chatModel := chat.New(theme, client, sessions)
	if store != nil {
		chatModel = chatModel.WithHistory(store)
	}
	return App{
		theme:     theme,
		chat:      chatModel,
		documents: documents.New(theme, client),
	}
}

func (a App) Init() tea.Cmd {
	return tea.Batch(a.chat.Init(), a.documents.Init())
}

func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.theme.SetSize(msg.Width, msg.Height)
		// Children get the area below the tab bar.
		child := tea.WindowSizeMsg{Width: msg.Width, Height: msg.Height - 2}
		a = a.forwardToChat(child)
		a = a.forwardToDocuments(child)
		return a, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "ctrl+q":
			return a, tea.Quit
		case "ctrl+t":
			if a.active == ViewChat {
				a.active = ViewDocuments
			} else {
				a.active = ViewChat
			}
			return a, nil
		}
		// Keys go to the active view only.
		if a.active == ViewChat {
			var cmd tea.Cmd
			a, cmd = a.updateChat(msg)
			return a, cmd
		}
		var cmd tea.Cmd
		a, cmd = a.updateDocuments(msg)
		return a, cmd
	}

	// Everything else (command results, ticks) goes to both views; each
	// ignores message types it does not own.
	var cmds []tea.Cmd
	var cmd tea.Cmd
	a, cmd = a.updateChat(msg)
	cmds = append(cmds, cmd)
	a, cmd = a.updateDocuments(msg)
	cmds = append(cmds, cmd)
	return a, tea.Batch(cmds...)
}

func (a App) View() string {
	var body string
	if a.active == ViewChat {
		body = a.chat.View()
	} else {
		body = a.documents.View()
	}
	return a.renderTabBar() + "\n" + body
}

func (a App) renderTabBar() string {
	chatTab := a.theme.TabInactive.Render(" Chat ")
	docsTab := a.theme.TabInactive.Render(" Documents ")
	if a.active == ViewChat {
		chatTab = a.theme.TabActive.Render(" Chat ")
	} else {
		docsTab = a.theme.TabActive.Render(" Documents ")
	}
	hint := a.theme.ShortcutDesc.Render("  ctrl+t to switch")
	return a.theme.Header.Render(a.theme.HeaderTitle.Render("uwc") + "  " + chatTab + docsTab + hint)
}

func (a App) updateChat(msg tea.Msg) (App, tea.Cmd) {
	updated, cmd := a.chat.Update(msg)
	a.chat = updated.(chat.Model)
	return a, cmd
}

func (a App) updateDocuments(msg tea.Msg) (App, tea.Cmd) {
	updated, cmd := a.documents.Update(msg)
	a.documents = updated.(documents.Model)
	return a, cmd
}

func (a App) forwardToChat(msg tea.Msg) App {
	a, _ = a.updateChat(msg)
	return a
}

func (a App) forwardToDocuments(msg tea.Msg) App {
	a, _ = a.updateDocuments(msg)
	return a
}

// =============================================================================
// ENTRY POINT
// =============================================================================

func main() {
	cmd, args := cli.Parse(os.Args[1:])
	if cmd != cli.CmdTUI {
		cli.Exit(cli.Run(cmd, args))
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Warning: could not load config, using defaults:", err)
		cfg = config.Default()
	}
	config.SetGlobal(cfg)
	if args.Backend != "" {
		cfg.Backend.URL = args.Backend
	}

	clientCfg := api.DefaultConfig()
	if cfg.Backend.URL != "" {
		clientCfg.BaseURL = cfg.Backend.URL
	}
	if cfg.Backend.TimeoutSecs > 0 {
		clientCfg.Timeout = time.Duration(cfg.Backend.TimeoutSecs) * time.Second
	}
	if cfg.Backend.ChatTimeoutSecs > 0 {
		clientCfg.ChatTimeout = time.Duration(cfg.Backend.ChatTimeoutSecs) * time.Second
	}
	client := api.NewClientWithConfig(clientCfg)
	sessions := session.NewManager()

	var store *history.Store
	if cfg.History.Enabled {
		if path, err := cfg.HistoryPath(); err == nil {
			if s, err := history.Open(path, cfg.History.MaxEntries); err == nil {
				store = s
				defer store.Close()
			}
		}
	}

	// Live config reload refreshes settings read through config.Global()
	// (health probe interval, history). The client keeps the URL and
	// timeouts it was constructed with; changing those needs a restart.
	if watcher, err := config.NewWatcher(nil); err == nil {
		if err := watcher.Watch(); err == nil {
			defer watcher.Close()
		}
	}

	program := tea.NewProgram(NewApp(client, sessions, store), tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
