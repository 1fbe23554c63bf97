// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// cli.go - CLI parsing and command handlers for uwc.
package cli

import (
	"fmt"
	"os"
	"strings"
)

// Version information (can be overridden at build time)
var (
	Version   = "0.1.0"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// Command represents the CLI command to execute.
type Command int

const (
	CmdTUI Command = iota
	CmdAsk
	CmdChat
	CmdDocs
	CmdStatus
	CmdConfig
	CmdHistory
	CmdVersion
	CmdHelp
)

// Args holds parsed CLI arguments.
type Args struct {
	// Global flags
	Quiet   bool
	Verbose bool
	JSON    bool
	Backend string // Backend URL override

	// Command-specific
	Query      string
	Subcommand string

	// Raw args remaining after flag parsing
	Raw []string
}

const usageText = `uwc - AI-assisted underwriting companion

Uwc is a terminal client for the underwriting RAG backend. Upload policy
documents, ask questions about the risk, and review how well each answer is
grounded in the sources.

Usage:
  uwc                        Start the TUI (default)
  uwc ask "question"         Ask a single question
  uwc chat                   Interactive chat session
  uwc docs [list|upload|delete]  Document management
  uwc status, s              Backend status
  uwc config [show|get|set|path] Configuration
  uwc history [list|search|clear] Local query history
  uwc version                Show version
  uwc help                   Show this help

Flags:
  --backend URL   Override the backend URL for this invocation
  --json          Machine-readable output where supported
  -q, --quiet     Minimal output
  -v, --verbose   Verbose output

Examples:
  uwc ask "What is the dwelling coverage limit?"
  uwc docs upload policy.pdf survey.docx
  uwc docs delete 8c1f9b2a
  uwc config set backend.url http://10.0.0.5:8000
  uwc history search "roof"
`

// Usage prints command usage to stdout.
func Usage() {
	fmt.Print(usageText)
}

// Parse turns os.Args-style arguments (program name excluded) into a
// command and its arguments.
func Parse(argv []string) (Command, Args) {
	args := Args{}
	var positional []string

	i := 0
	for i < len(argv) {
		arg := argv[i]
		switch {
		case arg == "--json":
			args.JSON = true
		case arg == "-q" || arg == "--quiet":
			args.Quiet = true
		case arg == "-v" || arg == "--verbose":
			args.Verbose = true
		case arg == "--backend" && i+1 < len(argv):
			i++
			args.Backend = argv[i]
		case strings.HasPrefix(arg, "--backend="):
			args.Backend = strings.TrimPrefix(arg, "--backend=")
		default:
			positional = append(positional, arg)
		}
		i++
	}

	if len(positional) == 0 {
		return CmdTUI, args
	}

	cmd := positional[0]
	rest := positional[1:]
	args.Raw = rest
	if len(rest) > 0 {
		args.Subcommand = rest[0]
	}

	switch cmd {
	case "ask":
		args.Query = strings.Join(rest, " ")
		return CmdAsk, args
	case "chat":
		return CmdChat, args
	case "docs", "documents":
		return CmdDocs, args
	case "status", "s":
		return CmdStatus, args
	case "config":
		return CmdConfig, args
	case "history":
		return CmdHistory, args
	case "version", "-V", "--version":
		return CmdVersion, args
	case "help", "-h", "--help":
		return CmdHelp, args
	default:
		// Bare text is treated as an ask for convenience.
		args.Query = strings.Join(positional, " ")
		return CmdAsk, args
	}
}

// Run dispatches a parsed command. CmdTUI is handled by the caller, which
// owns the Bubble Tea program.
func Run(cmd Command, args Args) error {
	switch cmd {
	case CmdAsk:
		return HandleAsk(args)
	case CmdChat:
		return HandleChat(args)
	case CmdDocs:
		return HandleDocs(args)
	case CmdStatus:
		return HandleStatus(args)
	case CmdConfig:
		return HandleConfig(args)
	case CmdHistory:
		return HandleHistory(args)
	case CmdVersion:
		fmt.Printf("uwc %s (%s, built %s)\n", Version, GitCommit, BuildDate)
		return nil
	case CmdHelp:
		Usage()
		return nil
	default:
		return &UsageError{Message: "unknown command"}
	}
}

// Exit prints err appropriately and exits with its code.
func Exit(err error) {
	if err == nil {
		os.Exit(ExitSuccess)
	}
	fmt.Fprintln(os.Stderr, ErrorStyle.Render("Error: ")+err.Error())
	os.Exit(ExitCode(err))
}
