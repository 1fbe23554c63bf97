// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

/*
Package cli implements the non-TUI command surface of uwc.

Every invocation other than the bare TUI goes through this package: one-shot
questions, the readline chat REPL, document management, backend status,
configuration, and local query history.

# Key Components

  - Parse / Run: argument parsing and command dispatch
  - HandleAsk: single question with rendered answer and grounding summary
  - HandleChat: interactive REPL with liner-backed input history
  - HandleDocs: list, bulk upload (rate-limited), and delete documents
  - HandleStatus / HandleConfig / HandleHistory: operational commands
  - ExitCode: maps errors to shell exit codes

# Usage

	cmd, args := cli.Parse(os.Args[1:])
	if cmd != cli.CmdTUI {
		cli.Exit(cli.Run(cmd, args))
	}

Output styling respects NO_COLOR, FORCE_COLOR, and TTY detection; --json
switches supported commands to machine-readable output.
*/
package cli
