// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// config_cmd.go - Configuration command handler for the uwc CLI.
package cli

import (
	"fmt"
	"os"

	"github.com/jeranaias/uwc-tui/internal/config"
)

// HandleConfig dispatches "uwc config" subcommands.
func HandleConfig(args Args) error {
	switch args.Subcommand {
	case "", "show":
		return configShow(args)
	case "get":
		return configGet(args)
	case "set":
		return configSet(args)
	case "path":
		return configPath()
	case "keys":
		for _, key := range config.GetAllKeys() {
			fmt.Println(key)
		}
		return nil
	default:
		return &UsageError{Message: "usage: uwc config [show|get <key>|set <key> <value>|path|keys]"}
	}
}

func configShow(args Args) error {
	cfg := config.Global()
	if args.JSON {
		return outputJSON(cfg)
	}
	fmt.Println(TitleStyle.Render("Configuration"))
	fmt.Println()
	for _, key := range config.GetAllKeys() {
		value, err := cfg.Get(key)
		if err != nil {
			continue
		}
		printKV(key, fmt.Sprintf("%v", value))
	}
	return nil
}

func configGet(args Args) error {
	if len(args.Raw) < 2 {
		return &UsageError{Message: "usage: uwc config get <key>"}
	}
	value, err := config.Global().Get(args.Raw[1])
	if err != nil {
		return &ConfigError{Message: err.Error()}
	}
	fmt.Printf("%v\n", value)
	return nil
}

func configSet(args Args) error {
	if len(args.Raw) < 3 {
		return &UsageError{Message: "usage: uwc config set <key> <value>"}
	}
	key, value := args.Raw[1], args.Raw[2]

	cfg := config.Global().Clone()
	if err := cfg.Set(key, value); err != nil {
		return &ConfigError{Message: err.Error()}
	}
	if err := cfg.Validate(); err != nil {
		return &ConfigError{Message: err.Error(), Err: err}
	}
	if err := config.Save(cfg); err != nil {
		return &ConfigError{Message: "could not save config", Err: err}
	}
	config.SetGlobal(cfg)

	fmt.Println(SuccessStyle.Render("Set ") + key + " = " + value)
	return nil
}

func configPath() error {
	path, err := config.ConfigPathTOML()
	if err != nil {
		return &ConfigError{Message: "could not resolve config directory", Err: err}
	}
	fmt.Println(path)
	if _, err := os.Stat(path); os.IsNotExist(err) {
		fmt.Println(MutedStyle.Render("(not created yet; defaults are in effect)"))
	}
	return nil
}
