// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package config

import (
	"os"
	"path/filepath"
	"sync"
	"testing"
)

// =============================================================================
// DEFAULTS AND VALIDATION TESTS
// =============================================================================

func TestDefault_IsValid(t *testing.T) {
	if err := Default().Validate(); err != nil {
		t.Fatalf("Default() does not validate: %v", err)
	}
}

func TestValidate_Errors(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"empty backend url", func(c *Config) { c.Backend.URL = "" }},
		{"bad backend url", func(c *Config) { c.Backend.URL = "not a url" }},
		{"zero timeout", func(c *Config) { c.Backend.TimeoutSecs = 0 }},
		{"huge chat timeout", func(c *Config) { c.Backend.ChatTimeoutSecs = 100000 }},
		{"zero max concurrent", func(c *Config) { c.Upload.MaxConcurrent = 0 }},
		{"negative history cap", func(c *Config) { c.History.MaxEntries = -1 }},
		{"bad theme", func(c *Config) { c.UI.Theme = "neon" }},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := Default()
			tc.mutate(cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("Validate() = nil, want error")
			}
		})
	}
}

func TestSetDefaults_FillsZeroValues(t *testing.T) {
	cfg := &Config{}
	cfg.SetDefaults()

	if cfg.Backend.URL != "http://127.0.0.1:8000" {
		t.Errorf("Backend.URL = %q", cfg.Backend.URL)
	}
	if cfg.Backend.TimeoutSecs != 30 || cfg.Backend.ChatTimeoutSecs != 120 {
		t.Errorf("timeouts = %d/%d, want 30/120", cfg.Backend.TimeoutSecs, cfg.Backend.ChatTimeoutSecs)
	}
	if cfg.UI.Theme != "dark" {
		t.Errorf("UI.Theme = %q", cfg.UI.Theme)
	}
}

// =============================================================================
// LOAD / SAVE TESTS
// =============================================================================

func TestLoadFromPath_TOML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	content := `
[backend]
url = "http://10.0.0.5:9000"
timeout_secs = 10
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFromPath(path)
	if err != nil {
		t.Fatalf("LoadFromPath() error: %v", err)
	}
	if cfg.Backend.URL != "http://10.0.0.5:9000" {
		t.Errorf("Backend.URL = %q", cfg.Backend.URL)
	}
	if cfg.Backend.TimeoutSecs != 10 {
		t.Errorf("Backend.TimeoutSecs = %d, want 10", cfg.Backend.TimeoutSecs)
	}
	// Unset fields fall back to defaults.
	if cfg.Backend.ChatTimeoutSecs != 120 {
		t.Errorf("Backend.ChatTimeoutSecs = %d, want default 120", cfg.Backend.ChatTimeoutSecs)
	}
}

func TestLoadFromPath_JSON(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")
	content := `{"backend": {"url": "http://10.0.0.5:9000"}, "ui": {"theme": "light"}}`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFromPath(path)
	if err != nil {
		t.Fatalf("LoadFromPath() error: %v", err)
	}
	if cfg.UI.Theme != "light" {
		t.Errorf("UI.Theme = %q, want light", cfg.UI.Theme)
	}
}

func TestLoadFromPath_InvalidRejected(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	content := `
[ui]
theme = "neon"
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := LoadFromPath(path); err == nil {
		t.Error("LoadFromPath() = nil error for invalid config")
	}
}

// =============================================================================
// ENVIRONMENT OVERRIDE TESTS
// =============================================================================

func TestApplyEnvOverrides(t *testing.T) {
	t.Setenv("UWC_BACKEND_URL", "http://enved:8000")
	t.Setenv("UWC_TIMEOUT", "45")
	t.Setenv("UWC_CHAT_TIMEOUT", "bogus")
	t.Setenv("UWC_NO_HISTORY", "true")

	cfg := Default()
	cfg.ApplyEnvOverrides()

	if cfg.Backend.URL != "http://enved:8000" {
		t.Errorf("Backend.URL = %q", cfg.Backend.URL)
	}
	if cfg.Backend.TimeoutSecs != 45 {
		t.Errorf("Backend.TimeoutSecs = %d, want 45", cfg.Backend.TimeoutSecs)
	}
	// Unparseable values leave the config untouched.
	if cfg.Backend.ChatTimeoutSecs != 120 {
		t.Errorf("Backend.ChatTimeoutSecs = %d, want 120", cfg.Backend.ChatTimeoutSecs)
	}
	if cfg.History.Enabled {
		t.Error("History.Enabled = true, want false")
	}
}

// =============================================================================
// DOT NOTATION TESTS
// =============================================================================

func TestGetSet_DotNotation(t *testing.T) {
	cfg := Default()

	if err := cfg.Set("backend.url", "http://set:1234"); err != nil {
		t.Fatalf("Set() error: %v", err)
	}
	got, err := cfg.Get("backend.url")
	if err != nil {
		t.Fatalf("Get() error: %v", err)
	}
	if got != "http://set:1234" {
		t.Errorf("Get() = %v", got)
	}

	// String-to-int conversion
	if err := cfg.Set("backend.timeout_secs", "77"); err != nil {
		t.Fatalf("Set(int from string) error: %v", err)
	}
	if cfg.Backend.TimeoutSecs != 77 {
		t.Errorf("TimeoutSecs = %d, want 77", cfg.Backend.TimeoutSecs)
	}

	// String-to-bool conversion
	if err := cfg.Set("history.enabled", "false"); err != nil {
		t.Fatalf("Set(bool from string) error: %v", err)
	}
	if cfg.History.Enabled {
		t.Error("History.Enabled = true, want false")
	}

	if err := cfg.Set("nope.nothing", "x"); err == nil {
		t.Error("Set(unknown key) = nil error")
	}
	if _, err := cfg.Get("backend.nothing"); err == nil {
		t.Error("Get(unknown key) = nil error")
	}
}

func TestGetAllKeys_Resolvable(t *testing.T) {
	cfg := Default()
	for _, key := range GetAllKeys() {
		if _, err := cfg.Get(key); err != nil {
			t.Errorf("Get(%q) error: %v", key, err)
		}
	}
}

// =============================================================================
// CONCURRENCY TESTS
// =============================================================================

// TestConfig_ConcurrentAccess tests that Global(), SetGlobal(), and ReloadGlobal()
// can be safely called concurrently without race conditions.
// Run with: go test -race -v ./internal/config/
func TestConfig_ConcurrentAccess(t *testing.T) {
	ResetGlobalForTesting()

	var wg sync.WaitGroup

	// 50 writers using SetGlobal, 50 readers using Global
	for i := 0; i < 50; i++ {
		wg.Add(2)

		go func() {
			defer wg.Done()
			SetGlobal(Default())
		}()

		go func() {
			defer wg.Done()
			if Global() == nil {
				t.Error("Global() returned nil")
			}
		}()
	}

	wg.Wait()
}
