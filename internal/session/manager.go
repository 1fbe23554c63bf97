// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package session tracks the backend chat session identity and activity.
package session

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/jeranaias/uwc-tui/internal/util"
)

// =============================================================================
// SESSION MANAGER
// =============================================================================

// Manager tracks the current backend session. The backend keys conversation
// memory by session ID, so renewing the ID is what actually clears the
// conversation server-side.
type Manager struct {
	mu sync.Mutex

	sessionID    string
	startTime    time.Time
	lastActivity time.Time

	queryCount  int
	uploadCount int

	// onRenew is called with the new session ID after a renewal.
	onRenew func(oldID, newID string)
}

// NewManager creates a manager with a fresh session ID.
func NewManager() *Manager {
	now := time.Now()
	return &Manager{
		sessionID:    uuid.NewString(),
		startTime:    now,
		lastActivity: now,
	}
}

// =============================================================================
// SESSION STATE
// =============================================================================

// SessionID returns the current session ID.
func (m *Manager) SessionID() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.sessionID
}

// StartTime returns when the current session started.
func (m *Manager) StartTime() time.Time {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.startTime
}

// Duration returns how long the current session has been active.
func (m *Manager) Duration() time.Duration {
	m.mu.Lock()
	defer m.mu.Unlock()
	return time.Since(m.startTime)
}

// IdleTime returns how long since the last recorded activity.
func (m *Manager) IdleTime() time.Duration {
	m.mu.Lock()
	defer m.mu.Unlock()
	return time.Since(m.lastActivity)
}

// QueryCount returns the number of chat queries sent this session.
func (m *Manager) QueryCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.queryCount
}

// UploadCount returns the number of successful uploads this session.
func (m *Manager) UploadCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.uploadCount
}

// =============================================================================
// ACTIVITY TRACKING
// =============================================================================

// RecordQuery notes a chat query and updates the activity timestamp.
func (m *Manager) RecordQuery() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.queryCount++
	m.lastActivity = time.Now()
}

// RecordUpload notes a successful upload and updates the activity timestamp.
func (m *Manager) RecordUpload() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.uploadCount++
	m.lastActivity = time.Now()
}

// RecordActivity updates the last activity timestamp.
func (m *Manager) RecordActivity() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.lastActivity = time.Now()
}

// =============================================================================
// RENEWAL
// =============================================================================

// SetRenewCallback sets the function called after each renewal.
func (m *Manager) SetRenewCallback(fn func(oldID, newID string)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.onRenew = fn
}

// Renew generates a fresh session ID and resets the counters. Called after
// the backend confirms the old session is cleared, so the next query starts
// a clean conversation. Returns the new ID.
func (m *Manager) Renew() string {
	m.mu.Lock()
	oldID := m.sessionID
	newID := uuid.NewString()
	m.sessionID = newID
	m.startTime = time.Now()
	m.lastActivity = m.startTime
	m.queryCount = 0
	m.uploadCount = 0
	onRenew := m.onRenew
	m.mu.Unlock()

	// Callback runs outside the lock.
	if onRenew != nil {
		onRenew(oldID, newID)
	}
	return newID
}

// =============================================================================
// SESSION STATUS
// =============================================================================

// Status is a point-in-time snapshot of the session.
type Status struct {
	SessionID   string
	StartTime   time.Time
	Duration    time.Duration
	IdleTime    time.Duration
	QueryCount  int
	UploadCount int
}

// GetStatus returns the current session status.
func (m *Manager) GetStatus() Status {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := time.Now()
	return Status{
		SessionID:   m.sessionID,
		StartTime:   m.startTime,
		Duration:    now.Sub(m.startTime),
		IdleTime:    now.Sub(m.lastActivity),
		QueryCount:  m.queryCount,
		UploadCount: m.uploadCount,
	}
}

// FormatDuration returns a human-readable duration string.
func FormatDuration(d time.Duration) string {
	if d < time.Minute {
		secs := int(d.Seconds())
		return util.IntToString(secs) + "s"
	}
	mins := int(d.Minutes())
	secs := int(d.Seconds()) % 60
	if secs == 0 {
		return util.IntToString(mins) + "m"
	}
	return util.IntToString(mins) + "m " + util.IntToString(secs) + "s"
}
