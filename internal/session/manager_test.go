// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package session

import (
	"sync"
	"testing"
	"time"
)

// =============================================================================
// SESSION IDENTITY TESTS
// =============================================================================

func TestNewManager_UniqueIDs(t *testing.T) {
	a := NewManager()
	b := NewManager()

	if a.SessionID() == "" {
		t.Fatal("SessionID() is empty")
	}
	if a.SessionID() == b.SessionID() {
		t.Error("two managers share a session ID")
	}
}

func TestRenew_ChangesIDAndResetsCounters(t *testing.T) {
	m := NewManager()
	oldID := m.SessionID()
	m.RecordQuery()
	m.RecordUpload()

	var gotOld, gotNew string
	m.SetRenewCallback(func(o, n string) {
		gotOld, gotNew = o, n
	})

	newID := m.Renew()

	if newID == oldID {
		t.Error("Renew() returned the old session ID")
	}
	if m.SessionID() != newID {
		t.Errorf("SessionID() = %q, want %q", m.SessionID(), newID)
	}
	if m.QueryCount() != 0 || m.UploadCount() != 0 {
		t.Error("counters not reset on renewal")
	}
	if gotOld != oldID || gotNew != newID {
		t.Errorf("renew callback got (%q, %q), want (%q, %q)", gotOld, gotNew, oldID, newID)
	}
}

// =============================================================================
// ACTIVITY TESTS
// =============================================================================

func TestRecordQuery_Counts(t *testing.T) {
	m := NewManager()
	m.RecordQuery()
	m.RecordQuery()
	m.RecordUpload()

	st := m.GetStatus()
	if st.QueryCount != 2 {
		t.Errorf("QueryCount = %d, want 2", st.QueryCount)
	}
	if st.UploadCount != 1 {
		t.Errorf("UploadCount = %d, want 1", st.UploadCount)
	}
}

func TestManager_ConcurrentAccess(t *testing.T) {
	m := NewManager()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(3)
		go func() {
			defer wg.Done()
			m.RecordQuery()
		}()
		go func() {
			defer wg.Done()
			_ = m.SessionID()
		}()
		go func() {
			defer wg.Done()
			_ = m.GetStatus()
		}()
	}
	wg.Wait()

	if m.QueryCount() != 50 {
		t.Errorf("QueryCount = %d, want 50", m.QueryCount())
	}
}

// =============================================================================
// FORMATTING TESTS
// =============================================================================

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		d    time.Duration
		want string
	}{
		{45 * time.Second, "45s"},
		{2 * time.Minute, "2m"},
		{2*time.Minute + 30*time.Second, "2m 30s"},
	}

	for _, tc := range tests {
		if got := FormatDuration(tc.d); got != tc.want {
			t.Errorf("FormatDuration(%v) = %q, want %q", tc.d, got, tc.want)
		}
	}
}
