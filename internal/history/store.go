// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package history records past queries and their groundedness locally.
package history

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// =============================================================================
// SCHEMA
// =============================================================================

// Schema is the query history table definition.
const Schema = `
CREATE TABLE IF NOT EXISTS queries (
	id          INTEGER PRIMARY KEY AUTOINCREMENT,
	session_id  TEXT NOT NULL,
	query       TEXT NOT NULL,
	answer      TEXT NOT NULL,
	score       REAL NOT NULL,
	rating      TEXT NOT NULL,
	num_sources INTEGER NOT NULL DEFAULT 0,
	num_actions INTEGER NOT NULL DEFAULT 0,
	asked_at    TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_queries_asked_at ON queries(asked_at);
CREATE INDEX IF NOT EXISTS idx_queries_session ON queries(session_id);
`

// =============================================================================
// STORE
// =============================================================================

// ErrClosed is returned when using a store after Close.
var ErrClosed = errors.New("history: store is closed")

// Entry is one recorded query.
type Entry struct {
	ID         int64
	SessionID  string
	Query      string
	Answer     string
	Score      float64
	Rating     string
	NumSources int
	NumActions int
	AskedAt    time.Time
}

// Store persists query history in a local SQLite database.
type Store struct {
	db         *sql.DB
	maxEntries int
	closed     bool
}

// Open opens (creating if needed) the history database at path.
// maxEntries caps the table size; 0 means unbounded.
func Open(path string, maxEntries int) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create history directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open history database: %w", err)
	}

	// SQLite only supports one writer at a time, so limit connections
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA synchronous=NORMAL",
		"PRAGMA temp_store=MEMORY",
		"PRAGMA foreign_keys=ON",
	}
	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to set pragma: %w", err)
		}
	}

	if _, err := db.Exec(Schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize history schema: %w", err)
	}

	return &Store{db: db, maxEntries: maxEntries}, nil
}

// Close closes the database.
func (s *Store) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true
	return s.db.Close()
}

// =============================================================================
// RECORDING
// =============================================================================

// Record appends one query to the history and prunes past the cap.
func (s *Store) Record(e Entry) error {
	if s.closed {
		return ErrClosed
	}

	askedAt := e.AskedAt
	if askedAt.IsZero() {
		askedAt = time.Now()
	}

	_, err := s.db.Exec(`
		INSERT INTO queries (session_id, query, answer, score, rating, num_sources, num_actions, asked_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		e.SessionID, e.Query, e.Answer, e.Score, e.Rating, e.NumSources, e.NumActions, askedAt)
	if err != nil {
		return fmt.Errorf("failed to record query: %w", err)
	}

	return s.prune()
}

// prune deletes the oldest rows past maxEntries.
func (s *Store) prune() error {
	if s.maxEntries <= 0 {
		return nil
	}
	_, err := s.db.Exec(`
		DELETE FROM queries WHERE id NOT IN (
			SELECT id FROM queries ORDER BY asked_at DESC, id DESC LIMIT ?
		)`, s.maxEntries)
	if err != nil {
		return fmt.Errorf("failed to prune history: %w", err)
	}
	return nil
}

// =============================================================================
// QUERIES
// =============================================================================

// Recent returns the most recent entries, newest first.
func (s *Store) Recent(limit int) ([]Entry, error) {
	if s.closed {
		return nil, ErrClosed
	}
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(`
		SELECT id, session_id, query, answer, score, rating, num_sources, num_actions, asked_at
		FROM queries ORDER BY asked_at DESC, id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query history: %w", err)
	}
	defer rows.Close()

	return scanEntries(rows)
}

// Search returns entries whose query text contains the given substring,
// newest first.
func (s *Store) Search(substr string, limit int) ([]Entry, error) {
	if s.closed {
		return nil, ErrClosed
	}
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(`
		SELECT id, session_id, query, answer, score, rating, num_sources, num_actions, asked_at
		FROM queries WHERE query LIKE ? ORDER BY asked_at DESC, id DESC LIMIT ?`,
		"%"+substr+"%", limit)
	if err != nil {
		return nil, fmt.Errorf("failed to search history: %w", err)
	}
	defer rows.Close()

	return scanEntries(rows)
}

// Count returns the total number of recorded queries.
func (s *Store) Count() (int, error) {
	if s.closed {
		return 0, ErrClosed
	}
	var n int
	if err := s.db.QueryRow("SELECT COUNT(*) FROM queries").Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count history: %w", err)
	}
	return n, nil
}

// Clear deletes all recorded queries.
func (s *Store) Clear() error {
	if s.closed {
		return ErrClosed
	}
	if _, err := s.db.Exec("DELETE FROM queries"); err != nil {
		return fmt.Errorf("failed to clear history: %w", err)
	}
	return nil
}

// scanEntries reads rows into entries.
func scanEntries(rows *sql.Rows) ([]Entry, error) {
	var entries []Entry
	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.ID, &e.SessionID, &e.Query, &e.Answer, &e.Score,
			&e.Rating, &e.NumSources, &e.NumActions, &e.AskedAt); err != nil {
			return nil, fmt.Errorf("failed to scan history row: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
