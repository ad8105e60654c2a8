// Package store owns the persisted content of story-cli: published stories,
// drafts, and like counts, all kept as JSON-encoded values in a string-keyed
// key-value table.
package store

import (
	"database/sql"
	"fmt"
	"sync"

	"github.com/rs/zerolog"
	_ "modernc.org/sqlite"
)

// Storage keys. These names are the interop contract with previously
// persisted data; renaming any of them orphans existing content.
const (
	storiesKey = "stories"
	draftsKey  = "drafts"
	likesKey   = "story_likes"
)

// KV is a persistent string-keyed storage adapter. Implementations contain
// their own failures: reads report absence instead of errors, writes report
// a boolean outcome. Callers can never distinguish "no data" from "unreadable
// data"; availability wins over error signaling here.
type KV interface {
	Get(key string) (value string, ok bool)
	Set(key, value string) bool
	Delete(key string)
}

// SQLiteKV backs the KV interface with a single-table SQLite database.
type SQLiteKV struct {
	db  *sql.DB
	log zerolog.Logger
}

// OpenKV opens (or creates) the key-value database at path.
// Use ":memory:" for an in-memory database (useful for testing).
func OpenKV(path string, log zerolog.Logger) (*SQLiteKV, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS kv (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL
	)`); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create schema: %w", err)
	}

	return &SQLiteKV{db: db, log: log}, nil
}

// Close closes the database connection.
func (s *SQLiteKV) Close() error {
	return s.db.Close()
}

// Get returns the value stored under key, or ok=false if the key is absent
// or the read fails.
func (s *SQLiteKV) Get(key string) (string, bool) {
	var value string
	err := s.db.QueryRow("SELECT value FROM kv WHERE key = ?", key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", false
	}
	if err != nil {
		s.log.Error().Err(err).Str("key", key).Msg("kv read failed")
		return "", false
	}
	return value, true
}

// Set stores value under key, overwriting any previous value. Returns false
// if the write fails.
func (s *SQLiteKV) Set(key, value string) bool {
	_, err := s.db.Exec(
		"INSERT INTO kv (key, value) VALUES (?, ?) ON CONFLICT(key) DO UPDATE SET value = excluded.value",
		key, value,
	)
	if err != nil {
		s.log.Error().Err(err).Str("key", key).Msg("kv write failed")
		return false
	}
	return true
}

// Delete removes key if present.
func (s *SQLiteKV) Delete(key string) {
	if _, err := s.db.Exec("DELETE FROM kv WHERE key = ?", key); err != nil {
		s.log.Error().Err(err).Str("key", key).Msg("kv delete failed")
	}
}

// MemoryKV is a map-backed KV for tests and throwaway sessions.
type MemoryKV struct {
	mu   sync.Mutex
	data map[string]string
}

// NewMemoryKV creates an empty in-memory KV.
func NewMemoryKV() *MemoryKV {
	return &MemoryKV{data: make(map[string]string)}
}

func (m *MemoryKV) Get(key string) (string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.data[key]
	return v, ok
}

func (m *MemoryKV) Set(key, value string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = value
	return true
}

func (m *MemoryKV) Delete(key string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)
}
