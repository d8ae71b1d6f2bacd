package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/awaistahir/skycast/internal/recent"
	_ "modernc.org/sqlite"
)

// Store handles persistent storage using SQLite
type Store struct {
	db *sql.DB
}

// Lookup is one entry of the lookup history
type Lookup struct {
	ID        int64     `json:"id"`
	Kind      string    `json:"kind"` // "city", "coords" or "here"
	Query     string    `json:"query"`
	Resolved  string    `json:"resolved"`
	Success   bool      `json:"success"`
	Message   string    `json:"message,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// NewStore creates a new store and initializes the database
func NewStore(dbPath string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("creating database directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	store := &Store{db: db}
	if err := store.initialize(); err != nil {
		db.Close()
		return nil, err
	}

	return store, nil
}

// Close closes the database connection
func (s *Store) Close() error {
	return s.db.Close()
}

// initialize creates the database schema
func (s *Store) initialize() error {
	schema := `
	CREATE TABLE IF NOT EXISTS kv (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL,
		updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	CREATE TABLE IF NOT EXISTS lookups (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		kind TEXT NOT NULL,
		query TEXT NOT NULL,
		resolved TEXT,
		success INTEGER DEFAULT 0,
		message TEXT,
		created_at INTEGER NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_lookups_created ON lookups(created_at);
	`

	if _, err := s.db.Exec(schema); err != nil {
		return fmt.Errorf("creating schema: %w", err)
	}
	return nil
}

// LoadRecent reads the persisted recent searches; a missing entry is an
// empty list
func (s *Store) LoadRecent(ctx context.Context) ([]string, error) {
	var value string
	err := s.db.QueryRowContext(ctx, `SELECT value FROM kv WHERE key = ?`, recent.StorageKey).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return []string{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("loading recent searches: %w", err)
	}

	var cities []string
	if err := json.Unmarshal([]byte(value), &cities); err != nil {
		return nil, fmt.Errorf("decoding recent searches: %w", err)
	}

	return cities, nil
}

// SaveRecent replaces the persisted recent searches
func (s *Store) SaveRecent(ctx context.Context, cities []string) error {
	if cities == nil {
		cities = []string{}
	}
	value, err := json.Marshal(cities)
	if err != nil {
		return err
	}

	query := `INSERT OR REPLACE INTO kv (key, value, updated_at) VALUES (?, ?, ?)`
	if _, err := s.db.ExecContext(ctx, query, recent.StorageKey, string(value), time.Now()); err != nil {
		return fmt.Errorf("saving recent searches: %w", err)
	}
	return nil
}

// RecordLookup appends an entry to the lookup history
func (s *Store) RecordLookup(ctx context.Context, l Lookup) error {
	if l.CreatedAt.IsZero() {
		l.CreatedAt = time.Now()
	}

	query := `INSERT INTO lookups (kind, query, resolved, success, message, created_at)
		VALUES (?, ?, ?, ?, ?, ?)`

	_, err := s.db.ExecContext(ctx, query, l.Kind, l.Query, l.Resolved, boolToInt(l.Success), l.Message,
		l.CreatedAt.UnixNano())
	return err
}

// Lookups returns the most recent history entries, newest first
func (s *Store) Lookups(ctx context.Context, limit int) ([]Lookup, error) {
	if limit <= 0 {
		limit = 20
	}

	query := `SELECT id, kind, query, resolved, success, message, created_at
		FROM lookups ORDER BY created_at DESC, id DESC LIMIT ?`

	rows, err := s.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	lookups := []Lookup{}
	for rows.Next() {
		var l Lookup
		var resolved, message sql.NullString
		var successInt int
		var createdAt int64

		if err := rows.Scan(&l.ID, &l.Kind, &l.Query, &resolved, &successInt, &message, &createdAt); err != nil {
			return nil, err
		}

		l.Resolved = resolved.String
		l.Message = message.String
		l.Success = successInt == 1
		l.CreatedAt = time.Unix(0, createdAt).UTC()

		lookups = append(lookups, l)
	}

	return lookups, rows.Err()
}

// ClearRecent removes the persisted recent searches
func (s *Store) ClearRecent(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM kv WHERE key = ?`, recent.StorageKey)
	return err
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

var _ recent.Persister = (*Store)(nil)
