// Package history keeps an optional SQLite log of feedback shown to the user:
// every toast and the outcome of every modal.
package history

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"
)

// Kind of recorded event.
type Kind string

const (
	KindToast   Kind = "toast"
	KindConfirm Kind = "confirm"
	KindPrompt  Kind = "prompt"
)

// ErrInvalidLimit is returned by Recent for non-positive limits.
var ErrInvalidLimit = errors.New("history: limit must be positive")

// Event is one history row. Prompt values are never recorded.
type Event struct {
	ID        int64
	Kind      Kind
	Ref       string // toast or modal id
	Type      string // toast type
	Message   string
	Outcome   string // confirmed/cancelled for modals
	CreatedAt time.Time
}

// Recorder receives events from the toolkit.
type Recorder interface {
	Record(ctx context.Context, e Event) error
}

const schemaSQL = `
CREATE TABLE IF NOT EXISTS events (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	kind TEXT NOT NULL CHECK (kind IN ('toast', 'confirm', 'prompt')),
	ref TEXT NOT NULL,
	type TEXT NOT NULL DEFAULT '',
	message TEXT NOT NULL,
	outcome TEXT NOT NULL DEFAULT '',
	created_at TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_events_created_at ON events(created_at);
`

// Store is a SQLite backed Recorder.
type Store struct {
	db  *sql.DB
	now func() time.Time
}

// Open opens (creating if needed) the history database at path.
func Open(path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("history: db path cannot be empty")
	}
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("history: create db directory: %w", err)
		}
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("history: open db: %w", err)
	}
	// A single connection keeps ":memory:" databases shared.
	db.SetMaxOpenConns(1)

	s := &Store{db: db, now: time.Now}
	if err := s.init(); err != nil {
		_ = db.Close()
		return nil, err
	}
	return s, nil
}

func (s *Store) init() error {
	if _, err := s.db.Exec("PRAGMA busy_timeout = 5000"); err != nil {
		return fmt.Errorf("history: set busy timeout: %w", err)
	}
	if _, err := s.db.Exec(schemaSQL); err != nil {
		return fmt.Errorf("history: create schema: %w", err)
	}
	return nil
}

// Close closes the database.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Record inserts e. A zero CreatedAt is stamped with the current time.
func (s *Store) Record(ctx context.Context, e Event) error {
	if e.CreatedAt.IsZero() {
		e.CreatedAt = s.now()
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO events (kind, ref, type, message, outcome, created_at) VALUES (?, ?, ?, ?, ?, ?)`,
		string(e.Kind), e.Ref, e.Type, e.Message, e.Outcome, e.CreatedAt.UTC().Format(time.RFC3339Nano))
	if err != nil {
		return fmt.Errorf("history: record %s: %w", e.Kind, err)
	}
	return nil
}

// Recent returns up to limit events, newest first.
func (s *Store) Recent(ctx context.Context, limit int) ([]Event, error) {
	if limit <= 0 {
		return nil, ErrInvalidLimit
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, kind, ref, type, message, outcome, created_at FROM events ORDER BY id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("history: query: %w", err)
	}
	defer rows.Close()

	var events []Event
	for rows.Next() {
		var (
			e       Event
			kind    string
			created string
		)
		if err := rows.Scan(&e.ID, &kind, &e.Ref, &e.Type, &e.Message, &e.Outcome, &created); err != nil {
			return nil, fmt.Errorf("history: scan: %w", err)
		}
		e.Kind = Kind(kind)
		e.CreatedAt, err = time.Parse(time.RFC3339Nano, created)
		if err != nil {
			return nil, fmt.Errorf("history: parse created_at %q: %w", created, err)
		}
		events = append(events, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("history: rows: %w", err)
	}
	return events, nil
}

// Clear deletes every event and returns how many were removed.
func (s *Store) Clear(ctx context.Context) (int64, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM events`)
	if err != nil {
		return 0, fmt.Errorf("history: clear: %w", err)
	}
	return res.RowsAffected()
}

var _ Recorder = (*Store)(nil)
