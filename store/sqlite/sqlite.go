/*
Package sqlite provides the SQLite-backed implementation of store.Store.

PURPOSE:
  Persists the two things the portal owns: key-value blobs (the worker
  collection and the login snapshot) and the append-only engagement
  event log.

APPEND-ONLY ENFORCEMENT:
  No UPDATE and no DELETE statements exist for engagement_events. The
  unique index on idempotency_key makes award replays harmless: the
  second insert fails with ErrDuplicateIdempotencyKey and the caller
  moves on.

CONCURRENCY:
  Guarded by a sync.RWMutex. The surrounding system assumes a single
  logical writer (one active session per device); the mutex protects the
  process, not multi-writer semantics.

WAL MODE:
  The database is opened with WAL journaling so readers do not block and
  crash recovery is cheap.

USAGE:
  st, err := sqlite.New("./data/portal.db")   // ":memory:" for tests
  if err != nil { log.Fatal(err) }
  defer st.Close()

SEE ALSO:
  - store/store.go: Interface definitions
  - store/memory: In-memory implementation for tests
*/
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"sync"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pan-asia/worker-portal/engagement"
	"github.com/pan-asia/worker-portal/store"
)

// Store implements store.Store using SQLite.
type Store struct {
	db *sql.DB
	mu sync.RWMutex
}

var _ store.Store = (*Store)(nil)

// New opens (or creates) the database at dbPath and migrates the schema.
// Use ":memory:" for an in-memory database.
func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_foreign_keys=on&_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	s := &Store{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}
	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	schema := `
	-- Key-value blobs (worker collection, login snapshot)
	CREATE TABLE IF NOT EXISTS blobs (
		key TEXT PRIMARY KEY,
		value BLOB NOT NULL,
		updated_at TEXT NOT NULL
	);

	-- Engagement events (append-only award log)
	CREATE TABLE IF NOT EXISTS engagement_events (
		id TEXT PRIMARY KEY,
		passport_number TEXT NOT NULL,
		kind TEXT NOT NULL,
		reference TEXT NOT NULL,
		idempotency_key TEXT UNIQUE,
		created_at TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_events_passport
		ON engagement_events(passport_number);
	CREATE INDEX IF NOT EXISTS idx_events_kind
		ON engagement_events(kind);
	`
	_, err := s.db.Exec(schema)
	return err
}

// =============================================================================
// BLOB STORE
// =============================================================================

func (s *Store) GetBlob(ctx context.Context, key string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var value []byte
	err := s.db.QueryRowContext(ctx,
		`SELECT value FROM blobs WHERE key = ?`, key).Scan(&value)
	if err == sql.ErrNoRows {
		return nil, store.ErrAbsent
	}
	if err != nil {
		return nil, fmt.Errorf("get blob %q: %w", key, err)
	}
	return value, nil
}

func (s *Store) PutBlob(ctx context.Context, key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO blobs (key, value, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		key, value, time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("put blob %q: %w", key, err)
	}
	return nil
}

// =============================================================================
// EVENT STORE
// =============================================================================

// AppendEvent inserts an award record. Append-only; a replayed
// idempotency key is reported as store.ErrDuplicateIdempotencyKey.
func (s *Store) AppendEvent(ctx context.Context, ev engagement.Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO engagement_events (id, passport_number, kind, reference, idempotency_key, created_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		ev.ID, ev.PassportNumber, string(ev.Kind), ev.Reference,
		nullable(ev.IdempotencyKey), ev.CreatedAt.UTC().Format(time.RFC3339))
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed: engagement_events.idempotency_key") {
			return store.ErrDuplicateIdempotencyKey
		}
		return fmt.Errorf("append event: %w", err)
	}
	return nil
}

// ListEvents returns events for one worker, or all events when
// passportNumber is empty, in insertion order.
func (s *Store) ListEvents(ctx context.Context, passportNumber string) ([]engagement.Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	query := `SELECT id, passport_number, kind, reference, COALESCE(idempotency_key, ''), created_at
		FROM engagement_events`
	args := []any{}
	if key := strings.ToUpper(strings.TrimSpace(passportNumber)); key != "" {
		query += ` WHERE passport_number = ?`
		args = append(args, key)
	}
	query += ` ORDER BY created_at, id`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	defer rows.Close()

	var events []engagement.Event
	for rows.Next() {
		var ev engagement.Event
		var kind, createdAt string
		if err := rows.Scan(&ev.ID, &ev.PassportNumber, &kind, &ev.Reference, &ev.IdempotencyKey, &createdAt); err != nil {
			return nil, fmt.Errorf("scan event: %w", err)
		}
		ev.Kind = engagement.EventKind(kind)
		if t, perr := time.Parse(time.RFC3339, createdAt); perr == nil {
			ev.CreatedAt = t
		}
		events = append(events, ev)
	}
	return events, rows.Err()
}

func (s *Store) CountEvents(ctx context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var n int
	if err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM engagement_events`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count events: %w", err)
	}
	return n, nil
}

func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}
