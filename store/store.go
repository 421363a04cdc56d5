/*
Package store defines the persistence interfaces for the worker portal.

PURPOSE:
  Two concerns, kept deliberately small:
  1. A key-value blob store for the worker collection and the cached
     login snapshot. The codec is a structurally lossless JSON encoding;
     the logic core never depends on the storage technology behind it.
  2. An append-only log of engagement events (point awards). No UPDATE,
     no DELETE - the log is the audit trail behind the admin totals.

CORRUPTION POLICY:
  A blob that cannot be decoded is treated exactly like an absent blob.
  Callers fall back to seed data instead of failing startup.

IMPLEMENTATIONS:
  store/sqlite: production store (WAL mode, auto-migrated schema)
  store/memory: in-memory store for tests

SEE ALSO:
  - codec.go: Worker collection encoding
  - engagement/events.go: The Event type persisted here
*/
package store

import (
	"context"
	"errors"

	"github.com/pan-asia/worker-portal/engagement"
)

// Well-known blob keys.
const (
	// KeyWorkers holds the encoded worker collection.
	KeyWorkers = "pan_asia_workers"

	// KeyCurrentUser holds the most recent authenticated worker snapshot,
	// kept for fast restart of a single-device deployment.
	KeyCurrentUser = "pan_asia_user"
)

var (
	// ErrAbsent is returned by GetBlob when no value exists for the key.
	// Malformed persisted data is reported the same way.
	ErrAbsent = errors.New("blob absent")

	// ErrDuplicateIdempotencyKey is returned when an event with the same
	// idempotency key was already recorded. Expected on replays.
	ErrDuplicateIdempotencyKey = errors.New("duplicate idempotency key")
)

// BlobStore is the minimal key-value capability the logic core needs.
type BlobStore interface {
	GetBlob(ctx context.Context, key string) ([]byte, error)
	PutBlob(ctx context.Context, key string, value []byte) error
}

// EventStore is the append-only engagement event log.
type EventStore interface {
	AppendEvent(ctx context.Context, ev engagement.Event) error
	ListEvents(ctx context.Context, passportNumber string) ([]engagement.Event, error)

	// CountEvents returns the total number of awards recorded, which is
	// also the total number of points ever issued.
	CountEvents(ctx context.Context) (int, error)
}

// Store combines both capabilities.
type Store interface {
	BlobStore
	EventStore
	Close() error
}
