package sqlite_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pan-asia/worker-portal/engagement"
	"github.com/pan-asia/worker-portal/store"
	"github.com/pan-asia/worker-portal/store/sqlite"
)

func newTestStore(t *testing.T) *sqlite.Store {
	t.Helper()
	s, err := sqlite.New(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func testEvent(id, idempotencyKey string) engagement.Event {
	return engagement.Event{
		ID:             id,
		PassportNumber: "F126155168",
		Kind:           engagement.EventLoginBonus,
		Reference:      "2024-06",
		IdempotencyKey: idempotencyKey,
		CreatedAt:      time.Date(2024, time.June, 3, 9, 0, 0, 0, time.UTC),
	}
}

// =============================================================================
// BLOBS
// =============================================================================

func TestBlob_RoundTrip(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	require.NoError(t, s.PutBlob(ctx, store.KeyWorkers, []byte(`[{"x":1}]`)))

	got, err := s.GetBlob(ctx, store.KeyWorkers)
	require.NoError(t, err)
	assert.Equal(t, []byte(`[{"x":1}]`), got)
}

func TestBlob_AbsentKey(t *testing.T) {
	s := newTestStore(t)

	_, err := s.GetBlob(context.Background(), "missing")
	assert.ErrorIs(t, err, store.ErrAbsent)
}

func TestBlob_PutOverwrites(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	require.NoError(t, s.PutBlob(ctx, "k", []byte("v1")))
	require.NoError(t, s.PutBlob(ctx, "k", []byte("v2")))

	got, err := s.GetBlob(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, []byte("v2"), got)
}

func TestBlob_SurvivesReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "reopen.db")

	s, err := sqlite.New(path)
	require.NoError(t, err)
	require.NoError(t, s.PutBlob(ctx, store.KeyCurrentUser, []byte("snapshot")))
	require.NoError(t, s.Close())

	s2, err := sqlite.New(path)
	require.NoError(t, err)
	defer s2.Close()

	got, err := s2.GetBlob(ctx, store.KeyCurrentUser)
	require.NoError(t, err)
	assert.Equal(t, []byte("snapshot"), got)
}

// =============================================================================
// EVENT LOG
// =============================================================================

func TestAppendEvent_AndList(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	require.NoError(t, s.AppendEvent(ctx, testEvent("ev-1", "login:F126155168:2024-06")))

	events, err := s.ListEvents(ctx, "F126155168")
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, "ev-1", events[0].ID)
	assert.Equal(t, engagement.EventLoginBonus, events[0].Kind)
	assert.Equal(t, "2024-06", events[0].Reference)
	assert.Equal(t, "login:F126155168:2024-06", events[0].IdempotencyKey)
	assert.Equal(t, time.Date(2024, time.June, 3, 9, 0, 0, 0, time.UTC), events[0].CreatedAt)
}

func TestAppendEvent_DuplicateIdempotencyKey(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	ev := testEvent("ev-1", "login:F126155168:2024-06")
	require.NoError(t, s.AppendEvent(ctx, ev))

	// Same key, different ID: the replay is rejected without growing the log.
	replay := testEvent("ev-2", "login:F126155168:2024-06")
	err := s.AppendEvent(ctx, replay)
	assert.ErrorIs(t, err, store.ErrDuplicateIdempotencyKey)

	n, err := s.CountEvents(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestAppendEvent_EmptyIdempotencyKeysDoNotCollide(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	require.NoError(t, s.AppendEvent(ctx, testEvent("ev-1", "")))
	require.NoError(t, s.AppendEvent(ctx, testEvent("ev-2", "")))

	n, err := s.CountEvents(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}

func TestListEvents_FilterByPassport(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	a := testEvent("ev-1", "k1")
	b := testEvent("ev-2", "k2")
	b.PassportNumber = "G200300400"
	require.NoError(t, s.AppendEvent(ctx, a))
	require.NoError(t, s.AppendEvent(ctx, b))

	mine, err := s.ListEvents(ctx, "f126155168") // lookup is case-insensitive
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, "ev-1", mine[0].ID)

	all, err := s.ListEvents(ctx, "")
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestListEvents_InsertionOrder(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	for i, id := range []string{"ev-a", "ev-b", "ev-c"} {
		ev := testEvent(id, "")
		ev.CreatedAt = time.Date(2024, time.June, 1, 0, 0, i, 0, time.UTC)
		require.NoError(t, s.AppendEvent(ctx, ev))
	}

	events, err := s.ListEvents(ctx, "")
	require.NoError(t, err)
	require.Len(t, events, 3)
	assert.Equal(t, "ev-a", events[0].ID)
	assert.Equal(t, "ev-b", events[1].ID)
	assert.Equal(t, "ev-c", events[2].ID)
}
