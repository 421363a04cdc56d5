package store_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pan-asia/worker-portal/store"
	"github.com/pan-asia/worker-portal/store/memory"
	"github.com/pan-asia/worker-portal/worker"
)

func TestWorkersCodec_RoundTrip(t *testing.T) {
	in := []worker.Worker{
		{
			PassportNumber: "G200300400",
			BirthDate:      "19900215",
			Name:           "MARIA SANTOS",
			Employer:       "delta",
			Allergies:      []string{"penicillin"},
			ReadPromotions: []string{"prop-2024-05"},
			Points:         4,
			LastLoginMonth: "2024-06",
			MedicalHistory: []worker.MedicalRecord{
				{ID: "m1", Date: "2024-03-10", Type: worker.MedicalCheckup, Description: "Annual checkup"},
			},
		},
	}

	data, err := store.EncodeWorkers(in)
	require.NoError(t, err)

	out, err := store.DecodeWorkers(data)
	require.NoError(t, err)
	assert.Equal(t, in, out)
}

func TestDecodeWorkers_CorruptBlobReportedAsAbsent(t *testing.T) {
	_, err := store.DecodeWorkers([]byte("{not json"))
	assert.ErrorIs(t, err, store.ErrAbsent)
}

func TestLoadWorkers_EmptyStoreSeedsAndPersists(t *testing.T) {
	// GIVEN: a store with no worker collection
	ctx := context.Background()
	s := memory.New()

	// WHEN: loading the collection
	workers, err := store.LoadWorkers(ctx, s)
	require.NoError(t, err)

	// THEN: the seed collection is returned and written back
	assert.Equal(t, worker.SeedWorkers(), workers)

	data, err := s.GetBlob(ctx, store.KeyWorkers)
	require.NoError(t, err)
	persisted, err := store.DecodeWorkers(data)
	require.NoError(t, err)
	require.Len(t, persisted, len(workers))
	assert.Equal(t, workers[0].PassportNumber, persisted[0].PassportNumber)
}

func TestLoadWorkers_CorruptBlobFallsBackToSeed(t *testing.T) {
	ctx := context.Background()
	s := memory.New()
	require.NoError(t, s.PutBlob(ctx, store.KeyWorkers, []byte("garbage")))

	workers, err := store.LoadWorkers(ctx, s)
	require.NoError(t, err)
	assert.Equal(t, worker.SeedWorkers(), workers)

	// The corrupt blob was replaced with a decodable one.
	data, err := s.GetBlob(ctx, store.KeyWorkers)
	require.NoError(t, err)
	_, err = store.DecodeWorkers(data)
	assert.NoError(t, err)
}

func TestLoadWorkers_ExistingCollectionWins(t *testing.T) {
	ctx := context.Background()
	s := memory.New()

	custom := []worker.Worker{{PassportNumber: "G200300400", Name: "MARIA SANTOS", Points: 12}}
	require.NoError(t, store.SaveWorkers(ctx, s, custom))

	workers, err := store.LoadWorkers(ctx, s)
	require.NoError(t, err)
	assert.Equal(t, custom, workers)
}
