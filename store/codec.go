package store

import (
	"context"
	"errors"
	"fmt"

	json "github.com/goccy/go-json"

	"github.com/pan-asia/worker-portal/worker"
)

// EncodeWorkers serializes the worker collection. The encoding is plain
// JSON: structurally lossless and readable in the database by hand.
func EncodeWorkers(workers []worker.Worker) ([]byte, error) {
	data, err := json.Marshal(workers)
	if err != nil {
		return nil, fmt.Errorf("encode workers: %w", err)
	}
	return data, nil
}

// DecodeWorkers deserializes a worker collection blob. A blob that does
// not parse is reported as ErrAbsent so callers fall back to seed data.
func DecodeWorkers(data []byte) ([]worker.Worker, error) {
	var workers []worker.Worker
	if err := json.Unmarshal(data, &workers); err != nil {
		return nil, fmt.Errorf("%w: corrupt worker collection", ErrAbsent)
	}
	return workers, nil
}

// LoadWorkers reads the collection blob, falling back to the seed
// collection when the blob is absent or corrupt. The fallback is also
// written back so the next startup reads it directly.
func LoadWorkers(ctx context.Context, s Store) ([]worker.Worker, error) {
	data, err := s.GetBlob(ctx, KeyWorkers)
	if err == nil {
		if workers, derr := DecodeWorkers(data); derr == nil {
			return workers, nil
		}
	} else if !errors.Is(err, ErrAbsent) {
		return nil, err
	}

	seed := worker.SeedWorkers()
	if err := SaveWorkers(ctx, s, seed); err != nil {
		return nil, err
	}
	return seed, nil
}

// SaveWorkers writes the full collection blob.
func SaveWorkers(ctx context.Context, s Store, workers []worker.Worker) error {
	data, err := EncodeWorkers(workers)
	if err != nil {
		return err
	}
	return s.PutBlob(ctx, KeyWorkers, data)
}
