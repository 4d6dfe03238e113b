package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
)

var (
	ErrNotFound  = errors.New("record not found")
	ErrMalformed = errors.New("malformed record")
)

// CurrentVersion is the only record version this build reads or writes.
const CurrentVersion = 0

// Storage is a key-value port for small persisted client records.
type Storage interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
}

// Record is the envelope every persisted blob is wrapped in.
type Record[T any] struct {
	State   T   `json:"state"`
	Version int `json:"version"`
}

func Save[T any](ctx context.Context, s Storage, key string, state T) error {
	body, err := json.Marshal(Record[T]{State: state, Version: CurrentVersion})
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	if err := s.Set(ctx, key, body); err != nil {
		return fmt.Errorf("save %s: %w", key, err)
	}
	return nil
}

// Load reads and decodes the record under key. It returns ErrNotFound when
// nothing is stored and wraps ErrMalformed when the blob cannot be used.
func Load[T any](ctx context.Context, s Storage, key string) (T, error) {
	var zero T

	body, err := s.Get(ctx, key)
	if err != nil {
		return zero, err
	}

	var rec Record[T]
	if err := json.Unmarshal(body, &rec); err != nil {
		return zero, fmt.Errorf("%w: %s: %v", ErrMalformed, key, err)
	}
	if rec.Version != CurrentVersion {
		return zero, fmt.Errorf("%w: %s: unsupported version %d", ErrMalformed, key, rec.Version)
	}
	return rec.State, nil
}
