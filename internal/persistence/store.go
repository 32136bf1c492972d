package persistence

import (
	"context"
	"errors"
)

var (
	// ErrStorageFailure marks any write, read or remove the backend could not complete.
	ErrStorageFailure = errors.New("storage failure")
	// ErrWriteFailed accompanies ErrStorageFailure when a value could not be saved.
	ErrWriteFailed = errors.New("write failed")
	// ErrQuotaExceeded is returned when a write would push the store past its size limit.
	ErrQuotaExceeded = errors.New("storage quota exceeded")
)

// Store is a synchronous string-keyed byte store.
type Store interface {
	// Get returns the stored value and whether the key exists.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	// Set replaces the value stored under key.
	Set(ctx context.Context, key string, value []byte) error
	// Delete removes key; deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
	// Ping verifies the backend is reachable.
	Ping(ctx context.Context) error
}
