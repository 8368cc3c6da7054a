package persist

import (
	"context"
	"errors"
)

var (
	// ErrNotFound is returned by Get when the key has no value.
	ErrNotFound = errors.New("persist: key not found")

	// ErrClosed is returned for operations on a closed backend.
	ErrClosed = errors.New("persist: backend closed")

	// ErrInvalidKey is returned for empty keys or keys a backend cannot
	// store.
	ErrInvalidKey = errors.New("persist: invalid key")
)

// KV is a byte-oriented key-value backend.
// Implementations must be safe for concurrent use.
type KV interface {
	// Get returns the stored value or ErrNotFound.
	Get(ctx context.Context, key string) ([]byte, error)

	// Set stores value under key, replacing any previous value.
	Set(ctx context.Context, key string, value []byte) error

	// Close releases any resources held by the backend.
	Close() error
}
