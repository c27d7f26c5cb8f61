package cache

import (
	"context"
	"time"
)

// Store is the key-value store the content store, admin gate and sessions
// persist into. The in-memory implementation stands in for browser session
// storage in tests and single-instance deployments; Redis shares state
// across instances.
type Store interface {
	// Get retrieves a value by key. Returns ErrNotFound if missing or expired.
	Get(ctx context.Context, key string) ([]byte, error)

	// Set stores a value. A ttl <= 0 keeps the value until removed.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error

	// Remove deletes a key. Removing a missing key is not an error.
	Remove(ctx context.Context, key string) error

	// Exists checks if a key exists in the store.
	Exists(ctx context.Context, key string) (bool, error)

	// GetOrSet retrieves a value or computes and stores it if missing.
	GetOrSet(ctx context.Context, key string, ttl time.Duration, fn func() ([]byte, error)) ([]byte, error)
}

// StoreError is a sentinel error type for the store.
type StoreError string

func (e StoreError) Error() string { return string(e) }

const (
	// ErrNotFound indicates the key was not found in the store.
	ErrNotFound StoreError = "key not found"
)
