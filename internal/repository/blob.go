package repository

import (
	"context"
	"errors"

	"ironline-site/internal/model"
)

// ErrNotFound is returned when no blob is stored under the requested type.
var ErrNotFound = errors.New("blob not found")

// BlobRepository defines persistence bridge storage. A blob is a named JSON
// document; writing a type that already exists overwrites it.
type BlobRepository interface {
	// Write stores content under blobType, replacing any previous value.
	Write(ctx context.Context, blobType string, content []byte) error

	// Read returns the blob stored under blobType or ErrNotFound.
	Read(ctx context.Context, blobType string) (*model.StoredBlob, error)

	// BatchWrite stores multiple blobs, used by the write-behind buffer.
	BatchWrite(ctx context.Context, items []*model.StoredBlob) error

	// List returns the stored blob types.
	List(ctx context.Context) ([]string, error)

	// GetStats returns backend statistics for the admin dashboard.
	GetStats(ctx context.Context) (map[string]interface{}, error)

	// Close releases the backend connection.
	Close() error
}
