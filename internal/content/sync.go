package content

import (
	"context"
	"errors"
	"fmt"
	"log"

	"ironline-site/internal/model"
	"ironline-site/internal/repository"
)

// Bridge is the subset of the persistence bridge used to publish and pull
// content across sessions and devices.
type Bridge interface {
	WriteValue(ctx context.Context, blobType string, v interface{}) error
	Read(ctx context.Context, blobType string) (*model.StoredBlob, error)
}

// Publish writes every collection to the bridge under its collection name.
// It returns how many collections were written.
func (s *Store) Publish(ctx context.Context, b Bridge) (int, error) {
	st := s.Snapshot()

	var errs []error
	written := 0
	for _, c := range collections {
		if err := b.WriteValue(ctx, c.name, c.value(&st)); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", c.name, err))
			continue
		}
		written++
	}

	log.Printf("[ContentStore] Published %d/%d collections", written, len(collections))
	return written, errors.Join(errs...)
}

// Pull replaces collections with the copies stored on the bridge.
// Collections with no stored blob keep their current value; unreadable blobs
// are logged and skipped. It returns how many collections were replaced.
// Bridge reads happen before the store is locked.
func (s *Store) Pull(ctx context.Context, b Bridge) (int, error) {
	var errs []error
	var changed []string

	fetched := make(map[string][]byte, len(collections))
	for _, c := range collections {
		blob, err := b.Read(ctx, c.name)
		if errors.Is(err, repository.ErrNotFound) {
			continue
		}
		if err != nil {
			log.Printf("[ContentStore] Failed to pull %s: %v", c.name, err)
			errs = append(errs, fmt.Errorf("%s: %w", c.name, err))
			continue
		}
		fetched[c.name] = blob.Content
	}

	s.mu.Lock()
	for _, c := range collections {
		raw, ok := fetched[c.name]
		if !ok {
			continue
		}
		if err := c.decode(&s.state, raw); err != nil {
			log.Printf("[ContentStore] Ignoring unreadable %s from bridge: %v", c.name, err)
			errs = append(errs, fmt.Errorf("%s: %w", c.name, err))
			continue
		}
		s.persistLocked(ctx, c.name)
		changed = append(changed, c.name)
	}
	s.mu.Unlock()

	s.notify(changed...)
	log.Printf("[ContentStore] Pulled %d/%d collections", len(changed), len(collections))
	return len(changed), errors.Join(errs...)
}
