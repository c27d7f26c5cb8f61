package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"regexp"

	"ironline-site/internal/cache"
	"ironline-site/internal/model"
	"ironline-site/internal/repository"
)

var (
	// ErrInvalidType is returned for empty or unsafe blob type names.
	ErrInvalidType = errors.New("invalid type")

	// ErrMissingContent is returned when a write carries no content.
	ErrMissingContent = errors.New("missing content")

	// ErrInvalidContent is returned when write content is not valid JSON.
	ErrInvalidContent = errors.New("content is not valid JSON")

	// ErrStaleWrite is returned when a sequenced write is older than the last accepted one.
	ErrStaleWrite = errors.New("stale write")

	// ErrCorruptBlob is returned when stored bytes are not valid JSON.
	ErrCorruptBlob = errors.New("stored content is not valid JSON")
)

// typePattern keeps blob names usable as file and object names.
var typePattern = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)

// ValidType reports whether t may be used as a blob type.
func ValidType(t string) bool {
	return len(t) <= 128 && typePattern.MatchString(t)
}

// BridgeService implements the persistence bridge: named JSON blobs over a
// BlobRepository, optionally fronted by a Redis write-behind buffer.
type BridgeService struct {
	repo   repository.BlobRepository
	guard  cache.SequenceGuard
	buffer *cache.RedisBlobBuffer
}

// NewBridgeService creates a bridge over repo. guard may be nil to accept
// every write regardless of its sequence token.
func NewBridgeService(repo repository.BlobRepository, guard cache.SequenceGuard) *BridgeService {
	if repo == nil {
		return nil
	}
	return &BridgeService{repo: repo, guard: guard}
}

// SetBuffer enables write-behind caching.
func (s *BridgeService) SetBuffer(buffer *cache.RedisBlobBuffer) {
	s.buffer = buffer
}

// Buffered reports whether writes go through the write-behind buffer.
func (s *BridgeService) Buffered() bool {
	return s.buffer != nil
}

// Write stores content under blobType, overwriting any previous blob.
// When seq is non-nil the write is only applied if seq is newer than every
// token previously accepted for blobType.
func (s *BridgeService) Write(ctx context.Context, blobType string, content json.RawMessage, seq *int64) error {
	if !ValidType(blobType) {
		return ErrInvalidType
	}
	trimmed := bytes.TrimSpace(content)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return ErrMissingContent
	}

	var indented bytes.Buffer
	if err := json.Indent(&indented, trimmed, "", "  "); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidContent, err)
	}

	if seq != nil && s.guard != nil {
		ok, err := s.guard.Accept(ctx, blobType, *seq)
		if err != nil {
			return fmt.Errorf("failed to check write sequence: %w", err)
		}
		if !ok {
			log.Printf("[BridgeService] Rejected stale write for %s (seq=%d)", blobType, *seq)
			return ErrStaleWrite
		}
	}

	if s.buffer != nil {
		return s.buffer.Add(ctx, blobType, indented.Bytes())
	}
	return s.repo.Write(ctx, blobType, indented.Bytes())
}

// Read returns the blob stored under blobType. A missing blob yields
// repository.ErrNotFound; stored bytes that do not parse yield ErrCorruptBlob.
func (s *BridgeService) Read(ctx context.Context, blobType string) (*model.StoredBlob, error) {
	if !ValidType(blobType) {
		return nil, ErrInvalidType
	}

	var blob *model.StoredBlob
	if s.buffer != nil {
		if b, err := s.buffer.Get(ctx, blobType); err == nil && b != nil {
			blob = b
		}
	}

	if blob == nil {
		b, err := s.repo.Read(ctx, blobType)
		if err != nil {
			return nil, err
		}
		blob = b
	}

	if !json.Valid(blob.Content) {
		log.Printf("[BridgeService] Stored blob %s is not valid JSON", blobType)
		return nil, ErrCorruptBlob
	}
	return blob, nil
}

// ReadInto decodes the blob stored under blobType into v.
func (s *BridgeService) ReadInto(ctx context.Context, blobType string, v interface{}) error {
	blob, err := s.Read(ctx, blobType)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(blob.Content, v); err != nil {
		return fmt.Errorf("failed to decode %s: %w", blobType, err)
	}
	return nil
}

// WriteValue encodes v and stores it under blobType without a sequence token.
func (s *BridgeService) WriteValue(ctx context.Context, blobType string, v interface{}) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", blobType, err)
	}
	return s.Write(ctx, blobType, data, nil)
}

// List returns the stored blob types.
func (s *BridgeService) List(ctx context.Context) ([]string, error) {
	return s.repo.List(ctx)
}

// Stats returns repository and buffer statistics.
func (s *BridgeService) Stats(ctx context.Context) (map[string]interface{}, error) {
	stats, err := s.repo.GetStats(ctx)
	if err != nil {
		return nil, err
	}
	if s.buffer != nil {
		if pending, err := s.buffer.Count(ctx); err == nil {
			stats["buffer_pending"] = pending
		}
	}
	return stats, nil
}

// CreateFlushFunc creates a flush function for the Redis buffer.
func CreateFlushFunc(repo repository.BlobRepository) cache.FlushFunc {
	return func(ctx context.Context, items []*model.StoredBlob) error {
		return repo.BatchWrite(ctx, items)
	}
}
