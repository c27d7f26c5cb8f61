package repository

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"ironline-site/internal/model"
)

const blobExt = ".json"

// FileBlobRepository stores each blob as <dir>/<type>.json.
// The directory is created on first write.
type FileBlobRepository struct {
	dir string
	mu  sync.RWMutex
}

// NewFileBlobRepository creates a filesystem blob repository rooted at dir.
func NewFileBlobRepository(dir string) *FileBlobRepository {
	log.Printf("[FileBlobRepository] Using data directory: %s", dir)
	return &FileBlobRepository{dir: dir}
}

func (r *FileBlobRepository) path(blobType string) string {
	return filepath.Join(r.dir, blobType+blobExt)
}

// Write stores content atomically via a temp file and rename.
func (r *FileBlobRepository) Write(ctx context.Context, blobType string, content []byte) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.write(blobType, content)
}

func (r *FileBlobRepository) write(blobType string, content []byte) error {
	if err := os.MkdirAll(r.dir, 0o755); err != nil {
		return fmt.Errorf("failed to create data directory: %w", err)
	}

	tmp, err := os.CreateTemp(r.dir, blobType+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpName := tmp.Name()

	if err := tmp.Chmod(0o644); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("failed to chmod %s: %w", blobType, err)
	}
	if _, err := tmp.Write(content); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("failed to write %s: %w", blobType, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to close %s: %w", blobType, err)
	}
	if err := os.Rename(tmpName, r.path(blobType)); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to replace %s: %w", blobType, err)
	}
	return nil
}

// Read returns the stored blob or ErrNotFound.
func (r *FileBlobRepository) Read(ctx context.Context, blobType string) (*model.StoredBlob, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p := r.path(blobType)
	data, err := os.ReadFile(p)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", blobType, err)
	}

	blob := &model.StoredBlob{Type: blobType, Content: data}
	if info, err := os.Stat(p); err == nil {
		blob.UpdatedAt = info.ModTime()
	}
	return blob, nil
}

// BatchWrite writes each blob in turn and stops at the first failure.
func (r *FileBlobRepository) BatchWrite(ctx context.Context, items []*model.StoredBlob) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, item := range items {
		if err := r.write(item.Type, item.Content); err != nil {
			return err
		}
	}
	return nil
}

// List returns stored blob types in name order.
func (r *FileBlobRepository) List(ctx context.Context) ([]string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	entries, err := os.ReadDir(r.dir)
	if errors.Is(err, fs.ErrNotExist) {
		return []string{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to list data directory: %w", err)
	}

	types := make([]string, 0, len(entries))
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.HasSuffix(name, blobExt) {
			continue
		}
		types = append(types, strings.TrimSuffix(name, blobExt))
	}
	sort.Strings(types)
	return types, nil
}

// GetStats returns blob count and total size on disk.
func (r *FileBlobRepository) GetStats(ctx context.Context) (map[string]interface{}, error) {
	types, err := r.List(ctx)
	if err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	var size int64
	for _, t := range types {
		if info, err := os.Stat(r.path(t)); err == nil {
			size += info.Size()
		}
	}

	return map[string]interface{}{
		"backend":       "file",
		"data_dir":      r.dir,
		"total_blobs":   len(types),
		"db_size_bytes": size,
	}, nil
}

// Close is a no-op for the filesystem backend.
func (r *FileBlobRepository) Close() error {
	return nil
}

var _ BlobRepository = (*FileBlobRepository)(nil)
