package repository

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"sort"
	"strings"

	"ironline-site/internal/model"

	"cloud.google.com/go/storage"
	"google.golang.org/api/iterator"
	"google.golang.org/api/option"
)

// GCSBlobRepository stores each blob as <prefix><type>.json in a bucket.
type GCSBlobRepository struct {
	client *storage.Client
	bucket string
	prefix string
}

// NewGCSBlobRepository creates a Cloud Storage backed repository.
// credentialsPath may be empty to use application default credentials.
func NewGCSBlobRepository(ctx context.Context, bucket, prefix, credentialsPath string) (*GCSBlobRepository, error) {
	var opts []option.ClientOption
	if credentialsPath != "" {
		opts = append(opts, option.WithCredentialsFile(credentialsPath))
	}

	client, err := storage.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create storage client: %w", err)
	}

	log.Printf("[GCSBlobRepository] Using gs://%s/%s", bucket, prefix)
	return &GCSBlobRepository{client: client, bucket: bucket, prefix: prefix}, nil
}

func (r *GCSBlobRepository) object(blobType string) *storage.ObjectHandle {
	return r.client.Bucket(r.bucket).Object(r.prefix + blobType + blobExt)
}

// Write uploads content, replacing the existing object.
func (r *GCSBlobRepository) Write(ctx context.Context, blobType string, content []byte) error {
	wc := r.object(blobType).NewWriter(ctx)
	wc.ContentType = "application/json"
	wc.CacheControl = "no-cache"

	if _, err := wc.Write(content); err != nil {
		wc.Close()
		return fmt.Errorf("failed to upload %s: %w", blobType, err)
	}
	if err := wc.Close(); err != nil {
		return fmt.Errorf("failed to close writer for %s: %w", blobType, err)
	}
	return nil
}

// Read downloads a blob by type.
func (r *GCSBlobRepository) Read(ctx context.Context, blobType string) (*model.StoredBlob, error) {
	rc, err := r.object(blobType).NewReader(ctx)
	if errors.Is(err, storage.ErrObjectNotExist) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", blobType, err)
	}
	defer rc.Close()

	data, err := io.ReadAll(rc)
	if err != nil {
		return nil, fmt.Errorf("failed to download %s: %w", blobType, err)
	}

	return &model.StoredBlob{
		Type:      blobType,
		Content:   data,
		UpdatedAt: rc.Attrs.LastModified,
	}, nil
}

// BatchWrite uploads each blob in turn.
func (r *GCSBlobRepository) BatchWrite(ctx context.Context, items []*model.StoredBlob) error {
	for _, item := range items {
		if err := r.Write(ctx, item.Type, item.Content); err != nil {
			return err
		}
	}
	return nil
}

// List returns blob types under the configured prefix.
func (r *GCSBlobRepository) List(ctx context.Context) ([]string, error) {
	it := r.client.Bucket(r.bucket).Objects(ctx, &storage.Query{Prefix: r.prefix})

	types := []string{}
	for {
		attrs, err := it.Next()
		if errors.Is(err, iterator.Done) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to list objects: %w", err)
		}
		name := strings.TrimPrefix(attrs.Name, r.prefix)
		if strings.Contains(name, "/") || !strings.HasSuffix(name, blobExt) {
			continue
		}
		types = append(types, strings.TrimSuffix(name, blobExt))
	}
	sort.Strings(types)
	return types, nil
}

// GetStats returns the object count under the prefix.
func (r *GCSBlobRepository) GetStats(ctx context.Context) (map[string]interface{}, error) {
	types, err := r.List(ctx)
	if err != nil {
		return nil, err
	}
	return map[string]interface{}{
		"backend":     "gcs",
		"bucket":      r.bucket,
		"prefix":      r.prefix,
		"total_blobs": len(types),
	}, nil
}

// Close closes the storage client.
func (r *GCSBlobRepository) Close() error {
	return r.client.Close()
}

var _ BlobRepository = (*GCSBlobRepository)(nil)
