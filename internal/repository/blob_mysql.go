package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"time"

	"ironline-site/internal/model"

	_ "github.com/go-sql-driver/mysql"
)

// MySQLBlobRepository implements BlobRepository using a MySQL JSON column.
type MySQLBlobRepository struct {
	db *sql.DB
}

// NewMySQLBlobRepository opens a pool with dsn and creates the blob table.
// The DSN must set parseTime=true.
func NewMySQLBlobRepository(dsn string) (*MySQLBlobRepository, error) {
	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open MySQL: %w", err)
	}

	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping MySQL: %w", err)
	}

	_, err = db.ExecContext(ctx, `
	CREATE TABLE IF NOT EXISTS content_blobs (
		type VARCHAR(128) NOT NULL PRIMARY KEY,
		content JSON NOT NULL,
		updated_at DATETIME(3) NOT NULL,
		INDEX idx_blobs_updated_at (updated_at)
	)`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}

	log.Println("[MySQLBlobRepository] Initialized")
	return &MySQLBlobRepository{db: db}, nil
}

const mysqlUpsert = `
	INSERT INTO content_blobs (type, content, updated_at)
	VALUES (?, ?, ?)
	ON DUPLICATE KEY UPDATE
		content = VALUES(content),
		updated_at = VALUES(updated_at)`

// Write inserts or replaces a blob.
func (r *MySQLBlobRepository) Write(ctx context.Context, blobType string, content []byte) error {
	if _, err := r.db.ExecContext(ctx, mysqlUpsert, blobType, string(content), time.Now().UTC()); err != nil {
		return fmt.Errorf("failed to write blob %s: %w", blobType, err)
	}
	return nil
}

// Read retrieves a blob by type.
func (r *MySQLBlobRepository) Read(ctx context.Context, blobType string) (*model.StoredBlob, error) {
	blob := &model.StoredBlob{Type: blobType}

	err := r.db.QueryRowContext(ctx,
		"SELECT content, updated_at FROM content_blobs WHERE type = ? LIMIT 1", blobType,
	).Scan(&blob.Content, &blob.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read blob %s: %w", blobType, err)
	}
	return blob, nil
}

// BatchWrite upserts blobs in one transaction.
func (r *MySQLBlobRepository) BatchWrite(ctx context.Context, items []*model.StoredBlob) error {
	if len(items) == 0 {
		return nil
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	for _, item := range items {
		if _, err := tx.ExecContext(ctx, mysqlUpsert, item.Type, string(item.Content), item.UpdatedAt.UTC()); err != nil {
			return fmt.Errorf("failed to batch write %s: %w", item.Type, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// List returns stored blob types.
func (r *MySQLBlobRepository) List(ctx context.Context) ([]string, error) {
	return queryTypes(ctx, r.db, "SELECT type FROM content_blobs ORDER BY type")
}

// GetStats returns statistics about the blob table.
func (r *MySQLBlobRepository) GetStats(ctx context.Context) (map[string]interface{}, error) {
	stats := map[string]interface{}{"backend": "mysql"}

	var count int64
	if err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM content_blobs").Scan(&count); err != nil {
		return nil, err
	}
	stats["total_blobs"] = count

	var last sql.NullTime
	if err := r.db.QueryRowContext(ctx, "SELECT MAX(updated_at) FROM content_blobs").Scan(&last); err == nil && last.Valid {
		stats["last_write"] = last.Time
	}

	dbStats := r.db.Stats()
	stats["connections"] = map[string]interface{}{
		"open":     dbStats.OpenConnections,
		"in_use":   dbStats.InUse,
		"idle":     dbStats.Idle,
		"max_open": dbStats.MaxOpenConnections,
	}
	return stats, nil
}

// Close closes the database connection pool.
func (r *MySQLBlobRepository) Close() error {
	return r.db.Close()
}

var _ BlobRepository = (*MySQLBlobRepository)(nil)
