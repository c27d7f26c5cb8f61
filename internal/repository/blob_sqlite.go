package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"ironline-site/internal/model"

	_ "modernc.org/sqlite" // Pure Go SQLite driver - no CGO required
)

// SQLiteBlobRepository implements BlobRepository using SQLite.
type SQLiteBlobRepository struct {
	db *sql.DB
}

// NewSQLiteBlobRepository opens (and creates if needed) the database at dbPath.
func NewSQLiteBlobRepository(dbPath string) (*SQLiteBlobRepository, error) {
	if dir := filepath.Dir(dbPath); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create SQLite directory: %w", err)
		}
	}

	dsn := fmt.Sprintf("file:%s?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=synchronous(NORMAL)", dbPath)

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open SQLite: %w", err)
	}

	// SQLite only supports 1 writer
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if err := createSQLiteTables(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}

	log.Printf("[SQLiteBlobRepository] Initialized with database: %s", dbPath)
	return &SQLiteBlobRepository{db: db}, nil
}

func createSQLiteTables(db *sql.DB) error {
	query := `
	CREATE TABLE IF NOT EXISTS content_blobs (
		type TEXT PRIMARY KEY,
		content TEXT NOT NULL,
		updated_at INTEGER NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_blobs_updated_at ON content_blobs(updated_at);
	`
	_, err := db.Exec(query)
	return err
}

const sqliteUpsert = `
	INSERT INTO content_blobs (type, content, updated_at)
	VALUES (?, ?, ?)
	ON CONFLICT(type) DO UPDATE SET
		content = excluded.content,
		updated_at = excluded.updated_at`

// Write inserts or replaces a blob.
func (r *SQLiteBlobRepository) Write(ctx context.Context, blobType string, content []byte) error {
	_, err := r.db.ExecContext(ctx, sqliteUpsert, blobType, string(content), time.Now().UnixMilli())
	if err != nil {
		return fmt.Errorf("failed to write blob %s: %w", blobType, err)
	}
	return nil
}

// Read retrieves a blob by type.
func (r *SQLiteBlobRepository) Read(ctx context.Context, blobType string) (*model.StoredBlob, error) {
	var content string
	var updatedAt int64

	err := r.db.QueryRowContext(ctx,
		`SELECT content, updated_at FROM content_blobs WHERE type = ?`, blobType,
	).Scan(&content, &updatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read blob %s: %w", blobType, err)
	}

	return &model.StoredBlob{
		Type:      blobType,
		Content:   []byte(content),
		UpdatedAt: time.UnixMilli(updatedAt),
	}, nil
}

// BatchWrite upserts blobs in one transaction.
func (r *SQLiteBlobRepository) BatchWrite(ctx context.Context, items []*model.StoredBlob) error {
	if len(items) == 0 {
		return nil
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, sqliteUpsert)
	if err != nil {
		return fmt.Errorf("failed to prepare statement: %w", err)
	}
	defer stmt.Close()

	for _, item := range items {
		if _, err := stmt.ExecContext(ctx, item.Type, string(item.Content), item.UpdatedAt.UnixMilli()); err != nil {
			return fmt.Errorf("failed to batch write %s: %w", item.Type, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// List returns stored blob types.
func (r *SQLiteBlobRepository) List(ctx context.Context) ([]string, error) {
	return queryTypes(ctx, r.db, `SELECT type FROM content_blobs ORDER BY type`)
}

// GetStats returns statistics about the blob table.
func (r *SQLiteBlobRepository) GetStats(ctx context.Context) (map[string]interface{}, error) {
	stats := map[string]interface{}{"backend": "sqlite"}

	var count int64
	if err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM content_blobs").Scan(&count); err != nil {
		return nil, err
	}
	stats["total_blobs"] = count

	var last sql.NullInt64
	if err := r.db.QueryRowContext(ctx, "SELECT MAX(updated_at) FROM content_blobs").Scan(&last); err == nil && last.Valid {
		stats["last_write"] = time.UnixMilli(last.Int64)
	}

	var pageCount, pageSize int64
	r.db.QueryRowContext(ctx, "PRAGMA page_count").Scan(&pageCount)
	r.db.QueryRowContext(ctx, "PRAGMA page_size").Scan(&pageSize)
	stats["db_size_bytes"] = pageCount * pageSize

	return stats, nil
}

// Close closes the database connection.
func (r *SQLiteBlobRepository) Close() error {
	return r.db.Close()
}

// queryTypes runs a single-column query returning blob type names.
func queryTypes(ctx context.Context, db *sql.DB, query string) ([]string, error) {
	rows, err := db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list blobs: %w", err)
	}
	defer rows.Close()

	types := []string{}
	for rows.Next() {
		var t string
		if err := rows.Scan(&t); err != nil {
			return nil, err
		}
		types = append(types, t)
	}
	return types, rows.Err()
}

var _ BlobRepository = (*SQLiteBlobRepository)(nil)
