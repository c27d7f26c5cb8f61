package repository

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"ironline-site/internal/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoDBBlobRepository implements BlobRepository using MongoDB.
// Content is kept as the raw JSON string so key order survives round trips.
type MongoDBBlobRepository struct {
	client     *mongo.Client
	db         *mongo.Database
	collection *mongo.Collection
}

// blobDocument represents a document in MongoDB.
type blobDocument struct {
	Type      string    `bson:"type"`
	Content   string    `bson:"content"`
	UpdatedAt time.Time `bson:"updated_at"`
}

// NewMongoDBBlobRepository creates a new MongoDB blob repository.
func NewMongoDBBlobRepository(uri, database, collection string) (*MongoDBBlobRepository, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	clientOpts := options.Client().
		ApplyURI(uri).
		SetMaxPoolSize(20).
		SetMinPoolSize(1).
		SetMaxConnIdleTime(5 * time.Minute).
		SetRetryWrites(true)

	client, err := mongo.Connect(ctx, clientOpts)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		client.Disconnect(ctx)
		return nil, fmt.Errorf("failed to ping MongoDB: %w", err)
	}

	db := client.Database(database)
	coll := db.Collection(collection)

	indexModel := mongo.IndexModel{
		Keys:    bson.D{{Key: "type", Value: 1}},
		Options: options.Index().SetUnique(true),
	}
	if _, err := coll.Indexes().CreateOne(ctx, indexModel); err != nil {
		log.Printf("[MongoDB] Warning: failed to create index: %v", err)
	}

	log.Printf("[MongoDB] Connected to %s/%s", database, collection)
	return &MongoDBBlobRepository{client: client, db: db, collection: coll}, nil
}

func (r *MongoDBBlobRepository) upsertModel(blobType string, content []byte, at time.Time) *mongo.UpdateOneModel {
	return mongo.NewUpdateOneModel().
		SetFilter(bson.M{"type": blobType}).
		SetUpdate(bson.M{"$set": bson.M{
			"content":    string(content),
			"updated_at": at,
		}}).
		SetUpsert(true)
}

// Write inserts or replaces a blob.
func (r *MongoDBBlobRepository) Write(ctx context.Context, blobType string, content []byte) error {
	update := bson.M{"$set": bson.M{
		"content":    string(content),
		"updated_at": time.Now(),
	}}
	opts := options.Update().SetUpsert(true)
	if _, err := r.collection.UpdateOne(ctx, bson.M{"type": blobType}, update, opts); err != nil {
		return fmt.Errorf("failed to write blob %s: %w", blobType, err)
	}
	return nil
}

// Read retrieves a blob by type.
func (r *MongoDBBlobRepository) Read(ctx context.Context, blobType string) (*model.StoredBlob, error) {
	var doc blobDocument
	err := r.collection.FindOne(ctx, bson.M{"type": blobType}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read blob %s: %w", blobType, err)
	}

	return &model.StoredBlob{
		Type:      doc.Type,
		Content:   []byte(doc.Content),
		UpdatedAt: doc.UpdatedAt,
	}, nil
}

// BatchWrite upserts multiple blobs in one unordered bulk write.
func (r *MongoDBBlobRepository) BatchWrite(ctx context.Context, items []*model.StoredBlob) error {
	if len(items) == 0 {
		return nil
	}

	models := make([]mongo.WriteModel, 0, len(items))
	for _, item := range items {
		models = append(models, r.upsertModel(item.Type, item.Content, item.UpdatedAt))
	}

	opts := options.BulkWrite().SetOrdered(false)
	if _, err := r.collection.BulkWrite(ctx, models, opts); err != nil {
		return fmt.Errorf("failed to batch write: %w", err)
	}

	log.Printf("[MongoDB] Batch wrote %d blobs", len(items))
	return nil
}

// List returns stored blob types.
func (r *MongoDBBlobRepository) List(ctx context.Context) ([]string, error) {
	opts := options.Find().
		SetProjection(bson.M{"type": 1}).
		SetSort(bson.D{{Key: "type", Value: 1}})

	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list blobs: %w", err)
	}
	defer cursor.Close(ctx)

	types := []string{}
	for cursor.Next(ctx) {
		var doc blobDocument
		if err := cursor.Decode(&doc); err != nil {
			return nil, err
		}
		types = append(types, doc.Type)
	}
	return types, cursor.Err()
}

// GetStats returns statistics about the blob collection.
func (r *MongoDBBlobRepository) GetStats(ctx context.Context) (map[string]interface{}, error) {
	stats := map[string]interface{}{"backend": "mongodb", "status": "connected"}

	count, err := r.collection.CountDocuments(ctx, bson.M{})
	if err != nil {
		return stats, err
	}
	stats["total_blobs"] = count

	opts := options.FindOne().SetSort(bson.D{{Key: "updated_at", Value: -1}})
	var doc blobDocument
	if err := r.collection.FindOne(ctx, bson.M{}, opts).Decode(&doc); err == nil {
		stats["last_write"] = doc.UpdatedAt
	}

	result := r.db.RunCommand(ctx, bson.D{{Key: "collStats", Value: r.collection.Name()}})
	var collStats bson.M
	if err := result.Decode(&collStats); err == nil {
		switch size := collStats["size"].(type) {
		case int64:
			stats["db_size_bytes"] = size
		case int32:
			stats["db_size_bytes"] = int64(size)
		}
	}

	return stats, nil
}

// Close closes the MongoDB connection.
func (r *MongoDBBlobRepository) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return r.client.Disconnect(ctx)
}

var _ BlobRepository = (*MongoDBBlobRepository)(nil)
