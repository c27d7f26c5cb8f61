package cache

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"sync"
	"time"

	"ironline-site/internal/model"

	"github.com/redis/go-redis/v9"
)

// Buffer configuration
const (
	MaxBatchSize = 50
	FlushTimeout = 60 * time.Second
)

// FlushFunc is called to persist buffered blobs to the bridge repository.
type FlushFunc func(ctx context.Context, items []*model.StoredBlob) error

var deleteIfUnchangedScript = redis.NewScript(`
	if redis.call("HGET", KEYS[1], ARGV[1]) == ARGV[2] then
		redis.call("HDEL", KEYS[1], ARGV[1])
		redis.call("SREM", KEYS[2], ARGV[1])
		return 1
	else
		return 0
	end
`)

// RedisBlobBuffer is a write-behind buffer for persistence bridge writes.
// Writes land in a Redis hash keyed by blob type and are flushed to the
// repository on an interval; a blob rewritten during a flush stays pending.
type RedisBlobBuffer struct {
	client      *redis.Client
	flushFunc   FlushFunc
	flushTicker *time.Ticker
	stopFlush   chan struct{}
	done        chan struct{}
	stopOnce    sync.Once
	keyPrefix   string
}

// RedisBufferConfig holds configuration for the blob buffer.
type RedisBufferConfig struct {
	FlushInterval time.Duration
	KeyPrefix     string
}

// NewRedisBlobBuffer creates a Redis-backed blob buffer on an existing client.
func NewRedisBlobBuffer(client *redis.Client, cfg RedisBufferConfig, flushFunc FlushFunc) (*RedisBlobBuffer, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	keyPrefix := cfg.KeyPrefix
	if keyPrefix == "" {
		keyPrefix = "ironline"
	}
	interval := cfg.FlushInterval
	if interval <= 0 {
		interval = 30 * time.Second
	}

	b := &RedisBlobBuffer{
		client:      client,
		flushFunc:   flushFunc,
		flushTicker: time.NewTicker(interval),
		stopFlush:   make(chan struct{}),
		done:        make(chan struct{}),
		keyPrefix:   keyPrefix + ":bridge",
	}

	go b.backgroundFlush()

	log.Printf("[RedisBlobBuffer] Started - prefix:%s, flush:%v, batch:%d", b.keyPrefix, interval, MaxBatchSize)
	return b, nil
}

func (b *RedisBlobBuffer) bufferKey() string {
	return b.keyPrefix + ":buffer"
}

func (b *RedisBlobBuffer) pendingKey() string {
	return b.keyPrefix + ":pending"
}

// Add buffers a blob write.
func (b *RedisBlobBuffer) Add(ctx context.Context, blobType string, content []byte) error {
	data, err := json.Marshal(&model.StoredBlob{
		Type:      blobType,
		Content:   content,
		UpdatedAt: time.Now(),
	})
	if err != nil {
		return err
	}

	pipe := b.client.Pipeline()
	pipe.HSet(ctx, b.bufferKey(), blobType, data)
	pipe.SAdd(ctx, b.pendingKey(), blobType)
	_, err = pipe.Exec(ctx)
	return err
}

// Get returns a pending blob, or nil when none is buffered for the type.
func (b *RedisBlobBuffer) Get(ctx context.Context, blobType string) (*model.StoredBlob, error) {
	data, err := b.client.HGet(ctx, b.bufferKey(), blobType).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var blob model.StoredBlob
	if err := json.Unmarshal(data, &blob); err != nil {
		return nil, err
	}
	return &blob, nil
}

// Count returns the number of pending blobs.
func (b *RedisBlobBuffer) Count(ctx context.Context) (int64, error) {
	return b.client.SCard(ctx, b.pendingKey()).Result()
}

// FlushBatch writes up to MaxBatchSize pending blobs to the repository.
func (b *RedisBlobBuffer) FlushBatch(ctx context.Context) (int, error) {
	types, err := b.client.SRandMemberN(ctx, b.pendingKey(), MaxBatchSize).Result()
	if err != nil {
		return 0, err
	}
	if len(types) == 0 {
		return 0, nil
	}

	items := make([]*model.StoredBlob, 0, len(types))
	originalData := make(map[string]string, len(types))

	for _, t := range types {
		data, err := b.client.HGet(ctx, b.bufferKey(), t).Bytes()
		if errors.Is(err, redis.Nil) {
			b.client.SRem(ctx, b.pendingKey(), t)
			continue
		}
		if err != nil {
			log.Printf("[RedisBlobBuffer] Error getting %s: %v", t, err)
			continue
		}

		originalData[t] = string(data)

		var blob model.StoredBlob
		if err := json.Unmarshal(data, &blob); err != nil {
			log.Printf("[RedisBlobBuffer] Dropping unreadable entry %s: %v", t, err)
			b.client.HDel(ctx, b.bufferKey(), t)
			b.client.SRem(ctx, b.pendingKey(), t)
			continue
		}
		items = append(items, &blob)
	}

	if len(items) == 0 {
		return 0, nil
	}

	if err := b.flushFunc(ctx, items); err != nil {
		log.Printf("[RedisBlobBuffer] Flush error: %v", err)
		return 0, err
	}

	pipe := b.client.Pipeline()
	for t, raw := range originalData {
		deleteIfUnchangedScript.Run(ctx, pipe, []string{b.bufferKey(), b.pendingKey()}, t, raw)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		log.Printf("[RedisBlobBuffer] Error clearing flushed entries: %v", err)
	}

	log.Printf("[RedisBlobBuffer] Flushed %d blobs", len(items))
	return len(items), nil
}

func (b *RedisBlobBuffer) backgroundFlush() {
	defer close(b.done)
	for {
		select {
		case <-b.flushTicker.C:
			ctx, cancel := context.WithTimeout(context.Background(), FlushTimeout)
			if _, err := b.FlushBatch(ctx); err != nil {
				log.Printf("[RedisBlobBuffer] Background flush error: %v", err)
			}
			cancel()
		case <-b.stopFlush:
			log.Printf("[RedisBlobBuffer] Shutdown: flushing remaining blobs...")
			ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
			for {
				flushed, err := b.FlushBatch(ctx)
				if err != nil || flushed == 0 {
					break
				}
			}
			cancel()
			return
		}
	}
}

// Close stops the buffer after a final flush. The Redis client is owned by the caller.
func (b *RedisBlobBuffer) Close() error {
	b.stopOnce.Do(func() {
		b.flushTicker.Stop()
		close(b.stopFlush)
	})
	<-b.done
	return nil
}
