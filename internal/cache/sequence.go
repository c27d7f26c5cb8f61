package cache

import (
	"context"
	"sync"

	"github.com/redis/go-redis/v9"
)

// SequenceGuard tracks the newest write-sequence token accepted per key.
// Accept reports whether seq is newer than every token seen so far for key
// and, if so, records it.
type SequenceGuard interface {
	Accept(ctx context.Context, key string, seq int64) (bool, error)
}

// MemorySequenceGuard is a process-local SequenceGuard.
type MemorySequenceGuard struct {
	mu   sync.Mutex
	last map[string]int64
}

// NewMemorySequenceGuard creates an empty guard.
func NewMemorySequenceGuard() *MemorySequenceGuard {
	return &MemorySequenceGuard{last: make(map[string]int64)}
}

// Accept implements SequenceGuard.
func (g *MemorySequenceGuard) Accept(_ context.Context, key string, seq int64) (bool, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if last, ok := g.last[key]; ok && seq <= last {
		return false, nil
	}
	g.last[key] = seq
	return true, nil
}

var acceptIfNewerScript = redis.NewScript(`
	local last = redis.call("HGET", KEYS[1], ARGV[1])
	if last and tonumber(last) >= tonumber(ARGV[2]) then
		return 0
	end
	redis.call("HSET", KEYS[1], ARGV[1], ARGV[2])
	return 1
`)

// RedisSequenceGuard shares sequence tokens across instances.
type RedisSequenceGuard struct {
	client *redis.Client
	key    string
}

// NewRedisSequenceGuard creates a guard stored in a single Redis hash.
func NewRedisSequenceGuard(client *redis.Client, keyPrefix string) *RedisSequenceGuard {
	if keyPrefix == "" {
		keyPrefix = "ironline"
	}
	return &RedisSequenceGuard{client: client, key: keyPrefix + ":bridge:seq"}
}

// Accept implements SequenceGuard atomically.
func (g *RedisSequenceGuard) Accept(ctx context.Context, key string, seq int64) (bool, error) {
	n, err := acceptIfNewerScript.Run(ctx, g.client, []string{g.key}, key, seq).Int()
	if err != nil {
		return false, err
	}
	return n == 1, nil
}

var (
	_ SequenceGuard = (*MemorySequenceGuard)(nil)
	_ SequenceGuard = (*RedisSequenceGuard)(nil)
)
