// Package content holds every editable collection of the site in memory,
// mirrors each change to a key-value store and notifies subscribers.
package content

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"sync"
	"time"

	"ironline-site/internal/cache"
)

// Collection names. They double as key-value keys (prefixed) and as
// persistence bridge blob types.
const (
	CollectionSections      = "sections"
	CollectionNavigation    = "navigation"
	CollectionGameModes     = "gameModes"
	CollectionOperators     = "operators"
	CollectionMaps          = "maps"
	CollectionBattlePass    = "battlePass"
	CollectionRewards       = "rewards"
	CollectionHero          = "hero"
	CollectionFooter        = "footer"
	CollectionBottomButtons = "bottomButtons"
	CollectionLaunch        = "launch"
)

const keyPrefix = "content:"

// Key returns the key-value store key for a collection.
func Key(collection string) string {
	return keyPrefix + collection
}

// Options configures a Store.
type Options struct {
	// SessionTTL applies to every collection except launch content; zero keeps entries indefinitely.
	SessionTTL time.Duration
}

// Store is the single source of truth for editable site content.
//
// Every mutation replaces only the touched collection, so a State returned
// by Snapshot is never modified afterwards. Operations never fail: unknown
// ids are no-ops and persistence errors are logged.
type Store struct {
	mu    sync.RWMutex
	state State
	kv    cache.Store
	opts  Options

	hookMu sync.RWMutex
	hooks  []func(collection string)
}

// NewStore creates a store seeded with the compiled-in defaults.
// kv may be nil, in which case nothing is persisted.
func NewStore(kv cache.Store, opts Options) *Store {
	return &Store{
		state: Defaults(),
		kv:    kv,
		opts:  opts,
	}
}

// OnChange registers fn to be called after a collection changes.
func (s *Store) OnChange(fn func(collection string)) {
	s.hookMu.Lock()
	defer s.hookMu.Unlock()
	s.hooks = append(s.hooks, fn)
}

func (s *Store) notify(collections ...string) {
	s.hookMu.RLock()
	hooks := s.hooks
	s.hookMu.RUnlock()

	for _, c := range collections {
		for _, fn := range hooks {
			fn(c)
		}
	}
}

// Load reads every collection from the key-value store once. Missing keys
// keep their default; unreadable values are logged and keep their default.
func (s *Store) Load(ctx context.Context) {
	if s.kv == nil {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	loaded := 0
	for _, c := range collections {
		raw, err := s.kv.Get(ctx, Key(c.name))
		if errors.Is(err, cache.ErrNotFound) {
			continue
		}
		if err != nil {
			log.Printf("[ContentStore] Failed to read %s: %v", c.name, err)
			continue
		}
		if err := c.decode(&s.state, raw); err != nil {
			log.Printf("[ContentStore] Ignoring unreadable %s, keeping defaults: %v", c.name, err)
			continue
		}
		loaded++
	}
	log.Printf("[ContentStore] Loaded %d/%d collections from storage", loaded, len(collections))
}

// Snapshot returns the current state.
func (s *Store) Snapshot() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// Collection returns the current value of a named collection.
func (s *Store) Collection(name string) (interface{}, bool) {
	c, ok := collectionByName(name)
	if !ok {
		return nil, false
	}
	st := s.Snapshot()
	return c.value(&st), true
}

// Collections returns every collection keyed by name, from one snapshot.
func (s *Store) Collections() map[string]interface{} {
	st := s.Snapshot()
	out := make(map[string]interface{}, len(collections))
	for _, c := range collections {
		out[c.name] = c.value(&st)
	}
	return out
}

// mutate applies fn under the write lock. When fn reports a change the
// collection is persisted and subscribers are notified.
func (s *Store) mutate(ctx context.Context, collection string, fn func(st *State) bool) bool {
	s.mu.Lock()
	changed := fn(&s.state)
	if changed {
		s.persistLocked(ctx, collection)
	}
	s.mu.Unlock()

	if changed {
		s.notify(collection)
	}
	return changed
}

func (s *Store) persistLocked(ctx context.Context, collection string) {
	if s.kv == nil {
		return
	}
	c, ok := collectionByName(collection)
	if !ok {
		return
	}

	data, err := json.Marshal(c.value(&s.state))
	if err != nil {
		log.Printf("[ContentStore] Failed to encode %s: %v", collection, err)
		return
	}

	ttl := s.opts.SessionTTL
	if c.longLived {
		ttl = 0
	}
	if err := s.kv.Set(ctx, Key(collection), data, ttl); err != nil {
		log.Printf("[ContentStore] Failed to persist %s: %v", collection, err)
	}
}

// ResetAll restores every collection to its default and re-persists it.
func (s *Store) ResetAll(ctx context.Context) {
	s.mu.Lock()
	s.state = Defaults()
	names := make([]string, 0, len(collections))
	for _, c := range collections {
		s.persistLocked(ctx, c.name)
		names = append(names, c.name)
	}
	s.mu.Unlock()

	log.Printf("[ContentStore] Reset all collections to defaults")
	s.notify(names...)
}

// Names returns every collection name in a stable order.
func Names() []string {
	names := make([]string, len(collections))
	for i, c := range collections {
		names[i] = c.name
	}
	return names
}
