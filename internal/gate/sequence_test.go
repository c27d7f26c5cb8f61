package gate

import (
	"context"
	"fmt"
	"testing"
	"time"

	"ironline-site/internal/cache"

	"github.com/stretchr/testify/assert"
)

func held(key string) KeyEvent {
	return KeyEvent{Key: key, Type: "keydown", Ctrl: true, Alt: true}
}

func feedAll(d *SequenceDetector, keys []string) int {
	fired := 0
	for _, k := range keys {
		if d.Feed(held(k)) {
			fired++
		}
	}
	return fired
}

func TestSequenceFiresOnceOnFullMatch(t *testing.T) {
	d := NewSequenceDetector(nil)
	assert.Equal(t, 1, feedAll(d, DefaultSequence))
	assert.Equal(t, 0, d.Progress())

	assert.Equal(t, 2, feedAll(d, append(append([]string{}, DefaultSequence...), DefaultSequence...)))
}

func TestSequenceRequiresModifiers(t *testing.T) {
	d := NewSequenceDetector(nil)
	for _, k := range DefaultSequence {
		assert.False(t, d.Feed(KeyEvent{Key: k, Type: "keydown", Ctrl: true}))
	}
	assert.Equal(t, 0, d.Progress())
}

func TestSequenceResetsOnModifierRelease(t *testing.T) {
	d := NewSequenceDetector(nil)
	feedAll(d, DefaultSequence[:5])
	assert.Equal(t, 5, d.Progress())

	d.Feed(KeyEvent{Key: "Alt", Type: "keyup", Ctrl: true})
	assert.Equal(t, 0, d.Progress())

	assert.Equal(t, 0, feedAll(d, DefaultSequence[5:]))
}

func TestSequenceResetsOnMismatch(t *testing.T) {
	d := NewSequenceDetector([]string{"a", "b", "c"})

	assert.Equal(t, 0, feedAll(d, []string{"a", "x"}))
	assert.Equal(t, 0, d.Progress())

	assert.Equal(t, 1, feedAll(d, []string{"a", "b", "a", "b", "c"}), "mismatch on the first key restarts the match")
}

func TestSequenceFiresAfterExtraLeadingKeys(t *testing.T) {
	d := NewSequenceDetector(nil)
	keys := append([]string{"ArrowUp"}, DefaultSequence...)
	assert.Equal(t, 1, feedAll(d, keys))

	d = NewSequenceDetector(nil)
	keys = append([]string{"ArrowUp", "ArrowUp", "ArrowDown", "ArrowUp"}, DefaultSequence...)
	assert.Equal(t, 1, feedAll(d, keys))
}

func TestSequenceKeepsMatchingTail(t *testing.T) {
	d := NewSequenceDetector([]string{"a", "a", "b"})

	feedAll(d, []string{"a", "a", "a"})
	assert.Equal(t, 2, d.Progress())

	assert.True(t, d.Feed(held("b")))
}

func TestSequenceCaseInsensitive(t *testing.T) {
	d := NewSequenceDetector([]string{"a", "B"})
	assert.Equal(t, 1, feedAll(d, []string{"A", "b"}))
}

func TestManagerFeedKeysOpensPrompt(t *testing.T) {
	ctx := context.Background()
	m := NewManager(PlainVerifier{Password: "pw"}, nil, []string{"x", "y"})

	events := []KeyEvent{held("x")}
	state, fired := m.FeedKeys(ctx, "s", events)
	assert.False(t, fired)
	assert.Equal(t, LoggedOut, state)

	state, fired = m.FeedKeys(ctx, "s", []KeyEvent{held("y")})
	assert.True(t, fired)
	assert.Equal(t, PromptOpen, state)

	assert.NoError(t, m.Gate(ctx, "s").VerifyPassword(ctx, "pw"))
	assert.Equal(t, LoggedIn, m.Gate(ctx, "s").State())
	assert.Equal(t, LoggedOut, m.Gate(ctx, "other").State())
	assert.Equal(t, 2, m.Count())

	m.Forget("s")
	assert.Equal(t, 1, m.Count())
}

func TestManagerDropsIdleSessions(t *testing.T) {
	ctx := context.Background()
	kv := cache.NewMemoryStore()
	defer kv.Close()

	m := NewManager(PlainVerifier{Password: "pw"}, kv, nil)
	m.SetIdleTimeout(time.Minute)
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	m.now = func() time.Time { return now }

	g := m.Gate(ctx, "admin")
	g.RequestAccess()
	assert.NoError(t, g.VerifyPassword(ctx, "pw"))

	for i := 0; i < 1000; i++ {
		m.Gate(ctx, fmt.Sprintf("anon-%d", i))
	}
	assert.Equal(t, 1001, m.Count())

	now = now.Add(2 * time.Minute)
	m.Gate(ctx, "fresh")
	assert.Equal(t, 1, m.Count(), "only the new session survives")

	assert.Equal(t, LoggedIn, m.Gate(ctx, "admin").State(), "admin flag is restored from the store")
	assert.Equal(t, 2, m.Count())
}

func TestManagerKeepsActiveSessions(t *testing.T) {
	ctx := context.Background()
	m := NewManager(PlainVerifier{Password: "pw"}, nil, nil)
	m.SetIdleTimeout(time.Minute)
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	m.now = func() time.Time { return now }

	m.Gate(ctx, "a")
	m.Gate(ctx, "b")
	for i := 0; i < 5; i++ {
		now = now.Add(30 * time.Second)
		m.Gate(ctx, "a")
	}
	assert.Equal(t, 1, m.Count())
	assert.Equal(t, LoggedOut, m.Gate(ctx, "a").State())
}
