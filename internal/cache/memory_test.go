package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStoreSetGetRemove(t *testing.T) {
	s := NewMemoryStore()
	defer s.Close()
	ctx := context.Background()

	_, err := s.Get(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, s.Set(ctx, "k", []byte("v"), 0))
	got, err := s.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, []byte("v"), got)

	ok, err := s.Exists(ctx, "k")
	require.NoError(t, err)
	assert.True(t, ok)

	require.NoError(t, s.Remove(ctx, "k"))
	_, err = s.Get(ctx, "k")
	assert.ErrorIs(t, err, ErrNotFound)

	assert.NoError(t, s.Remove(ctx, "k"))
}

func TestMemoryStoreReturnsCopies(t *testing.T) {
	s := NewMemoryStore()
	defer s.Close()
	ctx := context.Background()

	in := []byte("abc")
	require.NoError(t, s.Set(ctx, "k", in, 0))
	in[0] = 'x'

	out, err := s.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "abc", string(out))

	out[0] = 'y'
	again, _ := s.Get(ctx, "k")
	assert.Equal(t, "abc", string(again))
}

func TestMemoryStoreExpiry(t *testing.T) {
	s := NewMemoryStore()
	defer s.Close()
	ctx := context.Background()

	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return now }

	require.NoError(t, s.Set(ctx, "short", []byte("1"), time.Second))
	require.NoError(t, s.Set(ctx, "forever", []byte("2"), 0))

	now = now.Add(2 * time.Second)

	_, err := s.Get(ctx, "short")
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = s.Get(ctx, "forever")
	assert.NoError(t, err)

	s.removeExpired()
	assert.ElementsMatch(t, []string{"forever"}, s.Keys(""))
}

func TestMemoryStoreGetOrSet(t *testing.T) {
	s := NewMemoryStore()
	defer s.Close()
	ctx := context.Background()

	calls := 0
	fn := func() ([]byte, error) {
		calls++
		return []byte("computed"), nil
	}

	v, err := s.GetOrSet(ctx, "k", time.Minute, fn)
	require.NoError(t, err)
	assert.Equal(t, "computed", string(v))

	v, err = s.GetOrSet(ctx, "k", time.Minute, fn)
	require.NoError(t, err)
	assert.Equal(t, "computed", string(v))
	assert.Equal(t, 1, calls)

	_, err = s.GetOrSet(ctx, "other", time.Minute, func() ([]byte, error) {
		return nil, errors.New("boom")
	})
	assert.EqualError(t, err, "boom")
	ok, _ := s.Exists(ctx, "other")
	assert.False(t, ok)
}

func TestMemorySequenceGuard(t *testing.T) {
	g := NewMemorySequenceGuard()
	ctx := context.Background()

	ok, err := g.Accept(ctx, "heroContent", 2)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, _ = g.Accept(ctx, "heroContent", 1)
	assert.False(t, ok, "older token must be rejected")

	ok, _ = g.Accept(ctx, "heroContent", 2)
	assert.False(t, ok, "replayed token must be rejected")

	ok, _ = g.Accept(ctx, "heroContent", 3)
	assert.True(t, ok)

	ok, _ = g.Accept(ctx, "footerContent", 1)
	assert.True(t, ok, "keys are independent")
}
