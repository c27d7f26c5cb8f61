package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"ironline-site/internal/cache"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionLifecycle(t *testing.T) {
	kv := cache.NewMemoryStore()
	defer kv.Close()
	s := NewSessionService(kv, time.Hour)
	ctx := context.Background()

	now := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return now }

	token, data, err := s.Generate(ctx, "tab-1", "10.0.0.1")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(token, TokenPrefix))
	assert.Equal(t, now.Add(time.Hour), data.ExpiresAt)

	got, err := s.Validate(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, "tab-1", got.SessionID)
	assert.Equal(t, "10.0.0.1", got.RemoteIP)

	now = now.Add(30 * time.Minute)
	refreshed, err := s.Refresh(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, now.Add(time.Hour), refreshed.ExpiresAt)

	require.NoError(t, s.Revoke(ctx, token))
	_, err = s.Validate(ctx, token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestSessionExpiry(t *testing.T) {
	kv := cache.NewMemoryStore()
	defer kv.Close()
	s := NewSessionService(kv, time.Hour)
	ctx := context.Background()

	now := time.Now()
	s.now = func() time.Time { return now }

	token, _, err := s.Generate(ctx, "tab-1", "")
	require.NoError(t, err)

	now = now.Add(2 * time.Hour)
	_, err = s.Validate(ctx, token)
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = s.Refresh(ctx, token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestSessionRejectsForeignTokens(t *testing.T) {
	kv := cache.NewMemoryStore()
	defer kv.Close()
	s := NewSessionService(kv, 0)

	assert.Equal(t, DefaultSessionTTL, s.TTL())

	_, err := s.Validate(context.Background(), "not-a-token")
	assert.ErrorIs(t, err, ErrInvalidToken)
	_, err = s.Validate(context.Background(), TokenPrefix+"unknown")
	assert.ErrorIs(t, err, ErrInvalidToken)
}
