package service

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"ironline-site/internal/cache"
	"ironline-site/internal/model"
)

const (
	// TokenPrefix is the prefix for all admin session tokens
	TokenPrefix = "ils_"

	// DefaultSessionTTL is the default token lifetime (1 hour)
	DefaultSessionTTL = 1 * time.Hour

	sessionKeyPrefix = "session:"
)

// ErrInvalidToken is returned for malformed, unknown or expired tokens.
var ErrInvalidToken = errors.New("invalid or expired token")

// SessionService issues and validates admin session tokens.
type SessionService struct {
	store cache.Store
	ttl   time.Duration
	now   func() time.Time
}

// NewSessionService creates a session service on top of a key-value store.
func NewSessionService(store cache.Store, ttl time.Duration) *SessionService {
	if ttl <= 0 {
		ttl = DefaultSessionTTL
	}
	return &SessionService{store: store, ttl: ttl, now: time.Now}
}

// TTL returns the token lifetime.
func (s *SessionService) TTL() time.Duration {
	return s.ttl
}

// Generate creates a new admin token bound to a gate session.
func (s *SessionService) Generate(ctx context.Context, sessionID, remoteIP string) (string, *model.SessionData, error) {
	tokenBytes := make([]byte, 32)
	if _, err := rand.Read(tokenBytes); err != nil {
		return "", nil, fmt.Errorf("failed to generate token: %w", err)
	}
	token := TokenPrefix + hex.EncodeToString(tokenBytes)

	data := &model.SessionData{
		SessionID: sessionID,
		RemoteIP:  remoteIP,
		CreatedAt: s.now(),
	}
	data.ExpiresAt = data.CreatedAt.Add(s.ttl)

	if err := s.save(ctx, token, data); err != nil {
		return "", nil, err
	}

	log.Printf("[SessionService] Issued admin token for session=%s ip=%s expires=%v",
		sessionID, remoteIP, data.ExpiresAt.Format(time.RFC3339))
	return token, data, nil
}

// Validate checks a token and returns its data.
func (s *SessionService) Validate(ctx context.Context, token string) (*model.SessionData, error) {
	if !strings.HasPrefix(token, TokenPrefix) {
		return nil, ErrInvalidToken
	}

	raw, err := s.store.Get(ctx, sessionKeyPrefix+token)
	if errors.Is(err, cache.ErrNotFound) {
		return nil, ErrInvalidToken
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get token: %w", err)
	}

	var data model.SessionData
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, fmt.Errorf("failed to parse token data: %w", err)
	}

	if s.now().After(data.ExpiresAt) {
		s.store.Remove(ctx, sessionKeyPrefix+token)
		return nil, ErrInvalidToken
	}
	return &data, nil
}

// Revoke deletes a token.
func (s *SessionService) Revoke(ctx context.Context, token string) error {
	return s.store.Remove(ctx, sessionKeyPrefix+token)
}

// Refresh extends the lifetime of a valid token.
func (s *SessionService) Refresh(ctx context.Context, token string) (*model.SessionData, error) {
	data, err := s.Validate(ctx, token)
	if err != nil {
		return nil, err
	}

	data.ExpiresAt = s.now().Add(s.ttl)
	if err := s.save(ctx, token, data); err != nil {
		return nil, err
	}
	return data, nil
}

func (s *SessionService) save(ctx context.Context, token string, data *model.SessionData) error {
	raw, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("failed to serialize token data: %w", err)
	}
	if err := s.store.Set(ctx, sessionKeyPrefix+token, raw, s.ttl); err != nil {
		return fmt.Errorf("failed to store token: %w", err)
	}
	return nil
}
