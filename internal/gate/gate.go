// Package gate implements the admin unlock flow: a prompt opened by an
// explicit request or a hotkey sequence, closed by a password check.
//
// The plain password comparison is a UI convenience, not access control.
// Mutating HTTP routes are protected separately by server-issued session
// tokens.
package gate

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"log"
	"sync"

	"ironline-site/internal/cache"

	"golang.org/x/crypto/bcrypt"
)

// State is a gate state.
type State string

const (
	LoggedOut  State = "logged_out"
	PromptOpen State = "prompt_open"
	LoggedIn   State = "logged_in"
)

// ErrWrongPassword is returned when a candidate does not match.
var ErrWrongPassword = errors.New("wrong password")

// ErrNoPrompt is returned when a password is submitted without an open prompt.
var ErrNoPrompt = errors.New("no login prompt open")

// Verifier checks a candidate password.
type Verifier interface {
	Verify(candidate string) bool
}

// PlainVerifier compares against a configured constant.
type PlainVerifier struct {
	Password string
}

// Verify implements Verifier.
func (v PlainVerifier) Verify(candidate string) bool {
	if v.Password == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(candidate), []byte(v.Password)) == 1
}

// BcryptVerifier compares against a bcrypt hash.
type BcryptVerifier struct {
	Hash []byte
}

// Verify implements Verifier.
func (v BcryptVerifier) Verify(candidate string) bool {
	return bcrypt.CompareHashAndPassword(v.Hash, []byte(candidate)) == nil
}

// NewVerifier picks a bcrypt verifier when hash is set, else a plain one.
func NewVerifier(password, hash string) (Verifier, error) {
	if hash != "" {
		if _, err := bcrypt.Cost([]byte(hash)); err != nil {
			return nil, fmt.Errorf("invalid admin password hash: %w", err)
		}
		return BcryptVerifier{Hash: []byte(hash)}, nil
	}
	if password == "" {
		log.Printf("[Gate] Warning: no admin password configured, login is disabled")
	}
	return PlainVerifier{Password: password}, nil
}

// Gate is the admin state machine of one browser session. The logged-in
// flag is persisted in the key-value store; an open prompt is not.
type Gate struct {
	mu        sync.Mutex
	sessionID string
	state     State
	verifier  Verifier
	kv        cache.Store
}

func adminKey(sessionID string) string {
	return "gate:" + sessionID + ":admin"
}

// New restores the gate for sessionID: LoggedIn when the persisted flag is
// set, LoggedOut otherwise.
func New(ctx context.Context, sessionID string, verifier Verifier, kv cache.Store) *Gate {
	g := &Gate{
		sessionID: sessionID,
		state:     LoggedOut,
		verifier:  verifier,
		kv:        kv,
	}
	if kv != nil {
		if raw, err := kv.Get(ctx, adminKey(sessionID)); err == nil && string(raw) == "true" {
			g.state = LoggedIn
		}
	}
	return g
}

// SessionID returns the browser session this gate belongs to.
func (g *Gate) SessionID() string {
	return g.sessionID
}

// State returns the current state.
func (g *Gate) State() State {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.state
}

// IsAdmin reports whether the session is logged in.
func (g *Gate) IsAdmin() bool {
	return g.State() == LoggedIn
}

// RequestAccess handles an explicit admin entry or a hotkey match. A
// logged-out session gets the prompt; a logged-in one stays logged in and
// the editor is reopened by the caller.
func (g *Gate) RequestAccess() State {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.state == LoggedOut {
		g.state = PromptOpen
	}
	return g.state
}

// VerifyPassword checks candidate while the prompt is open. A mismatch
// leaves the prompt open.
func (g *Gate) VerifyPassword(ctx context.Context, candidate string) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	switch g.state {
	case LoggedIn:
		return nil
	case LoggedOut:
		return ErrNoPrompt
	}

	if !g.verifier.Verify(candidate) {
		log.Printf("[Gate] Wrong password for session %s", g.sessionID)
		return ErrWrongPassword
	}

	g.state = LoggedIn
	if g.kv != nil {
		if err := g.kv.Set(ctx, adminKey(g.sessionID), []byte("true"), 0); err != nil {
			log.Printf("[Gate] Failed to persist admin flag: %v", err)
		}
	}
	log.Printf("[Gate] Session %s logged in", g.sessionID)
	return nil
}

// Cancel closes an open prompt.
func (g *Gate) Cancel() State {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.state == PromptOpen {
		g.state = LoggedOut
	}
	return g.state
}

// Logout clears the admin flag.
func (g *Gate) Logout(ctx context.Context) State {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.state != LoggedIn {
		return g.state
	}
	g.state = LoggedOut
	if g.kv != nil {
		if err := g.kv.Remove(ctx, adminKey(g.sessionID)); err != nil {
			log.Printf("[Gate] Failed to clear admin flag: %v", err)
		}
	}
	log.Printf("[Gate] Session %s logged out", g.sessionID)
	return g.state
}
