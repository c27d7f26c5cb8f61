package gate

import (
	"context"
	"sync"
	"time"

	"ironline-site/internal/cache"
)

// DefaultIdleTimeout is how long an untouched session stays in memory.
const DefaultIdleTimeout = 30 * time.Minute

type session struct {
	gate     *Gate
	detector *SequenceDetector
	mu       sync.Mutex
	lastSeen time.Time
}

// Manager keeps one gate and one hotkey detector per browser session.
// Sessions idle for longer than the idle timeout are dropped; the persisted
// admin flag brings a dropped session back as logged in.
type Manager struct {
	mu        sync.Mutex
	sessions  map[string]*session
	verifier  Verifier
	kv        cache.Store
	sequence  []string
	idle      time.Duration
	lastSweep time.Time
	now       func() time.Time
}

// NewManager creates a manager.
func NewManager(verifier Verifier, kv cache.Store, sequence []string) *Manager {
	return &Manager{
		sessions: make(map[string]*session),
		verifier: verifier,
		kv:       kv,
		sequence: sequence,
		idle:     DefaultIdleTimeout,
		now:      time.Now,
	}
}

// SetIdleTimeout changes the idle timeout; d <= 0 restores the default.
func (m *Manager) SetIdleTimeout(d time.Duration) {
	if d <= 0 {
		d = DefaultIdleTimeout
	}
	m.mu.Lock()
	m.idle = d
	m.mu.Unlock()
}

func (m *Manager) session(ctx context.Context, sessionID string) *session {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	m.sweepLocked(now)

	s, ok := m.sessions[sessionID]
	if !ok {
		s = &session{
			gate:     New(ctx, sessionID, m.verifier, m.kv),
			detector: NewSequenceDetector(m.sequence),
		}
		m.sessions[sessionID] = s
	}
	s.lastSeen = now
	return s
}

// sweepLocked drops idle sessions, at most once per tenth of the timeout.
func (m *Manager) sweepLocked(now time.Time) {
	if now.Sub(m.lastSweep) < m.idle/10 {
		return
	}
	m.lastSweep = now

	for id, s := range m.sessions {
		if now.Sub(s.lastSeen) > m.idle {
			delete(m.sessions, id)
		}
	}
}

// Gate returns the gate of a session, restoring it on first use.
func (m *Manager) Gate(ctx context.Context, sessionID string) *Gate {
	return m.session(ctx, sessionID).gate
}

// FeedKeys runs events through the session's detector. Every completed
// sequence requests access; the resulting state is returned with whether
// the sequence fired.
func (m *Manager) FeedKeys(ctx context.Context, sessionID string, events []KeyEvent) (State, bool) {
	s := m.session(ctx, sessionID)

	s.mu.Lock()
	fired := false
	for _, ev := range events {
		if s.detector.Feed(ev) {
			fired = true
		}
	}
	s.mu.Unlock()

	if fired {
		return s.gate.RequestAccess(), true
	}
	return s.gate.State(), false
}

// Forget drops the in-memory gate of a session. A persisted admin flag
// survives and is restored on next use, mirroring a page reload.
func (m *Manager) Forget(sessionID string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, sessionID)
}

// Count returns the number of tracked sessions.
func (m *Manager) Count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}
