// Package toast keeps the queue of transient admin notifications.
package toast

import (
	"sync"
	"time"

	"ironline-site/internal/model"
	"ironline-site/pkg/uid"
)

// DefaultDuration is how long a toast stays visible.
const DefaultDuration = 3000 * time.Millisecond

// Queue is an unbounded, ordered list of visible toasts. Each toast is
// removed automatically after the queue's duration.
type Queue struct {
	mu       sync.Mutex
	items    []model.Toast
	timers   map[string]*time.Timer
	duration time.Duration
	now      func() time.Time
	closed   bool
}

// NewQueue creates a queue. duration <= 0 uses DefaultDuration.
func NewQueue(duration time.Duration) *Queue {
	if duration <= 0 {
		duration = DefaultDuration
	}
	return &Queue{
		timers:   make(map[string]*time.Timer),
		duration: duration,
		now:      time.Now,
	}
}

// Show appends a toast and schedules its removal.
func (q *Queue) Show(message string, kind model.ToastKind) model.Toast {
	if kind == "" {
		kind = model.ToastInfo
	}
	t := model.Toast{
		ID:        uid.Short(),
		Message:   message,
		Type:      kind,
		CreatedAt: q.now(),
	}

	q.mu.Lock()
	defer q.mu.Unlock()

	q.items = append(q.items, t)
	if !q.closed {
		id := t.ID
		q.timers[id] = time.AfterFunc(q.duration, func() { q.Hide(id) })
	}
	return t
}

// Success is shorthand for Show(message, model.ToastSuccess).
func (q *Queue) Success(message string) model.Toast {
	return q.Show(message, model.ToastSuccess)
}

// Error is shorthand for Show(message, model.ToastError).
func (q *Queue) Error(message string) model.Toast {
	return q.Show(message, model.ToastError)
}

// Hide removes a toast. It reports whether the toast was still visible.
func (q *Queue) Hide(id string) bool {
	q.mu.Lock()
	defer q.mu.Unlock()

	if timer, ok := q.timers[id]; ok {
		timer.Stop()
		delete(q.timers, id)
	}

	for i, t := range q.items {
		if t.ID == id {
			out := make([]model.Toast, 0, len(q.items)-1)
			out = append(out, q.items[:i]...)
			q.items = append(out, q.items[i+1:]...)
			return true
		}
	}
	return false
}

// List returns the visible toasts, oldest first.
func (q *Queue) List() []model.Toast {
	q.mu.Lock()
	defer q.mu.Unlock()

	out := make([]model.Toast, len(q.items))
	copy(out, q.items)
	return out
}

// Len returns the number of visible toasts.
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.items)
}

// Close stops every pending dismissal timer. Toasts shown afterwards are
// never auto-dismissed.
func (q *Queue) Close() {
	q.mu.Lock()
	defer q.mu.Unlock()

	for id, timer := range q.timers {
		timer.Stop()
		delete(q.timers, id)
	}
	q.closed = true
}
