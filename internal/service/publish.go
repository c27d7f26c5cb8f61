package service

import (
	"context"
	"log"
	"sync"
	"time"
)

// PublishFunc writes the current content to durable storage and reports
// how many collections were written.
type PublishFunc func(ctx context.Context) (int, error)

// PublishConfig holds configuration for the publish scheduler.
type PublishConfig struct {
	// Interval is how often pending changes are published.
	// Default: 1 minute
	Interval time.Duration

	// Timeout bounds a single publish run.
	// Default: 30 seconds
	Timeout time.Duration
}

// PublishScheduler periodically publishes content changes to the
// persistence bridge. Runs are skipped while nothing changed.
type PublishScheduler struct {
	publish   PublishFunc
	config    PublishConfig
	ticker    *time.Ticker
	stopCh    chan struct{}
	done      chan struct{}
	stopOnce  sync.Once
	isRunning bool
	dirty     bool
	mu        sync.Mutex
}

// NewPublishScheduler creates a new publish scheduler.
func NewPublishScheduler(publish PublishFunc, config PublishConfig) *PublishScheduler {
	if config.Interval <= 0 {
		config.Interval = time.Minute
	}
	if config.Timeout <= 0 {
		config.Timeout = 30 * time.Second
	}

	return &PublishScheduler{
		publish: publish,
		config:  config,
		stopCh:  make(chan struct{}),
		done:    make(chan struct{}),
	}
}

// MarkDirty records that content changed. Its signature matches
// content.Store.OnChange.
func (s *PublishScheduler) MarkDirty(string) {
	s.mu.Lock()
	s.dirty = true
	s.mu.Unlock()
}

// Pending reports whether unpublished changes exist.
func (s *PublishScheduler) Pending() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.dirty
}

// Start begins the publish scheduler.
func (s *PublishScheduler) Start() {
	s.mu.Lock()
	if s.isRunning {
		s.mu.Unlock()
		return
	}
	s.isRunning = true
	s.ticker = time.NewTicker(s.config.Interval)
	s.mu.Unlock()

	log.Printf("[PublishScheduler] Started - Interval: %v", s.config.Interval)

	go s.run()
}

// run is the main publish loop.
func (s *PublishScheduler) run() {
	defer close(s.done)
	for {
		select {
		case <-s.ticker.C:
			s.runPublish()
		case <-s.stopCh:
			// Final publish so changes made just before shutdown are kept.
			s.runPublish()
			log.Printf("[PublishScheduler] Stopped")
			return
		}
	}
}

// runPublish publishes when changes are pending. A failed run leaves the
// changes pending for the next tick.
func (s *PublishScheduler) runPublish() {
	s.mu.Lock()
	if !s.dirty {
		s.mu.Unlock()
		return
	}
	s.dirty = false
	s.mu.Unlock()

	if _, err := s.RunNow(); err != nil {
		log.Printf("[PublishScheduler] Error during publish: %v", err)
		s.MarkDirty("")
	}
}

// Stop stops the scheduler after a final publish of pending changes.
func (s *PublishScheduler) Stop() {
	s.stopOnce.Do(func() {
		s.mu.Lock()
		running := s.isRunning
		if s.ticker != nil {
			s.ticker.Stop()
		}
		close(s.stopCh)
		s.isRunning = false
		s.mu.Unlock()

		if running {
			<-s.done
		}
	})
}

// RunNow triggers an immediate publish regardless of pending changes.
func (s *PublishScheduler) RunNow() (int, error) {
	ctx, cancel := context.WithTimeout(context.Background(), s.config.Timeout)
	defer cancel()

	n, err := s.publish(ctx)
	if err == nil {
		log.Printf("[PublishScheduler] Published %d collections", n)
	}
	return n, err
}
