// Package countdown computes the time remaining until a release instant.
package countdown

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"
)

const (
	msPerSecond = int64(1000)
	msPerMinute = 60 * msPerSecond
	msPerHour   = 60 * msPerMinute
	msPerDay    = 24 * msPerHour
)

// Remaining is a decomposed countdown.
type Remaining struct {
	Days     int64     `json:"days"`
	Hours    int64     `json:"hours"`
	Minutes  int64     `json:"minutes"`
	Seconds  int64     `json:"seconds"`
	Launched bool      `json:"launched"`
	Target   time.Time `json:"target"`
	At       time.Time `json:"at"`
}

// Compute decomposes target-now by successive integer division of whole
// milliseconds. A non-positive difference is reported as launched with all
// units zero.
func Compute(target, now time.Time) Remaining {
	r := Remaining{Target: target, At: now}

	diff := target.Sub(now).Milliseconds()
	if diff <= 0 {
		r.Launched = true
		return r
	}

	r.Days = diff / msPerDay
	r.Hours = (diff % msPerDay) / msPerHour
	r.Minutes = (diff % msPerHour) / msPerMinute
	r.Seconds = (diff % msPerMinute) / msPerSecond
	return r
}

var releaseLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02",
}

// ParseReleaseDate parses an ISO-8601 date or date-time. Values without a
// zone are read in loc.
func ParseReleaseDate(s string, loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.Local
	}
	for _, layout := range releaseLayouts {
		if t, err := time.ParseInLocation(layout, s, loc); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid release date %q", s)
}

// Ticker recomputes the countdown on a fixed interval and delivers each
// value on C until stopped. It stops by itself after delivering the
// launched value.
type Ticker struct {
	C <-chan Remaining

	target   time.Time
	interval time.Duration
	now      func() time.Time
	out      chan Remaining
	stopCh   chan struct{}
	stopOnce sync.Once
}

// NewTicker starts a ticker. The first value is delivered immediately.
func NewTicker(ctx context.Context, target time.Time, interval time.Duration, now func() time.Time) *Ticker {
	if interval <= 0 {
		interval = time.Second
	}
	if now == nil {
		now = time.Now
	}
	out := make(chan Remaining, 1)
	t := &Ticker{
		C:        out,
		target:   target,
		interval: interval,
		now:      now,
		out:      out,
		stopCh:   make(chan struct{}),
	}
	go t.run(ctx)
	return t
}

func (t *Ticker) run(ctx context.Context) {
	defer close(t.out)

	ticker := time.NewTicker(t.interval)
	defer ticker.Stop()

	for {
		r := Compute(t.target, t.now())
		select {
		case t.out <- r:
		case <-ctx.Done():
			return
		case <-t.stopCh:
			return
		}
		if r.Launched {
			log.Printf("[Countdown] Target %s reached", t.target.Format(time.RFC3339))
			return
		}

		select {
		case <-ticker.C:
		case <-ctx.Done():
			return
		case <-t.stopCh:
			return
		}
	}
}

// Stop ends the ticker. C is closed once the goroutine exits.
func (t *Ticker) Stop() {
	t.stopOnce.Do(func() { close(t.stopCh) })
}
