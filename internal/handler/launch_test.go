package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// steppingClock advances by step on every call.
type steppingClock struct {
	mu   sync.Mutex
	at   time.Time
	step time.Duration
}

func (c *steppingClock) now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	t := c.at
	c.at = c.at.Add(c.step)
	return t
}

func TestCountdown(t *testing.T) {
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	h := NewLaunchHandler(func() string { return "2026-01-02T01:02:03Z" }, "", nil, nil, time.Second)
	h.now = func() time.Time { return base }

	rec := httptest.NewRecorder()
	h.Countdown(rec, httptest.NewRequest(http.MethodGet, "/api/launch/countdown", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "no-store", rec.Header().Get("Cache-Control"))

	var body struct {
		Data struct {
			Days, Hours, Minutes, Seconds int64
			Launched                      bool
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, int64(1), body.Data.Days)
	assert.Equal(t, int64(1), body.Data.Hours)
	assert.Equal(t, int64(2), body.Data.Minutes)
	assert.Equal(t, int64(3), body.Data.Seconds)
	assert.False(t, body.Data.Launched)
}

func TestCountdownFallbackAndMissing(t *testing.T) {
	h := NewLaunchHandler(func() string { return "not a date" }, "2026-03-01", nil, nil, 0)
	h.now = func() time.Time { return time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC) }

	rec := httptest.NewRecorder()
	h.Countdown(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"launched":true`)

	h = NewLaunchHandler(func() string { return "" }, "", nil, nil, 0)
	rec = httptest.NewRecorder()
	h.Countdown(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCountdownStreamEndsWithLaunched(t *testing.T) {
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	clock := &steppingClock{at: base, step: time.Second}

	h := NewLaunchHandler(func() string { return base.Add(2 * time.Second).Format(time.RFC3339) }, "", nil, nil, time.Millisecond)
	h.now = clock.now

	rec := httptest.NewRecorder()
	done := make(chan struct{})
	go func() {
		defer close(done)
		h.Stream(rec, httptest.NewRequest(http.MethodGet, "/api/launch/countdown/stream", nil))
	}()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("stream did not finish after launch")
	}

	assert.Equal(t, "text/event-stream", rec.Header().Get("Content-Type"))

	body := rec.Body.String()
	assert.Equal(t, 2, strings.Count(body, "event: countdown\n"))
	assert.Equal(t, 1, strings.Count(body, "event: launched\n"))
	assert.True(t, strings.HasSuffix(strings.TrimSpace(body), "}"))
	assert.Less(t, strings.Index(body, "event: countdown"), strings.Index(body, "event: launched"))
}
