package countdown

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputeAtTargetIsLaunched(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	r := Compute(now, now)

	assert.True(t, r.Launched)
	assert.Zero(t, r.Days)
	assert.Zero(t, r.Hours)
	assert.Zero(t, r.Minutes)
	assert.Zero(t, r.Seconds)
}

func TestComputePastTargetIsLaunched(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	r := Compute(now.Add(-time.Hour), now)
	assert.True(t, r.Launched)
	assert.Zero(t, r.Hours)
}

func TestComputeNinetyDays(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	r := Compute(now.Add(90*24*time.Hour), now)

	assert.False(t, r.Launched)
	assert.Equal(t, int64(90), r.Days)
	assert.Zero(t, r.Hours)
	assert.Zero(t, r.Minutes)
	assert.Zero(t, r.Seconds)
}

func TestComputeDecomposes(t *testing.T) {
	now := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	target := now.Add(2*24*time.Hour + 3*time.Hour + 4*time.Minute + 5*time.Second + 999*time.Millisecond)
	r := Compute(target, now)

	assert.Equal(t, Remaining{Days: 2, Hours: 3, Minutes: 4, Seconds: 5, Target: target, At: now}, r)
}

func TestParseReleaseDate(t *testing.T) {
	utc, err := ParseReleaseDate("2026-12-01T18:00:00Z", nil)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 12, 1, 18, 0, 0, 0, time.UTC), utc.UTC())

	local, err := ParseReleaseDate("2026-12-01T18:00:00", time.UTC)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 12, 1, 18, 0, 0, 0, time.UTC), local)

	day, err := ParseReleaseDate("2026-12-01", time.UTC)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 12, 1, 0, 0, 0, 0, time.UTC), day)

	_, err = ParseReleaseDate("next tuesday", nil)
	assert.Error(t, err)
}

func TestTickerStopsAfterLaunch(t *testing.T) {
	start := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	calls := 0
	clock := func() time.Time {
		calls++
		return start.Add(time.Duration(calls) * time.Second)
	}

	tk := NewTicker(context.Background(), start.Add(3*time.Second), time.Millisecond, clock)
	defer tk.Stop()

	var got []Remaining
	for r := range tk.C {
		got = append(got, r)
	}

	require.Len(t, got, 3)
	assert.Equal(t, int64(2), got[0].Seconds)
	assert.Equal(t, int64(1), got[1].Seconds)
	assert.True(t, got[2].Launched)
}

func TestTickerStopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	tk := NewTicker(ctx, time.Now().Add(time.Hour), time.Millisecond, nil)

	<-tk.C
	cancel()

	assert.Eventually(t, func() bool {
		select {
		case _, ok := <-tk.C:
			return !ok
		default:
			return false
		}
	}, time.Second, 5*time.Millisecond)
}
