package toast

import (
	"testing"
	"time"

	"ironline-site/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShowAndHide(t *testing.T) {
	q := NewQueue(time.Hour)
	defer q.Close()

	a := q.Show("saved", model.ToastSuccess)
	b := q.Show("saved", model.ToastSuccess)

	assert.NotEqual(t, a.ID, b.ID)
	require.Len(t, q.List(), 2, "duplicates are not coalesced")

	assert.True(t, q.Hide(a.ID))
	assert.False(t, q.Hide(a.ID))

	list := q.List()
	require.Len(t, list, 1)
	assert.Equal(t, b.ID, list[0].ID)
}

func TestShowDefaultsToInfo(t *testing.T) {
	q := NewQueue(time.Hour)
	defer q.Close()

	assert.Equal(t, model.ToastInfo, q.Show("hello", "").Type)
}

func TestAutoDismiss(t *testing.T) {
	q := NewQueue(20 * time.Millisecond)
	defer q.Close()

	q.Error("write failed")
	require.Equal(t, 1, q.Len())

	assert.Eventually(t, func() bool { return q.Len() == 0 }, time.Second, 5*time.Millisecond)
}

func TestCloseStopsTimers(t *testing.T) {
	q := NewQueue(10 * time.Millisecond)
	q.Show("pinned", model.ToastWarning)
	q.Close()

	time.Sleep(30 * time.Millisecond)
	assert.Equal(t, 1, q.Len())
}

func TestListIsACopy(t *testing.T) {
	q := NewQueue(time.Hour)
	defer q.Close()

	q.Show("one", model.ToastInfo)
	list := q.List()
	list[0].Message = "changed"

	assert.Equal(t, "one", q.List()[0].Message)
}
