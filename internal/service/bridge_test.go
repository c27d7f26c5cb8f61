package service

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"ironline-site/internal/cache"
	"ironline-site/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestBridge(t *testing.T) (*BridgeService, string) {
	t.Helper()
	dir := filepath.Join(t.TempDir(), "data")
	repo := repository.NewFileBlobRepository(dir)
	t.Cleanup(func() { repo.Close() })
	return NewBridgeService(repo, cache.NewMemorySequenceGuard()), dir
}

func TestBridgeRoundTrip(t *testing.T) {
	b, dir := newTestBridge(t)
	ctx := context.Background()

	values := []interface{}{
		map[string]interface{}{"title": "Operators", "items": []interface{}{"a", "b"}},
		[]interface{}{1.0, 2.5, "three", true, nil},
		"plain string",
		42.0,
		false,
	}
	for _, v := range values {
		raw, err := json.Marshal(v)
		require.NoError(t, err)
		require.NoError(t, b.Write(ctx, "value", raw, nil))

		blob, err := b.Read(ctx, "value")
		require.NoError(t, err)

		var got interface{}
		require.NoError(t, json.Unmarshal(blob.Content, &got))
		assert.Equal(t, v, got)
	}

	_, err := os.Stat(filepath.Join(dir, "value.json"))
	assert.NoError(t, err, "one file per type")
}

func TestBridgeStoresIndentedJSON(t *testing.T) {
	b, dir := newTestBridge(t)

	require.NoError(t, b.Write(context.Background(), "hero", json.RawMessage(`{"title":"Ironline"}`), nil))

	data, err := os.ReadFile(filepath.Join(dir, "hero.json"))
	require.NoError(t, err)
	assert.Equal(t, "{\n  \"title\": \"Ironline\"\n}", string(data))
}

func TestBridgeValidation(t *testing.T) {
	b, _ := newTestBridge(t)
	ctx := context.Background()

	assert.ErrorIs(t, b.Write(ctx, "", json.RawMessage(`{}`), nil), ErrInvalidType)
	assert.ErrorIs(t, b.Write(ctx, "../etc/passwd", json.RawMessage(`{}`), nil), ErrInvalidType)
	assert.ErrorIs(t, b.Write(ctx, "x", nil, nil), ErrMissingContent)
	assert.ErrorIs(t, b.Write(ctx, "x", json.RawMessage(`null`), nil), ErrMissingContent)
	assert.ErrorIs(t, b.Write(ctx, "x", json.RawMessage(`{oops`), nil), ErrInvalidContent)

	_, err := b.Read(ctx, "nonexistent")
	assert.ErrorIs(t, err, repository.ErrNotFound)

	_, err = b.Read(ctx, "a/b")
	assert.ErrorIs(t, err, ErrInvalidType)
}

func TestBridgeCorruptBlob(t *testing.T) {
	b, dir := newTestBridge(t)
	require.NoError(t, os.MkdirAll(dir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "broken.json"), []byte("{not json"), 0o644))

	_, err := b.Read(context.Background(), "broken")
	assert.ErrorIs(t, err, ErrCorruptBlob)
}

func TestBridgeRejectsStaleSequence(t *testing.T) {
	b, _ := newTestBridge(t)
	ctx := context.Background()
	seq := func(n int64) *int64 { return &n }

	require.NoError(t, b.Write(ctx, "operators", json.RawMessage(`"second"`), seq(2)))
	assert.ErrorIs(t, b.Write(ctx, "operators", json.RawMessage(`"first"`), seq(1)), ErrStaleWrite)

	var got string
	require.NoError(t, b.ReadInto(ctx, "operators", &got))
	assert.Equal(t, "second", got, "a slow older write must not clobber a newer one")

	require.NoError(t, b.Write(ctx, "operators", json.RawMessage(`"unsequenced"`), nil))
	require.NoError(t, b.Write(ctx, "maps", json.RawMessage(`"other type"`), seq(1)))
}

func TestBridgeWriteValueAndList(t *testing.T) {
	b, _ := newTestBridge(t)
	ctx := context.Background()

	require.NoError(t, b.WriteValue(ctx, "footer", map[string]string{"copyright": "2026"}))
	require.NoError(t, b.WriteValue(ctx, "battlePass", map[string]int{"season": 1}))

	types, err := b.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"battlePass", "footer"}, types)

	stats, err := b.Stats(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 2, stats["total_blobs"])
}

func TestNewBridgeServiceNilRepo(t *testing.T) {
	assert.Nil(t, NewBridgeService(nil, nil))
}
