package content

import (
	"context"
	"encoding/json"
	"sync"
	"testing"
	"time"

	"ironline-site/internal/cache"
	"ironline-site/internal/model"
	"ironline-site/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recordingKV is a cache.Store that remembers the TTL of every write.
type recordingKV struct {
	mu   sync.Mutex
	data map[string][]byte
	ttls map[string]time.Duration
}

func newRecordingKV() *recordingKV {
	return &recordingKV{data: map[string][]byte{}, ttls: map[string]time.Duration{}}
}

func (k *recordingKV) Get(_ context.Context, key string) ([]byte, error) {
	k.mu.Lock()
	defer k.mu.Unlock()
	v, ok := k.data[key]
	if !ok {
		return nil, cache.ErrNotFound
	}
	return v, nil
}

func (k *recordingKV) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	k.mu.Lock()
	defer k.mu.Unlock()
	k.data[key] = append([]byte(nil), value...)
	k.ttls[key] = ttl
	return nil
}

func (k *recordingKV) Remove(_ context.Context, key string) error {
	k.mu.Lock()
	defer k.mu.Unlock()
	delete(k.data, key)
	return nil
}

func (k *recordingKV) Exists(_ context.Context, key string) (bool, error) {
	k.mu.Lock()
	defer k.mu.Unlock()
	_, ok := k.data[key]
	return ok, nil
}

func (k *recordingKV) GetOrSet(ctx context.Context, key string, ttl time.Duration, fn func() ([]byte, error)) ([]byte, error) {
	if v, err := k.Get(ctx, key); err == nil {
		return v, nil
	}
	v, err := fn()
	if err != nil {
		return nil, err
	}
	return v, k.Set(ctx, key, v, ttl)
}

func ids[T any](list []T, idOf func(T) string) []string {
	out := make([]string, len(list))
	for i, v := range list {
		out[i] = idOf(v)
	}
	return out
}

func ptr[T any](v T) *T { return &v }

func TestAddThenDeleteLeavesOthersInOrder(t *testing.T) {
	ctx := context.Background()
	s := NewStore(nil, Options{})
	before := s.Maps()

	s.AddMap(ctx, model.Map{ID: "tmp", Name: "Temp", Difficulty: model.DifficultyEasy, Size: model.MapSizeSmall, Environment: model.EnvironmentDesert})
	assert.Contains(t, ids(s.Maps(), mapID), "tmp")
	assert.Equal(t, "tmp", s.Maps()[len(s.Maps())-1].ID, "add appends")

	assert.True(t, s.DeleteMap(ctx, "tmp"))
	assert.NotContains(t, ids(s.Maps(), mapID), "tmp")
	assert.Equal(t, before, s.Maps())
}

func TestDeleteUnknownIDIsNoop(t *testing.T) {
	ctx := context.Background()
	s := NewStore(nil, Options{})
	before := s.Snapshot()

	assert.False(t, s.DeleteGameMode(ctx, "nope"))
	assert.False(t, s.UpdateOperator(ctx, "nope", model.OperatorPatch{Name: ptr("X")}))
	assert.Equal(t, before, s.Snapshot())
}

func TestUpdateMergesOnlyPatchedFields(t *testing.T) {
	ctx := context.Background()
	s := NewStore(nil, Options{})
	before := s.GameModes()

	ok := s.UpdateGameMode(ctx, "domination", model.GameModePatch{
		Name:    ptr("Domination X"),
		Players: ptr("8v8"),
	})
	require.True(t, ok)

	after := s.GameModes()
	require.Len(t, after, len(before))
	for i := range before {
		if before[i].ID != "domination" {
			assert.Equal(t, before[i], after[i])
			continue
		}
		want := before[i]
		want.Name = "Domination X"
		want.Players = "8v8"
		assert.Equal(t, want, after[i])
	}
}

func TestSnapshotIsNotAffectedByLaterMutations(t *testing.T) {
	ctx := context.Background()
	s := NewStore(nil, Options{})

	snap := s.Snapshot()
	firstHero := snap.Hero.Title

	s.UpdateHero(ctx, model.HeroPatch{Title: ptr("Changed")})
	s.AddHeroButton(ctx, model.HeroButton{ID: "x", Text: "X"})
	s.UpdateOperator(ctx, "vanguard", model.OperatorPatch{Role: ptr("Changed")})
	s.SetSection(ctx, "maps", model.SectionContent{Title: "Changed"})

	assert.Equal(t, firstHero, snap.Hero.Title)
	assert.NotContains(t, ids(snap.Hero.Buttons, heroButtonID), "x")
	assert.NotEqual(t, "Changed", snap.Operators[0].Role)
	assert.NotEqual(t, "Changed", snap.Sections["maps"].Title)
}

func TestOperatorStatsAreClamped(t *testing.T) {
	ctx := context.Background()
	s := NewStore(nil, Options{})

	s.AddOperator(ctx, model.Operator{
		ID: "op", Name: "Op", Difficulty: model.DifficultyEasy, Faction: model.FactionDefender,
		Stats: model.OperatorStats{Speed: 150, Armor: -5, Firepower: 50, Stealth: 100, Utility: 0},
	})
	got := s.Operators()[len(s.Operators())-1]
	assert.Equal(t, model.OperatorStats{Speed: 100, Armor: 0, Firepower: 50, Stealth: 100, Utility: 0}, got.Stats)

	s.UpdateOperator(ctx, "op", model.OperatorPatch{Stats: &model.OperatorStats{Speed: 101}})
	got = s.Operators()[len(s.Operators())-1]
	assert.Equal(t, 100, got.Stats.Speed)
}

func TestUpdateRewardMovesBetweenTiers(t *testing.T) {
	ctx := context.Background()
	s := NewStore(nil, Options{})

	s.AddReward(ctx, model.BattlePassReward{ID: "r1", Level: 5, Name: "R1", Type: model.RewardCharm, Rarity: model.RarityCommon})
	require.Contains(t, ids(s.FreeRewards(), rewardID), "r1")

	ok := s.UpdateReward(ctx, "r1", model.RewardPatch{Level: ptr(10), IsPremium: ptr(true)})
	require.True(t, ok)

	assert.NotContains(t, ids(s.FreeRewards(), rewardID), "r1")
	premium := s.PremiumRewards()
	last := premium[len(premium)-1]
	assert.Equal(t, "r1", last.ID)
	assert.Equal(t, 10, last.Level)
	assert.True(t, last.IsPremium)
	assert.Equal(t, "R1", last.Name)
}

func TestUpdateRewardToPremiumFromEitherTier(t *testing.T) {
	ctx := context.Background()

	for _, start := range []bool{false, true} {
		s := NewStore(nil, Options{})
		s.AddReward(ctx, model.BattlePassReward{ID: "r", Level: 1, Name: "R", IsPremium: start})

		s.UpdateReward(ctx, "r", model.RewardPatch{IsPremium: ptr(true)})

		assert.Contains(t, ids(s.PremiumRewards(), rewardID), "r")
		assert.NotContains(t, ids(s.FreeRewards(), rewardID), "r")
	}
}

func TestUpdateRewardInPlaceKeepsPosition(t *testing.T) {
	ctx := context.Background()
	s := NewStore(nil, Options{})
	before := ids(s.Rewards(), rewardID)

	s.UpdateReward(ctx, "reward-free-10", model.RewardPatch{Name: ptr("Bigger Boost")})
	assert.Equal(t, before, ids(s.Rewards(), rewardID))

	s.UpdateReward(ctx, "reward-free-10", model.RewardPatch{IsPremium: ptr(false)})
	assert.Equal(t, before, ids(s.Rewards(), rewardID), "same tier is not a move")
}

func TestResetAllIsIdempotent(t *testing.T) {
	ctx := context.Background()
	kv := newRecordingKV()
	s := NewStore(kv, Options{})

	s.DeleteGameMode(ctx, "domination")
	s.UpdateLaunch(ctx, model.LaunchPatch{Title: ptr("Soon")})

	s.ResetAll(ctx)
	once := s.Snapshot()
	onceKV := map[string]string{}
	for k, v := range kv.data {
		onceKV[k] = string(v)
	}

	s.ResetAll(ctx)
	assert.Equal(t, once, s.Snapshot())
	assert.Equal(t, Defaults(), s.Snapshot())
	for k, v := range kv.data {
		assert.Equal(t, onceKV[k], string(v))
	}
	assert.Len(t, kv.data, len(Names()))
}

func TestMutationsArePersistedPerCollection(t *testing.T) {
	ctx := context.Background()
	kv := newRecordingKV()
	s := NewStore(kv, Options{SessionTTL: time.Hour})

	s.AddBottomButton(ctx, model.BottomButton{ID: "b", Text: "B", Position: model.PositionCenter})
	s.UpdateLaunch(ctx, model.LaunchPatch{Title: ptr("Countdown")})

	raw, ok := kv.data[Key(CollectionBottomButtons)]
	require.True(t, ok)
	var buttons []model.BottomButton
	require.NoError(t, json.Unmarshal(raw, &buttons))
	assert.Equal(t, "b", buttons[len(buttons)-1].ID)

	assert.Equal(t, time.Hour, kv.ttls[Key(CollectionBottomButtons)])
	assert.Equal(t, time.Duration(0), kv.ttls[Key(CollectionLaunch)], "launch content is long-lived")

	_, ok = kv.data[Key(CollectionMaps)]
	assert.False(t, ok, "untouched collections are not written")
}

func TestLoadIsFailSoft(t *testing.T) {
	ctx := context.Background()
	kv := newRecordingKV()

	custom := []model.Map{{ID: "only", Name: "Only"}}
	raw, _ := json.Marshal(custom)
	kv.data[Key(CollectionMaps)] = raw
	kv.data[Key(CollectionOperators)] = []byte("{broken")
	kv.data[Key(CollectionHero)] = []byte(`{"title":"Stored"}`)

	s := NewStore(kv, Options{})
	s.Load(ctx)

	assert.Equal(t, custom, s.Maps())
	assert.Equal(t, defaultOperators(), s.Operators())
	assert.Equal(t, "Stored", s.Hero().Title)
	assert.Equal(t, defaultGameModes(), s.GameModes())
}

func TestOnChangeFiresPerMutation(t *testing.T) {
	ctx := context.Background()
	s := NewStore(nil, Options{})

	var got []string
	s.OnChange(func(c string) { got = append(got, c) })

	s.AddGameMode(ctx, model.GameMode{ID: "g"})
	s.DeleteGameMode(ctx, "missing")
	s.UpdateFooter(ctx, model.FooterPatch{Copyright: ptr("c")})

	assert.Equal(t, []string{CollectionGameModes, CollectionFooter}, got)
}

func TestSectionsAndNestedItems(t *testing.T) {
	ctx := context.Background()
	s := NewStore(nil, Options{})

	s.SetSection(ctx, "news", model.SectionContent{Title: "News"})
	sec, ok := s.Section("news")
	require.True(t, ok)
	assert.Equal(t, "News", sec.Title)
	assert.True(t, s.DeleteSection(ctx, "news"))
	assert.False(t, s.DeleteSection(ctx, "news"))

	s.AddMenuItem(ctx, model.MenuItem{ID: "m", Label: "M"})
	assert.True(t, s.UpdateMenuItem(ctx, "m", model.MenuItemPatch{Href: ptr("/m")}))
	items := s.Navigation().MenuItems
	assert.Equal(t, model.MenuItem{ID: "m", Label: "M", Href: "/m"}, items[len(items)-1])
	assert.True(t, s.DeleteMenuItem(ctx, "m"))

	s.AddPostLaunchButton(ctx, model.LaunchButton{ID: "p", Text: "P"})
	assert.True(t, s.UpdatePostLaunchButton(ctx, "p", model.LaunchButtonPatch{IsPrimary: ptr(true)}))
	assert.True(t, s.Launch().PostLaunchButtons[len(s.Launch().PostLaunchButtons)-1].IsPrimary)
	assert.True(t, s.DeletePostLaunchButton(ctx, "p"))
	assert.Equal(t, defaultLaunch().PostLaunchButtons, s.Launch().PostLaunchButtons)

	s.AddFooterLink(ctx, model.FooterLink{ID: "f", Text: "F"})
	assert.True(t, s.UpdateFooterLink(ctx, "f", model.FooterLinkPatch{Group: ptr("misc")}))
	assert.True(t, s.DeleteFooterLink(ctx, "f"))
	assert.Equal(t, defaultFooter(), s.Footer())
}

func TestDefaultGameModeIDsAreUnique(t *testing.T) {
	seen := map[string]bool{}
	for _, m := range defaultGameModes() {
		assert.False(t, seen[m.ID], "duplicate id %s", m.ID)
		seen[m.ID] = true
	}
}

// mapBridge is an in-memory Bridge.
type mapBridge struct {
	blobs map[string][]byte
}

func (b *mapBridge) WriteValue(_ context.Context, blobType string, v interface{}) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	b.blobs[blobType] = data
	return nil
}

func (b *mapBridge) Read(_ context.Context, blobType string) (*model.StoredBlob, error) {
	data, ok := b.blobs[blobType]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &model.StoredBlob{Type: blobType, Content: data}, nil
}

func TestPublishThenPullRoundTrips(t *testing.T) {
	ctx := context.Background()
	bridge := &mapBridge{blobs: map[string][]byte{}}

	src := NewStore(nil, Options{})
	src.DeleteMap(ctx, "harbor")
	src.UpdateBattlePass(ctx, model.BattlePassPatch{Price: ptr(4.99)})

	n, err := src.Publish(ctx, bridge)
	require.NoError(t, err)
	assert.Equal(t, len(Names()), n)

	dst := NewStore(newRecordingKV(), Options{})
	n, err = dst.Pull(ctx, bridge)
	require.NoError(t, err)
	assert.Equal(t, len(Names()), n)
	assert.Equal(t, src.Snapshot(), dst.Snapshot())
}

func TestPullKeepsCollectionsWithoutBlob(t *testing.T) {
	ctx := context.Background()
	bridge := &mapBridge{blobs: map[string][]byte{
		CollectionHero:      []byte(`{"title":"Remote","subtitle":"","buttons":[]}`),
		CollectionOperators: []byte(`not json`),
	}}

	s := NewStore(nil, Options{})
	n, err := s.Pull(ctx, bridge)
	assert.Error(t, err)
	assert.Equal(t, 1, n)
	assert.Equal(t, "Remote", s.Hero().Title)
	assert.Equal(t, defaultOperators(), s.Operators())
	assert.Equal(t, defaultMaps(), s.Maps())
}

// concurrentReadBridge reads from the store while serving a bridge read.
type concurrentReadBridge struct {
	mapBridge
	store   *Store
	blocked bool
}

func (b *concurrentReadBridge) Read(ctx context.Context, blobType string) (*model.StoredBlob, error) {
	done := make(chan struct{})
	go func() {
		b.store.Hero()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		b.blocked = true
	}
	return b.mapBridge.Read(ctx, blobType)
}

func TestPullDoesNotBlockReadersDuringBridgeReads(t *testing.T) {
	ctx := context.Background()
	s := NewStore(nil, Options{})
	bridge := &concurrentReadBridge{
		mapBridge: mapBridge{blobs: map[string][]byte{
			CollectionHero: []byte(`{"title":"Remote","subtitle":"","buttons":[]}`),
		}},
		store: s,
	}

	n, err := s.Pull(ctx, bridge)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.False(t, bridge.blocked, "store readers waited on a bridge round-trip")
	assert.Equal(t, "Remote", s.Hero().Title)
}

func TestSchema(t *testing.T) {
	sch, ok := Schema(CollectionOperators)
	require.True(t, ok)
	assert.Equal(t, "array", sch.Type)
	require.NotNil(t, sch.Items)
	assert.Contains(t, sch.Items.Required, "id")

	sch, ok = Schema(CollectionHero)
	require.True(t, ok)
	assert.Equal(t, "object", sch.Type)

	_, ok = Schema("leaderboard")
	assert.False(t, ok)
}
