package content

import (
	"context"

	"ironline-site/internal/model"
)

// BattlePass returns the season pass.
func (s *Store) BattlePass() model.BattlePass {
	return s.Snapshot().BattlePass
}

// UpdateBattlePass merges p into the season pass.
func (s *Store) UpdateBattlePass(ctx context.Context, p model.BattlePassPatch) {
	s.mutate(ctx, CollectionBattlePass, func(st *State) bool {
		p.Apply(&st.BattlePass)
		return true
	})
}

// Rewards returns every reward, both tracks, in storage order.
func (s *Store) Rewards() []model.BattlePassReward {
	return s.Snapshot().Rewards
}

// RewardsByTier returns the rewards on one track in storage order.
func (s *Store) RewardsByTier(tier model.Tier) []model.BattlePassReward {
	return filterTier(s.Snapshot().Rewards, tier)
}

// PremiumRewards returns the premium track.
func (s *Store) PremiumRewards() []model.BattlePassReward {
	return s.RewardsByTier(model.TierPremium)
}

// FreeRewards returns the free track.
func (s *Store) FreeRewards() []model.BattlePassReward {
	return s.RewardsByTier(model.TierFree)
}

func filterTier(all []model.BattlePassReward, tier model.Tier) []model.BattlePassReward {
	out := make([]model.BattlePassReward, 0, len(all))
	for _, r := range all {
		if r.Tier() == tier {
			out = append(out, r)
		}
	}
	return out
}

// AddReward appends a reward to the track named by its IsPremium flag.
func (s *Store) AddReward(ctx context.Context, r model.BattlePassReward) {
	s.mutate(ctx, CollectionRewards, func(st *State) bool {
		st.Rewards = appendItem(st.Rewards, r)
		return true
	})
}

// UpdateReward merges p into the reward with the given id. When p changes
// the track, the reward is moved to the end of its new track.
func (s *Store) UpdateReward(ctx context.Context, id string, p model.RewardPatch) bool {
	return s.mutate(ctx, CollectionRewards, func(st *State) bool {
		for i, r := range st.Rewards {
			if r.ID != id {
				continue
			}
			moved := p.IsPremium != nil && *p.IsPremium != r.IsPremium
			p.Apply(&r)

			if !moved {
				out := make([]model.BattlePassReward, len(st.Rewards))
				copy(out, st.Rewards)
				out[i] = r
				st.Rewards = out
				return true
			}

			out := make([]model.BattlePassReward, 0, len(st.Rewards))
			out = append(out, st.Rewards[:i]...)
			out = append(out, st.Rewards[i+1:]...)
			st.Rewards = append(out, r)
			return true
		}
		return false
	})
}

// DeleteReward removes the first reward with the given id.
func (s *Store) DeleteReward(ctx context.Context, id string) bool {
	return s.mutate(ctx, CollectionRewards, func(st *State) bool {
		var ok bool
		st.Rewards, ok = deleteByID(st.Rewards, id, rewardID)
		return ok
	})
}
