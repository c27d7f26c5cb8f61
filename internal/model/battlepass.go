package model

// RewardType is what a battle pass tier grants.
type RewardType string

const (
	RewardWeaponSkin   RewardType = "weapon_skin"
	RewardOperatorSkin RewardType = "operator_skin"
	RewardCharm        RewardType = "charm"
	RewardEmblem       RewardType = "emblem"
	RewardCurrency     RewardType = "currency"
	RewardXPBoost      RewardType = "xp_boost"
	RewardBanner       RewardType = "banner"
)

// Rarity is the cosmetic tier of a reward.
type Rarity string

const (
	RarityCommon    Rarity = "common"
	RarityRare      Rarity = "rare"
	RarityEpic      Rarity = "epic"
	RarityLegendary Rarity = "legendary"
)

// BattlePass is the current season pass.
type BattlePass struct {
	ID           string  `json:"id"`
	Name         string  `json:"name"`
	Description  string  `json:"description"`
	Price        float64 `json:"price"`
	Season       int     `json:"season"`
	DurationDays int     `json:"durationDays"`
	StartDate    string  `json:"startDate"`
	EndDate      string  `json:"endDate"`
	IsActive     bool    `json:"isActive"`
}

// BattlePassReward is a single unlock on the free or premium track.
type BattlePassReward struct {
	ID          string     `json:"id" validate:"required" jsonschema:"required"`
	Level       int        `json:"level" validate:"min=1" jsonschema:"minimum=1"`
	Name        string     `json:"name" validate:"required" jsonschema:"required"`
	Description string     `json:"description"`
	Type        RewardType `json:"type" validate:"required,oneof=weapon_skin operator_skin charm emblem currency xp_boost banner" jsonschema:"required,enum=weapon_skin,enum=operator_skin,enum=charm,enum=emblem,enum=currency,enum=xp_boost,enum=banner"`
	Rarity      Rarity     `json:"rarity" validate:"required,oneof=common rare epic legendary" jsonschema:"required,enum=common,enum=rare,enum=epic,enum=legendary"`
	Image       string     `json:"image"`
	IsPremium   bool       `json:"isPremium"`
}

// Tier names a reward track.
type Tier string

const (
	TierFree    Tier = "free"
	TierPremium Tier = "premium"
)

// Tier returns the track the reward belongs to.
func (r BattlePassReward) Tier() Tier {
	if r.IsPremium {
		return TierPremium
	}
	return TierFree
}
