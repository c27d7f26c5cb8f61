package model

// Difficulty rates how demanding a mode, operator or map is.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
	DifficultyExpert Difficulty = "expert"
)

// ModeCategory groups game modes on the landing page.
type ModeCategory string

const (
	CategoryCasual      ModeCategory = "casual"
	CategoryCompetitive ModeCategory = "competitive"
	CategoryTactical    ModeCategory = "tactical"
	CategorySpecial     ModeCategory = "special"
)

// Faction is the side an operator fights for.
type Faction string

const (
	FactionAttacker Faction = "attacker"
	FactionDefender Faction = "defender"
)

// MapSize is the playable footprint of a map.
type MapSize string

const (
	MapSizeSmall  MapSize = "small"
	MapSizeMedium MapSize = "medium"
	MapSizeLarge  MapSize = "large"
)

// Environment is the biome of a map.
type Environment string

const (
	EnvironmentUrban      Environment = "urban"
	EnvironmentDesert     Environment = "desert"
	EnvironmentArctic     Environment = "arctic"
	EnvironmentJungle     Environment = "jungle"
	EnvironmentIndustrial Environment = "industrial"
	EnvironmentCoastal    Environment = "coastal"
)

// SectionContent is the heading block of a landing page section.
type SectionContent struct {
	Title       string `json:"title" validate:"required" jsonschema:"required,title=Title"`
	Description string `json:"description" jsonschema:"title=Description"`
}

// GameMode is a playable mode shown in the modes carousel.
type GameMode struct {
	ID          string            `json:"id" validate:"required" jsonschema:"required"`
	Name        string            `json:"name" validate:"required" jsonschema:"required"`
	Description string            `json:"description"`
	Image       string            `json:"image"`
	Players     string            `json:"players"`
	Difficulty  Difficulty        `json:"difficulty" validate:"required,oneof=easy medium hard expert" jsonschema:"required,enum=easy,enum=medium,enum=hard,enum=expert"`
	Category    ModeCategory      `json:"category" validate:"required,oneof=casual competitive tactical special" jsonschema:"required,enum=casual,enum=competitive,enum=tactical,enum=special"`
	IsNew       bool              `json:"isNew,omitempty"`
	IsPopular   bool              `json:"isPopular,omitempty"`
	Metadata    map[string]string `json:"metadata,omitempty"`
}

// SpecialAbility is an operator's signature gadget.
type SpecialAbility struct {
	Name        string `json:"name" validate:"required" jsonschema:"required"`
	Description string `json:"description"`
	Cooldown    int    `json:"cooldown" validate:"min=0" jsonschema:"minimum=0,description=Cooldown in seconds"`
}

// Loadout lists the operator's default equipment.
type Loadout struct {
	Primary   string `json:"primary"`
	Secondary string `json:"secondary"`
	Tactical  string `json:"tactical"`
	Lethal    string `json:"lethal"`
}

// OperatorStats are five 0-100 rating axes.
type OperatorStats struct {
	Speed     int `json:"speed" validate:"min=0,max=100" jsonschema:"minimum=0,maximum=100"`
	Armor     int `json:"armor" validate:"min=0,max=100" jsonschema:"minimum=0,maximum=100"`
	Firepower int `json:"firepower" validate:"min=0,max=100" jsonschema:"minimum=0,maximum=100"`
	Stealth   int `json:"stealth" validate:"min=0,max=100" jsonschema:"minimum=0,maximum=100"`
	Utility   int `json:"utility" validate:"min=0,max=100" jsonschema:"minimum=0,maximum=100"`
}

// Clamp forces every axis into [0,100].
func (s *OperatorStats) Clamp() {
	for _, v := range []*int{&s.Speed, &s.Armor, &s.Firepower, &s.Stealth, &s.Utility} {
		*v = clampStat(*v)
	}
}

func clampStat(v int) int {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}

// Operator is a playable character.
type Operator struct {
	ID             string         `json:"id" validate:"required" jsonschema:"required"`
	Name           string         `json:"name" validate:"required" jsonschema:"required"`
	Role           string         `json:"role"`
	Description    string         `json:"description"`
	SpecialAbility SpecialAbility `json:"specialAbility"`
	Loadout        Loadout        `json:"loadout"`
	Image          string         `json:"image"`
	Difficulty     Difficulty     `json:"difficulty" validate:"required,oneof=easy medium hard expert" jsonschema:"required,enum=easy,enum=medium,enum=hard,enum=expert"`
	Stats          OperatorStats  `json:"stats"`
	Faction        Faction        `json:"faction" validate:"required,oneof=attacker defender" jsonschema:"required,enum=attacker,enum=defender"`
	Background     string         `json:"background"`
	IsNew          bool           `json:"isNew,omitempty"`
	IsFeatured     bool           `json:"isFeatured,omitempty"`
}

// Map is a playable map. Game modes are referenced by name, not id.
type Map struct {
	ID          string      `json:"id" validate:"required" jsonschema:"required"`
	Name        string      `json:"name" validate:"required" jsonschema:"required"`
	Description string      `json:"description"`
	Image       string      `json:"image"`
	Features    []string    `json:"features"`
	Difficulty  Difficulty  `json:"difficulty" validate:"required,oneof=easy medium hard expert" jsonschema:"required,enum=easy,enum=medium,enum=hard,enum=expert"`
	Size        MapSize     `json:"size" validate:"required,oneof=small medium large" jsonschema:"required,enum=small,enum=medium,enum=large"`
	Environment Environment `json:"environment" validate:"required,oneof=urban desert arctic jungle industrial coastal" jsonschema:"required,enum=urban,enum=desert,enum=arctic,enum=jungle,enum=industrial,enum=coastal"`
	GameModes   []string    `json:"gameModes"`
	IsNew       bool        `json:"isNew,omitempty"`
}

// BottomButtonPosition anchors a floating button.
type BottomButtonPosition string

const (
	PositionLeft   BottomButtonPosition = "left"
	PositionCenter BottomButtonPosition = "center"
	PositionRight  BottomButtonPosition = "right"
)

// BottomButton is a floating call-to-action pinned to the bottom of the page.
type BottomButton struct {
	ID       string               `json:"id" validate:"required" jsonschema:"required"`
	Text     string               `json:"text" validate:"required" jsonschema:"required"`
	URL      string               `json:"url"`
	Icon     string               `json:"icon"`
	Position BottomButtonPosition `json:"position" validate:"required,oneof=left center right" jsonschema:"required,enum=left,enum=center,enum=right"`
}
