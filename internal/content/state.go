package content

import (
	"encoding/json"

	"ironline-site/internal/model"
)

// State is every editable collection of the site.
type State struct {
	Sections      map[string]model.SectionContent `json:"sections"`
	Navigation    model.NavigationContent         `json:"navigation"`
	GameModes     []model.GameMode                `json:"gameModes"`
	Operators     []model.Operator                `json:"operators"`
	Maps          []model.Map                     `json:"maps"`
	BattlePass    model.BattlePass                `json:"battlePass"`
	Rewards       []model.BattlePassReward        `json:"rewards"`
	Hero          model.HeroContent               `json:"hero"`
	Footer        model.FooterContent             `json:"footer"`
	BottomButtons []model.BottomButton            `json:"bottomButtons"`
	Launch        model.LaunchContent             `json:"launch"`
}

// collection binds a name to the State field it selects.
type collection struct {
	name      string
	longLived bool
	value     func(st *State) interface{}
	decode    func(st *State, raw []byte) error
}

var collections = []collection{
	{
		name:   CollectionSections,
		value:  func(st *State) interface{} { return st.Sections },
		decode: func(st *State, raw []byte) error { return decodeInto(raw, &st.Sections) },
	},
	{
		name:   CollectionNavigation,
		value:  func(st *State) interface{} { return st.Navigation },
		decode: func(st *State, raw []byte) error { return decodeInto(raw, &st.Navigation) },
	},
	{
		name:   CollectionGameModes,
		value:  func(st *State) interface{} { return st.GameModes },
		decode: func(st *State, raw []byte) error { return decodeInto(raw, &st.GameModes) },
	},
	{
		name:  CollectionOperators,
		value: func(st *State) interface{} { return st.Operators },
		decode: func(st *State, raw []byte) error {
			var ops []model.Operator
			if err := json.Unmarshal(raw, &ops); err != nil {
				return err
			}
			for i := range ops {
				ops[i].Stats.Clamp()
			}
			st.Operators = ops
			return nil
		},
	},
	{
		name:   CollectionMaps,
		value:  func(st *State) interface{} { return st.Maps },
		decode: func(st *State, raw []byte) error { return decodeInto(raw, &st.Maps) },
	},
	{
		name:   CollectionBattlePass,
		value:  func(st *State) interface{} { return st.BattlePass },
		decode: func(st *State, raw []byte) error { return decodeInto(raw, &st.BattlePass) },
	},
	{
		name:   CollectionRewards,
		value:  func(st *State) interface{} { return st.Rewards },
		decode: func(st *State, raw []byte) error { return decodeInto(raw, &st.Rewards) },
	},
	{
		name:   CollectionHero,
		value:  func(st *State) interface{} { return st.Hero },
		decode: func(st *State, raw []byte) error { return decodeInto(raw, &st.Hero) },
	},
	{
		name:   CollectionFooter,
		value:  func(st *State) interface{} { return st.Footer },
		decode: func(st *State, raw []byte) error { return decodeInto(raw, &st.Footer) },
	},
	{
		name:   CollectionBottomButtons,
		value:  func(st *State) interface{} { return st.BottomButtons },
		decode: func(st *State, raw []byte) error { return decodeInto(raw, &st.BottomButtons) },
	},
	{
		name:      CollectionLaunch,
		longLived: true,
		value:     func(st *State) interface{} { return st.Launch },
		decode:    func(st *State, raw []byte) error { return decodeInto(raw, &st.Launch) },
	},
}

func collectionByName(name string) (collection, bool) {
	for _, c := range collections {
		if c.name == name {
			return c, true
		}
	}
	return collection{}, false
}

// decodeInto replaces *dst only when raw decodes cleanly.
func decodeInto[T any](raw []byte, dst *T) error {
	var v T
	if err := json.Unmarshal(raw, &v); err != nil {
		return err
	}
	*dst = v
	return nil
}

// appendItem returns a new slice with item at the end.
func appendItem[T any](list []T, item T) []T {
	out := make([]T, len(list), len(list)+1)
	copy(out, list)
	return append(out, item)
}

// updateByID applies fn to a copy of the first element whose id matches.
func updateByID[T any](list []T, id string, idOf func(T) string, fn func(*T)) ([]T, bool) {
	for i := range list {
		if idOf(list[i]) != id {
			continue
		}
		out := make([]T, len(list))
		copy(out, list)
		fn(&out[i])
		return out, true
	}
	return list, false
}

// deleteByID returns a new slice without the first element whose id matches.
func deleteByID[T any](list []T, id string, idOf func(T) string) ([]T, bool) {
	for i := range list {
		if idOf(list[i]) != id {
			continue
		}
		out := make([]T, 0, len(list)-1)
		out = append(out, list[:i]...)
		return append(out, list[i+1:]...), true
	}
	return list, false
}

func gameModeID(m model.GameMode) string { return m.ID }
func operatorID(o model.Operator) string { return o.ID }
func mapID(m model.Map) string { return m.ID }
func rewardID(r model.BattlePassReward) string { return r.ID }
func bottomButtonID(b model.BottomButton) string { return b.ID }
func heroButtonID(b model.HeroButton) string { return b.ID }
func footerLinkID(l model.FooterLink) string { return l.ID }
func menuItemID(m model.MenuItem) string { return m.ID }
func socialLinkID(l model.SocialLink) string { return l.ID }
func supportLinkID(l model.SupportLink) string { return l.ID }
func mediaItemID(m model.MediaItem) string { return m.ID }
func launchButtonID(b model.LaunchButton) string { return b.ID }
