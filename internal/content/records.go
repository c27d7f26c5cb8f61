package content

import (
	"context"

	"ironline-site/internal/model"
)

// GameModes returns the game modes in display order.
func (s *Store) GameModes() []model.GameMode {
	return s.Snapshot().GameModes
}

// AddGameMode appends a game mode. Duplicate ids are not rejected.
func (s *Store) AddGameMode(ctx context.Context, m model.GameMode) {
	s.mutate(ctx, CollectionGameModes, func(st *State) bool {
		st.GameModes = appendItem(st.GameModes, m)
		return true
	})
}

// UpdateGameMode merges p into the game mode with the given id.
// It reports whether a record matched.
func (s *Store) UpdateGameMode(ctx context.Context, id string, p model.GameModePatch) bool {
	return s.mutate(ctx, CollectionGameModes, func(st *State) bool {
		var ok bool
		st.GameModes, ok = updateByID(st.GameModes, id, gameModeID, func(m *model.GameMode) { p.Apply(m) })
		return ok
	})
}

// DeleteGameMode removes the first game mode with the given id.
func (s *Store) DeleteGameMode(ctx context.Context, id string) bool {
	return s.mutate(ctx, CollectionGameModes, func(st *State) bool {
		var ok bool
		st.GameModes, ok = deleteByID(st.GameModes, id, gameModeID)
		return ok
	})
}

// Operators returns the operators in display order.
func (s *Store) Operators() []model.Operator {
	return s.Snapshot().Operators
}

// AddOperator appends an operator with its stats clamped to [0,100].
func (s *Store) AddOperator(ctx context.Context, o model.Operator) {
	o.Stats.Clamp()
	s.mutate(ctx, CollectionOperators, func(st *State) bool {
		st.Operators = appendItem(st.Operators, o)
		return true
	})
}

// UpdateOperator merges p into the operator with the given id.
func (s *Store) UpdateOperator(ctx context.Context, id string, p model.OperatorPatch) bool {
	return s.mutate(ctx, CollectionOperators, func(st *State) bool {
		var ok bool
		st.Operators, ok = updateByID(st.Operators, id, operatorID, func(o *model.Operator) { p.Apply(o) })
		return ok
	})
}

// DeleteOperator removes the first operator with the given id.
func (s *Store) DeleteOperator(ctx context.Context, id string) bool {
	return s.mutate(ctx, CollectionOperators, func(st *State) bool {
		var ok bool
		st.Operators, ok = deleteByID(st.Operators, id, operatorID)
		return ok
	})
}

// Maps returns the maps in display order.
func (s *Store) Maps() []model.Map {
	return s.Snapshot().Maps
}

// AddMap appends a map.
func (s *Store) AddMap(ctx context.Context, m model.Map) {
	s.mutate(ctx, CollectionMaps, func(st *State) bool {
		st.Maps = appendItem(st.Maps, m)
		return true
	})
}

// UpdateMap merges p into the map with the given id.
func (s *Store) UpdateMap(ctx context.Context, id string, p model.MapPatch) bool {
	return s.mutate(ctx, CollectionMaps, func(st *State) bool {
		var ok bool
		st.Maps, ok = updateByID(st.Maps, id, mapID, func(m *model.Map) { p.Apply(m) })
		return ok
	})
}

// DeleteMap removes the first map with the given id.
func (s *Store) DeleteMap(ctx context.Context, id string) bool {
	return s.mutate(ctx, CollectionMaps, func(st *State) bool {
		var ok bool
		st.Maps, ok = deleteByID(st.Maps, id, mapID)
		return ok
	})
}

// BottomButtons returns the floating buttons.
func (s *Store) BottomButtons() []model.BottomButton {
	return s.Snapshot().BottomButtons
}

// AddBottomButton appends a floating button.
func (s *Store) AddBottomButton(ctx context.Context, b model.BottomButton) {
	s.mutate(ctx, CollectionBottomButtons, func(st *State) bool {
		st.BottomButtons = appendItem(st.BottomButtons, b)
		return true
	})
}

// UpdateBottomButton merges p into the floating button with the given id.
func (s *Store) UpdateBottomButton(ctx context.Context, id string, p model.BottomButtonPatch) bool {
	return s.mutate(ctx, CollectionBottomButtons, func(st *State) bool {
		var ok bool
		st.BottomButtons, ok = updateByID(st.BottomButtons, id, bottomButtonID, func(b *model.BottomButton) { p.Apply(b) })
		return ok
	})
}

// DeleteBottomButton removes the first floating button with the given id.
func (s *Store) DeleteBottomButton(ctx context.Context, id string) bool {
	return s.mutate(ctx, CollectionBottomButtons, func(st *State) bool {
		var ok bool
		st.BottomButtons, ok = deleteByID(st.BottomButtons, id, bottomButtonID)
		return ok
	})
}
