package sidegamedomain

// ScoreIndex is an immutable per-player hole to strokes lookup built once per
// computation. Only entered scores on holes 1..18 are kept; a later entry for
// the same player and hole replaces an earlier one.
type ScoreIndex struct {
	byPlayer map[PlayerID]map[int]int
}

// NewScoreIndex builds an index from sparse score records.
func NewScoreIndex(scores []Score) ScoreIndex {
	idx := ScoreIndex{byPlayer: make(map[PlayerID]map[int]int)}
	for _, s := range scores {
		if s.HoleNumber < 1 || s.HoleNumber > HoleCount {
			continue
		}
		holes, ok := idx.byPlayer[s.PlayerID]
		if s.Strokes == nil {
			// A later null clears an earlier value.
			if ok {
				delete(holes, s.HoleNumber)
			}
			continue
		}
		if !ok {
			holes = make(map[int]int)
			idx.byPlayer[s.PlayerID] = holes
		}
		holes[s.HoleNumber] = *s.Strokes
	}
	return idx
}

// Strokes returns the entered strokes for a player on a hole.
func (x ScoreIndex) Strokes(player PlayerID, hole int) (int, bool) {
	v, ok := x.byPlayer[player][hole]
	return v, ok
}

// HoleScores returns a copy of the player's hole to strokes map.
func (x ScoreIndex) HoleScores(player PlayerID) map[int]int {
	holes := x.byPlayer[player]
	out := make(map[int]int, len(holes))
	for h, v := range holes {
		out[h] = v
	}
	return out
}

// best returns the lowest entered score among players on a hole.
func (x ScoreIndex) best(players []PlayerID, hole int) (int, bool) {
	best, found := 0, false
	for _, p := range players {
		v, ok := x.Strokes(p, hole)
		if !ok {
			continue
		}
		if !found || v < best {
			best, found = v, true
		}
	}
	return best, found
}

func intPtr(v int) *int {
	return &v
}
