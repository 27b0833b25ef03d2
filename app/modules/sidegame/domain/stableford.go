package sidegamedomain

// StablefordPoints maps strokes relative to par onto points:
// <= -3 is 5, -2 is 4, -1 is 3, 0 is 2, +1 is 1 and >= +2 is 0.
func StablefordPoints(strokes, par int) int {
	switch diff := strokes - par; {
	case diff <= -3:
		return 5
	case diff == -2:
		return 4
	case diff == -1:
		return 3
	case diff == 0:
		return 2
	case diff == 1:
		return 1
	default:
		return 0
	}
}

// StablefordPlayer is a player's 18-entry points series; nil entries were
// not played.
type StablefordPlayer struct {
	PlayerID    PlayerID `json:"playerId"`
	Points      []*int   `json:"points"`
	Total       int      `json:"total"`
	HolesPlayed int      `json:"holesPlayed"`
}

type StablefordResult struct {
	Players        []StablefordPlayer `json:"players"`
	WinnerPlayerID *PlayerID          `json:"winnerPlayerId"`
}

// ComputeStableford totals par-relative points. Holes without a par are
// treated as not played.
func ComputeStableford(idx ScoreIndex, round Round, players []PlayerID) StablefordResult {
	res := StablefordResult{Players: make([]StablefordPlayer, 0, len(players))}

	var (
		active  int
		best    int
		leaders []PlayerID
	)
	for _, p := range players {
		sp := StablefordPlayer{PlayerID: p, Points: make([]*int, HoleCount)}
		for hole := 1; hole <= HoleCount; hole++ {
			strokes, ok := idx.Strokes(p, hole)
			if !ok {
				continue
			}
			par, ok := round.Par(hole)
			if !ok {
				continue
			}
			pts := StablefordPoints(strokes, par)
			sp.Points[hole-1] = intPtr(pts)
			sp.Total += pts
			sp.HolesPlayed++
		}
		res.Players = append(res.Players, sp)

		if sp.HolesPlayed == 0 {
			continue
		}
		active++
		switch {
		case len(leaders) == 0 || sp.Total > best:
			best = sp.Total
			leaders = []PlayerID{p}
		case sp.Total == best:
			leaders = append(leaders, p)
		}
	}
	if active >= 2 && len(leaders) == 1 {
		winner := leaders[0]
		res.WinnerPlayerID = &winner
	}
	return res
}
