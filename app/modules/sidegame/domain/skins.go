package sidegamedomain

// SkinsPlayerTotal is a player's skins count. HolesWon lists a hole once per
// skin it paid, so len(HolesWon) == Skins.
type SkinsPlayerTotal struct {
	Skins    int   `json:"skins"`
	HolesWon []int `json:"holesWon"`
}

// SkinsHole is the outcome of one hole. PotValue is the pot at stake on the
// hole; Carried is set when a tie pushed the pot to the next hole.
type SkinsHole struct {
	Hole     int       `json:"hole"`
	Winner   *PlayerID `json:"winner"`
	PotValue int       `json:"potValue"`
	Carried  bool      `json:"carried"`
}

type SkinsResult struct {
	Carryover bool                          `json:"carryover"`
	Players   map[PlayerID]SkinsPlayerTotal `json:"players"`
	Holes     []SkinsHole                   `json:"holes"`
	// PendingPot is the pot waiting for the next outright winner.
	PendingPot int `json:"pendingPot"`
}

// ComputeSkins awards each hole to an outright low score. Holes with fewer
// than two entered scores are void and leave the pot unchanged.
func ComputeSkins(idx ScoreIndex, players []PlayerID, carryover bool) SkinsResult {
	res := SkinsResult{
		Carryover: carryover,
		Players:   make(map[PlayerID]SkinsPlayerTotal, len(players)),
		Holes:     make([]SkinsHole, 0, HoleCount),
	}
	for _, p := range players {
		res.Players[p] = SkinsPlayerTotal{HolesWon: []int{}}
	}

	carry := 1
	for hole := 1; hole <= HoleCount; hole++ {
		entry := SkinsHole{Hole: hole, PotValue: carry}

		var (
			low     int
			leaders []PlayerID
			entered int
		)
		for _, p := range players {
			v, ok := idx.Strokes(p, hole)
			if !ok {
				continue
			}
			entered++
			switch {
			case len(leaders) == 0 || v < low:
				low = v
				leaders = []PlayerID{p}
			case v == low:
				leaders = append(leaders, p)
			}
		}

		switch {
		case entered < 2:
			// undecided, pot waits
		case len(leaders) == 1:
			winner := leaders[0]
			entry.Winner = &winner
			total := res.Players[winner]
			total.Skins += carry
			for i := 0; i < carry; i++ {
				total.HolesWon = append(total.HolesWon, hole)
			}
			res.Players[winner] = total
			carry = 1
		case carryover:
			entry.Carried = true
			carry++
		}
		res.Holes = append(res.Holes, entry)
	}
	res.PendingPot = carry
	return res
}
