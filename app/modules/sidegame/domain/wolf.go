package sidegamedomain

// WolfPlayers is the number of players a wolf rotation requires.
const WolfPlayers = 4

// WolfHole logs one hole. Choice is nil until the captain has decided;
// Resolved is false when the choice or the scores could not settle the hole.
type WolfHole struct {
	Hole         int              `json:"hole"`
	WolfPlayerID PlayerID         `json:"wolfPlayerId"`
	Choice       *WolfChoice      `json:"choice"`
	Resolved     bool             `json:"resolved"`
	PointsDelta  map[PlayerID]int `json:"pointsDelta"`
	TotalsAfter  map[PlayerID]int `json:"totalsAfter"`
}

// WolfResult is zeroed with Configured false unless the order names exactly
// four distinct players.
type WolfResult struct {
	Configured bool             `json:"configured"`
	Order      []PlayerID       `json:"order"`
	Holes      []WolfHole       `json:"holes"`
	Totals     map[PlayerID]int `json:"totals"`
}

func validWolfOrder(order []PlayerID) bool {
	if len(order) != WolfPlayers {
		return false
	}
	seen := make(map[PlayerID]struct{}, WolfPlayers)
	for _, p := range order {
		if p == "" {
			return false
		}
		if _, dup := seen[p]; dup {
			return false
		}
		seen[p] = struct{}{}
	}
	return true
}

// WolfCaptain returns the captain for a hole: order[(hole-1) mod 4].
func WolfCaptain(order []PlayerID, hole int) PlayerID {
	return order[(hole-1)%len(order)]
}

// ComputeWolf scores a rotating-captain game from the captains' choices.
// Lone: +3 or -3 to the captain against the best of the other three, all of
// whom must have scores. Partner: +1 to each member of the pair with the
// strictly better best ball. Ties award nothing.
func ComputeWolf(idx ScoreIndex, order []PlayerID, choices map[int]WolfChoice) WolfResult {
	echo := append([]PlayerID{}, order...)
	if !validWolfOrder(order) {
		return WolfResult{Order: echo, Holes: []WolfHole{}, Totals: map[PlayerID]int{}}
	}

	res := WolfResult{
		Configured: true,
		Order:      echo,
		Holes:      make([]WolfHole, 0, HoleCount),
		Totals:     make(map[PlayerID]int, WolfPlayers),
	}
	for _, p := range order {
		res.Totals[p] = 0
	}

	for hole := 1; hole <= HoleCount; hole++ {
		captain := WolfCaptain(order, hole)
		entry := WolfHole{
			Hole:         hole,
			WolfPlayerID: captain,
			PointsDelta:  make(map[PlayerID]int, WolfPlayers),
		}
		for _, p := range order {
			entry.PointsDelta[p] = 0
		}
		if c, ok := choices[hole]; ok {
			choice := c
			entry.Choice = &choice
			entry.Resolved = scoreWolfHole(idx, order, hole, captain, choice, entry.PointsDelta)
		}

		entry.TotalsAfter = make(map[PlayerID]int, WolfPlayers)
		for _, p := range order {
			res.Totals[p] += entry.PointsDelta[p]
			entry.TotalsAfter[p] = res.Totals[p]
		}
		res.Holes = append(res.Holes, entry)
	}
	return res
}

// scoreWolfHole fills delta and reports whether the hole resolved.
func scoreWolfHole(idx ScoreIndex, order []PlayerID, hole int, captain PlayerID, choice WolfChoice, delta map[PlayerID]int) bool {
	wolfScore, ok := idx.Strokes(captain, hole)
	if !ok {
		return false
	}

	switch choice.Kind {
	case WolfChoiceLone:
		others := make([]PlayerID, 0, WolfPlayers-1)
		for _, p := range order {
			if p == captain {
				continue
			}
			if _, ok := idx.Strokes(p, hole); !ok {
				return false
			}
			others = append(others, p)
		}
		best, _ := idx.best(others, hole)
		switch {
		case wolfScore < best:
			delta[captain] = 3
		case wolfScore > best:
			delta[captain] = -3
		}
		return true

	case WolfChoicePartner:
		if choice.Partner == captain {
			return false
		}
		pack := []PlayerID{captain}
		opponents := make([]PlayerID, 0, 2)
		partnerFound := false
		for _, p := range order {
			switch p {
			case captain:
			case choice.Partner:
				pack = append(pack, p)
				partnerFound = true
			default:
				opponents = append(opponents, p)
			}
		}
		if !partnerFound {
			return false
		}
		packBest, _ := idx.best(pack, hole)
		oppBest, ok := idx.best(opponents, hole)
		if !ok {
			return false
		}
		var winners []PlayerID
		switch {
		case packBest < oppBest:
			winners = pack
		case oppBest < packBest:
			winners = opponents
		}
		for _, p := range winners {
			delta[p] = 1
		}
		return true

	default:
		return false
	}
}
