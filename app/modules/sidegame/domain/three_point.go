package sidegamedomain

// PointSplit is the point share of one resolved comparison.
type PointSplit struct {
	TeamA float64 `json:"teamA"`
	TeamB float64 `json:"teamB"`
}

// ThreePointHole is the per-hole breakdown. A nil comparison was skipped for
// lack of scores.
type ThreePointHole struct {
	Hole        int         `json:"hole"`
	Player1     *PointSplit `json:"player1"`
	Player2     *PointSplit `json:"player2"`
	BestBall    *PointSplit `json:"bestBall"`
	TeamAPoints float64     `json:"teamAPoints"`
	TeamBPoints float64     `json:"teamBPoints"`
	TeamATotal  float64     `json:"teamATotal"`
	TeamBTotal  float64     `json:"teamBTotal"`
}

// ThreePointResult is zeroed with Configured false when no complete pairing
// was supplied.
type ThreePointResult struct {
	Configured   bool               `json:"configured"`
	Pairing      *ThreePointPairing `json:"pairing,omitempty"`
	Holes        []ThreePointHole   `json:"holes"`
	TeamAPerHole []float64          `json:"teamAPerHole"`
	TeamBPerHole []float64          `json:"teamBPerHole"`
	TeamARunning []float64          `json:"teamARunning"`
	TeamBRunning []float64          `json:"teamBRunning"`
	TeamATotal   float64            `json:"teamATotal"`
	TeamBTotal   float64            `json:"teamBTotal"`
}

// compareStrokes splits one point between two scores, lower wins.
func compareStrokes(a, b int) PointSplit {
	switch {
	case a < b:
		return PointSplit{TeamA: 1}
	case b < a:
		return PointSplit{TeamB: 1}
	default:
		return PointSplit{TeamA: 0.5, TeamB: 0.5}
	}
}

func comparePlayers(idx ScoreIndex, a, b PlayerID, hole int) *PointSplit {
	av, aok := idx.Strokes(a, hole)
	bv, bok := idx.Strokes(b, hole)
	if !aok || !bok {
		return nil
	}
	split := compareStrokes(av, bv)
	return &split
}

// ComputeThreePoint scores a fixed 2v2 pairing: player 1 against player 1,
// player 2 against player 2 and best ball against best ball, one point each.
func ComputeThreePoint(idx ScoreIndex, pairing *ThreePointPairing) ThreePointResult {
	if pairing == nil || !pairing.complete() {
		return ThreePointResult{
			Holes:        []ThreePointHole{},
			TeamAPerHole: []float64{},
			TeamBPerHole: []float64{},
			TeamARunning: []float64{},
			TeamBRunning: []float64{},
		}
	}

	p := *pairing
	teamA := []PlayerID{p.TeamAPlayer1, p.TeamAPlayer2}
	teamB := []PlayerID{p.TeamBPlayer1, p.TeamBPlayer2}
	res := ThreePointResult{
		Configured:   true,
		Pairing:      &p,
		Holes:        make([]ThreePointHole, 0, HoleCount),
		TeamAPerHole: make([]float64, 0, HoleCount),
		TeamBPerHole: make([]float64, 0, HoleCount),
		TeamARunning: make([]float64, 0, HoleCount),
		TeamBRunning: make([]float64, 0, HoleCount),
	}

	var runA, runB float64
	for hole := 1; hole <= HoleCount; hole++ {
		h := ThreePointHole{
			Hole:    hole,
			Player1: comparePlayers(idx, p.TeamAPlayer1, p.TeamBPlayer1, hole),
			Player2: comparePlayers(idx, p.TeamAPlayer2, p.TeamBPlayer2, hole),
		}
		bestA, aok := idx.best(teamA, hole)
		bestB, bok := idx.best(teamB, hole)
		if aok && bok {
			split := compareStrokes(bestA, bestB)
			h.BestBall = &split
		}
		for _, split := range []*PointSplit{h.Player1, h.Player2, h.BestBall} {
			if split != nil {
				h.TeamAPoints += split.TeamA
				h.TeamBPoints += split.TeamB
			}
		}
		runA += h.TeamAPoints
		runB += h.TeamBPoints
		h.TeamATotal = runA
		h.TeamBTotal = runB

		res.Holes = append(res.Holes, h)
		res.TeamAPerHole = append(res.TeamAPerHole, h.TeamAPoints)
		res.TeamBPerHole = append(res.TeamBPerHole, h.TeamBPoints)
		res.TeamARunning = append(res.TeamARunning, runA)
		res.TeamBRunning = append(res.TeamBRunning, runB)
	}
	res.TeamATotal = runA
	res.TeamBTotal = runB
	return res
}
