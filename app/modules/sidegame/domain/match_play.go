package sidegamedomain

import "fmt"

// MatchHoleResult tags the outcome of a match play hole.
type MatchHoleResult string

const (
	MatchHolePlayer1 MatchHoleResult = "PLAYER1"
	MatchHolePlayer2 MatchHoleResult = "PLAYER2"
	MatchHoleHalved  MatchHoleResult = "HALVED"
	MatchHoleNoScore MatchHoleResult = "NO_SCORE"
)

type MatchPlayHole struct {
	Hole           int             `json:"hole"`
	Result         MatchHoleResult `json:"result"`
	MatchDiffAfter int             `json:"matchDiffAfter"`
	StatusAfter    string          `json:"statusAfter"`
	Ended          bool            `json:"ended"`
}

// MatchPlayResult is the 18-entry hole log of a head-to-head match. Diffs are
// from player 1's perspective.
type MatchPlayResult struct {
	Configured     bool            `json:"configured"`
	Player1        PlayerID        `json:"player1,omitempty"`
	Player2        PlayerID        `json:"player2,omitempty"`
	Holes          []MatchPlayHole `json:"holes"`
	CurrentStatus  string          `json:"currentStatus"`
	EndedAtHole    *int            `json:"endedAtHole"`
	WinnerPlayerID *PlayerID       `json:"winnerPlayerId"`
}

// MatchStatus formats a differential: "AS", "<n> UP" or "<n> DN".
func MatchStatus(diff int) string {
	switch {
	case diff > 0:
		return fmt.Sprintf("%d UP", diff)
	case diff < 0:
		return fmt.Sprintf("%d DN", -diff)
	default:
		return "AS"
	}
}

func unconfiguredMatchPlay() MatchPlayResult {
	return MatchPlayResult{Holes: []MatchPlayHole{}}
}

// ComputeMatchPlay runs the hole-by-hole differential. Holes missing either
// score do not move the match. The match ends once the lead exceeds the holes
// remaining; later holes are still logged.
func ComputeMatchPlay(idx ScoreIndex, p1, p2 PlayerID) MatchPlayResult {
	res := MatchPlayResult{
		Configured: true,
		Player1:    p1,
		Player2:    p2,
		Holes:      make([]MatchPlayHole, 0, HoleCount),
	}

	diff := 0
	var finalStatus string
	for hole := 1; hole <= HoleCount; hole++ {
		entry := MatchPlayHole{Hole: hole, Result: MatchHoleNoScore}
		a, aok := idx.Strokes(p1, hole)
		b, bok := idx.Strokes(p2, hole)
		if aok && bok {
			switch {
			case a < b:
				entry.Result = MatchHolePlayer1
				diff++
			case b < a:
				entry.Result = MatchHolePlayer2
				diff--
			default:
				entry.Result = MatchHoleHalved
			}
		}
		entry.MatchDiffAfter = diff
		entry.StatusAfter = MatchStatus(diff)

		if res.EndedAtHole == nil && abs(diff) > HoleCount-hole {
			res.EndedAtHole = intPtr(hole)
			winner := p1
			if diff < 0 {
				winner = p2
			}
			res.WinnerPlayerID = &winner
			finalStatus = entry.StatusAfter
		}
		entry.Ended = res.EndedAtHole != nil
		res.Holes = append(res.Holes, entry)
	}

	if res.EndedAtHole != nil {
		res.CurrentStatus = finalStatus + " (Final)"
	} else {
		res.CurrentStatus = MatchStatus(diff)
	}
	return res
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
