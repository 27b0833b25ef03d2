package sidegamedomain

import (
	"fmt"

	"github.com/brianvoe/gofakeit/v7"
)

func par4Holes() []HoleInfo {
	holes := make([]HoleInfo, 0, HoleCount)
	for h := 1; h <= HoleCount; h++ {
		holes = append(holes, HoleInfo{Number: h, Par: 4})
	}
	return holes
}

func newRound(players ...PlayerID) Round {
	r := Round{ID: "round-1", CourseName: "Pebble Creek", Holes: par4Holes(), Status: RoundStatusActive}
	for _, p := range players {
		r.Players = append(r.Players, Player{ID: p, Name: string(p)})
	}
	return r
}

func sc(p PlayerID, hole, strokes int) Score {
	return Score{PlayerID: p, HoleNumber: hole, Strokes: intPtr(strokes)}
}

// holeScores builds scores for consecutive holes starting at 1.
func holeScores(p PlayerID, strokes ...int) []Score {
	out := make([]Score, 0, len(strokes))
	for i, s := range strokes {
		out = append(out, sc(p, i+1, s))
	}
	return out
}

// randomFullRound fills every hole for every player with strokes in 2..8.
func randomFullRound(seed int64, n int) (Round, []PlayerID) {
	faker := gofakeit.New(uint64(seed))
	players := make([]PlayerID, 0, n)
	for i := 0; i < n; i++ {
		players = append(players, PlayerID(fmt.Sprintf("%s-%d", faker.FirstName(), i)))
	}
	r := newRound(players...)
	for _, p := range players {
		for h := 1; h <= HoleCount; h++ {
			r.Scores = append(r.Scores, sc(p, h, faker.Number(2, 8)))
		}
	}
	return r, players
}
