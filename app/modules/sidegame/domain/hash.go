package sidegamedomain

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"sort"
	"strings"
)

// ComputeInputHash returns a deterministic digest of everything a game's
// result depends on. Any score, hole, team or settings change produces a
// different hash, so it can key memoized results.
func ComputeInputHash(round Round, game Game) string {
	idx := NewScoreIndex(round.Scores)

	var b strings.Builder
	fmt.Fprintf(&b, "round=%s;game=%s;format=%s\n", round.ID, game.ID, game.Format)

	holes := make([]HoleInfo, len(round.Holes))
	copy(holes, round.Holes)
	sort.Slice(holes, func(i, j int) bool { return holes[i].Number < holes[j].Number })
	for _, h := range holes {
		fmt.Fprintf(&b, "h%d=%d\n", h.Number, h.Par)
	}

	players := round.PlayerIDs()
	fmt.Fprintf(&b, "players=%v\n", players)
	sort.Slice(players, func(i, j int) bool { return players[i] < players[j] })
	for _, p := range players {
		scores := idx.HoleScores(p)
		holeNums := make([]int, 0, len(scores))
		for h := range scores {
			holeNums = append(holeNums, h)
		}
		sort.Ints(holeNums)
		fmt.Fprintf(&b, "p=%s", p)
		for _, h := range holeNums {
			fmt.Fprintf(&b, ",%d:%d", h, scores[h])
		}
		b.WriteString("\n")
	}

	fmt.Fprintf(&b, "participants=%v\n", game.PlayerIDs)
	for _, t := range game.Teams {
		fmt.Fprintf(&b, "team=%s:%v\n", t.ID, t.PlayerIDs)
	}
	b.WriteString(BagFromGame(game).canonical())

	sum := sha256.Sum256([]byte(b.String()))
	return hex.EncodeToString(sum[:])
}
