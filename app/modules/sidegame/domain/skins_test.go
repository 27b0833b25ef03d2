package sidegamedomain

import (
	"slices"
	"testing"
)

func TestSkinsCarryoverClaimedByOutrightWinner(t *testing.T) {
	r := newRound("A", "B")
	r.Scores = append(holeScores("A", 4, 4, 3), holeScores("B", 4, 4, 5)...)

	res := ComputeSkins(NewScoreIndex(r.Scores), []PlayerID{"A", "B"}, true)

	a := res.Players["A"]
	if a.Skins != 3 {
		t.Fatalf("A skins: got %d want 3", a.Skins)
	}
	if !slices.Equal(a.HolesWon, []int{3, 3, 3}) {
		t.Fatalf("A holesWon: got %v want [3 3 3]", a.HolesWon)
	}
	if !res.Holes[0].Carried || !res.Holes[1].Carried {
		t.Fatalf("holes 1 and 2 should carry")
	}
	if res.Holes[2].PotValue != 3 || res.Holes[2].Winner == nil || *res.Holes[2].Winner != "A" {
		t.Fatalf("hole 3: got %+v", res.Holes[2])
	}
	if res.Holes[3].PotValue != 1 {
		t.Fatalf("pot should reset after a win, got %d", res.Holes[3].PotValue)
	}
}

func TestSkinsWithoutCarryoverVoidsTies(t *testing.T) {
	r := newRound("A", "B")
	r.Scores = append(holeScores("A", 4, 3), holeScores("B", 4, 5)...)

	res := ComputeSkins(NewScoreIndex(r.Scores), []PlayerID{"A", "B"}, false)

	if res.Players["A"].Skins != 1 {
		t.Fatalf("A skins: got %d want 1", res.Players["A"].Skins)
	}
	if res.Holes[0].Winner != nil || res.Holes[0].Carried {
		t.Fatalf("tied hole should be void, got %+v", res.Holes[0])
	}
	if res.Holes[1].PotValue != 1 {
		t.Fatalf("pot must not grow without carryover")
	}
}

func TestSkinsSingleScoreIsUndecided(t *testing.T) {
	r := newRound("A", "B")
	r.Scores = []Score{sc("A", 1, 3), sc("A", 2, 4), sc("B", 2, 5)}

	res := ComputeSkins(NewScoreIndex(r.Scores), []PlayerID{"A", "B"}, true)

	if res.Holes[0].Winner != nil || res.Holes[0].Carried {
		t.Fatalf("hole 1 has one score and must be undecided, got %+v", res.Holes[0])
	}
	if res.Holes[1].PotValue != 1 {
		t.Fatalf("undecided hole must not grow the pot, got %d", res.Holes[1].PotValue)
	}
	if got := res.Players["A"].Skins; got != 1 {
		t.Fatalf("A skins: got %d want 1", got)
	}
}

func TestSkinsConservationWithoutCarryover(t *testing.T) {
	for seed := int64(1); seed <= 25; seed++ {
		r, players := randomFullRound(seed, 2+int(seed%3))
		res := ComputeSkins(NewScoreIndex(r.Scores), players, false)

		total, voided := 0, 0
		for _, p := range res.Players {
			total += p.Skins
			if len(p.HolesWon) != p.Skins {
				t.Fatalf("seed %d: holesWon length %d != skins %d", seed, len(p.HolesWon), p.Skins)
			}
		}
		for _, h := range res.Holes {
			if h.Winner == nil {
				voided++
			}
		}
		if total+voided != HoleCount {
			t.Fatalf("seed %d: skins %d + voided %d != 18", seed, total, voided)
		}
	}
}
