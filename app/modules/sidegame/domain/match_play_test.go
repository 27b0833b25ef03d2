package sidegamedomain

import (
	"strings"
	"testing"
)

func TestMatchStatus(t *testing.T) {
	tests := map[int]string{0: "AS", 2: "2 UP", -3: "3 DN"}
	for diff, want := range tests {
		if got := MatchStatus(diff); got != want {
			t.Fatalf("MatchStatus(%d) = %q, want %q", diff, got, want)
		}
	}
}

func TestMatchPlayEarlyTermination(t *testing.T) {
	var scores []Score
	for h := 1; h <= 10; h++ {
		scores = append(scores, sc("p1", h, 3), sc("p2", h, 5))
	}

	res := ComputeMatchPlay(NewScoreIndex(scores), "p1", "p2")

	if res.EndedAtHole == nil || *res.EndedAtHole != 10 {
		t.Fatalf("ended at: got %v want 10", res.EndedAtHole)
	}
	if res.WinnerPlayerID == nil || *res.WinnerPlayerID != "p1" {
		t.Fatalf("winner: got %v want p1", res.WinnerPlayerID)
	}
	if len(res.Holes) != HoleCount {
		t.Fatalf("log length: got %d want 18", len(res.Holes))
	}
	if res.Holes[8].Ended {
		t.Fatalf("hole 9 must not be ended")
	}
	for _, h := range res.Holes[9:] {
		if !h.Ended {
			t.Fatalf("hole %d must be marked ended", h.Hole)
		}
	}
	if res.Holes[10].Result != MatchHoleNoScore {
		t.Fatalf("hole 11 has no scores, got %s", res.Holes[10].Result)
	}
	if !strings.HasSuffix(res.CurrentStatus, "(Final)") || res.CurrentStatus != "10 UP (Final)" {
		t.Fatalf("status: got %q", res.CurrentStatus)
	}
}

func TestMatchPlayMissingScoresDoNotAdvance(t *testing.T) {
	scores := []Score{sc("p1", 1, 5), sc("p2", 1, 4), sc("p1", 2, 4), sc("p1", 3, 4), sc("p2", 3, 4)}

	res := ComputeMatchPlay(NewScoreIndex(scores), "p1", "p2")

	want := []MatchHoleResult{MatchHolePlayer2, MatchHoleNoScore, MatchHoleHalved}
	for i, w := range want {
		if res.Holes[i].Result != w {
			t.Fatalf("hole %d: got %s want %s", i+1, res.Holes[i].Result, w)
		}
	}
	if res.Holes[1].MatchDiffAfter != -1 || res.Holes[1].StatusAfter != "1 DN" {
		t.Fatalf("hole 2: got %+v", res.Holes[1])
	}
	if res.CurrentStatus != "1 DN" || res.EndedAtHole != nil || res.WinnerPlayerID != nil {
		t.Fatalf("match still live, got %+v", res)
	}
}

func TestMatchPlayWinOnLastHole(t *testing.T) {
	var scores []Score
	for h := 1; h <= 17; h++ {
		scores = append(scores, sc("p1", h, 4), sc("p2", h, 4))
	}
	scores = append(scores, sc("p1", 18, 5), sc("p2", 18, 4))

	res := ComputeMatchPlay(NewScoreIndex(scores), "p1", "p2")

	if res.EndedAtHole == nil || *res.EndedAtHole != 18 || *res.WinnerPlayerID != "p2" {
		t.Fatalf("p2 should win on 18, got %+v", res)
	}
	if res.CurrentStatus != "1 DN (Final)" {
		t.Fatalf("status: got %q", res.CurrentStatus)
	}
}
