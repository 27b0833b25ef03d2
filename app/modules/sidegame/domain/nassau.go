package sidegamedomain

// NassauSegment is one of the three stroke contests. Totals only lists
// competitors with at least one entered hole in the segment.
type NassauSegment struct {
	FirstHole   int            `json:"firstHole"`
	LastHole    int            `json:"lastHole"`
	Totals      map[string]int `json:"totals"`
	HolesPlayed map[string]int `json:"holesPlayed"`
	Winner      *string        `json:"winner"`
}

// NassauResult carries front, back and overall contests. Competitor keys are
// player ids in individual scope and team ids in team scope.
// MatchModeSupported is false when match mode was requested; stroke totals
// are reported in that case.
type NassauResult struct {
	Scope              NassauScope   `json:"scope"`
	Mode               NassauMode    `json:"mode"`
	MatchModeSupported bool          `json:"matchModeSupported"`
	Front              NassauSegment `json:"front"`
	Back               NassauSegment `json:"back"`
	Overall            NassauSegment `json:"overall"`
}

type nassauCompetitor struct {
	key   string
	holes []*int
}

// ComputeNassau scores front 9, back 9 and overall as independent stroke
// totals. Team scope scores each team by best ball.
func ComputeNassau(idx ScoreIndex, players []PlayerID, teams []Team, s NassauSettings) NassauResult {
	var competitors []nassauCompetitor
	if s.Scope == NassauScopeTeam {
		for _, t := range teams {
			competitors = append(competitors, nassauCompetitor{key: string(t.ID), holes: teamBestBall(idx, t).Holes})
		}
	} else {
		for _, p := range players {
			holes := make([]*int, HoleCount)
			for hole := 1; hole <= HoleCount; hole++ {
				if v, ok := idx.Strokes(p, hole); ok {
					holes[hole-1] = intPtr(v)
				}
			}
			competitors = append(competitors, nassauCompetitor{key: string(p), holes: holes})
		}
	}

	return NassauResult{
		Scope:              s.Scope,
		Mode:               s.Mode,
		MatchModeSupported: s.Mode != NassauModeMatch,
		Front:              nassauSegment(competitors, 1, 9),
		Back:               nassauSegment(competitors, 10, 18),
		Overall:            nassauSegment(competitors, 1, 18),
	}
}

func nassauSegment(competitors []nassauCompetitor, first, last int) NassauSegment {
	seg := NassauSegment{
		FirstHole:   first,
		LastHole:    last,
		Totals:      make(map[string]int),
		HolesPlayed: make(map[string]int),
	}

	var (
		best    int
		leaders []string
	)
	for _, c := range competitors {
		total, played := 0, 0
		for hole := first; hole <= last; hole++ {
			if v := c.holes[hole-1]; v != nil {
				total += *v
				played++
			}
		}
		if played == 0 {
			continue
		}
		seg.Totals[c.key] = total
		seg.HolesPlayed[c.key] = played
		switch {
		case len(leaders) == 0 || total < best:
			best = total
			leaders = []string{c.key}
		case total == best:
			leaders = append(leaders, c.key)
		}
	}
	if len(seg.Totals) >= 2 && len(leaders) == 1 {
		winner := leaders[0]
		seg.Winner = &winner
	}
	return seg
}
