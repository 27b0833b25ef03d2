package sidegamedomain

// Results holds the outcome of one game. Exactly one field is set, matching
// the game's format; every field is nil for an unknown format.
type Results struct {
	Skins      *SkinsResult      `json:"skins,omitempty"`
	Nassau     *NassauResult     `json:"nassau,omitempty"`
	BestBall   *BestBallResult   `json:"bestBall,omitempty"`
	ThreePoint *ThreePointResult `json:"threePoint,omitempty"`
	Stableford *StablefordResult `json:"stableford,omitempty"`
	MatchPlay  *MatchPlayResult  `json:"matchPlay,omitempty"`
	Wolf       *WolfResult       `json:"wolf,omitempty"`
}

// Empty reports whether no format produced a result.
func (r Results) Empty() bool {
	return r.Skins == nil && r.Nassau == nil && r.BestBall == nil && r.ThreePoint == nil &&
		r.Stableford == nil && r.MatchPlay == nil && r.Wolf == nil
}

// ComputeResults routes a round and game to the engine for the game's format.
// It is a pure function of its arguments.
func ComputeResults(round Round, game Game) Results {
	idx := NewScoreIndex(round.Scores)
	participants := game.Participants(round)

	switch game.Format {
	case FormatSkins:
		s := resolveSettings[SkinsSettings](game)
		res := ComputeSkins(idx, participants, s.Carryover)
		return Results{Skins: &res}
	case FormatNassau:
		s := resolveSettings[NassauSettings](game)
		res := ComputeNassau(idx, participants, game.Teams, s)
		return Results{Nassau: &res}
	case FormatBestBall:
		res := ComputeBestBall(idx, game.Teams)
		return Results{BestBall: &res}
	case FormatThreePoint:
		s := resolveSettings[ThreePointSettings](game)
		res := ComputeThreePoint(idx, s.Pairing)
		return Results{ThreePoint: &res}
	case FormatStableford:
		res := ComputeStableford(idx, round, participants)
		return Results{Stableford: &res}
	case FormatMatchPlay:
		s := resolveSettings[MatchPlaySettings](game)
		p1, p2, ok := matchPlayPair(s, participants)
		var res MatchPlayResult
		if ok {
			res = ComputeMatchPlay(idx, p1, p2)
		} else {
			res = unconfiguredMatchPlay()
		}
		return Results{MatchPlay: &res}
	case FormatWolf:
		s := resolveSettings[WolfSettings](game)
		order := s.Order
		if len(order) == 0 {
			order = participants
		}
		res := ComputeWolf(idx, order, s.Choices)
		return Results{Wolf: &res}
	default:
		return Results{}
	}
}

// matchPlayPair resolves the two competitors, falling back to the first two
// participants when the configured pair is incomplete.
func matchPlayPair(s MatchPlaySettings, participants []PlayerID) (PlayerID, PlayerID, bool) {
	if s.Player1 != "" && s.Player2 != "" && s.Player1 != s.Player2 {
		return s.Player1, s.Player2, true
	}
	if len(participants) >= 2 && participants[0] != participants[1] {
		return participants[0], participants[1], true
	}
	return "", "", false
}
