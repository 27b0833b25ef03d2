package sidegamedomain

// Settings is the per-format configuration of a game. Each format has exactly
// one variant; Format reports which.
type Settings interface {
	Format() Format
}

// NassauScope selects whether Nassau competitors are players or teams.
type NassauScope string

const (
	NassauScopeIndividual NassauScope = "individual"
	NassauScopeTeam       NassauScope = "team"
)

// NassauMode is carried through as metadata. Only stroke scoring is computed.
type NassauMode string

const (
	NassauModeStroke NassauMode = "stroke"
	NassauModeMatch  NassauMode = "match"
)

type SkinsSettings struct {
	Carryover bool
}

type NassauSettings struct {
	Scope NassauScope
	Mode  NassauMode
}

type BestBallSettings struct{}

// ThreePointPairing is the fixed 2v2 lineup.
type ThreePointPairing struct {
	TeamAPlayer1 PlayerID `json:"a1"`
	TeamAPlayer2 PlayerID `json:"a2"`
	TeamBPlayer1 PlayerID `json:"b1"`
	TeamBPlayer2 PlayerID `json:"b2"`
}

// complete reports whether all four seats hold distinct players.
func (p ThreePointPairing) complete() bool {
	seen := make(map[PlayerID]bool, 4)
	for _, id := range []PlayerID{p.TeamAPlayer1, p.TeamAPlayer2, p.TeamBPlayer1, p.TeamBPlayer2} {
		if id == "" || seen[id] {
			return false
		}
		seen[id] = true
	}
	return true
}

type ThreePointSettings struct {
	Pairing *ThreePointPairing
}

type StablefordSettings struct{}

// MatchPlaySettings names the two competitors. Empty ids fall back to the
// first two participants.
type MatchPlaySettings struct {
	Player1 PlayerID
	Player2 PlayerID
}

// WolfSettings holds the rotation order and the captains' per-hole choices.
type WolfSettings struct {
	Order   []PlayerID
	Choices map[int]WolfChoice
}

func (SkinsSettings) Format() Format      { return FormatSkins }
func (NassauSettings) Format() Format     { return FormatNassau }
func (BestBallSettings) Format() Format   { return FormatBestBall }
func (ThreePointSettings) Format() Format { return FormatThreePoint }
func (StablefordSettings) Format() Format { return FormatStableford }
func (MatchPlaySettings) Format() Format  { return FormatMatchPlay }
func (WolfSettings) Format() Format       { return FormatWolf }

// DefaultSettings returns the documented defaults for a format, or nil for an
// unknown format.
func DefaultSettings(format Format) Settings {
	switch format {
	case FormatSkins:
		return SkinsSettings{Carryover: true}
	case FormatNassau:
		return NassauSettings{Scope: NassauScopeIndividual, Mode: NassauModeStroke}
	case FormatBestBall:
		return BestBallSettings{}
	case FormatThreePoint:
		return ThreePointSettings{}
	case FormatStableford:
		return StablefordSettings{}
	case FormatMatchPlay:
		return MatchPlaySettings{}
	case FormatWolf:
		return WolfSettings{}
	default:
		return nil
	}
}

// resolveSettings returns the game's settings when they match the format and
// the format defaults otherwise.
func resolveSettings[T Settings](g Game) T {
	if s, ok := g.Settings.(T); ok {
		return s
	}
	d, _ := DefaultSettings(g.Format).(T)
	return d
}
