package sidegamedomain

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// MatchPlayPair is the bag form of the match play competitors.
type MatchPlayPair struct {
	Player1 PlayerID `json:"player1"`
	Player2 PlayerID `json:"player2"`
}

// SettingsBag is the loosely typed settings object exchanged with clients and
// persisted with a game. Absent keys fall back to format defaults and unknown
// keys are ignored.
type SettingsBag struct {
	Carryover          *bool              `json:"carryover,omitempty"`
	NassauScope        NassauScope        `json:"nassauScope,omitempty"`
	NassauMode         NassauMode         `json:"nassauMode,omitempty"`
	ThreePointPairs    *ThreePointPairing `json:"threePointPairs,omitempty"`
	MatchPlayPlayers   *MatchPlayPair     `json:"matchPlayPlayers,omitempty"`
	WolfOrderPlayerIDs []PlayerID         `json:"wolfOrderPlayerIds,omitempty"`
	WolfHoleChoices    map[int]string     `json:"wolfHoleChoices,omitempty"`
	PointValue         *float64           `json:"pointValue,omitempty"`
	Handicapped        *bool              `json:"handicapped,omitempty"`
}

// DecodeSettingsBag parses a settings bag. Empty input yields an empty bag.
func DecodeSettingsBag(raw []byte) (SettingsBag, error) {
	var bag SettingsBag
	if len(bytes.TrimSpace(raw)) == 0 || bytes.Equal(bytes.TrimSpace(raw), []byte("null")) {
		return bag, nil
	}
	if err := json.Unmarshal(raw, &bag); err != nil {
		return SettingsBag{}, fmt.Errorf("failed to decode settings: %w", err)
	}
	return bag, nil
}

// Settings converts the bag into the typed variant for format. Unknown
// formats yield nil. Malformed wolf choices and holes outside 1..18 are dropped.
func (b SettingsBag) Settings(format Format) Settings {
	switch format {
	case FormatSkins:
		s := SkinsSettings{Carryover: true}
		if b.Carryover != nil {
			s.Carryover = *b.Carryover
		}
		return s
	case FormatNassau:
		s := NassauSettings{Scope: NassauScopeIndividual, Mode: NassauModeStroke}
		if b.NassauScope == NassauScopeTeam {
			s.Scope = NassauScopeTeam
		}
		if b.NassauMode == NassauModeMatch {
			s.Mode = NassauModeMatch
		}
		return s
	case FormatThreePoint:
		s := ThreePointSettings{}
		if b.ThreePointPairs != nil {
			p := *b.ThreePointPairs
			s.Pairing = &p
		}
		return s
	case FormatMatchPlay:
		s := MatchPlaySettings{}
		if b.MatchPlayPlayers != nil {
			s.Player1 = b.MatchPlayPlayers.Player1
			s.Player2 = b.MatchPlayPlayers.Player2
		}
		return s
	case FormatWolf:
		s := WolfSettings{}
		if len(b.WolfOrderPlayerIDs) > 0 {
			s.Order = append([]PlayerID(nil), b.WolfOrderPlayerIDs...)
		}
		for hole, raw := range b.WolfHoleChoices {
			if hole < 1 || hole > HoleCount {
				continue
			}
			choice, err := ParseWolfChoice(raw)
			if err != nil {
				continue
			}
			if s.Choices == nil {
				s.Choices = make(map[int]WolfChoice)
			}
			s.Choices[hole] = choice
		}
		return s
	default:
		return DefaultSettings(format)
	}
}

// BagFromGame renders a game's typed settings and common options as a bag.
func BagFromGame(g Game) SettingsBag {
	bag := SettingsBag{PointValue: g.PointValue}
	if g.Handicapped {
		h := true
		bag.Handicapped = &h
	}
	switch s := g.Settings.(type) {
	case SkinsSettings:
		c := s.Carryover
		bag.Carryover = &c
	case NassauSettings:
		bag.NassauScope = s.Scope
		bag.NassauMode = s.Mode
	case ThreePointSettings:
		if s.Pairing != nil {
			p := *s.Pairing
			bag.ThreePointPairs = &p
		}
	case MatchPlaySettings:
		if s.Player1 != "" || s.Player2 != "" {
			bag.MatchPlayPlayers = &MatchPlayPair{Player1: s.Player1, Player2: s.Player2}
		}
	case WolfSettings:
		bag.WolfOrderPlayerIDs = append([]PlayerID(nil), s.Order...)
		if len(s.Choices) > 0 {
			bag.WolfHoleChoices = make(map[int]string, len(s.Choices))
			for hole, c := range s.Choices {
				bag.WolfHoleChoices[hole] = c.String()
			}
		}
	}
	return bag
}

// canonical returns a deterministic rendering used for hashing.
func (b SettingsBag) canonical() string {
	data, err := json.Marshal(b)
	if err != nil {
		return ""
	}
	// encoding/json sorts map keys, so the output is already stable.
	return string(data)
}
