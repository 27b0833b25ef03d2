package sidegamedomain

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidHole     = errors.New("hole number must be between 1 and 18")
	ErrInvalidCourse   = errors.New("course must describe holes 1 through 18 with a positive par")
	ErrNoPlayers       = errors.New("round needs at least one player")
	ErrDuplicatePlayer = errors.New("duplicate player id")
	ErrUnknownPlayer   = errors.New("player is not part of the round")
	ErrMissingFormat   = errors.New("game format is required")
)

// ValidHole reports whether hole is in 1..18.
func ValidHole(hole int) bool {
	return hole >= 1 && hole <= HoleCount
}

// ValidateHoles checks that holes are exactly 1..18, each with a positive par.
func ValidateHoles(holes []HoleInfo) error {
	if len(holes) != HoleCount {
		return fmt.Errorf("%w: got %d holes", ErrInvalidCourse, len(holes))
	}
	seen := make(map[int]bool, HoleCount)
	for _, h := range holes {
		if !ValidHole(h.Number) || seen[h.Number] {
			return fmt.Errorf("%w: bad or repeated hole %d", ErrInvalidCourse, h.Number)
		}
		if h.Par < 1 {
			return fmt.Errorf("%w: hole %d has par %d", ErrInvalidCourse, h.Number, h.Par)
		}
		seen[h.Number] = true
	}
	return nil
}

// ValidatePlayers checks that the player list is non-empty with unique ids.
func ValidatePlayers(players []Player) error {
	if len(players) == 0 {
		return ErrNoPlayers
	}
	seen := make(map[PlayerID]bool, len(players))
	for _, p := range players {
		if p.ID == "" || seen[p.ID] {
			return fmt.Errorf("%w: %q", ErrDuplicatePlayer, p.ID)
		}
		seen[p.ID] = true
	}
	return nil
}

// ValidateGame checks that every participant and team member is a round
// player named once, and that ids in a wolf order, three-point pairing or
// match-play pair are distinct. Unknown formats are accepted and produce
// empty results.
func ValidateGame(round Round, game Game) error {
	if game.Format == "" {
		return ErrMissingFormat
	}
	if err := distinctRoundPlayers(round, game.PlayerIDs, "participants"); err != nil {
		return err
	}
	var members []PlayerID
	for _, t := range game.Teams {
		members = append(members, t.PlayerIDs...)
	}
	if err := distinctRoundPlayers(round, members, "teams"); err != nil {
		return err
	}

	switch s := game.Settings.(type) {
	case WolfSettings:
		return distinctRoundPlayers(round, s.Order, "wolf order")
	case ThreePointSettings:
		if s.Pairing != nil {
			p := s.Pairing
			return distinctRoundPlayers(round, nonEmpty(p.TeamAPlayer1, p.TeamAPlayer2, p.TeamBPlayer1, p.TeamBPlayer2), "three-point pairing")
		}
	case MatchPlaySettings:
		return distinctRoundPlayers(round, nonEmpty(s.Player1, s.Player2), "match-play pair")
	}
	return nil
}

func distinctRoundPlayers(round Round, ids []PlayerID, where string) error {
	seen := make(map[PlayerID]bool, len(ids))
	for _, p := range ids {
		if !round.HasPlayer(p) {
			return fmt.Errorf("%w: %s in %s", ErrUnknownPlayer, p, where)
		}
		if seen[p] {
			return fmt.Errorf("%w: %s repeated in %s", ErrDuplicatePlayer, p, where)
		}
		seen[p] = true
	}
	return nil
}

func nonEmpty(ids ...PlayerID) []PlayerID {
	out := ids[:0]
	for _, id := range ids {
		if id != "" {
			out = append(out, id)
		}
	}
	return out
}
