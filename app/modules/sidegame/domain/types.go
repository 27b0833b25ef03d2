package sidegamedomain

import "time"

// HoleCount is the number of holes in a round.
const HoleCount = 18

// PlayerID identifies a player within a round.
type PlayerID string

// TeamID identifies a team within a game.
type TeamID string

// RoundStatus is the lifecycle state of a round.
type RoundStatus string

const (
	RoundStatusActive    RoundStatus = "active"
	RoundStatusCompleted RoundStatus = "completed"
)

// Format is the side-game format tag used for dispatch.
type Format string

const (
	FormatSkins      Format = "skins"
	FormatNassau     Format = "nassau"
	FormatBestBall   Format = "bestBall"
	FormatThreePoint Format = "threePoint"
	FormatStableford Format = "stableford"
	FormatMatchPlay  Format = "matchPlay"
	FormatWolf       Format = "wolf"
)

// KnownFormats lists every format with an engine.
var KnownFormats = []Format{
	FormatSkins,
	FormatNassau,
	FormatBestBall,
	FormatThreePoint,
	FormatStableford,
	FormatMatchPlay,
	FormatWolf,
}

// Supported reports whether the format has an engine.
func (f Format) Supported() bool {
	for _, k := range KnownFormats {
		if k == f {
			return true
		}
	}
	return false
}

// HoleInfo describes one hole of the course.
type HoleInfo struct {
	Number        int  `json:"number"`
	Par           int  `json:"par"`
	Yards         *int `json:"yards,omitempty"`
	HandicapIndex *int `json:"handicap,omitempty"`
}

// Player is a participant in a round.
type Player struct {
	ID       PlayerID `json:"id"`
	Name     string   `json:"name"`
	Handicap *float64 `json:"handicap,omitempty"`
}

// Score is a sparse stroke entry. A nil Strokes means not yet entered.
type Score struct {
	PlayerID   PlayerID `json:"playerId"`
	HoleNumber int      `json:"holeNumber"`
	Strokes    *int     `json:"strokes"`
}

// Round is a single 18-hole outing.
type Round struct {
	ID         string      `json:"id"`
	CourseName string      `json:"courseName"`
	Holes      []HoleInfo  `json:"holes"`
	Players    []Player    `json:"players"`
	Scores     []Score     `json:"scores"`
	Status     RoundStatus `json:"status"`
	TeeTime    *time.Time  `json:"teeTime,omitempty"`
}

// Par returns the par for a hole, if the hole is described.
func (r Round) Par(hole int) (int, bool) {
	for _, h := range r.Holes {
		if h.Number == hole {
			return h.Par, true
		}
	}
	return 0, false
}

// HasPlayer reports whether id belongs to the round.
func (r Round) HasPlayer(id PlayerID) bool {
	for _, p := range r.Players {
		if p.ID == id {
			return true
		}
	}
	return false
}

// PlayerIDs returns the round's player ids in round order.
func (r Round) PlayerIDs() []PlayerID {
	ids := make([]PlayerID, 0, len(r.Players))
	for _, p := range r.Players {
		ids = append(ids, p.ID)
	}
	return ids
}

// Team is a named grouping of players used by team formats.
type Team struct {
	ID        TeamID     `json:"id"`
	Name      string     `json:"name"`
	PlayerIDs []PlayerID `json:"playerIds"`
}

// Game is a side-wager attached to a round.
type Game struct {
	ID          string     `json:"id"`
	Format      Format     `json:"format"`
	Name        string     `json:"name"`
	PlayerIDs   []PlayerID `json:"playerIds"`
	Teams       []Team     `json:"teams,omitempty"`
	PointValue  *float64   `json:"pointValue,omitempty"`
	Handicapped bool       `json:"handicapped"`
	Settings    Settings   `json:"-"`
}

// Participants returns the game's player ids with repeats dropped, or every
// round player when the game does not name any.
func (g Game) Participants(r Round) []PlayerID {
	if len(g.PlayerIDs) == 0 {
		return r.PlayerIDs()
	}
	out := make([]PlayerID, 0, len(g.PlayerIDs))
	seen := make(map[PlayerID]bool, len(g.PlayerIDs))
	for _, p := range g.PlayerIDs {
		if !seen[p] {
			seen[p] = true
			out = append(out, p)
		}
	}
	return out
}
