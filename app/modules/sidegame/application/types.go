package sidegameservice

import (
	sidegamedomain "github.com/Black-And-White-Club/golf-sidegames/app/modules/sidegame/domain"
)

// CreateRoundRequest describes a new round. TeeTime is free text such as
// "tomorrow at 8:10am" and Timezone an abbreviation or IANA name.
type CreateRoundRequest struct {
	CourseName string                    `json:"courseName"`
	Holes      []sidegamedomain.HoleInfo `json:"holes"`
	Players    []sidegamedomain.Player   `json:"players"`
	TeeTime    string                    `json:"teeTime,omitempty"`
	Timezone   string                    `json:"timezone,omitempty"`
}

// RoundView is a round with its games.
type RoundView struct {
	Round sidegamedomain.Round  `json:"round"`
	Games []sidegamedomain.Game `json:"games"`
}

// ScoreEntry is one hole score. A nil Strokes clears the entry.
type ScoreEntry struct {
	PlayerID   sidegamedomain.PlayerID `json:"playerId"`
	HoleNumber int                     `json:"holeNumber"`
	Strokes    *int                    `json:"strokes"`
}

type ScoreRecorded struct {
	RoundID string     `json:"roundId"`
	Entry   ScoreEntry `json:"entry"`
	Cleared bool       `json:"cleared"`
}

// GameRequest configures a new game from the loosely typed settings bag.
type GameRequest struct {
	Format    sidegamedomain.Format      `json:"format"`
	Name      string                     `json:"name"`
	PlayerIDs []sidegamedomain.PlayerID  `json:"playerIds"`
	Teams     []sidegamedomain.Team      `json:"teams,omitempty"`
	Settings  sidegamedomain.SettingsBag `json:"settings"`
}

// GameResults is one game's computed outcome. Supported is false for formats
// without an engine, whose Results are empty.
type GameResults struct {
	RoundID   string                 `json:"roundId"`
	GameID    string                 `json:"gameId"`
	Format    sidegamedomain.Format  `json:"format"`
	Name      string                 `json:"name"`
	InputHash string                 `json:"inputHash"`
	Supported bool                   `json:"supported"`
	Results   sidegamedomain.Results `json:"results"`
}

// ImportSummary reports what a scorecard import changed.
type ImportSummary struct {
	RoundID       string                    `json:"roundId"`
	Recorded      int                       `json:"recorded"`
	Matched       []sidegamedomain.PlayerID `json:"matched"`
	Unmatched     []string                  `json:"unmatched"`
	ParMismatches []int                     `json:"parMismatches,omitempty"`
}
