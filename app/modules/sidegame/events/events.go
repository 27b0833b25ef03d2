// Package sidegameevents defines the topics and payloads exchanged over the
// event bus by the side-game module.
package sidegameevents

import (
	sidegamedomain "github.com/Black-And-White-Club/golf-sidegames/app/modules/sidegame/domain"
)

// StreamName is the JetStream stream backing every sidegame topic.
const StreamName = "sidegame"

const (
	ScoreSubmitV1       = "sidegame.score.submit.v1"
	ScoreSubmitFailedV1 = "sidegame.score.submit.failed.v1"
	ScoreRecordedV1     = "sidegame.score.recorded.v1"

	WolfChoiceSubmitV1       = "sidegame.wolf.choice.submit.v1"
	WolfChoiceSubmitFailedV1 = "sidegame.wolf.choice.submit.failed.v1"
	WolfChoiceRecordedV1     = "sidegame.wolf.choice.recorded.v1"

	ResultsRequestV1       = "sidegame.results.request.v1"
	ResultsRequestFailedV1 = "sidegame.results.request.failed.v1"
	ResultsResponseV1      = "sidegame.results.response.v1"
	ResultsUpdatedV1       = "sidegame.results.updated.v1"
	ResultsFinalizedV1     = "sidegame.results.finalized.v1"

	RoundCompleteV1       = "sidegame.round.complete.v1"
	RoundCompleteFailedV1 = "sidegame.round.complete.failed.v1"
)

// ScoreSubmitPayloadV1 records or clears (Strokes == nil) one hole score.
type ScoreSubmitPayloadV1 struct {
	RoundID    string                  `json:"round_id"`
	PlayerID   sidegamedomain.PlayerID `json:"player_id"`
	HoleNumber int                     `json:"hole_number"`
	Strokes    *int                    `json:"strokes"`
}

type ScoreRecordedPayloadV1 struct {
	RoundID    string                  `json:"round_id"`
	PlayerID   sidegamedomain.PlayerID `json:"player_id"`
	HoleNumber int                     `json:"hole_number"`
	Strokes    *int                    `json:"strokes"`
	Cleared    bool                    `json:"cleared"`
}

// WolfChoiceSubmitPayloadV1 sets the captain's choice for a hole. A nil
// Choice removes it. Choice uses the "lone" / "partner:<id>" form.
type WolfChoiceSubmitPayloadV1 struct {
	RoundID    string  `json:"round_id"`
	GameID     string  `json:"game_id"`
	HoleNumber int     `json:"hole_number"`
	Choice     *string `json:"choice"`
}

type WolfChoiceRecordedPayloadV1 struct {
	RoundID    string  `json:"round_id"`
	GameID     string  `json:"game_id"`
	HoleNumber int     `json:"hole_number"`
	Choice     *string `json:"choice"`
}

// ResultsRequestPayloadV1 asks for one game's results, or every game of the
// round when GameID is empty.
type ResultsRequestPayloadV1 struct {
	RoundID string `json:"round_id"`
	GameID  string `json:"game_id,omitempty"`
}

// GameResultsV1 is the published form of one game's results.
type GameResultsV1 struct {
	RoundID   string                 `json:"round_id"`
	GameID    string                 `json:"game_id"`
	Format    sidegamedomain.Format  `json:"format"`
	Name      string                 `json:"name"`
	InputHash string                 `json:"input_hash"`
	Supported bool                   `json:"supported"`
	Results   sidegamedomain.Results `json:"results"`
}

type ResultsResponsePayloadV1 struct {
	RoundID string          `json:"round_id"`
	Games   []GameResultsV1 `json:"games"`
}

type ResultsUpdatedPayloadV1 struct {
	GameResultsV1
}

type RoundCompletePayloadV1 struct {
	RoundID string `json:"round_id"`
}

type ResultsFinalizedPayloadV1 struct {
	RoundID string          `json:"round_id"`
	Games   []GameResultsV1 `json:"games"`
}

// FailurePayloadV1 is the common shape of every *.failed.v1 event.
type FailurePayloadV1 struct {
	RoundID string `json:"round_id"`
	GameID  string `json:"game_id,omitempty"`
	Reason  string `json:"reason"`
}
