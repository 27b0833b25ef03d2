package sidegamehandlers

import (
	"context"

	"github.com/Black-And-White-Club/frolf-bot-shared/utils/handlerwrapper"
	sidegameevents "github.com/Black-And-White-Club/golf-sidegames/app/modules/sidegame/events"
)

// Handlers defines the interface for side-game event handlers.
type Handlers interface {
	// HandleScoreSubmit records or clears a hole score.
	HandleScoreSubmit(ctx context.Context, payload *sidegameevents.ScoreSubmitPayloadV1) ([]handlerwrapper.Result, error)

	// HandleWolfChoiceSubmit records a wolf captain's choice for a hole.
	HandleWolfChoiceSubmit(ctx context.Context, payload *sidegameevents.WolfChoiceSubmitPayloadV1) ([]handlerwrapper.Result, error)

	// HandleResultsRequest answers a request for game results.
	HandleResultsRequest(ctx context.Context, payload *sidegameevents.ResultsRequestPayloadV1) ([]handlerwrapper.Result, error)

	// HandleRoundComplete completes a round and publishes its final results.
	HandleRoundComplete(ctx context.Context, payload *sidegameevents.RoundCompletePayloadV1) ([]handlerwrapper.Result, error)
}
