package sidegamehandlers

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/Black-And-White-Club/frolf-bot-shared/observability/attr"
	"github.com/Black-And-White-Club/frolf-bot-shared/utils/handlerwrapper"
	sidegameservice "github.com/Black-And-White-Club/golf-sidegames/app/modules/sidegame/application"
	sidegamedomain "github.com/Black-And-White-Club/golf-sidegames/app/modules/sidegame/domain"
	sidegameevents "github.com/Black-And-White-Club/golf-sidegames/app/modules/sidegame/events"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel/trace"
)

// SideGameHandlers implements the Handlers interface.
type SideGameHandlers struct {
	service sidegameservice.Service
	logger  *slog.Logger
	tracer  trace.Tracer
}

// NewSideGameHandlers creates a new SideGameHandlers instance.
func NewSideGameHandlers(
	service sidegameservice.Service,
	logger *slog.Logger,
	tracer trace.Tracer,
) Handlers {
	return &SideGameHandlers{
		service: service,
		logger:  logger,
		tracer:  tracer,
	}
}

// HandleScoreSubmit records or clears a hole score. Business failures are
// published on the failed topic; infrastructure errors are returned so the
// message is redelivered.
func (h *SideGameHandlers) HandleScoreSubmit(ctx context.Context, payload *sidegameevents.ScoreSubmitPayloadV1) ([]handlerwrapper.Result, error) {
	ctx, span := h.tracer.Start(ctx, "SideGameHandlers.HandleScoreSubmit")
	defer span.End()

	roundID, err := uuid.Parse(payload.RoundID)
	if err != nil {
		return failure(sidegameevents.ScoreSubmitFailedV1, payload.RoundID, "", fmt.Errorf("invalid round id: %w", err)), nil
	}

	recorded, err := h.service.RecordScore(ctx, roundID, sidegameservice.ScoreEntry{
		PlayerID:   payload.PlayerID,
		HoleNumber: payload.HoleNumber,
		Strokes:    payload.Strokes,
	})
	if err != nil {
		if sidegameservice.IsFailure(err) {
			h.logger.WarnContext(ctx, "Score submission rejected",
				attr.String("round_id", payload.RoundID),
				attr.String("player_id", string(payload.PlayerID)),
				attr.Int("hole", payload.HoleNumber),
				attr.Error(err),
			)
			return failure(sidegameevents.ScoreSubmitFailedV1, payload.RoundID, "", err), nil
		}
		return nil, err
	}

	return []handlerwrapper.Result{{
		Topic: sidegameevents.ScoreRecordedV1,
		Payload: &sidegameevents.ScoreRecordedPayloadV1{
			RoundID:    recorded.RoundID,
			PlayerID:   recorded.Entry.PlayerID,
			HoleNumber: recorded.Entry.HoleNumber,
			Strokes:    recorded.Entry.Strokes,
			Cleared:    recorded.Cleared,
		},
	}}, nil
}

// HandleWolfChoiceSubmit records, replaces or removes a wolf choice.
func (h *SideGameHandlers) HandleWolfChoiceSubmit(ctx context.Context, payload *sidegameevents.WolfChoiceSubmitPayloadV1) ([]handlerwrapper.Result, error) {
	ctx, span := h.tracer.Start(ctx, "SideGameHandlers.HandleWolfChoiceSubmit")
	defer span.End()

	roundID, err := uuid.Parse(payload.RoundID)
	if err != nil {
		return failure(sidegameevents.WolfChoiceSubmitFailedV1, payload.RoundID, payload.GameID, fmt.Errorf("invalid round id: %w", err)), nil
	}
	gameID, err := uuid.Parse(payload.GameID)
	if err != nil {
		return failure(sidegameevents.WolfChoiceSubmitFailedV1, payload.RoundID, payload.GameID, fmt.Errorf("invalid game id: %w", err)), nil
	}

	var choice *sidegamedomain.WolfChoice
	if payload.Choice != nil {
		parsed, err := sidegamedomain.ParseWolfChoice(*payload.Choice)
		if err != nil {
			return failure(sidegameevents.WolfChoiceSubmitFailedV1, payload.RoundID, payload.GameID, err), nil
		}
		choice = &parsed
	}

	if _, err := h.service.SetWolfChoice(ctx, roundID, gameID, payload.HoleNumber, choice); err != nil {
		if sidegameservice.IsFailure(err) {
			h.logger.WarnContext(ctx, "Wolf choice rejected",
				attr.String("round_id", payload.RoundID),
				attr.String("game_id", payload.GameID),
				attr.Int("hole", payload.HoleNumber),
				attr.Error(err),
			)
			return failure(sidegameevents.WolfChoiceSubmitFailedV1, payload.RoundID, payload.GameID, err), nil
		}
		return nil, err
	}

	var recorded *string
	if choice != nil {
		s := choice.String()
		recorded = &s
	}
	return []handlerwrapper.Result{{
		Topic: sidegameevents.WolfChoiceRecordedV1,
		Payload: &sidegameevents.WolfChoiceRecordedPayloadV1{
			RoundID:    payload.RoundID,
			GameID:     payload.GameID,
			HoleNumber: payload.HoleNumber,
			Choice:     recorded,
		},
	}}, nil
}

// HandleResultsRequest computes one game, or every game of the round when no
// game id is given. Replies go to the request's reply-to subject when set.
func (h *SideGameHandlers) HandleResultsRequest(ctx context.Context, payload *sidegameevents.ResultsRequestPayloadV1) ([]handlerwrapper.Result, error) {
	ctx, span := h.tracer.Start(ctx, "SideGameHandlers.HandleResultsRequest")
	defer span.End()

	replyTopic := sidegameevents.ResultsResponseV1
	failTopic := sidegameevents.ResultsRequestFailedV1
	if rt, ok := ctx.Value(handlerwrapper.CtxKeyReplyTo).(string); ok && rt != "" {
		replyTopic = rt
		failTopic = rt
	}

	roundID, err := uuid.Parse(payload.RoundID)
	if err != nil {
		return failure(failTopic, payload.RoundID, payload.GameID, fmt.Errorf("invalid round id: %w", err)), nil
	}

	var games []sidegameservice.GameResults
	if payload.GameID == "" {
		games, err = h.service.ComputeRoundResults(ctx, roundID)
	} else {
		var gameID uuid.UUID
		gameID, err = uuid.Parse(payload.GameID)
		if err != nil {
			return failure(failTopic, payload.RoundID, payload.GameID, fmt.Errorf("invalid game id: %w", err)), nil
		}
		var res *sidegameservice.GameResults
		res, err = h.service.ComputeGameResults(ctx, roundID, gameID)
		if err == nil {
			games = []sidegameservice.GameResults{*res}
		}
	}
	if err != nil {
		if sidegameservice.IsFailure(err) {
			return failure(failTopic, payload.RoundID, payload.GameID, err), nil
		}
		return nil, err
	}

	return []handlerwrapper.Result{{
		Topic: replyTopic,
		Payload: &sidegameevents.ResultsResponsePayloadV1{
			RoundID: payload.RoundID,
			Games:   ToGameResultsV1(games),
		},
	}}, nil
}

// HandleRoundComplete completes the round and publishes the final results of
// every game.
func (h *SideGameHandlers) HandleRoundComplete(ctx context.Context, payload *sidegameevents.RoundCompletePayloadV1) ([]handlerwrapper.Result, error) {
	ctx, span := h.tracer.Start(ctx, "SideGameHandlers.HandleRoundComplete")
	defer span.End()

	roundID, err := uuid.Parse(payload.RoundID)
	if err != nil {
		return failure(sidegameevents.RoundCompleteFailedV1, payload.RoundID, "", fmt.Errorf("invalid round id: %w", err)), nil
	}

	if _, err := h.service.CompleteRound(ctx, roundID); err != nil {
		if sidegameservice.IsFailure(err) {
			return failure(sidegameevents.RoundCompleteFailedV1, payload.RoundID, "", err), nil
		}
		return nil, err
	}

	games, err := h.service.ComputeRoundResults(ctx, roundID)
	if err != nil {
		return nil, err
	}

	h.logger.InfoContext(ctx, "Round completed",
		attr.String("round_id", payload.RoundID),
		attr.Int("games", len(games)),
	)

	return []handlerwrapper.Result{{
		Topic: sidegameevents.ResultsFinalizedV1,
		Payload: &sidegameevents.ResultsFinalizedPayloadV1{
			RoundID: payload.RoundID,
			Games:   ToGameResultsV1(games),
		},
	}}, nil
}

// ToGameResultsV1 converts service results to their published form.
func ToGameResultsV1(games []sidegameservice.GameResults) []sidegameevents.GameResultsV1 {
	out := make([]sidegameevents.GameResultsV1, 0, len(games))
	for _, g := range games {
		out = append(out, sidegameevents.GameResultsV1{
			RoundID:   g.RoundID,
			GameID:    g.GameID,
			Format:    g.Format,
			Name:      g.Name,
			InputHash: g.InputHash,
			Supported: g.Supported,
			Results:   g.Results,
		})
	}
	return out
}

func failure(topic, roundID, gameID string, err error) []handlerwrapper.Result {
	return []handlerwrapper.Result{{
		Topic: topic,
		Payload: &sidegameevents.FailurePayloadV1{
			RoundID: roundID,
			GameID:  gameID,
			Reason:  err.Error(),
		},
	}}
}
