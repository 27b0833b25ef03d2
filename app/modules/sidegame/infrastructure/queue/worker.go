package sidegamequeue

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/Black-And-White-Club/frolf-bot-shared/observability/attr"
	"github.com/Black-And-White-Club/frolf-bot-shared/utils"
	sidegameservice "github.com/Black-And-White-Club/golf-sidegames/app/modules/sidegame/application"
	sidegameevents "github.com/Black-And-White-Club/golf-sidegames/app/modules/sidegame/events"
	sidegamehandlers "github.com/Black-And-White-Club/golf-sidegames/app/modules/sidegame/infrastructure/handlers"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/google/uuid"
	"github.com/riverqueue/river"
)

// ResultsComputer is the slice of the service the worker needs.
type ResultsComputer interface {
	ComputeRoundResults(ctx context.Context, roundID uuid.UUID) ([]sidegameservice.GameResults, error)
}

// RecomputeWorker publishes sidegame.results.updated.v1 for each game of a round.
type RecomputeWorker struct {
	river.WorkerDefaults[RecomputeRoundJob]

	logger    *slog.Logger
	computer  ResultsComputer
	publisher message.Publisher
	helpers   utils.Helpers
}

func NewRecomputeWorker(logger *slog.Logger, computer ResultsComputer, publisher message.Publisher, helpers utils.Helpers) *RecomputeWorker {
	return &RecomputeWorker{
		logger:    logger,
		computer:  computer,
		publisher: publisher,
		helpers:   helpers,
	}
}

func (w *RecomputeWorker) Work(ctx context.Context, job *river.Job[RecomputeRoundJob]) error {
	roundID, err := uuid.Parse(job.Args.RoundID)
	if err != nil {
		return river.JobCancel(fmt.Errorf("invalid round id %q: %w", job.Args.RoundID, err))
	}

	games, err := w.computer.ComputeRoundResults(ctx, roundID)
	if err != nil {
		if sidegameservice.IsFailure(err) {
			w.logger.WarnContext(ctx, "Dropping recompute for unavailable round",
				attr.String("round_id", job.Args.RoundID),
				attr.Error(err),
			)
			return river.JobCancel(err)
		}
		return fmt.Errorf("failed to compute round results: %w", err)
	}

	for _, g := range sidegamehandlers.ToGameResultsV1(games) {
		msg, err := w.helpers.CreateNewMessage(&sidegameevents.ResultsUpdatedPayloadV1{GameResultsV1: g}, sidegameevents.ResultsUpdatedV1)
		if err != nil {
			return fmt.Errorf("failed to create results message: %w", err)
		}
		if err := w.publisher.Publish(sidegameevents.ResultsUpdatedV1, msg); err != nil {
			return fmt.Errorf("failed to publish results for game %s: %w", g.GameID, err)
		}
	}

	w.logger.InfoContext(ctx, "Round results recomputed",
		attr.String("round_id", job.Args.RoundID),
		attr.Int("games", len(games)),
		attr.Int("attempt", job.Attempt),
	)
	return nil
}
