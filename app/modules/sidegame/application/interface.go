package sidegameservice

import (
	"context"

	sidegamedomain "github.com/Black-And-White-Club/golf-sidegames/app/modules/sidegame/domain"
	"github.com/google/uuid"
)

// Service defines the side-game use cases.
type Service interface {
	CreateRound(ctx context.Context, req CreateRoundRequest) (*sidegamedomain.Round, error)
	GetRound(ctx context.Context, roundID uuid.UUID) (*RoundView, error)
	CompleteRound(ctx context.Context, roundID uuid.UUID) (*RoundView, error)

	// RecordScore upserts a hole score; a nil Strokes clears it.
	RecordScore(ctx context.Context, roundID uuid.UUID, entry ScoreEntry) (*ScoreRecorded, error)
	ImportScorecard(ctx context.Context, roundID uuid.UUID, filename string, data []byte) (*ImportSummary, error)

	AddGame(ctx context.Context, roundID uuid.UUID, req GameRequest) (*sidegamedomain.Game, error)
	// SetWolfChoice records, replaces or (nil choice) removes a captain's choice.
	SetWolfChoice(ctx context.Context, roundID, gameID uuid.UUID, hole int, choice *sidegamedomain.WolfChoice) (*sidegamedomain.Game, error)

	ComputeGameResults(ctx context.Context, roundID, gameID uuid.UUID) (*GameResults, error)
	ComputeRoundResults(ctx context.Context, roundID uuid.UUID) ([]GameResults, error)
	RenderGameChart(ctx context.Context, roundID, gameID uuid.UUID) ([]byte, error)
}

// RecomputeScheduler queues an asynchronous results recompute for a round.
type RecomputeScheduler interface {
	ScheduleRecompute(ctx context.Context, roundID uuid.UUID) error
}
