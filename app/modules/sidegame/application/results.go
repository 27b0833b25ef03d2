package sidegameservice

import (
	"context"

	"github.com/Black-And-White-Club/frolf-bot-shared/utils/results"
	sidegamedomain "github.com/Black-And-White-Club/golf-sidegames/app/modules/sidegame/domain"
	sidegamedb "github.com/Black-And-White-Club/golf-sidegames/app/modules/sidegame/infrastructure/repositories"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// ComputeGameResults computes the current outcome of one game.
func (s *SideGameService) ComputeGameResults(ctx context.Context, roundID, gameID uuid.UUID) (*GameResults, error) {
	computeTx := func(ctx context.Context, db bun.IDB) (results.OperationResult[*GameResults, error], error) {
		view, err := s.loadRound(ctx, db, roundID, false)
		if err != nil {
			return failOrError[*GameResults](err, "failed to load round")
		}
		game, ok := findGame(view.Games, gameID)
		if !ok {
			return results.FailureResult[*GameResults, error](sidegamedb.ErrGameNotFound), nil
		}
		res := s.gameResults(ctx, view.Round, game)
		return results.SuccessResult[*GameResults, error](&res), nil
	}

	return unwrap(withTelemetry(s, ctx, "ComputeGameResults", gameID.String(), func(ctx context.Context) (results.OperationResult[*GameResults, error], error) {
		return runInTx(s, ctx, computeTx)
	}))
}

// ComputeRoundResults computes every game of a round in creation order.
func (s *SideGameService) ComputeRoundResults(ctx context.Context, roundID uuid.UUID) ([]GameResults, error) {
	computeTx := func(ctx context.Context, db bun.IDB) (results.OperationResult[[]GameResults, error], error) {
		view, err := s.loadRound(ctx, db, roundID, false)
		if err != nil {
			return failOrError[[]GameResults](err, "failed to load round")
		}
		out := make([]GameResults, 0, len(view.Games))
		for _, game := range view.Games {
			out = append(out, s.gameResults(ctx, view.Round, game))
		}
		return results.SuccessResult[[]GameResults, error](out), nil
	}

	return unwrap(withTelemetry(s, ctx, "ComputeRoundResults", roundID.String(), func(ctx context.Context) (results.OperationResult[[]GameResults, error], error) {
		return runInTx(s, ctx, computeTx)
	}))
}

func findGame(games []sidegamedomain.Game, gameID uuid.UUID) (sidegamedomain.Game, bool) {
	id := gameID.String()
	for _, g := range games {
		if g.ID == id {
			return g, true
		}
	}
	return sidegamedomain.Game{}, false
}

func (s *SideGameService) gameResults(ctx context.Context, round sidegamedomain.Round, game sidegamedomain.Game) GameResults {
	hash, res := s.cachedResults(ctx, round, game)
	return GameResults{
		RoundID:   round.ID,
		GameID:    game.ID,
		Format:    game.Format,
		Name:      game.Name,
		InputHash: hash,
		Supported: game.Format.Supported(),
		Results:   res,
	}
}

// cachedResults memoizes results by input hash. Any change to the round or
// game changes the hash, so stale entries simply age out.
func (s *SideGameService) cachedResults(ctx context.Context, round sidegamedomain.Round, game sidegamedomain.Game) (string, sidegamedomain.Results) {
	hash := sidegamedomain.ComputeInputHash(round, game)
	if res, ok := s.cache.Get(hash); ok {
		s.metrics.RecordCacheHit(ctx)
		return hash, res
	}
	s.metrics.RecordCacheMiss(ctx)
	res := sidegamedomain.ComputeResults(round, game)
	s.metrics.RecordResultsComputed(ctx, string(game.Format))
	s.cache.Add(hash, res)
	return hash, res
}
