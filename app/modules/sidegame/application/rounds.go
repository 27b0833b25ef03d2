package sidegameservice

import (
	"context"
	"fmt"
	"strings"

	"github.com/Black-And-White-Club/frolf-bot-shared/utils/results"
	sidegamedomain "github.com/Black-And-White-Club/golf-sidegames/app/modules/sidegame/domain"
	sidegamedb "github.com/Black-And-White-Club/golf-sidegames/app/modules/sidegame/infrastructure/repositories"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

func parseUUID(id string) (uuid.UUID, error) {
	return uuid.Parse(id)
}

// CreateRound validates and stores a new active round.
func (s *SideGameService) CreateRound(ctx context.Context, req CreateRoundRequest) (*sidegamedomain.Round, error) {
	createTx := func(ctx context.Context, db bun.IDB) (results.OperationResult[*sidegamedomain.Round, error], error) {
		return s.createRoundLogic(ctx, db, req)
	}

	return unwrap(withTelemetry(s, ctx, "CreateRound", req.CourseName, func(ctx context.Context) (results.OperationResult[*sidegamedomain.Round, error], error) {
		return runInTx(s, ctx, createTx)
	}))
}

func (s *SideGameService) createRoundLogic(ctx context.Context, db bun.IDB, req CreateRoundRequest) (results.OperationResult[*sidegamedomain.Round, error], error) {
	courseName := strings.TrimSpace(req.CourseName)
	if courseName == "" {
		return results.FailureResult[*sidegamedomain.Round, error](fmt.Errorf("%w: course name is required", ErrInvalidRequest)), nil
	}
	if err := sidegamedomain.ValidateHoles(req.Holes); err != nil {
		return results.FailureResult[*sidegamedomain.Round, error](err), nil
	}
	if err := sidegamedomain.ValidatePlayers(req.Players); err != nil {
		return results.FailureResult[*sidegamedomain.Round, error](err), nil
	}
	teeTime, err := s.teeTimes.Parse(req.TeeTime, req.Timezone)
	if err != nil {
		return results.FailureResult[*sidegamedomain.Round, error](err), nil
	}

	row := &sidegamedb.Round{
		UUID:       uuid.New(),
		CourseName: courseName,
		Status:     sidegamedomain.RoundStatusActive,
		TeeTime:    teeTime,
		Holes:      sortedHoles(req.Holes),
		Players:    req.Players,
	}
	if err := s.repo.CreateRound(ctx, db, row); err != nil {
		return results.OperationResult[*sidegamedomain.Round, error]{}, fmt.Errorf("failed to create round: %w", err)
	}

	round := sidegamedb.ToDomainRound(row, nil)
	return results.SuccessResult[*sidegamedomain.Round, error](&round), nil
}

// GetRound returns a round with its scores and games.
func (s *SideGameService) GetRound(ctx context.Context, roundID uuid.UUID) (*RoundView, error) {
	getTx := func(ctx context.Context, db bun.IDB) (results.OperationResult[*RoundView, error], error) {
		view, err := s.loadRound(ctx, db, roundID, false)
		if err != nil {
			return failOrError[*RoundView](err, "failed to load round")
		}
		return results.SuccessResult[*RoundView, error](view), nil
	}

	return unwrap(withTelemetry(s, ctx, "GetRound", roundID.String(), func(ctx context.Context) (results.OperationResult[*RoundView, error], error) {
		return runInTx(s, ctx, getTx)
	}))
}

// CompleteRound locks a round against further score and game changes.
// Completing an already completed round is a no-op.
func (s *SideGameService) CompleteRound(ctx context.Context, roundID uuid.UUID) (*RoundView, error) {
	completeTx := func(ctx context.Context, db bun.IDB) (results.OperationResult[*RoundView, error], error) {
		view, err := s.loadRound(ctx, db, roundID, true)
		if err != nil {
			return failOrError[*RoundView](err, "failed to load round")
		}
		if view.Round.Status != sidegamedomain.RoundStatusCompleted {
			if err := s.repo.UpdateRoundStatus(ctx, db, roundID, sidegamedomain.RoundStatusCompleted); err != nil {
				return failOrError[*RoundView](err, "failed to complete round")
			}
			view.Round.Status = sidegamedomain.RoundStatusCompleted
		}
		return results.SuccessResult[*RoundView, error](view), nil
	}

	view, err := unwrap(withTelemetry(s, ctx, "CompleteRound", roundID.String(), func(ctx context.Context) (results.OperationResult[*RoundView, error], error) {
		return runInTx(s, ctx, completeTx)
	}))
	if err != nil {
		return nil, err
	}
	s.scheduleRecompute(ctx, roundID.String())
	return view, nil
}

// loadRound reads a round, its scores and its games. lock takes a row lock
// on the round for the rest of the transaction.
func (s *SideGameService) loadRound(ctx context.Context, db bun.IDB, roundID uuid.UUID, lock bool) (*RoundView, error) {
	var (
		row *sidegamedb.Round
		err error
	)
	if lock {
		row, err = s.repo.GetRoundForUpdate(ctx, db, roundID)
	} else {
		row, err = s.repo.GetRound(ctx, db, roundID)
	}
	if err != nil {
		return nil, err
	}
	scores, err := s.repo.ListScores(ctx, db, roundID)
	if err != nil {
		return nil, err
	}
	gameRows, err := s.repo.ListGames(ctx, db, roundID)
	if err != nil {
		return nil, err
	}

	view := &RoundView{
		Round: sidegamedb.ToDomainRound(row, scores),
		Games: make([]sidegamedomain.Game, 0, len(gameRows)),
	}
	for i := range gameRows {
		view.Games = append(view.Games, sidegamedb.ToDomainGame(&gameRows[i]))
	}
	return view, nil
}

func sortedHoles(holes []sidegamedomain.HoleInfo) []sidegamedomain.HoleInfo {
	out := make([]sidegamedomain.HoleInfo, sidegamedomain.HoleCount)
	for _, h := range holes {
		out[h.Number-1] = h
	}
	return out
}
