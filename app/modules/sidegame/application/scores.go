package sidegameservice

import (
	"context"
	"fmt"

	"github.com/Black-And-White-Club/frolf-bot-shared/utils/results"
	sidegamedomain "github.com/Black-And-White-Club/golf-sidegames/app/modules/sidegame/domain"
	sidegamedb "github.com/Black-And-White-Club/golf-sidegames/app/modules/sidegame/infrastructure/repositories"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// RecordScore upserts or clears a single hole score on an active round.
func (s *SideGameService) RecordScore(ctx context.Context, roundID uuid.UUID, entry ScoreEntry) (*ScoreRecorded, error) {
	recordTx := func(ctx context.Context, db bun.IDB) (results.OperationResult[*ScoreRecorded, error], error) {
		row, err := s.repo.GetRoundForUpdate(ctx, db, roundID)
		if err != nil {
			return failOrError[*ScoreRecorded](err, "failed to load round")
		}
		round := sidegamedb.ToDomainRound(row, nil)
		if err := s.checkScoreEntry(round, entry); err != nil {
			return results.FailureResult[*ScoreRecorded, error](err), nil
		}
		if err := s.applyScore(ctx, db, roundID, entry); err != nil {
			return results.OperationResult[*ScoreRecorded, error]{}, err
		}
		return results.SuccessResult[*ScoreRecorded, error](&ScoreRecorded{
			RoundID: roundID.String(),
			Entry:   entry,
			Cleared: entry.Strokes == nil,
		}), nil
	}

	recorded, err := unwrap(withTelemetry(s, ctx, "RecordScore", roundID.String(), func(ctx context.Context) (results.OperationResult[*ScoreRecorded, error], error) {
		return runInTx(s, ctx, recordTx)
	}))
	if err != nil {
		return nil, err
	}
	s.scheduleRecompute(ctx, roundID.String())
	return recorded, nil
}

func (s *SideGameService) checkScoreEntry(round sidegamedomain.Round, entry ScoreEntry) error {
	if round.Status == sidegamedomain.RoundStatusCompleted {
		return ErrRoundCompleted
	}
	if !sidegamedomain.ValidHole(entry.HoleNumber) {
		return fmt.Errorf("%w: %d", sidegamedomain.ErrInvalidHole, entry.HoleNumber)
	}
	if !round.HasPlayer(entry.PlayerID) {
		return fmt.Errorf("%w: %s", sidegamedomain.ErrUnknownPlayer, entry.PlayerID)
	}
	if entry.Strokes != nil && *entry.Strokes < 1 {
		return fmt.Errorf("%w: strokes must be positive, got %d", ErrInvalidRequest, *entry.Strokes)
	}
	return nil
}

func (s *SideGameService) applyScore(ctx context.Context, db bun.IDB, roundID uuid.UUID, entry ScoreEntry) error {
	if entry.Strokes == nil {
		if err := s.repo.DeleteScore(ctx, db, roundID, entry.PlayerID, entry.HoleNumber); err != nil {
			return fmt.Errorf("failed to clear score: %w", err)
		}
		return nil
	}
	if err := s.repo.UpsertScore(ctx, db, &sidegamedb.Score{
		RoundUUID:  roundID,
		PlayerID:   entry.PlayerID,
		HoleNumber: entry.HoleNumber,
		Strokes:    *entry.Strokes,
	}); err != nil {
		return fmt.Errorf("failed to record score: %w", err)
	}
	return nil
}
