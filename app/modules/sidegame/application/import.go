package sidegameservice

import (
	"context"
	"fmt"
	"strings"

	"github.com/Black-And-White-Club/frolf-bot-shared/utils/results"
	"github.com/Black-And-White-Club/golf-sidegames/app/modules/sidegame/application/parsers"
	sidegamedomain "github.com/Black-And-White-Club/golf-sidegames/app/modules/sidegame/domain"
	sidegamedb "github.com/Black-And-White-Club/golf-sidegames/app/modules/sidegame/infrastructure/repositories"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// ImportScorecard records every filled cell of a CSV or XLSX scorecard.
// Rows are matched to round players by id or case-insensitive name; blank
// cells leave existing scores untouched.
func (s *SideGameService) ImportScorecard(ctx context.Context, roundID uuid.UUID, filename string, data []byte) (*ImportSummary, error) {
	importTx := func(ctx context.Context, db bun.IDB) (results.OperationResult[*ImportSummary, error], error) {
		card, err := s.parseScorecard(filename, data)
		if err != nil {
			return results.FailureResult[*ImportSummary, error](err), nil
		}

		row, err := s.repo.GetRoundForUpdate(ctx, db, roundID)
		if err != nil {
			return failOrError[*ImportSummary](err, "failed to load round")
		}
		round := sidegamedb.ToDomainRound(row, nil)
		if round.Status == sidegamedomain.RoundStatusCompleted {
			return results.FailureResult[*ImportSummary, error](ErrRoundCompleted), nil
		}

		summary := &ImportSummary{
			RoundID:       roundID.String(),
			Matched:       []sidegamedomain.PlayerID{},
			Unmatched:     []string{},
			ParMismatches: parMismatches(round, card.Par),
		}
		for _, line := range card.Players {
			id, ok := matchPlayer(round.Players, line.Name)
			if !ok {
				summary.Unmatched = append(summary.Unmatched, line.Name)
				continue
			}
			summary.Matched = append(summary.Matched, id)
			for i, strokes := range line.Holes {
				if strokes == nil {
					continue
				}
				entry := ScoreEntry{PlayerID: id, HoleNumber: i + 1, Strokes: strokes}
				if err := s.applyScore(ctx, db, roundID, entry); err != nil {
					return results.OperationResult[*ImportSummary, error]{}, err
				}
				summary.Recorded++
			}
		}
		return results.SuccessResult[*ImportSummary, error](summary), nil
	}

	summary, err := unwrap(withTelemetry(s, ctx, "ImportScorecard", roundID.String(), func(ctx context.Context) (results.OperationResult[*ImportSummary, error], error) {
		return runInTx(s, ctx, importTx)
	}))
	if err != nil {
		return nil, err
	}
	if summary.Recorded > 0 {
		s.scheduleRecompute(ctx, roundID.String())
	}
	return summary, nil
}

func (s *SideGameService) parseScorecard(filename string, data []byte) (*parsers.Scorecard, error) {
	parser, err := s.parsers.GetParser(filename)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidScorecard, err)
	}
	card, err := parser.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidScorecard, err)
	}
	return card, nil
}

func matchPlayer(players []sidegamedomain.Player, name string) (sidegamedomain.PlayerID, bool) {
	name = strings.TrimSpace(name)
	for _, p := range players {
		if string(p.ID) == name {
			return p.ID, true
		}
	}
	for _, p := range players {
		if strings.EqualFold(strings.TrimSpace(p.Name), name) {
			return p.ID, true
		}
	}
	return "", false
}

// parMismatches lists holes whose scorecard par differs from the course.
func parMismatches(round sidegamedomain.Round, par []*int) []int {
	var out []int
	for i, p := range par {
		if p == nil {
			continue
		}
		if coursePar, ok := round.Par(i + 1); ok && coursePar != *p {
			out = append(out, i+1)
		}
	}
	return out
}
