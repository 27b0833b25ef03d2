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

// AddGame attaches a new side game to an active round.
func (s *SideGameService) AddGame(ctx context.Context, roundID uuid.UUID, req GameRequest) (*sidegamedomain.Game, error) {
	addTx := func(ctx context.Context, db bun.IDB) (results.OperationResult[*sidegamedomain.Game, error], error) {
		row, err := s.repo.GetRoundForUpdate(ctx, db, roundID)
		if err != nil {
			return failOrError[*sidegamedomain.Game](err, "failed to load round")
		}
		round := sidegamedb.ToDomainRound(row, nil)
		if round.Status == sidegamedomain.RoundStatusCompleted {
			return results.FailureResult[*sidegamedomain.Game, error](ErrRoundCompleted), nil
		}

		game, err := buildGame(round, req)
		if err != nil {
			return results.FailureResult[*sidegamedomain.Game, error](err), nil
		}

		gameUUID := uuid.New()
		if err := s.repo.CreateGame(ctx, db, sidegamedb.FromDomainGame(roundID, gameUUID, game)); err != nil {
			return results.OperationResult[*sidegamedomain.Game, error]{}, fmt.Errorf("failed to create game: %w", err)
		}
		game.ID = gameUUID.String()
		return results.SuccessResult[*sidegamedomain.Game, error](&game), nil
	}

	game, err := unwrap(withTelemetry(s, ctx, "AddGame", roundID.String(), func(ctx context.Context) (results.OperationResult[*sidegamedomain.Game, error], error) {
		return runInTx(s, ctx, addTx)
	}))
	if err != nil {
		return nil, err
	}
	s.scheduleRecompute(ctx, roundID.String())
	return game, nil
}

// buildGame validates a request against the round and resolves its settings.
func buildGame(round sidegamedomain.Round, req GameRequest) (sidegamedomain.Game, error) {
	format := sidegamedomain.Format(strings.TrimSpace(string(req.Format)))
	name := strings.TrimSpace(req.Name)
	if name == "" {
		name = string(format)
	}
	game := sidegamedomain.Game{
		Format:     format,
		Name:       name,
		PlayerIDs:  req.PlayerIDs,
		Teams:      req.Teams,
		PointValue: req.Settings.PointValue,
		Settings:   req.Settings.Settings(format),
	}
	if req.Settings.Handicapped != nil {
		game.Handicapped = *req.Settings.Handicapped
	}
	if err := sidegamedomain.ValidateGame(round, game); err != nil {
		return sidegamedomain.Game{}, err
	}
	for _, id := range settingsPlayers(req.Settings) {
		if id != "" && !round.HasPlayer(id) {
			return sidegamedomain.Game{}, fmt.Errorf("%w: %s named in settings", sidegamedomain.ErrUnknownPlayer, id)
		}
	}
	for hole, raw := range req.Settings.WolfHoleChoices {
		if !sidegamedomain.ValidHole(hole) {
			return sidegamedomain.Game{}, fmt.Errorf("%w: wolf choice for hole %d", sidegamedomain.ErrInvalidHole, hole)
		}
		if _, err := sidegamedomain.ParseWolfChoice(raw); err != nil {
			return sidegamedomain.Game{}, err
		}
	}
	return game, nil
}

func settingsPlayers(bag sidegamedomain.SettingsBag) []sidegamedomain.PlayerID {
	var ids []sidegamedomain.PlayerID
	if p := bag.ThreePointPairs; p != nil {
		ids = append(ids, p.TeamAPlayer1, p.TeamAPlayer2, p.TeamBPlayer1, p.TeamBPlayer2)
	}
	if p := bag.MatchPlayPlayers; p != nil {
		ids = append(ids, p.Player1, p.Player2)
	}
	ids = append(ids, bag.WolfOrderPlayerIDs...)
	return ids
}

// SetWolfChoice records the captain's choice for a hole. A nil choice removes
// any recorded choice, leaving the hole unresolved.
func (s *SideGameService) SetWolfChoice(ctx context.Context, roundID, gameID uuid.UUID, hole int, choice *sidegamedomain.WolfChoice) (*sidegamedomain.Game, error) {
	setTx := func(ctx context.Context, db bun.IDB) (results.OperationResult[*sidegamedomain.Game, error], error) {
		row, err := s.repo.GetRoundForUpdate(ctx, db, roundID)
		if err != nil {
			return failOrError[*sidegamedomain.Game](err, "failed to load round")
		}
		round := sidegamedb.ToDomainRound(row, nil)
		if round.Status == sidegamedomain.RoundStatusCompleted {
			return results.FailureResult[*sidegamedomain.Game, error](ErrRoundCompleted), nil
		}
		if !sidegamedomain.ValidHole(hole) {
			return results.FailureResult[*sidegamedomain.Game, error](fmt.Errorf("%w: %d", sidegamedomain.ErrInvalidHole, hole)), nil
		}

		gameRow, err := s.repo.GetGame(ctx, db, roundID, gameID)
		if err != nil {
			return failOrError[*sidegamedomain.Game](err, "failed to load game")
		}
		if gameRow.Format != sidegamedomain.FormatWolf {
			return results.FailureResult[*sidegamedomain.Game, error](ErrNotWolfGame), nil
		}
		if choice != nil && choice.Kind == sidegamedomain.WolfChoicePartner && !round.HasPlayer(choice.Partner) {
			return results.FailureResult[*sidegamedomain.Game, error](fmt.Errorf("%w: partner %s", sidegamedomain.ErrUnknownPlayer, choice.Partner)), nil
		}

		bag := gameRow.Settings
		choices := make(map[int]string, len(bag.WolfHoleChoices)+1)
		for h, c := range bag.WolfHoleChoices {
			choices[h] = c
		}
		if choice == nil {
			delete(choices, hole)
		} else {
			choices[hole] = choice.String()
		}
		if len(choices) == 0 {
			choices = nil
		}
		bag.WolfHoleChoices = choices

		if err := s.repo.UpdateGameSettings(ctx, db, gameID, bag); err != nil {
			return failOrError[*sidegamedomain.Game](err, "failed to update wolf choice")
		}
		gameRow.Settings = bag
		game := sidegamedb.ToDomainGame(gameRow)
		return results.SuccessResult[*sidegamedomain.Game, error](&game), nil
	}

	game, err := unwrap(withTelemetry(s, ctx, "SetWolfChoice", gameID.String(), func(ctx context.Context) (results.OperationResult[*sidegamedomain.Game, error], error) {
		return runInTx(s, ctx, setTx)
	}))
	if err != nil {
		return nil, err
	}
	s.scheduleRecompute(ctx, roundID.String())
	return game, nil
}
