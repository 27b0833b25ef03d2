package sidegamedb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	sidegamedomain "github.com/Black-And-White-Club/golf-sidegames/app/modules/sidegame/domain"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

var (
	// ErrRoundNotFound is returned when a round does not exist.
	ErrRoundNotFound = errors.New("round not found")
	// ErrGameNotFound is returned when a game does not exist in the round.
	ErrGameNotFound = errors.New("game not found")
)

// Impl implements the Repository interface using Bun ORM.
type Impl struct {
	db bun.IDB
}

// NewRepository creates a new side-game repository.
func NewRepository(db bun.IDB) Repository {
	return &Impl{db: db}
}

func (r *Impl) resolveDB(db bun.IDB) bun.IDB {
	if db == nil {
		return r.db
	}
	return db
}

// CreateRound inserts a new round.
func (r *Impl) CreateRound(ctx context.Context, db bun.IDB, round *Round) error {
	db = r.resolveDB(db)
	now := time.Now().UTC()
	round.CreatedAt = now
	round.UpdatedAt = now
	if _, err := db.NewInsert().Model(round).Exec(ctx); err != nil {
		return fmt.Errorf("failed to create round: %w", err)
	}
	return nil
}

// GetRound retrieves a round by UUID.
func (r *Impl) GetRound(ctx context.Context, db bun.IDB, roundUUID uuid.UUID) (*Round, error) {
	return r.getRound(ctx, r.resolveDB(db), roundUUID, false)
}

// GetRoundForUpdate retrieves a round with a row lock.
func (r *Impl) GetRoundForUpdate(ctx context.Context, db bun.IDB, roundUUID uuid.UUID) (*Round, error) {
	return r.getRound(ctx, r.resolveDB(db), roundUUID, true)
}

func (r *Impl) getRound(ctx context.Context, db bun.IDB, roundUUID uuid.UUID, lock bool) (*Round, error) {
	round := new(Round)
	q := db.NewSelect().Model(round).Where("uuid = ?", roundUUID)
	if lock {
		q = q.For("UPDATE")
	}
	if err := q.Scan(ctx); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrRoundNotFound
		}
		return nil, fmt.Errorf("failed to get round: %w", err)
	}
	return round, nil
}

// UpdateRoundStatus changes a round's lifecycle status.
func (r *Impl) UpdateRoundStatus(ctx context.Context, db bun.IDB, roundUUID uuid.UUID, status sidegamedomain.RoundStatus) error {
	db = r.resolveDB(db)
	result, err := db.NewUpdate().
		Model((*Round)(nil)).
		Set("status = ?", status).
		Set("updated_at = ?", time.Now().UTC()).
		Where("uuid = ?", roundUUID).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to update round status: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return ErrRoundNotFound
	}
	return nil
}

// ListScores returns every entered score of a round ordered by hole.
func (r *Impl) ListScores(ctx context.Context, db bun.IDB, roundUUID uuid.UUID) ([]Score, error) {
	db = r.resolveDB(db)
	var scores []Score
	err := db.NewSelect().
		Model(&scores).
		Where("round_uuid = ?", roundUUID).
		Order("hole_number ASC", "player_id ASC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list scores: %w", err)
	}
	return scores, nil
}

// UpsertScore records strokes for a player on a hole.
func (r *Impl) UpsertScore(ctx context.Context, db bun.IDB, score *Score) error {
	db = r.resolveDB(db)
	score.UpdatedAt = time.Now().UTC()
	_, err := db.NewInsert().
		Model(score).
		On("CONFLICT (round_uuid, player_id, hole_number) DO UPDATE").
		Set("strokes = EXCLUDED.strokes").
		Set("updated_at = EXCLUDED.updated_at").
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to upsert score: %w", err)
	}
	return nil
}

// DeleteScore clears a player's hole score.
func (r *Impl) DeleteScore(ctx context.Context, db bun.IDB, roundUUID uuid.UUID, playerID sidegamedomain.PlayerID, hole int) error {
	db = r.resolveDB(db)
	_, err := db.NewDelete().
		Model((*Score)(nil)).
		Where("round_uuid = ?", roundUUID).
		Where("player_id = ?", playerID).
		Where("hole_number = ?", hole).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to delete score: %w", err)
	}
	return nil
}

// CreateGame inserts a game.
func (r *Impl) CreateGame(ctx context.Context, db bun.IDB, game *Game) error {
	db = r.resolveDB(db)
	now := time.Now().UTC()
	game.CreatedAt = now
	game.UpdatedAt = now
	if _, err := db.NewInsert().Model(game).Exec(ctx); err != nil {
		return fmt.Errorf("failed to create game: %w", err)
	}
	return nil
}

// GetGame retrieves a game of a round.
func (r *Impl) GetGame(ctx context.Context, db bun.IDB, roundUUID, gameUUID uuid.UUID) (*Game, error) {
	db = r.resolveDB(db)
	game := new(Game)
	err := db.NewSelect().
		Model(game).
		Where("uuid = ?", gameUUID).
		Where("round_uuid = ?", roundUUID).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrGameNotFound
		}
		return nil, fmt.Errorf("failed to get game: %w", err)
	}
	return game, nil
}

// ListGames returns a round's games in creation order.
func (r *Impl) ListGames(ctx context.Context, db bun.IDB, roundUUID uuid.UUID) ([]Game, error) {
	db = r.resolveDB(db)
	var games []Game
	err := db.NewSelect().
		Model(&games).
		Where("round_uuid = ?", roundUUID).
		Order("created_at ASC", "uuid ASC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list games: %w", err)
	}
	return games, nil
}

// UpdateGameSettings replaces a game's settings bag.
func (r *Impl) UpdateGameSettings(ctx context.Context, db bun.IDB, gameUUID uuid.UUID, settings sidegamedomain.SettingsBag) error {
	db = r.resolveDB(db)
	game := &Game{UUID: gameUUID, Settings: settings, UpdatedAt: time.Now().UTC()}
	result, err := db.NewUpdate().
		Model(game).
		Column("settings", "updated_at").
		WherePK().
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to update game settings: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return ErrGameNotFound
	}
	return nil
}
