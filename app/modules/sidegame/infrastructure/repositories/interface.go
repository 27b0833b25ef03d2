package sidegamedb

import (
	"context"

	sidegamedomain "github.com/Black-And-White-Club/golf-sidegames/app/modules/sidegame/domain"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Repository defines the contract for side-game persistence. Every method
// accepts an optional bun.IDB so callers can run it inside a transaction.
type Repository interface {
	// CreateRound inserts a new round.
	CreateRound(ctx context.Context, db bun.IDB, round *Round) error

	// GetRound retrieves a round by UUID.
	GetRound(ctx context.Context, db bun.IDB, roundUUID uuid.UUID) (*Round, error)

	// GetRoundForUpdate retrieves a round and locks its row until the
	// surrounding transaction ends.
	GetRoundForUpdate(ctx context.Context, db bun.IDB, roundUUID uuid.UUID) (*Round, error)

	// UpdateRoundStatus changes a round's lifecycle status.
	UpdateRoundStatus(ctx context.Context, db bun.IDB, roundUUID uuid.UUID, status sidegamedomain.RoundStatus) error

	// ListScores returns every entered score of a round.
	ListScores(ctx context.Context, db bun.IDB, roundUUID uuid.UUID) ([]Score, error)

	// UpsertScore records strokes for a player on a hole.
	UpsertScore(ctx context.Context, db bun.IDB, score *Score) error

	// DeleteScore clears a player's hole score. Clearing an absent score is not an error.
	DeleteScore(ctx context.Context, db bun.IDB, roundUUID uuid.UUID, playerID sidegamedomain.PlayerID, hole int) error

	// CreateGame inserts a game.
	CreateGame(ctx context.Context, db bun.IDB, game *Game) error

	// GetGame retrieves a game of a round.
	GetGame(ctx context.Context, db bun.IDB, roundUUID, gameUUID uuid.UUID) (*Game, error)

	// ListGames returns a round's games in creation order.
	ListGames(ctx context.Context, db bun.IDB, roundUUID uuid.UUID) ([]Game, error)

	// UpdateGameSettings replaces a game's settings bag.
	UpdateGameSettings(ctx context.Context, db bun.IDB, gameUUID uuid.UUID, settings sidegamedomain.SettingsBag) error
}
