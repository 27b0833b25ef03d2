package sidegamedb

import (
	"time"

	sidegamedomain "github.com/Black-And-White-Club/golf-sidegames/app/modules/sidegame/domain"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Round is a persisted 18-hole outing. Scores live in their own table.
type Round struct {
	bun.BaseModel `bun:"table:sidegame_rounds,alias:r"`
	UUID          uuid.UUID                  `bun:"uuid,pk,type:uuid"`
	CourseName    string                     `bun:"course_name,notnull"`
	Status        sidegamedomain.RoundStatus `bun:"status,notnull"`
	TeeTime       *time.Time                 `bun:"tee_time,nullzero"`
	Holes         []sidegamedomain.HoleInfo  `bun:"holes,type:jsonb"`
	Players       []sidegamedomain.Player    `bun:"players,type:jsonb"`
	CreatedAt     time.Time                  `bun:",nullzero,notnull,default:current_timestamp"`
	UpdatedAt     time.Time                  `bun:",nullzero,notnull,default:current_timestamp"`
}

// Score is one entered hole score. Cleared scores are deleted, never stored
// as null.
type Score struct {
	bun.BaseModel `bun:"table:sidegame_scores,alias:s"`
	RoundUUID     uuid.UUID               `bun:"round_uuid,pk,type:uuid"`
	PlayerID      sidegamedomain.PlayerID `bun:"player_id,pk"`
	HoleNumber    int                     `bun:"hole_number,pk"`
	Strokes       int                     `bun:"strokes,notnull"`
	UpdatedAt     time.Time               `bun:",nullzero,notnull,default:current_timestamp"`
}

// Game is a side game attached to a round. Settings holds the format keys of
// the settings bag; point value and handicap live in their own columns.
type Game struct {
	bun.BaseModel `bun:"table:sidegame_games,alias:g"`
	UUID          uuid.UUID                  `bun:"uuid,pk,type:uuid"`
	RoundUUID     uuid.UUID                  `bun:"round_uuid,notnull,type:uuid"`
	Format        sidegamedomain.Format      `bun:"format,notnull"`
	Name          string                     `bun:"name,notnull"`
	PlayerIDs     []sidegamedomain.PlayerID  `bun:"player_ids,type:jsonb"`
	Teams         []sidegamedomain.Team      `bun:"teams,type:jsonb"`
	Settings      sidegamedomain.SettingsBag `bun:"settings,type:jsonb"`
	PointValue    *float64                   `bun:"point_value"`
	Handicapped   bool                       `bun:"handicapped,notnull"`
	CreatedAt     time.Time                  `bun:",nullzero,notnull,default:current_timestamp"`
	UpdatedAt     time.Time                  `bun:",nullzero,notnull,default:current_timestamp"`
}
