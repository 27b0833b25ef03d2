package sidegamemigrations

import (
	"context"
	"fmt"

	"github.com/uptrace/bun"
)

func init() {
	Migrations.MustRegister(func(ctx context.Context, db *bun.DB) error {
		fmt.Println("Creating side game tables...")

		return db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
			if _, err := tx.ExecContext(ctx, `
				CREATE TABLE IF NOT EXISTS sidegame_rounds (
					uuid UUID PRIMARY KEY,
					course_name VARCHAR(200) NOT NULL,
					status VARCHAR(20) NOT NULL DEFAULT 'active',
					tee_time TIMESTAMPTZ,
					holes JSONB DEFAULT '[]'::jsonb,
					players JSONB DEFAULT '[]'::jsonb,
					created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
					updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
				);
			`); err != nil {
				return fmt.Errorf("failed to create sidegame_rounds table: %w", err)
			}

			if _, err := tx.ExecContext(ctx, `
				CREATE TABLE IF NOT EXISTS sidegame_scores (
					round_uuid UUID NOT NULL REFERENCES sidegame_rounds(uuid) ON DELETE CASCADE,
					player_id VARCHAR(100) NOT NULL,
					hole_number SMALLINT NOT NULL CHECK (hole_number BETWEEN 1 AND 18),
					strokes INTEGER NOT NULL,
					updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
					PRIMARY KEY (round_uuid, player_id, hole_number)
				);
			`); err != nil {
				return fmt.Errorf("failed to create sidegame_scores table: %w", err)
			}

			if _, err := tx.ExecContext(ctx, `
				CREATE TABLE IF NOT EXISTS sidegame_games (
					uuid UUID PRIMARY KEY,
					round_uuid UUID NOT NULL REFERENCES sidegame_rounds(uuid) ON DELETE CASCADE,
					format VARCHAR(30) NOT NULL,
					name VARCHAR(200) NOT NULL DEFAULT '',
					player_ids JSONB DEFAULT '[]'::jsonb,
					teams JSONB DEFAULT '[]'::jsonb,
					settings JSONB NOT NULL DEFAULT '{}'::jsonb,
					point_value DOUBLE PRECISION,
					handicapped BOOLEAN NOT NULL DEFAULT FALSE,
					created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
					updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
				);
				CREATE INDEX IF NOT EXISTS idx_sidegame_games_round ON sidegame_games(round_uuid);
			`); err != nil {
				return fmt.Errorf("failed to create sidegame_games table: %w", err)
			}

			return nil
		})
	}, func(ctx context.Context, db *bun.DB) error {
		fmt.Println("Dropping side game tables...")

		return db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
			if _, err := tx.ExecContext(ctx, `
				DROP TABLE IF EXISTS sidegame_games;
				DROP TABLE IF EXISTS sidegame_scores;
				DROP TABLE IF EXISTS sidegame_rounds;
			`); err != nil {
				return fmt.Errorf("failed to drop side game tables: %w", err)
			}
			return nil
		})
	})
}
