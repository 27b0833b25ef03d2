package testutils

import (
	"context"
	"fmt"
	"log"

	sidegamemigrations "github.com/Black-And-White-Club/golf-sidegames/app/modules/sidegame/infrastructure/repositories/migrations"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/riverqueue/river/riverdriver/riverpgxv5"
	"github.com/riverqueue/river/rivermigrate"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/migrate"
)

// sidegameTables are truncated between tests, children first.
var sidegameTables = []string{"sidegame_scores", "sidegame_games", "sidegame_rounds"}

func runMigrations(ctx context.Context, db *bun.DB, connStr string) error {
	migrator := migrate.NewMigrator(db, sidegamemigrations.Migrations)
	if err := migrator.Init(ctx); err != nil {
		return fmt.Errorf("failed to initialize migration tables: %w", err)
	}
	group, err := migrator.Migrate(ctx)
	if err != nil {
		return fmt.Errorf("failed to run sidegame migrations: %w", err)
	}
	log.Printf("Ran sidegame migrations group #%d", group.ID)

	return runRiverMigrations(ctx, connStr)
}

func runRiverMigrations(ctx context.Context, connStr string) error {
	pool, err := pgxpool.New(ctx, connStr)
	if err != nil {
		return fmt.Errorf("failed to create pgx pool for River migrations: %w", err)
	}
	defer pool.Close()

	migrator, err := rivermigrate.New(riverpgxv5.New(pool), nil)
	if err != nil {
		return fmt.Errorf("failed to create River migrator: %w", err)
	}
	if _, err := migrator.Migrate(ctx, rivermigrate.DirectionUp, &rivermigrate.MigrateOpts{}); err != nil {
		return fmt.Errorf("failed to run River migrations: %w", err)
	}
	return nil
}

// CleanSideGameTables truncates every side-game table and queued job.
func CleanSideGameTables(ctx context.Context, db *bun.DB) error {
	for _, table := range sidegameTables {
		if _, err := db.ExecContext(ctx, fmt.Sprintf("TRUNCATE TABLE %q CASCADE", table)); err != nil {
			return fmt.Errorf("failed to truncate %s: %w", table, err)
		}
	}
	if _, err := db.ExecContext(ctx, "DELETE FROM river_job"); err != nil {
		return fmt.Errorf("failed to clean river jobs: %w", err)
	}
	return nil
}
