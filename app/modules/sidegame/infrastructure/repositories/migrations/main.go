package sidegamemigrations

import "github.com/uptrace/bun/migrate"

// Migrations holds the side-game schema migrations.
var Migrations = migrate.NewMigrations()
