package database

import (
	"context"
	"fmt"

	"github.com/pressly/goose/v3"
	"github.com/roamstay/travel-booking-backend/internal/database/migrations"
)

// RunMigrations applies the embedded goose migrations against the
// connected database.
func RunMigrations(ctx context.Context, db DB) error {
	pg, ok := db.(*PostgresDB)
	if !ok {
		return fmt.Errorf("migrations require a postgres connection")
	}

	goose.SetBaseFS(migrations.Migrations)
	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("failed to set migration dialect: %w", err)
	}

	if err := goose.UpContext(ctx, pg.DB.DB, "."); err != nil {
		return fmt.Errorf("failed to apply migrations: %w", err)
	}

	return nil
}
