package database

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
)

// Migrate applies the SQL migrations in dir. goose only speaks
// database/sql, so the pgx pool is bridged through the stdlib adapter;
// the resulting *sql.DB shares the pool's connections.
func (db *PostgresDB) Migrate(ctx context.Context, dir string) error {
	if db.Pool == nil {
		return fmt.Errorf("database pool is not initialized")
	}

	sqlDB := stdlib.OpenDBFromPool(db.Pool)
	defer sqlDB.Close()

	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("set migration dialect: %w", err)
	}

	if err := goose.UpContext(ctx, sqlDB, dir); err != nil {
		return fmt.Errorf("apply migrations: %w", err)
	}

	db.log.Info().Str("dir", dir).Msg("database migrations applied")
	return nil
}
