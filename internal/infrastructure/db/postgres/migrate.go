package postgres

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
	"go.uber.org/zap"

	"user-registry-api/internal/infrastructure/db/postgres/migrations"
)

// Migrate runs a goose command (up, down, status, ...) against dsn using the
// embedded migrations.
func Migrate(ctx context.Context, logger *zap.Logger, dsn, command string, args ...string) error {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return fmt.Errorf("open db: %w", err)
	}
	defer db.Close()

	if err = db.PingContext(ctx); err != nil {
		return fmt.Errorf("db ping failed: %w", err)
	}

	goose.SetBaseFS(migrations.FS)
	goose.SetLogger(zap.NewStdLog(logger))
	if err = goose.SetDialect("postgres"); err != nil {
		return err
	}

	if err = goose.RunContext(ctx, command, db, ".", args...); err != nil {
		return fmt.Errorf("goose %s: %w", command, err)
	}

	logger.Info("goose command finished", zap.String("command", command))

	return nil
}
