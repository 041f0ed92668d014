// Package seed loads demo reference data: catalog, flights with inventory and users.
package seed

import (
	"context"
	_ "embed"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

//go:embed seed.sql
var seedSQL string

// Load is idempotent; rows that already exist are left alone.
func Load(ctx context.Context, pool *pgxpool.Pool, log *zap.Logger) error {
	err := pgx.BeginFunc(ctx, pool, func(tx pgx.Tx) error {
		_, err := tx.Exec(ctx, seedSQL)
		return err
	})
	if err != nil {
		return fmt.Errorf("load seed data: %w", err)
	}

	var flights, users int
	if err := pool.QueryRow(ctx, `SELECT (SELECT count(*) FROM flights), (SELECT count(*) FROM users)`).Scan(&flights, &users); err != nil {
		return fmt.Errorf("count seed data: %w", err)
	}
	log.Info("seed data loaded", zap.Int("flights", flights), zap.Int("users", users))
	return nil
}
