package db

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog/log"
)

var Pool *pgxpool.Pool

var (
	newPool  = pgxpool.New
	pingPool = func(ctx context.Context, pool *pgxpool.Pool) error { return pool.Ping(ctx) }
)

// InitPostgres connects the shared Pool. An empty dsn leaves Pool nil and
// the server keeps conversations in memory.
func InitPostgres(ctx context.Context, dsn string) error {
	if dsn == "" {
		log.Info().Msg("DATABASE_URL not set, skipping Postgres connection")
		return nil
	}
	pool, err := newPool(ctx, dsn)
	if err != nil {
		return fmt.Errorf("connect to postgres: %w", err)
	}
	if err := pingPool(ctx, pool); err != nil {
		pool.Close()
		return fmt.Errorf("ping postgres: %w", err)
	}
	Pool = pool
	log.Info().Msg("connected to postgres")
	return nil
}

// Close releases the shared Pool if one was opened.
func Close() {
	if Pool != nil {
		Pool.Close()
		Pool = nil
	}
}
