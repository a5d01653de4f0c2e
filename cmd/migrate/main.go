package main

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"

	"trading-assistant/internal/migrate"
	"trading-assistant/pkg/logging"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var (
	loadEnvFunc = godotenv.Load
	openPool    = func(ctx context.Context, dsn string) (migrate.DB, func(), error) {
		pool, err := pgxpool.New(ctx, dsn)
		if err != nil {
			return nil, nil, err
		}
		return pool, pool.Close, nil
	}
)

func main() {
	_ = loadEnvFunc()
	logging.Setup(os.Getenv("LOG_LEVEL"), "console")

	if err := newRootCmd().Execute(); err != nil {
		log.Fatal().Err(err).Msg("migrate failed")
	}
}

func newRootCmd() *cobra.Command {
	var dsn string

	root := &cobra.Command{
		Use:           "migrate",
		Short:         "Apply or roll back the Postgres schema",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&dsn, "database-url", os.Getenv("DATABASE_URL"), "Postgres DSN (default $DATABASE_URL)")

	// withDB opens the pool, ensures the bookkeeping table and loads the
	// embedded migrations before fn runs.
	withDB := func(cmd *cobra.Command, fn func(ctx context.Context, db migrate.DB, ms []migrate.Migration) error) error {
		if strings.TrimSpace(dsn) == "" {
			return fmt.Errorf("DATABASE_URL is required")
		}
		ctx := cmd.Context()
		if ctx == nil {
			ctx = context.Background()
		}
		db, closeDB, err := openPool(ctx, dsn)
		if err != nil {
			return fmt.Errorf("connect to postgres: %w", err)
		}
		defer closeDB()

		if err := migrate.EnsureTable(ctx, db); err != nil {
			return fmt.Errorf("ensure schema_migrations table: %w", err)
		}
		ms, err := migrate.Load(migrate.FS)
		if err != nil {
			return fmt.Errorf("load migrations: %w", err)
		}
		return fn(ctx, db, ms)
	}

	root.AddCommand(&cobra.Command{
		Use:   "up",
		Short: "Apply every pending migration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withDB(cmd, func(ctx context.Context, db migrate.DB, ms []migrate.Migration) error {
				applied, err := migrate.Up(ctx, db, ms)
				if err != nil {
					return fmt.Errorf("apply migrations up: %w", err)
				}
				log.Info().Int("applied", applied).Msg("migrations up complete")
				return nil
			})
		},
	})

	root.AddCommand(&cobra.Command{
		Use:   "down [steps]",
		Short: "Roll back the newest migrations (default 1)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			steps := 1
			if len(args) == 1 {
				n, err := strconv.Atoi(args[0])
				if err != nil || n <= 0 {
					return fmt.Errorf("invalid down steps: %q", args[0])
				}
				steps = n
			}
			return withDB(cmd, func(ctx context.Context, db migrate.DB, ms []migrate.Migration) error {
				rolledBack, err := migrate.Down(ctx, db, ms, steps)
				if err != nil {
					return fmt.Errorf("apply migrations down: %w", err)
				}
				log.Info().Int("rolled_back", rolledBack).Msg("migrations down complete")
				return nil
			})
		},
	})

	root.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print the current schema version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withDB(cmd, func(ctx context.Context, db migrate.DB, _ []migrate.Migration) error {
				version, name, err := migrate.Current(ctx, db)
				if err != nil {
					return fmt.Errorf("read current version: %w", err)
				}
				if version == 0 {
					fmt.Fprintln(cmd.OutOrStdout(), "no migrations applied")
					return nil
				}
				fmt.Fprintf(cmd.OutOrStdout(), "current version: %d (%s)\n", version, name)
				return nil
			})
		},
	})

	return root
}
