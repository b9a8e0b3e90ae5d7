package main

import (
	"database/sql"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nitesh01487/natours/internal/config"
	"github.com/nitesh01487/natours/internal/logger"
	"github.com/nitesh01487/natours/internal/store"
	"github.com/nitesh01487/natours/migrations"
)

func newMigrateCmd(flags *config.FlagValues) *cobra.Command {
	migrateCmd := &cobra.Command{
		Use:   "migrate",
		Short: "Run database migrations",
	}

	migrateCmd.AddCommand(
		migrationCmd(flags, "up", "Apply all up migrations", migrations.Migrate),
		migrationCmd(flags, "down", "Roll back the latest migration", migrations.Rollback),
		migrationCmd(flags, "status", "Print the state of every migration", migrations.Status),
	)

	return migrateCmd
}

func migrationCmd(flags *config.FlagValues, use, short string, run func(*sql.DB) error) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.GetMigrationConfig(flags.Config())
			if err != nil {
				return fmt.Errorf("error getting configs: %w", err)
			}

			log := logger.NewLogger("natours-migrate")

			db, err := store.NewConnectPostgres(cmd.Context(), cfg.Storage.DB, log)
			if err != nil {
				return err
			}
			defer db.Close()

			if err = run(db.DB); err != nil {
				log.Err(err).Str("command", use).Msg("migration failed")
				return err
			}

			log.Info().Str("command", use).Msg("migration finished")
			return nil
		},
	}
}
