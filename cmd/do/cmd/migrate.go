package cmd

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/skillbloom/skillbloom/internal/config"
	"github.com/skillbloom/skillbloom/internal/db"
	"github.com/spf13/cobra"
)

func MigrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Run progress store migrations (sqlite and pgx drivers)",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "up",
		Short: "Apply all pending migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			return migrate(cmd, db.Migrate)
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "down",
		Short: "Roll back the latest migration",
		RunE: func(cmd *cobra.Command, args []string) error {
			return migrate(cmd, db.MigrateDown)
		},
	})

	return cmd
}

func migrate(cmd *cobra.Command, run func(ctx context.Context, db *sql.DB, driver string) error) error {
	cfg := config.Load()
	if cfg.StoreDriver != "sqlite" && cfg.StoreDriver != "pgx" {
		return fmt.Errorf("STORE_DRIVER=%s has no migrations", cfg.StoreDriver)
	}

	database, err := db.Open(cmd.Context(), cfg.StoreDriver, cfg.DBConnection)
	if err != nil {
		return err
	}
	defer db.Close(database)

	return run(cmd.Context(), database.DB, cfg.StoreDriver)
}
