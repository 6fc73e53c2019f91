package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"trip-log-service/internal/adapters/cache"
	"trip-log-service/internal/app"
	"trip-log-service/internal/config"
	"trip-log-service/internal/logging"
)

func newSchemaCmd() *cobra.Command {
	schema := &cobra.Command{
		Use:   "schema",
		Short: "Manage the geocode cache schema",
	}

	var (
		driver string
		dbPath string
		dbURL  string
		seed   string
	)

	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Create the geocode cache table and optionally seed known addresses",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Config{
				CacheDriver: driver,
				DBPath:      dbPath,
				DatabaseURL: dbURL,
			}

			db, gc, err := app.OpenGeocodeCache(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			defer logging.SafeCloseWithLogging(db, nil, "close_geocode_db")

			fmt.Fprintf(cmd.OutOrStdout(), "Schema ready (%s).\n", driver)

			if seed == "" {
				return nil
			}
			n, err := cache.SeedFromJSON(cmd.Context(), gc, seed)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Seeded %d addresses.\n", n)
			return nil
		},
	}

	initCmd.Flags().StringVar(&driver, "driver", config.Get("CACHE_DRIVER", "sqlite"), "Cache driver: sqlite or postgres")
	initCmd.Flags().StringVar(&dbPath, "db-path", config.Get("DB_PATH", "data/app.db"), "SQLite database file")
	initCmd.Flags().StringVar(&dbURL, "database-url", config.Get("DATABASE_URL", ""), "Postgres connection URL")
	initCmd.Flags().StringVar(&seed, "seed", config.Get("SEED_PATH", ""), "JSON file of known addresses to seed")

	schema.AddCommand(initCmd)
	return schema
}
