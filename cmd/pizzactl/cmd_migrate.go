package main

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "github.com/lib/pq"
	"github.com/spf13/cobra"

	"github.com/pizza-delivery/api/internal/config"
)

var (
	migrationsPath string
	downAll        bool
)

// pizzactl migrate
var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply or roll back database migrations",
}

// pizzactl migrate up
var migrateUpCmd = &cobra.Command{
	Use:   "up",
	Short: "Apply all pending migrations",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withMigrator(func(m *migrate.Migrate) error {
			fmt.Println("Running migrations…")
			return m.Up()
		})
	},
}

// pizzactl migrate down
var migrateDownCmd = &cobra.Command{
	Use:   "down",
	Short: "Roll back the last migration (or all with --all)",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withMigrator(func(m *migrate.Migrate) error {
			if downAll {
				fmt.Println("Rolling back all migrations…")
				return m.Down()
			}
			fmt.Println("Rolling back last migration…")
			return m.Steps(-1)
		})
	},
}

func init() {
	migrateCmd.PersistentFlags().StringVar(&migrationsPath, "path", "file://migrations", "migration source URL")
	migrateDownCmd.Flags().BoolVar(&downAll, "all", false, "roll back every migration")
}

// withMigrator opens a database/sql connection for golang-migrate, runs fn and
// reports the resulting schema version.
func withMigrator(fn func(m *migrate.Migrate) error) error {
	cfg := config.Load()

	db, err := sql.Open("postgres", cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("open db for migrations: %w", err)
	}
	defer db.Close()

	driver, err := postgres.WithInstance(db, &postgres.Config{})
	if err != nil {
		return fmt.Errorf("create migrate driver: %w", err)
	}

	m, err := migrate.NewWithDatabaseInstance(migrationsPath, "postgres", driver)
	if err != nil {
		return fmt.Errorf("create migrate instance: %w", err)
	}

	if err := fn(m); err != nil {
		if errors.Is(err, migrate.ErrNoChange) {
			fmt.Println("Nothing to migrate")
			return nil
		}
		return err
	}

	version, dirty, err := m.Version()
	switch {
	case errors.Is(err, migrate.ErrNilVersion):
		fmt.Println("Schema is empty")
	case err != nil:
		return fmt.Errorf("read schema version: %w", err)
	default:
		fmt.Printf("Schema at version %d (dirty=%t)\n", version, dirty)
	}
	return nil
}
