// Copyright (c) 2026 Dugout. All rights reserved.

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dugoutlab/dugout/internal/platform/migration"
)

var migrateSteps int

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Manage the database schema",
	Long: `Apply or roll back the SQL migrations under MIGRATION_PATH.

USAGE:

  dugout migrate up          # Apply every pending migration
  dugout migrate down -n 1   # Roll back the most recent migration
  dugout migrate version     # Print the current version and dirty flag`,
}

var migrateUpCmd = &cobra.Command{
	Use:   "up",
	Short: "Apply all pending migrations",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runner().Up()
	},
}

var migrateDownCmd = &cobra.Command{
	Use:   "down",
	Short: "Roll back migrations",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runner().Down(migrateSteps)
	},
}

var migrateVersionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the current schema version",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		version, dirty, err := runner().Version()
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "version=%d dirty=%t\n", version, dirty)
		return nil
	},
}

func init() {
	migrateDownCmd.Flags().IntVarP(&migrateSteps, "steps", "n", 1, "number of migrations to roll back")

	migrateCmd.AddCommand(migrateUpCmd)
	migrateCmd.AddCommand(migrateDownCmd)
	migrateCmd.AddCommand(migrateVersionCmd)
}

func runner() *migration.Runner {
	return migration.NewRunner(cfg.DatabaseURL, cfg.MigrationPath, log)
}
