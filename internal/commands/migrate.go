package commands

import (
	"fmt"

	"github.com/tildaslashalef/pokenest/internal/database"
	"github.com/tildaslashalef/pokenest/internal/utils"
	"github.com/urfave/cli/v2"
)

// MigrateCommand returns the CLI command for managing the kv_store and
// sync_runs schema
func MigrateCommand() *cli.Command {
	return &cli.Command{
		Name:   "migrate",
		Usage:  "Manage the catalog database schema",
		Hidden: true,
		Subcommands: []*cli.Command{
			{
				Name:  "up",
				Usage: "Apply all pending migrations",
				Action: func(c *cli.Context) error {
					applied, err := database.RunMigrations()
					if err != nil {
						utils.PrintError(fmt.Sprintf("Failed to apply migrations: %s", err))
						return fmt.Errorf("failed to apply migrations: %w", err)
					}

					if applied > 0 {
						utils.PrintSuccess(fmt.Sprintf("Applied %d migration(s)", applied))
					} else {
						utils.PrintSuccess("Database schema is already up-to-date")
					}
					return printSchemaVersion()
				},
			},
			{
				Name:  "down",
				Usage: "Revert applied migrations",
				Flags: []cli.Flag{
					&cli.IntFlag{
						Name:  "steps",
						Usage: "Number of migrations to revert",
						Value: 1,
					},
				},
				Action: func(c *cli.Context) error {
					steps := c.Int("steps")
					utils.PrintWarning(fmt.Sprintf("Reverting %d migration(s). Cached records may be lost.", steps))

					if err := database.RevertMigrations(steps); err != nil {
						utils.PrintError(fmt.Sprintf("Failed to revert migrations: %s", err))
						return fmt.Errorf("failed to revert migrations: %w", err)
					}

					utils.PrintSuccess("Migration(s) reverted")
					return printSchemaVersion()
				},
			},
			{
				Name:  "status",
				Usage: "Show the applied schema version",
				Action: func(c *cli.Context) error {
					return printSchemaVersion()
				},
			},
		},
	}
}

func printSchemaVersion() error {
	version, dirty, err := database.SchemaVersion()
	if err != nil {
		utils.PrintError(fmt.Sprintf("Failed to read schema version: %s", err))
		return fmt.Errorf("failed to read schema version: %w", err)
	}

	line := schemaVersionLine(version, dirty)
	if dirty {
		utils.PrintWarning(line)
		return nil
	}
	utils.PrintInfo(line)
	return nil
}

// schemaVersionLine describes an applied schema version
func schemaVersionLine(version uint, dirty bool) string {
	switch {
	case version == 0:
		return "Schema version: none (run 'pokenest migrate up')"
	case dirty:
		return fmt.Sprintf("Schema version: %d (dirty, a migration failed part way)", version)
	default:
		return fmt.Sprintf("Schema version: %d", version)
	}
}
