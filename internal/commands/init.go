package commands

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/urfave/cli/v2"

	"github.com/tildaslashalef/pokenest/internal/config"
	"github.com/tildaslashalef/pokenest/internal/database"
	"github.com/tildaslashalef/pokenest/internal/utils"
)

// InitCommand returns the CLI command for initializing Pokenest
func InitCommand() *cli.Command {
	return &cli.Command{
		Name:  "init",
		Usage: "Initialize or update the Pokenest environment",
		Description: "Sets up the configuration directory and the database with the record cache " +
			"and sync history tables. Run it once before the first sync, and again after " +
			"upgrading to apply new migrations.",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "backup",
				Usage: "Back up and replace existing configuration files",
			},
		},
		Action: func(c *cli.Context) error {
			utils.PrintHeading("Initializing Pokenest")

			configDir, err := config.DefaultConfigDir()
			if err != nil {
				utils.PrintError(err.Error())
				return err
			}
			utils.PrintInfo("Configuration directory: " + color.YellowString("%s", configDir))

			utils.PrintInfo("Extracting default configuration files")
			if err := config.SetupConfigDirectory(configDir, c.Bool("backup")); err != nil {
				utils.PrintError(fmt.Sprintf("Failed to set up config directory: %s", err))
				return fmt.Errorf("failed to set up config directory: %w", err)
			}

			cfg, err := config.LoadFromEnv(configDir, "", true)
			if err != nil {
				utils.PrintError(fmt.Sprintf("Failed to load configuration: %s", err))
				return fmt.Errorf("failed to load configuration: %w", err)
			}

			utils.PrintInfo("Initializing database...")
			if err := database.InitDB(cfg); err != nil {
				utils.PrintError(fmt.Sprintf("Failed to initialize database: %s", err))
				return fmt.Errorf("failed to initialize database: %w", err)
			}
			defer database.CloseDB()

			utils.PrintInfo("Applying database migrations...")
			applied, err := database.RunMigrations()
			if err != nil {
				utils.PrintError(fmt.Sprintf("Failed to apply migrations: %s", err))
				return fmt.Errorf("failed to apply migrations: %w", err)
			}

			utils.PrintSuccess("Pokenest initialized successfully!")
			if applied > 0 {
				utils.PrintSuccess(fmt.Sprintf("Applied %d new migration(s)", applied))
			} else {
				utils.PrintInfo("Database schema is already up-to-date")
			}

			utils.PrintInfo("Configuration file: " + color.YellowString("%s", cfg.ConfigFile()))
			utils.PrintInfo("Database location: " + color.YellowString("%s", cfg.Database.Path))
			utils.PrintInfo("Log file location: " + color.YellowString("%s", cfg.Logging.Output))
			fmt.Println("")
			utils.PrintInfo("Run " + color.CyanString("pokenest sync") + " to fetch the catalog.")
			return nil
		},
	}
}
