package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/tildaslashalef/pokenest/internal/app"
	"github.com/tildaslashalef/pokenest/internal/commands"
)

// Version information - populated at build time
var (
	Version    = "dev"
	BuildTime  = "unknown"
	CommitHash = "unknown"
	Author     = "unknown"
	Email      = "unknown"
)

// standalone commands run without the application services
var standalone = map[string]bool{
	"init": true,
}

func main() {
	cliApp := &cli.App{
		Name:  "pokenest",
		Usage: "Local Japanese pokedex backed by PokeAPI",
		Description: "Pokenest keeps a local catalog of pokemon records synchronized with PokeAPI.\n\n" +
			"When run without subcommands, Pokenest lists the cached catalog (default action).\n" +
			"Use 'pokenest init' once before the first sync.",
		Version: fmt.Sprintf("%s (%s)", Version, CommitHash),
		Compiled: func() time.Time {
			t, err := time.Parse(time.RFC3339, BuildTime)
			if err != nil {
				return time.Now()
			}
			return t
		}(),
		Authors: []*cli.Author{
			{
				Name:  Author,
				Email: Email,
			},
		},
		Before: func(c *cli.Context) error {
			if standalone[c.Args().First()] {
				return nil
			}

			application, err := app.New()
			if err != nil {
				return fmt.Errorf("failed to initialize application: %w", err)
			}

			// Store the app instance in the context for later use
			c.App.Metadata = map[string]interface{}{
				"app": application,
			}
			return nil
		},
		After: func(c *cli.Context) error {
			if app, ok := c.App.Metadata["app"].(*app.App); ok {
				return app.Shutdown()
			}
			return nil
		},
		Commands: []*cli.Command{
			commands.InitCommand(),
			commands.SyncCommand(),
			commands.ListCommand(),
			commands.ShowCommand(),
			commands.RefsCommand(),
			commands.MigrateCommand(),
		},
		Flags: commands.ListCommand().Flags,
		Action: func(c *cli.Context) error {
			return commands.ListCommand().Action(c)
		},
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := cliApp.RunContext(ctx, os.Args); err != nil {
		log.Fatal(err)
	}
}
