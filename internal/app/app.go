// Package app provides the application initialization and lifecycle management
package app

import (
	"database/sql"
	"fmt"
	"os"

	"github.com/tildaslashalef/pokenest/internal/catalog"
	"github.com/tildaslashalef/pokenest/internal/config"
	"github.com/tildaslashalef/pokenest/internal/database"
	"github.com/tildaslashalef/pokenest/internal/loggy"
	"github.com/tildaslashalef/pokenest/internal/pokeapi"
	"github.com/tildaslashalef/pokenest/internal/storage"
	"github.com/urfave/cli/v2"
)

// App represents the application instance with its dependencies
type App struct {
	Config     *config.Config
	Client     *pokeapi.Client
	Storage    *storage.Adapter
	Catalog    *catalog.Controller
	References *catalog.References
	Details    *catalog.DetailLoader
	Runs       catalog.RunRepository
}

// New initializes a new application instance with all its dependencies
func New() (*App, error) {
	// Initialize configuration
	cfg, err := initConfig()
	if err != nil {
		return nil, err
	}

	// Initialize logger
	if err := initLogger(cfg); err != nil {
		return nil, err
	}

	loggy.Info("Application initializing",
		"version", os.Getenv("VERSION"),
		"log_level", cfg.Logging.Level,
		"api", cfg.PokeAPI.BaseURL,
	)

	// Initialize database
	if err := database.InitDB(cfg); err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	db, err := database.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database connection: %w", err)
	}

	app := initServices(cfg, db)

	loggy.Info("Application initialized successfully")
	return app, nil
}

// initConfig loads and sets up the application configuration
func initConfig() (*config.Config, error) {
	cfg, err := config.LoadFromEnv("", "", false)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	config.Set(cfg)
	return cfg, nil
}

// initLogger initializes the logging system
func initLogger(cfg *config.Config) error {
	err := loggy.Init(loggy.Config{
		Level:      config.ParseLogLevel(cfg.Logging.Level),
		Format:     cfg.Logging.Format,
		Output:     cfg.Logging.Output,
		AddSource:  cfg.Logging.AddSource,
		TimeFormat: cfg.Logging.TimeFormat,
	})
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	return nil
}

// initServices wires the catalog services on top of the database
func initServices(cfg *config.Config, db *sql.DB) *App {
	logger := loggy.GetGlobalLogger()

	client := pokeapi.NewClient(cfg.PokeAPI, logger)
	adapter := storage.NewAdapter(storage.NewSQLStore(db, logger), logger)
	runs := catalog.NewSQLRunRepository(db, logger)

	controller := catalog.NewController(client, adapter, runs, cfg.Sync, logger)
	references := catalog.NewReferences(client, adapter, cfg.Sync.ReferenceRetries, logger)
	details := catalog.NewDetailLoader(client, controller, references, logger)

	return &App{
		Config:     cfg,
		Client:     client,
		Storage:    adapter,
		Catalog:    controller,
		References: references,
		Details:    details,
		Runs:       runs,
	}
}

// Shutdown gracefully shuts down the application
func (app *App) Shutdown() error {
	loggy.Info("Shutting down application")

	if err := database.CloseDB(); err != nil {
		loggy.Error("Error closing database connection", "error", err)
	}

	return nil
}

// FromContext retrieves the App instance from the CLI context
func FromContext(c *cli.Context) (*App, error) {
	if c.App.Metadata == nil {
		return nil, fmt.Errorf("app metadata not found in context")
	}

	app, ok := c.App.Metadata["app"].(*App)
	if !ok {
		return nil, fmt.Errorf("app instance not found in context")
	}

	return app, nil
}
