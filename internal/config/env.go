package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
)

const (
	defaultDirName  = ".pokenest"
	defaultDBName   = "pokenest.db"
	defaultLogName  = "pokenest.log"
	defaultFileName = "pokenest.toml"
	defaultBaseURL  = "https://pokeapi.co/api/v2"
)

// DefaultConfigDir returns ~/.pokenest
func DefaultConfigDir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user home directory: %w", err)
	}
	return filepath.Join(homeDir, defaultDirName), nil
}

// Defaults returns the built-in configuration rooted at configDir
func Defaults(configDir string) *Config {
	cfg := New()
	cfg.configDir = configDir

	cfg.PokeAPI = PokeAPIConfig{
		BaseURL:             defaultBaseURL,
		UserAgent:           "pokenest/1.0",
		MaxIdleConns:        100,
		MaxIdleConnsPerHost: 100,
		IdleConnTimeout:     120 * time.Second,
		Timeout:             30 * time.Second,
		Concurrency:         10,
		ListLimit:           100000,
		RequestsPerMinute:   0,
		BurstLimit:          10,
	}

	cfg.Sync = SyncConfig{
		PageSize:         30,
		ChunkSize:        20,
		ReferenceRetries: 3,
	}

	cfg.Database = DatabaseConfig{
		Path:            filepath.Join(configDir, defaultDBName),
		BusyTimeout:     5000,
		JournalMode:     "WAL",
		SynchronousMode: "NORMAL",
		CacheSize:       -64000, // ~64MB
		ForeignKeys:     true,
		ConnMaxLife:     5 * time.Minute,
		QueryTimeout:    30 * time.Second,
	}

	cfg.Logging = LoggingConfig{
		Level:      "info",
		Format:     "text",
		Output:     filepath.Join(configDir, defaultLogName),
		AddSource:  true,
		TimeFormat: time.RFC3339,
	}

	return cfg
}

// LoadFromEnv loads configuration from the optional pokenest.toml and then
// from environment variables, which take precedence.
// Parameters:
// - configDir: Directory containing config files (or empty for default)
// - configFilePath: Path to .env file (or empty for default)
// - isInitializing: Whether this is being called from the init command
func LoadFromEnv(configDir string, configFilePath string, isInitializing bool) (*Config, error) {
	if configDir == "" {
		dir, err := DefaultConfigDir()
		if err != nil {
			return nil, err
		}
		configDir = dir
	}

	if err := os.MkdirAll(configDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create config directory: %w", err)
	}

	cfg := Defaults(configDir)

	// The toml file is optional; init writes it later
	if err := ApplyFile(cfg, filepath.Join(configDir, defaultFileName)); err != nil && !isInitializing {
		return nil, err
	}

	if configFilePath == "" {
		configFilePath = filepath.Join(configDir, ".env")
	}

	if envFilePath := getEnvString("ENV_FILE_PATH", ""); envFilePath != "" {
		if err := godotenv.Load(envFilePath); err != nil {
			return nil, fmt.Errorf("failed to load env file from %s: %w", envFilePath, err)
		}
	} else if err := godotenv.Load(configFilePath); err != nil {
		// Then try current directory as fallback
		_ = godotenv.Load()
	}

	applyEnv(cfg)

	return cfg, cfg.Validate()
}

func applyEnv(cfg *Config) {
	cfg.PokeAPI = PokeAPIConfig{
		BaseURL:             getEnvString("POKENEST_API_BASE_URL", cfg.PokeAPI.BaseURL),
		UserAgent:           getEnvString("POKENEST_API_USER_AGENT", cfg.PokeAPI.UserAgent),
		MaxIdleConns:        getEnvInt("POKENEST_API_MAX_IDLE_CONNS", cfg.PokeAPI.MaxIdleConns),
		MaxIdleConnsPerHost: getEnvInt("POKENEST_API_MAX_IDLE_CONNS_PER_HOST", cfg.PokeAPI.MaxIdleConnsPerHost),
		IdleConnTimeout:     getEnvDuration("POKENEST_API_IDLE_CONN_TIMEOUT", cfg.PokeAPI.IdleConnTimeout),
		Timeout:             getEnvDuration("POKENEST_API_TIMEOUT", cfg.PokeAPI.Timeout),
		Concurrency:         getEnvInt("POKENEST_API_CONCURRENCY", cfg.PokeAPI.Concurrency),
		ListLimit:           getEnvInt("POKENEST_API_LIST_LIMIT", cfg.PokeAPI.ListLimit),
		RequestsPerMinute:   getEnvInt("POKENEST_API_REQUESTS_PER_MINUTE", cfg.PokeAPI.RequestsPerMinute),
		BurstLimit:          getEnvInt("POKENEST_API_BURST_LIMIT", cfg.PokeAPI.BurstLimit),
	}

	cfg.Sync = SyncConfig{
		PageSize:         getEnvInt("POKENEST_SYNC_PAGE_SIZE", cfg.Sync.PageSize),
		ChunkSize:        getEnvInt("POKENEST_SYNC_CHUNK_SIZE", cfg.Sync.ChunkSize),
		ReferenceRetries: getEnvInt("POKENEST_SYNC_REFERENCE_RETRIES", cfg.Sync.ReferenceRetries),
	}

	cfg.Database = DatabaseConfig{
		Path:            getEnvString("POKENEST_DB_PATH", cfg.Database.Path),
		BusyTimeout:     getEnvInt("POKENEST_DB_BUSY_TIMEOUT", cfg.Database.BusyTimeout),
		JournalMode:     getEnvString("POKENEST_DB_JOURNAL_MODE", cfg.Database.JournalMode),
		SynchronousMode: getEnvString("POKENEST_DB_SYNCHRONOUS_MODE", cfg.Database.SynchronousMode),
		CacheSize:       getEnvInt("POKENEST_DB_CACHE_SIZE", cfg.Database.CacheSize),
		ForeignKeys:     getEnvBool("POKENEST_DB_FOREIGN_KEYS", cfg.Database.ForeignKeys),
		ConnMaxLife:     getEnvDuration("POKENEST_DB_CONN_MAX_LIFE", cfg.Database.ConnMaxLife),
		QueryTimeout:    getEnvDuration("POKENEST_DB_QUERY_TIMEOUT", cfg.Database.QueryTimeout),
	}

	cfg.Logging = LoggingConfig{
		Level:      getEnvString("POKENEST_LOG_LEVEL", cfg.Logging.Level),
		Format:     getEnvString("POKENEST_LOG_FORMAT", cfg.Logging.Format),
		Output:     getEnvString("POKENEST_LOG_OUTPUT", cfg.Logging.Output),
		AddSource:  getEnvBool("POKENEST_LOG_ADD_SOURCE", cfg.Logging.AddSource),
		TimeFormat: getTimeFormat(getEnvString("POKENEST_LOG_TIME_FORMAT", cfg.Logging.TimeFormat)),
	}
}
