package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	toml "github.com/pelletier/go-toml/v2"
)

// fileConfig mirrors Config for pokenest.toml. Pointers distinguish unset
// keys from zero values.
type fileConfig struct {
	API struct {
		BaseURL             *string `toml:"base_url"`
		UserAgent           *string `toml:"user_agent"`
		Timeout             *string `toml:"timeout"`
		Concurrency         *int    `toml:"concurrency"`
		ListLimit           *int    `toml:"list_limit"`
		RequestsPerMinute   *int    `toml:"requests_per_minute"`
		BurstLimit          *int    `toml:"burst_limit"`
		MaxIdleConns        *int    `toml:"max_idle_conns"`
		MaxIdleConnsPerHost *int    `toml:"max_idle_conns_per_host"`
		IdleConnTimeout     *string `toml:"idle_conn_timeout"`
	} `toml:"api"`
	Sync struct {
		PageSize         *int `toml:"page_size"`
		ChunkSize        *int `toml:"chunk_size"`
		ReferenceRetries *int `toml:"reference_retries"`
	} `toml:"sync"`
	Database struct {
		Path *string `toml:"path"`
	} `toml:"database"`
	Logging struct {
		Level  *string `toml:"level"`
		Format *string `toml:"format"`
		Output *string `toml:"output"`
	} `toml:"logging"`
}

// ApplyFile overlays the settings in a pokenest.toml file onto cfg.
// A missing file is not an error.
func ApplyFile(cfg *Config, path string) error {
	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("open config: %w", err)
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return fmt.Errorf("read config: %w", err)
	}

	var raw fileConfig
	if err := toml.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("parse config: %w", err)
	}

	api := raw.API
	setString(&cfg.PokeAPI.BaseURL, api.BaseURL)
	setString(&cfg.PokeAPI.UserAgent, api.UserAgent)
	setInt(&cfg.PokeAPI.Concurrency, api.Concurrency)
	setInt(&cfg.PokeAPI.ListLimit, api.ListLimit)
	setInt(&cfg.PokeAPI.RequestsPerMinute, api.RequestsPerMinute)
	setInt(&cfg.PokeAPI.BurstLimit, api.BurstLimit)
	setInt(&cfg.PokeAPI.MaxIdleConns, api.MaxIdleConns)
	setInt(&cfg.PokeAPI.MaxIdleConnsPerHost, api.MaxIdleConnsPerHost)
	if err := setDuration(&cfg.PokeAPI.Timeout, api.Timeout); err != nil {
		return fmt.Errorf("parse config: api.timeout: %w", err)
	}
	if err := setDuration(&cfg.PokeAPI.IdleConnTimeout, api.IdleConnTimeout); err != nil {
		return fmt.Errorf("parse config: api.idle_conn_timeout: %w", err)
	}

	setInt(&cfg.Sync.PageSize, raw.Sync.PageSize)
	setInt(&cfg.Sync.ChunkSize, raw.Sync.ChunkSize)
	setInt(&cfg.Sync.ReferenceRetries, raw.Sync.ReferenceRetries)

	setString(&cfg.Database.Path, raw.Database.Path)

	setString(&cfg.Logging.Level, raw.Logging.Level)
	setString(&cfg.Logging.Format, raw.Logging.Format)
	setString(&cfg.Logging.Output, raw.Logging.Output)

	return nil
}

func setString(dst *string, v *string) {
	if v != nil && strings.TrimSpace(*v) != "" {
		*dst = strings.TrimSpace(*v)
	}
}

func setInt(dst *int, v *int) {
	if v != nil {
		*dst = *v
	}
}

func setDuration(dst *time.Duration, v *string) error {
	if v == nil || strings.TrimSpace(*v) == "" {
		return nil
	}
	d, err := time.ParseDuration(strings.TrimSpace(*v))
	if err != nil {
		return err
	}
	*dst = d
	return nil
}
