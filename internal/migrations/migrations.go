// Package migrations embeds the catalog schema: the kv_store table that caches
// the normalized pokemon list and reference data, and the sync_runs table that
// records each sync's history.
package migrations

import (
	"embed"
	"fmt"
	"io/fs"

	"github.com/golang-migrate/migrate/v4/source"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/tildaslashalef/pokenest/internal/loggy"
)

//go:embed sql
var migrationsFS embed.FS

// GetSource opens the embedded kv_store and sync_runs migrations as a
// golang-migrate source
func GetSource() (source.Driver, error) {
	migrationFS, err := fs.Sub(migrationsFS, "sql")
	if err != nil {
		return nil, fmt.Errorf("failed to access embedded migrations: %w", err)
	}

	src, err := iofs.New(migrationFS, ".")
	if err != nil {
		loggy.Error("Failed to create migration source", "error", err)
		return nil, fmt.Errorf("failed to create migration source: %w", err)
	}

	return src, nil
}
