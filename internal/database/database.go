// Package database owns the shared SQLite file: its location, how it is
// opened and the one-time provisioning of spots and forecast zones.
package database

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"
	_ "modernc.org/sqlite"

	"github.com/ngmaloney/surf-terminal/internal/logging"
	"github.com/ngmaloney/surf-terminal/internal/spots"
	"github.com/ngmaloney/surf-terminal/internal/zonelookup"
)

// DBPath returns the default path to the shared database
func DBPath() string {
	return filepath.Join("data", "surf-terminal.db")
}

// Open opens the database at dbPath, creating its directory if needed.
func Open(dbPath string) (*sql.DB, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
		"PRAGMA synchronous=NORMAL",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			db.Close()
			return nil, fmt.Errorf("setting %q: %w", p, err)
		}
	}
	return db, nil
}

// ProvisionOptions controls the optional parts of provisioning.
type ProvisionOptions struct {
	// ZonesShapefile is a .shp, .zip or URL of forecast zone polygons.
	ZonesShapefile string
}

// NeedsProvisioning reports whether the spot catalog has not been loaded yet.
func NeedsProvisioning(dbPath string) (bool, error) {
	return spots.NeedsProvisioning(dbPath)
}

// Provision loads the spot catalog, creates the zone table and imports the
// zone shapefile once. Progress goes to progressChan when non-nil.
func Provision(dbPath string, opts ProvisionOptions, progressChan chan<- string, logger *zap.Logger) error {
	logger = logging.OrNop(logger)

	if err := spots.ProvisionSpotsDatabase(dbPath, progressChan, logger); err != nil {
		return fmt.Errorf("provisioning spots: %w", err)
	}

	db, err := Open(dbPath)
	if err != nil {
		return err
	}
	defer db.Close()

	if err := zonelookup.EnsureSchema(db); err != nil {
		return err
	}
	if opts.ZonesShapefile == "" {
		return nil
	}

	var count int
	if err := db.QueryRow("SELECT COUNT(*) FROM forecast_zones WHERE source <> 'wave'").Scan(&count); err != nil {
		return fmt.Errorf("counting forecast zones: %w", err)
	}
	if count > 0 {
		return nil
	}

	if progressChan != nil {
		progressChan <- "Importing forecast zones..."
	}
	n, err := zonelookup.ImportShapefile(db, opts.ZonesShapefile, logger)
	if err != nil {
		return fmt.Errorf("importing zones: %w", err)
	}
	logger.Info("imported forecast zones", zap.Int("count", n), zap.String("source", opts.ZonesShapefile))
	return nil
}
