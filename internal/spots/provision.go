package spots

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"go.uber.org/zap"
	_ "modernc.org/sqlite"

	"github.com/ngmaloney/surf-terminal/internal/models"
)

var provisionMu sync.Mutex

// NeedsProvisioning checks if the surf_spots table needs to be provisioned
func NeedsProvisioning(dbPath string) (bool, error) {
	// If file doesn't exist, we need to provision
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		return true, nil
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return false, fmt.Errorf("opening database: %w", err)
	}
	defer db.Close()

	var count int
	err = db.QueryRow("SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name='surf_spots'").Scan(&count)
	if err != nil {
		return false, fmt.Errorf("checking for surf_spots table: %w", err)
	}

	return count == 0, nil
}

// ProvisionSpotsDatabase loads the built-in catalog into the SQLite database.
// Progress messages go to progressChan when it is non-nil, else to logger.
func ProvisionSpotsDatabase(dbPath string, progressChan chan<- string, logger *zap.Logger) error {
	provisionMu.Lock()
	defer provisionMu.Unlock()

	needs, err := NeedsProvisioning(dbPath)
	if err != nil {
		return err
	}
	if !needs {
		return nil
	}

	if logger == nil {
		logger = zap.NewNop()
	}
	sendProgress := func(msg string) {
		if progressChan != nil {
			progressChan <- msg
		} else {
			logger.Info(msg)
		}
	}

	sendProgress("Surf spots table not found, provisioning...")

	if err = os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return fmt.Errorf("creating data directory: %w", err)
	}

	spots, err := Catalog()
	if err != nil {
		return err
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return fmt.Errorf("opening database for building: %w", err)
	}
	defer db.Close()

	sendProgress("Building surf spots database...")
	if err = buildSpotsDatabase(db, spots, progressChan); err != nil {
		return fmt.Errorf("building database: %w", err)
	}

	sendProgress(fmt.Sprintf("Successfully provisioned %d surf spots at %s", len(spots), dbPath))
	return nil
}

// buildSpotsDatabase creates the surf_spots table and inserts the spots
func buildSpotsDatabase(db *sql.DB, spots []models.Spot, progressChan chan<- string) error {
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS surf_spots (
			id TEXT PRIMARY KEY,
			position INTEGER NOT NULL,
			name TEXT NOT NULL,
			region TEXT,
			latitude REAL NOT NULL,
			longitude REAL NOT NULL,
			beach_facing REAL NOT NULL,
			marine_station_id TEXT NOT NULL,
			backup_station_id TEXT,
			tide_station_id TEXT NOT NULL,
			weather_dataset_id TEXT NOT NULL,
			weather_location TEXT NOT NULL,
			sea_forecast_location TEXT NOT NULL,
			wave_location_code TEXT
		);
		CREATE INDEX IF NOT EXISTS idx_surf_spots_coords ON surf_spots(latitude, longitude);
	`)
	if err != nil {
		return fmt.Errorf("creating surf_spots table: %w", err)
	}

	tx, err := db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback() // Rollback on error

	stmt, err := tx.Prepare(`
		INSERT OR IGNORE INTO surf_spots (
			id, position, name, region, latitude, longitude, beach_facing,
			marine_station_id, backup_station_id, tide_station_id,
			weather_dataset_id, weather_location, sea_forecast_location, wave_location_code
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	count := 0
	for i, s := range spots {
		if _, err = stmt.Exec(s.ID, i, s.Name, s.Region, s.Latitude, s.Longitude, s.BeachFacing,
			s.MarineStationID, s.BackupStationID, s.TideStationID,
			s.WeatherDatasetID, s.WeatherLocation, s.SeaForecastLocation, s.WaveLocationCode); err != nil {
			return fmt.Errorf("inserting spot %s: %w", s.ID, err)
		}
		count++
		if count%10 == 0 && progressChan != nil {
			progressChan <- fmt.Sprintf("Inserted %d surf spots...", count)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}

	if progressChan != nil {
		progressChan <- fmt.Sprintf("Successfully inserted %d surf spots", count)
	}
	return nil
}
