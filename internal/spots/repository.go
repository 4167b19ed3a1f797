package spots

import (
	"database/sql"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"

	_ "modernc.org/sqlite"

	"github.com/ngmaloney/surf-terminal/internal/models"
	"github.com/ngmaloney/surf-terminal/internal/zonelookup"
)

// ErrSpotNotFound is returned when no spot matches an id or query.
var ErrSpotNotFound = errors.New("spot not found")

// SpotDistance is a spot with its distance from a query point.
type SpotDistance struct {
	models.Spot
	DistanceKm float64 `json:"distance_km"`
}

var (
	db      *sql.DB
	once    sync.Once
	initErr error

	// GetDB is a function variable to allow mocking in tests
	GetDB = func(dbPath string) (*sql.DB, error) {
		once.Do(func() {
			// Provision database if it doesn't exist
			initErr = ProvisionSpotsDatabase(dbPath, nil, nil)
			if initErr != nil {
				return
			}

			db, initErr = sql.Open("sqlite", dbPath)
			if initErr != nil {
				return
			}
			// Set pragmas for performance
			_, _ = db.Exec("PRAGMA journal_mode=WAL")
			_, _ = db.Exec("PRAGMA synchronous=NORMAL")
		})
		return db, initErr
	}
)

const spotColumns = `id, name, region, latitude, longitude, beach_facing,
	marine_station_id, backup_station_id, tide_station_id,
	weather_dataset_id, weather_location, sea_forecast_location, wave_location_code`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSpot(row rowScanner) (models.Spot, error) {
	var s models.Spot
	var region, backup, wave sql.NullString
	err := row.Scan(&s.ID, &s.Name, &region, &s.Latitude, &s.Longitude, &s.BeachFacing,
		&s.MarineStationID, &backup, &s.TideStationID,
		&s.WeatherDatasetID, &s.WeatherLocation, &s.SeaForecastLocation, &wave)
	s.Region = region.String
	s.BackupStationID = backup.String
	s.WaveLocationCode = wave.String
	return s, err
}

func querySpots(db *sql.DB, query string, args ...any) ([]models.Spot, error) {
	rows, err := db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying spots: %w", err)
	}
	defer rows.Close()

	var out []models.Spot
	for rows.Next() {
		s, err := scanSpot(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning spot: %w", err)
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

// ListSpots returns every spot in catalog order.
func ListSpots(dbPath string) ([]models.Spot, error) {
	db, err := GetDB(dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	return querySpots(db, "SELECT "+spotColumns+" FROM surf_spots ORDER BY position")
}

// GetSpotByID retrieves a single spot.
func GetSpotByID(dbPath, id string) (*models.Spot, error) {
	db, err := GetDB(dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s, err := scanSpot(db.QueryRow("SELECT "+spotColumns+" FROM surf_spots WHERE id = ?", id))
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("%w: %s", ErrSpotNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("querying spot by ID: %w", err)
	}
	return &s, nil
}

// SearchSpots matches the query against spot ids, names and regions.
func SearchSpots(dbPath, query string) ([]models.Spot, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, nil
	}
	db, err := GetDB(dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	pattern := "%" + strings.ToLower(query) + "%"
	return querySpots(db, "SELECT "+spotColumns+` FROM surf_spots
		WHERE lower(id) LIKE ? OR name LIKE ? OR region LIKE ?
		ORDER BY position`, pattern, "%"+query+"%", "%"+query+"%")
}

// FindNearbySpots finds spots within maxKm of the coordinates, nearest first.
func FindNearbySpots(dbPath string, lat, lon, maxKm float64) ([]SpotDistance, error) {
	db, err := GetDB(dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	// Use a bounding box to initially filter spots
	minLat, maxLat, minLon, maxLon := zonelookup.BoundingBox(lat, lon, maxKm)
	candidates, err := querySpots(db, "SELECT "+spotColumns+` FROM surf_spots
		WHERE latitude BETWEEN ? AND ?
		  AND longitude BETWEEN ? AND ?`,
		minLat, maxLat, minLon, maxLon)
	if err != nil {
		return nil, err
	}

	var nearby []SpotDistance
	for _, s := range candidates {
		distance := zonelookup.Distance(lat, lon, s.Latitude, s.Longitude)
		if distance <= maxKm {
			nearby = append(nearby, SpotDistance{Spot: s, DistanceKm: distance})
		}
	}

	if len(nearby) == 0 {
		return nil, fmt.Errorf("%w near %.4f, %.4f within %.1f km", ErrSpotNotFound, lat, lon, maxKm)
	}

	// Sort by distance to find the nearest
	sort.SliceStable(nearby, func(i, j int) bool {
		return nearby[i].DistanceKm < nearby[j].DistanceKm
	})
	return nearby, nil
}

// NearestSpot returns the closest spot within maxKm.
func NearestSpot(dbPath string, lat, lon, maxKm float64) (*SpotDistance, error) {
	nearby, err := FindNearbySpots(dbPath, lat, lon, maxKm)
	if err != nil {
		return nil, err
	}
	return &nearby[0], nil
}

// Ping checks that the spot table is readable.
func Ping(dbPath string) error {
	db, err := GetDB(dbPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	var count int
	if err := db.QueryRow("SELECT COUNT(*) FROM surf_spots").Scan(&count); err != nil {
		return fmt.Errorf("counting spots: %w", err)
	}
	if count == 0 {
		return fmt.Errorf("surf_spots table is empty")
	}
	return nil
}
