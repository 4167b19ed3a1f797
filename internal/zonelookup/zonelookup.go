// Package zonelookup maps coordinates onto CWA forecast zones stored in SQLite.
package zonelookup

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"sort"
	"sync"

	"github.com/golang/geo/s1"
	"github.com/golang/geo/s2"
	_ "modernc.org/sqlite"
)

// EarthRadiusKm is the mean Earth radius used for all distances.
const EarthRadiusKm = 6371.01

var (
	db      *sql.DB
	once    sync.Once
	initErr error

	// GetDB is a function variable to allow mocking in tests
	GetDB = func(dbPath string) (*sql.DB, error) {
		once.Do(func() {
			db, initErr = sql.Open("sqlite", dbPath)
			if initErr != nil {
				return
			}
			// Set pragmas for performance
			_, _ = db.Exec("PRAGMA journal_mode=WAL")
			_, _ = db.Exec("PRAGMA synchronous=NORMAL")
			_, _ = db.Exec("PRAGMA cache_size=10000")
			initErr = EnsureSchema(db)
		})
		return db, initErr
	}
)

// ZoneInfo represents a forecast zone with its distance from a point
type ZoneInfo struct {
	Code       string  `json:"code"`
	Name       string  `json:"name"`
	Source     string  `json:"source"` // "shapefile" or "wave"
	CenterLat  float64 `json:"center_lat"`
	CenterLon  float64 `json:"center_lon"`
	DistanceKm float64 `json:"distance_km"`
}

// EnsureSchema creates the forecast_zones table if needed.
func EnsureSchema(db *sql.DB) error {
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS forecast_zones (
			code TEXT PRIMARY KEY,
			name TEXT,
			source TEXT NOT NULL,
			geometry TEXT,
			bbox_min_lat REAL NOT NULL,
			bbox_max_lat REAL NOT NULL,
			bbox_min_lon REAL NOT NULL,
			bbox_max_lon REAL NOT NULL,
			center_lat REAL NOT NULL,
			center_lon REAL NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_zones_bbox ON forecast_zones(
			bbox_min_lat, bbox_max_lat, bbox_min_lon, bbox_max_lon
		);
		CREATE INDEX IF NOT EXISTS idx_zones_center ON forecast_zones(center_lat, center_lon);
	`)
	if err != nil {
		return fmt.Errorf("creating forecast_zones table: %w", err)
	}
	return nil
}

// Distance returns the great-circle distance in kilometres.
func Distance(lat1, lon1, lat2, lon2 float64) float64 {
	a := s2.LatLngFromDegrees(lat1, lon1)
	b := s2.LatLngFromDegrees(lat2, lon2)
	return a.Distance(b).Radians() * EarthRadiusKm
}

// BoundingBox returns the lat/lon rectangle covering every point within
// radiusKm of the centre.
func BoundingBox(lat, lon, radiusKm float64) (minLat, maxLat, minLon, maxLon float64) {
	center := s2.PointFromLatLng(s2.LatLngFromDegrees(lat, lon))
	rect := s2.CapFromCenterAngle(center, s1.Angle(radiusKm/EarthRadiusKm)).RectBound()
	return rect.Lo().Lat.Degrees(), rect.Hi().Lat.Degrees(),
		rect.Lo().Lng.Degrees(), rect.Hi().Lng.Degrees()
}

// GetNearbyZones finds forecast zones whose centre is within maxKm.
func GetNearbyZones(dbPath string, lat, lon, maxKm float64) ([]ZoneInfo, error) {
	db, err := GetDB(dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	return getNearbyZonesFromDB(db, lat, lon, maxKm)
}

// getNearbyZonesFromDB finds zones using the provided database connection
func getNearbyZonesFromDB(db *sql.DB, lat, lon, maxKm float64) ([]ZoneInfo, error) {
	minLat, maxLat, minLon, maxLon := BoundingBox(lat, lon, maxKm)

	rows, err := db.Query(`
		SELECT code, name, source, center_lat, center_lon
		FROM forecast_zones
		WHERE center_lat BETWEEN ? AND ?
		  AND center_lon BETWEEN ? AND ?
	`, minLat, maxLat, minLon, maxLon)
	if err != nil {
		return nil, fmt.Errorf("querying zones: %w", err)
	}
	defer rows.Close()

	var zones []ZoneInfo
	for rows.Next() {
		var z ZoneInfo
		var name sql.NullString
		if err := rows.Scan(&z.Code, &name, &z.Source, &z.CenterLat, &z.CenterLon); err != nil {
			continue
		}
		z.Name = name.String
		z.DistanceKm = Distance(lat, lon, z.CenterLat, z.CenterLon)
		if z.DistanceKm <= maxKm {
			zones = append(zones, z)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("reading zones: %w", err)
	}

	sort.Slice(zones, func(i, j int) bool {
		return zones[i].DistanceKm < zones[j].DistanceKm
	})
	return zones, nil
}

// GetZoneByCode retrieves a single zone.
func GetZoneByCode(dbPath, code string) (*ZoneInfo, error) {
	db, err := GetDB(dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	return getZoneByCodeFromDB(db, code)
}

func getZoneByCodeFromDB(db *sql.DB, code string) (*ZoneInfo, error) {
	var z ZoneInfo
	var name sql.NullString
	err := db.QueryRow(
		"SELECT code, name, source, center_lat, center_lon FROM forecast_zones WHERE code = ?",
		code,
	).Scan(&z.Code, &name, &z.Source, &z.CenterLat, &z.CenterLon)

	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("zone code %s not found", code)
	}
	if err != nil {
		return nil, fmt.Errorf("querying zone by code: %w", err)
	}
	z.Name = name.String
	return &z, nil
}

// ZoneForPoint returns the polygon zone containing the point, or the zone with
// the nearest centre within maxKm. It returns nil when nothing is in range.
func ZoneForPoint(dbPath string, lat, lon, maxKm float64) (*ZoneInfo, error) {
	db, err := GetDB(dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	return zoneForPointFromDB(db, lat, lon, maxKm)
}

func zoneForPointFromDB(db *sql.DB, lat, lon, maxKm float64) (*ZoneInfo, error) {
	rows, err := db.Query(`
		SELECT code, name, source, geometry, center_lat, center_lon
		FROM forecast_zones
		WHERE geometry IS NOT NULL
		  AND ? BETWEEN bbox_min_lat AND bbox_max_lat
		  AND ? BETWEEN bbox_min_lon AND bbox_max_lon
	`, lat, lon)
	if err != nil {
		return nil, fmt.Errorf("querying zone polygons: %w", err)
	}

	point := s2.PointFromLatLng(s2.LatLngFromDegrees(lat, lon))
	var hit *ZoneInfo
	for rows.Next() {
		var z ZoneInfo
		var name sql.NullString
		var geometry string
		if err := rows.Scan(&z.Code, &name, &z.Source, &geometry, &z.CenterLat, &z.CenterLon); err != nil {
			continue
		}
		loop, err := loopFromGeometry(geometry)
		if err != nil || !loop.ContainsPoint(point) {
			continue
		}
		z.Name = name.String
		z.DistanceKm = Distance(lat, lon, z.CenterLat, z.CenterLon)
		hit = &z
		break
	}
	rows.Close()
	if hit != nil {
		return hit, nil
	}

	nearby, err := getNearbyZonesFromDB(db, lat, lon, maxKm)
	if err != nil {
		return nil, err
	}
	if len(nearby) == 0 {
		return nil, nil
	}
	return &nearby[0], nil
}

// loopFromGeometry builds an s2 loop from stored [lon, lat] pairs.
func loopFromGeometry(geometry string) (*s2.Loop, error) {
	var coords [][]float64
	if err := json.Unmarshal([]byte(geometry), &coords); err != nil {
		return nil, err
	}
	if n := len(coords); n > 1 && coords[0][0] == coords[n-1][0] && coords[0][1] == coords[n-1][1] {
		coords = coords[:n-1]
	}
	if len(coords) < 3 {
		return nil, fmt.Errorf("polygon has %d vertices", len(coords))
	}

	pts := make([]s2.Point, 0, len(coords))
	for _, c := range coords {
		if len(c) < 2 {
			return nil, fmt.Errorf("bad coordinate %v", c)
		}
		pts = append(pts, s2.PointFromLatLng(s2.LatLngFromDegrees(c[1], c[0])))
	}
	loop := s2.LoopFromPoints(pts)
	// Shapefile rings are clockwise; keep the smaller of the two regions.
	loop.Normalize()
	return loop, nil
}
