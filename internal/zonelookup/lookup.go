package zonelookup

import (
	"fmt"
)

// Lookup binds the zone queries to one database and search radius.
type Lookup struct {
	dbPath string
	maxKm  float64
}

// NewLookup creates a Lookup. maxKm bounds the nearest-centre fallback.
func NewLookup(dbPath string, maxKm float64) *Lookup {
	if maxKm <= 0 {
		maxKm = 50
	}
	return &Lookup{dbPath: dbPath, maxKm: maxKm}
}

// ZoneForPoint returns the zone containing or nearest the point, or nil.
func (l *Lookup) ZoneForPoint(lat, lon float64) (*ZoneInfo, error) {
	return ZoneForPoint(l.dbPath, lat, lon, l.maxKm)
}

// NearestWaveZone returns the closest wave model point, or nil when none is
// within range.
func (l *Lookup) NearestWaveZone(lat, lon float64) (*ZoneInfo, error) {
	zones, err := GetNearbyZones(l.dbPath, lat, lon, l.maxKm)
	if err != nil {
		return nil, err
	}
	for i := range zones {
		if zones[i].Source == "wave" {
			return &zones[i], nil
		}
	}
	return nil, nil
}

// SyncPointZones upserts wave model points into the zone table.
func (l *Lookup) SyncPointZones(zones []PointZone) (int, error) {
	db, err := GetDB(l.dbPath)
	if err != nil {
		return 0, fmt.Errorf("opening database: %w", err)
	}
	return UpsertPointZones(db, zones)
}

// ImportShapefile loads polygon zones into the lookup's database.
func (l *Lookup) ImportShapefile(source string) (int, error) {
	db, err := GetDB(l.dbPath)
	if err != nil {
		return 0, fmt.Errorf("opening database: %w", err)
	}
	return ImportShapefile(db, source, nil)
}
