package geocoding

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	_ "modernc.org/sqlite"
)

// errNotCached is returned by Cache.Get on a miss.
var errNotCached = errors.New("not cached")

// Cache stores geocoding results in SQLite so repeated searches do not hit
// Nominatim.
type Cache struct {
	db  *sql.DB
	ttl time.Duration
	now func() time.Time
}

// NewCache creates the geocode_cache table if needed.
func NewCache(db *sql.DB, ttl time.Duration) (*Cache, error) {
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS geocode_cache (
			query TEXT PRIMARY KEY,
			name TEXT,
			latitude REAL NOT NULL,
			longitude REAL NOT NULL,
			cached_at DATETIME NOT NULL
		);
	`)
	if err != nil {
		return nil, fmt.Errorf("creating geocode_cache table: %w", err)
	}
	return &Cache{db: db, ttl: ttl, now: time.Now}, nil
}

func normalize(query string) string {
	return strings.ToLower(strings.Join(strings.Fields(query), " "))
}

// Get returns a cached location younger than the TTL.
func (c *Cache) Get(ctx context.Context, query string) (*Location, error) {
	var loc Location
	var name sql.NullString
	var cachedAt time.Time

	err := c.db.QueryRowContext(ctx,
		"SELECT name, latitude, longitude, cached_at FROM geocode_cache WHERE query = ?",
		normalize(query),
	).Scan(&name, &loc.Latitude, &loc.Longitude, &cachedAt)
	if err == sql.ErrNoRows {
		return nil, errNotCached
	}
	if err != nil {
		return nil, fmt.Errorf("querying geocode cache: %w", err)
	}
	if c.ttl > 0 && c.now().Sub(cachedAt) > c.ttl {
		return nil, errNotCached
	}
	loc.Name = name.String
	return &loc, nil
}

// Put stores a location.
func (c *Cache) Put(ctx context.Context, query string, loc *Location) error {
	_, err := c.db.ExecContext(ctx, `
		INSERT INTO geocode_cache (query, name, latitude, longitude, cached_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(query) DO UPDATE SET
			name = excluded.name,
			latitude = excluded.latitude,
			longitude = excluded.longitude,
			cached_at = excluded.cached_at
	`, normalize(query), loc.Name, loc.Latitude, loc.Longitude, c.now().UTC())
	if err != nil {
		return fmt.Errorf("saving geocode cache: %w", err)
	}
	return nil
}
