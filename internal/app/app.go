// Package app wires configuration into the services shared by the API server
// and the terminal UI.
package app

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/ngmaloney/surf-terminal/internal/config"
	"github.com/ngmaloney/surf-terminal/internal/cwa"
	"github.com/ngmaloney/surf-terminal/internal/database"
	"github.com/ngmaloney/surf-terminal/internal/geocoding"
	"github.com/ngmaloney/surf-terminal/internal/logging"
	"github.com/ngmaloney/surf-terminal/internal/report"
	"github.com/ngmaloney/surf-terminal/internal/spots"
	"github.com/ngmaloney/surf-terminal/internal/zonelookup"
)

// geocodeCacheTTL is how long Nominatim answers are reused.
const geocodeCacheTTL = 30 * 24 * time.Hour

// Stack holds the long-lived services built from a Config.
type Stack struct {
	Spots   *spots.Service
	Reports *report.Service
	Waves   *cwa.WaveForecastCache
	Zones   *zonelookup.Lookup

	logger  *zap.Logger
	closers []func() error
}

// Build provisions nothing; callers run database.Provision first. It opens
// the geocode cache, selects the wave cache store and creates the CWA
// clients.
func Build(cfg *config.Config, logger *zap.Logger) (*Stack, error) {
	logger = logging.OrNop(logger)
	s := &Stack{logger: logger}

	db, err := database.Open(cfg.DBPath)
	if err != nil {
		return nil, err
	}
	s.closers = append(s.closers, db.Close)

	geocoder, err := newGeocoder(db)
	if err != nil {
		_ = s.Close()
		return nil, err
	}

	store, err := newStore(cfg)
	if err != nil {
		_ = s.Close()
		return nil, err
	}
	if rs, ok := store.(*cwa.RedisStore); ok {
		s.closers = append(s.closers, rs.Close)
	}

	base := cwa.NewBaseClient(cfg.CWABaseURL, cfg.CWAAPIKey.Unmask(), cfg.HTTPTimeout, cwa.WithLogger(logger))
	s.Waves = cwa.NewWaveForecastCache(base, store, cfg.WaveCacheFreshness, cfg.WaveCacheMaxAge, logger)
	s.Zones = zonelookup.NewLookup(cfg.DBPath, cfg.NearbyRadiusKm)
	s.Spots = spots.NewService(cfg.DBPath, geocoder, cfg.NearbyRadiusKm)
	s.Reports = report.NewService(report.Clients{
		Buoys:   cwa.NewBuoyClient(base),
		Tides:   cwa.NewTideClient(base),
		Weather: cwa.NewWeatherClient(base),
		Sea:     cwa.NewSeaForecastClient(base),
		Waves:   s.Waves,
	}, logger, report.WithZoneLookup(s.Zones))

	return s, nil
}

func newGeocoder(db *sql.DB) (*geocoding.Geocoder, error) {
	cache, err := geocoding.NewCache(db, geocodeCacheTTL)
	if err != nil {
		return nil, fmt.Errorf("failed to open geocode cache: %w", err)
	}
	return geocoding.NewGeocoder(cache), nil
}

// newStore picks Redis when REDIS_URL is set, else the compressed file store.
func newStore(cfg *config.Config) (cwa.Store, error) {
	if cfg.RedisURL != "" {
		return cwa.NewRedisStoreFromURL(cfg.RedisURL)
	}
	return cwa.NewFileStore(cfg.CacheDir)
}

// SyncWaveZones copies the wave model locations into the zone table so spots
// without a mapped location fall back to the nearest one.
func (s *Stack) SyncWaveZones(ctx context.Context) (int, error) {
	locs, err := s.Waves.Locations(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to list wave locations: %w", err)
	}

	zones := make([]zonelookup.PointZone, 0, len(locs))
	for _, l := range locs {
		zones = append(zones, zonelookup.PointZone{
			Code:      l.Code,
			Name:      l.Name,
			Latitude:  l.Latitude,
			Longitude: l.Longitude,
		})
	}
	n, err := s.Zones.SyncPointZones(zones)
	if err != nil {
		return 0, err
	}
	s.logger.Info("wave zones synced", zap.Int("count", n))
	return n, nil
}

// Close releases the database and cache connections.
func (s *Stack) Close() error {
	var errs []error
	for i := len(s.closers) - 1; i >= 0; i-- {
		if err := s.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	s.closers = nil
	return errors.Join(errs...)
}
