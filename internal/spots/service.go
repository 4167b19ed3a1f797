package spots

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/ngmaloney/surf-terminal/internal/geocoding"
	"github.com/ngmaloney/surf-terminal/internal/models"
)

// Geocoder resolves free-text places to coordinates.
type Geocoder interface {
	Geocode(ctx context.Context, query string) (*geocoding.Location, error)
}

// Resolution is the outcome of resolving a user query to a spot.
type Resolution struct {
	Spot       models.Spot         `json:"spot"`
	MatchedBy  string              `json:"matched_by"` // "id", "name" or "geocode"
	Location   *geocoding.Location `json:"location,omitempty"`
	DistanceKm float64             `json:"distance_km,omitempty"`
}

// Service orchestrates spot lookups
type Service struct {
	dbPath   string
	geocoder Geocoder
	radiusKm float64
}

// NewService creates a spot service. geocoder may be nil to disable place
// name lookups.
func NewService(dbPath string, geocoder Geocoder, radiusKm float64) *Service {
	if radiusKm <= 0 {
		radiusKm = 50
	}
	return &Service{dbPath: dbPath, geocoder: geocoder, radiusKm: radiusKm}
}

// List returns every spot.
func (s *Service) List() ([]models.Spot, error) {
	return ListSpots(s.dbPath)
}

// Get returns a spot by id.
func (s *Service) Get(id string) (*models.Spot, error) {
	return GetSpotByID(s.dbPath, id)
}

// Search returns spots whose id, name or region contains the query.
func (s *Service) Search(query string) ([]models.Spot, error) {
	return SearchSpots(s.dbPath, query)
}

// Nearest returns the closest spot to a point within the service radius.
func (s *Service) Nearest(lat, lon float64) (*SpotDistance, error) {
	return NearestSpot(s.dbPath, lat, lon, s.radiusKm)
}

// Ping checks the spot store.
func (s *Service) Ping() error {
	return Ping(s.dbPath)
}

// Resolve maps a query onto a spot: exact id first, then a name match,
// then the spot nearest the geocoded place.
func (s *Service) Resolve(ctx context.Context, query string) (*Resolution, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, fmt.Errorf("query cannot be empty")
	}

	spot, err := GetSpotByID(s.dbPath, strings.ToLower(query))
	if err == nil {
		return &Resolution{Spot: *spot, MatchedBy: "id"}, nil
	}
	if !errors.Is(err, ErrSpotNotFound) {
		return nil, err
	}

	matches, err := SearchSpots(s.dbPath, query)
	if err != nil {
		return nil, err
	}
	if len(matches) > 0 {
		return &Resolution{Spot: matches[0], MatchedBy: "name"}, nil
	}

	if s.geocoder == nil {
		return nil, fmt.Errorf("%w: %s", ErrSpotNotFound, query)
	}

	loc, err := s.geocoder.Geocode(ctx, query)
	if err != nil {
		if errors.Is(err, geocoding.ErrNoResults) {
			return nil, fmt.Errorf("%w: %s", ErrSpotNotFound, query)
		}
		return nil, fmt.Errorf("geocoding location: %w", err)
	}

	nearest, err := NearestSpot(s.dbPath, loc.Latitude, loc.Longitude, s.radiusKm)
	if err != nil {
		return nil, err
	}
	return &Resolution{
		Spot:       nearest.Spot,
		MatchedBy:  "geocode",
		Location:   loc,
		DistanceKm: nearest.DistanceKm,
	}, nil
}
