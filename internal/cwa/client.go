package cwa

import (
	"context"
	"errors"
	"time"

	"github.com/ngmaloney/surf-terminal/internal/models"
)

// ErrStationNotFound is returned when a dataset has no record for the
// requested station or location.
var ErrStationNotFound = errors.New("station not found")

// BuoyClient fetches O-B0075-001 sea surface observations.
type BuoyClient interface {
	// GetLatestObservation returns the most recent reading of a station.
	GetLatestObservation(ctx context.Context, stationID string) (*models.BuoyObservation, error)
}

// TideClient fetches F-A0021-001 tide forecasts.
type TideClient interface {
	// GetTidePredictions returns high and low tides between start and end.
	GetTidePredictions(ctx context.Context, stationID string, start, end time.Time) (*models.TideData, error)
}

// WeatherClient fetches F-D0047 township forecasts.
type WeatherClient interface {
	GetTownshipForecast(ctx context.Context, datasetID, location string) (*models.TownshipForecast, error)
}

// SeaForecastClient fetches F-A0012-001 sea area forecasts.
type SeaForecastClient interface {
	GetSeaAreaForecast(ctx context.Context, location string) (*models.SeaAreaForecast, error)
}

// WaveForecastSource serves M-B0078-001 wave model output.
type WaveForecastSource interface {
	// NextForecasts returns up to count future entries for a location code.
	NextForecasts(ctx context.Context, locationCode string, count int) ([]models.WaveForecastEntry, error)
	// Locations lists every forecast location with its coordinates.
	Locations(ctx context.Context) ([]WaveLocation, error)
	// IssueTime is the model run of the data served, empty before the first load.
	IssueTime() string
}
