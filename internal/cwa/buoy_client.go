package cwa

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"go.uber.org/zap"

	"github.com/ngmaloney/surf-terminal/internal/models"
)

const buoyDataset = "O-B0075-001"

// CWABuoyClient implements BuoyClient.
type CWABuoyClient struct {
	base *BaseClient
}

// NewBuoyClient creates a buoy client on top of base.
func NewBuoyClient(base *BaseClient) *CWABuoyClient {
	return &CWABuoyClient{base: base}
}

// GetLatestObservation returns the newest observation time of a station.
func (c *CWABuoyClient) GetLatestObservation(ctx context.Context, stationID string) (*models.BuoyObservation, error) {
	var resp buoyResponse
	params := url.Values{"StationID": {stationID}}
	if err := c.base.getDatastore(ctx, buoyDataset, params, &resp); err != nil {
		return nil, err
	}

	for _, loc := range resp.Records.SeaSurfaceObs.Location {
		if loc.Station.StationID != stationID {
			continue
		}
		obs := latestObservation(loc)
		if obs == nil {
			return nil, fmt.Errorf("no observations for station %s: %w", stationID, ErrStationNotFound)
		}
		return obs, nil
	}

	return nil, fmt.Errorf("buoy %s: %w", stationID, ErrStationNotFound)
}

func latestObservation(loc buoyLocation) *models.BuoyObservation {
	var latest *buoyObsTime
	var latestAt time.Time
	for i := range loc.StationObsTimes.StationObsTime {
		ot := &loc.StationObsTimes.StationObsTime[i]
		t, ok := parseTime(ot.DateTime)
		if !ok {
			continue
		}
		if latest == nil || t.After(latestAt) {
			latest, latestAt = ot, t
		}
	}
	if latest == nil {
		return nil
	}

	we := latest.WeatherElements
	obs := &models.BuoyObservation{
		StationID:      loc.Station.StationID,
		StationName:    string(loc.Station.StationName),
		ObservedAt:     latestAt,
		WaveHeight:     we.WaveHeight.nonNegative(),
		WavePeriod:     we.WavePeriod.nonNegative(),
		WaveDirection:  we.WaveDirection.nonNegative(),
		WindSpeed:      we.PrimaryAnemometer.WindSpeed.nonNegative(),
		WindDirection:  we.PrimaryAnemometer.WindDirection.nonNegative(),
		WindGust:       we.PrimaryAnemometer.MaximumWindSpeed.nonNegative(),
		SeaTemperature: we.SeaTemperature.ptr(),
		AirTemperature: we.Temperature.ptr(),
		TideHeight:     we.TideHeight.ptr(),
	}
	if lvl := string(we.TideLevel); lvl != "None" {
		obs.TideLevel = lvl
	}
	return obs
}

// LatestWithFallback reads the primary station and falls back to the backup
// when the primary fails or reports no waves. When neither has waves the
// primary reading is returned so its wind data is still usable.
func LatestWithFallback(ctx context.Context, client BuoyClient, primary, backup string, logger *zap.Logger) (*models.BuoyObservation, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	obs, err := client.GetLatestObservation(ctx, primary)
	if err == nil && obs.HasWaves() {
		return obs, nil
	}
	if backup == "" || backup == primary {
		if err != nil {
			return nil, err
		}
		return obs, nil
	}

	logger.Info("falling back to backup buoy",
		zap.String("primary", primary),
		zap.String("backup", backup),
		zap.Error(err),
	)

	alt, altErr := client.GetLatestObservation(ctx, backup)
	switch {
	case altErr == nil && alt.HasWaves():
		return alt, nil
	case err == nil:
		return obs, nil
	case altErr == nil:
		return alt, nil
	}
	return nil, fmt.Errorf("primary %s and backup %s both failed: %w", primary, backup, err)
}

// buoyResponse mirrors O-B0075-001. The dataset has been served with both
// "Records" and "records"; JSON field matching is case-insensitive so one
// field covers both.
type buoyResponse struct {
	Success string `json:"success"`
	Records struct {
		SeaSurfaceObs struct {
			Location []buoyLocation `json:"Location"`
		} `json:"SeaSurfaceObs"`
	} `json:"Records"`
}

type buoyLocation struct {
	Station struct {
		StationID   string `json:"StationID"`
		StationName text   `json:"StationName"`
	} `json:"Station"`
	StationObsTimes struct {
		StationObsTime []buoyObsTime `json:"StationObsTime"`
	} `json:"StationObsTimes"`
}

type buoyObsTime struct {
	DateTime        string `json:"DateTime"`
	WeatherElements struct {
		TideHeight        number `json:"TideHeight"`
		TideLevel         text   `json:"TideLevel"`
		WaveHeight        number `json:"WaveHeight"`
		WaveDirection     number `json:"WaveDirection"`
		WavePeriod        number `json:"WavePeriod"`
		SeaTemperature    number `json:"SeaTemperature"`
		Temperature       number `json:"Temperature"`
		PrimaryAnemometer struct {
			WindSpeed        number `json:"WindSpeed"`
			WindDirection    number `json:"WindDirection"`
			MaximumWindSpeed number `json:"MaximumWindSpeed"`
		} `json:"PrimaryAnemometer"`
	} `json:"WeatherElements"`
}
