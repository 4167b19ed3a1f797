// Package report gathers CWA data for a surf spot and runs the assessment.
package report

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/ngmaloney/surf-terminal/internal/cwa"
	"github.com/ngmaloney/surf-terminal/internal/logging"
	"github.com/ngmaloney/surf-terminal/internal/models"
	"github.com/ngmaloney/surf-terminal/internal/surf"
	"github.com/ngmaloney/surf-terminal/internal/zonelookup"
)

// Source names used as keys in SpotReport.Sources and SpotReport.Errors.
const (
	SourceBuoy        = "buoy"
	SourceTide        = "tide"
	SourceWeather     = "weather"
	SourceSeaForecast = "sea_forecast"
	SourceWave        = "wave_forecast"
)

// Origins of the current conditions.
const (
	OriginBuoy     = "buoy"
	OriginForecast = "forecast"
)

var (
	errUnavailable    = errors.New("source not configured")
	errNoWaveLocation = errors.New("no wave forecast location for spot")
)

// roughSeasConcern is added when the sea-area forecast calls for big waves.
const roughSeasConcern = "海面預報有大浪"

// Taiwan does not observe daylight saving, so a fixed zone is exact.
var taipei = time.FixedZone("CST", 8*60*60)

// ZoneLookup resolves a wave model point for spots without a mapping.
type ZoneLookup interface {
	NearestWaveZone(lat, lon float64) (*zonelookup.ZoneInfo, error)
}

// Conditions are the scalars fed into the assessment.
type Conditions struct {
	WaveHeight     *float64  `json:"wave_height,omitempty"`
	WavePeriod     *float64  `json:"wave_period,omitempty"`
	WaveDirection  *float64  `json:"wave_direction,omitempty"`
	WaveSource     string    `json:"wave_source,omitempty"`
	WindSpeedKmh   *float64  `json:"wind_speed_kmh,omitempty"`
	WindGustKmh    *float64  `json:"wind_gust_kmh,omitempty"`
	WindDirection  *float64  `json:"wind_direction,omitempty"`
	WindCompass    string    `json:"wind_compass,omitempty"`
	WindSource     string    `json:"wind_source,omitempty"`
	SeaTemperature *float64  `json:"sea_temperature,omitempty"`
	AirTemperature *float64  `json:"air_temperature,omitempty"`
	ObservedAt     time.Time `json:"observed_at,omitzero"`
	StationID      string    `json:"station_id,omitempty"`
}

// SpotReport is everything known about one spot at GeneratedAt.
type SpotReport struct {
	Spot         models.Spot                `json:"spot"`
	GeneratedAt  time.Time                  `json:"generated_at"`
	Conditions   Conditions                 `json:"conditions"`
	Assessment   surf.Assessment            `json:"assessment"`
	Buoy         *models.BuoyObservation    `json:"buoy,omitempty"`
	Tides        []models.TideEvent         `json:"tides,omitempty"`
	NextTide     *models.TideEvent          `json:"next_tide,omitempty"`
	Weather      *models.ForecastPeriod     `json:"weather,omitempty"`
	SeaForecast  *models.SeaAreaForecast    `json:"sea_forecast,omitempty"`
	WaveForecast []models.WaveForecastEntry `json:"wave_forecast,omitempty"`
	WaveLocation string                     `json:"wave_location,omitempty"`
	WaveIssued   string                     `json:"wave_issue_time,omitempty"`
	Sources      map[string]bool            `json:"sources"`
	Errors       map[string]string          `json:"errors,omitempty"`
}

// Service builds spot reports from the CWA clients.
type Service struct {
	buoys   cwa.BuoyClient
	tides   cwa.TideClient
	weather cwa.WeatherClient
	sea     cwa.SeaForecastClient
	waves   cwa.WaveForecastSource
	zones   ZoneLookup
	logger  *zap.Logger
	now     func() time.Time

	// concurrency bounds BuildReports.
	concurrency int
}

// Clients groups the upstream sources a Service reads.
type Clients struct {
	Buoys   cwa.BuoyClient
	Tides   cwa.TideClient
	Weather cwa.WeatherClient
	Sea     cwa.SeaForecastClient
	Waves   cwa.WaveForecastSource
}

// Option configures a Service.
type Option func(*Service)

// WithZoneLookup enables the wave location fallback for unmapped spots.
func WithZoneLookup(z ZoneLookup) Option {
	return func(s *Service) { s.zones = z }
}

// WithClock overrides the time source.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// WithConcurrency sets how many spots BuildReports fetches at once.
func WithConcurrency(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.concurrency = n
		}
	}
}

// NewService creates a Service. Nil clients are treated as unavailable
// sources.
func NewService(c Clients, logger *zap.Logger, opts ...Option) *Service {
	s := &Service{
		buoys:       c.Buoys,
		tides:       c.Tides,
		weather:     c.Weather,
		sea:         c.Sea,
		waves:       c.Waves,
		logger:      logging.OrNop(logger),
		now:         time.Now,
		concurrency: 4,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// BuildSpotReport fetches every source for the spot concurrently. A failing
// source is recorded in Errors and never fails the report.
func (s *Service) BuildSpotReport(ctx context.Context, spot models.Spot) (*SpotReport, error) {
	now := s.now().In(taipei)
	r := &SpotReport{
		Spot:        spot,
		GeneratedAt: now,
		Sources:     make(map[string]bool),
	}

	var mu sync.Mutex
	record := func(source string, err error) {
		mu.Lock()
		defer mu.Unlock()
		if err == nil {
			r.Sources[source] = true
			return
		}
		r.Sources[source] = false
		if r.Errors == nil {
			r.Errors = make(map[string]string)
		}
		r.Errors[source] = err.Error()
		s.logger.Warn("report source failed",
			zap.String("spot", spot.ID),
			zap.String("source", source),
			zap.Error(err),
		)
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		if s.buoys == nil {
			record(SourceBuoy, errUnavailable)
			return nil
		}
		obs, err := cwa.LatestWithFallback(gctx, s.buoys, spot.MarineStationID, spot.BackupStationID, s.logger)
		if err == nil {
			r.Buoy = obs
		}
		record(SourceBuoy, err)
		return nil
	})

	g.Go(func() error {
		if s.tides == nil {
			record(SourceTide, errUnavailable)
			return nil
		}
		start := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, taipei)
		data, err := s.tides.GetTidePredictions(gctx, spot.TideStationID, start, start.Add(48*time.Hour))
		if err == nil {
			r.Tides = data.GetEventsForDay(now)
			if next, ok := data.NextEvent(now); ok {
				r.NextTide = &next
			}
		}
		record(SourceTide, err)
		return nil
	})

	g.Go(func() error {
		if s.weather == nil {
			record(SourceWeather, errUnavailable)
			return nil
		}
		f, err := s.weather.GetTownshipForecast(gctx, spot.WeatherDatasetID, spot.WeatherLocation)
		if err == nil {
			if p, ok := f.Current(now); ok {
				r.Weather = &p
			}
		}
		record(SourceWeather, err)
		return nil
	})

	g.Go(func() error {
		if s.sea == nil {
			record(SourceSeaForecast, errUnavailable)
			return nil
		}
		f, err := s.sea.GetSeaAreaForecast(gctx, spot.SeaForecastLocation)
		if err == nil {
			r.SeaForecast = f
		}
		record(SourceSeaForecast, err)
		return nil
	})

	g.Go(func() error {
		if s.waves == nil {
			record(SourceWave, errUnavailable)
			return nil
		}
		code, err := s.waveLocation(spot)
		if err != nil {
			record(SourceWave, err)
			return nil
		}
		entries, err := s.waves.NextForecasts(gctx, code, cwa.DefaultForecastCount)
		if err == nil {
			r.WaveLocation = code
			r.WaveForecast = entries
			r.WaveIssued = s.waves.IssueTime()
		}
		record(SourceWave, err)
		return nil
	})

	// Source errors are recorded, never returned.
	_ = g.Wait()
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.Conditions = currentConditions(r.Buoy, r.Weather, r.WaveForecast)
	r.Assessment = surf.Evaluate(assessmentInput(r.Conditions, spot, r.SeaForecast))
	return r, nil
}

// BuildReports builds a report per spot with bounded concurrency, keeping the
// input order. Spots whose report cannot be built are left nil.
func (s *Service) BuildReports(ctx context.Context, spots []models.Spot) ([]*SpotReport, error) {
	reports := make([]*SpotReport, len(spots))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.concurrency)
	for i, spot := range spots {
		g.Go(func() error {
			r, err := s.BuildSpotReport(gctx, spot)
			if err != nil {
				return fmt.Errorf("building report for %s: %w", spot.ID, err)
			}
			reports[i] = r
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return reports, nil
}

// waveLocation returns the spot's model point, falling back to the nearest
// wave zone.
func (s *Service) waveLocation(spot models.Spot) (string, error) {
	if spot.HasWaveForecast() {
		return spot.WaveLocationCode, nil
	}
	if s.zones == nil {
		return "", errNoWaveLocation
	}
	zone, err := s.zones.NearestWaveZone(spot.Latitude, spot.Longitude)
	if err != nil {
		return "", fmt.Errorf("looking up wave zone: %w", err)
	}
	if zone == nil {
		return "", errNoWaveLocation
	}
	return zone.Code, nil
}

// currentConditions picks the wave from the buoy, else the first forecast
// entry, and the wind from the buoy, else the township forecast.
func currentConditions(buoy *models.BuoyObservation, weather *models.ForecastPeriod, waves []models.WaveForecastEntry) Conditions {
	var c Conditions

	if buoy != nil {
		c.StationID = buoy.StationID
		c.ObservedAt = buoy.ObservedAt
		c.SeaTemperature = buoy.SeaTemperature
		c.AirTemperature = buoy.AirTemperature
	}

	switch {
	case buoy.HasWaves():
		c.WaveHeight = buoy.WaveHeight
		c.WavePeriod = buoy.WavePeriod
		c.WaveDirection = buoy.WaveDirection
		c.WaveSource = OriginBuoy
	default:
		for _, e := range waves {
			if e.WaveHeight != nil && e.WavePeriod != nil {
				c.WaveHeight = e.WaveHeight
				c.WavePeriod = e.WavePeriod
				c.WaveDirection = e.WaveDirection
				c.WaveSource = OriginForecast
				break
			}
		}
	}

	switch {
	case buoy.HasWind():
		kmh := surf.MsToKmh(*buoy.WindSpeed)
		dir := surf.NormalizeAngle(*buoy.WindDirection)
		c.WindSpeedKmh = &kmh
		c.WindDirection = &dir
		c.WindCompass = surf.CompassLabel(dir)
		c.WindSource = OriginBuoy
		if buoy.WindGust != nil {
			gust := surf.MsToKmh(*buoy.WindGust)
			c.WindGustKmh = &gust
		}
	case weather != nil && weather.WindSpeed != nil:
		kmh := surf.MsToKmh(*weather.WindSpeed)
		c.WindSpeedKmh = &kmh
		c.WindCompass = weather.WindDirection
		c.WindSource = OriginForecast
		if c.AirTemperature == nil {
			c.AirTemperature = weather.Temperature
		}
	}

	return c
}

// assessmentInput maps conditions onto the core input. Rough seas in the
// sea-area forecast raise safety to at least a warning.
func assessmentInput(c Conditions, spot models.Spot, sea *models.SeaAreaForecast) surf.Input {
	in := surf.Input{BeachFacing: spot.Facing()}
	if c.WaveHeight != nil {
		in.WaveHeight = *c.WaveHeight
	}
	if c.WavePeriod != nil {
		in.WavePeriod = *c.WavePeriod
	}
	if c.WindSpeedKmh != nil {
		in.WindSpeedKmh = *c.WindSpeedKmh
	}
	switch {
	case c.WindDirection != nil:
		in.WindDirectionDegrees = c.WindDirection
	default:
		in.WindDirectionText = c.WindCompass
	}

	if sea == nil || !sea.HasRoughSeas() {
		return in
	}

	derived := surf.Evaluate(in)
	level := derived.Safety.Level
	if level == surf.SafetySafe {
		level = surf.SafetyWarning
	}
	in.SafetyLevel = level
	in.Concerns = append(append([]string{}, derived.Safety.Concerns...), roughSeasConcern)
	return in
}
