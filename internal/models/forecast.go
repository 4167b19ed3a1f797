package models

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

// ForecastPeriod is one time slot of an F-D0047 township forecast.
type ForecastPeriod struct {
	StartTime     time.Time `json:"start_time"`
	EndTime       time.Time `json:"end_time"`
	Weather       string    `json:"weather"`       // e.g. "多雲時晴"
	PoP           *int      `json:"pop,omitempty"` // chance of rain, percent
	Temperature   *float64  `json:"temperature,omitempty"`
	WindSpeed     *float64  `json:"wind_speed,omitempty"` // m/s
	WindDirection string    `json:"wind_direction"`       // e.g. "偏北風"
}

// TownshipForecast is the F-D0047 forecast for one township.
type TownshipForecast struct {
	DatasetID string           `json:"dataset_id"`
	Location  string           `json:"location"`
	Periods   []ForecastPeriod `json:"periods"` // ordered by StartTime
	UpdatedAt time.Time        `json:"updated_at"`
}

// Current returns the period covering t, or the first future period.
func (f *TownshipForecast) Current(t time.Time) (ForecastPeriod, bool) {
	for _, p := range f.Periods {
		if !t.Before(p.StartTime) && t.Before(p.EndTime) {
			return p, true
		}
	}
	for _, p := range f.Periods {
		if p.StartTime.After(t) {
			return p, true
		}
	}
	return ForecastPeriod{}, false
}

// SeaAreaPeriod is one time slot of an F-A0012-001 sea area forecast.
type SeaAreaPeriod struct {
	StartTime     time.Time `json:"start_time"`
	EndTime       time.Time `json:"end_time"`
	Weather       string    `json:"weather"`
	WindDirection string    `json:"wind_direction"` // e.g. "東北風"
	WindScale     string    `json:"wind_scale"`     // Beaufort text, e.g. "6至7"
	WaveHeight    string    `json:"wave_height"`    // e.g. "1.5至2.5公尺"
	WaveType      string    `json:"wave_type"`      // e.g. "中浪至大浪"
}

// SeaAreaForecast is the F-A0012-001 forecast for one sea area.
type SeaAreaForecast struct {
	Location  string          `json:"location"`
	Periods   []SeaAreaPeriod `json:"periods"`
	UpdatedAt time.Time       `json:"updated_at"`
}

var numberPattern = regexp.MustCompile(`\d+(\.\d+)?`)

// MaxWaveHeight returns the largest number in the wave height text, in metres.
func (p *SeaAreaPeriod) MaxWaveHeight() (float64, bool) {
	var best float64
	found := false
	for _, m := range numberPattern.FindAllString(p.WaveHeight, -1) {
		v, err := strconv.ParseFloat(m, 64)
		if err != nil {
			continue
		}
		if !found || v > best {
			best, found = v, true
		}
	}
	return best, found
}

var roughWaveTypes = []string{"大浪", "巨浪", "狂浪", "狂濤"}

// HasRoughSeas reports whether any period forecasts large waves.
func (f *SeaAreaForecast) HasRoughSeas() bool {
	for _, p := range f.Periods {
		for _, w := range roughWaveTypes {
			if strings.Contains(p.WaveType, w) {
				return true
			}
		}
		if h, ok := p.MaxWaveHeight(); ok && h >= 2.5 {
			return true
		}
	}
	return false
}

// WaveForecastEntry is one time step of the M-B0078-001 wave model at a
// forecast location.
type WaveForecastEntry struct {
	LocationCode     string    `json:"location_code"`
	LocationName     string    `json:"location_name"`
	Latitude         float64   `json:"latitude"`
	Longitude        float64   `json:"longitude"`
	DateTime         time.Time `json:"date_time"`
	WaveHeight       *float64  `json:"wave_height,omitempty"`    // significant wave height, m
	WaveDirection    *float64  `json:"wave_direction,omitempty"` // degrees
	WavePeriod       *float64  `json:"wave_period,omitempty"`    // s
	CurrentDirection *float64  `json:"current_direction,omitempty"`
	CurrentSpeed     *float64  `json:"current_speed,omitempty"` // m/s
}
