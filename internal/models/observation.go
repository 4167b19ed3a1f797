package models

import "time"

// BuoyObservation is the latest reading of an O-B0075-001 sea surface station.
// Pointer fields are nil when the station did not report the element.
type BuoyObservation struct {
	StationID      string    `json:"station_id"`
	StationName    string    `json:"station_name"`
	ObservedAt     time.Time `json:"observed_at"`
	WaveHeight     *float64  `json:"wave_height,omitempty"`    // metres
	WavePeriod     *float64  `json:"wave_period,omitempty"`    // seconds
	WaveDirection  *float64  `json:"wave_direction,omitempty"` // degrees
	WindSpeed      *float64  `json:"wind_speed,omitempty"`     // m/s
	WindDirection  *float64  `json:"wind_direction,omitempty"` // degrees the wind blows from
	WindGust       *float64  `json:"wind_gust,omitempty"`      // m/s
	SeaTemperature *float64  `json:"sea_temperature,omitempty"`
	AirTemperature *float64  `json:"air_temperature,omitempty"`
	TideHeight     *float64  `json:"tide_height,omitempty"` // metres
	TideLevel      string    `json:"tide_level,omitempty"`  // e.g. "漲潮"
}

// HasWaves reports whether both wave height and period are present and positive.
func (o *BuoyObservation) HasWaves() bool {
	return o != nil && o.WaveHeight != nil && o.WavePeriod != nil &&
		*o.WaveHeight > 0 && *o.WavePeriod > 0
}

// HasWind reports whether wind speed and direction are both present.
func (o *BuoyObservation) HasWind() bool {
	return o != nil && o.WindSpeed != nil && o.WindDirection != nil
}
