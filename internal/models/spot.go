package models

// Spot is a surf break with the CWA stations and datasets that describe it.
type Spot struct {
	ID                  string  `json:"id" validate:"required,lowercase"` // e.g. "fulong"
	Name                string  `json:"name" validate:"required"`         // e.g. "福隆"
	Region              string  `json:"region"`                           // e.g. "新北市"
	Latitude            float64 `json:"latitude" validate:"latitude"`
	Longitude           float64 `json:"longitude" validate:"longitude"`
	BeachFacing         float64 `json:"beach_facing" validate:"gte=0,lt=360"`                                     // bearing the beach looks toward the sea
	MarineStationID     string  `json:"marine_station_id" validate:"required"`                                    // O-B0075-001 buoy, e.g. "46694A"
	BackupStationID     string  `json:"backup_station_id,omitempty" validate:"omitempty,nefield=MarineStationID"` // used when the primary buoy has no waves
	TideStationID       string  `json:"tide_station_id" validate:"required"`                                      // F-A0021-001 LocationId
	WeatherDatasetID    string  `json:"weather_dataset_id" validate:"required,startswith=F-D0047-"`               // F-D0047-xxx
	WeatherLocation     string  `json:"weather_location" validate:"required"`                                     // township name inside the dataset
	SeaForecastLocation string  `json:"sea_forecast_location" validate:"required"`                                // F-A0012-001 location name
	WaveLocationCode    string  `json:"wave_location_code,omitempty"`                                             // M-B0078-001 LocationCode, empty if none
}

// Facing returns the beach facing as a pointer, the form the assessment
// engine accepts.
func (s *Spot) Facing() *float64 {
	f := s.BeachFacing
	return &f
}

// HasWaveForecast reports whether the spot maps to a wave model grid point.
func (s *Spot) HasWaveForecast() bool {
	return s.WaveLocationCode != ""
}
