package cwa

import (
	"context"
	"fmt"
	"net/url"
	"sort"
	"time"

	"github.com/ngmaloney/surf-terminal/internal/models"
)

const seaForecastDataset = "F-A0012-001"

// CWASeaForecastClient implements SeaForecastClient.
type CWASeaForecastClient struct {
	base *BaseClient
	now  func() time.Time
}

// NewSeaForecastClient creates a sea area forecast client on top of base.
func NewSeaForecastClient(base *BaseClient) *CWASeaForecastClient {
	return &CWASeaForecastClient{base: base, now: time.Now}
}

// GetSeaAreaForecast returns the forecast periods for one sea area.
func (c *CWASeaForecastClient) GetSeaAreaForecast(ctx context.Context, location string) (*models.SeaAreaForecast, error) {
	var resp seaForecastResponse
	params := url.Values{"locationName": {location}}
	if err := c.base.getDatastore(ctx, seaForecastDataset, params, &resp); err != nil {
		return nil, err
	}

	for _, loc := range resp.Records.Location {
		if loc.LocationName != location {
			continue
		}
		return &models.SeaAreaForecast{
			Location:  loc.LocationName,
			Periods:   seaPeriods(loc.WeatherElement),
			UpdatedAt: c.now(),
		}, nil
	}

	return nil, fmt.Errorf("sea area %s: %w", location, ErrStationNotFound)
}

func seaPeriods(elements []seaElement) []models.SeaAreaPeriod {
	byStart := map[int64]*models.SeaAreaPeriod{}
	var order []*models.SeaAreaPeriod

	for _, el := range elements {
		for _, slot := range el.Time {
			start, ok1 := parseTime(slot.StartTime)
			end, ok2 := parseTime(slot.EndTime)
			if !ok1 || !ok2 {
				continue
			}
			p, ok := byStart[start.Unix()]
			if !ok {
				p = &models.SeaAreaPeriod{StartTime: start, EndTime: end}
				byStart[start.Unix()] = p
				order = append(order, p)
			}

			name := string(slot.Parameter.ParameterName)
			switch el.ElementName {
			case "Wx":
				p.Weather = name
			case "WindDir":
				p.WindDirection = name
			case "WindSpeed":
				p.WindScale = name
			case "WaveHeight":
				p.WaveHeight = name
			case "WaveType":
				p.WaveType = name
			}
		}
	}

	sort.Slice(order, func(i, j int) bool {
		return order[i].StartTime.Before(order[j].StartTime)
	})
	out := make([]models.SeaAreaPeriod, len(order))
	for i, p := range order {
		out[i] = *p
	}
	return out
}

type seaForecastResponse struct {
	Success string `json:"success"`
	Records struct {
		Location []struct {
			LocationName   string       `json:"locationName"`
			WeatherElement []seaElement `json:"weatherElement"`
		} `json:"location"`
	} `json:"records"`
}

type seaElement struct {
	ElementName string `json:"elementName"`
	Time        []struct {
		StartTime string `json:"startTime"`
		EndTime   string `json:"endTime"`
		Parameter struct {
			ParameterName  text `json:"parameterName"`
			ParameterValue text `json:"parameterValue"`
		} `json:"parameter"`
	} `json:"time"`
}
