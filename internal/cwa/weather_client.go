package cwa

import (
	"context"
	"fmt"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/ngmaloney/surf-terminal/internal/models"
)

// slotLength is the span given to instant (DataTime) readings that do not
// fall inside a StartTime/EndTime period.
const slotLength = 3 * time.Hour

// CWAWeatherClient implements WeatherClient for the F-D0047 township datasets.
type CWAWeatherClient struct {
	base *BaseClient
	now  func() time.Time
}

// NewWeatherClient creates a township forecast client on top of base.
func NewWeatherClient(base *BaseClient) *CWAWeatherClient {
	return &CWAWeatherClient{base: base, now: time.Now}
}

// GetTownshipForecast returns the merged forecast periods of one township.
func (c *CWAWeatherClient) GetTownshipForecast(ctx context.Context, datasetID, location string) (*models.TownshipForecast, error) {
	var resp townshipResponse
	params := url.Values{"LocationName": {location}}
	if err := c.base.getDatastore(ctx, datasetID, params, &resp); err != nil {
		return nil, err
	}

	for _, group := range resp.Records.Locations {
		for _, loc := range group.Location {
			if loc.LocationName != location {
				continue
			}
			return &models.TownshipForecast{
				DatasetID: datasetID,
				Location:  loc.LocationName,
				Periods:   mergeElements(loc.WeatherElement),
				UpdatedAt: c.now(),
			}, nil
		}
	}

	return nil, fmt.Errorf("township %s in %s: %w", location, datasetID, ErrStationNotFound)
}

// mergeElements folds per-element time series into periods. Ranged slots
// (StartTime/EndTime) define periods first; instant readings (DataTime) are
// then placed in the period containing them.
func mergeElements(elements []townshipElement) []models.ForecastPeriod {
	var periods []*models.ForecastPeriod
	byStart := map[int64]*models.ForecastPeriod{}

	periodAt := func(start, end time.Time) *models.ForecastPeriod {
		if p, ok := byStart[start.Unix()]; ok {
			return p
		}
		p := &models.ForecastPeriod{StartTime: start, EndTime: end}
		byStart[start.Unix()] = p
		periods = append(periods, p)
		return p
	}

	for _, el := range elements {
		for _, slot := range el.Time {
			if slot.StartTime == "" {
				continue
			}
			start, ok1 := parseTime(slot.StartTime)
			end, ok2 := parseTime(slot.EndTime)
			if !ok1 || !ok2 {
				continue
			}
			applyValues(periodAt(start, end), el.ElementName, slot.ElementValue)
		}
	}

	for _, el := range elements {
		for _, slot := range el.Time {
			if slot.DataTime == "" {
				continue
			}
			t, ok := parseTime(slot.DataTime)
			if !ok {
				continue
			}
			target := containing(periods, t)
			if target == nil {
				target = periodAt(t, t.Add(slotLength))
			}
			applyValues(target, el.ElementName, slot.ElementValue)
		}
	}

	sort.Slice(periods, func(i, j int) bool {
		return periods[i].StartTime.Before(periods[j].StartTime)
	})
	out := make([]models.ForecastPeriod, len(periods))
	for i, p := range periods {
		out[i] = *p
	}
	return out
}

func containing(periods []*models.ForecastPeriod, t time.Time) *models.ForecastPeriod {
	for _, p := range periods {
		if !t.Before(p.StartTime) && t.Before(p.EndTime) {
			return p
		}
	}
	return nil
}

// legacyKeys maps the short element codes of older datasets, which carry a
// single "value" entry, onto the value keys of the current format.
var legacyKeys = map[string]string{
	"Wx":     "Weather",
	"PoP6h":  "ProbabilityOfPrecipitation",
	"PoP12h": "ProbabilityOfPrecipitation",
	"T":      "Temperature",
	"WS":     "WindSpeed",
	"WD":     "WindDirection",
}

func applyValues(p *models.ForecastPeriod, elementName string, values []map[string]text) {
	for _, v := range values {
		for key, val := range v {
			if key == "value" {
				mapped, ok := legacyKeys[elementName]
				if !ok {
					continue
				}
				key = mapped
			}
			setField(p, key, strings.TrimSpace(string(val)))
		}
	}
}

func setField(p *models.ForecastPeriod, key, val string) {
	if val == "" || val == "-" {
		return
	}
	switch key {
	case "Weather":
		p.Weather = val
	case "ProbabilityOfPrecipitation":
		if n, err := strconv.Atoi(val); err == nil {
			p.PoP = &n
		}
	case "Temperature":
		if f, err := strconv.ParseFloat(val, 64); err == nil {
			p.Temperature = &f
		}
	case "WindSpeed":
		// Values such as ">= 11" appear for the top band.
		val = strings.TrimSpace(strings.TrimLeft(val, "<>= "))
		if f, err := strconv.ParseFloat(val, 64); err == nil {
			p.WindSpeed = &f
		}
	case "WindDirection":
		p.WindDirection = val
	}
}

type townshipResponse struct {
	Success string `json:"success"`
	Records struct {
		Locations []struct {
			LocationsName string `json:"LocationsName"`
			Location      []struct {
				LocationName   string            `json:"LocationName"`
				WeatherElement []townshipElement `json:"WeatherElement"`
			} `json:"Location"`
		} `json:"Locations"`
	} `json:"records"`
}

type townshipElement struct {
	ElementName string         `json:"ElementName"`
	Time        []townshipSlot `json:"Time"`
}

// townshipSlot is either ranged (StartTime/EndTime) or an instant (DataTime).
type townshipSlot struct {
	StartTime    string            `json:"StartTime"`
	EndTime      string            `json:"EndTime"`
	DataTime     string            `json:"DataTime"`
	ElementValue []map[string]text `json:"ElementValue"`
}
