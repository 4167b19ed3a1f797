package cwa

import (
	"context"
	"fmt"
	"net/url"
	"sort"
	"time"

	"github.com/ngmaloney/surf-terminal/internal/models"
)

const tideDataset = "F-A0021-001"

// CWATideClient implements TideClient using the F-A0021-001 tide forecast.
type CWATideClient struct {
	base *BaseClient
	now  func() time.Time
}

// NewTideClient creates a tide client on top of base.
func NewTideClient(base *BaseClient) *CWATideClient {
	return &CWATideClient{base: base, now: time.Now}
}

// GetTidePredictions retrieves high and low tides in [start, end).
func (c *CWATideClient) GetTidePredictions(ctx context.Context, stationID string, start, end time.Time) (*models.TideData, error) {
	params := url.Values{"LocationId": {stationID}}
	if !start.IsZero() {
		params.Set("timeFrom", start.In(cst).Format("2006-01-02T15:04:05"))
	}
	if !end.IsZero() {
		params.Set("timeTo", end.In(cst).Format("2006-01-02T15:04:05"))
	}

	var resp tideResponse
	if err := c.base.getDatastore(ctx, tideDataset, params, &resp); err != nil {
		return nil, err
	}

	for _, f := range resp.Records.TideForecasts {
		if f.Location.LocationID != stationID {
			continue
		}
		return c.convert(f, start, end), nil
	}

	return nil, fmt.Errorf("tide station %s: %w", stationID, ErrStationNotFound)
}

func (c *CWATideClient) convert(f tideForecast, start, end time.Time) *models.TideData {
	data := &models.TideData{
		StationID:   f.Location.LocationID,
		StationName: f.Location.LocationName,
		UpdatedAt:   c.now(),
	}

	for _, day := range f.Location.TimePeriods.Daily {
		for _, ev := range day.Time {
			t, ok := parseTime(ev.DateTime)
			if !ok {
				continue // Skip invalid times
			}
			if (!start.IsZero() && t.Before(start)) || (!end.IsZero() && !t.Before(end)) {
				continue
			}
			tideType, ok := models.ParseTideType(ev.Tide)
			if !ok {
				continue
			}
			height := ev.TideHeights.AboveLocalMSL
			if !height.valid {
				height = ev.TideHeights.AboveTWVD
			}
			if !height.valid {
				continue
			}
			data.Events = append(data.Events, models.TideEvent{
				Time:   t,
				Type:   tideType,
				Height: height.value / 100, // cm to m
			})
		}
	}

	sort.Slice(data.Events, func(i, j int) bool {
		return data.Events[i].Time.Before(data.Events[j].Time)
	})
	return data
}

type tideResponse struct {
	Success string `json:"success"`
	Records struct {
		TideForecasts []tideForecast `json:"TideForecasts"`
	} `json:"records"`
}

type tideForecast struct {
	Location struct {
		LocationID   string `json:"LocationId"`
		LocationName string `json:"LocationName"`
		TimePeriods  struct {
			Daily []struct {
				Date      string `json:"Date"`
				TideRange string `json:"TideRange"`
				Time      []struct {
					DateTime    string `json:"DateTime"`
					Tide        string `json:"Tide"`
					TideHeights struct {
						AboveTWVD       number `json:"AboveTWVD"`
						AboveLocalMSL   number `json:"AboveLocalMSL"`
						AboveChartDatum number `json:"AboveChartDatum"`
					} `json:"TideHeights"`
				} `json:"Time"`
			} `json:"Daily"`
		} `json:"TimePeriods"`
	} `json:"Location"`
}
