package cwa

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestCWASeaForecastClient_GetSeaAreaForecast(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("locationName") != "龜山島" {
			t.Errorf("locationName = %s", r.URL.Query().Get("locationName"))
		}
		serveFixture(t, "cwa_sea_forecast_response.json")(w, r)
	}))
	defer server.Close()

	client := NewSeaForecastClient(newTestBase(t, server.URL))
	fc, err := client.GetSeaAreaForecast(context.Background(), "龜山島")
	if err != nil {
		t.Fatalf("GetSeaAreaForecast() error = %v", err)
	}

	if len(fc.Periods) != 2 {
		t.Fatalf("len(Periods) = %d, want 2", len(fc.Periods))
	}

	day := fc.Periods[0]
	if day.StartTime.Hour() != 6 {
		t.Errorf("first period starts %v, want 06:00", day.StartTime)
	}
	if day.Weather != "晴時多雲" || day.WindDirection != "西南風" || day.WindScale != "3至4" {
		t.Errorf("day period = %+v", day)
	}
	if h, ok := day.MaxWaveHeight(); !ok || h != 1 {
		t.Errorf("MaxWaveHeight = %v, %v, want 1", h, ok)
	}

	night := fc.Periods[1]
	if night.WaveType != "中浪至大浪" {
		t.Errorf("WaveType = %s", night.WaveType)
	}
	if !fc.HasRoughSeas() {
		t.Error("HasRoughSeas() = false, want true for 大浪")
	}
}
