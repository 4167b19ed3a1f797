package cwa

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ngmaloney/surf-terminal/internal/models"
)

func TestCWABuoyClient_GetLatestObservation(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/v1/rest/datastore/O-B0075-001" {
			t.Errorf("path = %s", r.URL.Path)
		}
		serveFixture(t, "cwa_buoy_response.json")(w, r)
	}))
	defer server.Close()

	client := NewBuoyClient(newTestBase(t, server.URL))
	obs, err := client.GetLatestObservation(context.Background(), "46708A")
	if err != nil {
		t.Fatalf("GetLatestObservation() error = %v", err)
	}

	if obs.StationName != "龜山島浮標" {
		t.Errorf("StationName = %s", obs.StationName)
	}
	if obs.ObservedAt.Hour() != 9 {
		t.Errorf("ObservedAt = %v, want the 09:00 reading", obs.ObservedAt)
	}
	if obs.WaveHeight == nil || *obs.WaveHeight != 1.1 {
		t.Errorf("WaveHeight = %v, want 1.1", obs.WaveHeight)
	}
	if obs.WavePeriod == nil || *obs.WavePeriod != 8.5 {
		t.Errorf("WavePeriod = %v, want 8.5", obs.WavePeriod)
	}
	if obs.WindDirection == nil || *obs.WindDirection != 260 {
		t.Errorf("WindDirection = %v, want 260", obs.WindDirection)
	}
	if obs.AirTemperature != nil {
		t.Errorf("AirTemperature = %v, want nil for -99", *obs.AirTemperature)
	}
	if obs.WindGust != nil {
		t.Error("WindGust should be nil for None")
	}
	if obs.TideLevel != "漲潮" {
		t.Errorf("TideLevel = %s", obs.TideLevel)
	}
}

func TestCWABuoyClient_NegativeTideKept(t *testing.T) {
	server := httptest.NewServer(serveFixture(t, "cwa_buoy_response.json"))
	defer server.Close()

	client := NewBuoyClient(newTestBase(t, server.URL))
	obs, err := client.GetLatestObservation(context.Background(), "C4U02")
	if err != nil {
		t.Fatalf("GetLatestObservation() error = %v", err)
	}
	if obs.HasWaves() {
		t.Error("tide station should report no waves")
	}
	if obs.TideHeight == nil || *obs.TideHeight != -0.31 {
		t.Errorf("TideHeight = %v, want -0.31", obs.TideHeight)
	}
}

func TestCWABuoyClient_UnknownStation(t *testing.T) {
	server := httptest.NewServer(serveFixture(t, "cwa_buoy_response.json"))
	defer server.Close()

	client := NewBuoyClient(newTestBase(t, server.URL))
	_, err := client.GetLatestObservation(context.Background(), "NOPE")
	if !errors.Is(err, ErrStationNotFound) {
		t.Errorf("error = %v, want ErrStationNotFound", err)
	}
}

type stubBuoys map[string]*models.BuoyObservation

func (s stubBuoys) GetLatestObservation(_ context.Context, id string) (*models.BuoyObservation, error) {
	if obs, ok := s[id]; ok {
		return obs, nil
	}
	return nil, ErrStationNotFound
}

func f(v float64) *float64 { return &v }

func TestLatestWithFallback(t *testing.T) {
	withWaves := &models.BuoyObservation{StationID: "B", WaveHeight: f(1.0)}
	noWaves := &models.BuoyObservation{StationID: "A", WindSpeed: f(3)}

	tests := []struct {
		name    string
		stub    stubBuoys
		wantID  string
		wantErr bool
	}{
		{"primary good", stubBuoys{"A": {StationID: "A", WaveHeight: f(0.8)}, "B": withWaves}, "A", false},
		{"primary without waves", stubBuoys{"A": noWaves, "B": withWaves}, "B", false},
		{"primary missing", stubBuoys{"B": withWaves}, "B", false},
		{"neither has waves", stubBuoys{"A": noWaves, "B": {StationID: "B"}}, "A", false},
		{"both missing", stubBuoys{}, "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			obs, err := LatestWithFallback(context.Background(), tt.stub, "A", "B", nil)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("error = %v", err)
			}
			if obs.StationID != tt.wantID {
				t.Errorf("StationID = %s, want %s", obs.StationID, tt.wantID)
			}
		})
	}
}
