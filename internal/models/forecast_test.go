package models

import (
	"testing"
	"time"
)

func TestSeaAreaPeriod_MaxWaveHeight(t *testing.T) {
	tests := []struct {
		text   string
		want   float64
		wantOK bool
	}{
		{"1.5至2.5公尺", 2.5, true},
		{"1公尺", 1, true},
		{"0.5至1公尺", 1, true},
		{"", 0, false},
	}

	for _, tt := range tests {
		p := SeaAreaPeriod{WaveHeight: tt.text}
		got, ok := p.MaxWaveHeight()
		if got != tt.want || ok != tt.wantOK {
			t.Errorf("MaxWaveHeight(%q) = %v, %v; want %v, %v", tt.text, got, ok, tt.want, tt.wantOK)
		}
	}
}

func TestSeaAreaForecast_HasRoughSeas(t *testing.T) {
	tests := []struct {
		name    string
		periods []SeaAreaPeriod
		want    bool
	}{
		{"calm", []SeaAreaPeriod{{WaveType: "小浪", WaveHeight: "0.5至1公尺"}}, false},
		{"large wave type", []SeaAreaPeriod{{WaveType: "中浪至大浪", WaveHeight: "1.5至2公尺"}}, true},
		{"tall height text", []SeaAreaPeriod{{WaveType: "中浪", WaveHeight: "2至3公尺"}}, true},
		{"no periods", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := SeaAreaForecast{Location: "龍洞", Periods: tt.periods}
			if got := f.HasRoughSeas(); got != tt.want {
				t.Errorf("HasRoughSeas() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestTownshipForecast_Current(t *testing.T) {
	loc := time.FixedZone("CST", 8*3600)
	base := time.Date(2025, 6, 1, 0, 0, 0, 0, loc)
	f := TownshipForecast{Periods: []ForecastPeriod{
		{StartTime: base, EndTime: base.Add(3 * time.Hour), WindDirection: "偏北風"},
		{StartTime: base.Add(3 * time.Hour), EndTime: base.Add(6 * time.Hour), WindDirection: "東北風"},
	}}

	p, ok := f.Current(base.Add(4 * time.Hour))
	if !ok || p.WindDirection != "東北風" {
		t.Errorf("Current() = %+v, %v; want the second period", p, ok)
	}

	p, ok = f.Current(base.Add(-time.Hour))
	if !ok || p.WindDirection != "偏北風" {
		t.Errorf("Current() before the first period should return it, got %+v, %v", p, ok)
	}

	if _, ok := f.Current(base.Add(12 * time.Hour)); ok {
		t.Error("Current() after the last period should report false")
	}
}

func TestBuoyObservation_HasWaves(t *testing.T) {
	h, p, zero := 1.2, 8.0, 0.0

	tests := []struct {
		name string
		obs  *BuoyObservation
		want bool
	}{
		{"complete", &BuoyObservation{WaveHeight: &h, WavePeriod: &p}, true},
		{"missing period", &BuoyObservation{WaveHeight: &h}, false},
		{"zero height", &BuoyObservation{WaveHeight: &zero, WavePeriod: &p}, false},
		{"nil observation", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.obs.HasWaves(); got != tt.want {
				t.Errorf("HasWaves() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSpot_Facing(t *testing.T) {
	s := Spot{ID: "fulong", BeachFacing: 45}
	f := s.Facing()
	if f == nil || *f != 45 {
		t.Fatalf("Facing() = %v, want 45", f)
	}
	*f = 90
	if s.BeachFacing != 45 {
		t.Error("Facing() must return a copy")
	}
	if s.HasWaveForecast() {
		t.Error("HasWaveForecast() should be false without a location code")
	}
}
