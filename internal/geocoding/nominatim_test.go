package geocoding

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	_ "modernc.org/sqlite"

	"github.com/ngmaloney/surf-terminal/internal/apperr"
)

func newTestGeocoder(url string, cache *Cache) *Geocoder {
	g := NewGeocoder(cache)
	g.baseURL = url
	g.sleep = func(time.Duration) {}
	return g
}

func TestNewGeocoder(t *testing.T) {
	g := NewGeocoder(nil)
	if g == nil {
		t.Fatal("NewGeocoder() returned nil")
	}
	if g.baseURL != nominatimURL {
		t.Errorf("baseURL = %s, want %s", g.baseURL, nominatimURL)
	}
}

func TestGeocoder_Geocode(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if q.Get("countrycodes") != "tw" {
			t.Errorf("countrycodes = %s, want tw", q.Get("countrycodes"))
		}
		if q.Get("q") != "頭城" {
			t.Errorf("q = %s", q.Get("q"))
		}
		if r.Header.Get("User-Agent") != userAgent {
			t.Error("User-Agent header not set")
		}
		w.Write([]byte(`[{"lat":"24.8590","lon":"121.8230","display_name":"頭城鎮, 宜蘭縣, 臺灣"}]`))
	}))
	defer server.Close()

	g := newTestGeocoder(server.URL, nil)
	loc, err := g.Geocode(context.Background(), " 頭城 ")
	if err != nil {
		t.Fatalf("Geocode() error = %v", err)
	}
	if loc.Latitude != 24.859 || loc.Longitude != 121.823 {
		t.Errorf("loc = %+v", loc)
	}
}

func TestGeocoder_NoResults(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[]`))
	}))
	defer server.Close()

	_, err := newTestGeocoder(server.URL, nil).Geocode(context.Background(), "nowhere")
	if !errors.Is(err, ErrNoResults) {
		t.Errorf("error = %v, want ErrNoResults", err)
	}
}

func TestGeocoder_UpstreamError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	_, err := newTestGeocoder(server.URL, nil).Geocode(context.Background(), "頭城")
	var appErr *apperr.AppError
	if !errors.As(err, &appErr) || appErr.Code != apperr.ErrCodeUpstreamGeocoder {
		t.Errorf("error = %v, want upstream geocoder AppError", err)
	}
}

func TestGeocoder_EmptyQuery(t *testing.T) {
	if _, err := NewGeocoder(nil).Geocode(context.Background(), "   "); err == nil {
		t.Error("expected error for empty query")
	}
}

func TestGeocoder_Coordinates(t *testing.T) {
	g := NewGeocoder(nil)
	g.baseURL = "http://127.0.0.1:1" // never contacted

	loc, err := g.Geocode(context.Background(), "22.0, 120.75")
	if err != nil {
		t.Fatalf("Geocode() error = %v", err)
	}
	if loc.Latitude != 22.0 || loc.Longitude != 120.75 {
		t.Errorf("loc = %+v", loc)
	}

	if _, ok := parseCoordinates("95, 120"); ok {
		t.Error("latitude 95 should be rejected")
	}
}

func TestGeocoder_RateLimit(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[{"lat":"1","lon":"2","display_name":"x"}]`))
	}))
	defer server.Close()

	var slept []time.Duration
	g := newTestGeocoder(server.URL, nil)
	clock := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	g.now = func() time.Time { return clock }
	g.sleep = func(d time.Duration) { slept = append(slept, d) }

	ctx := context.Background()
	g.Geocode(ctx, "a")
	clock = clock.Add(300 * time.Millisecond)
	g.Geocode(ctx, "b")

	if len(slept) != 1 || slept[0] != 700*time.Millisecond {
		t.Errorf("slept = %v, want [700ms]", slept)
	}
}

func TestGeocoder_UsesCache(t *testing.T) {
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatal(err)
	}
	db.SetMaxOpenConns(1)
	defer db.Close()

	cache, err := NewCache(db, time.Hour)
	if err != nil {
		t.Fatalf("NewCache() error = %v", err)
	}

	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.Write([]byte(`[{"lat":"22.6","lon":"120.27","display_name":"旗津"}]`))
	}))
	defer server.Close()

	g := newTestGeocoder(server.URL, cache)
	ctx := context.Background()
	for _, q := range []string{"旗津", " 旗津  "} {
		loc, err := g.Geocode(ctx, q)
		if err != nil {
			t.Fatalf("Geocode(%q) error = %v", q, err)
		}
		if loc.Name != "旗津" {
			t.Errorf("Name = %s", loc.Name)
		}
	}
	if calls.Load() != 1 {
		t.Errorf("calls = %d, want 1", calls.Load())
	}

	cache.now = func() time.Time { return time.Now().Add(2 * time.Hour) }
	if _, err := cache.Get(ctx, "旗津"); err == nil {
		t.Error("expired entry should miss")
	}
}
