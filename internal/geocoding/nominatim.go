// Package geocoding resolves Taiwanese place names to coordinates through
// the OpenStreetMap Nominatim search API.
package geocoding

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/ngmaloney/surf-terminal/internal/apperr"
)

const (
	nominatimURL = "https://nominatim.openstreetmap.org/search"
	userAgent    = "SurfTerminal/1.0" // Required by Nominatim ToS
)

// ErrNoResults is returned when Nominatim finds nothing for a query.
var ErrNoResults = errors.New("no geocoding results")

// Geocoder converts addresses to coordinates
type Geocoder struct {
	baseURL    string
	httpClient *http.Client
	cache      *Cache
	lastCall   time.Time
	mu         sync.Mutex
	sleep      func(time.Duration)
	now        func() time.Time
}

// Location represents a geocoded location
type Location struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Name      string  `json:"name"`
}

// NewGeocoder creates a new geocoder. cache may be nil.
func NewGeocoder(cache *Cache) *Geocoder {
	return &Geocoder{
		baseURL: nominatimURL,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		cache: cache,
		sleep: time.Sleep,
		now:   time.Now,
	}
}

// nominatimResponse represents the Nominatim API response
type nominatimResponse struct {
	Lat         string `json:"lat"`
	Lon         string `json:"lon"`
	DisplayName string `json:"display_name"`
}

var coordPattern = regexp.MustCompile(`^\s*(-?\d+(?:\.\d+)?)\s*,\s*(-?\d+(?:\.\d+)?)\s*$`)

// Geocode converts a place name, or a literal "lat,lon" pair, to coordinates.
func (g *Geocoder) Geocode(ctx context.Context, query string) (*Location, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, fmt.Errorf("query cannot be empty")
	}

	if loc, ok := parseCoordinates(query); ok {
		return loc, nil
	}

	if g.cache != nil {
		if loc, err := g.cache.Get(ctx, query); err == nil {
			return loc, nil
		}
	}

	loc, err := g.search(ctx, query)
	if err != nil {
		return nil, err
	}

	if g.cache != nil {
		// A failed cache write only costs a repeat lookup.
		_ = g.cache.Put(ctx, query, loc)
	}
	return loc, nil
}

func (g *Geocoder) search(ctx context.Context, query string) (*Location, error) {
	params := url.Values{}
	params.Add("format", "json")
	params.Add("limit", "1")
	params.Add("countrycodes", "tw")
	params.Add("accept-language", "zh-TW")
	params.Add("q", query)

	reqURL := fmt.Sprintf("%s?%s", g.baseURL, params.Encode())

	// Rate limiting: Nominatim requires 1 req/sec max
	g.mu.Lock()
	if !g.lastCall.IsZero() {
		elapsed := g.now().Sub(g.lastCall)
		if elapsed < time.Second {
			g.sleep(time.Second - elapsed)
		}
	}
	g.lastCall = g.now()
	g.mu.Unlock()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	// Set required User-Agent header (Nominatim ToS requirement)
	req.Header.Set("User-Agent", userAgent)

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return nil, apperr.NewAppError(apperr.ErrCodeUpstreamGeocoder, "geocoder request failed", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, apperr.NewAppError(apperr.ErrCodeUpstreamGeocoder,
			fmt.Sprintf("nominatim API returned status %d", resp.StatusCode), nil)
	}

	var results []nominatimResponse
	if err := json.NewDecoder(resp.Body).Decode(&results); err != nil {
		return nil, fmt.Errorf("decoding response: %w", err)
	}

	if len(results) == 0 {
		return nil, fmt.Errorf("%w for '%s'", ErrNoResults, query)
	}

	result := results[0]
	lat, err := strconv.ParseFloat(result.Lat, 64)
	if err != nil {
		return nil, fmt.Errorf("parsing latitude: %w", err)
	}
	lon, err := strconv.ParseFloat(result.Lon, 64)
	if err != nil {
		return nil, fmt.Errorf("parsing longitude: %w", err)
	}

	return &Location{
		Latitude:  lat,
		Longitude: lon,
		Name:      result.DisplayName,
	}, nil
}

// parseCoordinates accepts "lat,lon" with values in range.
func parseCoordinates(s string) (*Location, bool) {
	m := coordPattern.FindStringSubmatch(s)
	if m == nil {
		return nil, false
	}
	lat, err1 := strconv.ParseFloat(m[1], 64)
	lon, err2 := strconv.ParseFloat(m[2], 64)
	if err1 != nil || err2 != nil || lat < -90 || lat > 90 || lon < -180 || lon > 180 {
		return nil, false
	}
	return &Location{Latitude: lat, Longitude: lon, Name: s}, true
}
