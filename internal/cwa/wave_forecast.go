package cwa

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sort"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/ngmaloney/surf-terminal/internal/models"
)

const (
	waveDataset  = "M-B0078-001"
	waveCacheKey = "wave-forecast"

	// DefaultForecastCount is the number of entries NextForecasts returns
	// when count is not positive.
	DefaultForecastCount = 24
)

// WaveLocation is one M-B0078-001 forecast point.
type WaveLocation struct {
	Code      string  `json:"code"`
	Name      string  `json:"name"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// waveSnapshot is the cached state of the dataset.
type waveSnapshot struct {
	ETag      string                     `json:"etag"`
	IssueTime string                     `json:"issue_time"`
	FetchedAt time.Time                  `json:"fetched_at"`
	Entries   []models.WaveForecastEntry `json:"entries"`
}

// WaveForecastCache serves the wave model dataset from memory, refreshing it
// with conditional requests once the copy is older than the freshness window.
// A stale copy is served when a refresh fails.
type WaveForecastCache struct {
	base      *BaseClient
	store     Store
	freshness time.Duration
	maxAge    time.Duration
	logger    *zap.Logger
	now       func() time.Time

	mu       sync.RWMutex
	snapshot *waveSnapshot
	restored sync.Once
	group    singleflight.Group
}

// NewWaveForecastCache creates the cache. store may be nil for memory only.
func NewWaveForecastCache(base *BaseClient, store Store, freshness, maxAge time.Duration, logger *zap.Logger) *WaveForecastCache {
	if freshness <= 0 {
		freshness = 3 * time.Hour
	}
	if maxAge < freshness {
		maxAge = 12 * time.Hour
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &WaveForecastCache{
		base:      base,
		store:     store,
		freshness: freshness,
		maxAge:    maxAge,
		logger:    logger,
		now:       time.Now,
	}
}

// IssueTime returns the issue time of the cached dataset, if any.
func (c *WaveForecastCache) IssueTime() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.snapshot == nil {
		return ""
	}
	return c.snapshot.IssueTime
}

// LocationForecast returns every entry of a location, sorted by time.
func (c *WaveForecastCache) LocationForecast(ctx context.Context, code string) ([]models.WaveForecastEntry, error) {
	if code == "" {
		return nil, nil
	}
	snap, err := c.get(ctx)
	if err != nil {
		return nil, err
	}

	var out []models.WaveForecastEntry
	for _, e := range snap.Entries {
		if e.LocationCode == code {
			out = append(out, e)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].DateTime.Before(out[j].DateTime)
	})
	return out, nil
}

// NextForecasts returns up to count entries after now.
func (c *WaveForecastCache) NextForecasts(ctx context.Context, code string, count int) ([]models.WaveForecastEntry, error) {
	if count <= 0 {
		count = DefaultForecastCount
	}
	all, err := c.LocationForecast(ctx, code)
	if err != nil {
		return nil, err
	}

	now := c.now()
	var future []models.WaveForecastEntry
	for _, e := range all {
		if e.DateTime.After(now) {
			future = append(future, e)
			if len(future) == count {
				break
			}
		}
	}
	return future, nil
}

// Locations lists the distinct forecast points, sorted by code.
func (c *WaveForecastCache) Locations(ctx context.Context) ([]WaveLocation, error) {
	snap, err := c.get(ctx)
	if err != nil {
		return nil, err
	}

	seen := map[string]bool{}
	var out []WaveLocation
	for _, e := range snap.Entries {
		if seen[e.LocationCode] {
			continue
		}
		seen[e.LocationCode] = true
		out = append(out, WaveLocation{
			Code:      e.LocationCode,
			Name:      e.LocationName,
			Latitude:  e.Latitude,
			Longitude: e.Longitude,
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Code < out[j].Code })
	return out, nil
}

func (c *WaveForecastCache) get(ctx context.Context) (*waveSnapshot, error) {
	c.restored.Do(func() { c.restore(ctx) })

	c.mu.RLock()
	snap := c.snapshot
	c.mu.RUnlock()
	if snap != nil && c.now().Sub(snap.FetchedAt) < c.freshness {
		return snap, nil
	}

	v, err, _ := c.group.Do(waveCacheKey, func() (any, error) {
		return c.refresh(context.WithoutCancel(ctx))
	})
	if err != nil {
		if snap != nil {
			c.logger.Warn("serving stale wave forecast", zap.Error(err),
				zap.Time("fetched_at", snap.FetchedAt))
			return snap, nil
		}
		return nil, err
	}
	return v.(*waveSnapshot), nil
}

// restore loads the persisted snapshot if it is younger than maxAge. The
// store is read without holding mu so IssueTime never waits on it.
func (c *WaveForecastCache) restore(ctx context.Context) {
	if c.store == nil {
		return
	}

	data, err := c.store.Load(ctx, waveCacheKey)
	if err != nil {
		if !errors.Is(err, ErrCacheMiss) {
			c.logger.Warn("failed to load wave forecast cache", zap.Error(err))
		}
		return
	}

	var snap waveSnapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		c.logger.Warn("discarding corrupt wave forecast cache", zap.Error(err))
		return
	}
	if c.now().Sub(snap.FetchedAt) >= c.maxAge {
		c.logger.Info("wave forecast cache expired", zap.Time("fetched_at", snap.FetchedAt))
		return
	}

	c.mu.Lock()
	if c.snapshot == nil {
		c.snapshot = &snap
	}
	c.mu.Unlock()
	c.logger.Info("wave forecast cache loaded", zap.String("issue_time", snap.IssueTime))
}

func (c *WaveForecastCache) refresh(ctx context.Context) (*waveSnapshot, error) {
	c.mu.RLock()
	current := c.snapshot
	c.mu.RUnlock()

	etag := ""
	if current != nil {
		etag = current.ETag
	}

	req, err := c.base.newFileRequest(ctx, waveDataset, etag)
	if err != nil {
		return nil, err
	}
	resp, err := c.base.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch %s: %w", waveDataset, err)
	}
	defer resp.Body.Close()

	var next waveSnapshot
	switch {
	case resp.StatusCode == http.StatusNotModified && current != nil:
		next = *current
		next.FetchedAt = c.now()
		c.logger.Debug("wave forecast not modified")
	case resp.StatusCode == http.StatusOK:
		var body waveResponse
		if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
			return nil, fmt.Errorf("failed to decode response: %w", err)
		}
		next = waveSnapshot{
			ETag:      resp.Header.Get("ETag"),
			IssueTime: body.CwaOpenData.Dataset.DatasetInfo.IssueTime,
			FetchedAt: c.now(),
			Entries:   body.entries(),
		}
		c.logger.Info("wave forecast updated",
			zap.String("issue_time", next.IssueTime),
			zap.Int("entries", len(next.Entries)))
	default:
		return nil, fmt.Errorf("API returned status %d", resp.StatusCode)
	}

	c.mu.Lock()
	c.snapshot = &next
	c.mu.Unlock()

	c.persist(ctx, &next)
	return &next, nil
}

func (c *WaveForecastCache) persist(ctx context.Context, snap *waveSnapshot) {
	if c.store == nil {
		return
	}
	data, err := json.Marshal(snap)
	if err != nil {
		c.logger.Warn("failed to encode wave forecast cache", zap.Error(err))
		return
	}
	if err := c.store.Save(ctx, waveCacheKey, data, c.maxAge); err != nil {
		c.logger.Warn("failed to save wave forecast cache", zap.Error(err))
	}
}

type waveResponse struct {
	CwaOpenData struct {
		Dataset struct {
			DatasetInfo struct {
				IssueTime string `json:"IssueTime"`
			} `json:"datasetInfo"`
			Location []waveLocationRecord `json:"location"`
		} `json:"dataset"`
	} `json:"cwaopendata"`
}

type waveLocationRecord struct {
	LocationCode                  string `json:"LocationCode"`
	LocationName                  text   `json:"LocationName"`
	Longitude                     number `json:"Longitude"`
	Latitude                      number `json:"Latitude"`
	DateTime                      string `json:"DateTime"`
	SignificantWaveHeight         number `json:"SignificantWaveHeight"`
	WaveDirectionForecast         number `json:"WaveDirectionForecast"`
	WavePeriod                    number `json:"WavePeriod"`
	OceanCurrentDirectionForecast number `json:"OceanCurrentDirectionForecast"`
	OceanCurrentSpeed             number `json:"OceanCurrentSpeed"`
}

func (r waveResponse) entries() []models.WaveForecastEntry {
	out := make([]models.WaveForecastEntry, 0, len(r.CwaOpenData.Dataset.Location))
	for _, loc := range r.CwaOpenData.Dataset.Location {
		t, ok := parseTime(loc.DateTime)
		if !ok || loc.LocationCode == "" {
			continue
		}
		out = append(out, models.WaveForecastEntry{
			LocationCode:     loc.LocationCode,
			LocationName:     string(loc.LocationName),
			Latitude:         loc.Latitude.value,
			Longitude:        loc.Longitude.value,
			DateTime:         t,
			WaveHeight:       loc.SignificantWaveHeight.nonNegative(),
			WaveDirection:    loc.WaveDirectionForecast.nonNegative(),
			WavePeriod:       loc.WavePeriod.nonNegative(),
			CurrentDirection: loc.OceanCurrentDirectionForecast.nonNegative(),
			CurrentSpeed:     loc.OceanCurrentSpeed.nonNegative(),
		})
	}
	return out
}
