package cwa

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"math/rand/v2"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/sony/gobreaker/v2"
	"go.uber.org/zap"

	"github.com/ngmaloney/surf-terminal/internal/apperr"
)

// DefaultBaseURL is the CWA open data host.
const DefaultBaseURL = "https://opendata.cwa.gov.tw"

const (
	datastorePath = "/api/v1/rest/datastore/"
	fileAPIPath   = "/fileapi/v1/opendataapi/"
	userAgent     = "SurfTerminal/1.0"
)

// RetryPolicy configures the retry behavior for the BaseClient.
type RetryPolicy struct {
	MaxRetries int
	MinWait    time.Duration
	MaxWait    time.Duration
}

// DefaultRetryPolicy returns the defaults for CWA calls.
func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{
		MaxRetries: 3,
		MinWait:    500 * time.Millisecond,
		MaxWait:    10 * time.Second,
	}
}

// BaseClient carries the CWA host, API key and resilience settings shared by
// every dataset client.
type BaseClient struct {
	baseURL     string
	apiKey      string
	httpClient  *http.Client
	breaker     *gobreaker.CircuitBreaker[*http.Response]
	retryPolicy RetryPolicy
	sleepFn     func(time.Duration) // defaults to time.Sleep
	logger      *zap.Logger
}

// BaseClientOption is a functional option for configuring a BaseClient.
type BaseClientOption func(*BaseClient)

// WithSleepFunc overrides the sleep function used between retries.
func WithSleepFunc(fn func(time.Duration)) BaseClientOption {
	return func(c *BaseClient) {
		c.sleepFn = fn
	}
}

// WithRetryPolicy overrides the default retry policy.
func WithRetryPolicy(p RetryPolicy) BaseClientOption {
	return func(c *BaseClient) {
		c.retryPolicy = p
	}
}

// WithLogger sets the logger used for retry and fallback messages.
func WithLogger(logger *zap.Logger) BaseClientOption {
	return func(c *BaseClient) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// NewBaseClient creates a BaseClient. An empty baseURL selects DefaultBaseURL.
func NewBaseClient(baseURL, apiKey string, timeout time.Duration, opts ...BaseClientOption) *BaseClient {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	cb := gobreaker.NewCircuitBreaker[*http.Response](gobreaker.Settings{
		Name:        "cwa",
		MaxRequests: 1,
		Interval:    60 * time.Second,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures > 5
		},
		IsSuccessful: func(err error) bool {
			return err == nil
		},
	})

	c := &BaseClient{
		baseURL:     strings.TrimRight(baseURL, "/"),
		apiKey:      apiKey,
		httpClient:  &http.Client{Timeout: timeout},
		breaker:     cb,
		retryPolicy: DefaultRetryPolicy(),
		sleepFn:     time.Sleep,
		logger:      zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Do executes the request through the circuit breaker, retrying 429 and 5xx
// responses. Other responses are returned as-is and the caller closes the
// body. Exhausted retries or an open breaker return an *apperr.AppError.
func (c *BaseClient) Do(req *http.Request) (*http.Response, error) {
	if id := apperr.GetRequestID(req.Context()); id != "" {
		req.Header.Set("X-Request-ID", id)
	}
	req.Header.Set("User-Agent", userAgent)

	var lastResp *http.Response
	var lastErr error

	maxAttempts := 1 + c.retryPolicy.MaxRetries
	for attempt := 0; attempt < maxAttempts; attempt++ {
		resp, err := c.breaker.Execute(func() (*http.Response, error) {
			r, doErr := c.httpClient.Do(req)
			if doErr != nil {
				return nil, doErr
			}
			if r.StatusCode >= 500 {
				return r, fmt.Errorf("upstream returned %d", r.StatusCode)
			}
			if r.StatusCode == http.StatusTooManyRequests {
				return r, fmt.Errorf("upstream returned 429")
			}
			return r, nil
		})

		if err == nil {
			return resp, nil
		}

		lastErr = err
		if resp != nil {
			if attempt < maxAttempts-1 {
				resp.Body.Close()
			} else {
				lastResp = resp
			}
		}

		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			break
		}
		if ctxErr := req.Context().Err(); ctxErr != nil {
			lastErr = ctxErr
			break
		}

		if attempt < maxAttempts-1 {
			wait := c.computeBackoff(attempt, resp)
			c.logger.Debug("retrying CWA request",
				zap.String("path", req.URL.Path),
				zap.Int("attempt", attempt+1),
				zap.Duration("wait", wait),
				zap.Error(err),
			)
			c.sleepFn(wait)
		}
	}

	if lastResp != nil {
		lastResp.Body.Close()
	}

	return nil, c.mapError(lastResp, lastErr)
}

// computeBackoff honours Retry-After, otherwise uses exponential backoff with
// jitter clamped to [MinWait, MaxWait].
func (c *BaseClient) computeBackoff(attempt int, resp *http.Response) time.Duration {
	if resp != nil {
		if retryAfter := resp.Header.Get("Retry-After"); retryAfter != "" {
			if seconds, err := strconv.Atoi(retryAfter); err == nil && seconds > 0 {
				return min(time.Duration(seconds)*time.Second, c.retryPolicy.MaxWait)
			}
			if t, err := http.ParseTime(retryAfter); err == nil {
				wait := time.Until(t)
				if wait <= 0 {
					return c.retryPolicy.MinWait
				}
				return min(wait, c.retryPolicy.MaxWait)
			}
		}
	}

	base := float64(c.retryPolicy.MinWait) * math.Pow(2, float64(attempt))
	base = math.Min(base, float64(c.retryPolicy.MaxWait))

	minWait := float64(c.retryPolicy.MinWait)
	if base <= minWait {
		return c.retryPolicy.MinWait
	}
	return time.Duration(minWait + rand.Float64()*(base-minWait))
}

func (c *BaseClient) mapError(resp *http.Response, err error) *apperr.AppError {
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return apperr.NewAppError(apperr.ErrCodeUpstreamRateLimited,
			"circuit breaker is open; CWA temporarily unavailable", err)
	}

	if resp != nil {
		switch {
		case resp.StatusCode == http.StatusTooManyRequests:
			return apperr.NewAppError(apperr.ErrCodeUpstreamRateLimited, "CWA rate limit exceeded", err)
		case resp.StatusCode >= 500:
			return apperr.NewAppError(apperr.ErrCodeUpstreamCWA,
				fmt.Sprintf("CWA returned %d after retries", resp.StatusCode), err)
		}
	}

	return apperr.NewAppError(apperr.ErrCodeUpstreamCWA, "CWA request failed", err)
}

func (c *BaseClient) endpoint(path, dataset string, params url.Values) string {
	q := url.Values{}
	for k, v := range params {
		q[k] = v
	}
	q.Set("Authorization", c.apiKey)
	return c.baseURL + path + dataset + "?" + q.Encode()
}

// getDatastore fetches a datastore dataset and decodes the JSON body into out.
func (c *BaseClient) getDatastore(ctx context.Context, dataset string, params url.Values, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint(datastorePath, dataset, params), nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.Do(req)
	if err != nil {
		return fmt.Errorf("failed to fetch %s: %w", dataset, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("API returned status %d", resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

// newFileRequest builds a fileapi request, sending etag as If-None-Match.
func (c *BaseClient) newFileRequest(ctx context.Context, dataset, etag string) (*http.Request, error) {
	params := url.Values{"format": {"JSON"}}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint(fileAPIPath, dataset, params), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	if etag != "" {
		req.Header.Set("If-None-Match", etag)
	}
	return req, nil
}
