package weather

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/kiosk404/echoweather/pkg/logger"
	"github.com/kiosk404/echoweather/pkg/utils/json"
)

const (
	DefaultBaseURL   = "https://api.weather.gov"
	DefaultUserAgent = "weather-app/1.0"
	DefaultTimeout   = 30 * time.Second

	acceptGeoJSON = "application/geo+json"
	moduleName    = "weather"
)

// Result is the outcome of one NWS request: either a decoded value or the
// absence marker. Transport errors, timeouts, non-2xx statuses and decode
// failures all collapse to absence.
type Result[T any] struct {
	value T
	ok    bool
}

// Present wraps a successfully retrieved value.
func Present[T any](v T) Result[T] {
	return Result[T]{value: v, ok: true}
}

// Absent returns the absence marker.
func Absent[T any]() Result[T] {
	return Result[T]{}
}

// Get returns the value and whether it was retrieved.
func (r Result[T]) Get() (T, bool) {
	return r.value, r.ok
}

// OK reports whether the request produced usable data.
func (r Result[T]) OK() bool {
	return r.ok
}

// NWSClient issues GET requests against the National Weather Service API.
type NWSClient struct {
	baseURL    string
	userAgent  string
	httpClient *http.Client
}

// NewNWSClient returns a client for baseURL. A nil httpClient gets one with
// DefaultTimeout.
func NewNWSClient(baseURL, userAgent string, httpClient *http.Client) *NWSClient {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if userAgent == "" {
		userAgent = DefaultUserAgent
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: DefaultTimeout}
	}
	return &NWSClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		userAgent:  userAgent,
		httpClient: httpClient,
	}
}

// BaseURL returns the API root without a trailing slash.
func (c *NWSClient) BaseURL() string {
	return c.baseURL
}

// fetch GETs url and decodes the JSON body into T.
func fetch[T any](ctx context.Context, c *NWSClient, url string) Result[T] {
	v, err := c.get(ctx, url)
	if err != nil {
		logger.WarnX(moduleName, "[NWS] GET %s: %v", url, err)
		return Absent[T]()
	}

	var out T
	if err := json.Unmarshal(v, &out); err != nil {
		logger.WarnX(moduleName, "[NWS] decode %s: %v", url, err)
		return Absent[T]()
	}
	return Present(out)
}

func (c *NWSClient) get(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", acceptGeoJSON)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("http request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("server returned %d: %s", resp.StatusCode, truncate(string(body), 200))
	}

	logger.DebugX(moduleName, "[NWS] GET %s -> %d (%d bytes)", url, resp.StatusCode, len(body))
	return body, nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
