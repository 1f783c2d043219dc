package rivm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/couchcryptid/uv-index-etl/internal/domain"
	"github.com/couchcryptid/uv-index-etl/internal/observability"
)

const userAgent = "uv-index-etl/1.0"

// ErrNoDirectory is returned by FetchStations when no station URL is configured.
var ErrNoDirectory = errors.New("station directory not configured")

// StatusError reports a non-2xx upstream response.
type StatusError struct {
	URL  string
	Code int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("upstream %s: status %d", e.URL, e.Code)
}

// Client downloads measurement files and the station directory.
// It implements domain.StationDirectory.
type Client struct {
	http        *resty.Client
	stationsURL string
	metrics     *observability.Metrics
	logger      *slog.Logger
}

// NewClient creates an upstream client. An empty stationsURL disables the
// station directory.
func NewClient(stationsURL string, timeout time.Duration, metrics *observability.Metrics, logger *slog.Logger) *Client {
	return &Client{
		http: resty.New().
			SetTimeout(timeout).
			SetHeader("User-Agent", userAgent),
		stationsURL: stationsURL,
		metrics:     metrics,
		logger:      logger,
	}
}

// FetchFeed downloads one measurement file. Any 2xx response body is
// returned as-is; size checks belong to the caller.
func (c *Client) FetchFeed(ctx context.Context, url string) ([]byte, error) {
	body, err := c.get(ctx, url, "feed")
	if err != nil {
		return nil, err
	}
	c.logger.Debug("feed downloaded", "url", url, "bytes", len(body))
	return body, nil
}

// FetchStations downloads and decodes the station directory, a JSON array
// of station objects.
func (c *Client) FetchStations(ctx context.Context) ([]domain.StationInfo, error) {
	if c.stationsURL == "" {
		return nil, ErrNoDirectory
	}

	body, err := c.get(ctx, c.stationsURL, "stations")
	if err != nil {
		return nil, err
	}

	var stations []domain.StationInfo
	if err := json.Unmarshal(body, &stations); err != nil {
		return nil, fmt.Errorf("decode station directory: %w", err)
	}
	return stations, nil
}

func (c *Client) get(ctx context.Context, url, target string) ([]byte, error) {
	start := time.Now()
	resp, err := c.http.R().
		SetContext(ctx).
		Get(url)
	c.metrics.UpstreamDuration.WithLabelValues(target).Observe(time.Since(start).Seconds())

	if err != nil {
		return nil, fmt.Errorf("%s request: %w", target, err)
	}
	if !resp.IsSuccess() {
		return nil, &StatusError{URL: url, Code: resp.StatusCode()}
	}
	return resp.Body(), nil
}
