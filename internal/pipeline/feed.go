package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/couchcryptid/uv-index-etl/internal/domain"
	"github.com/couchcryptid/uv-index-etl/internal/observability"
)

// ErrFeedUnavailable means neither the current nor the previous year's file
// could be used. It is an expected condition.
var ErrFeedUnavailable = errors.New("measurement feed unavailable")

// FeedClient downloads a measurement file by URL.
type FeedClient interface {
	FetchFeed(ctx context.Context, url string) ([]byte, error)
}

// FeedSource produces the raw feed for a pipeline run.
type FeedSource interface {
	Fetch(ctx context.Context, now time.Time) (FeedResult, error)
}

// FeedResult is a downloaded feed together with the day it should be
// filtered on.
type FeedResult struct {
	Body       []byte
	URL        string
	Year       int
	Fallback   bool      // true when the previous year's file was used
	TargetDate time.Time // midnight of the target civil day in the feed zone
}

// FeedFetcher implements FeedSource with a two-tier fallback: the running
// year's file first, then the previous year's file filtered on December 31.
// Each file is tried once.
type FeedFetcher struct {
	client   FeedClient
	locator  domain.FeedLocator
	minBytes int
	loc      *time.Location
	metrics  *observability.Metrics
	logger   *slog.Logger
}

// NewFeedFetcher creates a FeedFetcher. Bodies shorter than minBytes are
// treated as empty placeholder files.
func NewFeedFetcher(client FeedClient, locator domain.FeedLocator, minBytes int, loc *time.Location, metrics *observability.Metrics, logger *slog.Logger) *FeedFetcher {
	return &FeedFetcher{
		client:   client,
		locator:  locator,
		minBytes: minBytes,
		loc:      loc,
		metrics:  metrics,
		logger:   logger,
	}
}

// Fetch downloads the feed for "yesterday" relative to now. The running
// year's file is tried first on every day except January 1st: then yesterday
// already lies in the previous year, the running year's file cannot contain
// it, and the archived file is the first and only attempt.
func (f *FeedFetcher) Fetch(ctx context.Context, now time.Time) (FeedResult, error) {
	local := now.In(f.loc)
	currentYear := local.Year()
	target := domain.CivilDate(local.AddDate(0, 0, -1), f.loc)

	if target.Year() == currentYear {
		res, err := f.try(ctx, currentYear, currentYear, "current")
		if err == nil {
			res.TargetDate = target
			return res, nil
		}
		if ctx.Err() != nil {
			return FeedResult{}, ctx.Err()
		}
		f.logger.Warn("current year feed unusable, falling back to previous year",
			"year", currentYear, "error", err)
	}

	prevYear := currentYear - 1
	res, err := f.try(ctx, prevYear, currentYear, "previous")
	if err != nil {
		if ctx.Err() != nil {
			return FeedResult{}, ctx.Err()
		}
		return FeedResult{}, fmt.Errorf("%w: %w", ErrFeedUnavailable, err)
	}
	f.metrics.FeedFallbacks.Inc()
	res.Fallback = true
	res.TargetDate = time.Date(prevYear, time.December, 31, 0, 0, 0, 0, f.loc)
	return res, nil
}

func (f *FeedFetcher) try(ctx context.Context, year, currentYear int, label string) (FeedResult, error) {
	url := f.locator.URLForYear(year, currentYear)
	body, err := f.client.FetchFeed(ctx, url)
	if err != nil {
		f.metrics.FeedFetches.WithLabelValues(label, "error").Inc()
		return FeedResult{}, fmt.Errorf("fetch %s: %w", url, err)
	}
	if len(body) < f.minBytes {
		f.metrics.FeedFetches.WithLabelValues(label, "too_small").Inc()
		return FeedResult{}, fmt.Errorf("fetch %s: body of %d bytes is below %d", url, len(body), f.minBytes)
	}
	f.metrics.FeedFetches.WithLabelValues(label, "ok").Inc()
	f.logger.Info("feed fetched", "url", url, "bytes", len(body))
	return FeedResult{Body: body, URL: url, Year: year}, nil
}
