package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/couchcryptid/uv-index-etl/internal/domain"
	"github.com/couchcryptid/uv-index-etl/internal/observability"
)

// Mock classes reported in metrics.
const (
	mockUnavailable = "unavailable"
	mockNoData      = "no_data"
	mockUnparseable = "unparseable"
	mockError       = "error"
)

// HourlyPublisher hands freshly computed hourly records to a downstream sink.
type HourlyPublisher interface {
	PublishHourly(ctx context.Context, records []domain.HourlyUVRecord) error
}

// Service runs the fetch, parse and aggregate chain on demand and caches the
// outcome. It never fails for expected conditions: an unavailable feed, an
// unparseable feed or an empty day all produce mock data.
type Service struct {
	feed        FeedSource
	transformer *FeedTransformer
	stations    domain.StationDirectory
	publisher   HourlyPublisher
	cache       *ResultCache
	clock       clockwork.Clock
	logger      *slog.Logger
	metrics     *observability.Metrics
	ready       atomic.Bool
}

// New creates a Service. stations and publisher may be nil.
func New(feed FeedSource, transformer *FeedTransformer, stations domain.StationDirectory, publisher HourlyPublisher,
	cache *ResultCache, clock clockwork.Clock, logger *slog.Logger, metrics *observability.Metrics,
) *Service {
	return &Service{
		feed:        feed,
		transformer: transformer,
		stations:    stations,
		publisher:   publisher,
		cache:       cache,
		clock:       clock,
		logger:      logger,
		metrics:     metrics,
	}
}

// CheckReadiness returns nil once the service has completed at least one load.
func (s *Service) CheckReadiness(_ context.Context) error {
	if !s.ready.Load() {
		return errors.New("no UV data has been loaded yet")
	}
	return nil
}

// Load returns the cached result or runs the pipeline. The returned error is
// non-nil only for unexpected failures such as a cancelled context.
func (s *Service) Load(ctx context.Context) (domain.CombinedResult, error) {
	if res, ok := s.cache.Get(); ok {
		s.metrics.CacheLookups.WithLabelValues("hit").Inc()
		return res, nil
	}
	s.metrics.CacheLookups.WithLabelValues("miss").Inc()

	start := s.clock.Now()
	res, err := s.run(ctx, start)
	if err != nil {
		return domain.CombinedResult{}, err
	}
	s.metrics.LoadDuration.Observe(s.clock.Since(start).Seconds())

	if !s.cache.Put(res, res.Cacheable()) {
		s.logger.Warn("result not cached", "error", res.Error)
	}
	s.ready.Store(true)
	return res, nil
}

// LatestByStation returns the most recent hourly value of every station that
// has metadata, ready for map display.
func (s *Service) LatestByStation(ctx context.Context) ([]domain.MapPoint, error) {
	res, err := s.Load(ctx)
	if err != nil {
		return nil, err
	}
	points, missing := domain.JoinLatest(res.UVData, res.StationMetadata)
	if len(missing) > 0 {
		s.logger.Warn("stations without metadata left off the map", "station_ids", missing)
	}
	return points, nil
}

// ErrorResult builds the mock body returned alongside an unexpected failure.
// details is optional diagnostic text such as a stack trace.
func (s *Service) ErrorResult(err error, details string) domain.CombinedResult {
	res := s.mock(s.clock.Now(), mockError, "Unexpected error while loading UV data; showing sample data.", err)
	res.ErrorDetails = details
	return res
}

func (s *Service) run(ctx context.Context, now time.Time) (domain.CombinedResult, error) {
	stations := s.fetchStations(ctx)

	feed, err := s.feed.Fetch(ctx, now)
	if errors.Is(err, ErrFeedUnavailable) {
		s.logger.Warn("feed unavailable, serving mock data", "error", err)
		return s.mock(now, mockUnavailable, "UV feed is currently unavailable; showing sample data.", nil), nil
	}
	if err != nil {
		return domain.CombinedResult{}, fmt.Errorf("fetch feed: %w", err)
	}

	records, err := s.transformer.Transform(feed)
	switch {
	case errors.Is(err, domain.ErrNoData):
		msg := fmt.Sprintf("No UV readings available for %s; showing sample data.", feed.TargetDate.Format(time.DateOnly))
		return s.mock(now, mockNoData, msg, nil), nil
	case errors.Is(err, domain.ErrUnparseableFeed):
		return s.mock(now, mockUnparseable, "UV feed could not be read; showing sample data.", err), nil
	case err != nil:
		return domain.CombinedResult{}, fmt.Errorf("transform feed: %w", err)
	}

	s.publish(ctx, records)
	s.metrics.LastSuccessful.Set(float64(now.Unix()))

	var msg string
	if feed.Fallback {
		msg = fmt.Sprintf("Current year's data is not available yet; showing %s from the %d archive.",
			feed.TargetDate.Format(time.DateOnly), feed.Year)
	}
	return domain.NewCombinedResult(records, stations, msg), nil
}

// fetchStations never fails; a broken directory yields an empty list.
func (s *Service) fetchStations(ctx context.Context) []domain.StationInfo {
	if s.stations == nil {
		return nil
	}
	stations, err := s.stations.FetchStations(ctx)
	switch {
	case err != nil:
		s.logger.Warn("station directory unavailable", "error", err)
		s.metrics.StationFetch.WithLabelValues("error").Inc()
		return nil
	case len(stations) == 0:
		s.logger.Warn("station directory is empty")
		s.metrics.StationFetch.WithLabelValues("empty").Inc()
	default:
		s.metrics.StationFetch.WithLabelValues("success").Inc()
	}
	s.metrics.StationsKnown.Set(float64(len(stations)))
	return stations
}

func (s *Service) publish(ctx context.Context, records []domain.HourlyUVRecord) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.PublishHourly(ctx, records); err != nil {
		s.logger.Error("publish hourly records failed", "error", err, "records", len(records))
		s.metrics.SinkErrors.Inc()
		return
	}
	s.metrics.MessagesProduced.Add(float64(len(records)))
}

func (s *Service) mock(now time.Time, class, reason string, cause error) domain.CombinedResult {
	s.metrics.MockResults.WithLabelValues(class).Inc()
	return domain.GenerateMock(now, reason, cause)
}
