package pipeline

import (
	"errors"
	"log/slog"
	"time"

	"github.com/couchcryptid/uv-index-etl/internal/domain"
	"github.com/couchcryptid/uv-index-etl/internal/observability"
)

// FeedTransformer turns a downloaded feed into hourly records.
type FeedTransformer struct {
	delimiters []rune
	loc        *time.Location
	metrics    *observability.Metrics
	logger     *slog.Logger
}

// NewTransformer creates a FeedTransformer. A nil delimiter list uses
// domain.DefaultDelimiters.
func NewTransformer(delimiters []rune, loc *time.Location, metrics *observability.Metrics, logger *slog.Logger) *FeedTransformer {
	if len(delimiters) == 0 {
		delimiters = domain.DefaultDelimiters
	}
	return &FeedTransformer{
		delimiters: delimiters,
		loc:        loc,
		metrics:    metrics,
		logger:     logger,
	}
}

// Transform parses, validates and aggregates feed.Body for feed.TargetDate.
// Errors are domain.ErrUnparseableFeed or domain.ErrNoData.
func (t *FeedTransformer) Transform(feed FeedResult) ([]domain.HourlyUVRecord, error) {
	agg, err := domain.ParseAndAggregate(string(feed.Body), feed.TargetDate, t.loc, t.delimiters)
	t.observe(agg, err)

	if errors.Is(err, domain.ErrUnparseableFeed) {
		t.logger.Error("feed could not be parsed", "url", feed.URL, "attempts", agg.Attempts, "error", err)
		return nil, err
	}

	attrs := []any{
		"url", feed.URL,
		"target_date", feed.TargetDate.Format(time.DateOnly),
		"delimiter", string(agg.Delimiter),
		"rows", agg.RowsTotal,
		"records", len(agg.Records),
	}
	for _, reason := range domain.RejectReasons {
		if n := agg.Rejected[reason]; n > 0 {
			attrs = append(attrs, "rejected_"+string(reason), n)
		}
	}
	if err != nil {
		t.logger.Warn("no usable rows for target date", attrs...)
		return nil, err
	}
	t.logger.Info("feed aggregated", attrs...)
	return agg.Records, nil
}

func (t *FeedTransformer) observe(agg domain.Aggregation, err error) {
	unparseable := errors.Is(err, domain.ErrUnparseableFeed)
	for i := 0; i < agg.Attempts && i < len(t.delimiters); i++ {
		outcome := "failure"
		if !unparseable && i == agg.Attempts-1 {
			outcome = "success"
		}
		t.metrics.ParseAttempts.WithLabelValues(string(t.delimiters[i]), outcome).Inc()
	}

	rejected := 0
	for reason, n := range agg.Rejected {
		t.metrics.RowsRejected.WithLabelValues(string(reason)).Add(float64(n))
		rejected += n
	}
	t.metrics.RowsAccepted.Add(float64(agg.RowsTotal - rejected))
	t.metrics.HourlyRecords.Add(float64(len(agg.Records)))
}
