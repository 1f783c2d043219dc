package main

import (
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/spf13/cobra"

	"github.com/couchcryptid/uv-index-etl/internal/adapter/rivm"
	"github.com/couchcryptid/uv-index-etl/internal/config"
	"github.com/couchcryptid/uv-index-etl/internal/domain"
	"github.com/couchcryptid/uv-index-etl/internal/observability"
	"github.com/couchcryptid/uv-index-etl/internal/pipeline"
)

var (
	fetchDate string
	fetchMap  bool
)

var fetchCmd = &cobra.Command{
	Use:   "fetch",
	Short: "Run the feed pipeline once and print the result as JSON",
	Long: `Downloads the measurement feed configured through the environment, aggregates
yesterday's readings and prints the combined result. --date loads another day
by running the pipeline as if it were the following day.`,
	RunE: runFetch,
}

func init() {
	fetchCmd.Flags().StringVar(&fetchDate, "date", "", "day to load (YYYY-MM-DD, feed zone); defaults to yesterday")
	fetchCmd.Flags().BoolVar(&fetchMap, "map", false, "print the latest value per station instead of the full result")
	rootCmd.AddCommand(fetchCmd)
}

func runFetch(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	clock := clockwork.NewRealClock()
	if fetchDate != "" {
		day, err := parseDay(fetchDate, cfg.FeedLocation)
		if err != nil {
			return err
		}
		clock = clockwork.NewFakeClockAt(day.AddDate(0, 0, 1).Add(12 * time.Hour))
	}

	logger := observability.NewLoggerTo(cmd.ErrOrStderr(), logLevel, logFormat)
	metrics := observability.NewMetricsForTesting()
	client := rivm.NewClient(cfg.StationsURL, cfg.FeedTimeout, metrics, logger)

	var stations domain.StationDirectory
	if cfg.StationsURL != "" {
		stations = client
	}

	locator := domain.FeedLocator{BaseURL: cfg.FeedBaseURL, SourceTag: cfg.FeedSourceTag, Ext: cfg.FeedFileExt}
	svc := pipeline.New(
		pipeline.NewFeedFetcher(client, locator, cfg.FeedMinBytes, cfg.FeedLocation, metrics, logger),
		pipeline.NewTransformer(cfg.FeedDelimiters, cfg.FeedLocation, metrics, logger),
		stations,
		nil,
		pipeline.NewResultCache(cfg.CacheTTL, clock),
		clock, logger, metrics,
	)

	if fetchMap {
		points, err := svc.LatestByStation(cmd.Context())
		if err != nil {
			return err
		}
		return writeJSON(cmd.OutOrStdout(), points)
	}

	res, err := svc.Load(cmd.Context())
	if err != nil {
		return err
	}
	return writeJSON(cmd.OutOrStdout(), res)
}
