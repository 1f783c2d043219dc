package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/couchcryptid/uv-index-etl/internal/config"
	"github.com/couchcryptid/uv-index-etl/internal/domain"
)

var (
	validateFile string
	validateDate string
	validateJSON bool
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Parse and aggregate a local measurement feed file",
	Long: `Runs a downloaded feed file through the same parse, validate and aggregate
chain the service uses and reports the delimiter that matched, how many rows
were rejected and why, and how many hourly records the day produced.

Delimiters and the feed time zone come from the environment (FEED_DELIMITERS,
FEED_TIMEZONE).`,
	RunE: runValidate,
}

func init() {
	validateCmd.Flags().StringVar(&validateFile, "file", "", "feed file to check (required)")
	validateCmd.Flags().StringVar(&validateDate, "date", "", "target day (YYYY-MM-DD, required)")
	validateCmd.Flags().BoolVar(&validateJSON, "json", false, "print the hourly records as JSON after the report")
	_ = validateCmd.MarkFlagRequired("file")
	_ = validateCmd.MarkFlagRequired("date")
	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	target, err := parseDay(validateDate, cfg.FeedLocation)
	if err != nil {
		return err
	}
	body, err := os.ReadFile(validateFile)
	if err != nil {
		return fmt.Errorf("read feed: %w", err)
	}

	agg, aggErr := domain.ParseAndAggregate(string(body), target, cfg.FeedLocation, cfg.FeedDelimiters)
	out := cmd.OutOrStdout()
	printReport(out, validateFile, agg)

	switch {
	case errors.Is(aggErr, domain.ErrUnparseableFeed):
		return fmt.Errorf("%s: %w", validateFile, aggErr)
	case errors.Is(aggErr, domain.ErrNoData):
		return fmt.Errorf("%s: no valid readings for %s", validateFile, validateDate)
	case aggErr != nil:
		return aggErr
	}

	if validateJSON {
		return writeJSON(out, agg.Records)
	}
	return nil
}

func printReport(w io.Writer, name string, agg domain.Aggregation) {
	delim := "none"
	if agg.Delimiter != 0 {
		delim = strconv.QuoteRune(agg.Delimiter)
	}
	fmt.Fprintf(w, "file:       %s\n", name)
	fmt.Fprintf(w, "delimiter:  %s (%d attempt(s))\n", delim, agg.Attempts)
	fmt.Fprintf(w, "rows:       %d\n", agg.RowsTotal)
	for _, reason := range domain.RejectReasons {
		if n := agg.Rejected[reason]; n > 0 {
			fmt.Fprintf(w, "  rejected %-16s %d\n", reason, n)
		}
	}
	fmt.Fprintf(w, "hourly:     %d record(s)\n", len(agg.Records))
}
