package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/couchcryptid/uv-index-etl/internal/domain"
)

var (
	curveFile      string
	curveDate      string
	curveHalfWidth float64
)

var curveCmd = &cobra.Command{
	Use:   "curve",
	Short: "Expand one day's peak from a plain-text feed into 24 hourly values",
	RunE:  runCurve,
}

func init() {
	curveCmd.Flags().StringVar(&curveFile, "file", "", "plain-text feed to read (required)")
	curveCmd.Flags().StringVar(&curveDate, "date", "", "day to expand (YYYY-MM-DD, required)")
	curveCmd.Flags().Float64Var(&curveHalfWidth, "half-width", 6, "hours from the peak to where the curve reaches zero")
	_ = curveCmd.MarkFlagRequired("file")
	_ = curveCmd.MarkFlagRequired("date")
	rootCmd.AddCommand(curveCmd)
}

func runCurve(cmd *cobra.Command, _ []string) error {
	// Plain-text readings carry civil times on a UTC carrier.
	day, err := parseDay(curveDate, time.UTC)
	if err != nil {
		return err
	}
	if curveHalfWidth <= 0 {
		return fmt.Errorf("--half-width must be positive, got %v", curveHalfWidth)
	}

	readings, err := readTextFeed(curveFile)
	if err != nil {
		return err
	}
	peak := domain.PeakOn(domain.DailyPeaks(readings), day)
	if peak == nil {
		return fmt.Errorf("%s: no readings on %s", curveFile, curveDate)
	}
	return writeJSON(cmd.OutOrStdout(), domain.ExpandPeak(peak, curveHalfWidth))
}
