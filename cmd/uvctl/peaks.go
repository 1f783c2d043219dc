package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/couchcryptid/uv-index-etl/internal/domain"
)

var (
	peaksFile string
	peaksOut  string
)

var peaksCmd = &cobra.Command{
	Use:   "peaks",
	Short: "Reduce a plain-text feed to one peak reading per day",
	RunE:  runPeaks,
}

func init() {
	peaksCmd.Flags().StringVar(&peaksFile, "file", "", "plain-text feed to read (required)")
	peaksCmd.Flags().StringVar(&peaksOut, "out", "-", "output file, - for stdout")
	_ = peaksCmd.MarkFlagRequired("file")
	rootCmd.AddCommand(peaksCmd)
}

func runPeaks(cmd *cobra.Command, _ []string) error {
	readings, err := readTextFeed(peaksFile)
	if err != nil {
		return err
	}
	peaks := domain.DailyPeaks(readings)
	if err := writeTextFeed(cmd, peaksOut, domain.PeakReadings(peaks)); err != nil {
		return err
	}
	fmt.Fprintf(cmd.ErrOrStderr(), "%d reading(s), %d day(s)\n", len(readings), len(peaks))
	return nil
}

func readTextFeed(path string) ([]domain.TextReading, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open feed: %w", err)
	}
	defer f.Close()
	return domain.ParseTextFeed(f)
}

func writeTextFeed(cmd *cobra.Command, path string, readings []domain.TextReading) error {
	if path == "-" || path == "" {
		return domain.WriteTextFeed(cmd.OutOrStdout(), readings)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create output: %w", err)
	}
	if err := domain.WriteTextFeed(f, readings); err != nil {
		_ = f.Close()
		return fmt.Errorf("write output: %w", err)
	}
	return f.Close()
}
