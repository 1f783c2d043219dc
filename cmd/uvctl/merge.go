package main

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/spf13/cobra"

	"github.com/couchcryptid/uv-index-etl/internal/domain"
)

var mergeOut string

var mergeCmd = &cobra.Command{
	Use:   "merge [flags] FILE...",
	Short: "Merge plain-text feeds, dropping duplicate readings",
	Long: `Reads every FILE in order and writes one sorted feed. A reading that repeats
the date, time and InstCode of an earlier one is dropped, so list the file
whose values should win first. Missing files are skipped with a warning.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runMerge,
}

func init() {
	mergeCmd.Flags().StringVar(&mergeOut, "out", "-", "output file, - for stdout")
	rootCmd.AddCommand(mergeCmd)
}

func runMerge(cmd *cobra.Command, args []string) error {
	sets := make([][]domain.TextReading, 0, len(args))
	total := 0
	for _, path := range args {
		readings, err := readTextFeed(path)
		if errors.Is(err, fs.ErrNotExist) {
			fmt.Fprintf(cmd.ErrOrStderr(), "warning: %s not found, skipping\n", path)
			continue
		}
		if err != nil {
			return err
		}
		sets = append(sets, readings)
		total += len(readings)
	}

	merged := domain.MergeTextReadings(sets...)
	if len(merged) == 0 {
		return fmt.Errorf("nothing to write: no readings in %d file(s)", len(args))
	}
	if err := writeTextFeed(cmd, mergeOut, merged); err != nil {
		return err
	}
	fmt.Fprintf(cmd.ErrOrStderr(), "%d reading(s) in, %d unique\n", total, len(merged))
	return nil
}
