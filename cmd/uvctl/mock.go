package main

import (
	"errors"
	"time"

	"github.com/spf13/cobra"

	"github.com/couchcryptid/uv-index-etl/internal/domain"
)

var (
	mockReason string
	mockError  string
)

var mockCmd = &cobra.Command{
	Use:   "mock",
	Short: "Print the sample dataset served when real data is unavailable",
	Long: `Prints the mock result the service falls back to, stamped with the current
hour. Useful as a fixture for front-end work.`,
	RunE: runMock,
}

func init() {
	mockCmd.Flags().StringVar(&mockReason, "reason", "Sample data.", "message placed in the result")
	mockCmd.Flags().StringVar(&mockError, "error", "", "optional error text, marks the result as an unexpected failure")
	rootCmd.AddCommand(mockCmd)
}

func runMock(cmd *cobra.Command, _ []string) error {
	var cause error
	if mockError != "" {
		cause = errors.New(mockError)
	}
	return writeJSON(cmd.OutOrStdout(), domain.GenerateMock(time.Now(), mockReason, cause))
}
