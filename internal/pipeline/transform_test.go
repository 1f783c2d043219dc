package pipeline_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/couchcryptid/uv-index-etl/internal/domain"
	"github.com/couchcryptid/uv-index-etl/internal/pipeline"
)

func TestFeedTransformer_Fixture(t *testing.T) {
	loc := amsterdam(t)
	tfm := pipeline.NewTransformer(nil, loc, newTestMetrics(), discardLogger())

	records, err := tfm.Transform(pipeline.FeedResult{
		Body:       readFixture(t, "zonkracht_semicolon.txt"),
		URL:        testBaseURL + "Zonkracht2025.txt",
		TargetDate: time.Date(2025, 6, 1, 0, 0, 0, 0, loc),
	})
	require.NoError(t, err)
	require.Len(t, records, 6)

	first := records[0]
	assert.Equal(t, "260", first.StationID)
	assert.Equal(t, time.Date(2025, 6, 1, 7, 0, 0, 0, time.UTC), first.Hour, "09:00 CEST")
	assert.InDelta(t, 3.9, first.UVIndex, 1e-9)

	last := records[5]
	assert.Equal(t, "280", last.StationID)
	assert.Equal(t, time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC), last.Hour)
	assert.InDelta(t, 5.0, last.UVIndex, 1e-9)
}

func TestFeedTransformer_Errors(t *testing.T) {
	tfm := pipeline.NewTransformer([]rune{','}, time.UTC, newTestMetrics(), discardLogger())
	target := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

	t.Run("no data for target", func(t *testing.T) {
		_, err := tfm.Transform(pipeline.FeedResult{Body: []byte("02-06-2025,12:00,260,5.0\n"), TargetDate: target})
		require.ErrorIs(t, err, domain.ErrNoData)
	})

	t.Run("delimiter list without the file's delimiter", func(t *testing.T) {
		_, err := tfm.Transform(pipeline.FeedResult{Body: readFixture(t, "zonkracht_semicolon.txt"), TargetDate: target})
		require.ErrorIs(t, err, domain.ErrUnparseableFeed)
	})
}
