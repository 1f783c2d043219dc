package domain

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	commaFeed = "datum,tijd,station,uvi,status\n" +
		"# exported by zonkracht\n" +
		"01-06-2025,12:00,260,5.0,ok\n" +
		"\n" +
		"01-06-2025,12:30,260,7.0,ok\n"

	semicolonFeed = "datum;tijd;station;uvi;status\n" +
		"01-06-2025;12:00;260;5,0;ok\n" +
		"01-06-2025;12:30;260;7,0;ok\n"
)

func TestParseFeed(t *testing.T) {
	t.Run("comma feed succeeds on first attempt", func(t *testing.T) {
		parsed, err := ParseFeed(commaFeed, nil)
		require.NoError(t, err)

		assert.Equal(t, ',', parsed.Delimiter)
		assert.Equal(t, 1, parsed.Attempts, "semicolon must not be tried")
		require.Len(t, parsed.Records, 2)
		assert.Equal(t, RawMeasurementRecord{
			Date: "01-06-2025", Time: "12:00", StationID: "260", Value: "5.0", Status: "ok", Line: 3,
		}, parsed.Records[0])
	})

	t.Run("semicolon feed falls back", func(t *testing.T) {
		parsed, err := ParseFeed(semicolonFeed, nil)
		require.NoError(t, err)

		assert.Equal(t, ';', parsed.Delimiter)
		assert.Equal(t, 2, parsed.Attempts)
		require.Len(t, parsed.Records, 2)
		assert.Equal(t, "5,0", parsed.Records[0].Value)
	})

	t.Run("feed without header", func(t *testing.T) {
		parsed, err := ParseFeed("01-06-2025,12:00,260,5.0\n01-06-2025,12:30,260,7.0", nil)
		require.NoError(t, err)
		assert.Len(t, parsed.Records, 2)
	})

	t.Run("header columns in a different order", func(t *testing.T) {
		text := "station,uvi,datum,tijd\n260,4.5,01-06-2025,09:15\n"
		parsed, err := ParseFeed(text, nil)
		require.NoError(t, err)
		require.Len(t, parsed.Records, 1)
		assert.Equal(t, "260", parsed.Records[0].StationID)
		assert.Equal(t, "4.5", parsed.Records[0].Value)
		assert.Equal(t, "01-06-2025", parsed.Records[0].Date)
		assert.Equal(t, "09:15", parsed.Records[0].Time)
	})

	t.Run("unknown header names use positions", func(t *testing.T) {
		text := "a,b,c,d\n01-06-2025,10:00,280,3.3\n"
		parsed, err := ParseFeed(text, nil)
		require.NoError(t, err)
		require.Len(t, parsed.Records, 1)
		assert.Equal(t, "280", parsed.Records[0].StationID)
	})

	t.Run("byte order mark is ignored", func(t *testing.T) {
		parsed, err := ParseFeed("\ufeffdatum,tijd,station,uvi\n01-06-2025,10:00,280,3.3\n", nil)
		require.NoError(t, err)
		assert.Len(t, parsed.Records, 1)
	})

	t.Run("header only is unparseable", func(t *testing.T) {
		parsed, err := ParseFeed("datum,tijd,station,uvi\n# nothing today\n", nil)
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrUnparseableFeed))
		assert.Equal(t, 2, parsed.Attempts)
	})

	t.Run("garbage is unparseable", func(t *testing.T) {
		_, err := ParseFeed("<html><body>Not Found</body></html>", nil)
		require.ErrorIs(t, err, ErrUnparseableFeed)
	})

	t.Run("custom delimiter order", func(t *testing.T) {
		parsed, err := ParseFeed(semicolonFeed, []rune{';', ','})
		require.NoError(t, err)
		assert.Equal(t, ';', parsed.Delimiter)
		assert.Equal(t, 1, parsed.Attempts)
	})

	t.Run("short rows are kept for validation", func(t *testing.T) {
		text := "01-06-2025,12:00,260,5.0\n01-06-2025,12:30\n"
		parsed, err := ParseFeed(text, nil)
		require.NoError(t, err)
		require.Len(t, parsed.Records, 2)
		assert.Empty(t, parsed.Records[1].StationID)
	})
}
