package domain

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func amsterdam(t *testing.T) *time.Location {
	t.Helper()
	loc, err := time.LoadLocation("Europe/Amsterdam")
	require.NoError(t, err)
	return loc
}

func rawRow(date, clock, station, value string) RawMeasurementRecord {
	return RawMeasurementRecord{Date: date, Time: clock, StationID: station, Value: value}
}

func TestValidateRow(t *testing.T) {
	loc := amsterdam(t)
	target := time.Date(2025, 6, 1, 0, 0, 0, 0, loc)

	cases := []struct {
		name   string
		rec    RawMeasurementRecord
		reason RejectReason
	}{
		{name: "missing date", rec: rawRow("", "12:00", "260", "5"), reason: RejectMissingField},
		{name: "missing time", rec: rawRow("01-06-2025", "", "260", "5"), reason: RejectMissingField},
		{name: "missing station", rec: rawRow("01-06-2025", "12:00", "", "5"), reason: RejectMissingField},
		{name: "missing value", rec: rawRow("01-06-2025", "12:00", "260", ""), reason: RejectMissingField},
		{name: "garbage date", rec: rawRow("2025/06/01", "12:00", "260", "5"), reason: RejectInvalidTimestamp},
		{name: "impossible date", rec: rawRow("31-02-2025", "12:00", "260", "5"), reason: RejectInvalidTimestamp},
		{name: "hour 24", rec: rawRow("01-06-2025", "24:00", "260", "5"), reason: RejectInvalidTimestamp},
		{name: "previous day", rec: rawRow("31-05-2025", "23:59", "260", "5"), reason: RejectOtherDate},
		{name: "next day", rec: rawRow("02-06-2025", "00:00", "260", "5"), reason: RejectOtherDate},
		{name: "not a number", rec: rawRow("01-06-2025", "12:00", "260", "n/a"), reason: RejectInvalidValue},
		{name: "NaN", rec: rawRow("01-06-2025", "12:00", "260", "NaN"), reason: RejectInvalidValue},
		{name: "infinity", rec: rawRow("01-06-2025", "12:00", "260", "Inf"), reason: RejectInvalidValue},
		{name: "hex float", rec: rawRow("01-06-2025", "12:00", "260", "0x1p3"), reason: RejectInvalidValue},
		{name: "exponent", rec: rawRow("01-06-2025", "12:00", "260", "5e0"), reason: RejectInvalidValue},
		{name: "two decimal points", rec: rawRow("01-06-2025", "12:00", "260", "5.3.1"), reason: RejectInvalidValue},
		{name: "double sign", rec: rawRow("01-06-2025", "12:00", "260", "+-5"), reason: RejectInvalidValue},
		{name: "negative", rec: rawRow("01-06-2025", "12:00", "260", "-0.1"), reason: RejectOutOfRange},
		{name: "above 20", rec: rawRow("01-06-2025", "12:00", "260", "20,5"), reason: RejectOutOfRange},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			row := ValidateRow(tc.rec, target, loc)
			assert.False(t, row.Valid())
			assert.Equal(t, tc.reason, row.Reason)
		})
	}

	t.Run("decimal comma", func(t *testing.T) {
		row := ValidateRow(rawRow("01-06-2025", "12:10", "260", "5,3"), target, loc)
		require.True(t, row.Valid())
		assert.InDelta(t, 5.3, row.Reading.Value, 1e-9)
	})

	t.Run("negative zero reads as zero", func(t *testing.T) {
		row := ValidateRow(rawRow("01-06-2025", "12:00", "260", "-0"), target, loc)
		require.True(t, row.Valid())
		assert.False(t, math.Signbit(row.Reading.Value))
	})

	t.Run("range bounds are inclusive", func(t *testing.T) {
		assert.True(t, ValidateRow(rawRow("01-06-2025", "12:00", "260", "0"), target, loc).Valid())
		assert.True(t, ValidateRow(rawRow("01-06-2025", "12:00", "260", "20"), target, loc).Valid())
	})

	t.Run("single digit day and month", func(t *testing.T) {
		row := ValidateRow(rawRow("1-6-2025", "9:05", "260", "1"), target, loc)
		require.True(t, row.Valid())
		assert.Equal(t, 9, row.Reading.Time.Hour())
	})

	t.Run("seconds are accepted", func(t *testing.T) {
		row := ValidateRow(rawRow("01-06-2025", "14:00:00", "260", "1"), target, loc)
		assert.True(t, row.Valid())
	})

	t.Run("target in another zone compares calendar days", func(t *testing.T) {
		utcTarget := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
		row := ValidateRow(rawRow("01-06-2025", "00:30", "260", "1"), utcTarget, loc)
		assert.True(t, row.Valid(), "00:30 local is still 1 June even though the instant is 31 May UTC")
	})
}

func TestHourBucket(t *testing.T) {
	loc := amsterdam(t)

	t.Run("minute zero belongs to its own hour", func(t *testing.T) {
		ts := time.Date(2025, 6, 1, 14, 0, 0, 0, loc)
		assert.Equal(t, time.Date(2025, 6, 1, 14, 0, 0, 0, loc), HourBucket(ts))
	})

	t.Run("truncates minutes and seconds", func(t *testing.T) {
		ts := time.Date(2025, 6, 1, 14, 59, 59, 0, loc)
		assert.Equal(t, time.Date(2025, 6, 1, 14, 0, 0, 0, loc), HourBucket(ts))
	})

	t.Run("civil hour in a zone with a half hour offset", func(t *testing.T) {
		kolkata, err := time.LoadLocation("Asia/Kolkata")
		require.NoError(t, err)
		ts := time.Date(2025, 6, 1, 14, 20, 0, 0, kolkata)
		bucket := HourBucket(ts)
		assert.Equal(t, 14, bucket.Hour())
		assert.Equal(t, 0, bucket.Minute())
	})
}

func TestCivilDate(t *testing.T) {
	loc := amsterdam(t)
	instant := time.Date(2025, 5, 31, 22, 30, 0, 0, time.UTC) // 00:30 on 1 June in Amsterdam
	assert.Equal(t, time.Date(2025, 6, 1, 0, 0, 0, 0, loc), CivilDate(instant, loc))
}
