package domain

import (
	"math"
	"strconv"
	"strings"
	"time"
)

const (
	dateLayout = "2-1-2006"

	// MinUVIndex and MaxUVIndex bound accepted measurements (inclusive).
	MinUVIndex = 0.0
	MaxUVIndex = 20.0
)

var timestampLayouts = []string{
	dateLayout + " 15:04",
	dateLayout + " 15:04:05",
}

// RejectReason says why a feed row was dropped. The zero value means the row
// is valid.
type RejectReason string

const (
	RejectMissingField     RejectReason = "missing_field"
	RejectInvalidTimestamp RejectReason = "invalid_timestamp"
	RejectOtherDate        RejectReason = "other_date"
	RejectInvalidValue     RejectReason = "invalid_value"
	RejectOutOfRange       RejectReason = "out_of_range"
)

// RejectReasons lists every reason in a stable order, for reporting.
var RejectReasons = []RejectReason{
	RejectMissingField,
	RejectInvalidTimestamp,
	RejectOtherDate,
	RejectInvalidValue,
	RejectOutOfRange,
}

// Reading is a validated measurement.
type Reading struct {
	StationID string
	Time      time.Time // reading time in the feed zone
	Hour      time.Time // start of the civil hour containing Time, in the feed zone
	Value     float64
}

// ParsedRow is either a valid Reading or a rejection.
type ParsedRow struct {
	Reading Reading
	Reason  RejectReason
}

// Valid reports whether the row carries a usable reading.
func (p ParsedRow) Valid() bool { return p.Reason == "" }

func rejected(reason RejectReason) ParsedRow { return ParsedRow{Reason: reason} }

// ValidateRow checks one raw record against the target civil date. The date
// and time are read as wall-clock values in loc; only the calendar day is
// compared with target, never the instant.
func ValidateRow(rec RawMeasurementRecord, target time.Time, loc *time.Location) ParsedRow {
	if rec.Date == "" || rec.Time == "" || rec.StationID == "" || rec.Value == "" {
		return rejected(RejectMissingField)
	}

	ts, ok := parseCivil(rec.Date, rec.Time, loc)
	if !ok {
		return rejected(RejectInvalidTimestamp)
	}
	if !SameDay(ts, target) {
		return rejected(RejectOtherDate)
	}

	value, ok := parseMeasurement(rec.Value)
	if !ok {
		return rejected(RejectInvalidValue)
	}
	if value < MinUVIndex || value > MaxUVIndex {
		return rejected(RejectOutOfRange)
	}

	return ParsedRow{Reading: Reading{
		StationID: rec.StationID,
		Time:      ts,
		Hour:      HourBucket(ts),
		Value:     value,
	}}
}

func parseCivil(date, clock string, loc *time.Location) (time.Time, bool) {
	s := strings.TrimSpace(date) + " " + strings.TrimSpace(clock)
	for _, layout := range timestampLayouts {
		if t, err := time.ParseInLocation(layout, s, loc); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// parseMeasurement accepts plain decimals such as "5.3" and "5,3". Hex
// floats, exponents and named values are rejected; -0 reads as 0.
func parseMeasurement(s string) (float64, bool) {
	s = strings.ReplaceAll(strings.TrimSpace(s), ",", ".")
	if !plainDecimal(s) {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v + 0, true
}

// plainDecimal reports whether s is an optional sign, digits and at most one
// decimal point, with at least one digit.
func plainDecimal(s string) bool {
	if s != "" && (s[0] == '+' || s[0] == '-') {
		s = s[1:]
	}
	digits, dots := 0, 0
	for _, c := range s {
		switch {
		case c >= '0' && c <= '9':
			digits++
		case c == '.':
			dots++
		default:
			return false
		}
	}
	return digits > 0 && dots <= 1
}

// HourBucket returns the start of the civil hour containing t, in t's zone.
// A reading at exactly hh:00 belongs to hour hh.
func HourBucket(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), 0, 0, 0, t.Location())
}

// SameDay reports whether a and b fall on the same calendar day, each read in
// its own zone.
func SameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// CivilDate returns midnight of t's calendar day in loc.
func CivilDate(t time.Time, loc *time.Location) time.Time {
	y, m, d := t.In(loc).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, loc)
}
