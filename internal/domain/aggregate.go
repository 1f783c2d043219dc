package domain

import (
	"sort"
	"time"
)

// Aggregation is the outcome of [ParseAndAggregate].
type Aggregation struct {
	Records   []HourlyUVRecord
	Delimiter rune
	Attempts  int
	RowsTotal int
	Rejected  map[RejectReason]int
}

// ParseAndAggregate runs the full parse, validate, aggregate chain over raw
// feed text. It returns [ErrUnparseableFeed] when no delimiter works and
// [ErrNoData] when nothing survives validation for target.
func ParseAndAggregate(text string, target time.Time, loc *time.Location, delimiters []rune) (Aggregation, error) {
	parsed, err := ParseFeed(text, delimiters)
	if err != nil {
		return Aggregation{Attempts: parsed.Attempts}, err
	}

	agg := Aggregation{
		Delimiter: parsed.Delimiter,
		Attempts:  parsed.Attempts,
		RowsTotal: len(parsed.Records),
		Rejected:  make(map[RejectReason]int),
	}

	readings := make([]Reading, 0, len(parsed.Records))
	for _, rec := range parsed.Records {
		row := ValidateRow(rec, target, loc)
		if !row.Valid() {
			agg.Rejected[row.Reason]++
			continue
		}
		readings = append(readings, row.Reading)
	}

	agg.Records = AggregateHourly(readings)
	if len(agg.Records) == 0 {
		return agg, ErrNoData
	}
	return agg, nil
}

type bucketKey struct {
	station string
	hour    int64
}

type bucket struct {
	hour  time.Time
	sum   float64
	count int
}

// AggregateHourly averages readings per (station, hour). Multiple readings in
// one hour are averaged, never summed or overwritten. Output is ordered by
// station then hour, with hours in UTC.
func AggregateHourly(readings []Reading) []HourlyUVRecord {
	buckets := make(map[bucketKey]*bucket)
	for _, r := range readings {
		k := bucketKey{station: r.StationID, hour: r.Hour.Unix()}
		b, ok := buckets[k]
		if !ok {
			b = &bucket{hour: r.Hour}
			buckets[k] = b
		}
		b.sum += r.Value
		b.count++
	}

	out := make([]HourlyUVRecord, 0, len(buckets))
	for k, b := range buckets {
		out = append(out, HourlyUVRecord{
			Hour:      b.hour.UTC(),
			StationID: k.station,
			UVIndex:   b.sum / float64(b.count),
		})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].StationID != out[j].StationID {
			return out[i].StationID < out[j].StationID
		}
		return out[i].Hour.Before(out[j].Hour)
	})
	return out
}
