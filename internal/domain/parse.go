package domain

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"
)

// DefaultDelimiters is the order in which feed delimiters are tried.
var DefaultDelimiters = []rune{',', ';'}

// ParsedFeed is the outcome of a successful [ParseFeed].
type ParsedFeed struct {
	Records   []RawMeasurementRecord
	Delimiter rune
	Attempts  int // delimiters tried, including the successful one
}

var (
	errNoRows     = errors.New("no data rows")
	errTooNarrow  = errors.New("no row has enough columns")
	headerAliases = map[string][]string{
		"date":     {"date", "datum", "dag"},
		"time":     {"time", "tijd", "uur"},
		"station":  {"station", "station_id", "stationid", "stationcode", "locatie"},
		"value":    {"uvi", "uv", "uv_index", "uvindex", "value", "waarde", "zonkracht", "measurement"},
		"status":   {"status", "quality", "kwaliteit"},
		"forecast": {"forecast", "verwachting"},
	}
)

// columns holds field indexes; -1 marks an absent optional column.
type columns struct {
	date, time, station, value int
	status, forecast           int
}

var positionalColumns = columns{date: 0, time: 1, station: 2, value: 3, status: 4, forecast: 5}

// required is the minimum field count a row needs to carry every required column.
func (c columns) required() int {
	return max(c.date, c.time, c.station, c.value) + 1
}

// ParseFeed parses delimited feed text, trying each delimiter in order and
// returning the first attempt that produces a usable table. Later delimiters
// are not tried once one succeeds. When every attempt fails the error wraps
// [ErrUnparseableFeed].
func ParseFeed(text string, delimiters []rune) (ParsedFeed, error) {
	if len(delimiters) == 0 {
		delimiters = DefaultDelimiters
	}
	text = strings.TrimPrefix(text, "\ufeff")

	errs := make([]error, 0, len(delimiters))
	for i, d := range delimiters {
		records, err := parseWithDelimiter(text, d)
		if err == nil {
			return ParsedFeed{Records: records, Delimiter: d, Attempts: i + 1}, nil
		}
		errs = append(errs, fmt.Errorf("delimiter %q: %w", d, err))
	}
	return ParsedFeed{Attempts: len(delimiters)}, fmt.Errorf("%w: %w", ErrUnparseableFeed, errors.Join(errs...))
}

// parseWithDelimiter reads the whole text with one delimiter. It fails on CSV
// syntax errors, on an empty table, and when no row is wide enough for the
// required columns, which is what a wrong delimiter looks like.
func parseWithDelimiter(text string, delim rune) ([]RawMeasurementRecord, error) {
	r := csv.NewReader(strings.NewReader(text))
	r.Comma = delim
	r.Comment = '#'
	r.FieldsPerRecord = -1
	r.TrimLeadingSpace = true

	var (
		cols       columns
		headerDone bool
		wide       bool
		out        []RawMeasurementRecord
	)
	for {
		fields, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}
		if blankRow(fields) {
			continue
		}
		line, _ := r.FieldPos(0)

		if !headerDone {
			headerDone = true
			if isHeaderRow(fields) {
				cols = headerColumns(fields)
				continue
			}
			cols = positionalColumns
		}

		if len(fields) >= cols.required() {
			wide = true
		}
		out = append(out, RawMeasurementRecord{
			Date:      field(fields, cols.date),
			Time:      field(fields, cols.time),
			StationID: field(fields, cols.station),
			Value:     field(fields, cols.value),
			Status:    field(fields, cols.status),
			Forecast:  field(fields, cols.forecast),
			Line:      line,
		})
	}

	if len(out) == 0 {
		return nil, errNoRows
	}
	if !wide {
		return nil, fmt.Errorf("%w: need %d", errTooNarrow, cols.required())
	}
	return out, nil
}

// isHeaderRow reports whether the first record is a header. A record that
// contains a day-month-year date is data, so header-less files parse too.
func isHeaderRow(fields []string) bool {
	for _, f := range fields {
		if looksLikeDate(f) {
			return false
		}
	}
	return true
}

func looksLikeDate(s string) bool {
	_, err := time.Parse(dateLayout, strings.TrimSpace(s))
	return err == nil
}

// headerColumns resolves columns by name. If any required column is missing
// the whole mapping falls back to positions so a renamed header still parses.
func headerColumns(header []string) columns {
	idx := make(map[string]int, len(header))
	for i, h := range header {
		name := strings.ToLower(strings.TrimSpace(h))
		for key, aliases := range headerAliases {
			if _, seen := idx[key]; seen {
				continue
			}
			for _, a := range aliases {
				if name == a {
					idx[key] = i
				}
			}
		}
	}

	lookup := func(key string) int {
		if i, ok := idx[key]; ok {
			return i
		}
		return -1
	}

	cols := columns{
		date:     lookup("date"),
		time:     lookup("time"),
		station:  lookup("station"),
		value:    lookup("value"),
		status:   lookup("status"),
		forecast: lookup("forecast"),
	}
	if cols.date < 0 || cols.time < 0 || cols.station < 0 || cols.value < 0 {
		return positionalColumns
	}
	return cols
}

func field(fields []string, i int) string {
	if i < 0 || i >= len(fields) {
		return ""
	}
	return strings.TrimSpace(fields[i])
}

func blankRow(fields []string) bool {
	for _, f := range fields {
		if strings.TrimSpace(f) != "" {
			return false
		}
	}
	return true
}
