package domain

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

var (
	// ErrUnparseableFeed means no candidate delimiter produced a usable table.
	// It is an unexpected condition and is reported to callers as an error.
	ErrUnparseableFeed = errors.New("feed could not be parsed with any delimiter")

	// ErrNoData means the feed parsed but no row survived validation for the
	// target date. This is expected, e.g. early in the morning.
	ErrNoData = errors.New("no valid UV readings for target date")
)

// RawMeasurementRecord is one untyped row of the measurement feed.
type RawMeasurementRecord struct {
	Date      string
	Time      string
	StationID string
	Value     string
	Status    string
	Forecast  string
	Line      int
}

// StationInfo is station metadata from the station directory.
type StationInfo struct {
	ID        StationID `json:"id"`
	Longitude float64   `json:"longitude"`
	Latitude  float64   `json:"latitude"`
	Name      string    `json:"name"`
	Altitude  float64   `json:"altitude"`
	Region    string    `json:"region"`
}

// StationID is a station identifier. The directory sends it as either a JSON
// string or a JSON number; both decode to the same string form.
type StationID string

// UnmarshalJSON accepts "260" and 260.
func (id *StationID) UnmarshalJSON(b []byte) error {
	s := strings.TrimSpace(string(b))
	if s == "null" {
		*id = ""
		return nil
	}
	if strings.HasPrefix(s, `"`) {
		var v string
		if err := json.Unmarshal(b, &v); err != nil {
			return fmt.Errorf("station id: %w", err)
		}
		*id = StationID(strings.TrimSpace(v))
		return nil
	}
	if _, err := strconv.ParseFloat(s, 64); err != nil {
		return fmt.Errorf("station id: unexpected value %s", s)
	}
	*id = StationID(s)
	return nil
}

// HourlyUVRecord is the mean UV index of one station over one clock hour.
type HourlyUVRecord struct {
	Hour      time.Time `json:"hour"`
	StationID string    `json:"stationId"`
	UVIndex   float64   `json:"uvIndex"`
}

// CombinedResult is what the service caches and returns to callers.
type CombinedResult struct {
	UVData          []HourlyUVRecord `json:"uvData"`
	StationMetadata []StationInfo    `json:"stationMetadata"`
	MockUVDataUsed  bool             `json:"mockUvDataUsed"`
	Message         string           `json:"message,omitempty"`
	Error           string           `json:"error,omitempty"`
	ErrorDetails    string           `json:"errorDetails,omitempty"`
}

// Cacheable reports whether the result may be stored in the response cache.
// Results produced by an unexpected error are never cached so the next
// request retries the whole pipeline.
func (r CombinedResult) Cacheable() bool {
	return r.Error == ""
}

// normalized returns r with nil slices replaced by empty ones so the JSON
// payload always carries arrays.
func (r CombinedResult) normalized() CombinedResult {
	if r.UVData == nil {
		r.UVData = []HourlyUVRecord{}
	}
	if r.StationMetadata == nil {
		r.StationMetadata = []StationInfo{}
	}
	return r
}

// NewCombinedResult builds a real (non-mock) result.
func NewCombinedResult(records []HourlyUVRecord, stations []StationInfo, message string) CombinedResult {
	return CombinedResult{
		UVData:          records,
		StationMetadata: stations,
		Message:         message,
	}.normalized()
}
