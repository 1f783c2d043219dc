package domain

import "time"

// mockStations is metadata for the stations used by [GenerateMock].
var mockStations = []StationInfo{
	{ID: "260", Name: "De Bilt", Latitude: 52.10, Longitude: 5.18, Altitude: 2, Region: "Utrecht"},
	{ID: "280", Name: "Groningen", Latitude: 53.13, Longitude: 6.59, Altitude: 5, Region: "Groningen"},
	{ID: "310", Name: "Vlissingen", Latitude: 51.44, Longitude: 3.60, Altitude: 8, Region: "Zeeland"},
	{ID: "344", Name: "Rotterdam", Latitude: 51.96, Longitude: 4.45, Altitude: -4, Region: "Zuid-Holland"},
}

// GenerateMock returns a small fixed dataset used whenever real data is
// unavailable. reason becomes the user-visible message. cause is set only for
// unexpected failures; it populates Error and makes the result ineligible for
// caching.
func GenerateMock(now time.Time, reason string, cause error) CombinedResult {
	hour := now.UTC().Truncate(time.Hour)
	prevHour := hour.Add(-time.Hour)
	yesterday := hour.AddDate(0, 0, -1)

	res := CombinedResult{
		UVData: []HourlyUVRecord{
			{Hour: prevHour, StationID: "260", UVIndex: 2.1},
			{Hour: hour, StationID: "260", UVIndex: 2.5},
			{Hour: hour, StationID: "280", UVIndex: 1.8},
			{Hour: yesterday, StationID: "310", UVIndex: 3.2},
			{Hour: yesterday.Add(-time.Hour), StationID: "344", UVIndex: 2.9},
		},
		StationMetadata: MockStations(),
		MockUVDataUsed:  true,
		Message:         reason,
	}
	if cause != nil {
		res.Error = cause.Error()
	}
	return res
}

// MockStations returns a copy of the metadata for the mock dataset.
func MockStations() []StationInfo {
	out := make([]StationInfo, len(mockStations))
	copy(out, mockStations)
	return out
}
