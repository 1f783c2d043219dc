package domain

import (
	"sort"
	"time"
)

// MapPoint is a station joined with its most recent hourly value.
type MapPoint struct {
	StationInfo
	Hour    time.Time `json:"hour"`
	UVIndex float64   `json:"uvIndex"`
}

// JoinLatest joins the latest hourly record of every station with its
// metadata. Stations without metadata cannot be placed on a map; their ids are
// returned in missing (sorted) and they are left out of points. The records
// themselves stay valid for numeric use.
func JoinLatest(records []HourlyUVRecord, stations []StationInfo) (points []MapPoint, missing []string) {
	byID := make(map[string]StationInfo, len(stations))
	for _, s := range stations {
		byID[string(s.ID)] = s
	}

	latest := make(map[string]HourlyUVRecord)
	for _, r := range records {
		if cur, ok := latest[r.StationID]; !ok || r.Hour.After(cur.Hour) {
			latest[r.StationID] = r
		}
	}

	points = make([]MapPoint, 0, len(latest))
	for id, r := range latest {
		info, ok := byID[id]
		if !ok {
			missing = append(missing, id)
			continue
		}
		points = append(points, MapPoint{StationInfo: info, Hour: r.Hour, UVIndex: r.UVIndex})
	}
	sort.Slice(points, func(i, j int) bool { return points[i].ID < points[j].ID })
	sort.Strings(missing)
	return points, missing
}
