package domain

import "time"

// HoursPerDay is the length of an expanded curve.
const HoursPerDay = 24

// DailyPeak is the highest reading of one day.
type DailyPeak struct {
	Date     time.Time // midnight of the civil day
	PeakHour float64   // fractional hour of the peak, e.g. 13.5 for 13:30
	UVIndex  float64
	UVIText  string // UVI of the source reading as written in the feed
	TDec     string // T.dec of the source reading
	InstCode string
}

// CurvePoint is one hour of an expanded curve. UVIndex is nil when the curve
// has no value for that hour.
type CurvePoint struct {
	Hour    int      `json:"hour"`
	UVIndex *float64 `json:"uvIndex"`
}

// ExpandPeak approximates a full day from its peak with a parabola:
//
//	value(h) = max(0, peak * (1 - ((h - peakHour) / halfWidth)^2))
//
// inside [peakHour-halfWidth, peakHour+halfWidth] and 0 outside. A nil peak or
// a non-positive half width yields 24 empty points.
func ExpandPeak(peak *DailyPeak, halfWidth float64) []CurvePoint {
	points := make([]CurvePoint, HoursPerDay)
	for h := range points {
		points[h].Hour = h
	}
	if peak == nil || halfWidth <= 0 {
		return points
	}

	for h := range points {
		v := 0.0
		d := float64(h) - peak.PeakHour
		if d >= -halfWidth && d <= halfWidth {
			r := d / halfWidth
			v = max(0, peak.UVIndex*(1-r*r))
		}
		points[h].UVIndex = &v
	}
	return points
}
