package domain

import (
	"bufio"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"
	"time"
)

const (
	textDateLayout = "20060102"
	textTimeLayout = "1504"

	// InstCodeHistorical is assumed for plain-text lines without an InstCode.
	InstCodeHistorical = "RIVM_HIST"
	// InstCodePeak marks readings selected by [DailyPeaks].
	InstCodePeak = "RIVM_PEAK"
)

// TextFeedHeader is written at the top of every plain-text feed file.
var TextFeedHeader = []string{
	"# UV Index Data (TEMIS forecast & RIVM historical)",
	"# Data processed for De Bilt coordinates",
	"# Format: YYYYMMDD hhmm  T.dec   UVI InstCode",
	"# T.dec is a placeholder (0.0 for forecast), InstCode indicates source.",
	"YYYYMMDD hhmm  T.dec   UVI InstCode",
}

// TextReading is one line of the plain-text feed variant. Time is a civil
// value with no zone attached (UTC is used as a neutral carrier).
type TextReading struct {
	Time     time.Time
	TDec     string
	UVI      float64
	UVIText  string // UVI as read; written back verbatim when set
	InstCode string
}

// key identifies a reading for de-duplication.
func (r TextReading) key() string {
	return r.Time.Format(textDateLayout+textTimeLayout) + r.InstCode
}

// ParseTextFeed reads "YYYYMMDD HHMM T.dec UVI [InstCode]" lines. Comments,
// the column header and malformed lines are skipped.
func ParseTextFeed(r io.Reader) ([]TextReading, error) {
	var out []TextReading
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") || strings.HasPrefix(strings.ToLower(line), "yyyymmdd") {
			continue
		}
		if rd, ok := parseTextLine(line); ok {
			out = append(out, rd)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read text feed: %w", err)
	}
	return out, nil
}

func parseTextLine(line string) (TextReading, bool) {
	parts := strings.Fields(line)
	if len(parts) < 4 {
		return TextReading{}, false
	}
	ts, err := time.Parse(textDateLayout+" "+textTimeLayout, parts[0]+" "+parts[1])
	if err != nil {
		return TextReading{}, false
	}
	if _, err := strconv.ParseFloat(parts[2], 64); err != nil {
		return TextReading{}, false
	}
	uvi, err := strconv.ParseFloat(parts[3], 64)
	if err != nil {
		return TextReading{}, false
	}
	inst := InstCodeHistorical
	if len(parts) >= 5 {
		inst = parts[4]
	}
	return TextReading{Time: ts, TDec: parts[2], UVI: uvi, UVIText: parts[3], InstCode: inst}, true
}

// DailyPeaks picks the highest reading of every day. Ties keep the earliest
// reading. Output is ordered by date.
func DailyPeaks(readings []TextReading) []DailyPeak {
	best := make(map[string]TextReading)
	for _, r := range readings {
		day := r.Time.Format(textDateLayout)
		cur, ok := best[day]
		if !ok || r.UVI > cur.UVI || (r.UVI == cur.UVI && r.Time.Before(cur.Time)) {
			best[day] = r
		}
	}

	out := make([]DailyPeak, 0, len(best))
	for _, r := range best {
		y, m, d := r.Time.Date()
		out = append(out, DailyPeak{
			Date:     time.Date(y, m, d, 0, 0, 0, 0, time.UTC),
			PeakHour: float64(r.Time.Hour()) + float64(r.Time.Minute())/60,
			UVIndex:  r.UVI,
			UVIText:  r.UVIText,
			TDec:     r.TDec,
			InstCode: InstCodePeak,
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out
}

// PeakOn returns the peak for the given civil day, or nil.
func PeakOn(peaks []DailyPeak, day time.Time) *DailyPeak {
	for i := range peaks {
		if SameDay(peaks[i].Date, day) {
			return &peaks[i]
		}
	}
	return nil
}

// MergeTextReadings concatenates sets of readings, keeps the first reading for
// every date+time+InstCode and sorts the result by time.
func MergeTextReadings(sets ...[]TextReading) []TextReading {
	seen := make(map[string]struct{})
	var out []TextReading
	for _, set := range sets {
		for _, r := range set {
			k := r.key()
			if _, dup := seen[k]; dup {
				continue
			}
			seen[k] = struct{}{}
			out = append(out, r)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Time.Before(out[j].Time) })
	return out
}

// PeakReadings converts daily peaks back into plain-text readings.
func PeakReadings(peaks []DailyPeak) []TextReading {
	out := make([]TextReading, 0, len(peaks))
	for _, p := range peaks {
		minutes := int(p.PeakHour*60 + 0.5)
		out = append(out, TextReading{
			Time:     p.Date.Add(time.Duration(minutes) * time.Minute),
			TDec:     p.TDec,
			UVI:      p.UVIndex,
			UVIText:  p.UVIText,
			InstCode: p.InstCode,
		})
	}
	return out
}

// WriteTextFeed writes the header block followed by one line per reading.
// T.dec and UVI text read by [ParseTextFeed] are written back unchanged;
// readings built in code fall back to "0.0" and two decimals.
func WriteTextFeed(w io.Writer, readings []TextReading) error {
	bw := bufio.NewWriter(w)
	for _, h := range TextFeedHeader {
		if _, err := fmt.Fprintln(bw, h); err != nil {
			return err
		}
	}
	for _, r := range readings {
		tdec := r.TDec
		if tdec == "" {
			tdec = "0.0"
		}
		uvi := r.UVIText
		if uvi == "" {
			uvi = strconv.FormatFloat(r.UVI, 'f', 2, 64)
		}
		if _, err := fmt.Fprintf(bw, "%s %s  %s   %s %s\n",
			r.Time.Format(textDateLayout), r.Time.Format(textTimeLayout), tdec, uvi, r.InstCode); err != nil {
			return err
		}
	}
	return bw.Flush()
}
