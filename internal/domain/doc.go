// Package domain models RIVM "Zonkracht" UV-index measurement data.
//
// # Data Source
//
// RIVM publishes one measurement file per year under
// https://data.rivm.nl/data/zonkracht/. The file for the running year is named
// "Zonkracht<year>.<ext>"; closed years are archived as
// "Zonkracht<SOURCE><year>.<ext>" (e.g. "ZonkrachtRIVM2024.txt"). Early in a
// year the current file exists but is an almost empty placeholder. See
// [FeedLocator].
//
// # Feed Conventions
//
// Delimiter:
//
//	Comma or semicolon, depending on which export produced the file. The
//	delimiter is not declared anywhere, so parsing tries an ordered list of
//	candidates and keeps the first one that yields a usable table.
//
// Rows:
//
//	date (DD-MM-YYYY), time (HH:MM, local civil time), station id,
//	measurement, then optional status and forecast columns.
//	"#" lines are comments. The header row may be missing.
//
// Decimal separator:
//
//	Either "." or ",". Values are normalized to "." before parsing.
//
// Valid range:
//
//	0 to 20 inclusive. The UV index has no hard upper bound, but readings above
//	20 do not occur at Dutch latitudes and indicate sensor or export faults.
//
// # Time
//
// Dates and times in the feed are civil (wall-clock) values for a fixed IANA
// zone, Europe/Amsterdam by default. They are combined with the zone exactly
// once, in [ValidateRow], and hour buckets are built with [time.Date] in that
// zone so DST transitions never shift a reading into a neighbouring hour.
// Emitted instants are UTC.
//
// # Plain-text Variant
//
// The forecast tooling writes a whitespace-separated file
// "YYYYMMDD HHMM T.dec UVI InstCode" that carries one peak reading per day.
// [ParseTextFeed], [DailyPeaks] and [ExpandPeak] turn it into an hourly curve.
package domain
