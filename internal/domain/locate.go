package domain

import (
	"fmt"
	"strings"
)

// FeedLocator builds the URL of a yearly measurement file.
type FeedLocator struct {
	BaseURL   string // e.g. "https://data.rivm.nl/data/zonkracht/"
	SourceTag string // e.g. "RIVM", inserted into archived file names
	Ext       string // e.g. "txt"
}

// URLForYear returns the file URL for year. The running year's file is
// "Zonkracht<year>.<ext>"; every other year is "Zonkracht<SOURCE><year>.<ext>".
func (l FeedLocator) URLForYear(year, currentYear int) string {
	return l.base() + l.FilenameForYear(year, currentYear)
}

// FilenameForYear returns only the file name part of [FeedLocator.URLForYear].
func (l FeedLocator) FilenameForYear(year, currentYear int) string {
	ext := strings.TrimPrefix(l.Ext, ".")
	if year == currentYear {
		return fmt.Sprintf("Zonkracht%d.%s", year, ext)
	}
	return fmt.Sprintf("Zonkracht%s%d.%s", l.SourceTag, year, ext)
}

func (l FeedLocator) base() string {
	if l.BaseURL == "" || strings.HasSuffix(l.BaseURL, "/") {
		return l.BaseURL
	}
	return l.BaseURL + "/"
}
