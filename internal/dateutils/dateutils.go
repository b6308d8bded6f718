// Package dateutils provides the date layouts found on completion certificates
// and helpers to turn them into ISO dates and years.
package dateutils

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

// Layouts seen on certificates.
const (
	DateLayoutISO        = "2006-01-02"
	DateLayoutLongMonth  = "January 2, 2006"
	DateLayoutShortMonth = "Jan 2, 2006"
	DateLayoutUS         = "1/2/2006"
	DateLayoutEuropean   = "2/1/2006"
	DateLayoutYearFirst  = "2006-1-2"
	DateLayoutYearSlash  = "2006/1/2"

	// TimestampLayout is the microsecond local timestamp stamped on the index.
	TimestampLayout = "2006-01-02T15:04:05.000000"
)

// CertificateFormats is tried in order; the first layout that parses wins.
// US month/day is tried before day/month, so "05/06/2024" is May 6th.
var CertificateFormats = []string{
	DateLayoutLongMonth,
	DateLayoutShortMonth,
	DateLayoutUS,
	DateLayoutEuropean,
	DateLayoutYearFirst,
	DateLayoutYearSlash,
}

var (
	whitespaceRe = regexp.MustCompile(`\s+`)
	atClauseRe   = regexp.MustCompile(`(?i)\s+at(\s.*)?$`)
	yearRe       = regexp.MustCompile(`\d{4}`)
)

// ParseDate parses a certificate date string and returns the time and the
// layout that matched. A trailing " at 07:24AM" clause is ignored.
func ParseDate(dateStr string) (time.Time, string, error) {
	cleaned := CleanDateString(dateStr)

	for _, layout := range CertificateFormats {
		if t, err := time.Parse(layout, cleaned); err == nil {
			return t, layout, nil
		}
	}

	return time.Time{}, "", fmt.Errorf("unable to parse date: %q", cleaned)
}

// CleanDateString drops any " at ..." time clause and collapses whitespace.
func CleanDateString(dateStr string) string {
	dateStr = atClauseRe.ReplaceAllString(strings.TrimSpace(dateStr), "")
	return strings.TrimSpace(whitespaceRe.ReplaceAllString(dateStr, " "))
}

// ToISODate formats t as YYYY-MM-DD.
func ToISODate(t time.Time) string {
	return t.Format(DateLayoutISO)
}

// YearString returns the four-digit year of t.
func YearString(t time.Time) string {
	return fmt.Sprintf("%04d", t.Year())
}

// FirstYear returns the first run of four digits in s, e.g. the year in a
// folder name like "2023" or "certs-2021-q3".
func FirstYear(s string) (string, bool) {
	y := yearRe.FindString(s)
	return y, y != ""
}

// IsYearName reports whether name is exactly four digits.
func IsYearName(name string) bool {
	if len(name) != 4 {
		return false
	}
	for _, r := range name {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// FormatTimestamp renders t the way the catalog metadata expects.
func FormatTimestamp(t time.Time) string {
	return t.Format(TimestampLayout)
}
