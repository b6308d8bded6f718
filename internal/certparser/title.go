package certparser

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"fjacquet/cert-archive/internal/textutils"
)

const (
	minTitleLen = 5
	maxTitleLen = 300
)

var (
	fourDigitsRe     = regexp.MustCompile(`\d{4}`)
	clockAnyCaseRe   = regexp.MustCompile(`(?i)\d{1,2}:\d{2}[AP]M`)
	clockUpperRe     = regexp.MustCompile(`\d{1,2}:\d{2}[AP]M`)
	durationBulletRe = regexp.MustCompile(`(?i)\d+\s+(hour|minute)s?\s*•`)
)

// ExtractTitle assembles the course title from the lines that precede the
// "Course completed by" marker. Titles may wrap over several lines.
func ExtractTitle(text string) Field[string] {
	var parts []string

	for _, line := range textutils.NonBlankLines(text) {
		lower := strings.ToLower(line)

		if strings.Contains(lower, "linkedin learning") && utf8.RuneCountInString(line) < 30 {
			continue
		}
		if strings.Contains(lower, "course completed") || strings.Contains(lower, "completed by") {
			break
		}
		if isDateTimeLine(line, lower) || durationBulletRe.MatchString(line) {
			continue
		}
		if textutils.ContainsAny(lower, titleExcluded...) {
			continue
		}
		if utf8.RuneCountInString(line) < 3 || !textutils.HasLetter(line) {
			continue
		}
		if clockUpperRe.MatchString(line) || strings.Contains(lower, "utc") {
			continue
		}
		parts = append(parts, line)
	}

	if len(parts) == 0 {
		return absent[string]()
	}

	title := CleanTitle(strings.Join(parts, " "))
	if !ValidTitle(title) {
		return absent[string]()
	}
	return found(title)
}

// ValidTitle reports whether title has a plausible length for a course
// title, counted in characters.
func ValidTitle(title string) bool {
	n := utf8.RuneCountInString(title)
	return n >= minTitleLen && n <= maxTitleLen
}

// CleanTitle collapses whitespace runs and trims. It is idempotent.
func CleanTitle(title string) string {
	return textutils.CollapseWhitespace(title)
}

func isDateTimeLine(line, lower string) bool {
	if !textutils.ContainsAny(lower, monthPrefixes...) || !fourDigitsRe.MatchString(line) {
		return false
	}
	return clockAnyCaseRe.MatchString(line) || strings.Contains(lower, "utc")
}
