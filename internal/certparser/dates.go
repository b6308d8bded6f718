package certparser

import (
	"regexp"

	"fjacquet/cert-archive/internal/dateutils"
	"fjacquet/cert-archive/internal/parsererror"
)

// datePatterns are tried in order; the first one that matches anywhere in the
// text decides the outcome.
var datePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)(\w+)\s+(\d+),\s+(\d{4})\s+at\s+(\d+):(\d+)[AP]M`),
	regexp.MustCompile(`(?i)(\w+)\s+(\d+),\s+(\d{4})`),
	regexp.MustCompile(`(?i)(\d{1,2})[/-](\d{1,2})[/-](\d{4})`),
	regexp.MustCompile(`(?i)(\d{4})[/-](\d{1,2})[/-](\d{1,2})`),
}

// ExtractDate finds the completion date in certificate text.
//
// A match that no layout accepts stops the search and is reported as
// Unparseable; later patterns are not consulted.
func ExtractDate(text string) Field[CertificateDate] {
	for _, re := range datePatterns {
		match := re.FindString(text)
		if match == "" {
			continue
		}

		t, _, err := dateutils.ParseDate(match)
		if err != nil {
			return unparseable[CertificateDate](&parsererror.FieldError{
				Field: "date",
				Value: match,
				Err:   err,
			})
		}
		return found(CertificateDate{
			Year: dateutils.YearString(t),
			ISO:  dateutils.ToISODate(t),
		})
	}
	return absent[CertificateDate]()
}
