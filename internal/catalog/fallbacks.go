package catalog

import (
	"path/filepath"
	"regexp"
	"strings"
	"unicode/utf8"

	"fjacquet/cert-archive/internal/certparser"
	"fjacquet/cert-archive/internal/dateutils"
	"fjacquet/cert-archive/internal/textutils"
)

const (
	certificateFilePrefix = "CertificateOfCompletion_"

	// UntitledCertificate is the title of last resort, for files whose
	// name carries no text at all.
	UntitledCertificate = "Untitled certificate"

	maxFilenameTitleLen = 300
)

var (
	trailingCounterRe = regexp.MustCompile(`\s*-\s*\d+$`)
	trailingYearRe    = regexp.MustCompile(`\s*\d{4}$`)
	folderDurationRe  = regexp.MustCompile(`\[.*?-.*?(\d+h?\s*\d*m?)\s*\]`)
)

// TitleFromFilename derives a title from a certificate file name such as
// "CertificateOfCompletion_Learning_Go-2.pdf". The result is never empty:
// when cleaning leaves nothing ("2023.pdf") the raw stem is used, and
// UntitledCertificate when even that is blank.
func TitleFromFilename(path string) string {
	raw := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	stem := strings.TrimPrefix(raw, certificateFilePrefix)

	// Counters are "-N" suffixes, so they go before dashes become spaces.
	stem = trailingCounterRe.ReplaceAllString(stem, "")
	stem = strings.NewReplacer("_", " ", "-", " ").Replace(stem)
	stem = trailingYearRe.ReplaceAllString(textutils.CollapseWhitespace(stem), "")

	for _, title := range []string{stem, raw} {
		if title = textutils.CollapseWhitespace(title); title != "" {
			return limitRunes(title, maxFilenameTitleLen)
		}
	}
	return UntitledCertificate
}

func limitRunes(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return strings.TrimSpace(string([]rune(s)[:n]))
}

// FolderHint is the name of the folder holding the certificate.
func FolderHint(path string) string {
	parent := filepath.Base(filepath.Dir(path))
	if parent == "." || parent == string(filepath.Separator) {
		return ""
	}
	return parent
}

// FolderYear returns the first four-digit run in the parent folder name.
func FolderYear(path string) (string, bool) {
	return dateutils.FirstYear(FolderHint(path))
}

// DurationFromFolder reads the course length from a folder named like
// "Learning Go [Jane Doe - 1h 30m]".
func DurationFromFolder(path string) (string, bool) {
	m := folderDurationRe.FindStringSubmatch(FolderHint(path))
	if m == nil {
		return "", false
	}
	// A bare number carries no unit and is not a duration.
	return certparser.ExtractDuration(m[1]).Get()
}
