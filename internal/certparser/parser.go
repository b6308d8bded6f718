// Package certparser pulls course metadata out of the plain text of a
// completion certificate. Every extractor is a pure function of the text;
// Parser only bundles them and reports what it found.
package certparser

import (
	"fjacquet/cert-archive/internal/logging"
)

// Result groups the outcome of every extractor for one document.
type Result struct {
	Title    Field[string]
	Date     Field[CertificateDate]
	Duration Field[string]
	Skills   []string
}

// Parser runs the field extractors over certificate text.
type Parser struct {
	logger logging.Logger
}

// NewParser creates a Parser. A nil logger discards diagnostics.
func NewParser(logger logging.Logger) *Parser {
	if logger == nil {
		logger = logging.NewDiscardLogger()
	}
	return &Parser{logger: logger}
}

// Parse extracts every field from text. Empty text yields an all-absent
// Result with no skills.
func (p *Parser) Parse(text string) Result {
	if text == "" {
		return Result{
			Title:    absent[string](),
			Date:     absent[CertificateDate](),
			Duration: absent[string](),
			Skills:   []string{},
		}
	}

	res := Result{
		Title:    ExtractTitle(text),
		Date:     ExtractDate(text),
		Duration: ExtractDuration(text),
		Skills:   ExtractSkills(text),
	}

	p.logger.WithFields(
		logging.F(logging.FieldTitle, res.Title.String()),
		logging.F("date", res.Date.String()),
		logging.F("duration", res.Duration.String()),
		logging.F("skills", len(res.Skills)),
	).Debug("Certificate fields extracted")

	if res.Date.Outcome == Unparseable {
		p.logger.WithError(res.Date.Err).Debug("Date matched but could not be parsed",
			logging.F(logging.FieldField, "date"),
			logging.F(logging.FieldOutcome, res.Date.Outcome.String()))
	}
	return res
}
