// Package catalog turns certificate PDFs into catalog records and assembles
// them into the sorted, summarized index.
package catalog

import (
	"context"
	"path/filepath"
	"sort"
	"time"

	"fjacquet/cert-archive/internal/categorizer"
	"fjacquet/cert-archive/internal/certparser"
	"fjacquet/cert-archive/internal/dateutils"
	"fjacquet/cert-archive/internal/logging"
	"fjacquet/cert-archive/internal/models"
	"fjacquet/cert-archive/internal/pdftext"
)

// DefaultYear is used when neither the text nor the folder gives a year.
const DefaultYear = "2024"

// DefaultProgressEvery is how often Build reports progress.
const DefaultProgressEvery = 50

// Options controls the fallbacks applied to every record.
type Options struct {
	DefaultYear   string
	Provider      string
	XMPFallback   bool
	ProgressEvery int
}

// DefaultOptions returns the options used when nothing is configured.
func DefaultOptions() Options {
	return Options{
		DefaultYear:   DefaultYear,
		Provider:      models.DefaultProvider,
		ProgressEvery: DefaultProgressEvery,
	}
}

// XMPReader reads the metadata packet of a PDF.
type XMPReader func(path string) (pdftext.XMPMetadata, error)

// Builder produces catalog records, one document at a time.
type Builder struct {
	extractor  pdftext.TextExtractor
	parser     *certparser.Parser
	classifier *categorizer.Classifier
	logger     logging.Logger
	opts       Options
	now        func() time.Time
	readXMP    XMPReader
}

// NewBuilder creates a Builder. Zero-valued options are replaced by their
// defaults.
func NewBuilder(extractor pdftext.TextExtractor, parser *certparser.Parser, classifier *categorizer.Classifier, logger logging.Logger, opts Options) *Builder {
	if logger == nil {
		logger = logging.NewDiscardLogger()
	}
	if opts.DefaultYear == "" {
		opts.DefaultYear = DefaultYear
	}
	if opts.Provider == "" {
		opts.Provider = models.DefaultProvider
	}
	if opts.ProgressEvery <= 0 {
		opts.ProgressEvery = DefaultProgressEvery
	}
	return &Builder{
		extractor:  extractor,
		parser:     parser,
		classifier: classifier,
		logger:     logger,
		opts:       opts,
		now:        time.Now,
		readXMP:    pdftext.ReadXMP,
	}
}

// WithClock replaces the clock used for the index timestamp.
func (b *Builder) WithClock(now func() time.Time) *Builder {
	b.now = now
	return b
}

// WithXMPReader replaces the XMP reader used when the fallback is enabled.
func (b *Builder) WithXMPReader(r XMPReader) *Builder {
	b.readXMP = r
	return b
}

// BuildRecord extracts and classifies one certificate. Extraction problems
// never fail the record; they degrade it to its fallbacks. The only error
// returned is the context's.
func (b *Builder) BuildRecord(ctx context.Context, path string, id int) (models.CertificateRecord, error) {
	text, err := b.extractor.ExtractText(ctx, path)
	if ctxErr := ctx.Err(); ctxErr != nil {
		return models.CertificateRecord{}, ctxErr
	}
	record, _ := b.RecordFromText(path, id, text, err)
	return record, nil
}

// RecordFromText builds the record for path from already extracted text and
// returns the raw extractor results alongside it. extractErr is the error
// the text extractor reported, if any.
func (b *Builder) RecordFromText(path string, id int, text string, extractErr error) (models.CertificateRecord, certparser.Result) {
	log := b.logger.WithField(logging.FieldFile, path)
	if extractErr != nil {
		log.WithError(extractErr).Warn("Certificate text unavailable, using fallbacks")
		text = ""
	}

	res := b.parser.Parse(text)
	var xmp *pdftext.XMPMetadata
	if b.opts.XMPFallback && (!res.Title.Ok() || !res.Date.Ok()) {
		xmp = b.lookupXMP(log, path)
	}

	title := b.resolveTitle(res, xmp, path)
	date, year := b.resolveDate(res, xmp, path)

	duration, ok := res.Duration.Get()
	if !ok {
		duration, _ = DurationFromFolder(path)
	}

	skills := res.Skills
	if skills == nil {
		skills = []string{}
	}

	record := models.CertificateRecord{
		ID:       id,
		Title:    title,
		Path:     filepath.ToSlash(path),
		Domain:   b.classifier.Classify(title, skills, FolderHint(path)),
		Year:     year,
		Date:     models.StringPtr(date),
		Duration: models.StringPtr(duration),
		Skills:   skills,
		Provider: b.opts.Provider,
	}

	if !res.Title.Ok() {
		log.Warn("Certificate title not found in text",
			logging.F(logging.FieldTitle, record.Title),
			logging.F(logging.FieldReason, res.Title.Outcome.String()))
	}
	log.Debug("Certificate record built",
		logging.F(logging.FieldDomain, record.Domain),
		logging.F(logging.FieldYear, record.Year))
	return record, res
}

func (b *Builder) lookupXMP(log logging.Logger, path string) *pdftext.XMPMetadata {
	meta, err := b.readXMP(path)
	if err != nil {
		log.WithError(err).Debug("No usable XMP metadata")
		return nil
	}
	return &meta
}

func (b *Builder) resolveTitle(res certparser.Result, xmp *pdftext.XMPMetadata, path string) string {
	if title, ok := res.Title.Get(); ok {
		return title
	}
	if xmp != nil {
		if title := certparser.CleanTitle(xmp.Title); certparser.ValidTitle(title) {
			return title
		}
	}
	return TitleFromFilename(path)
}

func (b *Builder) resolveDate(res certparser.Result, xmp *pdftext.XMPMetadata, path string) (date, year string) {
	if d, ok := res.Date.Get(); ok {
		return d.ISO, d.Year
	}
	if xmp != nil {
		if iso, ok := xmp.Date(); ok {
			return iso, iso[:4]
		}
	}
	if y, ok := FolderYear(path); ok {
		return "", y
	}
	return "", b.opts.DefaultYear
}

// Build processes paths in order, numbering records from 1, and returns the
// sorted index. It stops early only when ctx is cancelled.
func (b *Builder) Build(ctx context.Context, paths []string) (*models.CatalogIndex, error) {
	records := make([]models.CertificateRecord, 0, len(paths))
	for i, path := range paths {
		record, err := b.BuildRecord(ctx, path, i+1)
		if err != nil {
			return nil, err
		}
		records = append(records, record)

		if (i+1)%b.opts.ProgressEvery == 0 {
			b.logger.Info("Processing certificates",
				logging.F(logging.FieldCount, i+1),
				logging.F(logging.FieldTotal, len(paths)))
		}
	}

	SortRecords(records)
	index := &models.CatalogIndex{
		Metadata:     Summarize(records, b.now()),
		Certificates: records,
	}

	b.logger.Info("Catalog index built",
		logging.F(logging.FieldTotal, index.Metadata.Total),
		logging.F("domains", index.Metadata.Domains),
		logging.F("years", index.Metadata.Years))
	for _, dc := range DomainDistribution(records) {
		b.logger.Info("Domain distribution",
			logging.F(logging.FieldDomain, dc.Domain),
			logging.F(logging.FieldCount, dc.Count))
	}
	return index, nil
}

// SortRecords orders records by (year, title) descending. Equal keys keep
// their processing order.
func SortRecords(records []models.CertificateRecord) {
	sort.SliceStable(records, func(i, j int) bool {
		if records[i].Year != records[j].Year {
			return records[i].Year > records[j].Year
		}
		return records[i].Title > records[j].Title
	})
}

// Summarize computes the index metadata for records.
func Summarize(records []models.CertificateRecord, now time.Time) models.CatalogMetadata {
	domains := make(map[models.Domain]struct{})
	yearSet := make(map[string]struct{})
	for _, r := range records {
		domains[r.Domain] = struct{}{}
		yearSet[r.Year] = struct{}{}
	}

	years := make([]string, 0, len(yearSet))
	for y := range yearSet {
		years = append(years, y)
	}
	sort.Sort(sort.Reverse(sort.StringSlice(years)))

	return models.CatalogMetadata{
		Total:       len(records),
		Domains:     len(domains),
		Years:       years,
		LastUpdated: dateutils.FormatTimestamp(now),
	}
}

// DomainCount is one line of the domain distribution.
type DomainCount struct {
	Domain models.Domain
	Count  int
}

// DomainDistribution counts records per domain, most frequent first. Ties
// follow the vocabulary order.
func DomainDistribution(records []models.CertificateRecord) []DomainCount {
	counts := make(map[models.Domain]int)
	for _, r := range records {
		counts[r.Domain]++
	}

	out := make([]DomainCount, 0, len(counts))
	for _, d := range models.AllDomains {
		if n := counts[d]; n > 0 {
			out = append(out, DomainCount{Domain: d, Count: n})
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Count > out[j].Count })
	return out
}
