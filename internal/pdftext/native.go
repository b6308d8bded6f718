package pdftext

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"fjacquet/cert-archive/internal/logging"
	"fjacquet/cert-archive/internal/parsererror"

	"github.com/ledongthuc/pdf"
)

// NativeExtractor reads the text layer in-process with ledongthuc/pdf.
type NativeExtractor struct {
	logger logging.Logger
}

// NewNativeExtractor creates a NativeExtractor.
func NewNativeExtractor(logger logging.Logger) *NativeExtractor {
	if logger == nil {
		logger = logging.NewDiscardLogger()
	}
	return &NativeExtractor{logger: logger}
}

func (e *NativeExtractor) Name() string { return BackendNative }

// ExtractText concatenates the text of every page, one line per text row.
// Pages that fail to decode are skipped.
func (e *NativeExtractor) ExtractText(ctx context.Context, path string) (text string, err error) {
	// the reader panics on some malformed cross-reference tables
	defer func() {
		if r := recover(); r != nil {
			text = ""
			err = &parsererror.ExtractionError{Backend: e.Name(), FilePath: path, Err: fmt.Errorf("%v", r)}
		}
	}()

	f, r, err := pdf.Open(path)
	if err != nil {
		return "", &parsererror.ExtractionError{Backend: e.Name(), FilePath: path, Err: err}
	}
	defer func() {
		if cerr := f.Close(); cerr != nil {
			e.logger.WithError(cerr).Warn("Failed to close PDF", logging.F(logging.FieldFile, path))
		}
	}()

	var pages []string

	for i := 1; i <= r.NumPage(); i++ {
		if err := ctx.Err(); err != nil {
			return "", err
		}

		p := r.Page(i)
		if p.V.IsNull() {
			continue
		}

		pageText, err := pageRows(p)
		if err != nil {
			e.logger.WithError(err).Debug("Skipping unreadable page",
				logging.F(logging.FieldFile, path),
				logging.F("page", i))
			continue
		}
		pages = append(pages, pageText)
	}

	return strings.Join(pages, "\n"), nil
}

// pageRows renders a page top to bottom, one line per baseline, so lines
// positioned with Td or Tm inside one text object stay separate.
func pageRows(p pdf.Page) (string, error) {
	rows, err := p.GetTextByRow()
	if err != nil {
		return "", err
	}
	sort.SliceStable(rows, func(i, j int) bool { return rows[i].Position > rows[j].Position })

	lines := make([]string, 0, len(rows))
	for _, row := range rows {
		texts := row.Content
		sort.SliceStable(texts, func(i, j int) bool { return texts[i].X < texts[j].X })

		var b strings.Builder
		for _, t := range texts {
			b.WriteString(t.S)
		}
		lines = append(lines, b.String())
	}
	return strings.Join(lines, "\n"), nil
}
