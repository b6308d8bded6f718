package pdftext

import (
	"context"
	"fmt"
	"strings"

	"fjacquet/cert-archive/internal/logging"
	"fjacquet/cert-archive/internal/parsererror"
)

// DefaultPdftotextBinary is used when no path is configured.
const DefaultPdftotextBinary = "pdftotext"

// PdftotextExtractor shells out to poppler's pdftotext.
type PdftotextExtractor struct {
	binary string
	runner Runner
	logger logging.Logger
}

// NewPdftotextExtractor creates an extractor running binary through runner.
// Empty binary means DefaultPdftotextBinary; nil runner means ExecRunner.
func NewPdftotextExtractor(binary string, runner Runner, logger logging.Logger) *PdftotextExtractor {
	if logger == nil {
		logger = logging.NewDiscardLogger()
	}
	if binary == "" {
		binary = DefaultPdftotextBinary
	}
	if runner == nil {
		runner = ExecRunner{Logger: logger}
	}
	return &PdftotextExtractor{binary: binary, runner: runner, logger: logger}
}

func (e *PdftotextExtractor) Name() string { return BackendPdftotext }

// ExtractText runs `pdftotext -enc UTF-8 -eol unix <path> -`. Page breaks
// (form feeds) become newlines.
func (e *PdftotextExtractor) ExtractText(ctx context.Context, path string) (string, error) {
	out, stderr, err := e.runner.Run(ctx, e.binary, "-enc", "UTF-8", "-eol", "unix", path, "-")
	if err != nil {
		if msg := strings.TrimSpace(string(stderr)); msg != "" {
			err = fmt.Errorf("%w: %s", err, msg)
		}
		return "", &parsererror.ExtractionError{Backend: e.Name(), FilePath: path, Err: err}
	}
	return strings.ReplaceAll(string(out), "\f", "\n"), nil
}
