package pdftext

import (
	"context"
	"fmt"
	"strings"

	"fjacquet/cert-archive/internal/logging"
	"fjacquet/cert-archive/internal/parsererror"
	"fjacquet/cert-archive/internal/textutils"
)

// ChainExtractor tries its backends in order and returns the first
// non-blank text, normalized to NFC.
type ChainExtractor struct {
	backends []TextExtractor
	sniff    func(path string) error
	logger   logging.Logger
}

// NewChainExtractor builds a chain over backends. Content sniffing is on.
func NewChainExtractor(logger logging.Logger, backends ...TextExtractor) *ChainExtractor {
	if logger == nil {
		logger = logging.NewDiscardLogger()
	}
	return &ChainExtractor{backends: backends, sniff: SniffPDF, logger: logger}
}

// WithoutSniffing disables the content-type check. Used with fake files in
// tests.
func (c *ChainExtractor) WithoutSniffing() *ChainExtractor {
	c.sniff = nil
	return c
}

// NewChainFromNames builds the chain for the configured backend names.
func NewChainFromNames(names []string, pdftotextPath string, runner Runner, logger logging.Logger) (*ChainExtractor, error) {
	if len(names) == 0 {
		names = KnownBackends
	}
	backends := make([]TextExtractor, 0, len(names))
	for _, name := range names {
		switch strings.ToLower(strings.TrimSpace(name)) {
		case BackendNative:
			backends = append(backends, NewNativeExtractor(logger))
		case BackendPdftotext:
			backends = append(backends, NewPdftotextExtractor(pdftotextPath, runner, logger))
		default:
			return nil, &parsererror.ValidationError{Subject: "pdf.backends", Reason: fmt.Sprintf("unknown backend %q", name)}
		}
	}
	return NewChainExtractor(logger, backends...), nil
}

func (c *ChainExtractor) Name() string {
	names := make([]string, len(c.backends))
	for i, b := range c.backends {
		names[i] = b.Name()
	}
	return "chain(" + strings.Join(names, ",") + ")"
}

// ExtractText returns the first usable text. When no backend yields text
// the error wraps parsererror.ErrTextUnavailable.
func (c *ChainExtractor) ExtractText(ctx context.Context, path string) (string, error) {
	if c.sniff != nil {
		if err := c.sniff(path); err != nil {
			return "", err
		}
	}

	for _, b := range c.backends {
		if err := ctx.Err(); err != nil {
			return "", err
		}

		text, err := b.ExtractText(ctx, path)
		if err != nil {
			c.logger.WithError(err).Debug("Backend failed",
				logging.F(logging.FieldBackend, b.Name()),
				logging.F(logging.FieldFile, path))
			continue
		}
		if strings.TrimSpace(text) == "" {
			c.logger.Debug("Backend returned no text",
				logging.F(logging.FieldBackend, b.Name()),
				logging.F(logging.FieldFile, path))
			continue
		}
		return textutils.Normalize(text), nil
	}

	c.logger.Warn("No PDF backend produced text",
		logging.F(logging.FieldFile, path),
		logging.F(logging.FieldBackend, c.Name()))
	return "", &parsererror.ExtractionError{Backend: c.Name(), FilePath: path, Err: parsererror.ErrTextUnavailable}
}
