// Package container provides dependency injection for the cert-archive
// application. It centralizes the creation and wiring of all application
// dependencies, making them explicit and testable.
package container

import (
	"fmt"

	"fjacquet/cert-archive/internal/catalog"
	"fjacquet/cert-archive/internal/categorizer"
	"fjacquet/cert-archive/internal/certparser"
	"fjacquet/cert-archive/internal/config"
	"fjacquet/cert-archive/internal/export"
	"fjacquet/cert-archive/internal/logging"
	"fjacquet/cert-archive/internal/organizer"
	"fjacquet/cert-archive/internal/pdftext"
	"fjacquet/cert-archive/internal/scanner"
	"fjacquet/cert-archive/internal/store"
)

// Container holds all application dependencies and provides methods to access them.
//
// Container is immutable after creation - all fields are private and can only
// be accessed through getter methods.
type Container struct {
	logger     logging.Logger
	config     *config.Config
	store      *store.DomainStore
	extractor  pdftext.TextExtractor
	classifier *categorizer.Classifier
	parser     *certparser.Parser
	scanner    *scanner.PDFScanner
	builder    *catalog.Builder
	organizer  *organizer.Organizer
	exporter   *export.Exporter
}

// Option adjusts the container before the components are wired.
type Option func(*options)

type options struct {
	logger    logging.Logger
	extractor pdftext.TextExtractor
	runner    pdftext.Runner
}

// WithLogger replaces the logger built from the configuration.
func WithLogger(logger logging.Logger) Option {
	return func(o *options) { o.logger = logger }
}

// WithExtractor replaces the configured PDF backend chain.
func WithExtractor(extractor pdftext.TextExtractor) Option {
	return func(o *options) { o.extractor = extractor }
}

// WithRunner replaces the command runner used by the pdftotext backend.
func WithRunner(runner pdftext.Runner) Option {
	return func(o *options) { o.runner = runner }
}

// NewContainer creates and wires all application dependencies.
func NewContainer(cfg *config.Config, opts ...Option) (*Container, error) {
	if cfg == nil {
		return nil, fmt.Errorf("configuration cannot be nil")
	}

	var o options
	for _, opt := range opts {
		opt(&o)
	}

	// Create logger first as it's needed by other components
	logger := o.logger
	if logger == nil {
		logger = config.ConfigureLoggingFromConfig(cfg)
	}

	extractor := o.extractor
	if extractor == nil {
		runner := o.runner
		if runner == nil {
			runner = pdftext.ExecRunner{Logger: logger}
		}
		chain, err := pdftext.NewChainFromNames(cfg.PDF.Backends, cfg.PDF.PdftotextPath, runner, logger)
		if err != nil {
			return nil, fmt.Errorf("failed to create PDF text extractor: %w", err)
		}
		extractor = chain
	}

	domainStore := store.NewDomainStore(cfg.Domains.File, logger)
	classifier, err := categorizer.NewClassifierFromSource(domainStore, logger)
	if err != nil {
		return nil, err
	}

	certParser := certparser.NewParser(logger)
	pdfScanner := scanner.NewPDFScanner(logger)

	builder := catalog.NewBuilder(extractor, certParser, classifier, logger, catalog.Options{
		DefaultYear: cfg.Archive.DefaultYear,
		Provider:    cfg.Archive.Provider,
		XMPFallback: cfg.Extract.XMPFallback,
	})

	logger.Debug("Container initialized successfully",
		logging.F(logging.FieldBackend, extractor.Name()),
		logging.F("domain_rules", len(classifier.Rules())),
		logging.F("xmp_fallback", cfg.Extract.XMPFallback))

	return &Container{
		logger:     logger,
		config:     cfg,
		store:      domainStore,
		extractor:  extractor,
		classifier: classifier,
		parser:     certParser,
		scanner:    pdfScanner,
		builder:    builder,
		organizer:  organizer.NewOrganizer(extractor, pdfScanner, logger, cfg.Archive.DefaultYear),
		exporter:   export.NewExporter(logger, cfg.Delimiter()),
	}, nil
}

// GetLogger returns the container's logger instance.
func (c *Container) GetLogger() logging.Logger {
	return c.logger
}

// GetConfig returns the container's configuration instance.
func (c *Container) GetConfig() *config.Config {
	return c.config
}

// GetStore returns the domain keyword store.
func (c *Container) GetStore() *store.DomainStore {
	return c.store
}

// GetExtractor returns the PDF text extractor.
func (c *Container) GetExtractor() pdftext.TextExtractor {
	return c.extractor
}

// GetClassifier returns the domain classifier.
func (c *Container) GetClassifier() *categorizer.Classifier {
	return c.classifier
}

// GetParser returns the certificate text parser.
func (c *Container) GetParser() *certparser.Parser {
	return c.parser
}

// GetScanner returns the archive scanner.
func (c *Container) GetScanner() *scanner.PDFScanner {
	return c.scanner
}

// GetBuilder returns the catalog builder.
func (c *Container) GetBuilder() *catalog.Builder {
	return c.builder
}

// GetOrganizer returns the archive organizer.
func (c *Container) GetOrganizer() *organizer.Organizer {
	return c.organizer
}

// GetExporter returns the spreadsheet exporter.
func (c *Container) GetExporter() *export.Exporter {
	return c.exporter
}
