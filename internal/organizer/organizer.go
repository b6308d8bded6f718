// Package organizer moves certificate PDFs into per-year folders and removes
// the course folders and leftovers they were downloaded with.
package organizer

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"fjacquet/cert-archive/internal/catalog"
	"fjacquet/cert-archive/internal/certparser"
	"fjacquet/cert-archive/internal/dateutils"
	"fjacquet/cert-archive/internal/fileutils"
	"fjacquet/cert-archive/internal/logging"
	"fjacquet/cert-archive/internal/pdftext"
	"fjacquet/cert-archive/internal/scanner"
)

// Move relocates one PDF into its year folder.
type Move struct {
	Source string
	Target string
	Year   string
}

// Plan lists every change Organize would make, in execution order.
type Plan struct {
	Root             string
	Moves            []Move
	AlreadyOrganized []string
	RemoveFiles      []string
	RemoveDirs       []string
}

// Report counts what was done. YearCounts holds the number of PDFs per year
// folder afterwards (predicted for a dry run).
type Report struct {
	DryRun           bool
	Moved            int
	AlreadyOrganized int
	Failed           int
	RemovedFiles     int
	RemovedDirs      int
	YearCounts       map[string]int
}

// Organizer plans and applies the year-folder layout of an archive.
type Organizer struct {
	extractor   pdftext.TextExtractor
	scanner     *scanner.PDFScanner
	logger      logging.Logger
	defaultYear string
}

// NewOrganizer creates an Organizer. An empty defaultYear means
// catalog.DefaultYear.
func NewOrganizer(extractor pdftext.TextExtractor, pdfScanner *scanner.PDFScanner, logger logging.Logger, defaultYear string) *Organizer {
	if logger == nil {
		logger = logging.NewDiscardLogger()
	}
	if pdfScanner == nil {
		pdfScanner = scanner.NewPDFScanner(logger)
	}
	if defaultYear == "" {
		defaultYear = catalog.DefaultYear
	}
	return &Organizer{
		extractor:   extractor,
		scanner:     pdfScanner,
		logger:      logger,
		defaultYear: defaultYear,
	}
}

// Organize plans the layout of root and, unless dryRun is set, applies it.
func (o *Organizer) Organize(ctx context.Context, root string, dryRun bool) (*Report, error) {
	plan, err := o.Plan(ctx, root)
	if err != nil {
		return nil, err
	}

	var report *Report
	if dryRun {
		report = o.describe(plan)
	} else {
		report = o.Apply(ctx, plan)
		if err := ctx.Err(); err != nil {
			return report, err
		}
	}

	o.logSummary(report)
	return report, nil
}

// Plan decides where every PDF goes. PDFs already directly inside a
// four-digit folder of root stay put. Nothing on disk is changed.
func (o *Organizer) Plan(ctx context.Context, root string) (*Plan, error) {
	pdfs, err := o.scanner.Scan(root)
	if err != nil {
		return nil, err
	}

	plan := &Plan{Root: root}
	reserved := make(map[string]bool)
	taken := func(p string) bool {
		if reserved[p] {
			return true
		}
		_, err := os.Lstat(p)
		return err == nil
	}

	for _, pdf := range pdfs {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if isYearFolder(root, filepath.Dir(pdf)) {
			plan.AlreadyOrganized = append(plan.AlreadyOrganized, pdf)
			continue
		}

		year := o.resolveYear(ctx, pdf)
		target := fileutils.UniquePath(filepath.Join(root, year), filepath.Base(pdf), taken)
		reserved[target] = true
		plan.Moves = append(plan.Moves, Move{Source: pdf, Target: target, Year: year})
	}

	if err := o.planCleanup(root, plan); err != nil {
		return nil, err
	}
	return plan, nil
}

// resolveYear uses the certificate date, then the folder name, then the
// default year.
func (o *Organizer) resolveYear(ctx context.Context, pdf string) string {
	log := o.logger.WithField(logging.FieldFile, pdf)

	text, err := o.extractor.ExtractText(ctx, pdf)
	if err != nil {
		log.WithError(err).Debug("No text for year detection")
	}
	if date, ok := certparser.ExtractDate(text).Get(); ok {
		return date.Year
	}
	if year, ok := catalog.FolderYear(pdf); ok {
		return year
	}
	log.Debug("Using default year", logging.F(logging.FieldYear, o.defaultYear))
	return o.defaultYear
}

// planCleanup lists non-PDF files anywhere under root and every folder that
// is not a top-level year folder, deepest first.
func (o *Organizer) planCleanup(root string, plan *Plan) error {
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && !scanner.IsPDF(d.Name()) {
			plan.RemoveFiles = append(plan.RemoveFiles, path)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to walk %s: %w", root, err)
	}

	dirs, err := fileutils.ListDirsDeepestFirst(root)
	if err != nil {
		return err
	}
	for _, dir := range dirs {
		if !isYearFolder(root, dir) {
			plan.RemoveDirs = append(plan.RemoveDirs, dir)
		}
	}
	return nil
}

// Apply executes plan. A failing item is logged and counted; the rest of
// the plan still runs. Folders that are not empty after the moves are kept.
func (o *Organizer) Apply(ctx context.Context, plan *Plan) *Report {
	report := &Report{AlreadyOrganized: len(plan.AlreadyOrganized)}

	for i, mv := range plan.Moves {
		if ctx.Err() != nil {
			return report
		}
		if err := fileutils.MoveFile(mv.Source, mv.Target); err != nil {
			o.logger.WithError(err).Warn("Failed to move certificate",
				logging.F(logging.FieldFile, mv.Source),
				logging.F(logging.FieldTarget, mv.Target))
			report.Failed++
			continue
		}
		report.Moved++
		o.logger.Debug("Moved certificate",
			logging.F(logging.FieldFile, mv.Source),
			logging.F(logging.FieldTarget, mv.Target))
		if (i+1)%catalog.DefaultProgressEvery == 0 {
			o.logger.Info("Moving certificates",
				logging.F(logging.FieldCount, i+1),
				logging.F(logging.FieldTotal, len(plan.Moves)))
		}
	}

	for _, file := range plan.RemoveFiles {
		if err := os.Remove(file); err != nil {
			o.logger.WithError(err).Warn("Failed to remove file", logging.F(logging.FieldFile, file))
			continue
		}
		report.RemovedFiles++
	}

	for _, dir := range plan.RemoveDirs {
		empty, err := fileutils.IsDirEmpty(dir)
		if err != nil || !empty {
			o.logger.Warn("Keeping folder that is not empty",
				logging.F(logging.FieldFolder, dir))
			continue
		}
		if err := os.Remove(dir); err != nil {
			o.logger.WithError(err).Warn("Failed to remove folder", logging.F(logging.FieldFolder, dir))
			continue
		}
		report.RemovedDirs++
	}

	report.YearCounts = countYearFolders(plan.Root)
	return report
}

// describe logs the plan without touching the disk and predicts the result.
func (o *Organizer) describe(plan *Plan) *Report {
	log := o.logger.WithField(logging.FieldDryRun, true)
	for _, mv := range plan.Moves {
		log.Info("Would move certificate",
			logging.F(logging.FieldFile, mv.Source),
			logging.F(logging.FieldTarget, mv.Target))
	}
	for _, file := range plan.RemoveFiles {
		log.Info("Would remove file", logging.F(logging.FieldFile, file))
	}
	for _, dir := range plan.RemoveDirs {
		log.Info("Would remove folder", logging.F(logging.FieldFolder, dir))
	}

	counts := countYearFolders(plan.Root)
	for _, mv := range plan.Moves {
		counts[mv.Year]++
	}
	return &Report{
		DryRun:           true,
		Moved:            len(plan.Moves),
		AlreadyOrganized: len(plan.AlreadyOrganized),
		RemovedFiles:     len(plan.RemoveFiles),
		RemovedDirs:      len(plan.RemoveDirs),
		YearCounts:       counts,
	}
}

func (o *Organizer) logSummary(report *Report) {
	o.logger.Info("Organization complete",
		logging.F("moved", report.Moved),
		logging.F("already_organized", report.AlreadyOrganized),
		logging.F("failed", report.Failed),
		logging.F("removed_files", report.RemovedFiles),
		logging.F("removed_folders", report.RemovedDirs),
		logging.F(logging.FieldDryRun, report.DryRun))

	years := make([]string, 0, len(report.YearCounts))
	for y := range report.YearCounts {
		years = append(years, y)
	}
	sort.Strings(years)
	for _, y := range years {
		if n := report.YearCounts[y]; n > 0 {
			o.logger.Info("Year folder summary",
				logging.F(logging.FieldYear, y),
				logging.F(logging.FieldCount, n))
		}
	}
}

func isYearFolder(root, dir string) bool {
	return filepath.Clean(filepath.Dir(dir)) == filepath.Clean(root) && dateutils.IsYearName(filepath.Base(dir))
}

// countYearFolders counts the PDFs directly inside each top-level year
// folder of root.
func countYearFolders(root string) map[string]int {
	counts := make(map[string]int)
	entries, err := os.ReadDir(root)
	if err != nil {
		return counts
	}
	for _, e := range entries {
		if !e.IsDir() || !dateutils.IsYearName(e.Name()) {
			continue
		}
		files, err := os.ReadDir(filepath.Join(root, e.Name()))
		if err != nil {
			continue
		}
		for _, f := range files {
			if !f.IsDir() && scanner.IsPDF(f.Name()) {
				counts[e.Name()]++
			}
		}
	}
	return counts
}
