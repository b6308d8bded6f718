// Package scanner discovers certificate PDFs under the archive root.
package scanner

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"fjacquet/cert-archive/internal/logging"
)

// PDFScanner lists the PDF files of an archive.
type PDFScanner struct {
	logger logging.Logger
}

// NewPDFScanner creates a scanner.
func NewPDFScanner(logger logging.Logger) *PDFScanner {
	if logger == nil {
		logger = logging.NewDiscardLogger()
	}
	return &PDFScanner{logger: logger}
}

// IsPDF reports whether name has a .pdf extension, in any case.
func IsPDF(name string) bool {
	return strings.EqualFold(filepath.Ext(name), ".pdf")
}

// Scan returns every PDF below root. Files directly inside "20*" year
// folders come first, in folder order, followed by the rest of the tree in
// lexical walk order. Each path appears once. A missing root is an error.
func (s *PDFScanner) Scan(root string) ([]string, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("archive root %s: %w", root, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("archive root %s is not a directory", root)
	}

	seen := make(map[string]bool)
	var files []string
	add := func(p string) {
		if !seen[p] {
			seen[p] = true
			files = append(files, p)
		}
	}

	yearDirs, err := filepath.Glob(filepath.Join(root, "20*"))
	if err != nil {
		return nil, err
	}
	sort.Strings(yearDirs)
	for _, dir := range yearDirs {
		if fi, err := os.Stat(dir); err != nil || !fi.IsDir() {
			continue
		}
		entries, err := os.ReadDir(dir)
		if err != nil {
			s.logger.WithError(err).Warn("Cannot read year folder", logging.F(logging.FieldFolder, dir))
			continue
		}
		for _, e := range entries {
			if !e.IsDir() && IsPDF(e.Name()) {
				add(filepath.Join(dir, e.Name()))
			}
		}
	}

	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			s.logger.WithError(err).Warn("Error walking path", logging.F(logging.FieldFile, path))
			return nil
		}
		if !d.IsDir() && IsPDF(d.Name()) {
			add(path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk %s: %w", root, err)
	}

	s.logger.Info("Found certificate PDFs",
		logging.F(logging.FieldCount, len(files)),
		logging.F(logging.FieldFolder, root))
	return files, nil
}
