package pdftext

import (
	"fjacquet/cert-archive/internal/parsererror"

	"github.com/gabriel-vasile/mimetype"
)

// PDFMime is the only content type the extractors accept.
const PDFMime = "application/pdf"

// SniffPDF checks the file content, not its extension, for a PDF header.
func SniffPDF(path string) error {
	mt, err := mimetype.DetectFile(path)
	if err != nil {
		return &parsererror.ExtractionError{Backend: "mimetype", FilePath: path, Err: err}
	}
	if !mt.Is(PDFMime) {
		return &parsererror.InvalidFormatError{
			FilePath:       path,
			ExpectedFormat: PDFMime,
			ActualFormat:   mt.String(),
		}
	}
	return nil
}
