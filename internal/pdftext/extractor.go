// Package pdftext turns certificate PDFs into plain text through pluggable
// backends: a pure-Go reader and the poppler pdftotext binary.
package pdftext

import "context"

// Backend names accepted in configuration.
const (
	BackendNative    = "native"
	BackendPdftotext = "pdftotext"
)

// KnownBackends lists every backend name in default preference order.
var KnownBackends = []string{BackendNative, BackendPdftotext}

// TextExtractor extracts the text layer of a PDF file.
type TextExtractor interface {
	// ExtractText returns the document text. An empty string with a nil
	// error means the document has no text layer.
	ExtractText(ctx context.Context, path string) (string, error)

	// Name identifies the backend in logs.
	Name() string
}
