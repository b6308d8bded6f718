// Package parsererror holds the typed errors raised while reading certificates
// and writing the catalog. Callers match them with errors.As.
package parsererror

import (
	"errors"
	"fmt"
)

// ErrTextUnavailable signals that no backend produced text for a document.
var ErrTextUnavailable = errors.New("pdf text unavailable")

// ExtractionError wraps a failure of a text backend on a single file.
type ExtractionError struct {
	Backend  string
	FilePath string
	Err      error
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("%s: cannot extract text from '%s': %v", e.Backend, e.FilePath, e.Err)
}

func (e *ExtractionError) Unwrap() error {
	return e.Err
}

// FieldError is a syntactic match that could not be turned into a value,
// e.g. "February 30, 2024".
type FieldError struct {
	Field string
	Value string
	Err   error
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("cannot parse %s='%s': %v", e.Field, e.Value, e.Err)
}

func (e *FieldError) Unwrap() error {
	return e.Err
}

// InvalidFormatError means the input is not the kind of file we expected.
type InvalidFormatError struct {
	FilePath       string
	ExpectedFormat string
	ActualFormat   string
}

func (e *InvalidFormatError) Error() string {
	if e.ActualFormat != "" {
		return fmt.Sprintf("invalid format in file '%s': got %s, expected %s",
			e.FilePath, e.ActualFormat, e.ExpectedFormat)
	}
	return fmt.Sprintf("invalid format in file '%s': expected %s", e.FilePath, e.ExpectedFormat)
}

// ValidationError reports a configuration or catalog that fails validation.
type ValidationError struct {
	Subject string
	Reason  string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed for %s: %s", e.Subject, e.Reason)
}
