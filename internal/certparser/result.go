package certparser

import "fmt"

// Outcome describes how an extractor fared on a piece of text.
type Outcome int

const (
	// Absent means no pattern matched, or there was no text at all.
	Absent Outcome = iota
	// Found means a value was extracted.
	Found
	// Unparseable means a pattern matched but the match could not be
	// converted into a value.
	Unparseable
)

func (o Outcome) String() string {
	switch o {
	case Found:
		return "found"
	case Unparseable:
		return "unparseable"
	default:
		return "absent"
	}
}

// Field is the result of one extractor. Value is only meaningful when
// Outcome is Found; Err is only set when Outcome is Unparseable.
type Field[T any] struct {
	Value   T
	Outcome Outcome
	Err     error
}

// Ok reports whether a value was found.
func (f Field[T]) Ok() bool {
	return f.Outcome == Found
}

// Get returns the value and whether it was found.
func (f Field[T]) Get() (T, bool) {
	return f.Value, f.Outcome == Found
}

func (f Field[T]) String() string {
	if f.Outcome == Found {
		return fmt.Sprintf("%v", f.Value)
	}
	return f.Outcome.String()
}

func found[T any](v T) Field[T] {
	return Field[T]{Value: v, Outcome: Found}
}

func absent[T any]() Field[T] {
	return Field[T]{Outcome: Absent}
}

func unparseable[T any](err error) Field[T] {
	return Field[T]{Outcome: Unparseable, Err: err}
}

// CertificateDate is a completion date split into its year and ISO form.
type CertificateDate struct {
	Year string
	ISO  string
}
