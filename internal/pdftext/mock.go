package pdftext

import (
	"context"
	"path/filepath"
)

// MockExtractor returns canned text. Texts, keyed by base file name, takes
// precedence over Text.
type MockExtractor struct {
	Backend string
	Text    string
	Texts   map[string]string
	Err     error
	Calls   []string
}

// NewMockExtractor returns a mock that answers every path with text.
func NewMockExtractor(text string, err error) *MockExtractor {
	return &MockExtractor{Text: text, Err: err}
}

func (m *MockExtractor) Name() string {
	if m.Backend == "" {
		return "mock"
	}
	return m.Backend
}

func (m *MockExtractor) ExtractText(_ context.Context, path string) (string, error) {
	m.Calls = append(m.Calls, path)
	if m.Err != nil {
		return "", m.Err
	}
	if t, ok := m.Texts[filepath.Base(path)]; ok {
		return t, nil
	}
	return m.Text, nil
}
