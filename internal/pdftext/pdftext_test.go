package pdftext

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"fjacquet/cert-archive/internal/logging"
	"fjacquet/cert-archive/internal/parsererror"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRunner struct {
	stdout, stderr []byte
	err            error
	name           string
	args           []string
}

func (f *fakeRunner) Run(_ context.Context, name string, args ...string) ([]byte, []byte, error) {
	f.name, f.args = name, args
	return f.stdout, f.stderr, f.err
}

func TestPdftotextExtractor(t *testing.T) {
	runner := &fakeRunner{stdout: []byte("Learning Go\fTop skills covered\n")}
	e := NewPdftotextExtractor("/usr/bin/pdftotext", runner, nil)

	text, err := e.ExtractText(context.Background(), "cert.pdf")
	require.NoError(t, err)
	assert.Equal(t, "Learning Go\nTop skills covered\n", text)
	assert.Equal(t, "/usr/bin/pdftotext", runner.name)
	assert.Equal(t, []string{"-enc", "UTF-8", "-eol", "unix", "cert.pdf", "-"}, runner.args)
}

func TestPdftotextExtractor_Failure(t *testing.T) {
	runner := &fakeRunner{stderr: []byte("Syntax Error: broken\n"), err: errors.New("exit status 1")}
	e := NewPdftotextExtractor("", runner, nil)

	_, err := e.ExtractText(context.Background(), "bad.pdf")
	var extErr *parsererror.ExtractionError
	require.ErrorAs(t, err, &extErr)
	assert.Equal(t, BackendPdftotext, extErr.Backend)
	assert.Contains(t, err.Error(), "Syntax Error: broken")
	assert.Equal(t, DefaultPdftotextBinary, runner.name)
}

func TestChainExtractor_FallbackOrder(t *testing.T) {
	failing := &MockExtractor{Backend: "first", Err: errors.New("boom")}
	blank := &MockExtractor{Backend: "second", Text: "  \n "}
	good := &MockExtractor{Backend: "third", Text: "Café Basics"}
	unused := &MockExtractor{Backend: "fourth", Text: "never"}

	chain := NewChainExtractor(nil, failing, blank, good, unused).WithoutSniffing()
	text, err := chain.ExtractText(context.Background(), "x.pdf")

	require.NoError(t, err)
	assert.Equal(t, "Café Basics", text)
	assert.Len(t, failing.Calls, 1)
	assert.Len(t, blank.Calls, 1)
	assert.Len(t, good.Calls, 1)
	assert.Empty(t, unused.Calls)
}

func TestChainExtractor_AllFail(t *testing.T) {
	logger := logging.NewMockLogger()
	chain := NewChainExtractor(logger,
		&MockExtractor{Err: errors.New("boom")},
		&MockExtractor{Text: ""},
	).WithoutSniffing()

	text, err := chain.ExtractText(context.Background(), "x.pdf")
	assert.Empty(t, text)
	assert.ErrorIs(t, err, parsererror.ErrTextUnavailable)
	assert.True(t, logger.HasEntry("WARN", "No PDF backend produced text"))
}

func TestChainExtractor_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	m := &MockExtractor{Text: "text"}
	_, err := NewChainExtractor(nil, m).WithoutSniffing().ExtractText(ctx, "x.pdf")
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, m.Calls)
}

func TestChainExtractor_RejectsNonPDFContent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "notes.pdf")
	require.NoError(t, os.WriteFile(path, []byte("just some notes\n"), 0o644))

	m := &MockExtractor{Text: "text"}
	_, err := NewChainExtractor(nil, m).ExtractText(context.Background(), path)

	var fmtErr *parsererror.InvalidFormatError
	require.ErrorAs(t, err, &fmtErr)
	assert.Equal(t, PDFMime, fmtErr.ExpectedFormat)
	assert.Empty(t, m.Calls)
}

func TestSniffPDF_AcceptsPDFHeader(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cert.bin")
	require.NoError(t, os.WriteFile(path, []byte("%PDF-1.4\n%\xe2\xe3\xcf\xd3\n1 0 obj\n<<>>\nendobj\n"), 0o644))

	assert.NoError(t, SniffPDF(path))
	assert.Error(t, SniffPDF(filepath.Join(t.TempDir(), "missing.pdf")))
}

func TestNewChainFromNames(t *testing.T) {
	chain, err := NewChainFromNames([]string{"pdftotext", " Native "}, "", &fakeRunner{}, nil)
	require.NoError(t, err)
	assert.Equal(t, "chain(pdftotext,native)", chain.Name())

	chain, err = NewChainFromNames(nil, "", nil, nil)
	require.NoError(t, err)
	assert.Equal(t, "chain(native,pdftotext)", chain.Name())

	_, err = NewChainFromNames([]string{"ocr"}, "", nil, nil)
	var vErr *parsererror.ValidationError
	assert.ErrorAs(t, err, &vErr)
}

func TestNativeExtractor_InvalidFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.pdf")
	require.NoError(t, os.WriteFile(path, []byte("not a pdf at all"), 0o644))

	_, err := NewNativeExtractor(nil).ExtractText(context.Background(), path)
	var extErr *parsererror.ExtractionError
	require.ErrorAs(t, err, &extErr)
	assert.Equal(t, BackendNative, extErr.Backend)
}

// writeTextPDF writes a one-page PDF whose lines share a single text object
// and are positioned with Td, the way certificate generators lay them out.
func writeTextPDF(t *testing.T, lines ...string) string {
	t.Helper()

	var content strings.Builder
	content.WriteString("BT /F1 12 Tf 72 720 Td")
	for i, line := range lines {
		if i > 0 {
			content.WriteString(" 0 -14 Td")
		}
		fmt.Fprintf(&content, " (%s) Tj", line)
	}
	content.WriteString(" ET")

	objects := []string{
		"<< /Type /Catalog /Pages 2 0 R >>",
		"<< /Type /Pages /Kids [3 0 R] /Count 1 >>",
		"<< /Type /Page /Parent 2 0 R /MediaBox [0 0 612 792] /Resources << /Font << /F1 4 0 R >> >> /Contents 5 0 R >>",
		"<< /Type /Font /Subtype /Type1 /BaseFont /Helvetica >>",
		fmt.Sprintf("<< /Length %d >>\nstream\n%s\nendstream", content.Len(), content.String()),
	}

	var buf strings.Builder
	buf.WriteString("%PDF-1.4\n")
	offsets := make([]int, len(objects))
	for i, obj := range objects {
		offsets[i] = buf.Len()
		fmt.Fprintf(&buf, "%d 0 obj\n%s\nendobj\n", i+1, obj)
	}
	xref := buf.Len()
	fmt.Fprintf(&buf, "xref\n0 %d\n0000000000 65535 f \n", len(objects)+1)
	for _, off := range offsets {
		fmt.Fprintf(&buf, "%010d 00000 n \n", off)
	}
	fmt.Fprintf(&buf, "trailer\n<< /Size %d /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF\n", len(objects)+1, xref)

	path := filepath.Join(t.TempDir(), "certificate.pdf")
	require.NoError(t, os.WriteFile(path, []byte(buf.String()), 0o644))
	return path
}

func TestNativeExtractor_KeepsTdPositionedLines(t *testing.T) {
	path := writeTextPDF(t,
		"Learning Go",
		"Course completed by Jane Doe",
		"Top skills covered",
		"Microsoft Copilot",
		"Certificate ID: 1")

	text, err := NewNativeExtractor(nil).ExtractText(context.Background(), path)
	require.NoError(t, err)

	var lines []string
	for _, line := range strings.Split(text, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			lines = append(lines, line)
		}
	}
	assert.Equal(t, []string{
		"Learning Go",
		"Course completed by Jane Doe",
		"Top skills covered",
		"Microsoft Copilot",
		"Certificate ID: 1",
	}, lines)
}

func TestMockExtractor_PerFileText(t *testing.T) {
	m := &MockExtractor{Text: "default", Texts: map[string]string{"a.pdf": "alpha"}}

	a, _ := m.ExtractText(context.Background(), "/x/2024/a.pdf")
	b, _ := m.ExtractText(context.Background(), "/x/2024/b.pdf")
	assert.Equal(t, "alpha", a)
	assert.Equal(t, "default", b)
	assert.Equal(t, []string{"/x/2024/a.pdf", "/x/2024/b.pdf"}, m.Calls)
}
