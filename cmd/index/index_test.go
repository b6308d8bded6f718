package index

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"fjacquet/cert-archive/internal/config"
	"fjacquet/cert-archive/internal/container"
	"fjacquet/cert-archive/internal/logging"
	"fjacquet/cert-archive/internal/models"
	"fjacquet/cert-archive/internal/pdftext"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testContainer(t *testing.T, archive, output string, extractor pdftext.TextExtractor) (*container.Container, *logging.MockLogger) {
	t.Helper()
	cfg := &config.Config{}
	cfg.Log.Level = "info"
	cfg.Log.Format = "text"
	cfg.Archive.Root = archive
	cfg.Archive.DefaultYear = "2024"
	cfg.Archive.Provider = models.DefaultProvider
	cfg.Index.Output = output
	cfg.Export.CSVDelimiter = ","

	logger := logging.NewMockLogger()
	c, err := container.NewContainer(cfg, container.WithLogger(logger), container.WithExtractor(extractor))
	require.NoError(t, err)
	return c, logger
}

func touch(t *testing.T, path string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte("%PDF-1.4"), 0644))
}

func TestRun(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	archive := filepath.Join(dir, "archived")
	touch(t, filepath.Join(archive, "2024", "go.pdf"))
	touch(t, filepath.Join(archive, "2023", "CertificateOfCompletion_Agile_Foundations.pdf"))

	extractor := &pdftext.MockExtractor{Texts: map[string]string{
		"go.pdf": "Learning Go\nCourse completed by Jane Doe\nMay 17, 2025 at 07:24AM UTC • 1 hour 27 minutes\nTop skills covered\nGo\nConcurrency\nCertificate ID: 1",
	}}
	output := filepath.Join(dir, "js", "learning-data.json")
	c, logger := testContainer(t, archive, output, extractor)

	csvFile := filepath.Join(dir, "out", "certs.csv")
	xlsxFile := filepath.Join(dir, "out", "certs.xlsx")
	index, err := Run(context.Background(), c, Options{CSVFile: csvFile, XLSXFile: xlsxFile})
	require.NoError(t, err)

	require.Len(t, index.Certificates, 2)
	assert.Equal(t, "Learning Go", index.Certificates[0].Title)
	assert.Equal(t, "2025", index.Certificates[0].Year)
	assert.Equal(t, "Agile Foundations", index.Certificates[1].Title)
	assert.Equal(t, models.DomainAgile, index.Certificates[1].Domain)

	data, err := os.ReadFile(output)
	require.NoError(t, err)
	var written models.CatalogIndex
	require.NoError(t, json.Unmarshal(data, &written))
	assert.Equal(t, 2, written.Metadata.Total)
	assert.Equal(t, []string{"2025", "2023"}, written.Metadata.Years)

	assert.FileExists(t, csvFile)
	assert.FileExists(t, xlsxFile)
	assert.True(t, logger.HasEntry("INFO", "Catalog index written"))
	assert.True(t, logger.HasEntry("INFO", "Total learning hours"))
}

func TestRun_MissingArchive(t *testing.T) {
	dir := t.TempDir()
	output := filepath.Join(dir, "index.json")
	c, _ := testContainer(t, filepath.Join(dir, "missing"), output, pdftext.NewMockExtractor("", nil))

	_, err := Run(context.Background(), c, Options{})
	require.Error(t, err)
	assert.NoFileExists(t, output)
}

func TestIndexCommand_Flags(t *testing.T) {
	assert.Equal(t, "index", Cmd.Use)
	assert.NotNil(t, Cmd.Flags().Lookup("csv"))
	assert.NotNil(t, Cmd.Flags().Lookup("xlsx"))
}
