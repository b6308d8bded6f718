package container

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"fjacquet/cert-archive/internal/config"
	"fjacquet/cert-archive/internal/logging"
	"fjacquet/cert-archive/internal/models"
	"fjacquet/cert-archive/internal/pdftext"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() *config.Config {
	cfg := &config.Config{}
	cfg.Log.Level = "info"
	cfg.Log.Format = "text"
	cfg.Archive.Root = "archived"
	cfg.Archive.DefaultYear = "2024"
	cfg.Archive.Provider = models.DefaultProvider
	cfg.PDF.Backends = []string{"native", "pdftotext"}
	cfg.PDF.PdftotextPath = "pdftotext"
	cfg.Export.CSVDelimiter = ","
	return cfg
}

func TestNewContainer(t *testing.T) {
	t.Chdir(t.TempDir())

	tests := []struct {
		name        string
		config      func() *config.Config
		expectError string
	}{
		{"nil config", func() *config.Config { return nil }, "configuration cannot be nil"},
		{"valid config", testConfig, ""},
		{
			name: "unknown backend",
			config: func() *config.Config {
				cfg := testConfig()
				cfg.PDF.Backends = []string{"ocr"}
				return cfg
			},
			expectError: "failed to create PDF text extractor",
		},
		{
			name: "missing domains file",
			config: func() *config.Config {
				cfg := testConfig()
				cfg.Domains.File = "missing-domains.yaml"
				return cfg
			},
			expectError: "failed to load domain rules",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := NewContainer(tt.config(), WithLogger(logging.NewMockLogger()))
			if tt.expectError != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.expectError)
				assert.Nil(t, c)
				return
			}
			require.NoError(t, err)
			assert.NotNil(t, c.GetLogger())
			assert.NotNil(t, c.GetConfig())
			assert.NotNil(t, c.GetStore())
			assert.Equal(t, "chain(native,pdftotext)", c.GetExtractor().Name())
			assert.Len(t, c.GetClassifier().Rules(), len(models.DefaultDomainRules()))
			assert.NotNil(t, c.GetParser())
			assert.NotNil(t, c.GetScanner())
			assert.NotNil(t, c.GetBuilder())
			assert.NotNil(t, c.GetOrganizer())
			assert.NotNil(t, c.GetExporter())
		})
	}
}

func TestNewContainer_DomainsFileOverride(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	file := filepath.Join(dir, "my-domains.yaml")
	require.NoError(t, os.WriteFile(file, []byte("domains:\n  - name: data\n    keywords: [go]\n"), 0644))

	cfg := testConfig()
	cfg.Domains.File = file
	c, err := NewContainer(cfg, WithLogger(logging.NewMockLogger()))
	require.NoError(t, err)

	assert.Equal(t, models.DomainData, c.GetClassifier().Classify("Learning Go", nil, ""))
}

func TestNewContainer_WiresInjectedExtractor(t *testing.T) {
	t.Chdir(t.TempDir())
	mock := pdftext.NewMockExtractor("Docker Deep Dive\nCourse completed by Jane Doe\nMarch 3, 2024", nil)

	c, err := NewContainer(testConfig(), WithLogger(logging.NewMockLogger()), WithExtractor(mock))
	require.NoError(t, err)

	rec, err := c.GetBuilder().BuildRecord(context.Background(), "archived/2024/docker.pdf", 1)
	require.NoError(t, err)
	assert.Equal(t, "Docker Deep Dive", rec.Title)
	assert.Equal(t, models.DomainDevOps, rec.Domain)
	assert.Equal(t, []string{"archived/2024/docker.pdf"}, mock.Calls)
}
