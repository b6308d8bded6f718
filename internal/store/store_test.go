package store

import (
	"os"
	"path/filepath"
	"testing"

	"fjacquet/cert-archive/internal/models"
	"fjacquet/cert-archive/internal/parsererror"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadDomainRules_FileKeepsDeclarationOrder(t *testing.T) {
	path := writeFile(t, t.TempDir(), "domains.yaml", `
domains:
  - name: Security
    keywords: [" OWASP ", "security"]
  - name: ai
    keywords: ["copilot", ""]
`)

	rules, err := NewDomainStore(path, nil).LoadDomainRules()
	require.NoError(t, err)
	require.Len(t, rules, 2)
	assert.Equal(t, models.DomainSecurity, rules[0].Name)
	assert.Equal(t, []string{"owasp", "security"}, rules[0].Keywords)
	assert.Equal(t, models.DomainAI, rules[1].Name)
	assert.Equal(t, []string{"copilot"}, rules[1].Keywords)
}

func TestLoadDomainRules_DefaultWhenNoFile(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("HOME", t.TempDir())

	rules, err := NewDomainStore("", nil).LoadDomainRules()
	require.NoError(t, err)
	assert.Equal(t, models.DefaultDomainRules(), rules)
}

func TestLoadDomainRules_ExplicitMissingFile(t *testing.T) {
	_, err := NewDomainStore(filepath.Join(t.TempDir(), "nope.yaml"), nil).LoadDomainRules()
	assert.Error(t, err)
}

func TestParseDomainRules_Invalid(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"unknown domain", "domains:\n  - name: finance\n    keywords: [bank]\n"},
		{"other is implicit", "domains:\n  - name: other\n    keywords: [x]\n"},
		{"empty", "domains: []\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseDomainRules([]byte(tt.yaml))
			var vErr *parsererror.ValidationError
			assert.ErrorAs(t, err, &vErr)
		})
	}

	_, err := ParseDomainRules([]byte("domains: [unterminated"))
	assert.Error(t, err)
}

func TestFindConfigFile_ConfigDir(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	require.NoError(t, os.Mkdir("config", 0o755))
	writeFile(t, filepath.Join(dir, "config"), "domains.yaml", "domains: []")

	path, err := NewDomainStore("", nil).FindConfigFile("domains.yaml")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("config", "domains.yaml"), path)
}
