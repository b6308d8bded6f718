package organizer

import (
	"context"
	"os"
	"path/filepath"
	"sort"
	"testing"

	"fjacquet/cert-archive/internal/logging"
	"fjacquet/cert-archive/internal/pdftext"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, root, rel string) {
	t.Helper()
	p := filepath.Join(root, filepath.FromSlash(rel))
	require.NoError(t, os.MkdirAll(filepath.Dir(p), 0755))
	require.NoError(t, os.WriteFile(p, []byte("%PDF-1.4"), 0644))
}

// newArchive builds a messy archive: one organized certificate, course
// folders with and without a year, a duplicate name and some leftovers.
func newArchive(t *testing.T) string {
	root := t.TempDir()
	writeFile(t, root, "2023/existing.pdf")
	writeFile(t, root, "2023/notes.txt")
	writeFile(t, root, "Learning Go 2022/CertificateOfCompletion_Go.pdf")
	writeFile(t, root, "Learning Go 2022/cover.jpg")
	writeFile(t, root, "Docker Course/CertificateOfCompletion_Docker.pdf")
	writeFile(t, root, "Misc/CertificateOfCompletion_Go.pdf")
	writeFile(t, root, "Another/CertificateOfCompletion_Go.pdf")
	return root
}

func newTestOrganizer(logger logging.Logger) *Organizer {
	extractor := &pdftext.MockExtractor{Texts: map[string]string{
		"CertificateOfCompletion_Docker.pdf": "Docker Basics\nCourse completed by Jane Doe\nMay 17, 2025 at 07:24AM UTC",
	}}
	return NewOrganizer(extractor, nil, logger, "")
}

func listTree(t *testing.T, root string) []string {
	t.Helper()
	var out []string
	require.NoError(t, filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		require.NoError(t, err)
		if path == root {
			return nil
		}
		rel, err := filepath.Rel(root, path)
		require.NoError(t, err)
		if d.IsDir() {
			rel += "/"
		}
		out = append(out, filepath.ToSlash(rel))
		return nil
	}))
	sort.Strings(out)
	return out
}

func TestOrganize(t *testing.T) {
	root := newArchive(t)
	logger := logging.NewMockLogger()

	report, err := newTestOrganizer(logger).Organize(context.Background(), root, false)
	require.NoError(t, err)

	assert.Equal(t, []string{
		"2022/",
		"2022/CertificateOfCompletion_Go.pdf",
		"2023/",
		"2023/existing.pdf",
		"2024/",
		"2024/CertificateOfCompletion_Go.pdf",
		"2024/CertificateOfCompletion_Go_1.pdf",
		"2025/",
		"2025/CertificateOfCompletion_Docker.pdf",
	}, listTree(t, root))

	assert.False(t, report.DryRun)
	assert.Equal(t, 4, report.Moved)
	assert.Equal(t, 1, report.AlreadyOrganized)
	assert.Equal(t, 0, report.Failed)
	assert.Equal(t, 2, report.RemovedFiles)
	assert.Equal(t, 4, report.RemovedDirs)
	assert.Equal(t, map[string]int{"2022": 1, "2023": 1, "2024": 2, "2025": 1}, report.YearCounts)

	assert.True(t, logger.HasEntry("INFO", "Organization complete"))
	assert.Len(t, filterMessages(logger, "Year folder summary"), 4)
}

func TestOrganize_DryRunLeavesArchiveUntouched(t *testing.T) {
	root := newArchive(t)
	before := listTree(t, root)
	logger := logging.NewMockLogger()

	report, err := newTestOrganizer(logger).Organize(context.Background(), root, true)
	require.NoError(t, err)

	assert.Equal(t, before, listTree(t, root))
	assert.True(t, report.DryRun)
	assert.Equal(t, 4, report.Moved)
	assert.Equal(t, map[string]int{"2022": 1, "2023": 1, "2024": 2, "2025": 1}, report.YearCounts)

	moves := filterMessages(logger, "Would move certificate")
	require.Len(t, moves, 4)
	dryRun, _ := moves[0].FieldValue(logging.FieldDryRun)
	assert.Equal(t, true, dryRun)
}

func TestPlan_DuplicatesGetCounterSuffix(t *testing.T) {
	root := newArchive(t)
	writeFile(t, root, "2024/CertificateOfCompletion_Go.pdf")

	plan, err := newTestOrganizer(nil).Plan(context.Background(), root)
	require.NoError(t, err)

	targets := make(map[string]string)
	for _, mv := range plan.Moves {
		rel, err := filepath.Rel(root, mv.Source)
		require.NoError(t, err)
		target, err := filepath.Rel(root, mv.Target)
		require.NoError(t, err)
		targets[filepath.ToSlash(rel)] = filepath.ToSlash(target)
	}
	assert.Equal(t, "2024/CertificateOfCompletion_Go_1.pdf", targets["Another/CertificateOfCompletion_Go.pdf"])
	assert.Equal(t, "2024/CertificateOfCompletion_Go_2.pdf", targets["Misc/CertificateOfCompletion_Go.pdf"])
	assert.Equal(t, "2022/CertificateOfCompletion_Go.pdf", targets["Learning Go 2022/CertificateOfCompletion_Go.pdf"])
	assert.Equal(t, "2025/CertificateOfCompletion_Docker.pdf", targets["Docker Course/CertificateOfCompletion_Docker.pdf"])
}

func TestPlan_NestedYearFolderIsNotOrganized(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "Course/2021/cert.pdf")

	plan, err := newTestOrganizer(nil).Plan(context.Background(), root)
	require.NoError(t, err)
	require.Len(t, plan.Moves, 1)
	assert.Equal(t, "2021", plan.Moves[0].Year)
	assert.Empty(t, plan.AlreadyOrganized)
	assert.Len(t, plan.RemoveDirs, 2)
}

func TestOrganize_MissingRoot(t *testing.T) {
	_, err := newTestOrganizer(nil).Organize(context.Background(), filepath.Join(t.TempDir(), "missing"), false)
	assert.Error(t, err)
}

func TestPlan_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := newTestOrganizer(nil).Plan(ctx, newArchive(t))
	assert.ErrorIs(t, err, context.Canceled)
}

func filterMessages(logger *logging.MockLogger, msg string) []logging.LogEntry {
	var out []logging.LogEntry
	for _, e := range logger.Entries() {
		if e.Message == msg {
			out = append(out, e)
		}
	}
	return out
}
