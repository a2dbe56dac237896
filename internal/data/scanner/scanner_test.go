package scanner

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var jobExtensions = []string{".json", ".jsonl", ".yaml", ".yml", ".csv", ".ics"}

func createFiles(t *testing.T, root string, names ...string) {
	t.Helper()
	for _, name := range names {
		full := filepath.Join(root, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(full), 0755))
		require.NoError(t, os.WriteFile(full, []byte("content"), 0644))
	}
}

func TestNewFileScanner(t *testing.T) {
	scanner := NewFileScanner("/tmp/jobs", ".JSON", ".csv")

	assert.Equal(t, "/tmp/jobs", scanner.BaseDir())
	assert.True(t, scanner.Matches("a/b/today.json"))
	assert.True(t, scanner.Matches("ROTA.CSV"))
	assert.False(t, scanner.Matches("rota.yaml"))
}

func TestFileScannerScanEmptyDirectory(t *testing.T) {
	files, err := NewFileScanner(t.TempDir(), jobExtensions...).Scan()

	require.NoError(t, err)
	assert.Empty(t, files)
}

func TestFileScannerScanNonExistentDirectory(t *testing.T) {
	files, err := NewFileScanner("/path/that/does/not/exist", jobExtensions...).Scan()

	require.NoError(t, err, "missing directories are skipped")
	assert.Empty(t, files)
}

func TestFileScannerScanMixedFileTypes(t *testing.T) {
	tempDir := t.TempDir()

	tests := []struct {
		name  string
		match bool
	}{
		{"monday.jsonl", true},
		{"rota.json", true},
		{"roster.YAML", true},
		{"week.yml", true},
		{"import.csv", true},
		{"bookings.ics", true},
		{"notes.txt", false},
		{"backup.json.bak", false},
		{"subdir/tuesday.jsonl", true},
		{".git/config.json", false},
	}

	var want []string
	for _, tt := range tests {
		createFiles(t, tempDir, tt.name)
		if tt.match {
			want = append(want, filepath.Join(tempDir, tt.name))
		}
	}

	files, err := NewFileScanner(tempDir, jobExtensions...).Scan()
	require.NoError(t, err)
	assert.ElementsMatch(t, want, files)
}

func TestFileScannerScanOrder(t *testing.T) {
	tempDir := t.TempDir()
	createFiles(t, tempDir, "b.json", "a.json", "c/a.json")

	files, err := NewFileScanner(tempDir, ".json").Scan()
	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join(tempDir, "a.json"),
		filepath.Join(tempDir, "b.json"),
		filepath.Join(tempDir, "c", "a.json"),
	}, files)
}

func TestFileScannerScanPermissionDenied(t *testing.T) {
	if os.Geteuid() == 0 {
		t.Skip("permission checks do not apply to root")
	}
	tempDir := t.TempDir()
	createFiles(t, tempDir, "ok.json", "restricted/hidden.json")

	restrictedDir := filepath.Join(tempDir, "restricted")
	require.NoError(t, os.Chmod(restrictedDir, 0000))
	defer os.Chmod(restrictedDir, 0755)

	files, err := NewFileScanner(tempDir, ".json").Scan()
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(tempDir, "ok.json")}, files)
}

func TestFileScannerScanLargeDirectory(t *testing.T) {
	tempDir := t.TempDir()
	expected := 0
	for i := 0; i < 100; i++ {
		name := fmt.Sprintf("notes%d.txt", i)
		if i%3 == 0 {
			name = fmt.Sprintf("day%d.jsonl", i)
			expected++
		}
		createFiles(t, tempDir, name)
	}

	files, err := NewFileScanner(tempDir, jobExtensions...).Scan()
	require.NoError(t, err)
	assert.Len(t, files, expected)
}
