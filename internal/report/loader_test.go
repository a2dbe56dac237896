package report

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const jobsJSON = `[
  {"id":"j-001","title":"Regular Clean – Mrs. Patterson","staff_id":"s1","start_time":"2026-02-25T08:30:00Z","end_time":"2026-02-25T10:00:00Z","status":"completed"},
  {"id":"j-002","title":"Deep Clean – Dr. Okonkwo","staff_id":"s1","start_time":"2026-02-25T10:30:00Z","end_time":"2026-02-25T13:00:00Z","status":"in_progress"}
]`

const jobsYAML = `jobs:
  - id: j-004
    title: End of Tenancy – 18 Colman Rd
    staff_id: s2
    start_time: "2026-02-25T09:00:00Z"
    end_time: "2026-02-25T12:00:00Z"
`

func writeJobs(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoaderRefresh(t *testing.T) {
	dir := t.TempDir()
	jsonPath := writeJobs(t, dir, "monday.json", jobsJSON)
	writeJobs(t, dir, "rota/tuesday.yaml", jobsYAML)
	writeJobs(t, dir, "notes.txt", "not a job file")

	loader := NewLoader(dir, 2, time.UTC)
	assert.Equal(t, dir, loader.Dir())
	assert.True(t, loader.Matches(jsonPath))
	assert.False(t, loader.Matches(filepath.Join(dir, "notes.txt")))

	stats, err := loader.Refresh()
	require.NoError(t, err)
	assert.Equal(t, int64(2), stats.Total())
	assert.Equal(t, int64(2), stats.Parsed())
	assert.Zero(t, stats.Hits())
	assert.Len(t, loader.Jobs(), 3)

	t.Run("unchanged files come from the cache", func(t *testing.T) {
		stats, err := loader.Refresh()
		require.NoError(t, err)
		assert.Equal(t, int64(2), stats.Hits())
		assert.Zero(t, stats.Parsed())
	})

	t.Run("changed file is parsed again", func(t *testing.T) {
		writeJobs(t, dir, "monday.json", `[{"id":"j-001","staff_id":"s1","start_time":"2026-02-25T08:30:00Z","end_time":"2026-02-25T10:00:00Z"}]`)

		files, err := loader.Scan()
		require.NoError(t, err)
		assert.Equal(t, []string{jsonPath}, loader.Changed(files))

		stats := loader.Load(files)
		assert.Equal(t, int64(1), stats.Parsed())
		assert.Equal(t, int64(1), stats.Hits())
		assert.Len(t, loader.Jobs(), 2)
	})

	t.Run("deleted file is dropped", func(t *testing.T) {
		require.NoError(t, os.Remove(jsonPath))

		stats, err := loader.Refresh()
		require.NoError(t, err)
		assert.Equal(t, int64(1), stats.Removed())
		require.Len(t, loader.Jobs(), 1)
		assert.Equal(t, "j-004", loader.Jobs()[0].ID)
	})
}

func TestLoaderFailures(t *testing.T) {
	dir := t.TempDir()
	writeJobs(t, dir, "good.json", jobsJSON)
	bad := writeJobs(t, dir, "broken.json", `{"jobs": [`)

	loader := NewLoader(dir, 1, time.UTC)
	stats, err := loader.Refresh()
	require.NoError(t, err)

	assert.Equal(t, int64(1), stats.Failures())
	require.Len(t, stats.Failed(), 1)
	assert.Equal(t, bad, stats.Failed()[0].Path)
	assert.Len(t, loader.Jobs(), 2)
	assert.Contains(t, stats.String(), "failed=1")
}

func TestLoaderReset(t *testing.T) {
	dir := t.TempDir()
	writeJobs(t, dir, "monday.json", jobsJSON)

	loader := NewLoader(dir, 1, time.UTC)
	_, err := loader.Refresh()
	require.NoError(t, err)

	stats, err := loader.Reset()
	require.NoError(t, err)
	assert.Equal(t, int64(1), stats.Parsed())
	assert.Len(t, loader.Jobs(), 2)
	assert.Equal(t, 1, loader.Cache().Len())
}

func TestLoaderResetDropsDeletedFiles(t *testing.T) {
	dir := t.TempDir()
	path := writeJobs(t, dir, "monday.json", jobsJSON)

	loader := NewLoader(dir, 1, time.UTC)
	_, err := loader.Refresh()
	require.NoError(t, err)
	require.NoError(t, os.Remove(path))

	stats, err := loader.Reset()
	require.NoError(t, err)
	assert.Zero(t, stats.Total())
	assert.Empty(t, loader.Jobs())
}
