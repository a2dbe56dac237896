package parser

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/Arcscribe-Web-Solutions/norfolk-cleaners/internal/core/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestNewParser(t *testing.T) {
	parser := NewParser(4, nil)

	assert.NotNil(t, parser)
	assert.Equal(t, 4, parser.concurrency)
	assert.Equal(t, time.Local, parser.location)
	assert.Empty(t, parser.cache)

	assert.Equal(t, 1, NewParser(0, time.UTC).concurrency)
}

func TestIsSupported(t *testing.T) {
	assert.True(t, IsSupported("jobs/today.JSON"))
	assert.True(t, IsSupported("rota.yml"))
	assert.True(t, IsSupported("calendar.ics"))
	assert.False(t, IsSupported("notes.txt"))
	assert.False(t, IsSupported("README"))
}

func TestParserParseFileJSONL(t *testing.T) {
	parser := NewParser(1, time.UTC)
	content := `{"id":"j-001","title":"Regular Clean – Mrs. Patterson","staff_id":"s1","start_time":"2026-02-25T08:30:00Z","end_time":"2026-02-25T10:00:00Z","status":"completed","location":"14 Riverside Rd, NR1"}
invalid json line here

{"id":"j-002","staff_id":"s1","start_time":"2026-02-25T10:30","end_time":"2026-02-25T13:00"}
{"id":"j-003","staff_id":"s1","start_time":"whenever","end_time":"2026-02-25T13:00"}`

	jobs, err := parser.ParseFile(writeFile(t, t.TempDir(), "jobs.jsonl", content))
	require.NoError(t, err, "invalid lines are skipped")
	require.Len(t, jobs, 2)

	assert.Equal(t, "j-001", jobs[0].ID)
	assert.Equal(t, model.StatusCompleted, jobs[0].Status)
	assert.Equal(t, "Mrs. Patterson", jobs[0].Customer())
	assert.Equal(t, time.Date(2026, 2, 25, 8, 30, 0, 0, time.UTC), jobs[0].Start.UTC())

	assert.Equal(t, model.StatusUpcoming, jobs[1].Status, "status defaults to upcoming")
	assert.Equal(t, time.Date(2026, 2, 25, 10, 30, 0, 0, time.UTC), jobs[1].Start)
}

func TestParserParseFileJSON(t *testing.T) {
	parser := NewParser(1, time.UTC)
	dir := t.TempDir()

	tests := []struct {
		name    string
		content string
		want    int
	}{
		{"array", `[{"id":"a","staff_id":"s1","start_time":"2026-02-25T09:00:00Z","end_time":"2026-02-25T10:00:00Z"}]`, 1},
		{"document", `{"jobs":[{"id":"a","staff_id":"s1","start_time":"2026-02-25T09:00:00Z","end_time":"2026-02-25T10:00:00Z"},{"id":"b","staff_id":"s2","start_time":"2026-02-25T09:00:00Z","end_time":"2026-02-25T10:00:00Z"}]}`, 2},
		{"empty", ``, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			jobs, err := parser.ParseFile(writeFile(t, dir, tt.name+".json", tt.content))
			require.NoError(t, err)
			assert.Len(t, jobs, tt.want)
		})
	}

	_, err := parser.ParseFile(writeFile(t, dir, "broken.json", `{"jobs": [`))
	assert.Error(t, err)
}

func TestParserParseFileYAML(t *testing.T) {
	parser := NewParser(1, time.UTC)
	content := `jobs:
  - id: j-004
    title: End of Tenancy – 18 Colman Rd
    staff_id: s2
    start_time: "2026-02-25 09:00"
    end_time: "2026-02-25 12:00"
    status: In_Progress
  - title: Weekly office clean
    staff_id: s5
    start_time: "2026-02-02T07:00:00Z"
    end_time: "2026-02-02T09:30:00Z"
    rrule: FREQ=WEEKLY;BYDAY=MO
`
	path := writeFile(t, t.TempDir(), "rota.yaml", content)
	jobs, err := parser.ParseFile(path)
	require.NoError(t, err)
	require.Len(t, jobs, 2)

	assert.Equal(t, model.StatusInProgress, jobs[0].Status)
	assert.Equal(t, 3*time.Hour, jobs[0].Duration())
	assert.Equal(t, "FREQ=WEEKLY;BYDAY=MO", jobs[1].RRule)

	require.NotEmpty(t, jobs[1].ID, "missing IDs are generated")
	parser.Invalidate(path)
	again, err := parser.ParseFile(path)
	require.NoError(t, err)
	assert.Equal(t, jobs[1].ID, again[1].ID, "generated IDs are stable across reloads")
}

func TestParserParseFileYAMLSequence(t *testing.T) {
	parser := NewParser(1, time.UTC)
	content := `- id: a
  staff_id: s1
  start_time: "2026-02-25T09:00:00Z"
  end_time: "2026-02-25T10:00:00Z"
`
	jobs, err := parser.ParseFile(writeFile(t, t.TempDir(), "list.yml", content))
	require.NoError(t, err)
	assert.Len(t, jobs, 1)
}

func TestParserParseFileCSV(t *testing.T) {
	parser := NewParser(1, time.UTC)
	content := "id,title,staff_id,start_time,end_time,status,location\n" +
		"j-006,Regular Clean – Mr. & Mrs. Chen,s3,2026-02-25 08:00,2026-02-25 09:30,completed,\"22 Eaton Rd, NR4\"\n" +
		"j-007,Window Clean,s3,2026-02-25 10:00,2026-02-25 12:30,in_progress,The Close\n"

	jobs, err := parser.ParseFile(writeFile(t, t.TempDir(), "jobs.csv", content))
	require.NoError(t, err)
	require.Len(t, jobs, 2)
	assert.Equal(t, "22 Eaton Rd, NR4", jobs[0].Location)
	assert.Equal(t, "22 Eaton Rd", jobs[0].ShortLocation())
	assert.Equal(t, model.StatusInProgress, jobs[1].Status)

	_, err = parser.ParseFile(writeFile(t, t.TempDir(), "bad.csv", "id,title\n1,x\n"))
	assert.ErrorContains(t, err, "staff_id")
}

func TestParserParseFileICS(t *testing.T) {
	parser := NewParser(1, time.UTC)
	content := "BEGIN:VCALENDAR\r\nVERSION:2.0\r\nPRODID:-//test//EN\r\n" +
		"BEGIN:VEVENT\r\nUID:cal-1\r\nDTSTAMP:20260220T120000Z\r\n" +
		"DTSTART:20260225T090000Z\r\nDTEND:20260225T100000Z\r\n" +
		"SUMMARY:Deep Clean\r\nX-NORFOLK-STAFF-ID:s2\r\nEND:VEVENT\r\n" +
		"END:VCALENDAR\r\n"

	jobs, err := parser.ParseFile(writeFile(t, t.TempDir(), "jobs.ics", content))
	require.NoError(t, err)
	require.Len(t, jobs, 1)
	assert.Equal(t, "cal-1", jobs[0].ID)
	assert.Equal(t, "s2", jobs[0].StaffID)
}

func TestParserParseFileErrors(t *testing.T) {
	parser := NewParser(1, time.UTC)

	_, err := parser.ParseFile("/nonexistent/jobs.json")
	assert.Error(t, err)

	_, err = parser.ParseFile(writeFile(t, t.TempDir(), "notes.txt", "hello"))
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}

func TestParserParseFileCache(t *testing.T) {
	parser := NewParser(1, time.UTC)
	path := writeFile(t, t.TempDir(), "jobs.jsonl",
		`{"id":"a","staff_id":"s1","start_time":"2026-02-25T09:00:00Z","end_time":"2026-02-25T10:00:00Z"}`)

	first, err := parser.ParseFile(path)
	require.NoError(t, err)
	require.Len(t, first, 1)

	require.NoError(t, os.WriteFile(path, []byte(""), 0644))
	cached, err := parser.ParseFile(path)
	require.NoError(t, err)
	assert.Len(t, cached, 1, "second read is served from cache")

	parser.Invalidate(path)
	fresh, err := parser.ParseFile(path)
	require.NoError(t, err)
	assert.Empty(t, fresh)
}

func TestParserParseFilesConcurrent(t *testing.T) {
	parser := NewParser(3, time.UTC)
	dir := t.TempDir()

	var files []string
	for i := 0; i < 10; i++ {
		content := fmt.Sprintf(`{"id":"job-%d","staff_id":"s1","start_time":"2026-02-25T09:00:00Z","end_time":"2026-02-25T10:00:00Z"}`, i)
		files = append(files, writeFile(t, dir, fmt.Sprintf("f%d.jsonl", i), content))
	}
	files = append(files, filepath.Join(dir, "missing.jsonl"))

	seen := make(map[string]bool)
	failures := 0
	for result := range parser.ParseFiles(files) {
		if result.Error != nil {
			failures++
			continue
		}
		for _, job := range result.Jobs {
			seen[job.ID] = true
		}
	}

	assert.Equal(t, 1, failures)
	assert.Len(t, seen, 10)
}

func TestParserParseFilesEmptyList(t *testing.T) {
	parser := NewParser(2, time.UTC)
	count := 0
	for range parser.ParseFiles(nil) {
		count++
	}
	assert.Zero(t, count)
}

func TestParserConcurrentSameFile(t *testing.T) {
	parser := NewParser(4, time.UTC)
	path := writeFile(t, t.TempDir(), "shared.jsonl",
		`{"id":"a","staff_id":"s1","start_time":"2026-02-25T09:00:00Z","end_time":"2026-02-25T10:00:00Z"}`)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			jobs, err := parser.ParseFile(path)
			assert.NoError(t, err)
			assert.Len(t, jobs, 1)
		}()
	}
	wg.Wait()
}
