package fixtures

import (
	"fmt"
	"math/rand/v2"
	"os"
	"path/filepath"
	"time"

	"github.com/bytedance/sonic"
	"gopkg.in/yaml.v3"
)

// JobRecord is one job as written to a job file
type JobRecord struct {
	ID       string `json:"id" yaml:"id"`
	Title    string `json:"title" yaml:"title"`
	StaffID  string `json:"staff_id" yaml:"staff_id"`
	Start    string `json:"start_time" yaml:"start_time"`
	End      string `json:"end_time" yaml:"end_time"`
	Status   string `json:"status,omitempty" yaml:"status,omitempty"`
	Location string `json:"location,omitempty" yaml:"location,omitempty"`
	RRule    string `json:"rrule,omitempty" yaml:"rrule,omitempty"`
}

type jobFile struct {
	Jobs []JobRecord `json:"jobs" yaml:"jobs"`
}

// JobFileGenerator writes job files for tests
type JobFileGenerator struct {
	baseDir string
}

// NewJobFileGenerator creates a generator writing under baseDir
func NewJobFileGenerator(baseDir string) *JobFileGenerator {
	return &JobFileGenerator{
		baseDir: baseDir,
	}
}

// Record builds a job starting at hh:mm on day and lasting d
func Record(id, staffID string, day time.Time, hh, mm int, d time.Duration) JobRecord {
	start := time.Date(day.Year(), day.Month(), day.Day(), hh, mm, 0, 0, day.Location())
	return JobRecord{
		ID:       id,
		Title:    "Regular Clean – " + id,
		StaffID:  staffID,
		Start:    start.Format(time.RFC3339),
		End:      start.Add(d).Format(time.RFC3339),
		Status:   "upcoming",
		Location: "Norwich",
	}
}

// GenerateDay writes a weekday rota for three staff members. s1 has two
// overlapping jobs at 10:00.
func (g *JobFileGenerator) GenerateDay(filename string, day time.Time) error {
	return g.WriteJSON(filename, []JobRecord{
		Record("job-1", "s1", day, 8, 30, 90*time.Minute),
		Record("job-2", "s1", day, 10, 0, 2*time.Hour),
		Record("job-3", "s1", day, 10, 30, time.Hour),
		Record("job-4", "s2", day, 9, 0, 3*time.Hour),
		Record("job-5", "s3", day, 13, 0, 2*time.Hour),
	})
}

// GenerateOverlapping writes n jobs for one staff member that all overlap
// at 12:00, so they need n lanes
func (g *JobFileGenerator) GenerateOverlapping(filename string, day time.Time, n int) error {
	records := make([]JobRecord, n)
	for i := range records {
		records[i] = Record(fmt.Sprintf("overlap-%02d", i+1), "s1", day, 11, i, time.Hour+time.Duration(i)*time.Minute)
	}
	return g.WriteJSON(filename, records)
}

// GenerateInvalid writes a file with one good job and one whose end is
// before its start
func (g *JobFileGenerator) GenerateInvalid(filename string, day time.Time) error {
	good := Record("good", "s1", day, 9, 0, time.Hour)
	bad := Record("backwards", "s2", day, 12, 0, time.Hour)
	bad.Start, bad.End = bad.End, bad.Start
	return g.WriteYAML(filename, []JobRecord{good, bad})
}

// GenerateRecurring writes a weekly job repeating on Mondays and Thursdays
func (g *JobFileGenerator) GenerateRecurring(filename string, firstMonday time.Time) error {
	job := Record("weekly", "s2", firstMonday, 9, 0, 2*time.Hour)
	job.RRule = "FREQ=WEEKLY;BYDAY=MO,TH"
	return g.WriteYAML(filename, []JobRecord{job})
}

// GenerateLargeDataset writes numJobs random jobs across staff s1..s5
// inside the working day. The same seed gives the same file.
func (g *JobFileGenerator) GenerateLargeDataset(filename string, day time.Time, numJobs int, seed uint64) error {
	rng := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	records := make([]JobRecord, numJobs)
	for i := range records {
		staff := fmt.Sprintf("s%d", rng.IntN(5)+1)
		hour := 7 + rng.IntN(10)
		minute := rng.IntN(4) * 15
		d := time.Duration(30+rng.IntN(8)*15) * time.Minute
		records[i] = Record(fmt.Sprintf("bulk-%04d", i), staff, day, hour, minute, d)
	}
	return g.WriteJSON(filename, records)
}

// CreateEmptyDir creates a directory with no job files
func (g *JobFileGenerator) CreateEmptyDir(name string) error {
	return os.MkdirAll(filepath.Join(g.baseDir, name), 0755)
}

// BaseDir returns the directory files are written to
func (g *JobFileGenerator) BaseDir() string {
	return g.baseDir
}

// WriteJSON writes records as a JSON array
func (g *JobFileGenerator) WriteJSON(filename string, records []JobRecord) error {
	data, err := sonic.ConfigStd.MarshalIndent(records, "", "  ")
	if err != nil {
		return err
	}
	return g.write(filename, data)
}

// WriteYAML writes records under a top-level jobs key
func (g *JobFileGenerator) WriteYAML(filename string, records []JobRecord) error {
	data, err := yaml.Marshal(jobFile{Jobs: records})
	if err != nil {
		return err
	}
	return g.write(filename, data)
}

func (g *JobFileGenerator) write(filename string, data []byte) error {
	path := filepath.Join(g.baseDir, filename)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
