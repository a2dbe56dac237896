package parser

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/bytedance/sonic"
	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/Arcscribe-Web-Solutions/norfolk-cleaners/internal/core/model"
	"github.com/Arcscribe-Web-Solutions/norfolk-cleaners/internal/data/ics"
	"github.com/Arcscribe-Web-Solutions/norfolk-cleaners/internal/util"
)

// ErrUnsupportedFormat is returned for files with an unknown extension.
var ErrUnsupportedFormat = errors.New("unsupported job file format")

// timeLayouts are tried in order when reading job times.
var timeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
}

// Parser reads job files. Results are cached per path until invalidated.
type Parser struct {
	concurrency int
	location    *time.Location
	mu          sync.Mutex
	cache       map[string][]model.Job
}

// ParseResult represents the result of parsing a single file.
type ParseResult struct {
	File  string
	Jobs  []model.Job
	Error error
}

// jobRecord is the on-disk shape of a job in JSON, JSONL, YAML and CSV files.
type jobRecord struct {
	ID       string `json:"id" yaml:"id"`
	Title    string `json:"title" yaml:"title"`
	StaffID  string `json:"staff_id" yaml:"staff_id"`
	Start    string `json:"start_time" yaml:"start_time"`
	End      string `json:"end_time" yaml:"end_time"`
	Status   string `json:"status" yaml:"status"`
	Location string `json:"location" yaml:"location"`
	RRule    string `json:"rrule,omitempty" yaml:"rrule,omitempty"`
}

// jobDocument wraps jobs in JSON and YAML documents.
type jobDocument struct {
	Jobs []jobRecord `json:"jobs" yaml:"jobs"`
}

// NewParser creates a new Parser. Times without an offset are read in loc;
// a nil loc means time.Local.
func NewParser(concurrency int, loc *time.Location) *Parser {
	if concurrency <= 0 {
		concurrency = 1
	}
	if loc == nil {
		loc = time.Local
	}
	return &Parser{
		concurrency: concurrency,
		location:    loc,
		cache:       make(map[string][]model.Job),
	}
}

// SupportedExtensions lists the file extensions ParseFile understands.
func SupportedExtensions() []string {
	return []string{".json", ".jsonl", ".yaml", ".yml", ".csv", ".ics"}
}

// IsSupported reports whether path has a job file extension.
func IsSupported(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, e := range SupportedExtensions() {
		if e == ext {
			return true
		}
	}
	return false
}

// ParseFile parses the job file at path.
func (p *Parser) ParseFile(path string) ([]model.Job, error) {
	p.mu.Lock()
	if cached, ok := p.cache[path]; ok {
		p.mu.Unlock()
		return cached, nil
	}
	p.mu.Unlock()

	util.LogDebugf("Start parsing file: %s", path)

	data, err := os.ReadFile(path)
	if err != nil {
		util.LogDebugf("Failed to read file: %s - %v", path, err)
		return nil, err
	}

	var records []jobRecord
	var jobs []model.Job

	switch strings.ToLower(filepath.Ext(path)) {
	case ".jsonl":
		records, err = decodeJSONL(path, data)
	case ".json":
		records, err = decodeJSON(data)
	case ".yaml", ".yml":
		records, err = decodeYAML(data)
	case ".csv":
		records, err = decodeCSV(data)
	case ".ics":
		jobs, err = ics.Parse(bytes.NewReader(data))
	default:
		err = fmt.Errorf("%w: %s", ErrUnsupportedFormat, filepath.Ext(path))
	}
	if err != nil {
		util.LogDebugf("Error parsing file: %s - %v", path, err)
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	for i, rec := range records {
		job, err := p.toJob(path, i, rec)
		if err != nil {
			util.LogDebugf("Skip job %s:%d - %v", path, i+1, err)
			continue
		}
		jobs = append(jobs, job)
	}

	p.mu.Lock()
	p.cache[path] = jobs
	p.mu.Unlock()

	return jobs, nil
}

// Invalidate drops the cached jobs of path so the next ParseFile re-reads it.
func (p *Parser) Invalidate(path string) {
	p.mu.Lock()
	delete(p.cache, path)
	p.mu.Unlock()
}

// ParseFiles parses multiple files concurrently and returns a channel of ParseResult.
func (p *Parser) ParseFiles(files []string) <-chan ParseResult {
	start := time.Now()
	results := make(chan ParseResult, len(files))
	var wg sync.WaitGroup

	util.LogDebugf("Start concurrent parsing of %d files, concurrency: %d", len(files), p.concurrency)

	semaphore := make(chan struct{}, p.concurrency)

	for _, file := range files {
		wg.Add(1)
		go func(f string) {
			defer wg.Done()

			semaphore <- struct{}{}
			defer func() { <-semaphore }()

			fileStart := time.Now()
			jobs, err := p.ParseFile(f)
			if err != nil {
				util.LogDebugf("File parsing failed: %s, duration %v - %v", f, time.Since(fileStart), err)
			}

			results <- ParseResult{
				File:  f,
				Jobs:  jobs,
				Error: err,
			}
		}(file)
	}

	go func() {
		wg.Wait()
		close(results)
		util.LogDebugf("Concurrent parsing finished, total duration: %v", time.Since(start))
	}()

	return results
}

func (p *Parser) toJob(path string, index int, rec jobRecord) (model.Job, error) {
	start, err := p.parseTime(rec.Start)
	if err != nil {
		return model.Job{}, fmt.Errorf("start_time: %w", err)
	}
	end, err := p.parseTime(rec.End)
	if err != nil {
		return model.Job{}, fmt.Errorf("end_time: %w", err)
	}

	job := model.Job{
		ID:       strings.TrimSpace(rec.ID),
		Title:    strings.TrimSpace(rec.Title),
		StaffID:  strings.TrimSpace(rec.StaffID),
		Start:    start,
		End:      end,
		Status:   strings.ToLower(strings.TrimSpace(rec.Status)),
		Location: strings.TrimSpace(rec.Location),
		RRule:    strings.TrimSpace(rec.RRule),
	}
	if job.Status == "" {
		job.Status = model.StatusUpcoming
	}
	if job.ID == "" {
		job.ID = stableID(path, index)
	}
	return job, nil
}

func (p *Parser) parseTime(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, errors.New("empty time")
	}
	for _, layout := range timeLayouts {
		if t, err := time.ParseInLocation(layout, value, p.location); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognised time %q", value)
}

// stableID derives a job ID from its file and position so repeated loads
// of the same file agree.
func stableID(path string, index int) string {
	return uuid.NewSHA1(uuid.NameSpaceURL, []byte("file://"+path+"#"+strconv.Itoa(index))).String()
}

func decodeJSONL(path string, data []byte) ([]jobRecord, error) {
	var records []jobRecord
	scanner := bufio.NewScanner(bytes.NewReader(data))
	scanner.Buffer(make([]byte, 0, 64*1024), 10*1024*1024)

	lineCount := 0
	for scanner.Scan() {
		lineCount++
		line := bytes.TrimSpace(scanner.Bytes())
		if len(line) == 0 {
			continue
		}
		var rec jobRecord
		if err := sonic.Unmarshal(line, &rec); err != nil {
			util.LogDebugf("Skip invalid JSON line %s:%d - %v", path, lineCount, err)
			continue
		}
		records = append(records, rec)
	}
	return records, scanner.Err()
}

// decodeJSON accepts either a bare array of jobs or {"jobs": [...]}.
func decodeJSON(data []byte) ([]jobRecord, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil, nil
	}
	if trimmed[0] == '[' {
		var records []jobRecord
		err := sonic.Unmarshal(trimmed, &records)
		return records, err
	}
	var doc jobDocument
	if err := sonic.Unmarshal(trimmed, &doc); err != nil {
		return nil, err
	}
	return doc.Jobs, nil
}

// decodeYAML accepts either a sequence of jobs or a mapping with a jobs key.
func decodeYAML(data []byte) ([]jobRecord, error) {
	var node yaml.Node
	if err := yaml.Unmarshal(data, &node); err != nil {
		return nil, err
	}
	if len(node.Content) == 0 {
		return nil, nil
	}
	root := node.Content[0]
	if root.Kind == yaml.SequenceNode {
		var records []jobRecord
		err := root.Decode(&records)
		return records, err
	}
	var doc jobDocument
	if err := root.Decode(&doc); err != nil {
		return nil, err
	}
	return doc.Jobs, nil
}

// decodeCSV reads a header row naming the job fields followed by one job per row.
func decodeCSV(data []byte) ([]jobRecord, error) {
	reader := csv.NewReader(bytes.NewReader(data))
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err == io.EOF {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	index := make(map[string]int, len(header))
	for i, name := range header {
		index[strings.ToLower(strings.TrimSpace(name))] = i
	}
	for _, required := range []string{"staff_id", "start_time", "end_time"} {
		if _, ok := index[required]; !ok {
			return nil, fmt.Errorf("missing column %q", required)
		}
	}

	field := func(row []string, name string) string {
		if i, ok := index[name]; ok && i < len(row) {
			return row[i]
		}
		return ""
	}

	var records []jobRecord
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		records = append(records, jobRecord{
			ID:       field(row, "id"),
			Title:    field(row, "title"),
			StaffID:  field(row, "staff_id"),
			Start:    field(row, "start_time"),
			End:      field(row, "end_time"),
			Status:   field(row, "status"),
			Location: field(row, "location"),
			RRule:    field(row, "rrule"),
		})
	}
	return records, nil
}
