package report

import (
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/Arcscribe-Web-Solutions/norfolk-cleaners/internal/util"
)

// LoadStats counts what happened to each job file during a load.
type LoadStats struct {
	totalFiles int64
	cacheHits  int64
	parsed     int64
	failures   int64
	removed    int64

	mu     sync.Mutex
	failed []FailedFile
}

// FailedFile records a file that could not be parsed.
type FailedFile struct {
	Path string
	Err  error
}

func NewLoadStats() *LoadStats {
	return &LoadStats{failed: make([]FailedFile, 0)}
}

func (s *LoadStats) IncrementTotal() {
	atomic.AddInt64(&s.totalFiles, 1)
}

func (s *LoadStats) IncrementHit() {
	atomic.AddInt64(&s.cacheHits, 1)
}

func (s *LoadStats) IncrementParsed() {
	atomic.AddInt64(&s.parsed, 1)
}

func (s *LoadStats) IncrementRemoved() {
	atomic.AddInt64(&s.removed, 1)
}

// IncrementFailure counts a failed file and keeps the error for the summary.
func (s *LoadStats) IncrementFailure(path string, err error) {
	atomic.AddInt64(&s.failures, 1)

	s.mu.Lock()
	s.failed = append(s.failed, FailedFile{Path: path, Err: err})
	s.mu.Unlock()
}

func (s *LoadStats) Total() int64    { return atomic.LoadInt64(&s.totalFiles) }
func (s *LoadStats) Hits() int64     { return atomic.LoadInt64(&s.cacheHits) }
func (s *LoadStats) Parsed() int64   { return atomic.LoadInt64(&s.parsed) }
func (s *LoadStats) Failures() int64 { return atomic.LoadInt64(&s.failures) }
func (s *LoadStats) Removed() int64  { return atomic.LoadInt64(&s.removed) }

// Failed returns a copy of the failed files.
func (s *LoadStats) Failed() []FailedFile {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]FailedFile, len(s.failed))
	copy(out, s.failed)
	return out
}

func (s *LoadStats) String() string {
	return fmt.Sprintf("files=%d cached=%d parsed=%d failed=%d removed=%d",
		s.Total(), s.Hits(), s.Parsed(), s.Failures(), s.Removed())
}

// Log writes the summary and every failure to the debug log.
func (s *LoadStats) Log() {
	util.LogDebugf("Job files loaded: %s", s)
	for _, f := range s.Failed() {
		util.LogWarnf("Failed to parse %s: %v", f.Path, f.Err)
	}
}
