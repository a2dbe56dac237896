package report

import (
	"errors"
	"fmt"
	"time"

	"github.com/Arcscribe-Web-Solutions/norfolk-cleaners/internal/core/cache"
	"github.com/Arcscribe-Web-Solutions/norfolk-cleaners/internal/core/model"
	"github.com/Arcscribe-Web-Solutions/norfolk-cleaners/internal/data/parser"
	"github.com/Arcscribe-Web-Solutions/norfolk-cleaners/internal/data/scanner"
	"github.com/Arcscribe-Web-Solutions/norfolk-cleaners/internal/util"
)

// ErrNoJobFiles is returned when the jobs directory holds no supported files.
var ErrNoJobFiles = errors.New("no job files found")

// Loader keeps the jobs of a directory in memory. Files are parsed again
// only when their size, inode or content changed since the last load.
type Loader struct {
	cache   *cache.MemoryCache
	scanner *scanner.FileScanner
	parser  *parser.Parser
}

func NewLoader(dir string, concurrency int, loc *time.Location) *Loader {
	return &Loader{
		cache:   cache.NewMemoryCache(),
		scanner: scanner.NewFileScanner(dir, parser.SupportedExtensions()...),
		parser:  parser.NewParser(concurrency, loc),
	}
}

// Dir is the scanned directory.
func (l *Loader) Dir() string {
	return l.scanner.BaseDir()
}

// Matches reports whether path is a job file the loader would read.
func (l *Loader) Matches(path string) bool {
	return l.scanner.Matches(path)
}

// Cache exposes the in-memory job cache.
func (l *Loader) Cache() *cache.MemoryCache {
	return l.cache
}

// Scan lists the job files currently on disk.
func (l *Loader) Scan() ([]string, error) {
	return l.scanner.Scan()
}

// Changed returns the files whose cache entry is missing or stale.
func (l *Loader) Changed(files []string) []string {
	var changed []string
	for _, file := range files {
		if _, fresh := l.cache.Fresh(file); !fresh {
			changed = append(changed, file)
		}
	}
	return changed
}

// Load brings the cache in line with files: stale files are parsed again,
// fresh ones are kept, and cached files missing from the list are dropped.
func (l *Loader) Load(files []string) *LoadStats {
	stats := NewLoadStats()

	listed := make(map[string]bool, len(files))
	for _, f := range files {
		listed[f] = true
	}
	for _, cached := range l.cache.Paths() {
		if !listed[cached] {
			l.cache.Remove(cached)
			stats.IncrementRemoved()
		}
	}

	changed := l.Changed(files)
	for range len(files) - len(changed) {
		stats.IncrementTotal()
		stats.IncrementHit()
	}

	l.parse(changed, stats)
	stats.Log()
	return stats
}

func (l *Loader) parse(changed []string, stats *LoadStats) {
	for _, f := range changed {
		l.parser.Invalidate(f)
	}
	for result := range l.parser.ParseFiles(changed) {
		stats.IncrementTotal()
		if result.Error != nil {
			stats.IncrementFailure(result.File, result.Error)
			l.cache.Remove(result.File)
			continue
		}

		info, err := util.GetFileInfo(result.File)
		if err != nil {
			stats.IncrementFailure(result.File, err)
			continue
		}
		l.cache.Set(result.File, &cache.MemoryCacheEntry{
			Jobs:     result.Jobs,
			FileInfo: *info,
		})
		stats.IncrementParsed()
	}
}

// Refresh scans the directory and loads what changed.
func (l *Loader) Refresh() (*LoadStats, error) {
	files, err := l.Scan()
	if err != nil {
		return nil, fmt.Errorf("scan %s: %w", l.Dir(), err)
	}
	return l.Load(files), nil
}

// Reset parses every file again. Readers keep the previous jobs until the
// reload is complete, and keep them for good when the scan fails.
func (l *Loader) Reset() (*LoadStats, error) {
	l.cache.Clear()

	files, err := l.Scan()
	if err != nil {
		l.cache.CancelClear()
		return nil, fmt.Errorf("scan %s: %w", l.Dir(), err)
	}

	stats := NewLoadStats()
	l.parse(files, stats)
	l.cache.CommitClear()

	stats.Log()
	return stats, nil
}

// Jobs returns the jobs of every cached file.
func (l *Loader) Jobs() []model.Job {
	return l.cache.Jobs()
}
