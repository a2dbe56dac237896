package scanner

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/Arcscribe-Web-Solutions/norfolk-cleaners/internal/util"
)

// FileScanner finds job files below a directory
type FileScanner struct {
	baseDir    string
	extensions map[string]bool
}

// NewFileScanner creates a FileScanner matching the given extensions,
// case-insensitively. Extensions include the leading dot.
func NewFileScanner(baseDir string, extensions ...string) *FileScanner {
	exts := make(map[string]bool, len(extensions))
	for _, ext := range extensions {
		exts[strings.ToLower(ext)] = true
	}
	return &FileScanner{
		baseDir:    baseDir,
		extensions: exts,
	}
}

// BaseDir returns the scanned directory.
func (s *FileScanner) BaseDir() string {
	return s.baseDir
}

// Matches reports whether path has one of the scanner's extensions.
func (s *FileScanner) Matches(path string) bool {
	return s.extensions[strings.ToLower(filepath.Ext(path))]
}

// Scan walks the directory and returns matching file paths in lexical order.
// Unreadable entries and hidden directories are skipped.
func (s *FileScanner) Scan() ([]string, error) {
	start := time.Now()
	var files []string
	dirCount := 0
	totalCount := 0

	util.LogDebugf("Start scanning directory: %s", s.baseDir)

	err := filepath.Walk(s.baseDir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			util.LogDebugf("Skip file (error): %s - %v", path, err)
			return nil
		}

		if info.IsDir() {
			if path != s.baseDir && strings.HasPrefix(info.Name(), ".") {
				return filepath.SkipDir
			}
			dirCount++
			return nil
		}

		totalCount++
		if s.Matches(path) {
			files = append(files, path)
		}

		return nil
	})

	util.LogDebugf("File scan completed: duration %v, scanned %d directories, %d files, found %d job files",
		time.Since(start), dirCount, totalCount, len(files))

	return files, err
}
