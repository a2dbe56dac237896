package board

import (
	"os"
	"path/filepath"

	"github.com/fsnotify/fsnotify"

	"github.com/Arcscribe-Web-Solutions/norfolk-cleaners/internal/util"
)

// FileEvent is a change to a job file
type FileEvent struct {
	Path      string
	Operation string
}

// FileWatcher reports changes to job files under a directory tree
type FileWatcher struct {
	watcher *fsnotify.Watcher
	match   func(string) bool
	events  chan FileEvent
}

// NewFileWatcher watches root and its subdirectories. Only paths accepted
// by match are reported.
func NewFileWatcher(root string, match func(string) bool) (*FileWatcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	fw := &FileWatcher{
		watcher: watcher,
		match:   match,
		events:  make(chan FileEvent, 100),
	}

	if err := fw.addPath(root); err != nil {
		watcher.Close()
		return nil, err
	}

	go fw.processEvents()

	return fw, nil
}

func (fw *FileWatcher) addPath(path string) error {
	if _, err := os.Stat(path); err != nil {
		return err
	}
	return filepath.Walk(path, func(p string, info os.FileInfo, err error) error {
		if err != nil {
			return nil
		}
		if info.IsDir() {
			return fw.watcher.Add(p)
		}
		return nil
	})
}

func (fw *FileWatcher) processEvents() {
	defer close(fw.events)

	for {
		select {
		case event, ok := <-fw.watcher.Events:
			if !ok {
				return
			}

			// New subdirectories are watched as they appear
			if event.Has(fsnotify.Create) {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
					if err := fw.addPath(event.Name); err != nil {
						util.LogWarnf("Failed to watch %s: %v", event.Name, err)
					}
					continue
				}
			}
			if event.Has(fsnotify.Chmod) || !fw.match(event.Name) {
				continue
			}

			select {
			case fw.events <- FileEvent{Path: event.Name, Operation: event.Op.String()}:
			default:
				util.LogDebugf("Dropping file event for %s, queue full", event.Name)
			}

		case err, ok := <-fw.watcher.Errors:
			if !ok {
				return
			}
			util.LogError("File monitoring error: " + err.Error())
		}
	}
}

// Events is closed once the watcher stops
func (fw *FileWatcher) Events() <-chan FileEvent {
	return fw.events
}

func (fw *FileWatcher) Close() error {
	return fw.watcher.Close()
}
