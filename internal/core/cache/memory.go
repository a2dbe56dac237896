package cache

import (
	"sort"
	"sync"
	"time"

	"github.com/Arcscribe-Web-Solutions/norfolk-cleaners/internal/core/model"
	"github.com/Arcscribe-Web-Solutions/norfolk-cleaners/internal/util"
)

// MemoryCacheEntry holds the jobs parsed from one file and the file version
// they were read from.
type MemoryCacheEntry struct {
	Jobs         []model.Job
	FileInfo     util.FileInfo
	LastAccessed int64
}

// MemoryCache keeps parsed jobs per source file between reloads.
type MemoryCache struct {
	mu      sync.RWMutex
	entries map[string]*MemoryCacheEntry

	// Double buffering: during a reload new entries go to the shadow map
	// and readers keep seeing the previous snapshot until CommitClear.
	pendingClear  bool
	shadowEntries map[string]*MemoryCacheEntry
}

func NewMemoryCache() *MemoryCache {
	return &MemoryCache{
		entries: make(map[string]*MemoryCacheEntry),
	}
}

func (mc *MemoryCache) Set(path string, entry *MemoryCacheEntry) {
	mc.mu.Lock()
	defer mc.mu.Unlock()

	if entry != nil {
		entry.LastAccessed = time.Now().Unix()
	}

	if mc.pendingClear && mc.shadowEntries != nil {
		mc.shadowEntries[path] = entry
	} else {
		mc.entries[path] = entry
	}
}

func (mc *MemoryCache) Get(path string) (*MemoryCacheEntry, bool) {
	mc.mu.Lock()
	defer mc.mu.Unlock()

	entry, ok := mc.entries[path]
	if ok && entry != nil {
		entry.LastAccessed = time.Now().Unix()
	}
	return entry, ok
}

// Fresh returns the cached entry for path when the file on disk still
// matches the version it was parsed from.
func (mc *MemoryCache) Fresh(path string) (*MemoryCacheEntry, bool) {
	entry, ok := mc.Get(path)
	if !ok || entry == nil {
		return nil, false
	}
	current, err := util.GetFileInfo(path)
	if err != nil {
		util.LogDebugf("Cache miss for %s: %v", path, err)
		return nil, false
	}
	if !entry.FileInfo.Same(*current) {
		util.LogDebugf("Cache invalidated for %s: file changed", path)
		return nil, false
	}
	return entry, true
}

// Remove drops the entry for path.
func (mc *MemoryCache) Remove(path string) {
	mc.mu.Lock()
	defer mc.mu.Unlock()

	delete(mc.entries, path)
	if mc.shadowEntries != nil {
		delete(mc.shadowEntries, path)
	}
}

// Paths lists the cached file paths in sorted order.
func (mc *MemoryCache) Paths() []string {
	mc.mu.RLock()
	defer mc.mu.RUnlock()

	paths := make([]string, 0, len(mc.entries))
	for path := range mc.entries {
		paths = append(paths, path)
	}
	sort.Strings(paths)
	return paths
}

// Jobs returns every cached job, ordered by file path then file order.
func (mc *MemoryCache) Jobs() []model.Job {
	paths := mc.Paths()

	mc.mu.RLock()
	defer mc.mu.RUnlock()

	var jobs []model.Job
	for _, path := range paths {
		if entry := mc.entries[path]; entry != nil {
			jobs = append(jobs, entry.Jobs...)
		}
	}
	return jobs
}

// Len returns the number of cached files.
func (mc *MemoryCache) Len() int {
	mc.mu.RLock()
	defer mc.mu.RUnlock()
	return len(mc.entries)
}

func (mc *MemoryCache) Clear() {
	mc.mu.Lock()
	defer mc.mu.Unlock()

	// Keep serving the current entries until the reload commits.
	mc.pendingClear = true
	mc.shadowEntries = make(map[string]*MemoryCacheEntry)

	util.LogDebug("MemoryCache: Marked for pending clear, maintaining data until new data is ready")
}

// CommitClear swaps in the entries loaded since Clear.
func (mc *MemoryCache) CommitClear() {
	mc.mu.Lock()
	defer mc.mu.Unlock()

	if mc.pendingClear && mc.shadowEntries != nil {
		mc.entries = mc.shadowEntries
		mc.shadowEntries = nil
		mc.pendingClear = false
		util.LogDebug("MemoryCache: Committed clear with new data")
	}
}

// CancelClear abandons a pending clear and keeps the current entries.
func (mc *MemoryCache) CancelClear() {
	mc.mu.Lock()
	defer mc.mu.Unlock()

	mc.pendingClear = false
	mc.shadowEntries = nil
	util.LogDebug("MemoryCache: Cancelled pending clear")
}
