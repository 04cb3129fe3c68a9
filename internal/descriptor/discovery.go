package descriptor

import (
	"io/fs"
	"log"
	"path/filepath"
	"sync"

	"github.com/gobwas/glob"

	"github.com/docatlas/docatlas/internal/pathfilter"
)

// Discovery globs the workspace for descriptor files and caches the
// filtered result. The cached list is dropped when a descriptor is
// created or deleted; content churn leaves it untouched.
type Discovery struct {
	workspaceRoot  string
	descriptorName string
	filter         *pathfilter.Filter
	pattern        glob.Glob

	mu     sync.Mutex
	cached []string // nil = needs rediscovery
}

// NewDiscovery creates a discovery index over workspaceRoot looking for
// files named descriptorName, excluding paths rejected by filter.
func NewDiscovery(workspaceRoot, descriptorName string, filter *pathfilter.Filter) *Discovery {
	if filter == nil {
		filter = pathfilter.Default()
	}
	return &Discovery{
		workspaceRoot:  workspaceRoot,
		descriptorName: descriptorName,
		filter:         filter,
		pattern:        glob.MustCompile("**/"+descriptorName, '/'),
	}
}

// List returns the cached descriptor paths, rediscovering on a cache miss.
// Filesystem errors degrade to an empty, uncached result plus a warning:
// a broken workspace dir must not crash the resolver, and the next call
// retries.
func (d *Discovery) List() []string {
	d.mu.Lock()
	if d.cached != nil {
		out := d.cached
		d.mu.Unlock()
		return out
	}
	d.mu.Unlock()

	found, ok := d.discover()
	if !ok {
		return found
	}

	d.mu.Lock()
	d.cached = found
	d.mu.Unlock()
	return found
}

// Invalidate drops the cached list so the next List rediscovers.
func (d *Discovery) Invalidate() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.cached = nil
}

// IsDescriptorPath reports whether path names a non-excluded descriptor
// file inside the workspace. Used to classify watch events.
func (d *Discovery) IsDescriptorPath(path string) bool {
	if filepath.Base(path) != d.descriptorName {
		return false
	}
	rel, err := filepath.Rel(d.workspaceRoot, path)
	if err != nil {
		return false
	}
	return !d.filter.Excluded(rel)
}

// discover walks the workspace collecting descriptor paths. The bool result
// is false when the walk failed and the (empty) result must not be cached.
func (d *Discovery) discover() ([]string, bool) {
	found := []string{}

	err := filepath.WalkDir(d.workspaceRoot, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			if path == d.workspaceRoot {
				return err
			}
			log.Printf("Warning: error accessing %s during discovery: %v", path, err)
			return nil
		}

		if entry.IsDir() {
			return nil
		}

		rel, err := filepath.Rel(d.workspaceRoot, path)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)

		if !d.pattern.Match(rel) && rel != d.descriptorName {
			return nil
		}
		if d.filter.Excluded(rel) {
			return nil
		}

		found = append(found, path)
		return nil
	})
	if err != nil {
		log.Printf("Warning: descriptor discovery failed under %s: %v", d.workspaceRoot, err)
		return []string{}, false
	}

	return found, true
}
