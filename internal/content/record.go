// Package content indexes the content files under a component root and
// provides lazily-loaded access to their bytes.
package content

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// Record is one content file inside a component tree. Its bytes are not
// read at build time; the first Contents call loads and caches them, and
// a content-change event resets the record back to unloaded.
type Record struct {
	Path    string // absolute path
	RelPath string // slash path relative to the component root
	Ext     string // extension including the dot
	Stem    string // base name without extension
	Root    string // owning component root

	mu     sync.Mutex
	loaded bool
	data   []byte
}

// NewRecord builds a record for absPath owned by the component at root.
func NewRecord(root, absPath string) *Record {
	rel, err := filepath.Rel(root, absPath)
	if err != nil {
		rel = absPath
	}
	base := filepath.Base(absPath)
	ext := filepath.Ext(base)

	return &Record{
		Path:    absPath,
		RelPath: filepath.ToSlash(rel),
		Ext:     ext,
		Stem:    strings.TrimSuffix(base, ext),
		Root:    root,
	}
}

// Contents returns the file bytes, reading from disk on first access and
// serving the cached copy afterwards. Read failures go to the caller: a
// load is only attempted when someone explicitly referenced this resource.
func (r *Record) Contents() ([]byte, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.loaded {
		return r.data, nil
	}

	data, err := os.ReadFile(r.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", r.Path, err)
	}

	r.data = data
	r.loaded = true
	return r.data, nil
}

// ResetContents returns the record to the unloaded state so the next
// Contents call re-reads from disk. Safe to call at any time.
func (r *Record) ResetContents() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.loaded = false
	r.data = nil
}

// Loaded reports whether the bytes are currently cached.
func (r *Record) Loaded() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.loaded
}
