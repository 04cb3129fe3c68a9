package descriptor

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sync"

	"gopkg.in/yaml.v3"
)

// Parser reads and parses descriptor files, caching results per path.
// Deterministic parse failures are cached as negative entries so a
// malformed descriptor is not re-read on every catalog build; an edit to
// the file invalidates its entry. Transient read errors are not cached.
type Parser struct {
	mu    sync.Mutex
	cache map[string]*Descriptor // nil value = known-bad descriptor
}

// NewParser creates an empty parser cache.
func NewParser() *Parser {
	return &Parser{
		cache: make(map[string]*Descriptor),
	}
}

// Parse returns the descriptor at path, or (nil, false) if the file is
// unreadable, malformed, or rejected. Failures are logged, never returned
// as errors: one bad descriptor must not block the rest of the workspace.
func (p *Parser) Parse(path string) (*Descriptor, bool) {
	p.mu.Lock()
	if d, ok := p.cache[path]; ok {
		p.mu.Unlock()
		return d, d != nil
	}
	p.mu.Unlock()

	d, cacheable := p.load(path)

	if cacheable {
		p.mu.Lock()
		p.cache[path] = d
		p.mu.Unlock()
	}

	return d, d != nil
}

// Invalidate drops the cached entry for one descriptor path.
func (p *Parser) Invalidate(path string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	delete(p.cache, path)
}

// Reset drops every cached entry.
func (p *Parser) Reset() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.cache = make(map[string]*Descriptor)
}

// load reads and parses one descriptor file. The second return reports
// whether the outcome may be cached: deterministic failures (symlinked
// parent, malformed yaml) are, transient I/O errors are not, so the next
// Parse retries the read.
func (p *Parser) load(path string) (*Descriptor, bool) {
	// A component root reached through a symlink would register the same
	// component twice (or loop). Only the immediate parent is checked,
	// not the full ancestor chain; a symlinked grandparent still slips
	// through. Known limitation.
	parent := filepath.Dir(path)
	if info, err := os.Lstat(parent); err != nil {
		log.Printf("Warning: cannot stat descriptor parent %s: %v", parent, err)
		return nil, false
	} else if info.Mode()&os.ModeSymlink != 0 {
		log.Printf("Warning: skipping descriptor %s: parent directory is a symlink", path)
		return nil, true
	}

	data, err := os.ReadFile(path)
	if err != nil {
		log.Printf("Warning: cannot read descriptor %s: %v", path, err)
		return nil, false
	}

	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		log.Printf("Warning: malformed descriptor %s: %v", path, err)
		return nil, true
	}

	d := &Descriptor{
		SourcePath: path,
		RootPath:   parent,
		Name:       scalarString(raw["name"]),
		Version:    scalarString(raw["version"]),
		Metadata:   make(map[string]any, len(raw)),
	}
	for k, v := range raw {
		if k == "name" || k == "version" {
			continue
		}
		d.Metadata[k] = v
	}

	return d, true
}

// scalarString renders a YAML scalar as a string. Versions are frequently
// written unquoted (version: 2 or version: 1.0) and arrive as numbers.
func scalarString(v any) string {
	switch s := v.(type) {
	case nil:
		return ""
	case string:
		return s
	case int, int64, uint64, float64, bool:
		return fmt.Sprint(s)
	default:
		return ""
	}
}
