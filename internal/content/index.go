package content

import (
	"io/fs"
	"log"
	"path/filepath"
	"strings"
	"sync"

	"github.com/gobwas/glob"
)

// Families are the fixed content subdirectories matched under
// <root>/modules/<module>/.
var Families = []string{"attachments", "examples", "images", "pages", "partials", "assets"}

var contentPattern = glob.MustCompile("modules/*/{attachments,examples,images,pages,partials,assets}/**", '/')

// Index lists content files per component root and caches each list.
// Structural events (create/delete) invalidate a root's list; content
// edits never touch it, they only reset the affected record's bytes.
type Index struct {
	mu     sync.Mutex
	cached map[string][]string // component root -> file paths
}

// NewIndex creates an empty content file index.
func NewIndex() *Index {
	return &Index{
		cached: make(map[string][]string),
	}
}

// List returns the content files under root, globbing on a cache miss.
// Filesystem errors degrade to an empty, uncached result plus a warning.
func (ix *Index) List(root string) []string {
	ix.mu.Lock()
	if files, ok := ix.cached[root]; ok {
		ix.mu.Unlock()
		return files
	}
	ix.mu.Unlock()

	files, ok := ix.scan(root)
	if !ok {
		return files
	}

	ix.mu.Lock()
	ix.cached[root] = files
	ix.mu.Unlock()
	return files
}

// InvalidateRoot drops the cached list for one component root.
func (ix *Index) InvalidateRoot(root string) {
	ix.mu.Lock()
	defer ix.mu.Unlock()
	delete(ix.cached, root)
}

// Reset drops every cached list.
func (ix *Index) Reset() {
	ix.mu.Lock()
	defer ix.mu.Unlock()
	ix.cached = make(map[string][]string)
}

// scan walks <root>/modules collecting files that match the content shape.
// The bool result is false when the walk failed and the result must not be
// cached. A missing modules directory is a normal empty component.
func (ix *Index) scan(root string) ([]string, bool) {
	modulesDir := filepath.Join(root, "modules")
	files := []string{}

	err := filepath.WalkDir(modulesDir, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			if path == modulesDir {
				// No modules dir: component has no content yet.
				return filepath.SkipAll
			}
			log.Printf("Warning: error accessing %s during content scan: %v", path, err)
			return nil
		}

		if entry.IsDir() {
			return nil
		}

		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		if contentPattern.Match(filepath.ToSlash(rel)) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		log.Printf("Warning: content scan failed under %s: %v", root, err)
		return []string{}, false
	}

	return files, true
}

// MatchesContentShape reports whether relPath (slash form, relative to a
// component root) lies inside one of the fixed content subdirectories.
func MatchesContentShape(relPath string) bool {
	return contentPattern.Match(relPath)
}

// OwnerRoot finds which of roots owns path: the deepest root whose
// modules tree contains it. Used to scope watch events to one component.
func OwnerRoot(path string, roots []string) (string, bool) {
	slashed := filepath.ToSlash(path)
	best := ""
	for _, root := range roots {
		prefix := filepath.ToSlash(root) + "/modules/"
		if strings.HasPrefix(slashed, prefix) && len(root) > len(best) {
			best = root
		}
	}
	return best, best != ""
}
