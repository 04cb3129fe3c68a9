// Package resolver maps document paths to their owning component
// descriptor using the directory-shape rule: a document belongs to a
// component iff it lives under <root>/modules/<module>/pages/.
package resolver

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/maypok86/otter"

	"github.com/docatlas/docatlas/internal/descriptor"
)

const memoCapacity = 8192

// Resolver memoizes document→descriptor lookups. The memo is cleared
// whenever the descriptor set changes, so a hit is always consistent with
// the current set.
type Resolver struct {
	memo otter.Cache[string, *descriptor.Descriptor] // nil value = memoized absent
}

// New creates a resolver with an empty memo.
func New() (*Resolver, error) {
	builder, err := otter.NewBuilder[string, *descriptor.Descriptor](memoCapacity)
	if err != nil {
		return nil, fmt.Errorf("failed to create resolver cache: %w", err)
	}
	memo, err := builder.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to build resolver cache: %w", err)
	}
	return &Resolver{memo: memo}, nil
}

// Resolve returns the descriptor owning docPath, or (nil, false) if no
// candidate matches. Candidates are tried deepest root first so nested
// component trees resolve deterministically regardless of discovery order.
func (r *Resolver) Resolve(docPath string, candidates []*descriptor.Descriptor) (*descriptor.Descriptor, bool) {
	if d, ok := r.memo.Get(docPath); ok {
		return d, d != nil
	}

	ordered := make([]*descriptor.Descriptor, len(candidates))
	copy(ordered, candidates)
	sort.Slice(ordered, func(i, j int) bool {
		di, dj := rootDepth(ordered[i]), rootDepth(ordered[j])
		if di != dj {
			return di > dj
		}
		return ordered[i].RootPath < ordered[j].RootPath
	})

	var match *descriptor.Descriptor
	for _, d := range ordered {
		if Matches(docPath, d.RootPath) {
			match = d
			break
		}
	}

	r.memo.Set(docPath, match)
	return match, match != nil
}

// Invalidate clears the memo. Called on any structural change.
func (r *Resolver) Invalidate() {
	r.memo.Clear()
}

// Matches reports whether docPath lies inside some module's pages subtree
// of the component rooted at rootPath. The shape is
// <root>/modules/<one-segment>/pages/<non-empty-suffix>; this rule alone
// decides ownership, independent of the descriptor's name and version.
func Matches(docPath, rootPath string) bool {
	doc := filepath.ToSlash(filepath.Clean(docPath))
	modulesDir := filepath.ToSlash(filepath.Clean(rootPath)) + "/modules/"

	if !strings.HasPrefix(doc, modulesDir) {
		return false
	}

	rest := strings.Split(doc[len(modulesDir):], "/")
	// <module>/pages/<suffix...>
	return len(rest) >= 3 && rest[0] != "" && rest[1] == "pages" && rest[len(rest)-1] != ""
}

func rootDepth(d *descriptor.Descriptor) int {
	return strings.Count(filepath.ToSlash(d.RootPath), "/")
}
