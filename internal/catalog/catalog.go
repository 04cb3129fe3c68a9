package catalog

import (
	"sort"
	"strings"

	"github.com/google/uuid"

	"github.com/docatlas/docatlas/internal/content"
)

// Family names as used in resource IDs, keyed by the content directory
// they live in.
var familyByDir = map[string]string{
	"attachments": "attachment",
	"examples":    "example",
	"images":      "image",
	"pages":       "page",
	"partials":    "partial",
	"assets":      "asset",
}

// Catalog is the classified index of all content files across all
// components, queryable by component/version/module/family.
type Catalog struct {
	// ID identifies one build; two calls that return the same ID are
	// serving the identical cached catalog.
	ID string

	components map[string]map[string]*Component // name -> version -> component
	byPath     map[string]*content.Record       // absolute path -> record
}

// Component is one classified component version.
type Component struct {
	Name     string
	Version  string
	RootPath string
	Metadata map[string]any
	Modules  map[string]*Module
}

// Module groups a component's content records by family.
type Module struct {
	Name     string
	Families map[string][]*content.Record // family name -> records
}

// Classifier turns aggregate entries into a catalog. Implementations may
// consume the entries destructively; callers must treat entries as
// single-use after classification.
type Classifier interface {
	Classify(entries []*Entry) *Catalog
}

// NewCatalog creates an empty catalog with a fresh build ID.
func NewCatalog() *Catalog {
	return &Catalog{
		ID:         uuid.NewString(),
		components: make(map[string]map[string]*Component),
		byPath:     make(map[string]*content.Record),
	}
}

// Component returns the classified component for name/version, or nil.
func (c *Catalog) Component(name, version string) *Component {
	versions, ok := c.components[name]
	if !ok {
		return nil
	}
	return versions[version]
}

// Components returns every classified component, ordered by name then
// version for stable output.
func (c *Catalog) Components() []*Component {
	out := []*Component{}
	for _, versions := range c.components {
		for _, comp := range versions {
			out = append(out, comp)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Name != out[j].Name {
			return out[i].Name < out[j].Name
		}
		return out[i].Version < out[j].Version
	})
	return out
}

// FileByPath returns the record for an absolute file path, or nil. Used to
// reset a single record's load state on a content-change event.
func (c *Catalog) FileByPath(path string) *content.Record {
	return c.byPath[path]
}

// Find locates one record by its full coordinates. relPath is the
// family-relative slash path (e.g. "3rd-party/sso.adoc").
func (c *Catalog) Find(component, version, module, family, relPath string) *content.Record {
	comp := c.Component(component, version)
	if comp == nil {
		return nil
	}
	mod, ok := comp.Modules[module]
	if !ok {
		return nil
	}
	for _, rec := range mod.Families[family] {
		if familyRelPath(rec) == relPath {
			return rec
		}
	}
	return nil
}

// add registers a record under its module and family, keeping the
// path lookup table in sync.
func (comp *Component) add(module, family string, rec *content.Record) {
	mod, ok := comp.Modules[module]
	if !ok {
		mod = &Module{Name: module, Families: make(map[string][]*content.Record)}
		comp.Modules[module] = mod
	}
	mod.Families[family] = append(mod.Families[family], rec)
}

// classifyRecord splits a record's root-relative path into module, family
// and reports whether it matches the content shape at all.
func classifyRecord(rec *content.Record) (module, family string, ok bool) {
	parts := strings.Split(rec.RelPath, "/")
	// modules/<module>/<familyDir>/<rest...>
	if len(parts) < 4 || parts[0] != "modules" {
		return "", "", false
	}
	fam, known := familyByDir[parts[2]]
	if !known {
		return "", "", false
	}
	return parts[1], fam, true
}

// familyRelPath is the record's path relative to its family directory.
func familyRelPath(rec *content.Record) string {
	parts := strings.SplitN(rec.RelPath, "/", 4)
	if len(parts) < 4 {
		return ""
	}
	return parts[3]
}
