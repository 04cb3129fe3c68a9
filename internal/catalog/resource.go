package catalog

import (
	"fmt"
	"strings"
)

// ResourceID is a qualified reference to one content file:
// [version@][component:][module:]family$relative/path. Empty coordinates
// are filled from the referencing document's context at resolve time.
type ResourceID struct {
	Version   string
	Component string
	Module    string
	Family    string
	RelPath   string
}

var validFamilies = map[string]bool{
	"attachment": true,
	"example":    true,
	"image":      true,
	"page":       true,
	"partial":    true,
	"asset":      true,
}

// ParseResourceID parses a resource reference. The family and relative
// path are split on '$'; a reference without a family defaults to page.
func ParseResourceID(id string) (ResourceID, error) {
	rid := ResourceID{}

	coord := ""
	rid.RelPath = id
	if i := strings.IndexByte(id, '$'); i >= 0 {
		coord = id[:i]
		rid.RelPath = id[i+1:]
	}

	if rid.RelPath == "" {
		return ResourceID{}, fmt.Errorf("resource id %q has no path", id)
	}

	if coord != "" {
		segs := strings.Split(coord, ":")
		rid.Family = segs[len(segs)-1]
		if len(segs) >= 2 {
			rid.Module = segs[len(segs)-2]
		}
		if len(segs) >= 3 {
			compSeg := segs[len(segs)-3]
			if j := strings.IndexByte(compSeg, '@'); j >= 0 {
				rid.Version = compSeg[:j]
				rid.Component = compSeg[j+1:]
			} else {
				rid.Component = compSeg
			}
		}
		if len(segs) > 3 {
			return ResourceID{}, fmt.Errorf("resource id %q has too many segments", id)
		}
	}

	if rid.Family == "" {
		rid.Family = "page"
	}
	if !validFamilies[rid.Family] {
		return ResourceID{}, fmt.Errorf("resource id %q has unknown family %q", id, rid.Family)
	}

	return rid, nil
}

// fillFrom completes empty coordinates from the referencing document's
// context.
func (rid ResourceID) fillFrom(def ResourceID) ResourceID {
	if rid.Version == "" {
		rid.Version = def.Version
	}
	if rid.Component == "" {
		rid.Component = def.Component
	}
	if rid.Module == "" {
		rid.Module = def.Module
	}
	if rid.Module == "" {
		rid.Module = "ROOT"
	}
	return rid
}

// Resolved is a materialized resource reference.
type Resolved struct {
	Path     string
	Contents []byte
}

// ResolveResource resolves a resource id against the catalog, filling
// missing coordinates from def, and loads the target's bytes through its
// lazy accessor. An unresolvable reference returns (nil, nil) — a normal
// outcome — while a read failure on a resolved target is returned to the
// caller, who explicitly asked for this resource.
func (c *Catalog) ResolveResource(id string, def ResourceID) (*Resolved, error) {
	rid, err := ParseResourceID(id)
	if err != nil {
		return nil, err
	}
	rid = rid.fillFrom(def)

	rec := c.Find(rid.Component, rid.Version, rid.Module, rid.Family, rid.RelPath)
	if rec == nil {
		return nil, nil
	}

	data, err := rec.Contents()
	if err != nil {
		return nil, err
	}

	return &Resolved{Path: rec.Path, Contents: data}, nil
}
