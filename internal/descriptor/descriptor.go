// Package descriptor discovers and parses component descriptor files
// (antora.yml by default). Discovery results and parsed descriptors are
// cached independently so watch events can invalidate them surgically.
package descriptor

// Descriptor is the parsed form of one component descriptor file.
type Descriptor struct {
	SourcePath string         // absolute path of the descriptor file
	RootPath   string         // parent directory, the component root
	Name       string         // component name, required
	Version    string         // component version, required
	Metadata   map[string]any // remaining descriptor keys, free-form
}

// Complete reports whether the descriptor carries both required fields.
// Incomplete descriptors never participate in the aggregate.
func (d *Descriptor) Complete() bool {
	return d != nil && d.Name != "" && d.Version != ""
}
