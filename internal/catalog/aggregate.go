// Package catalog assembles per-component aggregates, classifies them into
// a queryable content catalog, and resolves resource references against it.
package catalog

import (
	"context"
	"maps"

	"github.com/docatlas/docatlas/internal/content"
	"github.com/docatlas/docatlas/internal/descriptor"
)

// Entry is the pre-classification bundle for one component: its parsed
// descriptor fields plus the content files found under its root.
//
// Entries are single-use. The classifier may consume the Files slice
// destructively, so every build constructs entries and records from
// scratch instead of handing out cached objects.
type Entry struct {
	Name     string
	Version  string
	RootPath string
	Metadata map[string]any
	Files    []*content.Record
}

// Builder joins descriptor discovery, descriptor parsing, and the content
// file index into aggregate entries.
type Builder struct {
	discovery *descriptor.Discovery
	parser    *descriptor.Parser
	index     *content.Index
}

// NewBuilder creates an aggregate builder over the given caches.
func NewBuilder(discovery *descriptor.Discovery, parser *descriptor.Parser, index *content.Index) *Builder {
	return &Builder{
		discovery: discovery,
		parser:    parser,
		index:     index,
	}
}

// Build assembles one entry per complete component descriptor. Descriptors
// that fail to parse or lack name/version are skipped silently; per-item
// problems never abort the build. The only error returned is context
// cancellation, and a cancelled build's partial result must be discarded
// by the caller.
func (b *Builder) Build(ctx context.Context) ([]*Entry, error) {
	entries := []*Entry{}

	for _, path := range b.discovery.List() {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		desc, ok := b.parser.Parse(path)
		if !ok || !desc.Complete() {
			continue
		}

		files := b.index.List(desc.RootPath)
		records := make([]*content.Record, 0, len(files))
		for _, file := range files {
			records = append(records, content.NewRecord(desc.RootPath, file))
		}

		entries = append(entries, &Entry{
			Name:     desc.Name,
			Version:  desc.Version,
			RootPath: desc.RootPath,
			// Cloned, not shared: the classifier may mutate the entry,
			// and the descriptor's map lives on in the parser cache.
			Metadata: maps.Clone(desc.Metadata),
			Files:    records,
		})
	}

	return entries, nil
}
