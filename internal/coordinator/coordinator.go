// Package coordinator owns the shared content catalog for one workspace
// session. It orchestrates discovery, parsing, aggregation and
// classification, funnels every watch event through one handler, and
// guarantees that an invalidated or cancelled build is discarded rather
// than committed.
package coordinator

import (
	"context"
	"fmt"
	"log"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/docatlas/docatlas/internal/catalog"
	"github.com/docatlas/docatlas/internal/config"
	"github.com/docatlas/docatlas/internal/content"
	"github.com/docatlas/docatlas/internal/descriptor"
	"github.com/docatlas/docatlas/internal/pathfilter"
	"github.com/docatlas/docatlas/internal/resolver"
	"github.com/docatlas/docatlas/internal/watcher"
)

// DocumentContext is the answer to "where does this document live": the
// descriptor that owns it plus the catalog it was resolved against.
type DocumentContext struct {
	Descriptor *descriptor.Descriptor
	Catalog    *catalog.Catalog
}

// ResolveResource resolves a resource reference from the document at
// docPath against this context's catalog, filling missing coordinates
// from the owning component and the document's module. Synchronous, so it
// is safe to call from inside a rendering callback.
func (dc *DocumentContext) ResolveResource(id, docPath string) (*catalog.Resolved, error) {
	def := catalog.ResourceID{
		Component: dc.Descriptor.Name,
		Version:   dc.Descriptor.Version,
		Module:    moduleOf(docPath, dc.Descriptor.RootPath),
	}
	return dc.Catalog.ResolveResource(id, def)
}

// Coordinator is one workspace session's cache state and its owner.
// Create one per workspace; there is no ambient singleton.
type Coordinator struct {
	workspaceRoot string
	cfg           *config.Config

	discovery  *descriptor.Discovery
	parser     *descriptor.Parser
	index      *content.Index
	builder    *catalog.Builder
	classifier catalog.Classifier
	resolver   *resolver.Resolver

	// buildMu serializes build-and-commit so at most one build is in
	// flight; mu guards the catalog slot and generation token.
	buildMu    sync.Mutex
	mu         sync.Mutex
	cat        *catalog.Catalog // nil = Empty
	generation string           // regenerated on every structural invalidation

	watchMu sync.Mutex
	fw      watcher.FileWatcher
	ctx     context.Context
	cancel  context.CancelFunc
}

// New creates a coordinator for the workspace rooted at workspaceRoot.
// classifier may be nil, in which case the standard directory-shape
// classifier is used.
func New(workspaceRoot string, cfg *config.Config, classifier catalog.Classifier) (*Coordinator, error) {
	abs, err := filepath.Abs(workspaceRoot)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve workspace root: %w", err)
	}
	if cfg == nil {
		cfg = config.Default()
	}
	if classifier == nil {
		classifier = catalog.NewStandardClassifier()
	}

	filter, err := pathfilter.New(cfg.Workspace.Exclude)
	if err != nil {
		return nil, err
	}

	res, err := resolver.New()
	if err != nil {
		return nil, err
	}

	disc := descriptor.NewDiscovery(abs, cfg.Workspace.DescriptorName, filter)
	parser := descriptor.NewParser()
	index := content.NewIndex()

	ctx, cancel := context.WithCancel(context.Background())

	return &Coordinator{
		workspaceRoot: abs,
		cfg:           cfg,
		discovery:     disc,
		parser:        parser,
		index:         index,
		builder:       catalog.NewBuilder(disc, parser, index),
		classifier:    classifier,
		resolver:      res,
		generation:    uuid.NewString(),
		ctx:           ctx,
		cancel:        cancel,
	}, nil
}

// GetDocumentContext returns the catalog plus the descriptor owning
// docPath. An unmapped document returns (nil, nil): a normal outcome, not
// an error. The only errors are build-time context cancellation and
// unresolvable paths.
func (c *Coordinator) GetDocumentContext(ctx context.Context, docPath string) (*DocumentContext, error) {
	cat, err := c.Catalog(ctx)
	if err != nil {
		return nil, err
	}

	abs, err := filepath.Abs(docPath)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve document path: %w", err)
	}

	d, ok := c.resolver.Resolve(abs, c.descriptors())
	if !ok {
		return nil, nil
	}

	return &DocumentContext{Descriptor: d, Catalog: cat}, nil
}

// Catalog returns the current catalog, building it if the cache is empty,
// and lazily installs the filesystem watch on first use. Callers must
// keep using the returned snapshot for the whole operation: the shared
// slot may be swapped out by a concurrent invalidation at any time.
func (c *Coordinator) Catalog(ctx context.Context) (*catalog.Catalog, error) {
	c.ensureWatching()

	c.mu.Lock()
	if c.cat != nil {
		cat := c.cat
		c.mu.Unlock()
		return cat, nil
	}
	c.mu.Unlock()

	c.buildMu.Lock()
	defer c.buildMu.Unlock()

	// Re-check: another caller may have built while we waited.
	c.mu.Lock()
	if c.cat != nil {
		cat := c.cat
		c.mu.Unlock()
		return cat, nil
	}
	gen := c.generation
	c.mu.Unlock()

	entries, err := c.builder.Build(ctx)
	if err != nil {
		// Cancelled builds are discarded, never committed.
		return nil, err
	}
	cat := c.classifier.Classify(entries)

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.generation != gen {
		// A structural event fired mid-build. The result is served to
		// this caller but not committed; the next call rebuilds fresh.
		log.Printf("[coordinator] discarding catalog %s built across an invalidation", cat.ID)
		return cat, nil
	}
	c.cat = cat
	return cat, nil
}

// Reset drops every cache: discovery, parsed descriptors, content lists,
// the catalog and the document memo. Primarily for test isolation.
func (c *Coordinator) Reset() {
	c.mu.Lock()
	c.cat = nil
	c.generation = uuid.NewString()
	c.mu.Unlock()

	c.discovery.Invalidate()
	c.parser.Reset()
	c.index.Reset()
	c.resolver.Invalidate()
}

// Close stops the watcher and releases resources. The coordinator must
// not be used afterwards.
func (c *Coordinator) Close() {
	c.cancel()

	c.watchMu.Lock()
	fw := c.fw
	c.fw = nil
	c.watchMu.Unlock()

	if fw != nil {
		fw.Stop()
	}
}

// descriptors parses every discovered descriptor and keeps the complete
// ones. Cheap after the first call thanks to the parser cache.
func (c *Coordinator) descriptors() []*descriptor.Descriptor {
	var out []*descriptor.Descriptor
	for _, path := range c.discovery.List() {
		if d, ok := c.parser.Parse(path); ok && d.Complete() {
			out = append(out, d)
		}
	}
	return out
}

// componentRoots returns the parent directories of all discovered
// descriptors, without forcing a parse.
func (c *Coordinator) componentRoots() []string {
	paths := c.discovery.List()
	roots := make([]string, 0, len(paths))
	for _, p := range paths {
		roots = append(roots, filepath.Dir(p))
	}
	return roots
}

// ensureWatching installs the filesystem watch the first time the catalog
// is requested. Watch failures degrade to an unwatched (but functional)
// session with a logged warning.
func (c *Coordinator) ensureWatching() {
	if !c.cfg.Watch.Enabled {
		return
	}

	c.watchMu.Lock()
	defer c.watchMu.Unlock()
	if c.fw != nil {
		return
	}

	debounce := time.Duration(c.cfg.Watch.DebounceMs) * time.Millisecond
	fw, err := watcher.New(c.workspaceRoot, debounce, c.interesting)
	if err != nil {
		log.Printf("[coordinator] failed to create watcher for %s: %v", c.workspaceRoot, err)
		return
	}
	if err := fw.Start(c.ctx, c.HandleEvents); err != nil {
		log.Printf("[coordinator] failed to start watcher for %s: %v", c.workspaceRoot, err)
		fw.Stop()
		return
	}
	c.fw = fw
}

// interesting filters watch events down to descriptor files and anything
// under a modules tree.
func (c *Coordinator) interesting(path string) bool {
	if filepath.Base(path) == c.cfg.Workspace.DescriptorName {
		return true
	}
	slashed := filepath.ToSlash(path)
	return strings.Contains(slashed, "/modules/")
}

// HandleEvents is the single ordered processing point for watch events.
// Structural events (descriptor churn, content create/delete) empty the
// catalog slot; a content-only write resets one record's load state and
// leaves the catalog Ready. Exported so embedders with their own watch
// plumbing can feed events in; all invalidations are idempotent.
func (c *Coordinator) HandleEvents(events []watcher.Event) {
	structural := false

	for _, ev := range events {
		if c.discovery.IsDescriptorPath(ev.Path) {
			log.Printf("[coordinator] descriptor %s: %s", ev.Op, ev.Path)
			c.parser.Invalidate(ev.Path)
			c.discovery.Invalidate()
			structural = true
			continue
		}

		switch ev.Op {
		case watcher.OpCreate, watcher.OpRemove:
			if root, ok := content.OwnerRoot(ev.Path, c.componentRoots()); ok {
				c.index.InvalidateRoot(root)
				structural = true
			}
		case watcher.OpWrite:
			// Content-only change: never rebuilds, just unloads bytes.
			c.mu.Lock()
			cat := c.cat
			c.mu.Unlock()
			if cat != nil {
				if rec := cat.FileByPath(ev.Path); rec != nil {
					rec.ResetContents()
				}
			}
		}
	}

	if structural {
		c.invalidate()
	}
}

// invalidate empties the catalog slot, fences any in-flight build via the
// generation token, and clears the document memo.
func (c *Coordinator) invalidate() {
	c.mu.Lock()
	c.cat = nil
	c.generation = uuid.NewString()
	c.mu.Unlock()

	c.resolver.Invalidate()
}

// moduleOf extracts the module segment from a document path inside root,
// or "" if the path has no modules/<module>/ prefix.
func moduleOf(docPath, root string) string {
	doc := filepath.ToSlash(filepath.Clean(docPath))
	prefix := filepath.ToSlash(filepath.Clean(root)) + "/modules/"
	if !strings.HasPrefix(doc, prefix) {
		return ""
	}
	rest := doc[len(prefix):]
	if i := strings.IndexByte(rest, '/'); i > 0 {
		return rest[:i]
	}
	return ""
}
