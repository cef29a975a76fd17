package search

import (
	"strings"
	"sync"

	"golang.org/x/sync/singleflight"
)

// PathCache discovers and remembers the full-text paths of each schema.
//
// Entries are computed on first use and never evicted; the set of schemas is
// fixed once the registry is built. Reads after the first computation do not
// take a lock, and concurrent first reads of the same schema share one
// computation.
type PathCache struct {
	registry *Registry
	maxDepth int
	logger   Logger

	paths sync.Map // lower-case schema name -> []string
	group singleflight.Group
}

// NewPathCache creates an empty cache bound to reg.
func NewPathCache(reg *Registry, cfg Config, logger Logger) *PathCache {
	return &PathCache{
		registry: reg,
		maxDepth: cfg.maxDepth(),
		logger:   orNop(logger),
	}
}

// Paths returns the dotted full-text paths of s in first-discovery order.
// The returned slice is a copy.
func (c *PathCache) Paths(s *Schema) []string {
	key := strings.ToLower(s.Name)
	if v, ok := c.paths.Load(key); ok {
		return append([]string(nil), v.([]string)...)
	}

	v, _, _ := c.group.Do(key, func() (interface{}, error) {
		if v, ok := c.paths.Load(key); ok {
			return v, nil
		}
		paths := c.discover(s)
		c.paths.Store(key, paths)
		return paths, nil
	})
	return append([]string(nil), v.([]string)...)
}

// discover runs the depth-first walk for a root schema.
func (c *PathCache) discover(root *Schema) []string {
	w := &pathWalker{
		registry: c.registry,
		maxDepth: c.maxDepth,
		logger:   c.logger,
		root:     root.Name,
		seen:     make(map[string]struct{}),
	}
	w.visitSchema(root, "", nil, 0)

	c.logger.Debug("discovered full-text paths", nil, map[string]interface{}{
		"schema": root.Name,
		"paths":  w.out,
	})
	return w.out
}

type pathWalker struct {
	registry *Registry
	maxDepth int
	logger   Logger
	root     string

	out  []string
	seen map[string]struct{}
}

func (w *pathWalker) add(path string) {
	if _, ok := w.seen[path]; ok {
		return
	}
	w.seen[path] = struct{}{}
	w.out = append(w.out, path)
}

// visitField contributes the paths below one field. Simple fields are leaves,
// collections are transparent, and record fields recurse into their target.
func (w *pathWalker) visitField(f Field, path string, overrides []string, depth int) {
	if depth > w.maxDepth {
		w.logger.Debug("full-text discovery depth exceeded, truncating branch", nil, map[string]interface{}{
			"schema":    w.root,
			"path":      path,
			"max_depth": w.maxDepth,
		})
		return
	}

	if f.Kind.Simple() {
		w.add(path)
		return
	}

	target, err := w.registry.Schema(f.Target)
	if err != nil {
		w.logger.Warn("full-text discovery skipped record field", err, map[string]interface{}{
			"schema": w.root,
			"path":   path,
		})
		return
	}
	w.visitSchema(target, path, overrides, depth)
}

func (w *pathWalker) visitSchema(s *Schema, path string, overrides []string, depth int) {
	annotated := s.fullTextFields()

	switch {
	case len(annotated) > 0 && overrides == nil:
		for _, f := range annotated {
			w.visitField(f, joinPath(path, f.Name), f.FullTextPaths, depth+1)
		}

	case overrides != nil:
		for _, name := range overrides {
			head, rest, _ := strings.Cut(name, ".")
			f, ok := s.Field(head)
			if !ok {
				w.logger.Warn("full-text override names an unknown field", nil, map[string]interface{}{
					"schema": s.Name,
					"field":  head,
				})
				continue
			}
			var nested []string
			if rest != "" {
				nested = []string{rest}
			}
			w.visitField(f, joinPath(path, f.Name), nested, depth+1)
		}

	default:
		for _, f := range s.Fields {
			if f.Kind == KindString {
				w.visitField(f, joinPath(path, f.Name), nil, depth+1)
			}
		}
	}
}

func joinPath(prefix, name string) string {
	if prefix == "" {
		return name
	}
	return prefix + "." + name
}
