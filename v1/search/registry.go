package search

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
)

// Registry holds the field descriptor tables of all searchable record types.
// It is built once at startup and is safe for concurrent reads.
type Registry struct {
	mu      sync.RWMutex
	schemas map[string]*Schema
}

// NewRegistry creates a registry already holding the given schemas.
func NewRegistry(schemas ...*Schema) (*Registry, error) {
	r := &Registry{schemas: make(map[string]*Schema)}
	for _, s := range schemas {
		if err := r.Register(s); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// Register validates s and adds a normalized copy. Record targets are not
// checked here so that schemas may reference each other in any order; see Validate.
func (r *Registry) Register(s *Schema) error {
	if s == nil {
		return fmt.Errorf("%w: nil schema", ErrInvalidSchema)
	}
	prepared, err := s.prepare()
	if err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.schemas == nil {
		r.schemas = make(map[string]*Schema)
	}
	key := strings.ToLower(prepared.Name)
	if _, exists := r.schemas[key]; exists {
		return fmt.Errorf("%w: schema %q already registered", ErrInvalidSchema, prepared.Name)
	}
	r.schemas[key] = prepared
	return nil
}

// MustRegister registers every schema and panics on the first failure.
func (r *Registry) MustRegister(schemas ...*Schema) *Registry {
	for _, s := range schemas {
		if err := r.Register(s); err != nil {
			panic(err)
		}
	}
	return r
}

// Schema returns the registered schema with the given name, ignoring case.
func (r *Registry) Schema(name string) (*Schema, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	s, ok := r.schemas[strings.ToLower(name)]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownSchema, name)
	}
	return s, nil
}

// Names returns the registered schema names in sorted order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.schemas))
	for _, s := range r.schemas {
		names = append(names, s.Name)
	}
	sort.Strings(names)
	return names
}

// Validate checks that every record field targets a registered schema.
func (r *Registry) Validate() error {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var errs []error
	for _, s := range r.schemas {
		for _, f := range s.Fields {
			if f.Kind != KindRecord {
				continue
			}
			if _, ok := r.schemas[strings.ToLower(f.Target)]; !ok {
				errs = append(errs, fmt.Errorf("%w: %s.%s targets unknown schema %q", ErrInvalidSchema, s.Name, f.Name, f.Target))
			}
		}
	}
	return errors.Join(errs...)
}
