package search

import (
	"strings"
)

// Segment is one resolved component of a dotted field path.
type Segment struct {
	// Path is the dotted path up to and including this segment, as declared
	Path string
	// Field is the descriptor the segment resolved to
	Field Field
	// Owner is the schema the field was found on
	Owner *Schema
	// Target is the schema of a record field, nil for simple fields
	Target *Schema
	// Collection is set when the field itself is multi-valued
	Collection bool
	// InCollection is set when Owner was reached through a collection segment
	InCollection bool
}

// Table returns the table a record segment correlates with.
func (s Segment) Table() string {
	if s.Field.Relation.Table != "" {
		return s.Field.Relation.Table
	}
	if s.Target != nil {
		return s.Target.Table
	}
	return ""
}

// Resolve walks path left to right against root and returns one segment per
// path component. Segment names match case-insensitively. When a segment is a
// collection, resolution continues against its element schema.
func Resolve(reg *Registry, root *Schema, path string) ([]Segment, error) {
	unresolved := func(segment, reason string) error {
		return &UnresolvedPathError{Schema: root.Name, Path: path, Segment: segment, Reason: reason}
	}

	if strings.TrimSpace(path) == "" {
		return nil, unresolved("", "is empty")
	}

	parts := strings.Split(path, ".")
	segments := make([]Segment, 0, len(parts))

	current := root
	inCollection := false
	var declared []string

	for i, part := range parts {
		name := strings.TrimSpace(part)
		if name == "" {
			return nil, unresolved(part, "is empty")
		}
		if current == nil {
			return nil, unresolved(name, "follows a simple field")
		}

		field, ok := current.Field(name)
		if !ok {
			return nil, unresolved(name, "is not a field of "+current.Name)
		}
		declared = append(declared, field.Name)

		seg := Segment{
			Path:         strings.Join(declared, "."),
			Field:        field,
			Owner:        current,
			Collection:   field.Multi,
			InCollection: inCollection,
		}

		if field.Kind == KindRecord {
			target, err := reg.Schema(field.Target)
			if err != nil {
				return nil, unresolved(name, "targets unknown schema "+field.Target)
			}
			seg.Target = target
			current = target
		} else {
			current = nil
			if i < len(parts)-1 && field.Multi {
				return nil, unresolved(parts[i+1], "follows a collection of simple values")
			}
		}

		if field.Multi {
			inCollection = true
		}
		segments = append(segments, seg)
	}

	if last := segments[len(segments)-1]; last.Field.Kind == KindRecord {
		return nil, unresolved(parts[len(parts)-1], "is a record, not a value")
	}
	return segments, nil
}
