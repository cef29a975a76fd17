package search

import (
	"fmt"
	"regexp"
	"strings"

	gormschema "gorm.io/gorm/schema"
)

// Kind is the declared type tag of a field.
type Kind int

const (
	KindString Kind = iota
	KindInt
	KindFloat
	KindBool
	KindTime
	KindUUID
	// KindRecord - the field points at another registered schema
	KindRecord
)

// Simple reports whether the kind is a leaf value type.
func (k Kind) Simple() bool {
	return k != KindRecord
}

func (k Kind) String() string {
	switch k {
	case KindString:
		return "string"
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindBool:
		return "bool"
	case KindTime:
		return "time"
	case KindUUID:
		return "uuid"
	case KindRecord:
		return "record"
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// Relation describes how a record field correlates with its target table:
// target.TargetKey = source.SourceKey.
type Relation struct {
	// Table overrides the target schema table
	Table string
	// SourceKey is the column on the owning table
	SourceKey string
	// TargetKey is the column on the target table
	TargetKey string
}

// Field is one entry of a schema's field descriptor table.
type Field struct {
	Name   string
	Column string
	Kind   Kind

	// Multi marks a collection: a has-many relation or an array of simple values
	Multi bool

	// Target is the schema name of a record field
	Target   string
	Relation Relation

	// FullText marks the field as eligible for full-text search
	FullText bool
	// FullTextPaths restricts full-text discovery below a record field
	FullTextPaths []string
}

// WithColumn returns a copy of the field stored in the given column.
func (f Field) WithColumn(column string) Field {
	f.Column = column
	return f
}

// WithRelation returns a copy of the field correlated through r.
func (f Field) WithRelation(r Relation) Field {
	f.Relation = r
	return f
}

// Searchable returns a copy of the field marked for full-text search.
// For record fields, paths limits discovery to the named sub-fields.
func (f Field) Searchable(paths ...string) Field {
	f.FullText = true
	f.FullTextPaths = append([]string(nil), paths...)
	return f
}

func String(name string) Field { return Field{Name: name, Kind: KindString} }
func Int(name string) Field    { return Field{Name: name, Kind: KindInt} }
func Float(name string) Field  { return Field{Name: name, Kind: KindFloat} }
func Bool(name string) Field   { return Field{Name: name, Kind: KindBool} }
func Time(name string) Field   { return Field{Name: name, Kind: KindTime} }
func UUID(name string) Field   { return Field{Name: name, Kind: KindUUID} }

// Strings declares an array-of-strings column.
func Strings(name string) Field {
	return Field{Name: name, Kind: KindString, Multi: true}
}

// BelongsTo declares a single record referenced by foreignKey on the owning table.
func BelongsTo(name, target, foreignKey string) Field {
	return Field{
		Name:     name,
		Kind:     KindRecord,
		Target:   target,
		Relation: Relation{SourceKey: foreignKey, TargetKey: "id"},
	}
}

// HasOne declares a single record whose foreignKey points back at the owner.
func HasOne(name, target, foreignKey string) Field {
	return Field{
		Name:     name,
		Kind:     KindRecord,
		Target:   target,
		Relation: Relation{SourceKey: "id", TargetKey: foreignKey},
	}
}

// HasMany declares a collection of records whose foreignKey points back at the owner.
func HasMany(name, target, foreignKey string) Field {
	f := HasOne(name, target, foreignKey)
	f.Multi = true
	return f
}

// Schema is the field descriptor table of one record type.
type Schema struct {
	Name   string
	Table  string
	Fields []Field

	index map[string]int
}

// NewSchema declares a record type. An empty table derives from the name
// with gorm's default naming strategy.
//
// Example:
//
//	order := search.NewSchema("Order", "",
//	    search.Int("Id"),
//	    search.String("Title").Searchable(),
//	    search.BelongsTo("Customer", "Customer", "customer_id").Searchable("Name"),
//	    search.HasMany("Items", "Item", "order_id"),
//	)
func NewSchema(name, table string, fields ...Field) *Schema {
	return &Schema{Name: name, Table: table, Fields: fields}
}

// Field looks up a field by name, ignoring case.
func (s *Schema) Field(name string) (Field, bool) {
	if s.index != nil {
		i, ok := s.index[strings.ToLower(name)]
		if !ok {
			return Field{}, false
		}
		return s.Fields[i], true
	}
	for _, f := range s.Fields {
		if strings.EqualFold(f.Name, name) {
			return f, true
		}
	}
	return Field{}, false
}

// fullTextFields returns the fields annotated as full-text eligible.
func (s *Schema) fullTextFields() []Field {
	var out []Field
	for _, f := range s.Fields {
		if f.FullText {
			out = append(out, f)
		}
	}
	return out
}

var (
	identifierPattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)
	tablePattern      = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*(\.[A-Za-z_][A-Za-z0-9_]*)?$`)
	naming            = gormschema.NamingStrategy{}
)

// prepare validates the schema and returns a normalized copy.
func (s *Schema) prepare() (*Schema, error) {
	if !identifierPattern.MatchString(s.Name) {
		return nil, fmt.Errorf("%w: schema name %q is not an identifier", ErrInvalidSchema, s.Name)
	}

	out := &Schema{
		Name:   s.Name,
		Table:  s.Table,
		Fields: make([]Field, len(s.Fields)),
		index:  make(map[string]int, len(s.Fields)),
	}
	if out.Table == "" {
		out.Table = naming.TableName(s.Name)
	}
	if !tablePattern.MatchString(out.Table) {
		return nil, fmt.Errorf("%w: %s: table %q is not an identifier", ErrInvalidSchema, s.Name, out.Table)
	}

	for i, f := range s.Fields {
		if !identifierPattern.MatchString(f.Name) {
			return nil, fmt.Errorf("%w: %s: field name %q is not an identifier", ErrInvalidSchema, s.Name, f.Name)
		}
		key := strings.ToLower(f.Name)
		if _, dup := out.index[key]; dup {
			return nil, fmt.Errorf("%w: %s: duplicate field %q", ErrInvalidSchema, s.Name, f.Name)
		}

		if f.Column == "" && f.Kind != KindRecord {
			f.Column = naming.ColumnName(out.Table, f.Name)
		}
		if f.Column != "" && !identifierPattern.MatchString(f.Column) {
			return nil, fmt.Errorf("%w: %s.%s: column %q is not an identifier", ErrInvalidSchema, s.Name, f.Name, f.Column)
		}

		if f.Kind == KindRecord {
			if f.Target == "" {
				return nil, fmt.Errorf("%w: %s.%s: record field without target", ErrInvalidSchema, s.Name, f.Name)
			}
			for _, col := range []string{f.Relation.SourceKey, f.Relation.TargetKey} {
				if col != "" && !identifierPattern.MatchString(col) {
					return nil, fmt.Errorf("%w: %s.%s: relation column %q is not an identifier", ErrInvalidSchema, s.Name, f.Name, col)
				}
			}
			if f.Relation.Table != "" && !tablePattern.MatchString(f.Relation.Table) {
				return nil, fmt.Errorf("%w: %s.%s: relation table %q is not an identifier", ErrInvalidSchema, s.Name, f.Name, f.Relation.Table)
			}
		}

		f.FullTextPaths = append([]string(nil), f.FullTextPaths...)
		out.Fields[i] = f
		out.index[key] = i
	}
	return out, nil
}
