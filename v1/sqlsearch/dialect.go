package sqlsearch

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/intellegens-hr/commons/v1/search"
)

// Options describes the SQL flavour of one engine.
type Options struct {
	// Name identifies the engine, e.g. "postgres"
	Name string

	// Quote is the identifier quote character
	Quote byte

	// TextType is the type comparisons cast values to before lower-casing
	TextType string

	// Contains renders "haystack contains needle"; both arguments are
	// already lower-cased SQL expressions
	Contains func(haystack, needle string) string

	// Elements renders a FROM item exposing each element of an array column
	// as alias.value. Nil means the engine has no array columns.
	Elements func(column, alias, value string) string
}

// Dialect renders search expression trees as SQL for one engine.
// Queries reference the root table by its own name, so the gorm model must
// map to the schema's table.
type Dialect struct {
	opts Options
}

// NewDialect creates a SQL dialect from engine options.
func NewDialect(opts Options) *Dialect {
	if opts.Quote == 0 {
		opts.Quote = '"'
	}
	if opts.TextType == "" {
		opts.TextType = "TEXT"
	}
	return &Dialect{opts: opts}
}

// Name implements search.Dialect.
func (d *Dialect) Name() string {
	return d.opts.Name
}

// Predicate implements search.Dialect.
func (d *Dialect) Predicate(p search.Predicate) (search.CompiledExpression, error) {
	r := d.newRenderer()
	sql, err := r.predicate(p, r.root(p))
	if err != nil {
		return search.CompiledExpression{}, err
	}
	return r.compiled(sql), nil
}

// Value implements search.Dialect.
func (d *Dialect) Value(v search.Value) (search.CompiledExpression, error) {
	r := d.newRenderer()
	sql, err := r.value(v, r.rootOfValue(v))
	if err != nil {
		return search.CompiledExpression{}, err
	}
	return r.compiled(sql), nil
}

// QuoteIdent quotes a possibly schema-qualified identifier.
func (d *Dialect) QuoteIdent(name string) string {
	q := string(d.opts.Quote)
	parts := strings.Split(name, ".")
	for i, p := range parts {
		parts[i] = q + strings.ReplaceAll(p, q, q+q) + q
	}
	return strings.Join(parts, ".")
}

// scope is the row the current expression is evaluated against.
type scope struct {
	alias  string // quoted table or alias
	schema *search.Schema
	// element is the SQL of the current array element, set inside an
	// array Exists or Min
	element string
}

type renderer struct {
	d       *Dialect
	params  search.Params
	aliases int
}

func (d *Dialect) newRenderer() *renderer {
	return &renderer{d: d}
}

// compiled binds markers to gorm's "?" placeholders. Parameters are
// reordered to follow the markers' textual order.
func (r *renderer) compiled(sql string) search.CompiledExpression {
	values := r.params.Values()
	var ordered []any
	bound := search.BindParams(sql, func(i int) string {
		ordered = append(ordered, values[i])
		return "?"
	})
	return search.CompiledExpression{Expression: bound, Params: ordered}
}

func (r *renderer) nextAlias() string {
	r.aliases++
	return r.d.QuoteIdent("t" + strconv.Itoa(r.aliases))
}

// root finds the owner schema of the first path in p. Every path of a tree
// compiled against one schema starts on that schema.
func (r *renderer) root(p search.Predicate) scope {
	if path := firstPath(p); len(path) > 0 {
		return scope{alias: r.d.QuoteIdent(path[0].Owner.Table), schema: path[0].Owner}
	}
	return scope{}
}

func (r *renderer) rootOfValue(v search.Value) scope {
	switch n := v.(type) {
	case search.FieldValue:
		if len(n.Field) > 0 {
			return scope{alias: r.d.QuoteIdent(n.Field[0].Owner.Table), schema: n.Field[0].Owner}
		}
	case search.Min:
		if len(n.Collection) > 0 {
			return scope{alias: r.d.QuoteIdent(n.Collection[0].Owner.Table), schema: n.Collection[0].Owner}
		}
	case search.Indicator:
		return r.root(n.When)
	case search.Sum:
		for _, t := range n.Terms {
			if s := r.rootOfValue(t); s.schema != nil {
				return s
			}
		}
	}
	return scope{}
}

func firstPath(p search.Predicate) search.Path {
	switch n := p.(type) {
	case search.Equals:
		return n.Field
	case search.Contains:
		return n.Field
	case search.Exists:
		return n.Collection
	case search.And:
		for _, t := range n.Terms {
			if path := firstPath(t); len(path) > 0 {
				return path
			}
		}
	case search.Or:
		for _, t := range n.Terms {
			if path := firstPath(t); len(path) > 0 {
				return path
			}
		}
	case search.Not:
		return firstPath(n.Term)
	}
	return nil
}

func (r *renderer) predicate(p search.Predicate, s scope) (string, error) {
	switch n := p.(type) {
	case search.Equals:
		field, err := r.text(n.Field, s)
		if err != nil {
			return "", err
		}
		return field + " = LOWER(" + r.params.Add(n.Value) + ")", nil

	case search.Contains:
		field, err := r.text(n.Field, s)
		if err != nil {
			return "", err
		}
		return r.d.opts.Contains(field, "LOWER("+r.params.Add(n.Value)+")"), nil

	case search.Exists:
		return r.exists(n.Collection, n.Where, s)

	case search.And:
		return r.join(n.Terms, " AND ", "(1=1)", s)

	case search.Or:
		return r.join(n.Terms, " OR ", "(1=0)", s)

	case search.Not:
		inner, err := r.predicate(n.Term, s)
		if err != nil {
			return "", err
		}
		return "NOT (" + inner + ")", nil
	}
	return "", fmt.Errorf("%w: predicate %T", search.ErrUnsupported, p)
}

func (r *renderer) join(terms []search.Predicate, sep, empty string, s scope) (string, error) {
	if len(terms) == 0 {
		return empty, nil
	}
	parts := make([]string, 0, len(terms))
	for _, t := range terms {
		sql, err := r.predicate(t, s)
		if err != nil {
			return "", err
		}
		parts = append(parts, "("+sql+")")
	}
	return strings.Join(parts, sep), nil
}

// text renders a field as lower-cased, non-null text so that comparisons stay
// two-valued under NOT.
func (r *renderer) text(path search.Path, s scope) (string, error) {
	field, err := r.field(path, s)
	if err != nil {
		return "", err
	}
	return "LOWER(COALESCE(CAST(" + field + " AS " + r.d.opts.TextType + "), ''))", nil
}

// field renders a scalar path: a column of the scope, or a scalar subquery
// through single relations.
func (r *renderer) field(path search.Path, s scope) (string, error) {
	if len(path) == 0 {
		if s.element == "" {
			return "", fmt.Errorf("%w: empty field path outside an array", search.ErrUnsupported)
		}
		return s.element, nil
	}

	seg := path[0]
	if seg.Target == nil {
		return s.alias + "." + r.d.QuoteIdent(seg.Field.Column), nil
	}

	inner, from, cond := r.relation(seg, s)
	sub, err := r.field(path[1:], inner)
	if err != nil {
		return "", err
	}
	return "(SELECT " + sub + " " + from + " WHERE " + cond + " LIMIT 1)", nil
}

// relation opens a correlated FROM for a record segment and returns the scope
// of the related row with the correlation condition.
func (r *renderer) relation(seg search.Segment, s scope) (scope, string, string) {
	alias := r.nextAlias()
	rel := seg.Field.Relation
	sourceKey, targetKey := rel.SourceKey, rel.TargetKey
	if sourceKey == "" {
		sourceKey = "id"
	}
	if targetKey == "" {
		targetKey = "id"
	}
	from := "FROM " + r.d.QuoteIdent(seg.Table()) + " AS " + alias
	cond := alias + "." + r.d.QuoteIdent(targetKey) + " = " + s.alias + "." + r.d.QuoteIdent(sourceKey)
	return scope{alias: alias, schema: seg.Target}, from, cond
}

// elements opens a FROM over the values of an array column.
func (r *renderer) elements(seg search.Segment, s scope) (scope, string, error) {
	if r.d.opts.Elements == nil {
		return scope{}, "", fmt.Errorf("%w: %s has no array columns (%s)", search.ErrUnsupported, r.d.opts.Name, seg.Path)
	}
	alias := r.nextAlias()
	value := r.d.QuoteIdent("v")
	from := "FROM " + r.d.opts.Elements(s.alias+"."+r.d.QuoteIdent(seg.Field.Column), alias, value)
	return scope{alias: alias, schema: s.schema, element: alias + "." + value}, from, nil
}

// exists renders an Exists whose collection path may start with single
// relations before the collection itself.
func (r *renderer) exists(path search.Path, where search.Predicate, s scope) (string, error) {
	if len(path) == 0 {
		return "", fmt.Errorf("%w: empty collection path", search.ErrUnsupported)
	}
	inner, from, cond, err := r.open(path[0], s)
	if err != nil {
		return "", err
	}

	var body string
	if len(path) > 1 {
		body, err = r.exists(path[1:], where, inner)
	} else {
		body, err = r.predicate(where, inner)
	}
	if err != nil {
		return "", err
	}
	return "EXISTS (SELECT 1 " + from + " WHERE " + conjoin(cond, body) + ")", nil
}

// open starts a subquery over a record or array segment.
func (r *renderer) open(seg search.Segment, s scope) (scope, string, string, error) {
	if seg.Target == nil {
		inner, from, err := r.elements(seg, s)
		return inner, from, "", err
	}
	inner, from, cond := r.relation(seg, s)
	return inner, from, cond, nil
}

func conjoin(cond, body string) string {
	if cond == "" {
		return "(" + body + ")"
	}
	return cond + " AND (" + body + ")"
}

func (r *renderer) value(v search.Value, s scope) (string, error) {
	switch n := v.(type) {
	case search.FieldValue:
		return r.field(n.Field, s)

	case search.Min:
		return r.min(n.Collection, n.Of, s)

	case search.Indicator:
		cond, err := r.predicate(n.When, s)
		if err != nil {
			return "", err
		}
		if n.Inverted {
			return "CASE WHEN " + cond + " THEN 0 ELSE 1 END", nil
		}
		return "CASE WHEN " + cond + " THEN 1 ELSE 0 END", nil

	case search.Sum:
		if len(n.Terms) == 0 {
			return "0", nil
		}
		parts := make([]string, 0, len(n.Terms))
		for _, t := range n.Terms {
			sql, err := r.value(t, s)
			if err != nil {
				return "", err
			}
			parts = append(parts, sql)
		}
		return "(" + strings.Join(parts, " + ") + ")", nil
	}
	return "", fmt.Errorf("%w: value %T", search.ErrUnsupported, v)
}

func (r *renderer) min(path search.Path, of search.Value, s scope) (string, error) {
	if len(path) == 0 {
		return "", fmt.Errorf("%w: empty collection path", search.ErrUnsupported)
	}
	seg := path[0]
	inner, from, cond, err := r.open(seg, s)
	if err != nil {
		return "", err
	}
	if cond != "" {
		from += " WHERE " + cond
	}

	var sub string
	switch {
	case len(path) > 1:
		sub, err = r.min(path[1:], of, inner)
	default:
		sub, err = r.value(of, inner)
	}
	if err != nil {
		return "", err
	}

	if !seg.Collection {
		return "(SELECT " + sub + " " + from + " LIMIT 1)", nil
	}
	return "(SELECT MIN(" + sub + ") " + from + ")", nil
}
