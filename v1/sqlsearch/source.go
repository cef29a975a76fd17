package sqlsearch

import (
	"context"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/intellegens-hr/commons/v1/search"
)

// Source adapts a gorm query to search.Source. The query is only built when
// Count or Find runs, so a Source can be shared and narrowed freely.
type Source struct {
	db      *gorm.DB
	dialect *Dialect

	translate func(error) error

	where  []search.CompiledExpression
	order  []search.OrderKey
	offset int
	limit  int
}

// Option configures a Source.
type Option func(*Source)

// WithErrorTranslator maps driver errors returned by Count and Find.
func WithErrorTranslator(fn func(error) error) Option {
	return func(s *Source) {
		s.translate = fn
	}
}

// NewSource wraps db, typically db.Model(&Article{}), for searching with d.
func NewSource(db *gorm.DB, d *Dialect, opts ...Option) *Source {
	s := &Source{
		db:      db.Session(&gorm.Session{}),
		dialect: d,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Source) wrap(err error) error {
	if err == nil || s.translate == nil {
		return err
	}
	return s.translate(err)
}

func (s *Source) clone() *Source {
	c := *s
	c.where = append([]search.CompiledExpression(nil), s.where...)
	c.order = append([]search.OrderKey(nil), s.order...)
	return &c
}

// Dialect implements search.Source.
func (s *Source) Dialect() search.Dialect {
	return s.dialect
}

// Where implements search.Source. Successive predicates are combined with AND.
func (s *Source) Where(expr search.CompiledExpression) search.Source {
	c := s.clone()
	if !expr.Empty() {
		c.where = append(c.where, expr)
	}
	return c
}

// OrderBy implements search.Source.
func (s *Source) OrderBy(keys ...search.OrderKey) search.Source {
	c := s.clone()
	c.order = append([]search.OrderKey(nil), keys...)
	return c
}

// Offset implements search.Source.
func (s *Source) Offset(n int) search.Source {
	c := s.clone()
	c.offset = n
	return c
}

// Limit implements search.Source.
func (s *Source) Limit(n int) search.Source {
	c := s.clone()
	c.limit = n
	return c
}

// Count implements search.Source. Ordering and paging are ignored.
func (s *Source) Count(ctx context.Context) (int64, error) {
	var n int64
	err := s.filtered(ctx).Count(&n).Error
	return n, s.wrap(err)
}

// Find implements search.Source.
func (s *Source) Find(ctx context.Context, dest any) error {
	q := s.filtered(ctx)
	if oc, ok := s.orderClause(); ok {
		q = q.Clauses(oc)
	}
	if s.offset > 0 {
		q = q.Offset(s.offset)
	}
	if s.limit > 0 {
		q = q.Limit(s.limit)
	}
	return s.wrap(q.Find(dest).Error)
}

// Statement renders the SELECT that Find would run, for logging and tests.
func (s *Source) Statement(ctx context.Context, dest any) (string, []any) {
	stmt := s.db.WithContext(ctx).Session(&gorm.Session{DryRun: true})
	dry := s.clone()
	dry.db = stmt
	q := dry.filtered(ctx)
	if oc, ok := s.orderClause(); ok {
		q = q.Clauses(oc)
	}
	if s.offset > 0 {
		q = q.Offset(s.offset)
	}
	if s.limit > 0 {
		q = q.Limit(s.limit)
	}
	q = q.Find(dest)
	return q.Statement.SQL.String(), q.Statement.Vars
}

func (s *Source) filtered(ctx context.Context) *gorm.DB {
	q := s.db.WithContext(ctx)
	for _, w := range s.where {
		q = q.Where(w.Expression, w.Params...)
	}
	return q
}

// orderClause renders every key into one ORDER BY expression. gorm merges
// separate expression-based order clauses by replacement, so they cannot be
// added one at a time.
func (s *Source) orderClause() (clause.OrderBy, bool) {
	if len(s.order) == 0 {
		return clause.OrderBy{}, false
	}
	parts := make([]string, 0, len(s.order))
	var vars []any
	for _, k := range s.order {
		dir := " ASC"
		if k.Descending {
			dir = " DESC"
		}
		parts = append(parts, k.Expr.Expression+dir)
		vars = append(vars, k.Expr.Params...)
	}
	return clause.OrderBy{Expression: clause.Expr{
		SQL:                strings.Join(parts, ", "),
		Vars:               vars,
		WithoutParentheses: true,
	}}, true
}
