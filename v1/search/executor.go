package search

import (
	"context"
	"fmt"
	"time"

	"github.com/intellegens-hr/commons/v1/observability"
	"go.opentelemetry.io/otel/trace"
)

// Tracer opens spans around search executions. *tracer.Tracer satisfies it.
type Tracer interface {
	StartSpan(ctx context.Context, name string) (context.Context, trace.Span)
	RecordErrorOnSpan(span trace.Span, err error)
	SetAttributes(span trace.Span, attrs map[string]interface{})
}

// Query is a search request compiled for one dialect.
type Query struct {
	Where  CompiledExpression
	Order  []OrderKey
	Offset int
	// Limit is zero when the page is unbounded
	Limit int
}

// PageInfo describes the page a search returned.
type PageInfo struct {
	// Total is the number of records matching the filter, before pagination
	Total  int64 `json:"total"`
	Offset int   `json:"offset"`
	Limit  int   `json:"limit"`
}

// Page is a typed result page.
type Page[T any] struct {
	Items []T `json:"items"`
	PageInfo
}

// Searcher compiles search requests and runs them against sources.
type Searcher struct {
	compiler *Compiler
	config   Config
	logger   Logger
	tracer   Tracer
	observer observability.Observer
}

// NewSearcher creates a searcher. logger may be nil.
func NewSearcher(compiler *Compiler, cfg Config, logger Logger) *Searcher {
	return &Searcher{
		compiler: compiler,
		config:   cfg,
		logger:   orNop(logger),
	}
}

// WithTracer attaches a tracer and returns the searcher for chaining.
func (s *Searcher) WithTracer(t Tracer) *Searcher {
	s.tracer = t
	return s
}

// WithObserver attaches an observer and returns the searcher for chaining.
func (s *Searcher) WithObserver(o observability.Observer) *Searcher {
	s.observer = o
	return s
}

// Prepare compiles req against the named schema for dialect d.
//
// The match-count key, when requested and non-empty, is the first ordering key
// and always descending. Explicit order fields follow in request order.
func (s *Searcher) Prepare(d Dialect, schemaName string, req SearchRequest) (Query, error) {
	schema, err := s.compiler.Registry().Schema(schemaName)
	if err != nil {
		return Query{}, err
	}

	q := Query{
		Offset: req.Offset,
		Limit:  s.config.pageSize(req.Limit),
	}
	if q.Offset < 0 {
		q.Offset = 0
	}

	root := req.Root()
	where, err := s.compiler.Filter(schema, root)
	if err != nil {
		return Query{}, err
	}
	if where != nil {
		if q.Where, err = d.Predicate(where); err != nil {
			return Query{}, fmt.Errorf("compile filter for %s: %w", d.Name(), err)
		}
	}

	if req.OrderByMatchCount {
		hits, err := s.compiler.MatchCount(schema, root)
		if err != nil {
			return Query{}, err
		}
		if hits != nil {
			key, err := d.Value(hits)
			if err != nil {
				return Query{}, fmt.Errorf("compile match count for %s: %w", d.Name(), err)
			}
			q.Order = append(q.Order, OrderKey{Expr: key, Descending: true})
		}
	}

	for _, of := range req.Order {
		v, err := s.compiler.OrderValue(schema, of.Key)
		if err != nil {
			return Query{}, err
		}
		key, err := d.Value(v)
		if err != nil {
			return Query{}, fmt.Errorf("compile order key %q for %s: %w", of.Key, d.Name(), err)
		}
		q.Order = append(q.Order, OrderKey{Expr: key, Descending: !of.Ascending})
	}
	return q, nil
}

// Execute filters, orders and pages src according to req and loads the page
// into dest. The returned total counts every record matching the filter.
func (s *Searcher) Execute(ctx context.Context, src Source, schemaName string, req SearchRequest, dest any) (info PageInfo, err error) {
	start := time.Now()
	dialect := src.Dialect()

	if s.tracer != nil {
		var span trace.Span
		ctx, span = s.tracer.StartSpan(ctx, "search.execute")
		s.tracer.SetAttributes(span, map[string]interface{}{
			"search.schema":  schemaName,
			"search.dialect": dialect.Name(),
			"search.limit":   req.Limit,
			"search.offset":  req.Offset,
		})
		defer func() {
			if err != nil {
				s.tracer.RecordErrorOnSpan(span, err)
			} else {
				s.tracer.SetAttributes(span, map[string]interface{}{"search.total": info.Total})
			}
			span.End()
		}()
	}
	defer func() {
		s.observe("execute", schemaName, dialect.Name(), time.Since(start), err, info.Total)
	}()

	q, err := s.Prepare(dialect, schemaName, req)
	if err != nil {
		s.logger.Warn("failed to compile search request", err, map[string]interface{}{
			"schema":  schemaName,
			"dialect": dialect.Name(),
		})
		return PageInfo{}, err
	}

	filtered := src
	if !q.Where.Empty() {
		filtered = src.Where(q.Where)
	}

	total, err := filtered.Count(ctx)
	if err != nil {
		s.logger.Error("failed to count search results", err, map[string]interface{}{"schema": schemaName})
		return PageInfo{}, fmt.Errorf("count %s: %w", schemaName, err)
	}

	paged := filtered
	if len(q.Order) > 0 {
		paged = paged.OrderBy(q.Order...)
	}
	if q.Offset > 0 {
		paged = paged.Offset(q.Offset)
	}
	if q.Limit > 0 {
		paged = paged.Limit(q.Limit)
	}

	if err := paged.Find(ctx, dest); err != nil {
		s.logger.Error("failed to load search results", err, map[string]interface{}{"schema": schemaName})
		return PageInfo{}, fmt.Errorf("find %s: %w", schemaName, err)
	}

	s.logger.Debug("search executed", nil, map[string]interface{}{
		"schema":   schemaName,
		"dialect":  dialect.Name(),
		"total":    total,
		"duration": time.Since(start).String(),
	})
	return PageInfo{Total: total, Offset: q.Offset, Limit: q.Limit}, nil
}

func (s *Searcher) observe(operation, resource, subResource string, duration time.Duration, err error, size int64) {
	if s.observer == nil {
		return
	}
	s.observer.ObserveOperation(observability.OperationContext{
		Component:   "search",
		Operation:   operation,
		Resource:    resource,
		SubResource: subResource,
		Duration:    duration,
		Error:       err,
		Size:        size,
	})
}

// Search runs req through s and returns a typed page.
//
// Example:
//
//	page, err := search.Search[Article](ctx, searcher, pg.Search(&Article{}), "Article", req)
//	if err != nil {
//	    return err
//	}
//	fmt.Printf("showing %d of %d\n", len(page.Items), page.Total)
func Search[T any](ctx context.Context, s *Searcher, src Source, schemaName string, req SearchRequest) (Page[T], error) {
	var items []T
	info, err := s.Execute(ctx, src, schemaName, req, &items)
	if err != nil {
		return Page[T]{}, err
	}
	if items == nil {
		items = []T{}
	}
	return Page[T]{Items: items, PageInfo: info}, nil
}
