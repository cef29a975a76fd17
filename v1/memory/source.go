package memory

import (
	"context"
	"fmt"
	"maps"
	"slices"
	"sync"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
	"github.com/panjf2000/ants/v2"

	"github.com/intellegens-hr/commons/v1/search"
)

// Record is one in-memory row. Keys are the declared field names of its
// schema; record fields hold a Record (or nil) and collections hold a slice.
type Record = map[string]any

// Source is a search.Source over a fixed slice of records. Source order is
// the slice order, and sorting is stable.
type Source struct {
	records []Record
	pool    *ants.Pool
	chunk   int

	where  []search.CompiledExpression
	order  []search.OrderKey
	offset int
	limit  int
}

// DefaultChunkSize is the number of records one pool task filters.
const DefaultChunkSize = 1024

// Option configures a Source.
type Option func(*Source)

// WithPool filters records in chunks of chunkSize on pool. Sources smaller
// than one chunk are filtered inline. The pool is owned by the caller.
func WithPool(pool *ants.Pool, chunkSize int) Option {
	return func(s *Source) {
		s.pool = pool
		if chunkSize > 0 {
			s.chunk = chunkSize
		}
	}
}

// NewSource creates a source over records. The slice is not copied and
// must not be modified while searches run.
func NewSource(records []Record, opts ...Option) *Source {
	s := &Source{records: records, chunk: DefaultChunkSize}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Source) clone() *Source {
	c := *s
	c.where = append([]search.CompiledExpression(nil), s.where...)
	c.order = append([]search.OrderKey(nil), s.order...)
	return &c
}

// Dialect implements search.Source.
func (s *Source) Dialect() search.Dialect {
	return Dialect
}

// Where implements search.Source.
func (s *Source) Where(e search.CompiledExpression) search.Source {
	c := s.clone()
	if !e.Empty() {
		c.where = append(c.where, e)
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

// Count implements search.Source.
func (s *Source) Count(ctx context.Context) (int64, error) {
	rows, err := s.filter(ctx)
	if err != nil {
		return 0, err
	}
	return int64(len(rows)), nil
}

// Find implements search.Source. dest must be a *[]Record.
func (s *Source) Find(ctx context.Context, dest any) error {
	out, ok := dest.(*[]Record)
	if !ok {
		return fmt.Errorf("memory: Find expects *[]Record, got %T", dest)
	}

	rows, err := s.filter(ctx)
	if err != nil {
		return err
	}
	if rows, err = s.sort(ctx, rows); err != nil {
		return err
	}

	if s.offset > 0 {
		if s.offset >= len(rows) {
			rows = nil
		} else {
			rows = rows[s.offset:]
		}
	}
	if s.limit > 0 && len(rows) > s.limit {
		rows = rows[:s.limit]
	}

	*out = append((*out)[:0], rows...)
	return nil
}

// program is one compiled expression with its evaluation environment.
type program struct {
	prog *vm.Program
	env  map[string]any
}

func compile(e search.CompiledExpression, asBool bool) (*program, error) {
	env := make(map[string]any, len(e.Params)+1)
	env[rowVar] = Record{}
	for i, p := range e.Params {
		env[paramName(i)] = p
	}

	opts := append([]expr.Option{expr.Env(env)}, functions...)
	if asBool {
		opts = append(opts, expr.AsBool())
	}
	prog, err := expr.Compile(e.Expression, opts...)
	if err != nil {
		return nil, fmt.Errorf("memory: compile %q: %w", e.Expression, err)
	}
	return &program{prog: prog, env: env}, nil
}

func (p *program) eval(row Record) (any, error) {
	p.env[rowVar] = row
	return expr.Run(p.prog, p.env)
}

// fork returns a program sharing the compiled code with its own environment.
func (p *program) fork() *program {
	return &program{prog: p.prog, env: maps.Clone(p.env)}
}

// matches reports whether row satisfies every program.
func matches(progs []*program, row Record) (bool, error) {
	for _, p := range progs {
		ok, err := p.eval(row)
		if err != nil {
			return false, fmt.Errorf("memory: evaluate filter: %w", err)
		}
		if ok != true {
			return false, nil
		}
	}
	return true, nil
}

func (s *Source) filter(ctx context.Context) ([]Record, error) {
	if len(s.where) == 0 {
		return slices.Clone(s.records), nil
	}

	progs := make([]*program, 0, len(s.where))
	for _, w := range s.where {
		p, err := compile(w, true)
		if err != nil {
			return nil, err
		}
		progs = append(progs, p)
	}

	if s.pool == nil || len(s.records) <= s.chunk {
		return filterRange(ctx, progs, s.records)
	}
	return s.filterParallel(ctx, progs)
}

func filterRange(ctx context.Context, progs []*program, records []Record) ([]Record, error) {
	out := make([]Record, 0, len(records))
	for _, row := range records {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		ok, err := matches(progs, row)
		if err != nil {
			return nil, err
		}
		if ok {
			out = append(out, row)
		}
	}
	return out, nil
}

// filterParallel evaluates chunks on the pool and concatenates the matches
// in source order.
func (s *Source) filterParallel(ctx context.Context, progs []*program) ([]Record, error) {
	chunks := (len(s.records) + s.chunk - 1) / s.chunk
	results := make([][]Record, chunks)
	errs := make([]error, chunks)

	var wg sync.WaitGroup
	for i := 0; i < chunks; i++ {
		lo := i * s.chunk
		hi := min(lo+s.chunk, len(s.records))
		forked := make([]*program, len(progs))
		for j, p := range progs {
			forked[j] = p.fork()
		}

		wg.Add(1)
		if err := s.pool.Submit(func() {
			defer wg.Done()
			results[i], errs[i] = filterRange(ctx, forked, s.records[lo:hi])
		}); err != nil {
			wg.Done()
			errs[i] = fmt.Errorf("memory: submit filter task: %w", err)
		}
	}
	wg.Wait()

	out := make([]Record, 0, len(s.records))
	for i := range results {
		if errs[i] != nil {
			return nil, errs[i]
		}
		out = append(out, results[i]...)
	}
	return out, nil
}

func (s *Source) sort(ctx context.Context, rows []Record) ([]Record, error) {
	if len(s.order) == 0 || len(rows) < 2 {
		return rows, nil
	}

	progs := make([]*program, 0, len(s.order))
	for _, k := range s.order {
		p, err := compile(k.Expr, false)
		if err != nil {
			return nil, err
		}
		progs = append(progs, p)
	}

	type keyed struct {
		row  Record
		keys []any
	}
	items := make([]keyed, len(rows))
	for i, row := range rows {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		keys := make([]any, len(progs))
		for j, p := range progs {
			v, err := p.eval(row)
			if err != nil {
				return nil, fmt.Errorf("memory: evaluate order key: %w", err)
			}
			keys[j] = v
		}
		items[i] = keyed{row: row, keys: keys}
	}

	slices.SortStableFunc(items, func(a, b keyed) int {
		for j, k := range s.order {
			c := compare(a.keys[j], b.keys[j])
			if k.Descending {
				c = -c
			}
			if c != 0 {
				return c
			}
		}
		return 0
	})

	for i := range items {
		rows[i] = items[i].row
	}
	return rows, nil
}
