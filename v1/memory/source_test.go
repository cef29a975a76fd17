package memory

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/panjf2000/ants/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/intellegens-hr/commons/v1/search"
)

type fixture struct {
	reg      *search.Registry
	compiler *search.Compiler
	article  *search.Schema
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	reg, err := search.NewRegistry(
		search.NewSchema("Article", "",
			search.Int("Id"),
			search.String("Title").Searchable(),
			search.String("Body"),
			search.Strings("Tags"),
			search.Time("Published"),
			search.BelongsTo("Author", "Author", "author_id").Searchable("Name"),
			search.HasMany("Comments", "Comment", "article_id"),
		),
		search.NewSchema("Author", "", search.Int("Id"), search.String("Name")),
		search.NewSchema("Comment", "", search.Int("Id"), search.String("Text")),
	)
	require.NoError(t, err)
	article, err := reg.Schema("Article")
	require.NoError(t, err)
	return fixture{
		reg:      reg,
		compiler: search.NewCompiler(reg, search.NewPathCache(reg, search.Config{}, nil)),
		article:  article,
	}
}

func (f fixture) path(t *testing.T, p string) search.Path {
	t.Helper()
	segs, err := search.Resolve(f.reg, f.article, p)
	require.NoError(t, err)
	return segs
}

func articles() []Record {
	return []Record{
		{
			"Id": 1, "Title": "Learning Go", "Body": "channels", "Tags": []any{"go", "concurrency"},
			"Author":   Record{"Id": 10, "Name": "Ana"},
			"Comments": []any{Record{"Id": 100, "Text": "Great"}, Record{"Id": 101, "Text": "zzz"}},
		},
		{
			"Id": 2, "Title": "Rust in Action", "Body": "ownership", "Tags": []string{"rust"},
			"Author":   Record{"Id": 11, "Name": "Bo"},
			"Comments": []any{Record{"Id": 102, "Text": "Aha"}},
		},
		{
			"Id": 3, "Title": "GOLANG tips", "Body": nil, "Tags": nil,
			"Author":   nil,
			"Comments": nil,
		},
	}
}

func ids(rows []Record) []int {
	out := make([]int, 0, len(rows))
	for _, r := range rows {
		out = append(out, r["Id"].(int))
	}
	return out
}

func where(t *testing.T, p search.Predicate) []int {
	t.Helper()
	expr, err := Dialect.Predicate(p)
	require.NoError(t, err)

	var rows []Record
	require.NoError(t, NewSource(articles()).Where(expr).Find(context.Background(), &rows))
	return ids(rows)
}

func TestPredicate_ExactAndPartialIgnoreCase(t *testing.T) {
	f := newFixture(t)
	title := f.path(t, "Title")

	tests := []struct {
		name string
		p    search.Predicate
		want []int
	}{
		{name: "exact", p: search.Equals{Field: title, Value: "learning go"}, want: []int{1}},
		{name: "exact is not partial", p: search.Equals{Field: title, Value: "learning"}, want: []int{}},
		{name: "partial", p: search.Contains{Field: title, Value: "GO"}, want: []int{1, 3}},
		{name: "partial empty value", p: search.Contains{Field: title, Value: ""}, want: []int{1, 2, 3}},
		{name: "nil field equals empty", p: search.Equals{Field: f.path(t, "Body"), Value: ""}, want: []int{3}},
		{name: "number as text", p: search.Equals{Field: f.path(t, "Id"), Value: "2"}, want: []int{2}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, where(t, tt.p))
		})
	}
}

func TestPredicate_Relations(t *testing.T) {
	f := newFixture(t)
	author := f.path(t, "Author.Name")
	comments := f.path(t, "Comments.Text")
	tags := f.path(t, "Tags")

	assert.Equal(t, []int{2}, where(t, search.Equals{Field: author, Value: "bo"}))
	assert.Equal(t, []int{1, 2}, where(t, search.Exists{Collection: comments[:1], Where: search.Contains{Field: comments[1:], Value: "a"}}))
	assert.Equal(t, []int{2}, where(t, search.Exists{Collection: tags, Where: search.Equals{Field: search.Path{}, Value: "RUST"}}))
	assert.Equal(t, []int{3}, where(t, search.Not{Term: search.Exists{Collection: tags, Where: search.And{}}}), "nil collection has no elements")
}

func TestPredicate_EmptyGroups(t *testing.T) {
	assert.Equal(t, []int{1, 2, 3}, where(t, search.And{}))
	assert.Equal(t, []int{}, where(t, search.Or{}))
}

func TestPredicate_DoubleNegation(t *testing.T) {
	f := newFixture(t)
	for _, p := range []search.Predicate{
		search.Contains{Field: f.path(t, "Title"), Value: "go"},
		search.Equals{Field: f.path(t, "Author.Name"), Value: "ana"},
		search.Or{},
	} {
		assert.Equal(t, where(t, p), where(t, search.Not{Term: search.Not{Term: p}}))
	}
}

func TestCompiledCriteria_KeysLogic(t *testing.T) {
	f := newFixture(t)
	run := func(fc search.FilterCriteria) []int {
		p, err := f.compiler.Filter(f.article, fc)
		require.NoError(t, err)
		return where(t, p)
	}

	anyKey := search.FilterCriteria{Keys: []string{"Title", "Body"}, Values: []string{"o"}, Operator: search.OperatorPartial}
	assert.Equal(t, []int{1, 2, 3}, run(anyKey))

	allKeys := anyKey
	allKeys.KeysLogic = search.LogicAll
	assert.Equal(t, []int{2}, run(allKeys), "only article 2 has an o in both title and body")
}

func TestCompiledCriteria_FullText(t *testing.T) {
	f := newFixture(t)
	p, err := f.compiler.Filter(f.article, search.FilterCriteria{Values: []string{"ana"}})
	require.NoError(t, err)
	assert.Equal(t, []int{1}, where(t, p))
}

func evalValue(t *testing.T, v search.Value) []any {
	t.Helper()
	expr, err := Dialect.Value(v)
	require.NoError(t, err)
	prog, err := compile(expr, false)
	require.NoError(t, err)

	var out []any
	for _, r := range articles() {
		got, err := prog.eval(r)
		require.NoError(t, err)
		out = append(out, got)
	}
	return out
}

func TestValue_DoubleFlipPreservesCounts(t *testing.T) {
	f := newFixture(t)
	hits, err := f.compiler.MatchCount(f.article, search.FilterCriteria{
		NestedLogic: search.NestedOr,
		NestedCriteria: []search.FilterCriteria{
			{Keys: []string{"Title"}, Values: []string{"go"}},
			{Keys: []string{"Tags"}, Values: []string{"go"}, Operator: search.OperatorExact, Negate: true},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, []any{1, 1, 2}, evalValue(t, hits))
	assert.Equal(t, []any{1, 1, 0}, evalValue(t, search.Negate(hits)))
	assert.Equal(t, evalValue(t, hits), evalValue(t, search.Negate(search.Negate(hits))))
}

func TestOrderBy_MatchCountRanksAllRecords(t *testing.T) {
	f := newFixture(t)
	hits, err := f.compiler.MatchCount(f.article, search.FilterCriteria{
		NestedLogic: search.NestedOr,
		NestedCriteria: []search.FilterCriteria{
			{Keys: []string{"Title"}, Values: []string{"rust"}},
			{Keys: []string{"Body"}, Values: []string{"own"}},
			{Keys: []string{"Title"}, Values: []string{"tips"}},
		},
	})
	require.NoError(t, err)
	key, err := Dialect.Value(hits)
	require.NoError(t, err)

	var rows []Record
	src := NewSource(articles()).OrderBy(search.OrderKey{Expr: key, Descending: true})
	require.NoError(t, src.Find(context.Background(), &rows))
	assert.Equal(t, []int{2, 3, 1}, ids(rows))
}

func TestOrderBy_CollectionMinimumAndNilFirst(t *testing.T) {
	f := newFixture(t)
	segs := f.path(t, "Comments.Text")
	key, err := Dialect.Value(search.Min{Collection: segs[:1], Of: search.FieldValue{Field: segs[1:]}})
	require.NoError(t, err)

	var rows []Record
	require.NoError(t, NewSource(articles()).OrderBy(search.OrderKey{Expr: key}).Find(context.Background(), &rows))
	assert.Equal(t, []int{3, 2, 1}, ids(rows), "nil, Aha, Great")
}

func TestOrderBy_StableAndPaged(t *testing.T) {
	records := make([]Record, 0, 10)
	for i := 0; i < 10; i++ {
		records = append(records, Record{"Id": i, "Group": i % 2})
	}
	reg, err := search.NewRegistry(search.NewSchema("Row", "", search.Int("Id"), search.Int("Group")))
	require.NoError(t, err)
	row, _ := reg.Schema("Row")
	group, err := search.Resolve(reg, row, "Group")
	require.NoError(t, err)

	key, err := Dialect.Value(search.FieldValue{Field: group})
	require.NoError(t, err)

	src := NewSource(records).OrderBy(search.OrderKey{Expr: key}).Offset(3).Limit(4)
	var rows []Record
	require.NoError(t, src.Find(context.Background(), &rows))
	assert.Equal(t, []int{6, 8, 1, 3}, ids(rows))

	n, err := src.Count(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(10), n, "count ignores paging")

	var empty []Record
	require.NoError(t, NewSource(records).Offset(20).Find(context.Background(), &empty))
	assert.Empty(t, empty)
}

func TestSource_ChainDoesNotMutateReceiver(t *testing.T) {
	f := newFixture(t)
	expr, err := Dialect.Predicate(search.Equals{Field: f.path(t, "Id"), Value: "1"})
	require.NoError(t, err)

	base := NewSource(articles())
	_ = base.Where(expr).Limit(1)

	n, err := base.Count(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(3), n)
}

func TestSource_PoolPreservesOrder(t *testing.T) {
	pool, err := ants.NewPool(4)
	require.NoError(t, err)
	defer pool.Release()

	records := make([]Record, 0, 100)
	for i := 0; i < 100; i++ {
		records = append(records, Record{"Id": i, "Title": fmt.Sprintf("item %d", i)})
	}
	reg, err := search.NewRegistry(search.NewSchema("Item", "", search.Int("Id"), search.String("Title")))
	require.NoError(t, err)
	item, _ := reg.Schema("Item")
	title, err := search.Resolve(reg, item, "Title")
	require.NoError(t, err)

	expr, err := Dialect.Predicate(search.Contains{Field: title, Value: "7"})
	require.NoError(t, err)

	var sequential, parallel []Record
	require.NoError(t, NewSource(records).Where(expr).Find(context.Background(), &sequential))
	require.NoError(t, NewSource(records, WithPool(pool, 8)).Where(expr).Find(context.Background(), &parallel))

	assert.Len(t, sequential, 19)
	assert.Equal(t, ids(sequential), ids(parallel))
}

func TestSource_Errors(t *testing.T) {
	f := newFixture(t)
	expr, err := Dialect.Predicate(search.Equals{Field: f.path(t, "Id"), Value: "1"})
	require.NoError(t, err)

	var wrong []map[string]string
	assert.Error(t, NewSource(articles()).Find(context.Background(), &wrong))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = NewSource(articles()).Where(expr).Count(ctx)
	assert.ErrorIs(t, err, context.Canceled)

	_, err = NewSource(articles()).Where(search.CompiledExpression{Expression: "row +"}).Count(context.Background())
	assert.Error(t, err)
}

func TestCompareTotalOrder(t *testing.T) {
	now := time.Now()
	ordered := []any{nil, false, true, -1, 2.5, int64(3), now, now.Add(time.Second), "a", "b"}
	for i := range ordered {
		for j := range ordered {
			got := compare(ordered[i], ordered[j])
			switch {
			case i < j:
				assert.Negative(t, got, "%v < %v", ordered[i], ordered[j])
			case i > j:
				assert.Positive(t, got, "%v > %v", ordered[i], ordered[j])
			default:
				assert.Zero(t, got)
			}
		}
	}
}
