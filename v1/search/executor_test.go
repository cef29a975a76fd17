package search_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/intellegens-hr/commons/v1/memory"
	"github.com/intellegens-hr/commons/v1/observability"
	"github.com/intellegens-hr/commons/v1/search"
)

type recordingObserver struct {
	mu  sync.Mutex
	ops []observability.OperationContext
}

func (o *recordingObserver) ObserveOperation(ctx observability.OperationContext) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.ops = append(o.ops, ctx)
}

func newSearcher(t *testing.T, cfg search.Config) *search.Searcher {
	t.Helper()
	reg, err := search.NewRegistry(
		search.NewSchema("Note", "",
			search.Int("Id"),
			search.String("Text"),
			search.String("A"),
			search.String("B"),
		),
	)
	require.NoError(t, err)
	return search.NewSearcher(search.NewCompiler(reg, search.NewPathCache(reg, cfg, nil)), cfg, nil)
}

func TestExecute_AppliesFilterCountThenPage(t *testing.T) {
	ctrl := gomock.NewController(t)
	src := search.NewMockSource(ctrl)

	var where search.CompiledExpression
	var order []search.OrderKey

	gomock.InOrder(
		src.EXPECT().Dialect().Return(memory.Dialect),
		src.EXPECT().Where(gomock.Any()).DoAndReturn(func(e search.CompiledExpression) search.Source {
			where = e
			return src
		}),
		src.EXPECT().Count(gomock.Any()).Return(int64(42), nil),
		src.EXPECT().OrderBy(gomock.Any(), gomock.Any()).DoAndReturn(func(keys ...search.OrderKey) search.Source {
			order = keys
			return src
		}),
		src.EXPECT().Offset(10).Return(src),
		src.EXPECT().Limit(5).Return(src),
		src.EXPECT().Find(gomock.Any(), gomock.Any()).Return(nil),
	)

	s := newSearcher(t, search.Config{MaxLimit: 5})
	var rows []memory.Record
	info, err := s.Execute(context.Background(), src, "Note", search.SearchRequest{
		Filters:           []search.FilterCriteria{{Keys: []string{"Text"}, Values: []string{"ab"}}},
		Order:             []search.OrderField{{Key: "Id", Ascending: true}},
		OrderByMatchCount: true,
		Offset:            10,
		Limit:             100,
	}, &rows)
	require.NoError(t, err)

	assert.Equal(t, search.PageInfo{Total: 42, Offset: 10, Limit: 5}, info)
	assert.Equal(t, []any{"ab"}, where.Params)
	require.Len(t, order, 2)
	assert.True(t, order[0].Descending, "match count ranks first and descending")
	assert.False(t, order[1].Descending)
	assert.Equal(t, `member(row, "Id")`, order[1].Expr.Expression)
}

func TestExecute_EmptyRequestSkipsWhereAndOrder(t *testing.T) {
	ctrl := gomock.NewController(t)
	src := search.NewMockSource(ctrl)

	src.EXPECT().Dialect().Return(memory.Dialect)
	src.EXPECT().Count(gomock.Any()).Return(int64(3), nil)
	src.EXPECT().Find(gomock.Any(), gomock.Any()).Return(nil)

	s := newSearcher(t, search.Config{})
	info, err := s.Execute(context.Background(), src, "Note", search.SearchRequest{
		Filters:           []search.FilterCriteria{{}, {Keys: []string{"Text"}}},
		OrderByMatchCount: true,
		Offset:            -4,
	}, &[]memory.Record{})
	require.NoError(t, err)
	assert.Equal(t, search.PageInfo{Total: 3}, info)
}

func TestExecute_CompileErrorRunsNothing(t *testing.T) {
	ctrl := gomock.NewController(t)
	src := search.NewMockSource(ctrl)
	src.EXPECT().Dialect().Return(memory.Dialect)

	obs := &recordingObserver{}
	s := newSearcher(t, search.Config{}).WithObserver(obs)

	_, err := s.Execute(context.Background(), src, "Note", search.SearchRequest{
		Filters: []search.FilterCriteria{{Keys: []string{"Missing"}, Values: []string{"x"}}},
	}, &[]memory.Record{})
	assert.True(t, search.IsUnresolvedPath(err))

	require.Len(t, obs.ops, 1)
	assert.Equal(t, "search", obs.ops[0].Component)
	assert.Equal(t, "execute", obs.ops[0].Operation)
	assert.Equal(t, "Note", obs.ops[0].Resource)
	assert.Equal(t, "memory", obs.ops[0].SubResource)
	assert.Error(t, obs.ops[0].Error)
}

func TestExecute_UnknownSchema(t *testing.T) {
	ctrl := gomock.NewController(t)
	src := search.NewMockSource(ctrl)
	src.EXPECT().Dialect().Return(memory.Dialect)

	_, err := newSearcher(t, search.Config{}).Execute(context.Background(), src, "Ghost", search.SearchRequest{}, nil)
	assert.True(t, search.IsUnknownSchema(err))
}

func TestExecute_BackendErrorsAreWrapped(t *testing.T) {
	boom := errors.New("connection reset")

	t.Run("count", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		src := search.NewMockSource(ctrl)
		src.EXPECT().Dialect().Return(memory.Dialect)
		src.EXPECT().Count(gomock.Any()).Return(int64(0), boom)

		_, err := newSearcher(t, search.Config{}).Execute(context.Background(), src, "Note", search.SearchRequest{}, nil)
		assert.ErrorIs(t, err, boom)
	})

	t.Run("find", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		src := search.NewMockSource(ctrl)
		src.EXPECT().Dialect().Return(memory.Dialect)
		src.EXPECT().Count(gomock.Any()).Return(int64(1), nil)
		src.EXPECT().Find(gomock.Any(), gomock.Any()).Return(boom)

		obs := &recordingObserver{}
		_, err := newSearcher(t, search.Config{}).WithObserver(obs).
			Execute(context.Background(), src, "Note", search.SearchRequest{}, nil)
		assert.ErrorIs(t, err, boom)
		require.Len(t, obs.ops, 1)
		assert.ErrorIs(t, obs.ops[0].Error, boom)
	})
}

func notes() []memory.Record {
	return []memory.Record{
		{"Id": 1, "Text": "abc123", "A": "red apple", "B": "green"},
		{"Id": 2, "Text": "xyz", "A": "blue", "B": "red car"},
		{"Id": 3, "Text": "ABX", "A": "red", "B": "red"},
	}
}

func TestSearch_PartialMatchScenario(t *testing.T) {
	s := newSearcher(t, search.Config{})
	page, err := search.Search[memory.Record](context.Background(), s, memory.NewSource(notes()[:2]), "Note", search.SearchRequest{
		Filters: []search.FilterCriteria{{Keys: []string{"Text"}, Values: []string{"ab"}, Operator: search.OperatorPartial}},
		Limit:   5,
	})
	require.NoError(t, err)

	assert.Equal(t, int64(1), page.Total)
	require.Len(t, page.Items, 1)
	assert.Equal(t, 1, page.Items[0]["Id"])
}

func TestSearch_OrExactScenario(t *testing.T) {
	s := newSearcher(t, search.Config{})
	page, err := search.Search[memory.Record](context.Background(), s, memory.NewSource(notes()), "Note", search.SearchRequest{
		Type: search.NestedOr,
		Filters: []search.FilterCriteria{
			{Keys: []string{"Id"}, Values: []string{"1"}, Operator: search.OperatorExact},
			{Keys: []string{"Id"}, Values: []string{"2"}, Operator: search.OperatorExact},
		},
	})
	require.NoError(t, err)

	require.Len(t, page.Items, 2)
	assert.Equal(t, 1, page.Items[0]["Id"])
	assert.Equal(t, 2, page.Items[1]["Id"])

	page, err = search.Search[memory.Record](context.Background(), s, memory.NewSource(notes()), "Note", search.SearchRequest{
		Type: search.NestedOr,
		Filters: []search.FilterCriteria{
			{Keys: []string{"Id"}, Values: []string{"1"}, Operator: search.OperatorExact},
			{Keys: []string{"Id"}, Values: []string{"2"}, Operator: search.OperatorExact},
		},
		Order: []search.OrderField{{Key: "Id"}},
	})
	require.NoError(t, err)
	require.Len(t, page.Items, 2)
	assert.Equal(t, 2, page.Items[0]["Id"])
}

func TestSearch_MatchCountRanking(t *testing.T) {
	records := []memory.Record{
		{"Id": 1, "A": "none", "B": "none"},
		{"Id": 2, "A": "red", "B": "none"},
		{"Id": 3, "A": "red", "B": "red"},
	}
	s := newSearcher(t, search.Config{})

	page, err := search.Search[memory.Record](context.Background(), s, memory.NewSource(records), "Note", search.SearchRequest{
		Type: search.NestedOr,
		Filters: []search.FilterCriteria{
			{Keys: []string{"A"}, Values: []string{"red"}},
			{Keys: []string{"B"}, Values: []string{"red"}},
		},
		OrderByMatchCount: true,
	})
	require.NoError(t, err)

	assert.Equal(t, int64(2), page.Total)
	require.Len(t, page.Items, 2)
	assert.Equal(t, 3, page.Items[0]["Id"])
	assert.Equal(t, 2, page.Items[1]["Id"])
}

func TestSearch_EmptyPageIsNotNil(t *testing.T) {
	s := newSearcher(t, search.Config{})
	page, err := search.Search[memory.Record](context.Background(), s, memory.NewSource(nil), "Note", search.SearchRequest{})
	require.NoError(t, err)
	assert.NotNil(t, page.Items)
	assert.Zero(t, page.Total)
}
