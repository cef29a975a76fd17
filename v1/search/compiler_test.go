package search

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCompiler(t *testing.T) (*Compiler, *Registry) {
	t.Helper()
	reg := testRegistry(t)
	return NewCompiler(reg, NewPathCache(reg, Config{}, nil)), reg
}

func TestFilter_LeafOperators(t *testing.T) {
	c, reg := newTestCompiler(t)
	article := mustSchema(t, reg, "Article")
	title := mustResolve(t, reg, article, "Title")

	p, err := c.Filter(article, FilterCriteria{Keys: []string{"title"}, Values: []string{"Go"}, Operator: OperatorExact})
	require.NoError(t, err)
	assert.Equal(t, Equals{Field: title, Value: "Go"}, p)

	p, err = c.Filter(article, FilterCriteria{Keys: []string{"Title"}, Values: []string{"Go"}})
	require.NoError(t, err)
	assert.Equal(t, Contains{Field: title, Value: "Go"}, p, "operator defaults to partial")
}

func TestFilter_KeysAndValuesLogic(t *testing.T) {
	c, reg := newTestCompiler(t)
	article := mustSchema(t, reg, "Article")
	title := mustResolve(t, reg, article, "Title")
	body := mustResolve(t, reg, article, "Body")

	tests := []struct {
		name string
		fc   FilterCriteria
		want Predicate
	}{
		{
			name: "keys any",
			fc:   FilterCriteria{Keys: []string{"Title", "Body"}, Values: []string{"v"}},
			want: Or{Terms: []Predicate{Contains{Field: title, Value: "v"}, Contains{Field: body, Value: "v"}}},
		},
		{
			name: "keys all",
			fc:   FilterCriteria{Keys: []string{"Title", "Body"}, KeysLogic: LogicAll, Values: []string{"v"}},
			want: And{Terms: []Predicate{Contains{Field: title, Value: "v"}, Contains{Field: body, Value: "v"}}},
		},
		{
			name: "values all",
			fc:   FilterCriteria{Keys: []string{"Title"}, Values: []string{"a", "b"}, ValuesLogic: "ALL"},
			want: And{Terms: []Predicate{Contains{Field: title, Value: "a"}, Contains{Field: title, Value: "b"}}},
		},
		{
			name: "unknown logic defaults to any",
			fc:   FilterCriteria{Keys: []string{"Title"}, Values: []string{"a", "b"}, ValuesLogic: "most"},
			want: Or{Terms: []Predicate{Contains{Field: title, Value: "a"}, Contains{Field: title, Value: "b"}}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := c.Filter(article, tt.fc)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFilter_CollectionQuantifiesEachValue(t *testing.T) {
	c, reg := newTestCompiler(t)
	article := mustSchema(t, reg, "Article")
	segs := mustResolve(t, reg, article, "Comments.Author.Name")

	p, err := c.Filter(article, FilterCriteria{
		Keys:        []string{"Comments.Author.Name"},
		Values:      []string{"ana", "bo"},
		ValuesLogic: LogicAll,
		Operator:    OperatorExact,
	})
	require.NoError(t, err)

	want := And{Terms: []Predicate{
		Exists{Collection: segs[:1], Where: Equals{Field: segs[1:], Value: "ana"}},
		Exists{Collection: segs[:1], Where: Equals{Field: segs[1:], Value: "bo"}},
	}}
	assert.Equal(t, want, p)
}

func TestFilter_ScalarArrayElement(t *testing.T) {
	c, reg := newTestCompiler(t)
	article := mustSchema(t, reg, "Article")
	tags := mustResolve(t, reg, article, "Tags")

	p, err := c.Filter(article, FilterCriteria{Keys: []string{"Tags"}, Values: []string{"go"}, Operator: OperatorExact})
	require.NoError(t, err)
	assert.Equal(t, Exists{Collection: tags, Where: Equals{Field: Path{}, Value: "go"}}, p)
}

func TestFilter_FullText(t *testing.T) {
	c, reg := newTestCompiler(t)
	article := mustSchema(t, reg, "Article")
	title := mustResolve(t, reg, article, "Title")
	authorName := mustResolve(t, reg, article, "Author.Name")

	p, err := c.Filter(article, FilterCriteria{Values: []string{"go"}, KeysLogic: LogicAll})
	require.NoError(t, err)
	assert.Equal(t, Or{Terms: []Predicate{
		Contains{Field: title, Value: "go"},
		Contains{Field: authorName, Value: "go"},
	}}, p, "full-text always combines keys with any")
}

func TestFilter_FullTextWithoutEligibleFieldsMatchesNothing(t *testing.T) {
	c, reg := newTestCompiler(t)
	counter := mustSchema(t, reg, "Counter")

	p, err := c.Filter(counter, FilterCriteria{Values: []string{"x"}})
	require.NoError(t, err)
	assert.Equal(t, Or{}, p)
}

func TestFilter_FullTextWithoutEligibleFieldsKeepsChildren(t *testing.T) {
	c, reg := newTestCompiler(t)
	counter := mustSchema(t, reg, "Counter")
	id := mustResolve(t, reg, counter, "Id")

	fc := FilterCriteria{
		Values:      []string{"x"},
		NestedLogic: NestedOr,
		NestedCriteria: []FilterCriteria{
			{Keys: []string{"Id"}, Values: []string{"1"}, Operator: OperatorExact},
		},
	}

	p, err := c.Filter(counter, fc)
	require.NoError(t, err)
	assert.Equal(t, Or{Terms: []Predicate{Equals{Field: id, Value: "1"}, Or{}}}, p)

	v, err := c.MatchCount(counter, fc)
	require.NoError(t, err)
	assert.Equal(t, Sum{Terms: []Value{
		Indicator{When: Equals{Field: id, Value: "1"}},
		Indicator{When: Or{}},
	}}, v)
}

func TestFilter_EmptyCriteria(t *testing.T) {
	c, reg := newTestCompiler(t)
	article := mustSchema(t, reg, "Article")

	for name, fc := range map[string]FilterCriteria{
		"zero value":         {},
		"keys without value": {Keys: []string{"Title"}},
		"negated empty":      {Negate: true},
		"empty children":     {NestedCriteria: []FilterCriteria{{}, {NestedLogic: NestedOr}}},
	} {
		t.Run(name, func(t *testing.T) {
			p, err := c.Filter(article, fc)
			require.NoError(t, err)
			assert.Nil(t, p)
		})
	}
}

func TestFilter_EmptyChildIsIdentityForAndAndOr(t *testing.T) {
	c, reg := newTestCompiler(t)
	article := mustSchema(t, reg, "Article")
	leaf := FilterCriteria{Keys: []string{"Title"}, Values: []string{"go"}}

	single, err := c.Filter(article, leaf)
	require.NoError(t, err)

	for _, logic := range []NestedLogic{NestedAnd, NestedOr} {
		t.Run(string(logic), func(t *testing.T) {
			p, err := c.Filter(article, FilterCriteria{
				NestedLogic:    logic,
				NestedCriteria: []FilterCriteria{{}, leaf, {Keys: []string{"Body"}}},
			})
			require.NoError(t, err)
			assert.Equal(t, single, p)
		})
	}
}

func TestFilter_GroupLogic(t *testing.T) {
	c, reg := newTestCompiler(t)
	article := mustSchema(t, reg, "Article")
	id := mustResolve(t, reg, article, "Id")

	p, err := c.Filter(article, FilterCriteria{
		NestedLogic: NestedOr,
		NestedCriteria: []FilterCriteria{
			{Keys: []string{"Id"}, Values: []string{"1"}, Operator: OperatorExact},
			{Keys: []string{"Id"}, Values: []string{"2"}, Operator: OperatorExact},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, Or{Terms: []Predicate{
		Equals{Field: id, Value: "1"},
		Equals{Field: id, Value: "2"},
	}}, p)
}

func TestFilter_LeafWithChildrenBecomesLastChild(t *testing.T) {
	c, reg := newTestCompiler(t)
	article := mustSchema(t, reg, "Article")
	title := mustResolve(t, reg, article, "Title")
	body := mustResolve(t, reg, article, "Body")

	p, err := c.Filter(article, FilterCriteria{
		Keys:           []string{"Title"},
		Values:         []string{"a"},
		NestedLogic:    NestedOr,
		NestedCriteria: []FilterCriteria{{Keys: []string{"Body"}, Values: []string{"b"}}},
		Negate:         true,
	})
	require.NoError(t, err)
	assert.Equal(t, Not{Term: Or{Terms: []Predicate{
		Contains{Field: body, Value: "b"},
		Contains{Field: title, Value: "a"},
	}}}, p)
}

func TestFilter_DoubleNegation(t *testing.T) {
	c, reg := newTestCompiler(t)
	article := mustSchema(t, reg, "Article")
	leaf := FilterCriteria{Keys: []string{"Title"}, Values: []string{"go"}}

	plain, err := c.Filter(article, leaf)
	require.NoError(t, err)

	negated := leaf
	negated.Negate = true
	once, err := c.Filter(article, negated)
	require.NoError(t, err)
	assert.Equal(t, Not{Term: plain}, once)

	twice, err := c.Filter(article, FilterCriteria{Negate: true, NestedCriteria: []FilterCriteria{negated}})
	require.NoError(t, err)
	assert.Equal(t, plain, twice)
}

func TestFilter_UnresolvedPathAbortsCompilation(t *testing.T) {
	c, reg := newTestCompiler(t)
	article := mustSchema(t, reg, "Article")

	p, err := c.Filter(article, FilterCriteria{
		NestedCriteria: []FilterCriteria{
			{Keys: []string{"Title"}, Values: []string{"ok"}},
			{Keys: []string{"Missing"}, Values: []string{"x"}},
		},
	})
	assert.Nil(t, p)
	assert.True(t, IsUnresolvedPath(err))
}

func TestMatchCount(t *testing.T) {
	c, reg := newTestCompiler(t)
	article := mustSchema(t, reg, "Article")
	title := mustResolve(t, reg, article, "Title")
	body := mustResolve(t, reg, article, "Body")

	fc := FilterCriteria{
		NestedLogic: NestedOr,
		NestedCriteria: []FilterCriteria{
			{Keys: []string{"Title"}, Values: []string{"a"}},
			{},
			{Keys: []string{"Body"}, Values: []string{"b"}, Negate: true},
		},
	}

	v, err := c.MatchCount(article, fc)
	require.NoError(t, err)
	assert.Equal(t, Sum{Terms: []Value{
		Indicator{When: Contains{Field: title, Value: "a"}},
		Indicator{When: Contains{Field: body, Value: "b"}, Inverted: true},
	}}, v)

	fc.Negate = true
	flipped, err := c.MatchCount(article, fc)
	require.NoError(t, err)
	assert.Equal(t, Sum{Terms: []Value{
		Indicator{When: Contains{Field: title, Value: "a"}, Inverted: true},
		Indicator{When: Contains{Field: body, Value: "b"}},
	}}, flipped)

	assert.Equal(t, v, Negate(flipped))
}

func TestMatchCount_Empty(t *testing.T) {
	c, reg := newTestCompiler(t)
	article := mustSchema(t, reg, "Article")

	v, err := c.MatchCount(article, FilterCriteria{NestedCriteria: []FilterCriteria{{}, {Keys: []string{"Title"}}}})
	require.NoError(t, err)
	assert.Nil(t, v)
}

func TestOrderValue(t *testing.T) {
	c, reg := newTestCompiler(t)
	article := mustSchema(t, reg, "Article")

	v, err := c.OrderValue(article, "Author.Name")
	require.NoError(t, err)
	assert.Equal(t, FieldValue{Field: mustResolve(t, reg, article, "Author.Name")}, v)

	segs := mustResolve(t, reg, article, "Comments.Text")
	v, err = c.OrderValue(article, "comments.text")
	require.NoError(t, err)
	assert.Equal(t, Min{Collection: segs[:1], Of: FieldValue{Field: segs[1:]}}, v)

	_, err = c.OrderValue(article, "Nope")
	assert.True(t, IsUnresolvedPath(err))
}

func TestNegate_IsAnInvolution(t *testing.T) {
	v := Sum{Terms: []Value{
		Indicator{When: Or{}},
		Sum{Terms: []Value{Indicator{When: And{}, Inverted: true}, FieldValue{}}},
	}}
	assert.Equal(t, Value(v), Negate(Negate(v)))
	assert.NotEqual(t, Value(v), Negate(v))
}
