package memory

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/intellegens-hr/commons/v1/search"
)

func TestDialectRendering(t *testing.T) {
	f := newFixture(t)
	title := f.path(t, "Title")
	comments := f.path(t, "Comments.Text")

	expr, err := Dialect.Predicate(search.Or{Terms: []search.Predicate{
		search.Equals{Field: title, Value: "A"},
		search.Not{Term: search.Exists{
			Collection: comments[:1],
			Where:      search.Contains{Field: comments[1:], Value: "B"},
		}},
	}})
	require.NoError(t, err)

	assert.Equal(t,
		`(text(member(row, "Title")) == lower(p0)) || (!(any(elements(member(row, "Comments")), {text(member(#, "Text")) contains lower(p1)})))`,
		expr.Expression)
	assert.Equal(t, []any{"A", "B"}, expr.Params)

	v, err := Dialect.Value(search.Sum{Terms: []search.Value{
		search.Indicator{When: search.Equals{Field: title, Value: "x"}, Inverted: true},
		search.Min{Collection: comments[:1], Of: search.FieldValue{Field: comments[1:]}},
	}})
	require.NoError(t, err)
	assert.Equal(t,
		`(((text(member(row, "Title")) == lower(p0)) ? 0 : 1) + least(map(elements(member(row, "Comments")), {member(#, "Text")})))`,
		v.Expression)
	assert.Equal(t, "memory", Dialect.Name())
}
