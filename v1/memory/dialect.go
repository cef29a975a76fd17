package memory

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/intellegens-hr/commons/v1/search"
)

// rowVar is the environment variable holding the record under evaluation.
const rowVar = "row"

// Dialect renders search expression trees as expr-lang programs over Records.
var Dialect = dialect{}

type dialect struct{}

// Name implements search.Dialect.
func (dialect) Name() string {
	return "memory"
}

// Predicate implements search.Dialect.
func (d dialect) Predicate(p search.Predicate) (search.CompiledExpression, error) {
	var params search.Params
	code, err := d.predicate(p, rowVar, &params)
	if err != nil {
		return search.CompiledExpression{}, err
	}
	return bind(code, &params), nil
}

// Value implements search.Dialect.
func (d dialect) Value(v search.Value) (search.CompiledExpression, error) {
	var params search.Params
	code, err := d.value(v, rowVar, &params)
	if err != nil {
		return search.CompiledExpression{}, err
	}
	return bind(code, &params), nil
}

func paramName(i int) string {
	return "p" + strconv.Itoa(i)
}

func bind(code string, params *search.Params) search.CompiledExpression {
	return search.CompiledExpression{
		Expression: search.BindParams(code, paramName),
		Params:     params.Values(),
	}
}

// field renders a path relative to scope, which is either rowVar or "#"
// inside a collection closure.
func field(path search.Path, scope string) string {
	out := scope
	for _, seg := range path {
		out = "member(" + out + ", " + strconv.Quote(seg.Field.Name) + ")"
	}
	return out
}

func (d dialect) predicate(p search.Predicate, scope string, params *search.Params) (string, error) {
	switch n := p.(type) {
	case search.Equals:
		return "text(" + field(n.Field, scope) + ") == lower(" + params.Add(n.Value) + ")", nil

	case search.Contains:
		return "text(" + field(n.Field, scope) + ") contains lower(" + params.Add(n.Value) + ")", nil

	case search.Exists:
		where, err := d.predicate(n.Where, "#", params)
		if err != nil {
			return "", err
		}
		return "any(elements(" + field(n.Collection, scope) + "), {" + where + "})", nil

	case search.And:
		return d.join(n.Terms, " && ", "true", scope, params)

	case search.Or:
		return d.join(n.Terms, " || ", "false", scope, params)

	case search.Not:
		inner, err := d.predicate(n.Term, scope, params)
		if err != nil {
			return "", err
		}
		return "!(" + inner + ")", nil
	}
	return "", fmt.Errorf("%w: predicate %T", search.ErrUnsupported, p)
}

func (d dialect) join(terms []search.Predicate, sep, empty, scope string, params *search.Params) (string, error) {
	if len(terms) == 0 {
		return empty, nil
	}
	parts := make([]string, 0, len(terms))
	for _, t := range terms {
		code, err := d.predicate(t, scope, params)
		if err != nil {
			return "", err
		}
		parts = append(parts, "("+code+")")
	}
	return strings.Join(parts, sep), nil
}

func (d dialect) value(v search.Value, scope string, params *search.Params) (string, error) {
	switch n := v.(type) {
	case search.FieldValue:
		return field(n.Field, scope), nil

	case search.Min:
		of, err := d.value(n.Of, "#", params)
		if err != nil {
			return "", err
		}
		return "least(map(elements(" + field(n.Collection, scope) + "), {" + of + "}))", nil

	case search.Indicator:
		cond, err := d.predicate(n.When, scope, params)
		if err != nil {
			return "", err
		}
		if n.Inverted {
			return "((" + cond + ") ? 0 : 1)", nil
		}
		return "((" + cond + ") ? 1 : 0)", nil

	case search.Sum:
		if len(n.Terms) == 0 {
			return "0", nil
		}
		parts := make([]string, 0, len(n.Terms))
		for _, t := range n.Terms {
			code, err := d.value(t, scope, params)
			if err != nil {
				return "", err
			}
			parts = append(parts, code)
		}
		return "(" + strings.Join(parts, " + ") + ")", nil
	}
	return "", fmt.Errorf("%w: value %T", search.ErrUnsupported, v)
}
