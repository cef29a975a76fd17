package memory

import (
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/expr-lang/expr"
)

// functions are the helpers generated programs call. They are nil-safe so
// that a missing relation behaves like an empty value.
var functions = []expr.Option{
	expr.Function("member", member),
	expr.Function("text", text),
	expr.Function("elements", elements),
	expr.Function("least", least),
}

// member returns the named field of a record, or nil.
func member(params ...any) (any, error) {
	if len(params) != 2 {
		return nil, fmt.Errorf("member: expected 2 arguments, got %d", len(params))
	}
	name, _ := params[1].(string)

	switch obj := params[0].(type) {
	case nil:
		return nil, nil
	case Record:
		return obj[name], nil
	}

	rv := reflect.ValueOf(params[0])
	if rv.Kind() == reflect.Map && rv.Type().Key().Kind() == reflect.String {
		v := rv.MapIndex(reflect.ValueOf(name).Convert(rv.Type().Key()))
		if !v.IsValid() {
			return nil, nil
		}
		return v.Interface(), nil
	}
	return nil, nil
}

// text renders a scalar as lower-case text; nil renders as "".
func text(params ...any) (any, error) {
	if len(params) != 1 {
		return nil, fmt.Errorf("text: expected 1 argument, got %d", len(params))
	}
	switch v := params[0].(type) {
	case nil:
		return "", nil
	case string:
		return strings.ToLower(v), nil
	case time.Time:
		return strings.ToLower(v.Format(time.RFC3339Nano)), nil
	case fmt.Stringer:
		return strings.ToLower(v.String()), nil
	}
	return strings.ToLower(fmt.Sprint(params[0])), nil
}

// elements returns a collection as a slice; nil becomes an empty slice.
func elements(params ...any) (any, error) {
	if len(params) != 1 {
		return nil, fmt.Errorf("elements: expected 1 argument, got %d", len(params))
	}
	if params[0] == nil {
		return []any{}, nil
	}
	rv := reflect.ValueOf(params[0])
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return []any{params[0]}, nil
	}
	return params[0], nil
}

// least returns the smallest non-nil element by the package's total order.
func least(params ...any) (any, error) {
	if len(params) != 1 {
		return nil, fmt.Errorf("least: expected 1 argument, got %d", len(params))
	}
	rv := reflect.ValueOf(params[0])
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return nil, fmt.Errorf("least: expected an array, got %T", params[0])
	}
	var out any
	for i := 0; i < rv.Len(); i++ {
		v := rv.Index(i).Interface()
		if v == nil {
			continue
		}
		if out == nil || compare(v, out) < 0 {
			out = v
		}
	}
	return out, nil
}
