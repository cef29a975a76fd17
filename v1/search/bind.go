package search

import (
	"strconv"
	"strings"
)

// Marker returns the abstract marker for the i-th parameter of a compiled
// expression. Dialects write markers while rendering and call BindParams once
// the whole expression is known.
func Marker(i int) string {
	return "@" + strconv.Itoa(i)
}

// BindParams replaces every @N marker in expression with placeholder(N).
// Text that is not a marker is copied unchanged.
func BindParams(expression string, placeholder func(i int) string) string {
	if !strings.Contains(expression, "@") {
		return expression
	}

	var b strings.Builder
	b.Grow(len(expression))

	for i := 0; i < len(expression); i++ {
		c := expression[i]
		if c != '@' {
			b.WriteByte(c)
			continue
		}
		j := i + 1
		for j < len(expression) && expression[j] >= '0' && expression[j] <= '9' {
			j++
		}
		if j == i+1 {
			b.WriteByte(c)
			continue
		}
		n, err := strconv.Atoi(expression[i+1 : j])
		if err != nil {
			b.WriteString(expression[i:j])
		} else {
			b.WriteString(placeholder(n))
		}
		i = j - 1
	}
	return b.String()
}

// Params collects parameters in order while a dialect renders a tree.
type Params struct {
	values []any
}

// Add appends v and returns its marker.
func (p *Params) Add(v any) string {
	p.values = append(p.values, v)
	return Marker(len(p.values) - 1)
}

// Values returns the collected parameters.
func (p *Params) Values() []any {
	return p.values
}
