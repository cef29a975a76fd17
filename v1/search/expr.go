package search

// Path is a chain of resolved segments relative to the current scope: the
// root record, or the element of the innermost enclosing collection.
// It never contains a collection segment except as the last element of an
// Exists or Min collection path. An empty path inside a collection of simple
// values refers to the element itself.
type Path []Segment

// Predicate is a boolean node of the backend-neutral expression tree.
type Predicate interface {
	isPredicate()
}

// Value is a numeric or scalar node of the backend-neutral expression tree,
// usable as an ordering key.
type Value interface {
	isValue()
}

// Equals holds when the field value equals Value, ignoring case.
type Equals struct {
	Field Path
	Value string
}

// Contains holds when the field value contains Value, ignoring case.
type Contains struct {
	Field Path
	Value string
}

// Exists holds when any element of Collection satisfies Where.
// Where is expressed relative to the element.
type Exists struct {
	Collection Path
	Where      Predicate
}

// And holds when every term holds.
type And struct {
	Terms []Predicate
}

// Or holds when any term holds.
type Or struct {
	Terms []Predicate
}

// Not inverts its term.
type Not struct {
	Term Predicate
}

func (Equals) isPredicate()   {}
func (Contains) isPredicate() {}
func (Exists) isPredicate()   {}
func (And) isPredicate()      {}
func (Or) isPredicate()       {}
func (Not) isPredicate()      {}

// FieldValue is the scalar value of a field.
type FieldValue struct {
	Field Path
}

// Min is the smallest Of across the elements of Collection.
type Min struct {
	Collection Path
	Of         Value
}

// Indicator is 1 when When holds and 0 otherwise. Inverted swaps the branches.
type Indicator struct {
	When     Predicate
	Inverted bool
}

// Sum adds its terms.
type Sum struct {
	Terms []Value
}

func (FieldValue) isValue() {}
func (Min) isValue()        {}
func (Indicator) isValue()  {}
func (Sum) isValue()        {}

// Negate flips the polarity of every indicator below v. Applying it twice
// yields the original tree.
func Negate(v Value) Value {
	switch n := v.(type) {
	case Indicator:
		n.Inverted = !n.Inverted
		return n
	case Sum:
		terms := make([]Value, len(n.Terms))
		for i, t := range n.Terms {
			terms[i] = Negate(t)
		}
		return Sum{Terms: terms}
	}
	return v
}

// and combines predicates, skipping nil terms. A single term is returned as is.
func and(terms ...Predicate) Predicate {
	return combine(terms, func(ts []Predicate) Predicate { return And{Terms: ts} })
}

// or combines predicates, skipping nil terms. A single term is returned as is.
func or(terms ...Predicate) Predicate {
	return combine(terms, func(ts []Predicate) Predicate { return Or{Terms: ts} })
}

func combine(terms []Predicate, group func([]Predicate) Predicate) Predicate {
	kept := make([]Predicate, 0, len(terms))
	for _, t := range terms {
		if t != nil {
			kept = append(kept, t)
		}
	}
	switch len(kept) {
	case 0:
		return nil
	case 1:
		return kept[0]
	}
	return group(kept)
}

// CompiledExpression is the text of a tree rendered for one backend, with
// its positional parameters.
type CompiledExpression struct {
	Expression string
	Params     []any
}

// Empty reports whether there is nothing to apply.
func (c CompiledExpression) Empty() bool {
	return c.Expression == ""
}

// Dialect renders expression trees to a backend's query language.
// Implementations emit parameters as BindParams markers and bind them to
// their concrete syntax before returning.
type Dialect interface {
	// Name identifies the backend, e.g. "postgres"
	Name() string

	// Predicate renders a boolean tree
	Predicate(p Predicate) (CompiledExpression, error)

	// Value renders a numeric or scalar tree
	Value(v Value) (CompiledExpression, error)
}
