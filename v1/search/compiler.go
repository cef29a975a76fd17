package search

import (
	"strings"
)

// never is the predicate of a full-text leaf on a schema without eligible
// fields. An Or with no terms holds for no record.
var never Predicate = Or{}

// Compiler turns criteria trees into backend-neutral expression trees.
// It holds no per-call state and is safe for concurrent use.
type Compiler struct {
	registry *Registry
	paths    *PathCache
}

// NewCompiler creates a compiler resolving paths against reg. paths supplies
// the full-text key set for criteria without keys.
func NewCompiler(reg *Registry, paths *PathCache) *Compiler {
	return &Compiler{registry: reg, paths: paths}
}

// Registry returns the registry the compiler resolves against.
func (c *Compiler) Registry() *Registry {
	return c.registry
}

// Filter compiles fc into a predicate over records of s. A nil predicate with
// a nil error means the criteria filter nothing out.
func (c *Compiler) Filter(s *Schema, fc FilterCriteria) (Predicate, error) {
	n, err := c.build(s, fc)
	if err != nil {
		return nil, err
	}
	return n.predicate(), nil
}

// MatchCount compiles fc into a hit-count value: the number of leaf criteria a
// record satisfies. A nil value means there is nothing to count.
func (c *Compiler) MatchCount(s *Schema, fc FilterCriteria) (Value, error) {
	n, err := c.build(s, fc)
	if err != nil {
		return nil, err
	}
	return n.count(), nil
}

// OrderValue compiles a dotted path into a scalar sort key. Collections on the
// path reduce to the minimum across their elements.
func (c *Compiler) OrderValue(s *Schema, key string) (Value, error) {
	segs, err := Resolve(c.registry, s, key)
	if err != nil {
		return nil, err
	}
	return scalar(segs), nil
}

// node is a criteria tree with leaves already resolved. It is shared by the
// boolean and the hit-count renderings.
type node struct {
	leaf     Predicate
	children []*node
	logic    NestedLogic
	negate   bool
}

func (c *Compiler) build(s *Schema, fc FilterCriteria) (*node, error) {
	if len(fc.Keys) == 0 && len(fc.Values) > 0 {
		fc.Keys = c.fullTextKeys(s)
		fc.KeysLogic = LogicAny
		if len(fc.Keys) == 0 && len(fc.NestedCriteria) == 0 {
			return &node{leaf: never, negate: fc.Negate}, nil
		}
	}

	nested := fc.NestedCriteria
	if fc.isLeaf() && len(nested) > 0 {
		nested = append(append([]FilterCriteria(nil), nested...), FilterCriteria{
			Keys:        fc.Keys,
			KeysLogic:   fc.KeysLogic,
			Values:      fc.Values,
			ValuesLogic: fc.ValuesLogic,
			Operator:    fc.Operator,
		})
	}

	n := &node{logic: fc.NestedLogic.normalize(), negate: fc.Negate}
	if len(nested) > 0 {
		for _, child := range nested {
			cn, err := c.build(s, child)
			if err != nil {
				return nil, err
			}
			n.children = append(n.children, cn)
		}
		return n, nil
	}

	leaf, err := c.leaf(s, fc)
	if err != nil {
		return nil, err
	}
	n.leaf = leaf
	return n, nil
}

func (c *Compiler) fullTextKeys(s *Schema) []string {
	if c.paths == nil {
		return nil
	}
	return c.paths.Paths(s)
}

// leaf compares every key against every value and combines the results.
func (c *Compiler) leaf(s *Schema, fc FilterCriteria) (Predicate, error) {
	if len(fc.Values) == 0 {
		return nil, nil
	}

	operator := fc.Operator.normalize()
	compare := func(value string) func(Path) Predicate {
		return func(p Path) Predicate {
			if operator == OperatorExact {
				return Equals{Field: p, Value: value}
			}
			return Contains{Field: p, Value: value}
		}
	}

	keys := make([]Predicate, 0, len(fc.Keys))
	for _, key := range fc.Keys {
		segs, err := Resolve(c.registry, s, strings.TrimSpace(key))
		if err != nil {
			return nil, err
		}

		values := make([]Predicate, 0, len(fc.Values))
		for _, v := range fc.Values {
			values = append(values, quantify(segs, compare(v)))
		}
		keys = append(keys, join(fc.ValuesLogic.normalize(), values))
	}
	return join(fc.KeysLogic.normalize(), keys), nil
}

func join(logic Logic, terms []Predicate) Predicate {
	if logic == LogicAll {
		return and(terms...)
	}
	return or(terms...)
}

// quantify wraps leaf in an Exists for every collection segment on the path,
// so each comparison is evaluated against one element at a time.
func quantify(segs Path, leaf func(Path) Predicate) Predicate {
	for i, seg := range segs {
		if seg.Collection {
			return Exists{Collection: segs[:i+1], Where: quantify(segs[i+1:], leaf)}
		}
	}
	return leaf(segs)
}

// scalar is the ordering counterpart of quantify.
func scalar(segs Path) Value {
	for i, seg := range segs {
		if seg.Collection {
			return Min{Collection: segs[:i+1], Of: scalar(segs[i+1:])}
		}
	}
	return FieldValue{Field: segs}
}

func (n *node) predicate() Predicate {
	var p Predicate
	if n.children == nil {
		p = n.leaf
	} else {
		terms := make([]Predicate, 0, len(n.children))
		for _, child := range n.children {
			terms = append(terms, child.predicate())
		}
		if n.logic == NestedOr {
			p = or(terms...)
		} else {
			p = and(terms...)
		}
	}

	if p != nil && n.negate {
		if inner, ok := p.(Not); ok {
			return inner.Term
		}
		return Not{Term: p}
	}
	return p
}

func (n *node) count() Value {
	var v Value
	if n.children == nil {
		if n.leaf == nil {
			return nil
		}
		v = Indicator{When: n.leaf}
	} else {
		terms := make([]Value, 0, len(n.children))
		for _, child := range n.children {
			if cv := child.count(); cv != nil {
				terms = append(terms, cv)
			}
		}
		switch len(terms) {
		case 0:
			return nil
		case 1:
			v = terms[0]
		default:
			v = Sum{Terms: terms}
		}
	}

	if n.negate {
		return Negate(v)
	}
	return v
}
