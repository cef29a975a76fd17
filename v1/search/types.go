package search

import (
	"bytes"
	"encoding/json"
	"strings"
)

// Logic controls how multiple keys or multiple values of a leaf combine.
type Logic string

const (
	// LogicAny - at least one key (or value) must match
	LogicAny Logic = "any"
	// LogicAll - every key (or value) must match
	LogicAll Logic = "all"
)

// normalize maps unknown or empty logic to LogicAny.
func (l Logic) normalize() Logic {
	if strings.EqualFold(string(l), string(LogicAll)) {
		return LogicAll
	}
	return LogicAny
}

// NestedLogic controls how the children of a criteria group combine.
type NestedLogic string

const (
	// NestedAnd - all children must match
	NestedAnd NestedLogic = "and"
	// NestedOr - at least one child must match
	NestedOr NestedLogic = "or"
)

func (l NestedLogic) normalize() NestedLogic {
	if strings.EqualFold(string(l), string(NestedOr)) {
		return NestedOr
	}
	return NestedAnd
}

// Operator selects how a field value is compared against a search value.
type Operator string

const (
	// OperatorExact matches when the field value equals the search value, ignoring case.
	// "exact-match" is accepted as an alias.
	OperatorExact Operator = "exact"
	// OperatorPartial matches when the field value contains the search value, ignoring case.
	// Any value other than exact, including "partial-match", selects it.
	OperatorPartial Operator = "partial"
)

func (o Operator) normalize() Operator {
	if strings.EqualFold(string(o), string(OperatorExact)) || strings.EqualFold(string(o), "exact-match") {
		return OperatorExact
	}
	return OperatorPartial
}

// FilterCriteria is one node of a filter tree.
//
// A node with keys or values is a leaf comparison. A node with nested criteria
// is a group. When both are set the leaf part is compiled as an additional
// child of the group.
//
// Example:
//
//	criteria := search.FilterCriteria{
//	    Keys:     []string{"Title", "Author.Name"},
//	    Values:   []string{"go"},
//	    Operator: search.OperatorPartial,
//	}
type FilterCriteria struct {
	// Keys are dotted field paths. Empty keys with values means full-text search.
	Keys []string `json:"keys,omitempty"`

	// KeysLogic combines the per-key comparisons (default: any)
	KeysLogic Logic `json:"keysLogic,omitempty"`

	// Values are compared against every key
	Values []string `json:"values,omitempty"`

	// ValuesLogic combines the per-value comparisons of a key (default: any)
	ValuesLogic Logic `json:"valuesLogic,omitempty"`

	// Operator is the comparison applied to each key/value pair (default: partial)
	Operator Operator `json:"operator,omitempty"`

	// Negate inverts the compiled node
	Negate bool `json:"negate,omitempty"`

	// NestedCriteria are the children of a group node
	NestedCriteria []FilterCriteria `json:"nestedCriteria,omitempty"`

	// NestedLogic combines the children (default: and)
	NestedLogic NestedLogic `json:"nestedLogic,omitempty"`
}

// isLeaf reports whether the node carries a key/value comparison.
func (c FilterCriteria) isLeaf() bool {
	return len(c.Keys) > 0 || len(c.Values) > 0
}

// OrderField is an explicit ordering key of a search request.
type OrderField struct {
	Key       string `json:"key"`
	Ascending bool   `json:"ascending"`
}

// SearchRequest is the top-level search description.
//
// Example:
//
//	req := search.SearchRequest{
//	    Type: search.NestedOr,
//	    Filters: []search.FilterCriteria{
//	        {Keys: []string{"Id"}, Values: []string{"1"}, Operator: search.OperatorExact},
//	        {Keys: []string{"Id"}, Values: []string{"2"}, Operator: search.OperatorExact},
//	    },
//	    Order: []search.OrderField{{Key: "Id", Ascending: true}},
//	    Limit: 10,
//	}
type SearchRequest struct {
	// Type combines the top-level filters (default: and)
	Type NestedLogic `json:"type,omitempty"`

	// Filters are the top-level criteria
	Filters []FilterCriteria `json:"-"`

	// Order lists explicit ordering keys, applied in sequence
	Order []OrderField `json:"order,omitempty"`

	// OrderByMatchCount ranks results by the number of matching criteria
	// before any explicit ordering key
	OrderByMatchCount bool `json:"orderByMatchCount,omitempty"`

	// Limit is the page size; zero falls back to the configured default
	Limit int `json:"limit,omitempty"`

	// Offset is the number of records to skip
	Offset int `json:"offset,omitempty"`
}

// Root returns the filter tree described by the request.
func (r SearchRequest) Root() FilterCriteria {
	return FilterCriteria{
		NestedCriteria: r.Filters,
		NestedLogic:    r.Type,
	}
}

// MarshalJSON writes filters as an array.
func (r SearchRequest) MarshalJSON() ([]byte, error) {
	type alias SearchRequest
	return json.Marshal(struct {
		alias
		Filters []FilterCriteria `json:"filters,omitempty"`
	}{
		alias:   alias(r),
		Filters: r.Filters,
	})
}

// UnmarshalJSON accepts "filters" either as a single criteria object or as an array.
func (r *SearchRequest) UnmarshalJSON(data []byte) error {
	type alias SearchRequest
	aux := struct {
		*alias
		Filters json.RawMessage `json:"filters"`
	}{
		alias: (*alias)(r),
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}

	raw := bytes.TrimSpace(aux.Filters)
	switch {
	case len(raw) == 0 || bytes.Equal(raw, []byte("null")):
		r.Filters = nil
	case raw[0] == '[':
		if err := json.Unmarshal(raw, &r.Filters); err != nil {
			return err
		}
	default:
		var single FilterCriteria
		if err := json.Unmarshal(raw, &single); err != nil {
			return err
		}
		r.Filters = []FilterCriteria{single}
	}
	return nil
}
