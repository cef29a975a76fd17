package search

import (
	"context"
)

// Source is a queryable data set the executor narrows down.
//
// Every chain method returns a new Source and leaves the receiver unchanged,
// so a filtered source can be both counted and paged.
//
//go:generate mockgen -source=source.go -destination=mock_source.go -package=search
type Source interface {
	// Dialect returns the code generator for this source's query language
	Dialect() Dialect

	// Where narrows the source to records satisfying the compiled predicate
	Where(expr CompiledExpression) Source

	// OrderBy replaces the ordering of the source with the given keys
	OrderBy(keys ...OrderKey) Source

	// Offset skips the first n records
	Offset(n int) Source

	// Limit caps the number of records returned
	Limit(n int) Source

	// Count returns the number of records without materializing them
	Count(ctx context.Context) (int64, error)

	// Find materializes the records into dest
	Find(ctx context.Context, dest any) error
}

// OrderKey is one compiled ordering key.
type OrderKey struct {
	Expr       CompiledExpression
	Descending bool
}
