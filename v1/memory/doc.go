// Package memory is a search backend over in-memory records.
//
// Expression trees are rendered to expr-lang programs (github.com/expr-lang/expr)
// and evaluated per record. It serves tests, fixtures and small reference data
// sets that do not warrant a database round trip.
//
// Example:
//
//	src := memory.NewSource([]memory.Record{
//	    {"Id": 1, "Text": "abc123"},
//	    {"Id": 2, "Text": "xyz"},
//	})
//	page, err := search.Search[memory.Record](ctx, searcher, src, "Note", req)
//
// Large record sets can be filtered on an ants worker pool:
//
//	pool, _ := ants.NewPool(runtime.NumCPU())
//	defer pool.Release()
//	src := memory.NewSource(records, memory.WithPool(pool, 4096))
package memory
