// Package search compiles nested filter criteria into backend-neutral
// expression trees and runs them against pluggable sources.
//
// A search request names a registered schema and carries a tree of
// FilterCriteria. Leaves compare dotted field paths against values with an
// exact or partial, case-insensitive match; groups combine their children
// with AND or OR and may be negated. A leaf without keys searches every
// full-text eligible path of the schema.
//
// Core Features:
//   - Schema registry with case-insensitive field and path resolution
//   - Any/all quantification over to-many relations and array fields
//   - Full-text path discovery with a depth bound, cached per schema
//   - Ranking by the number of matching criteria, then explicit order keys
//   - Offset/limit paging with a total count of matching records
//   - Dialect and Source interfaces for SQL and in-memory backends
//
// Basic Usage:
//
//	reg, err := search.NewRegistry(
//	    search.NewSchema("Article", "",
//	        search.Int("Id"),
//	        search.String("Title").Searchable(),
//	        search.BelongsTo("Author", "Author", "author_id").Searchable("Name"),
//	        search.Strings("Tags"),
//	    ),
//	    search.NewSchema("Author", "", search.Int("Id"), search.String("Name")),
//	)
//	if err != nil {
//	    return err
//	}
//
//	paths := search.NewPathCache(reg, search.Config{}, log)
//	searcher := search.NewSearcher(search.NewCompiler(reg, paths), search.Config{DefaultLimit: 20}, log)
//
//	req := search.SearchRequest{
//	    Filters: []search.FilterCriteria{
//	        {Keys: []string{"Author.Name"}, Values: []string{"ana"}},
//	        {Values: []string{"golang"}},
//	    },
//	    OrderByMatchCount: true,
//	}
//	page, err := search.Search[Article](ctx, searcher, pg.Search(&Article{}), "Article", req)
//
// Expression Trees:
//
// The compiler never emits backend syntax. It produces Predicate and Value
// trees (Equals, Contains, Exists, And, Or, Not, FieldValue, Min, Indicator,
// Sum) that a Dialect renders. Parameters are written as @N markers and bound
// to the backend's placeholder syntax with BindParams.
//
// Empty Criteria:
//
// Groups without effective children and leaves without values contribute no
// condition. They are dropped from AND and OR alike, and a request made only
// of them returns every record.
//
// FX Module Integration:
//
//	app := fx.New(
//	    logger.FXModule,
//	    tracer.FXModule,
//	    metrics.FXModule,
//	    search.FXModule,
//	    fx.Provide(
//	        func() search.Config { return loadSearchConfig() },
//	        func() (*search.Registry, error) { return search.NewRegistry(schemas...) },
//	    ),
//	)
//
// Thread Safety:
//
// Registry, PathCache, Compiler and Searcher are safe for concurrent use once
// the registry has been populated.
package search
