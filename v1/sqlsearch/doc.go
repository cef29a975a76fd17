// Package sqlsearch renders search expression trees as SQL and runs them
// through gorm.
//
// Collections become correlated EXISTS subqueries when filtering and MIN
// subqueries when ordering. Single relations become scalar subqueries, so the
// root query never joins and never duplicates rows. Every comparison is made
// on LOWER(COALESCE(CAST(column AS text), '')), which keeps NOT two-valued.
//
// Engines supply their flavour through Options; see postgres.Dialect and
// mariadb.Dialect.
//
// Example:
//
//	src := sqlsearch.NewSource(db.Model(&Article{}), postgres.Dialect)
//	page, err := search.Search[Article](ctx, searcher, src, "Article", req)
package sqlsearch
