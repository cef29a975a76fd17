package postgres

import (
	"github.com/intellegens-hr/commons/v1/search"
	"github.com/intellegens-hr/commons/v1/sqlsearch"
)

// Dialect renders search expressions as PostgreSQL. Array columns are
// searched through unnest.
var Dialect = sqlsearch.NewDialect(sqlsearch.Options{
	Name:     "postgres",
	Quote:    '"',
	TextType: "TEXT",
	Contains: func(haystack, needle string) string {
		return "STRPOS(" + haystack + ", " + needle + ") > 0"
	},
	Elements: func(column, alias, value string) string {
		return "unnest(" + column + ") AS " + alias + "(" + value + ")"
	},
})

// Search returns a search source over the table of model. The model's table
// must be the table of the schema searched against.
//
// Example:
//
//	var rows []Article
//	info, err := searcher.Execute(ctx, pg.Search(&Article{}), "Article", req, &rows)
func (p *Postgres) Search(model interface{}) search.Source {
	return sqlsearch.NewSource(p.DB().Model(model), Dialect, sqlsearch.WithErrorTranslator(TranslateError))
}
