package mariadb

import (
	"github.com/intellegens-hr/commons/v1/search"
	"github.com/intellegens-hr/commons/v1/sqlsearch"
)

// Dialect renders search expressions for MariaDB and MySQL 8. Multi-valued
// simple fields are stored as JSON arrays and opened with JSON_TABLE.
var Dialect = sqlsearch.NewDialect(sqlsearch.Options{
	Name:     "mariadb",
	Quote:    '`',
	TextType: "CHAR",
	Contains: func(haystack, needle string) string {
		return "LOCATE(" + needle + ", " + haystack + ") > 0"
	},
	Elements: func(column, alias, value string) string {
		return "JSON_TABLE(" + column + ", '$[*]' COLUMNS (" + value + " TEXT PATH '$')) AS " + alias
	},
})

// Search returns a search source over the table of model.
func (m *MariaDB) Search(model interface{}) search.Source {
	return sqlsearch.NewSource(m.DB().Model(model), Dialect, sqlsearch.WithErrorTranslator(TranslateError))
}
