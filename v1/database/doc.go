// Package database selects a SQL engine for search services by configuration.
//
// The Client interface covers what a search service needs from a connection:
// a search source per table, migrations, error classification, and shutdown.
// Both postgres.Postgres and mariadb.MariaDB implement it.
//
// # Basic Usage
//
//	import (
//	    "github.com/intellegens-hr/commons/v1/database"
//	    "github.com/intellegens-hr/commons/v1/postgres"
//	)
//
//	type ArticleRepository struct {
//	    db       database.Client
//	    searcher *search.Searcher
//	}
//
//	func (r *ArticleRepository) Search(ctx context.Context, req search.SearchRequest) (search.Page[Article], error) {
//	    return search.Search[Article](ctx, r.searcher, r.db.Search(&Article{}), "Article", req)
//	}
//
//	client, err := database.NewClient(database.PostgresConfig(postgres.Config{...}), log)
//
// # Using with Fx Dependency Injection
//
//	app := fx.New(
//	    logger.FXModule,
//	    database.FXModule,
//	    fx.Provide(func() database.Config {
//	        return database.MariaDBConfig(loadMariaDBConfig())
//	    }),
//	    fx.Invoke(func(db database.Client) {
//	        // Use db...
//	    }),
//	)
//
// # Database-Specific Behavior
//
// Multi-valued simple fields are text[] columns on PostgreSQL and JSON array
// columns on MariaDB. Errors from TranslateError wrap the engine package's
// sentinels, so compare with postgres.ErrDuplicateKey or
// mariadb.ErrDuplicateKey as appropriate.
package database
