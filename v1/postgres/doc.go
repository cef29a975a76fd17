// Package postgres provides a PostgreSQL connection for search workloads.
//
// The package wraps a gorm connection with health monitoring, automatic
// reconnection, transactions, and error classification, and exposes each
// table as a search.Source rendered by a PostgreSQL dialect.
//
// Core Features:
//   - Connection pooling and health monitoring with reconnection
//   - Search sources over gorm models (filtering, match-count ranking, paging)
//   - Transaction support with automatic rollback on errors
//   - Standardized error types and retry classification from SQLSTATE codes
//
// Basic Usage:
//
//	import (
//		"github.com/intellegens-hr/commons/v1/postgres"
//		"github.com/intellegens-hr/commons/v1/search"
//	)
//
//	pg, err := postgres.NewPostgres(postgres.Config{
//		Connection: postgres.Connection{
//			Host:     "localhost",
//			Port:     "5432",
//			User:     "postgres",
//			Password: "password",
//			DbName:   "mydb",
//		},
//	}, log)
//	if err != nil {
//		log.Fatal("Failed to connect to database", err)
//	}
//	defer pg.GracefulShutdown()
//
//	var rows []Article
//	info, err := searcher.Execute(ctx, pg.Search(&Article{}), "Article", req, &rows)
//
// Search SQL:
//
// Equality and containment compare LOWER(COALESCE(CAST(col AS TEXT), ''))
// with the lower-cased parameter, containment through STRPOS. Collections
// become correlated EXISTS subqueries; text[] columns are read with unnest.
// Ordering by a collection field uses the MIN of its elements. The gorm model
// passed to Search must map to the table of the schema, since generated SQL
// qualifies columns with it.
//
// FX Module Integration:
//
//	app := fx.New(
//		logger.FXModule,
//		postgres.FXModule,
//		fx.Provide(func() postgres.Config { return loadPostgresConfig() }),
//	)
//	app.Run()
//
// Error Handling:
//
// Search sources translate driver errors before returning them. Use
// errors.Is with the package errors, and IsRetryable to decide whether to
// run a statement again:
//
//	_, err := searcher.Execute(ctx, pg.Search(&Article{}), "Article", req, &rows)
//	if postgres.IsRetryable(err) {
//	    // back off and retry
//	}
//
// Thread Safety:
//
// All methods are safe for concurrent use. The active connection is held in
// an atomic pointer and swapped on reconnection.
package postgres
