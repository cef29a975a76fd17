// Package mariadb provides a MariaDB/MySQL connection for search workloads.
//
// It mirrors the postgres package: a gorm connection with health monitoring
// and reconnection, transactions, error classification from server error
// numbers, and search sources rendered by a MariaDB dialect.
//
// Basic Usage:
//
//	db, err := mariadb.NewMariaDB(mariadb.Config{
//		Connection: mariadb.Connection{
//			Host:      "localhost",
//			Port:      "3306",
//			User:      "root",
//			Password:  "password",
//			DbName:    "mydb",
//			ParseTime: true,
//		},
//	}, log)
//	if err != nil {
//		log.Fatal("Failed to connect to database", err)
//	}
//	defer db.GracefulShutdown()
//
//	var rows []Article
//	info, err := searcher.Execute(ctx, db.Search(&Article{}), "Article", req, &rows)
//
// Search SQL:
//
// Comparisons cast columns to CHAR and lower-case both sides; containment uses
// LOCATE. Multi-valued simple fields must be JSON array columns, which are
// opened with JSON_TABLE (MariaDB 10.6+, MySQL 8+).
package mariadb
