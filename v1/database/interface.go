package database

import (
	"context"

	"gorm.io/gorm"

	"github.com/intellegens-hr/commons/v1/mariadb"
	"github.com/intellegens-hr/commons/v1/postgres"
	"github.com/intellegens-hr/commons/v1/search"
)

// Client is the engine-neutral view of a SQL connection used by search
// services.
//
// Implementations:
//   - postgres.Postgres implements this interface
//   - mariadb.MariaDB implements this interface
type Client interface {
	// Search returns a search source over the table of model
	Search(model interface{}) search.Source

	// Migrate runs gorm auto-migration
	Migrate(ctx context.Context, models ...interface{}) error

	// DB gives raw GORM access for advanced use cases
	DB() *gorm.DB

	// TranslateError normalizes driver errors to the engine package's
	// sentinels (ErrRecordNotFound, ErrDuplicateKey, ...)
	TranslateError(err error) error
	IsRetryable(err error) bool

	// GracefulShutdown closes the pool
	GracefulShutdown() error
}

var (
	_ Client = (*postgres.Postgres)(nil)
	_ Client = (*mariadb.MariaDB)(nil)
)
