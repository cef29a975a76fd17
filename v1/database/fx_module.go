package database

import (
	"context"
	"fmt"

	"go.uber.org/fx"

	"github.com/intellegens-hr/commons/v1/logger"
	"github.com/intellegens-hr/commons/v1/mariadb"
	"github.com/intellegens-hr/commons/v1/postgres"
)

// FXModule provides database.Client via dependency injection.
// It selects the implementation (postgres or mariadb) based on the provided Config.
//
// Usage:
//
//	app := fx.New(
//	    database.FXModule,
//	    fx.Provide(func() database.Config {
//	        return database.PostgresConfig(postgres.Config{...})
//	    }),
//	    fx.Invoke(func(db database.Client) {
//	        src := db.Search(&Article{})
//	    }),
//	)
var FXModule = fx.Module("database",
	fx.Provide(NewClientWithDI),
	fx.Invoke(RegisterDatabaseLifecycle),
)

// DatabaseParams groups the dependencies needed to create a database client
type DatabaseParams struct {
	fx.In

	Config Config
	Logger logger.Logger `optional:"true"`
}

// DatabaseLifecycleParams groups the dependencies needed for database lifecycle management
type DatabaseLifecycleParams struct {
	fx.In

	Lifecycle fx.Lifecycle
	Client    Client
	Logger    logger.Logger `optional:"true"`
}

// NewClientWithDI creates a database client selected by Config.Type.
func NewClientWithDI(params DatabaseParams) (Client, error) {
	return NewClient(params.Config, params.Logger)
}

// NewClient opens the engine named by cfg.Type. log may be nil.
func NewClient(cfg Config, log logger.Logger) (Client, error) {
	switch cfg.Type {
	case TypePostgres:
		if cfg.Postgres == nil {
			return nil, fmt.Errorf("postgres config is required when type=postgres")
		}
		var l postgres.Logger
		if log != nil {
			l = log
		}
		pg, err := postgres.NewPostgres(*cfg.Postgres, l)
		if err != nil {
			return nil, err
		}
		return pg, nil

	case TypeMariaDB:
		if cfg.MariaDB == nil {
			return nil, fmt.Errorf("mariadb config is required when type=mariadb")
		}
		var l mariadb.Logger
		if log != nil {
			l = log
		}
		db, err := mariadb.NewMariaDB(*cfg.MariaDB, l)
		if err != nil {
			return nil, err
		}
		return db, nil

	default:
		return nil, fmt.Errorf("unsupported database type: %s (must be 'postgres' or 'mariadb')", cfg.Type)
	}
}

// RegisterDatabaseLifecycle closes the client when the application stops.
func RegisterDatabaseLifecycle(params DatabaseLifecycleParams) {
	params.Lifecycle.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			if params.Logger != nil {
				params.Logger.Info("database client initialized", nil)
			}
			return nil
		},
		OnStop: func(ctx context.Context) error {
			if params.Logger != nil {
				params.Logger.Info("shutting down database client", nil)
			}
			return params.Client.GracefulShutdown()
		},
	})
}
