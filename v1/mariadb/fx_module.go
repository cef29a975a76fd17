package mariadb

import (
	"context"
	"sync"

	"go.uber.org/fx"

	"github.com/intellegens-hr/commons/v1/logger"
)

// FXModule is an fx module that provides the MariaDB database component.
// It registers the MariaDB constructor for dependency injection
// and sets up lifecycle hooks to monitor and shut down the connection.
var FXModule = fx.Module("mariadb",
	fx.Provide(
		NewMariaDBClientWithDI,
	),
	fx.Invoke(RegisterMariaDBLifecycle),
)

// MariaDBParams groups the dependencies needed to create a MariaDB client via dependency injection.
type MariaDBParams struct {
	fx.In

	Config Config
	Logger logger.Logger `optional:"true"`
}

// NewMariaDBClientWithDI creates a new MariaDB client using dependency injection.
func NewMariaDBClientWithDI(params MariaDBParams) (*MariaDB, error) {
	var log Logger
	if params.Logger != nil {
		log = params.Logger
	}
	return NewMariaDB(params.Config, log)
}

// MariaDBLifeCycleParams groups the dependencies needed for MariaDB lifecycle management.
type MariaDBLifeCycleParams struct {
	fx.In

	Lifecycle fx.Lifecycle
	MariaDB   *MariaDB
}

// RegisterMariaDBLifecycle starts connection monitoring and reconnection on
// application start and closes the pool on stop.
func RegisterMariaDBLifecycle(params MariaDBLifeCycleParams) {
	wg := &sync.WaitGroup{}
	runCtx, cancel := context.WithCancel(context.Background())

	params.Lifecycle.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			wg.Add(2)
			go func() {
				defer wg.Done()
				params.MariaDB.MonitorConnection(runCtx)
			}()
			go func() {
				defer wg.Done()
				params.MariaDB.RetryConnection(runCtx)
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			cancel()
			wg.Wait()
			return params.MariaDB.GracefulShutdown()
		},
	})
}
