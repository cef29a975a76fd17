package tracer

import (
	"context"

	"go.uber.org/fx"

	"github.com/intellegens-hr/commons/v1/logger"
)

// FXModule provides a Uber FX module that configures distributed tracing for your application.
// This module registers the tracer client with the dependency injection system and
// sets up proper lifecycle management to ensure spans are flushed on shutdown.
//
// Usage:
//
//	app := fx.New(
//	    logger.FXModule,
//	    tracer.FXModule,
//	    // other modules...
//	)
//	app.Run()
var FXModule = fx.Module("tracer",
	fx.Provide(
		NewClientWithDI,
	),
	fx.Invoke(RegisterTracerLifecycle),
)

// NewClientWithDI creates the tracer from the container's Config and logger.
func NewClientWithDI(cfg Config, log logger.Logger) *Tracer {
	return NewClient(cfg, log)
}

// RegisterTracerLifecycle registers shutdown hooks for the tracer with the FX lifecycle.
// The OnStop hook shuts down the tracer provider, flushing pending spans to the exporter.
//
// This function is automatically invoked by the FXModule and normally doesn't need
// to be called directly.
func RegisterTracerLifecycle(lc fx.Lifecycle, tracer *Tracer) {
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			if tracer == nil || tracer.tracer == nil {
				return nil
			}
			if tracer.logger != nil {
				tracer.logger.Info("shutting down tracer", nil, nil)
			}
			return tracer.tracer.Shutdown(ctx)
		},
	})
}
