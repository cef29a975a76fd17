// Package logger wraps zap with the small structured logging surface used
// across this module.
//
// Every component that logs (the search compiler's path cache, the
// Searcher, the postgres and mariadb clients) accepts a narrow Logger-shaped
// interface. *LoggerClient satisfies all of them, so one instance is built at
// startup and handed to each constructor.
//
// Core Features:
//   - Leveled logging (debug, info, warning, error) with key-value fields
//   - An optional error argument on every call, logged under the "error" key
//   - *WithContext variants that attach trace_id and span_id from the
//     active OpenTelemetry span when EnableTracing is set
//   - A constant "service" field taken from Config.ServiceName
//   - NewFromZap for callers that already own a *zap.Logger (tests, CLIs)
//
// # Basic Usage
//
//	import "github.com/intellegens-hr/commons/v1/logger"
//
//	log := logger.NewLoggerClient(logger.Config{
//		Level:         logger.Info,
//		ServiceName:   "catalog-search",
//		EnableTracing: true,
//	})
//
//	log.Info("registry loaded", nil, map[string]interface{}{
//		"schemas": 4,
//	})
//
//	// Inside a traced request the entry carries trace_id and span_id.
//	log.WarnWithContext(ctx, "limit clamped", nil, map[string]interface{}{
//		"requested": 500,
//		"limit":     200,
//	})
//
// Wiring into the search components:
//
//	paths := search.NewPathCache(reg, cfg, log)
//	searcher := search.NewSearcher(search.NewCompiler(reg, paths), cfg, log)
//
// In tests, an observer core keeps entries in memory:
//
//	core, logs := observer.New(zapcore.DebugLevel)
//	log := logger.NewFromZap(zap.New(core), false)
//	// ... run code under test, then inspect logs.All()
//
// # FX Module Integration
//
// FXModule provides *LoggerClient and the Logger interface, and flushes the
// zap core on stop. search.FXModule picks the Logger up automatically:
//
//	app := fx.New(
//		logger.FXModule,
//		search.FXModule,
//		fx.Provide(
//			func() logger.Config { return logger.Config{Level: logger.Debug} },
//			func() search.Config { return search.Config{DefaultLimit: 20} },
//			func() (*search.Registry, error) { return search.NewRegistry(schemas...) },
//		),
//	)
//
// # Configuration
//
// Config is loaded from YAML or environment variables:
//
//	ZAP_LOGGER_LEVEL=debug
//	LOGGER_SERVICE_NAME=catalog-search
//	LOGGER_ENABLE_TRACING=true
//
// An unrecognised level falls back to info.
//
// # Thread Safety
//
// A *LoggerClient is safe for concurrent use; concurrent Searcher calls can
// share a single instance.
package logger
