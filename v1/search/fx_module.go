package search

import (
	"go.uber.org/fx"

	"github.com/intellegens-hr/commons/v1/logger"
	"github.com/intellegens-hr/commons/v1/observability"
	"github.com/intellegens-hr/commons/v1/tracer"
)

// FXModule provides the search components. The application supplies a
// *Registry and a Config; logger, tracer and observer are picked up when
// present in the container.
//
// Usage:
//
//	app := fx.New(
//	    logger.FXModule,
//	    search.FXModule,
//	    fx.Provide(
//	        func() search.Config { return search.Config{DefaultLimit: 20, MaxLimit: 200} },
//	        func() (*search.Registry, error) { return search.NewRegistry(articleSchema, authorSchema) },
//	    ),
//	)
var FXModule = fx.Module("search",
	fx.Provide(
		NewPathCacheWithDI,
		NewCompiler,
		NewSearcherWithDI,
	),
)

// SearchParams groups the dependencies of the search components.
type SearchParams struct {
	fx.In

	Config   Config
	Registry *Registry
	Logger   logger.Logger          `optional:"true"`
	Tracer   *tracer.Tracer         `optional:"true"`
	Observer observability.Observer `optional:"true"`
}

// NewPathCacheWithDI creates the full-text path cache. It validates the
// registry first so that dangling record targets fail at startup.
func NewPathCacheWithDI(params SearchParams) (*PathCache, error) {
	if err := params.Registry.Validate(); err != nil {
		return nil, err
	}
	return NewPathCache(params.Registry, params.Config, params.Logger), nil
}

// NewSearcherWithDI creates the searcher with whatever observability
// collaborators the container holds.
func NewSearcherWithDI(params SearchParams, compiler *Compiler) *Searcher {
	s := NewSearcher(compiler, params.Config, params.Logger)
	if params.Tracer != nil {
		s.WithTracer(params.Tracer)
	}
	if params.Observer != nil {
		s.WithObserver(params.Observer)
	}
	return s
}
