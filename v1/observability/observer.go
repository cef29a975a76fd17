// Package observability defines the hook through which components report
// completed operations to metrics, tracing or audit sinks.
//
// A component accepts an optional Observer and calls ObserveOperation once per
// operation. Implementations must be safe for concurrent use and must not
// block; the caller does not wait for any side effect.
//
// Example:
//
//	type logObserver struct{ log *logger.LoggerClient }
//
//	func (o logObserver) ObserveOperation(op observability.OperationContext) {
//	    o.log.Info("operation", op.Error, map[string]interface{}{
//	        "component": op.Component,
//	        "operation": op.Operation,
//	        "duration":  op.Duration.String(),
//	    })
//	}
package observability

import "time"

// Observer receives one notification per completed operation.
type Observer interface {
	ObserveOperation(ctx OperationContext)
}

// OperationContext describes a completed operation.
type OperationContext struct {
	// Component is the reporting package, e.g. "search"
	Component string
	// Operation is the action performed, e.g. "execute" or "count"
	Operation string
	// Resource is the primary object operated on, e.g. a schema name
	Resource string
	// SubResource adds context such as a backend name
	SubResource string
	// Duration is the wall time of the operation
	Duration time.Duration
	// Error is nil on success
	Error error
	// Size is a component-defined magnitude, e.g. rows returned
	Size int64
	// Metadata carries additional attributes
	Metadata map[string]interface{}
}

// ObserverFunc adapts a function to the Observer interface.
type ObserverFunc func(ctx OperationContext)

// ObserveOperation calls f(ctx).
func (f ObserverFunc) ObserveOperation(ctx OperationContext) {
	f(ctx)
}
