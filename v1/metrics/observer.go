package metrics

import (
	"github.com/intellegens-hr/commons/v1/observability"
)

// SearchObserver turns observed operations into the default operation metrics.
type SearchObserver struct {
	collector MetricsCollector
}

// NewSearchObserver returns an observer recording into collector.
func NewSearchObserver(collector MetricsCollector) *SearchObserver {
	return &SearchObserver{collector: collector}
}

// ObserveOperation implements observability.Observer.
func (o *SearchObserver) ObserveOperation(ctx observability.OperationContext) {
	status := "success"
	if ctx.Error != nil {
		status = "error"
	}
	o.collector.IncrementOperations(ctx.Operation, status)
	o.collector.RecordOperationDuration(ctx.Operation, ctx.Duration)
}
