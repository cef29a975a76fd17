// Package tracer wraps the OpenTelemetry SDK with a small API for creating
// spans, recording errors and attributes, and propagating trace context.
//
// The search executor accepts a *Tracer and opens a "search.execute" span per
// request; the logger's *WithContext methods pick up the active span's IDs.
//
// Example:
//
//	t := tracer.NewClient(tracer.Config{ServiceName: "catalog-search"}, log)
//	ctx, span := t.StartSpan(ctx, "handle-request")
//	defer span.End()
//
//	headers := t.GetCarrier(ctx) // forward to downstream services
package tracer
