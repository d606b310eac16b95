// Package observability provides in-process OpenTelemetry metrics and
// tracing for pipeline runs.
//
// Metrics are read on demand from a ManualReader:
//
//	mc := observability.NewMeterComponent(observability.DefaultMeterConfig("prodcon"))
//	_ = mc.Start(ctx)
//	defer mc.Stop(ctx)
//	// pass mc.Metrics() to buffers and workers, then
//	totals, err := mc.Snapshot(ctx)
//
// Spans are handed to span processors such as LogSpanProcessor, which writes
// each finished span to the logger:
//
//	tc := observability.NewTracerComponent(
//	    observability.DefaultTracerConfig("prodcon"),
//	    observability.NewLogSpanProcessor(log),
//	)
//	tracer := tc.Tracer()
package observability
