package observability

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"

	"github.com/kbukum/prodcon/logger"
)

// TracerName is the instrumentation scope used for pipeline spans.
const TracerName = "github.com/kbukum/prodcon/pipeline"

// Span names emitted by a pipeline run.
const (
	SpanRun       = "pipeline.run"
	SpanProduce   = "pipeline.produce"
	SpanTerminate = "pipeline.terminate"
)

// TracerConfig configures the in-process tracer provider.
type TracerConfig struct {
	// ServiceName is the name of the service.
	ServiceName string
	// ServiceVersion is the version of the service.
	ServiceVersion string
	// Environment is the deployment environment (development, staging, production).
	Environment string
	// SampleRate is the sampling rate (0.0 to 1.0).
	SampleRate float64
}

// DefaultTracerConfig returns defaults for a local run.
func DefaultTracerConfig(serviceName string) TracerConfig {
	return TracerConfig{
		ServiceName:    serviceName,
		ServiceVersion: "dev",
		Environment:    "development",
		SampleRate:     1.0,
	}
}

// NewTracerProvider creates a tracer provider that hands finished spans to
// the given processors synchronously.
func NewTracerProvider(config TracerConfig, processors ...sdktrace.SpanProcessor) (*sdktrace.TracerProvider, error) {
	res, err := newResource(config.ServiceName, config.ServiceVersion, config.Environment)
	if err != nil {
		return nil, fmt.Errorf("creating resource: %w", err)
	}

	var sampler sdktrace.Sampler
	switch {
	case config.SampleRate >= 1.0:
		sampler = sdktrace.AlwaysSample()
	case config.SampleRate <= 0:
		sampler = sdktrace.NeverSample()
	default:
		sampler = sdktrace.TraceIDRatioBased(config.SampleRate)
	}

	opts := []sdktrace.TracerProviderOption{
		sdktrace.WithResource(res),
		sdktrace.WithSampler(sampler),
	}
	for _, p := range processors {
		opts = append(opts, sdktrace.WithSpanProcessor(p))
	}
	return sdktrace.NewTracerProvider(opts...), nil
}

// newResource creates an OpenTelemetry resource with service metadata.
func newResource(serviceName, serviceVersion, environment string) (*resource.Resource, error) {
	return resource.Merge(
		resource.Default(),
		resource.NewSchemaless(
			attribute.String("service.name", serviceName),
			attribute.String("service.version", serviceVersion),
			attribute.String("environment", environment),
		),
	)
}

// Tracer returns the pipeline tracer from the global provider.
func Tracer() trace.Tracer {
	return otel.Tracer(TracerName)
}

// LogSpanProcessor writes every finished span to a logger at info level.
type LogSpanProcessor struct {
	log *logger.Logger
}

// NewLogSpanProcessor returns a processor logging through log.
func NewLogSpanProcessor(log *logger.Logger) *LogSpanProcessor {
	if log == nil {
		log = logger.Nop()
	}
	return &LogSpanProcessor{log: log}
}

var _ sdktrace.SpanProcessor = (*LogSpanProcessor)(nil)

// OnStart is a no-op.
func (p *LogSpanProcessor) OnStart(context.Context, sdktrace.ReadWriteSpan) {}

// OnEnd logs the span name, duration and attributes.
func (p *LogSpanProcessor) OnEnd(s sdktrace.ReadOnlySpan) {
	fields := logger.DurationFields(s.Name(), s.EndTime().Sub(s.StartTime()))
	fields[logger.FieldTraceID] = s.SpanContext().TraceID().String()
	fields[logger.FieldSpanID] = s.SpanContext().SpanID().String()
	for _, kv := range s.Attributes() {
		fields[string(kv.Key)] = kv.Value.AsInterface()
	}
	p.log.Info("span finished", fields)
}

// Shutdown is a no-op.
func (p *LogSpanProcessor) Shutdown(context.Context) error { return nil }

// ForceFlush is a no-op.
func (p *LogSpanProcessor) ForceFlush(context.Context) error { return nil }
