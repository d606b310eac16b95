package observability

import (
	"context"
	"fmt"
	"sync"

	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"

	"github.com/kbukum/prodcon/component"
	apperrors "github.com/kbukum/prodcon/errors"
)

// MeterComponent owns a meter provider with a manual reader and the
// pipeline instruments created on it.
type MeterComponent struct {
	cfg MeterConfig

	mu       sync.RWMutex
	provider *sdkmetric.MeterProvider
	reader   *sdkmetric.ManualReader
	metrics  *PipelineMetrics
}

var (
	_ component.Component   = (*MeterComponent)(nil)
	_ component.Describable = (*MeterComponent)(nil)
)

// NewMeterComponent creates a meter component. Call Start before Metrics.
func NewMeterComponent(cfg MeterConfig) *MeterComponent {
	return &MeterComponent{cfg: cfg}
}

// Name implements component.Component.
func (c *MeterComponent) Name() string { return "metrics" }

// Start creates the provider and the pipeline instruments.
func (c *MeterComponent) Start(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.provider != nil {
		return nil
	}
	mp, reader, err := NewMeterProvider(c.cfg)
	if err != nil {
		return err
	}
	metrics, err := NewPipelineMetrics(mp.Meter(TracerName))
	if err != nil {
		_ = mp.Shutdown(ctx)
		return err
	}
	c.provider, c.reader, c.metrics = mp, reader, metrics
	return nil
}

// Stop shuts the provider down.
func (c *MeterComponent) Stop(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.provider == nil {
		return nil
	}
	err := c.provider.Shutdown(ctx)
	c.provider = nil
	return err
}

// Health implements component.Component.
func (c *MeterComponent) Health(ctx context.Context) component.Health {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.provider == nil {
		return component.Health{Name: c.Name(), Status: component.StatusUnhealthy, Message: "not started"}
	}
	return component.Health{Name: c.Name(), Status: component.StatusHealthy}
}

// Describe implements component.Describable.
func (c *MeterComponent) Describe() component.Description {
	return component.Description{Name: "Metrics", Type: "metrics", Details: "manual reader, in-process"}
}

// Metrics returns the pipeline instruments, or nil before Start.
func (c *MeterComponent) Metrics() *PipelineMetrics {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.metrics
}

// Snapshot returns the current counter totals by instrument name.
func (c *MeterComponent) Snapshot(ctx context.Context) (map[string]int64, error) {
	c.mu.RLock()
	reader := c.reader
	c.mu.RUnlock()

	if reader == nil {
		return nil, apperrors.Conflict("metrics component not started")
	}
	return Snapshot(ctx, reader)
}

// TracerComponent owns a tracer provider feeding the configured span
// processors.
type TracerComponent struct {
	cfg        TracerConfig
	processors []sdktrace.SpanProcessor

	mu       sync.RWMutex
	provider *sdktrace.TracerProvider
}

var (
	_ component.Component   = (*TracerComponent)(nil)
	_ component.Describable = (*TracerComponent)(nil)
)

// NewTracerComponent creates a tracer component.
func NewTracerComponent(cfg TracerConfig, processors ...sdktrace.SpanProcessor) *TracerComponent {
	return &TracerComponent{cfg: cfg, processors: processors}
}

// Name implements component.Component.
func (c *TracerComponent) Name() string { return "tracing" }

// Start creates the tracer provider.
func (c *TracerComponent) Start(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.provider != nil {
		return nil
	}
	tp, err := NewTracerProvider(c.cfg, c.processors...)
	if err != nil {
		return err
	}
	c.provider = tp
	return nil
}

// Stop flushes and shuts the provider down.
func (c *TracerComponent) Stop(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.provider == nil {
		return nil
	}
	err := c.provider.Shutdown(ctx)
	c.provider = nil
	return err
}

// Health implements component.Component.
func (c *TracerComponent) Health(ctx context.Context) component.Health {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.provider == nil {
		return component.Health{Name: c.Name(), Status: component.StatusUnhealthy, Message: "not started"}
	}
	return component.Health{Name: c.Name(), Status: component.StatusHealthy}
}

// Describe implements component.Describable.
func (c *TracerComponent) Describe() component.Description {
	return component.Description{
		Name:    "Tracing",
		Type:    "tracing",
		Details: fmt.Sprintf("sample_rate=%.2f processors=%d", c.cfg.SampleRate, len(c.processors)),
	}
}

// Tracer returns the pipeline tracer, or a no-op tracer before Start.
func (c *TracerComponent) Tracer() trace.Tracer {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.provider == nil {
		return noop.NewTracerProvider().Tracer(TracerName)
	}
	return c.provider.Tracer(TracerName)
}
