package observability

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"

	apperrors "github.com/kbukum/prodcon/errors"
)

// Instrument names recorded by PipelineMetrics.
const (
	MetricBufferPuts       = "prodcon.buffer.puts"
	MetricBufferGets       = "prodcon.buffer.gets"
	MetricBufferWaitsFull  = "prodcon.buffer.waits.full"
	MetricBufferWaitsEmpty = "prodcon.buffer.waits.empty"
	MetricItemsProduced    = "prodcon.items.produced"
	MetricItemsConsumed    = "prodcon.items.consumed"
	MetricRunDuration      = "prodcon.run.duration"
)

// Attribute keys attached to pipeline instruments and spans.
const (
	AttrBufferKind = "buffer.kind"
	AttrWorkerID   = "worker.id"
	AttrRunID      = "run.id"
	AttrCapacity   = "buffer.capacity"
	AttrProducers  = "pipeline.producers"
	AttrConsumers  = "pipeline.consumers"
	AttrItems      = "pipeline.items"
)

// MeterConfig configures the in-process meter provider.
type MeterConfig struct {
	// ServiceName is the name of the service.
	ServiceName string
	// ServiceVersion is the version of the service.
	ServiceVersion string
	// Environment is the deployment environment (development, staging, production).
	Environment string
}

// DefaultMeterConfig returns defaults for a local run.
func DefaultMeterConfig(serviceName string) MeterConfig {
	return MeterConfig{
		ServiceName:    serviceName,
		ServiceVersion: "dev",
		Environment:    "development",
	}
}

// NewMeterProvider creates a meter provider read on demand through the
// returned ManualReader. Nothing is exported over the network.
func NewMeterProvider(config MeterConfig) (*sdkmetric.MeterProvider, *sdkmetric.ManualReader, error) {
	res, err := newResource(config.ServiceName, config.ServiceVersion, config.Environment)
	if err != nil {
		return nil, nil, fmt.Errorf("creating resource: %w", err)
	}

	reader := sdkmetric.NewManualReader()
	mp := sdkmetric.NewMeterProvider(
		sdkmetric.WithReader(reader),
		sdkmetric.WithResource(res),
	)
	return mp, reader, nil
}

// Meter returns a named meter from the global provider.
func Meter(name string) metric.Meter {
	return otel.Meter(name)
}

// PipelineMetrics holds the instruments recorded by buffers and workers.
// A nil *PipelineMetrics is valid and records nothing.
type PipelineMetrics struct {
	puts        metric.Int64Counter
	gets        metric.Int64Counter
	waitsFull   metric.Int64Counter
	waitsEmpty  metric.Int64Counter
	produced    metric.Int64Counter
	consumed    metric.Int64Counter
	runDuration metric.Float64Histogram
}

// NewPipelineMetrics creates pipeline instruments on the given meter.
func NewPipelineMetrics(meter metric.Meter) (*PipelineMetrics, error) {
	var err error
	counter := func(name, desc string) metric.Int64Counter {
		if err != nil {
			return nil
		}
		var c metric.Int64Counter
		c, err = meter.Int64Counter(name, metric.WithDescription(desc))
		if err != nil {
			err = fmt.Errorf("creating %s counter: %w", name, err)
		}
		return c
	}

	m := &PipelineMetrics{
		puts:       counter(MetricBufferPuts, "Items put into the buffer"),
		gets:       counter(MetricBufferGets, "Items taken from the buffer"),
		waitsFull:  counter(MetricBufferWaitsFull, "Times a put waited on a full buffer"),
		waitsEmpty: counter(MetricBufferWaitsEmpty, "Times a get waited on an empty buffer"),
		produced:   counter(MetricItemsProduced, "Data items put by producers"),
		consumed:   counter(MetricItemsConsumed, "Data items delivered to the sink by consumers"),
	}
	if err != nil {
		return nil, err
	}

	m.runDuration, err = meter.Float64Histogram(MetricRunDuration,
		metric.WithDescription("Duration of a full pipeline run in seconds"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating %s histogram: %w", MetricRunDuration, err)
	}

	return m, nil
}

// RecordPut counts one item entering a buffer of the given kind.
func (m *PipelineMetrics) RecordPut(kind string) {
	if m == nil {
		return
	}
	m.puts.Add(context.Background(), 1, kindAttr(kind))
}

// RecordGet counts one item leaving a buffer of the given kind.
func (m *PipelineMetrics) RecordGet(kind string) {
	if m == nil {
		return
	}
	m.gets.Add(context.Background(), 1, kindAttr(kind))
}

// RecordWaitFull counts a put that found the buffer full.
func (m *PipelineMetrics) RecordWaitFull(kind string) {
	if m == nil {
		return
	}
	m.waitsFull.Add(context.Background(), 1, kindAttr(kind))
}

// RecordWaitEmpty counts a get that found the buffer empty.
func (m *PipelineMetrics) RecordWaitEmpty(kind string) {
	if m == nil {
		return
	}
	m.waitsEmpty.Add(context.Background(), 1, kindAttr(kind))
}

// RecordProduced counts a data item put by producer worker.
func (m *PipelineMetrics) RecordProduced(worker int) {
	if m == nil {
		return
	}
	m.produced.Add(context.Background(), 1, workerAttr(worker))
}

// RecordConsumed counts a data item handed to the sink by consumer worker.
func (m *PipelineMetrics) RecordConsumed(worker int) {
	if m == nil {
		return
	}
	m.consumed.Add(context.Background(), 1, workerAttr(worker))
}

// RecordRun records the duration of a completed run.
func (m *PipelineMetrics) RecordRun(ctx context.Context, kind string, duration time.Duration) {
	if m == nil {
		return
	}
	m.runDuration.Record(ctx, duration.Seconds(), kindAttr(kind))
}

// Snapshot collects the reader and sums every int64 counter by instrument
// name across attribute sets.
func Snapshot(ctx context.Context, reader sdkmetric.Reader) (map[string]int64, error) {
	var rm metricdata.ResourceMetrics
	if err := reader.Collect(ctx, &rm); err != nil {
		return nil, apperrors.Internal(err).WithDetail("operation", "collect metrics")
	}

	out := make(map[string]int64)
	for _, sm := range rm.ScopeMetrics {
		for _, mt := range sm.Metrics {
			sum, ok := mt.Data.(metricdata.Sum[int64])
			if !ok {
				continue
			}
			for _, dp := range sum.DataPoints {
				out[mt.Name] += dp.Value
			}
		}
	}
	return out, nil
}

func kindAttr(kind string) metric.MeasurementOption {
	return metric.WithAttributes(attribute.String(AttrBufferKind, kind))
}

func workerAttr(worker int) metric.MeasurementOption {
	return metric.WithAttributes(attribute.Int(AttrWorkerID, worker))
}
