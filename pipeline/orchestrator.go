package pipeline

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/kbukum/prodcon/buffer"
	"github.com/kbukum/prodcon/errors"
	"github.com/kbukum/prodcon/logger"
	"github.com/kbukum/prodcon/observability"
	"github.com/kbukum/prodcon/validation"
)

// State is a phase of an Orchestrator run.
type State int

const (
	StateNotStarted State = iota
	StateRunningProducersAndConsumers
	StateDraining
	StateTerminatingConsumers
	StateDone
)

func (s State) String() string {
	switch s {
	case StateNotStarted:
		return "NOT_STARTED"
	case StateRunningProducersAndConsumers:
		return "RUNNING_PRODUCERS_AND_CONSUMERS"
	case StateDraining:
		return "DRAINING"
	case StateTerminatingConsumers:
		return "TERMINATING_CONSUMERS"
	case StateDone:
		return "DONE"
	default:
		return "UNKNOWN"
	}
}

// Config describes one pipeline run.
type Config struct {
	Buffer        buffer.Kind
	Capacity      int
	Producers     int
	Consumers     int
	ProducerDelay time.Duration
	ConsumerDelay time.Duration
}

// DefaultConfig returns a queue buffer of capacity 2 with one producer and
// one consumer.
func DefaultConfig() Config {
	return Config{
		Buffer:    buffer.KindQueue,
		Capacity:  2,
		Producers: 1,
		Consumers: 1,
	}
}

// Validate reports the first unusable setting as an INVALID_CONFIG error.
func (c Config) Validate() error {
	if _, err := buffer.ParseKind(c.Buffer.String()); err != nil {
		return err
	}
	if err := validation.New().
		Positive("capacity", c.Capacity).
		Min("producers", c.Producers, 1).
		Min("consumers", c.Consumers, 1).
		Custom(c.ProducerDelay >= 0, "producer_delay", "must not be negative").
		Custom(c.ConsumerDelay >= 0, "consumer_delay", "must not be negative").
		Validate(); err != nil {
		return err
	}
	return nil
}

// Option configures an Orchestrator.
type Option[T any] func(*Orchestrator[T])

// WithSink sets the sink consumers deliver into. Run returns a snapshot of
// it, including anything it held before the run.
func WithSink[T any](s Sink[T]) Option[T] {
	return func(o *Orchestrator[T]) { o.sink = s }
}

// WithLogger sets the logger for the run and its workers.
func WithLogger[T any](l *logger.Logger) Option[T] {
	return func(o *Orchestrator[T]) { o.log = l }
}

// WithMetrics sets the instruments shared by the buffer and the workers.
func WithMetrics[T any](m *observability.PipelineMetrics) Option[T] {
	return func(o *Orchestrator[T]) { o.metrics = m }
}

// WithTracer sets the tracer for run, produce and terminate spans.
func WithTracer[T any](t trace.Tracer) Option[T] {
	return func(o *Orchestrator[T]) { o.tracer = t }
}

// WithStateHook registers fn to observe every state transition. It runs on
// the goroutine calling Run, outside any lock.
func WithStateHook[T any](fn func(from, to State)) Option[T] {
	return func(o *Orchestrator[T]) { o.hook = fn }
}

// Orchestrator runs producers and consumers over one shared buffer and
// terminates them cleanly. An Orchestrator runs once.
type Orchestrator[T any] struct {
	cfg     Config
	sink    Sink[T]
	log     *logger.Logger
	metrics *observability.PipelineMetrics
	tracer  trace.Tracer
	hook    func(from, to State)

	mu    sync.Mutex
	state State
	used  bool
	runID string
}

// New validates cfg and returns an orchestrator ready to Run.
func New[T any](cfg Config, opts ...Option[T]) (*Orchestrator[T], error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	cfg.Buffer, _ = buffer.ParseKind(cfg.Buffer.String())

	o := &Orchestrator[T]{cfg: cfg}
	for _, opt := range opts {
		opt(o)
	}
	if o.sink == nil {
		o.sink = NewSyncSink[T]()
	}
	if o.log == nil {
		o.log = logger.Get("pipeline")
	}
	if o.tracer == nil {
		o.tracer = observability.Tracer()
	}
	return o, nil
}

// State returns the current phase.
func (o *Orchestrator[T]) State() State {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.state
}

// RunID returns the id assigned by Run, or "" before Run.
func (o *Orchestrator[T]) RunID() string {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.runID
}

// Run distributes the source items round-robin over the producers, waits
// for every producer, then puts one end-of-stream marker per consumer and
// waits for every consumer. It returns the sink snapshot.
//
// ctx only carries log and trace correlation; it does not cancel blocked
// puts or gets. The only errors are returned before any goroutine starts.
func (o *Orchestrator[T]) Run(ctx context.Context, src Source[T]) ([]T, error) {
	if src == nil {
		return nil, errors.InvalidInput("source", "must not be nil")
	}

	runID := uuid.NewString()
	o.mu.Lock()
	if o.used {
		o.mu.Unlock()
		return nil, errors.Conflict("orchestrator has already run")
	}
	o.used = true
	o.runID = runID
	o.mu.Unlock()

	start := time.Now()
	ctx = logger.ContextWithRunID(ctx, runID)
	log := o.log.WithContext(ctx)
	items := src.Items()

	ctx, span := o.tracer.Start(ctx, observability.SpanRun, trace.WithAttributes(
		attribute.String(observability.AttrRunID, runID),
		attribute.String(observability.AttrBufferKind, o.cfg.Buffer.String()),
		attribute.Int(observability.AttrCapacity, o.cfg.Capacity),
		attribute.Int(observability.AttrProducers, o.cfg.Producers),
		attribute.Int(observability.AttrConsumers, o.cfg.Consumers),
		attribute.Int(observability.AttrItems, len(items)),
	))
	defer span.End()

	buf, err := buffer.New[Message[T]](o.cfg.Buffer, o.cfg.Capacity,
		buffer.WithLogger(log.WithComponent("buffer")),
		buffer.WithMetrics(o.metrics),
	)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	log.Info("pipeline starting", logger.Fields(
		logger.FieldItems, len(items),
		logger.FieldKind, o.cfg.Buffer.String(),
		logger.FieldCapacity, o.cfg.Capacity,
		logger.FieldProducers, o.cfg.Producers,
		logger.FieldConsumers, o.cfg.Consumers,
	))

	var consumersWG sync.WaitGroup
	for i := 0; i < o.cfg.Consumers; i++ {
		c := NewConsumer(i, buf, o.sink,
			WithDelay(o.cfg.ConsumerDelay),
			WithWorkerLogger(log.WithComponent("consumer")),
			WithWorkerMetrics(o.metrics),
		)
		consumersWG.Add(1)
		go func() {
			defer consumersWG.Done()
			c.Run()
		}()
	}

	_, produceSpan := o.tracer.Start(ctx, observability.SpanProduce)
	var producersWG sync.WaitGroup
	for i, shard := range Shard(items, o.cfg.Producers) {
		p := NewProducer(i, shard, buf,
			WithDelay(o.cfg.ProducerDelay),
			WithEndOfStream(false),
			WithWorkerLogger(log.WithComponent("producer")),
			WithWorkerMetrics(o.metrics),
		)
		producersWG.Add(1)
		go func() {
			defer producersWG.Done()
			p.Run()
		}()
	}
	o.transition(log, StateRunningProducersAndConsumers)

	producersWG.Wait()
	produceSpan.End()
	o.transition(log, StateDraining)

	_, terminateSpan := o.tracer.Start(ctx, observability.SpanTerminate)
	o.transition(log, StateTerminatingConsumers)
	for i := 0; i < o.cfg.Consumers; i++ {
		buf.Put(EndOfStream[T]())
	}
	consumersWG.Wait()
	terminateSpan.End()

	result := o.sink.Snapshot()
	o.transition(log, StateDone)

	elapsed := time.Since(start)
	o.metrics.RecordRun(ctx, o.cfg.Buffer.String(), elapsed)
	log.Info("pipeline finished", logger.MergeWithDuration(logger.Fields(
		logger.FieldConsumed, len(result),
		logger.FieldItems, result,
	), elapsed))

	return result, nil
}

func (o *Orchestrator[T]) transition(log *logger.Logger, to State) {
	o.mu.Lock()
	from := o.state
	o.state = to
	o.mu.Unlock()

	log.Debug("state transition", logger.Fields(logger.FieldFrom, from.String(), logger.FieldState, to.String()))
	if o.hook != nil {
		o.hook(from, to)
	}
}
