package pipeline

import (
	"time"

	"github.com/kbukum/prodcon/logger"
	"github.com/kbukum/prodcon/observability"
)

// WorkerOption configures a Producer or Consumer.
type WorkerOption func(*workerConfig)

type workerConfig struct {
	delay   time.Duration
	emitEnd bool
	log     *logger.Logger
	metrics *observability.PipelineMetrics
	sleep   func(time.Duration)
}

// WithDelay makes the worker pause for d after each item. Zero or negative
// disables the pause.
func WithDelay(d time.Duration) WorkerOption {
	return func(c *workerConfig) { c.delay = d }
}

// WithEndOfStream controls whether a producer puts one end-of-stream marker
// after its last item. Producers emit it by default; consumers ignore the
// option.
func WithEndOfStream(emit bool) WorkerOption {
	return func(c *workerConfig) { c.emitEnd = emit }
}

// WithWorkerLogger sets the worker logger.
func WithWorkerLogger(l *logger.Logger) WorkerOption {
	return func(c *workerConfig) { c.log = l }
}

// WithWorkerMetrics sets the instruments counting produced and consumed items.
func WithWorkerMetrics(m *observability.PipelineMetrics) WorkerOption {
	return func(c *workerConfig) { c.metrics = m }
}

// withSleep replaces time.Sleep for the per-item delay.
func withSleep(fn func(time.Duration)) WorkerOption {
	return func(c *workerConfig) { c.sleep = fn }
}

func newWorkerConfig(role string, id int, opts []WorkerOption) workerConfig {
	c := workerConfig{emitEnd: true, sleep: time.Sleep}
	for _, opt := range opts {
		opt(&c)
	}
	if c.log == nil {
		c.log = logger.Get(role)
	}
	c.log = c.log.WithFields(logger.Fields(logger.FieldWorker, id))
	return c
}

func (c *workerConfig) pause() {
	if c.delay > 0 {
		c.sleep(c.delay)
	}
}
