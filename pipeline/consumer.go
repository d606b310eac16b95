package pipeline

import (
	"github.com/kbukum/prodcon/buffer"
	"github.com/kbukum/prodcon/logger"
)

// Consumer drains a shared buffer into a sink until it takes an
// end-of-stream marker.
type Consumer[T any] struct {
	id       int
	buf      buffer.Buffer[Message[T]]
	sink     Sink[T]
	cfg      workerConfig
	consumed int
}

// NewConsumer creates a consumer delivering data items to sink.
func NewConsumer[T any](id int, buf buffer.Buffer[Message[T]], sink Sink[T], opts ...WorkerOption) *Consumer[T] {
	return &Consumer[T]{
		id:   id,
		buf:  buf,
		sink: sink,
		cfg:  newWorkerConfig("consumer", id, opts),
	}
}

// ID returns the consumer id.
func (c *Consumer[T]) ID() int { return c.id }

// Run takes messages until the first end-of-stream marker. Without a marker
// it never returns.
func (c *Consumer[T]) Run() {
	for {
		msg := c.buf.Get()
		if msg.IsEnd() {
			c.cfg.log.Info("consumer received end of stream, stopping",
				logger.Fields(logger.FieldConsumed, c.consumed))
			return
		}

		if c.cfg.log.DebugEnabled() {
			c.cfg.log.Debug("consuming", logger.Fields(logger.FieldItem, msg.Value()))
		}
		c.sink.Add(msg.Value())
		c.consumed++
		c.cfg.metrics.RecordConsumed(c.id)
		c.cfg.pause()
	}
}

// Consumed returns how many data items Run delivered. Read it only after
// Run has returned.
func (c *Consumer[T]) Consumed() int { return c.consumed }
