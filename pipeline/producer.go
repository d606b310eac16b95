package pipeline

import (
	"github.com/kbukum/prodcon/buffer"
	"github.com/kbukum/prodcon/logger"
)

// Producer puts its items into a shared buffer in order.
type Producer[T any] struct {
	id    int
	items []T
	buf   buffer.Buffer[Message[T]]
	cfg   workerConfig
}

// NewProducer creates a producer for items. By default it puts one
// end-of-stream marker after the last item; the Orchestrator turns that off
// and emits the markers itself.
func NewProducer[T any](id int, items []T, buf buffer.Buffer[Message[T]], opts ...WorkerOption) *Producer[T] {
	return &Producer[T]{
		id:    id,
		items: items,
		buf:   buf,
		cfg:   newWorkerConfig("producer", id, opts),
	}
}

// ID returns the producer id.
func (p *Producer[T]) ID() int { return p.id }

// Run puts every item, then the marker if enabled. It blocks whenever the
// buffer is full and returns once the last put completes.
func (p *Producer[T]) Run() {
	p.cfg.log.Debug("producer started", logger.Fields(logger.FieldSize, len(p.items)))

	for _, item := range p.items {
		if p.cfg.log.DebugEnabled() {
			p.cfg.log.Debug("producing", logger.Fields(logger.FieldItem, item))
		}
		p.buf.Put(Item(item))
		p.cfg.metrics.RecordProduced(p.id)
		p.cfg.pause()
	}

	if p.cfg.emitEnd {
		p.cfg.log.Info("producer finished, sending end of stream")
		p.buf.Put(EndOfStream[T]())
		return
	}
	p.cfg.log.Debug("producer finished")
}
