package buffer

import (
	"github.com/kbukum/prodcon/logger"
	"github.com/kbukum/prodcon/observability"
)

// Queue is a Buffer backed by a buffered channel. The channel supplies the
// FIFO ordering and the blocking at both boundaries.
type Queue[T any] struct {
	ch      chan T
	log     *logger.Logger
	metrics *observability.PipelineMetrics
}

var _ Buffer[int] = (*Queue[int])(nil)

// NewQueue creates a channel-backed buffer holding at most capacity items.
func NewQueue[T any](capacity int, opts ...Option) (*Queue[T], error) {
	if err := validateCapacity(capacity); err != nil {
		return nil, err
	}
	o := buildOptions(KindQueue, capacity, opts)

	return &Queue[T]{
		ch:      make(chan T, capacity),
		log:     o.log,
		metrics: o.metrics,
	}, nil
}

// Put sends item, blocking while the channel is full. The full diagnostic
// is best effort: another goroutine may free a slot before the send.
func (q *Queue[T]) Put(item T) {
	if len(q.ch) == cap(q.ch) {
		q.log.Debug("buffer full, producer waiting", logger.Fields(logger.FieldSize, len(q.ch)))
		q.metrics.RecordWaitFull(KindQueue.String())
	}
	q.ch <- item
	q.metrics.RecordPut(KindQueue.String())
	if q.log.DebugEnabled() {
		q.log.Debug("item put", logger.Fields(logger.FieldItem, item, logger.FieldSize, len(q.ch)))
	}
}

// Get receives the oldest item, blocking while the channel is empty.
func (q *Queue[T]) Get() T {
	if len(q.ch) == 0 {
		q.log.Debug("buffer empty, consumer waiting", logger.Fields(logger.FieldSize, 0))
		q.metrics.RecordWaitEmpty(KindQueue.String())
	}
	item := <-q.ch
	q.metrics.RecordGet(KindQueue.String())
	if q.log.DebugEnabled() {
		q.log.Debug("item taken", logger.Fields(logger.FieldItem, item, logger.FieldSize, len(q.ch)))
	}
	return item
}

// Len returns the number of buffered items.
func (q *Queue[T]) Len() int {
	return len(q.ch)
}

// Cap returns the buffer capacity.
func (q *Queue[T]) Cap() int {
	return cap(q.ch)
}
