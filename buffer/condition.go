package buffer

import (
	"sync"

	"github.com/kbukum/prodcon/logger"
	"github.com/kbukum/prodcon/observability"
)

// Condition is a Buffer built on a mutex-guarded ring and two condition
// variables sharing that mutex. Put waits on notFull and signals notEmpty;
// Get waits on notEmpty and signals notFull.
type Condition[T any] struct {
	mu       sync.Mutex
	notFull  *sync.Cond
	notEmpty *sync.Cond

	items []T
	head  int
	count int

	// wasFull and wasEmpty only suppress repeated wait diagnostics.
	wasFull  bool
	wasEmpty bool

	log     *logger.Logger
	metrics *observability.PipelineMetrics
}

var _ Buffer[int] = (*Condition[int])(nil)

// NewCondition creates a condition-variable buffer holding at most capacity items.
func NewCondition[T any](capacity int, opts ...Option) (*Condition[T], error) {
	if err := validateCapacity(capacity); err != nil {
		return nil, err
	}
	o := buildOptions(KindCondition, capacity, opts)

	b := &Condition[T]{
		items:    make([]T, capacity),
		wasEmpty: true,
		log:      o.log,
		metrics:  o.metrics,
	}
	b.notFull = sync.NewCond(&b.mu)
	b.notEmpty = sync.NewCond(&b.mu)
	return b, nil
}

// Put appends item at the tail, blocking while the buffer is full.
func (b *Condition[T]) Put(item T) {
	b.mu.Lock()
	defer b.mu.Unlock()

	for b.count == len(b.items) {
		if !b.wasFull {
			b.wasFull = true
			b.log.Info("buffer full, producer waiting", logger.Fields(logger.FieldSize, b.count))
			b.metrics.RecordWaitFull(KindCondition.String())
		}
		b.notFull.Wait()
	}

	tail := (b.head + b.count) % len(b.items)
	b.items[tail] = item
	b.count++
	b.wasEmpty = false
	if b.count < len(b.items) {
		b.wasFull = false
	}

	b.metrics.RecordPut(KindCondition.String())
	if b.log.DebugEnabled() {
		b.log.Debug("item put", logger.Fields(logger.FieldItem, item, logger.FieldSize, b.count))
	}
	b.notEmpty.Signal()
}

// Get removes and returns the head item, blocking while the buffer is empty.
// The vacated slot is cleared so the buffer keeps no reference to the item.
func (b *Condition[T]) Get() T {
	b.mu.Lock()
	defer b.mu.Unlock()

	for b.count == 0 {
		if !b.wasEmpty {
			b.wasEmpty = true
			b.log.Debug("buffer empty, consumer waiting", logger.Fields(logger.FieldSize, 0))
			b.metrics.RecordWaitEmpty(KindCondition.String())
		}
		b.notEmpty.Wait()
	}

	var zero T
	item := b.items[b.head]
	b.items[b.head] = zero
	b.head = (b.head + 1) % len(b.items)
	b.count--
	b.wasFull = false
	if b.count > 0 {
		b.wasEmpty = false
	}

	b.metrics.RecordGet(KindCondition.String())
	if b.log.DebugEnabled() {
		b.log.Debug("item taken", logger.Fields(logger.FieldItem, item, logger.FieldSize, b.count))
	}
	b.notFull.Signal()
	return item
}

// Len returns the number of buffered items.
func (b *Condition[T]) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.count
}

// Cap returns the buffer capacity.
func (b *Condition[T]) Cap() int {
	return len(b.items)
}
