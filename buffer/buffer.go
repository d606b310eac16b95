package buffer

import (
	"fmt"
	"strings"

	"github.com/kbukum/prodcon/errors"
	"github.com/kbukum/prodcon/logger"
	"github.com/kbukum/prodcon/observability"
)

// Buffer is a bounded, blocking FIFO.
type Buffer[T any] interface {
	// Put appends item, blocking while the buffer is full.
	Put(item T)
	// Get removes and returns the oldest item, blocking while the buffer is empty.
	Get() T
	// Len returns the current number of items. The value may be stale by the
	// time the caller reads it.
	Len() int
	// Cap returns the configured capacity.
	Cap() int
}

// Kind selects a Buffer implementation.
type Kind string

const (
	KindQueue     Kind = "queue"
	KindCondition Kind = "condition"
)

// Kinds returns every supported kind.
func Kinds() []Kind {
	return []Kind{KindQueue, KindCondition}
}

func (k Kind) String() string { return string(k) }

// ParseKind parses a kind name, ignoring case and surrounding spaces.
func ParseKind(s string) (Kind, error) {
	k := Kind(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Kinds() {
		if k == known {
			return k, nil
		}
	}
	return "", errors.InvalidConfig("buffer",
		fmt.Sprintf("unknown kind %q (want one of: %s, %s)", s, KindQueue, KindCondition))
}

// Option configures a buffer.
type Option func(*options)

type options struct {
	log     *logger.Logger
	metrics *observability.PipelineMetrics
}

// WithLogger sets the logger for wait diagnostics and item events.
func WithLogger(l *logger.Logger) Option {
	return func(o *options) { o.log = l }
}

// WithMetrics sets the instruments recording puts, gets and waits.
func WithMetrics(m *observability.PipelineMetrics) Option {
	return func(o *options) { o.metrics = m }
}

func buildOptions(kind Kind, capacity int, opts []Option) options {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	if o.log == nil {
		o.log = logger.Get("buffer")
	}
	o.log = o.log.WithFields(logger.Fields(logger.FieldKind, kind.String(), logger.FieldCapacity, capacity))
	return o
}

func validateCapacity(capacity int) error {
	if capacity <= 0 {
		return errors.InvalidConfig("capacity", fmt.Sprintf("must be positive (got %d)", capacity))
	}
	return nil
}

// New creates a buffer of the given kind. Capacity must be positive.
func New[T any](kind Kind, capacity int, opts ...Option) (Buffer[T], error) {
	kind, err := ParseKind(string(kind))
	if err != nil {
		return nil, err
	}

	switch kind {
	case KindCondition:
		b, err := NewCondition[T](capacity, opts...)
		if err != nil {
			return nil, err
		}
		return b, nil
	default:
		q, err := NewQueue[T](capacity, opts...)
		if err != nil {
			return nil, err
		}
		return q, nil
	}
}
