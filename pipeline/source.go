package pipeline

import "sync"

// Source supplies the items to distribute across producers.
type Source[T any] interface {
	// Items returns a fresh copy of the items in order.
	Items() []T
}

// Sink collects items delivered by consumers. Implementations must be safe
// for concurrent use.
type Sink[T any] interface {
	Add(item T)
	// Snapshot returns a copy of everything added so far.
	Snapshot() []T
}

// SliceSource is a Source over a fixed slice. Neither the caller's slice nor
// the slices returned by Items share storage with it.
type SliceSource[T any] struct {
	items []T
}

var _ Source[int] = (*SliceSource[int])(nil)

// NewSliceSource copies items into a new source.
func NewSliceSource[T any](items []T) *SliceSource[T] {
	return &SliceSource[T]{items: clone(items)}
}

// Items returns a copy of the source items.
func (s *SliceSource[T]) Items() []T {
	return clone(s.items)
}

// Len returns the number of items.
func (s *SliceSource[T]) Len() int {
	return len(s.items)
}

// SyncSink is a mutex-guarded, append-only Sink.
type SyncSink[T any] struct {
	mu    sync.Mutex
	items []T
}

var _ Sink[int] = (*SyncSink[int])(nil)

// NewSyncSink returns an empty sink.
func NewSyncSink[T any]() *SyncSink[T] {
	return &SyncSink[T]{items: make([]T, 0)}
}

// Add appends item.
func (s *SyncSink[T]) Add(item T) {
	s.mu.Lock()
	s.items = append(s.items, item)
	s.mu.Unlock()
}

// Snapshot returns a copy of the collected items in arrival order.
func (s *SyncSink[T]) Snapshot() []T {
	s.mu.Lock()
	defer s.mu.Unlock()
	return clone(s.items)
}

// Len returns the number of collected items.
func (s *SyncSink[T]) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.items)
}

func clone[T any](items []T) []T {
	out := make([]T, len(items))
	copy(out, items)
	return out
}
