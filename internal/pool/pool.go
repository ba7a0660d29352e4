package pool

import (
	"github.com/puzpuzpuz/xsync/v4"
)

// DefaultInstanceCapacity is the number of idle instances a Pool retains when no
// capacity is configured.
const DefaultInstanceCapacity = 64

// Stats reports counters collected by a Pool.
type Stats struct {
	Created  int64 // instances built by the factory
	Reused   int64 // instances handed out from the idle queue
	Returned int64 // instances accepted back into the idle queue
	Dropped  int64 // instances discarded because the queue was full
}

// Pool is a bounded, lock-free pool of reusable instances.
//
// Unlike sync.Pool, idle instances are never collected by the garbage collector, so
// state that is expensive to rebuild (large scratch buffers) survives between uses.
// Instances beyond the capacity are dropped on Put.
//
// Pool is safe for concurrent use.
type Pool[T any] struct {
	queue    *xsync.MPMCQueue[T]
	newFn    func() T
	created  *xsync.Counter
	reused   *xsync.Counter
	returned *xsync.Counter
	dropped  *xsync.Counter
}

// NewPool creates a pool retaining up to capacity idle instances.
// newFn builds an instance when the pool is empty.
//
// If capacity is not positive, DefaultInstanceCapacity is used.
func NewPool[T any](capacity int, newFn func() T) *Pool[T] {
	if capacity <= 0 {
		capacity = DefaultInstanceCapacity
	}

	return &Pool[T]{
		queue:    xsync.NewMPMCQueue[T](capacity),
		newFn:    newFn,
		created:  xsync.NewCounter(),
		reused:   xsync.NewCounter(),
		returned: xsync.NewCounter(),
		dropped:  xsync.NewCounter(),
	}
}

// GetOrCreate returns an idle instance, or a new one if none is available.
func (p *Pool[T]) GetOrCreate() T {
	if item, ok := p.queue.TryDequeue(); ok {
		p.reused.Inc()
		return item
	}

	p.created.Inc()

	return p.newFn()
}

// Put offers an instance back to the pool.
// It reports false if the pool is full and the instance was dropped.
func (p *Pool[T]) Put(item T) bool {
	if p.queue.TryEnqueue(item) {
		p.returned.Inc()
		return true
	}

	p.dropped.Inc()

	return false
}

// Drain removes all idle instances and returns how many were removed.
func (p *Pool[T]) Drain() int {
	n := 0
	for {
		if _, ok := p.queue.TryDequeue(); !ok {
			return n
		}
		n++
	}
}

// Stats returns a snapshot of the pool counters.
func (p *Pool[T]) Stats() Stats {
	return Stats{
		Created:  p.created.Value(),
		Reused:   p.reused.Value(),
		Returned: p.returned.Value(),
		Dropped:  p.dropped.Value(),
	}
}
