package jamdr

import (
	"errors"
	"runtime"
	"sync"
)

// Pool sizing constants.
const (
	// MinPoolSize ensures at least one worker is available.
	MinPoolSize = 1

	// MaxPoolSize caps parallel documents (and browser instances, ~200MB each).
	MaxPoolSize = 8

	// cpuDivisor leaves headroom for Chrome child processes.
	cpuDivisor = 2
)

// ResolvePoolSize determines the worker count.
// Priority: explicit workers > GOMAXPROCS-based calculation.
// Exported for use by CLIs.
func ResolvePoolSize(workers int) int {
	if workers > 0 {
		return workers
	}

	// Auto-calculate based on GOMAXPROCS (adjusted by automaxprocs for containers)
	n := runtime.GOMAXPROCS(0) / cpuDivisor

	if n < MinPoolSize {
		return MinPoolSize
	}
	if n > MaxPoolSize {
		return MaxPoolSize
	}
	return n
}

// closer is a pooled resource.
type closer interface {
	Close() error
}

// lazyPool hands out up to size resources, creating them on first acquire.
// Resources survive Release and are only closed by Close.
type lazyPool[T closer] struct {
	size    int
	newItem func() T
	items   []T
	sem     chan T
	mu      sync.Mutex
	created int
	closed  bool
}

// newLazyPool creates a pool with capacity for n resources.
func newLazyPool[T closer](n int, newItem func() T) *lazyPool[T] {
	if n < 1 {
		n = 1
	}
	return &lazyPool[T]{
		size:    n,
		newItem: newItem,
		items:   make([]T, 0, n),
		sem:     make(chan T, n),
	}
}

// Acquire gets a resource, creating one if capacity allows.
// Blocks if all resources are in use.
func (p *lazyPool[T]) Acquire() T {
	// Try to get an existing resource (non-blocking)
	select {
	case item := <-p.sem:
		return item
	default:
	}

	p.mu.Lock()
	if p.created < p.size {
		p.created++
		p.mu.Unlock()

		// Create outside the lock
		item := p.newItem()

		p.mu.Lock()
		p.items = append(p.items, item)
		p.mu.Unlock()

		return item
	}
	p.mu.Unlock()

	// All resources created, wait for one to be released
	return <-p.sem
}

// Release returns a resource to the pool.
// The lock is released before sending to avoid deadlock when channel is full.
func (p *lazyPool[T]) Release(item T) {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return
	}
	p.mu.Unlock()

	p.sem <- item
}

// Close releases every created resource.
// Returns an aggregated error if several fail to close.
func (p *lazyPool[T]) Close() error {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return nil
	}
	p.closed = true
	close(p.sem)
	items := p.items
	p.mu.Unlock()

	var errs []error
	for _, item := range items {
		if err := item.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Size returns the pool capacity.
func (p *lazyPool[T]) Size() int {
	return p.size
}
