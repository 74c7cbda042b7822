package jamdr

import (
	"errors"
	"runtime"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func TestResolvePoolSize(t *testing.T) {
	t.Parallel()

	gomaxprocs := runtime.GOMAXPROCS(0)

	tests := []struct {
		name    string
		workers int
		want    int
	}{
		{
			name:    "explicit takes priority",
			workers: 4,
			want:    4,
		},
		{
			name:    "explicit=1 for sequential",
			workers: 1,
			want:    1,
		},
		{
			name:    "zero uses auto calculation",
			workers: 0,
			want:    min(max(gomaxprocs/cpuDivisor, MinPoolSize), MaxPoolSize),
		},
		{
			name:    "negative uses auto calculation",
			workers: -3,
			want:    min(max(gomaxprocs/cpuDivisor, MinPoolSize), MaxPoolSize),
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := ResolvePoolSize(tt.workers)
			if got != tt.want {
				t.Errorf("ResolvePoolSize(%d) = %d, want %d", tt.workers, got, tt.want)
			}
		})
	}
}

// fakeResource counts Close calls.
type fakeResource struct {
	id     int
	closed atomic.Int32
	err    error
}

func (f *fakeResource) Close() error {
	f.closed.Add(1)
	return f.err
}

func TestLazyPool_CreatesLazily(t *testing.T) {
	t.Parallel()

	var created atomic.Int32
	pool := newLazyPool(2, func() *fakeResource {
		return &fakeResource{id: int(created.Add(1))}
	})

	if created.Load() != 0 {
		t.Fatalf("created %d resources before Acquire, want 0", created.Load())
	}

	a := pool.Acquire()
	pool.Release(a)
	b := pool.Acquire()
	if a != b {
		t.Error("released resource was not reused")
	}
	if created.Load() != 1 {
		t.Errorf("created = %d, want 1", created.Load())
	}
	pool.Release(b)

	if err := pool.Close(); err != nil {
		t.Fatalf("Close() = %v", err)
	}
	if a.closed.Load() != 1 {
		t.Errorf("resource closed %d times, want 1", a.closed.Load())
	}
}

func TestLazyPool_BlocksAtCapacity(t *testing.T) {
	t.Parallel()

	pool := newLazyPool(1, func() *fakeResource { return &fakeResource{} })
	first := pool.Acquire()

	got := make(chan *fakeResource)
	go func() { got <- pool.Acquire() }()

	select {
	case <-got:
		t.Fatal("Acquire returned while the only resource was held")
	case <-time.After(50 * time.Millisecond):
	}

	pool.Release(first)
	select {
	case r := <-got:
		if r != first {
			t.Error("waiter received a different resource")
		}
	case <-time.After(time.Second):
		t.Fatal("Acquire did not unblock after Release")
	}
}

func TestLazyPool_CloseJoinsErrors(t *testing.T) {
	t.Parallel()

	errA := errors.New("a failed")
	errB := errors.New("b failed")
	errs := []error{errA, errB}
	var mu sync.Mutex
	pool := newLazyPool(2, func() *fakeResource {
		mu.Lock()
		defer mu.Unlock()
		r := &fakeResource{err: errs[0]}
		errs = errs[1:]
		return r
	})

	pool.Acquire()
	pool.Acquire()

	err := pool.Close()
	if !errors.Is(err, errA) || !errors.Is(err, errB) {
		t.Errorf("Close() = %v, want both errors", err)
	}
	if err := pool.Close(); err != nil {
		t.Errorf("second Close() = %v, want nil", err)
	}
}

func TestLazyPool_ReleaseAfterClose(t *testing.T) {
	t.Parallel()

	pool := newLazyPool(1, func() *fakeResource { return &fakeResource{} })
	r := pool.Acquire()
	if err := pool.Close(); err != nil {
		t.Fatalf("Close() = %v", err)
	}
	pool.Release(r) // must not panic on the closed channel
	if pool.Size() != 1 {
		t.Errorf("Size() = %d, want 1", pool.Size())
	}
}
