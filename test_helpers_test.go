package taskpool_test

import (
	"sync"
	"testing"
	"time"

	boff "github.com/Andrej220/go-utils/backoff"

	tp "github.com/azargarov/taskpool"
)

func newTestPool(t *testing.T, workers uint, opts ...func(*tp.Options)) *tp.Pool {
	t.Helper()

	o := tp.Options{Workers: workers}
	for _, fn := range opts {
		fn(&o)
	}
	p := tp.NewPool(o)
	t.Cleanup(func() { _ = p.Close() })
	return p
}

// waitUntil polls cond with exponential backoff until it holds or the
// timeout passes.
func waitUntil(t *testing.T, timeout time.Duration, cond func() bool) {
	t.Helper()

	bo := boff.New(time.Millisecond, 20*time.Millisecond, time.Now().UnixNano())
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(bo.Next())
	}
	t.Fatal("condition not satisfied before timeout")
}

// recorder collects task labels in execution order.
type recorder struct {
	mu    sync.Mutex
	order []string
}

func (r *recorder) task(label string) tp.Task {
	return func() {
		r.mu.Lock()
		r.order = append(r.order, label)
		r.mu.Unlock()
	}
}

func (r *recorder) got() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.order...)
}

// gate blocks the only worker of a pool until release is called, so that
// tasks submitted meanwhile are ordered by the queue alone.
func gate(t *testing.T, p *tp.Pool) (release func()) {
	t.Helper()

	started := make(chan struct{})
	unblock := make(chan struct{})
	if err := p.SubmitPriority(0, func() {
		close(started)
		<-unblock
	}); err != nil {
		t.Fatalf("submit gate: %v", err)
	}
	select {
	case <-started:
	case <-time.After(time.Second):
		t.Fatal("gate task did not start")
	}
	var once sync.Once
	release = func() { once.Do(func() { close(unblock) }) }
	// Cleanups run last-in first-out: the gate opens before Close.
	t.Cleanup(release)
	return release
}
