package taskpool

import (
	"context"
	"sync"

	lg "github.com/Andrej220/go-utils/zlog"
)

// Pool runs submitted tasks on a fixed set of persistent workers.
//
// Tasks are taken from a priority queue: the smallest Priority first,
// submission order among equal priorities. A Pool must be created with
// NewPool. Several pools may coexist; they share no state.
type Pool struct {
	// mu guards threads, tasks, stopped and draining.
	// cond is used both to wake idle workers and to wake a Stop
	// waiting for the queue to drain.
	mu       sync.Mutex
	cond     sync.Cond
	threads  []*worker
	tasks    *taskQueue
	stopped  bool
	draining bool

	// lifeMu serializes Start and Stop so that a Start cannot run
	// while a Stop is joining the previous generation of workers.
	lifeMu sync.Mutex
	wg     sync.WaitGroup

	opts    Options
	metrics MetricsPolicy
}

// NewPool creates a pool. If opts.Workers is non-zero the workers are
// started immediately, otherwise the pool stays stopped until Start.
func NewPool(opts Options) *Pool {
	opts.FillDefaults()

	p := &Pool{
		tasks:   newTaskQueue(),
		stopped: true,
		opts:    opts,
		metrics: opts.Metrics,
	}
	p.cond.L = &p.mu

	p.Start(opts.Workers)
	return p
}

// Submit queues a task with DefaultPriority.
func (p *Pool) Submit(task Task) error {
	return p.SubmitPriority(DefaultPriority, task)
}

// SubmitPriority queues a task with the given priority.
//
// Submission never blocks beyond a short critical section and only fails
// for a nil task. A task submitted to a stopped pool stays queued and runs
// after the next Start.
func (p *Pool) SubmitPriority(prio Priority, task Task) error {
	if task == nil {
		return ErrNilTask
	}

	p.mu.Lock()
	p.tasks.push(task, prio)
	p.metrics.IncQueued()
	if p.draining {
		// Stop waits on the same cond; a single Signal could be
		// consumed by it and leave every worker asleep.
		p.cond.Broadcast()
	} else {
		p.cond.Signal()
	}
	p.mu.Unlock()
	return nil
}

// Start launches workers. It is a no-op when the pool is already running
// or workers is zero.
func (p *Pool) Start(workers uint) {
	p.lifeMu.Lock()
	defer p.lifeMu.Unlock()

	p.mu.Lock()
	if !p.stopped || workers == 0 {
		p.mu.Unlock()
		return
	}

	p.stopped = false
	p.threads = make([]*worker, workers)
	for i := range p.threads {
		w := &worker{id: i, pool: p}
		p.threads[i] = w
		p.wg.Add(1)
		go w.run()
	}
	pending := p.tasks.len()
	p.mu.Unlock()

	p.metrics.SetWorkers(int(workers))
	lg.FromContext(p.opts.Context).Info("taskpool started",
		lg.Int("workers", int(workers)),
		lg.Int("pending", pending),
	)
}

// Stop waits until the queue is empty, then retires every worker.
//
// When Stop returns no task of this pool is running. It is a no-op on a
// stopped pool. Stop must not be called from a task running on the same
// pool: the calling worker would wait for itself. A task that never
// returns makes Stop wait forever.
func (p *Pool) Stop() {
	p.lifeMu.Lock()
	defer p.lifeMu.Unlock()

	p.mu.Lock()
	if p.stopped {
		p.mu.Unlock()
		return
	}

	p.draining = true
	for p.tasks.len() > 0 {
		p.cond.Wait()
	}
	p.draining = false
	p.stopped = true
	p.cond.Broadcast()
	p.mu.Unlock()

	p.wg.Wait()

	p.mu.Lock()
	n := len(p.threads)
	p.threads = nil
	p.mu.Unlock()

	p.metrics.SetWorkers(0)
	lg.FromContext(p.opts.Context).Info("taskpool stopped", lg.Int("workers", n))
}

// Shutdown is Stop bounded by ctx.
//
// If ctx ends first Shutdown returns ctx.Err() while the stop keeps going
// in the background; a later Stop or Shutdown waits for it to finish.
func (p *Pool) Shutdown(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		defer close(done)
		p.Stop()
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Close stops the pool. It always returns nil.
func (p *Pool) Close() error {
	p.Stop()
	return nil
}

// Size returns the number of workers, zero when the pool is stopped.
func (p *Pool) Size() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.threads)
}

// Running reports whether the pool has live workers.
func (p *Pool) Running() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return !p.stopped
}

// Pending returns the number of queued tasks not yet taken by a worker.
func (p *Pool) Pending() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.tasks.len()
}
