package taskpool

import (
	"fmt"
	"runtime"
	"time"

	lg "github.com/Andrej220/go-utils/zlog"
)

type worker struct {
	id   int
	pool *Pool
}

// run is the worker lifecycle: drain the queue, rest, repeat until the
// pool is stopped.
func (w *worker) run() {
	p := w.pool
	defer p.wg.Done()

	if p.opts.PinWorkers {
		runtime.LockOSThread()
		defer runtime.UnlockOSThread()
		w.pin()
	}

	for !p.exit() {
		for task, ok := p.take(); ok; task, ok = p.take() {
			p.execute(task)
		}
		p.rest()
	}
}

func (w *worker) pin() {
	p := w.pool
	cpu := w.id % runtime.NumCPU()
	if err := PinToCPU(cpu); err != nil {
		lg.FromContext(p.opts.Context).Warn("worker not pinned",
			lg.Int("worker", w.id),
			lg.Int("cpu", cpu),
			lg.Any("error", err),
		)
		p.reportInternalError(fmt.Errorf("pin worker %d to cpu %d: %w", w.id, cpu, err))
	}
}

func (p *Pool) exit() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.stopped
}

// take removes the next task from the queue without blocking.
func (p *Pool) take() (Task, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	task, ok := p.tasks.pop()
	if ok {
		p.metrics.DecQueued()
	}
	return task, ok
}

// rest parks the worker until there is work or the pool stops.
//
// The broadcast wakes a Stop waiting for the queue to drain.
func (p *Pool) rest() {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.cond.Broadcast()
	for p.tasks.len() == 0 && !p.stopped {
		p.cond.Wait()
	}
}

// execute runs a task outside the pool lock. A panic is recovered and
// reported; the worker keeps running.
func (p *Pool) execute(task Task) {
	start := time.Now()
	defer func() {
		p.metrics.ObserveExecution(time.Since(start))
		p.metrics.IncExecuted()
		if r := recover(); r != nil {
			p.metrics.IncPanicked()
			lg.FromContext(p.opts.Context).Error("task panicked", lg.Any("panic", r))
			p.reportTaskError(fmt.Errorf("%w: %v", ErrTaskPanic, r))
		}
	}()
	task()
}
