package taskpool

import (
	"sync/atomic"
	"time"
)

// MetricsPolicy defines hooks used by the pool to report queueing and
// execution activity.
//
// Implementations must be safe for concurrent use.
// All methods are expected to be lightweight and non-blocking.
type MetricsPolicy interface {
	// IncQueued increments the queued tasks counter.
	IncQueued()

	// DecQueued decrements the queued tasks counter when a worker
	// takes a task off the queue.
	DecQueued()

	// IncExecuted increments the executed tasks counter. Panicking
	// tasks are counted too.
	IncExecuted()

	// IncPanicked increments the panicked tasks counter.
	IncPanicked()

	// SetWorkers records the current number of workers.
	SetWorkers(n int)

	// ObserveExecution records how long a task ran.
	ObserveExecution(d time.Duration)
}

// AtomicMetrics is a lock-free metrics implementation backed by atomics.
//
// Writes are optimized for hot paths.
// Reads are intended for cold-path observation.
type AtomicMetrics struct {
	// executed is the total number of tasks processed.
	executed atomic.Uint64

	_ [56]byte // padding to avoid false sharing

	// queued is the current number of tasks enqueued.
	queued atomic.Int64

	_ [56]byte

	panicked atomic.Uint64
	workers  atomic.Int64
	busy     atomic.Int64 // total execution time, ns
}

// Executed returns the total number of executed tasks.
func (m *AtomicMetrics) Executed() uint64 {
	return m.executed.Load()
}

// Queued returns the current number of queued tasks.
func (m *AtomicMetrics) Queued() int64 {
	return m.queued.Load()
}

// Panicked returns the number of tasks that panicked.
func (m *AtomicMetrics) Panicked() uint64 {
	return m.panicked.Load()
}

// Workers returns the last recorded worker count.
func (m *AtomicMetrics) Workers() int64 {
	return m.workers.Load()
}

// BusyTime returns the accumulated execution time of all tasks.
func (m *AtomicMetrics) BusyTime() time.Duration {
	return time.Duration(m.busy.Load())
}

func (m *AtomicMetrics) IncQueued()   { m.queued.Add(1) }
func (m *AtomicMetrics) DecQueued()   { m.queued.Add(-1) }
func (m *AtomicMetrics) IncExecuted() { m.executed.Add(1) }
func (m *AtomicMetrics) IncPanicked() { m.panicked.Add(1) }

func (m *AtomicMetrics) SetWorkers(n int) {
	m.workers.Store(int64(n))
}

func (m *AtomicMetrics) ObserveExecution(d time.Duration) {
	m.busy.Add(int64(d))
}

//------------- NoopMetrics ----------------------------------

// NoopMetrics is a MetricsPolicy implementation that discards
// all metric updates.
type NoopMetrics struct{}

func (m *NoopMetrics) IncQueued()                     {}
func (m *NoopMetrics) DecQueued()                     {}
func (m *NoopMetrics) IncExecuted()                   {}
func (m *NoopMetrics) IncPanicked()                   {}
func (m *NoopMetrics) SetWorkers(int)                 {}
func (m *NoopMetrics) ObserveExecution(time.Duration) {}
