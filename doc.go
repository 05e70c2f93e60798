// Package taskpool provides a bounded pool of persistent workers that
// execute tasks taken from a priority-ordered queue.
//
// # Scheduling
//
// Every task carries a Priority. Workers always take the queued task with
// the smallest priority value; tasks with equal priority run in the order
// they were submitted. Submit uses DefaultPriority, the largest value, so
// plain submissions run after everything submitted with an explicit
// priority and in FIFO order among themselves.
//
// The ordering applies to tasks available at the moment a worker picks
// its next task. A running task is never preempted.
//
// # Lifecycle
//
// A pool is either stopped or running:
//
//   - NewPool with Options.Workers > 0, or Start(n) with n > 0, starts
//     n workers. Starting a running pool is a no-op, as is Start(0).
//   - Stop waits until the queue is empty, then wakes and joins every
//     worker. When it returns, no task of the pool is running.
//     Stopping a stopped pool is a no-op.
//   - Close calls Stop. Use it wherever the pool goes out of scope.
//
// The number of workers never changes while the pool runs. To resize,
// Stop and Start again.
//
// There is no cancellation of queued tasks and no per-task timeout.
// A task that blocks forever makes Stop block forever. Stop must not be
// called from a task of the same pool.
//
// # Errors
//
// Panics inside tasks are recovered at the execution boundary, logged,
// counted in metrics and passed to Options.OnTaskError as an error
// wrapping ErrTaskPanic. The worker then continues, so a panicking task
// never shrinks the pool.
//
// # Concurrency model
//
// All shared state (the queue, the worker registry and the stop flag) is
// guarded by one mutex and one condition variable owned by the pool.
// Tasks run outside the lock. With Options.PinWorkers every worker is
// locked to its own OS thread and, on Linux, pinned to one CPU.
package taskpool
