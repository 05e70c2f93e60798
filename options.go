package taskpool

import (
	"context"
)

// Options configure a Pool.
//
// Zero values are replaced with defaults in FillDefaults, except Workers:
// zero workers means the pool is created stopped.
type Options struct {
	// Workers is the number of workers started by NewPool.
	Workers uint

	// PinWorkers locks every worker to an OS thread and, where supported,
	// restricts that thread to a single CPU.
	PinWorkers bool

	// Metrics receives queueing and execution events.
	Metrics MetricsPolicy

	// Context carries the logger used by the pool.
	Context context.Context

	// OnTaskError receives errors recovered from panicking tasks.
	OnTaskError func(error)

	// OnInternalError receives pool failures unrelated to a task.
	OnInternalError func(error)
}

func (o *Options) FillDefaults() {
	if o.Metrics == nil {
		o.Metrics = &NoopMetrics{}
	}
	if o.Context == nil {
		o.Context = context.Background()
	}
}
