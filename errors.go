package taskpool

import (
	"errors"
)

var (
	// ErrNilTask is returned when a nil Task is submitted.
	ErrNilTask = errors.New("taskpool: task is nil")

	// ErrTaskPanic wraps the value recovered from a panicking task.
	ErrTaskPanic = errors.New("taskpool: task panicked")

	// ErrPinUnsupported is reported when worker pinning is requested on
	// a platform without CPU affinity support.
	ErrPinUnsupported = errors.New("taskpool: cpu pinning not supported")
)
