package taskpool

// reportInternalError reports an internal pool error.
//
// Internal errors are non-task failures such as a worker that could not be
// pinned to its CPU. If no handler is registered, the error is dropped.
func (p *Pool) reportInternalError(e error) {
	if p.opts.OnInternalError != nil {
		p.opts.OnInternalError(e)
	}
}

// reportTaskError reports an error produced by panic recovery.
//
// Task errors never stop the worker that observed them.
func (p *Pool) reportTaskError(err error) {
	if p.opts.OnTaskError != nil {
		p.opts.OnTaskError(err)
	}
}
