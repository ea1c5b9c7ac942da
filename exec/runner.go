package exec

import (
	"runtime/debug"
	"time"
)

// Result captures the outcome of a single task execution.
type Result struct {
	// Panicked is true if the task panicked.
	Panicked bool

	// PanicValue is the value passed to panic(), if any.
	PanicValue any

	// PanicStack is the stack trace captured at the panic site.
	PanicStack []byte

	// Duration is how long the task ran.
	Duration time.Duration
}

// PanicHandler is called when a task panics.
type PanicHandler func(panicValue any, stack []byte)

// Runner executes tasks with panic isolation and timing.
type Runner struct {
	panicHandler PanicHandler
}

// NewRunner creates a new runner with the given options.
func NewRunner(opts ...RunnerOption) *Runner {
	r := &Runner{}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// RunnerOption configures a Runner.
type RunnerOption func(*Runner)

// WithPanicHandler sets the handler invoked when a task panics.
func WithPanicHandler(h PanicHandler) RunnerOption {
	return func(r *Runner) {
		r.panicHandler = h
	}
}

// Run executes task and returns the result. A panicking task is recovered
// here; it never propagates to the caller.
func (r *Runner) Run(task func()) (result Result) {
	start := time.Now()

	defer func() {
		result.Duration = time.Since(start)

		if v := recover(); v != nil {
			stack := debug.Stack()
			result.Panicked = true
			result.PanicValue = v
			result.PanicStack = stack

			if r.panicHandler != nil {
				// A panicking panic handler must not crash the process.
				func() {
					defer func() { _ = recover() }()
					r.panicHandler(v, stack)
				}()
			}
		}
	}()

	task()
	return result
}
