package exec

// Context is an execution context that owns receivers and runs their
// delivery tasks. Implementations must execute submitted tasks one at a
// time, in submission order, on a single goroutine at any given moment.
type Context interface {
	// IsCurrent reports whether the calling goroutine is the one that
	// executes tasks for this context.
	IsCurrent() bool

	// Submit appends task to the context's queue for later execution and
	// reports whether it was accepted. A stopped context or a full queue
	// rejects the task.
	Submit(task func()) bool
}

// Disposition describes how RunOn handled a task.
type Disposition int

const (
	// Ran means the task executed inline before RunOn returned.
	Ran Disposition = iota

	// Queued means the task was accepted onto the context's queue.
	Queued

	// Rejected means the context refused the task (stopped or queue full).
	Rejected
)

// String returns a human-readable disposition name.
func (d Disposition) String() string {
	switch d {
	case Ran:
		return "ran"
	case Queued:
		return "queued"
	case Rejected:
		return "rejected"
	default:
		return "unknown"
	}
}

// RunOn executes task on c. If the caller is already on c the task runs
// inline before RunOn returns; otherwise it is queued and RunOn returns
// immediately without waiting for execution.
func RunOn(c Context, task func()) Disposition {
	if c.IsCurrent() {
		task()
		return Ran
	}
	if c.Submit(task) {
		return Queued
	}
	return Rejected
}

// inlineContext executes every task on the submitting goroutine.
type inlineContext struct{}

func (inlineContext) IsCurrent() bool { return true }

func (inlineContext) Submit(task func()) bool {
	task()
	return true
}

// Inline returns a Context that is always current, so every task runs
// synchronously on the submitting goroutine. All goroutines share it.
func Inline() Context { return inlineContext{} }
