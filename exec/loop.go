package exec

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/petermattis/goid"
)

// Loop is a single-goroutine execution context. Tasks submitted from any
// goroutine run on the loop goroutine in submission order. A full queue
// rejects tasks rather than blocking the submitter.
type Loop struct {
	queueSize int
	runner    *Runner

	// mu guards queue creation and close. Submit holds it shared so a
	// concurrent Stop cannot close the channel out from under a send.
	mu      sync.RWMutex
	queue   chan func()
	running atomic.Bool
	gid     atomic.Int64
	wg      sync.WaitGroup

	// Stats
	submitted atomic.Uint64
	executed  atomic.Uint64
	dropped   atomic.Uint64
	panicked  atomic.Uint64
}

// NewLoop creates a new loop with the given options. The loop does not
// accept tasks until Start is called.
func NewLoop(opts ...LoopOption) *Loop {
	l := &Loop{
		queueSize: 1024,
		runner:    NewRunner(),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// LoopOption configures a Loop.
type LoopOption func(*Loop)

// WithQueueSize sets the task queue capacity.
func WithQueueSize(size int) LoopOption {
	return func(l *Loop) {
		if size > 0 {
			l.queueSize = size
		}
	}
}

// WithLoopPanicHandler sets the handler invoked when a task panics on the
// loop goroutine.
func WithLoopPanicHandler(h PanicHandler) LoopOption {
	return func(l *Loop) {
		l.runner = NewRunner(WithPanicHandler(h))
	}
}

// Start starts the loop goroutine.
func (l *Loop) Start() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.running.Load() {
		return ErrAlreadyRunning
	}

	l.queue = make(chan func(), l.queueSize)
	l.running.Store(true)

	l.wg.Add(1)
	go l.run()

	return nil
}

// run drains the queue until it is closed.
func (l *Loop) run() {
	defer l.wg.Done()

	l.gid.Store(goid.Get())
	defer l.gid.Store(0)

	for task := range l.queue {
		result := l.runner.Run(task)
		l.executed.Add(1)
		if result.Panicked {
			l.panicked.Add(1)
		}
	}
}

// Stop stops the loop gracefully. It waits for all queued tasks to finish
// or until the context is cancelled.
func (l *Loop) Stop(ctx context.Context) error {
	l.mu.Lock()
	if !l.running.Load() {
		l.mu.Unlock()
		return ErrNotRunning
	}
	l.running.Store(false)
	close(l.queue)
	l.mu.Unlock()

	done := make(chan struct{})
	go func() {
		l.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// IsCurrent reports whether the calling goroutine is the loop goroutine.
func (l *Loop) IsCurrent() bool {
	return l.running.Load() && l.gid.Load() == goid.Get()
}

// Submit appends task to the queue for execution on the loop goroutine.
// It reports false if the loop is stopped or the queue is full.
func (l *Loop) Submit(task func()) bool {
	l.mu.RLock()
	defer l.mu.RUnlock()

	if !l.running.Load() {
		return false
	}

	select {
	case l.queue <- task:
		l.submitted.Add(1)
		return true
	default:
		l.dropped.Add(1)
		return false
	}
}

// IsRunning reports whether the loop is running.
func (l *Loop) IsRunning() bool {
	return l.running.Load()
}

// QueueDepth returns the number of tasks waiting in the queue. Returns 0
// if the loop is not running.
func (l *Loop) QueueDepth() int {
	l.mu.RLock()
	defer l.mu.RUnlock()

	if !l.running.Load() {
		return 0
	}
	return len(l.queue)
}

// LoopStats contains statistics for a loop.
type LoopStats struct {
	// Submitted is the number of tasks accepted onto the queue.
	Submitted uint64

	// Executed is the number of tasks that have run.
	Executed uint64

	// Dropped is the number of tasks rejected because the queue was full.
	Dropped uint64

	// Panicked is the number of tasks that panicked.
	Panicked uint64

	// QueueDepth is the current number of waiting tasks.
	QueueDepth int
}

// Stats returns a snapshot of the loop's counters.
func (l *Loop) Stats() LoopStats {
	return LoopStats{
		Submitted:  l.submitted.Load(),
		Executed:   l.executed.Load(),
		Dropped:    l.dropped.Load(),
		Panicked:   l.panicked.Load(),
		QueueDepth: l.QueueDepth(),
	}
}
