// Package exec provides the execution-context abstraction for the courier bus.
//
// A Context identifies the goroutine that owns a receiver and runs its
// delivery tasks. The bus never cares what a context actually is - a serial
// event loop, an actor mailbox, or the caller's own goroutine - only that it
// can answer "am I already here?" and accept tasks in FIFO order.
//
// # Delivery Affinity
//
// RunOn is the single routing primitive:
//
//   - If the caller is already on the target context, the task runs inline
//     before RunOn returns.
//   - Otherwise the task is queued on the context and executed later by the
//     goroutine that drains it. RunOn returns without waiting.
//
// Tasks submitted to the same context run in submission order regardless of
// which goroutine submitted them. No ordering holds across distinct contexts.
//
// # Implementations
//
// Two implementations are provided:
//
//   - Loop: a single-goroutine serial task queue with Start/Stop lifecycle.
//     This is the usual home context for receivers living on a worker.
//
//   - Inline(): a context that is always current, so every task runs on the
//     submitting goroutine. Useful for tests and single-threaded programs.
//
// # Panic Isolation
//
// Runner executes tasks with panic recovery so a misbehaving callback never
// kills the loop goroutine or corrupts the caller. Loops run every task
// through their Runner; panics are reported via a configurable PanicHandler.
//
// # Usage
//
//	loop := exec.NewLoop()
//	if err := loop.Start(); err != nil {
//	    log.Fatal(err)
//	}
//	defer loop.Stop(context.Background())
//
//	exec.RunOn(loop, func() {
//	    // runs on the loop goroutine
//	})
package exec
