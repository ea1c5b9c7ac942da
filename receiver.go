package courier

import (
	"sync/atomic"

	"github.com/courierbus/courier/exec"
)

// Owner is anything that can own subscriptions. It is satisfied by
// embedding a *Receiver:
//
//	type Widget struct {
//	    *courier.Receiver
//	    // ...
//	}
//
//	w := &Widget{Receiver: courier.NewReceiver(loop)}
type Owner interface {
	receiverHandle() *Receiver
}

// Receiver anchors subscriptions to an owning execution context and a
// liveness flag. The bus holds receivers by identity only; a subscription
// never keeps its receiver alive, and closing a receiver never removes its
// subscriptions by itself - they go stale until Unregister or PruneDead.
type Receiver struct {
	ctx  exec.Context
	dead atomic.Bool
}

// NewReceiver creates a live receiver owned by ctx. A nil ctx means the
// receiver has no home context and its callbacks run inline on whichever
// goroutine sends to it.
func NewReceiver(ctx exec.Context) *Receiver {
	return &Receiver{ctx: ctx}
}

func (r *Receiver) receiverHandle() *Receiver { return r }

// Context returns the execution context that owns the receiver, or nil.
func (r *Receiver) Context() exec.Context {
	return r.ctx
}

// Alive reports whether the receiver has not been closed. The answer can
// go stale immediately after the call; delivery re-checks liveness right
// before invoking the callback.
func (r *Receiver) Alive() bool {
	return r != nil && !r.dead.Load()
}

// Close marks the receiver dead. Closing is idempotent and safe from any
// goroutine, including from inside a delivery callback.
func (r *Receiver) Close() {
	if r != nil {
		r.dead.Store(true)
	}
}
