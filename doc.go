// Package courier provides an in-process, type-safe publish/subscribe
// message bus with receiver context affinity.
//
// Messages are plain Go values. A subscription binds a message type, an
// optional filter token, a receiver, and a callback. Sends from any
// goroutine reach every matching live subscriber: inline when the sender
// is already on the receiver's execution context, queued onto that
// context otherwise.
//
// # Receivers and Contexts
//
// A receiver is any type embedding *Receiver. The receiver names its home
// context (usually an exec.Loop) at construction and is closed when the
// owning object goes away:
//
//	type Widget struct {
//	    *courier.Receiver
//	    seen []Ping
//	}
//
//	loop := exec.NewLoop()
//	loop.Start()
//
//	w := &Widget{Receiver: courier.NewReceiver(loop)}
//	courier.Register(bus, w, courier.Wildcard, func(p Ping) {
//	    w.seen = append(w.seen, p) // runs on loop's goroutine
//	})
//
//	courier.Send(bus, Ping{Seq: 1}, courier.Wildcard)
//
// Closing a receiver never unregisters it; stale entries are skipped at
// delivery and reclaimed by PruneDead or an explicit Unregister. This
// two-step model means a receiver's destruction can never race delivery
// into a crash.
//
// # Tokens
//
// Tokens narrow delivery within a type. The wildcard (empty) token
// matches everything on the other side:
//
//	courier.Register(bus, w, courier.Token("alpha"), onPing)
//	courier.Send(bus, Ping{}, courier.Token("alpha")) // delivered
//	courier.Send(bus, Ping{}, courier.Token("beta"))  // filtered out
//	courier.Send(bus, Ping{}, courier.Wildcard)       // delivered
//
// Unregistration is stricter: Unregister with a specific token removes
// only entries stored with exactly that token, while a wildcard token
// removes every entry for the (receiver, type) pair.
//
// # Ordering
//
// Deliveries bound for the same context execute in submission order,
// regardless of the sending goroutine. A single receiver registered once
// therefore observes messages from one sender in send order. Nothing is
// promised across distinct contexts.
//
// # Failure Isolation
//
// A panicking callback is recovered, counted, and logged; it never
// corrupts the registry, kills a loop, or stops delivery to other
// subscribers. Zero subscribers, dead subscribers, and double
// unregistration are normal, silent outcomes.
//
// # Observability
//
// Bus.Stats returns delivery counters, and NewCollector exposes them as
// Prometheus metrics. Pass a zerolog logger via WithLogger to surface
// panics and drops.
package courier
