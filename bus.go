package courier

import (
	"sync/atomic"

	"github.com/rs/zerolog"

	"github.com/courierbus/courier/exec"
)

// Bus routes typed messages to subscribed receivers. Sends from any
// goroutine are delivered inline when the sender is already on the
// receiver's context and queued onto that context otherwise. A Bus is
// ready to use from construction and needs no teardown; it owns no
// goroutines of its own.
type Bus struct {
	registry *registry
	runner   *exec.Runner
	log      zerolog.Logger

	// Stats
	sent      atomic.Uint64
	matched   atomic.Uint64
	delivered atomic.Uint64
	enqueued  atomic.Uint64
	dropped   atomic.Uint64
	panics    atomic.Uint64
}

// New creates a new bus with the given options.
func New(opts ...BusOption) *Bus {
	config := defaultBusConfig()
	for _, opt := range opts {
		opt(&config)
	}

	b := &Bus{
		registry: newRegistry(),
		log:      config.logger,
	}

	b.runner = exec.NewRunner(exec.WithPanicHandler(func(v any, stack []byte) {
		b.panics.Add(1)
		b.log.Error().Interface("panic", v).Bytes("stack", stack).Msg("delivery callback panicked")
		if config.panicHandler != nil {
			config.panicHandler(v, stack)
		}
	}))

	return b
}

// Handler handles messages of type T.
type Handler[T any] interface {
	Handle(msg T)
}

// Register subscribes fn to messages of type T sent on b with a matching
// token. Registering twice yields two independent subscriptions and two
// deliveries per matching send.
func Register[T any](b *Bus, owner Owner, token Token, fn func(T), opts ...SubscribeOption) (*Subscription, error) {
	if fn == nil {
		return nil, ErrNilCallback
	}
	deliver := func(msg any) {
		if m, ok := msg.(T); ok {
			fn(m)
		}
	}
	return b.register(KeyOf[T](), token, owner, deliver, opts...)
}

// RegisterHandler subscribes h's Handle method to messages of type T.
func RegisterHandler[T any](b *Bus, owner Owner, token Token, h Handler[T], opts ...SubscribeOption) (*Subscription, error) {
	if h == nil {
		return nil, ErrNilCallback
	}
	return Register(b, owner, token, h.Handle, opts...)
}

// register appends a new subscription entry. It is safe to call from any
// goroutine, including from inside a delivery callback.
func (b *Bus) register(key TypeKey, token Token, owner Owner, deliver func(any), opts ...SubscribeOption) (*Subscription, error) {
	if owner == nil {
		return nil, ErrNilReceiver
	}
	rcv := owner.receiverHandle()
	if rcv == nil {
		return nil, ErrNilReceiver
	}

	config := subscribeConfig{}
	for _, opt := range opts {
		opt(&config)
	}

	sub := newSubscription(key, token, rcv, deliver, config)
	b.registry.add(sub)
	return sub, nil
}

// Send delivers msg to every live subscriber of T whose token matches.
// It returns once every matching delivery has either run inline or been
// queued on its receiver's context; it never waits for queued deliveries.
// Zero subscribers, dead subscribers, and unknown types are normal,
// silent outcomes.
func Send[T any](b *Bus, msg T, token Token) {
	b.send(KeyOf[T](), token, msg)
}

func (b *Bus) send(key TypeKey, token Token, msg any) {
	b.sent.Add(1)

	for _, sub := range b.registry.snapshot(key) {
		if !sub.token.Matches(token) {
			continue
		}
		if !sub.owner.Alive() {
			continue
		}
		b.matched.Add(1)
		b.dispatch(sub, msg)
	}
}

// dispatch routes one delivery to the subscription's owning context.
func (b *Bus) dispatch(sub *Subscription, msg any) {
	task := func() {
		// Both can lapse between submission and execution: the receiver
		// may die, or the entry may be unregistered with tasks in flight.
		if !sub.Active() || !sub.owner.Alive() {
			b.dropped.Add(1)
			return
		}
		if !sub.claimOnce() {
			return
		}

		result := b.runner.Run(func() { sub.deliver(msg) })
		if result.Panicked {
			return
		}
		b.delivered.Add(1)

		if sub.once {
			b.registry.removeSub(sub)
		}
	}

	ctx := sub.owner.Context()
	if ctx == nil {
		ctx = exec.Inline()
	}

	switch exec.RunOn(ctx, task) {
	case exec.Queued:
		b.enqueued.Add(1)
	case exec.Rejected:
		b.dropped.Add(1)
		b.log.Warn().
			Str("subscription", sub.id).
			Str("type", sub.key.String()).
			Msg("delivery rejected by receiver context")
	}
}

// UnregisterAll removes every subscription owned by owner. Calling it for
// an owner with no subscriptions is a no-op.
func (b *Bus) UnregisterAll(owner Owner) {
	rcv := handleOf(owner)
	if rcv == nil {
		return
	}
	b.registry.removeOwner(rcv)
}

// Unregister removes owner's subscriptions for type T. A wildcard token
// removes every token; a specific token removes only entries registered
// with exactly that token.
func Unregister[T any](b *Bus, owner Owner, token Token) {
	rcv := handleOf(owner)
	if rcv == nil {
		return
	}
	b.registry.remove(rcv, KeyOf[T](), token)
}

// Remove removes a single subscription. It reports whether the entry was
// still registered.
func (b *Bus) Remove(sub *Subscription) bool {
	if sub == nil {
		return false
	}
	return b.registry.removeSub(sub)
}

// PruneDead removes every subscription whose receiver has been closed.
// Returns the number removed; zero is a normal outcome.
func (b *Bus) PruneDead() int {
	return b.registry.pruneDead()
}

// Count returns the total number of subscriptions.
func (b *Bus) Count() int {
	return b.registry.count()
}

// CountOf returns the number of subscriptions for key.
func (b *Bus) CountOf(key TypeKey) int {
	return b.registry.countOf(key)
}

// Stats returns a point-in-time snapshot of the bus counters.
func (b *Bus) Stats() Stats {
	return Stats{
		Sent:      b.sent.Load(),
		Matched:   b.matched.Load(),
		Delivered: b.delivered.Load(),
		Enqueued:  b.enqueued.Load(),
		Dropped:   b.dropped.Load(),
		Panics:    b.panics.Load(),
		Active:    b.registry.count(),
	}
}

// Stats contains bus statistics.
type Stats struct {
	// Sent is the number of Send calls.
	Sent uint64

	// Matched is the number of deliveries that passed token and liveness
	// checks at send time.
	Matched uint64

	// Delivered is the number of callbacks that ran to completion.
	Delivered uint64

	// Enqueued is the number of deliveries queued for another context.
	Enqueued uint64

	// Dropped is the number of deliveries lost to full queues, removed
	// subscriptions, or receivers that died in flight.
	Dropped uint64

	// Panics is the number of callbacks that panicked.
	Panics uint64

	// Active is the current number of subscriptions.
	Active int
}

// handleOf resolves an owner to its receiver handle, tolerating nil.
func handleOf(owner Owner) *Receiver {
	if owner == nil {
		return nil
	}
	return owner.receiverHandle()
}
