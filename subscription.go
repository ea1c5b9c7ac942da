package courier

import (
	"sync/atomic"

	"github.com/google/uuid"
)

// Subscription is one registered (type, token, receiver, callback)
// binding. The tuple is immutable after creation; removing the entry from
// the bus is the only state change it ever sees. Registering the same
// callback twice yields two independent subscriptions and therefore two
// deliveries per matching send.
type Subscription struct {
	id      string
	key     TypeKey
	token   Token
	owner   *Receiver
	deliver func(any)
	once    bool

	cancelled atomic.Bool
	fired     atomic.Bool
}

func newSubscription(key TypeKey, token Token, owner *Receiver, deliver func(any), cfg subscribeConfig) *Subscription {
	return &Subscription{
		id:      uuid.NewString(),
		key:     key,
		token:   token,
		owner:   owner,
		deliver: deliver,
		once:    cfg.once,
	}
}

// ID returns the unique subscription identifier.
func (s *Subscription) ID() string {
	return s.id
}

// Key returns the subscribed message type key.
func (s *Subscription) Key() TypeKey {
	return s.key
}

// Token returns the subscription's filter token.
func (s *Subscription) Token() Token {
	return s.token
}

// Receiver returns the owning receiver.
func (s *Subscription) Receiver() *Receiver {
	return s.owner
}

// Active reports whether the subscription is still registered. Queued
// deliveries check this at execution time, so a subscription removed while
// tasks are in flight stops receiving immediately.
func (s *Subscription) Active() bool {
	return !s.cancelled.Load()
}

// cancel marks the subscription removed. Called by the registry under its
// write lock on every removal path.
func (s *Subscription) cancel() {
	s.cancelled.Store(true)
}

// claimOnce reports whether this delivery is the first for a once
// subscription. Non-once subscriptions always claim.
func (s *Subscription) claimOnce() bool {
	if !s.once {
		return true
	}
	return s.fired.CompareAndSwap(false, true)
}
