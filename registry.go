package courier

import "sync"

// registry is the subscription table: an insertion-ordered collection of
// entries per type key. All operations are safe to call from arbitrary
// goroutines, including from inside a delivery callback; no lock is ever
// held while a callback runs.
type registry struct {
	mu   sync.RWMutex
	subs map[TypeKey][]*Subscription
}

func newRegistry() *registry {
	return &registry{
		subs: make(map[TypeKey][]*Subscription),
	}
}

// add appends a new entry. Duplicates are never coalesced.
func (r *registry) add(sub *Subscription) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.subs[sub.key] = append(r.subs[sub.key], sub)
}

// snapshot returns an isolated copy of the entries for key, safe to
// iterate while the table is mutated concurrently.
func (r *registry) snapshot(key TypeKey) []*Subscription {
	r.mu.RLock()
	defer r.mu.RUnlock()

	subs := r.subs[key]
	if len(subs) == 0 {
		return nil
	}

	out := make([]*Subscription, len(subs))
	copy(out, subs)
	return out
}

// removeOwner removes every entry owned by owner, irrespective of type or
// token. Returns the number removed; zero is a normal outcome.
func (r *registry) removeOwner(owner *Receiver) int {
	return r.removeIf(func(s *Subscription) bool {
		return s.owner == owner
	})
}

// remove removes owner's entries for key. A wildcard token removes every
// token; a specific token removes only entries whose stored token equals
// it exactly. This is stricter than delivery matching: a stored wildcard
// entry is not removed by a specific token.
func (r *registry) remove(owner *Receiver, key TypeKey, token Token) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	subs := r.subs[key]
	if len(subs) == 0 {
		return 0
	}

	removed := 0
	kept := subs[:0]
	for _, s := range subs {
		if s.owner == owner && (token.IsWildcard() || s.token == token) {
			s.cancel()
			removed++
			continue
		}
		kept = append(kept, s)
	}
	r.store(key, kept)
	return removed
}

// removeSub removes a single entry by identity.
func (r *registry) removeSub(sub *Subscription) bool {
	return r.removeIf(func(s *Subscription) bool {
		return s == sub
	}) > 0
}

// pruneDead removes every entry whose receiver is dead at the time of the
// call.
func (r *registry) pruneDead() int {
	return r.removeIf(func(s *Subscription) bool {
		return !s.owner.Alive()
	})
}

// removeIf removes entries matching the predicate. Removal compacts each
// slice in place, so the relative order of surviving entries is preserved.
func (r *registry) removeIf(match func(*Subscription) bool) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	removed := 0
	for key, subs := range r.subs {
		kept := subs[:0]
		for _, s := range subs {
			if match(s) {
				s.cancel()
				removed++
				continue
			}
			kept = append(kept, s)
		}
		r.store(key, kept)
	}
	return removed
}

// store writes back a compacted slice, dropping empty keys. Caller holds
// the write lock.
func (r *registry) store(key TypeKey, subs []*Subscription) {
	if len(subs) == 0 {
		delete(r.subs, key)
		return
	}
	r.subs[key] = subs
}

// count returns the total number of entries.
func (r *registry) count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	n := 0
	for _, subs := range r.subs {
		n += len(subs)
	}
	return n
}

// countOf returns the number of entries for key.
func (r *registry) countOf(key TypeKey) int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.subs[key])
}
