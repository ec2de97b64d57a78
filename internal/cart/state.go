package cart

import "sync"

// State holds the authoritative in-memory cart for one session. The
// mutation engine is its only writer; consumers get defensive copies. The
// lock only protects the swap itself; the engine's validate-then-commit
// sequence is deliberately not serialized (see Engine).
type State struct {
	mu   sync.RWMutex
	cart Cart
}

// NewState builds a container seeded with the restored snapshot.
func NewState(initial Cart) *State {
	return &State{cart: initial.Clone()}
}

// Current returns a read-only snapshot of the cart.
func (s *State) Current() Cart {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cart.Clone()
}

// Replace swaps in a fully-built cart. No validation happens here; the
// engine enforces all invariants before calling.
func (s *State) Replace(next Cart) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cart = next.Clone()
}
