package api

import "sync"

// StateProducer holds at most one listener of type L. Components that emit
// notifications embed it and call Listener() at the time of the event.
type StateProducer[L any] struct {
	mu       sync.RWMutex
	listener L
	set      bool
}

// SetListener replaces the current listener.
func (p *StateProducer[L]) SetListener(listener L) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.listener = listener
	p.set = true
}

// ClearListener removes the current listener.
func (p *StateProducer[L]) ClearListener() {
	p.mu.Lock()
	defer p.mu.Unlock()
	var zero L
	p.listener = zero
	p.set = false
}

// Listener returns the current listener and whether one is set.
func (p *StateProducer[L]) Listener() (L, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.listener, p.set
}
