package authwatch

import "sync"

// Signal is a minimal broadcast observable. It replaces the browser
// "authChange" window event: login and logout publish to it, and the
// watcher re-checks on every emission.
type Signal struct {
	mu   sync.Mutex
	next int
	subs map[int]chan struct{}
}

func NewSignal() *Signal {
	return &Signal{subs: make(map[int]chan struct{})}
}

// Subscribe returns a notification channel and an unsubscribe func.
// The channel carries edge notifications only; a slow subscriber
// coalesces bursts rather than blocking the emitter.
func (s *Signal) Subscribe() (<-chan struct{}, func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.next
	s.next++

	ch := make(chan struct{}, 1)
	s.subs[id] = ch

	return ch, func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.subs, id)
	}
}

// Emit notifies all current subscribers without blocking.
func (s *Signal) Emit() {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, ch := range s.subs {
		select {
		case ch <- struct{}{}:
		default:
		}
	}
}
