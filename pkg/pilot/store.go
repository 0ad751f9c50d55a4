package pilot

import "sync"

// Store holds the current assumptions behind a mutex and fans out
// change notifications. Subscribers that stop draining miss updates
// rather than blocking the writer.
type Store struct {
	mu   sync.RWMutex
	a    Assumptions
	subs []chan Assumptions
}

// NewStore returns a store seeded with a.
func NewStore(a Assumptions) *Store {
	return &Store{a: a}
}

// Get returns the current assumptions.
func (s *Store) Get() Assumptions {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.a
}

// Update validates a, installs it as current, and notifies
// subscribers. On validation failure the current assumptions are
// unchanged.
func (s *Store) Update(a Assumptions) error {
	if err := a.Validate(); err != nil {
		return err
	}

	s.mu.Lock()
	s.a = a
	subs := make([]chan Assumptions, len(s.subs))
	copy(subs, s.subs)
	s.mu.Unlock()

	for _, ch := range subs {
		select {
		case ch <- a:
		default:
		}
	}
	return nil
}

// Subscribe registers a buffered change channel. It is never closed;
// subscribers select on it alongside their own done signal.
func (s *Store) Subscribe() <-chan Assumptions {
	ch := make(chan Assumptions, 4)
	s.mu.Lock()
	s.subs = append(s.subs, ch)
	s.mu.Unlock()
	return ch
}
