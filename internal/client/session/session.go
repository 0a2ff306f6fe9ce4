// Package session holds the current authenticated identity for the
// process: at most one email at a time, in memory only. Dependent screens
// subscribe for change notifications instead of caching the value.
package session

import "sync"

// Subscriber receives the new session value. signedIn is false when the
// session was cleared (email is then empty).
type Subscriber func(email string, signedIn bool)

// Store is the process-wide session holder. The zero value is not usable;
// construct with NewStore. Safe for concurrent use: command flows mutate it
// while the prompt and screens read it.
type Store struct {
	mu       sync.RWMutex
	email    string
	signedIn bool
	subs     map[int]Subscriber
	nextID   int
}

func NewStore() *Store {
	return &Store{subs: make(map[int]Subscriber)}
}

// Current returns the session email and whether a session is active.
func (s *Store) Current() (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.email, s.signedIn
}

// Set replaces the current session and notifies all subscribers
// synchronously before returning. Callers must only invoke Set after a
// successful credential verification.
func (s *Store) Set(email string) {
	s.mu.Lock()
	s.email = email
	s.signedIn = true
	subs := s.snapshot()
	s.mu.Unlock()

	for _, fn := range subs {
		fn(email, true)
	}
}

// Clear drops the current session and notifies subscribers. Used on
// explicit sign-out.
func (s *Store) Clear() {
	s.mu.Lock()
	s.email = ""
	s.signedIn = false
	subs := s.snapshot()
	s.mu.Unlock()

	for _, fn := range subs {
		fn("", false)
	}
}

// Subscribe registers fn for session changes and returns a cancel func.
// Notifications run on the mutating goroutine, outside the store lock.
func (s *Store) Subscribe(fn Subscriber) func() {
	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.subs[id] = fn
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		delete(s.subs, id)
		s.mu.Unlock()
	}
}

// snapshot copies the subscriber list; callers must hold the lock.
func (s *Store) snapshot() []Subscriber {
	subs := make([]Subscriber, 0, len(s.subs))
	for _, fn := range s.subs {
		subs = append(subs, fn)
	}
	return subs
}
