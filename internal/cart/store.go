package cart

import "sync"

// Store holds one ledger per storefront session. Every operation runs under
// the store lock, so concurrent requests from the same session cannot lose
// updates.
type Store struct {
	mu      sync.Mutex
	ledgers map[string]*Ledger
}

// NewStore creates an empty session store.
func NewStore() *Store {
	return &Store{
		ledgers: make(map[string]*Ledger),
	}
}

// Do runs fn against the session's ledger, creating the ledger on first
// touch. fn must not retain the ledger beyond the call.
func (s *Store) Do(session string, fn func(*Ledger)) {
	s.mu.Lock()
	defer s.mu.Unlock()

	l, ok := s.ledgers[session]
	if !ok {
		l = New()
		s.ledgers[session] = l
	}
	fn(l)
}

// Drop discards a session's ledger entirely. Unknown sessions are ignored.
func (s *Store) Drop(session string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.ledgers, session)
}
