package draft

import "sync"

// Store tracks at most one in-progress draft per Key. Handlers run one inbound
// action to completion at a time, so callers may mutate the returned draft and
// Put it back; the mutex only guards the map itself.
type Store struct {
	mu     sync.Mutex
	drafts map[Key]*Draft
}

// NewStore returns an empty draft store.
func NewStore() *Store {
	return &Store{drafts: make(map[Key]*Draft)}
}

// Put registers or replaces the draft for a key. Beginning a new configuration
// session discards any previous draft under the same key.
func (s *Store) Put(key Key, d *Draft) {
	if s == nil || d == nil {
		return
	}
	s.mu.Lock()
	s.drafts[key] = d
	s.mu.Unlock()
}

// Get returns the active draft for a key, if any.
func (s *Store) Get(key Key) (*Draft, bool) {
	if s == nil {
		return nil, false
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	d, ok := s.drafts[key]
	return d, ok
}

// Discard drops the draft for a key. Used by both terminal transitions,
// confirm and cancel.
func (s *Store) Discard(key Key) {
	if s == nil {
		return
	}
	s.mu.Lock()
	delete(s.drafts, key)
	s.mu.Unlock()
}
