package selection

import (
	"sync"
	"time"
)

// Store keeps one selection per session.
type Store struct {
	mu      sync.Mutex
	sets    map[string]Set
	touched map[string]time.Time
	now     func() time.Time
}

func NewStore() *Store {
	return &Store{
		sets:    make(map[string]Set),
		touched: make(map[string]time.Time),
		now:     time.Now,
	}
}

// Get returns a copy of the session selection.
func (st *Store) Get(session string) Set {
	st.mu.Lock()
	defer st.mu.Unlock()
	return st.sets[session].Clone()
}

// Toggle flips id and returns the resulting selection.
func (st *Store) Toggle(session, id string) Set {
	return st.update(session, func(s Set) { s.Toggle(id) })
}

// SelectAllVisible applies the master checkbox and returns the resulting selection.
func (st *Store) SelectAllVisible(session string, visible []string) Set {
	return st.update(session, func(s Set) { s.SelectAllVisible(visible) })
}

// Prune drops ids outside visible.
func (st *Store) Prune(session string, visible []string) Set {
	return st.update(session, func(s Set) { s.Prune(visible) })
}

// Replace swaps the selection for ids.
func (st *Store) Replace(session string, ids []string) Set {
	st.mu.Lock()
	defer st.mu.Unlock()
	s := NewSet(ids...)
	st.put(session, s)
	return s.Clone()
}

// Clear forgets the session selection.
func (st *Store) Clear(session string) {
	st.mu.Lock()
	defer st.mu.Unlock()
	st.put(session, nil)
}

// Sweep forgets selections last changed before cutoff and returns how many.
// A selection idle for longer than the session TTL belongs to an expired session.
func (st *Store) Sweep(cutoff time.Time) int {
	st.mu.Lock()
	defer st.mu.Unlock()
	n := 0
	for session, at := range st.touched {
		if at.Before(cutoff) {
			st.put(session, nil)
			n++
		}
	}
	return n
}

// Len returns the number of sessions holding a selection.
func (st *Store) Len() int {
	st.mu.Lock()
	defer st.mu.Unlock()
	return len(st.sets)
}

func (st *Store) update(session string, fn func(Set)) Set {
	st.mu.Lock()
	defer st.mu.Unlock()
	s, ok := st.sets[session]
	if !ok {
		s = Set{}
	}
	fn(s)
	st.put(session, s)
	return s.Clone()
}

// put stores s, dropping the session when s is empty. Caller holds mu.
func (st *Store) put(session string, s Set) {
	if len(s) == 0 {
		delete(st.sets, session)
		delete(st.touched, session)
		return
	}
	st.sets[session] = s
	st.touched[session] = st.now()
}
