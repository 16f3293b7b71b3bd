package store

import (
	"sync"
	"time"
)

// Store is the single owner of the application state. Actions run one at a
// time under the write lock, so each action sees a fully settled prior
// snapshot; there is no finer-grained locking discipline because there is no
// concurrent writer inside an action.
type Store struct {
	mu        sync.RWMutex
	state     *State
	version   uint64
	clock     func() time.Time
	listeners []func()
}

// New creates a store over an empty aggregate using the wall clock.
func New() *Store {
	return NewWithClock(time.Now)
}

// NewWithClock creates a store with an injectable clock, used by elapsed-time
// rules (energy refill, idle income) and pinned down in tests.
func NewWithClock(clock func() time.Time) *Store {
	return &Store{
		state: NewState(),
		clock: clock,
	}
}

// Now returns the store's current time.
func (st *Store) Now() time.Time {
	return st.clock()
}

// Version returns the number of installed snapshots. It only ever grows.
func (st *Store) Version() uint64 {
	st.mu.RLock()
	defer st.mu.RUnlock()

	return st.version
}

// View runs fn against the current snapshot under a read lock. fn must not
// retain or mutate anything it is handed.
func (st *Store) View(fn func(*State)) {
	st.mu.RLock()
	defer st.mu.RUnlock()

	fn(st.state)
}

// Update runs an action against a deep clone of the current snapshot. When
// the action returns nil the clone is installed as the new snapshot and
// change listeners fire; on error the clone is discarded and the published
// snapshot is left byte-for-byte unchanged.
func (st *Store) Update(action func(*State) error) error {
	st.mu.Lock()

	next := st.state.Clone()
	if err := action(next); err != nil {
		st.mu.Unlock()

		return err
	}

	st.state = next
	st.version++
	listeners := st.listeners
	st.mu.Unlock()

	for _, notify := range listeners {
		notify()
	}

	return nil
}

// Hydrate replaces the aggregate wholesale, without firing listeners. Used
// once at startup to restore the persisted snapshot.
func (st *Store) Hydrate(state *State) {
	if state == nil {
		return
	}

	st.mu.Lock()
	defer st.mu.Unlock()

	st.state = state
}

// Subscribe registers a listener invoked after every installed snapshot.
// Listeners run synchronously on the updating goroutine and must be cheap;
// the persistence scheduler only flags a pending write here.
func (st *Store) Subscribe(fn func()) {
	st.mu.Lock()
	defer st.mu.Unlock()

	st.listeners = append(st.listeners, fn)
}
