// internal/app/system/keylock/keylock.go

// Package keylock provides mutual exclusion scoped to an entity id.
//
// The engines use one Map per entity family (groups, sessions) so that
// read-then-mutate operations against the same entity serialize: a join
// request resolves at most once, and a session delete cannot interleave
// with a task create against the same session. Locks are created on
// demand and reclaimed when the last holder releases them, so the map
// does not grow with the number of entities ever touched.
package keylock

import "sync"

type entry struct {
	mu   sync.Mutex
	refs int
}

// Map is a set of named mutexes. The zero value is not usable; call New.
type Map struct {
	mu    sync.Mutex
	locks map[string]*entry
}

// New returns an empty lock map.
func New() *Map {
	return &Map{locks: make(map[string]*entry)}
}

// Lock acquires the mutex for key, blocking while another caller holds it.
// It returns the release function; callers should defer it immediately.
func (m *Map) Lock(key string) (unlock func()) {
	m.mu.Lock()
	e, ok := m.locks[key]
	if !ok {
		e = &entry{}
		m.locks[key] = e
	}
	e.refs++
	m.mu.Unlock()

	e.mu.Lock()

	var once sync.Once
	return func() {
		once.Do(func() {
			e.mu.Unlock()
			m.mu.Lock()
			e.refs--
			if e.refs == 0 {
				delete(m.locks, key)
			}
			m.mu.Unlock()
		})
	}
}
