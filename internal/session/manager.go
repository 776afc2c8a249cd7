package session

import (
	"log"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Manager owns one Store per browser session, keyed by the opaque session
// cookie. Idle stores are expired by a cleanup loop.
type Manager struct {
	factory func() (Backend, error)
	idleTTL time.Duration

	mu      sync.Mutex
	entries map[string]*entry
	stop    chan struct{}
}

type entry struct {
	store    *Store
	lastSeen time.Time
}

// NewManager builds a manager that creates store backends through factory
// and drops stores idle for longer than idleTTL.
func NewManager(factory func() (Backend, error), idleTTL time.Duration) *Manager {
	m := &Manager{
		factory: factory,
		idleTTL: idleTTL,
		entries: make(map[string]*entry),
		stop:    make(chan struct{}),
	}
	go m.cleanupLoop()
	return m
}

// Get returns the store behind a session cookie, refreshing its idle clock.
func (m *Manager) Get(id string) (*Store, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.entries[id]
	if !ok {
		return nil, false
	}
	e.lastSeen = time.Now()
	return e.store, true
}

// Create builds a fresh store, runs its initial session fetch, and returns
// the new cookie value.
func (m *Manager) Create() (string, *Store, error) {
	b, err := m.factory()
	if err != nil {
		return "", nil, err
	}

	id := uuid.NewString()
	st := New(b, func() {
		log.Printf("session %s ended, client redirects to /signin", id)
	})
	st.Start()

	m.mu.Lock()
	m.entries[id] = &entry{store: st, lastSeen: time.Now()}
	m.mu.Unlock()
	return id, st, nil
}

// Count reports how many stores are live.
func (m *Manager) Count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.entries)
}

// Stop ends the cleanup loop and closes every store.
func (m *Manager) Stop() {
	close(m.stop)
	m.mu.Lock()
	defer m.mu.Unlock()
	for id, e := range m.entries {
		e.store.Close()
		delete(m.entries, id)
	}
}

func (m *Manager) cleanupLoop() {
	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			m.expireIdle(time.Now())
		case <-m.stop:
			return
		}
	}
}

func (m *Manager) expireIdle(now time.Time) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for id, e := range m.entries {
		if now.Sub(e.lastSeen) > m.idleTTL {
			e.store.Close()
			delete(m.entries, id)
		}
	}
}
