package session

import (
	"testing"
	"time"
)

func TestManagerCreateAndGet(t *testing.T) {
	m := NewManager(func() (Backend, error) { return newFakeBackend(), nil }, time.Hour)
	defer m.Stop()

	id, st, err := m.Create()
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if id == "" || st == nil {
		t.Fatal("empty id or nil store")
	}
	if st.State() != Anonymous {
		t.Errorf("new store state = %v, want Anonymous", st.State())
	}

	got, ok := m.Get(id)
	if !ok || got != st {
		t.Error("Get did not return the created store")
	}
	if _, ok := m.Get("unknown"); ok {
		t.Error("Get found a store for an unknown id")
	}
	if n := m.Count(); n != 1 {
		t.Errorf("count = %d, want 1", n)
	}
}

func TestManagerExpiresIdleStores(t *testing.T) {
	m := NewManager(func() (Backend, error) { return newFakeBackend(), nil }, time.Minute)
	defer m.Stop()

	id, _, err := m.Create()
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	// Within the TTL the store survives.
	m.expireIdle(time.Now().Add(30 * time.Second))
	if _, ok := m.Get(id); !ok {
		t.Fatal("store expired before its TTL")
	}

	// Get refreshed the idle clock, so expiry counts from now.
	m.expireIdle(time.Now().Add(2 * time.Minute))
	if _, ok := m.Get(id); ok {
		t.Error("idle store not expired")
	}
	if n := m.Count(); n != 0 {
		t.Errorf("count = %d, want 0", n)
	}
}

func TestManagerStopClosesStores(t *testing.T) {
	b := newFakeBackend()
	m := NewManager(func() (Backend, error) { return b, nil }, time.Hour)

	if _, _, err := m.Create(); err != nil {
		t.Fatalf("create: %v", err)
	}
	m.Stop()

	if !b.closed.Load() {
		t.Error("backend not released on Stop")
	}
	if n := m.Count(); n != 0 {
		t.Errorf("count = %d, want 0", n)
	}
}
