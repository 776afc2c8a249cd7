package backend

import (
	"log"
	"sync"
)

// EventKind identifies a session-change notification.
type EventKind int

const (
	// EventInitialSession replays the state held at subscribe time. A
	// subscriber that already ran its own blocking session fetch must
	// ignore it.
	EventInitialSession EventKind = iota
	EventSignedIn
	EventSignedOut
	EventTokenRefreshed
)

func (k EventKind) String() string {
	switch k {
	case EventInitialSession:
		return "INITIAL_SESSION"
	case EventSignedIn:
		return "SIGNED_IN"
	case EventSignedOut:
		return "SIGNED_OUT"
	case EventTokenRefreshed:
		return "TOKEN_REFRESHED"
	default:
		return "UNKNOWN"
	}
}

// Event is a session-change notification. Session is nil for EventSignedOut
// and for an EventInitialSession replayed while anonymous.
type Event struct {
	Kind    EventKind
	Session *Session
}

// notifier fans session-change events out to subscribers. New subscribers
// immediately receive an EventInitialSession replay of the current state.
type notifier struct {
	mu   sync.Mutex
	subs map[int]chan Event
	next int
}

func newNotifier() *notifier {
	return &notifier{subs: make(map[int]chan Event)}
}

// subscribe registers a listener and replays the given initial state to it.
// The returned func unsubscribes and closes the channel.
func (n *notifier) subscribe(replay Event) (<-chan Event, func()) {
	n.mu.Lock()
	defer n.mu.Unlock()

	ch := make(chan Event, 16)
	id := n.next
	n.next++
	n.subs[id] = ch
	ch <- replay

	cancel := func() {
		n.mu.Lock()
		defer n.mu.Unlock()
		if c, ok := n.subs[id]; ok {
			delete(n.subs, id)
			close(c)
		}
	}
	return ch, cancel
}

// publish delivers an event to every subscriber. A subscriber that stopped
// draining its channel is dropped rather than blocking the publisher.
func (n *notifier) publish(ev Event) {
	n.mu.Lock()
	defer n.mu.Unlock()

	for id, ch := range n.subs {
		select {
		case ch <- ev:
		default:
			log.Printf("session event %s dropped for slow subscriber %d", ev.Kind, id)
			delete(n.subs, id)
			close(ch)
		}
	}
}
