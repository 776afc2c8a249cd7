// Package session holds the per-browser-session source of truth for "who is
// signed in and with what profile". A Store runs a small state machine fed
// by the backend's session-change notifications; a Manager owns the stores,
// keyed by the session cookie.
package session

import (
	"errors"
	"log"
	"sync"
	"sync/atomic"

	"roktodan/internal/backend"
	"roktodan/internal/models"
)

// State is the lifecycle position of a Store.
type State int

const (
	Uninitialized State = iota
	Initializing
	Anonymous
	Authenticated
)

func (s State) String() string {
	switch s {
	case Initializing:
		return "initializing"
	case Anonymous:
		return "anonymous"
	case Authenticated:
		return "authenticated"
	default:
		return "uninitialized"
	}
}

// ErrNoUser is returned by operations that require an authenticated session.
var ErrNoUser = errors.New("no user logged in")

// Backend is the slice of the hosted-service client the store depends on.
// *backend.Client satisfies it.
type Backend interface {
	CurrentSession() (*backend.Session, error)
	Subscribe() (<-chan backend.Event, func())
	FetchProfile(userID string) (*models.Profile, error)
	UpdateProfile(userID string, updates map[string]interface{}) error
	SignUp(email, password string, metadata map[string]interface{}) (*backend.Session, error)
	SignIn(email, password string) (*backend.Session, error)
	VerifyOtp(email, code string) (*backend.Session, error)
	ResendOtp(email string) error
	SignOut() error
	AdoptSession(accessToken, refreshToken string) (*backend.Session, error)
	Close()
}

// Store caches the authenticated identity and its profile for one browser
// session. It is mutated only through its own methods and the backend's
// event stream; pages read it, never write it.
type Store struct {
	b           Backend
	onSignedOut func()

	mu          sync.RWMutex
	state       State
	session     *backend.Session
	identity    *models.Identity
	profile     *models.Profile
	initSettled bool

	// fetchSeq orders profile fetches: only the most recently started
	// fetch may commit its result (last-write-wins, no cancellation
	// primitive assumed).
	fetchSeq atomic.Uint64

	unsubscribe func()
}

// New builds a Store over the given backend. onSignedOut runs after a
// session-ended transition has cleared the state; it may be nil.
func New(b Backend, onSignedOut func()) *Store {
	return &Store{b: b, onSignedOut: onSignedOut, state: Uninitialized}
}

// Start performs the one blocking initial session fetch, then subscribes to
// session-change notifications. It runs exactly once per store lifetime.
// Initialization failures degrade to Anonymous; Start never returns an
// error and never leaves the store in Initializing.
func (s *Store) Start() {
	s.mu.Lock()
	if s.state != Uninitialized {
		s.mu.Unlock()
		return
	}
	s.state = Initializing
	s.mu.Unlock()

	sess, err := s.b.CurrentSession()
	if err != nil {
		log.Println("initial session fetch failed, continuing anonymous:", err)
	}

	if sess != nil {
		s.applySession(sess)
		s.fetchProfile(sess.UserID)
	}

	s.mu.Lock()
	if sess == nil {
		s.state = Anonymous
	}
	s.initSettled = true
	s.mu.Unlock()

	ch, cancel := s.b.Subscribe()
	s.mu.Lock()
	s.unsubscribe = cancel
	s.mu.Unlock()
	go s.run(ch)
}

func (s *Store) run(ch <-chan backend.Event) {
	for ev := range ch {
		s.handle(ev)
	}
}

func (s *Store) handle(ev backend.Event) {
	switch ev.Kind {
	case backend.EventInitialSession:
		s.mu.RLock()
		settled := s.initSettled
		s.mu.RUnlock()
		if settled {
			// The blocking initial fetch already handled this state;
			// acting again would duplicate the profile fetch.
			return
		}
		if ev.Session != nil {
			s.applySession(ev.Session)
			go s.fetchProfile(ev.Session.UserID)
		}

	case backend.EventSignedIn:
		if ev.Session == nil {
			return
		}
		// The sign-in entry points already applied this session and
		// fetched its profile; only a session established elsewhere
		// needs the fetch.
		s.mu.RLock()
		applied := s.session != nil && s.session.AccessToken == ev.Session.AccessToken
		s.mu.RUnlock()
		s.applySession(ev.Session)
		if !applied {
			go s.fetchProfile(ev.Session.UserID)
		}

	case backend.EventSignedOut:
		// Invalidate any in-flight profile fetch before clearing.
		s.fetchSeq.Add(1)
		s.mu.Lock()
		s.session = nil
		s.identity = nil
		s.profile = nil
		s.state = Anonymous
		hook := s.onSignedOut
		s.mu.Unlock()
		if hook != nil {
			hook()
		}

	case backend.EventTokenRefreshed:
		if ev.Session == nil {
			return
		}
		s.mu.Lock()
		s.session = ev.Session
		s.mu.Unlock()

	default:
		log.Println("unhandled session event:", ev.Kind)
	}
}

func (s *Store) applySession(sess *backend.Session) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.session = sess
	s.identity = &models.Identity{ID: sess.UserID, Email: sess.Email}
	s.state = Authenticated
}

// fetchProfile loads the profile row for the identity. Only the most
// recently started fetch commits; earlier in-flight results are dropped. A
// missing row leaves the store authenticated without a profile; any other
// failure is logged and treated the same, never escalated.
func (s *Store) fetchProfile(userID string) {
	seq := s.fetchSeq.Add(1)
	p, err := s.b.FetchProfile(userID)

	s.mu.Lock()
	defer s.mu.Unlock()
	if seq != s.fetchSeq.Load() {
		return // superseded
	}
	if err != nil {
		if backend.KindOf(err) != backend.KindNoRows {
			log.Println("profile fetch failed:", err)
		}
		s.profile = nil
		return
	}
	s.profile = p
}

// Backend exposes the session-scoped backend client so pages can issue
// table calls that carry this session's access token.
func (s *Store) Backend() Backend { return s.b }

// State returns the current lifecycle state.
func (s *Store) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// Identity returns a copy of the authenticated identity, or nil.
func (s *Store) Identity() *models.Identity {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.identity == nil {
		return nil
	}
	cp := *s.identity
	return &cp
}

// Profile returns a copy of the cached profile, or nil when none is loaded.
func (s *Store) Profile() *models.Profile {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.profile == nil {
		return nil
	}
	cp := *s.profile
	return &cp
}

// Session returns a copy of the cached token bundle, or nil.
func (s *Store) Session() *backend.Session {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.session == nil {
		return nil
	}
	cp := *s.session
	return &cp
}

// SignUp registers a new identity. Expected failures (duplicate phone or
// email) come back as classified errors, not panics. A nil session with a
// nil error means email confirmation is pending.
func (s *Store) SignUp(email, password string, metadata map[string]interface{}) (*backend.Session, error) {
	sess, err := s.b.SignUp(email, password, metadata)
	if err != nil {
		return nil, err
	}
	s.establish(sess)
	return sess, nil
}

// SignIn performs a password sign-in. The session is applied before
// returning, so a follow-up request on this store already sees
// Authenticated.
func (s *Store) SignIn(email, password string) (*backend.Session, error) {
	sess, err := s.b.SignIn(email, password)
	if err != nil {
		return nil, err
	}
	s.establish(sess)
	return sess, nil
}

// VerifyOtp confirms a signup with the emailed 6-digit code.
func (s *Store) VerifyOtp(email, code string) (*backend.Session, error) {
	sess, err := s.b.VerifyOtp(email, code)
	if err != nil {
		return nil, err
	}
	s.establish(sess)
	return sess, nil
}

// ResendOtp asks for a fresh signup code.
func (s *Store) ResendOtp(email string) error {
	return s.b.ResendOtp(email)
}

// SignOut ends the session. Local state is cleared by the session-ended
// event even when backend revocation fails.
func (s *Store) SignOut() error {
	return s.b.SignOut()
}

// AdoptSession installs verified tokens from the auth-callback redirect.
func (s *Store) AdoptSession(accessToken, refreshToken string) (*backend.Session, error) {
	sess, err := s.b.AdoptSession(accessToken, refreshToken)
	if err != nil {
		return nil, err
	}
	s.establish(sess)
	return sess, nil
}

// establish applies a freshly issued session and loads its profile before
// the caller's request completes. The backend's session-established event
// arrives later; handle() skips its redundant profile fetch.
func (s *Store) establish(sess *backend.Session) {
	if sess == nil {
		return
	}
	s.applySession(sess)
	s.fetchProfile(sess.UserID)
}

// UpdateProfile applies partial fields to the authenticated profile and
// re-fetches the row on success so the cached copy is current. Fails with
// ErrNoUser, without a network call, when no one is signed in.
func (s *Store) UpdateProfile(updates map[string]interface{}) error {
	s.mu.RLock()
	id := s.identity
	state := s.state
	s.mu.RUnlock()
	if state != Authenticated || id == nil {
		return ErrNoUser
	}

	if err := s.b.UpdateProfile(id.ID, updates); err != nil {
		return err
	}
	s.fetchProfile(id.ID)
	return nil
}

// Close detaches the store from the event stream and releases its backend.
func (s *Store) Close() {
	s.mu.Lock()
	cancel := s.unsubscribe
	s.unsubscribe = nil
	s.mu.Unlock()
	if cancel != nil {
		cancel()
	}
	s.b.Close()
}
