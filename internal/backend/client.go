// Package backend is the boundary to the hosted Supabase project. Auth and
// OTP go through GoTrue, table reads and writes through PostgREST; both are
// black boxes whose failures are classified here into a closed error-kind
// enum. One Client is created per browser session so that table calls carry
// that session's access token and row-level security applies.
package backend

import (
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/supabase-community/gotrue-go/types"
	supabase "github.com/supabase-community/supabase-go"
)

// Config carries the hosted project coordinates.
type Config struct {
	URL       string
	AnonKey   string
	JWTSecret string
}

// refreshLead is how long before token expiry the refresh runs.
const refreshLead = 30 * time.Second

// Client talks to the hosted auth and table APIs on behalf of one browser
// session and publishes session-change events to subscribers.
type Client struct {
	sb      *supabase.Client
	cfg     Config
	events  *notifier
	mu      sync.Mutex
	cur     *Session
	stopped bool
	stop    chan struct{}
}

// New builds a client with no session attached.
func New(cfg Config) (*Client, error) {
	sb, err := supabase.NewClient(cfg.URL, cfg.AnonKey, &supabase.ClientOptions{})
	if err != nil {
		return nil, classify(err)
	}
	return &Client{sb: sb, cfg: cfg, events: newNotifier()}, nil
}

// Subscribe registers for session-change notifications. The current state is
// replayed immediately as an EventInitialSession.
func (c *Client) Subscribe() (<-chan Event, func()) {
	c.mu.Lock()
	replay := Event{Kind: EventInitialSession, Session: c.cur.clone()}
	c.mu.Unlock()
	return c.events.subscribe(replay)
}

// CurrentSession returns the cached session, refreshing it first when its
// validity window has closed. Returns (nil, nil) when no one is signed in.
func (c *Client) CurrentSession() (*Session, error) {
	c.mu.Lock()
	cur := c.cur.clone()
	c.mu.Unlock()

	if cur == nil {
		return nil, nil
	}
	if cur.Expired(time.Now()) {
		return c.Refresh()
	}
	return cur, nil
}

// SignUp registers a new identity. The profile fields travel as signup
// metadata; the backend's trigger materialises the profiles row. When email
// confirmation is on (the deployed configuration) no session is issued yet
// and (nil, nil) is returned: the caller continues at the OTP screen.
func (c *Client) SignUp(email, password string, metadata map[string]interface{}) (*Session, error) {
	resp, err := c.sb.Auth.Signup(types.SignupRequest{
		Email:    email,
		Password: password,
		Data:     metadata,
	})
	if err != nil {
		return nil, classify(err)
	}
	if resp.Session.AccessToken == "" {
		return nil, nil
	}
	sess := sessionFromTypes(resp.Session)
	c.adopt(resp.Session, sess)
	return sess.clone(), nil
}

// SignIn performs a password sign-in and publishes EventSignedIn.
func (c *Client) SignIn(email, password string) (*Session, error) {
	tok, err := c.sb.Auth.SignInWithEmailPassword(email, password)
	if err != nil {
		return nil, classify(err)
	}
	sess := sessionFromTypes(tok.Session)
	c.adopt(tok.Session, sess)
	return sess.clone(), nil
}

// VerifyOtp confirms a signup with the 6-digit emailed code. A successful
// verification establishes the session.
func (c *Client) VerifyOtp(email, code string) (*Session, error) {
	resp, err := c.sb.Auth.VerifyForUser(types.VerifyForUserRequest{
		Type:  types.VerificationTypeSignup,
		Email: email,
		Token: code,
	})
	if err != nil {
		return nil, classify(err)
	}
	if resp.Session.AccessToken == "" {
		return nil, &Error{Kind: KindOTPInvalid, Message: "verification did not establish a session"}
	}
	sess := sessionFromTypes(resp.Session)
	c.adopt(resp.Session, sess)
	return sess.clone(), nil
}

// ResendOtp asks the backend to email a fresh signup code.
func (c *Client) ResendOtp(email string) error {
	err := c.sb.Auth.OTP(types.OTPRequest{Email: email})
	return classify(err)
}

// SignOut revokes the session backend-side and always clears the local copy,
// publishing EventSignedOut even when revocation fails: a sign-out must
// never leave the session behind.
func (c *Client) SignOut() error {
	err := c.sb.Auth.Logout()

	c.mu.Lock()
	c.cur = nil
	c.stopRefreshLocked()
	c.mu.Unlock()
	c.events.publish(Event{Kind: EventSignedOut})

	if err != nil {
		return classify(err)
	}
	return nil
}

// AdoptSession installs a token pair arriving through the auth-callback
// redirect. The access token's signature is verified first when a JWT secret
// is configured; redirect tokens cannot be trusted as-is.
func (c *Client) AdoptSession(accessToken, refreshToken string) (*Session, error) {
	sess := &Session{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresAt:    tokenExpiry(accessToken, 3600),
	}
	if c.cfg.JWTSecret != "" {
		userID, email, err := verifyAccessToken(accessToken, c.cfg.JWTSecret)
		if err != nil {
			return nil, classify(fmt.Errorf("auth callback token rejected: %w", err))
		}
		sess.UserID = userID
		sess.Email = email
	} else {
		user, err := c.userForToken(accessToken)
		if err != nil {
			return nil, err
		}
		sess.UserID = user.UserID
		sess.Email = user.Email
	}
	c.adopt(types.Session{AccessToken: accessToken, RefreshToken: refreshToken}, sess)
	return sess.clone(), nil
}

// Refresh exchanges the refresh token for a new token pair and publishes
// EventTokenRefreshed. A failed refresh ends the session.
func (c *Client) Refresh() (*Session, error) {
	c.mu.Lock()
	cur := c.cur.clone()
	c.mu.Unlock()
	if cur == nil {
		return nil, &Error{Kind: KindUnknown, Message: "no session to refresh"}
	}

	tok, err := c.sb.Auth.RefreshToken(cur.RefreshToken)
	if err != nil {
		log.Println("session refresh failed, signing out:", err)
		c.mu.Lock()
		c.cur = nil
		c.stopRefreshLocked()
		c.mu.Unlock()
		c.events.publish(Event{Kind: EventSignedOut})
		return nil, classify(err)
	}

	sess := sessionFromTypes(tok.Session)
	c.mu.Lock()
	c.cur = sess
	c.sb.UpdateAuthSession(tok.Session)
	c.scheduleRefreshLocked(sess.ExpiresAt)
	c.mu.Unlock()
	c.events.publish(Event{Kind: EventTokenRefreshed, Session: sess.clone()})
	return sess.clone(), nil
}

// Close stops the refresh loop. The client must not be used afterwards.
func (c *Client) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.stopped = true
	c.stopRefreshLocked()
}

// adopt installs a freshly issued session, wires its token into the table
// client, starts the refresh loop, and publishes EventSignedIn.
func (c *Client) adopt(raw types.Session, sess *Session) {
	c.mu.Lock()
	c.cur = sess
	c.sb.UpdateAuthSession(raw)
	c.scheduleRefreshLocked(sess.ExpiresAt)
	c.mu.Unlock()
	c.events.publish(Event{Kind: EventSignedIn, Session: sess.clone()})
}

func (c *Client) scheduleRefreshLocked(expiresAt time.Time) {
	c.stopRefreshLocked()
	if c.stopped || expiresAt.IsZero() {
		return
	}
	stop := make(chan struct{})
	c.stop = stop
	wait := time.Until(expiresAt.Add(-refreshLead))
	if wait < time.Second {
		wait = time.Second
	}
	go func() {
		t := time.NewTimer(wait)
		defer t.Stop()
		select {
		case <-t.C:
			if _, err := c.Refresh(); err != nil {
				log.Println("scheduled token refresh failed:", err)
			}
		case <-stop:
		}
	}()
}

func (c *Client) stopRefreshLocked() {
	if c.stop != nil {
		close(c.stop)
		c.stop = nil
	}
}

// userForToken fetches the identity behind an access token from the auth
// API. Fallback path for deployments without a configured JWT secret.
func (c *Client) userForToken(accessToken string) (*Session, error) {
	resp, err := c.sb.Auth.WithToken(accessToken).GetUser()
	if err != nil {
		return nil, classify(err)
	}
	return &Session{UserID: resp.ID.String(), Email: resp.Email}, nil
}
