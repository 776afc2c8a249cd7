package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"roktodan/internal/backend"
	"roktodan/internal/models"
	"roktodan/internal/session"
)

type stubBackend struct {
	session *backend.Session
	events  chan backend.Event
}

func newStubBackend(sess *backend.Session) *stubBackend {
	return &stubBackend{session: sess, events: make(chan backend.Event, 4)}
}

func (s *stubBackend) CurrentSession() (*backend.Session, error) { return s.session, nil }

func (s *stubBackend) Subscribe() (<-chan backend.Event, func()) {
	return s.events, func() { close(s.events) }
}

func (s *stubBackend) FetchProfile(string) (*models.Profile, error) { return nil, nil }

func (s *stubBackend) UpdateProfile(string, map[string]interface{}) error { return nil }

func (s *stubBackend) SignUp(string, string, map[string]interface{}) (*backend.Session, error) {
	return nil, nil
}

func (s *stubBackend) SignIn(string, string) (*backend.Session, error) { return s.session, nil }

func (s *stubBackend) VerifyOtp(string, string) (*backend.Session, error) { return s.session, nil }

func (s *stubBackend) ResendOtp(string) error { return nil }

func (s *stubBackend) SignOut() error { return nil }

func (s *stubBackend) AdoptSession(string, string) (*backend.Session, error) { return s.session, nil }

func (s *stubBackend) Close() {}

func newRouter(t *testing.T, sess *backend.Session) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	mgr := session.NewManager(func() (session.Backend, error) {
		return newStubBackend(sess), nil
	}, time.Hour)
	t.Cleanup(mgr.Stop)

	r := gin.New()
	r.Use(Session(mgr))
	r.GET("/open", func(c *gin.Context) {
		st := StoreFrom(c)
		if st == nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "no store"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"state": st.State().String()})
	})
	protected := r.Group("/", RequireAuth())
	protected.GET("/dashboard", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})
	return r
}

func get(r *gin.Engine, path, cookie string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if cookie != "" {
		req.Header.Set("Cookie", cookie)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestSessionMiddlewareSetsCookieAndStore(t *testing.T) {
	r := newRouter(t, nil)

	w := get(r, "/open", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}
	cookies := w.Result().Cookies()
	var found *http.Cookie
	for _, c := range cookies {
		if c.Name == CookieName {
			found = c
		}
	}
	if found == nil {
		t.Fatal("session cookie not set")
	}
	if !found.HttpOnly {
		t.Error("session cookie is not HttpOnly")
	}

	// A second request with the cookie reuses the store instead of
	// issuing a new cookie.
	w2 := get(r, "/open", CookieName+"="+found.Value)
	if w2.Code != http.StatusOK {
		t.Fatalf("second request status = %d", w2.Code)
	}
	for _, c := range w2.Result().Cookies() {
		if c.Name == CookieName {
			t.Error("cookie reissued for a known session")
		}
	}
}

func TestRequireAuthBlocksAnonymous(t *testing.T) {
	r := newRouter(t, nil)

	w := get(r, "/dashboard", "")
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}
}

func TestRequireAuthAllowsAuthenticated(t *testing.T) {
	sess := &backend.Session{
		AccessToken: "tok",
		UserID:      "u1",
		Email:       "u1@example.com",
		ExpiresAt:   time.Now().Add(time.Hour),
	}
	r := newRouter(t, sess)

	w := get(r, "/dashboard", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}
}
