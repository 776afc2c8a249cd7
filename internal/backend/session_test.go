package backend

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func signedToken(t *testing.T, secret string, claims jwt.MapClaims) string {
	t.Helper()
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return tok
}

func TestVerifyAccessToken(t *testing.T) {
	exp := time.Now().Add(time.Hour)
	token := signedToken(t, "secret", jwt.MapClaims{
		"sub":   "u1",
		"email": "u1@example.com",
		"exp":   exp.Unix(),
	})

	userID, email, err := verifyAccessToken(token, "secret")
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if userID != "u1" || email != "u1@example.com" {
		t.Errorf("got (%q, %q)", userID, email)
	}
}

func TestVerifyAccessTokenRejectsBadSignature(t *testing.T) {
	token := signedToken(t, "secret", jwt.MapClaims{
		"sub": "u1",
		"exp": time.Now().Add(time.Hour).Unix(),
	})
	if _, _, err := verifyAccessToken(token, "other-secret"); err == nil {
		t.Error("token signed with the wrong secret accepted")
	}
}

func TestVerifyAccessTokenRequiresSubject(t *testing.T) {
	token := signedToken(t, "secret", jwt.MapClaims{
		"exp": time.Now().Add(time.Hour).Unix(),
	})
	if _, _, err := verifyAccessToken(token, "secret"); err == nil {
		t.Error("token without sub claim accepted")
	}
}

func TestTokenExpiry(t *testing.T) {
	exp := time.Now().Add(45 * time.Minute).Truncate(time.Second)
	token := signedToken(t, "secret", jwt.MapClaims{"sub": "u1", "exp": exp.Unix()})

	if got := tokenExpiry(token, 3600); !got.Equal(exp) {
		t.Errorf("got %v, want %v", got, exp)
	}

	// An unparsable token falls back to expiresIn seconds from now.
	before := time.Now().Add(3600 * time.Second)
	got := tokenExpiry("not-a-jwt", 3600)
	if got.Before(before.Add(-time.Minute)) || got.After(before.Add(time.Minute)) {
		t.Errorf("fallback expiry %v not near %v", got, before)
	}
}

func TestSessionExpired(t *testing.T) {
	now := time.Now()
	s := &Session{ExpiresAt: now.Add(time.Minute)}
	if s.Expired(now) {
		t.Error("session inside its window reported expired")
	}
	if !s.Expired(now.Add(2 * time.Minute)) {
		t.Error("session past its window not reported expired")
	}
	forever := &Session{}
	if forever.Expired(now) {
		t.Error("session without expiry reported expired")
	}
}

func TestSessionClone(t *testing.T) {
	var nilSess *Session
	if nilSess.clone() != nil {
		t.Error("clone of nil is not nil")
	}

	s := &Session{AccessToken: "tok", UserID: "u1", Email: "u1@example.com"}
	cp := s.clone()
	if cp == s {
		t.Fatal("clone returned the same pointer")
	}
	cp.UserID = "changed"
	if s.UserID != "u1" {
		t.Error("mutating the clone touched the original")
	}
}
