package backend

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/supabase-community/gotrue-go/types"
)

// Session is the read-only cached copy of the token bundle issued by the
// auth backend. The backend owns it; this service only holds it for the
// validity window.
type Session struct {
	AccessToken  string
	RefreshToken string
	ExpiresAt    time.Time
	UserID       string
	Email        string
}

// Expired reports whether the validity window has closed.
func (s *Session) Expired(now time.Time) bool {
	return !s.ExpiresAt.IsZero() && now.After(s.ExpiresAt)
}

func (s *Session) clone() *Session {
	if s == nil {
		return nil
	}
	cp := *s
	return &cp
}

// tokenExpiry reads the exp claim of the access token without verifying the
// signature. Falls back to expiresIn seconds from now when the claim cannot
// be read.
func tokenExpiry(accessToken string, expiresIn int) time.Time {
	parser := jwt.NewParser()
	tok, _, err := parser.ParseUnverified(accessToken, jwt.MapClaims{})
	if err == nil {
		if exp, err := tok.Claims.GetExpirationTime(); err == nil && exp != nil {
			return exp.Time
		}
	}
	return time.Now().Add(time.Duration(expiresIn) * time.Second)
}

// verifyAccessToken checks the HMAC signature of a backend-issued access
// token and returns its subject and email claims. Used for tokens arriving
// through the auth callback redirect, which cannot be trusted as-is.
func verifyAccessToken(accessToken, secret string) (userID, email string, err error) {
	tok, err := jwt.Parse(accessToken, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return []byte(secret), nil
	})
	if err != nil {
		return "", "", err
	}
	claims, ok := tok.Claims.(jwt.MapClaims)
	if !ok || !tok.Valid {
		return "", "", jwt.ErrTokenInvalidClaims
	}
	sub, ok := claims["sub"].(string)
	if !ok || sub == "" {
		return "", "", fmt.Errorf("access token has no sub claim")
	}
	email, _ = claims["email"].(string)
	return sub, email, nil
}

// sessionFromTypes converts the SDK session into our cached copy.
func sessionFromTypes(s types.Session) *Session {
	return &Session{
		AccessToken:  s.AccessToken,
		RefreshToken: s.RefreshToken,
		ExpiresAt:    tokenExpiry(s.AccessToken, int(s.ExpiresIn)),
		UserID:       s.User.ID.String(),
		Email:        s.User.Email,
	}
}
