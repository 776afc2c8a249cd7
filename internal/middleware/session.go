package middleware

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"roktodan/internal/session"
)

// CookieName carries the opaque browser-session id. The id is a server-side
// key; no tokens ever reach the cookie.
const CookieName = "rd_session"

const cookieMaxAge = 7 * 24 * 60 * 60

const storeKey = "sessionStore"

// Session resolves the browser session's store from the cookie, creating a
// fresh anonymous store (and cookie) when none exists.
func Session(mgr *session.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		if id, err := c.Cookie(CookieName); err == nil {
			if st, ok := mgr.Get(id); ok {
				c.Set(storeKey, st)
				c.Next()
				return
			}
		}

		id, st, err := mgr.Create()
		if err != nil {
			log.Println("failed to create session store:", err)
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Server error."})
			return
		}
		c.SetCookie(CookieName, id, cookieMaxAge, "/", "", false, true)
		c.Set(storeKey, st)
		c.Next()
	}
}

// StoreFrom returns the request's session store. The Session middleware
// guarantees it is set on every route.
func StoreFrom(c *gin.Context) *session.Store {
	v, ok := c.Get(storeKey)
	if !ok {
		return nil
	}
	st, _ := v.(*session.Store)
	return st
}

// RequireAuth guards authenticated-only routes: anonymous visitors get a
// 401 pointing at the sign-in screen.
func RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		st := StoreFrom(c)
		if st == nil || st.State() != session.Authenticated {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error":    "Authentication required",
				"redirect": "/signin",
			})
			return
		}
		c.Next()
	}
}
