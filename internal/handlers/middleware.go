package handlers

import (
	"strings"

	"github.com/gin-gonic/gin"

	"storefront/internal/auth"
)

const identityKey = "identity"

// Identity resolves an optional bearer token into a user and stashes it on
// the context. Invalid or absent tokens leave the request anonymous; routes
// that require auth check CurrentUser themselves.
func Identity(authSvc *auth.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if token, ok := strings.CutPrefix(header, "Bearer "); ok && token != "" {
			if u := authSvc.Resolve(c.Request.Context(), token); u != nil {
				c.Set(identityKey, u)
			}
		}
		c.Next()
	}
}

// CurrentUser returns the authenticated user, or nil for guests.
func CurrentUser(c *gin.Context) *auth.User {
	v, ok := c.Get(identityKey)
	if !ok {
		return nil
	}
	u, _ := v.(*auth.User)
	return u
}

// currentUserID returns the user id or "" for guests.
func currentUserID(c *gin.Context) string {
	if u := CurrentUser(c); u != nil {
		return u.ID
	}
	return ""
}
