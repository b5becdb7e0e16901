package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"meetingmind/internal/api/errors"
)

// Context keys set by RequireUser
const (
	UserIDKey   = "user_id"
	UserNameKey = "user_name"
)

// Identity headers forwarded by the authenticating gateway
const (
	HeaderUserID   = "X-User-ID"
	HeaderUserName = "X-User-Name"
)

// RequireUser trusts the identity asserted by the upstream gateway and rejects anonymous requests
func RequireUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := strings.TrimSpace(c.GetHeader(HeaderUserID))
		if userID == "" {
			HandleError(c, errors.NewAuthRequiredError("Authentication required"))
			return
		}

		name := strings.TrimSpace(c.GetHeader(HeaderUserName))
		if name == "" {
			name = userID
		}

		c.Set(UserIDKey, userID)
		c.Set(UserNameKey, name)
		c.Next()
	}
}

// OptionalUser records the identity when present but lets anonymous requests through
func OptionalUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		if userID := strings.TrimSpace(c.GetHeader(HeaderUserID)); userID != "" {
			c.Set(UserIDKey, userID)
			c.Set(UserNameKey, strings.TrimSpace(c.GetHeader(HeaderUserName)))
		}
		c.Next()
	}
}

// CurrentUser returns the authenticated user id and display name
func CurrentUser(c *gin.Context) (id string, name string) {
	return c.GetString(UserIDKey), c.GetString(UserNameKey)
}
