package middleware

import (
	"net/http"

	"gameforum/internal/models"

	"github.com/gin-gonic/gin"
)

const CheckUserKey = "user"
const UnreadCountKey = "unread_count"

// SessionSource is the identity store as the middleware sees it.
type SessionSource interface {
	CurrentUser() *models.User
}

// UnreadCounter reports the session user's unread notifications.
type UnreadCounter interface {
	UnreadNotificationsCount() int
}

// AuthRequired ensures a user is logged in. It relies on LoadUser running first.
func AuthRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, exists := c.Get(CheckUserKey); !exists {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "You must be logged in",
				"code":  models.CodeUnauthorized,
			})
			return
		}
		c.Next()
	}
}

// LoadUser puts the active session user and their unread notification count
// into the request context.
func LoadUser(auth SessionSource, notices UnreadCounter) gin.HandlerFunc {
	return func(c *gin.Context) {
		if user := auth.CurrentUser(); user != nil {
			c.Set(CheckUserKey, user)
			c.Set(UnreadCountKey, notices.UnreadNotificationsCount())
		}
		c.Next()
	}
}

// CurrentUser returns the user LoadUser stored, if any.
func CurrentUser(c *gin.Context) (*models.User, bool) {
	v, exists := c.Get(CheckUserKey)
	if !exists {
		return nil, false
	}
	user, ok := v.(*models.User)
	return user, ok
}
