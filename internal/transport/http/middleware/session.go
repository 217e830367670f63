package middleware

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"vidshare/internal/model"
	"vidshare/internal/session"
)

const ContextUserKey = "current_user"

// PrincipalResolver turns a session's principal ID back into a user.
type PrincipalResolver interface {
	GetUserByID(id uint) (*model.User, error)
}

// Identify resolves the request's session to a user, if any, and stores it in
// the gin context. It never blocks a request: anonymous is a valid state.
func Identify(sessions *session.Manager, users PrincipalResolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		principalID, err := sessions.Current(c.Request.Context(), c)
		if err != nil {
			if !errors.Is(err, session.ErrNoSession) {
				log.Printf("resolve session failed: %v", err)
			}
			c.Next()
			return
		}

		user, err := users.GetUserByID(principalID)
		if err != nil {
			log.Printf("load session user failed: %v", err)
			c.Next()
			return
		}
		if user != nil {
			c.Set(ContextUserKey, user)
		}
		c.Next()
	}
}

// RequireLogin gates a route on an authenticated session, redirecting
// anonymous requests to the login page. Must run after Identify.
func RequireLogin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := CurrentUser(c); !ok {
			c.Redirect(http.StatusSeeOther, "/login")
			c.Abort()
			return
		}
		c.Next()
	}
}

// CurrentUser returns the authenticated user set by Identify.
func CurrentUser(c *gin.Context) (*model.User, bool) {
	value, exists := c.Get(ContextUserKey)
	if !exists {
		return nil, false
	}
	user, ok := value.(*model.User)
	return user, ok
}
