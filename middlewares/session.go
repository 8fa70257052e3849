package middlewares

import (
	"DentalSimple/models"
	"net/http"

	"github.com/gin-gonic/gin"
)

const currentUserKey = "currentUser"

// SessionProvider reports the signed-in clinic user.
type SessionProvider interface {
	Current() (models.User, bool)
}

// RequireSession rejects requests while nobody is signed in and stores the
// current user on the gin context for the handlers.
func RequireSession(sessions SessionProvider) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := sessions.Current()
		if !ok {
			HttpError(c, "not signed in", http.StatusUnauthorized, nil)
			c.Abort()
			return
		}
		c.Set(currentUserKey, user)
		c.Next()
	}
}

// CurrentUser returns the user stored by RequireSession.
func CurrentUser(c *gin.Context) (models.User, bool) {
	value, exists := c.Get(currentUserKey)
	if !exists {
		return models.User{}, false
	}
	user, ok := value.(models.User)
	return user, ok
}
