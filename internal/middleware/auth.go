package middleware

import (
	"net/http"

	"github.com/Heshmert/P2-31499269/internal/logger"
	"github.com/Heshmert/P2-31499269/internal/models"
	"github.com/Heshmert/P2-31499269/internal/services"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

const (
	// SessionUserIDKey is the session value holding the logged-in
	// user's id.
	SessionUserIDKey = "userID"

	// ContextUserKey is the gin context key the rehydrated user lives
	// under.
	ContextUserKey = "currentUser"
)

// CurrentUser loads the session user, if any, into the gin context. A
// stale session pointing at a deleted user is cleared silently.
func CurrentUser(auth services.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		session := sessions.Default(c)
		raw := session.Get(SessionUserIDKey)
		if raw == nil {
			c.Next()
			return
		}

		userID, ok := raw.(uint)
		if !ok {
			session.Delete(SessionUserIDKey)
			_ = session.Save()
			c.Next()
			return
		}

		user, err := auth.GetByID(userID)
		if err != nil {
			logger.FromContext(c.Request.Context()).Warn(
				"clearing session for unknown user", "user_id", userID, "error", err)
			session.Delete(SessionUserIDKey)
			_ = session.Save()
			c.Next()
			return
		}

		c.Set(ContextUserKey, user)
		c.Next()
	}
}

// UserFromContext returns the user CurrentUser stored, when logged in.
func UserFromContext(c *gin.Context) (*models.User, bool) {
	val, exists := c.Get(ContextUserKey)
	if !exists {
		return nil, false
	}
	user, ok := val.(*models.User)
	return user, ok
}

// RequireAuth redirects anonymous visitors to the login page.
func RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := UserFromContext(c); !ok {
			session := sessions.Default(c)
			session.AddFlash("Debes iniciar sesión para acceder a esta página.", "error")
			_ = session.Save()
			c.Redirect(http.StatusFound, "/login")
			c.Abort()
			return
		}
		c.Next()
	}
}

// RequireAdmin allows only users carrying the admin role.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := UserFromContext(c)
		if !ok {
			session := sessions.Default(c)
			session.AddFlash("Debes iniciar sesión para acceder a esta página.", "error")
			_ = session.Save()
			c.Redirect(http.StatusFound, "/login")
			c.Abort()
			return
		}
		if !user.IsAdmin() {
			session := sessions.Default(c)
			session.AddFlash("No tienes permisos para acceder a esta página.", "error")
			_ = session.Save()
			c.Redirect(http.StatusFound, "/")
			c.Abort()
			return
		}
		c.Next()
	}
}
