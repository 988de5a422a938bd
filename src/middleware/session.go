package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/khabaroff/jwt-auth-web/src/models"
	"github.com/khabaroff/jwt-auth-web/src/services"
	"github.com/rs/zerolog/log"
)

const (
	// SessionCookieName holds the signed session token
	SessionCookieName = "session_token"
	// SessionKey is the gin context key for the *services.AuthSession
	SessionKey = "session"
)

// CookieConfig controls the session cookie attributes
type CookieConfig struct {
	Secure bool
	MaxAge int // seconds
}

// SetSessionCookie stores a session token in the browser
func SetSessionCookie(c *gin.Context, token string, cfg CookieConfig) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(SessionCookieName, token, cfg.MaxAge, "/", "", cfg.Secure, true)
}

// ClearSessionCookie expires the session cookie immediately
func ClearSessionCookie(c *gin.Context, cfg CookieConfig) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(SessionCookieName, "", -1, "/", "", cfg.Secure, true)
}

// SessionMiddleware attaches a *services.AuthSession to every request.
// Requests without a valid cookie get an anonymous session; invalid
// cookies are cleared.
func SessionMiddleware(sessions *services.SessionService, cfg CookieConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		logout := func() { ClearSessionCookie(c, cfg) }

		var user *models.SessionUser
		var apiToken string

		if token, err := c.Cookie(SessionCookieName); err == nil && token != "" {
			claims, err := sessions.Validate(token)
			if err != nil {
				log.Debug().Err(err).Str("request_id", GetRequestID(c)).Msg("discarding invalid session cookie")
				ClearSessionCookie(c, cfg)
			} else {
				u := claims.User
				user = &u
				apiToken = claims.APIToken
			}
		}

		c.Set(SessionKey, services.NewAuthSession(user, apiToken, logout))
		c.Next()
	}
}

// CurrentSession returns the request's session, or nil before SessionMiddleware runs
func CurrentSession(c *gin.Context) *services.AuthSession {
	if v, ok := c.Get(SessionKey); ok {
		if s, ok := v.(*services.AuthSession); ok {
			return s
		}
	}
	return nil
}

// RequireSession redirects anonymous callers to the login page
func RequireSession(loginRoute string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if CurrentSession(c).User() == nil {
			c.Redirect(http.StatusFound, loginRoute)
			c.Abort()
			return
		}
		c.Next()
	}
}

// RequireAdmin redirects signed-in non-admins to fallbackRoute.
// The API enforces its own authorization; this only keeps the page away.
func RequireAdmin(fallbackRoute string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !CurrentSession(c).IsAdmin() {
			c.Redirect(http.StatusFound, fallbackRoute)
			c.Abort()
			return
		}
		c.Next()
	}
}
