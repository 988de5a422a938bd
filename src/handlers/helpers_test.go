package handlers

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/khabaroff/jwt-auth-web/src/middleware"
	"github.com/khabaroff/jwt-auth-web/src/models"
	"github.com/khabaroff/jwt-auth-web/src/repositories"
	"github.com/khabaroff/jwt-auth-web/src/repositories/mock"
	"github.com/khabaroff/jwt-auth-web/src/services"
	"github.com/khabaroff/jwt-auth-web/src/templates"
	"github.com/stretchr/testify/require"
)

// Test helpers for handler tests

const testSecret = "test-secret-for-unit-tests-32ch!"

type testApp struct {
	router   *gin.Engine
	sessions *services.SessionService
	users    *mock.UserDirectory
	auth     *mock.Authenticator
	health   *mock.HealthChecker
}

type testOptions struct {
	fetchTimeout time.Duration
	limiter      *middleware.KeyRateLimiter
	// directory replaces the mock user directory when set
	directory repositories.UserDirectory
}

// newTestApp wires every handler against mocks, the way main does against real clients
func newTestApp(t *testing.T, opts testOptions) *testApp {
	t.Helper()
	gin.SetMode(gin.TestMode)

	renderer, err := templates.NewRenderer()
	require.NoError(t, err)
	content, err := templates.LoadContent()
	require.NoError(t, err)
	sessions, err := services.NewSessionService(testSecret, time.Hour)
	require.NoError(t, err)
	analytics, err := services.NewAnalyticsService(services.AnalyticsConfig{})
	require.NoError(t, err)

	app := &testApp{
		sessions: sessions,
		users:    mock.NewUserDirectory(),
		auth:     mock.NewAuthenticator(),
		health:   &mock.HealthChecker{},
	}

	var directory repositories.UserDirectory = app.users
	if opts.directory != nil {
		directory = opts.directory
	}

	cookie := middleware.CookieConfig{MaxAge: int(time.Hour.Seconds())}
	router := gin.New()
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.SessionMiddleware(sessions, cookie))

	Routes{
		Home:        NewHomeHandler(renderer, content),
		Dashboard:   NewDashboardHandler(renderer, content, analytics),
		Admin:       NewAdminHandler(renderer, directory, analytics, opts.fetchTimeout),
		Auth:        NewAuthHandler(renderer, app.auth, sessions, cookie, analytics, time.Second),
		Health:      NewHealthHandler(app.health),
		AuthLimiter: opts.limiter,
	}.Register(router)

	app.router = router
	return app
}

// cookieFor mints a session cookie for user
func (a *testApp) cookieFor(t *testing.T, user models.SessionUser) *http.Cookie {
	t.Helper()
	token, err := a.sessions.Issue(user, "api-token-"+user.ID)
	require.NoError(t, err)
	return &http.Cookie{Name: middleware.SessionCookieName, Value: token}
}

// do performs a request; form is sent url-encoded when non-nil
func (a *testApp) do(method, path string, form url.Values, cookie *http.Cookie) *httptest.ResponseRecorder {
	var req *http.Request
	if form != nil {
		req = httptest.NewRequest(method, path, strings.NewReader(form.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	if cookie != nil {
		req.AddCookie(cookie)
	}
	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)
	return w
}

// responseCookie returns the named cookie set by the response, or nil
func responseCookie(w *httptest.ResponseRecorder, name string) *http.Cookie {
	for _, c := range w.Result().Cookies() {
		if c.Name == name {
			return c
		}
	}
	return nil
}

var (
	alice = models.SessionUser{ID: "u-1", Name: "Alice", Email: "alice@example.com", Role: models.RoleUser}
	root  = models.SessionUser{ID: "a-1", Name: "Root", Email: "root@example.com", Role: models.RoleAdmin}
)
