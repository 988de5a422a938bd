package handlers

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"testing"
	"time"

	"github.com/khabaroff/jwt-auth-web/src/middleware"
	"github.com/khabaroff/jwt-auth-web/src/models"
	"github.com/khabaroff/jwt-auth-web/src/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"
)

func TestShowLogin(t *testing.T) {
	app := newTestApp(t, testOptions{})

	w := app.do(http.MethodGet, "/login", nil, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `action="/login"`)

	w = app.do(http.MethodGet, "/login", nil, app.cookieFor(t, alice))
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/dashboard", w.Header().Get("Location"))
}

func TestShowRegister(t *testing.T) {
	app := newTestApp(t, testOptions{})

	w := app.do(http.MethodGet, "/register", nil, nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `action="/register"`)
}

func TestHandleLogin_Success(t *testing.T) {
	app := newTestApp(t, testOptions{})
	app.auth.LoginFunc = func(ctx context.Context, req services.LoginRequest) (*services.AuthResult, error) {
		return &services.AuthResult{Token: "upstream-token", User: root}, nil
	}

	w := app.do(http.MethodPost, "/login", url.Values{
		"email":    {"root@example.com"},
		"password": {"secret123"},
	}, nil)

	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/dashboard", w.Header().Get("Location"))

	cookie := responseCookie(w, middleware.SessionCookieName)
	require.NotNil(t, cookie)
	assert.True(t, cookie.HttpOnly)

	claims, err := app.sessions.Validate(cookie.Value)
	require.NoError(t, err)
	assert.Equal(t, root, claims.User)
	assert.Equal(t, "upstream-token", claims.APIToken)

	require.Len(t, app.auth.Calls["Login"], 1)
	assert.Equal(t, services.LoginRequest{Email: "root@example.com", Password: "secret123"}, app.auth.Calls["Login"][0])
}

func TestHandleLogin_SessionReachesAdminPage(t *testing.T) {
	app := newTestApp(t, testOptions{})
	app.auth.LoginFunc = func(ctx context.Context, req services.LoginRequest) (*services.AuthResult, error) {
		return &services.AuthResult{Token: "upstream-token", User: root}, nil
	}

	w := app.do(http.MethodPost, "/login", url.Values{"email": {"root@example.com"}, "password": {"pw"}}, nil)
	cookie := responseCookie(w, middleware.SessionCookieName)
	require.NotNil(t, cookie)

	w = app.do(http.MethodGet, "/admin", nil, cookie)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []string{"upstream-token"}, app.users.Calls())
}

func TestHandleLogin_Failures(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		status  int
		message string
	}{
		{"rejected with message", &services.APIError{StatusCode: http.StatusUnauthorized, Message: "Invalid credentials"}, http.StatusUnauthorized, "Invalid credentials"},
		{"rejected without message", &services.APIError{StatusCode: http.StatusUnauthorized}, http.StatusUnauthorized, "Login failed"},
		{"bad request", &services.APIError{StatusCode: http.StatusBadRequest, Message: "Email is required"}, http.StatusBadRequest, "Email is required"},
		{"upstream down", errors.New("dial tcp: connection refused"), http.StatusBadGateway, "Login failed"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := newTestApp(t, testOptions{})
			app.auth.LoginFunc = func(ctx context.Context, req services.LoginRequest) (*services.AuthResult, error) {
				return nil, tt.err
			}

			w := app.do(http.MethodPost, "/login", url.Values{
				"email":    {"alice@example.com"},
				"password": {"wrong"},
			}, nil)

			assert.Equal(t, tt.status, w.Code)
			assert.Contains(t, w.Body.String(), tt.message)
			assert.Contains(t, w.Body.String(), `value="alice@example.com"`)
			assert.Nil(t, responseCookie(w, middleware.SessionCookieName))
		})
	}
}

func TestHandleLogin_InvalidForm(t *testing.T) {
	app := newTestApp(t, testOptions{})

	w := app.do(http.MethodPost, "/login", url.Values{"email": {"not-an-email"}}, nil)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Please enter a valid email and password")
	assert.Empty(t, app.auth.Calls["Login"])
}

func TestHandleRegister_Success(t *testing.T) {
	app := newTestApp(t, testOptions{})
	app.auth.RegisterFunc = func(ctx context.Context, req services.RegisterRequest) (*services.AuthResult, error) {
		return &services.AuthResult{
			Token: "new-token",
			User:  models.SessionUser{ID: "u-9", Name: req.Name, Email: req.Email, Role: models.RoleUser},
		}, nil
	}

	w := app.do(http.MethodPost, "/register", url.Values{
		"name":     {"Bob"},
		"email":    {"bob@example.com"},
		"password": {"secret123"},
	}, nil)

	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/dashboard", w.Header().Get("Location"))

	cookie := responseCookie(w, middleware.SessionCookieName)
	require.NotNil(t, cookie)
	claims, err := app.sessions.Validate(cookie.Value)
	require.NoError(t, err)
	assert.Equal(t, "Bob", claims.User.Name)
	assert.False(t, claims.User.IsAdmin())
}

func TestHandleRegister_ShortPassword(t *testing.T) {
	app := newTestApp(t, testOptions{})

	w := app.do(http.MethodPost, "/register", url.Values{
		"name":     {"Bob"},
		"email":    {"bob@example.com"},
		"password": {"123"},
	}, nil)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), `value="Bob"`)
	assert.Empty(t, app.auth.Calls["Register"])
}

func TestHandleRegister_Conflict(t *testing.T) {
	app := newTestApp(t, testOptions{})
	app.auth.RegisterFunc = func(ctx context.Context, req services.RegisterRequest) (*services.AuthResult, error) {
		return nil, &services.APIError{StatusCode: http.StatusBadRequest, Message: "User already exists"}
	}

	w := app.do(http.MethodPost, "/register", url.Values{
		"name":     {"Bob"},
		"email":    {"bob@example.com"},
		"password": {"secret123"},
	}, nil)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "User already exists")
}

func TestAuthForms_RateLimited(t *testing.T) {
	limiter := middleware.NewKeyRateLimiter(rate.Every(time.Minute), 1)
	t.Cleanup(limiter.Stop)
	app := newTestApp(t, testOptions{limiter: limiter})

	form := url.Values{"email": {"alice@example.com"}, "password": {"pw"}}
	first := app.do(http.MethodPost, "/login", form, nil)
	assert.Equal(t, http.StatusUnauthorized, first.Code)

	second := app.do(http.MethodPost, "/login", form, nil)
	assert.Equal(t, http.StatusTooManyRequests, second.Code)
	assert.Len(t, app.auth.Calls["Login"], 1)

	// GET is never limited
	assert.Equal(t, http.StatusOK, app.do(http.MethodGet, "/login", nil, nil).Code)
}
