package handlers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/khabaroff/jwt-auth-web/src/logging"
	"github.com/khabaroff/jwt-auth-web/src/middleware"
	"github.com/khabaroff/jwt-auth-web/src/repositories"
	"github.com/khabaroff/jwt-auth-web/src/services"
	"github.com/khabaroff/jwt-auth-web/src/templates"
	"github.com/khabaroff/jwt-auth-web/src/views"
)

const (
	loginFailed        = "Login failed"
	registrationFailed = "Registration failed"
	invalidLoginForm   = "Please enter a valid email and password"
	invalidRegistForm  = "Please fill in all fields. Passwords need at least 6 characters."
)

// AuthHandler serves the login and register forms
type AuthHandler struct {
	renderer  *templates.Renderer
	auth      repositories.Authenticator
	sessions  *services.SessionService
	cookie    middleware.CookieConfig
	analytics *services.AnalyticsService
	timeout   time.Duration
}

// NewAuthHandler creates a new authentication handler
func NewAuthHandler(
	renderer *templates.Renderer,
	auth repositories.Authenticator,
	sessions *services.SessionService,
	cookie middleware.CookieConfig,
	analytics *services.AnalyticsService,
	timeout time.Duration,
) *AuthHandler {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &AuthHandler{
		renderer:  renderer,
		auth:      auth,
		sessions:  sessions,
		cookie:    cookie,
		analytics: analytics,
		timeout:   timeout,
	}
}

// LoginForm is the POST /login form body
type LoginForm struct {
	Email    string `form:"email" binding:"required,email"`
	Password string `form:"password" binding:"required"`
}

// RegisterForm is the POST /register form body
type RegisterForm struct {
	Name     string `form:"name" binding:"required,max=255"`
	Email    string `form:"email" binding:"required,email"`
	Password string `form:"password" binding:"required,min=6"`
}

// authPage is the render data for login.html and register.html
type authPage struct {
	Error string
	Name  string
	Email string
}

// ShowLogin renders the login form (GET /login)
func (h *AuthHandler) ShowLogin(c *gin.Context) {
	if middleware.CurrentSession(c).User() != nil {
		c.Redirect(http.StatusFound, views.RouteDashboard)
		return
	}
	renderPage(c, h.renderer, http.StatusOK, "login.html", authPage{})
}

// ShowRegister renders the register form (GET /register)
func (h *AuthHandler) ShowRegister(c *gin.Context) {
	if middleware.CurrentSession(c).User() != nil {
		c.Redirect(http.StatusFound, views.RouteDashboard)
		return
	}
	renderPage(c, h.renderer, http.StatusOK, "register.html", authPage{})
}

// HandleLogin forwards credentials to the API (POST /login)
func (h *AuthHandler) HandleLogin(c *gin.Context) {
	var form LoginForm
	if err := c.ShouldBind(&form); err != nil {
		renderPage(c, h.renderer, http.StatusBadRequest, "login.html", authPage{Error: invalidLoginForm, Email: form.Email})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), h.timeout)
	defer cancel()

	result, err := h.auth.Login(ctx, services.LoginRequest{Email: form.Email, Password: form.Password})
	if err != nil {
		h.logFailure(c, "login", err)
		renderPage(c, h.renderer, failureStatus(err), "login.html", authPage{
			Error: services.ServerMessage(err, loginFailed),
			Email: form.Email,
		})
		return
	}

	if !h.startSession(c, result) {
		renderPage(c, h.renderer, http.StatusInternalServerError, "login.html", authPage{Error: loginFailed, Email: form.Email})
		return
	}
	h.analytics.TrackEvent(c.Request.Context(), "email_"+services.HashEmail(result.User.Email), services.EventLoggedIn, nil)
	c.Redirect(http.StatusSeeOther, views.RouteDashboard)
}

// HandleRegister forwards a new account to the API (POST /register)
func (h *AuthHandler) HandleRegister(c *gin.Context) {
	var form RegisterForm
	if err := c.ShouldBind(&form); err != nil {
		renderPage(c, h.renderer, http.StatusBadRequest, "register.html", authPage{
			Error: invalidRegistForm,
			Name:  form.Name,
			Email: form.Email,
		})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), h.timeout)
	defer cancel()

	result, err := h.auth.Register(ctx, services.RegisterRequest{
		Name:     form.Name,
		Email:    form.Email,
		Password: form.Password,
	})
	if err != nil {
		h.logFailure(c, "register", err)
		renderPage(c, h.renderer, failureStatus(err), "register.html", authPage{
			Error: services.ServerMessage(err, registrationFailed),
			Name:  form.Name,
			Email: form.Email,
		})
		return
	}

	if !h.startSession(c, result) {
		renderPage(c, h.renderer, http.StatusInternalServerError, "register.html", authPage{Error: registrationFailed, Name: form.Name, Email: form.Email})
		return
	}
	h.analytics.TrackEvent(c.Request.Context(), "email_"+services.HashEmail(result.User.Email), services.EventRegistered, nil)
	c.Redirect(http.StatusSeeOther, views.RouteDashboard)
}

// startSession mints the session token and sets the cookie
func (h *AuthHandler) startSession(c *gin.Context, result *services.AuthResult) bool {
	token, err := h.sessions.Issue(result.User, result.Token)
	if err != nil {
		logger := logging.ComponentLogger("auth", middleware.GetRequestID(c))
		logger.Error().Err(err).Msg("failed to issue session token")
		return false
	}
	middleware.SetSessionCookie(c, token, h.cookie)
	return true
}

func (h *AuthHandler) logFailure(c *gin.Context, action string, err error) {
	logger := logging.ComponentLogger("auth", middleware.GetRequestID(c))
	if errors.Is(err, services.ErrUnauthorized) {
		logger.Info().Str("action", action).Msg("credentials rejected")
		return
	}
	logger.Warn().Err(err).Str("action", action).Msg("auth request failed")
}

// failureStatus maps an upstream failure to the status of the re-rendered form
func failureStatus(err error) int {
	var apiErr *services.APIError
	switch {
	case errors.Is(err, services.ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.As(err, &apiErr) && apiErr.StatusCode >= 400 && apiErr.StatusCode < 500:
		return apiErr.StatusCode
	default:
		return http.StatusBadGateway
	}
}
