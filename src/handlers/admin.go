package handlers

import (
	"context"
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

// fetchSettleGrace is how long a page waits past the fetch deadline for
// the cancelled fetch to report back
const fetchSettleGrace = 2 * time.Second

// AdminHandler handles the admin dashboard
type AdminHandler struct {
	renderer     *templates.Renderer
	users        repositories.UserDirectory
	analytics    *services.AnalyticsService
	fetchTimeout time.Duration
}

// NewAdminHandler creates a new admin handler. fetchTimeout bounds the
// upstream user-list call.
func NewAdminHandler(renderer *templates.Renderer, users repositories.UserDirectory, analytics *services.AnalyticsService, fetchTimeout time.Duration) *AdminHandler {
	if fetchTimeout <= 0 {
		fetchTimeout = 10 * time.Second
	}
	return &AdminHandler{
		renderer:     renderer,
		users:        users,
		analytics:    analytics,
		fetchTimeout: fetchTimeout,
	}
}

// HandleAdminPage fetches every user once and renders the table (GET /admin)
func (ah *AdminHandler) HandleAdminPage(c *gin.Context) {
	session := middleware.CurrentSession(c)
	logger := logging.ComponentLogger("admin", middleware.GetRequestID(c))

	// The fetch deadline is shorter than the wait, so an upstream timeout
	// settles as Failed before the page renders.
	fetchCtx, cancelFetch := context.WithTimeout(c.Request.Context(), ah.fetchTimeout)
	defer cancelFetch()
	waitCtx, cancelWait := context.WithTimeout(c.Request.Context(), ah.fetchTimeout+fetchSettleGrace)
	defer cancelWait()

	view := views.NewAdminDashboardView(session, ah.users)
	view.Initialize(fetchCtx)
	state := view.Wait(waitCtx)
	view.Dispose()

	distinctID := services.DistinctID(session, middleware.GetRequestID(c))
	switch state.Phase {
	case views.PhaseReady:
		logger.Info().Int("user_count", len(state.Users)).Msg("user list loaded")
		ah.analytics.TrackUsersListed(c.Request.Context(), distinctID, len(state.Users), false)
	case views.PhaseFailed:
		logger.Warn().Str("message", state.Error).Msg("user list fetch failed")
		ah.analytics.TrackUsersListed(c.Request.Context(), distinctID, 0, true)
	default:
		logger.Warn().Dur("timeout", ah.fetchTimeout).Msg("user list still loading at render time")
	}

	renderPage(c, ah.renderer, http.StatusOK, "admin.html", view.Page())
}

// HandleUserDashboard returns to the user dashboard (POST /admin/dashboard)
func (ah *AdminHandler) HandleUserDashboard(c *gin.Context) {
	views.NewAdminDashboardView(middleware.CurrentSession(c), ah.users).OnUserDashboardRequested(redirectNavigator{c})
}

// HandleLogout ends the session from the admin dashboard (POST /admin/logout)
func (ah *AdminHandler) HandleLogout(c *gin.Context) {
	trackLogout(c, ah.analytics)
	views.NewAdminDashboardView(middleware.CurrentSession(c), ah.users).OnLogoutRequested(redirectNavigator{c})
}
