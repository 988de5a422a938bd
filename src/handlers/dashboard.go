package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/khabaroff/jwt-auth-web/src/middleware"
	"github.com/khabaroff/jwt-auth-web/src/services"
	"github.com/khabaroff/jwt-auth-web/src/templates"
	"github.com/khabaroff/jwt-auth-web/src/views"
)

// DashboardHandler handles the signed-in user's dashboard
type DashboardHandler struct {
	renderer  *templates.Renderer
	content   templates.DashboardContent
	analytics *services.AnalyticsService
}

// NewDashboardHandler creates a new dashboard handler
func NewDashboardHandler(renderer *templates.Renderer, content *templates.Content, analytics *services.AnalyticsService) *DashboardHandler {
	return &DashboardHandler{
		renderer:  renderer,
		content:   content.Dashboard,
		analytics: analytics,
	}
}

func (dh *DashboardHandler) view(c *gin.Context) *views.UserDashboardView {
	return views.NewUserDashboardView(middleware.CurrentSession(c), dh.content)
}

// HandleDashboardPage renders the dashboard (GET /dashboard)
func (dh *DashboardHandler) HandleDashboardPage(c *gin.Context) {
	session := middleware.CurrentSession(c)
	dh.analytics.TrackPageView(c.Request.Context(), services.DistinctID(session, middleware.GetRequestID(c)), "dashboard")
	renderPage(c, dh.renderer, http.StatusOK, "dashboard.html", dh.view(c))
}

// HandleAdminPanel moves an admin to the admin dashboard (POST /dashboard/admin)
func (dh *DashboardHandler) HandleAdminPanel(c *gin.Context) {
	err := dh.view(c).OnAdminPanelRequested(redirectNavigator{c})
	if errors.Is(err, views.ErrAdminRequired) {
		c.String(http.StatusForbidden, "admin access required")
	}
}

// HandleLogout ends the session from the dashboard (POST /dashboard/logout)
func (dh *DashboardHandler) HandleLogout(c *gin.Context) {
	trackLogout(c, dh.analytics)
	dh.view(c).OnLogoutRequested(redirectNavigator{c})
}

func trackLogout(c *gin.Context, analytics *services.AnalyticsService) {
	session := middleware.CurrentSession(c)
	analytics.TrackEvent(c.Request.Context(), services.DistinctID(session, middleware.GetRequestID(c)), services.EventLoggedOut, nil)
}
