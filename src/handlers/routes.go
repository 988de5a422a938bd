package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/khabaroff/jwt-auth-web/src/middleware"
	"github.com/khabaroff/jwt-auth-web/src/templates"
	"github.com/khabaroff/jwt-auth-web/src/views"
)

// Routes groups every handler mounted on the router
type Routes struct {
	Home        *HomeHandler
	Dashboard   *DashboardHandler
	Admin       *AdminHandler
	Auth        *AuthHandler
	Health      *HealthHandler
	AuthLimiter *middleware.KeyRateLimiter
}

// Register mounts the pages, forms and health endpoints. The router must
// already run SessionMiddleware.
func (r Routes) Register(router *gin.Engine) {
	// Health check endpoints
	router.GET("/health", r.Health.HandleHealth)
	router.GET("/ready", r.Health.HandleReady)
	router.GET("/info", r.Health.HandleInfo)

	router.StaticFS("/assets", http.FS(templates.Assets()))

	router.GET(views.RouteHome, r.Home.HandleHome)

	// Login and register forms, POSTs rate limited per IP
	authLimit := func(c *gin.Context) { c.Next() }
	if r.AuthLimiter != nil {
		authLimit = middleware.IPRateLimitMiddleware(r.AuthLimiter)
	}
	router.GET(views.RouteLogin, r.Auth.ShowLogin)
	router.POST(views.RouteLogin, authLimit, r.Auth.HandleLogin)
	router.GET(views.RouteRegister, r.Auth.ShowRegister)
	router.POST(views.RouteRegister, authLimit, r.Auth.HandleRegister)

	dashboard := router.Group(views.RouteDashboard, middleware.RequireSession(views.RouteLogin))
	{
		dashboard.GET("", r.Dashboard.HandleDashboardPage)
		dashboard.POST("/admin", r.Dashboard.HandleAdminPanel)
		dashboard.POST("/logout", r.Dashboard.HandleLogout)
	}

	admin := router.Group(views.RouteAdmin,
		middleware.RequireSession(views.RouteLogin),
		middleware.RequireAdmin(views.RouteDashboard))
	{
		admin.GET("", r.Admin.HandleAdminPage)
		admin.POST("/dashboard", r.Admin.HandleUserDashboard)
		admin.POST("/logout", r.Admin.HandleLogout)
	}
}
