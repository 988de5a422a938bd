package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/khabaroff/jwt-auth-web/src/templates"
	"github.com/khabaroff/jwt-auth-web/src/views"
)

// HomeHandler serves the landing page
type HomeHandler struct {
	renderer *templates.Renderer
	view     views.HomeView
}

// NewHomeHandler creates a new home handler
func NewHomeHandler(renderer *templates.Renderer, content *templates.Content) *HomeHandler {
	return &HomeHandler{
		renderer: renderer,
		view:     views.NewHomeView(content.Home),
	}
}

// HandleHome renders the landing page (GET /)
func (hh *HomeHandler) HandleHome(c *gin.Context) {
	renderPage(c, hh.renderer, http.StatusOK, "home.html", hh.view)
}
