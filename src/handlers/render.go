package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/khabaroff/jwt-auth-web/src/middleware"
	"github.com/khabaroff/jwt-auth-web/src/templates"
	"github.com/rs/zerolog/log"
)

// redirectNavigator turns view navigation into a 303 redirect
type redirectNavigator struct {
	c *gin.Context
}

func (n redirectNavigator) Navigate(route string) {
	n.c.Redirect(http.StatusSeeOther, route)
}

// renderPage writes an HTML page, falling back to a bare 500 on template failure
func renderPage(c *gin.Context, renderer *templates.Renderer, status int, name string, data interface{}) {
	c.Status(status)
	c.Header("Content-Type", "text/html; charset=utf-8")
	c.Header("Cache-Control", "no-store")
	if err := renderer.Render(c.Writer, name, data); err != nil {
		log.Error().
			Err(err).
			Str("request_id", middleware.GetRequestID(c)).
			Str("template", name).
			Msg("failed to render page")
		_ = c.Error(err)
		c.String(http.StatusInternalServerError, "internal server error")
	}
}
