package router

import (
	"github.com/deppfellow/shoppingcart/internal/handler"
	"github.com/deppfellow/shoppingcart/internal/middleware"
	"github.com/labstack/echo/v4"
)

// registerSystemRoutes registers health, metrics and API docs.
func registerSystemRoutes(r *echo.Echo, h *handler.Handlers, m *middleware.Middlewares) {
	r.GET("/status", h.Health.CheckHealth)
	r.GET("/metrics", m.Metrics.Handler())
	r.Static("/static", handler.StaticDir)
	r.GET("/docs", h.OpenAPI.ServeOpenAPIUI)
}
