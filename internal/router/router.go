// Package router builds the Echo instance: global middleware, the API
// routes and the system routes.
package router

import (
	"net/http"

	"github.com/deppfellow/shoppingcart/internal/handler"
	"github.com/deppfellow/shoppingcart/internal/middleware"
	"github.com/labstack/echo/v4"
)

// Requests per second and burst allowed per client IP.
const (
	apiRateLimit = 20
	apiRateBurst = 40
)

func NewRouter(h *handler.Handlers, m *middleware.Middlewares) *echo.Echo {
	router := echo.New()
	router.HideBanner = true
	router.HidePort = true
	router.HTTPErrorHandler = m.Global.GlobalErrorHandler

	router.Use(
		m.Global.Recover(),
		m.Global.Secure(),
		m.Global.CORS(),
		middleware.RequestID(),
		m.Tracing.NewRelicMiddleware(),
		m.Tracing.EnhanceTracing(),
		m.ContextEnhancer.EnhanceContext(),
		m.Global.RequestLogger(),
		m.Metrics.Middleware(),
	)

	registerSystemRoutes(router, h, m)

	api := router.Group("/api", m.RateLimit.Limit(apiRateLimit, apiRateBurst))
	registerMemberRoutes(api, h, m)
	registerProductRoutes(api, h)
	registerCartRoutes(api, h, m)
	registerOrderRoutes(api, h, m)

	return router
}

func registerMemberRoutes(api *echo.Group, h *handler.Handlers, m *middleware.Middlewares) {
	api.POST("/login", handler.Handle(h.Auth.Login, http.StatusOK))
	api.POST("/members", handler.Handle(h.Member.SignUp, http.StatusCreated))
	api.POST("/members/duplicate-email", handler.HandleNoContent(h.Member.CheckDuplicateEmail, http.StatusOK))

	me := api.Group("/members/me", m.Auth.RequireAuth)
	me.GET("", handler.Handle(h.Member.GetMe, http.StatusOK))
	me.PATCH("/name", handler.HandleNoContent(h.Member.UpdateName, http.StatusNoContent))
	me.PATCH("/password", handler.HandleNoContent(h.Member.UpdatePassword, http.StatusNoContent))
	me.DELETE("", handler.HandleNoContent(h.Member.DeleteMe, http.StatusNoContent))
}

func registerProductRoutes(api *echo.Group, h *handler.Handlers) {
	products := api.Group("/products")
	products.POST("", handler.Handle(h.Product.AddProduct, http.StatusCreated))
	products.GET("", handler.Handle(h.Product.GetProducts, http.StatusOK))
	products.GET("/:productId", handler.Handle(h.Product.GetProduct, http.StatusOK))
	products.DELETE("/:productId", handler.HandleNoContent(h.Product.DeleteProduct, http.StatusNoContent))
}

func registerCartRoutes(api *echo.Group, h *handler.Handlers, m *middleware.Middlewares) {
	carts := api.Group("/members/me/carts", m.Auth.RequireAuth)
	carts.GET("", handler.Handle(h.Cart.GetCartItems, http.StatusOK))
	carts.POST("", handler.Handle(h.Cart.AddCartItem, http.StatusCreated))
	carts.PATCH("/:cartItemId", handler.HandleNoContent(h.Cart.UpdateQuantity, http.StatusNoContent))
	carts.DELETE("/:cartItemId", handler.HandleNoContent(h.Cart.DeleteCartItem, http.StatusNoContent))
}

func registerOrderRoutes(api *echo.Group, h *handler.Handlers, m *middleware.Middlewares) {
	orders := api.Group("/members/me/orders", m.Auth.RequireAuth)
	orders.POST("", handler.Handle(h.Order.AddOrder, http.StatusCreated))
	orders.GET("", handler.Handle(h.Order.GetOrders, http.StatusOK))
	orders.GET("/:orderId", handler.Handle(h.Order.GetOrder, http.StatusOK))
}
