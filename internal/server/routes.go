package server

import (
	"time"

	"pearlify/internal/handler"
	"pearlify/internal/middleware"

	"github.com/labstack/echo/v4"
)

type Handlers struct {
	Product    *handler.ProductHandler
	Cart       *handler.CartHandler
	Order      *handler.OrderHandler
	AdminOrder *handler.AdminOrderHandler
	Dashboard  *handler.DashboardHandler
}

// RegisterRoutes wires the public menu, the session scoped customer routes and /admin.
func RegisterRoutes(e *echo.Echo, h Handlers, newSessionID func() string, sessionTTL time.Duration) {
	h.Product.RegisterRoutes(e)

	session := middleware.Session(newSessionID, sessionTTL)
	h.Cart.RegisterRoutes(e, session)
	h.Order.RegisterRoutes(e, session)

	admin := e.Group("/admin", middleware.AdminActor())
	h.AdminOrder.RegisterRoutes(admin)
	h.Dashboard.RegisterRoutes(admin)
}
