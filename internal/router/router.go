package router // route registration for every service binary

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/room-reservation/internal/handler"
)

// RegisterRoutes registers routes every service exposes: the health check.
func RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", handler.Health)
}

// RegisterAuth registers the auth stub.  Neither route requires a token;
// Me validates one itself when it is sent.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler) {
	g := e.Group("/api/auth")
	g.GET("/me", a.Me)
	g.POST("/login", a.Login)
}

// RegisterBooking registers the reservation endpoints.
func RegisterBooking(e *echo.Echo, b *handler.BookingHandler) {
	g := e.Group("/api/bookings")
	g.POST("", b.Create)
	g.GET("", b.List)
	g.GET("/:id", b.Get)
}

// RegisterInventory registers the room listing.
func RegisterInventory(e *echo.Echo, h *handler.InventoryHandler) {
	e.GET("/api/rooms", h.ListRooms)
}

// RegisterNotification registers the notification liveness endpoint.  The
// consumer itself is not HTTP-facing.
func RegisterNotification(e *echo.Echo) {
	e.GET("/api/notifications/ping", handler.NotificationPing)
}

// RegisterPayment registers the payment simulator.
func RegisterPayment(e *echo.Echo, p *handler.PaymentHandler) {
	e.POST("/api/payments/simulate", p.Simulate)
}
