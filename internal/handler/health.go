package handler // HTTP handlers for every service binary

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// Health backs GET /healthz on every service.  Load balancers and
// health checks only look at the status code; the body is a plain "ok".
func Health(c echo.Context) error {
	return c.String(http.StatusOK, "ok")
}

// GatewayRoot answers GET / on the gateway.
func GatewayRoot(c echo.Context) error {
	return c.String(http.StatusOK, "api-gateway-ok")
}

// NotificationPing answers GET /api/notifications/ping.
func NotificationPing(c echo.Context) error {
	return c.String(http.StatusOK, "notification-service-ok")
}
