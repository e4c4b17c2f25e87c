package router

import (
	"fmt"
	"net/url"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/iliyamo/room-reservation/internal/config"
	"github.com/iliyamo/room-reservation/internal/handler"
	"github.com/iliyamo/room-reservation/internal/middleware"
)

// route maps a path prefix to the upstream serving it.
type route struct {
	prefix   string
	upstream string
	auth     bool
}

// RegisterGateway mounts the gateway: GET / plus a reverse proxy for every
// service prefix.  Rate limiting applies to every request; the response
// cache sits on each proxied route behind any auth check, so a cached
// response is only replayed to callers that pass it.  Both are no-ops
// unless enabled and rdb is non-nil.  With cfg.GatewayRequireAuth the
// booking routes demand a USER or ADMIN token.
func RegisterGateway(e *echo.Echo, cfg config.Config, rdb *redis.Client, log zerolog.Logger) error {
	e.Use(middleware.NewTokenBucket(cfg.RateLimit, cfg.JWTSecret, rdb, log))
	cache := middleware.NewRedisCache(cfg.Cache, rdb, log)

	e.GET("/", handler.GatewayRoot)

	routes := []route{
		{prefix: "/api/auth", upstream: cfg.Upstreams.Auth},
		{prefix: "/api/bookings", upstream: cfg.Upstreams.Booking, auth: cfg.GatewayRequireAuth},
		{prefix: "/api/rooms", upstream: cfg.Upstreams.Inventory},
		{prefix: "/api/notifications", upstream: cfg.Upstreams.Notification},
		{prefix: "/api/payments", upstream: cfg.Upstreams.Payment},
	}
	for _, r := range routes {
		target, err := url.Parse(r.upstream)
		if err != nil || target.Scheme == "" || target.Host == "" {
			return fmt.Errorf("gateway: invalid upstream %q for %s", r.upstream, r.prefix)
		}
		var mws []echo.MiddlewareFunc
		if r.auth {
			mws = append(mws, middleware.JWTAuth(cfg.JWTSecret), middleware.RequireRole("USER", "ADMIN"))
		}
		mws = append(mws, cache, echomw.ProxyWithConfig(echomw.ProxyConfig{
			Balancer: echomw.NewRoundRobinBalancer([]*echomw.ProxyTarget{{Name: r.prefix, URL: target}}),
		}))
		// the proxy answers every request, so the handler is never reached
		e.Any(r.prefix, echo.NotFoundHandler, mws...)
		e.Any(r.prefix+"/*", echo.NotFoundHandler, mws...)
	}
	return nil
}
