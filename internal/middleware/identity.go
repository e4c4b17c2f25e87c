package middleware

import "github.com/labstack/echo/v4"

// CurrentUserID returns the user id stored by JWTAuth, or "anon" when the
// request is unauthenticated.
func CurrentUserID(c echo.Context) string {
	if s, ok := c.Get(CtxUserID).(string); ok && s != "" {
		return s
	}
	return "anon"
}
