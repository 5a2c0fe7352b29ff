package middleware

import "github.com/labstack/echo/v4"

// Operator returns the authenticated operator, or "anon" before JWTAuth
// has run.
func Operator(c echo.Context) string {
	if s, ok := c.Get(KeyOperator).(string); ok && s != "" {
		return s
	}
	return "anon"
}
