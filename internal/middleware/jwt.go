// Package middleware holds the echo middleware of the API: operator
// authentication, role checks, the Redis response cache and the Redis
// token bucket rate limiter.
package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/ticket-stock-reconciler/internal/utils"
)

// Context keys set by JWTAuth.
const (
	KeyOperator = "operator"
	KeyRole     = "role"
)

// JWTAuth validates a Bearer access token and stores its subject and role
// claims under KeyOperator and KeyRole.
func JWTAuth(secret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			auth := c.Request().Header.Get(echo.HeaderAuthorization)
			if !strings.HasPrefix(auth, "Bearer ") {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "missing bearer token"})
			}
			claims, err := utils.ParseAccessToken(secret, strings.TrimPrefix(auth, "Bearer "))
			if err != nil {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid token"})
			}
			sub, _ := claims["sub"].(string)
			if sub == "" {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid claims"})
			}
			c.Set(KeyOperator, sub)
			c.Set(KeyRole, claims["role"])
			return next(c)
		}
	}
}
