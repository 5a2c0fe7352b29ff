// Package handler implements the HTTP endpoints of the back-office API.
// Errors are returned as {"error": "..."} JSON bodies.
package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// Health reports that the process is up.
func Health(c echo.Context) error {
	return c.String(http.StatusOK, "ok")
}
