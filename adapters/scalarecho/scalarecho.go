// Package scalarecho mounts a Scalar API reference on an echo server.
package scalarecho

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/reflow/scalar"
)

// Router is satisfied by *echo.Echo and *echo.Group.
type Router interface {
	GET(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
}

// Register adds the GET routes of s to r.
func Register(r Router, s scalar.Scalar) error {
	return s.Mount(func(path, contentType string, body []byte) {
		r.GET(path, func(c echo.Context) error {
			return c.Blob(http.StatusOK, contentType, body)
		})
	})
}
