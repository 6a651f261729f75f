// Package scalargin mounts a Scalar API reference on a gin engine or group.
package scalargin

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/reflow/scalar"
)

// Register adds the GET routes of s to r. Paths are joined to the group
// prefix, so with a group the mount URL is relative to it.
//
// gin cleans route paths on registration; paths containing "//" are served
// through their collapsed alias only. When s is mounted at "/" and the
// literal "//" URLs of the page must resolve as well, set
// RemoveExtraSlash on the engine so requests are cleaned before routing:
//
//	e := gin.New()
//	e.RemoveExtraSlash = true
//	err := scalargin.Register(e, s)
func Register(r gin.IRoutes, s scalar.Scalar) error {
	return s.Mount(func(path, contentType string, body []byte) {
		if strings.Contains(path, "//") {
			return
		}
		r.GET(path, func(c *gin.Context) {
			c.Data(http.StatusOK, contentType, body)
		})
	})
}
