// Package scalarfiber mounts a Scalar API reference on a fiber app.
package scalarfiber

import (
	"github.com/gofiber/fiber/v2"

	"github.com/reflow/scalar"
)

// Register adds the GET routes of s to r, which may be a *fiber.App or a
// group.
func Register(r fiber.Router, s scalar.Scalar) error {
	return s.Mount(func(path, contentType string, body []byte) {
		r.Get(path, func(c *fiber.Ctx) error {
			c.Set(fiber.HeaderContentType, contentType)
			return c.Status(fiber.StatusOK).Send(body)
		})
	})
}
